// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package shp implements shape structures/routines
package shp

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
	"gonum.org/v1/gonum/mat"
)

// constants
const MINDET = 1.0e-14 // minimum determinant allowed for dxdR

// ShpFunc is the shape functions callback function
type ShpFunc func(S []float64, dSdR [][]float64, r []float64, derivs bool)

// Shape holds geometry data
type Shape struct {

	// geometry
	Type      string      // name; e.g. "qua4"
	Func      ShpFunc     // shape/derivs function callback function
	BasicType string      // geometry of basic element; e.g. "qua4" or "tri3"
	Simplex   bool        // natural coordinates are barycentric-like; e.g. tri3, tet4
	Gndim     int         // geometry of shape; e.g. "qua4" => gnd == 2
	Nverts    int         // number of vertices in cell; e.g. "hex8" => 8
	VtkCode   int         // VTK code
	NatCoords [][]float64 // natural coordinates [gndim][nverts]
	Centre    []float64   // natural coordinates of centroid [gndim]

	// scratchpad: volume
	S    []float64   // [nverts] shape functions
	G    [][]float64 // [nverts][gndim] G == dSdx. derivative of shape function
	J    float64     // Jacobian: determinant of dxdr
	DSdR [][]float64 // [nverts][gndim] derivatives of S w.r.t natural coordinates
	DxdR [][]float64 // [gndim][gndim] derivatives of real coordinates w.r.t natural coordinates
	DRdx [][]float64 // [gndim][gndim] dRdx == inverse(dxdR)

	// scratchpad: inverse mapping
	e  []float64 // [gndim] residual
	δr []float64 // [gndim] corrector

	// gonum workspace
	mJ  *mat.Dense // dxdR
	mJi *mat.Dense // dRdx
}

// GetCopy returns a new copy of this shape structure
func (o Shape) GetCopy() *Shape {
	var p Shape
	p.Type = o.Type
	p.Func = o.Func
	p.BasicType = o.BasicType
	p.Simplex = o.Simplex
	p.Gndim = o.Gndim
	p.Nverts = o.Nverts
	p.VtkCode = o.VtkCode
	p.NatCoords = utl.Alloc(o.Gndim, o.Nverts)
	for i := 0; i < o.Gndim; i++ {
		copy(p.NatCoords[i], o.NatCoords[i])
	}
	p.Centre = make([]float64, o.Gndim)
	copy(p.Centre, o.Centre)
	p.init_scratchpad()
	return &p
}

// factory holds all Shapes available
var factory = make(map[string]*Shape)

// Get returns an existent Shape structure
//  Note: 1) returns nil on errors
//        2) use goroutineId > 0 to get a copy
func Get(geoType string, goroutineId int) *Shape {
	s, ok := factory[geoType]
	if !ok {
		return nil
	}
	if goroutineId > 0 {
		return s.GetCopy()
	}
	return s
}

// Types returns the names of all available shapes
func Types() (names []string) {
	for name := range factory {
		names = append(names, name)
	}
	return
}

// RealCoords returns the real coordinates (y) of a point with natural coordinates R
func (o *Shape) RealCoords(y []float64, x [][]float64, R []float64) {
	o.Func(o.S, o.DSdR, R, false)
	for i := 0; i < len(x); i++ {
		y[i] = 0
		for m := 0; m < o.Nverts; m++ {
			y[i] += o.S[m] * x[i][m]
		}
	}
}

// CalcAtR calculates volume data such as S and G at natural coordinate r
//  Input:
//   x[ndim][nverts] -- coordinates matrix of cell
//   R[gndim]        -- local/natural coordinates
//  Output:
//   S, DSdR, DxdR, DRdx, G, and J
func (o *Shape) CalcAtR(x [][]float64, R []float64, derivs bool) (err error) {

	// S and dSdR
	o.Func(o.S, o.DSdR, R, derivs)
	if !derivs {
		return
	}

	// dxdR := sum_n x * dSdR   =>  dx_i/dR_j := sum_n x^n_i * dS^n/dR_j
	o.calc_dxdR(x)

	// dRdx := inv(dxdR)
	o.J, err = o.invert()
	if err != nil {
		return
	}

	// G == dSdx := dSdR * dRdx  =>  dS^m/dx_j := sum_i dS^m/dR_i * dR_i/dx_j
	for m := 0; m < o.Nverts; m++ {
		for j := 0; j < o.Gndim; j++ {
			o.G[m][j] = 0
			for i := 0; i < o.Gndim; i++ {
				o.G[m][j] += o.DSdR[m][i] * o.DRdx[i][j]
			}
		}
	}
	return
}

// calc_dxdR computes the Jacobian matrix dxdR using the current DSdR
func (o *Shape) calc_dxdR(x [][]float64) {
	for i := 0; i < o.Gndim; i++ {
		for j := 0; j < o.Gndim; j++ {
			o.DxdR[i][j] = 0.0
			for n := 0; n < o.Nverts; n++ {
				o.DxdR[i][j] += x[i][n] * o.DSdR[n][j]
			}
		}
	}
}

// invert computes DRdx = inv(DxdR) and returns the determinant of DxdR
func (o *Shape) invert() (det float64, err error) {
	for i := 0; i < o.Gndim; i++ {
		for j := 0; j < o.Gndim; j++ {
			o.mJ.Set(i, j, o.DxdR[i][j])
		}
	}
	det = mat.Det(o.mJ)
	if math.Abs(det) < MINDET {
		return det, chk.Err("%s: cannot invert dxdR because |det(dxdR)| = %g < %g", o.Type, math.Abs(det), MINDET)
	}
	err = o.mJi.Inverse(o.mJ)
	if err != nil {
		return det, chk.Err("%s: cannot invert dxdR:\n%v", o.Type, err)
	}
	for i := 0; i < o.Gndim; i++ {
		for j := 0; j < o.Gndim; j++ {
			o.DRdx[i][j] = o.mJi.At(i, j)
		}
	}
	return
}

// init_scratchpad initialise volume data (scratchpad)
func (o *Shape) init_scratchpad() {
	o.S = make([]float64, o.Nverts)
	o.DSdR = utl.Alloc(o.Nverts, o.Gndim)
	o.DxdR = utl.Alloc(o.Gndim, o.Gndim)
	o.DRdx = utl.Alloc(o.Gndim, o.Gndim)
	o.G = utl.Alloc(o.Nverts, o.Gndim)
	o.e = make([]float64, o.Gndim)
	o.δr = make([]float64, o.Gndim)
	o.mJ = mat.NewDense(o.Gndim, o.Gndim, nil)
	o.mJi = mat.NewDense(o.Gndim, o.Gndim, nil)
}

// register adds a shape to the factory
func register(s *Shape) {
	if _, ok := factory[s.Type]; ok {
		chk.Panic("shape %q is already registered", s.Type)
	}
	s.Centre = make([]float64, s.Gndim)
	for i := 0; i < s.Gndim; i++ {
		for m := 0; m < s.Nverts; m++ {
			s.Centre[i] += s.NatCoords[i][m]
		}
		s.Centre[i] /= float64(s.Nverts)
	}
	s.init_scratchpad()
	factory[s.Type] = s
}
