// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
	"gonum.org/v1/gonum/floats"
)

// constants
const (
	INVMAP_TOL = 1.0e-10 // tolerance for inverse mapping function
	INVMAP_NIT = 25      // maximum number of iterations for inverse mapping
)

// Ipoint holds the natural coordinates and weight of an integration point: {r, s, t, w}
type Ipoint []float64

// ips holds the default integration points of each basic geometry
var ips = map[string][]Ipoint{
	"lin2": {
		{-1.0 / math.Sqrt(3.0), 0, 0, 1},
		{+1.0 / math.Sqrt(3.0), 0, 0, 1},
	},
	"tri3": {
		{1.0 / 3.0, 1.0 / 3.0, 0, 0.5},
	},
	"qua4": {
		{-1.0 / math.Sqrt(3.0), -1.0 / math.Sqrt(3.0), 0, 1},
		{+1.0 / math.Sqrt(3.0), -1.0 / math.Sqrt(3.0), 0, 1},
		{+1.0 / math.Sqrt(3.0), +1.0 / math.Sqrt(3.0), 0, 1},
		{-1.0 / math.Sqrt(3.0), +1.0 / math.Sqrt(3.0), 0, 1},
	},
	"tet4": {
		{0.25, 0.25, 0.25, 1.0 / 6.0},
	},
	"hex8": {
		{-1.0 / math.Sqrt(3.0), -1.0 / math.Sqrt(3.0), -1.0 / math.Sqrt(3.0), 1},
		{+1.0 / math.Sqrt(3.0), -1.0 / math.Sqrt(3.0), -1.0 / math.Sqrt(3.0), 1},
		{+1.0 / math.Sqrt(3.0), +1.0 / math.Sqrt(3.0), -1.0 / math.Sqrt(3.0), 1},
		{-1.0 / math.Sqrt(3.0), +1.0 / math.Sqrt(3.0), -1.0 / math.Sqrt(3.0), 1},
		{-1.0 / math.Sqrt(3.0), -1.0 / math.Sqrt(3.0), +1.0 / math.Sqrt(3.0), 1},
		{+1.0 / math.Sqrt(3.0), -1.0 / math.Sqrt(3.0), +1.0 / math.Sqrt(3.0), 1},
		{+1.0 / math.Sqrt(3.0), +1.0 / math.Sqrt(3.0), +1.0 / math.Sqrt(3.0), 1},
		{-1.0 / math.Sqrt(3.0), +1.0 / math.Sqrt(3.0), +1.0 / math.Sqrt(3.0), 1},
	},
}

// GetIps returns the default integration points for this shape
func (o *Shape) GetIps() []Ipoint {
	return ips[o.BasicType]
}

// InvMap computes the natural coordinates r, given the real coordinate y
//  Input:
//   y[ndim]         -- are the point coordinates
//   x[ndim][nverts] -- coordinates matrix of cell
//  Output:
//   r[gndim] -- are the natural coordinates of given point
func (o *Shape) InvMap(r, y []float64, x [][]float64) (err error) {

	var δRnorm float64
	e, δr := o.e, o.δr
	copy(r, o.Centre) // first trial
	it := 0
	derivs := true
	for it = 0; it < INVMAP_NIT; it++ {

		// shape functions and derivatives
		o.Func(o.S, o.DSdR, r, derivs)

		// residual: e = y - x * S
		for i := 0; i < o.Gndim; i++ {
			e[i] = y[i]
			for j := 0; j < o.Nverts; j++ {
				e[i] -= x[i][j] * o.S[j]
			}
		}

		// Jmat == dxdR = x * dSdR; Jimat == dRdx = Jmat.inverse()
		o.calc_dxdR(x)
		o.J, err = o.invert()
		if err != nil {
			return
		}

		// corrector: dR = Jimat * e
		for i := 0; i < o.Gndim; i++ {
			δr[i] = 0.0
			for j := 0; j < o.Gndim; j++ {
				δr[i] += o.DRdx[i][j] * e[j]
			}
		}

		// converged?
		for i := 0; i < o.Gndim; i++ {
			r[i] += δr[i]
		}
		o.snap(r)
		δRnorm = floats.Norm(δr, 2)
		if δRnorm < INVMAP_TOL {
			return
		}
	}
	return chk.Err("%s: inverse mapping did not converge after %d iterations. |δr| = %g", o.Type, it, δRnorm)
}

// snap fixes natural coordinates that are outside the range by less than INVMAP_TOL
func (o *Shape) snap(r []float64) {
	lo, hi := -1.0, 1.0
	if o.Simplex {
		lo = 0.0
	}
	for i := 0; i < o.Gndim; i++ {
		if r[i] < lo && lo-r[i] < INVMAP_TOL {
			r[i] = lo
		}
		if r[i] > hi && r[i]-hi < INVMAP_TOL {
			r[i] = hi
		}
	}
}

// CellBryDist returns the shortest distance between R and the boundary of the cell in natural
// coordinates. The distance is negative if R is outside the cell
func (o *Shape) CellBryDist(R []float64) float64 {
	switch o.BasicType {
	case "lin2":
		return 1.0 - math.Abs(R[0])
	case "tri3":
		r, s := R[0], R[1]
		return utl.Min(r, utl.Min(s, 1.0-r-s))
	case "qua4":
		r, s := R[0], R[1]
		return utl.Min(1.0-math.Abs(r), 1.0-math.Abs(s))
	case "tet4":
		r, s, t := R[0], R[1], R[2]
		return utl.Min(r, utl.Min(s, utl.Min(t, 1.0-r-s-t)))
	case "hex8":
		r, s, t := R[0], R[1], R[2]
		return utl.Min(1.0-math.Abs(r), utl.Min(1.0-math.Abs(s), 1.0-math.Abs(t)))
	}
	chk.Panic("cannot handle BasicType=%q yet", o.BasicType)
	return 0 // must not reach this point
}

// IsInside tells whether natural coordinates R are inside the cell (boundary included)
func (o *Shape) IsInside(R []float64, tol float64) bool {
	return o.CellBryDist(R) >= -tol
}

// Volume computes the volume (area in 2D; length in 1D) of a cell with coordinates x[ndim][nverts]
func (o *Shape) Volume(x [][]float64) (vol float64, err error) {
	for _, ip := range o.GetIps() {
		err = o.CalcAtR(x, ip, true)
		if err != nil {
			return
		}
		vol += o.J * ip[3]
	}
	return
}
