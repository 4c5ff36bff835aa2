// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/diff/fd"
)

// CheckShape checks that shape functions evaluate to 1.0 @ nodes
func CheckShape(tst *testing.T, shape *Shape, tol float64, verbose bool) {

	// loop over all vertices
	errS := 0.0
	r := []float64{0, 0, 0}
	for n := 0; n < shape.Nverts; n++ {

		// natural coordinates @ vertex
		for i := 0; i < shape.Gndim; i++ {
			r[i] = shape.NatCoords[i][n]
		}

		// compute function
		shape.Func(shape.S, shape.DSdR, r, false)

		// check
		if verbose {
			io.Pf("S = %v\n", shape.S)
		}
		for m := 0; m < shape.Nverts; m++ {
			if n == m {
				errS += math.Abs(shape.S[m] - 1.0)
			} else {
				errS += math.Abs(shape.S[m])
			}
		}
	}

	// error
	if errS > tol {
		tst.Errorf("%s failed with err = %g\n", shape.Type, errS)
		return
	}
}

// CheckDSdR checks dSdR derivatives of shape structures against a central finite difference
func CheckDSdR(tst *testing.T, shape *Shape, r []float64, tol float64, verbose bool) {

	// analytical
	shape.Func(shape.S, shape.DSdR, r, true)
	dSdR := make([][]float64, shape.Nverts)
	for n := 0; n < shape.Nverts; n++ {
		dSdR[n] = make([]float64, shape.Gndim)
		copy(dSdR[n], shape.DSdR[n])
	}

	// numerical
	tmp := make([]float64, len(r))
	S := make([]float64, shape.Nverts)
	settings := &fd.Settings{Formula: fd.Central, Step: 1e-6}
	for n := 0; n < shape.Nverts; n++ {
		for j := 0; j < shape.Gndim; j++ {
			dnum := fd.Derivative(func(x float64) float64 {
				copy(tmp, r)
				tmp[j] = x
				shape.Func(S, nil, tmp, false)
				return S[n]
			}, r[j], settings)
			if verbose {
				io.Pforan("dS%d/dR%d @ %v = %23.15e  num = %23.15e\n", n, j, r, dSdR[n][j], dnum)
			}
			if math.Abs(dSdR[n][j]-dnum) > tol {
				tst.Errorf("%s: dS%d/dR%d failed: %g != %g\n", shape.Type, n, j, dSdR[n][j], dnum)
				return
			}
		}
	}
}

// CheckPartitionOfUnity checks that ΣS == 1 and ΣG == 0 at natural coordinates r
func CheckPartitionOfUnity(tst *testing.T, shape *Shape, x [][]float64, r []float64, tol float64) {
	err := shape.CalcAtR(x, r, true)
	if err != nil {
		tst.Errorf("CalcAtR failed:\n%v", err)
		return
	}
	var sumS float64
	sumG := make([]float64, shape.Gndim)
	for m := 0; m < shape.Nverts; m++ {
		sumS += shape.S[m]
		for j := 0; j < shape.Gndim; j++ {
			sumG[j] += shape.G[m][j]
		}
	}
	if math.Abs(sumS-1.0) > tol {
		tst.Errorf("%s: sum of S @ %v = %g != 1\n", shape.Type, r, sumS)
	}
	for j := 0; j < shape.Gndim; j++ {
		if math.Abs(sumG[j]) > tol {
			tst.Errorf("%s: sum of G[:][%d] @ %v = %g != 0\n", shape.Type, j, r, sumG[j])
		}
	}
}
