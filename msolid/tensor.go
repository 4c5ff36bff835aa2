// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// tensor2 exposes a [ndim][ndim] tensor as a gonum matrix without copying
type tensor2 [][]float64

func (a tensor2) Dims() (r, c int)    { return len(a), len(a) }
func (a tensor2) At(i, j int) float64 { return a[i][j] }
func (a tensor2) T() mat.Matrix       { return mat.Transpose{Matrix: a} }

// Tr returns the trace of a [ndim][ndim] tensor
func Tr(a [][]float64) float64 {
	return mat.Trace(tensor2(a))
}

// Dev computes the deviatoric part of a and stores it in d. The trace is taken as
// if a were a 3D tensor with zero out-of-plane components
func Dev(d, a [][]float64) {
	m := Tr(a) / 3.0
	for i := 0; i < len(a); i++ {
		for j := 0; j < len(a); j++ {
			d[i][j] = a[i][j]
		}
		d[i][i] -= m
	}
}

// Norm returns the Frobenius norm of a
func Norm(a [][]float64) float64 {
	return mat.Norm(tensor2(a), 2)
}

// P returns the mean pressure p = -tr(σ)/3 (positive in compression)
func P(σ [][]float64) float64 {
	return -Tr(σ) / 3.0
}

// Q returns the von Mises equivalent stress q = sqrt(3/2) |dev(σ)|
func Q(σ [][]float64) float64 {
	m := Tr(σ) / 3.0
	var sum float64
	for i := 0; i < len(σ); i++ {
		for j := 0; j < len(σ); j++ {
			s := σ[i][j]
			if i == j {
				s -= m
			}
			sum += s * s
		}
	}
	if len(σ) < 3 {
		sum += m * m * float64(3-len(σ)) // out-of-plane deviatoric components
	}
	return math.Sqrt(1.5 * sum)
}

// IsFinite tells whether all components of a are finite
func IsFinite(a [][]float64) bool {
	for i := 0; i < len(a); i++ {
		for j := 0; j < len(a[i]); j++ {
			if math.IsNaN(a[i][j]) || math.IsInf(a[i][j], 0) {
				return false
			}
		}
	}
	return true
}
