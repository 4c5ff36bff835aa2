// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// LinElast implements a linear elastic model
type LinElast struct {
	Ndim int     // space dimension
	E    float64 // Young's modulus
	Nu   float64 // Poisson's coefficient
	K    float64 // bulk modulus
	G    float64 // shear modulus
	L    float64 // Lame's λ coefficient
	Rho  float64 // density
}

// add model to factory
func init() {
	allocators["lin-elast"] = func() Model { return new(LinElast) }
}

// Init initialises model
func (o *LinElast) Init(ndim int, prms dbf.Params) (err error) {
	o.Ndim = ndim
	var hasE, hasNu, hasK, hasG bool
	for _, p := range prms {
		switch p.N {
		case "E":
			o.E, hasE = p.V, true
		case "nu":
			o.Nu, hasNu = p.V, true
		case "K":
			o.K, hasK = p.V, true
		case "G":
			o.G, hasG = p.V, true
		case "rho":
			o.Rho = p.V
		default:
			return chk.Err("lin-elast: parameter named %q is incorrect\n", p.N)
		}
	}
	switch {
	case hasE && hasNu:
		o.K = o.E / (3.0 * (1.0 - 2.0*o.Nu))
		o.G = o.E / (2.0 * (1.0 + o.Nu))
	case hasK && hasG:
		o.E = 9.0 * o.K * o.G / (3.0*o.K + o.G)
		o.Nu = (3.0*o.K - 2.0*o.G) / (6.0*o.K + 2.0*o.G)
	default:
		return chk.Err("lin-elast: either {E, nu} or {K, G} must be given\n")
	}
	if o.K <= 0 || o.G <= 0 {
		return chk.Err("lin-elast: K=%g and G=%g must be positive\n", o.K, o.G)
	}
	if o.Rho <= 0 {
		return chk.Err("lin-elast: density rho=%g must be positive\n", o.Rho)
	}
	o.L = o.K - 2.0*o.G/3.0
	return
}

// GetPrms gets (an example) of parameters
func (o LinElast) GetPrms() dbf.Params {
	return []*dbf.P{
		&dbf.P{N: "E", V: 1e6},
		&dbf.P{N: "nu", V: 0.3},
		&dbf.P{N: "rho", V: 1800},
	}
}

// GetRho returns density
func (o LinElast) GetRho() float64 { return o.Rho }

// WaveSpeed returns the P-wave speed
func (o LinElast) WaveSpeed() float64 {
	return math.Sqrt((o.K + 4.0*o.G/3.0) / o.Rho)
}

// InitIntVars initialises internal (secondary) variables
func (o LinElast) InitIntVars(σ [][]float64) (s *State, err error) {
	s = NewState(o.Ndim, 0)
	for i := 0; i < o.Ndim; i++ {
		copy(s.Sig[i], σ[i])
	}
	return
}

// Update updates stresses for given strain increment
func (o LinElast) Update(s *State, Δε, dεdt [][]float64, Δt float64) (err error) {
	trΔε := Tr(Δε)
	for i := 0; i < o.Ndim; i++ {
		for j := 0; j < o.Ndim; j++ {
			s.Sig[i][j] += 2.0 * o.G * Δε[i][j]
		}
		s.Sig[i][i] += o.L * trΔε
	}
	return
}
