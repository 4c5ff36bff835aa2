// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Newtonian implements a weakly compressible Newtonian fluid
//
//   p_(n+1) = p_(n) - K tr(Δε)
//   σ = -p I + 2 μ dev(dε/dt)
//
//  Internal variables: α[0] = p (pressure; positive in compression)
type Newtonian struct {
	Ndim int     // space dimension
	K    float64 // bulk modulus
	Mu   float64 // dynamic viscosity
	Rho  float64 // density
}

// add model to factory
func init() {
	allocators["newtonian"] = func() Model { return new(Newtonian) }
}

// Init initialises model
func (o *Newtonian) Init(ndim int, prms dbf.Params) (err error) {
	o.Ndim = ndim
	for _, p := range prms {
		switch p.N {
		case "K":
			o.K = p.V
		case "mu":
			o.Mu = p.V
		case "rho":
			o.Rho = p.V
		default:
			return chk.Err("newtonian: parameter named %q is incorrect\n", p.N)
		}
	}
	if o.K <= 0 || o.Mu < 0 || o.Rho <= 0 {
		return chk.Err("newtonian: K=%g and rho=%g must be positive and mu=%g non-negative\n", o.K, o.Rho, o.Mu)
	}
	return
}

// GetPrms gets (an example) of parameters
func (o Newtonian) GetPrms() dbf.Params {
	return []*dbf.P{
		&dbf.P{N: "K", V: 2e6},
		&dbf.P{N: "mu", V: 1e-3},
		&dbf.P{N: "rho", V: 1000},
	}
}

// GetRho returns density
func (o Newtonian) GetRho() float64 { return o.Rho }

// WaveSpeed returns the speed of sound
func (o Newtonian) WaveSpeed() float64 {
	return math.Sqrt(o.K / o.Rho)
}

// InitIntVars initialises internal (secondary) variables
func (o Newtonian) InitIntVars(σ [][]float64) (s *State, err error) {
	s = NewState(o.Ndim, 1)
	for i := 0; i < o.Ndim; i++ {
		copy(s.Sig[i], σ[i])
	}
	s.Alp[0] = -Tr(σ) / float64(o.Ndim)
	return
}

// Update updates stresses for given strain increment and rate
func (o Newtonian) Update(s *State, Δε, dεdt [][]float64, Δt float64) (err error) {
	p := &s.Alp[0]
	*p -= o.K * Tr(Δε)
	m := Tr(dεdt) / 3.0
	for i := 0; i < o.Ndim; i++ {
		for j := 0; j < o.Ndim; j++ {
			s.Sig[i][j] = 2.0 * o.Mu * dεdt[i][j]
		}
		s.Sig[i][i] += -*p - 2.0*o.Mu*m
	}
	return
}
