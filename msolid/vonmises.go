// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// VonMises implements von Mises plasticity model with linear isotropic hardening
//
//   f = q - qy0 - H α0
//
//  Internal variables: α[0] = accumulated plastic multiplier
type VonMises struct {
	LinElast
	Qy0 float64 // initial yield stress (in terms of q)
	H   float64 // hardening modulus
}

// add model to factory
func init() {
	allocators["vm"] = func() Model { return new(VonMises) }
}

// Init initialises model
func (o *VonMises) Init(ndim int, prms dbf.Params) (err error) {

	// parse parameters
	var elast dbf.Params
	for _, p := range prms {
		switch p.N {
		case "qy0":
			o.Qy0 = p.V
		case "H":
			o.H = p.V
		case "E", "nu", "K", "G", "rho":
			elast = append(elast, p)
		default:
			return chk.Err("vm: parameter named %q is incorrect\n", p.N)
		}
	}
	if o.Qy0 <= 0 {
		return chk.Err("vm: yield stress qy0=%g must be positive\n", o.Qy0)
	}
	return o.LinElast.Init(ndim, elast)
}

// GetPrms gets (an example) of parameters
func (o VonMises) GetPrms() dbf.Params {
	return append(o.LinElast.GetPrms(),
		&dbf.P{N: "qy0", V: 200},
		&dbf.P{N: "H", V: 0},
	)
}

// InitIntVars initialises internal (secondary) variables
func (o VonMises) InitIntVars(σ [][]float64) (s *State, err error) {
	s = NewState(o.Ndim, 1)
	for i := 0; i < o.Ndim; i++ {
		copy(s.Sig[i], σ[i])
	}
	return
}

// YieldFunc computes the yield function
func (o VonMises) YieldFunc(s *State) float64 {
	return Q(s.Sig) - o.Qy0 - o.H*s.Alp[0]
}

// Update updates stresses for given strain increment (radial return)
func (o VonMises) Update(s *State, Δε, dεdt [][]float64, Δt float64) (err error) {

	// set flags
	s.Loading = false // => not elastoplastic
	s.Dgam = 0        // Δγ := 0

	// trial stress
	err = o.LinElast.Update(s, Δε, dεdt, Δt)
	if err != nil {
		return
	}
	σ := s.Sig
	α0 := &s.Alp[0]
	qtr := Q(σ)

	// trial yield function
	ftr := qtr - o.Qy0 - o.H*(*α0)

	// elastic update
	if ftr <= 0.0 {
		return
	}

	// elastoplastic update
	hp := 3.0*o.G + o.H
	s.Dgam = ftr / hp
	*α0 += s.Dgam
	m := 1.0 - s.Dgam*3.0*o.G/qtr
	if m < 0 || math.IsNaN(m) {
		return chk.Err("vm: radial return failed: m=%g", m)
	}
	mean := Tr(σ) / 3.0
	for i := 0; i < o.Ndim; i++ {
		for j := 0; j < o.Ndim; j++ {
			if i == j {
				σ[i][j] = m*(σ[i][j]-mean) + mean
				continue
			}
			σ[i][j] *= m
		}
	}
	s.Loading = true
	return
}
