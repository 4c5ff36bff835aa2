// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import "github.com/cpmech/gosl/utl"

// State holds all continuum mechanics data, including for updating the state
type State struct {

	// essential
	Sig  [][]float64 // σ: current Cauchy stress tensor [ndim][ndim]
	Eps  [][]float64 // ε: accumulated small strain tensor [ndim][ndim]
	Rate [][]float64 // dε/dt: current strain rate tensor [ndim][ndim]

	// for plasticity and fluids (if len(α) > 0)
	Alp     []float64 // α: internal variables of rate type [nalp]
	Dgam    float64   // Δγ: increment of Lagrange multiplier (for plasticity only)
	Loading bool      // unloading flag (for plasticity only)
}

// NewState allocates state structure
func NewState(ndim, nalp int) *State {
	var state State
	state.Sig = utl.Alloc(ndim, ndim)
	state.Eps = utl.Alloc(ndim, ndim)
	state.Rate = utl.Alloc(ndim, ndim)
	if nalp > 0 {
		state.Alp = make([]float64, nalp)
	}
	return &state
}

// Set copies states
//  Note: 1) this and other states must have been pre-allocated with the same sizes
//        2) this method does not check for errors
func (o *State) Set(other *State) {
	for i := 0; i < len(o.Sig); i++ {
		copy(o.Sig[i], other.Sig[i])
		copy(o.Eps[i], other.Eps[i])
		copy(o.Rate[i], other.Rate[i])
	}
	if len(o.Alp) > 0 {
		copy(o.Alp, other.Alp)
		o.Dgam = other.Dgam
		o.Loading = other.Loading
	}
}

// GetCopy returns a copy of this state
func (o *State) GetCopy() *State {
	other := NewState(len(o.Sig), len(o.Alp))
	other.Set(o)
	return other
}
