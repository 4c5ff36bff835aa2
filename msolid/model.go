// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package msolid implements models for solids based on continuum mechanics
//
//  All models are rate type models for small strain increments:
//
//     σ_(n+1) = σ_(n) + Δσ(σ_(n), Δε, dε/dt, α_(n))
//
//  Tensors are stored as full [ndim][ndim] matrices. In 2D, the out-of-plane
//  components are not stored (plane-strain kinematics).
//
//  Models only hold parameters after Init. All mutable data lives in State;
//  thus, one model can be shared by many goroutines updating distinct states.
package msolid

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Model defines the interface for solid models
type Model interface {
	Init(ndim int, prms dbf.Params) error                    // initialises model
	InitIntVars(σ [][]float64) (*State, error)               // initialises AND allocates internal (secondary) variables
	GetPrms() dbf.Params                                     // gets (an example) of parameters
	GetRho() float64                                         // returns density
	WaveSpeed() float64                                      // returns the speed of the fastest (dilatational) wave
	Update(s *State, Δε, dεdt [][]float64, Δt float64) error // updates stresses for given strain increment and rate
}

// New returns new solid model
func New(name string) (model Model, err error) {
	allocator, ok := allocators[name]
	if !ok {
		return nil, chk.Err("model %q is not available in 'msolid' database", name)
	}
	return allocator(), nil
}

// Names returns the names of all available models
func Names() (names []string) {
	for name := range allocators {
		names = append(names, name)
	}
	return
}

// allocators holds all available solid models; modelname => allocator
var allocators = map[string]func() Model{}
