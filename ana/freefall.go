// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ana implements analytical solutions
package ana

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// FreeFall implements the solution of a body falling under constant gravity
//
//   x(t) = x0 + v0⋅t + g⋅t²/2
//   v(t) = v0 + g⋅t
//
// The discrete solution corresponds to the semi-implicit Euler scheme
// v_(k+1) = v_k + g⋅Δt ; x_(k+1) = x_k + v_(k+1)⋅Δt
type FreeFall struct {
	X0 float64 // initial position
	V0 float64 // initial velocity
	G  float64 // gravity acceleration; e.g. -10
}

// Init initialises this structure
func (o *FreeFall) Init(prms dbf.Params) (err error) {
	o.G = -10
	for _, p := range prms {
		switch p.N {
		case "x0":
			o.X0 = p.V
		case "v0":
			o.V0 = p.V
		case "g":
			o.G = p.V
		default:
			return chk.Err("FreeFall: parameter named %q is invalid", p.N)
		}
	}
	return
}

// Position returns the position at time t
func (o FreeFall) Position(t float64) float64 {
	return o.X0 + o.V0*t + o.G*t*t/2.0
}

// Velocity returns the velocity at time t
func (o FreeFall) Velocity(t float64) float64 {
	return o.V0 + o.G*t
}

// DiscretePosition returns the position after k steps of size Δt
func (o FreeFall) DiscretePosition(k int, Δt float64) float64 {
	fk := float64(k)
	return o.X0 + o.V0*fk*Δt + o.G*Δt*Δt*fk*(fk+1.0)/2.0
}

// DiscreteVelocity returns the velocity after k steps of size Δt
func (o FreeFall) DiscreteVelocity(k int, Δt float64) float64 {
	return o.V0 + o.G*float64(k)*Δt
}
