// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// AxialBar implements the first mode of free axial vibration of a linear elastic bar fixed at
// x=0 and free at x=L, with initial velocity v(x,0) = v0⋅sin(β⋅x) and no initial displacement
//
//   v(x,t) = v0⋅sin(β⋅x)⋅cos(ω⋅t)
//   u(x,t) = v0/ω⋅sin(β⋅x)⋅sin(ω⋅t)
//   β = π/(2⋅L) ; ω = β⋅sqrt(E/ρ)
//
//   |>
//   |>=========================  → x
//   |>
//   0                         L
type AxialBar struct {

	// input
	L   float64 // length
	E   float64 // Young's modulus
	Rho float64 // density
	V0  float64 // amplitude of initial velocity

	// derived
	Beta  float64 // wave number
	Omega float64 // angular frequency
}

// Init initialises this structure
func (o *AxialBar) Init(prms dbf.Params) (err error) {

	// default values
	o.L = 1
	o.E = 100
	o.Rho = 1
	o.V0 = 0.1

	// parameters
	for _, p := range prms {
		switch p.N {
		case "L":
			o.L = p.V
		case "E":
			o.E = p.V
		case "rho":
			o.Rho = p.V
		case "v0":
			o.V0 = p.V
		default:
			return chk.Err("AxialBar: parameter named %q is invalid", p.N)
		}
	}
	if o.L <= 0 || o.E <= 0 || o.Rho <= 0 {
		return chk.Err("AxialBar: L, E and rho must be positive. L=%g E=%g rho=%g", o.L, o.E, o.Rho)
	}

	// derived
	o.Beta = math.Pi / (2.0 * o.L)
	o.Omega = o.Beta * math.Sqrt(o.E/o.Rho)
	return
}

// Period returns the period of vibration
func (o AxialBar) Period() float64 {
	return 2.0 * math.Pi / o.Omega
}

// Velocity returns the velocity at x and time t
func (o AxialBar) Velocity(x, t float64) float64 {
	return o.V0 * math.Sin(o.Beta*x) * math.Cos(o.Omega*t)
}

// Displacement returns the displacement at x and time t
func (o AxialBar) Displacement(x, t float64) float64 {
	return o.V0 / o.Omega * math.Sin(o.Beta*x) * math.Sin(o.Omega*t)
}

// Stress returns the axial stress at x and time t
func (o AxialBar) Stress(x, t float64) float64 {
	return o.E * o.V0 / o.Omega * o.Beta * math.Cos(o.Beta*x) * math.Sin(o.Omega*t)
}

// CentreOfMassVelocity returns the velocity of the centre of mass at time t
func (o AxialBar) CentreOfMassVelocity(t float64) float64 {
	return o.V0 * (1.0 - math.Cos(o.Beta*o.L)) / (o.Beta * o.L) * math.Cos(o.Omega*t)
}
