// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/diff/fd"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_freefall01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("freefall01")

	var sol FreeFall
	err := sol.Init(dbf.Params{&dbf.P{N: "x0", V: 10}, &dbf.P{N: "v0", V: 2}})
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	chk.Float64(tst, "g", 1e-17, sol.G, -10)
	chk.Float64(tst, "x(1)", 1e-15, sol.Position(1), 7)
	chk.Float64(tst, "v(1)", 1e-15, sol.Velocity(1), -8)

	// discrete solution satisfies the recurrence
	Δt := 0.01
	x, v := sol.X0, sol.V0
	for k := 1; k <= 100; k++ {
		v += sol.G * Δt
		x += v * Δt
		chk.Float64(tst, io.Sf("x%d", k), 1e-12, sol.DiscretePosition(k, Δt), x)
		chk.Float64(tst, io.Sf("v%d", k), 1e-12, sol.DiscreteVelocity(k, Δt), v)
	}

	// discrete solution converges to the continuous one
	chk.Float64(tst, "x(1): discrete", Δt*math.Abs(sol.G), sol.DiscretePosition(100, Δt), sol.Position(1))

	if err = sol.Init(dbf.Params{&dbf.P{N: "mass", V: 1}}); err == nil {
		tst.Errorf("Init should have failed")
	}
}

func Test_axialbar01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("axialbar01")

	var sol AxialBar
	err := sol.Init(dbf.Params{&dbf.P{N: "L", V: 1}, &dbf.P{N: "E", V: 100}, &dbf.P{N: "rho", V: 1}, &dbf.P{N: "v0", V: 0.1}})
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	chk.Float64(tst, "β", 1e-15, sol.Beta, math.Pi/2)
	chk.Float64(tst, "ω", 1e-14, sol.Omega, 5*math.Pi)
	chk.Float64(tst, "T", 1e-15, sol.Period(), 0.4)

	// boundary conditions
	chk.Float64(tst, "u(0,t)", 1e-17, sol.Displacement(0, 0.1), 0)
	chk.Float64(tst, "σ(L,t)", 1e-14, sol.Stress(1, 0.1), 0)
	chk.Float64(tst, "v(L,0)", 1e-15, sol.Velocity(1, 0), 0.1)
	chk.Float64(tst, "v(L,T/2)", 1e-15, sol.Velocity(1, 0.2), -0.1)
	chk.Float64(tst, "vcm(0)", 1e-15, sol.CentreOfMassVelocity(0), 0.2/math.Pi)

	// v = du/dt and σ = E du/dx
	x, t := 0.3, 0.07
	settings := &fd.Settings{Formula: fd.Central, Step: 1e-6}
	dudt := fd.Derivative(func(τ float64) float64 { return sol.Displacement(x, τ) }, t, settings)
	dudx := fd.Derivative(func(y float64) float64 { return sol.Displacement(y, t) }, x, settings)
	chk.Float64(tst, "v", 1e-8, sol.Velocity(x, t), dudt)
	chk.Float64(tst, "σ", 1e-6, sol.Stress(x, t), sol.E*dudx)

	if err = sol.Init(dbf.Params{&dbf.P{N: "L", V: -1}}); err == nil {
		tst.Errorf("Init should have failed")
	}
}
