// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// +build ignore

package main

import (
	"github.com/cpmech/gompm/inp"
	"github.com/cpmech/gompm/msolid"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// MatDriver applies a uniaxial strain path to one material and prints the stresses
func main() {

	// input data
	matfn := io.ArgToString(0, "inp/data/solids.mat")
	matname := io.ArgToString(1, "metal")
	epsmax := io.ArgToFloat(2, 0.01)
	ninc := io.ArgToInt(3, 20)
	io.Pf("\n%-20s = %v\n%-20s = %v\n%-20s = %v\n%-20s = %v\n\n",
		"materials file", matfn, "material name", matname, "max strain", epsmax, "increments", ninc)

	// model
	ndim := 3
	mdb, err := inp.ReadMat("", matfn, ndim)
	if err != nil {
		io.Pfred("cannot read materials:\n%v\n", err)
		return
	}
	mat := mdb.Get(matname)
	if mat == nil {
		io.Pfred("cannot find material %q. available: %v\n", matname, msolid.Names())
		return
	}
	sta, err := mat.Solid.InitIntVars(utl.Alloc(ndim, ndim))
	if err != nil {
		io.Pfred("cannot initialise state:\n%v\n", err)
		return
	}

	// loading and unloading
	Δt := 1.0
	Δε := utl.Alloc(ndim, ndim)
	rate := utl.Alloc(ndim, ndim)
	io.Pf("%6s%14s%14s%14s%14s\n", "inc", "εxx", "σxx", "σyy", "q")
	for k := 0; k <= 2*ninc; k++ {
		Δε[0][0] = epsmax / float64(ninc)
		if k > ninc {
			Δε[0][0] = -Δε[0][0]
		}
		if k > 0 {
			rate[0][0] = Δε[0][0] / Δt
			if err = mat.Solid.Update(sta, Δε, rate, Δt); err != nil {
				io.Pfred("update failed @ increment %d:\n%v\n", k, err)
				return
			}
			sta.Eps[0][0] += Δε[0][0]
		}
		io.Pf("%6d%14.6e%14.6e%14.6e%14.6e\n", k, sta.Eps[0][0], sta.Sig[0][0], sta.Sig[1][1], msolid.Q(sta.Sig))
	}
}
