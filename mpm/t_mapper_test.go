// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpm

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/cpmech/gompm/inp"
	"github.com/cpmech/gompm/msolid"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/floats"
)

// linElast returns an initialised linear elastic model
func linElast(tst *testing.T, ndim int, E, nu, rho float64) msolid.Model {
	mdl, err := msolid.New("lin-elast")
	if err != nil {
		tst.Fatalf("cannot allocate model:\n%v", err)
	}
	err = mdl.Init(ndim, dbf.Params{&dbf.P{N: "E", V: E}, &dbf.P{N: "nu", V: nu}, &dbf.P{N: "rho", V: rho}})
	if err != nil {
		tst.Fatalf("cannot initialise model:\n%v", err)
	}
	return mdl
}

// newDomain allocates a domain for tests
func newDomain(tst *testing.T, g *Grid, parts *Particles, scheme, stressupd string, nworkers int, dt float64, nsteps int) *Domain {
	var dat inp.SolverData
	dat.SetDefault()
	dat.Scheme = scheme
	dat.StressUpd = stressupd
	dat.Nworkers = nworkers
	if err := dat.PostProcess(); err != nil {
		tst.Fatalf("invalid solver data:\n%v", err)
	}
	d, err := NewDomain(g, parts, nil, &dat, &inp.TimeControl{Dt: dt, Nsteps: nsteps}, nil)
	if err != nil {
		tst.Fatalf("cannot allocate domain:\n%v", err)
	}
	return d
}

// seedRandom adds npc particles with random positions inside each cell
func seedRandom(tst *testing.T, g *Grid, parts *Particles, npc int, rnd *rand.Rand) {
	s := g.Cells[0].Shp.GetCopy()
	r := make([]float64, g.Ndim)
	for _, c := range g.Cells {
		for k := 0; k < npc; k++ {
			for {
				for i := 0; i < g.Ndim; i++ {
					if s.Simplex {
						r[i] = rnd.Float64()
					} else {
						r[i] = 2*rnd.Float64() - 1
					}
				}
				if s.CellBryDist(r) > 0.01 {
					break
				}
			}
			x := make([]float64, g.Ndim)
			s.RealCoords(x, c.X, r)
			v := make([]float64, g.Ndim)
			for i := range v {
				v[i] = rnd.Float64() - 0.5
			}
			if _, err := parts.Add(x, v, 0, c.Vol/float64(npc), nil); err != nil {
				tst.Fatalf("cannot add particle:\n%v", err)
			}
		}
	}
}

func Test_mapper01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mapper01. partition of unity")

	rnd := rand.New(rand.NewSource(1234))
	tet4coords := [][]float64{{0, 0, 0}, {1, 0.1, 0}, {0.2, 1.1, 0}, {0.1, 0.2, 0.9}, {1.2, 1.2, 1}}
	tet4conn := [][]int{{0, 1, 2, 3}, {1, 4, 2, 3}}
	for _, geo := range []string{"lin2", "tri3", "qua4", "tet4", "hex8"} {

		// distorted grid
		var coords [][]float64
		var conn [][]int
		ndim := 2
		switch geo {
		case "lin2":
			coords, conn = genLin2(4, 2)
			ndim = 1
		case "tri3":
			coords, conn = genTri3(3, 2, 3, 2)
		case "qua4":
			coords, conn = genQua4(3, 2, 3, 2)
		case "tet4":
			coords, conn = tet4coords, tet4conn
			ndim = 3
		case "hex8":
			coords, conn = genHex8(2, 2, 1, 2, 2, 1)
			ndim = 3
		}
		for _, x := range coords {
			for i := range x {
				x[i] += 0.05 * (rnd.Float64() - 0.5)
			}
		}
		g, err := NewGrid(ndim, geo, coords, conn)
		if err != nil {
			tst.Errorf("%s: test failed:\n%v", geo, err)
			return
		}

		// particles
		parts := NewParticles(ndim, []msolid.Model{linElast(tst, ndim, 1, 0.25, 1)})
		seedRandom(tst, g, parts, 5, rnd)
		mapper := NewMapper(g, len(parts.P))
		ws := NewWorkspace(0, geo, ndim)
		for pid, p := range parts.P {
			if err = parts.Locate(pid, g, ws); err != nil {
				tst.Errorf("%s: locate failed:\n%v", geo, err)
				return
			}
			if err = mapper.Compute(pid, p, ws); err != nil {
				tst.Errorf("%s: mapper failed:\n%v", geo, err)
				return
			}
			nodes, S := mapper.Weights(pid)
			_, G := mapper.Gradients(pid)
			chk.Float64(tst, io.Sf("%s: ΣS", geo), 1e-10, floats.Sum(S), 1)
			for j := 0; j < ndim; j++ {
				var sum float64
				for m := range nodes {
					sum += G[m][j]
				}
				chk.Float64(tst, io.Sf("%s: ΣG%d", geo, j), 1e-10, sum, 0)
			}

			// interpolation of nodal coordinates reproduces the particle position
			for i := 0; i < ndim; i++ {
				var xi float64
				for m, n := range nodes {
					xi += S[m] * g.Nodes[n].X[i]
				}
				chk.Float64(tst, io.Sf("%s: x%d", geo, i), 1e-10, xi, p.X[i])
			}
		}
	}
}

func Test_particles01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("particles01. volume and strains")

	parts := NewParticles(2, []msolid.Model{linElast(tst, 2, 1000, 0, 2)})
	p, err := parts.Add([]float64{0.5, 0.5}, []float64{0, 0}, 0, 0.25, [][]float64{{-1, 0}, {0, -1}})
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	chk.Float64(tst, "mass", 1e-15, p.M, 0.5)
	chk.Deep2(tst, "σ0", 1e-15, p.State.Sig, [][]float64{{-1, 0}, {0, -1}})

	// errors when adding
	if _, err = parts.Add([]float64{0.5}, []float64{0, 0}, 0, 1, nil); err == nil {
		tst.Errorf("Add should have failed with wrong position")
	}
	if _, err = parts.Add([]float64{0.5, 0.5}, []float64{0, 0}, 1, 1, nil); err == nil {
		tst.Errorf("Add should have failed with wrong material id")
	}
	if _, err = parts.Add([]float64{0.5, 0.5}, []float64{0, 0}, 0, 0, nil); err == nil {
		tst.Errorf("Add should have failed with zero volume")
	}

	// uniaxial stretching and shear
	ws := NewWorkspace(0, "qua4", 2)
	Δt := 0.01
	p.L[0][0], p.L[0][1] = 2, 1
	err = parts.ComputeVolumeStrain(0, Δt, ws)
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	chk.Float64(tst, "vol", 1e-15, p.Vol, 0.25*1.02)
	chk.Deep2(tst, "F", 1e-15, p.F, [][]float64{{1.02, 0.01}, {0, 1}})
	chk.Deep2(tst, "Δε", 1e-15, p.DEps, [][]float64{{0.02, 0.005}, {0.005, 0}})
	chk.Deep2(tst, "rate", 1e-15, p.State.Rate, [][]float64{{2, 0.5}, {0.5, 0}})
	err = parts.UpdateStress(0, Δt)
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	chk.Deep2(tst, "σ", 1e-13, p.State.Sig, [][]float64{{-1 + 1000*0.02, 1000 * 0.005}, {1000 * 0.005, -1}})

	// compression beyond zero volume
	p.L[0][0], p.L[0][1] = -200, 0
	err = parts.ComputeVolumeStrain(0, Δt, ws)
	if !errors.Is(err, ErrNonPositiveVolume) {
		tst.Errorf("ErrNonPositiveVolume should have been returned. err = %v", err)
	}
	chk.Float64(tst, "vol unchanged", 1e-15, p.Vol, 0.25*1.02)
}
