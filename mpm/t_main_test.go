// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpm

import (
	"context"
	"errors"
	"testing"

	"github.com/cpmech/gompm/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

// recorder saves the step numbers of all snapshots
type recorder struct {
	steps []int
	times []float64
	last  *Snapshot
	hook  func(s *Snapshot) error
}

func (o *recorder) WriteSnapshot(s *Snapshot) error {
	o.steps = append(o.steps, s.Step)
	o.times = append(o.times, s.Time)
	o.last = s
	if o.hook != nil {
		return o.hook(s)
	}
	return nil
}

// newSim returns a 2D simulation with 2 qua4 cells over [0,2]×[0,1] and 4 particles per cell
func newSim(tst *testing.T, nsteps, nout int) *inp.Simulation {
	msh, err := inp.ParseMesh([]byte(`! elementShape quadrilateral
! elementNumPoints 4
6 2
0 0
1 0
2 0
0 1
1 1
2 1
0 1 4 3
1 2 5 4
`), "twoqua.msh")
	if err != nil {
		tst.Fatalf("cannot parse mesh:\n%v", err)
	}
	mdb := &inp.MatDb{Materials: []*inp.Material{
		{Name: "soft", Model: "lin-elast", Prms: dbf.Params{&dbf.P{N: "E", V: 100}, &dbf.P{N: "nu", V: 0.2}, &dbf.P{N: "rho", V: 1}}},
	}}
	if err = mdb.Init(2); err != nil {
		tst.Fatalf("cannot initialise materials:\n%v", err)
	}
	boxes, err := inp.ParseBoxes(`
[box "bottom"]
y = -0.01 0.01

[box "top"]
y = 0.7 1.0
`)
	if err != nil {
		tst.Fatalf("cannot parse boxes:\n%v", err)
	}
	sim := &inp.Simulation{
		Functions: inp.FuncsData{{Name: "load", Type: "cte", Prms: dbf.Params{&dbf.P{N: "c", V: -0.1}}}},
		Control:   inp.TimeControl{Dt: 1e-3, Nsteps: nsteps, Nout: nout},
		Gravity:   []float64{0, -10},
		Particles: []*inp.ParticleSet{{
			Xp:  [][]float64{{0.25, 0.25}, {0.75, 0.25}, {0.25, 0.75}, {0.75, 0.75}, {1.25, 0.25}, {1.75, 0.25}, {1.25, 0.75}, {1.75, 0.75}},
			Mat: "soft",
		}},
		NodeBcs:   []*inp.NodeBc{{Box: "bottom", Keys: []string{"fix"}, Funcs: []string{"zero"}}},
		PtLoads:   []*inp.PtLoad{{Box: "top", Keys: []string{"fy"}, Funcs: []string{"load"}}},
		Mesh:      msh,
		MatParams: mdb,
		Boxes:     boxes,
	}
	sim.Solver.SetDefault()
	if err = sim.PostProcess(); err != nil {
		tst.Fatalf("invalid simulation:\n%v", err)
	}
	return sim
}

func Test_main01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("main01. allocation and output steps")

	sim := newSim(tst, 10, 3)
	var rec recorder
	o, err := NewMain(sim, "main01", inp.NewLogger("main01", chk.Verbose), &rec)
	if err != nil {
		tst.Errorf("NewMain failed:\n%v", err)
		return
	}

	// particles: default volume is cell volume / 4
	chk.Int(tst, "np", len(o.Dom.Parts.P), 8)
	for _, p := range o.Dom.Parts.P {
		chk.Float64(tst, io.Sf("vol%d", p.Id), 1e-15, p.Vol, 0.25)
		chk.Float64(tst, io.Sf("m%d", p.Id), 1e-15, p.M, 0.25)
	}
	chk.Int(tst, "nconstraints", o.Dom.Grid.Nconstraints(), 6)
	chk.Int(tst, "npointloads", o.Dom.Loads.NpointLoads(), 4)
	if !o.Dom.Grid.Structured() {
		tst.Errorf("grid should be structured")
	}

	// run
	err = o.Run(context.Background())
	if err != nil {
		tst.Errorf("Run failed:\n%v", err)
		return
	}
	chk.Ints(tst, "output steps", rec.steps, []int{0, 3, 6, 9, 10})
	chk.Array(tst, "output times", 1e-15, rec.times, []float64{0, 0.003, 0.006, 0.009, 0.01})
	chk.Int(tst, "np @ snapshot", rec.last.Np(), 8)
	chk.Int(tst, "len(Sig[0])", len(rec.last.Sig[0]), 4)
	chk.Int(tst, "vtk", rec.last.Vtk, 9)
	for k := 0; k < 3; k++ {
		chk.Array(tst, io.Sf("vel @ node %d", k), 1e-17, o.Dom.Grid.NodalVelocity(k), []float64{0, 0})
	}
	if o.Solver.Phase() != Terminal {
		tst.Errorf("solver should be in Terminal phase")
	}

	// only first and last
	sim = newSim(tst, 10, 0)
	rec = recorder{}
	o, err = NewMain(sim, "main01", nil, &rec)
	if err != nil {
		tst.Errorf("NewMain failed:\n%v", err)
		return
	}
	err = o.Run(context.Background())
	if err != nil {
		tst.Errorf("Run failed:\n%v", err)
		return
	}
	chk.Ints(tst, "output steps (nout=0)", rec.steps, []int{0, 10})
}

func Test_main02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("main02. cancellation")

	// cancelled before start
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var rec recorder
	o, err := NewMain(newSim(tst, 10, 1), "main02", nil, &rec)
	if err != nil {
		tst.Errorf("NewMain failed:\n%v", err)
		return
	}
	err = o.Run(ctx)
	io.Pforan("err = %v\n", err)
	if !errors.Is(err, context.Canceled) {
		tst.Errorf("context.Canceled should have been returned. err = %v", err)
	}
	chk.Ints(tst, "output steps", rec.steps, []int{0})

	// cancelled during run
	ctx, cancel = context.WithCancel(context.Background())
	defer cancel()
	rec = recorder{hook: func(s *Snapshot) error {
		if s.Step == 4 {
			cancel()
		}
		return nil
	}}
	o, err = NewMain(newSim(tst, 10, 2), "main02", nil, &rec)
	if err != nil {
		tst.Errorf("NewMain failed:\n%v", err)
		return
	}
	err = o.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		tst.Errorf("context.Canceled should have been returned. err = %v", err)
	}
	chk.Ints(tst, "output steps", rec.steps, []int{0, 2, 4})
	chk.Float64(tst, "time", 1e-15, o.Solver.Time(), 0.004)

	// hook failure stops the run
	rec = recorder{hook: func(s *Snapshot) error {
		if s.Step == 2 {
			return chk.Err("disk is full")
		}
		return nil
	}}
	o, _ = NewMain(newSim(tst, 10, 1), "main02", nil, &rec)
	if err = o.Run(context.Background()); err == nil {
		tst.Errorf("Run should have failed")
	}
	chk.Ints(tst, "output steps", rec.steps, []int{0, 1, 2})
}

func Test_main03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("main03. invalid input")

	// malformed mesh
	sim := newSim(tst, 1, 0)
	sim.Mesh.Conn[1] = []int{1, 2, 5, 7}
	_, err := NewMain(sim, "main03", nil)
	io.Pforan("err = %v\n", err)
	if !errors.Is(err, ErrMalformedMesh) {
		tst.Errorf("ErrMalformedMesh should have been returned. err = %v", err)
	}

	// inverted cell
	sim = newSim(tst, 1, 0)
	sim.Mesh.Conn[0] = []int{0, 3, 4, 1}
	_, err = NewMain(sim, "main03", nil)
	if !errors.Is(err, ErrMalformedMesh) {
		tst.Errorf("ErrMalformedMesh should have been returned. err = %v", err)
	}

	// particle outside grid
	sim = newSim(tst, 1, 0)
	sim.Particles[0].Xp[3] = []float64{0.5, 1.5}
	_, err = NewMain(sim, "main03", nil)
	if !errors.Is(err, ErrOutOfDomain) {
		tst.Errorf("ErrOutOfDomain should have been returned. err = %v", err)
	}

	// invalid keys
	sim = newSim(tst, 1, 0)
	sim.NodeBcs[0].Keys[0] = "fx"
	if _, err = NewMain(sim, "main03", nil); err == nil {
		tst.Errorf("NewMain should have failed with invalid node bc key")
	}
	sim = newSim(tst, 1, 0)
	sim.PtLoads[0].Keys[0] = "vz"
	if _, err = NewMain(sim, "main03", nil); err == nil {
		tst.Errorf("NewMain should have failed with invalid point load key")
	}

	// unknown solver
	sim = newSim(tst, 1, 0)
	sim.Solver.Type = "imp"
	if _, err = NewMain(sim, "main03", nil); err == nil {
		tst.Errorf("NewMain should have failed with unknown solver")
	}
}

func Test_main04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("main04. reading .sim file")

	sim, err := inp.ReadSim("../inp/data/twohex.sim", "", false)
	if err != nil {
		tst.Errorf("ReadSim failed:\n%v", err)
		return
	}
	sim.Solver.DtCheck = true
	var rec recorder
	o, err := NewMain(sim, "main04", inp.NewLogger("main04", chk.Verbose), &rec)
	if err != nil {
		tst.Errorf("NewMain failed:\n%v", err)
		return
	}
	chk.Int(tst, "ndim", o.Dom.Ndim, 3)
	chk.Int(tst, "nworkers", o.Dom.Nworkers(), 2)
	chk.Int(tst, "nconstraints", o.Dom.Grid.Nconstraints(), 16)
	chk.Int(tst, "npointloads", o.Dom.Loads.NpointLoads(), 2)
	for _, nid := range []int{0, 3, 4, 7} {
		for dim := 0; dim < 3; dim++ {
			if !o.Dom.Grid.IsConstrained(nid, dim) {
				tst.Errorf("node %d should be constrained along %d", nid, dim)
			}
		}
	}
	for _, nid := range []int{8, 9, 10, 11} {
		if !o.Dom.Grid.IsConstrained(nid, 0) || o.Dom.Grid.IsConstrained(nid, 1) {
			tst.Errorf("node %d should be constrained along x only", nid)
		}
	}
	chk.Float64(tst, "vol", 1e-15, o.Dom.Parts.P[0].Vol, 1)
	chk.Float64(tst, "σxx", 1e-15, o.Dom.Parts.P[0].State.Sig[0][0], -1)
	chk.Float64(tst, "Alpha", 1e-15, o.Dom.Alpha, 1)

	err = o.Run(context.Background())
	if err != nil {
		tst.Errorf("Run failed:\n%v", err)
		return
	}
	chk.Int(tst, "number of outputs", len(rec.steps), 11)
	chk.Float64(tst, "time", 1e-13, o.Solver.Time(), 0.1)
	chk.Float64(tst, "vx @ node 8", 1e-15, o.Dom.Grid.Vel[8*3], 0.1*0.1)
}
