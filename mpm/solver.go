// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpm

import (
	"sort"

	"github.com/cpmech/gosl/chk"
)

// Phase indicates the stage of a time step
type Phase int

// phases of a time step
const (
	Idle Phase = iota
	LocateParticles
	MapToGrid
	ComputeNodalForces
	IntegrateMomentum
	ApplyBoundaryConditions
	MapToParticles
	UpdateParticleState
	Terminal
)

var phaseNames = []string{
	"Idle",
	"LocateParticles",
	"MapToGrid",
	"ComputeNodalForces",
	"IntegrateMomentum",
	"ApplyBoundaryConditions",
	"MapToParticles",
	"UpdateParticleState",
	"Terminal",
}

// String returns the name of phase
func (o Phase) String() string {
	if o < 0 || int(o) >= len(phaseNames) {
		return "Unknown"
	}
	return phaseNames[o]
}

// Solver implements the time stepping
type Solver interface {
	Step() error   // advances one time step
	Phase() Phase  // current phase; Terminal after the last step or after an error
	Time() float64 // current time
}

// solverallocators holds all available solvers
var solverallocators = make(map[string]func(d *Domain) Solver)

// NewSolver returns a new solver by name; e.g. "exp"
func NewSolver(name string, d *Domain) (Solver, error) {
	alloc, ok := solverallocators[name]
	if !ok {
		return nil, chk.Err("cannot find solver type named %q. options: %v", name, SolverNames())
	}
	return alloc(d), nil
}

// SolverNames returns the names of all available solvers
func SolverNames() (names []string) {
	for name := range solverallocators {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}
