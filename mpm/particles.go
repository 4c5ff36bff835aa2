// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpm

import (
	"fmt"
	"math"

	"github.com/cpmech/gompm/msolid"
	"github.com/cpmech/gompm/shp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
	"gonum.org/v1/gonum/mat"
)

// Particle holds material point data
type Particle struct {
	Id    int           // id == index in Particles.P
	Mid   int           // material id
	Cid   int           // id of cell containing this particle; -1 if not located yet
	X     []float64     // [ndim] position
	V     []float64     // [ndim] velocity
	R     []float64     // [ndim] natural coordinates inside cell Cid
	M     float64       // mass (constant)
	Vol   float64       // current volume
	Vol0  float64       // initial volume
	Fext  []float64     // [ndim] external point force
	L     [][]float64   // [ndim][ndim] velocity gradient
	F     [][]float64   // [ndim][ndim] deformation gradient
	DEps  [][]float64   // [ndim][ndim] strain increment of current step
	State *msolid.State // stress, strain, strain rate and internal variables
}

// Particles holds all particles (particle store)
type Particles struct {
	Ndim   int            // space dimension
	P      []*Particle    // all particles
	Models []msolid.Model // material id => model
}

// NewParticles returns a new particle store
func NewParticles(ndim int, models []msolid.Model) *Particles {
	return &Particles{Ndim: ndim, Models: models}
}

// Add adds a new particle with mass = rho * vol and initial stress σ
func (o *Particles) Add(x, v []float64, mid int, vol float64, σ [][]float64) (p *Particle, err error) {
	nd := o.Ndim
	if len(x) != nd || len(v) != nd {
		return nil, chk.Err("particle position and velocity must have %d components", nd)
	}
	if mid < 0 || mid >= len(o.Models) {
		return nil, chk.Err("material id %d is invalid", mid)
	}
	if vol <= 0 {
		return nil, fmt.Errorf("%w: cannot add particle with vol=%g", ErrNonPositiveVolume, vol)
	}
	p = &Particle{Id: len(o.P), Mid: mid, Cid: -1}
	p.X = append([]float64{}, x...)
	p.V = append([]float64{}, v...)
	p.R = make([]float64, nd)
	p.Fext = make([]float64, nd)
	p.Vol, p.Vol0 = vol, vol
	p.M = o.Models[mid].GetRho() * vol
	p.L = utl.Alloc(nd, nd)
	p.F = utl.Alloc(nd, nd)
	p.DEps = utl.Alloc(nd, nd)
	for i := 0; i < nd; i++ {
		p.F[i][i] = 1
	}
	if σ == nil {
		σ = utl.Alloc(nd, nd)
	}
	p.State, err = o.Models[mid].InitIntVars(σ)
	if err != nil {
		return nil, chk.Err("cannot initialise state of particle %d:\n%v", p.Id, err)
	}
	o.P = append(o.P, p)
	return
}

// Workspace holds scratch data for one goroutine
type Workspace struct {
	Id  int        // worker id
	Shp *shp.Shape // copy of grid's shape structure
	dF  *mat.Dense // ΔF
	Fo  *mat.Dense // old F
	Fn  *mat.Dense // new F
}

// NewWorkspace returns the workspace of worker id
func NewWorkspace(id int, geo string, ndim int) *Workspace {
	return &Workspace{
		Id:  id,
		Shp: shp.Get(geo, id+1),
		dF:  mat.NewDense(ndim, ndim, nil),
		Fo:  mat.NewDense(ndim, ndim, nil),
		Fn:  mat.NewDense(ndim, ndim, nil),
	}
}

// Locate finds the cell containing particle pid and its natural coordinates
func (o *Particles) Locate(pid int, g *Grid, ws *Workspace) error {
	p := o.P[pid]
	cid := g.LocateCell(p.R, p.X, ws.Shp)
	if cid < 0 {
		return fmt.Errorf("%w: particle %d @ x=%v", ErrOutOfDomain, pid, p.X)
	}
	p.Cid = cid
	return nil
}

// ComputeVolumeStrain updates the volume, deformation gradient and strains of particle pid using
// the current velocity gradient:
//   ΔF = I + L⋅Δt,  V = det(ΔF)⋅V,  F = ΔF⋅F,  Δε = sym(L)⋅Δt,  dε/dt = sym(L)
func (o *Particles) ComputeVolumeStrain(pid int, Δt float64, ws *Workspace) error {
	p := o.P[pid]
	nd := o.Ndim
	for i := 0; i < nd; i++ {
		for j := 0; j < nd; j++ {
			v := p.L[i][j] * Δt
			if i == j {
				v += 1
			}
			ws.dF.Set(i, j, v)
			ws.Fo.Set(i, j, p.F[i][j])
		}
	}
	vol := p.Vol * mat.Det(ws.dF)
	if math.IsNaN(vol) || math.IsInf(vol, 0) {
		return fmt.Errorf("%w: volume of particle %d is %g", ErrNumericalInstability, pid, vol)
	}
	if vol <= 0 {
		return fmt.Errorf("%w: volume of particle %d would become %g", ErrNonPositiveVolume, pid, vol)
	}
	p.Vol = vol
	ws.Fn.Mul(ws.dF, ws.Fo)
	for i := 0; i < nd; i++ {
		for j := 0; j < nd; j++ {
			d := 0.5 * (p.L[i][j] + p.L[j][i])
			p.F[i][j] = ws.Fn.At(i, j)
			p.DEps[i][j] = d * Δt
			p.State.Eps[i][j] += d * Δt
			p.State.Rate[i][j] = d
		}
	}
	return nil
}

// UpdateStress updates the stress of particle pid using its material model
func (o *Particles) UpdateStress(pid int, Δt float64) error {
	p := o.P[pid]
	err := o.Models[p.Mid].Update(p.State, p.DEps, p.State.Rate, Δt)
	if err != nil {
		return fmt.Errorf("%w: stress update of particle %d failed: %v", ErrNumericalInstability, pid, err)
	}
	if !msolid.IsFinite(p.State.Sig) {
		return fmt.Errorf("%w: stress of particle %d is not finite", ErrNumericalInstability, pid)
	}
	return nil
}

// UpdatePositionVelocity updates the position and velocity of particle pid using nodal velocities
// and accelerations interpolated with weights w:
//   v = (1-α)⋅vPIC + α⋅vFLIP,  vPIC = Σ S⋅vel,  vFLIP = v + Δt⋅Σ S⋅acc,  x = x + Δt⋅Σ S⋅vel
// The velocity gradient L is also computed; see VelocityGradient
func (o *Particles) UpdatePositionVelocity(pid int, Δt, α float64, w *Weights, vel, acc, mass []float64, mzero float64) error {
	p := o.P[pid]
	nd := o.Ndim
	var vpic, anod [3]float64
	for m, n := range w.Nodes {
		for i := 0; i < nd; i++ {
			vpic[i] += w.S[m] * vel[n*nd+i]
			anod[i] += w.S[m] * acc[n*nd+i]
		}
	}
	for i := 0; i < nd; i++ {
		vflip := p.V[i] + Δt*anod[i]
		p.V[i] = (1.0-α)*vpic[i] + α*vflip
		p.X[i] += Δt * vpic[i]
		if math.IsNaN(p.X[i]) || math.IsInf(p.X[i], 0) || math.IsNaN(p.V[i]) || math.IsInf(p.V[i], 0) {
			return fmt.Errorf("%w: position or velocity of particle %d is not finite", ErrNumericalInstability, pid)
		}
	}
	o.VelocityGradient(pid, w, vel, mass, mzero)
	return nil
}

// VelocityGradient computes the velocity gradient of particle pid:
//   L_ij = Σ (vel_i - v̄_i) ⋅ G_j  with  v̄ = Σ S⋅vel
// Nodes with mass <= mzero are skipped. Their velocities are zero but their gradients are not
// when the particle lies on a face of its cell, so they would show a rigid motion as a strain
func (o *Particles) VelocityGradient(pid int, w *Weights, vel, mass []float64, mzero float64) {
	p := o.P[pid]
	nd := o.Ndim
	var vbar [3]float64
	for m, n := range w.Nodes {
		for i := 0; i < nd; i++ {
			vbar[i] += w.S[m] * vel[n*nd+i]
		}
	}
	for i := 0; i < nd; i++ {
		for j := 0; j < nd; j++ {
			p.L[i][j] = 0
		}
	}
	for m, n := range w.Nodes {
		if mass[n] <= mzero {
			continue
		}
		for i := 0; i < nd; i++ {
			δv := vel[n*nd+i] - vbar[i]
			for j := 0; j < nd; j++ {
				p.L[i][j] += δv * w.G[m][j]
			}
		}
	}
}

// TotalMass returns the sum of particle masses
func (o *Particles) TotalMass() (mass float64) {
	for _, p := range o.P {
		mass += p.M
	}
	return
}

// TotalMomentum returns the sum of particle momenta
func (o *Particles) TotalMomentum() (mom []float64) {
	mom = make([]float64, o.Ndim)
	for _, p := range o.P {
		for i := 0; i < o.Ndim; i++ {
			mom[i] += p.M * p.V[i]
		}
	}
	return
}

// MaxMass returns the largest particle mass
func (o *Particles) MaxMass() (mmax float64) {
	for _, p := range o.P {
		mmax = utl.Max(mmax, p.M)
	}
	return
}
