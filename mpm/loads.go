// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpm

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// pointLoad holds a force component applied to one particle
type pointLoad struct {
	Pid int   // particle id
	Dim int   // component
	Fcn dbf.T // force function
}

// Loads holds body and point loads
type Loads struct {
	Gravity []float64 // [ndim] gravity acceleration
	GravFcn dbf.T     // multiplier of gravity; nil => 1
	points  []*pointLoad
}

// NewLoads returns loads with zero gravity
func NewLoads(ndim int) *Loads {
	return &Loads{Gravity: make([]float64, ndim)}
}

// AddPointLoad adds a force component to particle pid
func (o *Loads) AddPointLoad(pid, dim int, fcn dbf.T) (err error) {
	if dim < 0 || dim >= len(o.Gravity) {
		return chk.Err("cannot add point load to particle %d: dim = %d is invalid", pid, dim)
	}
	if fcn == nil {
		return chk.Err("cannot add point load to particle %d: function is nil", pid)
	}
	o.points = append(o.points, &pointLoad{Pid: pid, Dim: dim, Fcn: fcn})
	return
}

// NpointLoads returns the number of point loads
func (o *Loads) NpointLoads() int { return len(o.points) }

// GravityAt computes the gravity acceleration g at time t
func (o *Loads) GravityAt(g []float64, t float64) {
	mult := 1.0
	if o.GravFcn != nil {
		mult = o.GravFcn.F(t, nil)
	}
	for i := range o.Gravity {
		g[i] = o.Gravity[i] * mult
	}
}

// Apply sets the external point forces of particles at time t
func (o *Loads) Apply(parts *Particles, t float64) {
	for _, p := range parts.P {
		for i := range p.Fext {
			p.Fext[i] = 0
		}
	}
	for _, pl := range o.points {
		p := parts.P[pl.Pid]
		p.Fext[pl.Dim] += pl.Fcn.F(t, p.X)
	}
}
