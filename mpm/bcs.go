// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpm

import (
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// constraint holds a prescribed velocity component of a node
type constraint struct {
	Nid int   // node id
	Dim int   // component
	Fcn dbf.T // prescribed velocity function; zero => fixed
}

// SetConstraint prescribes the velocity component dim of node nid. A previous constraint on the
// same component is replaced. fcn == nil means fixed (zero velocity)
func (o *Grid) SetConstraint(nid, dim int, fcn dbf.T) (err error) {
	if nid < 0 || nid >= len(o.Nodes) {
		return chk.Err("cannot set constraint: node %d does not exist", nid)
	}
	if dim < 0 || dim >= o.Ndim {
		return chk.Err("cannot set constraint @ node %d: dim = %d is invalid", nid, dim)
	}
	if fcn == nil {
		fcn = &dbf.Cte{C: 0}
	}
	key := nid*o.Ndim + dim
	if c, ok := o.cidx[key]; ok {
		c.Fcn = fcn
		return
	}
	c := &constraint{Nid: nid, Dim: dim, Fcn: fcn}
	o.cidx[key] = c
	o.cons = append(o.cons, c)
	sort.Slice(o.cons, func(i, j int) bool {
		return o.cons[i].Nid*o.Ndim+o.cons[i].Dim < o.cons[j].Nid*o.Ndim+o.cons[j].Dim
	})
	return
}

// Nconstraints returns the number of constrained components
func (o *Grid) Nconstraints() int { return len(o.cons) }

// IsConstrained tells whether component dim of node nid is constrained
func (o *Grid) IsConstrained(nid, dim int) bool {
	_, ok := o.cidx[nid*o.Ndim+dim]
	return ok
}

// ApplyBoundaryConditions sets the prescribed velocities at time t. The acceleration of constrained
// components is zero and the momentum is made consistent with the prescribed velocity
func (o *Grid) ApplyBoundaryConditions(t float64) {
	for _, c := range o.cons {
		k := c.Nid*o.Ndim + c.Dim
		v := c.Fcn.F(t, o.Nodes[c.Nid].X)
		o.Vel[k] = v
		o.Acc[k] = 0
		o.Mom[k] = o.Mass[c.Nid] * v
	}
}
