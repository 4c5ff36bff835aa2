// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"sort"

	"github.com/cpmech/gompm/inp"
	"github.com/cpmech/gompm/mpm"
	"github.com/cpmech/gosl/chk"
)

// Results holds saved snapshots and groups of particles
type Results struct {
	Sum    *Summary         // summary of run
	States []*mpm.Snapshot  // [nout] snapshots
	Groups map[string][]int // maps aliases to particle ids
}

// LoadResults reads the summary and all state files of a simulation
func LoadResults(dirout, key string) (o *Results, err error) {
	o = &Results{Groups: make(map[string][]int)}
	o.Sum, err = ReadSum(dirout, key)
	if err != nil {
		return nil, err
	}
	o.States = make([]*mpm.Snapshot, len(o.Sum.Files))
	for i, fn := range o.Sum.Files {
		o.States[i], err = ReadState(dirout, fn, o.Sum.EncType)
		if err != nil {
			return nil, err
		}
	}
	if len(o.States) == 0 {
		return nil, chk.Err("there are no results for %q in %q", key, dirout)
	}
	return
}

// Define defines a group of particles located inside box at the first output step
//  Note: a box selecting one particle defines a single point; i.e. GetRes returns a time series
func (o *Results) Define(alias string, box *inp.Box) (err error) {
	if len(alias) < 1 {
		return chk.Err("alias must have at least one character. %q is invalid", alias)
	}
	var pids []int
	for pid, x := range o.States[0].X {
		if box.Contains(x) {
			pids = append(pids, pid)
		}
	}
	if len(pids) < 1 {
		return chk.Err("cannot define group %q: box %q does not contain particles", alias, box.Name)
	}
	o.Groups[alias] = pids
	return
}

// Times returns the output times
func (o *Results) Times() []float64 {
	return o.Sum.Times
}

// GetRes returns results as a time series for a single particle or as a series over all particles
// of a group at output index idx (use -1 for the last one)
//  key -- "x", "y", "z", "vx", "vy", "vz", "m", "vol", "sxx", "sxy", ..., "exx", "exy", ...
func (o *Results) GetRes(key, alias string, idx int) (res []float64, err error) {
	pids, ok := o.Groups[alias]
	if !ok {
		return nil, chk.Err("cannot find group %q", alias)
	}
	if len(pids) == 1 {
		res = make([]float64, len(o.States))
		for i, s := range o.States {
			res[i], err = value(s, key, pids[0])
			if err != nil {
				return nil, err
			}
		}
		return
	}
	if idx < 0 {
		idx = len(o.States) - 1
	}
	if idx >= len(o.States) {
		return nil, chk.Err("output index %d is out of range", idx)
	}
	res = make([]float64, len(pids))
	for i, pid := range pids {
		res[i], err = value(o.States[idx], key, pid)
		if err != nil {
			return nil, err
		}
	}
	return
}

// Aliases returns the sorted names of groups
func (o *Results) Aliases() (names []string) {
	for name := range o.Groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

// value returns the value corresponding to key of particle pid
func value(s *mpm.Snapshot, key string, pid int) (float64, error) {
	switch key {
	case "m":
		return s.M[pid], nil
	case "vol":
		return s.Vol[pid], nil
	}
	comp := func(c byte) int {
		i := int(c) - int('x')
		if i < 0 || i >= s.Ndim {
			return -1
		}
		return i
	}
	switch {
	case len(key) == 1:
		if i := comp(key[0]); i >= 0 {
			return s.X[pid][i], nil
		}
	case len(key) == 2 && key[0] == 'v':
		if i := comp(key[1]); i >= 0 {
			return s.V[pid][i], nil
		}
	case len(key) == 3 && (key[0] == 's' || key[0] == 'e'):
		i, j := comp(key[1]), comp(key[2])
		if i >= 0 && j >= 0 {
			if key[0] == 'e' {
				return s.Eps[pid][i*s.Ndim+j], nil
			}
			return s.Sig[pid][i*s.Ndim+j], nil
		}
	}
	return 0, chk.Err("key %q is invalid in %dD", key, s.Ndim)
}
