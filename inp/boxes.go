// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"math"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/cpmech/gosl/chk"
	"gopkg.in/gcfg.v1"
)

// default tolerance for boxes
const BOXTOL = 1e-8

// Box holds an axis-aligned region used to select nodes or particles
type Box struct {
	Name string     // name of box
	Lo   [3]float64 // lower limits; -Inf if unbounded
	Hi   [3]float64 // upper limits; +Inf if unbounded
	Tol  float64    // tolerance
}

// Boxes holds a set of named boxes
type Boxes map[string]*Box

// boxesFile is the gcfg layout of a boxes file
//
//  [box "bottom"]
//  y = -0.01 0.01
//  tol = 1e-9
type boxesFile struct {
	Box map[string]*struct {
		X   string
		Y   string
		Z   string
		Tol float64
	}
}

// ReadBoxes reads boxes from a gcfg (.ini) file
func ReadBoxes(dir, fn string) (o Boxes, err error) {
	var f boxesFile
	fnamepath := filepath.Join(dir, fn)
	err = gcfg.ReadFileInto(&f, fnamepath)
	if err != nil {
		return nil, chk.Err("cannot read boxes file %q:\n%v", fnamepath, err)
	}
	return f.boxes(fnamepath)
}

// ParseBoxes parses boxes given in the gcfg format
func ParseBoxes(str string) (o Boxes, err error) {
	var f boxesFile
	err = gcfg.ReadStringInto(&f, str)
	if err != nil {
		return nil, chk.Err("cannot parse boxes:\n%v", err)
	}
	return f.boxes("<string>")
}

// Get returns a box by name
func (o Boxes) Get(name string) (*Box, error) {
	b, ok := o[name]
	if !ok {
		return nil, chk.Err("cannot find box named %q", name)
	}
	return b, nil
}

// Names returns the sorted names of boxes
func (o Boxes) Names() (names []string) {
	for name := range o {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

// Contains tells whether point x is inside box (tolerance included)
func (o *Box) Contains(x []float64) bool {
	for i := 0; i < len(x) && i < 3; i++ {
		if x[i] < o.Lo[i]-o.Tol || x[i] > o.Hi[i]+o.Tol {
			return false
		}
	}
	return true
}

// boxes converts the file data into Boxes
func (o boxesFile) boxes(fname string) (res Boxes, err error) {
	res = make(map[string]*Box)
	for name, b := range o.Box {
		box := &Box{Name: name, Tol: b.Tol}
		if box.Tol <= 0 {
			box.Tol = BOXTOL
		}
		for i, rng := range []string{b.X, b.Y, b.Z} {
			box.Lo[i], box.Hi[i], err = parseRange(rng)
			if err != nil {
				return nil, chk.Err("%s: box %q: %v", fname, name, err)
			}
		}
		res[name] = box
	}
	return
}

// parseRange parses "lo hi". An empty string gives (-Inf, +Inf)
func parseRange(str string) (lo, hi float64, err error) {
	flds := strings.Fields(str)
	if len(flds) == 0 {
		return math.Inf(-1), math.Inf(+1), nil
	}
	if len(flds) != 2 {
		return 0, 0, chk.Err("range must have two values 'lo hi'. %q is invalid", str)
	}
	if lo, err = strconv.ParseFloat(flds[0], 64); err != nil {
		return 0, 0, chk.Err("cannot parse %q", flds[0])
	}
	if hi, err = strconv.ParseFloat(flds[1], 64); err != nil {
		return 0, 0, chk.Err("cannot parse %q", flds[1])
	}
	if lo > hi {
		return 0, 0, chk.Err("lower limit %g is greater than upper limit %g", lo, hi)
	}
	return
}
