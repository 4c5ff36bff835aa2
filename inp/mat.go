// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cpmech/gompm/msolid"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Material holds material data
type Material struct {

	// input
	Name  string     `json:"name"`  // name of material
	Model string     `json:"model"` // name of model; e.g. "lin-elast", "vm", "newtonian"
	Extra string     `json:"extra"` // extra information about this material
	Prms  dbf.Params `json:"prms"`  // prms holds all model parameters for this material

	// derived
	Id    int          // index in database; i.e. material id of particles
	Solid msolid.Model // pointer to actual solid model
}

// MatDb implements a database of materials
type MatDb struct {
	Materials []*Material `json:"materials"` // all materials

	// derived
	name2mat map[string]*Material
}

// ReadMat reads all materials data from a .mat JSON file
func ReadMat(dir, fn string, ndim int) (mdb *MatDb, err error) {

	// read file
	b, err := os.ReadFile(filepath.Join(dir, fn))
	if err != nil {
		return nil, chk.Err("cannot read materials file %q:\n%v", fn, err)
	}

	// decode
	mdb = new(MatDb)
	err = json.Unmarshal(b, mdb)
	if err != nil {
		return nil, chk.Err("cannot unmarshal materials file %q:\n%v", fn, err)
	}
	err = mdb.Init(ndim)
	return
}

// Init allocates and initialises all models
func (o *MatDb) Init(ndim int) (err error) {
	o.name2mat = make(map[string]*Material)
	for i, m := range o.Materials {
		if _, ok := o.name2mat[m.Name]; ok {
			return chk.Err("material named %q is duplicated", m.Name)
		}
		m.Id = i
		m.Solid, err = msolid.New(m.Model)
		if err != nil {
			return
		}
		err = m.Solid.Init(ndim, m.Prms)
		if err != nil {
			return chk.Err("cannot initialise material %q:\n%v", m.Name, err)
		}
		o.name2mat[m.Name] = m
	}
	return
}

// Get returns a material
//  Note: returns nil if not found
func (o MatDb) Get(name string) *Material {
	return o.name2mat[name]
}

// Models returns the solid models ordered by material id
func (o MatDb) Models() (models []msolid.Model) {
	models = make([]msolid.Model, len(o.Materials))
	for i, m := range o.Materials {
		models[i] = m.Solid
	}
	return
}
