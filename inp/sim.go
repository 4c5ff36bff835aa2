// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from a (.sim) JSON file
package inp

import (
	"encoding/json"
	goio "io"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

// Data holds global data for simulations
type Data struct {

	// global information
	Desc     string `json:"desc"`     // description of simulation
	Matfile  string `json:"matfile"`  // materials file path
	Meshfile string `json:"meshfile"` // ASCII mesh file path
	Boxfile  string `json:"boxfile"`  // boxes (.ini) file path
	DirOut   string `json:"dirout"`   // directory for output; e.g. /tmp/gompm
	Encoder  string `json:"encoder"`  // encoder name; e.g. "gob" "json"

	// output options
	Compress bool `json:"compress"` // compress state files with zstd
	Vtu      bool `json:"vtu"`      // write VTU files for ParaView
	LogFile  bool `json:"logfile"`  // write log file in DirOut
}

// SolverData holds MPM solver data
type SolverData struct {
	Type      string  `json:"type"`      // solver type: "exp" => explicit
	Scheme    string  `json:"scheme"`    // velocity update scheme: "pic", "flip" or "blend"
	Alpha     float64 `json:"alpha"`     // FLIP fraction for "blend": v = (1-α)⋅vPIC + α⋅vFLIP
	StressUpd string  `json:"stressupd"` // stress update ordering: "usl", "usf" or "musl"
	Nworkers  int     `json:"nworkers"`  // number of goroutines; 0 => number of CPUs
	DtCheck   bool    `json:"dtcheck"`   // check critical time step
	Cfl       float64 `json:"cfl"`       // Courant number for critical time step
	Mtol      float64 `json:"mtol"`      // zero-mass tolerance relative to the largest particle mass
}

// TimeControl holds data for defining the simulation time stepping
type TimeControl struct {
	Dt     float64 `json:"dt"`     // time step size
	Nsteps int     `json:"nsteps"` // number of steps
	Nout   int     `json:"nout"`   // output every nout steps; 0 => only first and last
}

// ParticleSet holds data for generating particles
type ParticleSet struct {

	// input
	File string      `json:"file"` // file with one coordinate row per particle
	Xp   [][]float64 `json:"xp"`   // coordinates given directly (used if File is empty)
	Mat  string      `json:"mat"`  // material name
	V0   []float64   `json:"v0"`   // initial velocity
	Vol  float64     `json:"vol"`  // volume of each particle; 0 => cell volume / number of particles in cell
	S0   float64     `json:"s0"`   // initial isotropic stress; σ = s0⋅I

	// derived
	Mid int // material id
}

// NodeBc holds node boundary condition
type NodeBc struct {
	Box   string   `json:"box"`   // name of box selecting nodes
	Keys  []string `json:"keys"`  // key indicating type of bcs: vx, vy, vz or fix (all components zero)
	Funcs []string `json:"funcs"` // name of function. ex: zero, vel, myfunction1, etc.
}

// PtLoad holds point loads applied to each particle inside a box
type PtLoad struct {
	Box   string   `json:"box"`   // name of box selecting particles
	Keys  []string `json:"keys"`  // components: fx, fy, fz
	Funcs []string `json:"funcs"` // name of function
}

// Simulation holds all simulation data
type Simulation struct {

	// input
	Data      Data           `json:"data"`      // stores global simulation data
	Functions FuncsData      `json:"functions"` // stores all boundary condition functions
	Solver    SolverData     `json:"solver"`    // MPM solver data
	Control   TimeControl    `json:"control"`   // time control
	Gravity   []float64      `json:"gravity"`   // gravity acceleration vector; e.g. [0, -10]
	GravFcn   string         `json:"gravfcn"`   // multiplier of gravity; empty => 1
	Particles []*ParticleSet `json:"particles"` // particle sets
	NodeBcs   []*NodeBc      `json:"nodebcs"`   // node boundary conditions
	PtLoads   []*PtLoad      `json:"ptloads"`   // point loads on particles

	// derived
	Dir       string // directory of .sim file
	DirOut    string // directory to save results
	Key       string // simulation key; e.g. mysim01.sim => mysim01 or mysim01-alias
	EncType   string // encoder type
	Mesh      *Mesh  // background grid
	MatParams *MatDb // materials' parameters
	Boxes     Boxes  // named boxes
	Ndim      int    // space dimension
	GravFunc  dbf.T  // gravity multiplier function
}

// ReadSim reads all simulation data from a .sim JSON file
func ReadSim(simfilepath, alias string, erasefiles bool) (o *Simulation, err error) {

	// new sim
	o = new(Simulation)

	// read file
	b, err := os.ReadFile(simfilepath)
	if err != nil {
		return nil, chk.Err("cannot read simulation file %q:\n%v", simfilepath, err)
	}

	// set default values
	o.Solver.SetDefault()

	// decode
	err = json.Unmarshal(b, o)
	if err != nil {
		return nil, chk.Err("cannot unmarshal simulation file %q:\n%v", simfilepath, err)
	}

	// input directory and filename key
	o.Dir = os.ExpandEnv(filepath.Dir(simfilepath))
	fnkey := io.FnKey(filepath.Base(simfilepath))
	o.Key = fnkey
	if alias != "" {
		o.Key += "-" + alias
	}

	// output directory
	o.DirOut = o.Data.DirOut
	if o.DirOut == "" {
		o.DirOut = "/tmp/gompm/" + fnkey
	}

	// create directory and erase previous simulation results
	if erasefiles {
		err = os.MkdirAll(o.DirOut, 0777)
		if err != nil {
			return nil, chk.Err("cannot create directory for output results (%s): %v", o.DirOut, err)
		}
		io.RemoveAll(io.Sf("%s/%s*", o.DirOut, o.Key))
	}

	// read mesh
	o.Mesh, err = ReadMesh(o.Dir, o.Data.Meshfile)
	if err != nil {
		return nil, err
	}

	// read materials database
	o.MatParams, err = ReadMat(o.Dir, o.Data.Matfile, o.Mesh.Ndim)
	if err != nil {
		return nil, err
	}

	// read boxes
	if o.Data.Boxfile != "" {
		o.Boxes, err = ReadBoxes(o.Dir, o.Data.Boxfile)
		if err != nil {
			return nil, err
		}
	}

	// read particles
	for _, ps := range o.Particles {
		if ps.File != "" {
			ps.Xp, err = ReadParticles(o.Dir, ps.File, o.Mesh.Ndim)
			if err != nil {
				return nil, err
			}
		}
	}

	// derived data
	err = o.PostProcess()
	return
}

// PostProcess checks the data and sets derived variables. Mesh and MatParams must be set already
func (o *Simulation) PostProcess() (err error) {

	// mesh and materials
	if o.Mesh == nil {
		return chk.Err("mesh is missing")
	}
	if o.MatParams == nil {
		return chk.Err("materials database is missing")
	}
	o.Ndim = o.Mesh.Ndim

	// encoder type
	o.EncType = o.Data.Encoder
	if o.EncType != "gob" && o.EncType != "json" {
		o.EncType = "gob"
	}

	// solver and time control
	err = o.Solver.PostProcess()
	if err != nil {
		return
	}
	if o.Control.Dt <= 0 {
		return chk.Err("time step size must be positive. dt = %g is invalid", o.Control.Dt)
	}
	if o.Control.Nsteps < 0 {
		return chk.Err("number of steps must be non-negative. nsteps = %d is invalid", o.Control.Nsteps)
	}
	if o.Control.Nout < 0 {
		o.Control.Nout = 0
	}

	// gravity
	if len(o.Gravity) == 0 {
		o.Gravity = make([]float64, o.Ndim)
	}
	if len(o.Gravity) != o.Ndim {
		return chk.Err("gravity vector must have %d components. %v is invalid", o.Ndim, o.Gravity)
	}
	o.GravFunc = &dbf.Cte{C: 1}
	if o.GravFcn != "" {
		o.GravFunc, err = o.Functions.Get(o.GravFcn)
		if err != nil {
			return
		}
	}

	// particle sets
	if len(o.Particles) == 0 {
		return chk.Err("there are no particle sets")
	}
	for i, ps := range o.Particles {
		mat := o.MatParams.Get(ps.Mat)
		if mat == nil {
			return chk.Err("particle set %d: cannot find material named %q", i, ps.Mat)
		}
		ps.Mid = mat.Id
		if len(ps.Xp) == 0 {
			return chk.Err("particle set %d has no particles", i)
		}
		if len(ps.V0) == 0 {
			ps.V0 = make([]float64, o.Ndim)
		}
		if len(ps.V0) != o.Ndim {
			return chk.Err("particle set %d: initial velocity must have %d components", i, o.Ndim)
		}
		if ps.Vol < 0 {
			return chk.Err("particle set %d: volume must be non-negative. vol = %g is invalid", i, ps.Vol)
		}
	}

	// boxes referenced by conditions
	for _, bc := range o.NodeBcs {
		if _, err = o.Boxes.Get(bc.Box); err != nil {
			return chk.Err("node boundary condition: %v", err)
		}
		if len(bc.Keys) != len(bc.Funcs) {
			return chk.Err("node boundary condition @ %q: number of keys and functions must be equal", bc.Box)
		}
	}
	for _, pl := range o.PtLoads {
		if _, err = o.Boxes.Get(pl.Box); err != nil {
			return chk.Err("point load: %v", err)
		}
		if len(pl.Keys) != len(pl.Funcs) {
			return chk.Err("point load @ %q: number of keys and functions must be equal", pl.Box)
		}
	}
	return
}

// GetInfo returns formatted information
func (o *Simulation) GetInfo(w goio.Writer) (err error) {
	b, err := json.MarshalIndent(o, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return
}

// KeyToDim converts keys such as "vx" or "fz" to the corresponding dimension index
//  Note: returns -1 if key is invalid
func KeyToDim(key string, ndim int) int {
	if len(key) != 2 {
		return -1
	}
	d := int(key[1]) - int('x')
	if d < 0 || d >= ndim {
		return -1
	}
	return d
}

// extra settings //////////////////////////////////////////////////////////////////////////////////

// SetDefault set defaults values
func (o *SolverData) SetDefault() {
	o.Type = "exp"
	o.Scheme = "blend"
	o.Alpha = 0.95
	o.StressUpd = "usl"
	o.Cfl = 0.5
	o.Mtol = 1e-12
}

// PostProcess performs a post-processing of the just read json file
func (o *SolverData) PostProcess() (err error) {
	switch o.Scheme {
	case "pic":
		o.Alpha = 0
	case "flip":
		o.Alpha = 1
	case "blend":
		if o.Alpha < 0 || o.Alpha > 1 {
			return chk.Err("FLIP fraction must be in [0, 1]. alpha = %g is invalid", o.Alpha)
		}
	default:
		return chk.Err("velocity update scheme %q is not available. options: pic, flip, blend", o.Scheme)
	}
	switch o.StressUpd {
	case "usl", "usf", "musl":
	default:
		return chk.Err("stress update ordering %q is not available. options: usl, usf, musl", o.StressUpd)
	}
	if o.Nworkers < 0 {
		o.Nworkers = 0
	}
	if o.Cfl <= 0 {
		o.Cfl = 0.5
	}
	if o.Mtol <= 0 {
		o.Mtol = 1e-12
	}
	return
}
