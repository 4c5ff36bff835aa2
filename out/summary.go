// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/cpmech/gompm/inp"
	"github.com/cpmech/gompm/mpm"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// Summary records the steps, times and files of all outputs
type Summary struct {

	// main data
	RunId    string    `json:"runid"`    // unique id of run
	Key      string    `json:"key"`      // simulation key
	Dirout   string    `json:"dirout"`   // directory where results are stored
	EncType  string    `json:"enctype"`  // encoder of state files
	Compress bool      `json:"compress"` // state files are compressed
	Vtu      bool      `json:"vtu"`      // VTU files have been written
	Steps    []int     `json:"steps"`    // [nout] output steps
	Times    []float64 `json:"times"`    // [nout] output times
	Files    []string  `json:"files"`    // [nout] state files
	Error    string    `json:"error"`    // error message if the run failed
}

// NewSummary returns a summary configured by simulation data
func NewSummary(sim *inp.Simulation, runId string) *Summary {
	return &Summary{
		RunId:    runId,
		Key:      sim.Key,
		Dirout:   sim.DirOut,
		EncType:  sim.EncType,
		Compress: sim.Data.Compress,
		Vtu:      sim.Data.Vtu,
	}
}

// WriteSnapshot records the output of s
func (o *Summary) WriteSnapshot(s *mpm.Snapshot) error {
	o.Steps = append(o.Steps, s.Step)
	o.Times = append(o.Times, s.Time)
	o.Files = append(o.Files, StateFile(o.Key, o.EncType, s.Step, o.Compress))
	return nil
}

// Save saves the summary to <key>_sum.json and, if VTU files were written, the <key>.pvd collection
func (o *Summary) Save(runErr error, verbose bool) (err error) {
	if runErr != nil {
		o.Error = runErr.Error()
	}
	var buf bytes.Buffer
	enc := utl.NewEncoder(&buf, "json")
	err = enc.Encode(o)
	if err != nil {
		return chk.Err("cannot encode summary:\n%v", err)
	}
	err = save_file(o.Dirout, o.Key+"_sum.json", verbose, &buf)
	if err != nil || !o.Vtu {
		return
	}
	return o.savePvd(verbose)
}

// ReadSum reads a summary saved by Save
func ReadSum(dirout, key string) (o *Summary, err error) {
	fil, err := os.Open(filepath.Join(dirout, key+"_sum.json"))
	if err != nil {
		return nil, chk.Err("cannot open summary file:\n%v", err)
	}
	defer fil.Close()
	o = new(Summary)
	dec := utl.NewDecoder(fil, "json")
	err = dec.Decode(o)
	if err != nil {
		return nil, chk.Err("cannot decode summary:\n%v", err)
	}
	return
}

// savePvd writes the ParaView collection with the particles' VTU files
func (o *Summary) savePvd(verbose bool) error {
	var buf bytes.Buffer
	io.Ff(&buf, "<?xml version=\"1.0\"?>\n<VTKFile type=\"Collection\" version=\"0.1\" byte_order=\"LittleEndian\">\n<Collection>\n")
	for i, step := range o.Steps {
		io.Ff(&buf, "<DataSet timestep=\"%23.15e\" file=\"%s\" />\n", o.Times[i], VtuFile(o.Key, step))
	}
	io.Ff(&buf, "</Collection>\n</VTKFile>\n")
	return save_file(o.Dirout, o.Key+".pvd", verbose, &buf)
}
