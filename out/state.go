// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/DataDog/zstd"
	"github.com/cpmech/gompm/inp"
	"github.com/cpmech/gompm/mpm"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// StateWriter saves snapshots to state files using gob or json, optionally compressed with zstd
type StateWriter struct {
	Dirout   string // directory of results
	Key      string // simulation key
	EncType  string // "gob" or "json"
	Compress bool   // compress with zstd
	Verbose  bool   // show messages
}

// NewStateWriter returns a state writer configured by simulation data
func NewStateWriter(sim *inp.Simulation, verbose bool) *StateWriter {
	return &StateWriter{
		Dirout:   sim.DirOut,
		Key:      sim.Key,
		EncType:  sim.EncType,
		Compress: sim.Data.Compress,
		Verbose:  verbose,
	}
}

// WriteSnapshot encodes and saves s
func (o *StateWriter) WriteSnapshot(s *mpm.Snapshot) (err error) {
	var buf bytes.Buffer
	enc := utl.NewEncoder(&buf, o.EncType)
	err = enc.Encode(s)
	if err != nil {
		return chk.Err("cannot encode snapshot @ step %d:\n%v", s.Step, err)
	}
	data := &buf
	if o.Compress {
		var b []byte
		b, err = zstd.CompressLevel(nil, buf.Bytes(), ZSTD_LEVEL)
		if err != nil {
			return chk.Err("cannot compress snapshot @ step %d:\n%v", s.Step, err)
		}
		data = bytes.NewBuffer(b)
	}
	return save_file(o.Dirout, StateFile(o.Key, o.EncType, s.Step, o.Compress), o.Verbose, data)
}

// ReadState reads a snapshot from a state file. Files ending with .zst are decompressed first
func ReadState(dirout, fn, enctype string) (s *mpm.Snapshot, err error) {
	b, err := os.ReadFile(filepath.Join(dirout, fn))
	if err != nil {
		return nil, chk.Err("cannot read state file %q:\n%v", fn, err)
	}
	if strings.HasSuffix(fn, ".zst") {
		b, err = zstd.Decompress(nil, b)
		if err != nil {
			return nil, chk.Err("cannot decompress state file %q:\n%v", fn, err)
		}
	}
	s = new(mpm.Snapshot)
	dec := utl.NewDecoder(bytes.NewReader(b), enctype)
	err = dec.Decode(s)
	if err != nil {
		return nil, chk.Err("cannot decode state file %q:\n%v", fn, err)
	}
	return
}
