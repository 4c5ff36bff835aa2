// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out implements the output of MPM simulations and the post-processing of saved results
package out

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// ZSTD_LEVEL is the compression level of state files
const ZSTD_LEVEL = 3

// StateFile returns the name of the state file of step
func StateFile(key, enctype string, step int, compress bool) string {
	fn := io.Sf("%s_state_%010d.%s", key, step, enctype)
	if compress {
		fn += ".zst"
	}
	return fn
}

// VtuFile returns the name of the particles' VTU file of step
func VtuFile(key string, step int) string {
	return io.Sf("%s_parts_%010d.vtu", key, step)
}

// GridVtuFile returns the name of the grid VTU file
func GridVtuFile(key string) string {
	return key + "_grid.vtu"
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

// save_file writes all buffers to dirout/fn
func save_file(dirout, fn string, verbose bool, bufs ...*bytes.Buffer) (err error) {
	err = os.MkdirAll(dirout, 0777)
	if err != nil {
		return chk.Err("cannot create directory %q:\n%v", dirout, err)
	}
	filename := filepath.Join(dirout, fn)
	fil, err := os.Create(filename)
	if err != nil {
		return
	}
	defer func() {
		if e := fil.Close(); err == nil {
			err = e
		}
	}()
	for _, buf := range bufs {
		if _, err = fil.Write(buf.Bytes()); err != nil {
			return
		}
	}
	if verbose {
		io.Pf("file <%s> written\n", filename)
	}
	return
}
