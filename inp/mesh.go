// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// shapeNames maps the elementShape header to the shape type and space dimension
var shapeNames = map[string]struct {
	Geo  string
	Ndim int
}{
	"line":          {"lin2", 1},
	"triangle":      {"tri3", 2},
	"quadrilateral": {"qua4", 2},
	"tetrahedron":   {"tet4", 3},
	"hexahedron":    {"hex8", 3},
}

// geoNverts holds the number of vertices of each shape type
var geoNverts = map[string]int{"lin2": 2, "tri3": 3, "qua4": 4, "tet4": 4, "hex8": 8}

// Mesh holds the background grid read from an ASCII mesh file
//
//  ! elementShape hexahedron
//  ! elementNumPoints 8
//  nnodes ncells
//  x y z              (nnodes lines)
//  n0 n1 ... n7       (ncells lines)
type Mesh struct {
	FnamePath string      // complete filename path
	Geo       string      // shape type of all cells; e.g. "hex8"
	Ndim      int         // space dimension
	Coords    [][]float64 // [nnodes][ndim] coordinates of nodes
	Conn      [][]int     // [ncells][nverts] connectivity
	Xmin      []float64   // [ndim] min coordinates
	Xmax      []float64   // [ndim] max coordinates
}

// ReadMesh reads an ASCII mesh file
func ReadMesh(dir, fn string) (o *Mesh, err error) {
	fnamepath := filepath.Join(dir, fn)
	b, err := os.ReadFile(fnamepath)
	if err != nil {
		return nil, chk.Err("cannot read mesh file %q:\n%v", fnamepath, err)
	}
	return ParseMesh(b, fnamepath)
}

// ParseMesh parses the contents of an ASCII mesh file. fname is only used in error messages
func ParseMesh(b []byte, fname string) (o *Mesh, err error) {

	// new mesh
	o = &Mesh{FnamePath: fname}
	sc := newScanner(b, fname)

	// header
	npts := -1
	for sc.next() {
		if !sc.header {
			break
		}
		if len(sc.fields) < 2 {
			continue
		}
		switch sc.fields[0] {
		case "elementShape":
			s, ok := shapeNames[sc.fields[1]]
			if !ok {
				return nil, sc.errorf("element shape %q is not available", sc.fields[1])
			}
			o.Geo, o.Ndim = s.Geo, s.Ndim
		case "elementNumPoints":
			npts, err = sc.atoi(1)
			if err != nil {
				return nil, err
			}
		}
	}
	if sc.err != nil {
		return nil, sc.err
	}
	if o.Geo == "" {
		return nil, chk.Err("%s: elementShape header is missing", fname)
	}
	nverts := geoNverts[o.Geo]
	if npts >= 0 && npts != nverts {
		return nil, chk.Err("%s: elementNumPoints = %d is incompatible with %s", fname, npts, o.Geo)
	}

	// sizes
	if sc.fields == nil {
		return nil, chk.Err("%s: number of nodes and cells is missing", fname)
	}
	if len(sc.fields) != 2 {
		return nil, sc.errorf("expected 'nnodes ncells' but got %d fields", len(sc.fields))
	}
	nnodes, err := sc.atoi(0)
	if err != nil {
		return nil, err
	}
	ncells, err := sc.atoi(1)
	if err != nil {
		return nil, err
	}
	if nnodes < 1 || ncells < 1 {
		return nil, sc.errorf("mesh must have at least one node and one cell. nnodes=%d ncells=%d", nnodes, ncells)
	}

	// coordinates
	o.Coords = make([][]float64, nnodes)
	for i := 0; i < nnodes; i++ {
		if !sc.nextData() {
			return nil, sc.eof("coordinates of node %d", i)
		}
		o.Coords[i], err = sc.floats(o.Ndim)
		if err != nil {
			return nil, err
		}
	}

	// connectivity
	o.Conn = make([][]int, ncells)
	for i := 0; i < ncells; i++ {
		if !sc.nextData() {
			return nil, sc.eof("connectivity of cell %d", i)
		}
		o.Conn[i], err = sc.ints(nverts)
		if err != nil {
			return nil, err
		}
	}

	// limits
	o.Xmin = make([]float64, o.Ndim)
	o.Xmax = make([]float64, o.Ndim)
	copy(o.Xmin, o.Coords[0])
	copy(o.Xmax, o.Coords[0])
	for _, x := range o.Coords {
		for i := 0; i < o.Ndim; i++ {
			if x[i] < o.Xmin[i] {
				o.Xmin[i] = x[i]
			}
			if x[i] > o.Xmax[i] {
				o.Xmax[i] = x[i]
			}
		}
	}
	return
}

// ReadParticles reads an ASCII file with one coordinate row per particle
func ReadParticles(dir, fn string, ndim int) (X [][]float64, err error) {
	fnamepath := filepath.Join(dir, fn)
	b, err := os.ReadFile(fnamepath)
	if err != nil {
		return nil, chk.Err("cannot read particles file %q:\n%v", fnamepath, err)
	}
	return ParseParticles(b, fnamepath, ndim)
}

// ParseParticles parses the contents of a particles file. fname is only used in error messages
func ParseParticles(b []byte, fname string, ndim int) (X [][]float64, err error) {
	sc := newScanner(b, fname)
	for sc.nextData() {
		var x []float64
		x, err = sc.floats(ndim)
		if err != nil {
			return nil, err
		}
		X = append(X, x)
	}
	if sc.err != nil {
		return nil, sc.err
	}
	if len(X) == 0 {
		return nil, chk.Err("%s: there are no particles", fname)
	}
	return
}

// scanner /////////////////////////////////////////////////////////////////////////////////////////

// scanner reads whitespace separated fields line by line
type scanner struct {
	s      *bufio.Scanner
	fname  string   // filename for error messages
	line   int      // current line number
	fields []string // fields of current line
	header bool     // current line is a header line; i.e. starts with "!"
	err    error    // reading error
}

func newScanner(b []byte, fname string) *scanner {
	return &scanner{s: bufio.NewScanner(bytes.NewReader(b)), fname: fname}
}

// next moves to the next non-empty line
func (o *scanner) next() bool {
	for o.s.Scan() {
		o.line++
		l := strings.TrimSpace(o.s.Text())
		if l == "" {
			continue
		}
		o.header = strings.HasPrefix(l, "!")
		if o.header {
			l = strings.TrimSpace(strings.TrimPrefix(l, "!"))
		}
		o.fields = strings.Fields(l)
		return true
	}
	o.fields = nil
	if err := o.s.Err(); err != nil {
		o.err = chk.Err("%s: cannot read line %d:\n%v", o.fname, o.line+1, err)
	}
	return false
}

// nextData moves to the next line that is not a header/comment
func (o *scanner) nextData() bool {
	for o.next() {
		if !o.header {
			return true
		}
	}
	return false
}

func (o *scanner) errorf(msg string, prm ...interface{}) error {
	return chk.Err("%s:%d: %s", o.fname, o.line, io.Sf(msg, prm...))
}

func (o *scanner) eof(what string, prm ...interface{}) error {
	if o.err != nil {
		return o.err
	}
	return chk.Err("%s: unexpected end of file while reading %s", o.fname, io.Sf(what, prm...))
}

func (o *scanner) atoi(i int) (int, error) {
	v, err := strconv.Atoi(o.fields[i])
	if err != nil {
		return 0, o.errorf("cannot parse integer %q", o.fields[i])
	}
	return v, nil
}

func (o *scanner) floats(n int) (v []float64, err error) {
	if len(o.fields) != n {
		return nil, o.errorf("expected %d values but got %d", n, len(o.fields))
	}
	v = make([]float64, n)
	for i, f := range o.fields {
		v[i], err = strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, o.errorf("cannot parse real number %q", f)
		}
	}
	return
}

func (o *scanner) ints(n int) (v []int, err error) {
	if len(o.fields) != n {
		return nil, o.errorf("expected %d values but got %d", n, len(o.fields))
	}
	v = make([]int, n)
	for i := range o.fields {
		v[i], err = o.atoi(i)
		if err != nil {
			return
		}
	}
	return
}
