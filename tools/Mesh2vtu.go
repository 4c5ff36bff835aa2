// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// +build ignore

package main

import (
	"bytes"

	"github.com/cpmech/gompm/inp"
	"github.com/cpmech/gompm/out"
	"github.com/cpmech/gompm/shp"
	"github.com/cpmech/gosl/io"
)

func main() {

	// input data
	mshfn, fnkey := io.ArgToFilename(0, "data/twohex", ".msh", true)
	dirout := io.ArgToString(1, "/tmp/gompm")
	io.Pf("\n%-20s = %v\n%-20s = %v\n\n", "mesh filename", mshfn, "output directory", dirout)

	// read mesh
	msh, err := inp.ReadMesh("", mshfn)
	if err != nil {
		io.Pfred("cannot read mesh:\n%v\n", err)
		return
	}
	s := shp.Get(msh.Geo, 0)
	if s == nil {
		io.Pfred("cannot handle shape %q\n", msh.Geo)
		return
	}

	// topology
	geo := new(bytes.Buffer)
	out.GridTopology(geo, msh.Coords, msh.Conn, s.VtkCode)

	// points and cells data
	dat := new(bytes.Buffer)
	io.Ff(dat, "<PointData Scalars=\"TheScalars\">\n<DataArray type=\"Int32\" Name=\"nid\" NumberOfComponents=\"1\" format=\"ascii\">\n")
	for i := range msh.Coords {
		io.Ff(dat, "%d ", i)
	}
	io.Ff(dat, "\n</DataArray>\n</PointData>\n")
	io.Ff(dat, "<CellData Scalars=\"TheScalars\">\n<DataArray type=\"Int32\" Name=\"cid\" NumberOfComponents=\"1\" format=\"ascii\">\n")
	for i := range msh.Conn {
		io.Ff(dat, "%d ", i)
	}
	io.Ff(dat, "\n</DataArray>\n</CellData>\n")

	// write vtu file
	var hdr, foo bytes.Buffer
	io.Ff(&hdr, "<?xml version=\"1.0\"?>\n<VTKFile type=\"UnstructuredGrid\" version=\"0.1\" byte_order=\"LittleEndian\">\n<UnstructuredGrid>\n")
	io.Ff(&hdr, "<Piece NumberOfPoints=\"%d\" NumberOfCells=\"%d\">\n", len(msh.Coords), len(msh.Conn))
	io.Ff(&foo, "</Piece>\n</UnstructuredGrid>\n</VTKFile>\n")
	io.WriteFileVD(dirout, fnkey+".vtu", &hdr, geo, dat, &foo)
}
