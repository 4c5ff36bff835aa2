// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"bytes"

	"github.com/cpmech/gompm/inp"
	"github.com/cpmech/gompm/mpm"
	"github.com/cpmech/gompm/shp"
	"github.com/cpmech/gosl/io"
)

// VtuWriter writes particles to one VTU file per output step and the grid once
type VtuWriter struct {
	Dirout  string // directory of results
	Key     string // simulation key
	Verbose bool   // show messages

	// auxiliary
	gridDone bool // grid file has been written
}

// NewVtuWriter returns a VTU writer configured by simulation data
func NewVtuWriter(sim *inp.Simulation, verbose bool) *VtuWriter {
	return &VtuWriter{Dirout: sim.DirOut, Key: sim.Key, Verbose: verbose}
}

// WriteSnapshot writes the particles of s and, at the first call, the grid
func (o *VtuWriter) WriteSnapshot(s *mpm.Snapshot) (err error) {
	if !o.gridDone {
		geo, dat := new(bytes.Buffer), new(bytes.Buffer)
		GridTopology(geo, s.NodeX, s.Conn, s.Vtk)
		gridData(dat, s)
		err = vtuWrite(o.Dirout, GridVtuFile(o.Key), o.Verbose, len(s.NodeX), len(s.Conn), geo, dat)
		if err != nil {
			return
		}
		o.gridDone = true
	}
	geo, dat := new(bytes.Buffer), new(bytes.Buffer)
	particlesTopology(geo, s)
	particlesData(dat, s)
	return vtuWrite(o.Dirout, VtuFile(o.Key, s.Step), o.Verbose, s.Np(), s.Np(), geo, dat)
}

// GridTopology writes points and cells of a grid in VTU format
func GridTopology(buf *bytes.Buffer, X [][]float64, conn [][]int, vtk int) {

	// coordinates
	io.Ff(buf, "<Points>\n<DataArray type=\"Float64\" NumberOfComponents=\"3\" format=\"ascii\">\n")
	for _, x := range X {
		writeVec3(buf, x)
	}
	io.Ff(buf, "\n</DataArray>\n</Points>\n")

	// connectivities
	io.Ff(buf, "<Cells>\n<DataArray type=\"Int32\" Name=\"connectivity\" format=\"ascii\">\n")
	for _, verts := range conn {
		for _, v := range verts {
			io.Ff(buf, "%d ", v)
		}
	}

	// offsets
	io.Ff(buf, "\n</DataArray>\n<DataArray type=\"Int32\" Name=\"offsets\" format=\"ascii\">\n")
	var offset int
	for _, verts := range conn {
		offset += len(verts)
		io.Ff(buf, "%d ", offset)
	}

	// types
	io.Ff(buf, "\n</DataArray>\n<DataArray type=\"UInt8\" Name=\"types\" format=\"ascii\">\n")
	for range conn {
		io.Ff(buf, "%d ", vtk)
	}
	io.Ff(buf, "\n</DataArray>\n</Cells>\n")
}

// headers and footers ///////////////////////////////////////////////////////////////////////////////

func vtuWrite(dirout, fn string, verbose bool, npoints, ncells int, geo, dat *bytes.Buffer) error {
	var hdr, foo bytes.Buffer
	io.Ff(&hdr, "<?xml version=\"1.0\"?>\n<VTKFile type=\"UnstructuredGrid\" version=\"0.1\" byte_order=\"LittleEndian\">\n<UnstructuredGrid>\n")
	io.Ff(&hdr, "<Piece NumberOfPoints=\"%d\" NumberOfCells=\"%d\">\n", npoints, ncells)
	io.Ff(&foo, "</Piece>\n</UnstructuredGrid>\n</VTKFile>\n")
	return save_file(dirout, fn, verbose, &hdr, geo, dat, &foo)
}

// particles ///////////////////////////////////////////////////////////////////////////////////////

// particlesTopology writes one vertex cell per particle
func particlesTopology(buf *bytes.Buffer, s *mpm.Snapshot) {
	np := s.Np()
	conn := make([][]int, np)
	for i := 0; i < np; i++ {
		conn[i] = []int{i}
	}
	GridTopology(buf, s.X, conn, shp.VTK_VERTEX)
}

func particlesData(buf *bytes.Buffer, s *mpm.Snapshot) {
	io.Ff(buf, "<PointData Scalars=\"TheScalars\">\n")

	// ids and materials
	io.Ff(buf, "<DataArray type=\"Int32\" Name=\"pid\" NumberOfComponents=\"1\" format=\"ascii\">\n")
	for i := range s.X {
		io.Ff(buf, "%d ", i)
	}
	io.Ff(buf, "\n</DataArray>\n<DataArray type=\"Int32\" Name=\"mid\" NumberOfComponents=\"1\" format=\"ascii\">\n")
	for _, mid := range s.Mid {
		io.Ff(buf, "%d ", mid)
	}
	io.Ff(buf, "\n</DataArray>\n")

	// scalars
	writeScalars(buf, "mass", s.M)
	writeScalars(buf, "vol", s.Vol)

	// velocity
	io.Ff(buf, "<DataArray type=\"Float64\" Name=\"vel\" NumberOfComponents=\"3\" format=\"ascii\">\n")
	for _, v := range s.V {
		writeVec3(buf, v)
	}
	io.Ff(buf, "\n</DataArray>\n")

	// tensors
	writeTensors(buf, "sig", s.Ndim, s.Sig)
	writeTensors(buf, "eps", s.Ndim, s.Eps)
	io.Ff(buf, "</PointData>\n")
}

// grid ////////////////////////////////////////////////////////////////////////////////////////////

func gridData(buf *bytes.Buffer, s *mpm.Snapshot) {
	io.Ff(buf, "<PointData Scalars=\"TheScalars\">\n")
	io.Ff(buf, "<DataArray type=\"Int32\" Name=\"nid\" NumberOfComponents=\"1\" format=\"ascii\">\n")
	for i := range s.NodeX {
		io.Ff(buf, "%d ", i)
	}
	io.Ff(buf, "\n</DataArray>\n</PointData>\n")
	io.Ff(buf, "<CellData Scalars=\"TheScalars\">\n")
	io.Ff(buf, "<DataArray type=\"Int32\" Name=\"cid\" NumberOfComponents=\"1\" format=\"ascii\">\n")
	for i := range s.Conn {
		io.Ff(buf, "%d ", i)
	}
	io.Ff(buf, "\n</DataArray>\n</CellData>\n")
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

// writeVec3 writes a vector padded with zeros to 3 components
func writeVec3(buf *bytes.Buffer, v []float64) {
	var w [3]float64
	copy(w[:], v)
	io.Ff(buf, "%23.15e %23.15e %23.15e ", w[0], w[1], w[2])
}

func writeScalars(buf *bytes.Buffer, name string, vals []float64) {
	io.Ff(buf, "<DataArray type=\"Float64\" Name=\"%s\" NumberOfComponents=\"1\" format=\"ascii\">\n", name)
	for _, v := range vals {
		io.Ff(buf, "%23.15e ", v)
	}
	io.Ff(buf, "\n</DataArray>\n")
}

// writeTensors writes ndim×ndim row-major tensors as 3×3 tensors
func writeTensors(buf *bytes.Buffer, name string, ndim int, vals [][]float64) {
	io.Ff(buf, "<DataArray type=\"Float64\" Name=\"%s\" NumberOfComponents=\"9\" format=\"ascii\">\n", name)
	for _, t := range vals {
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				var v float64
				if i < ndim && j < ndim {
					v = t[i*ndim+j]
				}
				io.Ff(buf, "%23.15e ", v)
			}
		}
	}
	io.Ff(buf, "\n</DataArray>\n")
}
