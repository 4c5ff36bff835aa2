// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpm

import (
	"errors"
	"testing"

	"github.com/cpmech/gompm/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// genLin2 generates a 1D mesh with nx cells over [0, lx]
func genLin2(nx int, lx float64) (coords [][]float64, conn [][]int) {
	for i := 0; i <= nx; i++ {
		coords = append(coords, []float64{lx * float64(i) / float64(nx)})
	}
	for i := 0; i < nx; i++ {
		conn = append(conn, []int{i, i + 1})
	}
	return
}

// genQua4 generates a 2D structured mesh with nx×ny cells over [0, lx]×[0, ly]
func genQua4(nx, ny int, lx, ly float64) (coords [][]float64, conn [][]int) {
	for j := 0; j <= ny; j++ {
		for i := 0; i <= nx; i++ {
			coords = append(coords, []float64{lx * float64(i) / float64(nx), ly * float64(j) / float64(ny)})
		}
	}
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			n0 := j*(nx+1) + i
			conn = append(conn, []int{n0, n0 + 1, n0 + nx + 2, n0 + nx + 1})
		}
	}
	return
}

// genHex8 generates a 3D structured mesh with nx×ny×nz cells over [0, lx]×[0, ly]×[0, lz]
func genHex8(nx, ny, nz int, lx, ly, lz float64) (coords [][]float64, conn [][]int) {
	for k := 0; k <= nz; k++ {
		for j := 0; j <= ny; j++ {
			for i := 0; i <= nx; i++ {
				coords = append(coords, []float64{lx * float64(i) / float64(nx), ly * float64(j) / float64(ny), lz * float64(k) / float64(nz)})
			}
		}
	}
	id := func(i, j, k int) int { return k*(nx+1)*(ny+1) + j*(nx+1) + i }
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				conn = append(conn, []int{
					id(i, j, k), id(i+1, j, k), id(i+1, j+1, k), id(i, j+1, k),
					id(i, j, k+1), id(i+1, j, k+1), id(i+1, j+1, k+1), id(i, j+1, k+1),
				})
			}
		}
	}
	return
}

// genTri3 splits each cell of a structured qua4 mesh into two triangles
func genTri3(nx, ny int, lx, ly float64) (coords [][]float64, conn [][]int) {
	coords, quads := genQua4(nx, ny, lx, ly)
	for _, q := range quads {
		conn = append(conn, []int{q[0], q[1], q[2]}, []int{q[0], q[2], q[3]})
	}
	return
}

func Test_grid01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("grid01")

	coords, conn := genQua4(3, 2, 3, 1)
	g, err := NewGrid(2, "qua4", coords, conn)
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	chk.Int(tst, "nnodes", len(g.Nodes), 12)
	chk.Int(tst, "ncells", len(g.Cells), 6)
	chk.Int(tst, "len(Mom)", len(g.Mom), 24)
	chk.Float64(tst, "hmin", 1e-15, g.Hmin, 0.5)
	chk.Float64(tst, "vol", 1e-15, g.Cells[4].Vol, 0.5)
	chk.Array(tst, "xmax", 1e-15, g.Xmax, []float64{3, 1})
	chk.Array(tst, "cell 5: xmin", 1e-15, g.Cells[5].Xmin, []float64{2, 0.5})
	if !g.Structured() {
		tst.Errorf("grid should be structured")
	}

	// nodes in box
	boxes, err := inp.ParseBoxes("[box \"left\"]\nx = 0 0\n")
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	chk.Ints(tst, "left nodes", g.NodesInBox(boxes["left"]), []int{0, 4, 8})

	// unstructured grids
	coords[5][0] += 0.1
	g, err = NewGrid(2, "qua4", coords, conn)
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	if g.Structured() {
		tst.Errorf("distorted grid should not be structured")
	}
	coords, conn = genTri3(2, 2, 1, 1)
	g, err = NewGrid(2, "tri3", coords, conn)
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	if g.Structured() {
		tst.Errorf("triangular grid should not be structured")
	}
	chk.Float64(tst, "tri3: vol", 1e-15, g.Cells[0].Vol, 0.125)
}

func Test_grid02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("grid02. malformed meshes")

	unit := [][]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	cases := []struct {
		name   string
		ndim   int
		geo    string
		coords [][]float64
		conn   [][]int
	}{
		{"unknown shape", 2, "qua9", unit, [][]int{{0, 1, 2, 3}}},
		{"wrong ndim", 3, "qua4", unit, [][]int{{0, 1, 2, 3}}},
		{"empty", 2, "qua4", nil, nil},
		{"wrong coordinates", 2, "qua4", [][]float64{{0, 0}, {1, 0}, {1, 1}, {0}}, [][]int{{0, 1, 2, 3}}},
		{"wrong number of vertices", 2, "qua4", unit, [][]int{{0, 1, 2}}},
		{"node out of range", 2, "qua4", unit, [][]int{{0, 1, 2, 4}}},
		{"repeated node", 2, "qua4", unit, [][]int{{0, 1, 2, 2}}},
		{"inverted", 2, "qua4", unit, [][]int{{0, 3, 2, 1}}},
		{"degenerate", 2, "qua4", [][]float64{{0, 0}, {1, 0}, {2, 0}, {3, 0}}, [][]int{{0, 1, 2, 3}}},
	}
	for i, c := range cases {
		_, err := NewGrid(c.ndim, c.geo, c.coords, c.conn)
		if !errors.Is(err, ErrMalformedMesh) {
			tst.Errorf("%s: ErrMalformedMesh should have been returned. err = %v", c.name, err)
			continue
		}
		io.Pforan("%d: %v\n", i, err)
	}
}

func Test_grid03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("grid03. reset accumulators")

	coords, conn := genHex8(2, 1, 1, 2, 1, 1)
	g, err := NewGrid(3, "hex8", coords, conn)
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	for _, v := range [][]float64{g.Mass, g.Mom, g.Fint, g.Fext, g.Ftot, g.Vel, g.Acc} {
		for k := range v {
			v[k] = float64(k + 1)
		}
	}
	for i := 0; i < 2; i++ {
		g.ResetAccumulators()
		for _, v := range [][]float64{g.Mass, g.Mom, g.Fint, g.Fext, g.Ftot, g.Vel, g.Acc} {
			chk.Array(tst, io.Sf("reset %d", i), 1e-17, v, make([]float64, len(v)))
		}
	}
}

func Test_locate01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("locate01. structured")

	// 2×2 grid; cells: 0 1 (bottom) 2 3 (top)
	coords, conn := genQua4(2, 2, 2, 2)
	g, err := NewGrid(2, "qua4", coords, conn)
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	if !g.Structured() {
		tst.Errorf("grid should be structured")
		return
	}
	// centres; shared node; edges; boundary; outside
	checkLocate(tst, g, [][]float64{
		{0.5, 0.5}, {1.5, 0.5}, {0.5, 1.5}, {1.5, 1.5},
		{1, 1},
		{1, 1.5}, {1.5, 1},
		{2, 2}, {0, 0}, {2, 0.3},
		{2.1, 1}, {-1e-3, 0.5},
	}, []int{0, 1, 2, 3, 0, 2, 1, 3, 0, 1, -1, -1})
}

func Test_locate02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("locate02. unstructured")

	// reversed numbering of cells: 3 2 (bottom) 1 0 (top); node 8 is moved
	coords, conn := genQua4(2, 2, 2, 2)
	for i, j := 0, len(conn)-1; i < j; i, j = i+1, j-1 {
		conn[i], conn[j] = conn[j], conn[i]
	}
	coords[8] = []float64{2.2, 2.1}
	g, err := NewGrid(2, "qua4", coords, conn)
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	if g.Structured() {
		tst.Errorf("grid should not be structured")
		return
	}
	// centres; shared node; edges; vertices; outside
	checkLocate(tst, g, [][]float64{
		{0.5, 0.5}, {1.5, 0.5}, {0.5, 1.5},
		{1, 1},
		{1, 0.5}, {0.5, 1},
		{0, 0}, {2.2, 2.1},
		{2.3, 1}, {0.5, 2.5},
	}, []int{3, 2, 1, 0, 2, 1, 3, 0, -1, -1})

	// triangles: 2×2 squares split along the diagonal
	coords, conn = genTri3(2, 2, 2, 2)
	g, err = NewGrid(2, "tri3", coords, conn)
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	// interior; shared node; diagonals of cells 0|1 and 6|7; outside
	checkLocate(tst, g, [][]float64{
		{0.7, 0.3}, {0.3, 0.7},
		{1, 1},
		{0.5, 0.5}, {1.5, 1.5},
		{-0.1, 0}, {1.5, 2.01},
	}, []int{0, 1, 0, 0, 6, -1, -1})

	// hexahedra
	coords, conn = genHex8(2, 2, 2, 1, 1, 1)
	coords[len(coords)-1] = []float64{1.1, 1.1, 1.1}
	g, err = NewGrid(3, "hex8", coords, conn)
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	checkLocate(tst, g, [][]float64{
		{0.5, 0.5, 0.5}, {0.75, 0.75, 0.25}, {0.5, 0.5, 0.75}, {1.2, 1.2, 1.2},
	}, []int{0, 3, 4, -1})
}

// checkLocate checks the cell containing each point and the natural coordinates
func checkLocate(tst *testing.T, g *Grid, points [][]float64, cids []int) {
	ws := NewWorkspace(0, g.Geo, g.Ndim)
	r := make([]float64, g.Ndim)
	y := make([]float64, g.Ndim)
	for i, x := range points {
		cid := g.LocateCell(r, x, ws.Shp)
		io.Pforan("x = %v => cell %d\n", x, cid)
		chk.Int(tst, io.Sf("cell of %v", x), cid, cids[i])
		if cid < 0 {
			continue
		}
		ws.Shp.RealCoords(y, g.Cells[cid].X, r)
		chk.Array(tst, io.Sf("x(r) @ %v", x), 1e-9, y, x)
	}
}
