// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func Test_boxes01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("boxes01")

	boxes, err := ReadBoxes("data", "twohex.ini")
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	names := boxes.Names()
	io.Pforan("names = %v\n", names)
	if len(names) != 3 || names[0] != "all" || names[1] != "left" || names[2] != "right" {
		tst.Errorf("names are incorrect: %v", names)
		return
	}

	left, err := boxes.Get("left")
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	chk.Float64(tst, "left: xlo", 1e-17, left.Lo[0], -0.01)
	chk.Float64(tst, "left: tol", 1e-17, left.Tol, BOXTOL)
	if !math.IsInf(left.Lo[1], -1) || !math.IsInf(left.Hi[2], +1) {
		tst.Errorf("y and z ranges of left box should be unbounded")
	}
	if !left.Contains([]float64{0, 0.3, 7}) {
		tst.Errorf("left box should contain (0, 0.3, 7)")
	}
	if left.Contains([]float64{0.5, 0, 0}) {
		tst.Errorf("left box should not contain (0.5, 0, 0)")
	}

	right, _ := boxes.Get("right")
	chk.Float64(tst, "right: tol", 1e-17, right.Tol, 1e-9)
	if !right.Contains([]float64{2, 1}) {
		tst.Errorf("right box should contain (2, 1)")
	}

	all, _ := boxes.Get("all")
	if !all.Contains([]float64{-1e10, 1e10, 0}) {
		tst.Errorf("box 'all' should contain everything")
	}

	if _, err = boxes.Get("top"); err == nil {
		tst.Errorf("Get should have failed")
	}
}

func Test_boxes02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("boxes02. errors")

	for i, src := range []string{
		"[box \"a\"]\nx = 1\n",
		"[box \"a\"]\nx = 1 0\n",
		"[box \"a\"]\ny = 0 b\n",
		"[box \"a\"]\nw = 0 1\n",
	} {
		_, err := ParseBoxes(src)
		if err == nil {
			tst.Errorf("case %d: error should have happened", i)
			continue
		}
		io.Pforan("%d: %v\n", i, err)
	}
}
