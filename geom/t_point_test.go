// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_point01(tst *testing.T) {

	chk.PrintTitle("point01")

	p := NewPoint2(1.0, 2.0)
	q := NewPoint2(1.0+1e-14, 2.0-1e-14)
	if !p.Equal(q) {
		tst.Errorf("points expected to compare equal within tolerance")
	}

	r := NewPoint2(1.1, 2.0)
	if p.Equal(r) {
		tst.Errorf("points expected to compare unequal")
	}

	chk.Scalar(tst, "distance", 1e-15, p.Distance(NewPoint2(4.0, 6.0)), 5.0)
}

func Test_line01(tst *testing.T) {

	chk.PrintTitle("line01")

	l1 := NewLine(NewPoint2(0, 0), NewPoint2(2, 2))
	l2 := NewLine(NewPoint2(0, 2), NewPoint2(2, 0))

	p, ok := l1.Intersect(l2)
	if !ok {
		tst.Errorf("expected an intersection")
		return
	}
	chk.Scalar(tst, "x", 1e-14, p.X, 1.0)
	chk.Scalar(tst, "y", 1e-14, p.Y, 1.0)

	l3 := NewLine(NewPoint2(0, 3), NewPoint2(2, 5))
	if _, ok := l1.Intersect(l3); ok {
		tst.Errorf("parallel lines must not intersect")
	}
}

func Test_circle01(tst *testing.T) {

	chk.PrintTitle("circle01")

	c := NewCircle(NewPoint2(0, 0), 1.0)
	l := NewLine(NewPoint2(-2, 0), NewPoint2(2, 0))
	pts := c.LineIntersect(l)
	if len(pts) != 2 {
		tst.Errorf("expected 2 intersections, got %d", len(pts))
		return
	}

	// tangent line: no crossings recorded
	lt := NewLine(NewPoint2(-2, 1), NewPoint2(2, 1))
	pts = c.LineIntersect(lt)
	if len(pts) != 0 {
		tst.Errorf("tangent line expected zero crossings, got %d", len(pts))
	}
}

func Test_box01(tst *testing.T) {

	chk.PrintTitle("box01")

	b := NewBox(0, 1, 0, 1)
	if !b.Contains(NewPoint2(0.5, 0.5)) {
		tst.Errorf("box should contain its center")
	}

	exit := b.RayExit(NewPoint2(0.5, 0.5), 1, 0)
	chk.Scalar(tst, "x", 1e-14, exit.X, 1.0)
	chk.Scalar(tst, "y", 1e-14, exit.Y, 0.5)
}
