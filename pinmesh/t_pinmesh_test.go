// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pinmesh

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/moccore/geom"
)

func Test_rect01_single_region(tst *testing.T) {

	chk.PrintTitle("rect01_single_region")

	m := NewRectangular(1.0, 1, 1)
	if m.NRegions() != 1 {
		tst.Errorf("expected 1 region, got %d", m.NRegions())
	}
	areas := m.AreaList()
	chk.Scalar(tst, "area", 1e-14, areas[0], 1.0)
}

func Test_rect02_trace(tst *testing.T) {

	chk.PrintTitle("rect02_trace")

	m := NewRectangular(2.0, 2, 2)
	segs := m.Trace(geom.NewPoint2(0, 1), geom.NewPoint2(2, 1))
	total := 0.0
	for _, s := range segs {
		total += s.Length
	}
	chk.Scalar(tst, "total length", 1e-12, total, 2.0)
	if len(segs) != 2 {
		tst.Errorf("expected 2 segments through the shared edge, got %d", len(segs))
	}
}

func Test_cyl01_single_ring(tst *testing.T) {

	chk.PrintTitle("cyl01_single_ring")

	m := NewCylindrical(1.0, []float64{0.4}, []int{1}, 1)
	if m.NRegions() != 2 {
		tst.Errorf("expected 1 ring + 1 moderator region, got %d", m.NRegions())
	}
}

func Test_cyl02_trace_area(tst *testing.T) {

	chk.PrintTitle("cyl02_trace_area")

	m := NewCylindrical(1.0, []float64{0.3}, []int{2}, 4)
	areas := m.AreaList()
	total := 0.0
	for _, a := range areas {
		total += a
	}
	chk.Scalar(tst, "total area", 1e-12, total, 1.0)

	segs := m.Trace(geom.NewPoint2(0.5, 0.0), geom.NewPoint2(0.5, 1.0))
	length := 0.0
	for _, s := range segs {
		length += s.Length
	}
	chk.Scalar(tst, "trace length", 1e-9, length, 1.0)
}
