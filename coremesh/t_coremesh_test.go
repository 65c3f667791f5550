// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coremesh

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/moccore/pinmesh"
)

func samplePin() *Pin {
	mesh := pinmesh.NewRectangular(1.0, 1, 1)
	return NewPin(mesh, []int{1})
}

func sampleAssembly(nPlanes int) *Assembly {
	lattices := make([]*Lattice, nPlanes)
	for i := range lattices {
		lattices[i] = NewLattice([][]*Pin{
			{samplePin(), samplePin()},
			{samplePin(), samplePin()},
		})
	}
	heights := make([]float64, nPlanes)
	for i := range heights {
		heights[i] = 1.0
	}
	return NewAssembly(lattices, heights)
}

func sampleCore(nPlanes int) *Core {
	a := sampleAssembly(nPlanes)
	return NewCore([][]*Assembly{{a}}, [6]BoundaryType{Vacuum, Vacuum, Vacuum, Vacuum, Vacuum, Vacuum})
}

func Test_coremesh01_surfaces(tst *testing.T) {

	chk.PrintTitle("coremesh01_surfaces")

	m := Build(sampleCore(2))
	if m.Nx != 2 || m.Ny != 2 || m.Nz != 2 {
		tst.Errorf("unexpected grid dims: %d %d %d", m.Nx, m.Ny, m.Nz)
	}

	// P4: every surface's reported neighbours are in increasing natural
	// order, and the normal direction matches surface_normal.
	for s := 0; s < m.NSurf(); s++ {
		left, right := m.CoarseNeighCells(s)
		if left >= 0 && right >= 0 && left >= right {
			tst.Errorf("surface %d: expected left < right, got %d, %d", s, left, right)
		}
	}
}

func Test_coremesh02_unique_planes(tst *testing.T) {

	chk.PrintTitle("coremesh02_unique_planes")

	// build a 5-plane assembly with pattern A,B,A,B,A by alternating
	// lattices with differently-sized pin meshes (distinct PinMesh ids).
	latA := NewLattice([][]*Pin{{samplePin(), samplePin()}, {samplePin(), samplePin()}})
	meshB := pinmesh.NewRectangular(1.0, 2, 2)
	pinB := func() *Pin { return NewPin(meshB, []int{1, 1, 1, 1}) }
	latB := NewLattice([][]*Pin{{pinB(), pinB()}, {pinB(), pinB()}})

	heights := []float64{1, 1, 1, 1, 1}
	a := NewAssembly([]*Lattice{latA, latB, latA, latB, latA}, heights)
	core := NewCore([][]*Assembly{{a}}, [6]BoundaryType{})

	m := Build(core)
	if len(m.UniquePlanes) != 2 {
		tst.Errorf("expected 2 unique planes, got %d", len(m.UniquePlanes))
	}
	if m.UniquePlaneID[0] != m.UniquePlaneID[2] || m.UniquePlaneID[2] != m.UniquePlaneID[4] {
		tst.Errorf("planes 0,2,4 should share a unique-plane id")
	}
	if m.UniquePlaneID[1] != m.UniquePlaneID[3] {
		tst.Errorf("planes 1,3 should share a unique-plane id")
	}
	if m.UniquePlaneID[0] == m.UniquePlaneID[1] {
		tst.Errorf("A and B planes must map to distinct unique-plane ids")
	}
}
