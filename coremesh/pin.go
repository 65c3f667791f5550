// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package coremesh composes pins into lattices, assemblies and a core,
// detects geometrically-unique axial planes, and exposes flat-source-region
// and coarse-cell/surface indexing over the resulting structured grid.
package coremesh

import (
	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/moccore/pinmesh"
)

// Pin composes a PinMesh with a material ID per XS region and a
// fuel flag. NewPin leaves IsFuel false, and nothing in this package
// derives it from the pin's materials.
type Pin struct {
	Mesh        *pinmesh.PinMesh
	MaterialIDs []int // one per FSR-mesh region
	IsFuel      bool
}

// NewPin builds a Pin, asserting that every mesh region has an assigned
// material ID.
func NewPin(mesh *pinmesh.PinMesh, materialIDs []int) *Pin {
	if len(materialIDs) != mesh.NRegions() {
		chk.Panic("coremesh: pin has %d mesh regions but %d material ids", mesh.NRegions(), len(materialIDs))
	}
	return &Pin{Mesh: mesh, MaterialIDs: materialIDs}
}

// Lattice is an Ny x Nx grid of Pins (row-major, y outer).
type Lattice struct {
	Nx, Ny int
	Pins   [][]*Pin // [row][col], row=y, col=x
}

// NewLattice builds a Lattice from a row-major pin grid, asserting that
// every row has the same pitch sequence column-wise and every column the
// same pitch sequence row-wise (dimensional conformity).
func NewLattice(pins [][]*Pin) *Lattice {
	ny := len(pins)
	if ny == 0 {
		chk.Panic("coremesh: lattice must have at least one row")
	}
	nx := len(pins[0])
	for iy, row := range pins {
		if len(row) != nx {
			chk.Panic("coremesh: lattice row %d has %d pins, expected %d", iy, len(row), nx)
		}
	}
	for ix := 0; ix < nx; ix++ {
		pitch := pins[0][ix].Mesh.Pitch
		for iy := 1; iy < ny; iy++ {
			if pins[iy][ix].Mesh.Pitch != pitch {
				chk.Panic("coremesh: lattice column %d pitch mismatch at row %d", ix, iy)
			}
		}
	}
	for iy := 0; iy < ny; iy++ {
		pitch := pins[iy][0].Mesh.Pitch
		for ix := 1; ix < nx; ix++ {
			if pins[iy][ix].Mesh.Pitch != pitch {
				chk.Panic("coremesh: lattice row %d pitch mismatch at column %d", iy, ix)
			}
		}
	}
	return &Lattice{Nx: nx, Ny: ny, Pins: pins}
}

// pinMeshIDs returns the ordered sequence of PinMesh identifiers for this
// lattice, used by unique-plane detection.
func (l *Lattice) pinMeshIDs() []int {
	ids := make([]int, 0, l.Nx*l.Ny)
	for _, row := range l.Pins {
		for _, p := range row {
			ids = append(ids, p.Mesh.ID())
		}
	}
	return ids
}

// Assembly is a vertical stack of Lattices, one per axial plane, with a
// height for each.
type Assembly struct {
	Lattices []*Lattice
	Heights  []float64
}

// NewAssembly builds an Assembly, asserting the per-plane height list
// matches the lattice count and every lattice shares the same (Nx,Ny).
func NewAssembly(lattices []*Lattice, heights []float64) *Assembly {
	if len(lattices) != len(heights) {
		chk.Panic("coremesh: assembly has %d lattices but %d heights", len(lattices), len(heights))
	}
	if len(lattices) == 0 {
		chk.Panic("coremesh: assembly must have at least one plane")
	}
	nx, ny := lattices[0].Nx, lattices[0].Ny
	for i, h := range heights {
		if h <= 0 {
			chk.Panic("coremesh: assembly plane %d height must be positive, got %v", i, h)
		}
		if lattices[i].Nx != nx || lattices[i].Ny != ny {
			chk.Panic("coremesh: assembly plane %d lattice shape mismatch", i)
		}
	}
	return &Assembly{Lattices: lattices, Heights: heights}
}

// BoundaryType names the behavior CMFD/BC code applies at a domain face.
type BoundaryType int

// Boundary types.
const (
	Vacuum BoundaryType = iota
	Reflect
	Periodic
)

// Surface names the six coarse-cell faces in the fixed enum order used by
// the external coarse-mesh indexing convention.
type Surface int

// Surface directions, in the fixed {E,N,W,S,T,B} order.
const (
	East Surface = iota
	North
	West
	South
	Top
	Bottom
)

// Core is an Ny x Nx grid of Assemblies plus the six domain boundary
// conditions, in {East, North, West, South, Top, Bottom} order.
type Core struct {
	Nx, Ny     int
	Assemblies [][]*Assembly // [row][col]
	BC         [6]BoundaryType
}

// NewCore builds a Core from a row-major assembly grid, asserting that
// every row holds the same number of assemblies and that all assemblies
// share the same axial plane-height sequence. Pin widths and heights are
// not compared across assemblies.
func NewCore(assemblies [][]*Assembly, bc [6]BoundaryType) *Core {
	ny := len(assemblies)
	if ny == 0 {
		chk.Panic("coremesh: core must have at least one assembly row")
	}
	nx := len(assemblies[0])
	refHeights := assemblies[0][0].Heights
	for iy, row := range assemblies {
		if len(row) != nx {
			chk.Panic("coremesh: core row %d has %d assemblies, expected %d", iy, len(row), nx)
		}
		for ix, a := range row {
			if len(a.Heights) != len(refHeights) {
				chk.Panic("coremesh: assembly (%d,%d) has %d planes, expected %d", ix, iy, len(a.Heights), len(refHeights))
			}
			for k, h := range a.Heights {
				if h != refHeights[k] {
					chk.Panic("coremesh: assembly (%d,%d) plane %d height %v != %v", ix, iy, k, h, refHeights[k])
				}
			}
		}
	}
	return &Core{Nx: nx, Ny: ny, Assemblies: assemblies, BC: bc}
}
