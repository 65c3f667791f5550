// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/moccore/coremesh"
	"github.com/cpmech/moccore/pinmesh"
)

// PinMeshData is one catalog entry describing a rectangular or
// cylindrical pin mesh, keyed by name for reference from PinData.
type PinMeshData struct {
	Name string `json:"name"`
	Kind string `json:"kind"` // "rectangular" | "cylindrical"

	Pitch float64 `json:"pitch"`

	// rectangular
	Nx int `json:"nx"`
	Ny int `json:"ny"`

	// cylindrical
	Radii    []float64 `json:"radii"`
	SubPerXS []int     `json:"sub_per_xs"`
	NAzi     int       `json:"n_azi"`
}

func (d *PinMeshData) build() *pinmesh.PinMesh {
	switch d.Kind {
	case "rectangular":
		return pinmesh.NewRectangular(d.Pitch, d.Nx, d.Ny)
	case "cylindrical":
		return pinmesh.NewCylindrical(d.Pitch, d.Radii, d.SubPerXS, d.NAzi)
	}
	chk.Panic("inp: pin mesh %q has unknown kind %q", d.Name, d.Kind)
	return nil
}

// PinData composes a catalog pin mesh with a material ID per FSR region.
type PinData struct {
	Name        string `json:"name"`
	Mesh        string `json:"mesh"` // PinMeshData.Name
	MaterialIDs []int  `json:"material_ids"`
}

// LatticeData is a row-major (y outer) grid of pin names.
type LatticeData struct {
	Name string     `json:"name"`
	Pins [][]string `json:"pins"` // [row][col] -> PinData.Name
}

// AssemblyData is a vertical stack of lattice names with per-plane
// heights.
type AssemblyData struct {
	Name     string    `json:"name"`
	Lattices []string  `json:"lattices"` // LatticeData.Name, one per plane
	Heights  []float64 `json:"heights"`
}

// CoreData is a row-major grid of assembly names plus the six outer
// boundary conditions, in {East, North, West, South, Top, Bottom} order.
type CoreData struct {
	Assemblies [][]string `json:"assemblies"` // [row][col] -> AssemblyData.Name
	Boundary   [6]string  `json:"boundary"`   // "vacuum" | "reflect" | "periodic"
}

// GeometryData is the full catalog-plus-composition geometry deck.
type GeometryData struct {
	PinMeshes []PinMeshData  `json:"pin_meshes"`
	Pins      []PinData      `json:"pins"`
	Lattices  []LatticeData  `json:"lattices"`
	Assemblies []AssemblyData `json:"assemblies"`
	Core       CoreData       `json:"core"`
}

func boundaryType(name string) coremesh.BoundaryType {
	switch name {
	case "vacuum":
		return coremesh.Vacuum
	case "reflect":
		return coremesh.Reflect
	case "periodic":
		return coremesh.Periodic
	}
	chk.Panic("inp: unknown boundary condition %q", name)
	return coremesh.Vacuum
}

// Build resolves every name reference in the geometry deck and composes
// the coremesh.Core the rest of the solver is built over.
func (d *GeometryData) Build() *coremesh.Core {
	meshByName := map[string]*pinmesh.PinMesh{}
	for i := range d.PinMeshes {
		meshByName[d.PinMeshes[i].Name] = d.PinMeshes[i].build()
	}

	pinByName := map[string]*coremesh.Pin{}
	for _, p := range d.Pins {
		mesh, ok := meshByName[p.Mesh]
		if !ok {
			chk.Panic("inp: pin %q references unknown pin mesh %q", p.Name, p.Mesh)
		}
		pinByName[p.Name] = coremesh.NewPin(mesh, p.MaterialIDs)
	}

	latticeByName := map[string]*coremesh.Lattice{}
	for _, l := range d.Lattices {
		rows := make([][]*coremesh.Pin, len(l.Pins))
		for iy, row := range l.Pins {
			rows[iy] = make([]*coremesh.Pin, len(row))
			for ix, name := range row {
				pin, ok := pinByName[name]
				if !ok {
					chk.Panic("inp: lattice %q references unknown pin %q", l.Name, name)
				}
				rows[iy][ix] = pin
			}
		}
		latticeByName[l.Name] = coremesh.NewLattice(rows)
	}

	assemblyByName := map[string]*coremesh.Assembly{}
	for _, a := range d.Assemblies {
		lats := make([]*coremesh.Lattice, len(a.Lattices))
		for i, name := range a.Lattices {
			lat, ok := latticeByName[name]
			if !ok {
				chk.Panic("inp: assembly %q references unknown lattice %q", a.Name, name)
			}
			lats[i] = lat
		}
		assemblyByName[a.Name] = coremesh.NewAssembly(lats, a.Heights)
	}

	grid := make([][]*coremesh.Assembly, len(d.Core.Assemblies))
	for iy, row := range d.Core.Assemblies {
		grid[iy] = make([]*coremesh.Assembly, len(row))
		for ix, name := range row {
			asm, ok := assemblyByName[name]
			if !ok {
				chk.Panic("inp: core references unknown assembly %q", name)
			}
			grid[iy][ix] = asm
		}
	}

	var bc [6]coremesh.BoundaryType
	for i, name := range d.Core.Boundary {
		bc[i] = boundaryType(name)
	}
	return coremesh.NewCore(grid, bc)
}
