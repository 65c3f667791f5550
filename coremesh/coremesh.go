// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coremesh

import (
	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/moccore/geom"
)

// Plane is a snapshot of the global pin grid at one axial level, plus
// cached first-FSR offsets per pin (row-major, y outer).
type Plane struct {
	Nx, Ny      int
	Pins        [][]*Pin // [row][col]
	firstFSRPin [][]int  // [row][col] first FSR index of that pin, relative to the plane
	nFSR        int
}

func buildPlane(core *Core, planeInAssembly int) *Plane {
	pins := make([][]*Pin, 0)
	// concatenate assembly rows (y), and within a row concatenate assembly
	// columns (x), each contributing its lattice's pin grid for this plane.
	for ay := 0; ay < core.Ny; ay++ {
		var rows [][]*Pin
		for ax := 0; ax < core.Nx; ax++ {
			lat := core.Assemblies[ay][ax].Lattices[planeInAssembly]
			if ax == 0 {
				rows = make([][]*Pin, lat.Ny)
				for r := range rows {
					rows[r] = append([]*Pin{}, lat.Pins[r]...)
				}
			} else {
				for r := 0; r < lat.Ny; r++ {
					rows[r] = append(rows[r], lat.Pins[r]...)
				}
			}
		}
		pins = append(pins, rows...)
	}

	ny := len(pins)
	nx := len(pins[0])
	first := make([][]int, ny)
	nFSR := 0
	for iy := 0; iy < ny; iy++ {
		first[iy] = make([]int, nx)
		for ix := 0; ix < nx; ix++ {
			first[iy][ix] = nFSR
			nFSR += pins[iy][ix].Mesh.NRegions()
		}
	}
	return &Plane{Nx: nx, Ny: ny, Pins: pins, firstFSRPin: first, nFSR: nFSR}
}

// FirstFSR returns the plane-local FSR offset of the pin at (ix,iy).
func (p *Plane) FirstFSR(ix, iy int) int {
	return p.firstFSRPin[iy][ix]
}

// NFSR returns the total number of flat source regions in the plane.
func (p *Plane) NFSR() int { return p.nFSR }

// pinMeshIDSeq returns the ordered PinMesh-id sequence of the plane, the
// sole basis for unique-plane equivalence (§4.2).
func (p *Plane) pinMeshIDSeq() []int {
	ids := make([]int, 0, p.Nx*p.Ny)
	for _, row := range p.Pins {
		for _, pin := range row {
			ids = append(ids, pin.Mesh.ID())
		}
	}
	return ids
}

func sameIDSeq(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Mesh composes the full structured core: the pin/lattice/assembly/core
// tables, plane deduplication, FSR indexing, and coarse cell/surface
// indexing.
type Mesh struct {
	Core *Core

	Nx, Ny, Nz int // coarse-cell (pin) grid dimensions

	Planes        []*Plane // one per axial level (nz of them)
	UniquePlanes  []*Plane // deduplicated plane list
	UniquePlaneID []int    // per axial level, index into UniquePlanes
	FirstUnique   []int    // per unique plane, the axial level of first occurrence

	FirstRegPlane []int // per axial level, the FSR offset of its first region
	NFSR          int

	CorePins []*Pin // flat pin sequence, in FSR order

	dz []float64 // plane thickness

	nSurfPlane int
	coarseSurf []int // [cell*6 + surface] -> global surface index

	BoundaryX []float64 // pin grid-line positions along x (length Nx+1)
	BoundaryY []float64 // pin grid-line positions along y (length Ny+1)
	BBox      geom.Box
}

// Build composes a Mesh from a Core.
func Build(core *Core) *Mesh {
	nz := len(core.Assemblies[0][0].Heights)
	m := &Mesh{Core: core, Nz: nz}

	m.Planes = make([]*Plane, nz)
	for iz := 0; iz < nz; iz++ {
		m.Planes[iz] = buildPlane(core, iz)
	}
	m.Nx = m.Planes[0].Nx
	m.Ny = m.Planes[0].Ny

	m.detectUniquePlanes()
	m.buildFSRIndex()
	m.buildGeometry()
	m.buildCoarseSurfaces()
	return m
}

func (m *Mesh) detectUniquePlanes() {
	m.UniquePlaneID = make([]int, m.Nz)
	for iz, plane := range m.Planes {
		seq := plane.pinMeshIDSeq()
		found := -1
		for u, up := range m.UniquePlanes {
			if sameIDSeq(seq, up.pinMeshIDSeq()) {
				found = u
				break
			}
		}
		if found < 0 {
			found = len(m.UniquePlanes)
			m.UniquePlanes = append(m.UniquePlanes, plane)
			m.FirstUnique = append(m.FirstUnique, iz)
		}
		m.UniquePlaneID[iz] = found
	}
}

func (m *Mesh) buildFSRIndex() {
	m.FirstRegPlane = make([]int, m.Nz)
	offset := 0
	for iz, plane := range m.Planes {
		m.FirstRegPlane[iz] = offset
		offset += plane.nFSR
		for _, row := range plane.Pins {
			for _, pin := range row {
				m.CorePins = append(m.CorePins, pin)
			}
		}
	}
	m.NFSR = offset
}

func (m *Mesh) buildGeometry() {
	m.BoundaryX = make([]float64, m.Nx+1)
	x := 0.0
	for ix := 0; ix < m.Nx; ix++ {
		m.BoundaryX[ix] = x
		x += m.Planes[0].Pins[0][ix].Mesh.Pitch
	}
	m.BoundaryX[m.Nx] = x

	m.BoundaryY = make([]float64, m.Ny+1)
	y := 0.0
	for iy := 0; iy < m.Ny; iy++ {
		m.BoundaryY[iy] = y
		y += m.Planes[0].Pins[iy][0].Mesh.Pitch
	}
	m.BoundaryY[m.Ny] = y

	m.BBox = geom.NewBox(m.BoundaryX[0], m.BoundaryX[m.Nx], m.BoundaryY[0], m.BoundaryY[m.Ny])

	m.dz = make([]float64, m.Nz)
	for iz := 0; iz < m.Nz; iz++ {
		// all assemblies share the same height sequence (asserted in NewCore)
		m.dz[iz] = m.Core.Assemblies[0][0].Heights[iz]
	}
}

// Height returns the axial thickness of level iz.
func (m *Mesh) Height(iz int) float64 { return m.dz[iz] }

// CoarseVolume returns the volume of coarse cell c.
func (m *Mesh) CoarseVolume(c int) float64 {
	pos := m.CoarsePosition(c)
	dx := m.BoundaryX[pos.Ix+1] - m.BoundaryX[pos.Ix]
	dy := m.BoundaryY[pos.Iy+1] - m.BoundaryY[pos.Iy]
	return dx * dy * m.dz[pos.Iz]
}

// Position is a (ix,iy,iz) coarse-cell coordinate.
type Position struct {
	Ix, Iy, Iz int
}

// NCoarseCell returns the total number of coarse (pin) cells.
func (m *Mesh) NCoarseCell() int { return m.Nx * m.Ny * m.Nz }

// CoarseCell returns the coarse-cell index of pos (natural x,y,z indexing).
func (m *Mesh) CoarseCell(pos Position) int {
	return pos.Iz*m.Nx*m.Ny + pos.Iy*m.Nx + pos.Ix
}

// CoarsePosition returns the (ix,iy,iz) coordinate of coarse cell c.
func (m *Mesh) CoarsePosition(c int) Position {
	return Position{
		Ix: c % m.Nx,
		Iy: (c % (m.Nx * m.Ny)) / m.Nx,
		Iz: c / (m.Nx * m.Ny),
	}
}

// nSurfPlane is nx*ny (bottom z-faces) + (nx+1)*ny (x-faces) +
// nx*(ny+1) (y-faces): the number of surfaces you must skip to reach the
// same in-plane surface one plane up (§6).
func (m *Mesh) planeSurfBegin(iz int) int       { return m.nSurfPlane * iz }
func (m *Mesh) planeSurfXYBegin(iz int) int     { return m.nSurfPlane*iz + m.Nx*m.Ny }
func (m *Mesh) planeSurfYBegin(iz int) int {
	return m.planeSurfXYBegin(iz) + (m.Nx+1)*m.Ny
}

func (m *Mesh) buildCoarseSurfaces() {
	m.nSurfPlane = m.Nx*m.Ny + (m.Nx+1)*m.Ny + m.Nx*(m.Ny+1)
	m.coarseSurf = make([]int, m.NCoarseCell()*6)

	for iz := 0; iz < m.Nz; iz++ {
		for iy := 0; iy < m.Ny; iy++ {
			for ix := 0; ix < m.Nx; ix++ {
				c := m.CoarseCell(Position{ix, iy, iz})
				bottom := m.planeSurfBegin(iz) + iy*m.Nx + ix
				top := m.planeSurfBegin(iz+1) + iy*m.Nx + ix
				west := m.planeSurfXYBegin(iz) + iy*(m.Nx+1) + ix
				east := m.planeSurfXYBegin(iz) + iy*(m.Nx+1) + (ix + 1)
				south := m.planeSurfYBegin(iz) + ix*(m.Ny+1) + iy
				north := m.planeSurfYBegin(iz) + ix*(m.Ny+1) + (iy + 1)

				m.coarseSurf[c*6+int(East)] = east
				m.coarseSurf[c*6+int(North)] = north
				m.coarseSurf[c*6+int(West)] = west
				m.coarseSurf[c*6+int(South)] = south
				m.coarseSurf[c*6+int(Top)] = top
				m.coarseSurf[c*6+int(Bottom)] = bottom
			}
		}
	}
}

// NSurf returns the total number of coarse surfaces.
func (m *Mesh) NSurf() int {
	return m.Nz*m.nSurfPlane + m.Nx*m.Ny
}

// CoarseSurf returns the global surface index of cell c's face surf.
func (m *Mesh) CoarseSurf(c int, surf Surface) int {
	if c < 0 || c >= m.NCoarseCell() {
		chk.Panic("coremesh: cell index %d out of range", c)
	}
	return m.coarseSurf[c*6+int(surf)]
}

// SurfaceNormal returns the coordinate axis (0=x,1=y,2=z) a surface's
// normal points along, derived from the surface's global index (P4).
func (m *Mesh) SurfaceNormal(surf int) int {
	iz := surf / m.nSurfPlane
	if iz >= m.Nz {
		return 2 // the extra top-of-topmost-plane block
	}
	local := surf - iz*m.nSurfPlane
	switch {
	case local < m.Nx*m.Ny:
		return 2
	case local < m.Nx*m.Ny+(m.Nx+1)*m.Ny:
		return 0
	default:
		return 1
	}
}

// CoarseNeighCells returns the pair of coarse-cell indices straddling
// surface surf, in increasing-position order (the first is "left"/"lower",
// the second "right"/"upper"); -1 signals a domain boundary on that side
// (P4).
func (m *Mesh) CoarseNeighCells(surf int) (left, right int) {
	switch m.SurfaceNormal(surf) {
	case 2: // Z
		iz := surf / m.nSurfPlane
		local := surf % m.nSurfPlane
		if surf >= m.Nz*m.nSurfPlane {
			iz = m.Nz
			local = surf - m.Nz*m.nSurfPlane
		}
		if iz > 0 {
			left = m.CoarseCell(Position{local % m.Nx, local / m.Nx, iz - 1})
		} else {
			left = -1
		}
		if iz < m.Nz {
			right = m.CoarseCell(Position{local % m.Nx, local / m.Nx, iz})
		} else {
			right = -1
		}
	case 0: // X
		iz := surf / m.nSurfPlane
		local := surf%m.nSurfPlane - m.Nx*m.Ny
		iy := local / (m.Nx + 1)
		ix := local % (m.Nx + 1)
		if ix > 0 {
			left = m.CoarseCell(Position{ix - 1, iy, iz})
		} else {
			left = -1
		}
		if ix < m.Nx {
			right = m.CoarseCell(Position{ix, iy, iz})
		} else {
			right = -1
		}
	default: // Y
		iz := surf / m.nSurfPlane
		local := surf%m.nSurfPlane - m.Nx*m.Ny - (m.Nx+1)*m.Ny
		ix := local / (m.Ny + 1)
		iy := local % (m.Ny + 1)
		if iy > 0 {
			left = m.CoarseCell(Position{ix, iy - 1, iz})
		} else {
			left = -1
		}
		if iy < m.Ny {
			right = m.CoarseCell(Position{ix, iy, iz})
		} else {
			right = -1
		}
	}
	return
}
