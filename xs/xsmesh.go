// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xs

import "github.com/cpmech/gosl/chk"

// Region is one material-equivalence-class: the flat-source regions (FSRs)
// sharing the same material, with pointers into that material's per-group
// arrays and its scattering matrix.
type Region struct {
	Material *Material
	FSRs     []int
}

// Mesh maps every FSR index to its owning Region.
type Mesh struct {
	NFSR    int
	Regions []*Region
	fsrRgn  []int // FSR -> index into Regions
}

// NewMesh builds an XS mesh from a per-FSR material-ID assignment and the
// library those IDs are drawn from. FSRs sharing a material ID are grouped
// into one Region.
func NewMesh(fsrMaterialID []int, lib *Library) *Mesh {
	nFSR := len(fsrMaterialID)
	byMat := map[int]*Region{}
	order := []int{}
	for fsr, matID := range fsrMaterialID {
		r, ok := byMat[matID]
		if !ok {
			r = &Region{Material: lib.ByID(matID)}
			byMat[matID] = r
			order = append(order, matID)
		}
		r.FSRs = append(r.FSRs, fsr)
	}
	m := &Mesh{NFSR: nFSR, fsrRgn: make([]int, nFSR)}
	for _, matID := range order {
		idx := len(m.Regions)
		m.Regions = append(m.Regions, byMat[matID])
		for _, fsr := range byMat[matID].FSRs {
			m.fsrRgn[fsr] = idx
		}
	}
	return m
}

// RegionOf returns the Region owning FSR fsr.
func (m *Mesh) RegionOf(fsr int) *Region {
	return m.Regions[m.fsrRgn[fsr]]
}

// ExpandTransport returns sigma_tr for group g, one value per FSR, the
// layout the MoC sweep kernel consumes directly (§4.8 step 1).
func (m *Mesh) ExpandTransport(g int) []float64 {
	out := make([]float64, m.NFSR)
	for fsr := 0; fsr < m.NFSR; fsr++ {
		out[fsr] = m.RegionOf(fsr).Material.Transport[g]
	}
	return out
}

// HomogenizedMesh is the coarse (pin-homogenized) counterpart of Mesh: one
// set of macroscopic cross sections per coarse cell, produced by
// volume- or flux-volume-weighted homogenization of the underlying FSRs.
type HomogenizedMesh struct {
	NGroup    int
	NCell     int
	Absorption [][]float64 // [cell][group]
	NuFission  [][]float64
	Transport  [][]float64
	Chi        [][]float64
	Scatter    []*ScatteringMatrix // per cell
	updated    bool
}

// NewHomogenizedMesh allocates a HomogenizedMesh for nCell coarse cells and
// ng energy groups; call Update to populate it.
func NewHomogenizedMesh(nCell, ng int) *HomogenizedMesh {
	h := &HomogenizedMesh{NGroup: ng, NCell: nCell}
	h.Absorption = alloc2(nCell, ng)
	h.NuFission = alloc2(nCell, ng)
	h.Transport = alloc2(nCell, ng)
	h.Chi = alloc2(nCell, ng)
	h.Scatter = make([]*ScatteringMatrix, nCell)
	return h
}

func alloc2(n, m int) [][]float64 {
	out := make([][]float64, n)
	for i := range out {
		out[i] = make([]float64, m)
	}
	return out
}

// Update recomputes every coarse cell's homogenized cross sections by
// flux-volume weighting the FSRs belonging to that cell (R1: idempotent
// given a fixed flux). cellFSRs maps coarse cell -> its FSR indices;
// fsrVolume and flux are indexed by FSR, FSR-major for flux
// (flux[fsr*ng+g]).
func (h *HomogenizedMesh) Update(mesh *Mesh, cellFSRs [][]int, fsrVolume []float64, flux []float64) {
	ng := h.NGroup
	for c, fsrs := range cellFSRs {
		if len(fsrs) == 0 {
			chk.Panic("xs: coarse cell %d has no flat source regions", c)
		}
		for g := 0; g < ng; g++ {
			h.Absorption[c][g] = 0
			h.NuFission[c][g] = 0
			h.Transport[c][g] = 0
			h.Chi[c][g] = 0
		}
		denom := make([]float64, ng)
		for _, fsr := range fsrs {
			vol := fsrVolume[fsr]
			for g := 0; g < ng; g++ {
				denom[g] += vol * flux[fsr*ng+g]
			}
		}

		dense := make([][]float64, ng)
		for g := range dense {
			dense[g] = make([]float64, ng)
		}

		for _, fsr := range fsrs {
			mat := mesh.RegionOf(fsr).Material
			vol := fsrVolume[fsr]
			for g := 0; g < ng; g++ {
				w := vol * flux[fsr*ng+g]
				if denom[g] <= 0 {
					continue
				}
				frac := w / denom[g]
				h.Absorption[c][g] += frac * mat.Absorption[g]
				h.NuFission[c][g] += frac * mat.NuFission[g]
				h.Transport[c][g] += frac * mat.Transport[g]
				h.Chi[c][g] += frac * mat.Chi[g]
				for to := 0; to < ng; to++ {
					dense[to][g] += frac * mat.Scatter.Get(to, g)
				}
			}
		}
		h.Scatter[c] = NewScatteringMatrix(dense)
	}
	h.updated = true
}

// Updated reports whether Update has run at least once.
func (h *HomogenizedMesh) Updated() bool { return h.updated }
