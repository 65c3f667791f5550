// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package cmfd implements the Coarse-Mesh Finite-Difference acceleration
// solver: non-linear diffusion coefficients derived from transport-sweep
// currents, a per-group sparse diffusion operator solved by a hand-rolled
// BiCGSTAB, and the power-iteration eigenvalue update.
package cmfd

import "github.com/cpmech/moccore/coremesh"

// CoarseData holds, per coarse surface and energy group, the transport-
// tallied net current and surface scalar flux, the two partial currents
// derived from them, their previous-iterate snapshot, and the pin-average
// scalar flux. HasRadial/HasAxial record whether a sweeper has actually
// populated the in-plane/axial entries this iteration; CMFD falls back to
// a purely linear (D-tilde only) operator until they have.
type CoarseData struct {
	Mesh   *coremesh.Mesh
	NGroup int

	NetCurrent  [][]float64 // [surface][group]
	SurfaceFlux [][]float64 // [surface][group]

	PartialPlus  [][]float64 // [surface][group]
	PartialMinus [][]float64
	prevPlus     [][]float64
	prevMinus    [][]float64

	PinFlux     [][]float64 // [cell][group]
	prevPinFlux [][]float64

	HasRadial bool
	HasAxial  bool

	accNet      [][]float64 // [surface][group], zeroed by BeginTally
	accSurfFlux [][]float64
}

// NewCoarseData allocates a CoarseData over mesh's coarse surfaces/cells
// for ng energy groups.
func NewCoarseData(mesh *coremesh.Mesh, ng int) *CoarseData {
	nSurf := mesh.NSurf()
	nCell := mesh.NCoarseCell()
	cd := &CoarseData{Mesh: mesh, NGroup: ng}
	cd.NetCurrent = alloc2(nSurf, ng)
	cd.SurfaceFlux = alloc2(nSurf, ng)
	cd.PartialPlus = alloc2(nSurf, ng)
	cd.PartialMinus = alloc2(nSurf, ng)
	cd.prevPlus = alloc2(nSurf, ng)
	cd.prevMinus = alloc2(nSurf, ng)
	cd.PinFlux = alloc2(nCell, ng)
	cd.prevPinFlux = alloc2(nCell, ng)
	cd.accNet = alloc2(nSurf, ng)
	cd.accSurfFlux = alloc2(nSurf, ng)
	return cd
}

// BeginTally zeroes the raw current/surface-flux accumulators ahead of a
// fresh sweep over all groups; a CurrentWorker adds into them surface by
// surface, and FinishTally turns the per-group totals into the stored
// net current, surface flux, and derived partial currents.
func (cd *CoarseData) BeginTally() {
	for s := range cd.accNet {
		for g := range cd.accNet[s] {
			cd.accNet[s][g] = 0
			cd.accSurfFlux[s][g] = 0
		}
	}
}

// AddTally accumulates one angle's contribution to surface s, group g:
// dNet is the signed partial w*psi*cos, dSurfFlux is w*psi.
func (cd *CoarseData) AddTally(s, g int, dNet, dSurfFlux float64) {
	cd.accNet[s][g] += dNet
	cd.accSurfFlux[s][g] += dSurfFlux
}

// FinishTally converts the accumulated raw sums for group g into the
// stored net current, surface flux, and partial currents via StoreCurrent.
func (cd *CoarseData) FinishTally(g int) {
	for s := range cd.accNet {
		cd.StoreCurrent(s, g, cd.accNet[s][g], cd.accSurfFlux[s][g])
	}
}

func alloc2(n, m int) [][]float64 {
	out := make([][]float64, n)
	for i := range out {
		out[i] = make([]float64, m)
	}
	return out
}

// StoreCurrent records the net current and surface scalar flux a sweep
// tallied for surface s, group g, and derives the partial currents as
// (surface_flux/4 +/- current/2), the convention confirmed against the
// reference's cmfd.cpp (§9).
func (cd *CoarseData) StoreCurrent(s, g int, netCurrent, surfaceFlux float64) {
	cd.NetCurrent[s][g] = netCurrent
	cd.SurfaceFlux[s][g] = surfaceFlux
	cd.PartialPlus[s][g] = surfaceFlux/4 + netCurrent/2
	cd.PartialMinus[s][g] = surfaceFlux/4 - netCurrent/2
}

// SnapshotPartials copies the current partial currents into the
// previous-iterate buffers, called once per outer CMFD update before new
// transport currents are tallied.
func (cd *CoarseData) SnapshotPartials() {
	for s := range cd.PartialPlus {
		copy(cd.prevPlus[s], cd.PartialPlus[s])
		copy(cd.prevMinus[s], cd.PartialMinus[s])
	}
}

// PrevPartials returns the previous-iterate (plus, minus) partial
// currents for surface s, group g.
func (cd *CoarseData) PrevPartials(s, g int) (plus, minus float64) {
	return cd.prevPlus[s][g], cd.prevMinus[s][g]
}

// SetPinFlux stores the pin-average flux for cell c, group g, moving the
// old value into the previous-iterate snapshot first.
func (cd *CoarseData) SetPinFlux(c, g int, v float64) {
	cd.prevPinFlux[c][g] = cd.PinFlux[c][g]
	cd.PinFlux[c][g] = v
}
