// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"sync"

	"github.com/cpmech/moccore/coremesh"
	"github.com/cpmech/moccore/moc"
	"github.com/cpmech/moccore/quad"
)

// cddCurrentWorker implements moc.CurrentWorker, accumulating, per angle
// index and separately for the X-facing and Y-facing coarse surfaces a
// pin crossing lies on, the net current and surface flux tallied on this
// axial plane — the data moc.CDDCorrectionFactors needs to derive an
// angle pair's (alpha_x, alpha_y, beta) coefficients for a CDD-style
// diffusion sweeper (§4.9). Tally is called from the sweep's concurrent
// ray goroutines, so mu serializes the accumulation.
type cddCurrentWorker struct {
	mesh *coremesh.Mesh
	iz   int
	mu   sync.Mutex

	netX, netY   []float64 // [angle]
	fluxX, fluxY []float64
}

func newCDDCurrentWorker(mesh *coremesh.Mesh, iz, nAngle int) *cddCurrentWorker {
	return &cddCurrentWorker{
		mesh:  mesh,
		iz:    iz,
		netX:  make([]float64, nAngle),
		netY:  make([]float64, nAngle),
		fluxX: make([]float64, nAngle),
		fluxY: make([]float64, nAngle),
	}
}

// NewCDDCurrentWorkers builds one cddCurrentWorker per axial plane of
// mesh, each accumulating over nAngle angles (the full quadrature length,
// so that both the forward indices in the first two octants and their
// reversed backward partners have a slot).
func NewCDDCurrentWorkers(mesh *coremesh.Mesh, nAngle int) []*cddCurrentWorker {
	out := make([]*cddCurrentWorker, mesh.Nz)
	for iz := range out {
		out[iz] = newCDDCurrentWorker(mesh, iz, nAngle)
	}
	return out
}

// Tally accumulates wt*psi (surface flux) and wt*psi*cos (net current)
// for angle ai into whichever of netX/netY, fluxX/fluxY matches the
// global coarse surface's axis, following the same plane-local-cell to
// global-surface translation currentWorker.Tally uses.
func (w *cddCurrentWorker) Tally(ai, cell int, surf coremesh.Surface, wt, psi, ox, oy, oz float64) {
	ix := cell % w.mesh.Nx
	iy := cell / w.mesh.Nx
	gc := w.mesh.CoarseCell(coremesh.Position{Ix: ix, Iy: iy, Iz: w.iz})
	s := w.mesh.CoarseSurf(gc, surf)

	w.mu.Lock()
	defer w.mu.Unlock()
	switch w.mesh.SurfaceNormal(s) {
	case 0:
		w.netX[ai] += wt * psi * ox
		w.fluxX[ai] += wt * psi
	case 1:
		w.netY[ai] += wt * psi * oy
		w.fluxY[ai] += wt * psi
	}
}

// Finish derives cf's correction factors for every angle pair from this
// plane's accumulated tallies, visiting each forward/reverse-traversal
// pair exactly once.
func (w *cddCurrentWorker) Finish(cf *moc.CorrectionFactors, q *quad.AngularQuadrature) {
	visited := make([]bool, len(w.netX))
	for ai := range w.netX {
		if visited[ai] {
			continue
		}
		bai := q.Reverse(ai)
		visited[ai] = true
		visited[bai] = true
		moc.CDDCorrectionFactors(cf, ai, bai, w.fluxX[ai], w.fluxY[ai], w.netX[ai], w.netY[ai])
	}
}
