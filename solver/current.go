// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"sync"

	"github.com/cpmech/moccore/cmfd"
	"github.com/cpmech/moccore/coremesh"
)

// currentWorker implements moc.CurrentWorker by translating a plane-local
// pin crossing (cell numbered within its own axial level, as raydata
// assigns it) into the global coarse cell/surface cmfd.CoarseData is
// indexed by, then tallying the signed partial current and surface flux
// into it (§4.9).
//
// The tallied current uses a single FIXED global surface normal, always
// pointing along the increasing-coordinate direction of whichever axis
// surf lies on (the convention coremesh.CoarseNeighCells' left/right
// ordering already establishes) — so the raw direction cosine (ox, oy, or
// oz) is used directly, with no sign flip by surf: crossingFor only ever
// reports a West/South/Bottom exit when the ray is travelling in the
// corresponding negative direction, which already gives the correct sign.
//
// Tally is called from the sweep's concurrent ray goroutines, so mu
// serializes the accumulation into cd.
type currentWorker struct {
	mesh *coremesh.Mesh
	cd   *cmfd.CoarseData
	iz   int
	g    int
	mu   sync.Mutex
}

func newCurrentWorker(mesh *coremesh.Mesh, cd *cmfd.CoarseData, iz, g int) *currentWorker {
	return &currentWorker{mesh: mesh, cd: cd, iz: iz, g: g}
}

func (w *currentWorker) Tally(ai, cell int, surf coremesh.Surface, wt, psi, ox, oy, oz float64) {
	ix := cell % w.mesh.Nx
	iy := cell / w.mesh.Nx
	gc := w.mesh.CoarseCell(coremesh.Position{Ix: ix, Iy: iy, Iz: w.iz})
	s := w.mesh.CoarseSurf(gc, surf)

	var cos float64
	switch w.mesh.SurfaceNormal(s) {
	case 0:
		cos = ox
	case 1:
		cos = oy
	default:
		cos = oz
	}

	w.mu.Lock()
	w.cd.AddTally(s, w.g, wt*psi*cos, wt*psi)
	w.mu.Unlock()
}
