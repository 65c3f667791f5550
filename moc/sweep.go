// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package moc implements the Method-of-Characteristics sweep kernel: for
// one energy group, it walks every ray of every first-two-octant angle
// forward and backward through a unique plane, accumulating the flat
// source region scalar flux and updating boundary angular fluxes, with an
// optional current-tally worker invoked at every pin crossing.
package moc

import (
	"math"
	"runtime"
	"sync"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/moccore/bc"
	"github.com/cpmech/moccore/coremesh"
	"github.com/cpmech/moccore/quad"
	"github.com/cpmech/moccore/raydata"
)

// CurrentWorker is invoked at every pin crossing of every ray so a sweep
// can, optionally, tally coarse-surface net currents without the bare
// sweep paying for it (§4.9).
type CurrentWorker interface {
	// Tally records the angular-flux contribution crossing surf, the face
	// through which the ray's forward traversal leaves cell, for angle
	// index ai into the full angle list (the forward traversal passes its
	// index in [0,2*NPerOctant), the backward traversal the reversed index
	// Quad.Reverse(ai) in [2*NPerOctant,4*NPerOctant)), weighted by the
	// angle/ray quadrature weight w, at the crossing angular flux psi, for an
	// angle with direction cosines (ox, oy, oz) — enough for a worker to
	// form the surface partial current w*psi*|Omega.n| for whichever
	// axis surf's normal lies on, optionally keyed by ai for workers
	// that need a per-angle breakdown (e.g. CDD correction factors).
	Tally(ai, cell int, surf coremesh.Surface, w, psi, ox, oy, oz float64)
}

// NoOpCurrent implements CurrentWorker by doing nothing; used for plain
// flux sweeps where no current tally is needed.
type NoOpCurrent struct{}

// Tally does nothing.
func (NoOpCurrent) Tally(ai, cell int, surf coremesh.Surface, w, psi, ox, oy, oz float64) {}

// oneMinusExp returns 1 - exp(-x) using math.Expm1 for full accuracy
// across the whole range, including small x where exp(-x) would lose
// precision by subtraction.
func oneMinusExp(x float64) float64 {
	return -math.Expm1(-x)
}

// normalAndLocal decodes a ray's boundary-condition index into the
// (normal, face-local index) pair the bc.Store addresses, following the
// same x-face-then-y-face convention ray generation used to assign it.
func normalAndLocal(idx, ny int) (quad.Normal, int) {
	if idx < ny {
		return quad.XNorm, idx
	}
	return quad.YNorm, idx - ny
}

// Sweeper sweeps all rays of all angles of one unique plane for one
// energy group, given a pre-divided source q-bar and the boundary store
// covering that plane.
type Sweeper struct {
	Rays        *raydata.Data
	Quad        *quad.AngularQuadrature
	GaussSeidel bool
}

// NewSweeper builds a Sweeper over rays generated for quadrature q.
func NewSweeper(rays *raydata.Data, q *quad.AngularQuadrature, gaussSeidel bool) *Sweeper {
	if rays.Quad != q {
		chk.Panic("moc: sweeper quadrature must match the one ray data was generated from")
	}
	return &Sweeper{Rays: rays, Quad: q, GaussSeidel: gaussSeidel}
}

// SweepPlane sweeps unique plane u for group g, overwriting flux (indexed
// by the plane-local FSR numbering) with the new scalar flux, and
// updating bd's angular fluxes per the configured Jacobi/Gauss-Seidel
// policy (§4.8).
func (s *Sweeper) SweepPlane(u, g int, qbar, transport, volume, flux []float64, bd *bc.Store, worker CurrentWorker) {
	for i := range flux {
		flux[i] = 0
	}

	ar := s.Rays.Rays[u]
	n := s.Quad.NPerOctant
	nWorkers := runtime.GOMAXPROCS(0)

	for ai := 0; ai < 2*n; ai++ {
		bai := s.Quad.Reverse(ai)
		fwdA := s.Quad.Angles[ai]
		bwdA := s.Quad.Angles[bai]
		wtFwd := fwdA.Weight * ar[ai].Spacing * math.Sin(fwdA.Theta) * math.Pi
		wtBwd := bwdA.Weight * ar[ai].Spacing * math.Sin(bwdA.Theta) * math.Pi

		rays := ar[ai].Rays
		partials := sweepRaysConcurrent(rays, len(flux), nWorkers, func(r raydata.Ray, local []float64) {
			sweepOneRay(r, ar[ai].Ny, g, ai, bai, fwdA, bwdA, wtFwd, wtBwd, qbar, transport, local, bd, worker)
		})
		for _, p := range partials {
			for fsr, v := range p {
				flux[fsr] += v
			}
		}

		if s.GaussSeidel {
			bd.UpdateAngle(g, ai)
			bd.UpdateAngle(g, bai)
		}
	}
	if !s.GaussSeidel {
		bd.Update(g)
	}

	for fsr := range flux {
		flux[fsr] = flux[fsr]/(transport[fsr]*volume[fsr]) + qbar[fsr]*4*math.Pi
	}
}

// sweepRaysConcurrent partitions rays across up to nWorkers goroutines,
// each accumulating into a private flux buffer, joined on a WaitGroup
// (§5's fork-join shape). Boundary-condition slots are disjoint per ray
// within one angle, so no locking is needed there.
func sweepRaysConcurrent(rays []raydata.Ray, nFSR, nWorkers int, body func(r raydata.Ray, local []float64)) [][]float64 {
	if nWorkers < 1 {
		nWorkers = 1
	}
	if nWorkers > len(rays) {
		nWorkers = len(rays)
	}
	if nWorkers <= 1 {
		local := make([]float64, nFSR)
		for _, r := range rays {
			body(r, local)
		}
		return [][]float64{local}
	}

	partials := make([][]float64, nWorkers)
	var wg sync.WaitGroup
	chunk := (len(rays) + nWorkers - 1) / nWorkers
	for w := 0; w < nWorkers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > len(rays) {
			hi = len(rays)
		}
		if lo >= hi {
			continue
		}
		partials[w] = make([]float64, nFSR)
		wg.Add(1)
		go func(lo, hi int, local []float64) {
			defer wg.Done()
			for _, r := range rays[lo:hi] {
				body(r, local)
			}
		}(lo, hi, partials[w])
	}
	wg.Wait()
	return partials
}

// sweepOneRay performs the forward and backward characteristic
// integration of one ray, reading/writing the boundary store's per-angle
// slots and accumulating into the caller-provided flux buffer.
func sweepOneRay(r raydata.Ray, ny, g, ai, bai int, fwdA, bwdA quad.Angle, wtFwd, wtBwd float64, qbar, transport, flux []float64, bd *bc.Store, worker CurrentWorker) {
	n := len(r.Segments)
	eTau := make([]float64, n)
	sinFwd := math.Sin(fwdA.Theta)
	sinBwd := math.Sin(bwdA.Theta)

	startNorm, startLocal := normalAndLocal(r.BCStart, ny)
	endNorm, endLocal := normalAndLocal(r.BCEnd, ny)

	// forward traversal: entry at BCStart, exit at BCEnd.
	for i, seg := range r.Segments {
		eTau[i] = oneMinusExp(transport[seg.FSR] * seg.Length / sinFwd)
	}
	psi := bd.InSlice(g, ai, startNorm)[startLocal]
	for i, seg := range r.Segments {
		dpsi := (psi - qbar[seg.FSR]) * eTau[i]
		psi -= dpsi
		flux[seg.FSR] += dpsi * wtFwd
		if seg.Crossing != nil {
			worker.Tally(ai, seg.Crossing.Cell, seg.Crossing.Surf, wtFwd, psi, fwdA.Ox, fwdA.Oy, fwdA.Oz)
		}
	}
	bd.OutSlice(g, ai, endNorm)[endLocal] = psi

	// backward traversal: entry at BCEnd, exit at BCStart, segments
	// walked in reverse order.
	for i, seg := range r.Segments {
		eTau[i] = oneMinusExp(transport[seg.FSR] * seg.Length / sinBwd)
	}
	psi = bd.InSlice(g, bai, endNorm)[endLocal]
	for i := n - 1; i >= 0; i-- {
		seg := r.Segments[i]
		if seg.Crossing != nil {
			// walking backward, the surface lies before this segment
			worker.Tally(bai, seg.Crossing.Cell, seg.Crossing.Surf, wtBwd, psi, bwdA.Ox, bwdA.Oy, bwdA.Oz)
		}
		dpsi := (psi - qbar[seg.FSR]) * eTau[i]
		psi -= dpsi
		flux[seg.FSR] += dpsi * wtBwd
	}
	bd.OutSlice(g, bai, startNorm)[startLocal] = psi
}
