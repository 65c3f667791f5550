// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"github.com/cpmech/moccore/bc"
	"github.com/cpmech/moccore/cmfd"
	"github.com/cpmech/moccore/coremesh"
	"github.com/cpmech/moccore/moc"
	"github.com/cpmech/moccore/quad"
	"github.com/cpmech/moccore/raydata"
	"github.com/cpmech/moccore/source"
	"github.com/cpmech/moccore/xs"
)

// FixedSourceSolver sweeps every axial level of the core for one energy
// group at a time, given the other groups' flux held fixed (the inner
// loop the outer eigenvalue iteration calls once per group per outer
// step, §4.11).
type FixedSourceSolver struct {
	Mesh    *coremesh.Mesh
	Rays    *raydata.Data
	Quad    *quad.AngularQuadrature
	XSMesh  *xs.Mesh
	NGroup  int
	sweeper *moc.Sweeper
	bd      []*bc.Store // one per axial level
}

// NewFixedSourceSolver builds a Sweeper over rays and a per-axial-level
// boundary store sized from each level's unique plane, and sweeps in
// Jacobi order (gaussSeidel selects within-group angle-by-angle updates).
func NewFixedSourceSolver(mesh *coremesh.Mesh, rays *raydata.Data, q *quad.AngularQuadrature, xsMesh *xs.Mesh, ng int, gaussSeidel bool) *FixedSourceSolver {
	s := &FixedSourceSolver{
		Mesh:    mesh,
		Rays:    rays,
		Quad:    q,
		XSMesh:  xsMesh,
		NGroup:  ng,
		sweeper: moc.NewSweeper(rays, q, gaussSeidel),
		bd:      make([]*bc.Store, mesh.Nz),
	}
	var face [6]bc.FaceType
	for i, b := range mesh.Core.BC {
		face[i] = bc.FromCoreBoundary(b)
	}
	for iz := 0; iz < mesh.Nz; iz++ {
		u := mesh.UniquePlaneID[iz]
		ar := rays.Rays[u]
		sizes := make([][3]int, len(q.Angles))
		for a := range sizes {
			r := ar[a%q.NPerOctant]
			sizes[a] = [3]int{r.Ny, r.Nx, 0}
		}
		s.bd[iz] = bc.NewPerAngle(ng, q, sizes, face)
	}
	return s
}

// SweepGroup advances group g's flux by nInner inner iterations (§4.8).
// Each iteration assembles the fission-plus-in-scatter source for group g
// (fissionSource is the group-independent fs_r = sum_g' nu*Sigma_f(g')*
// phi_r(g'), flux is the FSR-major whole-core flux buffer read for
// in-scattering), rebuilds the self-scatter q-bar from whatever flux the
// previous inner iteration left behind, and sweeps every axial level,
// slicing qbar/transport/volume at each level's global FSR offset,
// before writing the swept result back into flux at group g for the
// next inner iteration (or the caller) to read.
//
// currents, if non-nil, is invoked at every pin crossing of every level
// for coarse-current tallying — but only on the final inner iteration:
// earlier iterations' self-scatter source has not yet converged, and
// tallying them would sum unconverged contributions on top of the
// converged final sweep.
func (s *FixedSourceSolver) SweepGroup(g, nInner int, fissionSource, flux, transport, volume []float64, currents []moc.CurrentWorker) {
	newFlux := make([]float64, s.Mesh.NFSR)

	for inner := 0; inner < nInner; inner++ {
		b := source.NewBuilder(s.Mesh.NFSR)
		b.Reset(nil)
		b.Fission(s.XSMesh, fissionSource, g)
		if s.NGroup > 1 {
			b.InScatter(s.XSMesh, flux, s.NGroup, g)
		}
		finished := b.Finish()
		qbar := source.SelfScatter(s.XSMesh, finished, flux, s.NGroup, g, transport)

		for iz := 0; iz < s.Mesh.Nz; iz++ {
			u := s.Mesh.UniquePlaneID[iz]
			base := s.Mesh.FirstRegPlane[iz]
			n := s.Mesh.UniquePlanes[u].NFSR()

			localFlux := newFlux[base : base+n]
			localQbar := qbar[base : base+n]
			localTransport := transport[base : base+n]
			localVolume := volume[base : base+n]

			var worker moc.CurrentWorker = moc.NoOpCurrent{}
			if inner == nInner-1 && currents != nil && currents[iz] != nil {
				worker = currents[iz]
			}
			s.sweeper.SweepPlane(u, g, localQbar, localTransport, localVolume, localFlux, s.bd[iz], worker)
		}

		for fsr := 0; fsr < s.Mesh.NFSR; fsr++ {
			flux[fsr*s.NGroup+g] = newFlux[fsr]
		}
	}
}

// NewCurrentWorkers builds one currentWorker per axial level, all tallying
// into cd for group g, for use as SweepGroup's currents argument.
func NewCurrentWorkers(mesh *coremesh.Mesh, cd *cmfd.CoarseData, g int) []moc.CurrentWorker {
	out := make([]moc.CurrentWorker, mesh.Nz)
	for iz := range out {
		out[iz] = newCurrentWorker(mesh, cd, iz, g)
	}
	return out
}

// SweepGroupCDD runs a single, non-advancing inner sweep of group g with
// the CDD current-tally variant active on every axial level, returning
// the (alpha_x, alpha_y, beta) correction factors each level's sweep
// derives (§4.9). flux is read, not written: the sweep runs against a
// private copy, since this is meant to characterize the current
// converged flux rather than advance it.
func (s *FixedSourceSolver) SweepGroupCDD(g int, fissionSource, flux, transport, volume []float64) []*moc.CorrectionFactors {
	nAngle := len(s.Quad.Angles)
	cdd := NewCDDCurrentWorkers(s.Mesh, nAngle)
	currents := make([]moc.CurrentWorker, len(cdd))
	for i, w := range cdd {
		currents[i] = w
	}

	fluxCopy := append([]float64(nil), flux...)
	s.SweepGroup(g, 1, fissionSource, fluxCopy, transport, volume, currents)

	out := make([]*moc.CorrectionFactors, len(cdd))
	for iz, w := range cdd {
		cf := moc.NewCorrectionFactors(nAngle)
		w.Finish(cf, s.Quad)
		out[iz] = cf
	}
	return out
}
