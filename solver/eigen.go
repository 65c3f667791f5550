// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"math"

	"github.com/cpmech/moccore/cmfd"
	"github.com/cpmech/moccore/coremesh"
	"github.com/cpmech/moccore/moc"
	"github.com/cpmech/moccore/quad"
	"github.com/cpmech/moccore/raydata"
	"github.com/cpmech/moccore/xs"
)

// EigenSolver drives the outer k-eigenvalue iteration: MoC sweeps every
// group over the fine FSR mesh, tallying coarse surface currents; CMFD
// accelerates the next guess by solving the coarse diffusion problem
// those currents feed; the CMFD pin flux is projected back onto the FSR
// mesh before the next round of sweeps (§4.11).
type EigenSolver struct {
	Mesh    *coremesh.Mesh
	XSMesh  *xs.Mesh
	NGroup  int
	Fixed   *FixedSourceSolver
	CMFD    *cmfd.Solver
	Coarse  *cmfd.CoarseData
	Homog   *xs.HomogenizedMesh
	cellFSR [][]int

	Flux      []float64 // FSR-major, [fsr*ng+g]
	Volume    []float64
	Transport [][]float64 // [group][fsr]
	K         float64

	KTol    float64
	PsiTol  float64
	MaxIter int
	NInner  int // inner iterations per group per sweep (§4.8)

	// KHistory and PsiHistory record k and the relative fission-source
	// change at the end of every outer iteration, for PlotHistory.
	KHistory   []float64
	PsiHistory []float64
}

// NewEigenSolver builds an EigenSolver over mesh/rays/quadrature for ng
// energy groups, initializing flux to a uniform guess and k to 1.
func NewEigenSolver(mesh *coremesh.Mesh, rays *raydata.Data, q *quad.AngularQuadrature, xsMesh *xs.Mesh, ng int, gaussSeidel bool) *EigenSolver {
	cellFSR := CellFSRs(mesh)
	homog := xs.NewHomogenizedMesh(mesh.NCoarseCell(), ng)
	coarse := cmfd.NewCoarseData(mesh, ng)

	e := &EigenSolver{
		Mesh:    mesh,
		XSMesh:  xsMesh,
		NGroup:  ng,
		Fixed:   NewFixedSourceSolver(mesh, rays, q, xsMesh, ng, gaussSeidel),
		CMFD:    cmfd.NewSolver(mesh, homog, coarse),
		Coarse:  coarse,
		Homog:   homog,
		cellFSR: cellFSR,
		Flux:    make([]float64, mesh.NFSR*ng),
		Volume:  GlobalFSRVolumes(mesh),
		K:       1,
		KTol:    1e-6,
		PsiTol:  1e-5,
		MaxIter: 200,
		NInner:  1,
	}
	for i := range e.Flux {
		e.Flux[i] = 1
	}
	e.Transport = make([][]float64, ng)
	for g := 0; g < ng; g++ {
		e.Transport[g] = xsMesh.ExpandTransport(g)
	}
	return e
}

// fissionSourceFSR returns fs_r = sum_g nu*Sigma_f,r,g * phi_r,g for every
// FSR, the group-independent source Builder.Fission scales by chi(g).
func (e *EigenSolver) fissionSourceFSR() []float64 {
	fs := make([]float64, e.Mesh.NFSR)
	for fsr := 0; fsr < e.Mesh.NFSR; fsr++ {
		mat := e.XSMesh.RegionOf(fsr).Material
		sum := 0.0
		for g := 0; g < e.NGroup; g++ {
			sum += mat.NuFission[g] * e.Flux[fsr*e.NGroup+g]
		}
		fs[fsr] = sum
	}
	return fs
}

// fissionSourceL2 returns the L2 norm of fs, used to judge fission-source
// convergence (P7/E2).
func fissionSourceL2(fs []float64) float64 {
	sum := 0.0
	for _, v := range fs {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// sweepAllGroups runs one MoC sweep of every group over the whole core,
// tallying coarse currents into e.Coarse when tally is true.
func (e *EigenSolver) sweepAllGroups(tally bool) {
	fs := e.fissionSourceFSR()
	if tally {
		e.Coarse.BeginTally()
	}
	for g := 0; g < e.NGroup; g++ {
		var workers []moc.CurrentWorker
		if tally {
			workers = NewCurrentWorkers(e.Mesh, e.Coarse, g)
		}
		e.Fixed.SweepGroup(g, e.NInner, fs, e.Flux, e.Transport[g], e.Volume, workers)
	}
	if tally {
		for g := 0; g < e.NGroup; g++ {
			e.Coarse.FinishTally(g)
		}
	}
}

// pinAverageFlux returns the volume-weighted average flux of cell c,
// group g, over the FSR flux currently held in e.Flux.
func (e *EigenSolver) pinAverageFlux(c, g int) float64 {
	num, den := 0.0, 0.0
	for _, fsr := range e.cellFSR[c] {
		v := e.Volume[fsr]
		num += v * e.Flux[fsr*e.NGroup+g]
		den += v
	}
	if den <= 0 {
		return 0
	}
	return num / den
}

// projectCMFD rescales every FSR's flux by the ratio of the CMFD-updated
// pin flux to the pin-average flux the FSR mesh currently holds, the
// standard "prolongation" step back from the coarse to the fine mesh.
func (e *EigenSolver) projectCMFD() {
	for c, fsrs := range e.cellFSR {
		for g := 0; g < e.NGroup; g++ {
			before := e.pinAverageFlux(c, g)
			after := e.CMFD.Phi[c][g]
			if before <= 0 {
				continue
			}
			ratio := after / before
			for _, fsr := range fsrs {
				e.Flux[fsr*e.NGroup+g] *= ratio
			}
		}
	}
}

// Solve runs the outer eigenvalue iteration until k and the FSR fission
// source converge or MaxIter elapses, returning the number of outer
// iterations performed (E2).
func (e *EigenSolver) Solve() int {
	fPrev := fissionSourceL2(e.fissionSourceFSR())
	if fPrev <= 0 {
		fPrev = 1
	}

	iter := 0
	for ; iter < e.MaxIter; iter++ {
		kOld := e.K

		// 1: MoC sweep tallying coarse currents from the current flux.
		e.sweepAllGroups(true)

		// 2: homogenize and feed the CMFD pin flux from the fine mesh.
		e.Homog.Update(e.XSMesh, e.cellFSR, e.Volume, e.Flux)
		for c := range e.CMFD.Phi {
			for g := 0; g < e.NGroup; g++ {
				avg := e.pinAverageFlux(c, g)
				e.Coarse.SetPinFlux(c, g, avg)
				e.CMFD.Phi[c][g] = avg
			}
		}
		e.Coarse.HasRadial = true
		e.CMFD.K = e.K

		// 3: CMFD solve updates Phi and k; Solve itself warns via diag on
		// outer/inner non-convergence (cmfd.Solver.Solve, bicgstab).
		e.CMFD.Solve()
		e.K = e.CMFD.K

		// 4: project the CMFD-corrected pin flux back onto the FSR mesh.
		e.projectCMFD()

		// 5: an extra group-by-group MoC sweep (no tally) lets the
		// within-group/in-scatter source react to the projected flux
		// before the next outer iteration's current tally.
		e.sweepAllGroups(false)

		fNew := fissionSourceL2(e.fissionSourceFSR())
		dk := math.Abs(e.K - kOld)
		dPsi := math.Abs(fNew-fPrev) / fPrev
		fPrev = fNew

		e.KHistory = append(e.KHistory, e.K)
		e.PsiHistory = append(e.PsiHistory, dPsi)

		if dk < e.KTol && dPsi < e.PsiTol {
			iter++
			break
		}
	}
	return iter
}
