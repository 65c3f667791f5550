// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmfd

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"

	"github.com/cpmech/moccore/coremesh"
	"github.com/cpmech/moccore/diag"
	"github.com/cpmech/moccore/xs"
)

const floor = 1e-12

// reflectOrVacuumD returns the boundary-side "d" value of the d=D/h
// convention (§4.10): 0 for a reflective face (no diffusion across it) or
// 1/2 for a vacuum face, replicated literally rather than derived from a
// ghost cell.
func reflectOrVacuumD(bcond coremesh.BoundaryType) float64 {
	if bcond == coremesh.Vacuum {
		return 0.5
	}
	return 0 // Reflect and Periodic both behave as a zero-current face here
}

// positiveSide reports whether surf is one of the three directions
// (East/North/Top) that make a cell the "left" side of its surface; the
// sign of D-hat is flipped on the other three (§4.10).
func positiveSide(surf coremesh.Surface) bool {
	return surf == coremesh.East || surf == coremesh.North || surf == coremesh.Top
}

func areaOf(mesh *coremesh.Mesh, pos coremesh.Position, surf coremesh.Surface) float64 {
	dx := mesh.BoundaryX[pos.Ix+1] - mesh.BoundaryX[pos.Ix]
	dy := mesh.BoundaryY[pos.Iy+1] - mesh.BoundaryY[pos.Iy]
	switch surf {
	case coremesh.East, coremesh.West:
		return dy * mesh.CoarseVolume(mesh.CoarseCell(pos)) / (dx * dy)
	case coremesh.North, coremesh.South:
		return dx * mesh.CoarseVolume(mesh.CoarseCell(pos)) / (dx * dy)
	default:
		return dx * dy
	}
}

func halfWidth(mesh *coremesh.Mesh, pos coremesh.Position, surf coremesh.Surface) float64 {
	switch surf {
	case coremesh.East, coremesh.West:
		return (mesh.BoundaryX[pos.Ix+1] - mesh.BoundaryX[pos.Ix]) / 2
	case coremesh.North, coremesh.South:
		return (mesh.BoundaryY[pos.Iy+1] - mesh.BoundaryY[pos.Iy]) / 2
	default:
		return mesh.CoarseVolume(mesh.CoarseCell(pos)) / areaOf(mesh, pos, surf) / 2
	}
}

// boundaryFaceOf maps a local face direction to the Core's outer boundary
// condition for it; only meaningful when that face has no neighbour.
func boundaryFaceOf(mesh *coremesh.Mesh, surf coremesh.Surface) coremesh.BoundaryType {
	return mesh.Core.BC[surf]
}

// Solver assembles and solves the per-group CMFD diffusion operator and
// drives the outer power iteration (§4.10).
type Solver struct {
	Mesh   *coremesh.Mesh
	Homog  *xs.HomogenizedMesh
	Coarse *CoarseData

	Enabled       bool
	NegativeFixup bool

	KTol          float64
	PsiTol        float64
	ResidReduction float64
	MaxIter       int
	MaxLinIter    int

	K   float64
	Phi [][]float64 // [cell][group]

	fissionSource float64
}

// NewSolver builds a Solver with the default tolerances used throughout
// this package's non-linear solve loops (1e-6 on k and on the fission
// source, a 1e-3 residual reduction, 100 outer and 1500 linear iterations).
func NewSolver(mesh *coremesh.Mesh, homog *xs.HomogenizedMesh, coarse *CoarseData) *Solver {
	s := &Solver{
		Mesh: mesh, Homog: homog, Coarse: coarse,
		Enabled: true, KTol: 1e-6, PsiTol: 1e-6, ResidReduction: 1e-3,
		MaxIter: 100, MaxLinIter: 1500, K: 1,
	}
	s.Phi = make([][]float64, mesh.NCoarseCell())
	for c := range s.Phi {
		s.Phi[c] = make([]float64, homog.NGroup)
		for g := range s.Phi[c] {
			s.Phi[c][g] = 1
		}
	}
	return s
}

// surfaceCoeffs computes (D-tilde, D-hat, area) for the face surf of cell
// c, for group g, falling back to the reflect/vacuum boundary convention
// when that face has no neighbouring cell.
func (s *Solver) surfaceCoeffs(c int, surf coremesh.Surface, g int) (dTilde, dHat, area float64) {
	pos := s.Mesh.CoarsePosition(c)
	gsurf := s.Mesh.CoarseSurf(c, surf)
	left, right := s.Mesh.CoarseNeighCells(gsurf)
	area = areaOf(s.Mesh, pos, surf)

	dC := (1 / (3 * s.Homog.Transport[c][g])) / halfWidth(s.Mesh, pos, surf)

	var other int
	if positiveSide(surf) {
		other = right
	} else {
		other = left
	}

	var dOther float64
	if other < 0 {
		dOther = reflectOrVacuumD(boundaryFaceOf(s.Mesh, surf))
	} else {
		posOther := s.Mesh.CoarsePosition(other)
		oppFace := opposite(surf)
		dOther = (1 / (3 * s.Homog.Transport[other][g])) / halfWidth(s.Mesh, posOther, oppFace)
	}

	if dC+dOther <= floor {
		dTilde = 0
	} else {
		dTilde = 2 * dC * dOther / (dC + dOther)
	}

	axial := surf == coremesh.Top || surf == coremesh.Bottom
	hasData := s.Coarse.HasRadial
	if axial {
		hasData = s.Coarse.HasAxial
	}

	dHat = 0
	if other >= 0 && hasData {
		phiL, phiR := s.Phi[c][g], s.Phi[other][g]
		if !positiveSide(surf) {
			phiL, phiR = phiR, phiL
		}
		denom := phiL + phiR
		if denom > floor {
			j := s.Coarse.NetCurrent[gsurf][g]
			dHat = (j + dTilde*(phiR-phiL)) / denom
		}
	}
	return
}

func opposite(surf coremesh.Surface) coremesh.Surface {
	switch surf {
	case coremesh.East:
		return coremesh.West
	case coremesh.West:
		return coremesh.East
	case coremesh.North:
		return coremesh.South
	case coremesh.South:
		return coremesh.North
	case coremesh.Top:
		return coremesh.Bottom
	default:
		return coremesh.Top
	}
}

var allFaces = [6]coremesh.Surface{coremesh.East, coremesh.North, coremesh.West, coremesh.South, coremesh.Top, coremesh.Bottom}

// assembleGroup builds the sparse diagonal-dominant diffusion operator for
// group g; the right-hand side is built separately by groupSource.
func (s *Solver) assembleGroup(g int) *la.CCMatrix {
	nc := s.Mesh.NCoarseCell()
	trip := new(la.Triplet)
	trip.Init(nc, nc, nc*7)

	diag := make([]float64, nc)
	removal := make([]float64, nc)
	for c := 0; c < nc; c++ {
		removal[c] = s.Homog.Absorption[c][g] + s.Homog.Scatter[c].Outscatter(g)
		diag[c] = s.Mesh.CoarseVolume(c) * removal[c]
	}

	for c := 0; c < nc; c++ {
		for _, face := range allFaces {
			dTilde, dHat, area := s.surfaceCoeffs(c, face, g)
			sign := 1.0
			if !positiveSide(face) {
				sign = -1.0
			}
			diag[c] += area * (dTilde + sign*dHat)

			gsurf := s.Mesh.CoarseSurf(c, face)
			left, right := s.Mesh.CoarseNeighCells(gsurf)
			neigh := right
			if !positiveSide(face) {
				neigh = left
			}
			if neigh >= 0 {
				trip.Put(c, neigh, area*(sign*dHat-dTilde))
			}
		}
	}
	for c := 0; c < nc; c++ {
		trip.Put(c, c, diag[c])
	}

	return trip.ToMatrix(nil)
}

// FissionSource returns the total (volume-integrated) fission source
// Sum_c Sum_g nu*sigma_f,c,g * phi_c,g.
func (s *Solver) FissionSource() float64 {
	total := 0.0
	for c := 0; c < s.Mesh.NCoarseCell(); c++ {
		vol := s.Mesh.CoarseVolume(c)
		for g := 0; g < s.Homog.NGroup; g++ {
			total += vol * s.Homog.NuFission[c][g] * s.Phi[c][g]
		}
	}
	return total
}

func (s *Solver) groupSource(g int) []float64 {
	nc := s.Mesh.NCoarseCell()
	q := make([]float64, nc)
	ng := s.Homog.NGroup
	for c := 0; c < nc; c++ {
		vol := s.Mesh.CoarseVolume(c)
		fiss := 0.0
		for gp := 0; gp < ng; gp++ {
			fiss += s.Homog.Chi[c][g] * s.Homog.NuFission[c][gp] * s.Phi[c][gp]
		}
		scat := 0.0
		sm := s.Homog.Scatter[c]
		for gp := sm.MinG[g]; gp <= sm.MaxG[g]; gp++ {
			if gp == g {
				continue
			}
			scat += sm.Get(g, gp) * s.Phi[c][gp]
		}
		q[c] = vol * (fiss/s.K + scat)
		if s.NegativeFixup && q[c] < 0 {
			q[c] = 0
		}
	}
	return q
}

// Solve runs the outer power iteration (§4.10's solve loop) until k and
// fission-source residuals converge or MaxIter outer iterations elapse,
// returning the number of outer iterations performed.
func (s *Solver) Solve() int {
	if !s.Enabled {
		return 0
	}
	fOld := s.FissionSource()
	if fOld <= 0 {
		fOld = 1
	}
	s.fissionSource = fOld

	iter := 0
	for ; iter < s.MaxIter; iter++ {
		kOld := s.K
		fPrev := s.fissionSource

		for g := 0; g < s.Homog.NGroup; g++ {
			q := s.groupSource(g)
			a := s.assembleGroup(g)
			x := make([]float64, len(q))
			for c := range x {
				x[c] = s.Phi[c][g]
			}
			r0 := residualNorm(a, q, x)
			tol := s.ResidReduction * r0
			if r0 <= floor {
				tol = floor
			}
			linIter := bicgstab(a, q, x, tol, s.MaxLinIter)
			if linIter >= s.MaxLinIter {
				diag.Warnf("cmfd: group %d linear solve did not converge within %d iterations", g, s.MaxLinIter)
			}
			for c := range x {
				if s.NegativeFixup && x[c] < 0 {
					x[c] = 0
				}
				s.Phi[c][g] = x[c]
			}
		}

		fNew := s.FissionSource()
		s.K = kOld * fNew / fOld
		s.fissionSource = fNew

		dk := math.Abs(s.K - kOld)
		dPsi := math.Abs(fNew - fPrev)
		fOld = fNew
		if dk < s.KTol && dPsi < s.PsiTol {
			iter++
			break
		}
	}
	if iter >= s.MaxIter {
		diag.Warnf("cmfd: solve did not converge within %d outer iterations", s.MaxIter)
	}
	return iter
}

// residualNorm computes ||A*x - b|| using the gosl sparse matvec family.
func residualNorm(a *la.CCMatrix, b, x []float64) float64 {
	r := make([]float64, len(b))
	copy(r, b)
	la.SpMatVecMulAdd(r, -1, a, x)
	return la.VecNorm(r)
}

// bicgstab is a hand-rolled (unpreconditioned) bi-conjugate gradient
// stabilized solve of a*x = b, used because gosl does not ship a boxed
// iterative sparse solver (la.GetSolver only wraps the direct umfpack/
// mumps backends). It mutates x in place and returns the iterations used.
func bicgstab(a *la.CCMatrix, b, x []float64, tol float64, maxIter int) int {
	n := len(b)
	r := make([]float64, n)
	copy(r, b)
	la.SpMatVecMulAdd(r, -1, a, x)

	rHat := make([]float64, n)
	copy(rHat, r)

	rho, alpha, omega := 1.0, 1.0, 1.0
	v := make([]float64, n)
	p := make([]float64, n)
	s := make([]float64, n)
	t := make([]float64, n)

	if la.VecNorm(r) <= tol {
		return 0
	}

	for it := 0; it < maxIter; it++ {
		rhoNew := la.VecDot(rHat, r)
		if math.Abs(rhoNew) < 1e-300 {
			break
		}
		if it == 0 {
			copy(p, r)
		} else {
			beta := (rhoNew / rho) * (alpha / omega)
			for i := range p {
				p[i] = r[i] + beta*(p[i]-omega*v[i])
			}
		}
		rho = rhoNew

		for i := range v {
			v[i] = 0
		}
		la.SpMatVecMulAdd(v, 1, a, p)

		alpha = rho / la.VecDot(rHat, v)
		for i := range s {
			s[i] = r[i] - alpha*v[i]
		}
		if la.VecNorm(s) <= tol {
			for i := range x {
				x[i] += alpha * p[i]
			}
			return it + 1
		}

		for i := range t {
			t[i] = 0
		}
		la.SpMatVecMulAdd(t, 1, a, s)
		tt := la.VecDot(t, t)
		if tt < 1e-300 {
			chk.Panic("cmfd: bicgstab breakdown (t.t ~ 0)")
		}
		omega = la.VecDot(t, s) / tt

		for i := range x {
			x[i] += alpha*p[i] + omega*s[i]
		}
		for i := range r {
			r[i] = s[i] - omega*t[i]
		}
		if la.VecNorm(r) <= tol {
			return it + 1
		}
	}
	return maxIter
}
