// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package bc implements the per-group, per-angle, per-face boundary
// condition store: a flat buffer of incoming/outgoing angular fluxes with
// reflective, vacuum, periodic and prescribed update operators, addressed
// group-major by a per-(angle,normal) offset table.
package bc

import (
	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/moccore/coremesh"
	"github.com/cpmech/moccore/quad"
)

// FaceType names the boundary behavior of one of the six domain faces.
type FaceType int

// Face boundary types.
const (
	Vacuum FaceType = iota
	Reflect
	Periodic
	Prescribed
)

// FromCoreBoundary converts a coremesh.BoundaryType into the corresponding
// FaceType; Prescribed has no coremesh counterpart and is never produced
// here.
func FromCoreBoundary(b coremesh.BoundaryType) FaceType {
	switch b {
	case coremesh.Vacuum:
		return Vacuum
	case coremesh.Reflect:
		return Reflect
	case coremesh.Periodic:
		return Periodic
	}
	chk.Panic("bc: unknown core boundary type %v", b)
	return Vacuum
}

// entryFace returns the domain face an angle with the given direction
// cosine sign enters through along a coordinate normal.
func entryFace(normal quad.Normal, a quad.Angle) coremesh.Surface {
	switch normal {
	case quad.XNorm:
		if a.Ox > 0 {
			return coremesh.West
		}
		return coremesh.East
	case quad.YNorm:
		if a.Oy > 0 {
			return coremesh.South
		}
		return coremesh.North
	default:
		if a.Oz > 0 {
			return coremesh.Bottom
		}
		return coremesh.Top
	}
}

// Store is a multi-group, multi-angle, per-face buffer of boundary
// angular fluxes. Size[a][n] gives the number of face-local positions for
// angle a along normal n (0=X,1=Y,2=Z); it may vary per angle (the MoC
// case, driven by ray-data modular counts) or be uniform (the Sn case).
type Store struct {
	NGroup int
	Quad   *quad.AngularQuadrature
	Face   [6]FaceType // indexed by coremesh.Surface

	size   [][3]int
	offset [][3]int
	perGrp int

	In  []float64 // flat: group*perGrp + offset[a][n] + local
	Out []float64
}

// NewUniform builds a Store where every angle has the same face-local
// count per normal (the Sn case).
func NewUniform(ng int, q *quad.AngularQuadrature, countPerNormal [3]int, face [6]FaceType) *Store {
	n := len(q.Angles)
	sizes := make([][3]int, n)
	for a := range sizes {
		sizes[a] = countPerNormal
	}
	return newStore(ng, q, sizes, face)
}

// NewPerAngle builds a Store where each angle supplies its own face-local
// count per normal (the MoC case, one entry per angle in q.Angles).
func NewPerAngle(ng int, q *quad.AngularQuadrature, sizes [][3]int, face [6]FaceType) *Store {
	if len(sizes) != len(q.Angles) {
		chk.Panic("bc: sizes has %d angles, quadrature has %d", len(sizes), len(q.Angles))
	}
	return newStore(ng, q, sizes, face)
}

func newStore(ng int, q *quad.AngularQuadrature, sizes [][3]int, face [6]FaceType) *Store {
	if ng < 1 {
		chk.Panic("bc: n_group must be >= 1, got %d", ng)
	}
	s := &Store{NGroup: ng, Quad: q, Face: face, size: sizes}
	s.offset = make([][3]int, len(sizes))
	off := 0
	for a := range sizes {
		for n := 0; n < 3; n++ {
			s.offset[a][n] = off
			off += sizes[a][n]
		}
	}
	s.perGrp = off
	s.In = make([]float64, ng*off)
	s.Out = make([]float64, ng*off)
	return s
}

// Size returns the face-local count for angle a, normal n.
func (s *Store) Size(a int, n quad.Normal) int { return s.size[a][n] }

// InSlice returns the incoming-flux slice for group g, angle a, normal n.
func (s *Store) InSlice(g, a int, n quad.Normal) []float64 {
	start := g*s.perGrp + s.offset[a][n]
	return s.In[start : start+s.size[a][n]]
}

// OutSlice returns the outgoing-flux slice for group g, angle a, normal n.
func (s *Store) OutSlice(g, a int, n quad.Normal) []float64 {
	start := g*s.perGrp + s.offset[a][n]
	return s.Out[start : start+s.size[a][n]]
}

// updateOne applies the face update rule to angle a, normal n, group g.
func (s *Store) updateOne(g, a int, n quad.Normal) {
	face := entryFace(n, s.Quad.Angles[a])
	switch s.Face[face] {
	case Vacuum:
		in := s.InSlice(g, a, n)
		for i := range in {
			in[i] = 0
		}
	case Reflect:
		ra := s.Quad.Reflect(a, n)
		in := s.InSlice(g, a, n)
		out := s.OutSlice(g, ra, n)
		copy(in, out)
	case Periodic:
		in := s.InSlice(g, a, n)
		out := s.OutSlice(g, a, n)
		copy(in, out)
	case Prescribed:
		// left unchanged
	}
}

// Update applies the whole-group Jacobi boundary update: every angle's
// incoming buffer is derived from every angle's outgoing buffer computed
// during the just-finished sweep of group g (§4.5).
func (s *Store) Update(g int) {
	for a := range s.size {
		for n := quad.Normal(0); n < 3; n++ {
			if s.size[a][n] == 0 {
				continue
			}
			s.updateOne(g, a, n)
		}
	}
}

// UpdateAngle applies the per-angle Gauss-Seidel boundary update for angle
// a of group g, usable immediately after that angle's rays finish so later
// angles in the same sweep see the refreshed incoming flux.
func (s *Store) UpdateAngle(g, a int) {
	for n := quad.Normal(0); n < 3; n++ {
		if s.size[a][n] == 0 {
			continue
		}
		s.updateOne(g, a, n)
	}
}
