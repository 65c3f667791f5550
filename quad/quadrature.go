// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quad

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// AngularQuadrature is the full, octant-expanded discrete-ordinate set: the
// first N angles are the caller-specified "generator" octant (alpha, theta
// both in (0, pi/2)), and octants 2..8 are produced by sign reflection so
// that the total weight over the unit sphere sums to 8 (one "octant unit"
// each).
type AngularQuadrature struct {
	NPerOctant int
	Angles     []Angle // length 8*NPerOctant, octant-major
}

// octant returns the 3-bit octant code of a, derived from the signs of its
// direction cosines: bit0 set means Ox<0, bit1 Oy<0, bit2 Oz<0.
func octant(a Angle) int {
	code := 0
	if a.Ox < 0 {
		code |= 1
	}
	if a.Oy < 0 {
		code |= 2
	}
	if a.Oz < 0 {
		code |= 4
	}
	return code
}

// octantMirrors lists, for each of the 8 octant codes, the Normal sequence
// that carries the first-octant (code 0) generator into that octant. Octant
// 0 requires no reflection.
var octantMirrors = [8][]Normal{
	{},                        // 000
	{XNorm},                   // 001
	{YNorm},                   // 010
	{XNorm, YNorm},            // 011
	{ZNorm},                   // 100
	{XNorm, ZNorm},            // 101
	{YNorm, ZNorm},            // 110
	{XNorm, YNorm, ZNorm},     // 111
}

// NewAngularQuadrature expands a generator octant (angles with all-positive
// direction cosines, weights summing to 1) into the full 8-octant set with
// weights summing to 8.
func NewAngularQuadrature(generator []Angle) *AngularQuadrature {
	if len(generator) == 0 {
		chk.Panic("quad: generator octant must not be empty")
	}
	n := len(generator)
	all := make([]Angle, 0, 8*n)
	for oct := 0; oct < 8; oct++ {
		for _, g := range generator {
			if octant(g) != 0 {
				chk.Panic("quad: generator angle %v is not in the first octant", g)
			}
			a := g
			for _, norm := range octantMirrors[oct] {
				a = a.Mirror(norm)
			}
			all = append(all, a)
		}
	}
	q := &AngularQuadrature{NPerOctant: n, Angles: all}
	q.checkWeightSum()
	return q
}

// checkWeightSum panics if total weight has drifted from 8 by more than
// 1e-13 (property P3).
func (q *AngularQuadrature) checkWeightSum() {
	sum := 0.0
	for _, a := range q.Angles {
		sum += a.Weight
	}
	if math.Abs(sum-8.0) > 1e-13 {
		chk.Panic("quad: angle weights sum to %v, expected 8", sum)
	}
}

// Reflect returns the index, within the full angle list, of the angle
// mirrored from angles[i] across norm (property P2).
func (q *AngularQuadrature) Reflect(i int, norm Normal) int {
	mirrored := q.Angles[i].Mirror(norm)
	return q.find(mirrored)
}

// Reverse returns the index of the angle reversed (reflected through the
// origin) from angles[i].
func (q *AngularQuadrature) Reverse(i int) int {
	return q.find(q.Angles[i].Reverse())
}

// find locates the angle closest, in direction cosines, to target. Panics
// if the quadrature has no matching angle, since the octant table is
// supposed to be exhaustive and exact.
func (q *AngularQuadrature) find(target Angle) int {
	for i, a := range q.Angles {
		if a.Equal(target) {
			return i
		}
	}
	chk.Panic("quad: no angle matches reflected/reversed target %v", target)
	return -1
}

// Modularize snaps every first-two-octant angle's azimuth so that an
// integer (odd) number of equally spaced rays tiles the (hx,hy) domain at
// spacing s, recomputing azimuthal weights as fractional arcs of [0,pi/2]
// between bisectors to its neighbors. Returns, per first-octant angle
// index, the modular ray counts (nx,ny) and effective spacing.
func (q *AngularQuadrature) Modularize(hx, hy, s float64) []ModularRay {
	if s <= 0 {
		chk.Panic("quad: ray spacing must be positive, got %v", s)
	}

	// operate on the first-octant angles only (indices 0..NPerOctant-1);
	// octants 2-8 are regenerated afterward from the corrected set.
	n := q.NPerOctant
	mod := make([]ModularRay, n)
	newAlpha := make([]float64, n)

	for i := 0; i < n; i++ {
		alpha := q.Angles[i].Alpha
		nx := oddCeil(hx / s * math.Abs(math.Sin(alpha)))
		ny := oddCeil(hy / s * math.Abs(math.Cos(alpha)))
		alphaP := math.Atan2(hy*float64(nx), hx*float64(ny))
		spacing := math.Cos(alphaP) * hy / float64(ny)
		mod[i] = ModularRay{Nx: nx, Ny: ny, Spacing: spacing}
		newAlpha[i] = alphaP
	}

	// recompute azimuthal weights as arc fractions of [0, pi/2] bounded by
	// bisectors between neighboring *distinct* azimuths (outermost bounded
	// by 0 and pi/2). A product quadrature puts several polar cosines at
	// the same azimuth, so the bracketing must run over the n_azimuthal
	// distinct values, not over all n entries — otherwise entries that
	// share an azimuth get bisected against each other instead of against
	// their true neighbors, corrupting the arc fraction (mirrors
	// update_chebyshev_weights's dedup-then-GenProduct shape). polar[i] is
	// each entry's original share of the octant's total weight, used both
	// to group entries by azimuth and to split an azimuth's arc across
	// its polar sub-entries.
	// groupByAlpha internally sorts, so groups is already in ascending
	// azimuth order.
	groups := groupByAlpha(newAlpha)

	bounds := make([]float64, len(groups)+1)
	bounds[0] = 0
	bounds[len(groups)] = math.Pi / 2
	for k := 0; k < len(groups)-1; k++ {
		a := newAlpha[groups[k][0]]
		b := newAlpha[groups[k+1][0]]
		bounds[k+1] = 0.5 * (a + b)
	}

	polar := make([]float64, n)
	totalOld := 0.0
	for i := 0; i < n; i++ {
		totalOld += q.Angles[i].Weight
	}
	for i := 0; i < n; i++ {
		polar[i] = q.Angles[i].Weight / totalOld // relative polar share, preserved
	}

	newGen := make([]Angle, n)
	for k, group := range groups {
		arc := bounds[k+1] - bounds[k]
		azFrac := arc / (math.Pi / 2)

		groupPolar := 0.0
		for _, i := range group {
			groupPolar += polar[i]
		}
		for _, i := range group {
			share := polar[i] / groupPolar // this entry's fraction within its azimuth group
			w := azFrac * share * totalOld // renormalize so octant-1 sums to 1 "unit" of the 8 total below
			newGen[i] = NewAngle(newAlpha[i], q.Angles[i].Theta, w)
		}
	}

	// renormalize generator weights to sum exactly to 1 (one octant's share
	// of the total 8), absorbing floating point drift from the arc sums.
	sumGen := 0.0
	for _, a := range newGen {
		sumGen += a.Weight
	}
	for i := range newGen {
		newGen[i].Weight *= 1.0 / sumGen
	}

	*q = *NewAngularQuadrature(newGen)
	return mod
}

// ModularRay holds the per-angle modular ray geometry produced by
// Modularize.
type ModularRay struct {
	Nx, Ny  int
	Spacing float64
}

// oddCeil rounds x up to the nearest odd integer >= 1.
func oddCeil(x float64) int {
	n := int(math.Ceil(x))
	if n < 1 {
		n = 1
	}
	if n%2 == 0 {
		n++
	}
	return n
}

// sortByAlpha sorts order (indices into alpha) ascending by alpha[order[k]].
func sortByAlpha(order []int, alpha []float64) {
	for i := 1; i < len(order); i++ {
		v := order[i]
		j := i - 1
		for j >= 0 && alpha[order[j]] > alpha[v] {
			order[j+1] = order[j]
			j--
		}
		order[j+1] = v
	}
}

// alphaGroupTol is the absolute azimuth tolerance used to merge entries
// of a product quadrature that share the same modularized azimuth (e.g.
// every polar cosine of one chebyshev-gauss azimuth) before bracketing.
const alphaGroupTol = 1e-12

// groupByAlpha partitions indices 0..len(alpha)-1 into groups sharing the
// same alpha value to within alphaGroupTol, each group kept in index order.
func groupByAlpha(alpha []float64) [][]int {
	n := len(alpha)
	order := utl.IntRange(n)
	sortByAlpha(order, alpha)

	var groups [][]int
	for _, i := range order {
		if len(groups) > 0 {
			last := groups[len(groups)-1]
			if math.Abs(alpha[i]-alpha[last[0]]) <= alphaGroupTol {
				groups[len(groups)-1] = append(last, i)
				continue
			}
		}
		groups = append(groups, []int{i})
	}
	return groups
}
