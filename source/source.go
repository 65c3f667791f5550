// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package source assembles the one-group, region-indexed fixed source
// consumed by a sweep: fission plus in-scatter (and, for CMFD/Sn, volume
// scaling). The half-built source is hidden behind Builder and only
// yields an immutable Source once the required steps have run, so a
// sweep can never read a partially assembled buffer by mistake.
package source

import (
	"math"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/moccore/xs"
)

// Source is a finished, one-group source vector over some index space
// (FSRs for MoC, coarse cells for CMFD/Sn).
type Source struct {
	Q []float64
}

// Builder accumulates a Source additively. Each group sweep gets one
// Builder invocation sequence: Reset, Fission, InScatter, optional Scale,
// then Finish.
type Builder struct {
	q            []float64
	hasFission   bool
	hasInscatter bool
	isScaled     bool
}

// NewBuilder allocates a Builder over n regions.
func NewBuilder(n int) *Builder {
	return &Builder{q: make([]float64, n)}
}

// Reset copies external (or zeroes, if nil) into the working buffer and
// clears the state flags, corresponding to initialize_group(g).
func (b *Builder) Reset(external []float64) *Builder {
	if external != nil {
		copy(b.q, external)
		for i := len(external); i < len(b.q); i++ {
			b.q[i] = 0
		}
	} else {
		for i := range b.q {
			b.q[i] = 0
		}
	}
	b.hasFission = false
	b.hasInscatter = false
	b.isScaled = false
	return b
}

// Fission adds chi_r(g) * fs_r for every flat source region, fs indexed
// the same way as the builder's own buffer.
func (b *Builder) Fission(mesh *xs.Mesh, fs []float64, g int) *Builder {
	if b.isScaled {
		chk.Panic("source: Fission called after Scale")
	}
	if b.hasFission {
		chk.Panic("source: Fission called twice without Reset")
	}
	for _, r := range mesh.Regions {
		chi := r.Material.Chi[g]
		if chi == 0 {
			continue
		}
		for _, fsr := range r.FSRs {
			b.q[fsr] += chi * fs[fsr]
		}
	}
	b.hasFission = true
	return b
}

// InScatter adds the contribution of every source group g' != g into
// destination group g, flux indexed FSR-major (flux[fsr*ng+g]).
func (b *Builder) InScatter(mesh *xs.Mesh, flux []float64, ng, g int) *Builder {
	if !b.hasFission {
		chk.Panic("source: InScatter called before Fission")
	}
	if b.isScaled {
		chk.Panic("source: InScatter called after Scale")
	}
	for _, r := range mesh.Regions {
		sm := r.Material.Scatter
		minG, maxG := sm.MinG[g], sm.MaxG[g]
		for from := minG; from <= maxG; from++ {
			if from == g {
				continue
			}
			w := sm.Get(g, from)
			if w == 0 {
				continue
			}
			for _, fsr := range r.FSRs {
				b.q[fsr] += w * flux[fsr*ng+from]
			}
		}
	}
	b.hasInscatter = true
	return b
}

// Scale multiplies every entry by its region volume, the CMFD/Sn step
// that converts a per-unit-volume source into a per-cell one.
func (b *Builder) Scale(volume []float64) *Builder {
	if !b.hasFission {
		chk.Panic("source: Scale called before Fission")
	}
	if b.isScaled {
		chk.Panic("source: Scale called twice")
	}
	for i := range b.q {
		b.q[i] *= volume[i]
	}
	b.isScaled = true
	return b
}

// Finish yields the assembled Source, requiring that Fission has run.
func (b *Builder) Finish() Source {
	if !b.hasFission {
		chk.Panic("source: Finish called before Fission")
	}
	out := make([]float64, len(b.q))
	copy(out, b.q)
	return Source{Q: out}
}

// SelfScatter produces the per-steradian sweep source q-bar from a
// finished Source, the current-iterate flux, and the within-group
// scatter cross section, pre-divided by 4*pi*sigma_tr so the inner
// kernel avoids a per-segment division (§4.7).
func SelfScatter(mesh *xs.Mesh, finished Source, flux []float64, ng, g int, transport []float64) []float64 {
	qbar := make([]float64, len(finished.Q))
	for _, r := range mesh.Regions {
		sigmaS := r.Material.Scatter.Self(g)
		for _, fsr := range r.FSRs {
			qbar[fsr] = (finished.Q[fsr] + sigmaS*flux[fsr*ng+g]) / (4 * math.Pi * transport[fsr])
		}
	}
	return qbar
}
