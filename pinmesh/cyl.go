// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pinmesh

import (
	"math"
	"sort"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/moccore/geom"
)

// cylLayout subdivides a square pitch into concentric annuli (one or more
// per XS ring, equal-area subdivided) plus azimuthal sectors. Region
// indexing is ring-major (innermost first), sector-minor within a ring; the
// square corners outside the outermost circle form one final "moderator"
// region.
type cylLayout struct {
	pitch     float64
	xsRadii   []float64 // user cross-section ring outer radii, ascending
	subPerXS  []int     // radial subdivisions within each XS ring
	nAzi      int       // azimuthal sectors (shared by every ring)
	radii     []float64 // mesh ring outer radii (equal-area subdivided), ascending
	ringStart []int     // region index of sector 0 of each ring
}

// NewCylindrical builds a pin mesh of concentric annuli, with xsRadii the
// outer radius of each cross-section ring (ascending, the last strictly
// less than pitch/2) and subPerXS the equal-area radial subdivision count
// for that ring (0 subdivisions collapses to the XS ring itself, still
// counted as one mesh ring). nAzi azimuthal sectors subdivide every ring.
func NewCylindrical(pitch float64, xsRadii []float64, subPerXS []int, nAzi int) *PinMesh {
	if pitch <= 0 {
		chk.Panic("pinmesh: pitch must be positive, got %v", pitch)
	}
	if len(xsRadii) == 0 {
		chk.Panic("pinmesh: cylindrical pin requires at least one XS ring")
	}
	if len(xsRadii) != len(subPerXS) {
		chk.Panic("pinmesh: xsRadii/subPerXS length mismatch")
	}
	if nAzi < 1 {
		chk.Panic("pinmesh: nAzi must be >= 1, got %d", nAzi)
	}
	if xsRadii[len(xsRadii)-1] >= pitch/2 {
		chk.Panic("pinmesh: largest cylindrical radius %v must be < half-pitch %v", xsRadii[len(xsRadii)-1], pitch/2)
	}
	for i := 1; i < len(xsRadii); i++ {
		if xsRadii[i] <= xsRadii[i-1] {
			chk.Panic("pinmesh: xsRadii must be strictly ascending")
		}
	}

	c := &cylLayout{pitch: pitch, xsRadii: xsRadii, subPerXS: subPerXS, nAzi: nAzi}

	rPrev := 0.0
	for i, rXS := range xsRadii {
		n := subPerXS[i]
		if n < 1 {
			n = 1
		}
		rXSprevSq := rPrev * rPrev
		for s := 1; s <= n; s++ {
			rSq := rXSprevSq + (rXS*rXS-rXSprevSq)*float64(s)/float64(n)
			c.radii = append(c.radii, math.Sqrt(rSq))
		}
		rPrev = rXS
	}

	c.ringStart = make([]int, len(c.radii)+1)
	for i := range c.radii {
		c.ringStart[i] = i * nAzi
	}
	c.ringStart[len(c.radii)] = len(c.radii) * nAzi // moderator region start

	return &PinMesh{Kind: Cylindrical, Pitch: pitch, Cyl: c, id: newID(), nRegns: len(c.radii)*nAzi + 1}
}

// center returns the pin-local center of the pitch x pitch square.
func (c *cylLayout) center() geom.Point2 {
	return geom.Point2{X: c.pitch / 2, Y: c.pitch / 2}
}

func (c *cylLayout) sectorAngle() float64 { return 2 * math.Pi / float64(c.nAzi) }

func (c *cylLayout) sectorIndex(alpha float64) int {
	alpha = math.Mod(alpha+2*math.Pi, 2*math.Pi)
	idx := int(alpha / c.sectorAngle())
	if idx >= c.nAzi {
		idx = c.nAzi - 1
	}
	return idx
}

func (c *cylLayout) areaList() []float64 {
	areas := make([]float64, len(c.radii)*c.nAzi+1)
	rPrev := 0.0
	k := 0
	for _, r := range c.radii {
		ringArea := (math.Pi*r*r - math.Pi*rPrev*rPrev) / float64(c.nAzi)
		for s := 0; s < c.nAzi; s++ {
			areas[k] = ringArea
			k++
		}
		rPrev = r
	}
	areas[k] = c.pitch*c.pitch - math.Pi*rPrev*rPrev
	return areas
}

// ringIndex finds the ring containing radius rad, breaking ties at a ring
// boundary using radialDir (positive = moving outward).
func (c *cylLayout) ringIndex(rad float64, radialDir float64) int {
	for i, r := range c.radii {
		if rad < r-geom.Tol {
			return i
		}
		if math.Abs(rad-r) <= geom.Tol {
			if radialDir <= 0 {
				return i
			}
			return i + 1
		}
	}
	return len(c.radii) // moderator
}

func (c *cylLayout) findRegion(p geom.Point2, dx, dy float64) int {
	ctr := c.center()
	rel := geom.Point2{X: p.X - ctr.X, Y: p.Y - ctr.Y}
	rad := math.Hypot(rel.X, rel.Y)
	radialDir := rel.X*dx + rel.Y*dy // >0 means moving outward
	ring := c.ringIndex(rad, radialDir)
	if ring == len(c.radii) {
		return c.ringStart[len(c.radii)]
	}
	alpha := math.Atan2(rel.Y, rel.X)
	sector := c.sectorIndex(alpha)
	return c.ringStart[ring] + sector
}

func (c *cylLayout) trace(p1, p2 geom.Point2) []Segment {
	ctr := c.center()
	l := geom.Line{P1: p1, P2: p2}
	dx, dy := p2.X-p1.X, p2.Y-p1.Y
	length := math.Hypot(dx, dy)

	pts := []geom.Point2{p1, p2}

	for _, r := range c.radii {
		circ := geom.NewCircle(ctr, r)
		for _, pt := range circ.LineIntersect(l) {
			// keep only points that lie on the segment (not the infinite line)
			if onSegment(pt, p1, p2) {
				pts = append(pts, pt)
			}
		}
	}

	// azimuthal rays from the center, extended well past the pitch so they
	// cross the chord wherever it passes through that sector boundary.
	reach := c.pitch * 2
	for s := 0; s < c.nAzi; s++ {
		theta := float64(s) * c.sectorAngle()
		far := geom.Point2{X: ctr.X + reach*math.Cos(theta), Y: ctr.Y + reach*math.Sin(theta)}
		ray := geom.Line{P1: ctr, P2: far}
		if pt, ok := l.Intersect(ray); ok && onSegment(pt, p1, p2) {
			pts = append(pts, pt)
		}
	}

	type tpt struct {
		t float64
		p geom.Point2
	}
	tpts := make([]tpt, len(pts))
	for i, p := range pts {
		var t float64
		if length > geom.Tol {
			t = ((p.X-p1.X)*dx + (p.Y-p1.Y)*dy) / (length * length)
		}
		tpts[i] = tpt{t: t, p: p}
	}
	sort.Slice(tpts, func(i, j int) bool { return tpts[i].t < tpts[j].t })

	dedup := tpts[:0:0]
	for _, tp := range tpts {
		if len(dedup) == 0 || math.Abs(tp.t-dedup[len(dedup)-1].t)*length > geom.Tol {
			dedup = append(dedup, tp)
		}
	}

	segs := make([]Segment, 0, len(dedup)-1)
	for i := 0; i+1 < len(dedup); i++ {
		a, b := dedup[i].p, dedup[i+1].p
		segLen := a.Distance(b)
		if segLen <= geom.Tol {
			continue
		}
		mid := geom.Point2{X: 0.5 * (a.X + b.X), Y: 0.5 * (a.Y + b.Y)}
		region := c.findRegion(mid, dx, dy)
		segs = append(segs, Segment{Length: segLen, Region: region})
	}
	return segs
}

func onSegment(p, a, b geom.Point2) bool {
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)
	if length <= geom.Tol {
		return false
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / (length * length)
	return t >= -geom.Tol/length && t <= 1+geom.Tol/length
}

func (c *cylLayout) distanceToSurface(p geom.Point2, dx, dy float64, coincidentSurf int) (float64, int) {
	ctr := c.center()
	rel := geom.Point2{X: p.X - ctr.X, Y: p.Y - ctr.Y}

	best := math.Inf(1)
	bestSurf := -1
	a := dx*dx + dy*dy
	for i, r := range c.radii {
		if i == coincidentSurf {
			continue
		}
		b := 2 * (rel.X*dx + rel.Y*dy)
		cc := rel.X*rel.X + rel.Y*rel.Y - r*r
		disc := b*b - 4*a*cc
		if disc <= geom.Tol {
			continue
		}
		sq := math.Sqrt(disc)
		for _, t := range []float64{(-b - sq) / (2 * a), (-b + sq) / (2 * a)} {
			if t > geom.Tol && t < best {
				best = t
				bestSurf = i
			}
		}
	}
	return best, bestSurf
}
