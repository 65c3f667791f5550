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

// rectLayout subdivides a square pitch into an nx-by-ny grid of equal
// rectangular regions, indexed row-major with y the outer (slower-varying)
// index.
type rectLayout struct {
	pitch  float64
	nx, ny int
	dx, dy []float64 // cumulative grid-line positions, length nx+1 / ny+1
}

// NewRectangular builds a pin mesh subdivided into an nx-by-ny grid over a
// square pitch.
func NewRectangular(pitch float64, nx, ny int) *PinMesh {
	if pitch <= 0 {
		chk.Panic("pinmesh: pitch must be positive, got %v", pitch)
	}
	if nx < 1 || ny < 1 {
		chk.Panic("pinmesh: nx,ny must be >= 1, got %d,%d", nx, ny)
	}
	r := &rectLayout{pitch: pitch, nx: nx, ny: ny}
	r.dx = linspace(0, pitch, nx+1)
	r.dy = linspace(0, pitch, ny+1)
	return &PinMesh{Kind: Rectangular, Pitch: pitch, Rect: r, id: newID(), nRegns: nx * ny}
}

func linspace(a, b float64, n int) []float64 {
	v := make([]float64, n)
	for i := 0; i < n; i++ {
		v[i] = a + (b-a)*float64(i)/float64(n-1)
	}
	return v
}

func (r *rectLayout) areaList() []float64 {
	areas := make([]float64, r.nx*r.ny)
	for iy := 0; iy < r.ny; iy++ {
		hy := r.dy[iy+1] - r.dy[iy]
		for ix := 0; ix < r.nx; ix++ {
			hx := r.dx[ix+1] - r.dx[ix]
			areas[iy*r.nx+ix] = hx * hy
		}
	}
	return areas
}

// cellIndex locates the grid cell (ix,iy) containing coordinate v along
// grid-line positions lines, breaking ties on a boundary toward the cell
// that dir (the travel direction component along that axis) points into.
func cellIndex(v float64, lines []float64, dir float64) int {
	n := len(lines) - 1
	for i := 0; i < n; i++ {
		lo, hi := lines[i], lines[i+1]
		if v > lo+geom.Tol && v < hi-geom.Tol {
			return i
		}
		if math.Abs(v-lo) <= geom.Tol {
			if dir >= 0 || i == 0 {
				return i
			}
			return i - 1
		}
		if math.Abs(v-hi) <= geom.Tol && i == n-1 {
			if dir <= 0 {
				return i
			}
		}
	}
	// clamp (floating point edge at the far boundary)
	if v <= lines[0] {
		return 0
	}
	return n - 1
}

func (r *rectLayout) findRegion(p geom.Point2, dx, dy float64) int {
	ix := cellIndex(p.X, r.dx, dx)
	iy := cellIndex(p.Y, r.dy, dy)
	return iy*r.nx + ix
}

func (r *rectLayout) trace(p1, p2 geom.Point2) []Segment {
	l := geom.Line{P1: p1, P2: p2}
	pts := []geom.Point2{p1, p2}

	// intersect the chord with every interior grid line.
	for i := 1; i < r.nx; i++ {
		x := r.dx[i]
		vline := geom.Line{P1: geom.Point2{X: x, Y: 0}, P2: geom.Point2{X: x, Y: r.pitch}}
		if pt, ok := l.Intersect(vline); ok {
			pts = append(pts, pt)
		}
	}
	for i := 1; i < r.ny; i++ {
		y := r.dy[i]
		hline := geom.Line{P1: geom.Point2{X: 0, Y: y}, P2: geom.Point2{X: r.pitch, Y: y}}
		if pt, ok := l.Intersect(hline); ok {
			pts = append(pts, pt)
		}
	}

	dx, dy := p2.X-p1.X, p2.Y-p1.Y
	length := math.Hypot(dx, dy)
	// parametrize and sort by t along the chord, then dedupe with ULP tol.
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
		region := r.findRegion(mid, dx, dy)
		segs = append(segs, Segment{Length: segLen, Region: region})
	}
	return segs
}

func (r *rectLayout) distanceToSurface(p geom.Point2, dx, dy float64, coincidentSurf int) (float64, int) {
	best := math.Inf(1)
	bestSurf := -1
	check := func(t float64, surf int) {
		if surf == coincidentSurf {
			return
		}
		if t > geom.Tol && t < best {
			best = t
			bestSurf = surf
		}
	}
	if dx > geom.Tol {
		for i := 1; i <= r.nx; i++ {
			check((r.dx[i]-p.X)/dx, i)
		}
	} else if dx < -geom.Tol {
		for i := r.nx - 1; i >= 0; i-- {
			check((r.dx[i]-p.X)/dx, i)
		}
	}
	if dy > geom.Tol {
		for i := 1; i <= r.ny; i++ {
			check((r.dy[i]-p.Y)/dy, 1000+i)
		}
	} else if dy < -geom.Tol {
		for i := r.ny - 1; i >= 0; i-- {
			check((r.dy[i]-p.Y)/dy, 1000+i)
		}
	}
	return best, bestSurf
}
