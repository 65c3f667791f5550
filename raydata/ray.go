// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package raydata generates modular MoC rays per unique plane and
// first-two-octant angle, traces them through every pin of a coremesh.Mesh,
// applies volume correction, and records the coarse-cell crossings each ray
// makes so a current worker can tally surface currents during a sweep.
package raydata

import (
	"math"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/moccore/coremesh"
	"github.com/cpmech/moccore/diag"
	"github.com/cpmech/moccore/geom"
	"github.com/cpmech/moccore/quad"
)

// VolumeCorrection selects how ray-traced segment lengths are rescaled to
// reproduce true region areas (§4.4).
type VolumeCorrection int

// Volume-correction modes.
const (
	FlatPerAngle VolumeCorrection = iota
	AngleIntegrated
)

// PinCrossing records the coarse cell a ray is leaving and the coarse
// surface it exits through, carried by the last sub-segment traced inside
// that cell's pin. A crossing that lands exactly on a coarse-mesh corner
// is reported on the x-face, because crossingFor checks the x index
// before the y index, which keeps
// opposing-direction rays consistent (§9); this is a simplification of the
// reference's paired zero-length sentinel bookkeeping.
type PinCrossing struct {
	Cell int
	Surf coremesh.Surface
}

// Ray is one traced characteristic line across the domain at a given
// angle, within one unique plane.
type Ray struct {
	Segments []Segment
	BCStart  int
	BCEnd    int
}

// Segment is one (length, FSR) pair along a ray; FSR is plane-local (the
// offset of the plane within the global FSR numbering is added by callers
// that expand per-group arrays across axial replicas). Crossing is nil for
// every sub-segment except the last one traced inside a given pin, which
// carries the coarse surface the ray exits through on its way to the next
// pin (an FSR-to-FSR boundary inside the same pin is not a coarse-mesh
// surface and carries none).
type Segment struct {
	Length   float64
	FSR      int
	Crossing *PinCrossing
}

// AngleRays holds every ray for one first-two-octant angle within one
// unique plane, plus the modular geometry used to build them.
type AngleRays struct {
	Rays    []Ray
	Nx, Ny  int
	Spacing float64
}

// Data is the full set of rays, organized [unique plane][angle index in
// the first two octants].
type Data struct {
	Mesh             *coremesh.Mesh
	Quad             *quad.AngularQuadrature
	Spacing          float64
	VolumeCorrection VolumeCorrection
	MaxSegments      int

	Rays [][]AngleRays // [unique plane][angle]
}

// Generate builds ray data for every unique plane in mesh, at every
// first-two-octant angle of q, with rays spaced at `spacing` and segments
// corrected per `correction`.
func Generate(mesh *coremesh.Mesh, q *quad.AngularQuadrature, spacing float64, correction VolumeCorrection) *Data {
	if spacing <= 0 {
		chk.Panic("raydata: spacing must be positive, got %v", spacing)
	}

	hx := mesh.BoundaryX[mesh.Nx] - mesh.BoundaryX[0]
	hy := mesh.BoundaryY[mesh.Ny] - mesh.BoundaryY[0]
	mod := q.Modularize(hx, hy, spacing)

	nAngles := 2 * q.NPerOctant
	d := &Data{Mesh: mesh, Quad: q, Spacing: spacing, VolumeCorrection: correction}
	d.Rays = make([][]AngleRays, len(mesh.UniquePlanes))
	for u, plane := range mesh.UniquePlanes {
		d.Rays[u] = make([]AngleRays, nAngles)
		for ai := 0; ai < nAngles; ai++ {
			d.Rays[u][ai] = generateAngleRays(mesh, plane, q.Angles[ai], mod[ai%q.NPerOctant])
		}
	}

	if correction == FlatPerAngle {
		d.applyFlatCorrection()
	} else {
		d.applyIntegratedCorrection()
	}

	max := 0
	for _, byAngle := range d.Rays {
		for _, ar := range byAngle {
			for _, r := range ar.Rays {
				if len(r.Segments) > max {
					max = len(r.Segments)
				}
			}
		}
	}
	d.MaxSegments = max

	d.warnZeroRayFSRs()
	return d
}

func generateAngleRays(mesh *coremesh.Mesh, plane *coremesh.Plane, a quad.Angle, mod quad.ModularRay) AngleRays {
	ar := AngleRays{Nx: mod.Nx, Ny: mod.Ny, Spacing: mod.Spacing}
	ox, oy := a.Ox, a.Oy

	xFace := mesh.BoundaryX[0]
	if ox < 0 {
		xFace = mesh.BoundaryX[mesh.Nx]
	}
	bc := 0
	for i := 0; i < mod.Ny; i++ {
		yy := mesh.BoundaryY[0] + (float64(i)+0.5)*(mod.Spacing/math.Abs(math.Cos(a.Alpha)))
		if yy >= mesh.BoundaryY[mesh.Ny] {
			continue
		}
		entry := geom.Point2{X: xFace, Y: yy}
		ar.Rays = append(ar.Rays, traceRay(mesh, plane, entry, ox, oy, bc, mod.Nx, mod.Ny, a.Alpha))
		bc++
	}

	yFace := mesh.BoundaryY[0]
	if oy < 0 {
		yFace = mesh.BoundaryY[mesh.Ny]
	}
	for i := 0; i < mod.Nx; i++ {
		xx := mesh.BoundaryX[0] + (float64(i)+0.5)*(mod.Spacing/math.Abs(math.Sin(a.Alpha)))
		if xx >= mesh.BoundaryX[mesh.Nx] {
			continue
		}
		entry := geom.Point2{X: xx, Y: yFace}
		ar.Rays = append(ar.Rays, traceRay(mesh, plane, entry, ox, oy, mod.Ny+i, mod.Nx, mod.Ny, a.Alpha))
	}
	return ar
}

// traceRay walks the chord from entry to the box boundary, segmenting it at
// every pin crossing and within each pin via its PinMesh.Trace.
func traceRay(mesh *coremesh.Mesh, plane *coremesh.Plane, entry geom.Point2, ox, oy float64, bcStart, nx, ny int, alpha float64) Ray {
	exit := mesh.BBox.RayExit(entry, ox, oy)
	l := geom.Line{P1: entry, P2: exit}

	pts := []geom.Point2{entry, exit}
	for _, x := range mesh.BoundaryX {
		vline := geom.Line{P1: geom.Point2{X: x, Y: mesh.BoundaryY[0]}, P2: geom.Point2{X: x, Y: mesh.BoundaryY[mesh.Ny]}}
		if pt, ok := l.Intersect(vline); ok {
			pts = append(pts, pt)
		}
	}
	for _, y := range mesh.BoundaryY {
		hline := geom.Line{P1: geom.Point2{X: mesh.BoundaryX[0], Y: y}, P2: geom.Point2{X: mesh.BoundaryX[mesh.Nx], Y: y}}
		if pt, ok := l.Intersect(hline); ok {
			pts = append(pts, pt)
		}
	}

	dedup := dedupeAlongChord(entry, exit, pts)

	ray := Ray{BCStart: bcStart, BCEnd: exitBCIndex(mesh, exit, ox, oy, nx, ny, alpha)}

	// first pass: the pin (ix,iy) of every surviving interval, so each
	// interval's exit crossing can be derived by comparing it to the next.
	type interval struct {
		a, b   geom.Point2
		ix, iy int
	}
	var ivals []interval
	for i := 0; i+1 < len(dedup); i++ {
		a, b := dedup[i], dedup[i+1]
		if a.Distance(b) <= geom.Tol {
			continue
		}
		mid := geom.Point2{X: 0.5 * (a.X + b.X), Y: 0.5 * (a.Y + b.Y)}
		ivals = append(ivals, interval{a: a, b: b, ix: indexOf(mesh.BoundaryX, mid.X), iy: indexOf(mesh.BoundaryY, mid.Y)})
	}

	for k, iv := range ivals {
		pin := plane.Pins[iv.iy][iv.ix]
		local := geom.Point2{X: iv.a.X - mesh.BoundaryX[iv.ix], Y: iv.a.Y - mesh.BoundaryY[iv.iy]}
		localEnd := geom.Point2{X: iv.b.X - mesh.BoundaryX[iv.ix], Y: iv.b.Y - mesh.BoundaryY[iv.iy]}

		first := plane.FirstFSR(iv.ix, iv.iy)
		subSegs := pin.Mesh.Trace(local, localEnd)
		var crossing *PinCrossing
		if k+1 < len(ivals) {
			crossing = crossingFor(mesh, iv.ix, iv.iy, ivals[k+1].ix, ivals[k+1].iy)
		}
		for j, s := range subSegs {
			seg := Segment{Length: s.Length, FSR: first + s.Region}
			if j == len(subSegs)-1 {
				seg.Crossing = crossing
			}
			ray.Segments = append(ray.Segments, seg)
		}
	}
	return ray
}

// dedupeAlongChord parametrizes every point in pts by its projection onto
// the entry->exit chord, sorts, and removes near-duplicates within
// geom.Tol, returning the ordered point list.
func dedupeAlongChord(entry, exit geom.Point2, pts []geom.Point2) []geom.Point2 {
	dx, dy := exit.X-entry.X, exit.Y-entry.Y
	length := math.Hypot(dx, dy)

	type tpt struct {
		t float64
		p geom.Point2
	}
	tpts := make([]tpt, len(pts))
	for i, p := range pts {
		t := 0.0
		if length > geom.Tol {
			t = ((p.X-entry.X)*dx + (p.Y-entry.Y)*dy) / (length * length)
		}
		tpts[i] = tpt{t, p}
	}
	for i := 1; i < len(tpts); i++ {
		v := tpts[i]
		j := i - 1
		for j >= 0 && tpts[j].t > v.t {
			tpts[j+1] = tpts[j]
			j--
		}
		tpts[j+1] = v
	}

	out := make([]geom.Point2, 0, len(tpts))
	for _, tp := range tpts {
		if len(out) == 0 || tp.p.Distance(out[len(out)-1]) > geom.Tol {
			out = append(out, tp.p)
		}
	}
	return out
}

func indexOf(bounds []float64, v float64) int {
	n := len(bounds) - 1
	for i := 0; i < n; i++ {
		if v >= bounds[i]-geom.Tol && v <= bounds[i+1]+geom.Tol {
			return i
		}
	}
	if v <= bounds[0] {
		return 0
	}
	return n - 1
}

// exitBCIndex recovers the boundary-condition slot the ray's exit point
// corresponds to on whichever face it lands on, using the same spacing
// convention as entry-point placement (§4.4 point 2).
func exitBCIndex(mesh *coremesh.Mesh, exit geom.Point2, ox, oy float64, nx, ny int, alpha float64) int {
	onXFace := math.Abs(exit.X-mesh.BoundaryX[0]) <= geom.Tol || math.Abs(exit.X-mesh.BoundaryX[mesh.Nx]) <= geom.Tol
	if onXFace {
		slot := int(math.Floor((exit.Y - mesh.BoundaryY[0]) / (mesh.BoundaryY[mesh.Ny] - mesh.BoundaryY[0]) * float64(ny)))
		if slot >= ny {
			slot = ny - 1
		}
		if slot < 0 {
			slot = 0
		}
		return slot
	}
	slot := int(math.Floor((exit.X - mesh.BoundaryX[0]) / (mesh.BoundaryX[mesh.Nx] - mesh.BoundaryX[0]) * float64(nx)))
	if slot >= nx {
		slot = nx - 1
	}
	if slot < 0 {
		slot = 0
	}
	return ny + slot
}

// crossingFor builds the PinCrossing for a ray leaving pin (ix,iy) toward
// pin (nextIx,nextIy); ties (a diagonal, corner-grazing step) resolve
// toward the x-face per the package-level corner convention.
func crossingFor(mesh *coremesh.Mesh, ix, iy, nextIx, nextIy int) *PinCrossing {
	cell := mesh.CoarseCell(coremesh.Position{Ix: ix, Iy: iy, Iz: 0})
	var surf coremesh.Surface
	switch {
	case nextIx > ix:
		surf = coremesh.East
	case nextIx < ix:
		surf = coremesh.West
	case nextIy > iy:
		surf = coremesh.North
	case nextIy < iy:
		surf = coremesh.South
	default:
		return nil // same pin on both sides: not a genuine crossing
	}
	return &PinCrossing{Cell: cell, Surf: surf}
}

// fsrTrueAreas returns the true area of every plane-local FSR index in
// plane.
func fsrTrueAreas(plane *coremesh.Plane) []float64 {
	areas := make([]float64, plane.NFSR())
	for iy, row := range plane.Pins {
		for ix, pin := range row {
			first := plane.FirstFSR(ix, iy)
			for rg, a := range pin.Mesh.AreaList() {
				areas[first+rg] = a
			}
		}
	}
	return areas
}

// applyFlatCorrection rescales every segment, per angle, so that the
// ray-integrated area of each FSR matches its true area (§4.4 per-angle
// mode, post-condition checked by property P1).
func (d *Data) applyFlatCorrection() {
	for u, plane := range d.Mesh.UniquePlanes {
		trueArea := fsrTrueAreas(plane)
		for ai := range d.Rays[u] {
			ar := &d.Rays[u][ai]
			tilde := make([]float64, len(trueArea))
			for _, r := range ar.Rays {
				for _, s := range r.Segments {
					tilde[s.FSR] += s.Length * ar.Spacing
				}
			}
			scale := make([]float64, len(trueArea))
			for fsr := range scale {
				if tilde[fsr] > 0 {
					scale[fsr] = trueArea[fsr] / tilde[fsr]
				} else {
					scale[fsr] = 1
				}
			}
			for i := range ar.Rays {
				for j, s := range ar.Rays[i].Segments {
					ar.Rays[i].Segments[j].Length = s.Length * scale[s.FSR]
				}
			}
		}
	}
}

// applyIntegratedCorrection accumulates the ray-integrated area across all
// angles (weighted by half the angle weight) before applying one global
// per-region correction (§4.4 angle-integrated mode).
func (d *Data) applyIntegratedCorrection() {
	for u, plane := range d.Mesh.UniquePlanes {
		trueArea := fsrTrueAreas(plane)
		tilde := make([]float64, len(trueArea))
		for ai := range d.Rays[u] {
			ar := &d.Rays[u][ai]
			w := 0.5 * d.Quad.Angles[ai].Weight
			for _, r := range ar.Rays {
				for _, s := range r.Segments {
					tilde[s.FSR] += w * s.Length * ar.Spacing
				}
			}
		}
		scale := make([]float64, len(trueArea))
		for fsr := range scale {
			if tilde[fsr] > 0 {
				scale[fsr] = trueArea[fsr] / tilde[fsr]
			} else {
				scale[fsr] = 1
			}
		}
		for ai := range d.Rays[u] {
			ar := &d.Rays[u][ai]
			for i := range ar.Rays {
				for j, s := range ar.Rays[i].Segments {
					ar.Rays[i].Segments[j].Length = s.Length * scale[s.FSR]
				}
			}
		}
	}
}

func (d *Data) warnZeroRayFSRs() {
	for u, plane := range d.Mesh.UniquePlanes {
		seen := make([]bool, plane.NFSR())
		for _, ar := range d.Rays[u] {
			for _, r := range ar.Rays {
				for _, s := range r.Segments {
					seen[s.FSR] = true
				}
			}
		}
		for fsr, ok := range seen {
			if !ok {
				diag.Warnf("raydata: unique plane %d FSR %d has zero rays through it", u, fsr)
			}
		}
	}
}
