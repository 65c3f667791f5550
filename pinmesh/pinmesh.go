// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package pinmesh implements the 2-D subdivision of a single reactor pin,
// as either a rectangular grid or concentric annuli with azimuthal
// sectors, behind a shared tagged-variant interface.
package pinmesh

import (
	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/moccore/geom"
)

// Kind tags which concrete layout a PinMesh holds.
type Kind int

// Pin mesh kinds.
const (
	Rectangular Kind = iota
	Cylindrical
)

// Segment is one (length, region) pair emitted by Trace.
type Segment struct {
	Length float64
	Region int
}

// PinMesh is the shared interface implemented by both layouts. Dispatch is
// exhaustive over Kind rather than open-ended, since new pin shapes are
// rare and this sits in the hottest ray-tracing loop.
type PinMesh struct {
	Kind   Kind
	Pitch  float64 // square pitch, x == y
	Rect   *rectLayout
	Cyl    *cylLayout
	id     int
	nRegns int
}

var nextID = 1

// newID hands out a process-unique pin-mesh identifier, used by unique-plane
// detection to compare plane layouts by mesh identity rather than by deep
// structural equality.
func newID() int {
	id := nextID
	nextID++
	return id
}

// ID returns this mesh's unique identifier.
func (m *PinMesh) ID() int { return m.id }

// NRegions returns the number of flat-source regions in this pin mesh.
func (m *PinMesh) NRegions() int { return m.nRegns }

// AreaList returns the area of every region, in region-index order.
// Invariant: the areas sum to Pitch*Pitch.
func (m *PinMesh) AreaList() []float64 {
	switch m.Kind {
	case Rectangular:
		return m.Rect.areaList()
	case Cylindrical:
		return m.Cyl.areaList()
	default:
		chk.Panic("pinmesh: unknown kind %v", m.Kind)
		return nil
	}
}

// FindRegion returns the region index containing p, breaking ties on
// region boundaries using the direction vector (dx,dy) of travel.
func (m *PinMesh) FindRegion(p geom.Point2, dx, dy float64) int {
	switch m.Kind {
	case Rectangular:
		return m.Rect.findRegion(p, dx, dy)
	case Cylindrical:
		return m.Cyl.findRegion(p, dx, dy)
	default:
		chk.Panic("pinmesh: unknown kind %v", m.Kind)
		return -1
	}
}

// Trace returns the ordered (length, region) segment list along the chord
// from p1 to p2, both expressed in pin-local coordinates with the origin
// at the pin's lower-left corner.
func (m *PinMesh) Trace(p1, p2 geom.Point2) []Segment {
	switch m.Kind {
	case Rectangular:
		return m.Rect.trace(p1, p2)
	case Cylindrical:
		return m.Cyl.trace(p1, p2)
	default:
		chk.Panic("pinmesh: unknown kind %v", m.Kind)
		return nil
	}
}

// DistanceToSurface returns the distance along direction (dx,dy) from p to
// the nearest surface ahead, and that surface's id. A rectangular pin
// checks every grid line, its outer edges included (x-line i has id i,
// y-line j has id 1000+j). A cylindrical pin checks only its ring circles
// (id = ring index), not its outer square, and returns +Inf and -1 when
// no circle lies ahead. coincidentSurf, if >= 0, is excluded from
// consideration so that a point sitting exactly on a surface can look past
// it for the *next* crossing.
func (m *PinMesh) DistanceToSurface(p geom.Point2, dx, dy float64, coincidentSurf int) (float64, int) {
	switch m.Kind {
	case Rectangular:
		return m.Rect.distanceToSurface(p, dx, dy, coincidentSurf)
	case Cylindrical:
		return m.Cyl.distanceToSurface(p, dx, dy, coincidentSurf)
	default:
		chk.Panic("pinmesh: unknown kind %v", m.Kind)
		return 0, -1
	}
}
