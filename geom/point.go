// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package geom implements the 2-D/3-D geometric primitives used by the
// core mesh and ray-tracing machinery: points, lines, circles and boxes,
// with ULP-tolerant equality and intersection queries.
package geom

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Tol is the default absolute tolerance used for coincidence checks
// throughout the geometric core. Distances and coordinates in this module
// are expected in centimeters, so 1e-12 is comfortably below any
// physically meaningful dimension.
const Tol = 1e-12

// Point2 is a point in the xy-plane.
type Point2 struct {
	X, Y float64
}

// NewPoint2 builds a Point2.
func NewPoint2(x, y float64) Point2 {
	return Point2{X: x, Y: y}
}

// Equal reports whether p and q coincide within Tol.
func (p Point2) Equal(q Point2) bool {
	return closeTol(p.X, q.X, Tol) && closeTol(p.Y, q.Y, Tol)
}

// Sub returns p - q.
func (p Point2) Sub(q Point2) Point2 {
	return Point2{p.X - q.X, p.Y - q.Y}
}

// Distance returns the Euclidean distance between p and q.
func (p Point2) Distance(q Point2) float64 {
	dx, dy := p.X-q.X, p.Y-q.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Point3 is a point in 3-D space.
type Point3 struct {
	X, Y, Z float64
}

// NewPoint3 builds a Point3.
func NewPoint3(x, y, z float64) Point3 {
	return Point3{X: x, Y: y, Z: z}
}

// Equal reports whether p and q coincide within Tol.
func (p Point3) Equal(q Point3) bool {
	return closeTol(p.X, q.X, Tol) && closeTol(p.Y, q.Y, Tol) && closeTol(p.Z, q.Z, Tol)
}

// closeTol reports whether a and b differ by no more than tol, either in
// absolute terms or relative to their magnitude (to stay well-behaved for
// large core-length coordinates).
func closeTol(a, b, tol float64) bool {
	d := math.Abs(a - b)
	if d <= tol {
		return true
	}
	scale := math.Max(math.Abs(a), math.Abs(b))
	return d <= tol*scale
}

// Line is the undirected segment between two Point2.
type Line struct {
	P1, P2 Point2
}

// NewLine builds a Line.
func NewLine(p1, p2 Point2) Line {
	if p1.Equal(p2) {
		chk.Panic("geom: Line endpoints must be distinct: %v == %v", p1, p2)
	}
	return Line{P1: p1, P2: p2}
}

// direction returns the (not normalized) direction vector p2-p1.
func (l Line) direction() Point2 {
	return Point2{l.P2.X - l.P1.X, l.P2.Y - l.P1.Y}
}

// Length returns the Euclidean length of the line.
func (l Line) Length() float64 {
	return l.P1.Distance(l.P2)
}

// Intersect returns the intersection point of l with other, if one exists
// within the segment bounds of both lines (within Tol), and whether it was
// found.
func (l Line) Intersect(other Line) (Point2, bool) {
	x1, y1 := l.P1.X, l.P1.Y
	x2, y2 := l.P2.X, l.P2.Y
	x3, y3 := other.P1.X, other.P1.Y
	x4, y4 := other.P2.X, other.P2.Y

	denom := (x1-x2)*(y3-y4) - (y1-y2)*(x3-x4)
	if math.Abs(denom) < Tol {
		return Point2{}, false
	}

	tNum := (x1-x3)*(y3-y4) - (y1-y3)*(x3-x4)
	uNum := (x1-x3)*(y1-y2) - (y1-y3)*(x1-x2)
	t := tNum / denom
	u := uNum / denom

	if t < -Tol || t > 1+Tol || u < -Tol || u > 1+Tol {
		return Point2{}, false
	}
	return Point2{x1 + t*(x2-x1), y1 + t*(y2-y1)}, true
}

// Circle is a circle in the xy-plane.
type Circle struct {
	Center Point2
	R      float64
}

// NewCircle builds a Circle.
func NewCircle(c Point2, r float64) Circle {
	if r <= 0 {
		chk.Panic("geom: Circle radius must be positive: %v", r)
	}
	return Circle{Center: c, R: r}
}

// LineIntersect returns nil or the 2 intersection points of the infinite
// line through l with the circle, using the quadratic formula on the
// parametrized line. Tangency (discriminant within Tol of zero) is reported
// as zero crossings, matching the reference ray-tracer's treatment of
// degenerate tangencies.
func (c Circle) LineIntersect(l Line) []Point2 {
	d := l.direction()
	fx := l.P1.X - c.Center.X
	fy := l.P1.Y - c.Center.Y

	a := d.X*d.X + d.Y*d.Y
	b := 2 * (fx*d.X + fy*d.Y)
	cc := fx*fx + fy*fy - c.R*c.R

	disc := b*b - 4*a*cc
	if disc <= Tol {
		return nil
	}
	sq := math.Sqrt(disc)
	t1 := (-b - sq) / (2 * a)
	t2 := (-b + sq) / (2 * a)

	pts := make([]Point2, 0, 2)
	for _, t := range []float64{t1, t2} {
		pts = append(pts, Point2{l.P1.X + t*d.X, l.P1.Y + t*d.Y})
	}
	return pts
}

// Box is an axis-aligned bounding rectangle, [Xmin,Xmax] x [Ymin,Ymax].
type Box struct {
	Xmin, Xmax, Ymin, Ymax float64
}

// NewBox builds a Box, asserting that it is non-degenerate.
func NewBox(xmin, xmax, ymin, ymax float64) Box {
	if xmin >= xmax || ymin >= ymax {
		chk.Panic("geom: degenerate Box: [%v,%v]x[%v,%v]", xmin, xmax, ymin, ymax)
	}
	return Box{Xmin: xmin, Xmax: xmax, Ymin: ymin, Ymax: ymax}
}

// Contains reports whether p lies within the box, within Tol.
func (b Box) Contains(p Point2) bool {
	return p.X >= b.Xmin-Tol && p.X <= b.Xmax+Tol && p.Y >= b.Ymin-Tol && p.Y <= b.Ymax+Tol
}

// RayExit returns the point at which a ray from p in direction (ox,oy)
// leaves the box, tracing forward only (t >= 0). Panics if p is not inside
// the box or the direction is degenerate, since the ray-generation
// component never calls this with a malformed ray.
func (b Box) RayExit(p Point2, ox, oy float64) Point2 {
	if !b.Contains(p) {
		chk.Panic("geom: RayExit: point %v is outside box %v", p, b)
	}
	if math.Abs(ox) < Tol && math.Abs(oy) < Tol {
		chk.Panic("geom: RayExit: degenerate direction")
	}

	best := math.Inf(1)
	candidates := []float64{}
	if ox > Tol {
		candidates = append(candidates, (b.Xmax-p.X)/ox)
	} else if ox < -Tol {
		candidates = append(candidates, (b.Xmin-p.X)/ox)
	}
	if oy > Tol {
		candidates = append(candidates, (b.Ymax-p.Y)/oy)
	} else if oy < -Tol {
		candidates = append(candidates, (b.Ymin-p.Y)/oy)
	}
	for _, t := range candidates {
		if t >= -Tol && t < best {
			best = t
		}
	}
	if math.IsInf(best, 1) {
		chk.Panic("geom: RayExit: no exit found for point %v direction (%v,%v)", p, ox, oy)
	}
	return Point2{p.X + best*ox, p.Y + best*oy}
}
