// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package quad implements discrete-ordinate angular quadratures: octant
// reflection/reversal of direction cosines and azimuthal modularization to
// fit an integer ray count across a rectangular domain.
package quad

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Normal names the three coordinate directions used for octant reflection.
type Normal int

// Normal directions.
const (
	XNorm Normal = iota
	YNorm
	ZNorm
)

// Angle carries both the spherical coordinates (Alpha azimuthal, Theta
// polar) of a discrete direction and its direction cosines, kept in sync so
// that hot loops never need to recompute trigonometric functions.
type Angle struct {
	Alpha, Theta float64
	Ox, Oy, Oz   float64
	Weight       float64
}

// NewAngle builds an Angle from (alpha, theta), deriving direction cosines.
// Alpha must not coincide with an axis-aligned value (0, π/2, π, 3π/2),
// since every angle must lie in a unique, well-defined octant.
func NewAngle(alpha, theta, weight float64) Angle {
	const axisTol = 1e-9
	for _, axis := range []float64{0, math.Pi / 2, math.Pi, 3 * math.Pi / 2, 2 * math.Pi} {
		if math.Abs(alpha-axis) < axisTol {
			chk.Panic("quad: angle azimuth %v is axis-aligned; every angle must lie in a unique octant", alpha)
		}
	}
	sinTheta := math.Sin(theta)
	return Angle{
		Alpha:  alpha,
		Theta:  theta,
		Ox:     math.Cos(alpha) * sinTheta,
		Oy:     math.Sin(alpha) * sinTheta,
		Oz:     math.Cos(theta),
		Weight: weight,
	}
}

const angleTol = 1e-13

// Equal reports whether a and b are equal to within 1e-13 on every field.
func (a Angle) Equal(b Angle) bool {
	return math.Abs(a.Alpha-b.Alpha) < angleTol &&
		math.Abs(a.Theta-b.Theta) < angleTol &&
		math.Abs(a.Ox-b.Ox) < angleTol &&
		math.Abs(a.Oy-b.Oy) < angleTol &&
		math.Abs(a.Oz-b.Oz) < angleTol &&
		math.Abs(a.Weight-b.Weight) < angleTol
}

// Mirror reflects a across the plane normal to norm, flipping the sign of
// the corresponding direction cosine and azimuth.
func (a Angle) Mirror(norm Normal) Angle {
	b := a
	switch norm {
	case XNorm:
		b.Ox = -b.Ox
		b.Alpha = math.Pi - a.Alpha
	case YNorm:
		b.Oy = -b.Oy
		b.Alpha = -a.Alpha
	case ZNorm:
		b.Oz = -b.Oz
		b.Theta = math.Pi - a.Theta
	}
	b.Alpha = math.Mod(b.Alpha+2*math.Pi, 2*math.Pi)
	return b
}

// Reverse reflects a through the origin (both X and Y normals), the
// direction used to pair a forward ray traversal with its backward partner.
func (a Angle) Reverse() Angle {
	return a.Mirror(XNorm).Mirror(YNorm)
}
