// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package raydata

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/moccore/coremesh"
	"github.com/cpmech/moccore/pinmesh"
	"github.com/cpmech/moccore/quad"
)

func sampleCore2x2(nPlanes int) *coremesh.Core {
	pin := func() *coremesh.Pin {
		return coremesh.NewPin(pinmesh.NewRectangular(1.0, 2, 2), []int{1, 1, 1, 1})
	}
	lattices := make([]*coremesh.Lattice, nPlanes)
	for i := range lattices {
		lattices[i] = coremesh.NewLattice([][]*coremesh.Pin{
			{pin(), pin()},
			{pin(), pin()},
		})
	}
	heights := make([]float64, nPlanes)
	for i := range heights {
		heights[i] = 1.0
	}
	a := coremesh.NewAssembly(lattices, heights)
	return coremesh.NewCore([][]*coremesh.Assembly{{a}}, [6]coremesh.BoundaryType{})
}

func chebyshevGenerator(nAz, nPolar int) []quad.Angle {
	gen := make([]quad.Angle, 0, nAz*nPolar)
	w := 1.0 / float64(nAz*nPolar)
	for i := 0; i < nAz; i++ {
		alpha := (float64(i) + 0.5) * (math.Pi / 2) / float64(nAz)
		for j := 0; j < nPolar; j++ {
			theta := (float64(j) + 0.5) * (math.Pi / 2) / float64(nPolar)
			gen = append(gen, quad.NewAngle(alpha, theta, w))
		}
	}
	return gen
}

func Test_ray01_generate(tst *testing.T) {

	chk.PrintTitle("ray01_generate")

	mesh := coremesh.Build(sampleCore2x2(1))
	q := quad.NewAngularQuadrature(chebyshevGenerator(2, 2))

	d := Generate(mesh, q, 0.1, FlatPerAngle)

	if len(d.Rays) != 1 {
		tst.Errorf("expected 1 unique plane, got %d", len(d.Rays))
	}
	nAngles := 2 * q.NPerOctant
	if len(d.Rays[0]) != nAngles {
		tst.Errorf("expected %d angles, got %d", nAngles, len(d.Rays[0]))
	}
	for ai, ar := range d.Rays[0] {
		if len(ar.Rays) == 0 {
			tst.Errorf("angle %d has no rays", ai)
		}
		for _, r := range ar.Rays {
			if len(r.Segments) == 0 {
				tst.Errorf("angle %d has a ray with no segments", ai)
			}
		}
	}
	if d.MaxSegments <= 0 {
		tst.Errorf("expected a positive MaxSegments, got %d", d.MaxSegments)
	}
}

// P1: after flat-per-angle volume correction, every FSR's ray-integrated
// area (summed over rays of one angle, times the ray spacing) matches its
// true pin-mesh area.
func Test_ray02_volume_correction(tst *testing.T) {

	chk.PrintTitle("ray02_volume_correction")

	mesh := coremesh.Build(sampleCore2x2(1))
	q := quad.NewAngularQuadrature(chebyshevGenerator(3, 2))

	d := Generate(mesh, q, 0.05, FlatPerAngle)
	plane := mesh.UniquePlanes[0]
	trueArea := fsrTrueAreas(plane)

	for ai, ar := range d.Rays[0] {
		tilde := make([]float64, len(trueArea))
		for _, r := range ar.Rays {
			for _, s := range r.Segments {
				tilde[s.FSR] += s.Length * ar.Spacing
			}
		}
		for fsr := range trueArea {
			if tilde[fsr] == 0 {
				continue
			}
			diff := math.Abs(tilde[fsr] - trueArea[fsr])
			if diff > 1e-6 {
				tst.Errorf("angle %d FSR %d: ray-integrated area %v != true area %v", ai, fsr, tilde[fsr], trueArea[fsr])
			}
		}
	}
}

// At least one ray must cross a pin boundary in a 2x2 plane, and a
// crossing's Surf must be consistent with the direction of travel: a ray
// can only ever report East/North crossings along a positive-cosine axis
// and West/South along a negative one.
func Test_ray04_crossings_match_direction(tst *testing.T) {

	chk.PrintTitle("ray04_crossings_match_direction")

	mesh := coremesh.Build(sampleCore2x2(1))
	q := quad.NewAngularQuadrature(chebyshevGenerator(3, 2))
	d := Generate(mesh, q, 0.1, FlatPerAngle)

	found := false
	for ai, ar := range d.Rays[0] {
		a := q.Angles[ai]
		for _, r := range ar.Rays {
			for _, s := range r.Segments {
				if s.Crossing == nil {
					continue
				}
				found = true
				switch s.Crossing.Surf {
				case coremesh.East:
					if a.Ox <= 0 {
						tst.Errorf("angle %d: East crossing with Ox=%v", ai, a.Ox)
					}
				case coremesh.West:
					if a.Ox >= 0 {
						tst.Errorf("angle %d: West crossing with Ox=%v", ai, a.Ox)
					}
				case coremesh.North:
					if a.Oy <= 0 {
						tst.Errorf("angle %d: North crossing with Oy=%v", ai, a.Oy)
					}
				case coremesh.South:
					if a.Oy >= 0 {
						tst.Errorf("angle %d: South crossing with Oy=%v", ai, a.Oy)
					}
				}
			}
		}
	}
	if !found {
		tst.Errorf("expected at least one pin-to-pin crossing in a 2x2 plane")
	}
}

func Test_ray03_angle_integrated(tst *testing.T) {

	chk.PrintTitle("ray03_angle_integrated")

	mesh := coremesh.Build(sampleCore2x2(1))
	q := quad.NewAngularQuadrature(chebyshevGenerator(2, 2))

	d := Generate(mesh, q, 0.08, AngleIntegrated)
	if d == nil || len(d.Rays) != 1 {
		tst.Errorf("expected angle-integrated data for 1 unique plane")
	}
}
