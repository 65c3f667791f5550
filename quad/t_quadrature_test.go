// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quad

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func chebyshevGenerator(nAz, nPolar int) []Angle {
	gen := make([]Angle, 0, nAz*nPolar)
	wAz := 1.0 / float64(nAz)
	wPolar := 1.0 / float64(nPolar)
	for i := 0; i < nAz; i++ {
		alpha := (float64(i) + 0.5) * (math.Pi / 2) / float64(nAz)
		for j := 0; j < nPolar; j++ {
			theta := (float64(j) + 0.5) * (math.Pi / 2) / float64(nPolar)
			gen = append(gen, NewAngle(alpha, theta, wAz*wPolar))
		}
	}
	return gen
}

func Test_quadrature01(tst *testing.T) {

	chk.PrintTitle("quadrature01")

	q := NewAngularQuadrature(chebyshevGenerator(4, 2))
	if len(q.Angles) != 64 {
		tst.Errorf("expected 64 angles, got %d", len(q.Angles))
	}

	sum := 0.0
	for _, a := range q.Angles {
		sum += a.Weight
	}
	chk.Scalar(tst, "weight sum", 1e-13, sum, 8.0)
}

func Test_quadrature02_reflect(tst *testing.T) {

	chk.PrintTitle("quadrature02_reflect")

	q := NewAngularQuadrature(chebyshevGenerator(4, 2))
	for i := range q.Angles {
		r := q.Reflect(i, XNorm)
		mirrored := q.Angles[i].Mirror(XNorm)
		if !q.Angles[r].Equal(mirrored) {
			tst.Errorf("angle %d reflect(XNorm) mismatch", i)
		}
	}
}

func Test_quadrature03_modularize(tst *testing.T) {

	chk.PrintTitle("quadrature03_modularize")

	q := NewAngularQuadrature(chebyshevGenerator(4, 2))
	mod := q.Modularize(10.0, 10.0, 0.1)
	if len(mod) != q.NPerOctant {
		tst.Errorf("expected %d modular rays, got %d", q.NPerOctant, len(mod))
	}
	for _, m := range mod {
		if m.Nx%2 == 0 || m.Ny%2 == 0 {
			tst.Errorf("modular ray counts must be odd: nx=%d ny=%d", m.Nx, m.Ny)
		}
	}

	sum := 0.0
	for _, a := range q.Angles {
		sum += a.Weight
	}
	chk.Scalar(tst, "weight sum after modularize", 1e-10, sum, 8.0)
}

// Entries sharing an azimuth before modularization (here, the two polar
// cosines of each of the two chebyshev-gauss azimuths) must still share
// equal weight afterward, since their original polar shares were equal.
// Bracketing azimuths that were not first deduplicated splits these
// same-azimuth neighbors against each other instead of against the next
// distinct azimuth, corrupting this equality (a regression this test
// guards against).
func Test_quadrature04_modularize_preserves_equal_polar_share(tst *testing.T) {

	chk.PrintTitle("quadrature04_modularize_preserves_equal_polar_share")

	q := NewAngularQuadrature(chebyshevGenerator(2, 2))
	q.Modularize(10.0, 10.0, 0.1)

	// indices 0,1 share the first azimuth; 2,3 share the second (the
	// generator octant occupies q.Angles[0:4] before reflection).
	chk.Scalar(tst, "weight[0] vs weight[1]", 1e-9, q.Angles[0].Weight, q.Angles[1].Weight)
	chk.Scalar(tst, "weight[2] vs weight[3]", 1e-9, q.Angles[2].Weight, q.Angles[3].Weight)
}
