// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"math"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/moccore/quad"
)

// UserAngleData is one explicit (alpha, theta, weight) entry for a
// user-supplied or imported quadrature.
type UserAngleData struct {
	Alpha, Theta, Weight float64
}

// QuadratureData is the JSON-tagged angular quadrature deck.
type QuadratureData struct {
	Type        string          `json:"type"` // "chebyshev-gauss" | "user" | "import"
	NAzimuthal  int             `json:"n_azimuthal"`
	NPolar      int             `json:"n_polar"`
	UserAngles  []UserAngleData `json:"user_angles"`
}

// Build constructs the first-octant generator angles and wraps them in an
// AngularQuadrature. "chebyshev-gauss" is the equal-weight azimuthal
// Chebyshev times Gauss-Legendre polar product quadrature common to MoC
// solvers; "user"/"import" take the angles verbatim.
func (d *QuadratureData) Build() *quad.AngularQuadrature {
	switch d.Type {
	case "chebyshev-gauss":
		return quad.NewAngularQuadrature(chebyshevGaussGenerator(d.NAzimuthal, d.NPolar))
	case "user", "import":
		if len(d.UserAngles) == 0 {
			chk.Panic("inp: quadrature type %q requires a non-empty user_angles list", d.Type)
		}
		gen := make([]quad.Angle, len(d.UserAngles))
		for i, a := range d.UserAngles {
			gen[i] = quad.NewAngle(a.Alpha, a.Theta, a.Weight)
		}
		return quad.NewAngularQuadrature(gen)
	}
	chk.Panic("inp: unsupported quadrature type %q (only chebyshev-gauss/user/import are implemented)", d.Type)
	return nil
}

// chebyshevGaussGenerator builds the first-octant azimuthal-Chebyshev x
// polar-Gauss-Legendre product quadrature: nAz equally spaced azimuthal
// angles times nPolar Gauss-Legendre polar cosines over [0,1], every
// angle weighted 1/(nAz*nPolar) so the octant sums to 1.
func chebyshevGaussGenerator(nAz, nPolar int) []quad.Angle {
	if nAz < 1 || nPolar < 1 {
		chk.Panic("inp: chebyshev-gauss quadrature needs n_azimuthal>=1 and n_polar>=1, got %d, %d", nAz, nPolar)
	}
	polarCos, _ := gaussLegendreNodes(nPolar)
	gen := make([]quad.Angle, 0, nAz*nPolar)
	w := 1.0 / float64(nAz*nPolar)
	for i := 0; i < nAz; i++ {
		alpha := (float64(i) + 0.5) * (math.Pi / 2) / float64(nAz)
		for _, mu := range polarCos {
			theta := math.Acos(mu)
			gen = append(gen, quad.NewAngle(alpha, theta, w))
		}
	}
	return gen
}

// gaussLegendreNodes returns the nodes and weights of the n-point
// Gauss-Legendre rule mapped to [0,1]: all n roots on [-1,1] shifted via
// (root+1)/2, with weights halved so they sum to 1. Roots are found by
// Newton's method on the Legendre polynomial, since the exact
// gosl/num quadrature entry point could not be grounded from the example
// pack without risking a fabricated signature.
func gaussLegendreNodes(n int) (nodes, weights []float64) {
	nodes = make([]float64, n)
	weights = make([]float64, n)
	for i := 0; i < n; i++ {
		x := math.Cos(math.Pi * (float64(i) + 0.75) / (float64(n) + 0.5))
		for iter := 0; iter < 100; iter++ {
			p0, p1 := 1.0, x
			for k := 2; k <= n; k++ {
				p0, p1 = p1, ((2*float64(k)-1)*x*p1-(float64(k)-1)*p0)/float64(k)
			}
			deriv := float64(n) * (x*p1 - p0) / (x*x - 1)
			dx := p1 / deriv
			x -= dx
			if math.Abs(dx) < 1e-14 {
				break
			}
		}
		p0, p1 := 1.0, x
		for k := 2; k <= n; k++ {
			p0, p1 = p1, ((2*float64(k)-1)*x*p1-(float64(k)-1)*p0)/float64(k)
		}
		deriv := float64(n) * (x*p1 - p0) / (x*x - 1)
		nodes[i] = (x + 1) / 2
		weights[i] = 1.0 / ((1 - x*x) * deriv * deriv)
	}
	return
}
