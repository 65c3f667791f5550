// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bc

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/moccore/coremesh"
	"github.com/cpmech/moccore/quad"
)

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

func allReflect() [6]FaceType {
	return [6]FaceType{Reflect, Reflect, Reflect, Reflect, Reflect, Reflect}
}

// R2: two successive updates equal one, for VACUUM and REFLECT.
func Test_bc01_idempotent(tst *testing.T) {

	chk.PrintTitle("bc01_idempotent")

	q := quad.NewAngularQuadrature(chebyshevGenerator(2, 1))
	s := NewUniform(1, q, [3]int{4, 4, 0}, [6]FaceType{Vacuum, Vacuum, Vacuum, Vacuum, Vacuum, Vacuum})

	for i := range s.Out {
		s.Out[i] = float64(i + 1)
	}
	s.Update(0)
	first := append([]float64{}, s.In...)
	s.Update(0)
	for i := range s.In {
		if s.In[i] != first[i] {
			tst.Errorf("vacuum update not idempotent at %d: %v != %v", i, s.In[i], first[i])
		}
	}

	s2 := NewUniform(1, q, [3]int{4, 4, 0}, allReflect())
	for i := range s2.Out {
		s2.Out[i] = float64(i + 1)
	}
	s2.Update(0)
	first2 := append([]float64{}, s2.In...)
	s2.Update(0)
	for i := range s2.In {
		if s2.In[i] != first2[i] {
			tst.Errorf("reflect update not idempotent at %d: %v != %v", i, s2.In[i], first2[i])
		}
	}
}

// E4: each angle's outgoing face feeds the reflected angle's incoming face.
func Test_bc02_reflection_fingerprint(tst *testing.T) {

	chk.PrintTitle("bc02_reflection_fingerprint")

	q := quad.NewAngularQuadrature(chebyshevGenerator(2, 1))
	s := NewUniform(1, q, [3]int{3, 3, 0}, allReflect())

	for a := range q.Angles {
		out := s.OutSlice(0, a, quad.XNorm)
		for i := range out {
			out[i] = float64(100*a + i)
		}
		out = s.OutSlice(0, a, quad.YNorm)
		for i := range out {
			out[i] = float64(1000*a + i)
		}
	}

	s.Update(0)

	for a := range q.Angles {
		ra := q.Reflect(a, quad.XNorm)
		in := s.InSlice(0, a, quad.XNorm)
		out := s.OutSlice(0, ra, quad.XNorm)
		for i := range in {
			if in[i] != out[i] {
				tst.Errorf("angle %d XNorm: in[%d]=%v != reflected out[%d]=%v", a, i, in[i], i, out[i])
			}
		}
	}
}
