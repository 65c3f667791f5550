// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xs

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/rnd"
)

func Test_scatter01_roundtrip(tst *testing.T) {

	chk.PrintTitle("scatter01_roundtrip")

	const ng = 47
	rnd.Init(4321)
	dense := make([][]float64, ng)
	for g := range dense {
		dense[g] = make([]float64, ng)
		for from := 0; from < ng; from++ {
			if rnd.Int(0, 3) == 0 {
				dense[g][from] = rnd.Float64(0, 1)
			}
		}
	}

	s := NewScatteringMatrix(dense)
	back := s.AsDense()
	for g := 0; g < ng; g++ {
		for from := 0; from < ng; from++ {
			chk.Scalar(tst, "entry", 1e-13, back[g][from], dense[g][from])
		}
	}
}

func Test_scatter02_outscatter(tst *testing.T) {

	chk.PrintTitle("scatter02_outscatter")

	dense := [][]float64{
		{0.5, 0.1, 0.0},
		{0.0, 0.6, 0.2},
		{0.0, 0.0, 0.7},
	}
	s := NewScatteringMatrix(dense)
	for from := 0; from < 3; from++ {
		total := 0.0
		for to := 0; to < 3; to++ {
			total += dense[to][from]
		}
		chk.Scalar(tst, "outscatter", 1e-14, s.Outscatter(from), total)
	}
}

func Test_homogenize01_idempotent(tst *testing.T) {

	chk.PrintTitle("homogenize01_idempotent")

	mat := NewMaterial("fuel", []float64{0.2, 0.5}, []float64{0.1, 0.3}, []float64{0.1, 0.3}, []float64{1, 0},
		[]float64{1.0, 1.2}, [][]float64{{0.1, 0.0}, {0.05, 0.3}})
	lib := NewLibrary(2, []float64{10, 1})
	lib.Add(1, mat)

	mesh := NewMesh([]int{1, 1, 1, 1}, lib)
	cellFSRs := [][]int{{0, 1, 2, 3}}
	vol := []float64{1, 1, 1, 1}
	flux := []float64{1, 2, 1, 2, 1, 2, 1, 2}

	h := NewHomogenizedMesh(1, 2)
	h.Update(mesh, cellFSRs, vol, flux)
	first := h.Absorption[0][0]

	h.Update(mesh, cellFSRs, vol, flux)
	chk.Scalar(tst, "idempotent absorption", 1e-13, h.Absorption[0][0], first)
	chk.Scalar(tst, "homogenized absorption equals uniform material", 1e-13, h.Absorption[0][0], mat.Absorption[0])
}
