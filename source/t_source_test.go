// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package source

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/moccore/xs"
)

func sampleLibrary() *xs.Library {
	lib := xs.NewLibrary(2, []float64{1e6, 1})
	scatterDense := [][]float64{
		{0.3, 0.0},
		{0.2, 0.4},
	}
	mat := xs.NewMaterial("fuel", []float64{0.1, 0.2}, []float64{0.2, 0.0}, []float64{0.2, 0.0}, []float64{1, 0}, []float64{1, 1}, scatterDense)
	lib.Add(1, mat)
	return lib
}

func Test_source01_fission_inscatter(tst *testing.T) {

	chk.PrintTitle("source01_fission_inscatter")

	lib := sampleLibrary()
	mesh := xs.NewMesh([]int{1, 1, 1}, lib)
	ng := 2

	flux := []float64{1, 2, 1, 2, 1, 2} // fsr-major, group-minor
	fs := []float64{0.5, 0.5, 0.5}

	b := NewBuilder(3)
	b.Reset(nil)
	b.Fission(mesh, fs, 0)
	b.InScatter(mesh, flux, ng, 0)
	finished := b.Finish()

	for fsr := 0; fsr < 3; fsr++ {
		want := 1.0*0.5 + 0.0 // chi[0]=1 * fs, no inscatter into g=0 from g=0 (self excluded), row0 minG=maxG=0 so nothing from g'!=0
		if finished.Q[fsr] != want {
			tst.Errorf("fsr %d: got %v want %v", fsr, finished.Q[fsr], want)
		}
	}

	b.Reset(nil)
	b.Fission(mesh, fs, 1)
	b.InScatter(mesh, flux, ng, 1)
	finished1 := b.Finish()
	for fsr := 0; fsr < 3; fsr++ {
		want := 0.0*0.5 + 0.2*flux[fsr*ng+0] // chi[1]=0, inscatter from g=0 into g=1 at 0.2
		if finished1.Q[fsr] != want {
			tst.Errorf("fsr %d group1: got %v want %v", fsr, finished1.Q[fsr], want)
		}
	}
}

func Test_source02_illegal_order_panics(tst *testing.T) {

	chk.PrintTitle("source02_illegal_order_panics")

	defer func() {
		if r := recover(); r == nil {
			tst.Errorf("expected panic calling InScatter before Fission")
		}
	}()
	lib := sampleLibrary()
	mesh := xs.NewMesh([]int{1}, lib)
	b := NewBuilder(1)
	b.Reset(nil)
	b.InScatter(mesh, []float64{1, 1}, 2, 0)
}

func Test_source03_self_scatter(tst *testing.T) {

	chk.PrintTitle("source03_self_scatter")

	lib := sampleLibrary()
	mesh := xs.NewMesh([]int{1}, lib)
	ng := 2
	flux := []float64{1, 2}
	transport := []float64{0.5}

	b := NewBuilder(1)
	b.Reset(nil)
	b.Fission(mesh, []float64{1}, 0)
	finished := b.Finish()

	qbar := SelfScatter(mesh, finished, flux, ng, 0, transport)
	want := (finished.Q[0] + 0.3*flux[0]) / (4 * 3.141592653589793 * 0.5)
	if diff := qbar[0] - want; diff > 1e-12 || diff < -1e-12 {
		tst.Errorf("got %v want %v", qbar[0], want)
	}
}
