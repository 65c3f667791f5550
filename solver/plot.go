// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/plt"
)

// PlotHistory renders k and the relative fission-source change per outer
// iteration to path, skipped unless chk.Verbose (mirroring mconduct's
// Test_plot01 gate and out/plotting.go's subplot-then-save shape).
func (e *EigenSolver) PlotHistory(path string) {
	if !chk.Verbose {
		return
	}
	n := len(e.KHistory)
	if n == 0 {
		return
	}
	x := make([]float64, n)
	for i := range x {
		x[i] = float64(i + 1)
	}

	kStyle := plt.Fmt{C: "blue", L: "k-effective"}
	psiStyle := plt.Fmt{C: "red", L: "fission source change"}

	plt.SetForEps(1.2, 350)

	plt.Subplot(2, 1, 1)
	plt.Title("outer iteration convergence", "")
	plt.Plot(x, e.KHistory, kStyle.GetArgs(""))
	plt.Gll("outer iteration", "k", "")

	plt.Subplot(2, 1, 2)
	plt.Plot(x, e.PsiHistory, psiStyle.GetArgs(""))
	plt.Gll("outer iteration", "relative $\\Delta\\psi$", "")

	plt.Save(path)
}
