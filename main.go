// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/mpi"

	"github.com/cpmech/moccore/coremesh"
	"github.com/cpmech/moccore/diag"
	"github.com/cpmech/moccore/inp"
	"github.com/cpmech/moccore/raydata"
	"github.com/cpmech/moccore/solver"
	"github.com/cpmech/moccore/xs"
)

func main() {

	verbose := true

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			if mpi.Rank() == 0 {
				chk.Verbose = true
				for i := 8; i > 3; i-- {
					chk.CallerInfo(i)
				}
				io.PfRed("ERROR: %v\n", err)
			}
		}
		mpi.Stop(false)
	}()
	mpi.Start(false)

	// message
	if mpi.Rank() == 0 {
		io.PfWhite("\nmoccore -- multi-group MoC/CMFD eigenvalue solver\n\n")
	}

	// deck filename
	flag.Parse()
	var fnamepath string
	if len(flag.Args()) > 0 {
		fnamepath = flag.Arg(0)
	} else {
		chk.Panic("Please, provide a deck filename. Ex.: core.deck")
	}

	deck, err := inp.LoadDeck(fnamepath)
	if err != nil {
		chk.Panic("%v", err)
	}

	core := deck.Geometry.Build()
	mesh := coremesh.Build(core)
	lib := deck.Materials.Build()
	xsMesh := xs.NewMesh(solver.GlobalFSRMaterialIDs(mesh), lib)
	q := deck.Quadrature.Build()
	rays := raydata.Generate(mesh, q, deck.Ray.Spacing, deck.Ray.Correction())

	e := solver.NewEigenSolver(mesh, rays, q, xsMesh, deck.Materials.NGroup, deck.Sweeper.GaussSeidelBoundary)
	e.KTol = deck.Eigen.KTol
	e.PsiTol = deck.Eigen.PsiTol
	e.MaxIter = deck.Eigen.MaxIter
	e.NInner = deck.Sweeper.NInner
	e.CMFD.Enabled = deck.CMFD.Enabled
	e.CMFD.NegativeFixup = deck.CMFD.NegativeFixup
	if deck.CMFD.Enabled {
		e.CMFD.KTol = deck.CMFD.KTol
		e.CMFD.PsiTol = deck.CMFD.PsiTol
		e.CMFD.ResidReduction = deck.CMFD.ResidReduction
		e.CMFD.MaxIter = deck.CMFD.MaxIter
	}

	iters := e.Solve()

	if mpi.Rank() == 0 {
		if iters >= e.MaxIter {
			diag.Warnf("outer eigenvalue iteration did not converge within %d iterations", e.MaxIter)
		}
		io.Pf("converged in %d outer iterations\n", iters)
		io.Pf("k-effective = %v\n", e.K)
		if verbose {
			diag.Flush()
		}
	}
}
