// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"encoding/json"
	"testing"

	"github.com/cpmech/gosl/chk"
)

const sampleDeck = `{
	"quadrature": {"type": "chebyshev-gauss", "n_azimuthal": 4, "n_polar": 2},
	"ray": {"spacing": 0.05, "volume_correction": "flat"},
	"sweeper": {"n_inner": 1, "gauss_seidel_boundary": false},
	"cmfd": {"enabled": true, "k_tol": 1e-6, "psi_tol": 1e-6, "residual_reduction": 1e-3, "max_iter": 50},
	"eigen": {"k_tol": 1e-6, "psi_tol": 1e-5, "max_iter": 100, "flux_tol": 1e-5},
	"geometry": {
		"pin_meshes": [{"name": "fuel_mesh", "kind": "rectangular", "pitch": 1.26, "nx": 1, "ny": 1}],
		"pins": [{"name": "fuel_pin", "mesh": "fuel_mesh", "material_ids": [1]}],
		"lattices": [{"name": "lat1", "pins": [["fuel_pin"]]}],
		"assemblies": [{"name": "asm1", "lattices": ["lat1"], "heights": [10.0]}],
		"core": {"assemblies": [["asm1"]], "boundary": ["reflect","reflect","reflect","reflect","reflect","reflect"]}
	},
	"materials": {
		"n_group": 1,
		"group_upper_bound": [1e6],
		"materials": [{"id": 1, "name": "fuel", "absorption": [1.0], "nu_fission": [1.0], "kappa_fission": [0], "chi": [1.0], "transport": [1.0], "scatter": [[0]]}]
	}
}`

// Deck round-trips through JSON and every sub-builder produces a
// consistent object graph: the core has one pin, the library one
// material, the quadrature one octant of 8 angles.
func Test_deck01_load_and_build(tst *testing.T) {

	chk.PrintTitle("deck01_load_and_build")

	d := new(Deck)
	if err := json.Unmarshal([]byte(sampleDeck), d); err != nil {
		tst.Fatalf("unmarshal failed: %v", err)
	}
	d.validate()

	core := d.Geometry.Build()
	if core.Nx != 1 || core.Ny != 1 {
		tst.Errorf("expected a 1x1 core, got %dx%d", core.Nx, core.Ny)
	}

	lib := d.Materials.Build()
	mat := lib.ByID(1)
	if mat.Name != "fuel" {
		tst.Errorf("expected material named fuel, got %q", mat.Name)
	}

	q := d.Quadrature.Build()
	if len(q.Angles) != 8*q.NPerOctant {
		tst.Errorf("expected 8 octants worth of angles, got %d for %d per octant", len(q.Angles), q.NPerOctant)
	}

	corr := d.Ray.Correction()
	_ = corr
}
