// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/moccore/xs"
)

// MaterialData is one material's JSON-tagged cross-section record, the
// per-group arrays xs.NewMaterial consumes directly.
type MaterialData struct {
	ID           int         `json:"id"`
	Name         string      `json:"name"`
	Absorption   []float64   `json:"absorption"`
	NuFission    []float64   `json:"nu_fission"`
	KappaFission []float64   `json:"kappa_fission"`
	Chi          []float64   `json:"chi"`
	Transport    []float64   `json:"transport"`
	Scatter      [][]float64 `json:"scatter"` // dense [to][from]
}

// MaterialLibraryData is the JSON-tagged material library: the energy
// structure plus every material keyed by ID.
type MaterialLibraryData struct {
	NGroup          int            `json:"n_group"`
	GroupUpperBound []float64      `json:"group_upper_bound"`
	Materials       []MaterialData `json:"materials"`
}

// Build constructs an xs.Library from the deck data, asserting every
// material's per-group arrays match NGroup (xs.NewMaterial already
// panics on mismatch; this just surfaces the count up front).
func (d *MaterialLibraryData) Build() *xs.Library {
	if d.NGroup <= 0 {
		chk.Panic("inp: material library n_group must be positive, got %d", d.NGroup)
	}
	lib := xs.NewLibrary(d.NGroup, d.GroupUpperBound)
	for _, m := range d.Materials {
		mat := xs.NewMaterial(m.Name, m.Absorption, m.NuFission, m.KappaFission, m.Chi, m.Transport, m.Scatter)
		lib.Add(m.ID, mat)
	}
	return lib
}
