// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp reads the JSON-tagged configuration deck describing the
// angular quadrature, ray tracing, sweeper, CMFD and outer-eigenvalue
// parameters, the core geometry catalog, and the material library, then
// builds the concrete objects (coremesh.Core, xs.Library,
// quad.AngularQuadrature) the rest of the program runs over, in the
// read-file-then-json.Unmarshal-then-validate idiom used throughout
// this codebase's configuration loading.
package inp

import (
	"encoding/json"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/moccore/raydata"
)

// RayData is the JSON-tagged ray-tracing configuration.
type RayData struct {
	Spacing          float64 `json:"spacing"`
	VolumeCorrection string  `json:"volume_correction"` // "flat" | "angle"
}

// Correction maps the deck's volume_correction string to the
// raydata.VolumeCorrection constant Generate expects.
func (d *RayData) Correction() raydata.VolumeCorrection {
	switch d.VolumeCorrection {
	case "", "flat":
		return raydata.FlatPerAngle
	case "angle":
		return raydata.AngleIntegrated
	}
	chk.Panic("inp: unknown ray volume_correction %q", d.VolumeCorrection)
	return raydata.FlatPerAngle
}

// SweeperData is the JSON-tagged sweep-kernel configuration.
type SweeperData struct {
	NInner             int  `json:"n_inner"`
	GaussSeidelBoundary bool `json:"gauss_seidel_boundary"`
}

// CMFDData is the JSON-tagged CMFD acceleration configuration.
type CMFDData struct {
	Enabled        bool    `json:"enabled"`
	KTol           float64 `json:"k_tol"`
	PsiTol         float64 `json:"psi_tol"`
	ResidReduction float64 `json:"residual_reduction"`
	MaxIter        int     `json:"max_iter"`
	NegativeFixup  bool    `json:"negative_fixup"`
}

// EigenData is the JSON-tagged outer eigenvalue-loop configuration.
type EigenData struct {
	KTol    float64 `json:"k_tol"`
	PsiTol  float64 `json:"psi_tol"`
	MaxIter int     `json:"max_iter"`
	FluxTol float64 `json:"flux_tol"`
}

// Deck is the top-level configuration document LoadDeck reads.
type Deck struct {
	Quadrature QuadratureData       `json:"quadrature"`
	Ray        RayData              `json:"ray"`
	Sweeper    SweeperData          `json:"sweeper"`
	CMFD       CMFDData             `json:"cmfd"`
	Eigen      EigenData            `json:"eigen"`
	Geometry   GeometryData         `json:"geometry"`
	Materials  MaterialLibraryData  `json:"materials"`
}

// LoadDeck reads path as JSON into a Deck. A missing file surfaces a
// plain error (a true system boundary); malformed JSON is returned as an
// error built with chk.Err, mirroring inp.ReadMat.
func LoadDeck(path string) (*Deck, error) {
	buf, err := io.ReadFile(path)
	if err != nil {
		return nil, err
	}
	d := new(Deck)
	if err := json.Unmarshal(buf, d); err != nil {
		return nil, chk.Err("inp: cannot parse deck %q: %v", path, err)
	}
	d.validate()
	return d, nil
}

// validate checks the configuration invariants that are cheap to catch
// before any geometry/material object is built (§7).
func (d *Deck) validate() {
	if d.Ray.Spacing <= 0 {
		chk.Panic("inp: ray spacing must be positive, got %v", d.Ray.Spacing)
	}
	if d.Sweeper.NInner < 1 {
		chk.Panic("inp: sweeper n_inner must be at least 1, got %d", d.Sweeper.NInner)
	}
	if d.CMFD.Enabled {
		if d.CMFD.KTol <= 0 || d.CMFD.PsiTol <= 0 {
			chk.Panic("inp: cmfd k_tol/psi_tol must be positive when cmfd is enabled")
		}
		if d.CMFD.MaxIter < 1 {
			chk.Panic("inp: cmfd max_iter must be at least 1, got %d", d.CMFD.MaxIter)
		}
	}
	if d.Eigen.KTol <= 0 || d.Eigen.PsiTol <= 0 {
		chk.Panic("inp: eigen k_tol/psi_tol must be positive")
	}
	if d.Eigen.MaxIter < 1 {
		chk.Panic("inp: eigen max_iter must be at least 1, got %d", d.Eigen.MaxIter)
	}
}
