// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package solver wires together the per-group MoC sweep kernel and the
// CMFD acceleration solver into the outer eigenvalue iteration (§4.11):
// it owns the global flat-source-region bookkeeping, builds one fixed-
// source sweep per energy group per axial level, tallies the coarse
// surface currents MoC feeds to CMFD, and projects the CMFD-corrected
// pin flux back onto the FSR mesh between outer iterations.
package solver

import "github.com/cpmech/moccore/coremesh"

// GlobalFSRMaterialIDs returns the material ID of every FSR in the whole
// core, indexed by the GLOBAL fsr numbering (mesh.FirstRegPlane[iz] +
// plane-local offset), the layout xs.NewMesh expects.
func GlobalFSRMaterialIDs(mesh *coremesh.Mesh) []int {
	out := make([]int, mesh.NFSR)
	for iz := 0; iz < mesh.Nz; iz++ {
		plane := mesh.UniquePlanes[mesh.UniquePlaneID[iz]]
		base := mesh.FirstRegPlane[iz]
		for iy := 0; iy < plane.Ny; iy++ {
			for ix := 0; ix < plane.Nx; ix++ {
				pin := plane.Pins[iy][ix]
				first := plane.FirstFSR(ix, iy)
				for r, matID := range pin.MaterialIDs {
					out[base+first+r] = matID
				}
			}
		}
	}
	return out
}

// GlobalFSRVolumes returns the volume of every FSR in the whole core,
// indexed by the global FSR numbering: the pin mesh's per-region area
// times the axial level's height.
func GlobalFSRVolumes(mesh *coremesh.Mesh) []float64 {
	out := make([]float64, mesh.NFSR)
	for iz := 0; iz < mesh.Nz; iz++ {
		plane := mesh.UniquePlanes[mesh.UniquePlaneID[iz]]
		base := mesh.FirstRegPlane[iz]
		height := mesh.Height(iz)
		for iy := 0; iy < plane.Ny; iy++ {
			for ix := 0; ix < plane.Nx; ix++ {
				pin := plane.Pins[iy][ix]
				first := plane.FirstFSR(ix, iy)
				for r, area := range pin.Mesh.AreaList() {
					out[base+first+r] = area * height
				}
			}
		}
	}
	return out
}

// CellFSRs maps every coarse (pin) cell to the global FSR indices that
// make it up, the layout xs.HomogenizedMesh.Update needs to homogenize
// pin-level cross sections from the underlying FSR flux.
func CellFSRs(mesh *coremesh.Mesh) [][]int {
	out := make([][]int, mesh.NCoarseCell())
	for iz := 0; iz < mesh.Nz; iz++ {
		plane := mesh.UniquePlanes[mesh.UniquePlaneID[iz]]
		base := mesh.FirstRegPlane[iz]
		for iy := 0; iy < plane.Ny; iy++ {
			for ix := 0; ix < plane.Nx; ix++ {
				c := mesh.CoarseCell(coremesh.Position{Ix: ix, Iy: iy, Iz: iz})
				pin := plane.Pins[iy][ix]
				first := plane.FirstFSR(ix, iy)
				fsrs := make([]int, pin.Mesh.NRegions())
				for r := range fsrs {
					fsrs[r] = base + first + r
				}
				out[c] = fsrs
			}
		}
	}
	return out
}
