// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package xs implements material cross-section libraries, row-compressed
// scattering matrices, and the mapping from flat-source regions onto
// macroscopic cross sections, including flux-volume-weighted homogenization
// onto the coarse (pin) mesh.
package xs

import (
	"github.com/cpmech/gosl/chk"
)

// ScatteringMatrix is a row-compressed ng x ng scattering matrix: for
// destination group g, only source groups in [MinG[g], MaxG[g]] carry
// non-zero data, stored contiguously in Data.
type ScatteringMatrix struct {
	NGroup    int
	MinG      []int // per destination group
	MaxG      []int // per destination group, inclusive
	Data      []float64
	rowOffset []int     // offset into Data of MinG[g] for destination g
	Out       []float64 // total outscatter per source group
}

// NewScatteringMatrix builds a ScatteringMatrix by scanning a dense ng x ng
// matrix dense[to][from] row by row for the first and last non-zero "from"
// group, keeping only the non-sparse band.
func NewScatteringMatrix(dense [][]float64) *ScatteringMatrix {
	ng := len(dense)
	if ng == 0 {
		chk.Panic("xs: scattering matrix must have at least one group")
	}
	s := &ScatteringMatrix{NGroup: ng, MinG: make([]int, ng), MaxG: make([]int, ng), rowOffset: make([]int, ng)}
	offset := 0
	for g := 0; g < ng; g++ {
		row := dense[g]
		if len(row) != ng {
			chk.Panic("xs: scattering matrix row %d has length %d, expected %d", g, len(row), ng)
		}
		minG, maxG := -1, -1
		for from := 0; from < ng; from++ {
			if row[from] != 0 {
				if minG < 0 {
					minG = from
				}
				maxG = from
			}
		}
		if minG < 0 {
			minG, maxG = g, g-1 // empty row: MaxG < MinG signals "no entries"
		}
		s.MinG[g] = minG
		s.MaxG[g] = maxG
		s.rowOffset[g] = offset
		for from := minG; from <= maxG; from++ {
			s.Data = append(s.Data, row[from])
			offset++
		}
	}
	s.computeOutscatter(dense)
	return s
}

func (s *ScatteringMatrix) computeOutscatter(dense [][]float64) {
	s.Out = make([]float64, s.NGroup)
	for from := 0; from < s.NGroup; from++ {
		total := 0.0
		for to := 0; to < s.NGroup; to++ {
			total += dense[to][from]
		}
		s.Out[from] = total
	}
}

// Get returns the scattering cross section from group `from` into group
// `to`, or 0 if outside the stored band.
func (s *ScatteringMatrix) Get(to, from int) float64 {
	if from < s.MinG[to] || from > s.MaxG[to] {
		return 0
	}
	return s.Data[s.rowOffset[to]+(from-s.MinG[to])]
}

// Self returns the self-scatter (to == from) cross section for group g.
func (s *ScatteringMatrix) Self(g int) float64 {
	return s.Get(g, g)
}

// Outscatter returns the total scattering cross section out of group g,
// into every destination group (property P5).
func (s *ScatteringMatrix) Outscatter(g int) float64 {
	return s.Out[g]
}

// AsDense reconstructs the full ng x ng matrix, dense[to][from].
func (s *ScatteringMatrix) AsDense() [][]float64 {
	dense := make([][]float64, s.NGroup)
	for to := range dense {
		dense[to] = make([]float64, s.NGroup)
		for from := s.MinG[to]; from <= s.MaxG[to]; from++ {
			dense[to][from] = s.Get(to, from)
		}
	}
	return dense
}
