// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xs

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
)

// Material holds one material's per-group macroscopic cross sections. The
// raw per-group numbers are also exposed as a fun.Prms parameter list
// (Absorption_0, NuFission_0, ... ) so that the same material-perturbation
// idiom used elsewhere for constitutive models (finding and mutating a
// named fun.Prm) is available for sensitivity studies.
type Material struct {
	Name        string
	NGroup      int
	Absorption  []float64
	NuFission   []float64
	KappaFission []float64
	Chi         []float64
	Transport   []float64
	Scatter     *ScatteringMatrix
	Fissile     bool
}

// NewMaterial validates and builds a Material from per-group slices plus a
// dense scattering matrix.
func NewMaterial(name string, absorption, nuFission, kappaFission, chi, transport []float64, scatterDense [][]float64) *Material {
	ng := len(absorption)
	for _, v := range [][]float64{nuFission, kappaFission, chi, transport} {
		if len(v) != ng {
			chk.Panic("xs: material %q has mismatched per-group array lengths", name)
		}
	}
	fissile := false
	for _, v := range nuFission {
		if v > 0 {
			fissile = true
			break
		}
	}
	return &Material{
		Name:         name,
		NGroup:       ng,
		Absorption:   absorption,
		NuFission:    nuFission,
		KappaFission: kappaFission,
		Chi:          chi,
		Transport:    transport,
		Scatter:      NewScatteringMatrix(scatterDense),
		Fissile:      fissile,
	}
}

// Removal returns sigma_t - self-scatter for group g: the coefficient of
// phi_g in the within-group balance equation.
func (m *Material) Removal(g int) float64 {
	return m.Transport[g] - m.Scatter.Self(g)
}

// Prms returns an example fun.Prms parameter list exposing every per-group
// quantity by name, mirroring the inp.Material.Prms idiom.
func (m *Material) Prms() fun.Prms {
	prms := make(fun.Prms, 0, 5*m.NGroup)
	add := func(label string, vals []float64) {
		for g, v := range vals {
			prms = append(prms, &fun.Prm{N: prmName(label, g), V: v})
		}
	}
	add("Absorption", m.Absorption)
	add("NuFission", m.NuFission)
	add("KappaFission", m.KappaFission)
	add("Chi", m.Chi)
	add("Transport", m.Transport)
	return prms
}

func prmName(label string, g int) string {
	return label + "_" + itoa(g)
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	digits := []byte{}
	for i > 0 {
		digits = append([]byte{byte('0' + i%10)}, digits...)
		i /= 10
	}
	return string(digits)
}

// Library is a named collection of Materials, looked up by ID.
type Library struct {
	NGroup          int
	GroupUpperBound []float64
	byID            map[int]*Material
	byName          map[string]int
	nameByID        map[int]string
}

// NewLibrary builds an empty Library for ng groups.
func NewLibrary(ng int, groupUpperBound []float64) *Library {
	if len(groupUpperBound) != ng {
		chk.Panic("xs: group_upper_bounds length %d != n_group %d", len(groupUpperBound), ng)
	}
	return &Library{
		NGroup:          ng,
		GroupUpperBound: groupUpperBound,
		byID:            map[int]*Material{},
		byName:          map[string]int{},
		nameByID:        map[int]string{},
	}
}

// Add registers a material under id, failing fatally on a duplicate ID or a
// group-count mismatch.
func (l *Library) Add(id int, mat *Material) {
	if _, dup := l.byID[id]; dup {
		chk.Panic("xs: duplicate material id %d", id)
	}
	if mat.NGroup != l.NGroup {
		chk.Panic("xs: material %q has %d groups, library expects %d", mat.Name, mat.NGroup, l.NGroup)
	}
	l.byID[id] = mat
	l.byName[mat.Name] = id
	l.nameByID[id] = mat.Name
}

// ByID returns the material for id, panicking if unknown (callers are
// expected to have validated IDs against the library at configuration
// time).
func (l *Library) ByID(id int) *Material {
	mat, ok := l.byID[id]
	if !ok {
		chk.Panic("xs: unknown material id %d", id)
	}
	return mat
}

// ByName returns the material registered under name.
func (l *Library) ByName(name string) *Material {
	id, ok := l.byName[name]
	if !ok {
		chk.Panic("xs: unknown material name %q", name)
	}
	return l.byID[id]
}
