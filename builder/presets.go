// SPDX-License-Identifier: MIT
// Package: decaygen/builder
//
// presets.go — named decay modes of the B_s → D_s h analysis.

package builder

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/decaygen/core"
	"github.com/katalvlaran/decaygen/particle"
)

// DsstPiAltFraction is the fraction given to Bs → Ds* π, Ds* → Ds π in the
// "DsstPi" mode; the primary Ds* → Ds γ channel keeps the rest.
const DsstPiAltFraction = 0.05

// mode lists the mass arrays of a named decay mode: the primary array and
// optional extra channels of the root.
type mode struct {
	primary []string
	extra   []extraChannel
}

type extraChannel struct {
	masses   []string
	fraction float64
}

var modes = map[string]mode{
	"DsK":  {primary: []string{"Bs", "Ds", "K"}},
	"DsPi": {primary: []string{"Bs", "Ds", "pi"}},
	"DsstPi": {
		primary: []string{"Bs", "Ds*", "pi", "Ds", "gamma"},
		extra: []extraChannel{
			{masses: []string{"Bs", "Ds*", "pi", "Ds", "pi"}, fraction: DsstPiAltFraction},
		},
	},
}

// Modes returns the names accepted by Preset, sorted.
func Modes() []string {
	names := make([]string, 0, len(modes))
	for n := range modes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Preset builds the decay tree of a named mode. Names are case sensitive.
//
// Errors: ErrUnknownMode.
func Preset(name string, opts ...Option) (*core.Tree, error) {
	m, ok := modes[name]
	if !ok {
		return nil, fmt.Errorf("Preset(%q): %w", name, ErrUnknownMode)
	}

	masses, err := massesOf(m.primary)
	if err != nil {
		return nil, fmt.Errorf("Preset(%q): %w", name, err)
	}
	t, err := FromMasses(masses, opts...)
	if err != nil {
		return nil, fmt.Errorf("Preset(%q): %w", name, err)
	}
	for _, x := range m.extra {
		if masses, err = massesOf(x.masses); err != nil {
			return nil, fmt.Errorf("Preset(%q): %w", name, err)
		}
		if _, err = AddDecayChannel(t, core.Root, masses, x.fraction, opts...); err != nil {
			return nil, fmt.Errorf("Preset(%q): %w", name, err)
		}
	}

	return t, nil
}

// massesOf maps particle names to masses in GeV.
func massesOf(names []string) ([]float64, error) {
	out := make([]float64, len(names))
	for i, n := range names {
		m, err := particle.Mass(n)
		if err != nil {
			return nil, err
		}
		out[i] = m
	}
	return out, nil
}
