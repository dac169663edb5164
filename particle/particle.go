// Package particle holds the hadron masses used by the decay modes of the
// generator, and a case-insensitive lookup by name.
//
// Constants are in MeV (PDG values of the B_s → D_s h analysis);
// Mass returns GeV, the unit of every other package.
package particle

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Masses in MeV.
const (
	BsMass    = 5366.3
	DsMass    = 1968.49
	KMass     = 493.677
	BdMass    = 5279.53
	DMass     = 1869.62
	PiMass    = 139.57018
	DsstMass  = 2112.34
	KstMass   = 891.66
	LbMass    = 5620.2
	LcMass    = 2286.46
	PMass     = 938.27203
	GammaMass = 0.0
)

// MeV converts MeV to GeV.
const MeV = 1e-3

// ErrUnknownParticle is returned by Mass for names missing from the table.
var ErrUnknownParticle = errors.New("particle: unknown particle")

var table = map[string]float64{
	"bs":    BsMass,
	"ds":    DsMass,
	"k":     KMass,
	"bd":    BdMass,
	"b0":    BdMass,
	"d":     DMass,
	"pi":    PiMass,
	"dsst":  DsstMass,
	"ds*":   DsstMass,
	"kst":   KstMass,
	"k*":    KstMass,
	"lb":    LbMass,
	"lc":    LcMass,
	"p":     PMass,
	"gamma": GammaMass,
}

// Mass returns the mass of the named particle in GeV.
func Mass(name string) (float64, error) {
	m, ok := table[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("particle %q: %w", name, ErrUnknownParticle)
	}
	return m * MeV, nil
}

// Names returns the known particle names, sorted.
func Names() []string {
	names := make([]string, 0, len(table))
	for n := range table {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
