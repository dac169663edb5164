// Package analysis computes derived quantities from generated events.
//
// KFactor: for partially reconstructed decays such as Bs → Ds* h with the
// neutral daughter of the Ds* missed, the reconstructed candidate is
// rec = p[partial] + p[bachelor], with the bachelor assigned a mass
// hypothesis. The k-factor
//
//	k = |rec| / |p[0]| · M(p[0]) / M(rec)
//
// corrects the candidate momentum back to the true mother momentum.
package analysis

import (
	"errors"
	"fmt"
	"math"

	"go-hep.org/x/hep/fmom"
	"go-hep.org/x/hep/hbook"

	"github.com/katalvlaran/decaygen/event"
	"github.com/katalvlaran/decaygen/particle"
)

// ErrInvalidConfig is returned for out-of-range KFactorConfig fields.
var ErrInvalidConfig = errors.New("analysis: invalid k-factor configuration")

// KFactorConfig selects the momenta and binning of a k-factor study.
type KFactorConfig struct {
	Bachelor     int     // row index of the bachelor hadron
	Partial      int     // row index of the partially reconstructed daughter
	BachelorMass float64 // mass hypothesis of the bachelor, GeV

	Bins     int
	Min, Max float64
}

// DefaultKFactorConfig returns the Bs → Ds* K study layout: bachelor at 2,
// Ds at 3, kaon hypothesis, 100 bins on [0, 1.15).
func DefaultKFactorConfig() KFactorConfig {
	k, _ := particle.Mass("K")
	return KFactorConfig{
		Bachelor:     2,
		Partial:      3,
		BachelorMass: k,
		Bins:         100,
		Min:          0,
		Max:          1.15,
	}
}

// KFactorStats counts the rows a study used.
type KFactorStats struct {
	Used    int
	Skipped int // rows too short or degenerate
}

// KFactor fills a histogram of the k-factor of every row holding both
// configured momenta. Rows are not modified.
//
// Complexity: O(len(rows)).
func KFactor(rows []event.Row, cfg KFactorConfig) (*hbook.H1D, KFactorStats, error) {
	var st KFactorStats
	if cfg.Bins <= 0 || !(cfg.Max > cfg.Min) || cfg.Bachelor < 1 || cfg.Partial < 1 ||
		cfg.Bachelor == cfg.Partial || cfg.BachelorMass < 0 {
		return nil, st, fmt.Errorf("KFactor(%+v): %w", cfg, ErrInvalidConfig)
	}
	need := cfg.Bachelor
	if cfg.Partial > need {
		need = cfg.Partial
	}

	h := hbook.NewH1D(cfg.Bins, cfg.Min, cfg.Max)
	for i := range rows {
		if len(rows[i].Momenta) <= need {
			st.Skipped++
			continue
		}
		k, ok := kfactor(rows[i].Momenta, cfg)
		if !ok {
			st.Skipped++
			continue
		}
		h.Fill(k, 1)
		st.Used++
	}

	return h, st, nil
}

// kfactor computes k for one event; ok is false for a mother at rest or a
// massless candidate.
func kfactor(p []fmom.PxPyPzE, cfg KFactorConfig) (float64, bool) {
	mother := p[0]
	b := p[cfg.Bachelor]
	bx, by, bz := b.Px(), b.Py(), b.Pz()
	bachelor := fmom.NewPxPyPzE(bx, by, bz, math.Sqrt(bx*bx+by*by+bz*bz+cfg.BachelorMass*cfg.BachelorMass))

	rec := fmom.Add(&p[cfg.Partial], &bachelor)
	if mother.P() == 0 || rec.M() <= 0 {
		return 0, false
	}

	return rec.P() / mother.P() * mother.M() / rec.M(), true
}
