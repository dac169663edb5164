// SPDX-License-Identifier: MIT

package phasespace

import (
	"fmt"
	"math"
	"math/rand"

	"go-hep.org/x/hep/fmom"
	"gonum.org/v1/gonum/spatial/r3"
)

// Sampler draws decays of a configured mother into two daughters.
type Sampler interface {
	// Configure sets the mother four-momentum and daughter masses. It
	// returns false if the decay is kinematically forbidden; the sampler
	// is then unconfigured.
	Configure(mother fmom.PxPyPzE, masses [2]float64) bool

	// Sample draws one decay and returns its weight. It returns 0 if the
	// sampler is unconfigured.
	Sample() float64

	// Daughter returns the lab-frame four-momentum of daughter i of the
	// last sampled decay.
	Daughter(i int) (fmom.PxPyPzE, error)
}

// Factory builds a Sampler drawing from rng.
type Factory func(rng *rand.Rand) Sampler

// NewFactory returns the Factory of TwoBody samplers.
func NewFactory() Factory {
	return func(rng *rand.Rand) Sampler { return NewTwoBody(rng) }
}

// TwoBody is the isotropic two-body phase-space Sampler.
type TwoBody struct {
	rng *rand.Rand

	masses [2]float64
	boost  r3.Vec
	moving bool

	pstar float64
	pmax  float64

	daughters  [2]fmom.PxPyPzE
	configured bool
	sampled    bool
}

// NewTwoBody returns an unconfigured TwoBody drawing from rng.
// Panics on nil rng.
func NewTwoBody(rng *rand.Rand) *TwoBody {
	if rng == nil {
		panic("phasespace: NewTwoBody(nil)")
	}
	return &TwoBody{rng: rng}
}

// Configure implements Sampler.
//
// Complexity: O(1).
func (s *TwoBody) Configure(mother fmom.PxPyPzE, masses [2]float64) bool {
	s.configured, s.sampled = false, false

	// 1. Mother must be timelike with room for both daughters
	m2 := mother.M2()
	if !(m2 > 0) || masses[0] < 0 || masses[1] < 0 {
		return false
	}
	m := math.Sqrt(m2)
	if m-masses[0]-masses[1] <= 0 {
		return false
	}

	// 2. Breakup momentum and weight normalization
	pstar := Momentum(m, masses[0], masses[1])
	if pstar <= 0 {
		return false
	}
	s.pstar = pstar
	s.pmax = pstar // p*max == p* for two bodies

	// 3. Lab boost of the mother rest frame
	s.moving = mother.P2() > 0
	if s.moving {
		s.boost = fmom.BoostOf(&mother)
	} else {
		s.boost = r3.Vec{}
	}
	s.masses = masses
	s.configured = true

	return true
}

// Sample implements Sampler.
//
// Complexity: O(1).
func (s *TwoBody) Sample() float64 {
	if !s.configured {
		return 0
	}

	// 1. Isotropic direction in the rest frame
	cost := 2*s.rng.Float64() - 1
	sint := math.Sqrt(1 - cost*cost)
	phi := 2 * math.Pi * s.rng.Float64()
	dir := r3.Vec{X: sint * math.Cos(phi), Y: sint * math.Sin(phi), Z: cost}

	// 2. Back-to-back daughters, then boost
	var (
		i int
		p r3.Vec
	)
	for i = range s.daughters {
		p = r3.Scale(s.pstar, dir)
		if i == 1 {
			p = r3.Scale(-1, p)
		}
		e := math.Sqrt(s.pstar*s.pstar + s.masses[i]*s.masses[i])
		d := fmom.NewPxPyPzE(p.X, p.Y, p.Z, e)
		if s.moving {
			d.Set(fmom.Boost(&d, s.boost))
		}
		s.daughters[i] = d
	}
	s.sampled = true

	return s.pstar / s.pmax
}

// Daughter implements Sampler.
func (s *TwoBody) Daughter(i int) (fmom.PxPyPzE, error) {
	if i < 0 || i > 1 {
		return fmom.PxPyPzE{}, fmt.Errorf("Daughter(%d): %w", i, ErrDaughterIndex)
	}
	if !s.sampled {
		return fmom.PxPyPzE{}, fmt.Errorf("Daughter(%d): %w", i, ErrNotSampled)
	}
	return s.daughters[i], nil
}

// Momentum returns the two-body breakup momentum of a mother of mass m
// decaying into masses m1 and m2, or 0 below threshold.
//
// Complexity: O(1).
func Momentum(m, m1, m2 float64) float64 {
	x := (m*m - (m1+m2)*(m1+m2)) * (m*m - (m1-m2)*(m1-m2))
	if x <= 0 || m <= 0 {
		return 0
	}
	return math.Sqrt(x) / (2 * m)
}
