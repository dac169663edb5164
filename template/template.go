// File: template.go
// Role: Template implementations (fixed, uniform, sample replay, histogram).

package template

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"go-hep.org/x/hep/hbook"
)

var (
	// ErrEmpty is returned when a template would have nothing to draw from.
	ErrEmpty = errors.New("template: no entries")

	// ErrInvalidRange is returned for Uniform bounds with Max < Min.
	ErrInvalidRange = errors.New("template: invalid range")
)

// Template is a distribution that can be drawn from.
type Template interface {
	Draw(rng *rand.Rand) float64
}

// Fixed always draws the same value.
type Fixed float64

// Draw implements Template.
func (f Fixed) Draw(*rand.Rand) float64 { return float64(f) }

// Uniform draws from [Min, Max).
type Uniform struct {
	Min, Max float64
}

// NewUniform validates the bounds.
func NewUniform(min, max float64) (Uniform, error) {
	if max < min {
		return Uniform{}, fmt.Errorf("NewUniform(%g, %g): %w", min, max, ErrInvalidRange)
	}
	return Uniform{Min: min, Max: max}, nil
}

// Draw implements Template.
func (u Uniform) Draw(rng *rand.Rand) float64 {
	return u.Min + (u.Max-u.Min)*rng.Float64()
}

// Sample replays recorded values, each with equal probability.
type Sample struct {
	values []float64
}

// NewSample copies values.
func NewSample(values []float64) (*Sample, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("NewSample: %w", ErrEmpty)
	}
	return &Sample{values: append([]float64(nil), values...)}, nil
}

// Len returns the number of recorded values.
func (s *Sample) Len() int { return len(s.values) }

// Draw implements Template.
func (s *Sample) Draw(rng *rand.Rand) float64 {
	return s.values[rng.Intn(len(s.values))]
}

// Histogram draws from the shape of a one-dimensional histogram: a bin is
// chosen with probability proportional to its content, then a value
// uniformly within the bin. Negative bin contents count as empty.
// Bins may have different widths.
type Histogram struct {
	lo    []float64 // lower edge of each bin
	width []float64
	cdf   []float64 // cdf[i] = content of bins [0, i]; last entry is the total
}

// NewHistogram precomputes the cumulative distribution of h. Later changes
// to h are not seen.
//
// Complexity: O(bins).
func NewHistogram(h *hbook.H1D) (*Histogram, error) {
	if h == nil || h.Len() == 0 {
		return nil, fmt.Errorf("NewHistogram: %w", ErrEmpty)
	}

	var (
		n     = h.Len()
		lo    = make([]float64, n)
		width = make([]float64, n)
		cdf   = make([]float64, n)
		sum   float64
		b     *hbook.Bin1D
		i     int
	)
	for i = 0; i < n; i++ {
		b = &h.Binning.Bins[i]
		lo[i], width[i] = b.XMin(), b.XWidth()
		if y := b.SumW(); y > 0 {
			sum += y
		}
		cdf[i] = sum
	}
	if sum <= 0 {
		return nil, fmt.Errorf("NewHistogram: %w", ErrEmpty)
	}

	return &Histogram{lo: lo, width: width, cdf: cdf}, nil
}

// Draw implements Template.
//
// Complexity: O(log bins).
func (t *Histogram) Draw(rng *rand.Rand) float64 {
	total := t.cdf[len(t.cdf)-1]
	r := total * rng.Float64()

	// first bin whose cumulative content exceeds r; empty bins are skipped
	i := sort.Search(len(t.cdf), func(k int) bool { return t.cdf[k] > r })
	if i == len(t.cdf) {
		i = len(t.cdf) - 1
	}
	lo := 0.0
	if i > 0 {
		lo = t.cdf[i-1]
	}
	frac := (r - lo) / (t.cdf[i] - lo)

	return t.lo[i] + t.width[i]*frac
}
