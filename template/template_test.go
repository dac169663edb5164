package template_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go-hep.org/x/hep/hbook"

	"github.com/katalvlaran/decaygen/template"
)

func TestFixed(t *testing.T) {
	var tpl template.Template = template.Fixed(50)
	assert.Equal(t, 50.0, tpl.Draw(nil))
}

func TestUniform(t *testing.T) {
	u, err := template.NewUniform(-2.5, 2.5)
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 1000; i++ {
		x := u.Draw(rng)
		assert.GreaterOrEqual(t, x, -2.5)
		assert.Less(t, x, 2.5)
	}

	_, err = template.NewUniform(1, 0)
	assert.ErrorIs(t, err, template.ErrInvalidRange)
}

func TestSample(t *testing.T) {
	vals := []float64{1, 2, 3}
	s, err := template.NewSample(vals)
	require.NoError(t, err)
	vals[0] = 99 // copied on construction

	seen := map[float64]int{}
	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 3000; i++ {
		seen[s.Draw(rng)]++
	}
	assert.Len(t, seen, 3)
	assert.Zero(t, seen[99])
	for _, v := range []float64{1, 2, 3} {
		assert.InDelta(t, 1000, seen[v], 150)
	}

	_, err = template.NewSample(nil)
	assert.ErrorIs(t, err, template.ErrEmpty)
}

func TestHistogram_FollowsShape(t *testing.T) {
	h := hbook.NewH1D(4, 0, 4)
	h.Fill(0.5, 1)
	h.Fill(2.5, 3)
	// bins 1 and 3 stay empty

	tpl, err := template.NewHistogram(h)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(11))
	var lowBin, highBin int
	for i := 0; i < 4000; i++ {
		x := tpl.Draw(rng)
		switch {
		case x >= 0 && x < 1:
			lowBin++
		case x >= 2 && x < 3:
			highBin++
		default:
			t.Fatalf("draw %g landed in an empty bin", x)
		}
	}
	assert.InDelta(t, 1000, lowBin, 150)
	assert.InDelta(t, 3000, highBin, 150)
}

func TestHistogram_VariableWidthBins(t *testing.T) {
	h := hbook.NewH1DFromEdges([]float64{0, 1, 10})
	h.Fill(0.5, 1)
	h.Fill(5, 1)

	tpl, err := template.NewHistogram(h)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(5))
	const n = 20000
	var first, lowerWide int
	for i := 0; i < n; i++ {
		x := tpl.Draw(rng)
		require.True(t, x >= 0 && x < 10, "draw %g outside the edges", x)
		switch {
		case x < 1:
			first++
		case x < 5:
			lowerWide++
		}
	}
	// half the weight sits in [0,1); the other half spreads over [1,10)
	assert.InDelta(t, 0.5, float64(first)/n, 0.02)
	assert.InDelta(t, 0.5*4.0/9.0, float64(lowerWide)/n, 0.02)
}

func TestHistogram_Empty(t *testing.T) {
	_, err := template.NewHistogram(nil)
	assert.ErrorIs(t, err, template.ErrEmpty)

	_, err = template.NewHistogram(hbook.NewH1D(10, 0, 1))
	assert.ErrorIs(t, err, template.ErrEmpty)
}
