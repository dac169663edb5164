package analysis_test

import (
	"context"
	"math"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go-hep.org/x/hep/fmom"

	"github.com/katalvlaran/decaygen/analysis"
	"github.com/katalvlaran/decaygen/builder"
	"github.com/katalvlaran/decaygen/event"
	"github.com/katalvlaran/decaygen/generator"
	"github.com/katalvlaran/decaygen/template"
)

func quiet() logrus.FieldLogger {
	l, _ := logtest.NewNullLogger()
	return l
}

func mk(px, py, pz, m float64) fmom.PxPyPzE {
	return fmom.NewPxPyPzE(px, py, pz, math.Sqrt(px*px+py*py+pz*pz+m*m))
}

// A fully reconstructed decay with the correct mass hypothesis has k = 1.
func TestKFactor_FullReconstruction(t *testing.T) {
	b := mk(0, 1, 4, 0.5)
	d := mk(0, -1, 6, 1)
	sum := fmom.Add(&b, &d)
	mother := fmom.NewPxPyPzE(sum.Px(), sum.Py(), sum.Pz(), sum.E())
	rows := []event.Row{{Momenta: []fmom.PxPyPzE{mother, {}, b, d}}}

	cfg := analysis.DefaultKFactorConfig()
	cfg.BachelorMass = 0.5
	h, st, err := analysis.KFactor(rows, cfg)
	require.NoError(t, err)
	assert.Equal(t, 1, st.Used)
	assert.InDelta(t, 1.0, h.XMean(), 1e-9)
}

func TestKFactor_DsstK(t *testing.T) {
	tr, err := builder.FromMasses([]float64{5.3663, 2.11234, 0.493677, 1.96849, 0})
	require.NoError(t, err)
	g, err := generator.New(tr, generator.WithLogger(quiet()), generator.WithSeed(9))
	require.NoError(t, err)
	eta, err := template.NewUniform(2, 5)
	require.NoError(t, err)
	tab, _, err := g.GetEventTree(context.Background(), 500, template.Fixed(80), eta)
	require.NoError(t, err)

	h, st, err := analysis.KFactor(tab.Rows(), analysis.DefaultKFactorConfig())
	require.NoError(t, err)
	assert.Equal(t, 500, st.Used)
	assert.Zero(t, st.Skipped)
	assert.Equal(t, 500.0, h.SumW())
	// missing the photon, the candidate is lighter than the Bs
	assert.Greater(t, h.XMean(), 0.8)
	assert.Less(t, h.XMean(), 1.15)
}

func TestKFactor_SkipsShortRows(t *testing.T) {
	rows := []event.Row{{Momenta: make([]fmom.PxPyPzE, 3)}}
	_, st, err := analysis.KFactor(rows, analysis.DefaultKFactorConfig())
	require.NoError(t, err)
	assert.Equal(t, analysis.KFactorStats{Skipped: 1}, st)
}

func TestKFactor_InvalidConfig(t *testing.T) {
	cfg := analysis.DefaultKFactorConfig()
	cfg.Bins = 0
	_, _, err := analysis.KFactor(nil, cfg)
	assert.ErrorIs(t, err, analysis.ErrInvalidConfig)

	cfg = analysis.DefaultKFactorConfig()
	cfg.Partial = cfg.Bachelor
	_, _, err = analysis.KFactor(nil, cfg)
	assert.ErrorIs(t, err, analysis.ErrInvalidConfig)
}
