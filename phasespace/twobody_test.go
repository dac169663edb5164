package phasespace_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go-hep.org/x/hep/fmom"

	"github.com/katalvlaran/decaygen/phasespace"
)

const tol = 1e-9

func motherZ(p, m float64) fmom.PxPyPzE {
	return fmom.NewPxPyPzE(0, 0, p, math.Sqrt(p*p+m*m))
}

func TestMomentum(t *testing.T) {
	// M = 5, m1 = 3, m2 = 0 → p* = (25-9)/10
	assert.InDelta(t, 1.6, phasespace.Momentum(5, 3, 0), tol)
	assert.InDelta(t, 0.0, phasespace.Momentum(1, 0.6, 0.6), tol)
	assert.InDelta(t, 0.0, phasespace.Momentum(0, 0, 0), tol)
}

func TestTwoBody_RestFrame(t *testing.T) {
	s := phasespace.NewTwoBody(rand.New(rand.NewSource(1)))
	require.True(t, s.Configure(motherZ(0, 5.367), [2]float64{1.969, 0.494}))

	pstar := phasespace.Momentum(5.367, 1.969, 0.494)
	for i := 0; i < 100; i++ {
		assert.Equal(t, 1.0, s.Sample())
		d0, err := s.Daughter(0)
		require.NoError(t, err)
		d1, err := s.Daughter(1)
		require.NoError(t, err)

		assert.InDelta(t, pstar, d0.P(), tol)
		assert.InDelta(t, pstar, d1.P(), tol)
		assert.InDelta(t, 0, d0.Px()+d1.Px(), tol)
		assert.InDelta(t, 0, d0.Py()+d1.Py(), tol)
		assert.InDelta(t, 0, d0.Pz()+d1.Pz(), tol)
		assert.InDelta(t, 5.367, d0.E()+d1.E(), tol)
	}
}

func TestTwoBody_BoostedConservation(t *testing.T) {
	s := phasespace.NewTwoBody(rand.New(rand.NewSource(7)))
	mother := fmom.NewPxPyPzE(3, -4, 120, math.Sqrt(9+16+14400+5.3663*5.3663))
	require.True(t, s.Configure(mother, [2]float64{2.11234, 0.13957}))

	for i := 0; i < 100; i++ {
		require.Equal(t, 1.0, s.Sample())
		d0, _ := s.Daughter(0)
		d1, _ := s.Daughter(1)

		assert.InDelta(t, mother.Px(), d0.Px()+d1.Px(), 1e-8)
		assert.InDelta(t, mother.Py(), d0.Py()+d1.Py(), 1e-8)
		assert.InDelta(t, mother.Pz(), d0.Pz()+d1.Pz(), 1e-8)
		assert.InDelta(t, mother.E(), d0.E()+d1.E(), 1e-8)
		assert.InDelta(t, 2.11234, d0.M(), 1e-6)
		assert.InDelta(t, 0.13957, d1.M(), 1e-6)
	}
}

func TestTwoBody_Forbidden(t *testing.T) {
	s := phasespace.NewTwoBody(rand.New(rand.NewSource(1)))
	assert.False(t, s.Configure(motherZ(10, 1), [2]float64{0.6, 0.6}))
	assert.Equal(t, 0.0, s.Sample())
	_, err := s.Daughter(0)
	assert.ErrorIs(t, err, phasespace.ErrNotSampled)

	// spacelike mother
	assert.False(t, s.Configure(fmom.NewPxPyPzE(0, 0, 5, 1), [2]float64{0, 0}))
	assert.False(t, s.Configure(motherZ(0, 1), [2]float64{-0.1, 0}))
}

func TestTwoBody_DaughterIndex(t *testing.T) {
	s := phasespace.NewTwoBody(rand.New(rand.NewSource(1)))
	require.True(t, s.Configure(motherZ(1, 1), [2]float64{0.1, 0.1}))
	s.Sample()
	_, err := s.Daughter(2)
	assert.ErrorIs(t, err, phasespace.ErrDaughterIndex)
	_, err = s.Daughter(-1)
	assert.ErrorIs(t, err, phasespace.ErrDaughterIndex)
}

func TestTwoBody_Deterministic(t *testing.T) {
	f := phasespace.NewFactory()
	a, b := f(rand.New(rand.NewSource(42))), f(rand.New(rand.NewSource(42)))
	require.True(t, a.Configure(motherZ(50, 5.367), [2]float64{1.969, 0.494}))
	require.True(t, b.Configure(motherZ(50, 5.367), [2]float64{1.969, 0.494}))
	for i := 0; i < 10; i++ {
		a.Sample()
		b.Sample()
		da, _ := a.Daughter(0)
		db, _ := b.Daughter(0)
		assert.Equal(t, da, db)
	}
}

func TestNewTwoBody_NilPanics(t *testing.T) {
	assert.Panics(t, func() { phasespace.NewTwoBody(nil) })
}
