// File: builder_test.go
// Functional tests for mass-array construction, alternative channels and
// named presets.
package builder_test

import (
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/decaygen/builder"
	"github.com/katalvlaran/decaygen/core"
	"github.com/katalvlaran/decaygen/particle"
)

// childOf returns the node that daughter idx of channel ch of id decays through.
func childOf(t *testing.T, tr *core.Tree, id core.NodeID, ch, idx int) core.Node {
	t.Helper()
	s, err := tr.Daughter(id, ch, idx)
	require.NoError(t, err)
	cid, ok := s.Node()
	require.True(t, ok, "daughter %d of node %d channel %d is stable", idx, id, ch)
	n, err := tr.Node(cid)
	require.NoError(t, err)
	return n
}

func childID(t *testing.T, tr *core.Tree, id core.NodeID, ch, idx int) core.NodeID {
	t.Helper()
	s, err := tr.Daughter(id, ch, idx)
	require.NoError(t, err)
	cid, ok := s.Node()
	require.True(t, ok)
	return cid
}

func TestFromMasses_SingleVertex(t *testing.T) {
	tr, err := builder.FromMasses([]float64{5.367, 1.969, 0.494})
	require.NoError(t, err)
	assert.Equal(t, 1, tr.Len())

	n, err := tr.Node(core.Root)
	require.NoError(t, err)
	assert.Equal(t, 5.367, n.MotherMass)
	assert.Equal(t, [2]float64{1.969, 0.494}, n.DaughterMasses)
	require.Len(t, n.Channels, 1)
	assert.Equal(t, 1.0, n.Channels[0].BranchingFraction)
	assert.True(t, n.Channels[0].IsLeaf())
}

func TestFromMasses_NestedDecay(t *testing.T) {
	// Bs → Ds* π, Ds* → Ds γ
	tr, err := builder.FromMasses([]float64{5.3663, 2.11234, 0.13957, 1.96849, 0})
	require.NoError(t, err)
	assert.Equal(t, 2, tr.Len())

	dsst := childOf(t, tr, core.Root, 0, 0)
	assert.Equal(t, 2.11234, dsst.MotherMass)
	assert.Equal(t, [2]float64{1.96849, 0}, dsst.DaughterMasses)

	s, err := tr.Daughter(core.Root, 0, 1)
	require.NoError(t, err)
	assert.True(t, s.IsStable())
}

func TestFromMasses_PaddingSkipsVertex(t *testing.T) {
	tr, err := builder.FromMasses([]float64{5, 2, 1, 0.5, 0.4, -1, -1})
	require.NoError(t, err)
	assert.Equal(t, 2, tr.Len())

	s, err := tr.Daughter(core.Root, 0, 1)
	require.NoError(t, err)
	assert.True(t, s.IsStable())
	assert.Equal(t, 2.0, childOf(t, tr, core.Root, 0, 0).MotherMass)
}

func TestFromMasses_SkippedParentSkipsDescendants(t *testing.T) {
	// vertex 1 is padded out, so vertex 3 (its first daughter) must not appear
	tr, err := builder.FromMasses([]float64{5, 2, 1, -1, -1, 0.3, 0.3, 0.1, 0.1})
	require.NoError(t, err)
	assert.Equal(t, 2, tr.Len())

	s, err := tr.Daughter(core.Root, 0, 0)
	require.NoError(t, err)
	assert.True(t, s.IsStable())
	assert.Equal(t, 1.0, childOf(t, tr, core.Root, 0, 1).MotherMass)
}

func TestFromMasses_DeepTreeWarns(t *testing.T) {
	logger, hook := logtest.NewNullLogger()

	tr, err := builder.FromMasses([]float64{10, 4, 3, 2, 1, 1, 1, 0.5, 0.5}, builder.WithLogger(logger))
	require.NoError(t, err)
	assert.Equal(t, 4, tr.Len())

	// vertex 3 hangs below vertex 1 (mass 4), first slot
	v1 := childID(t, tr, core.Root, 0, 0)
	v3 := childOf(t, tr, v1, 0, 0)
	assert.Equal(t, 2.0, v3.MotherMass)
	assert.Equal(t, [2]float64{0.5, 0.5}, v3.DaughterMasses)

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Contains(t, hook.LastEntry().Message, "not fully tested")
}

func TestFromMasses_NoWarningUpToSeven(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	_, err := builder.FromMasses([]float64{10, 4, 3, 2, 1, 1, 1}, builder.WithLogger(logger))
	require.NoError(t, err)
	assert.Empty(t, hook.AllEntries())
}

func TestFromMasses_Errors(t *testing.T) {
	_, err := builder.FromMasses(nil)
	assert.ErrorIs(t, err, builder.ErrTooFewMasses)
	_, err = builder.FromMasses([]float64{5, 1})
	assert.ErrorIs(t, err, builder.ErrTooFewMasses)
	_, err = builder.FromMasses([]float64{5, -1, 1})
	assert.ErrorIs(t, err, builder.ErrNegativeRootMass)
}

func TestAddDecayChannel_DsstPi(t *testing.T) {
	bs, dsst, pi, ds := 5.3663, 2.11234, 0.13957018, 1.96849
	tr, err := builder.FromMasses([]float64{bs, dsst, pi, ds, 0})
	require.NoError(t, err)

	ch, err := builder.AddDecayChannel(tr, core.Root, []float64{bs, dsst, pi, ds, pi}, 0.05)
	require.NoError(t, err)
	assert.Equal(t, 1, ch)
	assert.Equal(t, 3, tr.Len())

	f0, _ := tr.BranchingFraction(core.Root, 0)
	f1, _ := tr.BranchingFraction(core.Root, 1)
	assert.InDelta(t, 0.95, f0, 1e-12)
	assert.Equal(t, 0.05, f1)

	alt := childOf(t, tr, core.Root, 1, 0)
	assert.Equal(t, dsst, alt.MotherMass)
	assert.Equal(t, [2]float64{ds, pi}, alt.DaughterMasses)
	s, err := tr.Daughter(core.Root, 1, 1)
	require.NoError(t, err)
	assert.True(t, s.IsStable())
}

func TestAddDecayChannel_LeafChannel(t *testing.T) {
	tr, err := builder.FromMasses([]float64{5, 2, 1})
	require.NoError(t, err)
	ch, err := builder.AddDecayChannel(tr, core.Root, []float64{5, 2, 1}, 0.3)
	require.NoError(t, err)

	chs, err := tr.Channels(core.Root)
	require.NoError(t, err)
	assert.True(t, chs[ch].IsLeaf())
	assert.Equal(t, 1, tr.Len())
}

func TestAddDecayChannel_MassMismatch(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	tr, err := builder.FromMasses([]float64{5.367, 1.969, 0.494})
	require.NoError(t, err)
	before, _ := tr.Channels(core.Root)

	_, err = builder.AddDecayChannel(tr, core.Root, []float64{5.368, 1.969, 0.494, 1, 0.5}, 0.1, builder.WithLogger(logger))
	assert.ErrorIs(t, err, core.ErrMassMismatch)

	after, _ := tr.Channels(core.Root)
	assert.Equal(t, before, after)
	assert.Equal(t, 1, tr.Len(), "no daughter nodes may be created on failure")
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestAddDecayChannel_InvalidFraction(t *testing.T) {
	tr, err := builder.FromMasses([]float64{5.367, 1.969, 0.494})
	require.NoError(t, err)

	_, err = builder.AddDecayChannel(tr, core.Root, []float64{5.367, 1.969, 0.494}, 1.01)
	assert.ErrorIs(t, err, core.ErrInvalidBranchingFraction)
	chs, _ := tr.Channels(core.Root)
	assert.Len(t, chs, 1)

	_, err = builder.AddDecayChannel(tr, core.Root, []float64{5.367}, 0.1)
	assert.ErrorIs(t, err, builder.ErrTooFewMasses)
}

// The daughter split of AddDecayChannel goes by vertex parity, not by heap
// parentage: vertex 4 (a daughter of vertex 1 in heap order) lands under the
// second daughter.
func TestAddDecayChannel_ParitySplit(t *testing.T) {
	masses := []float64{10, 4, 3, 2, 1, 1, 1, 0.5, 0.4, 0.3, 0.2}

	heap, err := builder.FromMasses(masses)
	require.NoError(t, err)
	v1 := childID(t, heap, core.Root, 0, 0)
	assert.Equal(t, [2]float64{0.3, 0.2}, childOf(t, heap, v1, 0, 1).DaughterMasses)

	tr, err := builder.FromMasses(masses[:3])
	require.NoError(t, err)
	ch, err := builder.AddDecayChannel(tr, core.Root, masses, 0.2)
	require.NoError(t, err)

	// first daughter: [4, 2, 1, 0.5, 0.4]
	first := childID(t, tr, core.Root, ch, 0)
	n, _ := tr.Node(first)
	assert.Equal(t, [2]float64{2, 1}, n.DaughterMasses)
	assert.Equal(t, [2]float64{0.5, 0.4}, childOf(t, tr, first, 0, 0).DaughterMasses)
	s, _ := tr.Daughter(first, 0, 1)
	assert.True(t, s.IsStable())

	// second daughter: [3, 1, 1, 0.3, 0.2]
	second := childID(t, tr, core.Root, ch, 1)
	n, _ = tr.Node(second)
	assert.Equal(t, [2]float64{1, 1}, n.DaughterMasses)
	assert.Equal(t, [2]float64{0.3, 0.2}, childOf(t, tr, second, 0, 0).DaughterMasses)
}

func TestPreset(t *testing.T) {
	assert.Equal(t, []string{"DsK", "DsPi", "DsstPi"}, builder.Modes())

	tr, err := builder.Preset("DsK")
	require.NoError(t, err)
	n, _ := tr.Node(core.Root)
	k, _ := particle.Mass("K")
	assert.Equal(t, k, n.DaughterMasses[1])

	tr, err = builder.Preset("DsstPi")
	require.NoError(t, err)
	assert.Equal(t, 3, tr.Len())
	f1, err := tr.BranchingFraction(core.Root, 1)
	require.NoError(t, err)
	assert.Equal(t, builder.DsstPiAltFraction, f1)
	assert.NoError(t, tr.Validate())

	_, err = builder.Preset("dsk")
	assert.ErrorIs(t, err, builder.ErrUnknownMode)
}
