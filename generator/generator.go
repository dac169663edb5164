// File: generator.go
// Role: Generator construction and single-event generation along a leaf path.
// Determinism:
//   - Generate draws only from the Sampler it is given; the caller owns its stream.
// Concurrency:
//   - A Generator is read-only after New and may be shared; Samplers may not.

package generator

import (
	"fmt"

	"go-hep.org/x/hep/fmom"

	"github.com/katalvlaran/decaygen/core"
	"github.com/katalvlaran/decaygen/dfs"
	"github.com/katalvlaran/decaygen/phasespace"
)

// Generator produces events of one decay tree. The tree must not be
// mutated after New; paths are enumerated once there.
type Generator struct {
	tree  *core.Tree
	mass  float64 // root mother mass
	paths []dfs.Path
	cfg   config
}

// New validates t, enumerates its leaf paths from the root and returns a
// Generator.
//
// Errors: ErrTreeNil, core.ErrNodeNotFound (empty tree),
// core.ErrInvalidBranchingFraction (from Validate).
func New(t *core.Tree, opts ...Option) (*Generator, error) {
	// 1. Tree checks
	if t == nil {
		return nil, ErrTreeNil
	}
	root, err := t.Node(core.Root)
	if err != nil {
		return nil, fmt.Errorf("generator.New: %w", err)
	}
	if err = t.Validate(); err != nil {
		return nil, fmt.Errorf("generator.New: %w", err)
	}

	// 2. Options and paths
	cfg := newConfig(opts...)
	paths, err := dfs.LeafPaths(t, core.Root)
	if err != nil {
		return nil, fmt.Errorf("generator.New: %w", err)
	}
	cfg.metrics.SetLeafPaths(len(paths))
	cfg.logger.WithField("paths", len(paths)).Debug("Enumerated leaf decay paths")

	return &Generator{tree: t, mass: root.MotherMass, paths: paths, cfg: cfg}, nil
}

// Paths returns the leaf paths events are allocated over, in output order.
func (g *Generator) Paths() []dfs.Path {
	return append([]dfs.Path(nil), g.paths...)
}

// MotherMass returns the mass of the root mother.
func (g *Generator) MotherMass() float64 { return g.mass }

// Generate decays mother at the root along path using s, and returns the
// produced daughters in generation order (both daughters of a vertex, then
// the first daughter's products, then the second's) with the event weight.
//
// An empty path samples the root vertex only.
//
// Errors: ErrSamplingFailure, ErrInvalidPath.
func (g *Generator) Generate(s phasespace.Sampler, mother fmom.PxPyPzE, path dfs.Path) ([]fmom.PxPyPzE, float64, error) {
	w := walk{tree: g.tree, sampler: s, out: make([]fmom.PxPyPzE, 0, 2*(len(path.Steps)+1))}

	wt, rest, err := w.decay(core.Root, mother, path.Steps)
	if err != nil {
		return nil, 0, err
	}
	if len(rest) != 0 {
		return nil, 0, fmt.Errorf("Generate: %d steps left over: %w", len(rest), ErrInvalidPath)
	}

	return w.out, wt, nil
}

// walk carries the sampler and the output sequence through one event.
type walk struct {
	tree    *core.Tree
	sampler phasespace.Sampler
	out     []fmom.PxPyPzE
}

// decay samples vertex id and recurses into the decaying daughters of the
// channel named by the head of steps. It returns the combined weight and the
// unconsumed steps.
func (w *walk) decay(id core.NodeID, mother fmom.PxPyPzE, steps []dfs.Step) (float64, []dfs.Step, error) {
	n, err := w.tree.Node(id)
	if err != nil {
		return 0, nil, fmt.Errorf("Generate: %w", err)
	}

	// 1. Sample this vertex
	if !w.sampler.Configure(mother, n.DaughterMasses) {
		return 0, nil, fmt.Errorf("Generate: node %d (M=%g → %g + %g): %w: %w",
			id, n.MotherMass, n.DaughterMasses[0], n.DaughterMasses[1], ErrSamplingFailure, phasespace.ErrForbidden)
	}
	wt := w.sampler.Sample()

	var (
		daughters [2]fmom.PxPyPzE
		i         int
	)
	for i = range daughters {
		if daughters[i], err = w.sampler.Daughter(i); err != nil {
			return 0, nil, fmt.Errorf("Generate: node %d: %w", id, err)
		}
	}
	w.out = append(w.out, daughters[0], daughters[1])

	// 2. Leaf: no channel left to follow
	if len(steps) == 0 {
		return wt, steps, nil
	}
	step, rest := steps[0], steps[1:]
	if step.Channel < 0 || step.Channel >= len(n.Channels) {
		return 0, nil, fmt.Errorf("Generate: node %d has no channel %d: %w", id, step.Channel, ErrInvalidPath)
	}

	// 3. Recurse, first daughter then second, averaging weights
	var (
		child   core.NodeID
		ok      bool
		childWt float64
	)
	for i = range daughters {
		if child, ok = n.Channels[step.Channel].Daughters[i].Node(); !ok {
			continue
		}
		if childWt, rest, err = w.decay(child, daughters[i], rest); err != nil {
			return 0, nil, err
		}
		wt = (wt + childWt) / 2
	}

	return wt, rest, nil
}
