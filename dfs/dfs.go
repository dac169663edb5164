// File: dfs.go
// Role: leaf-path walker.

package dfs

import (
	"fmt"

	"github.com/katalvlaran/decaygen/core"
)

// leafWalker encapsulates state during leaf-path enumeration.
type leafWalker struct {
	tree *core.Tree
	opts Options
	out  []Path
}

// LeafPaths returns every leaf decay path below node id, in depth-first
// order: channels in insertion order, first daughter's sub-paths before
// the second daughter's. Calling it twice on an unchanged tree returns
// identical results.
func LeafPaths(t *core.Tree, id core.NodeID, opts ...Option) ([]Path, error) {
	// 1. Validate input tree and start node
	if t == nil {
		return nil, ErrTreeNil
	}
	if _, err := t.Node(id); err != nil {
		return nil, fmt.Errorf("dfs: LeafPaths: %w", err)
	}

	// 2. Apply options
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	// 3. Walk from an empty prefix with the start node pending
	w := &leafWalker{tree: t, opts: o}
	if err := w.walk(Path{BranchingFraction: 1}, []core.NodeID{id}); err != nil {
		return nil, err
	}

	return w.out, nil
}

// walk extends prefix by decaying pending[0]; prefix and pending are never
// mutated, each channel works on its own copies.
func (w *leafWalker) walk(prefix Path, pending []core.NodeID) error {
	// 1. Cancellation check
	select {
	case <-w.opts.Ctx.Done():
		return w.opts.Ctx.Err()
	default:
	}

	// 2. Nothing left to decay: the prefix is a complete path
	if len(pending) == 0 {
		return w.emit(prefix)
	}

	head, rest := pending[0], pending[1:]
	chs, err := w.tree.Channels(head)
	if err != nil {
		return fmt.Errorf("dfs: node %d: %w", head, err)
	}

	// 3. Unconfigured node: no step, carry on with the rest
	if len(chs) == 0 {
		return w.walk(prefix, rest)
	}

	// 4. One branch per channel; daughters are decayed before the rest
	var (
		ch   int
		c    core.Channel
		next []core.NodeID
	)
	for ch, c = range chs {
		next = make([]core.NodeID, 0, len(rest)+2)
		for _, s := range c.Daughters {
			if child, ok := s.Node(); ok {
				next = append(next, child)
			}
		}
		next = append(next, rest...)

		if err = w.walk(extend(prefix, ch, c.BranchingFraction), next); err != nil {
			return err
		}
	}

	return nil
}

// emit records a completed path and runs the OnLeaf hook.
func (w *leafWalker) emit(p Path) error {
	if w.opts.OnLeaf != nil {
		if err := w.opts.OnLeaf(p); err != nil {
			return fmt.Errorf("dfs: OnLeaf hook: %w", err)
		}
	}
	w.out = append(w.out, p)

	return nil
}

// extend returns a copy of p with one more step.
func extend(p Path, ch int, bf float64) Path {
	steps := make([]Step, len(p.Steps), len(p.Steps)+1)
	copy(steps, p.Steps)

	return Path{
		Steps:             append(steps, Step{Channel: ch, BranchingFraction: bf}),
		BranchingFraction: p.BranchingFraction * bf,
	}
}
