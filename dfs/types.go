// Package dfs defines the Path result type and traversal options.
package dfs

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrTreeNil is returned when a nil *core.Tree is passed to LeafPaths.
var ErrTreeNil = errors.New("dfs: tree is nil")

// Step is one decay vertex of a path: the channel chosen there and its
// branching fraction.
type Step struct {
	Channel           int
	BranchingFraction float64
}

// Path is one leaf decay path.
type Path struct {
	// Steps lists the chosen channels in pre-order, start node first.
	Steps []Step

	// BranchingFraction is the product of the fractions of Steps.
	BranchingFraction float64
}

// Channels returns the channel ids of the steps, in order.
func (p Path) Channels() []int {
	ids := make([]int, len(p.Steps))
	for i, s := range p.Steps {
		ids[i] = s.Channel
	}
	return ids
}

// String renders the path as "[ch(bf) ...] bf=<cumulative>".
func (p Path) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, s := range p.Steps {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%d(%g)", s.Channel, s.BranchingFraction)
	}
	fmt.Fprintf(&b, "] bf=%g", p.BranchingFraction)

	return b.String()
}

// TotalBranchingFraction sums the cumulative fractions of paths.
func TotalBranchingFraction(paths []Path) float64 {
	var sum float64
	for _, p := range paths {
		sum += p.BranchingFraction
	}
	return sum
}

// Option configures LeafPaths.
type Option func(*Options)

// Options holds configurable parameters of LeafPaths.
type Options struct {
	// Ctx allows cancellation; defaults to context.Background().
	Ctx context.Context

	// OnLeaf, if non-nil, is invoked with every completed path, in output
	// order. Returning an error aborts the traversal with that error.
	OnLeaf func(p Path) error
}

// DefaultOptions returns Options with a background context and no hook.
func DefaultOptions() Options {
	return Options{Ctx: context.Background()}
}

// WithContext sets the cancellation context. A nil ctx is ignored.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnLeaf registers a hook called for each completed path.
func WithOnLeaf(fn func(p Path) error) Option {
	return func(o *Options) { o.OnLeaf = fn }
}
