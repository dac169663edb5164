// SPDX-License-Identifier: MIT
// File: methods.go
// Role: construction, wiring, channel insertion and read accessors of Tree.
// Determinism:
//   - NodeIDs are assigned densely in insertion order; channel ids likewise.
// Failure policy:
//   - Every mutator validates before touching state; on error the tree is unchanged.

package core

import (
	"fmt"
	"math"
)

// NewTree returns an empty Tree.
func NewTree() *Tree {
	return &Tree{}
}

// Len returns the number of nodes in the arena.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// AddNode appends a node decaying a mother of the given mass into two
// daughters, with its primary channel (fraction 1.0, both daughters stable).
// The first node added is the Root.
//
// Complexity: O(1) amortized.
func (t *Tree) AddNode(mother float64, daughters [2]float64) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, Node{
		MotherMass:     mother,
		DaughterMasses: daughters,
		Channels:       []Channel{{BranchingFraction: primaryFraction}},
	})
	t.parent = append(t.parent, noParent)

	return id
}

// Attach wires child as the decaying daughter at daughter index idx of
// channel ch of node parent.
//
// Validation, in order:
//  1. parent and child exist, ch exists, idx ∈ {0,1};
//  2. child is not the root and has no parent yet (ErrNodeOwned);
//  3. child's mother mass equals the parent's daughter mass at idx (ErrMassMismatch);
//  4. child is not an ancestor of parent (ErrCycle).
//
// Complexity: O(depth) for the cycle check.
func (t *Tree) Attach(parent NodeID, ch, idx int, child NodeID) error {
	if err := t.checkAttach(parent, ch, idx, child); err != nil {
		return fmt.Errorf("Attach(%d,%d,%d,%d): %w", parent, ch, idx, child, err)
	}
	t.nodes[parent].Channels[ch].Daughters[idx] = DecaysVia(child)
	t.parent[child] = parent

	return nil
}

func (t *Tree) checkAttach(parent NodeID, ch, idx int, child NodeID) error {
	n, err := t.node(parent)
	if err != nil {
		return err
	}
	if ch < 0 || ch >= len(n.Channels) {
		return ErrChannelNotFound
	}
	if idx < 0 || idx > 1 {
		return ErrInvalidArgument
	}

	return t.checkChild(parent, idx, child)
}

// checkChild validates that child may hang below daughter idx of parent.
func (t *Tree) checkChild(parent NodeID, idx int, child NodeID) error {
	c, err := t.node(child)
	if err != nil {
		return err
	}
	if child == Root || t.parent[child] != noParent {
		return ErrNodeOwned
	}
	if !massesMatch(c.MotherMass, t.nodes[parent].DaughterMasses[idx]) {
		return ErrMassMismatch
	}
	for a := parent; a != noParent; a = t.parent[a] {
		if a == child {
			return ErrCycle
		}
	}

	return nil
}

// CheckChannel validates that a channel declaring the given mother and
// daughter masses with fraction f could be added to node id, without
// modifying the tree. Builders call it before creating any daughter nodes.
func (t *Tree) CheckChannel(id NodeID, mother float64, daughters [2]float64, f float64) error {
	n, err := t.node(id)
	if err != nil {
		return err
	}
	if !massesMatch(mother, n.MotherMass) ||
		!massesMatch(daughters[0], n.DaughterMasses[0]) ||
		!massesMatch(daughters[1], n.DaughterMasses[1]) {
		return ErrMassMismatch
	}
	if math.IsNaN(f) || f < 0 || f > 1 {
		return ErrInvalidBranchingFraction
	}
	if f > n.Channels[0].BranchingFraction {
		// channel 0 would go negative
		return ErrInvalidBranchingFraction
	}

	return nil
}

// AddChannel appends an alternative decay channel to node id and returns its
// channel id. The declared masses must match the node within MassTolerance;
// f is deducted from channel 0. children lists, per daughter index, the
// node each daughter decays through (Stable() for none); referenced nodes
// must be unowned.
//
// Errors: ErrNodeNotFound, ErrMassMismatch, ErrInvalidBranchingFraction,
// ErrNodeOwned, ErrCycle. On error the node's channels are unchanged.
//
// Complexity: O(depth).
func (t *Tree) AddChannel(id NodeID, mother float64, daughters [2]float64, children [2]Slot, f float64) (int, error) {
	// 1. Masses and fraction
	if err := t.CheckChannel(id, mother, daughters, f); err != nil {
		return 0, fmt.Errorf("AddChannel(%d): %w", id, err)
	}

	// 2. Children: ownership, mass and acyclicity
	var (
		idx   int
		child NodeID
		ok    bool
	)
	for idx = range children {
		if child, ok = children[idx].Node(); !ok {
			continue
		}
		if err := t.checkChild(id, idx, child); err != nil {
			return 0, fmt.Errorf("AddChannel(%d): daughter %d: %w", id, idx, err)
		}
	}
	if c0, ok0 := children[0].Node(); ok0 {
		if c1, ok1 := children[1].Node(); ok1 && c0 == c1 {
			return 0, fmt.Errorf("AddChannel(%d): %w", id, ErrNodeOwned)
		}
	}

	// 3. Commit
	n := &t.nodes[id]
	n.Channels[0].BranchingFraction -= f
	n.Channels = append(n.Channels, Channel{Daughters: children, BranchingFraction: f})
	for idx = range children {
		if child, ok = children[idx].Node(); ok {
			t.parent[child] = id
		}
	}

	return len(n.Channels) - 1, nil
}

// Node returns a copy of node id. The returned Channels slice is a copy.
func (t *Tree) Node(id NodeID) (Node, error) {
	n, err := t.node(id)
	if err != nil {
		return Node{}, fmt.Errorf("Node(%d): %w", id, err)
	}
	cp := *n
	cp.Channels = append([]Channel(nil), n.Channels...)

	return cp, nil
}

// Channels returns a copy of the channels of node id.
func (t *Tree) Channels(id NodeID) ([]Channel, error) {
	n, err := t.node(id)
	if err != nil {
		return nil, fmt.Errorf("Channels(%d): %w", id, err)
	}

	return append([]Channel(nil), n.Channels...), nil
}

// Parent returns the node owning id, or (0, false) for the root and for
// detached nodes.
func (t *Tree) Parent(id NodeID) (NodeID, bool) {
	if _, err := t.node(id); err != nil || t.parent[id] == noParent {
		return 0, false
	}
	return t.parent[id], true
}

// Daughter returns the Slot of daughter idx in channel ch of node id.
// idx must be 0 or 1, else ErrInvalidArgument.
func (t *Tree) Daughter(id NodeID, ch, idx int) (Slot, error) {
	c, err := t.channel(id, ch)
	if err != nil {
		return Slot{}, fmt.Errorf("Daughter(%d,%d,%d): %w", id, ch, idx, err)
	}
	if idx < 0 || idx > 1 {
		return Slot{}, fmt.Errorf("Daughter(%d,%d,%d): %w", id, ch, idx, ErrInvalidArgument)
	}

	return c.Daughters[idx], nil
}

// BranchingFraction returns the fraction stored on channel ch of node id.
func (t *Tree) BranchingFraction(id NodeID, ch int) (float64, error) {
	c, err := t.channel(id, ch)
	if err != nil {
		return 0, fmt.Errorf("BranchingFraction(%d,%d): %w", id, ch, err)
	}

	return c.BranchingFraction, nil
}

// fractionEpsilon absorbs rounding in repeated deductions from channel 0.
const fractionEpsilon = 1e-9

// Validate checks every node: fractions in [0,1] and their sum ≤ 1.
//
// Complexity: O(V + C).
func (t *Tree) Validate() error {
	var (
		i   int
		ch  int
		sum float64
	)
	for i = range t.nodes {
		sum = 0
		for ch = range t.nodes[i].Channels {
			f := t.nodes[i].Channels[ch].BranchingFraction
			if f < -fractionEpsilon || f > 1+fractionEpsilon {
				return fmt.Errorf("Validate: node %d channel %d fraction %g: %w", i, ch, f, ErrInvalidBranchingFraction)
			}
			sum += f
		}
		if sum > 1+fractionEpsilon {
			return fmt.Errorf("Validate: node %d fractions sum to %g: %w", i, sum, ErrInvalidBranchingFraction)
		}
	}

	return nil
}

func (t *Tree) node(id NodeID) (*Node, error) {
	if t == nil || id < 0 || int(id) >= len(t.nodes) {
		return nil, ErrNodeNotFound
	}
	return &t.nodes[id], nil
}

func (t *Tree) channel(id NodeID, ch int) (*Channel, error) {
	n, err := t.node(id)
	if err != nil {
		return nil, err
	}
	if ch < 0 || ch >= len(n.Channels) {
		return nil, ErrChannelNotFound
	}
	return &n.Channels[ch], nil
}

func massesMatch(a, b float64) bool {
	return math.Abs(a-b) <= MassTolerance
}
