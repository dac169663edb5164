// SPDX-License-Identifier: MIT
// Package: decaygen/builder
//
// api.go - thin public entry-points for the builder package.
//
// Design contract:
//   - FromMasses creates a tree; AddDecayChannel grafts onto an existing one.
//   - Both resolve functional options into an immutable builderConfig.
//   - Validation happens before any node is created: a failed call leaves the
//     node's channels exactly as they were.
//   - Determinism: the same mass array always yields the same NodeIDs.

package builder

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/decaygen/core"
)

// FromMasses builds a new tree from a flat heap-ordered mass array (see the
// package documentation for the layout). The root is core.Root; every
// created node has a single primary channel with fraction 1.0.
//
// Errors: ErrTooFewMasses, ErrNegativeRootMass.
//
// Complexity: O(len(masses)).
func FromMasses(masses []float64, opts ...Option) (*core.Tree, error) {
	cfg := newBuilderConfig(opts...)
	if err := validateMasses(masses); err != nil {
		return nil, fmt.Errorf("FromMasses: %w", err)
	}
	warnUntested(cfg, "FromMasses", masses)

	t := core.NewTree()
	if _, err := buildInto(t, masses); err != nil {
		return nil, fmt.Errorf("FromMasses: %w", err)
	}

	return t, nil
}

// AddDecayChannel adds an alternative decay of node id described by a mass
// array, with branching fraction f, and returns the new channel id.
//
// masses[0], masses[1], masses[2] must match the node's mother and daughter
// masses within core.MassTolerance (else core.ErrMassMismatch) and f must be
// ≤ 1 and ≤ the fraction left in channel 0 (else
// core.ErrInvalidBranchingFraction). On success the daughter sub-trees are
// built from the parity split of the remaining vertices and f is deducted
// from channel 0.
//
// Complexity: O(len(masses) + depth).
func AddDecayChannel(t *core.Tree, id core.NodeID, masses []float64, f float64, opts ...Option) (int, error) {
	cfg := newBuilderConfig(opts...)

	// 1. Shape of the array
	if err := validateMasses(masses); err != nil {
		return 0, fmt.Errorf("AddDecayChannel(%d): %w", id, err)
	}

	// 2. Node consistency, before creating anything
	daughters := [2]float64{masses[1], masses[2]}
	if err := t.CheckChannel(id, masses[0], daughters, f); err != nil {
		cfg.logger.WithError(err).WithFields(logrus.Fields{
			"node":     id,
			"fraction": f,
		}).Warn("Rejected decay channel")
		return 0, fmt.Errorf("AddDecayChannel(%d): %w", id, err)
	}
	warnUntested(cfg, "AddDecayChannel", masses)

	// 3. Daughter sub-trees
	var children [2]core.Slot
	for d, sub := range splitDaughters(masses) {
		if !decays(sub) {
			continue
		}
		child, err := buildInto(t, sub)
		if err != nil {
			return 0, fmt.Errorf("AddDecayChannel(%d): daughter %d: %w", id, d, err)
		}
		children[d] = core.DecaysVia(child)
	}

	// 4. Commit the channel
	ch, err := t.AddChannel(id, masses[0], daughters, children, f)
	if err != nil {
		return 0, fmt.Errorf("AddDecayChannel: %w", err)
	}
	cfg.logger.WithFields(logrus.Fields{
		"node":     id,
		"channel":  ch,
		"fraction": f,
	}).Debug("Added decay channel")

	return ch, nil
}
