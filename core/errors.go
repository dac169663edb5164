// SPDX-License-Identifier: MIT
// File: errors.go
// Role: sentinel errors of the decay tree.
// Policy:
//   - Only package-level sentinels are exposed; callers branch with errors.Is.
//   - Methods attach context with %w; sentinels never carry parameters.

package core

import "errors"

var (
	// ErrNodeNotFound indicates an operation referenced a NodeID outside the arena.
	ErrNodeNotFound = errors.New("core: node not found")

	// ErrChannelNotFound indicates a channel id outside [0, len(channels)).
	ErrChannelNotFound = errors.New("core: channel not found")

	// ErrInvalidArgument indicates an out-of-range daughter index (must be 0 or 1).
	ErrInvalidArgument = errors.New("core: invalid argument")

	// ErrMassMismatch indicates that the masses declared for a channel (or a
	// child node) differ from the node's masses by more than MassTolerance.
	ErrMassMismatch = errors.New("core: mass mismatch")

	// ErrInvalidBranchingFraction indicates a fraction outside [0,1] or one that
	// exceeds what is left in the primary channel.
	ErrInvalidBranchingFraction = errors.New("core: invalid branching fraction")

	// ErrNodeOwned indicates an attempt to reference a node that already has a
	// parent slot, or the root.
	ErrNodeOwned = errors.New("core: node already owned")

	// ErrCycle indicates that wiring a child would make it its own ancestor.
	ErrCycle = errors.New("core: decay cycle")
)
