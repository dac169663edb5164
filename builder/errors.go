// SPDX-License-Identifier: MIT
// Package: decaygen/builder
//
// errors.go — sentinel errors for the builder package.
//
// Error policy:
//   • Only sentinel variables (package-level) are exposed.
//   • Callers MUST use errors.Is(err, ErrX) to branch on semantics.
//   • Validation failures from the tree itself are returned as the core
//     sentinels (core.ErrMassMismatch, core.ErrInvalidBranchingFraction),
//     wrapped with the builder method name.

package builder

import "errors"

// ErrTooFewMasses indicates a mass array with fewer than three entries: at
// least a mother and two daughters are required.
var ErrTooFewMasses = errors.New("builder: too few masses")

// ErrNegativeRootMass indicates that the root vertex of a mass array carries
// a negative (skip) marker; only non-root vertices may be skipped.
var ErrNegativeRootMass = errors.New("builder: negative mass at root vertex")

// ErrUnknownMode indicates Preset was asked for a decay mode it does not know.
var ErrUnknownMode = errors.New("builder: unknown decay mode")
