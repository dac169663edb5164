// SPDX-License-Identifier: MIT

// Package builder constructs decay trees (core.Tree) from flat mass arrays
// and grafts alternative decay channels onto existing nodes.
//
// Mass-array layout (heap order):
//
//	masses[0]                  mother of vertex 0 (the root)
//	masses[2i+1], masses[2i+2] daughters of vertex i
//	masses[i]                  mother of vertex i (i ≥ 1), itself a daughter
//	                           of vertex (i-1)/2 in slot (i-1)%2
//
// For example the decay Bs → Ds* π, Ds* → Ds γ is
//
//	[Bs, Ds*, π, Ds, γ]
//
// Vertices i = 0 .. (len-1)/2 - 1 are processed in index order. A vertex is
// skipped when its mother or either daughter mass is negative (padding used
// to square off irregular trees) or when its parent vertex was skipped.
// Arrays longer than 7 entries (deeper than one nested decay) are accepted
// but logged as not fully tested.
//
// Alternative channels (AddDecayChannel):
//
//	masses[0..2] must repeat the node's mother and daughter masses (within
//	core.MassTolerance). The rest of the array is split into the two daughter
//	sub-arrays by vertex parity: odd vertices extend the first daughter's
//	sub-array, even vertices the second's. This is the established array
//	convention and only coincides with heap order one level deep.
//
// Named modes (Preset): "DsK", "DsPi", "DsstPi".
//
// Errors:
//
//	ErrTooFewMasses     - fewer than 3 masses.
//	ErrNegativeRootMass - the root vertex itself is marked as skipped.
//	ErrUnknownMode      - Preset name not recognised.
//	core.ErrMassMismatch, core.ErrInvalidBranchingFraction from AddDecayChannel.
package builder
