// SPDX-License-Identifier: MIT

// Package core defines the decay tree: an arena of decay vertices (Node)
// addressed by NodeID, each with an ordered list of alternative decay
// channels (Channel) that own up to two child vertices.
//
// A Tree is a strict ownership graph:
//
//   - Every non-root node is referenced by exactly one channel slot.
//   - The root (NodeID 0) is never referenced.
//   - Cycles are rejected at wiring time.
//
// A daughter that does not decay further is represented by the zero Slot
// (Stable); a daughter that decays is a Slot returned by DecaysVia(id).
// There are no nil pointers in the structure.
//
// Branching fractions:
//
//	– AddNode creates the node with its primary channel (id 0, fraction 1.0,
//	  both daughters stable).
//	– AddChannel appends channel k ≥ 1 with fraction f and deducts f from
//	  channel 0, so channel 0 always holds “whatever remains” and the sum
//	  across a node stays at 1.0.
//	– f > 1, f < 0, or f larger than the remainder of channel 0 is rejected
//	  with ErrInvalidBranchingFraction.
//	– Mother/daughter masses of a new channel must match the node within
//	  MassTolerance, else ErrMassMismatch.
//
// Core Methods:
//
//	NewTree() *Tree                                        // O(1)
//	AddNode(mother, daughters) NodeID                      // O(1)
//	Attach(parent, channel, index, child) error            // O(depth)
//	AddChannel(id, mother, daughters, children, f) (int, error)
//	Daughter(id, channel, index) (Slot, error)             // O(1)
//	BranchingFraction(id, channel) (float64, error)        // O(1)
//	Node(id) (Node, error) / Channels(id) ([]Channel, error)
//	Validate() error                                       // O(V + C)
//	Fprint(w, t) error                                     // O(V + C)
//
// Concurrency:
//
//	A Tree is built once and then read. Mutation is not goroutine-safe;
//	concurrent reads of a fully built Tree are.
package core
