// SPDX-License-Identifier: MIT
// File: types.go
// Role: NodeID, Slot, Channel, Node and Tree declarations.

package core

// MassTolerance is the absolute tolerance, in mass units (GeV), used when
// comparing the masses of an alternative channel with the node's masses.
const MassTolerance = 1e-4

// Root is the NodeID of the first node added to a Tree.
const Root NodeID = 0

// primaryFraction is the fraction assigned to channel 0 at node creation.
const primaryFraction = 1.0

// noParent marks a node that no channel slot references yet.
const noParent NodeID = -1

// NodeID addresses a Node inside its Tree arena.
type NodeID int

// Slot describes what happens to one daughter of a channel: either the
// daughter is stable, or it decays further through another node.
//
// The zero Slot is Stable.
type Slot struct {
	// ref is the referenced NodeID shifted by one; 0 means stable.
	ref int
}

// Stable returns the Slot of a daughter that does not decay.
func Stable() Slot { return Slot{} }

// DecaysVia returns the Slot of a daughter that decays through node id.
func DecaysVia(id NodeID) Slot { return Slot{ref: int(id) + 1} }

// IsStable reports whether the daughter is a final-state particle.
func (s Slot) IsStable() bool { return s.ref == 0 }

// Node returns the node the daughter decays through and true, or (0, false)
// for a stable daughter.
func (s Slot) Node() (NodeID, bool) {
	if s.ref == 0 {
		return 0, false
	}
	return NodeID(s.ref - 1), true
}

// Channel is one way a node may decay.
type Channel struct {
	// Daughters holds, per daughter index, whether that daughter decays further.
	Daughters [2]Slot

	// BranchingFraction is the probability weight of this channel, in [0,1].
	BranchingFraction float64
}

// IsLeaf reports whether both daughters of the channel are stable.
func (c Channel) IsLeaf() bool {
	return c.Daughters[0].IsStable() && c.Daughters[1].IsStable()
}

// Node is one decay vertex: a mother of fixed mass decaying into two
// daughters of fixed masses, through one or more channels.
type Node struct {
	// MotherMass is the mass of the decaying particle.
	MotherMass float64

	// DaughterMasses are the masses of the two direct decay products.
	DaughterMasses [2]float64

	// Channels are the alternative decays; order is insertion order and
	// channel 0 is the primary channel.
	Channels []Channel
}

// Tree is an arena of decay nodes with strict tree ownership.
// The zero value is an empty tree ready to use.
type Tree struct {
	nodes  []Node
	parent []NodeID // owning node of each node, noParent if detached
}
