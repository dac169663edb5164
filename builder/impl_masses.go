// SPDX-License-Identifier: MIT
// Package: decaygen/builder
//
// impl_masses.go — mass-array parsing shared by FromMasses and AddDecayChannel.

package builder

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/decaygen/core"
)

// validateMasses checks the array has a full root vertex.
func validateMasses(masses []float64) error {
	if len(masses) < 3 {
		return ErrTooFewMasses
	}
	if masses[0] < 0 || masses[1] < 0 || masses[2] < 0 {
		return ErrNegativeRootMass
	}

	return nil
}

// warnUntested logs arrays that describe more than one nested decay.
func warnUntested(cfg builderConfig, method string, masses []float64) {
	if len(masses) > maxTestedMasses {
		cfg.logger.WithFields(logrus.Fields{
			"method": method,
			"masses": len(masses),
		}).Warn("Decay topologies beyond one nested decay are not fully tested")
	}
	if len(masses)%2 == 0 {
		cfg.logger.WithFields(logrus.Fields{
			"method": method,
			"masses": len(masses),
		}).Debug("Trailing mass without a sibling is ignored")
	}
}

// decays reports whether a daughter sub-array describes a decaying daughter:
// it holds a complete, non-skipped vertex.
func decays(sub []float64) bool {
	return len(sub) >= 3 && sub[0] >= 0 && sub[1] >= 0 && sub[2] >= 0
}

// buildInto adds the vertices of a heap-ordered mass array to t and returns
// the NodeID of vertex 0, which is left detached (no parent).
//
// Vertex i ≥ 1 is created only if its parent vertex (i-1)/2 was created and
// none of masses[i], masses[2i+1], masses[2i+2] is negative; it is attached
// to channel 0 of its parent at daughter slot (i-1)%2.
//
// Complexity: O(len(masses)) nodes, O(depth) per attachment.
func buildInto(t *core.Tree, masses []float64) (core.NodeID, error) {
	var (
		nodes   = (len(masses) - 1) / 2
		ids     = make([]core.NodeID, nodes)
		present = make([]bool, nodes)
		i       int
		parent  int
		mother  float64
		d0, d1  float64
	)
	for i = 0; i < nodes; i++ {
		mother, d0, d1 = masses[i], masses[2*i+1], masses[2*i+2]
		parent = (i - 1) / 2
		if i > 0 && (!present[parent] || mother < 0 || d0 < 0 || d1 < 0) {
			continue
		}

		ids[i] = t.AddNode(mother, [2]float64{d0, d1})
		present[i] = true
		if i == 0 {
			continue
		}
		if err := t.Attach(ids[parent], 0, (i-1)%2, ids[i]); err != nil {
			return 0, fmt.Errorf("buildInto: vertex %d: %w", i, err)
		}
	}

	return ids[0], nil
}

// splitDaughters separates the vertices below the root of a mass array
// into the two daughter sub-arrays used by AddDecayChannel.
//
// Sub-array d starts with the mass of daughter d (masses[d+1]); then, for
// every vertex i = 1 .. nodes-1, the pair masses[2i+1], masses[2i+2] is
// appended to sub-array 0 when i is odd and to sub-array 1 when i is even.
//
// Example: [Bs, Ds*, π, Ds, π] → [Ds*, Ds, π] and [π].
func splitDaughters(masses []float64) [2][]float64 {
	var (
		nodes = (len(masses) - 1) / 2
		sub   = [2][]float64{{masses[1]}, {masses[2]}}
		d     int
	)
	for i := 1; i < nodes; i++ {
		d = 1
		if i%2 == 1 {
			d = 0
		}
		sub[d] = append(sub[d], masses[2*i+1], masses[2*i+2])
	}

	return sub
}
