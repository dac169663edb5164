// SPDX-License-Identifier: MIT
// File: print.go
// Role: human-readable dump of a decay tree.

package core

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes an indented rendering of the tree below Root to w, one line
// per node and per channel:
//
//	node 0: 5.36630 -> 2.11234 + 0.13957
//	  channel 0 bf=0.950000 [node 1] [stable]
//	    node 1: 2.11234 -> 1.96849 + 0.00000
//	      channel 0 bf=1.000000 [stable] [stable]
//
// Nodes built but never attached follow under a "detached" line, each with
// its own subtree.
func Fprint(w io.Writer, t *Tree) error {
	if t == nil || t.Len() == 0 {
		_, err := fmt.Fprintln(w, "(empty decay tree)")
		return err
	}
	p := &printer{w: w, t: t}
	p.node(Root, 0)

	var header bool
	for id := NodeID(1); int(id) < t.Len(); id++ {
		if _, owned := t.Parent(id); owned {
			continue
		}
		if !header {
			p.printf(0, "detached:")
			header = true
		}
		p.node(id, 1)
	}

	return p.err
}

type printer struct {
	w   io.Writer
	t   *Tree
	err error
}

func (p *printer) printf(depth int, format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, strings.Repeat("  ", depth)+format+"\n", args...)
}

func (p *printer) node(id NodeID, depth int) {
	n := &p.t.nodes[id]
	p.printf(depth, "node %d: %.5f -> %.5f + %.5f", id, n.MotherMass, n.DaughterMasses[0], n.DaughterMasses[1])
	for ch, c := range n.Channels {
		p.printf(depth+1, "channel %d bf=%f %s %s", ch, c.BranchingFraction, slotLabel(c.Daughters[0]), slotLabel(c.Daughters[1]))
		for _, s := range c.Daughters {
			if child, ok := s.Node(); ok {
				p.node(child, depth+2)
			}
		}
	}
}

func slotLabel(s Slot) string {
	if id, ok := s.Node(); ok {
		return fmt.Sprintf("[node %d]", id)
	}
	return "[stable]"
}
