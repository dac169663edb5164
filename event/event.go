// Package event defines the generated-event record and the sinks it is
// written to.
//
// Concurrency:
//   - Table is safe for concurrent use; Rows returns a copy.
//   - Sink implementations other than Table need not be; generator.Fill
//     writes from a single goroutine.
package event

import (
	"errors"
	"sync"

	"go-hep.org/x/hep/fmom"
)

// ErrClosed is returned by sinks written to after Close.
var ErrClosed = errors.New("event: sink closed")

// Row is one generated event.
type Row struct {
	// Momenta holds the mother first, then every descendant in generation
	// order: both daughters of a vertex precede the daughters of either.
	Momenta []fmom.PxPyPzE

	// Weight is the averaged phase-space weight of the event.
	Weight float64

	// Path is the index of the leaf decay path the event was generated on.
	Path int
}

// Sink consumes generated events.
type Sink interface {
	Write(r Row) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(r Row) error

// Write implements Sink.
func (f SinkFunc) Write(r Row) error { return f(r) }

// Table is an in-memory Sink. It is safe for concurrent use.
type Table struct {
	mu   sync.Mutex
	rows []Row
}

// NewTable returns an empty Table with room for n rows.
func NewTable(n int) *Table {
	if n < 0 {
		n = 0
	}
	return &Table{rows: make([]Row, 0, n)}
}

// Write implements Sink.
func (t *Table) Write(r Row) error {
	t.mu.Lock()
	t.rows = append(t.rows, r)
	t.mu.Unlock()
	return nil
}

// Len returns the number of rows written.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.rows)
}

// Rows returns a copy of the rows written so far. Momenta slices are shared.
func (t *Table) Rows() []Row {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Row(nil), t.rows...)
}

// CountByPath returns the number of rows per path index.
func (t *Table) CountByPath() map[int]int {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[int]int)
	for _, r := range t.rows {
		out[r.Path]++
	}
	return out
}
