// Package rootio stores generated events in ROOT files, and reads back
// events and recorded momentum columns.
//
// Tree layout (TreeName):
//
//	n       int32       number of four-momenta in the event
//	px..e   []float64   four-momentum components, length n
//	evt_wt  float64     event weight
//	path    int32       leaf path index
package rootio

import (
	"errors"
	"fmt"
	"sync"

	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/rtree"

	"github.com/katalvlaran/decaygen/event"
)

// TreeName is the name of the event tree in files written by Writer.
const TreeName = "TwoBodyDecayGen_decaytree"

const treeTitle = "Vector of decay product four-momenta"

// ErrNotTree is returned when a named key is not a TTree.
var ErrNotTree = errors.New("rootio: object is not a tree")

// Writer is an event.Sink writing one tree entry per row. It is safe for
// concurrent use.
type Writer struct {
	mu sync.Mutex

	f *groot.File
	t rtree.Writer

	n             int32
	px, py, pz, e []float64
	wt            float64
	path          int32
	closed        bool
}

// Create creates (or truncates) a ROOT file and its event tree.
func Create(name string) (*Writer, error) {
	f, err := groot.Create(name)
	if err != nil {
		return nil, fmt.Errorf("rootio.Create(%s): %w", name, err)
	}

	w := &Writer{f: f}
	wvars := []rtree.WriteVar{
		{Name: "n", Value: &w.n},
		{Name: "px", Value: &w.px, Count: "n"},
		{Name: "py", Value: &w.py, Count: "n"},
		{Name: "pz", Value: &w.pz, Count: "n"},
		{Name: "e", Value: &w.e, Count: "n"},
		{Name: "evt_wt", Value: &w.wt},
		{Name: "path", Value: &w.path},
	}
	w.t, err = rtree.NewWriter(f, TreeName, wvars, rtree.WithTitle(treeTitle))
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("rootio.Create(%s): tree: %w", name, err)
	}

	return w, nil
}

// Write implements event.Sink.
func (w *Writer) Write(r event.Row) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return event.ErrClosed
	}

	w.n = int32(len(r.Momenta))
	w.px, w.py, w.pz, w.e = w.px[:0], w.py[:0], w.pz[:0], w.e[:0]
	for i := range r.Momenta {
		p := &r.Momenta[i]
		w.px = append(w.px, p.Px())
		w.py = append(w.py, p.Py())
		w.pz = append(w.pz, p.Pz())
		w.e = append(w.e, p.E())
	}
	w.wt = r.Weight
	w.path = int32(r.Path)

	if _, err := w.t.Write(); err != nil {
		return fmt.Errorf("rootio: write entry: %w", err)
	}
	return nil
}

// Close flushes the tree and closes the file. Closing twice is a no-op.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true

	if err := w.t.Close(); err != nil {
		_ = w.f.Close()
		return fmt.Errorf("rootio: close tree: %w", err)
	}
	if err := w.f.Close(); err != nil {
		return fmt.Errorf("rootio: close file: %w", err)
	}
	return nil
}
