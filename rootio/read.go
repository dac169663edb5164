// File: read.go
// Role: reading events and momentum columns back from ROOT files.

package rootio

import (
	"fmt"

	"go-hep.org/x/hep/fmom"
	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/rtree"

	"github.com/katalvlaran/decaygen/event"
)

// ReadRows reads every event of a file written by Writer.
func ReadRows(name string) ([]event.Row, error) {
	f, t, err := openTree(name, TreeName)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var (
		n             int32
		px, py, pz, e []float64
		wt            float64
		path          int32
	)
	r, err := rtree.NewReader(t, []rtree.ReadVar{
		{Name: "n", Value: &n},
		{Name: "px", Value: &px},
		{Name: "py", Value: &py},
		{Name: "pz", Value: &pz},
		{Name: "e", Value: &e},
		{Name: "evt_wt", Value: &wt},
		{Name: "path", Value: &path},
	})
	if err != nil {
		return nil, fmt.Errorf("rootio.ReadRows(%s): %w", name, err)
	}
	defer r.Close()

	rows := make([]event.Row, 0, t.Entries())
	err = r.Read(func(rtree.RCtx) error {
		row := event.Row{Momenta: make([]fmom.PxPyPzE, n), Weight: wt, Path: int(path)}
		for i := range row.Momenta {
			row.Momenta[i] = fmom.NewPxPyPzE(px[i], py[i], pz[i], e[i])
		}
		rows = append(rows, row)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("rootio.ReadRows(%s): %w", name, err)
	}

	return rows, nil
}

// ReadColumn reads the float64 branch of a tree, for replaying recorded
// momenta through template.Sample.
func ReadColumn(name, tree, branch string) ([]float64, error) {
	f, t, err := openTree(name, tree)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var v float64
	r, err := rtree.NewReader(t, []rtree.ReadVar{{Name: branch, Value: &v}})
	if err != nil {
		return nil, fmt.Errorf("rootio.ReadColumn(%s, %s, %s): %w", name, tree, branch, err)
	}
	defer r.Close()

	out := make([]float64, 0, t.Entries())
	err = r.Read(func(rtree.RCtx) error {
		out = append(out, v)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("rootio.ReadColumn(%s, %s, %s): %w", name, tree, branch, err)
	}

	return out, nil
}

// WriteColumn writes values as a single float64 branch of a new tree.
func WriteColumn(name, tree, branch string, values []float64) error {
	f, err := groot.Create(name)
	if err != nil {
		return fmt.Errorf("rootio.WriteColumn(%s): %w", name, err)
	}

	var v float64
	w, err := rtree.NewWriter(f, tree, []rtree.WriteVar{{Name: branch, Value: &v}})
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("rootio.WriteColumn(%s): %w", name, err)
	}
	for _, v = range values {
		if _, err = w.Write(); err != nil {
			_ = w.Close()
			_ = f.Close()
			return fmt.Errorf("rootio.WriteColumn(%s): %w", name, err)
		}
	}
	if err = w.Close(); err != nil {
		_ = f.Close()
		return fmt.Errorf("rootio.WriteColumn(%s): %w", name, err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("rootio.WriteColumn(%s): %w", name, err)
	}

	return nil
}

func openTree(name, tree string) (*groot.File, rtree.Tree, error) {
	f, err := groot.Open(name)
	if err != nil {
		return nil, nil, fmt.Errorf("rootio: open %s: %w", name, err)
	}
	obj, err := f.Get(tree)
	if err != nil {
		_ = f.Close()
		return nil, nil, fmt.Errorf("rootio: %s: %w", name, err)
	}
	t, ok := obj.(rtree.Tree)
	if !ok {
		_ = f.Close()
		return nil, nil, fmt.Errorf("rootio: %s: %s: %w", name, tree, ErrNotTree)
	}
	return f, t, nil
}
