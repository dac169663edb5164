package rootio

import (
	"fmt"

	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/rhist"
	"go-hep.org/x/hep/hbook"
)

// WriteHist stores h under key in a new ROOT file as a TH1D.
func WriteHist(name, key string, h *hbook.H1D) error {
	f, err := groot.Create(name)
	if err != nil {
		return fmt.Errorf("rootio.WriteHist(%s): %w", name, err)
	}
	if err = f.Put(key, rhist.NewH1DFrom(h)); err != nil {
		_ = f.Close()
		return fmt.Errorf("rootio.WriteHist(%s): %s: %w", name, key, err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("rootio.WriteHist(%s): %w", name, err)
	}
	return nil
}
