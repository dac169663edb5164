package config

import (
	"fmt"

	"go-hep.org/x/hep/hbook"

	"github.com/katalvlaran/decaygen/rootio"
	"github.com/katalvlaran/decaygen/template"
)

// TemplateSpec selects one template kind.
type TemplateSpec struct {
	Fixed     *float64       `yaml:"fixed"`
	Uniform   *RangeSpec     `yaml:"uniform"`
	Sample    []float64      `yaml:"sample"`
	Histogram *HistogramSpec `yaml:"histogram"`
	Root      *ColumnSpec    `yaml:"root"`
}

// RangeSpec bounds a uniform template.
type RangeSpec struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// HistogramSpec is a binned shape on [Min, Max) with len(Contents) == Bins.
type HistogramSpec struct {
	Bins     int       `yaml:"bins"`
	Min      float64   `yaml:"min"`
	Max      float64   `yaml:"max"`
	Contents []float64 `yaml:"contents"`
}

// ColumnSpec names a float64 branch of a ROOT tree.
type ColumnSpec struct {
	File   string `yaml:"file"`
	Tree   string `yaml:"tree"`
	Branch string `yaml:"branch"`
}

// Build returns the template described by s.
func (s *TemplateSpec) Build() (template.Template, error) {
	var (
		kinds int
		out   template.Template
		err   error
	)
	if s.Fixed != nil {
		kinds++
		out = template.Fixed(*s.Fixed)
	}
	if s.Uniform != nil {
		kinds++
		out, err = template.NewUniform(s.Uniform.Min, s.Uniform.Max)
	}
	if s.Sample != nil {
		kinds++
		out, err = template.NewSample(s.Sample)
	}
	if s.Histogram != nil {
		kinds++
		out, err = s.Histogram.build()
	}
	if s.Root != nil {
		kinds++
		out, err = s.Root.build()
	}
	if kinds != 1 {
		return nil, fmt.Errorf("%w: %d kinds set, want exactly 1", ErrInvalidTemplate, kinds)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTemplate, err)
	}
	return out, nil
}

func (h *HistogramSpec) build() (template.Template, error) {
	if h.Bins <= 0 || !(h.Max > h.Min) || len(h.Contents) != h.Bins {
		return nil, fmt.Errorf("histogram bins=%d range=[%g,%g) contents=%d", h.Bins, h.Min, h.Max, len(h.Contents))
	}
	hist := hbook.NewH1D(h.Bins, h.Min, h.Max)
	width := (h.Max - h.Min) / float64(h.Bins)
	for i, c := range h.Contents {
		hist.Fill(h.Min+(float64(i)+0.5)*width, c)
	}
	return template.NewHistogram(hist)
}

func (c *ColumnSpec) build() (template.Template, error) {
	vals, err := rootio.ReadColumn(c.File, c.Tree, c.Branch)
	if err != nil {
		return nil, err
	}
	return template.NewSample(vals)
}

// Templates builds the momentum template, Fixed(DefaultMomentum) when none
// is set, and the pseudorapidity template if set (nil otherwise).
func (j *Job) Templates() (mom, eta template.Template, err error) {
	mom = template.Fixed(DefaultMomentum)
	if j.Momentum != nil {
		if mom, err = j.Momentum.Build(); err != nil {
			return nil, nil, fmt.Errorf("Job.Templates: momentum: %w", err)
		}
	}
	if j.Eta != nil {
		if eta, err = j.Eta.Build(); err != nil {
			return nil, nil, fmt.Errorf("Job.Templates: eta: %w", err)
		}
	}
	return mom, eta, nil
}
