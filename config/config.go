// Package config loads decay-generation jobs from YAML.
//
// Example:
//
//	mode: DsstPi              # or: masses: [Bs, Ds*, pi, Ds, gamma]
//	channels:                 # extra channels, added in order
//	  - node: 0
//	    masses: [Bs, Ds*, pi, Ds, pi]
//	    fraction: 0.05
//	events: 100000
//	seed: 42
//	workers: 4
//	momentum:
//	  uniform: {min: 20, max: 200}
//	eta:
//	  histogram: {bins: 3, min: 2, max: 5, contents: [1, 2, 1]}
//	output: eventtree-DsstPi.root
//
// Masses are numbers in GeV or particle names known to package particle.
// Template specs set exactly one of fixed, uniform, sample, histogram or
// root (a float64 branch of a ROOT tree, replayed uniformly).
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/decaygen/builder"
	"github.com/katalvlaran/decaygen/core"
	"github.com/katalvlaran/decaygen/particle"
)

var log = logrus.WithField("prefix", "config")

// Defaults for unset fields. DefaultMomentum is the fixed mother momentum
// in GeV used when a job names no momentum template.
const (
	DefaultEvents   = 10000
	DefaultWorkers  = 1
	DefaultMomentum = 4.0
)

var (
	// ErrInvalidJob is returned for inconsistent job descriptions.
	ErrInvalidJob = errors.New("config: invalid job")

	// ErrInvalidTemplate is returned for template specs setting zero or
	// several kinds, or malformed parameters.
	ErrInvalidTemplate = errors.New("config: invalid template")
)

// Mass is a mass in GeV that decodes from a number or a particle name.
type Mass float64

// UnmarshalYAML implements yaml.Unmarshaler.
func (m *Mass) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: mass must be a scalar", value.Line)
	}
	if f, err := strconv.ParseFloat(value.Value, 64); err == nil {
		*m = Mass(f)
		return nil
	}
	f, err := particle.Mass(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*m = Mass(f)
	return nil
}

// ChannelSpec describes one extra decay channel.
type ChannelSpec struct {
	Node     int     `yaml:"node"`
	Masses   []Mass  `yaml:"masses"`
	Fraction float64 `yaml:"fraction"`
}

// Job is a complete generation job.
type Job struct {
	Mode     string        `yaml:"mode"`
	Masses   []Mass        `yaml:"masses"`
	Channels []ChannelSpec `yaml:"channels"`

	Events  int   `yaml:"events"`
	Seed    int64 `yaml:"seed"`
	Workers int   `yaml:"workers"`

	Momentum *TemplateSpec `yaml:"momentum"`
	Eta      *TemplateSpec `yaml:"eta"`

	Output      string `yaml:"output"`
	MetricsFile string `yaml:"metrics_file"`
}

// Load reads and parses a job file.
func Load(path string) (*Job, error) {
	raw, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	j, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("config.Load(%s): %w", path, err)
	}
	log.WithField("file", path).Debugf("Job values: %+v", *j)
	return j, nil
}

// Parse decodes a job strictly: unknown keys are errors. Absent events and
// workers take their defaults; an explicit "events: 0" is kept.
func Parse(raw []byte) (*Job, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)

	j := &Job{Events: DefaultEvents, Workers: DefaultWorkers}
	if err := dec.Decode(j); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if j.Workers == 0 {
		j.Workers = DefaultWorkers
	}
	if err := j.Validate(); err != nil {
		return nil, err
	}
	return j, nil
}

// Validate checks field consistency without building anything.
func (j *Job) Validate() error {
	switch {
	case j.Mode == "" && len(j.Masses) == 0:
		return fmt.Errorf("%w: one of mode or masses is required", ErrInvalidJob)
	case j.Mode != "" && len(j.Masses) != 0:
		return fmt.Errorf("%w: mode and masses are exclusive", ErrInvalidJob)
	case j.Events < 0:
		return fmt.Errorf("%w: events %d < 0", ErrInvalidJob, j.Events)
	case j.Workers < 0:
		return fmt.Errorf("%w: workers %d < 0", ErrInvalidJob, j.Workers)
	}
	return nil
}

// Tree builds the decay tree: the named mode or the mass array, then every
// extra channel in order.
func (j *Job) Tree(opts ...builder.Option) (*core.Tree, error) {
	var (
		t   *core.Tree
		err error
	)
	if j.Mode != "" {
		t, err = builder.Preset(j.Mode, opts...)
	} else {
		t, err = builder.FromMasses(floats(j.Masses), opts...)
	}
	if err != nil {
		return nil, fmt.Errorf("Job.Tree: %w", err)
	}

	for i, c := range j.Channels {
		if _, err = builder.AddDecayChannel(t, core.NodeID(c.Node), floats(c.Masses), c.Fraction, opts...); err != nil {
			return nil, fmt.Errorf("Job.Tree: channel %d: %w", i, err)
		}
	}
	return t, nil
}

func floats(ms []Mass) []float64 {
	out := make([]float64, len(ms))
	for i, m := range ms {
		out[i] = float64(m)
	}
	return out
}
