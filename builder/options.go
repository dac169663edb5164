// SPDX-License-Identifier: MIT
// Package: decaygen/builder
//
// options.go — functional options for the builder package.
//
// Contract:
//   • Options are functional (type Option func(*builderConfig)).
//   • Option constructors validate and panic on meaningless inputs;
//     builders themselves never panic.
//   • newBuilderConfig applies options in order (later overrides earlier).
//
// Deterministic defaults:
//   • logger       = package logger (prefix=builder)
//   • maxTested    = 7 masses (one nested decay)

package builder

import "github.com/sirupsen/logrus"

var log = logrus.WithField("prefix", "builder")

// maxTestedMasses is the longest mass array with a validated topology:
// the root plus one nested decay.
const maxTestedMasses = 7

// Option customizes a builder call.
type Option func(*builderConfig)

// builderConfig aggregates all knobs used by the builders.
// It is passed by value (immutable to callers).
type builderConfig struct {
	logger logrus.FieldLogger
}

// WithLogger routes builder warnings to l. Panics on nil.
func WithLogger(l logrus.FieldLogger) Option {
	if l == nil {
		panic("builder: WithLogger(nil)")
	}
	return func(c *builderConfig) {
		c.logger = l
	}
}

// newBuilderConfig constructs a config with defaults and applies opts in order.
// Complexity: O(len(opts)).
func newBuilderConfig(opts ...Option) builderConfig {
	cfg := builderConfig{logger: log}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}
