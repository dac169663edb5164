package generator

import "errors"

var (
	// ErrTreeNil is returned by New for a nil tree.
	ErrTreeNil = errors.New("generator: tree is nil")

	// ErrSamplingFailure indicates the sampler rejected a vertex as
	// kinematically forbidden. It wraps phasespace.ErrForbidden.
	ErrSamplingFailure = errors.New("generator: phase-space sampling failed")

	// ErrInvalidPath indicates a path that does not match the tree: an
	// unknown channel id or steps left over after the walk.
	ErrInvalidPath = errors.New("generator: path does not match tree")

	// ErrNilTemplate is returned when no momentum template is supplied.
	ErrNilTemplate = errors.New("generator: momentum template is nil")

	// ErrNegativeEventCount is returned for a negative requested event count.
	ErrNegativeEventCount = errors.New("generator: negative event count")
)
