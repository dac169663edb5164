// SPDX-License-Identifier: MIT

package phasespace

import "errors"

var (
	// ErrForbidden indicates a decay whose daughters are heavier than the
	// mother, or a mother that is not timelike.
	ErrForbidden = errors.New("phasespace: decay kinematically forbidden")

	// ErrNotSampled indicates Daughter was called before a successful Sample.
	ErrNotSampled = errors.New("phasespace: no decay sampled")

	// ErrDaughterIndex indicates a daughter index other than 0 or 1.
	ErrDaughterIndex = errors.New("phasespace: daughter index out of range")
)
