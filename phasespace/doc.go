// SPDX-License-Identifier: MIT

// Package phasespace samples two-body decay kinematics.
//
// A Sampler is configured with the mother four-momentum (lab frame) and the
// two daughter masses, then draws decays: an isotropic direction in the
// mother rest frame, daughter momenta of magnitude p* back to back, both
// boosted into the lab frame.
//
// p* is the two-body breakup momentum
//
//	p* = sqrt((M² − (m1+m2)²)(M² − (m1−m2)²)) / 2M
//
// and the returned weight is p*/p*max. For two bodies the phase space is a
// single point in |p*|, so every weight is exactly 1; the weight exists so
// multi-stage chains can average it uniformly.
//
// Conservation: the sum of the two daughters equals the mother four-momentum
// up to floating-point rounding.
//
// Concurrency: a Sampler owns its *rand.Rand and is NOT goroutine-safe.
// Use one Sampler per goroutine (see Factory).
package phasespace
