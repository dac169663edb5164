// Package template provides the one-dimensional distributions from which the
// mother momentum and pseudorapidity of generated events are drawn.
//
// Implementations:
//
//	Fixed      - a constant.
//	Uniform    - flat on [Min, Max).
//	Sample     - uniform replay of recorded values.
//	Histogram  - inverse-CDF sampling of an hbook.H1D, flat within a bin.
//
// Every Draw takes the caller's *rand.Rand so that templates are stateless
// and safe to share between generator workers.
package template
