// Package generator produces decay events from a core.Tree.
//
// What:
//
//   - Generate decays a mother four-momentum along one leaf path, drawing
//     each two-body vertex from a phasespace.Sampler, and returns every
//     produced daughter with the event weight.
//   - GetEventTree / Fill allocate floor(f·N) events to every leaf path of
//     fraction f, draw the mother momentum from templates, and write one
//     event.Row per successful event.
//
// Weights:
//
//	At each vertex the sampled weight w is combined with the weight of each
//	decaying daughter, first daughter then second, as w = (w + w_child)/2.
//	This is an average, not a product, and is kept as is.
//
// Mother momentum:
//
//	p is drawn from the momentum template. Without a pseudorapidity template
//	the mother moves along z: (0, 0, p, sqrt(p²+M²)). With one, η is drawn,
//	pT = p/cosh(η) and φ is uniform in (-π, π].
//
// Determinism:
//
//	Path i draws from its own stream seeded by SplitMix(seed, i). Rows are
//	written in path order, event order, so the output does not depend on the
//	number of workers.
//
// Failures:
//
//	A vertex the sampler rejects makes Generate return ErrSamplingFailure.
//	Fill skips that event, logs a warning and counts it in Summary.Skipped;
//	skipped events are not retried.
package generator
