// Package decaygen is a naive, resonance-unaware phase-space event generator
// for cascades of two-body decays, such as B_s → D_s* π, D_s* → D_s γ.
//
// A decay is described as a tree of two-body vertices. Every vertex may
// decay through several channels, each with a branching fraction; a
// daughter of a channel is either stable or decays further through another
// vertex. Events are generated path by path: each leaf decay path receives
// a number of events proportional to its cumulative branching fraction.
//
// Packages:
//
//	core/          — decay tree arena: nodes, channels, slots, validation, printing
//	builder/       — trees from heap-ordered mass arrays, alternative channels, named modes
//	dfs/           — leaf decay path enumeration
//	phasespace/    — isotropic two-body sampler on go-hep fmom four-vectors
//	template/      — momentum / pseudorapidity distributions (fixed, uniform, sample, histogram)
//	generator/     — Generate, GetEventTree and Fill with per-path random streams
//	event/         — event rows and sinks
//	rootio/        — ROOT file output and input via go-hep groot
//	analysis/      — k-factor study of partially reconstructed decays
//	particle/      — mass table
//	config/        — YAML job files
//	observability/ — Prometheus metrics and OpenTelemetry tracing
//	cmd/decaygen/  — command-line driver
//
// Quick example:
//
//	tree, _ := builder.FromMasses([]float64{5.367, 1.969, 0.494})
//	gen, _ := generator.New(tree, generator.WithSeed(1))
//	tab, _, _ := gen.GetEventTree(ctx, 100, template.Fixed(50), nil)
//	// tab holds 100 rows of (mother, daughter 0, daughter 1), weight 1
//
//	go install github.com/katalvlaran/decaygen/cmd/decaygen@latest
package decaygen
