// File: fill.go
// Role: Event allocation over leaf paths and the concurrent Fill loop.
// Determinism:
//   - Path i draws from pathRNG(seed, i); rows reach the sink in path order,
//     then event order, for any worker count.
// Concurrency:
//   - Paths run on an errgroup bounded by WithWorkers; the sink is written
//     from the calling goroutine only.

package generator

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
	"go-hep.org/x/hep/fmom"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/decaygen/dfs"
	"github.com/katalvlaran/decaygen/event"
	"github.com/katalvlaran/decaygen/template"
)

// ctxCheckEvery is how many events a path generates between context checks.
const ctxCheckEvery = 256

// PathSummary reports the outcome of one leaf path.
type PathSummary struct {
	Path      dfs.Path
	Allocated int // floor(f·N)
	Written   int
	Skipped   int
}

// Summary reports the outcome of a Fill.
type Summary struct {
	Requested int
	Allocated int
	Written   int
	Skipped   int
	Paths     []PathSummary
}

// GetEventTree generates n events into a new in-memory table.
// eta may be nil; mom may not.
//
// Errors: ErrNilTemplate, ErrNegativeEventCount, context errors.
func (g *Generator) GetEventTree(ctx context.Context, n int, mom, eta template.Template) (*event.Table, Summary, error) {
	tab := event.NewTable(n)
	sum, err := g.Fill(ctx, tab, n, mom, eta)
	if err != nil {
		return nil, sum, err
	}
	return tab, sum, nil
}

// pathResult carries the rows of one path from a worker to the writer.
type pathResult struct {
	rows    []event.Row
	summary PathSummary
	err     error
}

// Fill generates n events and writes them to sink, path by path. Paths run
// on up to WithWorkers goroutines; rows still reach sink in path order from
// the calling goroutine.
//
// Errors: ErrNilTemplate, ErrNegativeEventCount, sink errors, context
// errors. Sampling failures are not errors; see Summary.Skipped.
func (g *Generator) Fill(ctx context.Context, sink event.Sink, n int, mom, eta template.Template) (Summary, error) {
	// 1. Validate inputs
	sum := Summary{Requested: n}
	if mom == nil {
		return sum, fmt.Errorf("Fill: %w", ErrNilTemplate)
	}
	if n < 0 {
		return sum, fmt.Errorf("Fill(%d): %w", n, ErrNegativeEventCount)
	}
	if sink == nil {
		return sum, errors.New("Fill: nil sink")
	}

	ctx, span := g.cfg.tracer.Start(ctx, "Fill")
	defer span.End()
	span.SetAttributes(
		attribute.Int("events.requested", n),
		attribute.Int("paths", len(g.paths)),
		attribute.Int("workers", g.cfg.workers),
	)

	// 2. Launch one job per path, bounded by the worker limit
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	eg, egCtx := errgroup.WithContext(runCtx)
	eg.SetLimit(g.cfg.workers)

	results := make([]chan pathResult, len(g.paths))
	for i := range results {
		results[i] = make(chan pathResult, 1)
	}
	launched := make(chan struct{})
	go func() {
		defer close(launched)
		for i := range g.paths {
			eg.Go(func() error {
				r := g.runPath(egCtx, i, n, mom, eta)
				results[i] <- r
				return r.err
			})
		}
	}()

	// 3. Write in path order
	var writeErr error
	for i := range results {
		r := <-results[i]
		if r.err != nil {
			break
		}
		if writeErr = g.write(sink, r.rows); writeErr != nil {
			cancel()
			break
		}
		sum.Allocated += r.summary.Allocated
		sum.Written += r.summary.Written
		sum.Skipped += r.summary.Skipped
		sum.Paths = append(sum.Paths, r.summary)
	}
	<-launched
	err := eg.Wait()
	if writeErr != nil {
		err = fmt.Errorf("Fill: write: %w", writeErr)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return sum, err
	}

	span.SetAttributes(attribute.Int("events.written", sum.Written), attribute.Int("events.skipped", sum.Skipped))
	g.cfg.logger.WithFields(logrus.Fields{
		"requested": sum.Requested,
		"written":   sum.Written,
		"skipped":   sum.Skipped,
	}).Info("Generated events")

	return sum, nil
}

// write forwards rows to sink and records them.
func (g *Generator) write(sink event.Sink, rows []event.Row) error {
	for _, r := range rows {
		if err := sink.Write(r); err != nil {
			return err
		}
		g.cfg.metrics.ObserveEvent(r.Path, r.Weight)
	}
	return nil
}

// runPath generates the events allocated to path i on its own stream.
func (g *Generator) runPath(ctx context.Context, i, n int, mom, eta template.Template) pathResult {
	start := time.Now()
	path := g.paths[i]
	res := pathResult{summary: PathSummary{Path: path}}

	ctx, span := g.cfg.tracer.Start(ctx, "path")
	defer span.End()

	// 1. Allocation
	count := int(math.Floor(path.BranchingFraction * float64(n)))
	res.summary.Allocated = count
	span.SetAttributes(attribute.Int("path.index", i), attribute.Int("events.allocated", count))
	entry := g.cfg.logger.WithFields(logrus.Fields{"path": i, "channels": path.Channels()})
	if count == 0 && n > 0 {
		entry.WithField("fraction", path.BranchingFraction).Warn("Path receives no events")
	}

	// 2. Events
	var (
		rng     = pathRNG(g.cfg.seed, i)
		sampler = g.cfg.sampler(rng)
		mother  fmom.PxPyPzE
		momenta []fmom.PxPyPzE
		wt      float64
		err     error
		e       int
	)
	res.rows = make([]event.Row, 0, count)
	for e = 0; e < count; e++ {
		if e%ctxCheckEvery == 0 {
			if err = ctx.Err(); err != nil {
				res.err = err
				return res
			}
		}

		mother = g.motherMomentum(rng, mom, eta)
		momenta, wt, err = g.Generate(sampler, mother, path)
		if errors.Is(err, ErrSamplingFailure) {
			res.summary.Skipped++
			g.cfg.metrics.ObserveSkipped(i)
			entry.WithError(err).WithField("event", e).Warn("Skipping event")
			continue
		}
		if err != nil {
			res.err = fmt.Errorf("path %d event %d: %w", i, e, err)
			return res
		}

		row := event.Row{Momenta: make([]fmom.PxPyPzE, 0, len(momenta)+1), Weight: wt, Path: i}
		row.Momenta = append(append(row.Momenta, mother), momenta...)
		res.rows = append(res.rows, row)
	}
	res.summary.Written = len(res.rows)

	span.SetAttributes(attribute.Int("events.skipped", res.summary.Skipped))
	g.cfg.metrics.ObservePath(i, time.Since(start))
	entry.WithField("written", res.summary.Written).Debug("Path done")

	return res
}

// motherMomentum draws the lab four-momentum of the root mother.
func (g *Generator) motherMomentum(rng *rand.Rand, mom, eta template.Template) fmom.PxPyPzE {
	p := mom.Draw(rng)
	if eta == nil {
		return fmom.NewPxPyPzE(0, 0, p, math.Sqrt(p*p+g.mass*g.mass))
	}

	e := eta.Draw(rng)
	phi := math.Pi - 2*math.Pi*rng.Float64() // (-π, π]
	pep := fmom.NewPtEtaPhiM(p/math.Cosh(e), e, phi, g.mass)

	var out fmom.PxPyPzE
	out.Set(&pep)
	return out
}
