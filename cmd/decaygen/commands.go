// File: commands.go
// Role: actions of the decaygen subcommands and job/flag merging.

package main

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/katalvlaran/decaygen/analysis"
	"github.com/katalvlaran/decaygen/config"
	"github.com/katalvlaran/decaygen/core"
	"github.com/katalvlaran/decaygen/dfs"
	"github.com/katalvlaran/decaygen/event"
	"github.com/katalvlaran/decaygen/generator"
	"github.com/katalvlaran/decaygen/observability"
	"github.com/katalvlaran/decaygen/particle"
	"github.com/katalvlaran/decaygen/rootio"
)

// loadJob reads --config if given, then applies the flags that were set.
func loadJob(ctx *cli.Context) (*config.Job, error) {
	j := &config.Job{Events: config.DefaultEvents, Workers: config.DefaultWorkers}
	if ctx.IsSet(configFlag.Name) {
		var err error
		if j, err = config.Load(ctx.String(configFlag.Name)); err != nil {
			return nil, err
		}
	}

	if ctx.IsSet(modeFlag.Name) {
		j.Mode, j.Masses = ctx.String(modeFlag.Name), nil
	}
	if ctx.IsSet(eventsFlag.Name) || !ctx.IsSet(configFlag.Name) {
		j.Events = ctx.Int(eventsFlag.Name)
	}
	if ctx.IsSet(seedFlag.Name) {
		j.Seed = ctx.Int64(seedFlag.Name)
	}
	if ctx.IsSet(workersFlag.Name) {
		j.Workers = ctx.Int(workersFlag.Name)
	}
	if ctx.IsSet(momentumFlag.Name) {
		p := ctx.Float64(momentumFlag.Name)
		j.Momentum = &config.TemplateSpec{Fixed: &p}
	}
	if ctx.IsSet(etaMinFlag.Name) || ctx.IsSet(etaMaxFlag.Name) {
		j.Eta = &config.TemplateSpec{Uniform: &config.RangeSpec{
			Min: ctx.Float64(etaMinFlag.Name),
			Max: ctx.Float64(etaMaxFlag.Name),
		}}
	}
	if ctx.IsSet(outputFlag.Name) {
		j.Output = ctx.String(outputFlag.Name)
	}
	if ctx.IsSet(metricsFileFlag.Name) {
		j.MetricsFile = ctx.String(metricsFileFlag.Name)
	}
	if j.Workers == 0 {
		j.Workers = config.DefaultWorkers
	}

	if err := j.Validate(); err != nil {
		return nil, err
	}
	return j, nil
}

func generate(ctx *cli.Context) (err error) {
	j, err := loadJob(ctx)
	if err != nil {
		return err
	}
	tree, err := j.Tree()
	if err != nil {
		return err
	}
	mom, eta, err := j.Templates()
	if err != nil {
		return err
	}

	// 1. Observability
	opts := []generator.Option{generator.WithSeed(j.Seed), generator.WithWorkers(j.Workers)}
	var metrics *observability.Collector
	if j.MetricsFile != "" {
		if metrics, err = observability.NewCollector(prometheus.NewRegistry()); err != nil {
			return err
		}
		opts = append(opts, generator.WithMetrics(metrics))
	}
	shutdown, err := observability.InitTracing(ctx.Context, observability.TracingConfig{
		Enabled:     ctx.Bool(traceFlag.Name),
		ServiceName: "decaygen",
		Writer:      os.Stderr,
	})
	if err != nil {
		return err
	}
	defer observability.ShutdownWithTimeout(ctx.Context, shutdown)

	// 2. Sinks
	var sink event.Sink = event.SinkFunc(func(event.Row) error { return nil })
	if j.Output != "" {
		var w *rootio.Writer
		if w, err = rootio.Create(j.Output); err != nil {
			return err
		}
		defer closeInto(&err, w, j.Output)
		sink = w
	} else {
		log.Warn("No output file given, events are discarded")
	}
	var recorded []float64
	if ctx.IsSet(recordMomentaFlag.Name) {
		sink = recordMother(sink, &recorded)
	}

	// 3. Run
	g, err := generator.New(tree, opts...)
	if err != nil {
		return err
	}
	sum, err := g.Fill(ctx.Context, sink, j.Events, mom, eta)
	if err != nil {
		return err
	}
	for i, p := range sum.Paths {
		log.WithFields(logrus.Fields{
			"path":      i,
			"channels":  p.Path.Channels(),
			"fraction":  p.Path.BranchingFraction,
			"allocated": p.Allocated,
			"written":   p.Written,
			"skipped":   p.Skipped,
		}).Info("Path summary")
	}

	if ctx.IsSet(recordMomentaFlag.Name) {
		if err = rootio.WriteColumn(ctx.String(recordMomentaFlag.Name), momentumTree, momentumBranch, recorded); err != nil {
			return err
		}
	}
	return metrics.WriteTextfile(j.MetricsFile)
}

// closeInto closes c and reports its error through err unless err is
// already set.
func closeInto(err *error, c io.Closer, name string) {
	if cerr := c.Close(); cerr != nil && *err == nil {
		*err = fmt.Errorf("close %s: %w", name, cerr)
	}
}

// Tree and branch of the mother momentum file written by --record-momenta.
const (
	momentumTree   = "tmomp"
	momentumBranch = "momentum"
)

// recordMother forwards rows to next and appends the mother momentum
// magnitude of each to out. Fill writes from a single goroutine.
func recordMother(next event.Sink, out *[]float64) event.Sink {
	return event.SinkFunc(func(r event.Row) error {
		if len(r.Momenta) > 0 {
			*out = append(*out, r.Momenta[0].P())
		}
		return next.Write(r)
	})
}

func paths(ctx *cli.Context) error {
	j, err := loadJob(ctx)
	if err != nil {
		return err
	}
	tree, err := j.Tree()
	if err != nil {
		return err
	}
	ps, err := dfs.LeafPaths(tree, core.Root, dfs.WithContext(ctx.Context))
	if err != nil {
		return err
	}

	w := ctx.App.Writer
	for i, p := range ps {
		alloc := int(math.Floor(p.BranchingFraction * float64(j.Events)))
		if _, err = fmt.Fprintf(w, "%3d  %-40s  events=%d\n", i, p, alloc); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintf(w, "total bf=%g\n", dfs.TotalBranchingFraction(ps))
	return err
}

func printTree(ctx *cli.Context) error {
	j, err := loadJob(ctx)
	if err != nil {
		return err
	}
	tree, err := j.Tree()
	if err != nil {
		return err
	}
	return core.Fprint(ctx.App.Writer, tree)
}

func kfactor(ctx *cli.Context) error {
	rows, err := rootio.ReadRows(ctx.String(inputFlag.Name))
	if err != nil {
		return err
	}
	cfg := analysis.DefaultKFactorConfig()
	if cfg.BachelorMass, err = particle.Mass(ctx.String(bachelorFlag.Name)); err != nil {
		return err
	}

	h, st, err := analysis.KFactor(rows, cfg)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"used":    st.Used,
		"skipped": st.Skipped,
		"mean":    h.XMean(),
		"stddev":  h.XStdDev(),
	}).Info("k-factor")

	if out := ctx.String(outputFlag.Name); out != "" {
		return rootio.WriteHist(out, "kfactor", h)
	}
	return nil
}
