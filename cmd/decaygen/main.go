// Command decaygen builds two-body decay trees and generates phase-space
// events from them.
//
//	decaygen generate --mode DsstPi --events 100000 --output eventtree-DsstPi.root
//	decaygen generate --config job.yaml --workers 8 --metrics-file decaygen.prom
//	decaygen paths --mode DsstPi
//	decaygen print --config job.yaml
//	decaygen kfactor --input eventtree-DsstPi.root --output hdump-DsstPi.root
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"

	"github.com/katalvlaran/decaygen/config"
)

var log = logrus.WithField("prefix", "main")

var (
	verbosityFlag = &cli.StringFlag{
		Name:  "verbosity",
		Value: "info",
		Usage: "Logging verbosity (trace, debug, info, warn, error, fatal, panic)",
	}
	logFormatFlag = &cli.StringFlag{
		Name:  "log-format",
		Value: "text",
		Usage: "Log format to use (text, json)",
	}
	configFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "YAML job file; other flags override its values",
	}
	modeFlag = &cli.StringFlag{
		Name:  "mode",
		Usage: "Named decay mode (DsK, DsPi, DsstPi)",
	}
	eventsFlag = &cli.IntFlag{
		Name:    "events",
		Aliases: []string{"n"},
		Value:   10000,
		Usage:   "Number of events requested",
	}
	seedFlag = &cli.Int64Flag{
		Name:  "seed",
		Usage: "Base random seed (0 selects the default seed)",
	}
	workersFlag = &cli.IntFlag{
		Name:  "workers",
		Value: 1,
		Usage: "Number of leaf paths generated concurrently",
	}
	momentumFlag = &cli.Float64Flag{
		Name:  "momentum",
		Value: config.DefaultMomentum,
		Usage: "Fixed mother momentum in GeV; replaces the job file's momentum template when set",
	}
	etaMinFlag = &cli.Float64Flag{
		Name:  "eta-min",
		Usage: "Lower bound of a uniform mother pseudorapidity (with --eta-max)",
	}
	etaMaxFlag = &cli.Float64Flag{
		Name:  "eta-max",
		Usage: "Upper bound of a uniform mother pseudorapidity (with --eta-min)",
	}
	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Output ROOT file",
	}
	metricsFileFlag = &cli.StringFlag{
		Name:  "metrics-file",
		Usage: "Write Prometheus metrics in text format to this file after the run",
	}
	recordMomentaFlag = &cli.StringFlag{
		Name:  "record-momenta",
		Usage: "Also write the mother momentum of every event to this ROOT file, for replay with a root template",
	}
	traceFlag = &cli.BoolFlag{
		Name:  "trace",
		Usage: "Export OpenTelemetry spans as JSON to stderr",
	}
	inputFlag = &cli.StringFlag{
		Name:     "input",
		Aliases:  []string{"i"},
		Usage:    "ROOT file written by decaygen generate",
		Required: true,
	}
	bachelorFlag = &cli.StringFlag{
		Name:  "bachelor",
		Value: "K",
		Usage: "Mass hypothesis of the bachelor hadron",
	}
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := &cli.App{
		Name:  "decaygen",
		Usage: "naive two-body phase-space event generator for cascade decays",
		Flags: []cli.Flag{verbosityFlag, logFormatFlag},
		Commands: []*cli.Command{
			{
				Name:  "generate",
				Usage: "generate events and write them to a ROOT file",
				Flags: []cli.Flag{
					configFlag, modeFlag, eventsFlag, seedFlag, workersFlag,
					momentumFlag, etaMinFlag, etaMaxFlag, outputFlag,
					metricsFileFlag, recordMomentaFlag, traceFlag,
				},
				Action: generate,
			},
			{
				Name:   "paths",
				Usage:  "list the leaf decay paths and their event allocation",
				Flags:  []cli.Flag{configFlag, modeFlag, eventsFlag},
				Action: paths,
			},
			{
				Name:   "print",
				Usage:  "print the decay tree",
				Flags:  []cli.Flag{configFlag, modeFlag},
				Action: printTree,
			},
			{
				Name:   "kfactor",
				Usage:  "fill the k-factor histogram of generated events",
				Flags:  []cli.Flag{inputFlag, outputFlag, bachelorFlag},
				Action: kfactor,
			},
		},
	}
	app.Before = func(ctx *cli.Context) error {
		level, err := logrus.ParseLevel(ctx.String(verbosityFlag.Name))
		if err != nil {
			return err
		}
		logrus.SetLevel(level)

		switch format := ctx.String(logFormatFlag.Name); format {
		case "text":
			formatter := new(prefixed.TextFormatter)
			formatter.TimestampFormat = "2006-01-02 15:04:05"
			formatter.FullTimestamp = true
			logrus.SetFormatter(formatter)
		case "json":
			logrus.SetFormatter(&logrus.JSONFormatter{})
		default:
			return fmt.Errorf("unknown log format %s", format)
		}

		runtime.GOMAXPROCS(runtime.NumCPU())
		return nil
	}

	return app
}
