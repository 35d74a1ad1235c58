package cliutil

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/beachwatch/crowdscan/internal/analysis"
	"github.com/beachwatch/crowdscan/internal/config"
	"github.com/beachwatch/crowdscan/internal/report"
)

// NewLogger builds the stderr logger every command uses.
// CROWDSCAN_LOG_LEVEL selects the level (default info).
func NewLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	if lvl, err := logrus.ParseLevel(os.Getenv("CROWDSCAN_LOG_LEVEL")); err == nil {
		log.SetLevel(lvl)
	}
	return log
}

// Emit writes the result to stdout, as JSON or text, and maps failed
// results to exit status 1. Stdout carries exactly one result per run;
// diagnostics belong on the logger.
func Emit(r *report.Result, asJSON bool) error {
	var err error
	if asJSON {
		err = r.WriteJSON(os.Stdout)
	} else {
		err = r.WriteText(os.Stdout)
	}
	if err != nil {
		return err
	}
	if !r.Success {
		return cli.Exit("", 1)
	}
	return nil
}

// AnalysisFlags is the flag set shared by crowd-detect and
// crowd-capture's post-grab analysis, with defaults taken from cfg.
func AnalysisFlags(cfg config.Config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "model",
			Usage: "detector model path (ONNX)",
			Value: cfg.Model,
		},
		&cli.Float64Flag{
			Name:  "confidence",
			Usage: "minimum detection confidence",
			Value: cfg.Confidence,
		},
		&cli.Float64Flag{
			Name:  "beach-area",
			Usage: "visible beach area in square meters",
			Value: cfg.BeachArea,
		},
		&cli.BoolFlag{
			Name:  "no-slicing",
			Usage: "force a single full-frame pass, no tiling",
		},
		&cli.BoolFlag{
			Name:  "annotate",
			Usage: "save an annotated copy of the frame",
		},
		&cli.BoolFlag{
			Name:  "json",
			Usage: "emit the result as JSON",
		},
	}
}

// ApplyAnalysisFlags folds the analysis flag values back into the
// configuration and validates the result.
func ApplyAnalysisFlags(c *cli.Context, cfg config.Config) (config.Config, analysis.Options, error) {
	cfg.Model = c.String("model")
	cfg.Confidence = c.Float64("confidence")
	cfg.BeachArea = c.Float64("beach-area")
	if err := cfg.Validate(); err != nil {
		return config.Config{}, analysis.Options{}, err
	}

	opts := analysis.Options{
		UseTiling: !c.Bool("no-slicing"),
		Annotate:  c.Bool("annotate"),
	}
	return cfg, opts, nil
}
