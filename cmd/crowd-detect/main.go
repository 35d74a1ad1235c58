// Command crowd-detect counts people in a beach webcam frame using
// tiled neural-network detection and reports a busyness score. When no
// detector backend is available the frame is estimated from pixel
// statistics instead.
//
// Usage:
//
//	crowd-detect [flags] <image>
//
// Results go to stdout as human-readable text, or as a single JSON
// envelope with --json. Failures still produce an envelope, with
// success=false and a non-zero exit status.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/urfave/cli/v2"

	"github.com/beachwatch/crowdscan/internal/analysis"
	"github.com/beachwatch/crowdscan/internal/cliutil"
	"github.com/beachwatch/crowdscan/internal/config"
)

func main() {
	log := cliutil.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	app := &cli.App{
		Name:      "crowd-detect",
		Usage:     "count people in a beach webcam frame",
		ArgsUsage: "<image>",
		Flags:     cliutil.AnalysisFlags(cfg),
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				cli.ShowAppHelp(c)
				return errors.New("exactly one image path is required")
			}
			imagePath := c.Args().First()

			cfg, opts, err := cliutil.ApplyAnalysisFlags(c, cfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			log.WithFields(map[string]interface{}{
				"image":   imagePath,
				"model":   cfg.Model,
				"slicing": opts.UseTiling,
			}).Info("analyzing frame")

			runner := analysis.NewRunner(log, cfg)
			return cliutil.Emit(runner.Frame(ctx, imagePath, opts), c.Bool("json"))
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Debug("exiting")
		os.Exit(1)
	}
}

