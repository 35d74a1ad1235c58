// Command crowd-density estimates crowd size from pixel statistics
// alone: skin-tone coverage, bright beach gear, and edge activity. It
// needs no model weights and no OpenCV, so it works anywhere the
// detector does not.
//
// Usage:
//
//	crowd-density [flags] <image>
package main

import (
	"errors"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/beachwatch/crowdscan/internal/busyness"
	"github.com/beachwatch/crowdscan/internal/cliutil"
	"github.com/beachwatch/crowdscan/internal/config"
	"github.com/beachwatch/crowdscan/internal/density"
	"github.com/beachwatch/crowdscan/internal/imaging"
	"github.com/beachwatch/crowdscan/internal/report"
)

func main() {
	log := cliutil.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	app := &cli.App{
		Name:      "crowd-density",
		Usage:     "estimate beach crowding from pixel statistics, no model required",
		ArgsUsage: "<image>",
		Flags: []cli.Flag{
			&cli.Float64Flag{
				Name:  "beach-area",
				Usage: "visible beach area in square meters",
				Value: cfg.BeachArea,
			},
			&cli.IntFlag{
				Name:  "max-count",
				Usage: "upper bound on the estimated person count",
				Value: cfg.MaxPlausibleCount,
			},
			&cli.BoolFlag{
				Name:  "save-debug",
				Usage: "save the skin/bright/edge masks next to the image",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "emit the result as JSON",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				cli.ShowAppHelp(c)
				return errors.New("exactly one image path is required")
			}
			imagePath := c.Args().First()
			asJSON := c.Bool("json")

			img, err := imaging.Load(imagePath)
			if err != nil {
				return cliutil.Emit(report.Failure(imagePath, err), asJSON)
			}
			bounds := img.Bounds()

			est := density.Estimate(img, c.Int("max-count"))

			if c.Bool("save-debug") {
				dir, err := est.SaveDebugMasks(img, imagePath)
				if err != nil {
					log.WithError(err).Warn("could not save debug masks")
				} else {
					log.WithField("dir", dir).Info("debug masks saved")
				}
			}

			r := report.New(imagePath)
			r.Method = density.Method
			r.ImageSize = &report.ImageSize{Width: bounds.Dx(), Height: bounds.Dy()}
			r.PixelDensity = est
			b := busyness.Score(est.EstimatedCount, c.Float64("beach-area"))
			r.Busyness = &b

			return cliutil.Emit(r, asJSON)
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Debug("exiting")
		os.Exit(1)
	}
}
