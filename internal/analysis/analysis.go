package analysis

import (
	"context"
	"errors"
	"image"

	"github.com/sirupsen/logrus"

	"github.com/beachwatch/crowdscan/internal/busyness"
	"github.com/beachwatch/crowdscan/internal/config"
	"github.com/beachwatch/crowdscan/internal/density"
	"github.com/beachwatch/crowdscan/internal/detection"
	"github.com/beachwatch/crowdscan/internal/detector"
	"github.com/beachwatch/crowdscan/internal/imaging"
	"github.com/beachwatch/crowdscan/internal/report"
)

// Options selects the per-run behavior of Runner.Frame.
type Options struct {
	// UseTiling enables the tiled pass for large frames.
	UseTiling bool

	// Annotate saves an annotated copy of the frame on success.
	Annotate bool
}

// Runner executes the estimation flow over frames. All frame loads go
// through a shared cache, so follow-up reads of a frame already analyzed
// (the clock reader, repeated analyses of one capture) reuse the decoded
// image instead of hitting the disk again.
type Runner struct {
	log    *logrus.Logger
	cfg    config.Config
	frames *imaging.FrameCache
}

// NewRunner creates a Runner with an empty frame cache.
func NewRunner(log *logrus.Logger, cfg config.Config) *Runner {
	return &Runner{
		log:    log,
		cfg:    cfg,
		frames: imaging.NewFrameCache(),
	}
}

// LoadFrame retrieves a frame through the runner's cache. A frame the
// runner has already analyzed is returned without touching the disk.
func (r *Runner) LoadFrame(path string) (image.Image, error) {
	return r.frames.Load(path)
}

// Frame analyzes one frame end to end and returns the result envelope.
// It never returns an error: every failure becomes a success=false
// envelope so callers emit exactly one result per run.
//
// When the detector backend is unavailable (built without the gocv tag,
// or the model weights cannot be loaded) the frame is estimated with the
// pixel-density fallback instead, and the result's method says so.
func (r *Runner) Frame(ctx context.Context, imagePath string, opts Options) *report.Result {
	img, err := r.frames.Load(imagePath)
	if err != nil {
		return report.Failure(imagePath, err)
	}
	bounds := img.Bounds()

	res := report.New(imagePath)
	res.ImageSize = &report.ImageSize{Width: bounds.Dx(), Height: bounds.Dy()}

	det, err := detector.NewDNN(r.cfg.Model)
	if err != nil {
		if !errors.Is(err, detector.ErrUnavailable) {
			return report.Failure(imagePath, err)
		}
		r.log.WithError(err).Warn("detector unavailable, falling back to pixel-density estimation")

		est := density.Estimate(img, r.cfg.MaxPlausibleCount)
		res.Method = density.Method
		res.PixelDensity = est
		b := busyness.Score(est.EstimatedCount, r.cfg.BeachArea)
		res.Busyness = &b
		return res
	}
	defer det.Close()

	dets, err := detection.NewAnalyzer(r.cfg, det).Analyze(ctx, img, opts.UseTiling)
	if err != nil {
		return report.Failure(imagePath, err)
	}

	res.Model = r.cfg.Model
	res.ConfidenceThreshold = r.cfg.Confidence
	res.SlicingEnabled = report.Bool(opts.UseTiling)
	res.Detections = report.SummarizeDetections(dets)
	b := busyness.Score(len(dets), r.cfg.BeachArea)
	res.Busyness = &b

	longEdge := bounds.Dx()
	if bounds.Dy() > longEdge {
		longEdge = bounds.Dy()
	}
	if opts.UseTiling && longEdge > r.cfg.LargeImageEdge {
		res.Method = "tiled_detection"
	} else {
		res.Method = "full_frame_detection"
	}

	if opts.Annotate {
		outPath := imaging.AnnotatedPath(imagePath)
		if err := imaging.Annotate(img, dets, outPath); err != nil {
			r.log.WithError(err).Warn("could not save annotated frame")
		} else {
			res.AnnotatedImagePath = outPath
		}
	}

	return res
}
