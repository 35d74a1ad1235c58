package detection

import (
	"context"
	"fmt"
	"image"

	"github.com/beachwatch/crowdscan/internal/config"
)

// Detector is the capability the pipeline needs from a pretrained object
// detector: given an image region, return bounding boxes for the requested
// class at or above the confidence floor, in region-local coordinates.
//
// Implementations live outside this package (see internal/detector for the
// DNN-backed one); tests substitute stubs so the pipeline is exercised
// without model weights.
type Detector interface {
	Detect(ctx context.Context, region image.Image, classFilter string, confidenceFloor float64) ([]Detection, error)
}

// Analyzer runs the tiled detection pipeline over single frames.
//
// An Analyzer is stateless apart from its configuration and detector, so it
// can be reused across frames to amortize model loading.
type Analyzer struct {
	cfg config.Config
	det Detector
}

// NewAnalyzer creates an Analyzer using the given configuration and
// detector adapter.
func NewAnalyzer(cfg config.Config, det Detector) *Analyzer {
	return &Analyzer{cfg: cfg, det: det}
}

// Analyze detects people in a frame and returns the merged detection set,
// sorted by confidence descending (index 0 is the highest-confidence hit).
//
// For frames whose longer axis exceeds the configured large-image edge and
// with tiling enabled, the frame is sliced into overlapping tiles, each
// tile is run through the detector, and the translated per-tile hits are
// merged with the tile IoU threshold. A full-frame pass then runs in every
// case: tiling fragments or misses large near-camera subjects straddling
// tile boundaries, and the full pass recovers them. A final merge with the
// final IoU threshold removes cross-pass duplicates.
func (a *Analyzer) Analyze(ctx context.Context, img image.Image, useTiling bool) ([]Detection, error) {
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()

	var all []Detection

	if useTiling && (w > a.cfg.LargeImageEdge || h > a.cfg.LargeImageEdge) {
		tiles, err := Slice(img, a.cfg.SliceSize, a.cfg.SliceOverlap)
		if err != nil {
			return nil, err
		}

		for _, tile := range tiles {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			dets, err := a.det.Detect(ctx, tile.Image, PersonClass, a.cfg.Confidence)
			if err != nil {
				return nil, fmt.Errorf("tile detection at (%d,%d): %w", tile.OffsetX, tile.OffsetY, err)
			}
			for _, d := range dets {
				d.Box = d.Box.Translate(float64(tile.OffsetX), float64(tile.OffsetY))
				all = append(all, d)
			}
		}

		all = Merge(all, a.cfg.IoUTiles)
	}

	full, err := a.det.Detect(ctx, img, PersonClass, a.cfg.Confidence)
	if err != nil {
		return nil, fmt.Errorf("full-frame detection: %w", err)
	}
	all = append(all, full...)

	merged := Merge(all, a.cfg.IoUFinal)
	SortByConfidence(merged)
	return merged, nil
}
