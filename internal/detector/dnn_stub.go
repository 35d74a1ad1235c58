//go:build !gocv

package detector

import (
	"context"
	"fmt"
	"image"

	"github.com/beachwatch/crowdscan/internal/detection"
)

// DNN is the no-op detector built without the gocv tag. Every method
// reports ErrUnavailable; the CLIs translate that into a pixel-density
// fallback rather than a crash.
type DNN struct{}

// NewDNN always fails in this build.
func NewDNN(modelPath string) (*DNN, error) {
	return nil, fmt.Errorf("%w: binary built without OpenCV support (gocv build tag)", ErrUnavailable)
}

// Close is a no-op.
func (d *DNN) Close() error { return nil }

// Detect always fails in this build.
func (d *DNN) Detect(ctx context.Context, region image.Image, classFilter string, confidenceFloor float64) ([]detection.Detection, error) {
	return nil, ErrUnavailable
}
