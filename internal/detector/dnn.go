//go:build gocv

package detector

import (
	"context"
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"github.com/beachwatch/crowdscan/internal/detection"
)

// rawIoU is the suppression threshold applied to the network's raw
// output before it reaches the pipeline-level merge. YOLO heads emit
// many near-duplicate boxes per object.
const rawIoU = 0.45

// DNN runs a YOLO-family ONNX model through OpenCV's DNN module. It
// satisfies the detection pipeline's Detector interface.
//
// # Algorithm
//
//  1. Pad the region to a square (top-left anchored) so the fixed
//     640x640 network input does not distort aspect ratio.
//  2. Build a 1/255-scaled blob and run a forward pass.
//  3. Decode the [1, 4+classes, anchors] output tensor: each anchor
//     column carries center-x, center-y, width, height and per-class
//     scores. Keep columns whose requested-class score clears the
//     confidence floor.
//  4. Scale boxes back to region coordinates and merge raw duplicates.
type DNN struct {
	net gocv.Net
}

// NewDNN loads an ONNX model from modelPath. Returns ErrUnavailable if
// the weights cannot be read, so callers can degrade to pixel-density
// estimation.
func NewDNN(modelPath string) (*DNN, error) {
	net := gocv.ReadNet(modelPath, "")
	if net.Empty() {
		return nil, fmt.Errorf("%w: cannot load model %s", ErrUnavailable, modelPath)
	}
	return &DNN{net: net}, nil
}

// Close releases the underlying network.
func (d *DNN) Close() error {
	return d.net.Close()
}

// Detect runs one forward pass over region and returns detections of
// classFilter with confidence >= confidenceFloor, in region pixel
// coordinates.
func (d *DNN) Detect(ctx context.Context, region image.Image, classFilter string, confidenceFloor float64) ([]detection.Detection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	classIdx, ok := cocoClasses[classFilter]
	if !ok {
		return nil, fmt.Errorf("unsupported class filter %q", classFilter)
	}

	mat, err := gocv.ImageToMatRGB(region)
	if err != nil {
		return nil, fmt.Errorf("converting region to mat: %w", err)
	}
	defer mat.Close()

	// Square letterbox: the region sits top-left on a black canvas, so
	// one uniform scale maps network space back to region space.
	bounds := region.Bounds()
	side := bounds.Dx()
	if bounds.Dy() > side {
		side = bounds.Dy()
	}
	square := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), side, side, gocv.MatTypeCV8UC3)
	defer square.Close()
	roi := square.Region(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	mat.CopyTo(&roi)
	roi.Close()

	// Mat is already RGB, so no channel swap in the blob.
	blob := gocv.BlobFromImage(square, 1.0/255.0,
		image.Pt(inputSize, inputSize), gocv.NewScalar(0, 0, 0, 0), false, false)
	defer blob.Close()

	d.net.SetInput(blob, "")
	out := d.net.Forward("")
	defer out.Close()

	dets, err := decode(out, classIdx, confidenceFloor, float64(side)/float64(inputSize))
	if err != nil {
		return nil, err
	}
	return detection.Merge(dets, rawIoU), nil
}

// decode walks the output tensor's anchor columns. scale maps network
// input pixels back to region pixels.
func decode(out gocv.Mat, classIdx int, confidenceFloor, scale float64) ([]detection.Detection, error) {
	sizes := out.Size()
	if len(sizes) != 3 {
		return nil, fmt.Errorf("unexpected output tensor rank %d", len(sizes))
	}
	channels, anchors := sizes[1], sizes[2]
	if classIdx+4 >= channels {
		return nil, fmt.Errorf("output tensor has %d channels, class index %d out of range", channels, classIdx)
	}

	data, err := out.DataPtrFloat32()
	if err != nil {
		return nil, fmt.Errorf("reading output tensor: %w", err)
	}

	at := func(channel, anchor int) float64 {
		return float64(data[channel*anchors+anchor])
	}

	var dets []detection.Detection
	for i := 0; i < anchors; i++ {
		score := at(4+classIdx, i)
		if score < confidenceFloor {
			continue
		}
		cx, cy := at(0, i)*scale, at(1, i)*scale
		w, h := at(2, i)*scale, at(3, i)*scale
		dets = append(dets, detection.Detection{
			Box: detection.Box{
				X1: cx - w/2,
				Y1: cy - h/2,
				X2: cx + w/2,
				Y2: cy + h/2,
			},
			Confidence: score,
			Class:      detection.PersonClass,
		})
	}
	return dets, nil
}
