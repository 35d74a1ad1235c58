package detector

import "errors"

// ErrUnavailable indicates no pretrained detector backend is compiled in
// or the model weights could not be loaded. Callers should fall back to
// the pixel-density estimator and report the degradation, not crash.
var ErrUnavailable = errors.New("detector unavailable")

// inputSize is the square input edge the network was exported with.
const inputSize = 640

// cocoClasses maps supported class filters to their COCO class indices.
var cocoClasses = map[string]int{
	"person": 0,
}
