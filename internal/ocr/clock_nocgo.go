//go:build !cgo

package ocr

import (
	"errors"
	"image"
)

// ErrUnavailable indicates the binary was built without cgo, so the
// Tesseract binding is absent.
var ErrUnavailable = errors.New("clock OCR unavailable: built without cgo")

// ReadClock always fails in this build.
func ReadClock(img image.Image, region image.Rectangle) (string, error) {
	return "", ErrUnavailable
}
