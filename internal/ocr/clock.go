package ocr

import (
	"errors"
	"fmt"
	"image"
	"regexp"

	"github.com/disintegration/imaging"
)

// ErrNoClock indicates OCR ran but produced nothing that parses as a
// time-of-day reading.
var ErrNoClock = errors.New("no clock reading found")

// upscale is the factor applied to the cropped clock region before OCR.
// Webcam overlay digits are small; doubling them noticeably improves
// Tesseract's hit rate.
const upscale = 2

// clockPattern matches HH:MM with an optional :SS, anchored to digit
// boundaries so stray OCR noise around the time is tolerated.
var clockPattern = regexp.MustCompile(`\b(\d{1,2}):(\d{2})(?::(\d{2}))?\b`)

// DefaultRegion returns the strip of the frame where webcam timestamp
// overlays usually sit: the top-right quarter width, top tenth height.
func DefaultRegion(bounds image.Rectangle) image.Rectangle {
	w, h := bounds.Dx(), bounds.Dy()
	return image.Rect(bounds.Min.X+w*3/4, bounds.Min.Y, bounds.Max.X, bounds.Min.Y+h/10)
}

// prepareRegion crops the clock region from the frame and prepares it
// for OCR: grayscale to drop the overlay's color fringing, then a 2x
// Lanczos upscale.
func prepareRegion(img image.Image, region image.Rectangle) image.Image {
	cropped := imaging.Crop(img, region)
	gray := imaging.Grayscale(cropped)
	b := gray.Bounds()
	return imaging.Resize(gray, b.Dx()*upscale, b.Dy()*upscale, imaging.Lanczos)
}

// parseClockText extracts the first time-of-day reading from raw OCR
// output and normalizes it to HH:MM or HH:MM:SS.
func parseClockText(raw string) (string, error) {
	m := clockPattern.FindStringSubmatch(raw)
	if m == nil {
		return "", fmt.Errorf("%w in %q", ErrNoClock, raw)
	}

	hh, mm, ss := m[1], m[2], m[3]
	if len(hh) == 1 {
		hh = "0" + hh
	}
	if hh > "23" || mm > "59" || (ss != "" && ss > "59") {
		return "", fmt.Errorf("%w: %s:%s is not a valid time", ErrNoClock, hh, mm)
	}

	if ss != "" {
		return hh + ":" + mm + ":" + ss, nil
	}
	return hh + ":" + mm, nil
}
