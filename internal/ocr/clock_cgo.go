//go:build cgo

package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/otiai10/gosseract/v2"
)

// ReadClock extracts the webcam's timestamp overlay from region and
// returns it normalized to HH:MM or HH:MM:SS.
//
// The region is cropped, grayscaled, and upscaled before OCR, and the
// Tesseract run is constrained to a single line of digits and colons so
// the engine cannot hallucinate letters out of sand texture.
func ReadClock(img image.Image, region image.Rectangle) (string, error) {
	prepared := prepareRegion(img, region)

	var buf bytes.Buffer
	if err := png.Encode(&buf, prepared); err != nil {
		return "", fmt.Errorf("encoding clock region: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", fmt.Errorf("setting clock region: %w", err)
	}
	if err := client.SetWhitelist("0123456789:"); err != nil {
		return "", fmt.Errorf("setting digit whitelist: %w", err)
	}
	client.SetPageSegMode(gosseract.PSM_SINGLE_LINE)

	raw, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("clock OCR failed: %w", err)
	}

	return parseClockText(raw)
}
