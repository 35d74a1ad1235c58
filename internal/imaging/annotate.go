package imaging

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/beachwatch/crowdscan/internal/detection"
)

// Box colors by confidence band, matching the levels reported in the
// confidence distribution (high / medium / low).
var (
	colorHighConf   = color.RGBA{R: 0, G: 255, B: 0, A: 255}   // >= 0.5
	colorMediumConf = color.RGBA{R: 255, G: 255, B: 0, A: 255} // >= 0.3
	colorLowConf    = color.RGBA{R: 255, G: 165, B: 0, A: 255} // below
)

// AnnotatedPath returns the output path for an annotated copy of imagePath:
// a sibling "annotated" directory with "_annotated" appended to the stem.
func AnnotatedPath(imagePath string) string {
	dir := filepath.Join(filepath.Dir(imagePath), "annotated")
	stem := strings.TrimSuffix(filepath.Base(imagePath), filepath.Ext(imagePath))
	return filepath.Join(dir, stem+"_annotated.jpg")
}

// Annotate draws detection boxes and a person-count overlay onto a copy of
// img and writes it to outPath, creating the parent directory if needed.
//
// Each box is stroked in a color reflecting its confidence band and labeled
// with the confidence value. The total count is drawn in the top-left
// corner. The source image is not modified.
func Annotate(img image.Image, dets []detection.Detection, outPath string) error {
	dc := gg.NewContextForImage(img)
	dc.SetLineWidth(2)

	for _, d := range dets {
		c := colorLowConf
		switch {
		case d.Confidence >= 0.5:
			c = colorHighConf
		case d.Confidence >= 0.3:
			c = colorMediumConf
		}

		dc.SetColor(c)
		dc.DrawRectangle(d.Box.X1, d.Box.Y1, d.Box.X2-d.Box.X1, d.Box.Y2-d.Box.Y1)
		dc.Stroke()
		dc.DrawString(fmt.Sprintf("%.2f", d.Confidence), d.Box.X1, d.Box.Y1-4)
	}

	dc.SetColor(colorHighConf)
	dc.DrawString(fmt.Sprintf("People detected: %d", len(dets)), 10, 24)

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := imaging.Save(dc.Image(), outPath); err != nil {
		return fmt.Errorf("failed to save annotated image: %w", err)
	}
	return nil
}
