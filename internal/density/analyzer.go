package density

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/effect"
	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/lucasb-eyer/go-colorful"

	crowdimaging "github.com/beachwatch/crowdscan/internal/imaging"
)

// Method tags this estimator in result envelopes so a heuristic count is
// never conflated with a detector-based one.
const Method = "pixel_density"

// Signal weights for the combined activity estimate. Skin tone is the
// strongest person indicator, bright beach gear secondary, edge texture
// weakest.
const (
	weightSkin   = 0.6
	weightBright = 0.25
	weightEdge   = 0.15
)

// perPersonPixelPercent is the calibration constant for converting
// weighted activity into a count: one person occupies roughly 1% of the
// frame at typical beach webcam distance and zoom.
const perPersonPixelPercent = 1.0

// Canny hysteresis thresholds for the edge-activity signal.
const (
	edgeThresholdLow  = 50
	edgeThresholdHigh = 150
)

// morphRadius approximates the 5x5 elliptical kernel used for mask
// cleanup.
const morphRadius = 2.0

// Result holds the pixel-statistics crowd estimate for one frame.
//
// All percentages are fractions of total frame pixels, after noise
// reduction, in [0, 100].
type Result struct {
	// SkinPercent is the share of pixels inside the calibrated skin-tone
	// hue/saturation/value bands.
	SkinPercent float64 `json:"skin_percentage"`

	// BrightPercent is the share of highly saturated, bright pixels
	// (swimwear, towels, umbrellas).
	BrightPercent float64 `json:"bright_percentage"`

	// EdgePercent is the share of pixels on or near detected edges.
	EdgePercent float64 `json:"edge_percentage"`

	// ActivityPercent is the share covered by the union of the skin and
	// bright masks.
	ActivityPercent float64 `json:"activity_percentage"`

	// WeightedActivity is the weighted combination of the three signals.
	WeightedActivity float64 `json:"weighted_activity"`

	// EstimatedCount is the derived person count, clamped to
	// [0, maxPlausibleCount].
	EstimatedCount int `json:"estimated_count"`

	// Confidence is a coarse signal-strength bucket: one of 0.3, 0.5,
	// 0.7, or 0.85.
	Confidence float64 `json:"confidence"`

	masks masks
}

type masks struct {
	skin     *image.Gray
	bright   *image.Gray
	edges    *image.Gray
	combined *image.Gray
}

// Estimate derives a crowd estimate from pixel statistics alone. It is the
// fallback for when no trained detector is available, and is deliberately
// total: any image, including degenerate all-black or all-white frames,
// produces a bounded estimate rather than an error.
//
// Three signals are measured as percentages of total frame pixels:
// skin-tone pixels (two calibrated HSV bands, unioned, cleaned with a
// morphological open and close), bright saturated pixels (opened once),
// and dilated Canny edges. The weighted combination divided by the
// per-person calibration constant gives the count, clamped to
// [0, maxPlausibleCount].
func Estimate(img image.Image, maxPlausibleCount int) *Result {
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	total := float64(w * h)
	if total == 0 {
		return &Result{Confidence: 0.3}
	}

	skin := image.NewGray(image.Rect(0, 0, w, h))
	bright := image.NewGray(image.Rect(0, 0, w, h))

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c, ok := colorful.MakeColor(img.At(x+bounds.Min.X, y+bounds.Min.Y))
			if !ok {
				continue
			}
			hue, sat, val := c.Hsv()

			if isSkinTone(hue, sat, val) {
				skin.SetGray(x, y, color.Gray{Y: 255})
			}
			if isBright(sat, val) {
				bright.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}

	// Morphological open removes speckle, close fills small gaps.
	skinClean := morphClose(morphOpen(skin))
	brightClean := morphOpen(bright)

	// Dilate edges so the scattered contours of a person cluster together.
	edges := toGray(effect.Dilate(crowdimaging.EdgeMask(img, edgeThresholdLow, edgeThresholdHigh), morphRadius))

	combined := union(skinClean, brightClean)

	skinPct := maskPercent(skinClean, total)
	brightPct := maskPercent(brightClean, total)
	edgePct := maskPercent(edges, total)
	activityPct := maskPercent(combined, total)

	weighted := weightSkin*skinPct + weightBright*brightPct + weightEdge*edgePct

	count := int(math.Round(weighted / perPersonPixelPercent))
	if count < 0 {
		count = 0
	}
	if count > maxPlausibleCount {
		count = maxPlausibleCount
	}

	return &Result{
		SkinPercent:      round3(skinPct),
		BrightPercent:    round3(brightPct),
		EdgePercent:      round3(edgePct),
		ActivityPercent:  round3(activityPct),
		WeightedActivity: round3(weighted),
		EstimatedCount:   count,
		Confidence:       confidenceBucket((skinPct + brightPct) / 2),
		masks: masks{
			skin:     skinClean,
			bright:   brightClean,
			edges:    edges,
			combined: combined,
		},
	}
}

// confidenceBucket maps signal strength to one of four confidence levels.
// The mapping is a monotonic step function; there is no interpolation.
func confidenceBucket(signalStrength float64) float64 {
	switch {
	case signalStrength < 1.0:
		return 0.3
	case signalStrength < 3.0:
		return 0.5
	case signalStrength < 6.0:
		return 0.7
	default:
		return 0.85
	}
}

// isSkinTone reports whether an HSV pixel falls inside either of the two
// calibrated skin bands (a narrow and a broad one, unioned). Hue is in
// degrees, saturation and value in [0, 1]; the bands correspond to OpenCV
// HSV ranges (0-20, 20-255, 70-255) and (0-25, 10-150, 60-255).
func isSkinTone(hue, sat, val float64) bool {
	narrow := hue <= 40 && sat >= 20.0/255 && val >= 70.0/255
	broad := hue <= 50 && sat >= 10.0/255 && sat <= 150.0/255 && val >= 60.0/255
	return narrow || broad
}

// isBright reports whether a pixel is saturated and bright enough to be
// beach gear, at any hue. Thresholds correspond to OpenCV S >= 50,
// V >= 100.
func isBright(sat, val float64) bool {
	return sat >= 50.0/255 && val >= 100.0/255
}

func morphOpen(m *image.Gray) *image.Gray {
	return toGray(effect.Dilate(effect.Erode(m, morphRadius), morphRadius))
}

func morphClose(m *image.Gray) *image.Gray {
	return toGray(effect.Erode(effect.Dilate(m, morphRadius), morphRadius))
}

// toGray binarizes an RGBA morphology result back into a mask.
func toGray(img *image.RGBA) *image.Gray {
	bounds := img.Bounds()
	out := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if r, _, _, _ := img.At(x, y).RGBA(); r >= 0x8000 {
				out.SetGray(x-bounds.Min.X, y-bounds.Min.Y, color.Gray{Y: 255})
			}
		}
	}
	return out
}

func union(a, b *image.Gray) *image.Gray {
	bounds := a.Bounds()
	out := image.NewGray(bounds)
	for i := range a.Pix {
		if a.Pix[i] >= 128 || b.Pix[i] >= 128 {
			out.Pix[i] = 255
		}
	}
	return out
}

func maskPercent(m *image.Gray, totalPixels float64) float64 {
	count := 0
	for _, p := range m.Pix {
		if p >= 128 {
			count++
		}
	}
	return float64(count) / totalPixels * 100
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// DebugDir returns the sibling directory debug masks are written into.
func DebugDir(imagePath string) string {
	return filepath.Join(filepath.Dir(imagePath), "pixel_density_debug")
}

// SaveDebugMasks writes the intermediate masks and an overlay
// visualization next to the analyzed image, for calibrating the HSV bands
// against real footage. Returns the output directory.
//
// Files written: <stem>_skin_mask.png, <stem>_bright_mask.png,
// <stem>_edges.png, <stem>_combined.png, and <stem>_analysis.jpg (the
// frame with activity areas tinted green and the estimate drawn on top).
func (r *Result) SaveDebugMasks(img image.Image, imagePath string) (string, error) {
	// A zero-area frame produces a Result without masks.
	if r.masks.skin == nil {
		return "", fmt.Errorf("no masks recorded for %s: frame had no pixels", imagePath)
	}

	dir := DebugDir(imagePath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create debug directory: %w", err)
	}

	stem := strings.TrimSuffix(filepath.Base(imagePath), filepath.Ext(imagePath))
	outputs := []struct {
		suffix string
		mask   *image.Gray
	}{
		{"_skin_mask.png", r.masks.skin},
		{"_bright_mask.png", r.masks.bright},
		{"_edges.png", r.masks.edges},
		{"_combined.png", r.masks.combined},
	}
	for _, o := range outputs {
		if err := imaging.Save(o.mask, filepath.Join(dir, stem+o.suffix)); err != nil {
			return "", fmt.Errorf("failed to save %s: %w", o.suffix, err)
		}
	}

	if err := imaging.Save(r.overlay(img), filepath.Join(dir, stem+"_analysis.jpg")); err != nil {
		return "", fmt.Errorf("failed to save analysis overlay: %w", err)
	}
	return dir, nil
}

// overlay renders the frame with activity areas tinted green and the
// estimate summary in the top-left corner.
func (r *Result) overlay(img image.Image) image.Image {
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()

	tinted := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			cr, cg, cb, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			r8 := uint8(cr >> 8)
			g8 := uint8(cg >> 8)
			b8 := uint8(cb >> 8)

			if r.masks.combined.GrayAt(x, y).Y >= 128 {
				// 70% frame, 30% green tint.
				r8 = uint8(float64(r8) * 0.7)
				g8 = uint8(float64(g8)*0.7 + 255*0.3)
				b8 = uint8(float64(b8) * 0.7)
			}
			tinted.SetRGBA(x, y, color.RGBA{R: r8, G: g8, B: b8, A: 255})
		}
	}

	dc := gg.NewContextForImage(tinted)
	dc.SetColor(color.RGBA{R: 0, G: 255, B: 0, A: 255})
	dc.DrawString(fmt.Sprintf("Estimated: %d people", r.EstimatedCount), 20, 40)
	dc.DrawString(fmt.Sprintf("Confidence: %.2f", r.Confidence), 20, 60)
	dc.DrawString("Method: Pixel Density", 20, 80)
	return dc.Image()
}
