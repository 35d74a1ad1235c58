package density

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

// createUniformFrame creates a solid-color test frame.
func createUniformFrame(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// skinTone is an RGB value inside the calibrated skin HSV bands
// (hue ~22°, saturation 0.4, value 0.78).
var skinTone = color.RGBA{R: 200, G: 150, B: 120, A: 255}

func TestEstimate_AllBlackFrame(t *testing.T) {
	img := createUniformFrame(100, 100, color.RGBA{A: 255})

	r := Estimate(img, 500)

	if r.EstimatedCount != 0 {
		t.Errorf("EstimatedCount: got %d, want 0", r.EstimatedCount)
	}
	if r.Confidence != 0.3 {
		t.Errorf("Confidence: got %v, want 0.3", r.Confidence)
	}
	if r.SkinPercent != 0 || r.BrightPercent != 0 || r.EdgePercent != 0 {
		t.Errorf("percentages for black frame: got skin=%v bright=%v edge=%v, want all 0",
			r.SkinPercent, r.BrightPercent, r.EdgePercent)
	}
}

func TestEstimate_WhiteFrame(t *testing.T) {
	img := createUniformFrame(100, 100, color.White)

	r := Estimate(img, 500)

	// White has zero saturation: neither skin nor beach gear.
	if r.EstimatedCount != 0 {
		t.Errorf("EstimatedCount: got %d, want 0", r.EstimatedCount)
	}
	if r.Confidence != 0.3 {
		t.Errorf("Confidence: got %v, want 0.3", r.Confidence)
	}
}

func TestEstimate_SkinDominatedFrame(t *testing.T) {
	img := createUniformFrame(100, 100, skinTone)

	r := Estimate(img, 500)

	if r.SkinPercent < 90 {
		t.Errorf("SkinPercent: got %v, want near 100 for a uniform skin-tone frame", r.SkinPercent)
	}
	if r.EstimatedCount == 0 {
		t.Error("EstimatedCount: got 0, want a positive estimate")
	}
	if r.Confidence != 0.85 {
		t.Errorf("Confidence: got %v, want 0.85 for a saturated signal", r.Confidence)
	}
}

func TestEstimate_ClampsToMaxPlausible(t *testing.T) {
	// A frame that is wall-to-wall skin tone is pathological input
	// (skin-colored sand, sunset lighting); the estimate must saturate.
	img := createUniformFrame(100, 100, skinTone)

	r := Estimate(img, 50)

	if r.EstimatedCount != 50 {
		t.Errorf("EstimatedCount: got %d, want clamp at 50", r.EstimatedCount)
	}
}

func TestEstimate_BoundsHold(t *testing.T) {
	frames := map[string]image.Image{
		"black":     createUniformFrame(80, 60, color.RGBA{A: 255}),
		"white":     createUniformFrame(80, 60, color.White),
		"skin":      createUniformFrame(80, 60, skinTone),
		"saturated": createUniformFrame(80, 60, color.RGBA{R: 255, G: 0, B: 0, A: 255}),
		"tiny":      createUniformFrame(1, 1, skinTone),
		"empty":     image.NewRGBA(image.Rect(0, 0, 0, 0)),
	}

	validConfidence := map[float64]bool{0.3: true, 0.5: true, 0.7: true, 0.85: true}

	for name, img := range frames {
		r := Estimate(img, 500)
		if r.EstimatedCount < 0 || r.EstimatedCount > 500 {
			t.Errorf("%s: count %d out of [0,500]", name, r.EstimatedCount)
		}
		if !validConfidence[r.Confidence] {
			t.Errorf("%s: confidence %v not in {0.3, 0.5, 0.7, 0.85}", name, r.Confidence)
		}
	}
}

func TestConfidenceBuckets(t *testing.T) {
	tests := []struct {
		signal float64
		want   float64
	}{
		{0.0, 0.3},
		{0.99, 0.3},
		{1.0, 0.5},
		{2.99, 0.5},
		{3.0, 0.7},
		{5.99, 0.7},
		{6.0, 0.85},
		{50.0, 0.85},
	}

	for _, tt := range tests {
		if got := confidenceBucket(tt.signal); got != tt.want {
			t.Errorf("confidenceBucket(%v): got %v, want %v", tt.signal, got, tt.want)
		}
	}
}

func TestSaveDebugMasks_EmptyFrame(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 0, 0))
	r := Estimate(img, 500)

	if _, err := r.SaveDebugMasks(img, filepath.Join(t.TempDir(), "empty.jpg")); err == nil {
		t.Fatal("expected an error for a frame with no masks")
	}
}

func TestSaveDebugMasks(t *testing.T) {
	dir := t.TempDir()
	imagePath := filepath.Join(dir, "beach.jpg")

	img := createUniformFrame(40, 40, skinTone)
	r := Estimate(img, 500)

	outDir, err := r.SaveDebugMasks(img, imagePath)
	if err != nil {
		t.Fatalf("SaveDebugMasks failed: %v", err)
	}
	if outDir != filepath.Join(dir, "pixel_density_debug") {
		t.Errorf("debug dir: got %s", outDir)
	}

	for _, name := range []string{
		"beach_skin_mask.png",
		"beach_bright_mask.png",
		"beach_edges.png",
		"beach_combined.png",
		"beach_analysis.jpg",
	} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("expected debug file %s: %v", name, err)
		}
	}
}
