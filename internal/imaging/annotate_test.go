package imaging

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/beachwatch/crowdscan/internal/detection"
)

func TestAnnotatedPath(t *testing.T) {
	got := AnnotatedPath("/frames/beach_cam1.jpg")
	want := filepath.Join("/frames", "annotated", "beach_cam1_annotated.jpg")
	if got != want {
		t.Errorf("AnnotatedPath: got %s, want %s", got, want)
	}
}

func TestAnnotate(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 320, 240))
	dets := []detection.Detection{
		{Box: detection.Box{X1: 20, Y1: 30, X2: 60, Y2: 120}, Confidence: 0.82, Class: detection.PersonClass},
		{Box: detection.Box{X1: 150, Y1: 40, X2: 180, Y2: 110}, Confidence: 0.34, Class: detection.PersonClass},
	}

	outPath := filepath.Join(t.TempDir(), "annotated", "frame_annotated.jpg")
	if err := Annotate(img, dets, outPath); err != nil {
		t.Fatalf("Annotate failed: %v", err)
	}

	// The output must exist and decode back to the source dimensions.
	out, err := Load(outPath)
	if err != nil {
		t.Fatalf("annotated output unreadable: %v", err)
	}
	if b := out.Bounds(); b.Dx() != 320 || b.Dy() != 240 {
		t.Errorf("annotated dimensions: got %dx%d, want 320x240", b.Dx(), b.Dy())
	}
}

func TestAnnotate_NoDetections(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	outPath := filepath.Join(t.TempDir(), "empty_annotated.jpg")

	if err := Annotate(img, nil, outPath); err != nil {
		t.Fatalf("Annotate with no detections failed: %v", err)
	}
	if _, err := os.Stat(outPath); err != nil {
		t.Errorf("annotated output missing: %v", err)
	}
}
