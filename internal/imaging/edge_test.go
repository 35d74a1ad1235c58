package imaging

import (
	"image"
	"image/color"
	"testing"
)

func TestEdgeMask_UniformImageHasNoEdges(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 60, 60))
	for y := 0; y < 60; y++ {
		for x := 0; x < 60; x++ {
			img.Set(x, y, color.RGBA{R: 128, G: 128, B: 128, A: 255})
		}
	}

	mask := EdgeMask(img, 50, 150)

	if b := mask.Bounds(); b.Dx() != 60 || b.Dy() != 60 {
		t.Fatalf("mask dimensions: got %dx%d, want 60x60", b.Dx(), b.Dy())
	}
	for y := 0; y < 60; y++ {
		for x := 0; x < 60; x++ {
			if mask.GrayAt(x, y).Y != 0 {
				t.Fatalf("uniform image produced an edge at (%d, %d)", x, y)
			}
		}
	}
}

func TestEdgeMask_DetectsContrastBoundary(t *testing.T) {
	// Left half black, right half white: a strong vertical edge.
	img := image.NewRGBA(image.Rect(0, 0, 60, 60))
	for y := 0; y < 60; y++ {
		for x := 0; x < 60; x++ {
			c := color.RGBA{A: 255}
			if x >= 30 {
				c = color.RGBA{R: 255, G: 255, B: 255, A: 255}
			}
			img.Set(x, y, c)
		}
	}

	mask := EdgeMask(img, 50, 150)

	edgePixels := 0
	for y := 0; y < 60; y++ {
		for x := 0; x < 60; x++ {
			if mask.GrayAt(x, y).Y != 0 {
				edgePixels++
				if x < 25 || x > 35 {
					t.Errorf("edge pixel far from the boundary at (%d, %d)", x, y)
				}
			}
		}
	}
	if edgePixels == 0 {
		t.Error("no edges found on a high-contrast boundary")
	}
}
