package detection

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Tile is a rectangular sub-region of a source image together with its
// offset in the source's coordinate space. Detections found inside a tile
// must be translated by (OffsetX, OffsetY) before merging.
type Tile struct {
	Image   image.Image
	OffsetX int
	OffsetY int
}

// Slice partitions an image into overlapping sliceSize x sliceSize tiles.
//
// This is a simplified Slicing-Aided Hyper Inference scheme: running the
// detector on tiles makes distant people large enough, relative to the
// detector's input, to be found at all.
//
// Consecutive tiles along each axis are spaced by
// stride = floor(sliceSize * (1 - overlap)). When a window would run past
// the image edge it is pulled back so it still has the full sliceSize
// extent and ends exactly at the boundary; no truncated edge tiles are
// produced. A tile is only smaller than sliceSize when the image itself is
// smaller on that axis.
//
// Constraints: sliceSize > 0 and 0 <= overlap < 1; violations are reported
// as errors rather than producing a degenerate grid.
func Slice(img image.Image, sliceSize int, overlap float64) ([]Tile, error) {
	if sliceSize <= 0 {
		return nil, fmt.Errorf("slice size must be positive, got %d", sliceSize)
	}
	if overlap < 0 || overlap >= 1 {
		return nil, fmt.Errorf("overlap must be in [0, 1), got %v", overlap)
	}

	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()

	stride := int(float64(sliceSize) * (1 - overlap))
	if stride < 1 {
		stride = 1
	}

	var tiles []Tile
	for y := 0; y < h; y += stride {
		for x := 0; x < w; x += stride {
			xEnd := min(x+sliceSize, w)
			yEnd := min(y+sliceSize, h)
			xStart := max(0, xEnd-sliceSize)
			yStart := max(0, yEnd-sliceSize)

			rect := image.Rect(
				bounds.Min.X+xStart, bounds.Min.Y+yStart,
				bounds.Min.X+xEnd, bounds.Min.Y+yEnd,
			)
			tiles = append(tiles, Tile{
				Image:   imaging.Crop(img, rect),
				OffsetX: xStart,
				OffsetY: yStart,
			})
		}
	}

	return tiles, nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
