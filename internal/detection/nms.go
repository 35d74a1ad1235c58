package detection

import "math"

// iouEpsilon guards the IoU division against degenerate zero-area boxes.
const iouEpsilon = 1e-6

// IoU computes intersection-over-union for two axis-aligned boxes.
//
// The result is in [0, 1]: 0 for disjoint boxes, 1 for identical boxes.
// Degenerate boxes yield 0 rather than dividing by zero.
func IoU(a, b Box) float64 {
	ix1 := math.Max(a.X1, b.X1)
	iy1 := math.Max(a.Y1, b.Y1)
	ix2 := math.Min(a.X2, b.X2)
	iy2 := math.Min(a.Y2, b.Y2)

	iw := math.Max(0, ix2-ix1)
	ih := math.Max(0, iy2-iy1)
	inter := iw * ih

	return inter / (a.Area() + b.Area() - inter + iouEpsilon)
}

// Merge deduplicates detections with greedy non-maximum suppression.
//
// Detections are considered by confidence, highest first; each kept
// detection suppresses every remaining one whose IoU with it exceeds
// iouThreshold. Ties in confidence are broken by input order, so the result
// is deterministic for a deterministic input. The returned slice is a new
// slice ordered by confidence descending; the input is not modified.
//
// Merge is idempotent: applying it to an already-merged set returns the
// same set, since no surviving pair overlaps above the threshold.
//
// Complexity is O(n²) in the number of detections, which is fine at the
// tens-to-low-hundreds of boxes a single webcam frame produces.
func Merge(dets []Detection, iouThreshold float64) []Detection {
	if len(dets) == 0 {
		return nil
	}

	ordered := make([]Detection, len(dets))
	copy(ordered, dets)
	SortByConfidence(ordered)

	kept := make([]Detection, 0, len(ordered))
	suppressed := make([]bool, len(ordered))

	for i, d := range ordered {
		if suppressed[i] {
			continue
		}
		kept = append(kept, d)
		for j := i + 1; j < len(ordered); j++ {
			if suppressed[j] {
				continue
			}
			if IoU(d.Box, ordered[j].Box) > iouThreshold {
				suppressed[j] = true
			}
		}
	}

	return kept
}
