package detection

import (
	"math"
	"sort"
)

// PersonClass is the class label used for person detections. The COCO class
// id 0 maps to this label in every adapter.
const PersonClass = "person"

// Box represents an axis-aligned bounding box in original-image pixel
// coordinates.
//
// Coordinates are float64 because detectors report sub-pixel box positions;
// (X1, Y1) is the top-left corner and (X2, Y2) the bottom-right.
type Box struct {
	X1 float64 `json:"x1"` // Left edge
	Y1 float64 `json:"y1"` // Top edge
	X2 float64 `json:"x2"` // Right edge
	Y2 float64 `json:"y2"` // Bottom edge
}

// Area returns the box area in square pixels. Degenerate boxes (inverted
// or zero-extent) have area 0.
func (b Box) Area() float64 {
	w := b.X2 - b.X1
	h := b.Y2 - b.Y1
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// Translate returns a copy of the box shifted by (dx, dy). Used to map a
// tile-local detection back into original-image coordinates.
func (b Box) Translate(dx, dy float64) Box {
	return Box{
		X1: b.X1 + dx,
		Y1: b.Y1 + dy,
		X2: b.X2 + dx,
		Y2: b.Y2 + dy,
	}
}

// Detection is a single detector hit: a bounding box in original-image
// coordinates, the detector's confidence, and the class label.
type Detection struct {
	Box        Box     `json:"bbox"`
	Confidence float64 `json:"confidence"`
	Class      string  `json:"class"`
}

// SortByConfidence orders detections by confidence descending, in place.
// Equal confidences keep their input order so results are deterministic.
func SortByConfidence(dets []Detection) {
	sort.SliceStable(dets, func(i, j int) bool {
		return dets[i].Confidence > dets[j].Confidence
	})
}

// Stats summarizes the confidence values of a detection set.
type Stats struct {
	// Min, Max, and Avg are confidence statistics over all detections.
	// All three are 0 for an empty set.
	Min float64 `json:"min_confidence"`
	Max float64 `json:"max_confidence"`
	Avg float64 `json:"avg_confidence"`

	// High, Medium, and Low count detections by confidence band:
	// high >= 0.7, medium in [0.5, 0.7), low below 0.5.
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// Summarize computes confidence statistics for a detection set.
func Summarize(dets []Detection) Stats {
	if len(dets) == 0 {
		return Stats{}
	}

	s := Stats{Min: math.Inf(1), Max: math.Inf(-1)}
	var sum float64
	for _, d := range dets {
		sum += d.Confidence
		s.Min = math.Min(s.Min, d.Confidence)
		s.Max = math.Max(s.Max, d.Confidence)

		switch {
		case d.Confidence >= 0.7:
			s.High++
		case d.Confidence >= 0.5:
			s.Medium++
		default:
			s.Low++
		}
	}
	s.Avg = sum / float64(len(dets))
	return s
}
