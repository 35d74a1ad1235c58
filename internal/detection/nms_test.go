package detection

import (
	"math"
	"testing"
)

func TestIoU(t *testing.T) {
	tests := []struct {
		name string
		a, b Box
		want float64
	}{
		{
			"identical boxes",
			Box{0, 0, 100, 100}, Box{0, 0, 100, 100},
			1.0,
		},
		{
			"disjoint boxes",
			Box{0, 0, 50, 50}, Box{100, 100, 150, 150},
			0.0,
		},
		{
			"half-width overlap",
			Box{0, 0, 100, 100}, Box{50, 0, 150, 100},
			1.0 / 3.0,
		},
		{
			"touching edges",
			Box{0, 0, 50, 50}, Box{50, 0, 100, 50},
			0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IoU(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-3 {
				t.Errorf("IoU: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIoU_DegenerateBoxes(t *testing.T) {
	zero := Box{10, 10, 10, 10}
	if got := IoU(zero, zero); got != 0 {
		t.Errorf("IoU of zero-area boxes: got %v, want 0", got)
	}

	inverted := Box{50, 50, 10, 10}
	if got := IoU(inverted, Box{0, 0, 100, 100}); got != 0 {
		t.Errorf("IoU with inverted box: got %v, want 0", got)
	}
}

func TestMerge_Empty(t *testing.T) {
	if got := Merge(nil, 0.4); len(got) != 0 {
		t.Errorf("Merge(nil): got %d detections, want 0", len(got))
	}
	if got := Merge([]Detection{}, 0.4); len(got) != 0 {
		t.Errorf("Merge(empty): got %d detections, want 0", len(got))
	}
}

func TestMerge_SuppressesLowerConfidence(t *testing.T) {
	dets := []Detection{
		{Box: Box{0, 0, 100, 100}, Confidence: 0.4, Class: PersonClass},
		{Box: Box{5, 5, 105, 105}, Confidence: 0.9, Class: PersonClass},
	}

	merged := Merge(dets, 0.4)
	if len(merged) != 1 {
		t.Fatalf("got %d detections, want 1", len(merged))
	}
	if merged[0].Confidence != 0.9 {
		t.Errorf("survivor confidence: got %v, want 0.9", merged[0].Confidence)
	}
}

func TestMerge_KeepsNonOverlapping(t *testing.T) {
	dets := []Detection{
		{Box: Box{0, 0, 50, 50}, Confidence: 0.9, Class: PersonClass},
		{Box: Box{200, 200, 250, 250}, Confidence: 0.3, Class: PersonClass},
	}

	merged := Merge(dets, 0.4)
	if len(merged) != 2 {
		t.Fatalf("got %d detections, want 2", len(merged))
	}
}

func TestMerge_FourTileDuplicates(t *testing.T) {
	// Four detections of the same person found in four adjacent overlapping
	// tiles, each box shifted a few pixels (pairwise IoU around 0.8).
	dets := []Detection{
		{Box: Box{1000, 1000, 1050, 1050}, Confidence: 0.30, Class: PersonClass},
		{Box: Box{1003, 1000, 1053, 1050}, Confidence: 0.90, Class: PersonClass},
		{Box: Box{1000, 1003, 1050, 1053}, Confidence: 0.50, Class: PersonClass},
		{Box: Box{1003, 1003, 1053, 1053}, Confidence: 0.70, Class: PersonClass},
	}

	merged := Merge(dets, 0.4)
	if len(merged) != 1 {
		t.Fatalf("got %d detections, want 1", len(merged))
	}
	if merged[0].Confidence != 0.90 {
		t.Errorf("survivor confidence: got %v, want the maximum 0.90", merged[0].Confidence)
	}
}

func TestMerge_Idempotent(t *testing.T) {
	dets := []Detection{
		{Box: Box{0, 0, 100, 100}, Confidence: 0.8, Class: PersonClass},
		{Box: Box{10, 10, 110, 110}, Confidence: 0.6, Class: PersonClass},
		{Box: Box{300, 300, 350, 350}, Confidence: 0.5, Class: PersonClass},
		{Box: Box{500, 0, 560, 60}, Confidence: 0.2, Class: PersonClass},
	}

	once := Merge(dets, 0.4)
	twice := Merge(once, 0.4)

	if len(once) != len(twice) {
		t.Fatalf("second merge changed count: %d -> %d", len(once), len(twice))
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Errorf("detection %d changed on second merge: %+v -> %+v", i, once[i], twice[i])
		}
	}

	// And no surviving pair overlaps above the threshold.
	for i := 0; i < len(once); i++ {
		for j := i + 1; j < len(once); j++ {
			if iou := IoU(once[i].Box, once[j].Box); iou > 0.4 {
				t.Errorf("survivors %d and %d overlap with IoU %v", i, j, iou)
			}
		}
	}
}

func TestMerge_TiesKeepInputOrder(t *testing.T) {
	first := Detection{Box: Box{0, 0, 100, 100}, Confidence: 0.5, Class: PersonClass}
	second := Detection{Box: Box{2, 2, 102, 102}, Confidence: 0.5, Class: PersonClass}

	merged := Merge([]Detection{first, second}, 0.4)
	if len(merged) != 1 {
		t.Fatalf("got %d detections, want 1", len(merged))
	}
	if merged[0].Box != first.Box {
		t.Errorf("tie broken against input order: kept %+v, want %+v", merged[0].Box, first.Box)
	}
}

func TestMerge_ResultSortedByConfidence(t *testing.T) {
	dets := []Detection{
		{Box: Box{0, 0, 50, 50}, Confidence: 0.2, Class: PersonClass},
		{Box: Box{100, 100, 150, 150}, Confidence: 0.9, Class: PersonClass},
		{Box: Box{200, 200, 250, 250}, Confidence: 0.5, Class: PersonClass},
	}

	merged := Merge(dets, 0.4)
	for i := 1; i < len(merged); i++ {
		if merged[i].Confidence > merged[i-1].Confidence {
			t.Errorf("result not sorted descending at index %d", i)
		}
	}
}
