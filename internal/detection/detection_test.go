package detection

import (
	"math"
	"testing"
)

func TestBoxArea(t *testing.T) {
	if got := (Box{0, 0, 50, 50}).Area(); got != 2500 {
		t.Errorf("Area: got %v, want 2500", got)
	}
	if got := (Box{10, 10, 10, 50}).Area(); got != 0 {
		t.Errorf("zero-width Area: got %v, want 0", got)
	}
	if got := (Box{50, 50, 10, 10}).Area(); got != 0 {
		t.Errorf("inverted Area: got %v, want 0", got)
	}
}

func TestBoxTranslate(t *testing.T) {
	got := Box{10, 20, 60, 120}.Translate(480, 800)
	want := Box{490, 820, 540, 920}
	if got != want {
		t.Errorf("Translate: got %+v, want %+v", got, want)
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	if s.Min != 0 || s.Max != 0 || s.Avg != 0 {
		t.Errorf("empty stats: got %+v, want zeros", s)
	}
}

func TestSummarize(t *testing.T) {
	dets := []Detection{
		{Confidence: 0.9},
		{Confidence: 0.6},
		{Confidence: 0.3},
	}

	s := Summarize(dets)
	if s.Min != 0.3 {
		t.Errorf("Min: got %v, want 0.3", s.Min)
	}
	if s.Max != 0.9 {
		t.Errorf("Max: got %v, want 0.9", s.Max)
	}
	if math.Abs(s.Avg-0.6) > 1e-9 {
		t.Errorf("Avg: got %v, want 0.6", s.Avg)
	}
	if s.High != 1 || s.Medium != 1 || s.Low != 1 {
		t.Errorf("distribution: got high=%d medium=%d low=%d, want 1/1/1", s.High, s.Medium, s.Low)
	}
}

func TestSortByConfidence_Stable(t *testing.T) {
	dets := []Detection{
		{Box: Box{0, 0, 1, 1}, Confidence: 0.5},
		{Box: Box{1, 1, 2, 2}, Confidence: 0.5},
		{Box: Box{2, 2, 3, 3}, Confidence: 0.9},
	}

	SortByConfidence(dets)
	if dets[0].Confidence != 0.9 {
		t.Errorf("first element: got confidence %v, want 0.9", dets[0].Confidence)
	}
	if dets[1].Box.X1 != 0 || dets[2].Box.X1 != 1 {
		t.Error("equal confidences did not keep input order")
	}
}
