package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/beachwatch/crowdscan/internal/busyness"
	"github.com/beachwatch/crowdscan/internal/density"
	"github.com/beachwatch/crowdscan/internal/detection"
)

// ImageSize records frame dimensions in pixels.
type ImageSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Distribution counts detections by confidence band: high >= 0.7,
// medium in [0.5, 0.7), low below 0.5.
type Distribution struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// Detections is the detection section of a result: the person count,
// confidence statistics, and the individual boxes.
type Detections struct {
	TotalPersons           int                   `json:"total_persons"`
	MinConfidence          float64               `json:"min_confidence"`
	MaxConfidence          float64               `json:"max_confidence"`
	AvgConfidence          float64               `json:"avg_confidence"`
	ConfidenceDistribution Distribution          `json:"confidence_distribution"`
	Persons                []detection.Detection `json:"persons"`
}

// Result is the envelope every tool emits, successful or not. Sections
// that do not apply to a given tool are nil and omitted from JSON.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`

	// Method names the estimation path taken: "tiled_detection",
	// "full_frame_detection", or "pixel_density".
	Method string `json:"method,omitempty"`

	ImagePath string     `json:"image_path,omitempty"`
	ImageSize *ImageSize `json:"image_size,omitempty"`

	Model               string  `json:"model,omitempty"`
	ConfidenceThreshold float64 `json:"confidence_threshold,omitempty"`
	SlicingEnabled      *bool   `json:"slicing_enabled,omitempty"`

	Detections   *Detections      `json:"detections,omitempty"`
	PixelDensity *density.Result  `json:"pixel_density,omitempty"`
	Busyness     *busyness.Result `json:"busyness,omitempty"`

	AnnotatedImagePath string `json:"annotated_image_path,omitempty"`

	// Capture-only fields.
	StreamURL string `json:"stream_url,omitempty"`
	FramePath string `json:"frame_path,omitempty"`
	ClockTime string `json:"clock_time,omitempty"`

	Timestamp string `json:"timestamp"`
}

// New returns a successful Result for imagePath, stamped with the
// current UTC time.
func New(imagePath string) *Result {
	return &Result{
		Success:   true,
		ImagePath: imagePath,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// Failure returns a failed Result carrying err's message.
func Failure(imagePath string, err error) *Result {
	return &Result{
		Success:   false,
		Error:     err.Error(),
		ImagePath: imagePath,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// SummarizeDetections builds the detection section from a merged
// detection set.
func SummarizeDetections(dets []detection.Detection) *Detections {
	stats := detection.Summarize(dets)
	return &Detections{
		TotalPersons:  len(dets),
		MinConfidence: stats.Min,
		MaxConfidence: stats.Max,
		AvgConfidence: stats.Avg,
		ConfidenceDistribution: Distribution{
			High:   stats.High,
			Medium: stats.Medium,
			Low:    stats.Low,
		},
		Persons: dets,
	}
}

// Bool returns a pointer to b, for the optional SlicingEnabled field.
func Bool(b bool) *bool { return &b }

// WriteJSON writes the result as indented JSON.
func (r *Result) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteText writes a human-readable summary, one fact per line.
func (r *Result) WriteText(w io.Writer) error {
	if !r.Success {
		_, err := fmt.Fprintf(w, "Error: %s\n", r.Error)
		return err
	}

	if r.ImagePath != "" {
		if r.ImageSize != nil {
			fmt.Fprintf(w, "Image: %s (%dx%d)\n", r.ImagePath, r.ImageSize.Width, r.ImageSize.Height)
		} else {
			fmt.Fprintf(w, "Image: %s\n", r.ImagePath)
		}
	}
	if r.Method != "" {
		fmt.Fprintf(w, "Method: %s\n", r.Method)
	}

	if d := r.Detections; d != nil {
		fmt.Fprintf(w, "People detected: %d\n", d.TotalPersons)
		if d.TotalPersons > 0 {
			fmt.Fprintf(w, "Confidence: min %.2f  avg %.2f  max %.2f\n",
				d.MinConfidence, d.AvgConfidence, d.MaxConfidence)
			fmt.Fprintf(w, "  high %d  medium %d  low %d\n",
				d.ConfidenceDistribution.High,
				d.ConfidenceDistribution.Medium,
				d.ConfidenceDistribution.Low)
		}
	}

	if p := r.PixelDensity; p != nil {
		fmt.Fprintf(w, "Estimated people: %d (confidence %.2f)\n", p.EstimatedCount, p.Confidence)
		fmt.Fprintf(w, "  skin %.2f%%  bright %.2f%%  edges %.2f%%\n",
			p.SkinPercent, p.BrightPercent, p.EdgePercent)
	}

	if b := r.Busyness; b != nil {
		fmt.Fprintf(w, "Busyness: %d/100 (%s), density %.2f per 100 m^2\n",
			b.Score, b.Level, b.Density)
	}

	if r.FramePath != "" {
		fmt.Fprintf(w, "Frame: %s\n", r.FramePath)
	}
	if r.ClockTime != "" {
		fmt.Fprintf(w, "Webcam clock: %s\n", r.ClockTime)
	}
	if r.AnnotatedImagePath != "" {
		fmt.Fprintf(w, "Annotated image: %s\n", r.AnnotatedImagePath)
	}

	_, err := fmt.Fprintf(w, "Captured at: %s\n", r.Timestamp)
	return err
}
