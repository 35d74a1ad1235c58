package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds every tunable used by the analysis pipeline and the CLIs.
//
// The defaults are calibrated for typical beach webcam footage (wide angle,
// people 10-200px tall). All fields are plain values so a Config can be
// constructed inline in tests without touching the environment.
type Config struct {
	// Model is the detector model path handed to the detector adapter.
	Model string `json:"model" validate:"required"`

	// Confidence is the minimum detector confidence for a box to be kept.
	// Deliberately low by default: distant people on a beach score poorly.
	Confidence float64 `json:"confidence" validate:"gte=0,lte=1"`

	// SliceSize is the tile edge length in pixels used by the tiling engine.
	SliceSize int `json:"slice_size" validate:"gt=0"`

	// SliceOverlap is the fraction of a tile shared with its neighbor.
	SliceOverlap float64 `json:"slice_overlap" validate:"gte=0,lt=1"`

	// LargeImageEdge is the longer-axis size above which tiling kicks in.
	// Smaller images go through a single full-frame pass only.
	LargeImageEdge int `json:"large_image_edge" validate:"gt=0"`

	// IoUTiles is the NMS threshold used when merging per-tile detections.
	IoUTiles float64 `json:"iou_tiles" validate:"gte=0,lte=1"`

	// IoUFinal is the NMS threshold for the final merge of tiled results
	// against the full-frame pass. This is a calibration parameter: too
	// permissive a value double-counts people found by both passes.
	IoUFinal float64 `json:"iou_final" validate:"gte=0,lte=1"`

	// BeachArea is the visible beach area in square meters, used as the
	// reference area for density and busyness scoring.
	BeachArea float64 `json:"beach_area" validate:"gt=0"`

	// MaxPlausibleCount caps the pixel-density estimate. Guards against
	// skin-colored sand or sunset lighting inflating the count.
	MaxPlausibleCount int `json:"max_plausible_count" validate:"gt=0"`

	// CaptureTimeout bounds a single ffmpeg frame grab.
	CaptureTimeout time.Duration `json:"capture_timeout" validate:"gt=0"`
}

// Default returns the configuration matching the calibrated constants used
// across the original BeachWatch scripts.
func Default() Config {
	return Config{
		Model:             "yolov8s.onnx",
		Confidence:        0.15,
		SliceSize:         640,
		SliceOverlap:      0.25,
		LargeImageEdge:    1280,
		IoUTiles:          0.4,
		IoUFinal:          0.4,
		BeachArea:         5000,
		MaxPlausibleCount: 500,
		CaptureTimeout:    30 * time.Second,
	}
}

// Load builds a Config from defaults overridden by the environment.
//
// A .env file in the working directory is read first if present (missing
// files are not an error). Recognized variables:
//
//	CROWDSCAN_MODEL          detector model path
//	CROWDSCAN_CONFIDENCE     confidence floor (float)
//	CROWDSCAN_SLICE_SIZE     tile edge in pixels (int)
//	CROWDSCAN_SLICE_OVERLAP  tile overlap fraction (float)
//	CROWDSCAN_BEACH_AREA     reference area in sqm (float)
//	CROWDSCAN_CAPTURE_TIMEOUT  frame grab timeout (Go duration)
//
// The resulting Config is validated; an invalid override fails loudly
// rather than running with a half-applied configuration.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	if v := os.Getenv("CROWDSCAN_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("CROWDSCAN_CONFIDENCE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Config{}, fmt.Errorf("CROWDSCAN_CONFIDENCE: %w", err)
		}
		cfg.Confidence = f
	}
	if v := os.Getenv("CROWDSCAN_SLICE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("CROWDSCAN_SLICE_SIZE: %w", err)
		}
		cfg.SliceSize = n
	}
	if v := os.Getenv("CROWDSCAN_SLICE_OVERLAP"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Config{}, fmt.Errorf("CROWDSCAN_SLICE_OVERLAP: %w", err)
		}
		cfg.SliceOverlap = f
	}
	if v := os.Getenv("CROWDSCAN_BEACH_AREA"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Config{}, fmt.Errorf("CROWDSCAN_BEACH_AREA: %w", err)
		}
		cfg.BeachArea = f
	}
	if v := os.Getenv("CROWDSCAN_CAPTURE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("CROWDSCAN_CAPTURE_TIMEOUT: %w", err)
		}
		cfg.CaptureTimeout = d
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the Config against its field constraints.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
