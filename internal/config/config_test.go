package config

import (
	"testing"
	"time"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config failed validation: %v", err)
	}

	if cfg.SliceSize != 640 {
		t.Errorf("SliceSize: got %d, want 640", cfg.SliceSize)
	}
	if cfg.SliceOverlap != 0.25 {
		t.Errorf("SliceOverlap: got %v, want 0.25", cfg.SliceOverlap)
	}
	if cfg.Confidence != 0.15 {
		t.Errorf("Confidence: got %v, want 0.15", cfg.Confidence)
	}
	if cfg.BeachArea != 5000 {
		t.Errorf("BeachArea: got %v, want 5000", cfg.BeachArea)
	}
}

func TestValidate_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"overlap of 1 leaves zero stride", func(c *Config) { c.SliceOverlap = 1.0 }},
		{"negative overlap", func(c *Config) { c.SliceOverlap = -0.1 }},
		{"zero slice size", func(c *Config) { c.SliceSize = 0 }},
		{"confidence above 1", func(c *Config) { c.Confidence = 1.5 }},
		{"zero beach area", func(c *Config) { c.BeachArea = 0 }},
		{"empty model", func(c *Config) { c.Model = "" }},
		{"zero capture timeout", func(c *Config) { c.CaptureTimeout = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CROWDSCAN_MODEL", "yolov8m.onnx")
	t.Setenv("CROWDSCAN_CONFIDENCE", "0.3")
	t.Setenv("CROWDSCAN_BEACH_AREA", "7500")
	t.Setenv("CROWDSCAN_CAPTURE_TIMEOUT", "45s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Model != "yolov8m.onnx" {
		t.Errorf("Model: got %q, want yolov8m.onnx", cfg.Model)
	}
	if cfg.Confidence != 0.3 {
		t.Errorf("Confidence: got %v, want 0.3", cfg.Confidence)
	}
	if cfg.BeachArea != 7500 {
		t.Errorf("BeachArea: got %v, want 7500", cfg.BeachArea)
	}
	if cfg.CaptureTimeout != 45*time.Second {
		t.Errorf("CaptureTimeout: got %v, want 45s", cfg.CaptureTimeout)
	}
}

func TestLoad_InvalidOverrideFails(t *testing.T) {
	t.Setenv("CROWDSCAN_SLICE_OVERLAP", "1.5")

	if _, err := Load(); err == nil {
		t.Error("expected error for out-of-range overlap, got nil")
	}
}
