// Package busyness maps a person count and a visible beach area to a
// bounded 0-100 score and a qualitative crowding level.
package busyness

import "math"

// Level is a qualitative crowding label derived from density.
type Level string

// Crowding levels in increasing order of density.
const (
	Quiet    Level = "quiet"
	Moderate Level = "moderate"
	Busy     Level = "busy"
	VeryBusy Level = "very_busy"
)

// Density breakpoints in people per 100 square meters. Each piecewise
// segment spans 25 score points, so the mapping is continuous at the
// breakpoints.
const (
	quietMax    = 0.5
	moderateMax = 2.0
	busyMax     = 4.0
)

// Result holds a busyness assessment for one frame.
type Result struct {
	// Score is the busyness score in [0, 100].
	Score int `json:"score"`

	// Level is the qualitative label for Score's segment.
	Level Level `json:"level"`

	// Density is people per 100 area-units, rounded to two decimals.
	Density float64 `json:"density"`
}

// Score converts a person count and reference area into a busyness Result.
//
// Density is (personCount / referenceArea) * 100, i.e. people per 100
// square meters for an area given in square meters. The density-to-score
// mapping is piecewise linear, monotonic, and continuous at the 0.5 / 2.0 /
// 4.0 breakpoints; scores above the very_busy segment saturate at 100.
//
// A non-positive referenceArea yields a zero Result rather than dividing
// by zero; validating the area is the caller's job (see config.Config).
func Score(personCount int, referenceArea float64) Result {
	if referenceArea <= 0 {
		return Result{Level: Quiet}
	}

	density := (float64(personCount) / referenceArea) * 100

	var score int
	var level Level
	switch {
	case density <= quietMax:
		score = int(math.Round(density / quietMax * 25))
		level = Quiet
	case density <= moderateMax:
		score = int(math.Round(25 + (density-quietMax)/(moderateMax-quietMax)*25))
		level = Moderate
	case density <= busyMax:
		score = int(math.Round(50 + (density-moderateMax)/(busyMax-moderateMax)*25))
		level = Busy
	default:
		score = int(math.Min(100, math.Round(75+(density-busyMax)/busyMax*25)))
		level = VeryBusy
	}

	return Result{
		Score:   score,
		Level:   level,
		Density: math.Round(density*100) / 100,
	}
}
