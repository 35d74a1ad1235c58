// Package density estimates crowd size from pixel statistics alone.
//
// This is the fallback path for deployments without a trained detector:
// instead of bounding boxes it measures how much of the frame looks like
// people (skin tones), beach gear (bright saturated colors), and activity
// (edge texture), and converts the weighted combination into a person
// count via a calibration constant.
//
// The estimate is coarse. Results carry the "pixel_density" method tag and
// a bucketed confidence so downstream consumers never mistake them for
// detector output.
//
// # Robustness
//
// Estimate never fails: degenerate frames (all black, all white,
// skin-colored sand at sunset) produce clamped estimates inside
// [0, maxPlausibleCount] rather than errors or unbounded counts.
package density
