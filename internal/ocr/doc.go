// Package ocr reads the timestamp overlay that beach webcams burn into
// their frames.
//
// Stream metadata rarely carries the camera's local time, but the
// overlay clock does, and knowing when a frame was actually rendered
// matters when correlating crowd counts across capture runs. The reader
// crops the overlay region, upscales it, and runs Tesseract (via
// gosseract/v2) restricted to digits and colons.
//
// # Prerequisites
//
// Tesseract must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-eng
//   - macOS: brew install tesseract
//
// Builds without cgo get a ReadClock that returns ErrUnavailable; the
// capture tool treats that as "no clock", not a failure.
package ocr
