// Package imaging provides frame loading, edge detection, and annotation
// rendering for the crowd analysis tools.
//
// This package owns the pixel-level primitives shared by the detector
// pipeline and the pixel-density fallback: decoding webcam frames from disk
// (with an optional cache for repeated analyses of the same capture), a
// Canny-style edge mask used as the fallback's texture signal, and rendering
// of annotated result images with detection boxes and a count overlay.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with origin at the top-left corner:
// X increases rightward, Y increases downward. Edge masks returned by
// EdgeMask always have their origin at (0, 0) regardless of the source
// image's bounds.
//
// # Error Handling
//
// Load failures are wrapped in the sentinel errors ErrImageNotFound and
// ErrImageDecode so CLI boundaries can translate them into structured
// failure results with errors.Is rather than string matching.
//
// # Thread Safety
//
// FrameCache is safe for concurrent use. The remaining functions are
// stateless and can run concurrently on different images.
package imaging
