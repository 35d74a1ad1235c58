// Package detection implements the tiled person-detection pipeline shared
// by all crowd analysis tools.
//
// The pipeline composes three pieces:
//
//   - Slicing: large frames are partitioned into overlapping fixed-size
//     tiles so that distant people occupy enough of the detector's input to
//     be found (a simplified Slicing-Aided Hyper Inference scheme).
//   - Detection: each tile, and always the full frame, is run through a
//     Detector adapter that returns class-filtered bounding boxes with
//     confidence scores. Tile-local boxes are translated back into
//     original-frame coordinates.
//   - Merging: greedy non-maximum suppression deduplicates boxes across
//     tiles and across the tile/full-frame passes.
//
// The Detector interface keeps the pretrained-model dependency swappable:
// production uses the DNN adapter in internal/detector, tests use stubs.
//
// # Coordinate System
//
// Boxes use float64 pixel coordinates with origin at the frame's top-left
// corner, (X1, Y1) top-left inclusive and (X2, Y2) bottom-right.
//
// # Determinism
//
// Merge breaks confidence ties by input order, and Analyze emits results
// sorted by confidence descending, so identical inputs always produce
// identical output ordering.
package detection
