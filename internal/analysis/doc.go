// Package analysis composes the full single-frame estimation flow the
// commands share: load the frame, run the tiled detector pipeline, fall
// back to pixel-density estimation when no detector backend is
// available, attach a busyness score, and build the result envelope.
package analysis
