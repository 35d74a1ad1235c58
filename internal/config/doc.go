// Package config holds every tunable of the analysis pipeline in one
// explicit struct: detector model and confidence floor, tiling geometry,
// merge thresholds, the reference beach area, and capture limits.
//
// Defaults are calibrated for typical beach webcam footage and can be
// overridden per run through CROWDSCAN_* environment variables (a .env
// file in the working directory is honored) or per field by the CLI
// flags. Every Config is validated before use; an out-of-range override
// fails loudly rather than running with a half-applied configuration.
package config
