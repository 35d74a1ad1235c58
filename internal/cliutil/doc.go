// Package cliutil holds the helpers shared by the crowd-* commands:
// logger construction, result emission, and the analysis flag set used
// by both crowd-detect and crowd-capture.
package cliutil
