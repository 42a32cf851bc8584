// Package input runs the process-wide global pointer listener. A single
// background loop subscribes to raw OS pointer events, tracks the last cursor
// position, and forwards primary-button presses as click events only while a
// recording session is active. Sources are either the gohook-backed native
// hook or a deterministic synthetic script for tests and non-cgo builds.
package input
