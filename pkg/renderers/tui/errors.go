package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNoResources is returned when the console offers nothing to drive.
	ErrNoResources = errors.New("tui: no resources to drive")
)
