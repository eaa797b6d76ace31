package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNoController is returned when the runner has no wizard to drive.
	ErrNoController = errors.New("tui: wizard controller is required")
)
