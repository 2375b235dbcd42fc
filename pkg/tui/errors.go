package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNotEditable is returned when the template has a fatal marker
	// problem and its blocks cannot be trusted.
	ErrNotEditable = errors.New("tui: template is not editable")
)
