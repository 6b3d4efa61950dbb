package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrDiscarded is returned when the user dismisses the whole service
	// form instead of finishing it.
	ErrDiscarded = errors.New("tui: service discarded")
	// ErrInvalidSelection is returned when a driver reports an index outside
	// the offered options.
	ErrInvalidSelection = errors.New("tui: selection out of range")
)
