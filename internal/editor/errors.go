package editor

import "errors"

// Errors returned by editor state access.
var (
	// ErrGridBusy indicates the grid lock could not be acquired for a read.
	// The frame cannot be rendered; the host decides whether to retry.
	ErrGridBusy = errors.New("grid is busy")

	// ErrCellOutOfRange indicates a cell coordinate outside the grid.
	ErrCellOutOfRange = errors.New("cell out of range")
)
