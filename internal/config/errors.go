package config

import "errors"

// Errors returned by configuration loading and validation.
var (
	// ErrInvalidShape indicates an unrecognized cursor shape name.
	ErrInvalidShape = errors.New("invalid cursor shape")

	// ErrInvalidPercentage indicates a cell percentage outside (0, 1].
	ErrInvalidPercentage = errors.New("cell percentage out of range")

	// ErrInvalidFontSize indicates a non-positive font size.
	ErrInvalidFontSize = errors.New("font size must be positive")

	// ErrInvalidCellSize indicates a non-positive cell dimension.
	ErrInvalidCellSize = errors.New("cell dimensions must be positive")

	// ErrScript indicates the options script failed to run.
	ErrScript = errors.New("options script failed")
)
