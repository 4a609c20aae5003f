package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrFileNotFound is returned by the default file checker when the path
	// entered for an upload does not exist or is a directory.
	ErrFileNotFound = errors.New("tui: file not found")
	// ErrFormatUnsupported is returned when the output format cannot carry
	// every field of the form, e.g. an urlencoded body for a file upload.
	ErrFormatUnsupported = errors.New("tui: output format unsupported for form")
)
