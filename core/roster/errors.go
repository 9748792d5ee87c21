package roster

import "errors"

var (
	// ErrFileNotFound is returned when the schedule file does not exist.
	ErrFileNotFound = errors.New("file not found")
	// ErrUnreadable is returned when the schedule exists but cannot be decoded.
	ErrUnreadable = errors.New("failed to read schedule")
)
