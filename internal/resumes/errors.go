package resumes

import "errors"

var (
	// ErrNotFound indicates the resume does not exist for the user.
	ErrNotFound = errors.New("resume not found")

	// ErrInvalidInput indicates validation or bad input.
	ErrInvalidInput = errors.New("invalid input")
)
