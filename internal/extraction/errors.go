package extraction

import "errors"

// Domain-specific errors for the extraction package.
var (
	ErrEmptyInput      = errors.New("input text is empty")
	ErrSessionNotFound = errors.New("refinement session not found or expired")
	ErrSessionBusy     = errors.New("a request is already in flight for this session")
)
