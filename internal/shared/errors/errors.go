package errors

import "errors"

// Domain errors
var (
	// Probe errors
	ErrProbeTimeout      = errors.New("probe timed out")
	ErrConnectionRefused = errors.New("connection refused")
	ErrConnection        = errors.New("connection error")

	// Vulnerability lookup errors
	ErrLookup          = errors.New("vulnerability lookup failed")
	ErrUnknownSeverity = errors.New("unrecognized cvss severity")

	// Validation errors
	ErrEmptyTarget = errors.New("target cannot be empty")

	// Report errors
	ErrNoResults = errors.New("no results file found")
)
