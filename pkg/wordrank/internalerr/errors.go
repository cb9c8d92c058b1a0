package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrSourceUnavailable = errors.New("source unavailable")
	ErrInvalidEncoding   = errors.New("invalid utf-8 in source")
	ErrInvalidInvocation = errors.New("invalid invocation")
	ErrInvalidConfig     = errors.New("invalid configuration")
	ErrNotFound          = errors.New("not found")
)
