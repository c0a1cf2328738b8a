package engine

import "errors"

var (
	// ErrDirectoryUnavailable aborts an evaluation without a verdict.
	ErrDirectoryUnavailable = errors.New("engine: directory unavailable")
	// ErrConfigUnavailable aborts an evaluation without a verdict.
	ErrConfigUnavailable = errors.New("engine: config store unavailable")
)
