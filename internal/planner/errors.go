package planner

import "errors"

// Sentinel errors matching the engine's error taxonomy. Only missing core
// inputs and missing configuration are fatal; every other dependency
// failure degrades locally and never reaches the caller as an error.
var (
	ErrInvalidInput    = errors.New("planner: invalid input")
	ErrExternalService = errors.New("planner: external service failure")
	ErrConfiguration   = errors.New("planner: configuration error")
	ErrNoSelection     = errors.New("planner: slot yielded no candidates")
)
