package apperr

import "errors"

// ErrInvalidInput marks input that fails validation. No package in this
// module returns it.
var ErrInvalidInput = errors.New("invalid input")

// ErrRequestFailed marks a transport-level request failure. No package in
// this module returns it: requesters return wrapped transport errors and
// hand non-2xx responses back as content rather than as errors.
var ErrRequestFailed = errors.New("request failed")

// ErrModuleNotFound is returned when a named module does not exist in the registry.
var ErrModuleNotFound = errors.New("module not found")

// ErrNoModulesSelected marks a filter that rejects every registered module.
// No package in this module returns it.
var ErrNoModulesSelected = errors.New("no modules selected")
