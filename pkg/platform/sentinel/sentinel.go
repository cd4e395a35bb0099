package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally wrapped)
// so services can translate them into domain errors.
//
//   - ErrNotFound: no record matches the lookup
//   - ErrConflict: a uniqueness rule was violated, or a lookup that must be unique matched twice
//   - ErrExpired: a stored credential is past its lifetime
//   - ErrUnavailable: the backing service could not be reached
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrExpired     = errors.New("expired")
	ErrUnavailable = errors.New("unavailable")
)
