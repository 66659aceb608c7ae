package service

import "errors"

// Recoverable, user-facing conditions. Handlers map these to the matching
// problem responses; none are fatal to the process.
var (
	// ErrProfileMissing is returned when daily sleep is recorded before a
	// sleep profile was saved for the user.
	ErrProfileMissing = errors.New("sleep profile not found")

	// ErrInsufficientData is returned when analytics are requested with
	// zero trend entries in the window, or with no profile set.
	ErrInsufficientData = errors.New("not enough sleep data in the requested window")

	// ErrMalformedInput is returned for out-of-range or unparsable
	// request fields. Values are rejected, never clamped.
	ErrMalformedInput = errors.New("malformed input")

	// ErrStorageUnavailable is returned when the persistence adapter
	// fails. It aborts only the specific call; in-memory state held by
	// the facade is never corrupted.
	ErrStorageUnavailable = errors.New("sleep data store unavailable")
)
