package model

import "errors"

var (
	ErrNotFound = errors.New("not found")

	// ErrDuplicateActivation is returned by Activations.Insert when a record
	// with the same (userId, chakraIndex, day, category) already exists. It is
	// the idempotency signal for the whole engine: callers treat it as the
	// "already credited" outcome, never as a failure.
	ErrDuplicateActivation = errors.New("duplicate activation")
)
