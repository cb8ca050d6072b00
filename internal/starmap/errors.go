// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package starmap

import (
	"github.com/samber/oops"
)

// Error codes for map construction and queries.
const (
	CodeConstructionFailure = "CONSTRUCTION_FAILURE"
	CodeNotFound            = "NOT_FOUND"
	CodeAlreadyDestroyed    = "ALREADY_DESTROYED"
	CodeInvalidArgument     = "INVALID_ARGUMENT"
)

// ErrConstructionFailure reports that body id could not be placed.
func ErrConstructionFailure(id, attempts int, cause error) error {
	return oops.In("starmap").
		Code(CodeConstructionFailure).
		With("body_id", id).
		With("attempts", attempts).
		Wrapf(cause, "failed to place body %d after %d attempts", id, attempts)
}

// ErrNotFound reports a body id outside the constructed range.
func ErrNotFound(id, count int) error {
	return oops.In("starmap").
		Code(CodeNotFound).
		With("body_id", id).
		With("count", count).
		Errorf("body %d not found", id)
}

// ErrAlreadyDestroyed reports use of a map after Destroy.
func ErrAlreadyDestroyed(operation string) error {
	return oops.In("starmap").
		Code(CodeAlreadyDestroyed).
		With("operation", operation).
		Errorf("starmap already destroyed")
}

// ErrInvalidArgument reports a bad caller-supplied argument.
func ErrInvalidArgument(field, message string) error {
	return oops.In("starmap").
		Code(CodeInvalidArgument).
		With("field", field).
		Errorf("%s: %s", field, message)
}

// ErrSpreadInterrupted reports a spread selection abandoned because its
// context ended. cause is the context error.
func ErrSpreadInterrupted(count, k int, cause error) error {
	return oops.In("starmap").
		With("count", count).
		With("k", k).
		Wrapf(cause, "spread selection over %d bodies interrupted", count)
}
