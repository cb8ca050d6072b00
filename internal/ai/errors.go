// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package ai

import "github.com/samber/oops"

// Error codes for strategy construction and execution.
const (
	CodeScriptFailed    = "SCRIPT_FAILED"
	CodeUnknownStrategy = "UNKNOWN_STRATEGY"
)

// ErrScriptFailed wraps a script load, runtime or result-shape failure.
func ErrScriptFailed(script, operation string, cause error) error {
	return oops.In("ai").
		Code(CodeScriptFailed).
		With("script", script).
		With("operation", operation).
		Wrapf(cause, "script %s: %s failed", script, operation)
}

// ErrBadResult reports a decide() return value of the wrong shape.
func ErrBadResult(script, reason string) error {
	return oops.In("ai").
		Code(CodeScriptFailed).
		With("script", script).
		With("operation", "decode_result").
		Errorf("script %s returned an invalid action: %s", script, reason)
}

// ErrUnknownStrategy reports a strategy name New does not know.
func ErrUnknownStrategy(name string) error {
	return oops.In("ai").
		Code(CodeUnknownStrategy).
		With("strategy", name).
		Errorf("unknown strategy %q", name)
}
