// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package game

import (
	"errors"

	"github.com/samber/oops"
)

// Error codes for gameplay and roster failures.
const (
	CodeInsufficientResources = "INSUFFICIENT_RESOURCES"
	CodeNoUnitsAvailable      = "NO_UNITS_AVAILABLE"
	CodeUnknownPlayer         = "UNKNOWN_PLAYER"
	CodeInvalidAction         = "INVALID_ACTION"
	CodeInvalidPlayer         = "INVALID_PLAYER"
	CodeRosterFull            = "ROSTER_FULL"
)

// ErrRunnerStopped is returned by Submit once the runner has exited.
var ErrRunnerStopped = errors.New("runner stopped")

// ErrInsufficientResources reports that a body cannot pay for a spawn.
func ErrInsufficientResources(bodyID int, stock, cost float64) error {
	return oops.In("game").
		Code(CodeInsufficientResources).
		With("body_id", bodyID).
		With("stock", stock).
		With("cost", cost).
		Errorf("body %d has %.2f resources, needs %.2f", bodyID, stock, cost)
}

// ErrNoUnitsAvailable reports that a move has nothing to send.
func ErrNoUnitsAvailable(bodyID int, reason string) error {
	return oops.In("game").
		Code(CodeNoUnitsAvailable).
		With("body_id", bodyID).
		With("reason", reason).
		Errorf("no units available on body %d: %s", bodyID, reason)
}

// ErrUnknownPlayer reports an actor that is not on the roster.
func ErrUnknownPlayer(id PlayerID) error {
	return oops.In("game").
		Code(CodeUnknownPlayer).
		With("player_id", id.String()).
		Errorf("unknown player %s", id)
}

// ErrUnknownPlayerName reports a player name that is not on the roster.
func ErrUnknownPlayerName(name string) error {
	return oops.In("game").
		Code(CodeUnknownPlayer).
		With("player_name", name).
		Errorf("unknown player %q", name)
}

// ErrInvalidAction reports an action that can never succeed as issued.
func ErrInvalidAction(kind ActionKind, reason string) error {
	return oops.In("game").
		Code(CodeInvalidAction).
		With("action", string(kind)).
		Errorf("invalid %s: %s", kind, reason)
}

// ErrInvalidPlayer reports a malformed player specification.
func ErrInvalidPlayer(name, reason string) error {
	return oops.In("game").
		Code(CodeInvalidPlayer).
		With("player_name", name).
		Errorf("invalid player %q: %s", name, reason)
}

// ErrRosterFull reports more players than there are bodies to home them.
func ErrRosterFull(players, bodies int) error {
	return oops.In("game").
		Code(CodeRosterFull).
		With("players", players).
		With("bodies", bodies).
		Errorf("cannot seat %d players on %d bodies", players, bodies)
}

// IsGameplayRejection reports whether err is an expected gameplay outcome
// that a tick absorbs as a no-op.
func IsGameplayRejection(err error) bool {
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return false
	}
	switch oopsErr.Code() {
	case CodeInsufficientResources, CodeNoUnitsAvailable, CodeInvalidAction:
		return true
	}
	return false
}
