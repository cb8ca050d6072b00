// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package ai provides autonomous player strategies.
package ai

import (
	"context"
	"strings"

	"github.com/holomush/starmap/internal/game"
)

// Strategy names accepted by New.
const (
	NameGreedy = "greedy"
	NameIdle   = "idle"
	NameLua    = "lua"
)

// Names lists the strategies New can build.
func Names() []string {
	return []string{NameGreedy, NameIdle, NameLua}
}

// New builds the named strategy. The lua strategy runs source; the others
// ignore it.
func New(name, source string) (game.Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case NameGreedy:
		return Greedy{}, nil
	case NameIdle:
		return Idle{}, nil
	case NameLua:
		return NewLuaStrategy("script", source)
	}
	return nil, ErrUnknownStrategy(name)
}

// Idle never acts.
type Idle struct{}

// Name implements game.Strategy.
func (Idle) Name() string { return NameIdle }

// Decide implements game.Strategy.
func (Idle) Decide(context.Context, game.View) (game.Action, error) {
	return nil, nil
}
