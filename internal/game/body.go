// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package game

import "github.com/holomush/starmap/internal/starmap"

// Body is the capability GameState needs from a celestial body backend.
type Body interface {
	starmap.Node
	// Properties returns a snapshot of the body's gameplay state.
	Properties() Properties
	SetStock(stock float64)
	SetGrowthRate(rate float64)
	// SetGarrison replaces the owner and unit count together. NoPlayer marks
	// the body unowned.
	SetGarrison(owner PlayerID, units int)
}

// Properties is a value snapshot of one body. It is always derived from the
// body and never stored on its own.
type Properties struct {
	ID         int          `json:"id" yaml:"id"`
	Position   starmap.Vec2 `json:"position" yaml:"position"`
	Stock      float64      `json:"stock" yaml:"stock"`
	GrowthRate float64      `json:"growth_rate" yaml:"growth_rate"`
	Owner      PlayerID     `json:"owner" yaml:"-"`
	Units      int          `json:"units" yaml:"units"`
}

// Owned reports whether any player owns the body.
func (p Properties) Owned() bool {
	return p.Owner != NoPlayer
}

// OwnedBy reports whether id owns the body.
func (p Properties) OwnedBy(id PlayerID) bool {
	return p.Owned() && p.Owner == id
}
