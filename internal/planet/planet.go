// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package planet is an in-memory celestial body backend with no rendering.
package planet

import (
	"github.com/holomush/starmap/internal/game"
	"github.com/holomush/starmap/internal/starmap"
)

// Body is a headless planet.
type Body struct {
	id        int
	pos       starmap.Vec2
	stock     float64
	rate      float64
	owner     game.PlayerID
	units     int
	destroyed bool
}

// New creates an unowned body with no resources.
func New(id int, pos starmap.Vec2) *Body {
	return &Body{id: id, pos: pos}
}

// ID returns the identifier assigned at construction.
func (b *Body) ID() int { return b.id }

// Position returns the body's fixed location on the map.
func (b *Body) Position() starmap.Vec2 { return b.pos }

// Properties returns a snapshot of the body.
func (b *Body) Properties() game.Properties {
	return game.Properties{
		ID:         b.id,
		Position:   b.pos,
		Stock:      b.stock,
		GrowthRate: b.rate,
		Owner:      b.owner,
		Units:      b.units,
	}
}

// SetStock replaces the resource stock.
func (b *Body) SetStock(stock float64) { b.stock = stock }

// SetGrowthRate replaces the per-tick growth rate.
func (b *Body) SetGrowthRate(rate float64) { b.rate = rate }

// SetGarrison sets owner and units. A negative count is stored as zero.
func (b *Body) SetGarrison(owner game.PlayerID, units int) {
	b.owner = owner
	b.units = max(units, 0)
}

// Destroy marks the body released.
func (b *Body) Destroy() {
	b.destroyed = true
}

// Destroyed reports whether Destroy has been called.
func (b *Body) Destroyed() bool {
	return b.destroyed
}

var (
	_ game.Body         = (*Body)(nil)
	_ starmap.Destroyer = (*Body)(nil)
)
