// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package game

import "math"

// Rules holds the tunable gameplay constants.
type Rules struct {
	// SpawnCost is debited from a body's stock for each AddShip.
	SpawnCost float64
	// MovePercent is the share of units MoveShips sends, rounded down.
	MovePercent int
	// StartingResources is the stock given to each home body at seeding.
	StartingResources float64
	// GrowthRate is the per-tick compound growth applied to home bodies.
	GrowthRate float64
	// MaxStock caps growth. Zero leaves stock uncapped.
	MaxStock float64
}

// DefaultRules returns the standard rule set.
func DefaultRules() Rules {
	return Rules{
		SpawnCost:         10,
		MovePercent:       50,
		StartingResources: 100,
		GrowthRate:        0.002,
	}
}

// Grow returns stock after compounding rate over the given number of ticks,
// capped at maxStock when maxStock is positive.
func Grow(stock, rate float64, ticks int, maxStock float64) float64 {
	if ticks <= 0 || rate == 0 {
		return capStock(stock, maxStock)
	}
	return capStock(stock*math.Pow(1+rate, float64(ticks)), maxStock)
}

func capStock(stock, maxStock float64) float64 {
	if maxStock > 0 && stock > maxStock {
		return maxStock
	}
	return stock
}

// transferCount is the number of units MoveShips sends from a garrison.
func transferCount(units, percent int) int {
	return units * percent / 100
}
