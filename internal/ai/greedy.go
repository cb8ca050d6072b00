// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package ai

import (
	"context"

	"github.com/holomush/starmap/internal/game"
)

// Greedy spawns whenever it can afford to and otherwise pushes its largest
// garrison toward the closest body it does not own.
type Greedy struct{}

// Name implements game.Strategy.
func (Greedy) Name() string { return NameGreedy }

// Decide implements game.Strategy.
func (Greedy) Decide(_ context.Context, view game.View) (game.Action, error) {
	mine := view.Mine()
	if len(mine) == 0 {
		return nil, nil
	}

	richest := mine[0]
	for _, b := range mine[1:] {
		if b.Stock > richest.Stock {
			richest = b
		}
	}
	if richest.Stock >= view.SpawnCost {
		return game.AddShip{Target: richest.ID}, nil
	}

	strongest := mine[0]
	for _, b := range mine[1:] {
		if b.Units > strongest.Units {
			strongest = b
		}
	}
	if strongest.Units*view.MovePercent/100 < 1 {
		return nil, nil
	}

	target, ok := closestTarget(strongest, view.Others())
	if !ok {
		return nil, nil
	}
	return game.MoveShips{From: strongest.ID, To: target.ID}, nil
}

// closestTarget orders candidates by distance from origin, then by garrison
// size, then by id.
func closestTarget(origin game.Properties, candidates []game.Properties) (game.Properties, bool) {
	if len(candidates) == 0 {
		return game.Properties{}, false
	}
	best := candidates[0]
	bestDist := origin.Position.DistanceTo(best.Position)
	for _, c := range candidates[1:] {
		d := origin.Position.DistanceTo(c.Position)
		if d < bestDist || (d == bestDist && c.Units < best.Units) {
			best, bestDist = c, d
		}
	}
	return best, true
}
