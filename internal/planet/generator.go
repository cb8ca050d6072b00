// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package planet

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/holomush/starmap/internal/game"
	"github.com/holomush/starmap/internal/starmap"
)

// Options controls body placement.
type Options struct {
	// Width and Height bound the placement area, with the origin at a corner.
	Width  float64
	Height float64
	// Seed makes placement reproducible. Zero seeds from the clock.
	Seed uint64
}

// Generator places bodies uniformly at random inside the configured area.
type Generator struct {
	opts Options
	rng  *rand.Rand
}

// NewGenerator creates a generator from opts.
func NewGenerator(opts Options) *Generator {
	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Generator{opts: opts, rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Generate returns a new body with the given id.
func (g *Generator) Generate(id int) (*Body, error) {
	pos := starmap.Vec2{X: g.rng.Float64() * g.opts.Width, Y: g.rng.Float64() * g.opts.Height}
	return New(id, pos), nil
}

// MapOptions describes a whole map of planets.
type MapOptions struct {
	Options
	Count       int
	MinDistance float64
	MaxDistance float64
	MaxAttempts int
	Logger      *slog.Logger
}

// BuildMap builds a starmap of planets whose pairwise distances all fall in
// [MinDistance, MaxDistance]. Discarded planets are destroyed.
func BuildMap(ctx context.Context, opts MapOptions) (*starmap.Starmap[game.Body], error) {
	gen := NewGenerator(opts.Options)
	builderOpts := []starmap.BuilderOption{}
	if opts.MaxAttempts > 0 {
		builderOpts = append(builderOpts, starmap.WithMaxAttempts(opts.MaxAttempts))
	}
	if opts.Logger != nil {
		builderOpts = append(builderOpts, starmap.WithLogger(opts.Logger))
	}

	builder, err := starmap.NewBuilder[game.Body](
		opts.Count,
		starmap.GeneratorFunc[game.Body](func(id int) (game.Body, error) {
			b, err := gen.Generate(id)
			if err != nil {
				return nil, err
			}
			return b, nil
		}),
		starmap.DistanceBounds[game.Body](opts.MinDistance, opts.MaxDistance),
		starmap.DestroyCleaner[game.Body](),
		builderOpts...,
	)
	if err != nil {
		return nil, err
	}
	return builder.Build(ctx)
}
