// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package starmap

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/samber/oops"
	"github.com/sethvargo/go-retry"
)

// DefaultMaxAttempts is the number of candidates generated for a single id
// before construction gives up.
const DefaultMaxAttempts = 1000

var (
	errCandidateRejected = errors.New("candidate rejected by validator")
	errIDMismatch        = errors.New("generator returned a node with the wrong id")
)

// BuilderOption configures a Builder during construction.
type BuilderOption func(*builderOptions)

type builderOptions struct {
	maxAttempts int
	logger      *slog.Logger
}

// WithMaxAttempts caps the candidates generated per id. Values below 1 are
// rejected by NewBuilder.
func WithMaxAttempts(n int) BuilderOption {
	return func(o *builderOptions) {
		o.maxAttempts = n
	}
}

// WithLogger sets the logger used for construction diagnostics.
func WithLogger(logger *slog.Logger) BuilderOption {
	return func(o *builderOptions) {
		o.logger = logger
	}
}

// Builder places count nodes by rejection sampling: each candidate is tested
// against every accepted node and regenerated under the same id until it fits.
type Builder[N Node] struct {
	count       int
	generator   Generator[N]
	validator   Validator[N]
	cleaner     Cleaner[N]
	maxAttempts int
	logger      *slog.Logger
}

// NewBuilder creates a builder for count nodes. Returns an error if count is
// negative, a callback is nil, or the attempt cap is below 1.
func NewBuilder[N Node](count int, gen Generator[N], val Validator[N], clean Cleaner[N], opts ...BuilderOption) (*Builder[N], error) {
	o := builderOptions{maxAttempts: DefaultMaxAttempts}
	for _, opt := range opts {
		opt(&o)
	}
	switch {
	case count < 0:
		return nil, ErrInvalidArgument("count", "must not be negative")
	case gen == nil:
		return nil, ErrInvalidArgument("generator", "is required")
	case val == nil:
		return nil, ErrInvalidArgument("validator", "is required")
	case clean == nil:
		return nil, ErrInvalidArgument("cleaner", "is required")
	case o.maxAttempts < 1:
		return nil, ErrInvalidArgument("max_attempts", "must be at least 1")
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return &Builder[N]{
		count:       count,
		generator:   gen,
		validator:   val,
		cleaner:     clean,
		maxAttempts: o.maxAttempts,
		logger:      o.logger.With("component", "starmap_builder"),
	}, nil
}

// Build generates the map. On failure every node generated so far has been
// released through the cleaner and no map is returned.
func (b *Builder[N]) Build(ctx context.Context) (*Starmap[N], error) {
	accepted := make([]N, 0, b.count)

	for id := 0; id < b.count; id++ {
		node, attempts, err := b.place(ctx, id, accepted)
		if err != nil {
			b.release(accepted)
			Builds.WithLabelValues(StatusFailed).Inc()
			b.logger.WarnContext(ctx, "starmap construction failed",
				"body_id", id,
				"attempts", attempts,
				"accepted", len(accepted),
				"error", err,
			)
			return nil, ErrConstructionFailure(id, attempts, err)
		}
		accepted = append(accepted, node)
	}

	Builds.WithLabelValues(StatusOK).Inc()
	b.logger.DebugContext(ctx, "starmap constructed", "count", len(accepted))
	return newStarmap(accepted, b.cleaner), nil
}

// place generates candidates for id until one is valid against accepted or
// the attempt cap is reached.
func (b *Builder[N]) place(ctx context.Context, id int, accepted []N) (N, int, error) {
	var (
		placed   N
		attempts int
	)
	// Zero delay between attempts; only the retry count is bounded.
	backoff := retry.WithMaxRetries(uint64(b.maxAttempts-1), retry.BackoffFunc(func() (time.Duration, bool) {
		return 0, false
	}))

	err := retry.Do(ctx, backoff, func(_ context.Context) error {
		attempts++
		candidate, err := b.generator.Generate(id)
		if err != nil {
			return oops.With("body_id", id).Wrapf(err, "generate body %d", id)
		}
		if candidate.ID() != id {
			b.cleaner.Clean(candidate)
			return oops.With("body_id", id).With("got_id", candidate.ID()).Wrap(errIDMismatch)
		}
		if conflict, ok := b.conflict(accepted, candidate); ok {
			b.cleaner.Clean(candidate)
			BuildCandidates.WithLabelValues(ResultRejected).Inc()
			b.logger.DebugContext(ctx, "candidate rejected",
				"body_id", id,
				"attempt", attempts,
				"conflicts_with", conflict,
			)
			return retry.RetryableError(oops.With("conflicts_with", conflict).Wrap(errCandidateRejected))
		}
		BuildCandidates.WithLabelValues(ResultAccepted).Inc()
		placed = candidate
		return nil
	})
	return placed, attempts, err
}

// conflict returns the id of the first accepted node the candidate fails
// validation against.
func (b *Builder[N]) conflict(accepted []N, candidate N) (int, bool) {
	for _, node := range accepted {
		if !b.validator.Valid(node, candidate) {
			return node.ID(), true
		}
	}
	return 0, false
}

func (b *Builder[N]) release(nodes []N) {
	for _, node := range nodes {
		b.cleaner.Clean(node)
	}
}
