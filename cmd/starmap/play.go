// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/holomush/starmap/internal/ai"
	"github.com/holomush/starmap/internal/config"
	"github.com/holomush/starmap/internal/game"
	"github.com/holomush/starmap/internal/input"
	"github.com/holomush/starmap/internal/observability"
	"github.com/holomush/starmap/internal/planet"
	"github.com/holomush/starmap/internal/starmap"
	"github.com/holomush/starmap/pkg/errutil"
)

const shutdownTimeout = 5 * time.Second

// NewPlayCmd creates the play subcommand.
func NewPlayCmd() *cobra.Command {
	var scriptPath string

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Run a game on a freshly generated map",
		Long: `Play builds a map, seeds the configured players on spread-out homes
and runs the simulation for the configured number of ticks. Human players
act through a command script, one command per tick:

  add 3            spawn a ship on body 3
  move 3 -> 5      send ships from body 3 to body 5
  rival: move 1 2  act as the player named rival
  pass             do nothing`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			var entries []input.Entry
			if scriptPath != "" {
				entries, err = readCommands(scriptPath)
				if err != nil {
					return err
				}
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runPlay(ctx, cmd.OutOrStdout(), cfg, entries, logger)
		},
	}

	config.AddMapFlags(cmd.Flags())
	config.AddRulesFlags(cmd.Flags())
	config.AddSimFlags(cmd.Flags())
	cmd.Flags().StringVar(&scriptPath, "script", "", "file of player commands, one per line")

	return cmd
}

func readCommands(path string) ([]input.Entry, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from the operator's command line
	if err != nil {
		return nil, oops.In("play").With("path", path).Wrapf(err, "opening command script")
	}
	defer func() { _ = f.Close() }()

	entries, err := input.ReadScript(f)
	if err != nil {
		return nil, oops.In("play").With("path", path).Wrap(err)
	}
	return entries, nil
}

// playerSpecs resolves every configured player's strategy.
func playerSpecs(players []config.PlayerConfig) ([]game.PlayerSpec, error) {
	specs := make([]game.PlayerSpec, 0, len(players))
	for _, p := range players {
		kind, ok := game.ParseKind(p.Kind)
		if !ok {
			return nil, game.ErrInvalidPlayer(p.Name, "unknown kind "+p.Kind)
		}
		spec := game.PlayerSpec{Name: p.Name, Kind: kind}
		if kind == game.KindAI {
			var source string
			if p.Script != "" {
				data, err := os.ReadFile(p.Script)
				if err != nil {
					return nil, oops.In("play").With("player", p.Name).With("path", p.Script).Wrapf(err, "reading strategy script")
				}
				source = string(data)
			}
			strategy, err := ai.New(p.Strategy, source)
			if err != nil {
				return nil, oops.In("play").With("player", p.Name).Wrap(err)
			}
			spec.Strategy = strategy
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func runPlay(ctx context.Context, out io.Writer, cfg *config.Config, entries []input.Entry, logger *slog.Logger) error {
	interval, err := cfg.Sim.Interval()
	if err != nil {
		return err
	}
	specs, err := playerSpecs(cfg.Players)
	if err != nil {
		return err
	}

	opts := cfg.Map.MapOptions()
	opts.Logger = logger
	m, err := planet.BuildMap(ctx, opts)
	if err != nil {
		return oops.In("play").Wrapf(err, "building map")
	}

	state, err := game.New(m, cfg.Rules.GameRules(), game.WithLogger(logger))
	if err != nil {
		_ = m.Destroy()
		return err
	}
	defer func() {
		if err := state.Close(); err != nil {
			errutil.LogError(logger, "failed to release map", err)
		}
	}()

	if _, err := state.SeedPlayers(ctx, specs); err != nil {
		return err
	}

	feeder := newScriptFeeder(state, logger)
	runner, err := game.NewRunner(state, interval,
		game.WithMaxTicks(cfg.Sim.Ticks),
		game.WithRunnerLogger(logger),
		game.OnTick(func(report game.TickReport) {
			logTick(logger, state, report)
			feeder.observe(report)
		}),
	)
	if err != nil {
		return err
	}

	if cfg.MetricsAddr != "" {
		obsServer := observability.NewServer(cfg.MetricsAddr, runner.Running, starmap.RegisterMetrics, game.RegisterMetrics)
		errCh, err := obsServer.Start()
		if err != nil {
			return oops.In("play").With("addr", cfg.MetricsAddr).Wrapf(err, "starting observability server")
		}
		go func() {
			if err, ok := <-errCh; ok && err != nil {
				logger.Error("observability server failed", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := obsServer.Stop(shutdownCtx); err != nil {
				logger.Warn("error stopping observability server", "error", err)
			}
		}()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		feeder.feed(ctx, runner, entries)
	}()

	logger.Info("game started",
		"players", len(specs),
		"bodies", cfg.Map.Bodies,
		"tick_interval", interval.String(),
		"ticks", cfg.Sim.Ticks,
	)

	runErr := runner.Run(ctx)
	wg.Wait()
	if runErr != nil {
		return runErr
	}

	return printStandings(out, state)
}

// scriptFeeder submits one scripted command per tick. A command without an
// actor is played by the first human on the roster.
type scriptFeeder struct {
	state  *game.GameState
	logger *slog.Logger

	// lastTick is written on the runner goroutine by observe.
	lastTick atomic.Uint64
	ticked   chan struct{}
	human    *game.Player
}

// newScriptFeeder must be called after players are seeded.
func newScriptFeeder(state *game.GameState, logger *slog.Logger) *scriptFeeder {
	f := &scriptFeeder{
		state:  state,
		logger: logger,
		ticked: make(chan struct{}, 1),
	}
	for _, p := range state.Players() {
		if p.Kind == game.KindHuman {
			f.human = p
			break
		}
	}
	return f
}

// observe records a finished tick. It runs on the runner goroutine.
func (f *scriptFeeder) observe(report game.TickReport) {
	f.lastTick.Store(report.Tick)
	select {
	case f.ticked <- struct{}{}:
	default:
	}
}

func (f *scriptFeeder) feed(ctx context.Context, runner *game.Runner, entries []input.Entry) {
	for _, entry := range entries {
		actor := f.human
		if entry.Actor != "" {
			p, err := f.state.PlayerByName(entry.Actor)
			if err != nil {
				f.logger.Warn("skipping command for unknown player", "line", entry.Line, "player", entry.Actor)
				continue
			}
			actor = p
		}
		if actor == nil {
			f.logger.Warn("skipping command with no player to act", "line", entry.Line)
			continue
		}

		if err := runner.Submit(ctx, actor.ID, entry.Action); err != nil {
			if !errors.Is(err, game.ErrRunnerStopped) && ctx.Err() == nil {
				errutil.LogError(f.logger, "submitting command", err)
			}
			return
		}

		// The runner accepted the command on its own goroutine, so every tick
		// finished before that is already recorded. The command is dispatched
		// by a later tick.
		if !f.awaitTickAfter(ctx, runner, f.lastTick.Load()) {
			return
		}
	}
}

// awaitTickAfter blocks until a tick numbered above after has finished. A
// wake-up left over from an earlier tick is ignored. It reports false when
// the runner or ctx stops first.
func (f *scriptFeeder) awaitTickAfter(ctx context.Context, runner *game.Runner, after uint64) bool {
	for f.lastTick.Load() <= after {
		select {
		case <-f.ticked:
		case <-runner.Done():
			return false
		case <-ctx.Done():
			return false
		}
	}
	return true
}

func logTick(logger *slog.Logger, state *game.GameState, report game.TickReport) {
	logger.Debug("tick", "tick", report.Tick, "elapsed", report.Elapsed, "actions", len(report.Results))
	for _, res := range report.Results {
		name := res.Actor.String()
		if p, err := state.Player(res.Actor); err == nil {
			name = p.Name
		}
		if res.Action == nil {
			continue
		}
		if res.Err != nil {
			logger.Info("action rejected",
				"tick", report.Tick,
				"player", name,
				"action", res.Action.String(),
				"error", res.Err.Error(),
			)
			continue
		}
		if res.Outcome.NoOp {
			continue
		}
		logger.Info("action applied",
			"tick", report.Tick,
			"player", name,
			"action", res.Action.String(),
			"target", res.Outcome.Target,
			"units", res.Outcome.Units,
			"captured", res.Outcome.Captured,
		)
	}
}

func printStandings(out io.Writer, state *game.GameState) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "PLAYER\tKIND\tBODIES\tUNITS\tSTOCK\n")
	for _, s := range state.Standings() {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%.1f\n", s.Player.Name, s.Player.Kind, s.Bodies, s.Units, s.Stock)
	}
	if err := w.Flush(); err != nil {
		return oops.In("play").Wrapf(err, "writing standings")
	}

	fmt.Fprintf(out, "ticks: %d\n", state.TickCount())
	if winner, ok := state.Winner(); ok {
		fmt.Fprintf(out, "winner: %s\n", winner.Name)
	}
	return nil
}
