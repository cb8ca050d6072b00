// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package game

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/holomush/starmap/internal/starmap"
	"github.com/holomush/starmap/pkg/errutil"
)

var defaultTracer = otel.Tracer("starmap/game")

// Outcome describes what a successful dispatch changed.
type Outcome struct {
	Kind ActionKind
	// NoOp is set when the action was absorbed without effect.
	NoOp bool
	// Target is the body that received units.
	Target int
	// Units is the number of units that arrived at Target.
	Units int
	// Captured is set when the arrival took the body from another player.
	Captured bool
	// Neutralized is set when the arrival left the body unowned.
	Neutralized bool
}

// Source says where a dispatched action came from during a tick.
type Source string

// Action sources.
const (
	SourceQueued Source = "queued"
	SourceAI     Source = "ai"
)

// ActionResult records one action processed during a tick.
type ActionResult struct {
	Actor   PlayerID
	Source  Source
	Action  Action
	Outcome Outcome
	Err     error
}

// TickReport summarizes one call to Tick.
type TickReport struct {
	Tick    uint64
	Elapsed time.Duration
	Results []ActionResult
}

type queuedAction struct {
	actor  PlayerID
	action Action
}

// Option configures a GameState during construction.
type Option func(*GameState)

// WithLogger sets the logger for gameplay diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *GameState) {
		s.logger = logger
	}
}

// WithTracer sets the tracer used for dispatch spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(s *GameState) {
		s.tracer = tracer
	}
}

// GameState owns a Starmap and the player roster and applies every action
// against them. It is not safe for concurrent use; see Runner.
type GameState struct {
	starmap *starmap.Starmap[Body]
	rules   Rules
	players []*Player
	byID    map[PlayerID]int
	current int
	queue   []queuedAction
	tick    uint64
	logger  *slog.Logger
	tracer  trace.Tracer
}

// New creates a GameState that takes ownership of m.
func New(m *starmap.Starmap[Body], rules Rules, opts ...Option) (*GameState, error) {
	if m == nil {
		return nil, starmap.ErrInvalidArgument("starmap", "is required")
	}
	if m.Destroyed() {
		return nil, starmap.ErrAlreadyDestroyed("new_game")
	}
	s := &GameState{
		starmap: m,
		rules:   rules,
		byID:    make(map[PlayerID]int),
		current: -1,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.tracer == nil {
		s.tracer = defaultTracer
	}
	return s, nil
}

// Starmap returns the owned map for read-only queries.
func (s *GameState) Starmap() *starmap.Starmap[Body] {
	return s.starmap
}

// Rules returns the rule set in force.
func (s *GameState) Rules() Rules {
	return s.rules
}

// TickCount returns the number of completed ticks.
func (s *GameState) TickCount() uint64 {
	return s.tick
}

// SeedPlayers places one player per spec on maximally spread home bodies.
// Each home gets the starting stock and growth rate, is owned by its player,
// and holds one free unit. Seeding happens once per game.
func (s *GameState) SeedPlayers(ctx context.Context, specs []PlayerSpec) ([]*Player, error) {
	if s.starmap.Destroyed() {
		return nil, starmap.ErrAlreadyDestroyed("seed_players")
	}
	if len(s.players) > 0 {
		return nil, ErrInvalidAction("seed", "players already seeded")
	}
	if len(specs) > s.starmap.Len() {
		return nil, ErrRosterFull(len(specs), s.starmap.Len())
	}
	seen := make(map[string]bool, len(specs))
	for _, spec := range specs {
		switch {
		case spec.Name == "":
			return nil, ErrInvalidPlayer(spec.Name, "name is required")
		case seen[spec.Name]:
			return nil, ErrInvalidPlayer(spec.Name, "duplicate name")
		case spec.Kind != KindHuman && spec.Kind != KindAI:
			return nil, ErrInvalidPlayer(spec.Name, "unknown kind "+string(spec.Kind))
		case spec.Kind == KindAI && spec.Strategy == nil:
			return nil, ErrInvalidPlayer(spec.Name, "AI players need a strategy")
		}
		seen[spec.Name] = true
	}

	homes, err := s.starmap.SelectSpreadContext(ctx, len(specs))
	if err != nil {
		return nil, err
	}

	players := make([]*Player, 0, len(specs))
	for i, spec := range specs {
		body, err := s.starmap.Body(homes[i])
		if err != nil {
			return nil, err
		}
		p := &Player{
			ID:       NewPlayerID(),
			Name:     spec.Name,
			Kind:     spec.Kind,
			Home:     homes[i],
			Flagship: newULID(),
			Strategy: spec.Strategy,
		}
		body.SetStock(s.rules.StartingResources)
		body.SetGrowthRate(s.rules.GrowthRate)
		body.SetGarrison(p.ID, 1)

		s.byID[p.ID] = len(s.players)
		s.players = append(s.players, p)
		players = append(players, p)

		s.logger.InfoContext(ctx, "player seeded",
			"player", p.Name,
			"player_id", p.ID.String(),
			"kind", string(p.Kind),
			"home", p.Home,
		)
	}
	if len(s.players) > 0 {
		s.current = 0
	}
	return players, nil
}

// Players returns the roster in seeding order.
func (s *GameState) Players() []*Player {
	out := make([]*Player, len(s.players))
	copy(out, s.players)
	return out
}

// Player returns the player with the given id.
func (s *GameState) Player(id PlayerID) (*Player, error) {
	idx, ok := s.byID[id]
	if !ok {
		return nil, ErrUnknownPlayer(id)
	}
	return s.players[idx], nil
}

// PlayerByName returns the player with the given name.
func (s *GameState) PlayerByName(name string) (*Player, error) {
	for _, p := range s.players {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, ErrUnknownPlayerName(name)
}

// CurrentPlayer returns the player whose action was dispatched last, or the
// first player before any dispatch. It reports false only with no players.
func (s *GameState) CurrentPlayer() (*Player, bool) {
	if s.current < 0 {
		return nil, false
	}
	return s.players[s.current], true
}

// SetCurrentPlayer makes id the current player.
func (s *GameState) SetCurrentPlayer(id PlayerID) error {
	idx, ok := s.byID[id]
	if !ok {
		return ErrUnknownPlayer(id)
	}
	s.current = idx
	return nil
}

// Dispatch validates action and applies it on behalf of actor. Gameplay
// rejections leave the map unchanged.
func (s *GameState) Dispatch(ctx context.Context, actor PlayerID, action Action) (outcome Outcome, err error) {
	kind := KindUnrecognized
	if action != nil {
		kind = action.Kind()
	}

	ctx, span := s.tracer.Start(ctx, "game.dispatch",
		trace.WithAttributes(
			attribute.String("action.kind", string(kind)),
			attribute.String("player.id", actor.String()),
		),
	)
	defer func() {
		result := resultOf(outcome, err)
		recordAction(kind, result)
		span.SetAttributes(attribute.String("action.result", result))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			s.logger.DebugContext(ctx, "action rejected",
				append(errutil.Attrs(err), "action", string(kind), "player_id", actor.String())...)
		}
		span.End()
	}()

	if err = s.SetCurrentPlayer(actor); err != nil {
		return Outcome{Kind: kind}, err
	}

	switch a := action.(type) {
	case AddShip:
		return s.addShip(actor, a)
	case MoveShips:
		return s.moveShips(actor, a)
	default:
		return Outcome{Kind: kind, NoOp: true}, nil
	}
}

func (s *GameState) addShip(actor PlayerID, a AddShip) (Outcome, error) {
	body, err := s.starmap.Body(a.Target)
	if err != nil {
		return Outcome{Kind: KindAddShip}, err
	}
	props := body.Properties()
	if props.Owned() && !props.OwnedBy(actor) {
		return Outcome{Kind: KindAddShip}, ErrInvalidAction(KindAddShip, "target body is owned by another player")
	}
	if props.Stock < s.rules.SpawnCost {
		return Outcome{Kind: KindAddShip}, ErrInsufficientResources(a.Target, props.Stock, s.rules.SpawnCost)
	}
	body.SetStock(props.Stock - s.rules.SpawnCost)
	return s.arrive(KindAddShip, body, actor, 1), nil
}

func (s *GameState) moveShips(actor PlayerID, a MoveShips) (Outcome, error) {
	from, err := s.starmap.Body(a.From)
	if err != nil {
		return Outcome{Kind: KindMoveShips}, err
	}
	to, err := s.starmap.Body(a.To)
	if err != nil {
		return Outcome{Kind: KindMoveShips}, err
	}
	if a.From == a.To {
		return Outcome{Kind: KindMoveShips}, ErrInvalidAction(KindMoveShips, "source and destination are the same body")
	}

	props := from.Properties()
	switch {
	case !props.OwnedBy(actor):
		return Outcome{Kind: KindMoveShips}, ErrNoUnitsAvailable(a.From, "body not owned by player")
	case props.Units == 0:
		return Outcome{Kind: KindMoveShips}, ErrNoUnitsAvailable(a.From, "garrison is empty")
	}
	n := transferCount(props.Units, s.rules.MovePercent)
	if n == 0 {
		return Outcome{Kind: KindMoveShips}, ErrNoUnitsAvailable(a.From, "garrison too small to split")
	}

	from.SetGarrison(actor, props.Units-n)
	return s.arrive(KindMoveShips, to, actor, n), nil
}

// arrive lands n of actor's units on body. Units fight an enemy garrison one
// for one; a surplus takes the body and an exact match leaves it unowned.
func (s *GameState) arrive(kind ActionKind, body Body, actor PlayerID, n int) Outcome {
	out := Outcome{Kind: kind, Target: body.ID(), Units: n}
	props := body.Properties()
	switch {
	case !props.Owned() || props.Owner == actor:
		body.SetGarrison(actor, props.Units+n)
	case n > props.Units:
		body.SetGarrison(actor, n-props.Units)
		out.Captured = true
	case n == props.Units:
		body.SetGarrison(NoPlayer, 0)
		out.Neutralized = true
	default:
		body.SetGarrison(props.Owner, props.Units-n)
	}
	return out
}

// Enqueue schedules an action for the next tick.
func (s *GameState) Enqueue(actor PlayerID, action Action) {
	s.queue = append(s.queue, queuedAction{actor: actor, action: action})
}

// Pending returns the number of queued actions.
func (s *GameState) Pending() int {
	return len(s.queue)
}

// Tick advances the simulation one step. Every body grows first, then queued
// actions run in arrival order, then each AI player in roster order may
// dispatch one action. Failed actions are reported, never fatal; Tick only
// fails when the map is gone.
func (s *GameState) Tick(ctx context.Context, elapsed time.Duration) (TickReport, error) {
	start := time.Now()
	bodies, err := s.starmap.Bodies()
	if err != nil {
		return TickReport{}, err
	}
	s.tick++
	report := TickReport{Tick: s.tick, Elapsed: elapsed}

	for _, body := range bodies {
		props := body.Properties()
		body.SetStock(Grow(props.Stock, props.GrowthRate, 1, s.rules.MaxStock))
	}

	queued := s.queue
	s.queue = nil
	for _, q := range queued {
		outcome, err := s.Dispatch(ctx, q.actor, q.action)
		report.Results = append(report.Results, ActionResult{
			Actor: q.actor, Source: SourceQueued, Action: q.action, Outcome: outcome, Err: err,
		})
	}

	for _, p := range s.players {
		if !p.IsAI() || p.Strategy == nil {
			continue
		}
		action, err := p.Strategy.Decide(ctx, s.view(p.ID))
		if err != nil {
			errutil.LogError(s.logger, "strategy failed", err)
			report.Results = append(report.Results, ActionResult{Actor: p.ID, Source: SourceAI, Err: err})
			continue
		}
		if action == nil {
			continue
		}
		outcome, err := s.Dispatch(ctx, p.ID, action)
		report.Results = append(report.Results, ActionResult{
			Actor: p.ID, Source: SourceAI, Action: action, Outcome: outcome, Err: err,
		})
	}

	recordTick(time.Since(start))
	return report, nil
}

// View returns what the given player sees at the current tick.
func (s *GameState) View(id PlayerID) (View, error) {
	if _, ok := s.byID[id]; !ok {
		return View{}, ErrUnknownPlayer(id)
	}
	return s.view(id), nil
}

func (s *GameState) view(id PlayerID) View {
	return View{
		Player:      id,
		Tick:        s.tick,
		SpawnCost:   s.rules.SpawnCost,
		MovePercent: s.rules.MovePercent,
		Bodies:      s.Snapshot(),
	}
}

// Snapshot returns the properties of every body in id order. It returns nil
// once the map has been destroyed.
func (s *GameState) Snapshot() []Properties {
	bodies, err := s.starmap.Bodies()
	if err != nil {
		return nil
	}
	out := make([]Properties, len(bodies))
	for i, b := range bodies {
		out[i] = b.Properties()
	}
	return out
}

// Winner returns the only player still owning bodies, once the roster has
// more than one player.
func (s *GameState) Winner() (*Player, bool) {
	if len(s.players) < 2 {
		return nil, false
	}
	owner := NoPlayer
	for _, props := range s.Snapshot() {
		if !props.Owned() {
			continue
		}
		if owner != NoPlayer && owner != props.Owner {
			return nil, false
		}
		owner = props.Owner
	}
	if owner == NoPlayer {
		return nil, false
	}
	p, err := s.Player(owner)
	if err != nil {
		return nil, false
	}
	return p, true
}

// Standing is one row of the end-of-game table.
type Standing struct {
	Player *Player
	Bodies int
	Units  int
	Stock  float64
}

// Standings totals each player's holdings in roster order.
func (s *GameState) Standings() []Standing {
	out := make([]Standing, len(s.players))
	for i, p := range s.players {
		out[i].Player = p
	}
	for _, props := range s.Snapshot() {
		idx, ok := s.byID[props.Owner]
		if !props.Owned() || !ok {
			continue
		}
		out[idx].Bodies++
		out[idx].Units += props.Units
		out[idx].Stock += props.Stock
	}
	return out
}

// Closed reports whether the owned map has been destroyed. Like every other
// method it must be called from the goroutine that owns the state.
func (s *GameState) Closed() bool {
	return s.starmap.Destroyed()
}

// Close destroys the owned map.
func (s *GameState) Close() error {
	return s.starmap.Destroy()
}
