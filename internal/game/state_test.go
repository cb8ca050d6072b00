// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package game_test

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/holomush/starmap/internal/game"
	"github.com/holomush/starmap/internal/planet"
	"github.com/holomush/starmap/internal/starmap"
	"github.com/holomush/starmap/pkg/errutil"
)

// mockStrategy is a testify mock for game.Strategy.
type mockStrategy struct {
	mock.Mock
}

func (m *mockStrategy) Name() string { return "mock" }

func (m *mockStrategy) Decide(ctx context.Context, view game.View) (game.Action, error) {
	args := m.Called(ctx, view)
	action, _ := args.Get(0).(game.Action)
	return action, args.Error(1)
}

// fixedMap builds a map of planets at the given positions.
func fixedMap(t *testing.T, points ...starmap.Vec2) *starmap.Starmap[game.Body] {
	t.Helper()
	gen := starmap.GeneratorFunc[game.Body](func(id int) (game.Body, error) {
		return planet.New(id, points[id]), nil
	})
	always := starmap.ValidatorFunc[game.Body](func(_, _ game.Body) bool { return true })
	builder, err := starmap.NewBuilder[game.Body](len(points), gen, always, starmap.DestroyCleaner[game.Body]())
	require.NoError(t, err)
	m, err := builder.Build(context.Background())
	require.NoError(t, err)
	return m
}

// lineMap places n bodies 100 apart along the x axis.
func lineMap(t *testing.T, n int) *starmap.Starmap[game.Body] {
	t.Helper()
	points := make([]starmap.Vec2, n)
	for i := range points {
		points[i] = starmap.Vec2{X: float64(i) * 100}
	}
	return fixedMap(t, points...)
}

func newState(t *testing.T, m *starmap.Starmap[game.Body], rules game.Rules) *game.GameState {
	t.Helper()
	s, err := game.New(m, rules)
	require.NoError(t, err)
	return s
}

// twoPlayerGame seeds alice and bob on a five-body line. Alice's home is
// body 0 and bob's is body 4.
func twoPlayerGame(t *testing.T) (*game.GameState, *game.Player, *game.Player) {
	t.Helper()
	s := newState(t, lineMap(t, 5), game.DefaultRules())
	players, err := s.SeedPlayers(context.Background(), []game.PlayerSpec{
		{Name: "alice", Kind: game.KindHuman},
		{Name: "bob", Kind: game.KindHuman},
	})
	require.NoError(t, err)
	require.Equal(t, 0, players[0].Home)
	require.Equal(t, 4, players[1].Home)
	return s, players[0], players[1]
}

func body(t *testing.T, s *game.GameState, id int) game.Body {
	t.Helper()
	b, err := s.Starmap().Body(id)
	require.NoError(t, err)
	return b
}

func props(t *testing.T, s *game.GameState, id int) game.Properties {
	t.Helper()
	return body(t, s, id).Properties()
}

func TestNew_RequiresLiveMap(t *testing.T) {
	_, err := game.New(nil, game.DefaultRules())
	errutil.AssertErrorCode(t, err, starmap.CodeInvalidArgument)

	m := lineMap(t, 2)
	require.NoError(t, m.Destroy())
	_, err = game.New(m, game.DefaultRules())
	errutil.AssertErrorCode(t, err, starmap.CodeAlreadyDestroyed)
}

func TestSeedPlayers_DestroyedMap(t *testing.T) {
	m := lineMap(t, 3)
	s := newState(t, m, game.DefaultRules())
	require.NoError(t, m.Destroy())

	_, err := s.SeedPlayers(context.Background(), []game.PlayerSpec{{Name: "alice", Kind: game.KindHuman}})

	errutil.AssertErrorCode(t, err, starmap.CodeAlreadyDestroyed)
	assert.Empty(t, s.Players())
}

func TestSeedPlayers_CancelledContext(t *testing.T) {
	s := newState(t, lineMap(t, 4), game.DefaultRules())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.SeedPlayers(ctx, []game.PlayerSpec{
		{Name: "alice", Kind: game.KindHuman},
		{Name: "bob", Kind: game.KindHuman},
	})

	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, s.Players())
}

func TestSeedPlayers_HomesAreSpreadAndStocked(t *testing.T) {
	s := newState(t, fixedMap(t,
		starmap.Vec2{X: 0, Y: 0},
		starmap.Vec2{X: 3, Y: 0},
		starmap.Vec2{X: 0, Y: 4},
	), game.DefaultRules())

	players, err := s.SeedPlayers(context.Background(), []game.PlayerSpec{
		{Name: "alice", Kind: game.KindHuman},
		{Name: "bot", Kind: game.KindAI, Strategy: &mockStrategy{}},
	})
	require.NoError(t, err)
	require.Len(t, players, 2)

	assert.Equal(t, 1, players[0].Home)
	assert.Equal(t, 2, players[1].Home)
	assert.NotEqual(t, players[0].ID, players[1].ID)
	assert.True(t, players[1].IsAI())

	for _, p := range players {
		home := props(t, s, p.Home)
		assert.True(t, home.OwnedBy(p.ID))
		assert.Equal(t, 1, home.Units)
		assert.Equal(t, 100.0, home.Stock)
		assert.Equal(t, 0.002, home.GrowthRate)
	}
	assert.False(t, props(t, s, 0).Owned())

	current, ok := s.CurrentPlayer()
	require.True(t, ok)
	assert.Equal(t, players[0].ID, current.ID)
}

func TestSeedPlayers_Rejections(t *testing.T) {
	tests := []struct {
		name  string
		specs []game.PlayerSpec
		code  string
	}{
		{
			name: "more players than bodies",
			specs: []game.PlayerSpec{
				{Name: "a", Kind: game.KindHuman},
				{Name: "b", Kind: game.KindHuman},
				{Name: "c", Kind: game.KindHuman},
			},
			code: game.CodeRosterFull,
		},
		{
			name:  "empty name",
			specs: []game.PlayerSpec{{Kind: game.KindHuman}},
			code:  game.CodeInvalidPlayer,
		},
		{
			name: "duplicate name",
			specs: []game.PlayerSpec{
				{Name: "a", Kind: game.KindHuman},
				{Name: "a", Kind: game.KindHuman},
			},
			code: game.CodeInvalidPlayer,
		},
		{
			name:  "ai without strategy",
			specs: []game.PlayerSpec{{Name: "bot", Kind: game.KindAI}},
			code:  game.CodeInvalidPlayer,
		},
		{
			name:  "unknown kind",
			specs: []game.PlayerSpec{{Name: "x", Kind: game.Kind("robot")}},
			code:  game.CodeInvalidPlayer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newState(t, lineMap(t, 2), game.DefaultRules())
			_, err := s.SeedPlayers(context.Background(), tt.specs)
			errutil.AssertErrorCode(t, err, tt.code)
			assert.Empty(t, s.Players())
		})
	}
}

func TestSeedPlayers_OnlyOnce(t *testing.T) {
	s, _, _ := twoPlayerGame(t)

	_, err := s.SeedPlayers(context.Background(), []game.PlayerSpec{{Name: "carol", Kind: game.KindHuman}})
	errutil.AssertErrorCode(t, err, game.CodeInvalidAction)
	assert.Len(t, s.Players(), 2)
}

func TestCurrentPlayer_EmptyRoster(t *testing.T) {
	s := newState(t, lineMap(t, 2), game.DefaultRules())

	_, ok := s.CurrentPlayer()
	assert.False(t, ok)
	errutil.AssertErrorCode(t, s.SetCurrentPlayer(game.NewPlayerID()), game.CodeUnknownPlayer)
}

func TestPlayerLookup(t *testing.T) {
	s, alice, _ := twoPlayerGame(t)

	p, err := s.Player(alice.ID)
	require.NoError(t, err)
	assert.Same(t, alice, p)

	p, err = s.PlayerByName("alice")
	require.NoError(t, err)
	assert.Same(t, alice, p)

	_, err = s.Player(game.NewPlayerID())
	errutil.AssertErrorCode(t, err, game.CodeUnknownPlayer)

	_, err = s.PlayerByName("mallory")
	errutil.AssertErrorCode(t, err, game.CodeUnknownPlayer)
}

func TestDispatch_AddShip(t *testing.T) {
	s, alice, _ := twoPlayerGame(t)

	out, err := s.Dispatch(context.Background(), alice.ID, game.AddShip{Target: 0})
	require.NoError(t, err)

	assert.Equal(t, game.KindAddShip, out.Kind)
	assert.Equal(t, 0, out.Target)
	assert.Equal(t, 1, out.Units)
	home := props(t, s, 0)
	assert.Equal(t, 90.0, home.Stock)
	assert.Equal(t, 2, home.Units)
	assert.True(t, home.OwnedBy(alice.ID))
}

func TestDispatch_AddShipInsufficientResourcesChangesNothing(t *testing.T) {
	s, alice, _ := twoPlayerGame(t)
	body(t, s, 0).SetStock(9.5)

	_, err := s.Dispatch(context.Background(), alice.ID, game.AddShip{Target: 0})

	errutil.AssertErrorCode(t, err, game.CodeInsufficientResources)
	assert.True(t, game.IsGameplayRejection(err))
	home := props(t, s, 0)
	assert.Equal(t, 9.5, home.Stock)
	assert.Equal(t, 1, home.Units)
}

func TestDispatch_AddShipOnUnownedBodyClaimsIt(t *testing.T) {
	s, alice, _ := twoPlayerGame(t)
	body(t, s, 2).SetStock(25)

	_, err := s.Dispatch(context.Background(), alice.ID, game.AddShip{Target: 2})
	require.NoError(t, err)

	target := props(t, s, 2)
	assert.True(t, target.OwnedBy(alice.ID))
	assert.Equal(t, 1, target.Units)
	assert.Equal(t, 15.0, target.Stock)
}

func TestDispatch_AddShipOnEnemyBody(t *testing.T) {
	s, alice, bob := twoPlayerGame(t)
	body(t, s, 4).SetGarrison(bob.ID, 3)

	out, err := s.Dispatch(context.Background(), alice.ID, game.AddShip{Target: 4})

	errutil.AssertErrorCode(t, err, game.CodeInvalidAction)
	assert.True(t, game.IsGameplayRejection(err))
	assert.Equal(t, 0, out.Units)
	target := props(t, s, 4)
	assert.True(t, target.OwnedBy(bob.ID))
	assert.Equal(t, 3, target.Units)
	assert.Equal(t, 100.0, target.Stock)
}

func TestDispatch_AddShipUnknownBody(t *testing.T) {
	s, alice, _ := twoPlayerGame(t)

	_, err := s.Dispatch(context.Background(), alice.ID, game.AddShip{Target: 42})

	errutil.AssertErrorCode(t, err, starmap.CodeNotFound)
	assert.False(t, game.IsGameplayRejection(err))
}

func TestDispatch_MoveShipsTransfersFlooredShare(t *testing.T) {
	tests := []struct {
		name      string
		units     int
		percent   int
		wantMoved int
	}{
		{"half of even", 8, 50, 4},
		{"half of odd rounds down", 7, 50, 3},
		{"third rounds down", 10, 33, 3},
		{"everything", 5, 100, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := game.DefaultRules()
			rules.MovePercent = tt.percent
			s := newState(t, lineMap(t, 3), rules)
			players, err := s.SeedPlayers(context.Background(), []game.PlayerSpec{{Name: "alice", Kind: game.KindHuman}})
			require.NoError(t, err)
			alice := players[0]
			body(t, s, 0).SetGarrison(alice.ID, tt.units)

			out, err := s.Dispatch(context.Background(), alice.ID, game.MoveShips{From: 0, To: 2})
			require.NoError(t, err)

			assert.Equal(t, tt.wantMoved, out.Units)
			assert.Equal(t, tt.units-tt.wantMoved, props(t, s, 0).Units)
			to := props(t, s, 2)
			assert.Equal(t, tt.wantMoved, to.Units)
			assert.True(t, to.OwnedBy(alice.ID))
		})
	}
}

func TestDispatch_MoveShipsReinforcesOwnBody(t *testing.T) {
	s, alice, _ := twoPlayerGame(t)
	body(t, s, 0).SetGarrison(alice.ID, 6)
	body(t, s, 1).SetGarrison(alice.ID, 2)

	_, err := s.Dispatch(context.Background(), alice.ID, game.MoveShips{From: 0, To: 1})
	require.NoError(t, err)

	assert.Equal(t, 3, props(t, s, 0).Units)
	assert.Equal(t, 5, props(t, s, 1).Units)
}

func TestDispatch_MoveShipsRejections(t *testing.T) {
	tests := []struct {
		name  string
		setup func(s *game.GameState, alice, bob *game.Player)
		move  game.MoveShips
		code  string
	}{
		{
			name: "source owned by another player",
			move: game.MoveShips{From: 4, To: 2},
			code: game.CodeNoUnitsAvailable,
		},
		{
			name: "source unowned",
			move: game.MoveShips{From: 2, To: 0},
			code: game.CodeNoUnitsAvailable,
		},
		{
			name: "empty garrison",
			setup: func(s *game.GameState, alice, _ *game.Player) {
				b, _ := s.Starmap().Body(0)
				b.SetGarrison(alice.ID, 0)
			},
			move: game.MoveShips{From: 0, To: 2},
			code: game.CodeNoUnitsAvailable,
		},
		{
			name: "single unit cannot be split",
			move: game.MoveShips{From: 0, To: 2},
			code: game.CodeNoUnitsAvailable,
		},
		{
			name: "same body",
			move: game.MoveShips{From: 0, To: 0},
			code: game.CodeInvalidAction,
		},
		{
			name: "unknown destination",
			move: game.MoveShips{From: 0, To: 9},
			code: starmap.CodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, alice, bob := twoPlayerGame(t)
			if tt.setup != nil {
				tt.setup(s, alice, bob)
			}
			before := s.Snapshot()

			_, err := s.Dispatch(context.Background(), alice.ID, tt.move)

			errutil.AssertErrorCode(t, err, tt.code)
			assert.Equal(t, before, s.Snapshot())
		})
	}
}

func TestDispatch_ArrivalAtEnemyBody(t *testing.T) {
	tests := []struct {
		name          string
		attackers     int
		defenders     int
		wantOwnerIsMe bool
		wantOwned     bool
		wantUnits     int
		wantCaptured  bool
	}{
		{"surplus captures", 10, 2, true, true, 3, true},
		{"equal forces neutralize", 8, 4, false, false, 0, false},
		{"shortfall weakens defenders", 4, 5, false, true, 3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, alice, bob := twoPlayerGame(t)
			body(t, s, 0).SetGarrison(alice.ID, tt.attackers)
			body(t, s, 4).SetGarrison(bob.ID, tt.defenders)

			out, err := s.Dispatch(context.Background(), alice.ID, game.MoveShips{From: 0, To: 4})
			require.NoError(t, err)

			target := props(t, s, 4)
			assert.Equal(t, tt.wantOwned, target.Owned())
			assert.Equal(t, tt.wantOwnerIsMe, target.OwnedBy(alice.ID))
			if tt.wantOwned && !tt.wantOwnerIsMe {
				assert.True(t, target.OwnedBy(bob.ID))
			}
			assert.Equal(t, tt.wantUnits, target.Units)
			assert.Equal(t, tt.wantCaptured, out.Captured)
			assert.Equal(t, tt.attackers-tt.attackers/2, props(t, s, 0).Units)
		})
	}
}

func TestDispatch_UnrecognizedIsNoOp(t *testing.T) {
	s, alice, _ := twoPlayerGame(t)
	before := s.Snapshot()

	for _, action := range []game.Action{game.Unrecognized{Raw: "jump"}, nil} {
		out, err := s.Dispatch(context.Background(), alice.ID, action)
		require.NoError(t, err)
		assert.True(t, out.NoOp)
		assert.Equal(t, game.KindUnrecognized, out.Kind)
	}
	assert.Equal(t, before, s.Snapshot())
}

func TestDispatch_UnknownActorKeepsCurrentPlayer(t *testing.T) {
	s, _, bob := twoPlayerGame(t)
	_, err := s.Dispatch(context.Background(), bob.ID, game.Unrecognized{})
	require.NoError(t, err)

	_, err = s.Dispatch(context.Background(), game.NewPlayerID(), game.AddShip{Target: 0})
	errutil.AssertErrorCode(t, err, game.CodeUnknownPlayer)

	current, ok := s.CurrentPlayer()
	require.True(t, ok)
	assert.Equal(t, bob.ID, current.ID)
}

func TestDispatch_SetsCurrentPlayer(t *testing.T) {
	s, alice, bob := twoPlayerGame(t)

	_, _ = s.Dispatch(context.Background(), bob.ID, game.AddShip{Target: 4})
	current, _ := s.CurrentPlayer()
	assert.Equal(t, bob.ID, current.ID)

	_, _ = s.Dispatch(context.Background(), alice.ID, game.MoveShips{From: 0, To: 0})
	current, _ = s.CurrentPlayer()
	assert.Equal(t, alice.ID, current.ID)
}

func TestDispatch_RecordsMetrics(t *testing.T) {
	s, alice, _ := twoPlayerGame(t)
	okBefore := testutil.ToFloat64(game.Actions.WithLabelValues(string(game.KindAddShip), game.ResultOK))
	rejectedBefore := testutil.ToFloat64(game.Actions.WithLabelValues(string(game.KindMoveShips), game.ResultRejected))

	_, err := s.Dispatch(context.Background(), alice.ID, game.AddShip{Target: 0})
	require.NoError(t, err)
	_, err = s.Dispatch(context.Background(), alice.ID, game.MoveShips{From: 2, To: 0})
	require.Error(t, err)

	assert.Equal(t, okBefore+1, testutil.ToFloat64(game.Actions.WithLabelValues(string(game.KindAddShip), game.ResultOK)))
	assert.Equal(t, rejectedBefore+1, testutil.ToFloat64(game.Actions.WithLabelValues(string(game.KindMoveShips), game.ResultRejected)))
}

func TestGrow(t *testing.T) {
	tests := []struct {
		name     string
		stock    float64
		rate     float64
		ticks    int
		maxStock float64
		want     float64
	}{
		{"one tick", 100, 0.002, 1, 0, 100.2},
		{"compounds", 100, 0.1, 2, 0, 121},
		{"zero ticks", 100, 0.1, 0, 0, 100},
		{"zero rate", 50, 0, 10, 0, 50},
		{"capped", 100, 0.5, 1, 120, 120},
		{"under cap", 100, 0.1, 1, 120, 110},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, game.Grow(tt.stock, tt.rate, tt.ticks, tt.maxStock), 1e-9)
		})
	}
}

func TestTick_GrowsBeforeQueuedActions(t *testing.T) {
	rules := game.DefaultRules()
	rules.SpawnCost = 100.1
	s := newState(t, lineMap(t, 2), rules)
	players, err := s.SeedPlayers(context.Background(), []game.PlayerSpec{{Name: "alice", Kind: game.KindHuman}})
	require.NoError(t, err)
	alice := players[0]

	s.Enqueue(alice.ID, game.AddShip{Target: alice.Home})
	assert.Equal(t, 1, s.Pending())

	report, err := s.Tick(context.Background(), 0)
	require.NoError(t, err)

	assert.Equal(t, uint64(1), report.Tick)
	require.Len(t, report.Results, 1)
	assert.NoError(t, report.Results[0].Err)
	assert.Equal(t, game.SourceQueued, report.Results[0].Source)
	assert.Equal(t, 0, s.Pending())
	assert.InDelta(t, 0.1, props(t, s, alice.Home).Stock, 1e-9)
	assert.Equal(t, 2, props(t, s, alice.Home).Units)
}

func TestTick_UnownedBodiesWithoutRateDoNotGrow(t *testing.T) {
	s, _, _ := twoPlayerGame(t)
	body(t, s, 2).SetStock(40)

	_, err := s.Tick(context.Background(), 0)
	require.NoError(t, err)

	assert.Equal(t, 40.0, props(t, s, 2).Stock)
	assert.InDelta(t, 100.2, props(t, s, 0).Stock, 1e-9)
}

func TestTick_RejectionsDoNotAbort(t *testing.T) {
	s, alice, bob := twoPlayerGame(t)

	s.Enqueue(alice.ID, game.MoveShips{From: 4, To: 0})
	s.Enqueue(bob.ID, game.AddShip{Target: 4})

	report, err := s.Tick(context.Background(), 0)
	require.NoError(t, err)

	require.Len(t, report.Results, 2)
	errutil.AssertErrorCode(t, report.Results[0].Err, game.CodeNoUnitsAvailable)
	assert.NoError(t, report.Results[1].Err)
	assert.Equal(t, 2, props(t, s, 4).Units)
}

func TestTick_AIPlayersActThroughDispatch(t *testing.T) {
	s := newState(t, lineMap(t, 3), game.DefaultRules())
	strategy := &mockStrategy{}
	players, err := s.SeedPlayers(context.Background(), []game.PlayerSpec{
		{Name: "alice", Kind: game.KindHuman},
		{Name: "bot", Kind: game.KindAI, Strategy: strategy},
	})
	require.NoError(t, err)
	bot := players[1]

	strategy.On("Decide", mock.Anything, mock.MatchedBy(func(v game.View) bool {
		return v.Player == bot.ID && v.Tick == 1 && len(v.Bodies) == 3 && len(v.Mine()) == 1
	})).Return(game.AddShip{Target: bot.Home}, nil).Once()

	report, err := s.Tick(context.Background(), 0)
	require.NoError(t, err)

	strategy.AssertExpectations(t)
	require.Len(t, report.Results, 1)
	assert.Equal(t, game.SourceAI, report.Results[0].Source)
	assert.Equal(t, bot.ID, report.Results[0].Actor)
	assert.NoError(t, report.Results[0].Err)
	assert.Equal(t, 2, props(t, s, bot.Home).Units)
}

func TestTick_AIErrorsAreReported(t *testing.T) {
	s := newState(t, lineMap(t, 2), game.DefaultRules())
	failing := &mockStrategy{}
	passing := &mockStrategy{}
	_, err := s.SeedPlayers(context.Background(), []game.PlayerSpec{
		{Name: "broken", Kind: game.KindAI, Strategy: failing},
		{Name: "idle", Kind: game.KindAI, Strategy: passing},
	})
	require.NoError(t, err)

	boom := errors.New("boom")
	failing.On("Decide", mock.Anything, mock.Anything).Return(nil, boom)
	passing.On("Decide", mock.Anything, mock.Anything).Return(nil, nil)

	report, err := s.Tick(context.Background(), 0)
	require.NoError(t, err)

	require.Len(t, report.Results, 1)
	assert.ErrorIs(t, report.Results[0].Err, boom)
	passing.AssertNumberOfCalls(t, "Decide", 1)
}

func TestTick_AfterCloseFails(t *testing.T) {
	s, _, _ := twoPlayerGame(t)
	require.NoError(t, s.Close())

	_, err := s.Tick(context.Background(), 0)
	errutil.AssertErrorCode(t, err, starmap.CodeAlreadyDestroyed)
	assert.Nil(t, s.Snapshot())
}

func TestWinnerAndStandings(t *testing.T) {
	s, alice, bob := twoPlayerGame(t)

	_, ok := s.Winner()
	assert.False(t, ok)

	body(t, s, 0).SetGarrison(alice.ID, 4)
	body(t, s, 4).SetGarrison(bob.ID, 1)
	_, err := s.Dispatch(context.Background(), alice.ID, game.MoveShips{From: 0, To: 4})
	require.NoError(t, err)

	winner, ok := s.Winner()
	require.True(t, ok)
	assert.Equal(t, alice.ID, winner.ID)

	standings := s.Standings()
	require.Len(t, standings, 2)
	assert.Equal(t, 2, standings[0].Bodies)
	assert.Equal(t, 3, standings[0].Units)
	assert.Equal(t, 0, standings[1].Bodies)
}

func TestView_UnknownPlayer(t *testing.T) {
	s, alice, _ := twoPlayerGame(t)

	view, err := s.View(alice.ID)
	require.NoError(t, err)
	assert.Len(t, view.Mine(), 1)
	assert.Len(t, view.Others(), 4)

	_, err = s.View(game.NewPlayerID())
	errutil.AssertErrorCode(t, err, game.CodeUnknownPlayer)
}
