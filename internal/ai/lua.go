// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package ai

import (
	"context"
	"errors"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"

	"github.com/holomush/starmap/internal/game"
)

// DefaultScriptTimeout bounds a single decide() call.
const DefaultScriptTimeout = 250 * time.Millisecond

const decideFunc = "decide"

// LuaOption configures a LuaStrategy.
type LuaOption func(*LuaStrategy)

// WithScriptTimeout overrides DefaultScriptTimeout.
func WithScriptTimeout(d time.Duration) LuaOption {
	return func(s *LuaStrategy) {
		s.timeout = d
	}
}

// LuaStrategy asks a Lua script for each decision. The script must define a
// global decide(view) returning nil, {action="add", target=n} or
// {action="move", from=a, to=b}. Every call runs in a fresh sandbox.
type LuaStrategy struct {
	name    string
	proto   *lua.FunctionProto
	timeout time.Duration
}

// NewLuaStrategy compiles source and checks that it defines decide.
func NewLuaStrategy(name, source string, opts ...LuaOption) (*LuaStrategy, error) {
	chunk, err := parse.Parse(strings.NewReader(source), name)
	if err != nil {
		return nil, ErrScriptFailed(name, "parse", err)
	}
	proto, err := lua.Compile(chunk, name)
	if err != nil {
		return nil, ErrScriptFailed(name, "compile", err)
	}

	s := &LuaStrategy{name: name, proto: proto, timeout: DefaultScriptTimeout}
	for _, opt := range opts {
		opt(s)
	}

	ctx, cancel := s.withTimeout(context.Background())
	defer cancel()
	L, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	L.Close()
	return s, nil
}

func (s *LuaStrategy) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

// Name implements game.Strategy.
func (s *LuaStrategy) Name() string { return NameLua }

// load runs the compiled chunk in a new sandbox and returns it with decide
// defined.
func (s *LuaStrategy) load(ctx context.Context) (*lua.LState, error) {
	L, err := newSandbox(ctx)
	if err != nil {
		return nil, ErrScriptFailed(s.name, "sandbox", err)
	}
	L.Push(L.NewFunctionFromProto(s.proto))
	if err := L.PCall(0, lua.MultRet, nil); err != nil {
		L.Close()
		return nil, ErrScriptFailed(s.name, "load", err)
	}
	if L.GetGlobal(decideFunc).Type() != lua.LTFunction {
		L.Close()
		return nil, ErrScriptFailed(s.name, "load", errors.New("decide is not defined"))
	}
	return L, nil
}

// Decide implements game.Strategy.
func (s *LuaStrategy) Decide(ctx context.Context, view game.View) (game.Action, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	L, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	defer L.Close()

	if err := L.CallByParam(lua.P{
		Fn:      L.GetGlobal(decideFunc),
		NRet:    1,
		Protect: true,
	}, viewTable(L, view)); err != nil {
		return nil, ErrScriptFailed(s.name, decideFunc, err)
	}
	ret := L.Get(-1)
	L.Pop(1)
	return s.decodeAction(ret)
}

func viewTable(L *lua.LState, view game.View) *lua.LTable {
	t := L.NewTable()
	L.SetField(t, "player", lua.LString(view.Player.String()))
	L.SetField(t, "tick", lua.LNumber(view.Tick))
	L.SetField(t, "spawn_cost", lua.LNumber(view.SpawnCost))
	L.SetField(t, "move_percent", lua.LNumber(view.MovePercent))

	bodies := L.NewTable()
	for _, b := range view.Bodies {
		bt := L.NewTable()
		L.SetField(bt, "id", lua.LNumber(b.ID))
		L.SetField(bt, "x", lua.LNumber(b.Position.X))
		L.SetField(bt, "y", lua.LNumber(b.Position.Y))
		L.SetField(bt, "stock", lua.LNumber(b.Stock))
		L.SetField(bt, "growth_rate", lua.LNumber(b.GrowthRate))
		L.SetField(bt, "units", lua.LNumber(b.Units))
		owner := ""
		if b.Owned() {
			owner = b.Owner.String()
		}
		L.SetField(bt, "owner", lua.LString(owner))
		L.SetField(bt, "mine", lua.LBool(b.OwnedBy(view.Player)))
		bodies.Append(bt)
	}
	L.SetField(t, "bodies", bodies)
	return t
}

// decodeAction maps decide's return value onto a game.Action. Unknown action
// names become game.Unrecognized so dispatch absorbs them.
func (s *LuaStrategy) decodeAction(ret lua.LValue) (game.Action, error) {
	if ret == lua.LNil {
		return nil, nil
	}
	t, ok := ret.(*lua.LTable)
	if !ok {
		return nil, ErrBadResult(s.name, "expected a table or nil, got "+ret.Type().String())
	}
	name, ok := t.RawGetString("action").(lua.LString)
	if !ok {
		return nil, ErrBadResult(s.name, "missing action field")
	}

	switch strings.ToLower(string(name)) {
	case "add":
		target, err := s.intField(t, "target")
		if err != nil {
			return nil, err
		}
		return game.AddShip{Target: target}, nil
	case "move":
		from, err := s.intField(t, "from")
		if err != nil {
			return nil, err
		}
		to, err := s.intField(t, "to")
		if err != nil {
			return nil, err
		}
		return game.MoveShips{From: from, To: to}, nil
	case "pass":
		return nil, nil
	}
	return game.Unrecognized{Raw: string(name)}, nil
}

func (s *LuaStrategy) intField(t *lua.LTable, field string) (int, error) {
	n, ok := t.RawGetString(field).(lua.LNumber)
	if !ok {
		return 0, ErrBadResult(s.name, field+" must be a number")
	}
	if float64(n) != float64(int(n)) {
		return 0, ErrBadResult(s.name, field+" must be an integer")
	}
	return int(n), nil
}
