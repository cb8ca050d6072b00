// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package config loads starmap settings from defaults, a YAML file and
// command-line flags, in that order of precedence.
package config

import (
	"slices"
	"time"

	"github.com/samber/oops"

	"github.com/holomush/starmap/internal/ai"
	"github.com/holomush/starmap/internal/game"
	"github.com/holomush/starmap/internal/logging"
	"github.com/holomush/starmap/internal/planet"
)

// CodeConfigInvalid marks any configuration that cannot be used.
const CodeConfigInvalid = "CONFIG_INVALID"

// Config is the complete starmap configuration.
type Config struct {
	Log         LogConfig      `koanf:"log" json:"log,omitempty" yaml:"log"`
	Map         MapConfig      `koanf:"map" json:"map,omitempty" yaml:"map"`
	Rules       RulesConfig    `koanf:"rules" json:"rules,omitempty" yaml:"rules"`
	Players     []PlayerConfig `koanf:"players" json:"players,omitempty" yaml:"players"`
	Sim         SimConfig      `koanf:"sim" json:"sim,omitempty" yaml:"sim"`
	MetricsAddr string         `koanf:"metrics_addr" json:"metrics_addr,omitempty" yaml:"metrics_addr" jsonschema:"description=Listen address for /metrics and health checks; empty disables"`
}

// LogConfig selects log output.
type LogConfig struct {
	Format string `koanf:"format" json:"format,omitempty" yaml:"format" jsonschema:"enum=json,enum=text"`
	Level  string `koanf:"level" json:"level,omitempty" yaml:"level" jsonschema:"enum=debug,enum=info,enum=warn,enum=error"`
}

// MapConfig controls map generation.
type MapConfig struct {
	Bodies      int     `koanf:"bodies" json:"bodies,omitempty" yaml:"bodies" jsonschema:"minimum=0"`
	MinDistance float64 `koanf:"min_distance" json:"min_distance,omitempty" yaml:"min_distance" jsonschema:"exclusiveMinimum=0"`
	MaxDistance float64 `koanf:"max_distance" json:"max_distance,omitempty" yaml:"max_distance" jsonschema:"exclusiveMinimum=0"`
	Width       float64 `koanf:"width" json:"width,omitempty" yaml:"width" jsonschema:"exclusiveMinimum=0"`
	Height      float64 `koanf:"height" json:"height,omitempty" yaml:"height" jsonschema:"exclusiveMinimum=0"`
	MaxAttempts int     `koanf:"max_attempts" json:"max_attempts,omitempty" yaml:"max_attempts" jsonschema:"minimum=1"`
	Seed        uint64  `koanf:"seed" json:"seed,omitempty" yaml:"seed" jsonschema:"description=Placement seed; 0 picks one from the clock"`
}

// RulesConfig mirrors game.Rules.
type RulesConfig struct {
	SpawnCost         float64 `koanf:"spawn_cost" json:"spawn_cost,omitempty" yaml:"spawn_cost" jsonschema:"minimum=0"`
	MovePercent       int     `koanf:"move_percent" json:"move_percent,omitempty" yaml:"move_percent" jsonschema:"minimum=1,maximum=100"`
	StartingResources float64 `koanf:"starting_resources" json:"starting_resources,omitempty" yaml:"starting_resources" jsonschema:"minimum=0"`
	GrowthRate        float64 `koanf:"growth_rate" json:"growth_rate,omitempty" yaml:"growth_rate" jsonschema:"minimum=0"`
	MaxStock          float64 `koanf:"max_stock" json:"max_stock,omitempty" yaml:"max_stock" jsonschema:"minimum=0"`
}

// PlayerConfig describes one seat at the table.
type PlayerConfig struct {
	Name     string `koanf:"name" json:"name" yaml:"name" jsonschema:"required,minLength=1"`
	Kind     string `koanf:"kind" json:"kind" yaml:"kind" jsonschema:"required,enum=human,enum=ai"`
	Strategy string `koanf:"strategy" json:"strategy,omitempty" yaml:"strategy,omitempty" jsonschema:"enum=greedy,enum=idle,enum=lua"`
	Script   string `koanf:"script" json:"script,omitempty" yaml:"script,omitempty" jsonschema:"description=Path to the Lua script for the lua strategy"`
}

// SimConfig controls the simulation loop.
type SimConfig struct {
	TickInterval string `koanf:"tick_interval" json:"tick_interval,omitempty" yaml:"tick_interval" jsonschema:"description=Go duration between ticks such as 100ms"`
	Ticks        uint64 `koanf:"ticks" json:"ticks,omitempty" yaml:"ticks" jsonschema:"description=Ticks to run; 0 runs until interrupted"`
}

// Default returns the built-in configuration.
func Default() Config {
	rules := game.DefaultRules()
	return Config{
		Log: LogConfig{Format: logging.FormatJSON, Level: "info"},
		Map: MapConfig{
			Bodies:      10,
			MinDistance: 100,
			MaxDistance: 800,
			Width:       1000,
			Height:      800,
			MaxAttempts: 1000,
		},
		Rules: RulesConfig{
			SpawnCost:         rules.SpawnCost,
			MovePercent:       rules.MovePercent,
			StartingResources: rules.StartingResources,
			GrowthRate:        rules.GrowthRate,
			MaxStock:          rules.MaxStock,
		},
		Players: DefaultPlayers(),
		Sim:     SimConfig{TickInterval: "100ms", Ticks: 100},
	}
}

// DefaultPlayers is one human against one greedy AI.
func DefaultPlayers() []PlayerConfig {
	return []PlayerConfig{
		{Name: "you", Kind: string(game.KindHuman)},
		{Name: "rival", Kind: string(game.KindAI), Strategy: ai.NameGreedy},
	}
}

// GameRules converts the rules section.
func (r RulesConfig) GameRules() game.Rules {
	return game.Rules{
		SpawnCost:         r.SpawnCost,
		MovePercent:       r.MovePercent,
		StartingResources: r.StartingResources,
		GrowthRate:        r.GrowthRate,
		MaxStock:          r.MaxStock,
	}
}

// MapOptions converts the map section for planet.BuildMap.
func (m MapConfig) MapOptions() planet.MapOptions {
	return planet.MapOptions{
		Options:     planet.Options{Width: m.Width, Height: m.Height, Seed: m.Seed},
		Count:       m.Bodies,
		MinDistance: m.MinDistance,
		MaxDistance: m.MaxDistance,
		MaxAttempts: m.MaxAttempts,
	}
}

// Interval parses the tick interval.
func (s SimConfig) Interval() (time.Duration, error) {
	d, err := time.ParseDuration(s.TickInterval)
	if err != nil {
		return 0, invalid("sim.tick_interval", err.Error())
	}
	if d <= 0 {
		return 0, invalid("sim.tick_interval", "must be positive")
	}
	return d, nil
}

func invalid(field, reason string) error {
	return oops.In("config").
		Code(CodeConfigInvalid).
		With("field", field).
		Errorf("%s: %s", field, reason)
}

// Validate checks the value ranges and cross-field constraints the schema
// cannot express.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return invalid("log.level", err.Error())
	}
	if c.Log.Format != logging.FormatJSON && c.Log.Format != logging.FormatText {
		return invalid("log.format", "must be json or text")
	}

	m := c.Map
	switch {
	case m.Bodies < 0:
		return invalid("map.bodies", "must not be negative")
	case m.Width <= 0 || m.Height <= 0:
		return invalid("map.width", "width and height must be positive")
	case m.MinDistance <= 0:
		return invalid("map.min_distance", "must be positive")
	case m.MaxDistance < m.MinDistance:
		return invalid("map.max_distance", "must not be less than min_distance")
	case m.MaxAttempts < 1:
		return invalid("map.max_attempts", "must be at least 1")
	}

	r := c.Rules
	switch {
	case r.SpawnCost < 0:
		return invalid("rules.spawn_cost", "must not be negative")
	case r.MovePercent <= 0 || r.MovePercent > 100:
		return invalid("rules.move_percent", "must be between 1 and 100")
	case r.StartingResources < 0:
		return invalid("rules.starting_resources", "must not be negative")
	case r.GrowthRate < 0:
		return invalid("rules.growth_rate", "must not be negative")
	case r.MaxStock < 0:
		return invalid("rules.max_stock", "must not be negative")
	}

	if len(c.Players) == 0 {
		return invalid("players", "at least one player is required")
	}
	if len(c.Players) > m.Bodies {
		return invalid("players", "more players than bodies")
	}
	seen := make(map[string]bool, len(c.Players))
	for _, p := range c.Players {
		if err := p.validate(seen); err != nil {
			return err
		}
	}

	if _, err := c.Sim.Interval(); err != nil {
		return err
	}
	return nil
}

func (p PlayerConfig) validate(seen map[string]bool) error {
	switch {
	case p.Name == "":
		return invalid("players.name", "must not be empty")
	case seen[p.Name]:
		return invalid("players.name", "duplicate player "+p.Name)
	}
	seen[p.Name] = true

	kind, ok := game.ParseKind(p.Kind)
	if !ok {
		return invalid("players.kind", "unknown kind "+p.Kind)
	}
	if kind != game.KindAI {
		return nil
	}
	if !slices.Contains(ai.Names(), p.Strategy) {
		return invalid("players.strategy", "player "+p.Name+" needs one of greedy, idle or lua")
	}
	if p.Strategy == ai.NameLua && p.Script == "" {
		return invalid("players.script", "player "+p.Name+" uses lua without a script")
	}
	return nil
}
