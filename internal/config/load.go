// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"

	"github.com/holomush/starmap/internal/xdg"
)

// Flag names bound to config keys.
const (
	FlagConfig            = "config"
	FlagLogFormat         = "log-format"
	FlagLogLevel          = "log-level"
	FlagBodies            = "bodies"
	FlagMinDistance       = "min-distance"
	FlagMaxDistance       = "max-distance"
	FlagWidth             = "width"
	FlagHeight            = "height"
	FlagMaxAttempts       = "max-attempts"
	FlagSeed              = "seed"
	FlagSpawnCost         = "spawn-cost"
	FlagMovePercent       = "move-percent"
	FlagStartingResources = "starting-resources"
	FlagGrowthRate        = "growth-rate"
	FlagMaxStock          = "max-stock"
	FlagTickInterval      = "tick-interval"
	FlagTicks             = "ticks"
	FlagMetricsAddr       = "metrics-addr"
)

var flagKeys = map[string]string{
	FlagLogFormat:         "log.format",
	FlagLogLevel:          "log.level",
	FlagBodies:            "map.bodies",
	FlagMinDistance:       "map.min_distance",
	FlagMaxDistance:       "map.max_distance",
	FlagWidth:             "map.width",
	FlagHeight:            "map.height",
	FlagMaxAttempts:       "map.max_attempts",
	FlagSeed:              "map.seed",
	FlagSpawnCost:         "rules.spawn_cost",
	FlagMovePercent:       "rules.move_percent",
	FlagStartingResources: "rules.starting_resources",
	FlagGrowthRate:        "rules.growth_rate",
	FlagMaxStock:          "rules.max_stock",
	FlagTickInterval:      "sim.tick_interval",
	FlagTicks:             "sim.ticks",
	FlagMetricsAddr:       "metrics_addr",
}

// AddGlobalFlags registers --config and the log flags.
func AddGlobalFlags(flags *pflag.FlagSet) {
	d := Default()
	flags.String(FlagConfig, "", "config file (default $XDG_CONFIG_HOME/starmap/config.yaml if present)")
	flags.String(FlagLogFormat, d.Log.Format, "log format (json or text)")
	flags.String(FlagLogLevel, d.Log.Level, "log level (debug, info, warn, error)")
}

// AddMapFlags registers the map generation flags.
func AddMapFlags(flags *pflag.FlagSet) {
	d := Default().Map
	flags.Int(FlagBodies, d.Bodies, "number of bodies to place")
	flags.Float64(FlagMinDistance, d.MinDistance, "minimum distance between any two bodies")
	flags.Float64(FlagMaxDistance, d.MaxDistance, "maximum distance between any two bodies")
	flags.Float64(FlagWidth, d.Width, "width of the placement area")
	flags.Float64(FlagHeight, d.Height, "height of the placement area")
	flags.Int(FlagMaxAttempts, d.MaxAttempts, "candidates tried per body before giving up")
	flags.Uint64(FlagSeed, d.Seed, "placement seed (0 uses the clock)")
}

// AddRulesFlags registers the gameplay rule flags.
func AddRulesFlags(flags *pflag.FlagSet) {
	d := Default().Rules
	flags.Float64(FlagSpawnCost, d.SpawnCost, "resources debited per spawned unit")
	flags.Int(FlagMovePercent, d.MovePercent, "percent of a garrison sent per move")
	flags.Float64(FlagStartingResources, d.StartingResources, "resources on each home body")
	flags.Float64(FlagGrowthRate, d.GrowthRate, "per-tick resource growth rate of home bodies")
	flags.Float64(FlagMaxStock, d.MaxStock, "resource cap per body (0 is uncapped)")
}

// AddSimFlags registers the simulation loop flags.
func AddSimFlags(flags *pflag.FlagSet) {
	d := Default()
	flags.String(FlagTickInterval, d.Sim.TickInterval, "time between ticks")
	flags.Uint64(FlagTicks, d.Sim.Ticks, "ticks to run (0 runs until interrupted)")
	flags.String(FlagMetricsAddr, d.MetricsAddr, "serve /metrics and health checks on this address")
}

// Load builds the configuration. path names the YAML file and must exist
// when set; otherwise the XDG default is used if present. Only flags set on
// the command line override file values.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	cfg := Default()
	k := koanf.New(".")

	path, err := resolvePath(path)
	if err != nil {
		return nil, err
	}
	if path != "" {
		provider := file.Provider(path)
		data, err := provider.ReadBytes()
		if err != nil {
			return nil, oops.In("config").Code(CodeConfigInvalid).With("path", path).Wrapf(err, "reading config")
		}
		if err := ValidateYAML(data); err != nil {
			return nil, oops.In("config").With("path", path).Wrap(err)
		}
		if err := k.Load(provider, yaml.Parser()); err != nil {
			return nil, oops.In("config").Code(CodeConfigInvalid).With("path", path).Wrapf(err, "parsing config")
		}
	}

	if flags != nil {
		provider := posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			key, ok := flagKeys[f.Name]
			if !ok || !f.Changed {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		})
		if err := k.Load(provider, nil); err != nil {
			return nil, oops.In("config").Code(CodeConfigInvalid).Wrapf(err, "applying flags")
		}
	}

	cfg.Players = nil
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, oops.In("config").Code(CodeConfigInvalid).Wrapf(err, "decoding config")
	}
	if len(cfg.Players) == 0 {
		cfg.Players = DefaultPlayers()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func resolvePath(path string) (string, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return "", oops.In("config").Code(CodeConfigInvalid).With("path", path).Wrapf(err, "config file")
		}
		return path, nil
	}

	def, err := xdg.ConfigFile()
	if err != nil {
		return "", nil
	}
	if _, err := os.Stat(def); errors.Is(err, fs.ErrNotExist) {
		return "", nil
	} else if err != nil {
		return "", oops.In("config").Code(CodeConfigInvalid).With("path", def).Wrapf(err, "config file")
	}
	return def, nil
}
