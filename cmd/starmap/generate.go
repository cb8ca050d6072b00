// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"context"
	"log/slog"
	"math"

	"github.com/samber/oops"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/holomush/starmap/internal/config"
	"github.com/holomush/starmap/internal/planet"
	"github.com/holomush/starmap/internal/starmap"
)

// mapExport is the YAML document written by generate.
type mapExport struct {
	Width      float64      `yaml:"width"`
	Height     float64      `yaml:"height"`
	Seed       uint64       `yaml:"seed"`
	Bodies     []bodyExport `yaml:"bodies"`
	Homes      []homeExport `yaml:"homes"`
	HomeSpread float64      `yaml:"home_spread,omitempty"`
}

type bodyExport struct {
	ID       int          `yaml:"id"`
	Position starmap.Vec2 `yaml:"position"`
}

type homeExport struct {
	Player string `yaml:"player"`
	Body   int    `yaml:"body"`
}

// NewGenerateCmd creates the generate subcommand.
func NewGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a star map and print it as YAML",
		Long: `Generate builds a star map with the configured distance bounds and
prints every body together with the home bodies the configured players
would be seeded on.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return runGenerate(cmd.Context(), cmd, cfg, logger)
		},
	}

	config.AddMapFlags(cmd.Flags())

	return cmd
}

func runGenerate(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) error {
	opts := cfg.Map.MapOptions()
	opts.Logger = logger

	m, err := planet.BuildMap(ctx, opts)
	if err != nil {
		return oops.In("generate").Wrapf(err, "building map")
	}
	defer func() {
		if err := m.Destroy(); err != nil {
			logger.Warn("failed to release map", "error", err)
		}
	}()

	bodies, err := m.Bodies()
	if err != nil {
		return err
	}
	homes, err := m.SelectSpreadContext(ctx, len(cfg.Players))
	if err != nil {
		return oops.In("generate").With("players", len(cfg.Players)).Wrapf(err, "selecting homes")
	}

	out := mapExport{
		Width:  cfg.Map.Width,
		Height: cfg.Map.Height,
		Seed:   cfg.Map.Seed,
		Bodies: make([]bodyExport, len(bodies)),
		Homes:  make([]homeExport, len(homes)),
	}
	for i, b := range bodies {
		out.Bodies[i] = bodyExport{ID: b.ID(), Position: b.Position()}
	}
	for i, id := range homes {
		out.Homes[i] = homeExport{Player: cfg.Players[i].Name, Body: id}
	}
	if spread, err := m.MinPairwiseDistance(homes); err == nil && !math.IsInf(spread, 1) {
		out.HomeSpread = spread
	}

	logger.Info("map generated", "bodies", len(bodies), "homes", homes)

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return oops.In("generate").Wrapf(err, "encoding map")
	}
	return enc.Close()
}
