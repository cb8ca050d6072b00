// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/holomush/starmap/internal/config"
	"github.com/holomush/starmap/internal/logging"
)

const serviceName = "starmap"

// NewRootCmd creates the root command for the starmap CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "starmap",
		Short: "Starmap - procedural star maps and a tick-driven conquest game",
		Long: `Starmap places bodies by rejection sampling under pairwise distance
bounds, seeds players on maximally spread homes, and runs a tick-driven
game of spawning and moving ships between them.`,
		SilenceUsage: true,
	}

	config.AddGlobalFlags(cmd.PersistentFlags())

	cmd.AddCommand(NewGenerateCmd())
	cmd.AddCommand(NewPlayCmd())
	cmd.AddCommand(NewConfigCmd())

	return cmd
}

// loadConfig resolves the layered configuration for cmd and installs the
// configured logger as the slog default.
func loadConfig(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	path, err := cmd.Flags().GetString(config.FlagConfig)
	if err != nil {
		return nil, nil, err
	}
	cfg, err := config.Load(path, cmd.Flags())
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.SetDefault(serviceName, version, cfg.Log.Format, cfg.Log.Level, cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}
