// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"github.com/spf13/cobra"

	"github.com/holomush/holobank/internal/config"
)

// Global flags available to all subcommands.
var configFile string

// NewRootCmd creates the root command for the HoloBank CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "holobank",
		Short: "HoloBank - an interactive terminal bank ledger",
		Long: `HoloBank keeps in-memory bank accounts protected by a numeric auth code
and a reset keyword, driven from a numbered menu on the terminal.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBank(cmd.Context(), cmd, nil)
		},
	}

	// Global flag for config file path
	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (default: XDG_CONFIG_HOME/holobank/config.yaml)")
	config.BindFlags(cmd.PersistentFlags())

	cmd.AddCommand(NewConfigCmd())
	cmd.AddCommand(NewSchemaCmd())

	return cmd
}

// loadConfig resolves and loads the configuration for cmd.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := config.ResolvePath(configFile)
	if err != nil {
		return nil, err
	}
	return config.Load(path, cmd.Flags())
}
