// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cmd implements the prodtrack command-line interface.
package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/jeranaias/prodtrack/internal/config"
	"github.com/jeranaias/prodtrack/internal/storage"
)

var (
	cfgPath string
	verbose bool

	rootCmd = &cobra.Command{
		Use:   "prodtrack",
		Short: "Track product-management artifacts and export them as markdown",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(log.DebugLevel)
			}
		},
	}
)

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (default ~/.prodtrack/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// configPathHint names the config file in effect, for error messages.
func configPathHint() string {
	if cfgPath != "" {
		return cfgPath
	}
	return config.Path()
}

// loadConfig reads the config file named by --config, or the default path.
func loadConfig() (*config.Config, error) {
	if cfgPath != "" {
		return config.LoadFrom(cfgPath)
	}
	return config.Load()
}

// openStore loads the config and opens the database it points at.
func openStore() (*storage.Store, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	st, err := storage.Open(cfg.DatabasePath)
	if err != nil {
		return nil, nil, err
	}
	return st, cfg, nil
}
