/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package cmd implements the jescher command line.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"jescher/internal/config"
	"jescher/internal/crash"
	applog "jescher/internal/log"
	"jescher/internal/version"
)

var (
	// Global flags
	verbose    bool
	configPath string

	// appCfg is loaded before any subcommand runs.
	appCfg = config.Defaults()
)

var rootCmd = &cobra.Command{
	Use:   "jescher",
	Short: "Pan and pinch-zoom gesture engine",
	Long: `Jescher turns raw touch streams into a 2D view transform: one finger pans
the view or drags an object, two fingers zoom around their midpoint.

Examples:
  jescher replay session.json --out frame.png   # Play a recording, render the result
  jescher config show                           # Print the effective configuration
  jescher ui --rects 5                          # Open the sample canvas (fyne builds)`,
	Version:           version.Version,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

// Execute runs the root command
func Execute() {
	defer crash.Recover(reportDir())
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Fix Fyne locale parsing error when LANG=C
	if lang := os.Getenv("LANG"); lang == "" || lang == "C" {
		os.Setenv("LANG", "en_US.UTF-8")
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default is the per-user config.yaml)")
	rootCmd.SetVersionTemplate("{{.Name}} " + version.String() + "\n")
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	opts := cfg.LogOptions()
	if verbose {
		opts.Level = "debug"
	}
	applog.Init(opts)
	appCfg = cfg
	applog.WithComponent("cli").Debug("start", slog.String("cmd", cmd.CommandPath()), slog.String("config", configPath))
	return nil
}

// reportDir keeps crash reports next to the user config.
func reportDir() string {
	p, err := config.ConfigPath()
	if err != nil {
		return ""
	}
	return filepath.Join(filepath.Dir(p), "crash")
}
