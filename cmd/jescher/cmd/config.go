/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"jescher/internal/config"
	"jescher/internal/gesture"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or create the configuration file",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration (file plus environment overrides)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(appCfg); err != nil {
			return err
		}
		if err := enc.Close(); err != nil {
			return err
		}
		for _, key := range []string{"gesture.min_scale", "gesture.max_scale", "gesture.cooldown_ms", "logging.level", "logging.format", "logging.source", "logging.file"} {
			if env, ok := config.EnvOverrideFor(key); ok {
				fmt.Fprintf(out, "# %s overridden by %s\n", key, env)
			}
		}
		if _, err := gesture.New(nopHost{}, appCfg.GestureConfig()); err != nil {
			fmt.Fprintf(out, "# warning: %v\n", err)
		}
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default values",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		path := configPath
		if path == "" {
			p, err := config.ConfigPath()
			if err != nil {
				return err
			}
			path = p
		}
		if _, err := os.Stat(path); err == nil && !configForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		if err := config.Save(path, config.Defaults()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configShowCmd, configInitCmd)
	rootCmd.AddCommand(configCmd)
}

// nopHost lets config show validate the gesture section without a surface.
type nopHost struct{}

func (nopHost) Invalidate() {}
func (nopHost) AfterFunc(d time.Duration, f func()) gesture.Timer {
	return time.AfterFunc(d, f)
}
