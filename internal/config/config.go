/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"jescher/internal/gesture"
	applog "jescher/internal/log"
)

type GestureConfig struct {
	MinScale   float32 `yaml:"min_scale"`
	MaxScale   float32 `yaml:"max_scale"`
	Hysteresis float32 `yaml:"hysteresis"`
	CooldownMs int     `yaml:"cooldown_ms"`
}

type RenderConfig struct {
	Format     string `yaml:"format"`     // "png" | "pdf"
	Background string `yaml:"background"` // #rrggbb
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

// AppConfig is the user-editable configuration persisted as YAML in the user scope.
// Environment variables are read-only overrides applied after the file.
//
// config_version: bump when the structure changes in a backward-incompatible way.
type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	Gesture       GestureConfig `yaml:"gesture"`
	Render        RenderConfig  `yaml:"render"`
	Logging       LoggingConfig `yaml:"logging"`
}

// Defaults returns the application defaults: unbounded zoom and the engine's
// default hysteresis and cooldown.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		Gesture: GestureConfig{
			Hysteresis: gesture.DefaultHysteresis,
			CooldownMs: int(gesture.DefaultCooldown / time.Millisecond),
		},
		Render:  RenderConfig{Format: "png", Background: "#ffffff"},
		Logging: LoggingConfig{Level: "info", Format: "console"},
	}
}

// Env var names used as overrides.
const (
	EnvMinScale   = "JESCHER_MIN_SCALE"
	EnvMaxScale   = "JESCHER_MAX_SCALE"
	EnvCooldownMs = "JESCHER_COOLDOWN_MS"
	EnvLogLevel   = applog.EnvLevel
	EnvLogFormat  = applog.EnvFormat
	EnvLogSource  = applog.EnvSource
	EnvLogFile    = applog.EnvFile
)

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "Jescher")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "Jescher")
	default:
		base = filepath.Join(os.Getenv("HOME"), ".config", "jescher")
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the config file at path (the per-user path when empty), merges it
// over the defaults and applies environment overrides. A missing file is not an error.
func Load(path string) (AppConfig, error) {
	cfg := Defaults()
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
		mergeInto(&cfg, &fileCfg)
	case !errors.Is(err, os.ErrNotExist):
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}
	applyEnvOverrides(&cfg)
	return cfg, nil
}

// Save writes cfg as YAML, creating the directory if needed.
func Save(path string, cfg AppConfig) error {
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	// zoom bounds are copied as a pair so a file can switch back to unbounded
	dst.Gesture.MinScale = src.Gesture.MinScale
	dst.Gesture.MaxScale = src.Gesture.MaxScale
	if src.Gesture.Hysteresis != 0 {
		dst.Gesture.Hysteresis = src.Gesture.Hysteresis
	}
	if src.Gesture.CooldownMs != 0 {
		dst.Gesture.CooldownMs = src.Gesture.CooldownMs
	}
	if v := strings.ToLower(strings.TrimSpace(src.Render.Format)); v != "" {
		dst.Render.Format = v
	}
	if v := strings.TrimSpace(src.Render.Background); v != "" {
		dst.Render.Background = v
	}
	if v := strings.ToLower(strings.TrimSpace(src.Logging.Level)); v != "" {
		dst.Logging.Level = v
	}
	if v := strings.ToLower(strings.TrimSpace(src.Logging.Format)); v != "" {
		dst.Logging.Format = v
	}
	dst.Logging.Source = src.Logging.Source
	if v := strings.TrimSpace(src.Logging.File); v != "" {
		dst.Logging.File = v
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if v, ok := envFloat(EnvMinScale); ok {
		cfg.Gesture.MinScale = v
	}
	if v, ok := envFloat(EnvMaxScale); ok {
		cfg.Gesture.MaxScale = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvCooldownMs)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Gesture.CooldownMs = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		cfg.Logging.Source = applog.ParseBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

func envFloat(key string) (float32, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 32)
	if err != nil {
		return 0, false
	}
	return float32(f), true
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	env := map[string]string{
		"gesture.min_scale":   EnvMinScale,
		"gesture.max_scale":   EnvMaxScale,
		"gesture.cooldown_ms": EnvCooldownMs,
		"logging.level":       EnvLogLevel,
		"logging.format":      EnvLogFormat,
		"logging.source":      EnvLogSource,
		"logging.file":        EnvLogFile,
	}[key]
	if env != "" && os.Getenv(env) != "" {
		return env, true
	}
	return "", false
}

// GestureConfig converts the file values into engine settings. Bounds are
// validated by gesture.New, not here.
func (c AppConfig) GestureConfig() gesture.Config {
	return gesture.Config{
		MinScale:   c.Gesture.MinScale,
		MaxScale:   c.Gesture.MaxScale,
		Hysteresis: c.Gesture.Hysteresis,
		Cooldown:   time.Duration(c.Gesture.CooldownMs) * time.Millisecond,
	}
}

// LogOptions converts the logging section for applog.Init.
func (c AppConfig) LogOptions() applog.Options {
	return applog.Options{Level: c.Logging.Level, Format: c.Logging.Format, AddSource: c.Logging.Source, File: c.Logging.File}
}
