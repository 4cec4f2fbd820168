/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package gesture

import (
	"log/slog"
	"time"

	applog "jescher/internal/log"
	"jescher/internal/vector"
)

const (
	// DefaultHysteresis is the dead zone around a zoom bound inside which scale updates are dropped.
	DefaultHysteresis float32 = 0.1
	// DefaultCooldown is how long events are swallowed after a pinch ends.
	// Platforms report a stale single-pointer move right after the second finger lifts.
	DefaultCooldown = 100 * time.Millisecond
)

// Config configures a Controller. Zero values mean unbounded zoom, default
// hysteresis and cooldown, and no-op callbacks.
type Config struct {
	// MinScale and MaxScale bound the absolute zoom. Both zero means unbounded.
	// When MaxScale is set, MinScale must be set too and not exceed it.
	MinScale float32
	MaxScale float32

	Hysteresis float32
	Cooldown   time.Duration

	// FindMovableAt is asked on pointer down whether the drag should move an
	// object instead of panning. The point is in source space.
	FindMovableAt func(p vector.Pt) Movable
	// FindScalableAt is kept for per-object pinch delegation; the controller
	// does not call it yet.
	FindScalableAt func(p vector.Pt) Scalable

	OnMoveCancelled func(m Movable)
	OnMoveFinished  func(m Movable)

	// ForwardTouch sees every processed event after the controller.
	ForwardTouch func(ev TouchEvent) bool

	Logger *slog.Logger
}

func (c Config) validate() error {
	switch {
	case c.MinScale < 0:
		return &ConfigurationError{Field: "MinScale", Value: c.MinScale, Reason: "must be >= 0"}
	case c.MaxScale < 0:
		return &ConfigurationError{Field: "MaxScale", Value: c.MaxScale, Reason: "must be >= 0"}
	case c.MaxScale > 0 && c.MinScale == 0:
		return &ConfigurationError{Field: "MinScale", Value: c.MinScale, Reason: "must be > 0 and <= MaxScale when MaxScale is set"}
	case c.MinScale > c.MaxScale:
		return &ConfigurationError{Field: "MinScale", Value: c.MinScale, Reason: "must be <= MaxScale"}
	case c.Hysteresis < 0:
		return &ConfigurationError{Field: "Hysteresis", Value: c.Hysteresis, Reason: "must be >= 0"}
	case c.Cooldown < 0:
		return &ConfigurationError{Field: "Cooldown", Value: c.Cooldown, Reason: "must be >= 0"}
	}
	return nil
}

func (c Config) withDefaults() Config {
	if c.Hysteresis == 0 {
		c.Hysteresis = DefaultHysteresis
	}
	if c.Cooldown == 0 {
		c.Cooldown = DefaultCooldown
	}
	if c.FindMovableAt == nil {
		c.FindMovableAt = func(vector.Pt) Movable { return nil }
	}
	if c.FindScalableAt == nil {
		c.FindScalableAt = func(vector.Pt) Scalable { return nil }
	}
	if c.OnMoveCancelled == nil {
		c.OnMoveCancelled = func(Movable) {}
	}
	if c.OnMoveFinished == nil {
		c.OnMoveFinished = func(Movable) {}
	}
	if c.ForwardTouch == nil {
		c.ForwardTouch = func(TouchEvent) bool { return false }
	}
	if c.Logger == nil {
		c.Logger = applog.WithComponent("gesture")
	}
	return c
}
