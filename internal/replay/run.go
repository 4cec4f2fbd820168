/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package replay

import (
	"fmt"
	"log/slog"
	"time"

	"jescher/internal/gesture"
	applog "jescher/internal/log"
	"jescher/internal/scene"
	"jescher/internal/vector"
)

// NoteKind names a move lifecycle callback seen during playback.
type NoteKind string

const (
	NoteFinished  NoteKind = "finished"
	NoteCancelled NoteKind = "cancelled"
)

// Note records one move callback and the index of the shape it concerned.
type Note struct {
	At    time.Duration
	Kind  NoteKind
	Shape int
}

func (n Note) String() string {
	return fmt.Sprintf("%6dms %-9s shape #%d", n.At.Milliseconds(), n.Kind, n.Shape)
}

// Result is the outcome of a playback.
type Result struct {
	Surface       vector.Rect
	Scene         *scene.Scene
	Transform     gesture.Snapshot
	Notes         []Note
	Submitted     int
	// Forwarded counts events that got past the post-pinch cooldown.
	Forwarded     int
	Invalidations int
	Duration      time.Duration
}

// Dropped is the number of events swallowed by the cooldown.
func (r *Result) Dropped() int { return r.Submitted - r.Forwarded }

// Run builds the scene described by rec, plays every event at its timestamp
// and lets pending timers expire. base supplies the gesture configuration
// the recording's overrides apply to; its callbacks are replaced.
func Run(rec *Recording, base gesture.Config) (*Result, error) {
	log := applog.WithComponent("replay")
	sc := scene.New(rec.Seed)
	for _, s := range rec.Shapes {
		c := vector.DarkGray
		if s.Color != "" {
			c, _ = vector.ParseHex(s.Color)
		}
		sc.Add(vector.NewRect(vector.R(s.X, s.Y, s.W, s.H), vector.Fill{Enabled: true, Color: c}))
	}
	surface := rec.Surface.Rect()
	for i := 0; i < rec.RandomRects; i++ {
		sc.AddRect(surface)
	}

	clock := &Clock{}
	res := &Result{Surface: surface, Scene: sc}
	cfg := base
	rec.Gesture.Apply(&cfg)
	sc.Bind(&cfg)
	note := func(kind NoteKind, m gesture.Movable) {
		res.Notes = append(res.Notes, Note{At: clock.Now(), Kind: kind, Shape: indexOf(sc, m)})
	}
	cfg.OnMoveFinished = func(m gesture.Movable) {
		note(NoteFinished, m)
		sc.OnMoveFinished(m)
	}
	cfg.OnMoveCancelled = func(m gesture.Movable) {
		note(NoteCancelled, m)
		sc.OnMoveCancelled(m)
	}
	cfg.ForwardTouch = func(gesture.TouchEvent) bool {
		res.Forwarded++
		return false
	}
	if cfg.Logger == nil {
		cfg.Logger = log
	}

	ctl, err := gesture.New(clock, cfg)
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}
	ctl.SetSourceRect(surface)

	for _, e := range rec.Events {
		clock.AdvanceTo(e.At())
		ctl.SubmitTouchEvent(e.Touch())
		res.Submitted++
	}
	// let a trailing cooldown expire
	clock.AdvanceTo(clock.Now() + max(cfg.Cooldown, gesture.DefaultCooldown))

	ctl.Close()
	res.Transform = ctl.CurrentTransform()
	res.Invalidations = clock.Invalidations()
	res.Duration = clock.Now()
	log.Info("replay done",
		slog.Int("events", res.Submitted),
		slog.Int("dropped", res.Dropped()),
		slog.Int("notes", len(res.Notes)),
		slog.Float64("scale", float64(res.Transform.Scale())))
	return res, nil
}

func indexOf(sc *scene.Scene, m gesture.Movable) int {
	for i, n := range sc.Nodes() {
		if gesture.Movable(n) == m {
			return i
		}
	}
	return -1
}
