/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package gesture

import (
	"io"
	"log/slog"
	"math"
	"testing"
	"time"

	"jescher/internal/vector"
)

// fakeHost counts redraw requests and runs deferred callbacks only when advanced.
type fakeHost struct {
	invalidations int
	now           time.Duration
	timers        []*fakeTimer
}

type fakeTimer struct {
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	active := !t.stopped && !t.fired
	t.stopped = true
	return active
}

func (h *fakeHost) Invalidate() { h.invalidations++ }

func (h *fakeHost) AfterFunc(d time.Duration, f func()) Timer {
	t := &fakeTimer{at: h.now + d, f: f}
	h.timers = append(h.timers, t)
	return t
}

func (h *fakeHost) advance(d time.Duration) {
	h.now += d
	for _, t := range h.timers {
		if !t.stopped && !t.fired && t.at <= h.now {
			t.fired = true
			t.f()
		}
	}
}

func (h *fakeHost) pending() int {
	n := 0
	for _, t := range h.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func newTestController(t *testing.T, cfg Config) (*Controller, *fakeHost) {
	t.Helper()
	h := &fakeHost{}
	if cfg.Logger == nil {
		cfg.Logger = quiet
	}
	c, err := New(h, cfg)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	c.SetSourceBounds(0, 0, 100, 100)
	return c, h
}

func two(a Action, index int, x0, y0, x1, y1 float32) TouchEvent {
	return TouchEvent{Action: a, Index: index, Pointers: []Pointer{{ID: 0, X: x0, Y: y0}, {ID: 1, X: x1, Y: y1}}}
}

// pinch performs a complete two-finger gesture centered on (50,50) whose
// finger distance goes from `from` to `to`, then lets the cooldown expire.
func pinch(c *Controller, h *fakeHost, from, to float32) {
	c.SubmitTouchEvent(Single(ActionDown, 50-from/2, 50))
	c.SubmitTouchEvent(two(ActionPointerDown, 1, 50-from/2, 50, 50+from/2, 50))
	c.SubmitTouchEvent(two(ActionMove, 0, 50-to/2, 50, 50+to/2, 50))
	c.SubmitTouchEvent(two(ActionPointerUp, 1, 50-to/2, 50, 50+to/2, 50))
	c.SubmitTouchEvent(Single(ActionUp, 50-to/2, 50))
	h.advance(c.cfg.Cooldown)
}

func drag(c *Controller, path ...vector.Pt) {
	c.SubmitTouchEvent(Single(ActionDown, path[0].X, path[0].Y))
	for _, p := range path[1:] {
		c.SubmitTouchEvent(Single(ActionMove, p.X, p.Y))
	}
	last := path[len(path)-1]
	c.SubmitTouchEvent(Single(ActionUp, last.X, last.Y))
}

func approx(a, b float32) bool { return math.Abs(float64(a-b)) < 1e-3 }

func assertPt(t *testing.T, got vector.Pt, x, y float32) {
	t.Helper()
	if !approx(got.X, x) || !approx(got.Y, y) {
		t.Fatalf("point = %+v, want (%v,%v)", got, x, y)
	}
}

// recMovable records every delta it receives.
type recMovable struct {
	name   string
	dx, dy float32
	moves  int
}

func (m *recMovable) MoveBy(dx, dy float32) {
	m.dx += dx
	m.dy += dy
	m.moves++
}

// callbacks counts lifecycle notifications per movable.
type callbacks struct {
	finished  []Movable
	cancelled []Movable
}

func (cb *callbacks) install(cfg *Config) {
	cfg.OnMoveFinished = func(m Movable) { cb.finished = append(cb.finished, m) }
	cfg.OnMoveCancelled = func(m Movable) { cb.cancelled = append(cb.cancelled, m) }
}
