/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package ui

import (
	"jescher/internal/config"
	"jescher/internal/gesture"
	"jescher/internal/vector"
)

// Options configures the desktop host.
type Options struct {
	Config config.AppConfig
	// Seed drives the sample rectangles; Rects is how many are added at start.
	Seed  uint64
	Rects int
}

// pointerAdapter turns mouse press/drag/release into single-pointer touch
// events. Toolkits deliver some of these twice or out of order, so every call
// tolerates the wrong state.
type pointerAdapter struct {
	down bool
}

func (a *pointerAdapter) press(p vector.Pt) []gesture.TouchEvent {
	if a.down {
		return nil
	}
	a.down = true
	return []gesture.TouchEvent{gesture.Single(gesture.ActionDown, p.X, p.Y)}
}

func (a *pointerAdapter) drag(p vector.Pt) []gesture.TouchEvent {
	out := a.press(p)
	return append(out, gesture.Single(gesture.ActionMove, p.X, p.Y))
}

func (a *pointerAdapter) release(p vector.Pt) []gesture.TouchEvent {
	if !a.down {
		return nil
	}
	a.down = false
	return []gesture.TouchEvent{gesture.Single(gesture.ActionUp, p.X, p.Y)}
}

const (
	wheelSpan = 200
	// wheelStep is the zoom per scrolled pixel.
	wheelStep = 0.002
)

// wheelPinch synthesizes a two-finger pinch around the cursor from scroll
// wheel input. The pinch stays open across consecutive wheel events and is
// closed by end once the wheel has been idle.
type wheelPinch struct {
	active bool
	center vector.Pt
	span   float32
}

func (w *wheelPinch) pair(a gesture.Action) gesture.TouchEvent {
	h := w.span / 2
	return gesture.TouchEvent{Action: a, Index: 1, Pointers: []gesture.Pointer{
		{ID: 0, X: w.center.X - h, Y: w.center.Y},
		{ID: 1, X: w.center.X + h, Y: w.center.Y},
	}}
}

func (w *wheelPinch) step(center vector.Pt, dy float32) []gesture.TouchEvent {
	var out []gesture.TouchEvent
	if !w.active {
		w.active, w.center, w.span = true, center, wheelSpan
		out = append(out,
			gesture.Single(gesture.ActionDown, center.X-wheelSpan/2, center.Y),
			w.pair(gesture.ActionPointerDown))
	}
	f := 1 + dy*wheelStep
	f = min(max(f, 0.5), 2)
	w.span *= f
	return append(out, w.pair(gesture.ActionMove))
}

func (w *wheelPinch) end() []gesture.TouchEvent {
	if !w.active {
		return nil
	}
	w.active = false
	up := w.pair(gesture.ActionPointerUp)
	return []gesture.TouchEvent{up, gesture.Single(gesture.ActionUp, up.Pointers[0].X, up.Pointers[0].Y)}
}

// placed is one fill in view coordinates.
type placed struct {
	Rect  vector.Rect
	Color vector.Color
}

// layoutTarget resolves fills to view-space rects for retained-mode
// toolkits that position objects instead of painting.
type layoutTarget struct {
	cur   vector.Affine2D
	stack []vector.Affine2D
	out   []placed
}

func newLayoutTarget() *layoutTarget { return &layoutTarget{cur: vector.Identity} }

func (t *layoutTarget) reset() {
	t.cur, t.stack, t.out = vector.Identity, t.stack[:0], t.out[:0]
}

func (t *layoutTarget) Concat(m vector.Affine2D) { t.cur = t.cur.Mul(m) }
func (t *layoutTarget) Save()                    { t.stack = append(t.stack, t.cur) }

func (t *layoutTarget) Restore() {
	if n := len(t.stack); n > 0 {
		t.cur, t.stack = t.stack[n-1], t.stack[:n-1]
	}
}

func (t *layoutTarget) FillRect(r vector.Rect, c vector.Color) {
	t.out = append(t.out, placed{Rect: t.cur.MapRect(r), Color: c})
}
