/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package gesture

import (
	"errors"
	"testing"
	"time"

	"jescher/internal/vector"
)

func TestNewValidatesConfig(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		field string
	}{
		{name: "unbounded", cfg: Config{}},
		{name: "bounded", cfg: Config{MinScale: 0.5, MaxScale: 2}},
		{name: "fixed zoom", cfg: Config{MinScale: 1, MaxScale: 1}},
		{name: "negative min", cfg: Config{MinScale: -1}, field: "MinScale"},
		{name: "negative max", cfg: Config{MaxScale: -1}, field: "MaxScale"},
		{name: "max without min", cfg: Config{MaxScale: 2}, field: "MinScale"},
		{name: "min above max", cfg: Config{MinScale: 3, MaxScale: 2}, field: "MinScale"},
		{name: "min without max", cfg: Config{MinScale: 0.5}, field: "MinScale"},
		{name: "negative hysteresis", cfg: Config{Hysteresis: -0.1}, field: "Hysteresis"},
		{name: "negative cooldown", cfg: Config{Cooldown: -time.Second}, field: "Cooldown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.cfg.Logger = quiet
			_, err := New(&fakeHost{}, tt.cfg)
			if tt.field == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var ce *ConfigurationError
			if !errors.As(err, &ce) {
				t.Fatalf("want *ConfigurationError, got %v", err)
			}
			if ce.Field != tt.field {
				t.Fatalf("field = %q, want %q", ce.Field, tt.field)
			}
			if !errors.Is(err, ErrConfiguration) {
				t.Fatalf("error should match ErrConfiguration")
			}
		})
	}
}

func TestNewRequiresHost(t *testing.T) {
	if _, err := New(nil, Config{Logger: quiet}); !errors.Is(err, ErrConfiguration) {
		t.Fatalf("want configuration error, got %v", err)
	}
}

func TestNewControllerStartsIdle(t *testing.T) {
	c, _ := newTestController(t, Config{})
	if !c.CurrentTransform().IsIdentity() {
		t.Fatalf("new controller should have identity transform")
	}
	if c.State() != StateIdle || c.ScaleFactor() != 1 {
		t.Fatalf("state=%v scale=%v", c.State(), c.ScaleFactor())
	}
}

func TestPanMapsViewPointBack(t *testing.T) {
	c, h := newTestController(t, Config{})
	c.SubmitTouchEvent(Single(ActionDown, 50, 50))
	if c.State() != StateSinglePointer {
		t.Fatalf("state after down = %v", c.State())
	}
	c.SubmitTouchEvent(Single(ActionMove, 60, 50))

	snap := c.CurrentTransform()
	if snap.Matrix() != vector.Translate(10, 0) {
		t.Fatalf("transform = %+v, want translate(10,0)", snap.Matrix())
	}
	p, ok := c.MapViewPointToSource(50, 50)
	if !ok {
		t.Fatalf("mapping should be defined")
	}
	assertPt(t, p, 40, 50)

	c.SubmitTouchEvent(Single(ActionUp, 60, 50))
	if c.State() != StateIdle {
		t.Fatalf("state after up = %v", c.State())
	}
	if h.invalidations != 3 {
		t.Fatalf("invalidations = %d, want one per event", h.invalidations)
	}
}

func TestPanThereAndBackRestoresTransform(t *testing.T) {
	c, _ := newTestController(t, Config{})
	drag(c, vector.Pt{X: 20, Y: 20}, vector.Pt{X: 35, Y: 40}, vector.Pt{X: 70, Y: 80})
	drag(c, vector.Pt{X: 70, Y: 80}, vector.Pt{X: 20, Y: 20})
	if m := c.CurrentTransform().Matrix(); !approx(m.E, 0) || !approx(m.F, 0) || m.A != 1 {
		t.Fatalf("transform not restored: %+v", m)
	}
}

func TestResetRestoresIdentity(t *testing.T) {
	c, h := newTestController(t, Config{})
	pinch(c, h, 20, 40)
	drag(c, vector.Pt{X: 50, Y: 50}, vector.Pt{X: 70, Y: 60})
	before := h.invalidations
	c.Reset()
	if !c.CurrentTransform().IsIdentity() || c.ScaleFactor() != 1 {
		t.Fatalf("reset left %+v", c.CurrentTransform().Matrix())
	}
	if h.invalidations != before+1 {
		t.Fatalf("reset should request one redraw")
	}
}

func TestPinchKeepsFocusFixed(t *testing.T) {
	c, h := newTestController(t, Config{})
	pinch(c, h, 20, 40)
	snap := c.CurrentTransform()
	if !approx(snap.Scale(), 2) {
		t.Fatalf("scale = %v, want 2", snap.Scale())
	}
	assertPt(t, snap.Apply(vector.Pt{X: 50, Y: 50}), 50, 50)
	p, ok := c.MapViewPointToSource(0, 0)
	if !ok {
		t.Fatalf("mapping should be defined")
	}
	assertPt(t, p, 25, 25)
}

func TestScaleClampsToMax(t *testing.T) {
	c, h := newTestController(t, Config{MinScale: 0.5, MaxScale: 2})
	pinch(c, h, 20, 60)
	if got := c.CurrentTransform().Scale(); !approx(got, 2) {
		t.Fatalf("scale = %v, want exactly the max 2", got)
	}
	if !approx(c.ScaleFactor(), 2) {
		t.Fatalf("scale factor = %v", c.ScaleFactor())
	}
}

func TestScaleClampsToMin(t *testing.T) {
	c, h := newTestController(t, Config{MinScale: 0.5, MaxScale: 2})
	pinch(c, h, 40, 10)
	if got := c.CurrentTransform().Scale(); !approx(got, 0.5) {
		t.Fatalf("scale = %v, want the min 0.5", got)
	}
}

func TestScaleNearBoundIsDropped(t *testing.T) {
	c, _ := newTestController(t, Config{MinScale: 0.5, MaxScale: 2})
	c.SubmitTouchEvent(Single(ActionDown, 40, 50))
	c.SubmitTouchEvent(two(ActionPointerDown, 1, 40, 50, 60, 50))
	c.SubmitTouchEvent(two(ActionMove, 0, 20, 50, 80, 50)) // x3, clamped to 2
	if got := c.CurrentTransform().Scale(); !approx(got, 2) {
		t.Fatalf("scale = %v, want 2", got)
	}
	c.SubmitTouchEvent(two(ActionMove, 0, 20.9, 50, 79.1, 50)) // x0.97 lands at 1.94
	if got := c.CurrentTransform().Scale(); !approx(got, 2) {
		t.Fatalf("update inside the dead zone changed scale to %v", got)
	}
	c.SubmitTouchEvent(two(ActionMove, 0, 30, 50, 70, 50)) // leaves the dead zone
	if got := c.CurrentTransform().Scale(); got >= 1.9 || got <= 0.5 {
		t.Fatalf("scale = %v, want a value well inside the bounds", got)
	}
}

func TestUnboundedScaleIsApplied(t *testing.T) {
	c, h := newTestController(t, Config{})
	pinch(c, h, 20, 60)
	pinch(c, h, 20, 60)
	if got := c.CurrentTransform().Scale(); !approx(got, 9) {
		t.Fatalf("scale = %v, want 9", got)
	}
}

func TestPanIsScaleCompensated(t *testing.T) {
	c, h := newTestController(t, Config{})
	pinch(c, h, 20, 40)
	drag(c, vector.Pt{X: 50, Y: 50}, vector.Pt{X: 60, Y: 50})
	p, _ := c.MapViewPointToSource(60, 50)
	assertPt(t, p, 50, 50)
}

func TestMovableReceivesDeltasAndFinishesOnce(t *testing.T) {
	var cb callbacks
	target := &recMovable{name: "box"}
	cfg := Config{FindMovableAt: func(p vector.Pt) Movable {
		if p.X < 50 {
			return target
		}
		return nil
	}}
	cb.install(&cfg)
	c, h := newTestController(t, cfg)
	pinch(c, h, 20, 40) // scale 2 around the center
	cb = callbacks{}    // the pinch cancelled the move it started on

	drag(c, vector.Pt{X: 40, Y: 40}, vector.Pt{X: 50, Y: 44}, vector.Pt{X: 60, Y: 48})
	if !approx(target.dx, 10) || !approx(target.dy, 4) {
		t.Fatalf("movable got (%v,%v), want scale-compensated (10,4)", target.dx, target.dy)
	}
	if !approx(c.CurrentTransform().Offset().X, -50) {
		t.Fatalf("dragging a movable must not pan: %+v", c.CurrentTransform().Matrix())
	}
	if len(cb.finished) != 1 || cb.finished[0] != target || len(cb.cancelled) != 0 {
		t.Fatalf("finished=%d cancelled=%d", len(cb.finished), len(cb.cancelled))
	}
}

func TestCancelNotifiesOnceAndSkipsFinish(t *testing.T) {
	var cb callbacks
	target := &recMovable{}
	cfg := Config{FindMovableAt: func(vector.Pt) Movable { return target }}
	cb.install(&cfg)
	c, _ := newTestController(t, cfg)

	c.SubmitTouchEvent(Single(ActionDown, 10, 10))
	c.SubmitTouchEvent(Single(ActionMove, 20, 10))
	c.SubmitTouchEvent(Single(ActionCancel, 20, 10))
	c.SubmitTouchEvent(Single(ActionMove, 30, 10))
	c.SubmitTouchEvent(Single(ActionUp, 30, 10))

	if len(cb.cancelled) != 1 || len(cb.finished) != 0 {
		t.Fatalf("cancelled=%d finished=%d", len(cb.cancelled), len(cb.finished))
	}
	if target.moves != 1 {
		t.Fatalf("moves after cancel must be ignored, got %d moves", target.moves)
	}
	if c.State() != StateIdle {
		t.Fatalf("state = %v", c.State())
	}
}

func TestLeavingSurfaceCancels(t *testing.T) {
	var cb callbacks
	target := &recMovable{}
	cfg := Config{FindMovableAt: func(vector.Pt) Movable { return target }}
	cb.install(&cfg)
	c, _ := newTestController(t, cfg)

	c.SubmitTouchEvent(Single(ActionDown, 90, 50))
	c.SubmitTouchEvent(Single(ActionMove, 95, 50))
	c.SubmitTouchEvent(Single(ActionMove, 120, 50))
	c.SubmitTouchEvent(Single(ActionMove, 99, 50))
	c.SubmitTouchEvent(Single(ActionUp, 99, 50))

	if len(cb.cancelled) != 1 || len(cb.finished) != 0 {
		t.Fatalf("cancelled=%d finished=%d", len(cb.cancelled), len(cb.finished))
	}
	if !approx(target.dx, 5) {
		t.Fatalf("only the in-bounds move should apply, dx=%v", target.dx)
	}
}

func TestLeavingSurfaceStopsPanning(t *testing.T) {
	c, _ := newTestController(t, Config{})
	c.SubmitTouchEvent(Single(ActionDown, 90, 50))
	c.SubmitTouchEvent(Single(ActionMove, 95, 50))
	c.SubmitTouchEvent(Single(ActionMove, 130, 50))
	c.SubmitTouchEvent(Single(ActionMove, 80, 50))
	if got := c.CurrentTransform().Matrix(); got != vector.Translate(5, 0) {
		t.Fatalf("transform = %+v, want translate(5,0)", got)
	}
}

func TestDownOutsideSurfaceIsIgnored(t *testing.T) {
	var found int
	c, _ := newTestController(t, Config{FindMovableAt: func(vector.Pt) Movable { found++; return nil }})
	c.SubmitTouchEvent(Single(ActionDown, -5, 50))
	c.SubmitTouchEvent(Single(ActionMove, 10, 50))
	c.SubmitTouchEvent(Single(ActionMove, 30, 50))
	if !c.CurrentTransform().IsIdentity() || found != 0 {
		t.Fatalf("off-surface drag should do nothing: %+v found=%d", c.CurrentTransform().Matrix(), found)
	}
}

func TestSecondPointerCancelsMoveOnce(t *testing.T) {
	var cb callbacks
	target := &recMovable{}
	cfg := Config{FindMovableAt: func(vector.Pt) Movable { return target }}
	cb.install(&cfg)
	c, h := newTestController(t, cfg)

	c.SubmitTouchEvent(Single(ActionDown, 40, 50))
	c.SubmitTouchEvent(two(ActionPointerDown, 1, 40, 50, 60, 50))
	if c.State() != StateScaling {
		t.Fatalf("state = %v, want scaling", c.State())
	}
	c.SubmitTouchEvent(two(ActionMove, 0, 30, 50, 70, 50))
	c.SubmitTouchEvent(two(ActionPointerUp, 1, 30, 50, 70, 50))
	h.advance(DefaultCooldown)
	c.SubmitTouchEvent(Single(ActionUp, 30, 50))

	if len(cb.cancelled) != 1 || len(cb.finished) != 0 {
		t.Fatalf("cancelled=%d finished=%d", len(cb.cancelled), len(cb.finished))
	}
	if target.moves != 0 {
		t.Fatalf("movable should not move during a pinch")
	}
	if !approx(c.CurrentTransform().Scale(), 2) {
		t.Fatalf("pinch should still zoom, scale=%v", c.CurrentTransform().Scale())
	}
}

func TestCooldownSwallowsEvents(t *testing.T) {
	var forwarded []Action
	c, h := newTestController(t, Config{ForwardTouch: func(ev TouchEvent) bool {
		forwarded = append(forwarded, ev.Action)
		return true
	}})
	c.SubmitTouchEvent(Single(ActionDown, 40, 50))
	c.SubmitTouchEvent(two(ActionPointerDown, 1, 40, 50, 60, 50))
	c.SubmitTouchEvent(two(ActionPointerUp, 1, 40, 50, 60, 50))
	if h.pending() != 1 {
		t.Fatalf("pinch end should schedule the cooldown")
	}
	n := len(forwarded)
	before := c.CurrentTransform()

	if !c.SubmitTouchEvent(Single(ActionMove, 10, 50)) {
		t.Fatalf("events during cooldown are still reported as handled")
	}
	h.advance(50 * time.Millisecond)
	c.SubmitTouchEvent(Single(ActionMove, 0, 50))
	if len(forwarded) != n || c.CurrentTransform() != before {
		t.Fatalf("events inside the cooldown must be dropped")
	}

	h.advance(50 * time.Millisecond)
	c.SubmitTouchEvent(Single(ActionMove, 20, 50)) // re-anchors
	c.SubmitTouchEvent(Single(ActionMove, 30, 50))
	if got := c.CurrentTransform().Matrix(); got != vector.Translate(10, 0) {
		t.Fatalf("after cooldown the pan should resume without a jump: %+v", got)
	}
	if len(forwarded) != n+2 {
		t.Fatalf("forwarded %d events after cooldown, want 2", len(forwarded)-n)
	}
}

func TestCloseStopsCooldown(t *testing.T) {
	c, h := newTestController(t, Config{})
	c.SubmitTouchEvent(Single(ActionDown, 40, 50))
	c.SubmitTouchEvent(two(ActionPointerDown, 1, 40, 50, 60, 50))
	c.SubmitTouchEvent(two(ActionPointerUp, 1, 40, 50, 60, 50))
	c.Close()
	if h.pending() != 0 {
		t.Fatalf("Close should stop the pending timer")
	}
}

func TestForwardTouchSeesEveryEvent(t *testing.T) {
	var got []Action
	c, _ := newTestController(t, Config{ForwardTouch: func(ev TouchEvent) bool {
		got = append(got, ev.Action)
		return false
	}})
	drag(c, vector.Pt{X: 10, Y: 10}, vector.Pt{X: 20, Y: 10})
	want := []Action{ActionDown, ActionMove, ActionUp}
	if len(got) != len(want) {
		t.Fatalf("forwarded %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("forwarded %v, want %v", got, want)
		}
	}
}

func TestFindScalableAtIsNotConsulted(t *testing.T) {
	called := false
	c, h := newTestController(t, Config{FindScalableAt: func(vector.Pt) Scalable {
		called = true
		return nil
	}})
	pinch(c, h, 20, 40)
	drag(c, vector.Pt{X: 10, Y: 10}, vector.Pt{X: 20, Y: 10})
	if called {
		t.Fatalf("FindScalableAt should not be called")
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	c, _ := newTestController(t, Config{})
	snap := c.CurrentTransform()
	m := snap.Matrix()
	m.E = 99
	drag(c, vector.Pt{X: 10, Y: 10}, vector.Pt{X: 20, Y: 10})
	if !snap.IsIdentity() {
		t.Fatalf("snapshot changed after later gestures: %+v", snap.Matrix())
	}
	if c.CurrentTransform().Offset().X != 10 {
		t.Fatalf("editing a snapshot matrix must not affect the controller")
	}
}

type concatRecorder struct{ got []vector.Affine2D }

func (r *concatRecorder) Concat(m vector.Affine2D) { r.got = append(r.got, m) }

func TestApplyToConcatsTransform(t *testing.T) {
	c, _ := newTestController(t, Config{})
	drag(c, vector.Pt{X: 10, Y: 10}, vector.Pt{X: 15, Y: 30})
	var r concatRecorder
	c.ApplyTo(&r)
	if len(r.got) != 1 || r.got[0] != vector.Translate(5, 20) {
		t.Fatalf("ApplyTo concatenated %+v", r.got)
	}
}

func TestMappingUndefinedBeforeLayout(t *testing.T) {
	c, err := New(&fakeHost{}, Config{Logger: quiet})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.MapViewPointToSource(1, 1); ok {
		t.Fatalf("mapping should be undefined without a source rect")
	}
	// without a surface every down lands outside it
	c.SubmitTouchEvent(Single(ActionDown, 1, 1))
	c.SubmitTouchEvent(Single(ActionMove, 5, 1))
	if !c.CurrentTransform().IsIdentity() {
		t.Fatalf("no pan expected before layout")
	}
}
