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

	"jescher/internal/vector"
)

// State is the gesture state of a Controller.
type State uint8

const (
	StateIdle State = iota
	// StateSinglePointer covers both dragging a movable and panning the view.
	StateSinglePointer
	StateScaling
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSinglePointer:
		return "single_pointer"
	case StateScaling:
		return "scaling"
	}
	return "unknown"
}

// Controller owns the view transform of one host surface and feeds it from touch events.
type Controller struct {
	host   Host
	cfg    Config
	policy scalePolicy
	log    *slog.Logger

	m           vector.Affine2D
	scaleFactor float32
	source      vector.Rect

	state     State
	cur, prev vector.Pt
	movable   Movable
	// cancelled is set when the drag was cancelled, including by leaving the
	// surface, and cleared by the next pointer down.
	cancelled bool

	pinch   pinchDetector
	focus   vector.Pt
	focusOK bool

	cooling  bool
	cooldown Timer
}

// New validates cfg and returns a controller with the identity transform.
func New(host Host, cfg Config) (*Controller, error) {
	if host == nil {
		return nil, &ConfigurationError{Field: "Host", Value: nil, Reason: "is required"}
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()
	return &Controller{
		host:        host,
		cfg:         cfg,
		policy:      scalePolicy{min: cfg.MinScale, max: cfg.MaxScale, hysteresis: cfg.Hysteresis},
		log:         cfg.Logger,
		m:           vector.Identity,
		scaleFactor: 1,
	}, nil
}

// SetSourceRect records the surface bounds in view pixels. Call it on layout and every resize.
func (c *Controller) SetSourceRect(r vector.Rect) { c.source = r }

// SetSourceBounds is SetSourceRect for edge-based layout callbacks.
func (c *Controller) SetSourceBounds(left, top, right, bottom float32) {
	c.SetSourceRect(vector.RectLTRB(left, top, right, bottom))
}

func (c *Controller) SourceRect() vector.Rect { return c.source }
func (c *Controller) State() State             { return c.state }

// ScaleFactor is the absolute zoom used to convert pan deltas to source units.
func (c *Controller) ScaleFactor() float32 { return c.scaleFactor }

// CurrentTransform returns a copy of the transform.
func (c *Controller) CurrentTransform() Snapshot { return Snapshot{m: c.m} }

// Reset restores the identity transform and requests a redraw.
func (c *Controller) Reset() {
	c.m = vector.Identity
	c.scaleFactor = 1
	c.host.Invalidate()
}

// ApplyTo concatenates the transform onto the target before content is drawn.
func (c *Controller) ApplyTo(t RenderTarget) { t.Concat(c.m) }

// MapViewPointToSource maps a view-space point into source space.
// ok is false until the surface has a non-empty source rect.
func (c *Controller) MapViewPointToSource(x, y float32) (vector.Pt, bool) {
	return viewToSource(c.m, c.source, vector.Pt{X: x, Y: y})
}

// Close stops a pending cooldown timer. The controller must not be used afterwards.
func (c *Controller) Close() {
	if c.cooldown != nil {
		c.cooldown.Stop()
		c.cooldown = nil
	}
	c.cooling = false
}

// SubmitTouchEvent feeds one raw event into the state machine. Events that
// arrive within the cooldown after a pinch are dropped. The event is always
// reported as handled.
func (c *Controller) SubmitTouchEvent(ev TouchEvent) bool {
	if c.cooling {
		return true
	}
	c.pinch.onTouch(ev, c)
	switch n := ev.Count(); {
	case n == 1:
		c.handleSinglePointer(ev)
	case n > 1:
		if c.movable != nil {
			c.log.Debug("second pointer cancels move")
			c.cancelMovable()
		}
		if len(ev.remaining()) >= 2 {
			c.state = StateScaling
		} else {
			c.state = StateIdle
		}
	}
	c.cfg.ForwardTouch(ev)
	c.host.Invalidate()
	return true
}

func (c *Controller) handleSinglePointer(ev TouchEvent) {
	c.cur = ev.Pos()
	switch ev.Action {
	case ActionDown:
		c.onDown()
	case ActionMove:
		c.onMove()
	case ActionUp:
		c.onUp()
	case ActionCancel:
		c.onCancel()
	}
}

func (c *Controller) onDown() {
	if c.movable != nil {
		// the previous gesture never ended
		c.cancelMovable()
	}
	if !c.source.Contains(c.cur) {
		// started off-surface: ignore the rest of this drag
		c.cancelled = true
		c.state = StateIdle
		return
	}
	c.cancelled = false
	if src, ok := viewToSource(c.m, c.source, c.cur); ok {
		c.movable = c.cfg.FindMovableAt(src)
		c.log.Debug("down", slog.Float64("x", float64(src.X)), slog.Float64("y", float64(src.Y)), slog.Bool("movable", c.movable != nil))
	}
	c.prev = c.cur
	c.state = StateSinglePointer
}

func (c *Controller) onMove() {
	if c.cancelled {
		return
	}
	if c.state != StateSinglePointer {
		// a pointer left over from a pinch, or a move without a down: re-anchor and pan from here
		if c.source.Contains(c.cur) {
			c.prev = c.cur
			c.state = StateSinglePointer
		}
		return
	}
	// Platforms stop delivering cancel once the pointer leaves the view.
	if !c.source.Contains(c.cur) {
		c.log.Debug("pointer left surface")
		c.onCancel()
		return
	}
	dx := (c.cur.X - c.prev.X) / c.scaleFactor
	dy := (c.cur.Y - c.prev.Y) / c.scaleFactor
	if c.movable != nil {
		c.movable.MoveBy(dx, dy)
	} else {
		c.m = c.m.PreTranslate(dx, dy)
	}
	c.prev = c.cur
}

func (c *Controller) onUp() {
	c.log.Debug("up", slog.Bool("cancelled", c.cancelled))
	c.state = StateIdle
	if c.cancelled {
		return
	}
	if m := c.movable; m != nil {
		c.movable = nil
		c.cfg.OnMoveFinished(m)
	}
}

func (c *Controller) onCancel() {
	c.log.Debug("cancel")
	c.cancelled = true
	c.state = StateIdle
	c.cancelMovable()
}

func (c *Controller) cancelMovable() {
	if m := c.movable; m != nil {
		c.movable = nil
		c.cfg.OnMoveCancelled(m)
	}
}

func (c *Controller) onScaleBegin(focus vector.Pt) {
	c.focus, c.focusOK = viewToSource(c.m, c.source, focus)
	c.log.Debug("scale begin", slog.Float64("focus_x", float64(c.focus.X)), slog.Float64("focus_y", float64(c.focus.Y)))
}

func (c *Controller) onScale(factor float32) {
	if !c.focusOK || !(factor > 0) || factor > maxStepFactor {
		return
	}
	c.clampedScale(factor)
}

func (c *Controller) onScaleEnd() {
	c.log.Debug("scale end", slog.Float64("scale", float64(c.scaleFactor)))
	c.focusOK = false
	if c.cooldown != nil {
		c.cooldown.Stop()
	}
	c.cooling = true
	c.cooldown = c.host.AfterFunc(c.cfg.Cooldown, c.endCooldown)
}

func (c *Controller) endCooldown() {
	c.cooling = false
	c.cooldown = nil
}

// maxStepFactor rejects infinite factors from a pinch that started at a single point.
const maxStepFactor = 1e6
