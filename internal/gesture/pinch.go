/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package gesture

import (
	"math"

	"jescher/internal/vector"
)

type pinchListener interface {
	onScaleBegin(focus vector.Pt)
	onScale(factor float32)
	onScaleEnd()
}

// pinchDetector turns multi-pointer events into begin/scale/end calls.
// Focus is the centroid of the pointers that stay down, span is twice their
// mean distance to it (the finger distance for two pointers), and each move
// reports span/prevSpan.
type pinchDetector struct {
	inProgress bool
	prevSpan   float32
}

func (d *pinchDetector) onTouch(ev TouchEvent, l pinchListener) {
	pts := ev.remaining()
	if d.inProgress && len(pts) < 2 {
		d.inProgress = false
		d.prevSpan = 0
		l.onScaleEnd()
		return
	}
	if len(pts) < 2 {
		return
	}
	focus, span := measure(pts)
	if !d.inProgress {
		if span <= 0 {
			return
		}
		d.inProgress = true
		d.prevSpan = span
		l.onScaleBegin(focus)
		return
	}
	if span <= 0 {
		return
	}
	if ev.Action == ActionMove {
		l.onScale(span / d.prevSpan)
	}
	// pointer set changes only re-baseline
	d.prevSpan = span
}

func measure(pts []Pointer) (focus vector.Pt, span float32) {
	n := float32(len(pts))
	for _, p := range pts {
		focus.X += p.X
		focus.Y += p.Y
	}
	focus.X /= n
	focus.Y /= n
	var dev float64
	for _, p := range pts {
		dev += math.Hypot(float64(p.X-focus.X), float64(p.Y-focus.Y))
	}
	return focus, float32(2 * dev / float64(n))
}
