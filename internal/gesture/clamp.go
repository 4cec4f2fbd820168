/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package gesture

// scalePolicy clamps incremental pinch factors so the absolute zoom stays in [min, max].
type scalePolicy struct {
	min, max   float32
	hysteresis float32
}

func (p scalePolicy) bounded() bool { return p.min != 0 }

// adjust returns the factor to apply given the proposed factor s, the current
// absolute scale prev and the absolute scale final that s would produce.
// ok is false when the update must be dropped.
func (p scalePolicy) adjust(s, prev, final float32) (factor float32, ok bool) {
	if s == 1 {
		return 1, false
	}
	if !p.bounded() {
		return s, true
	}
	if abs(final-p.max) <= p.hysteresis || abs(final-p.min) <= p.hysteresis {
		return 1, false
	}
	switch {
	case final > p.max:
		return p.max / prev, true
	case final < p.min:
		return p.min / prev, true
	}
	return s, true
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// clampedScale applies a pinch factor around the stored focus point.
func (c *Controller) clampedScale(s float32) {
	prev := c.m.ScaleX()
	scratch := c.m.PreScale(s, c.focus.X, c.focus.Y)
	factor, ok := c.policy.adjust(s, prev, scratch.ScaleX())
	if !ok {
		return
	}
	c.m = c.m.PreScale(factor, c.focus.X, c.focus.Y)
	c.scaleFactor = c.m.ScaleX()
}
