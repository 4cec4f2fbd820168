/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package gesture

import "jescher/internal/vector"

// Action is the kind of a touch event.
type Action uint8

const (
	ActionDown        Action = iota // first pointer went down
	ActionPointerDown               // an additional pointer went down
	ActionMove
	ActionPointerUp // a non-last pointer went up; it is still listed in Pointers
	ActionUp        // last pointer went up
	ActionCancel
)

var actionNames = [...]string{"down", "pointer_down", "move", "pointer_up", "up", "cancel"}

func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "unknown"
}

// ParseAction is the inverse of Action.String.
func ParseAction(s string) (Action, bool) {
	for i, n := range actionNames {
		if n == s {
			return Action(i), true
		}
	}
	return 0, false
}

// Pointer is one finger in view-space pixels.
type Pointer struct {
	ID   int
	X, Y float32
}

// TouchEvent is one raw event from the host. Pointers lists every pointer that
// is down, including the one going up for ActionPointerUp. Index names the
// pointer that changed for ActionPointerDown and ActionPointerUp.
type TouchEvent struct {
	Action   Action
	Pointers []Pointer
	Index    int
}

// Count is the number of pointers reported by the event.
func (e TouchEvent) Count() int { return len(e.Pointers) }

// Pos is the position of the primary pointer.
func (e TouchEvent) Pos() vector.Pt {
	if len(e.Pointers) == 0 {
		return vector.Pt{}
	}
	return vector.Pt{X: e.Pointers[0].X, Y: e.Pointers[0].Y}
}

// remaining returns the pointers that stay down after this event.
func (e TouchEvent) remaining() []Pointer {
	switch e.Action {
	case ActionUp, ActionCancel:
		return nil
	case ActionPointerUp:
		if e.Index < 0 || e.Index >= len(e.Pointers) {
			return e.Pointers
		}
		out := make([]Pointer, 0, len(e.Pointers)-1)
		out = append(out, e.Pointers[:e.Index]...)
		return append(out, e.Pointers[e.Index+1:]...)
	}
	return e.Pointers
}

// Single builds a one-pointer event.
func Single(a Action, x, y float32) TouchEvent {
	return TouchEvent{Action: a, Pointers: []Pointer{{X: x, Y: y}}}
}
