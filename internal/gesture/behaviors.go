/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package gesture

import (
	"time"

	"jescher/internal/vector"
)

// Movable is anything that can be dragged by a relative offset in source units.
type Movable interface {
	MoveBy(dx, dy float32)
}

// Scalable is anything that can be resized by a relative amount.
type Scalable interface {
	ScaleBy(amount float32)
}

// Host is the surface the controller is attached to.
// AfterFunc must run f on the same thread that delivers touch events.
type Host interface {
	Invalidate()
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a pending deferred callback. *time.Timer satisfies it.
type Timer interface {
	Stop() bool
}

// RenderTarget receives the view transform before content is drawn.
type RenderTarget interface {
	Concat(m vector.Affine2D)
}
