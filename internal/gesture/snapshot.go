/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package gesture

import "jescher/internal/vector"

// Snapshot is a read-only copy of the controller transform taken at one point in time.
type Snapshot struct{ m vector.Affine2D }

func (s Snapshot) Matrix() vector.Affine2D           { return s.m }
func (s Snapshot) Scale() float32                    { return s.m.ScaleX() }
func (s Snapshot) Offset() vector.Pt                 { return s.m.Offset() }
func (s Snapshot) Apply(p vector.Pt) vector.Pt       { return s.m.Apply(p) }
func (s Snapshot) IsIdentity() bool                  { return s.m == vector.Identity }
func (s Snapshot) MapRect(r vector.Rect) vector.Rect { return s.m.MapRect(r) }

// ApplyTo concatenates the captured transform onto t.
func (s Snapshot) ApplyTo(t RenderTarget) { t.Concat(s.m) }
