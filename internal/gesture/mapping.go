/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package gesture

import "jescher/internal/vector"

// viewToSource maps a view-space point into source space. The source rect is
// pushed through m; p is expressed as a fraction of that mapped rect and the
// same fraction is taken of the untransformed source rect. This is exact for
// translate + uniform scale and needs no matrix inverse.
// ok is false while the source rect or its mapped image has no area.
func viewToSource(m vector.Affine2D, source vector.Rect, p vector.Pt) (vector.Pt, bool) {
	if source.Empty() {
		return vector.Pt{}, false
	}
	mapped := m.MapRect(source)
	if mapped.Empty() {
		return vector.Pt{}, false
	}
	return vector.Pt{
		X: source.X + source.W*((p.X-mapped.X)/mapped.W),
		Y: source.Y + source.H*((p.Y-mapped.Y)/mapped.H),
	}, true
}
