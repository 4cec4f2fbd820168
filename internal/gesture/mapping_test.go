/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package gesture

import (
	"testing"

	"jescher/internal/vector"
)

func TestViewToSourceInvertsTranslateAndScale(t *testing.T) {
	source := vector.R(0, 0, 200, 100)
	m := vector.Translate(30, -10).PreScale(2.5, 80, 40)
	for _, p := range []vector.Pt{{X: 0, Y: 0}, {X: 80, Y: 40}, {X: 199, Y: 3}, {X: 12.5, Y: 77}} {
		got, ok := viewToSource(m, source, m.Apply(p))
		if !ok {
			t.Fatalf("mapping undefined for %+v", p)
		}
		assertPt(t, got, p.X, p.Y)
	}
}

func TestViewToSourceOffsetSurface(t *testing.T) {
	source := vector.RectLTRB(100, 50, 300, 250)
	got, ok := viewToSource(vector.Identity, source, vector.Pt{X: 150, Y: 60})
	if !ok {
		t.Fatal("mapping undefined")
	}
	assertPt(t, got, 150, 60)
}

func TestViewToSourceDegenerate(t *testing.T) {
	if _, ok := viewToSource(vector.Identity, vector.Rect{}, vector.Pt{}); ok {
		t.Fatalf("empty source rect must not map")
	}
	if _, ok := viewToSource(vector.Scale(0, 0), vector.R(0, 0, 10, 10), vector.Pt{}); ok {
		t.Fatalf("collapsed transform must not map")
	}
}
