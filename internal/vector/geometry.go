/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

// Basic 2D geometry shared by the gesture engine, the sample scene and the render targets.
// Float values use float32 to match touch coordinates reported by UI toolkits.

// Pt is a 2D point.
type Pt struct{ X, Y float32 }

func (p Pt) Sub(o Pt) Pt { return Pt{p.X - o.X, p.Y - o.Y} }

// Rect is an axis-aligned rectangle defined by min corner and size.
type Rect struct {
	X, Y float32
	W, H float32
}

func R(x, y, w, h float32) Rect { return Rect{X: x, Y: y, W: w, H: h} }

// RectLTRB builds a rect from edges, the way layout callbacks report bounds.
func RectLTRB(left, top, right, bottom float32) Rect {
	return Rect{X: left, Y: top, W: right - left, H: bottom - top}
}

func (r Rect) Min() Pt { return Pt{r.X, r.Y} }
func (r Rect) Max() Pt { return Pt{r.X + r.W, r.Y + r.H} }

func (r Rect) Center() Pt { return Pt{r.X + r.W/2, r.Y + r.H/2} }

// Empty reports whether the rect has no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Contains reports whether p lies inside r. Edges are inclusive; empty rects contain nothing.
func (r Rect) Contains(p Pt) bool {
	if r.Empty() {
		return false
	}
	return p.X >= r.X && p.Y >= r.Y && p.X <= r.X+r.W && p.Y <= r.Y+r.H
}

// Offset returns r moved by dx,dy.
func (r Rect) Offset(dx, dy float32) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// Inset returns a rectangle inset by dx,dy on all sides (negative grows).
func (r Rect) Inset(dx, dy float32) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W - 2*dx, H: r.H - 2*dy}
}

// Affine2D represents a 2D affine transform as matrix:
// | a c e |
// | b d f |
// | 0 0 1 |
// stored as [a b c d e f].
type Affine2D struct{ A, B, C, D, E, F float32 }

var Identity = Affine2D{A: 1, D: 1}

// Mul returns m*n: n is applied first, then m.
func (m Affine2D) Mul(n Affine2D) Affine2D {
	return Affine2D{
		A: m.A*n.A + m.C*n.B,
		B: m.B*n.A + m.D*n.B,
		C: m.A*n.C + m.C*n.D,
		D: m.B*n.C + m.D*n.D,
		E: m.A*n.E + m.C*n.F + m.E,
		F: m.B*n.E + m.D*n.F + m.F,
	}
}

func (m Affine2D) Apply(p Pt) Pt {
	return Pt{
		X: m.A*p.X + m.C*p.Y + m.E,
		Y: m.B*p.X + m.D*p.Y + m.F,
	}
}

func Translate(tx, ty float32) Affine2D { return Affine2D{A: 1, D: 1, E: tx, F: ty} }
func Scale(sx, sy float32) Affine2D     { return Affine2D{A: sx, D: sy} }

// ScaleAt scales by s around the pivot (px,py).
func ScaleAt(s, px, py float32) Affine2D {
	return Affine2D{A: s, D: s, E: px - s*px, F: py - s*py}
}

// PreTranslate applies a translation in the source space of m, before m itself.
func (m Affine2D) PreTranslate(dx, dy float32) Affine2D { return m.Mul(Translate(dx, dy)) }

// PreScale applies a uniform scale around a source-space pivot, before m itself.
func (m Affine2D) PreScale(s, px, py float32) Affine2D { return m.Mul(ScaleAt(s, px, py)) }

// ScaleX returns the horizontal scale component. Gesture transforms scale
// uniformly, so this is the zoom factor.
func (m Affine2D) ScaleX() float32 { return m.A }

// Offset returns the translation component.
func (m Affine2D) Offset() Pt { return Pt{m.E, m.F} }

func (m Affine2D) Det() float32 { return m.A*m.D - m.B*m.C }

// Invert returns the inverse transform. ok is false for singular matrices.
func (m Affine2D) Invert() (inv Affine2D, ok bool) {
	det := m.Det()
	if det == 0 {
		return Affine2D{}, false
	}
	a := m.D / det
	b := -m.B / det
	c := -m.C / det
	d := m.A / det
	return Affine2D{A: a, B: b, C: c, D: d, E: -(a*m.E + c*m.F), F: -(b*m.E + d*m.F)}, true
}

// MapRect returns the bounding box of r after transformation.
func (m Affine2D) MapRect(r Rect) Rect {
	corners := [4]Pt{{r.X, r.Y}, {r.X + r.W, r.Y}, {r.X, r.Y + r.H}, {r.X + r.W, r.Y + r.H}}
	p := m.Apply(corners[0])
	minX, minY, maxX, maxY := p.X, p.Y, p.X, p.Y
	for _, c := range corners[1:] {
		p = m.Apply(c)
		minX = min(minX, p.X)
		minY = min(minY, p.Y)
		maxX = max(maxX, p.X)
		maxY = max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}
