/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

// Node is a drawable item in source space. Nodes can be dragged and resized
// by the gesture engine, which only sees them through MoveBy and ScaleBy.
type Node interface {
	Bounds() Rect
	Hit(p Pt) bool
	MoveBy(dx, dy float32)
	ScaleBy(amount float32)
	Selected() bool
	SetSelected(bool)
	Draw(p Painter)
}

// Painter is the minimal drawing surface a node needs. Coordinates are in
// source space; the painter owns the current transform.
type Painter interface {
	FillRect(r Rect, c Color)
}

// SelectionOverlay is drawn over selected nodes.
var SelectionOverlay = Color{R: 0, G: 0, B: 0, A: 102}

// RectNode is a filled axis-aligned rectangle.
type RectNode struct {
	rect     Rect
	fill     Fill
	selected bool
}

func NewRect(r Rect, f Fill) *RectNode {
	return &RectNode{rect: r, fill: f}
}

// NewCenteredRect builds a rect of size w,h around (cx,cy).
func NewCenteredRect(cx, cy, w, h float32, c Color) *RectNode {
	return NewRect(R(cx-w/2, cy-h/2, w, h), Fill{Enabled: true, Color: c})
}

func (n *RectNode) Bounds() Rect       { return n.rect }
func (n *RectNode) Fill() Fill         { return n.fill }
func (n *RectNode) Hit(p Pt) bool      { return n.rect.Contains(p) }
func (n *RectNode) Selected() bool     { return n.selected }
func (n *RectNode) SetSelected(s bool) { n.selected = s }

func (n *RectNode) MoveBy(dx, dy float32) { n.rect = n.rect.Offset(dx, dy) }

// ScaleBy grows the rect around its center by amount times its size.
// Negative amounts shrink it.
func (n *RectNode) ScaleBy(amount float32) {
	n.rect = n.rect.Inset(-(n.rect.W*amount)/2, -(n.rect.H*amount)/2)
}

func (n *RectNode) Draw(p Painter) {
	if n.fill.Enabled {
		p.FillRect(n.rect, n.fill.Color)
	}
	if n.selected {
		p.FillRect(n.rect, SelectionOverlay)
	}
}
