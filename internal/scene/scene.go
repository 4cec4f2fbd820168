/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package scene holds the sample content drawn under the gesture transform:
// an ordered list of nodes, the current selection and the callbacks that tie
// both to a gesture.Controller.
package scene

import (
	"log/slog"
	"math/rand/v2"

	"jescher/internal/gesture"
	applog "jescher/internal/log"
	"jescher/internal/vector"
)

const (
	minDimensionFactor float32 = 0.15
	maxDimensionFactor float32 = 0.4
)

// Palette is the set of colors AddRect picks from.
var Palette = []vector.Color{vector.Black, vector.Blue, vector.DarkGray, vector.Green, vector.Magenta, vector.Red}

// Scene is an ordered list of nodes; later nodes are drawn on top.
type Scene struct {
	nodes    []vector.Node
	selected vector.Node
	rnd      *rand.Rand
	log      *slog.Logger
}

// New returns an empty scene whose random rectangles are derived from seed.
func New(seed uint64) *Scene {
	return &Scene{
		rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		log: applog.WithComponent("scene"),
	}
}

func (s *Scene) Add(n vector.Node)     { s.nodes = append(s.nodes, n) }
func (s *Scene) Nodes() []vector.Node  { return s.nodes }
func (s *Scene) Selected() vector.Node { return s.selected }
func (s *Scene) Len() int              { return len(s.nodes) }

// AddRect adds a rectangle centered in surface, sized between 15% and 40% of
// each surface dimension, with a color from Palette.
func (s *Scene) AddRect(surface vector.Rect) *vector.RectNode {
	c := surface.Center()
	w := surface.W * s.dimensionFactor()
	h := surface.H * s.dimensionFactor()
	n := vector.NewCenteredRect(c.X, c.Y, w, h, Palette[s.rnd.IntN(len(Palette))])
	s.Add(n)
	s.log.Debug("rect added", slog.Any("bounds", n.Bounds()), slog.String("color", n.Fill().Color.Hex()))
	return n
}

func (s *Scene) dimensionFactor() float32 {
	return minDimensionFactor + (maxDimensionFactor-minDimensionFactor)*s.rnd.Float32()
}

// NodeAt returns the top-most node containing p, or nil.
func (s *Scene) NodeAt(p vector.Pt) vector.Node {
	for i := len(s.nodes) - 1; i >= 0; i-- {
		if s.nodes[i].Hit(p) {
			return s.nodes[i]
		}
	}
	return nil
}

// FindMovableAt selects and returns the node under p. It returns a nil
// interface when nothing is hit so the controller pans instead.
func (s *Scene) FindMovableAt(p vector.Pt) gesture.Movable {
	n := s.NodeAt(p)
	if n == nil {
		return nil
	}
	s.selectNode(n)
	return n
}

// FindScalableAt reports the node under p as a resize target.
func (s *Scene) FindScalableAt(p vector.Pt) gesture.Scalable {
	if n := s.NodeAt(p); n != nil {
		return n
	}
	return nil
}

func (s *Scene) OnMoveFinished(m gesture.Movable)  { s.release(m) }
func (s *Scene) OnMoveCancelled(m gesture.Movable) { s.release(m) }

func (s *Scene) selectNode(n vector.Node) {
	if s.selected != nil && s.selected != n {
		s.selected.SetSelected(false)
	}
	s.selected = n
	n.SetSelected(true)
}

func (s *Scene) release(m gesture.Movable) {
	n, ok := m.(vector.Node)
	if !ok {
		return
	}
	n.SetSelected(false)
	if s.selected == n {
		s.selected = nil
	}
}

// Bind installs the scene callbacks into cfg.
func (s *Scene) Bind(cfg *gesture.Config) {
	cfg.FindMovableAt = s.FindMovableAt
	cfg.FindScalableAt = s.FindScalableAt
	cfg.OnMoveFinished = s.OnMoveFinished
	cfg.OnMoveCancelled = s.OnMoveCancelled
}

// Draw paints every node bottom to top.
func (s *Scene) Draw(p vector.Painter) {
	for _, n := range s.nodes {
		n.Draw(p)
	}
}
