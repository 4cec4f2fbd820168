/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package replay plays recorded touch streams through a gesture.Controller on
// a virtual clock, so a session can be reproduced and rendered offline.
package replay

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	gojsonschema "github.com/xeipuuv/gojsonschema"

	"jescher/internal/gesture"
	"jescher/internal/vector"
)

//go:embed recording.schema.json
var schemaJSON []byte

// Bounds is the surface rect in view pixels, as edges.
type Bounds struct {
	Left   float32 `json:"left"`
	Top    float32 `json:"top"`
	Right  float32 `json:"right"`
	Bottom float32 `json:"bottom"`
}

func (b Bounds) Rect() vector.Rect { return vector.RectLTRB(b.Left, b.Top, b.Right, b.Bottom) }

// Shape is a rectangle placed in the scene before playback.
type Shape struct {
	X     float32 `json:"x"`
	Y     float32 `json:"y"`
	W     float32 `json:"w"`
	H     float32 `json:"h"`
	Color string  `json:"color,omitempty"`
}

// Settings overrides the gesture configuration for one recording.
type Settings struct {
	MinScale   *float32 `json:"min_scale,omitempty"`
	MaxScale   *float32 `json:"max_scale,omitempty"`
	Hysteresis *float32 `json:"hysteresis,omitempty"`
	CooldownMs *int     `json:"cooldown_ms,omitempty"`
}

type Pointer struct {
	ID int     `json:"id"`
	X  float32 `json:"x"`
	Y  float32 `json:"y"`
}

// Event is one touch event at T milliseconds after the recording started.
type Event struct {
	T        int64     `json:"t"`
	Action   string    `json:"action"`
	Pointers []Pointer `json:"pointers"`
	Index    int       `json:"index,omitempty"`
}

func (e Event) At() time.Duration { return time.Duration(e.T) * time.Millisecond }

// Touch converts the event for the controller. Action names were checked by Parse.
func (e Event) Touch() gesture.TouchEvent {
	a, _ := gesture.ParseAction(e.Action)
	ev := gesture.TouchEvent{Action: a, Index: e.Index, Pointers: make([]gesture.Pointer, len(e.Pointers))}
	for i, p := range e.Pointers {
		ev.Pointers[i] = gesture.Pointer{ID: p.ID, X: p.X, Y: p.Y}
	}
	return ev
}

// Recording is a replayable gesture session.
type Recording struct {
	Surface     Bounds    `json:"surface"`
	Seed        uint64    `json:"seed,omitempty"`
	RandomRects int       `json:"random_rects,omitempty"`
	Shapes      []Shape   `json:"shapes,omitempty"`
	Gesture     *Settings `json:"gesture,omitempty"`
	Events      []Event   `json:"events"`
}

// ValidationError lists every problem found in a recording.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid recording: " + strings.Join(e.Problems, "; ")
}

// Validate checks data against the recording schema.
func Validate(data []byte) error {
	res, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(schemaJSON), gojsonschema.NewBytesLoader(data))
	if err != nil {
		return &ValidationError{Problems: []string{err.Error()}}
	}
	if res.Valid() {
		return nil
	}
	ve := &ValidationError{}
	for _, e := range res.Errors() {
		ve.Problems = append(ve.Problems, e.String())
	}
	return ve
}

// Parse validates and decodes a recording.
func Parse(data []byte) (*Recording, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}
	var rec Recording
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode recording: %w", err)
	}
	if err := rec.check(); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Load reads and parses a recording file.
func Load(path string) (*Recording, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read recording: %w", err)
	}
	return Parse(data)
}

// check covers the rules the schema cannot express.
func (r *Recording) check() error {
	ve := &ValidationError{}
	if r.Surface.Rect().Empty() {
		ve.Problems = append(ve.Problems, "surface: right/bottom must exceed left/top")
	}
	for i, s := range r.Shapes {
		if s.Color == "" {
			continue
		}
		if _, err := vector.ParseHex(s.Color); err != nil {
			ve.Problems = append(ve.Problems, fmt.Sprintf("shapes.%d.color: %v", i, err))
		}
	}
	var last int64
	for i, e := range r.Events {
		if e.T < last {
			ve.Problems = append(ve.Problems, fmt.Sprintf("events.%d.t: %d is before the previous event at %d", i, e.T, last))
		}
		last = max(last, e.T)
		a, _ := gesture.ParseAction(e.Action)
		if (a == gesture.ActionPointerDown || a == gesture.ActionPointerUp) && e.Index >= len(e.Pointers) {
			ve.Problems = append(ve.Problems, fmt.Sprintf("events.%d.index: %d out of range for %d pointers", i, e.Index, len(e.Pointers)))
		}
	}
	if len(ve.Problems) > 0 {
		return ve
	}
	return nil
}

// Apply copies the overrides onto cfg.
func (s *Settings) Apply(cfg *gesture.Config) {
	if s == nil {
		return
	}
	if s.MinScale != nil {
		cfg.MinScale = *s.MinScale
	}
	if s.MaxScale != nil {
		cfg.MaxScale = *s.MaxScale
	}
	if s.Hysteresis != nil {
		cfg.Hysteresis = *s.Hysteresis
	}
	if s.CooldownMs != nil {
		cfg.Cooldown = time.Duration(*s.CooldownMs) * time.Millisecond
	}
}
