//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package ui

import (
	"fmt"
	"image/color"
	"log/slog"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"jescher/internal/gesture"
	applog "jescher/internal/log"
	"jescher/internal/render"
	"jescher/internal/scene"
	"jescher/internal/vector"
	"jescher/internal/version"
)

// wheelIdle closes a wheel pinch once no scroll arrived for this long.
const wheelIdle = 150 * time.Millisecond

// Run opens the sample window: rectangles that can be dragged, a background
// that pans with the mouse and a wheel that zooms around the cursor.
func Run(opts Options) error {
	l := applog.WithComponent("ui")
	l.Info("starting UI", slog.String("version", version.Version))

	fyneApp := app.NewWithID("dev.jescher.sample")
	w := fyneApp.NewWindow("Jescher")
	prefs := fyneApp.Preferences()
	winW := max(prefs.IntWithFallback("window.width", 900), 400)
	winH := max(prefs.IntWithFallback("window.height", 700), 300)
	w.Resize(fyne.NewSize(float32(winW), float32(winH)))

	status := widget.NewLabel("Ready")
	cv, err := NewShapeCanvas(scene.New(opts.Seed), opts.Config.GestureConfig(), func(s gesture.Snapshot) {
		status.SetText(fmt.Sprintf("zoom %.2f  offset %.0f,%.0f", s.Scale(), s.Offset().X, s.Offset().Y))
	})
	if err != nil {
		return err
	}
	defer cv.Close()
	if bg, err := vector.ParseHex(opts.Config.Render.Background); err == nil {
		cv.Background = bg
	} else {
		l.Warn("invalid background color, using white", slog.Any("err", err))
	}
	for i := 0; i < opts.Rects; i++ {
		cv.AddRect()
	}

	toolbar := container.NewHBox(
		widget.NewButton("Add rect", cv.AddRect),
		widget.NewButton("Reset view", cv.Reset),
	)
	w.SetContent(container.NewBorder(toolbar, status, nil, nil, cv))
	w.SetOnClosed(func() {
		sz := w.Canvas().Size()
		prefs.SetInt("window.width", int(sz.Width))
		prefs.SetInt("window.height", int(sz.Height))
	})
	w.ShowAndRun()
	return nil
}

// ShapeCanvas hosts a gesture.Controller: pointer input is converted to touch
// events and the scene is laid out under the controller transform.
type ShapeCanvas struct {
	widget.BaseWidget
	Background vector.Color

	scene    *scene.Scene
	ctl      *gesture.Controller
	target   *layoutTarget
	onChange func(gesture.Snapshot)

	pointer   pointerAdapter
	lastPos   vector.Pt
	wheel     wheelPinch
	wheelIdle *time.Timer
	// rects requested before the first layout
	pendingRects int
}

// NewShapeCanvas binds sc to a controller built from cfg. onChange, if set,
// receives the transform after every processed event.
func NewShapeCanvas(sc *scene.Scene, cfg gesture.Config, onChange func(gesture.Snapshot)) (*ShapeCanvas, error) {
	c := &ShapeCanvas{Background: vector.White, scene: sc, target: newLayoutTarget(), onChange: onChange}
	sc.Bind(&cfg)
	if cfg.Logger == nil {
		cfg.Logger = applog.WithComponent("gesture")
	}
	ctl, err := gesture.New(c, cfg)
	if err != nil {
		return nil, err
	}
	c.ctl = ctl
	c.ExtendBaseWidget(c)
	return c, nil
}

func (c *ShapeCanvas) Controller() *gesture.Controller { return c.ctl }

// Invalidate redraws the canvas.
func (c *ShapeCanvas) Invalidate() {
	c.Refresh()
	if c.onChange != nil {
		c.onChange(c.ctl.CurrentTransform())
	}
}

// AfterFunc runs f on the UI goroutine after d.
func (c *ShapeCanvas) AfterFunc(d time.Duration, f func()) gesture.Timer {
	return time.AfterFunc(d, func() { fyne.Do(f) })
}

// AddRect adds a random rectangle centered in the visible surface.
func (c *ShapeCanvas) AddRect() {
	s := c.ctl.SourceRect()
	if s.Empty() {
		c.pendingRects++
		return
	}
	c.scene.AddRect(s)
	c.Refresh()
}

func (c *ShapeCanvas) Reset() { c.ctl.Reset() }

func (c *ShapeCanvas) Close() {
	if c.wheelIdle != nil {
		c.wheelIdle.Stop()
	}
	c.ctl.Close()
}

func (c *ShapeCanvas) submit(evs []gesture.TouchEvent) {
	for _, ev := range evs {
		c.ctl.SubmitTouchEvent(ev)
	}
}

func toPt(p fyne.Position) vector.Pt { return vector.Pt{X: p.X, Y: p.Y} }

func (c *ShapeCanvas) MouseDown(e *desktop.MouseEvent) {
	c.lastPos = toPt(e.Position)
	c.submit(c.pointer.press(c.lastPos))
}

func (c *ShapeCanvas) MouseUp(e *desktop.MouseEvent) {
	c.submit(c.pointer.release(toPt(e.Position)))
}

func (c *ShapeCanvas) Dragged(e *fyne.DragEvent) {
	c.lastPos = toPt(e.Position)
	c.submit(c.pointer.drag(c.lastPos))
}

func (c *ShapeCanvas) DragEnd() { c.submit(c.pointer.release(c.lastPos)) }

// Scrolled zooms around the cursor through a synthesized pinch.
func (c *ShapeCanvas) Scrolled(e *fyne.ScrollEvent) {
	c.submit(c.wheel.step(toPt(e.Position), e.Scrolled.DY))
	if c.wheelIdle != nil {
		c.wheelIdle.Stop()
	}
	c.wheelIdle = time.AfterFunc(wheelIdle, func() {
		fyne.Do(func() { c.submit(c.wheel.end()) })
	})
}

func (c *ShapeCanvas) layoutScene(size fyne.Size) {
	surface := vector.R(0, 0, size.Width, size.Height)
	c.ctl.SetSourceRect(surface)
	if !surface.Empty() {
		for ; c.pendingRects > 0; c.pendingRects-- {
			c.scene.AddRect(surface)
		}
	}
	c.target.reset()
	render.Frame(c.target, c.ctl, c.scene)
}

func (c *ShapeCanvas) CreateRenderer() fyne.WidgetRenderer {
	r := &shapeCanvasRenderer{c: c, bg: canvas.NewRectangle(c.Background.RGBA())}
	r.objects = []fyne.CanvasObject{r.bg}
	return r
}

// shapeCanvasRenderer keeps one canvas rectangle per fill and repositions
// them on every layout.
type shapeCanvasRenderer struct {
	c       *ShapeCanvas
	bg      *canvas.Rectangle
	rects   []*canvas.Rectangle
	objects []fyne.CanvasObject
}

func (r *shapeCanvasRenderer) Destroy()                     {}
func (r *shapeCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *shapeCanvasRenderer) MinSize() fyne.Size           { return fyne.NewSize(200, 200) }
func (r *shapeCanvasRenderer) Refresh()                     { r.Layout(r.c.Size()); canvas.Refresh(r.c) }

func (r *shapeCanvasRenderer) Layout(size fyne.Size) {
	r.bg.FillColor = r.c.Background.RGBA()
	r.bg.Resize(size)
	r.bg.Move(fyne.NewPos(0, 0))

	r.c.layoutScene(size)
	placed := r.c.target.out
	for len(r.rects) < len(placed) {
		r.rects = append(r.rects, canvas.NewRectangle(color.Transparent))
	}
	r.objects = r.objects[:1]
	for i, p := range placed {
		rr := r.rects[i]
		rr.FillColor = p.Color.RGBA()
		rr.Move(fyne.NewPos(p.Rect.X, p.Rect.Y))
		rr.Resize(fyne.NewSize(p.Rect.W, p.Rect.H))
		r.objects = append(r.objects, rr)
	}
}
