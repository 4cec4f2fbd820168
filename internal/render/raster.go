/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package render

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	xvector "golang.org/x/image/vector"

	"jescher/internal/vector"
)

// Raster paints into an RGBA image. Fills are anti-aliased polygons, so a
// transformed rectangle keeps sub-pixel edges.
type Raster struct {
	img   *image.RGBA
	ras   *xvector.Rasterizer
	cur   vector.Affine2D
	stack []vector.Affine2D
}

// NewRaster returns a w×h image cleared to bg.
func NewRaster(w, h int, bg vector.Color) *Raster {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg.RGBA()), image.Point{}, draw.Src)
	return &Raster{img: img, ras: xvector.NewRasterizer(w, h), cur: vector.Identity}
}

func (r *Raster) Image() *image.RGBA { return r.img }

// Concat applies m before the current transform.
func (r *Raster) Concat(m vector.Affine2D) { r.cur = r.cur.Mul(m) }

func (r *Raster) Save() { r.stack = append(r.stack, r.cur) }

func (r *Raster) Restore() {
	if n := len(r.stack); n > 0 {
		r.cur = r.stack[n-1]
		r.stack = r.stack[:n-1]
	}
}

func (r *Raster) FillRect(rect vector.Rect, c vector.Color) {
	if rect.Empty() || c.A == 0 {
		return
	}
	b := r.img.Bounds()
	r.ras.Reset(b.Dx(), b.Dy())
	corners := [4]vector.Pt{rect.Min(), {X: rect.X + rect.W, Y: rect.Y}, rect.Max(), {X: rect.X, Y: rect.Y + rect.H}}
	p := r.cur.Apply(corners[0])
	r.ras.MoveTo(p.X, p.Y)
	for _, q := range corners[1:] {
		p = r.cur.Apply(q)
		r.ras.LineTo(p.X, p.Y)
	}
	r.ras.ClosePath()
	r.ras.Draw(r.img, b, image.NewUniform(c.RGBA()), image.Point{})
}

// Caption writes text in the bottom-left corner, outside the view transform.
func (r *Raster) Caption(text string, c vector.Color) {
	face := basicfont.Face7x13
	d := font.Drawer{
		Dst:  r.img,
		Src:  image.NewUniform(c.RGBA()),
		Face: face,
		Dot:  fixed.P(4, r.img.Bounds().Dy()-face.Descent-2),
	}
	d.DrawString(text)
}

func (r *Raster) WritePNG(w io.Writer) error {
	if err := png.Encode(w, r.img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
