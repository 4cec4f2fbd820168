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
	"io"

	"github.com/jung-kurt/gofpdf"

	"jescher/internal/vector"
)

// PDF paints into a single page whose size in points equals the surface in
// pixels. Gesture transforms only translate and scale uniformly, so Concat
// decomposes the matrix into a translate and a scale around the page origin.
type PDF struct {
	pdf   *gofpdf.Fpdf
	nest  int
	marks []int
}

// NewPDF returns a w×h pt page filled with bg.
func NewPDF(w, h float64, bg vector.Color) *PDF {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: w, Ht: h},
	})
	pdf.SetCreator("jescher", false)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	if bg.A > 0 {
		setFillColor(pdf, bg)
		pdf.Rect(0, 0, w, h, "F")
	}
	return &PDF{pdf: pdf}
}

func (p *PDF) Concat(m vector.Affine2D) {
	p.pdf.TransformBegin()
	p.nest++
	if m.E != 0 || m.F != 0 {
		p.pdf.TransformTranslate(float64(m.E), float64(m.F))
	}
	if m.A != 1 || m.D != 1 {
		p.pdf.TransformScale(float64(m.A)*100, float64(m.D)*100, 0, 0)
	}
}

// Save marks the current transform depth; Restore unwinds to it.
func (p *PDF) Save() { p.marks = append(p.marks, p.nest) }

func (p *PDF) Restore() {
	n := len(p.marks)
	if n == 0 {
		return
	}
	p.unwind(p.marks[n-1])
	p.marks = p.marks[:n-1]
}

func (p *PDF) unwind(depth int) {
	for p.nest > depth {
		p.pdf.TransformEnd()
		p.nest--
	}
}

func (p *PDF) FillRect(r vector.Rect, c vector.Color) {
	if r.Empty() || c.A == 0 {
		return
	}
	setFillColor(p.pdf, c)
	if c.A < 255 {
		p.pdf.SetAlpha(float64(c.A)/255, "Normal")
		defer p.pdf.SetAlpha(1, "Normal")
	}
	p.pdf.Rect(float64(r.X), float64(r.Y), float64(r.W), float64(r.H), "F")
}

// Output closes every open transform and writes the document.
func (p *PDF) Output(w io.Writer) error {
	p.unwind(0)
	p.marks = nil
	if err := p.pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func setFillColor(pdf *gofpdf.Fpdf, c vector.Color) {
	pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
}
