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
	"math"
	"os"
	"path/filepath"
	"strings"

	"jescher/internal/gesture"
	"jescher/internal/vector"
)

// Target is a drawing surface that accepts the view transform.
type Target interface {
	gesture.RenderTarget
	vector.Painter
	Save()
	Restore()
}

// Transformer is implemented by *gesture.Controller.
type Transformer interface {
	ApplyTo(t gesture.RenderTarget)
}

// Drawable is implemented by *scene.Scene.
type Drawable interface {
	Draw(p vector.Painter)
}

// Frame draws content under the view transform and leaves the target's
// transform as it was.
func Frame(t Target, tr Transformer, content Drawable) {
	t.Save()
	defer t.Restore()
	tr.ApplyTo(t)
	content.Draw(t)
}

type Format string

const (
	FormatPNG Format = "png"
	FormatPDF Format = "pdf"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatPNG, FormatPDF:
		return f, nil
	}
	return "", fmt.Errorf("unknown render format %q (want png or pdf)", s)
}

// FormatFromPath picks the format from the file extension, falling back to def.
func FormatFromPath(path string, def Format) Format {
	if f, err := ParseFormat(strings.TrimPrefix(filepath.Ext(path), ".")); err == nil {
		return f
	}
	return def
}

// Options controls WriteFile.
type Options struct {
	Format     Format
	Background vector.Color
	// Caption is printed in the corner of raster output, e.g. the final zoom.
	Caption string
}

// WriteFile renders one frame covering surface and writes it to path.
func WriteFile(path string, surface vector.Rect, tr Transformer, content Drawable, opt Options) error {
	if surface.Empty() {
		return fmt.Errorf("render: empty surface %+v", surface)
	}
	if opt.Format == "" {
		opt.Format = FormatFromPath(path, FormatPNG)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("ensure out dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", opt.Format, err)
	}
	end := surface.Max()
	switch opt.Format {
	case FormatPDF:
		t := NewPDF(float64(end.X), float64(end.Y), opt.Background)
		Frame(t, tr, content)
		err = t.Output(f)
	default:
		t := NewRaster(int(math.Ceil(float64(end.X))), int(math.Ceil(float64(end.Y))), opt.Background)
		Frame(t, tr, content)
		if opt.Caption != "" {
			t.Caption(opt.Caption, contrast(opt.Background))
		}
		err = t.WritePNG(f)
	}
	if err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", opt.Format, err)
	}
	return nil
}

// contrast picks black or white text for a background.
func contrast(bg vector.Color) vector.Color {
	if int(bg.R)*299+int(bg.G)*587+int(bg.B)*114 > 128*1000 || bg.A < 128 {
		return vector.Black
	}
	return vector.White
}
