// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"
	"image/draw"
	"io"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/globe"
	"github.com/gogpu/globe/geopath"
)

// Status lines drawn in place of the globe.
const (
	LoadingText = "Loading globe data..."
	ErrorPrefix = "Error: "
)

// rimSegments is the vertex count of the stroked sphere outline.
const rimSegments = 120

// Option configures a Canvas.
type Option func(*Canvas)

// WithStyle sets the palette.
func WithStyle(s Style) Option {
	return func(c *Canvas) {
		c.style = s
	}
}

// WithHUD enables a corner label with the tick count and rotation.
func WithHUD(on bool) Option {
	return func(c *Canvas) {
		c.hud = on
	}
}

// WithLanguage sets the locale used to format HUD numbers.
func WithLanguage(tag language.Tag) Option {
	return func(c *Canvas) {
		c.printer = message.NewPrinter(tag)
	}
}

// Canvas is a square gg drawing surface for globe frames.
type Canvas struct {
	size    int
	style   Style
	hud     bool
	printer *message.Printer

	mu        sync.Mutex
	dc        *gg.Context
	face      text.Face
	last      *globe.Frame
	presented uint64
	closed    bool
}

var _ globe.Surface = (*Canvas)(nil)

// NewCanvas returns a size × size canvas. A non-positive size is clamped to 1.
func NewCanvas(size int, opts ...Option) *Canvas {
	if size <= 0 {
		size = 1
	}
	c := &Canvas{
		size:    size,
		style:   DefaultStyle(),
		printer: message.NewPrinter(language.English),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.dc = gg.NewContext(size, size)
	c.dc.SetFillRule(gg.FillRuleNonZero)

	src, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		globe.Logger().Warn("surface: font unavailable, labels disabled", "err", err)
	} else {
		c.face = src.Face(c.style.FontSize)
	}
	return c
}

// Size returns the edge length in pixels.
func (c *Canvas) Size() int { return c.size }

// Present paints f, replacing the previous picture. Frames of a different
// size are scaled to fit.
func (c *Canvas) Present(f *globe.Frame) {
	if f == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	dc := c.dc
	dc.Identity()
	dc.ClearPath()
	if c.style.Background != "" {
		dc.ClearWithColor(gg.Hex(c.style.Background))
	} else {
		dc.Clear()
	}

	switch f.State {
	case globe.StateLoading:
		c.label(LoadingText, c.style.Text)
	case globe.StateFailed:
		msg := "unknown failure"
		if f.Err != nil {
			msg = f.Err.Error()
		}
		c.label(ErrorPrefix+msg, c.style.ErrorText)
	case globe.StateReady:
		c.paintGlobe(f)
		if c.hud {
			c.drawHUD(f)
		}
	}

	c.last = f
	c.presented++
}

// paintGlobe draws the sphere and land in frame coordinates, mapped so the
// padded frame fills the canvas.
func (c *Canvas) paintGlobe(f *globe.Frame) {
	dc := c.dc
	frameSize := float64(f.Size)
	if frameSize <= 0 {
		frameSize = float64(c.size)
	}
	pad := frameSize * c.style.Padding
	k := float64(c.size) / (frameSize + 2*pad)
	dc.Scale(k, k)
	dc.Translate(pad, pad)

	dc.SetHexColor(c.style.Water)
	dc.DrawCircle(f.Outline.Center.X, f.Outline.Center.Y, f.Outline.Radius)
	if err := dc.Fill(); err != nil {
		globe.Logger().Debug("surface: water fill failed", "err", err)
	}

	if !f.Path.Empty() {
		f.Path.Replay(dc)
		dc.SetHexColor(c.style.Land)
		if err := dc.FillPreserve(); err != nil {
			globe.Logger().Debug("surface: land fill failed", "err", err)
		}
		dc.SetHexColor(c.style.Border)
		dc.SetLineWidth(c.style.BorderWidth)
		if err := dc.Stroke(); err != nil {
			globe.Logger().Debug("surface: border stroke failed", "err", err)
		}
	}

	if c.style.Rim != "" && c.style.RimWidth > 0 {
		geopath.Circle(f.Outline, rimSegments).Replay(dc)
		dc.SetHexColor(c.style.Rim)
		dc.SetLineWidth(c.style.RimWidth)
		if err := dc.Stroke(); err != nil {
			globe.Logger().Debug("surface: rim stroke failed", "err", err)
		}
	}
	dc.Identity()
}

func (c *Canvas) label(s, color string) {
	if c.face == nil {
		return
	}
	c.dc.SetFont(c.face)
	c.dc.SetHexColor(color)
	half := float64(c.size) / 2
	c.dc.DrawStringAnchored(s, half, half, 0.5, 0.5)
}

func (c *Canvas) drawHUD(f *globe.Frame) {
	if c.face == nil {
		return
	}
	c.dc.SetFont(c.face)
	c.dc.SetHexColor(c.style.Text)
	c.dc.DrawStringAnchored(c.hudText(f), 4, 4, 0, 1)
}

func (c *Canvas) hudText(f *globe.Frame) string {
	return c.printer.Sprintf("tick %d  %.1f°", f.Tick, f.Rotation)
}

// Last returns the most recently presented frame, or nil.
func (c *Canvas) Last() *globe.Frame {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// Presented returns how many frames have been painted.
func (c *Canvas) Presented() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.presented
}

// Snapshot returns a copy of the current picture.
func (c *Canvas) Snapshot() *image.RGBA {
	c.mu.Lock()
	defer c.mu.Unlock()
	src := c.dc.Image()
	dst := image.NewRGBA(src.Bounds())
	draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)
	return dst
}

// EncodePNG writes the current picture as PNG.
func (c *Canvas) EncodePNG(w io.Writer) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dc.EncodePNG(w)
}

// SavePNG writes the current picture to a PNG file.
func (c *Canvas) SavePNG(path string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dc.SavePNG(path)
}

// Close releases the drawing context. Later frames are ignored.
// Close is idempotent.
func (c *Canvas) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return c.dc.Close()
}
