// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package geopath

import (
	"strconv"
	"strings"

	"github.com/golang/geo/r2"
)

// Sink receives replayed path commands. *gg.Context satisfies it.
type Sink interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	ClosePath()
}

// Descriptor is an immutable sequence of path commands in pixel coordinates.
// The zero value is an empty path.
type Descriptor struct {
	cmds    []Command
	subpath int
}

// Len returns the number of commands.
func (d *Descriptor) Len() int {
	if d == nil {
		return 0
	}
	return len(d.cmds)
}

// Empty reports whether the descriptor draws nothing.
func (d *Descriptor) Empty() bool { return d.Len() == 0 }

// Subpaths returns the number of closed subpaths.
func (d *Descriptor) Subpaths() int {
	if d == nil {
		return 0
	}
	return d.subpath
}

// Commands returns a copy of the commands.
func (d *Descriptor) Commands() []Command {
	if d == nil {
		return nil
	}
	return append([]Command(nil), d.cmds...)
}

// Points returns every moved-to or lined-to point in order.
func (d *Descriptor) Points() []r2.Point {
	if d == nil {
		return nil
	}
	pts := make([]r2.Point, 0, len(d.cmds))
	for _, c := range d.cmds {
		if c.Verb != ClosePath {
			pts = append(pts, c.Point)
		}
	}
	return pts
}

// Replay issues every command to s in order.
func (d *Descriptor) Replay(s Sink) {
	if d == nil {
		return
	}
	for _, c := range d.cmds {
		switch c.Verb {
		case MoveTo:
			s.MoveTo(c.Point.X, c.Point.Y)
		case LineTo:
			s.LineTo(c.Point.X, c.Point.Y)
		case ClosePath:
			s.ClosePath()
		}
	}
}

// String returns the path as SVG path data, for example "M1,2L3,4L5,6Z".
// Coordinates are rounded to three decimals. An empty path yields "".
func (d *Descriptor) String() string {
	if d.Empty() {
		return ""
	}
	var sb strings.Builder
	sb.Grow(len(d.cmds) * 12)
	var buf []byte
	for _, c := range d.cmds {
		sb.WriteByte(svgLetters[c.Verb])
		if c.Verb == ClosePath {
			continue
		}
		buf = appendCoord(buf[:0], c.Point.X)
		buf = append(buf, ',')
		buf = appendCoord(buf, c.Point.Y)
		sb.Write(buf)
	}
	return sb.String()
}

func appendCoord(dst []byte, v float64) []byte {
	v = roundTo(v, 1000)
	if v == 0 {
		v = 0 // drop negative zero
	}
	return strconv.AppendFloat(dst, v, 'f', -1, 64)
}

func roundTo(v, scale float64) float64 {
	r := v * scale
	if r < 0 {
		r -= 0.5
	} else {
		r += 0.5
	}
	return float64(int64(r)) / scale
}
