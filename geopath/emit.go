// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package geopath

import (
	"math"

	"github.com/golang/geo/r2"

	"github.com/gogpu/globe/projection"
)

// Emit converts projected geometry into a single descriptor covering every
// feature in order. A nil or empty geometry gives an empty descriptor.
func Emit(g *projection.Geometry) *Descriptor {
	d := &Descriptor{}
	if g == nil {
		return d
	}
	d.cmds = make([]Command, 0, g.PointCount()+g.RingCount())
	for _, f := range g.Features {
		for _, ring := range f.Rings {
			d.appendRing(ring)
		}
	}
	return d
}

// EmitFeature converts a single projected feature.
func EmitFeature(f projection.Feature) *Descriptor {
	d := &Descriptor{}
	for _, ring := range f.Rings {
		d.appendRing(ring)
	}
	return d
}

// Circle returns a closed polygonal approximation of c with n vertices,
// starting at the rightmost point and running clockwise on screen.
func Circle(c projection.Circle, n int) *Descriptor {
	d := &Descriptor{}
	if n < 3 || c.Radius <= 0 {
		return d
	}
	ring := make([]r2.Point, n)
	for i := range ring {
		ring[i] = circlePoint(c, i, n)
	}
	d.appendRing(ring)
	return d
}

func (d *Descriptor) appendRing(ring []r2.Point) {
	if len(ring) == 0 {
		return
	}
	d.cmds = append(d.cmds, Command{Verb: MoveTo, Point: ring[0]})
	for _, p := range ring[1:] {
		d.cmds = append(d.cmds, Command{Verb: LineTo, Point: p})
	}
	d.cmds = append(d.cmds, Command{Verb: ClosePath})
	d.subpath++
}

func circlePoint(c projection.Circle, i, n int) r2.Point {
	sin, cos := math.Sincos(2 * math.Pi * float64(i) / float64(n))
	return r2.Point{X: c.Center.X + c.Radius*cos, Y: c.Center.Y + c.Radius*sin}
}
