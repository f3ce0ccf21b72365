// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package projection

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"

	"github.com/gogpu/globe/geo"
)

// DefaultPrecision is the default resampling tolerance in pixels.
var DefaultPrecision = math.Sqrt(0.5)

// DefaultHorizonStep is the default angular step used to trace the horizon
// between clipped boundary runs.
const DefaultHorizonStep = 6 * s1.Degree

// MinPrecision is the finest resampling tolerance, in pixels. Finer values
// only add points that round to the same pixel.
const MinPrecision = 0.01

// maxResampleDepth bounds edge subdivision.
const maxResampleDepth = 16

// Option configures an Orthographic projection.
type Option func(*Orthographic)

// WithPrecision sets the resampling tolerance in pixels. Zero or a negative
// value disables resampling: edges are drawn as straight chords. Positive
// values below MinPrecision are raised to it.
func WithPrecision(px float64) Option {
	return func(o *Orthographic) {
		if px > 0 && px < MinPrecision {
			px = MinPrecision
		}
		o.precision = px
	}
}

// WithHorizonStep sets the angular step for horizon arcs.
// Non-positive values are ignored.
func WithHorizonStep(step s1.Angle) Option {
	return func(o *Orthographic) {
		if step > 0 {
			o.horizonStep = step
		}
	}
}

// Orthographic projects the sphere as seen from infinitely far away,
// rotated around the polar axis, fitted to a square viewport.
//
// The fit is computed from the sphere itself, not from the data: the outline
// always fills the viewport, whichever features happen to be visible.
//
// Orthographic holds no per-frame state and is safe for concurrent use.
type Orthographic struct {
	size        float64
	scale       float64
	center      r2.Point
	precision   float64
	horizonStep s1.Angle
}

// New returns a projection for a size × size viewport.
func New(size float64, opts ...Option) (*Orthographic, error) {
	if !(size > 0) || math.IsInf(size, 0) {
		return nil, ErrInvalidSize
	}
	o := &Orthographic{
		size:        size,
		scale:       size / 2,
		center:      r2.Point{X: size / 2, Y: size / 2},
		precision:   DefaultPrecision,
		horizonStep: DefaultHorizonStep,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// Size returns the viewport edge length.
func (o *Orthographic) Size() float64 { return o.size }

// Scale returns the sphere radius in pixels.
func (o *Orthographic) Scale() float64 { return o.scale }

// Precision returns the resampling tolerance in pixels.
func (o *Orthographic) Precision() float64 { return o.precision }

// Outline returns the sphere outline. It is independent of rotation and data.
func (o *Orthographic) Outline() Circle {
	return Circle{Center: o.center, Radius: o.scale}
}

// Project projects every feature of c under the given rotation.
//
// Features with a malformed ring are skipped and listed in Geometry.Dropped;
// the remaining features are projected normally.
func (o *Orthographic) Project(c *geo.Collection, rotationDeg float64) *Geometry {
	rot := NormalizeDegrees(rotationDeg)
	g := &Geometry{
		Size:     o.size,
		Rotation: rot,
		Outline:  o.Outline(),
	}
	if c == nil {
		return g
	}

	g.Features = make([]Feature, 0, len(c.Features))
	for i := range c.Features {
		f := &c.Features[i]
		if err := f.Validate(); err != nil {
			g.Dropped = append(g.Dropped, &DegenerateError{FeatureID: f.ID, Index: i, Err: err})
			continue
		}
		g.Features = append(g.Features, Feature{
			ID:    f.ID,
			Rings: o.projectFeature(f, rot),
		})
	}
	return g
}

// Point projects a single position. ok is false on the far side.
func (o *Orthographic) Point(p geo.Position, rotationDeg float64) (pt r2.Point, ok bool) {
	v := toView(p, NormalizeDegrees(rotationDeg))
	return o.toScreen(v), v.Z >= 0
}

// NormalizeDegrees reduces an angle to [0, 360). Non-finite angles map to 0.
func NormalizeDegrees(deg float64) float64 {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return 0
	}
	r := math.Mod(deg, 360)
	if r < 0 {
		r += 360
	}
	if r == 360 || r == 0 {
		return 0
	}
	return r
}

// toView converts a position to a unit vector in the view frame:
// X right, Y up, Z toward the viewer.
func toView(p geo.Position, rotationDeg float64) r3.Vector {
	lambda := (s1.Angle(p.Lon()+rotationDeg) * s1.Degree).Radians()
	phi := (s1.Angle(p.Lat()) * s1.Degree).Radians()
	sinPhi, cosPhi := math.Sincos(phi)
	sinLambda, cosLambda := math.Sincos(lambda)
	return r3.Vector{X: cosPhi * sinLambda, Y: sinPhi, Z: cosPhi * cosLambda}
}

// toScreen drops the depth axis and fits the unit disk to the viewport.
// Screen Y grows downward.
func (o *Orthographic) toScreen(v r3.Vector) r2.Point {
	return r2.Point{X: o.center.X + o.scale*v.X, Y: o.center.Y - o.scale*v.Y}
}

// projectFeature clips every ring of f to the visible hemisphere and maps
// the result to the viewport.
func (o *Orthographic) projectFeature(f *geo.Feature, rot float64) [][]r2.Point {
	var (
		closed   [][]r3.Vector
		segments []segment
		fill     bool
	)

	for _, poly := range f.Polygons {
		crossing := false
		horizonInside := true

		for _, ring := range poly {
			pts := make([]r3.Vector, len(ring)-1)
			for i := range pts {
				pts[i] = toView(ring[i], rot)
			}

			clip := clipRing(pts)
			switch clip.kind {
			case ringVisible:
				closed = append(closed, pts)
				horizonInside = horizonInside && horizonOnRight(pts, true)
			case ringHidden:
				horizonInside = horizonInside && horizonOnRight(pts, false)
			case ringCrossing:
				crossing = true
				segments = append(segments, clip.segments...)
			}
		}

		// With no ring crossing it, the horizon lies wholly inside or
		// wholly outside the polygon. Inside, the disk is filled and the
		// visible rings cut their holes out of it.
		if !crossing && horizonInside {
			fill = true
		}
	}

	if len(segments) > 0 {
		closed = append(closed, rejoin(segments, o.horizonStep)...)
	} else if fill {
		closed = append(closed, horizonCircle(o.horizonStep))
	}

	out := make([][]r2.Point, 0, len(closed))
	for _, ring := range closed {
		if pts := o.screenRing(ring); len(pts) >= 3 {
			out = append(out, pts)
		}
	}
	return out
}

// screenRing resamples a closed view-frame ring and maps it to the viewport,
// dropping repeated points.
func (o *Orthographic) screenRing(ring []r3.Vector) []r2.Point {
	if len(ring) == 0 {
		return nil
	}
	out := make([]r2.Point, 0, len(ring))
	prev := o.toScreen(ring[0])
	out = append(out, prev)
	for i := range ring {
		a, b := ring[i], ring[(i+1)%len(ring)]
		pb := o.toScreen(b)
		out = o.resample(out, a, b, prev, pb, maxResampleDepth)
		if i < len(ring)-1 {
			out = append(out, pb)
		}
		prev = pb
	}
	return dedupe(out)
}

// dedupe removes consecutive duplicates, including a trailing copy of the
// first point.
func dedupe(pts []r2.Point) []r2.Point {
	if len(pts) == 0 {
		return pts
	}
	out := pts[:1]
	for _, p := range pts[1:] {
		if p != out[len(out)-1] {
			out = append(out, p)
		}
	}
	for len(out) > 1 && out[len(out)-1] == out[0] {
		out = out[:len(out)-1]
	}
	return out
}
