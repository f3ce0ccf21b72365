// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package projection

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
)

// resample appends the points needed between a and b so that the projected
// great-circle arc stays within o.precision pixels of the emitted chords.
// Neither endpoint is appended.
func (o *Orthographic) resample(out []r2.Point, a, b r3.Vector, pa, pb r2.Point, depth int) []r2.Point {
	if depth <= 0 || o.precision <= 0 {
		return out
	}
	sum := a.Add(b)
	n := sum.Norm()
	if n < 1e-12 {
		return out
	}
	m := sum.Mul(1 / n)
	pm := o.toScreen(m)

	if chordDeviation(pa, pb, pm) <= o.precision {
		return out
	}
	out = o.resample(out, a, m, pa, pm, depth-1)
	out = append(out, pm)
	return o.resample(out, m, b, pm, pb, depth-1)
}

// chordDeviation is the distance from p to the segment chord a-b.
func chordDeviation(a, b, p r2.Point) float64 {
	d := b.Sub(a)
	l := d.Norm()
	if l < 1e-12 {
		return p.Sub(a).Norm()
	}
	return math.Abs(d.Cross(p.Sub(a))) / l
}
