// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package projection

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
)

// Horizon clipping.
//
// Points live in the view frame (Z toward the viewer) and a point is visible
// when Z >= 0. A ring either lies wholly on one side, or crosses the horizon
// and breaks into visible runs that start and end on it. Runs are closed
// again by walking the horizon clockwise from each exit to the next entry:
// with clockwise exteriors and counter-clockwise holes the interior is always
// to the right of travel, so that stretch of horizon lies inside the polygon.

type ringKind uint8

const (
	ringVisible ringKind = iota
	ringHidden
	ringCrossing
)

// segment is a visible run of a ring. The first and last points lie on the
// horizon.
type segment struct {
	pts   []r3.Vector
	entry float64 // horizon angle of pts[0]
	exit  float64 // horizon angle of pts[len-1]
}

type clipResult struct {
	kind     ringKind
	segments []segment
}

// clipRing splits an implicitly closed ring at the horizon.
func clipRing(pts []r3.Vector) clipResult {
	first := -1
	visible := false
	for i, p := range pts {
		if p.Z < 0 {
			if first < 0 {
				first = i
			}
		} else {
			visible = true
		}
	}
	switch {
	case first < 0:
		return clipResult{kind: ringVisible}
	case !visible:
		return clipResult{kind: ringHidden}
	}

	// Start on a hidden point so every run is entered and left within one lap.
	var (
		segs []segment
		cur  []r3.Vector
	)
	n := len(pts)
	for k := 0; k < n; k++ {
		a, b := pts[(first+k)%n], pts[(first+k+1)%n]
		aIn, bIn := a.Z >= 0, b.Z >= 0
		switch {
		case !aIn && bIn:
			cur = []r3.Vector{horizonPoint(a, b), b}
		case aIn && bIn:
			cur = append(cur, b)
		case aIn && !bIn:
			cur = append(cur, horizonPoint(a, b))
			segs = append(segs, segment{
				pts:   cur,
				entry: horizonAngle(cur[0]),
				exit:  horizonAngle(cur[len(cur)-1]),
			})
			cur = nil
		}
	}
	return clipResult{kind: ringCrossing, segments: segs}
}

// horizonPoint returns where the great-circle arc from a to b crosses Z = 0.
// The arc lies in the plane through a, b and the origin, so the crossing is
// the normalised chord point with zero depth.
func horizonPoint(a, b r3.Vector) r3.Vector {
	t := a.Z / (a.Z - b.Z)
	p := a.Add(b.Sub(a).Mul(t))
	h := math.Hypot(p.X, p.Y)
	if h == 0 {
		// a and b are antipodal; any horizon point is on the arc.
		h = math.Hypot(a.X, a.Y)
		if h == 0 {
			return r3.Vector{X: 1}
		}
		return r3.Vector{X: a.X / h, Y: a.Y / h}
	}
	return r3.Vector{X: p.X / h, Y: p.Y / h}
}

func horizonAngle(v r3.Vector) float64 {
	return math.Atan2(v.Y, v.X)
}

// clockwiseDistance is the angle swept going clockwise (decreasing angle)
// from one horizon angle to another, in [0, 2π).
func clockwiseDistance(from, to float64) float64 {
	d := math.Mod(from-to, 2*math.Pi)
	if d < 0 {
		d += 2 * math.Pi
	}
	return d
}

// rejoin stitches visible runs into closed rings.
func rejoin(segs []segment, step s1.Angle) [][]r3.Vector {
	used := make([]bool, len(segs))
	var rings [][]r3.Vector

	for start := range segs {
		if used[start] {
			continue
		}
		used[start] = true
		ring := append([]r3.Vector(nil), segs[start].pts...)
		cur := start

		for range len(segs) {
			from := segs[cur].exit
			next, best := -1, math.Inf(1)
			for j := range segs {
				if used[j] && j != start {
					continue
				}
				if d := clockwiseDistance(from, segs[j].entry); d < best {
					next, best = j, d
				}
			}
			ring = appendHorizonArc(ring, from, best, step)
			if next == start || next < 0 {
				break
			}
			used[next] = true
			ring = append(ring, segs[next].pts...)
			cur = next
		}
		rings = append(rings, ring)
	}
	return rings
}

// appendHorizonArc appends the horizon points strictly between angle from and
// from-sweep, going clockwise.
func appendHorizonArc(ring []r3.Vector, from, sweep float64, step s1.Angle) []r3.Vector {
	steps := arcSteps(sweep, step)
	for k := 1; k < steps; k++ {
		theta := from - sweep*float64(k)/float64(steps)
		sin, cos := math.Sincos(theta)
		ring = append(ring, r3.Vector{X: cos, Y: sin})
	}
	return ring
}

// arcSteps is the number of chords needed to sweep an angle without any
// chord spanning more than step. The slack absorbs rounding in exact multiples.
func arcSteps(sweep float64, step s1.Angle) int {
	return int(math.Ceil(sweep/step.Radians() - 1e-9))
}

// horizonCircle returns the whole horizon traced clockwise.
func horizonCircle(step s1.Angle) []r3.Vector {
	n := arcSteps(2*math.Pi, step)
	ring := make([]r3.Vector, n)
	for k := range ring {
		sin, cos := math.Sincos(-2 * math.Pi * float64(k) / float64(n))
		ring[k] = r3.Vector{X: cos, Y: sin}
	}
	return ring
}

// horizonOnRight reports whether the horizon lies on the interior side of a
// ring that does not cross it.
//
// Seen from the front, orientation is preserved by the projection and the
// horizon is outside every visible ring, so it is interior exactly when the
// ring runs counter-clockwise. A hidden ring is seen mirrored: the whole
// front hemisphere is interior when its front-view projection runs clockwise.
func horizonOnRight(pts []r3.Vector, visible bool) bool {
	clockwise := signedArea(pts) < 0
	return clockwise != visible
}

// signedArea is the shoelace area of the XY projection, positive when
// counter-clockwise with Y up.
func signedArea(pts []r3.Vector) float64 {
	var sum float64
	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}
