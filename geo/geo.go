// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package geo defines the decoded map geometry shared by the topology decoder
// and the projector.
//
// Coordinates are (longitude, latitude) pairs in degrees. A Feature owns its
// rings outright: nothing in a Collection aliases another feature's storage,
// so a decoded Collection can be read from any number of goroutines.
package geo

import (
	"errors"
	"fmt"
	"math"
)

// ErrDegenerateRing is returned by Ring.Validate for rings that cannot
// describe a polygon boundary.
var ErrDegenerateRing = errors.New("geo: degenerate ring")

// MinRingLen is the minimum number of positions in a closed ring,
// counting the closing position.
const MinRingLen = 4

// Position is a (longitude, latitude) pair in degrees.
type Position [2]float64

// Lon returns the longitude in degrees.
func (p Position) Lon() float64 { return p[0] }

// Lat returns the latitude in degrees.
func (p Position) Lat() float64 { return p[1] }

// Ring is a closed sequence of positions. The first and last positions are equal.
type Ring []Position

// Validate reports whether r is a usable polygon boundary: at least
// MinRingLen positions, closed, finite, with latitudes in [-90, 90].
func (r Ring) Validate() error {
	if len(r) < MinRingLen {
		return fmt.Errorf("%w: %d positions, need at least %d", ErrDegenerateRing, len(r), MinRingLen)
	}
	if r[0] != r[len(r)-1] {
		return fmt.Errorf("%w: first position %v differs from last %v", ErrDegenerateRing, r[0], r[len(r)-1])
	}
	for i, p := range r {
		if math.IsNaN(p[0]) || math.IsNaN(p[1]) || math.IsInf(p[0], 0) || math.IsInf(p[1], 0) {
			return fmt.Errorf("%w: position %d is not finite", ErrDegenerateRing, i)
		}
		if p[1] < -90 || p[1] > 90 {
			return fmt.Errorf("%w: position %d latitude %g out of range", ErrDegenerateRing, i, p[1])
		}
	}
	return nil
}

// Clone returns a copy of r that shares no storage with it.
func (r Ring) Clone() Ring {
	if r == nil {
		return nil
	}
	out := make(Ring, len(r))
	copy(out, r)
	return out
}

// Polygon is an exterior ring followed by zero or more holes.
//
// Exterior rings wind clockwise and holes counter-clockwise when seen from
// outside the sphere.
type Polygon []Ring

// Exterior returns the exterior ring, or nil for an empty polygon.
func (p Polygon) Exterior() Ring {
	if len(p) == 0 {
		return nil
	}
	return p[0]
}

// Holes returns the interior rings.
func (p Polygon) Holes() []Ring {
	if len(p) < 2 {
		return nil
	}
	return p[1:]
}

// Feature is one decoded map object.
type Feature struct {
	// ID identifies the feature. Numeric source ids are formatted as decimal strings.
	ID string

	// Type is the source geometry type ("Polygon", "MultiPolygon", ...),
	// empty for null geometries.
	Type string

	// Properties holds the source properties, if any.
	Properties map[string]any

	// Polygons holds the areal geometry. Features without area have none.
	Polygons []Polygon
}

// Rings returns every ring of f in order: each polygon's exterior followed
// by its holes.
func (f *Feature) Rings() []Ring {
	n := 0
	for _, p := range f.Polygons {
		n += len(p)
	}
	rings := make([]Ring, 0, n)
	for _, p := range f.Polygons {
		rings = append(rings, p...)
	}
	return rings
}

// Validate checks every ring of f.
func (f *Feature) Validate() error {
	for pi, p := range f.Polygons {
		for ri, r := range p {
			if err := r.Validate(); err != nil {
				return fmt.Errorf("polygon %d ring %d: %w", pi, ri, err)
			}
		}
	}
	return nil
}

// Collection is a decoded set of features. It is never mutated after decoding.
type Collection struct {
	Features []Feature
}

// Len returns the number of features.
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Features)
}

// RingCount returns the total number of rings across all features.
func (c *Collection) RingCount() int {
	if c == nil {
		return 0
	}
	n := 0
	for i := range c.Features {
		for _, p := range c.Features[i].Polygons {
			n += len(p)
		}
	}
	return n
}

// Find returns the feature with the given id.
func (c *Collection) Find(id string) (*Feature, bool) {
	if c == nil {
		return nil, false
	}
	for i := range c.Features {
		if c.Features[i].ID == id {
			return &c.Features[i], true
		}
	}
	return nil, false
}
