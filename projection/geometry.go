// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package projection

import (
	"errors"
	"fmt"

	"github.com/golang/geo/r2"
)

// ErrDegenerate marks a feature that could not be projected because its
// geometry is malformed. Such features are skipped, never fatal.
var ErrDegenerate = errors.New("projection: degenerate feature")

// ErrInvalidSize is returned by New for a non-positive or non-finite size.
var ErrInvalidSize = errors.New("projection: invalid viewport size")

// DegenerateError reports a skipped feature.
type DegenerateError struct {
	// FeatureID is the ID of the skipped feature.
	FeatureID string

	// Index is the position of the feature in the source collection.
	Index int

	// Err describes the malformed ring.
	Err error
}

func (e *DegenerateError) Error() string {
	return fmt.Sprintf("projection: feature %q (#%d) skipped: %v", e.FeatureID, e.Index, e.Err)
}

// Unwrap exposes ErrDegenerate and the ring validation error.
func (e *DegenerateError) Unwrap() []error {
	return []error{ErrDegenerate, e.Err}
}

// Circle is the sphere outline on the drawing surface.
type Circle struct {
	Center r2.Point
	Radius float64
}

// Feature is a projected feature: zero or more closed rings in surface
// coordinates. Rings are open point lists; the closing edge is implicit.
type Feature struct {
	ID    string
	Rings [][]r2.Point
}

// Geometry is the projection of a collection for one frame.
type Geometry struct {
	// Size is the viewport edge length the geometry was fitted to.
	Size float64

	// Rotation is the applied rotation in degrees, reduced to [0, 360).
	Rotation float64

	// Outline is the full sphere outline. It depends only on Size.
	Outline Circle

	// Features mirrors the source features that passed validation, in order.
	// A feature entirely on the far side has no rings.
	Features []Feature

	// Dropped lists the features skipped as degenerate.
	Dropped []*DegenerateError
}

// RingCount returns the number of visible rings.
func (g *Geometry) RingCount() int {
	if g == nil {
		return 0
	}
	n := 0
	for i := range g.Features {
		n += len(g.Features[i].Rings)
	}
	return n
}

// PointCount returns the number of projected points.
func (g *Geometry) PointCount() int {
	if g == nil {
		return 0
	}
	n := 0
	for i := range g.Features {
		for _, r := range g.Features[i].Rings {
			n += len(r)
		}
	}
	return n
}
