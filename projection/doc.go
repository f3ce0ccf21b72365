// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package projection maps longitude/latitude geometry onto a square viewport
// with a rotating orthographic projection.
//
// Each position is rotated around the polar axis, turned into a unit vector
// and flattened by discarding its depth. Only the hemisphere facing the
// viewer is kept: boundaries are cut where they cross the horizon and the
// cut ends are joined along the horizon, so clipped polygons remain closed
// and fill correctly.
//
//	o, _ := projection.New(400)
//	g := o.Project(collection, 30)
//	for _, f := range g.Features {
//	    for _, ring := range f.Rings {
//	        // ring is a closed loop in pixel coordinates
//	    }
//	}
//
// The projection is fitted to the sphere, not to the data: the outline is
// always the circle of radius size/2 centred in the viewport.
package projection
