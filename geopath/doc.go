// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package geopath turns projected globe geometry into path descriptors.
//
// A Descriptor is an ordered list of move, line and close commands. It can be
// rendered as compact SVG path data or replayed onto any canvas that knows
// how to draw polylines, including *gg.Context:
//
//	d := geopath.Emit(geometry)
//	d.Replay(dc)
//	_ = dc.Fill()
//
// Each ring produces one subpath: a MoveTo to its first point, a LineTo for
// every following point and a ClosePath.
package geopath
