// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface paints globe frames with gg.
//
// Canvas implements globe.Surface. Every presented frame replaces the whole
// picture: a water disk under the sphere outline, the visible land filled
// and outlined, or a status line while the map is loading or after it failed.
//
// Example:
//
//	canvas := surface.NewCanvas(400, surface.WithHUD(true))
//	defer canvas.Close()
//
//	r, _ := globe.New(src, frames, globe.WithSurface(canvas))
//	...
//	img := canvas.Snapshot()
//
// A Canvas serialises Present and the read methods with a mutex, so frames
// may be presented from the frame source goroutine while another goroutine
// reads snapshots.
package surface
