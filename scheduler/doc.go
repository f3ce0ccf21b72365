// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package scheduler drives a rotation angle from display frames.
//
// A FrameSource hands out one-shot frame callbacks, the way a browser's
// requestAnimationFrame does: every request returns a token that can be
// cancelled before the frame fires. Rotation keeps exactly one such request
// outstanding while it runs and advances its angle by a constant amount on
// every frame.
//
// Two sources are provided. Manual queues callbacks until the host calls
// Step, which fits display loops that already have a per-frame hook (ebiten's
// Update, a terminal redraw) as well as tests. Ticker runs callbacks on its
// own goroutine at a fixed rate.
package scheduler
