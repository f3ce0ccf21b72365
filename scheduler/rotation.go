// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scheduler

import (
	"math"
	"sync"
)

// State is the run state of a Rotation.
type State uint8

const (
	Idle State = iota
	Running
)

var stateNames = [...]string{
	Idle:    "Idle",
	Running: "Running",
}

// String returns the string representation of a State.
func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "Unknown"
}

// Tick describes one advanced frame.
type Tick struct {
	N     uint64  // ticks since the rotation was created, starting at 1
	Angle float64 // rotation in degrees after this tick
}

// Rotation advances an angle by a fixed number of degrees on every frame of
// its source and reports each new angle to a callback.
//
// The angle is computed as ticks × velocity rather than accumulated, so it
// carries no drift: 3600 ticks at 0.1 is exactly 360.
type Rotation struct {
	src      FrameSource
	velocity float64
	onFrame  func(Tick)

	// frameMu is held for the whole of a frame so Stop can wait one out.
	frameMu sync.Mutex

	mu      sync.Mutex
	state   State
	ticks   uint64
	run     uint64 // bumped by Start; frames from earlier runs are stale
	pending FrameID
}

// New returns an idle rotation. onFrame may be nil. A non-finite velocity is
// treated as zero.
func New(src FrameSource, degreesPerTick float64, onFrame func(Tick)) *Rotation {
	if math.IsNaN(degreesPerTick) || math.IsInf(degreesPerTick, 0) {
		degreesPerTick = 0
	}
	return &Rotation{src: src, velocity: degreesPerTick, onFrame: onFrame}
}

// Start requests the first frame. Starting a running rotation does nothing.
func (r *Rotation) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == Running {
		return
	}
	r.state = Running
	r.run++
	r.request()
}

// request must be called with mu held.
func (r *Rotation) request() {
	run := r.run
	r.pending = r.src.RequestFrame(func() { r.frame(run) })
}

// Stop cancels the outstanding frame request and waits for a frame already in
// progress to finish. Once Stop returns no further callback runs until the
// next Start. Stop is idempotent and must not be called from onFrame.
func (r *Rotation) Stop() {
	r.mu.Lock()
	if r.state == Idle {
		r.mu.Unlock()
		return
	}
	r.state = Idle
	r.src.CancelFrame(r.pending)
	r.pending = 0
	r.mu.Unlock()

	r.frameMu.Lock()
	r.frameMu.Unlock() //nolint:staticcheck // wait for an in-flight frame
}

// State returns the current run state.
func (r *Rotation) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Ticks returns the number of frames advanced so far.
func (r *Rotation) Ticks() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ticks
}

// Angle returns the current rotation in degrees. It is not reduced mod 360.
func (r *Rotation) Angle() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.angle()
}

// Velocity returns the rotation speed in degrees per tick.
func (r *Rotation) Velocity() float64 { return r.velocity }

func (r *Rotation) angle() float64 {
	return float64(r.ticks) * r.velocity
}

func (r *Rotation) frame(run uint64) {
	r.frameMu.Lock()
	defer r.frameMu.Unlock()

	r.mu.Lock()
	if r.state != Running || r.run != run {
		r.mu.Unlock()
		return
	}
	r.ticks++
	t := Tick{N: r.ticks, Angle: r.angle()}
	r.request()
	r.mu.Unlock()

	if r.onFrame != nil {
		r.onFrame(t)
	}
}
