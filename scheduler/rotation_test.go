// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scheduler

import (
	"math"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStateString(t *testing.T) {
	tests := []struct {
		s    State
		want string
	}{
		{Idle, "Idle"},
		{Running, "Running"},
		{State(9), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.s, got, tt.want)
		}
	}
}

func TestRotationFullTurn(t *testing.T) {
	m := NewManual()
	var last Tick
	r := New(m, 0.1, func(tk Tick) { last = tk })
	r.Start()

	for range 3600 {
		if m.Step() != 1 {
			t.Fatal("expected exactly one pending frame per step")
		}
	}

	if r.Angle() != 360 {
		t.Errorf("Angle() = %v, want 360", r.Angle())
	}
	if r.Ticks() != 3600 || last.N != 3600 || last.Angle != 360 {
		t.Errorf("Ticks() = %d, last = %+v", r.Ticks(), last)
	}
}

func TestRotationAngleNotNormalised(t *testing.T) {
	m := NewManual()
	r := New(m, 90, nil)
	r.Start()
	for range 5 {
		m.Step()
	}
	if r.Angle() != 450 {
		t.Errorf("Angle() = %v, want 450", r.Angle())
	}
}

func TestRotationStopBeforeFirstFrame(t *testing.T) {
	m := NewManual()
	frames := 0
	r := New(m, 1, func(Tick) { frames++ })
	r.Start()
	r.Stop()

	if m.Pending() != 0 {
		t.Errorf("Pending() = %d after Stop, want 0", m.Pending())
	}
	m.Step()
	if frames != 0 || r.Angle() != 0 {
		t.Errorf("frames = %d, angle = %v; want no frame after Stop", frames, r.Angle())
	}
	if r.State() != Idle {
		t.Errorf("State() = %v, want Idle", r.State())
	}
}

func TestRotationStartTwice(t *testing.T) {
	m := NewManual()
	r := New(m, 1, nil)
	r.Start()
	r.Start()
	if m.Pending() != 1 {
		t.Fatalf("Pending() = %d, want a single outstanding request", m.Pending())
	}
	m.Step()
	if r.Ticks() != 1 {
		t.Errorf("Ticks() = %d, want 1", r.Ticks())
	}
}

func TestRotationRestart(t *testing.T) {
	m := NewManual()
	r := New(m, 2, nil)
	r.Start()
	m.Step()
	r.Stop()
	r.Stop()
	r.Start()
	m.Step()
	m.Step()
	if r.Ticks() != 3 || r.Angle() != 6 {
		t.Errorf("Ticks() = %d, Angle() = %v; want 3 and 6", r.Ticks(), r.Angle())
	}
	if m.Pending() != 1 {
		t.Errorf("Pending() = %d, want 1", m.Pending())
	}
}

// staleSource hands out callbacks without honouring cancellation, so a frame
// from a previous run can still fire.
type staleSource struct {
	fns []func()
}

func (s *staleSource) RequestFrame(fn func()) FrameID {
	s.fns = append(s.fns, fn)
	return FrameID(len(s.fns))
}

func (s *staleSource) CancelFrame(FrameID) {}

func TestRotationIgnoresStaleFrames(t *testing.T) {
	src := &staleSource{}
	frames := 0
	r := New(src, 1, func(Tick) { frames++ })
	r.Start()
	stale := src.fns[0]
	r.Stop()

	stale()
	if frames != 0 {
		t.Fatal("frame ran while stopped")
	}

	r.Start()
	stale()
	if frames != 0 {
		t.Error("frame from a previous run ran after restart")
	}
	src.fns[len(src.fns)-1]()
	if frames != 1 {
		t.Errorf("frames = %d, want 1", frames)
	}
}

func TestRotationNonFiniteVelocity(t *testing.T) {
	m := NewManual()
	r := New(m, math.Inf(1), nil)
	r.Start()
	m.Step()
	if r.Velocity() != 0 || r.Angle() != 0 {
		t.Errorf("Velocity() = %v, Angle() = %v; want 0", r.Velocity(), r.Angle())
	}
}

func TestRotationStopWaitsForFrame(t *testing.T) {
	tk := NewTicker(500)
	t.Cleanup(func() { _ = tk.Close() })

	entered := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	var after atomic.Bool
	var stopped atomic.Bool

	r := New(tk, 1, func(Tick) {
		if stopped.Load() {
			after.Store(true)
		}
		once.Do(func() {
			close(entered)
			<-release
		})
	})
	r.Start()

	select {
	case <-entered:
	case <-time.After(5 * time.Second):
		t.Fatal("no frame delivered")
	}

	done := make(chan struct{})
	go func() {
		r.Stop()
		stopped.Store(true)
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("Stop returned while a frame was in flight")
	case <-time.After(20 * time.Millisecond):
	}
	close(release)
	<-done

	ticks := r.Ticks()
	time.Sleep(30 * time.Millisecond)
	if after.Load() || r.Ticks() != ticks {
		t.Error("frame ran after Stop returned")
	}
}
