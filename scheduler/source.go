// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scheduler

import (
	"sync"
	"time"
)

// FrameID identifies a requested frame. The zero value is never issued.
type FrameID uint64

// FrameSource delivers one-shot callbacks at display frame boundaries.
//
// RequestFrame schedules fn to run once on the next frame. CancelFrame
// removes a pending request; cancelling an unknown, fired or already
// cancelled id is a no-op.
type FrameSource interface {
	RequestFrame(fn func()) FrameID
	CancelFrame(id FrameID)
}

// queue holds pending requests in submission order.
type queue struct {
	mu      sync.Mutex
	next    FrameID
	pending []request
}

type request struct {
	id FrameID
	fn func()
}

func (q *queue) add(fn func()) FrameID {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.next++
	q.pending = append(q.pending, request{id: q.next, fn: fn})
	return q.next
}

func (q *queue) cancel(id FrameID) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, r := range q.pending {
		if r.id == id {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
}

// take detaches the requests made before this frame. Requests made while
// they run belong to the next frame.
func (q *queue) take() []request {
	q.mu.Lock()
	defer q.mu.Unlock()
	batch := q.pending
	q.pending = nil
	return batch
}

func (q *queue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Manual is a FrameSource advanced explicitly by Step.
// The zero value is ready to use.
type Manual struct {
	q queue
}

// NewManual returns an empty manual source.
func NewManual() *Manual {
	return &Manual{}
}

// RequestFrame implements FrameSource.
func (m *Manual) RequestFrame(fn func()) FrameID { return m.q.add(fn) }

// CancelFrame implements FrameSource.
func (m *Manual) CancelFrame(id FrameID) { m.q.cancel(id) }

// Pending returns the number of queued callbacks.
func (m *Manual) Pending() int { return m.q.len() }

// Step runs one frame: every callback queued before the call, in order.
// It returns the number of callbacks run.
func (m *Manual) Step() int {
	batch := m.q.take()
	for _, r := range batch {
		r.fn()
	}
	return len(batch)
}

// Ticker is a FrameSource that runs frames on its own goroutine at a fixed
// rate until closed.
type Ticker struct {
	q      queue
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
	wg     sync.WaitGroup
}

// DefaultFPS is the frame rate used by NewTicker for a non-positive fps.
const DefaultFPS = 60

// NewTicker starts a source delivering fps frames per second.
func NewTicker(fps int) *Ticker {
	if fps <= 0 {
		fps = DefaultFPS
	}
	t := &Ticker{
		ticker: time.NewTicker(time.Second / time.Duration(fps)),
		done:   make(chan struct{}),
	}
	t.wg.Add(1)
	go t.loop()
	return t
}

func (t *Ticker) loop() {
	defer t.wg.Done()
	for {
		select {
		case <-t.done:
			return
		case <-t.ticker.C:
			for _, r := range t.q.take() {
				r.fn()
			}
		}
	}
}

// RequestFrame implements FrameSource.
func (t *Ticker) RequestFrame(fn func()) FrameID { return t.q.add(fn) }

// CancelFrame implements FrameSource.
func (t *Ticker) CancelFrame(id FrameID) { t.q.cancel(id) }

// Close stops the frame goroutine and waits for it to exit.
// Pending callbacks are discarded. Close must not be called from a callback.
func (t *Ticker) Close() error {
	t.once.Do(func() {
		t.ticker.Stop()
		close(t.done)
	})
	t.wg.Wait()
	t.q.take()
	return nil
}
