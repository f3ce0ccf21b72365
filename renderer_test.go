package globe

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	"github.com/gogpu/globe/asset"
	"github.com/gogpu/globe/scheduler"
	"github.com/gogpu/globe/topology"
)

func worldSource(t *testing.T) asset.Source {
	t.Helper()
	data, err := os.ReadFile("testdata/world.topo.json")
	if err != nil {
		t.Fatal(err)
	}
	return asset.NewFS(fstest.MapFS{DefaultAssetPath: {Data: data}})
}

// recordingSurface keeps every presented frame.
type recordingSurface struct {
	mu     sync.Mutex
	frames []*Frame
}

func (s *recordingSurface) Present(f *Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames = append(s.frames, f)
}

func (s *recordingSurface) states() []RenderState {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]RenderState, len(s.frames))
	for i, f := range s.frames {
		out[i] = f.State
	}
	return out
}

type recordingObserver struct {
	mu          sync.Mutex
	transitions [][2]RenderState
	fetches     int
	frames      int
}

func (o *recordingObserver) StateChanged(from, to RenderState) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.transitions = append(o.transitions, [2]RenderState{from, to})
}

func (o *recordingObserver) AssetFetched(int, time.Duration, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.fetches++
}

func (o *recordingObserver) FrameRendered(FrameStats) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.frames++
}

func waitDone(t *testing.T, r *Renderer) {
	t.Helper()
	select {
	case <-r.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("fetch did not complete")
	}
}

func newRenderer(t *testing.T, src asset.Source, frames scheduler.FrameSource, opts ...Option) *Renderer {
	t.Helper()
	r, err := New(src, frames, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(r.Deactivate)
	return r
}

func TestRendererReady(t *testing.T) {
	frames := scheduler.NewManual()
	surf := &recordingSurface{}
	obs := &recordingObserver{}
	r := newRenderer(t, worldSource(t), frames, WithSurface(surf), WithObserver(obs), WithRotationSpeed(90))

	if r.State() != StateLoading {
		t.Errorf("initial State() = %v, want Loading", r.State())
	}
	if err := r.Activate(context.Background()); err != nil {
		t.Fatalf("Activate() error = %v", err)
	}
	waitDone(t, r)

	if r.State() != StateReady || r.Err() != nil {
		t.Fatalf("State() = %v, Err() = %v; want Ready", r.State(), r.Err())
	}
	f := r.Frame()
	if f.Tick != 0 || f.Rotation != 0 || f.Path.Empty() {
		t.Errorf("load frame = %+v, want tick 0 with visible land", f)
	}
	if f.Features != 2 || f.Dropped != 1 {
		t.Errorf("Features = %d, Dropped = %d; want 2 and 1", f.Features, f.Dropped)
	}
	if r.Collection().Len() != 3 {
		t.Errorf("Collection().Len() = %d, want 3", r.Collection().Len())
	}
	if frames.Pending() != 1 {
		t.Fatalf("Pending() = %d, want the rotation armed", frames.Pending())
	}

	frames.Step()
	if f := r.Frame(); f.Tick != 1 || f.Rotation != 90 {
		t.Errorf("after one step: tick %d, rotation %v", f.Tick, f.Rotation)
	}

	got := surf.states()
	want := []RenderState{StateLoading, StateReady, StateReady}
	if len(got) != len(want) {
		t.Fatalf("presented %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("frame %d state = %v, want %v", i, got[i], want[i])
		}
	}

	obs.mu.Lock()
	defer obs.mu.Unlock()
	if obs.fetches != 1 || obs.frames != 1 || len(obs.transitions) != 1 ||
		obs.transitions[0] != [2]RenderState{StateLoading, StateReady} {
		t.Errorf("observer saw fetches=%d frames=%d transitions=%v", obs.fetches, obs.frames, obs.transitions)
	}
}

func TestRendererFullTurnRepeats(t *testing.T) {
	frames := scheduler.NewManual()
	r := newRenderer(t, worldSource(t), frames, WithRotationSpeed(0.1))
	if err := r.Activate(context.Background()); err != nil {
		t.Fatal(err)
	}
	waitDone(t, r)
	start := r.Frame().Path.String()

	for range 3600 {
		frames.Step()
	}

	f := r.Frame()
	if f.Rotation != 360 || f.Tick != 3600 {
		t.Fatalf("rotation = %v after %d ticks, want 360", f.Rotation, f.Tick)
	}
	if got := f.Path.String(); got != start {
		t.Errorf("path after a full turn differs from the start:\n got %s\nwant %s", got, start)
	}
}

type cacheObserver struct {
	nopObserver
	mu     sync.Mutex
	cached []bool
	last   CacheStats
}

func (o *cacheObserver) FrameRendered(s FrameStats) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.cached = append(o.cached, s.Cached)
	o.last = s.Cache
}

func TestRendererCacheReusesTurn(t *testing.T) {
	frames := scheduler.NewManual()
	obs := &cacheObserver{}
	r := newRenderer(t, worldSource(t), frames, WithRotationSpeed(90), WithCacheSize(4), WithObserver(obs))
	if err := r.Activate(context.Background()); err != nil {
		t.Fatal(err)
	}
	waitDone(t, r)
	first := r.Frame()

	for range 8 {
		frames.Step()
	}

	obs.mu.Lock()
	defer obs.mu.Unlock()
	want := []bool{false, false, false, true, true, true, true, true}
	if len(obs.cached) != len(want) {
		t.Fatalf("observed %d frames, want %d", len(obs.cached), len(want))
	}
	for i := range want {
		if obs.cached[i] != want[i] {
			t.Errorf("tick %d cached = %v, want %v", i+1, obs.cached[i], want[i])
		}
	}

	f := r.Frame()
	if f.Tick != 8 || f.Rotation != 720 {
		t.Errorf("tick %d rotation %v, want 8 and 720", f.Tick, f.Rotation)
	}
	if f.Path != first.Path {
		t.Error("frame two turns later should share the cached path")
	}

	wantStats := CacheStats{Len: 4, Capacity: 4, Hits: 5, Misses: 4}
	if got := r.CacheStats(); got != wantStats {
		t.Errorf("CacheStats() = %+v, want %+v", got, wantStats)
	}
	if got := obs.last; got != wantStats {
		t.Errorf("last FrameStats.Cache = %+v, want %+v", got, wantStats)
	}
}

func TestRendererCacheDisabled(t *testing.T) {
	frames := scheduler.NewManual()
	r := newRenderer(t, worldSource(t), frames, WithRotationSpeed(90))
	if err := r.Activate(context.Background()); err != nil {
		t.Fatal(err)
	}
	waitDone(t, r)
	for range 8 {
		frames.Step()
	}
	if got := r.CacheStats(); got != (CacheStats{}) {
		t.Errorf("CacheStats() = %+v, want zero", got)
	}
}

func TestRendererMissingCollection(t *testing.T) {
	frames := scheduler.NewManual()
	r := newRenderer(t, worldSource(t), frames, WithCollectionKey("ne_50m_land"))
	if err := r.Activate(context.Background()); err != nil {
		t.Fatal(err)
	}
	waitDone(t, r)

	if r.State() != StateFailed {
		t.Fatalf("State() = %v, want Failed", r.State())
	}
	if !errors.Is(r.Err(), topology.ErrInvalidStructure) {
		t.Errorf("Err() = %v, want ErrInvalidStructure", r.Err())
	}
	if f := r.Frame(); f.State != StateFailed || f.Err == nil || f.Path != nil {
		t.Errorf("failed frame = %+v", f)
	}
	if frames.Pending() != 0 {
		t.Error("rotation must not start after a failed load")
	}
}

func TestRendererFetchError(t *testing.T) {
	frames := scheduler.NewManual()
	r := newRenderer(t, asset.NewFS(fstest.MapFS{}), frames)
	if err := r.Activate(context.Background()); err != nil {
		t.Fatal(err)
	}
	waitDone(t, r)

	var fe *FetchError
	if !errors.As(r.Err(), &fe) || fe.Path != DefaultAssetPath {
		t.Fatalf("Err() = %v, want *FetchError for %s", r.Err(), DefaultAssetPath)
	}
	if !errors.Is(r.Err(), asset.ErrNotFound) {
		t.Errorf("Err() = %v, want to wrap asset.ErrNotFound", r.Err())
	}
	if frames.Pending() != 0 {
		t.Error("rotation must not start after a failed fetch")
	}
}

func TestRendererCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := newRenderer(t, worldSource(t), scheduler.NewManual())
	if err := r.Activate(ctx); err != nil {
		t.Fatal(err)
	}
	waitDone(t, r)
	if r.State() != StateFailed || !errors.Is(r.Err(), context.Canceled) {
		t.Errorf("State() = %v, Err() = %v; want Failed with context.Canceled", r.State(), r.Err())
	}
}

func TestRendererLateFetchIgnored(t *testing.T) {
	data, err := os.ReadFile("testdata/world.topo.json")
	if err != nil {
		t.Fatal(err)
	}
	release := make(chan struct{})
	var calls int
	src := asset.SourceFunc(func(context.Context, string) ([]byte, error) {
		calls++
		<-release
		return data, nil
	})

	frames := scheduler.NewManual()
	surf := &recordingSurface{}
	obs := &recordingObserver{}
	r := newRenderer(t, src, frames, WithSurface(surf), WithObserver(obs))
	if err := r.Activate(context.Background()); err != nil {
		t.Fatal(err)
	}

	r.Deactivate()
	close(release)
	waitDone(t, r)

	if calls != 1 {
		t.Errorf("fetch called %d times, want 1", calls)
	}
	if r.State() != StateLoading || r.Collection() != nil {
		t.Errorf("State() = %v after a late fetch, want Loading with no data", r.State())
	}
	if frames.Pending() != 0 {
		t.Error("late fetch started the rotation")
	}
	if got := surf.states(); len(got) != 1 || got[0] != StateLoading {
		t.Errorf("presented %v, want only the loading frame", got)
	}
	obs.mu.Lock()
	defer obs.mu.Unlock()
	if obs.fetches != 0 || len(obs.transitions) != 0 {
		t.Errorf("observer notified of a discarded fetch: %d fetches, %v", obs.fetches, obs.transitions)
	}
}

func TestRendererActivateTwice(t *testing.T) {
	r := newRenderer(t, worldSource(t), scheduler.NewManual())
	if err := r.Activate(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := r.Activate(context.Background()); !errors.Is(err, ErrAlreadyActivated) {
		t.Errorf("second Activate() = %v, want ErrAlreadyActivated", err)
	}
	waitDone(t, r)

	r.Deactivate()
	r.Deactivate()
	if err := r.Activate(context.Background()); !errors.Is(err, ErrDeactivated) {
		t.Errorf("Activate() after Deactivate = %v, want ErrDeactivated", err)
	}
}

func TestRendererDeactivateStopsRotation(t *testing.T) {
	frames := scheduler.NewManual()
	r := newRenderer(t, worldSource(t), frames, WithRotationSpeed(1))
	if err := r.Activate(context.Background()); err != nil {
		t.Fatal(err)
	}
	waitDone(t, r)
	frames.Step()
	frames.Step()

	r.Deactivate()
	if frames.Pending() != 0 {
		t.Errorf("Pending() = %d after Deactivate, want 0", frames.Pending())
	}
	before := r.Frame()
	frames.Step()
	if r.Frame() != before || before.Tick != 2 {
		t.Errorf("frame advanced after Deactivate: tick %d", r.Frame().Tick)
	}
}

func TestRendererTicker(t *testing.T) {
	tk := scheduler.NewTicker(240)
	t.Cleanup(func() { _ = tk.Close() })

	r := newRenderer(t, worldSource(t), tk)
	if err := r.Activate(context.Background()); err != nil {
		t.Fatal(err)
	}
	waitDone(t, r)

	deadline := time.Now().Add(5 * time.Second)
	for r.Frame().Tick < 3 {
		if time.Now().After(deadline) {
			t.Fatal("ticker did not advance the rotation")
		}
		time.Sleep(5 * time.Millisecond)
	}
	r.Deactivate()
	tick := r.Frame().Tick
	time.Sleep(30 * time.Millisecond)
	if r.Frame().Tick != tick {
		t.Error("rotation advanced after Deactivate returned")
	}
}

func TestNewInvalid(t *testing.T) {
	src := asset.NewFS(fstest.MapFS{})
	frames := scheduler.NewManual()

	tests := []struct {
		name   string
		src    asset.Source
		frames scheduler.FrameSource
		opts   []Option
	}{
		{"nil source", nil, frames, nil},
		{"nil frames", src, nil, nil},
		{"zero size", src, frames, []Option{WithSize(0)}},
		{"empty key", src, frames, []Option{WithCollectionKey("")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.src, tt.frames, tt.opts...); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("New() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestRenderStateString(t *testing.T) {
	tests := []struct {
		s    RenderState
		want string
	}{
		{StateLoading, "Loading"},
		{StateReady, "Ready"},
		{StateFailed, "Failed"},
		{RenderState(7), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("RenderState(%d).String() = %q, want %q", tt.s, got, tt.want)
		}
	}
}
