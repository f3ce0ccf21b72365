package globe

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gogpu/globe/asset"
	"github.com/gogpu/globe/geo"
	"github.com/gogpu/globe/geopath"
	"github.com/gogpu/globe/internal/pathcache"
	"github.com/gogpu/globe/projection"
	"github.com/gogpu/globe/scheduler"
	"github.com/gogpu/globe/topology"
)

type phase uint8

const (
	phaseIdle phase = iota
	phaseActive
	phaseDeactivated
)

// Renderer owns the lifecycle of one globe: a single asset fetch, the decoded
// map and the rotation that redraws it.
//
// All methods are safe for concurrent use.
type Renderer struct {
	cfg      Config
	src      asset.Source
	frames   scheduler.FrameSource
	proj     *projection.Orthographic
	surface  Surface
	observer Observer
	paths    *pathcache.Cache[uint64, projected]
	done     chan struct{}

	mu     sync.Mutex
	phase  phase
	state  RenderState
	err    error
	data   *geo.Collection
	frame  *Frame
	rot    *scheduler.Rotation
	cancel context.CancelFunc
}

// New returns a renderer that will fetch its map from src and advance on
// frames from frames. Nothing happens until Activate.
func New(src asset.Source, frames scheduler.FrameSource, opts ...Option) (*Renderer, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if src == nil {
		return nil, fmt.Errorf("%w: nil asset source", ErrInvalidConfig)
	}
	if frames == nil {
		return nil, fmt.Errorf("%w: nil frame source", ErrInvalidConfig)
	}
	if err := o.config.Validate(); err != nil {
		return nil, err
	}

	proj, err := projection.New(float64(o.config.Size), projection.WithPrecision(o.config.Precision))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if o.observer == nil {
		o.observer = nopObserver{}
	}

	r := &Renderer{
		cfg:      o.config,
		src:      src,
		frames:   frames,
		proj:     proj,
		surface:  o.surface,
		observer: o.observer,
		paths:    pathcache.New[uint64, projected](o.config.CacheSize),
		done:     make(chan struct{}),
		state:    StateLoading,
	}
	r.frame = r.statusFrame(StateLoading, nil)
	return r, nil
}

// Config returns the validated configuration.
func (r *Renderer) Config() Config { return r.cfg }

// Activate presents the loading frame and starts the single asset fetch.
// It returns ErrAlreadyActivated on a second call and ErrDeactivated after
// Deactivate. Cancelling ctx aborts the fetch.
func (r *Renderer) Activate(ctx context.Context) error {
	r.mu.Lock()
	switch r.phase {
	case phaseActive:
		r.mu.Unlock()
		return ErrAlreadyActivated
	case phaseDeactivated:
		r.mu.Unlock()
		return ErrDeactivated
	}
	r.phase = phaseActive
	ctx, r.cancel = context.WithCancel(ctx)
	loading := r.frame
	r.mu.Unlock()

	r.present(loading)
	go r.load(ctx)
	return nil
}

// Done is closed once the fetch has been handled: the renderer is Ready or
// Failed, or the result was discarded after Deactivate.
func (r *Renderer) Done() <-chan struct{} { return r.done }

// State returns the current state.
func (r *Renderer) State() RenderState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Err returns the failure cause in StateFailed, nil otherwise.
func (r *Renderer) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Frame returns the most recent frame. It is never nil.
func (r *Renderer) Frame() *Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frame
}

// Collection returns the decoded map, or nil before StateReady.
func (r *Renderer) Collection() *geo.Collection {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.data
}

// Deactivate stops the rotation and ignores any fetch still in flight.
// When it returns no further frame is produced. It is idempotent and must
// not be called from Surface.Present or an Observer method.
func (r *Renderer) Deactivate() {
	r.mu.Lock()
	if r.phase == phaseDeactivated {
		r.mu.Unlock()
		return
	}
	r.phase = phaseDeactivated
	rot, cancel := r.rot, r.cancel
	r.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if rot != nil {
		rot.Stop()
	}
	Logger().Debug("globe: deactivated")
}

// CacheStats returns the path cache counters. They stay zero while the
// cache is disabled.
func (r *Renderer) CacheStats() CacheStats { return r.paths.Stats() }

func (r *Renderer) load(ctx context.Context) {
	defer close(r.done)
	log := Logger()

	start := time.Now()
	data, err := r.src.Fetch(ctx, r.cfg.AssetPath)
	elapsed := time.Since(start)

	if !r.active() {
		log.Debug("globe: discarding fetch result after deactivation", "path", r.cfg.AssetPath)
		return
	}
	r.observer.AssetFetched(len(data), elapsed, err)
	if err != nil {
		log.Warn("globe: fetch failed", "path", r.cfg.AssetPath, "err", err)
		r.fail(&FetchError{Path: r.cfg.AssetPath, Err: err})
		return
	}

	c, err := topology.Decode(data, r.cfg.CollectionKey)
	if err != nil {
		log.Warn("globe: decode failed", "path", r.cfg.AssetPath, "key", r.cfg.CollectionKey, "err", err)
		r.fail(err)
		return
	}
	for i := range c.Features {
		if err := c.Features[i].Validate(); err != nil {
			log.Debug("globe: feature will be skipped", "id", c.Features[i].ID, "err", err)
		}
	}

	first, _ := r.render(c, scheduler.Tick{})

	r.mu.Lock()
	if r.phase != phaseActive {
		r.mu.Unlock()
		log.Debug("globe: discarding decoded map after deactivation")
		return
	}
	r.state = StateReady
	r.data = c
	r.frame = first
	r.rot = scheduler.New(r.frames, r.cfg.RotationSpeed, r.tick)
	r.mu.Unlock()

	log.Info("globe: map loaded",
		"path", r.cfg.AssetPath,
		"bytes", len(data),
		"features", c.Len(),
		"rings", c.RingCount(),
		"elapsed", elapsed)
	r.observer.StateChanged(StateLoading, StateReady)
	r.present(first)

	// Rotation frames follow the load frame.
	r.mu.Lock()
	if r.phase == phaseActive {
		r.rot.Start()
	}
	r.mu.Unlock()
}

func (r *Renderer) active() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase == phaseActive
}

func (r *Renderer) fail(err error) {
	f := r.statusFrame(StateFailed, err)

	r.mu.Lock()
	if r.phase != phaseActive {
		r.mu.Unlock()
		return
	}
	r.state = StateFailed
	r.err = err
	r.frame = f
	r.mu.Unlock()

	r.observer.StateChanged(StateLoading, StateFailed)
	r.present(f)
}

// tick runs on the frame source goroutine.
func (r *Renderer) tick(t scheduler.Tick) {
	r.mu.Lock()
	if r.phase != phaseActive || r.state != StateReady {
		r.mu.Unlock()
		return
	}
	c := r.data
	r.mu.Unlock()

	start := time.Now()
	f, cached := r.render(c, t)
	elapsed := time.Since(start)

	r.mu.Lock()
	r.frame = f
	r.mu.Unlock()

	r.present(f)
	r.observer.FrameRendered(FrameStats{
		Tick:     t.N,
		Rotation: t.Angle,
		Features: f.Features,
		Rings:    f.Path.Subpaths(),
		Points:   len(f.Path.Points()),
		Dropped:  f.Dropped,
		Elapsed:  elapsed,
		Cached:   cached,
		Cache:    r.paths.Stats(),
	})
}

// projected is the rotation-dependent part of a Ready frame.
type projected struct {
	path     *geopath.Descriptor
	features int
	dropped  int
}

// render projects c at the tick's rotation and builds a Ready frame.
// cached reports whether the path came from the cache.
func (r *Renderer) render(c *geo.Collection, t scheduler.Tick) (f *Frame, cached bool) {
	p, cached := r.paths.GetOrCreate(pathcache.RotationKey(t.Angle), func() projected {
		g := r.proj.Project(c, t.Angle)
		return projected{
			path:     geopath.Emit(g),
			features: len(g.Features),
			dropped:  len(g.Dropped),
		}
	})
	return &Frame{
		State:    StateReady,
		Size:     r.cfg.Size,
		Tick:     t.N,
		Rotation: t.Angle,
		Outline:  r.proj.Outline(),
		Path:     p.path,
		Features: p.features,
		Dropped:  p.dropped,
	}, cached
}

func (r *Renderer) statusFrame(s RenderState, err error) *Frame {
	return &Frame{
		State:   s,
		Size:    r.cfg.Size,
		Outline: r.proj.Outline(),
		Err:     err,
	}
}

func (r *Renderer) present(f *Frame) {
	if r.surface != nil {
		r.surface.Present(f)
	}
}
