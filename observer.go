package globe

import (
	"time"

	"github.com/gogpu/globe/internal/pathcache"
)

// Observer receives renderer events. Implementations must be safe for
// concurrent use and must not block.
type Observer interface {
	// StateChanged is called once per state transition.
	StateChanged(from, to RenderState)

	// AssetFetched is called when the fetch completes, successfully or not.
	// It is not called for a fetch that completes after Deactivate.
	AssetFetched(bytes int, elapsed time.Duration, err error)

	// FrameRendered is called after every presented rotation frame.
	FrameRendered(stats FrameStats)
}

// FrameStats describes the work done for one frame.
type FrameStats struct {
	Tick     uint64
	Rotation float64
	Features int
	Rings    int
	Points   int
	Dropped  int
	Elapsed  time.Duration

	// Cached is true when the path was reused from an earlier turn.
	Cached bool

	// Cache is the path cache state after the frame. It is zero when the
	// cache is disabled.
	Cache CacheStats
}

// CacheStats describes the path cache: entries, capacity and the running
// hit, miss and eviction counts.
type CacheStats = pathcache.Stats

type nopObserver struct{}

func (nopObserver) StateChanged(RenderState, RenderState)  {}
func (nopObserver) AssetFetched(int, time.Duration, error) {}
func (nopObserver) FrameRendered(FrameStats)               {}
