package globe

import (
	"github.com/gogpu/globe/geopath"
	"github.com/gogpu/globe/projection"
)

// RenderState is the externally visible state of a Renderer.
type RenderState uint8

const (
	// StateLoading is the initial state, held until the asset fetch completes.
	StateLoading RenderState = iota
	// StateReady means the map is decoded and the globe is rotating.
	StateReady
	// StateFailed is terminal: the asset could not be fetched or decoded.
	StateFailed
)

var renderStateNames = [...]string{
	StateLoading: "Loading",
	StateReady:   "Ready",
	StateFailed:  "Failed",
}

// String returns the string representation of a RenderState.
func (s RenderState) String() string {
	if int(s) < len(renderStateNames) {
		return renderStateNames[s]
	}
	return "Unknown"
}

// Frame is one presentable picture of the globe. Frames are immutable once
// published and may be retained by surfaces.
type Frame struct {
	State RenderState
	Size  int

	// Tick counts rotation frames; zero for the frame presented on load.
	Tick uint64

	// Rotation is the accumulated rotation in degrees, not reduced mod 360.
	Rotation float64

	// Outline is the sphere outline in pixels. It is set in every state.
	Outline projection.Circle

	// Path holds the visible land. It is nil unless State is StateReady.
	Path *geopath.Descriptor

	// Features is the number of projected features; Dropped the number
	// skipped because of malformed rings.
	Features int
	Dropped  int

	// Err is the failure cause when State is StateFailed.
	Err error
}

// Surface receives frames as they are produced.
//
// Present is called from the frame source goroutine for rotation frames and
// from the fetch goroutine for the load result. It must not call Deactivate.
type Surface interface {
	Present(f *Frame)
}

// SurfaceFunc adapts a function to Surface.
type SurfaceFunc func(f *Frame)

// Present calls fn.
func (fn SurfaceFunc) Present(f *Frame) { fn(f) }
