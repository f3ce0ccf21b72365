// Package globe renders a slowly rotating globe of the world's landmasses.
//
// # Overview
//
// A Renderer fetches a TopoJSON map once, decodes the configured collection
// of country polygons and then, on every display frame, rotates the globe by
// a fixed number of degrees, projects the facing hemisphere orthographically
// and hands the resulting path to a Surface.
//
// # Quick Start
//
//	frames := scheduler.NewManual()
//	canvas := surface.NewCanvas(400)
//
//	r, err := globe.New(asset.Dir("public"), frames,
//	    globe.WithSurface(canvas),
//	    globe.WithRotationSpeed(0.3),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Deactivate()
//
//	_ = r.Activate(ctx)
//	<-r.Done()
//	for range 100 {
//	    frames.Step()
//	}
//	_ = canvas.SavePNG("globe.png")
//
// # Lifecycle
//
// A Renderer starts in StateLoading and is activated once. The asset fetch
// runs on its own goroutine; when it completes the renderer moves to
// StateReady and starts rotating, or to StateFailed and stays there.
// Deactivate stops the rotation and discards a fetch that has not completed
// yet. A deactivated renderer cannot be activated again.
//
// # Coordinate System
//
// Frames use screen coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - The globe outline is the circle of radius Size/2 centred in the frame
//
// # Packages
//
//   - topology: TopoJSON decoding into geo features
//   - projection: orthographic projection with horizon clipping
//   - geopath: path commands for projected geometry
//   - scheduler: frame sources and the rotation driver
//   - asset: filesystem and HTTP asset sources
//   - surface: gg-backed drawing surface
//   - metrics: Prometheus observer
package globe

// Version information
const (
	// Version is the current version of the library
	Version = "0.3.0"
)
