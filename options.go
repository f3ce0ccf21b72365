package globe

// Option configures a Renderer during creation.
//
// Example:
//
//	r, err := globe.New(src, frames,
//	    globe.WithSize(600),
//	    globe.WithRotationSpeed(-0.5),
//	)
type Option func(*options)

// options holds optional configuration for Renderer creation.
type options struct {
	config   Config
	surface  Surface
	observer Observer
}

// defaultOptions returns the default renderer options.
func defaultOptions() options {
	return options{
		config:   DefaultConfig(),
		surface:  nil, // frames are kept but not presented
		observer: nil, // replaced by nopObserver
	}
}

// WithConfig replaces the whole configuration. Options after it still apply.
func WithConfig(c Config) Option {
	return func(o *options) {
		o.config = c
	}
}

// WithSize sets the viewport edge length in pixels.
func WithSize(px int) Option {
	return func(o *options) {
		o.config.Size = px
	}
}

// WithRotationSpeed sets the rotation per frame in degrees.
func WithRotationSpeed(deg float64) Option {
	return func(o *options) {
		o.config.RotationSpeed = deg
	}
}

// WithAssetPath sets the name of the TopoJSON asset.
func WithAssetPath(path string) Option {
	return func(o *options) {
		o.config.AssetPath = path
	}
}

// WithCollectionKey selects the topology object to draw.
func WithCollectionKey(key string) Option {
	return func(o *options) {
		o.config.CollectionKey = key
	}
}

// WithPrecision sets the resampling tolerance in pixels.
func WithPrecision(px float64) Option {
	return func(o *options) {
		o.config.Precision = px
	}
}

// WithCacheSize keeps up to n projected rotations for reuse. A globe
// turning at a speed that divides 360 repeats its frames after one turn.
func WithCacheSize(n int) Option {
	return func(o *options) {
		o.config.CacheSize = n
	}
}

// WithSurface sets where frames are presented.
//
// Example:
//
//	canvas := surface.NewCanvas(400)
//	r, _ := globe.New(src, frames, globe.WithSurface(canvas))
func WithSurface(s Surface) Option {
	return func(o *options) {
		o.surface = s
	}
}

// WithObserver registers an observer for lifecycle and frame events.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		o.observer = obs
	}
}
