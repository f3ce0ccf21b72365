package globe

import (
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/globe/projection"
)

// ErrInvalidConfig is returned by New when the configuration is unusable.
var ErrInvalidConfig = errors.New("globe: invalid config")

// Defaults match the public map bundle the renderer was built around.
const (
	DefaultSize          = 400
	DefaultRotationSpeed = 0.3
	DefaultAssetPath     = "topo.json"
	DefaultCollectionKey = "ne_110m_admin_0_countries"
	DefaultCacheSize     = 0
)

// Config holds the renderer settings.
type Config struct {
	// Size is the edge length of the square viewport in pixels.
	Size int

	// RotationSpeed is the rotation added per frame, in degrees.
	// Negative values spin the other way.
	RotationSpeed float64

	// AssetPath names the TopoJSON asset passed to the source.
	AssetPath string

	// CollectionKey selects the object inside the topology.
	CollectionKey string

	// Precision is the resampling tolerance in pixels; zero or less draws
	// straight chords between vertices. Positive values must be at least
	// projection.MinPrecision.
	Precision float64

	// CacheSize is the number of projected rotations kept for reuse.
	// Zero disables the cache.
	CacheSize int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Size:          DefaultSize,
		RotationSpeed: DefaultRotationSpeed,
		AssetPath:     DefaultAssetPath,
		CollectionKey: DefaultCollectionKey,
		Precision:     math.Sqrt(0.5),
	}
}

// Validate reports the first problem with c, wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	switch {
	case c.Size <= 0:
		return fmt.Errorf("%w: size %d must be positive", ErrInvalidConfig, c.Size)
	case math.IsNaN(c.RotationSpeed) || math.IsInf(c.RotationSpeed, 0):
		return fmt.Errorf("%w: rotation speed %v must be finite", ErrInvalidConfig, c.RotationSpeed)
	case c.AssetPath == "":
		return fmt.Errorf("%w: empty asset path", ErrInvalidConfig)
	case c.CollectionKey == "":
		return fmt.Errorf("%w: empty collection key", ErrInvalidConfig)
	case math.IsNaN(c.Precision) || math.IsInf(c.Precision, 0):
		return fmt.Errorf("%w: precision %v must be finite", ErrInvalidConfig, c.Precision)
	case c.Precision > 0 && c.Precision < projection.MinPrecision:
		return fmt.Errorf("%w: precision %v below %v px", ErrInvalidConfig, c.Precision, projection.MinPrecision)
	case c.CacheSize < 0:
		return fmt.Errorf("%w: cache size %d must not be negative", ErrInvalidConfig, c.CacheSize)
	}
	return nil
}
