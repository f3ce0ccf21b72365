// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package hostconfig builds renderer settings for the command-line hosts.
//
// Values come from, in increasing priority: built-in defaults, a .env file,
// the process environment (GLOBE_* variables) and command-line flags.
package hostconfig

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/gogpu/globe"
	"github.com/gogpu/globe/asset"
)

// Environment variable names.
const (
	EnvSize          = "GLOBE_SIZE"
	EnvSpeed         = "GLOBE_SPEED"
	EnvAssetDir      = "GLOBE_ASSET_DIR"
	EnvAssetURL      = "GLOBE_ASSET_URL"
	EnvAssetPath     = "GLOBE_ASSET_PATH"
	EnvCollectionKey = "GLOBE_COLLECTION"
	EnvPrecision     = "GLOBE_PRECISION"
	EnvCacheSize     = "GLOBE_CACHE_SIZE"
	EnvFPS           = "GLOBE_FPS"
	EnvLogLevel      = "GLOBE_LOG_LEVEL"
	EnvLogFormat     = "GLOBE_LOG_FORMAT"
)

// Host is the resolved configuration of a command.
type Host struct {
	globe.Config

	AssetDir  string
	AssetURL  string
	FPS       int
	LogLevel  string
	LogFormat string
}

// Lookup returns the value of an environment variable.
type Lookup func(key string) (string, bool)

// Env reads .env from path, if it exists, layered under the process
// environment.
func Env(path string) (Lookup, error) {
	file, err := godotenv.Read(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("hostconfig: %s: %w", path, err)
	}
	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := file[key]
		return v, ok
	}, nil
}

// Register adds the shared flags to flags with defaults taken from env.
// The returned Host is filled in when flags are parsed.
func Register(flags *flag.FlagSet, env Lookup) (*Host, error) {
	if env == nil {
		env = func(string) (string, bool) { return "", false }
	}
	def := globe.DefaultConfig()
	h := &Host{}

	size, err := envInt(env, EnvSize, def.Size)
	if err != nil {
		return nil, err
	}
	speed, err := envFloat(env, EnvSpeed, def.RotationSpeed)
	if err != nil {
		return nil, err
	}
	precision, err := envFloat(env, EnvPrecision, def.Precision)
	if err != nil {
		return nil, err
	}
	cacheSize, err := envInt(env, EnvCacheSize, def.CacheSize)
	if err != nil {
		return nil, err
	}
	fps, err := envInt(env, EnvFPS, 60)
	if err != nil {
		return nil, err
	}

	flags.IntVar(&h.Size, "size", size, "viewport edge in pixels ("+EnvSize+")")
	flags.Float64Var(&h.RotationSpeed, "speed", speed, "rotation per frame in degrees ("+EnvSpeed+")")
	flags.Float64Var(&h.Precision, "precision", precision, "resampling tolerance in pixels, 0 disables ("+EnvPrecision+")")
	flags.IntVar(&h.CacheSize, "cache", cacheSize, "projected rotations kept for reuse, 0 disables ("+EnvCacheSize+")")
	flags.StringVar(&h.AssetPath, "asset", envString(env, EnvAssetPath, def.AssetPath), "TopoJSON asset name ("+EnvAssetPath+")")
	flags.StringVar(&h.CollectionKey, "collection", envString(env, EnvCollectionKey, def.CollectionKey), "topology object to draw ("+EnvCollectionKey+")")
	flags.StringVar(&h.AssetDir, "dir", envString(env, EnvAssetDir, "."), "directory holding the asset ("+EnvAssetDir+")")
	flags.StringVar(&h.AssetURL, "url", envString(env, EnvAssetURL, ""), "base URL to fetch the asset from instead of -dir ("+EnvAssetURL+")")
	flags.IntVar(&h.FPS, "fps", fps, "frames per second for timer-driven hosts ("+EnvFPS+")")
	flags.StringVar(&h.LogLevel, "log-level", envString(env, EnvLogLevel, "info"), "debug, info, warn or error ("+EnvLogLevel+")")
	flags.StringVar(&h.LogFormat, "log-format", envString(env, EnvLogFormat, "text"), "text or json ("+EnvLogFormat+")")
	return h, nil
}

// Source returns the asset source selected by the flags.
func (h *Host) Source() (asset.Source, error) {
	if h.AssetURL != "" {
		return asset.NewHTTP(h.AssetURL, nil)
	}
	return asset.Dir(h.AssetDir), nil
}

// Options returns the renderer options for the resolved configuration.
func (h *Host) Options() []globe.Option {
	return []globe.Option{globe.WithConfig(h.Config)}
}

// Logger builds a slog logger writing to w at the configured level and format.
func (h *Host) Logger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(h.LogLevel)}
	var handler slog.Handler
	if strings.EqualFold(h.LogFormat, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// ParseLevel maps a level name to a slog level; unknown names mean info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func envString(env Lookup, key, def string) string {
	if v, ok := env(key); ok && v != "" {
		return v
	}
	return def
}

func envInt(env Lookup, key string, def int) (int, error) {
	v, ok := env(key)
	if !ok || v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("hostconfig: %s=%q: %w", key, v, err)
	}
	return n, nil
}

func envFloat(env Lookup, key string, def float64) (float64, error) {
	v, ok := env(key)
	if !ok || v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, fmt.Errorf("hostconfig: %s=%q: %w", key, v, err)
	}
	return f, nil
}
