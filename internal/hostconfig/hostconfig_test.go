// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package hostconfig

import (
	"bytes"
	"flag"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/globe"
	"github.com/gogpu/globe/asset"
	"github.com/gogpu/globe/scheduler"
)

func mapEnv(m map[string]string) Lookup {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func parse(t *testing.T, env Lookup, args ...string) *Host {
	t.Helper()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	h, err := Register(fs, env)
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return h
}

func TestDefaults(t *testing.T) {
	h := parse(t, nil)
	if h.Config != globe.DefaultConfig() {
		t.Errorf("Config = %+v, want defaults", h.Config)
	}
	if h.AssetDir != "." || h.FPS != 60 || h.LogLevel != "info" || h.LogFormat != "text" {
		t.Errorf("host = %+v", h)
	}
}

func TestPrecedence(t *testing.T) {
	env := mapEnv(map[string]string{
		EnvSize:          "512",
		EnvSpeed:         "-1.5",
		EnvCollectionKey: "land",
		EnvLogLevel:      "debug",
	})

	h := parse(t, env)
	if h.Size != 512 || h.RotationSpeed != -1.5 || h.CollectionKey != "land" || h.LogLevel != "debug" {
		t.Errorf("env not applied: %+v", h)
	}

	h = parse(t, env, "-size", "64", "-speed", "2", "-cache", "300")
	if h.Size != 64 || h.RotationSpeed != 2 || h.CollectionKey != "land" || h.CacheSize != 300 {
		t.Errorf("flags should override env: %+v", h)
	}
}

func TestInvalidEnv(t *testing.T) {
	for _, key := range []string{EnvSize, EnvSpeed, EnvPrecision, EnvCacheSize, EnvFPS} {
		fs := flag.NewFlagSet("test", flag.ContinueOnError)
		if _, err := Register(fs, mapEnv(map[string]string{key: "lots"})); err == nil {
			t.Errorf("Register() with %s=lots succeeded", key)
		}
	}
}

func TestEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "GLOBE_SIZE=300\nGLOBE_ASSET_PATH=maps/world.json\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvAssetPath, "override.json")

	env, err := Env(path)
	if err != nil {
		t.Fatalf("Env() error = %v", err)
	}
	h := parse(t, env)
	if h.Size != 300 {
		t.Errorf("Size = %d, want value from .env", h.Size)
	}
	if h.AssetPath != "override.json" {
		t.Errorf("AssetPath = %q, process environment should win over .env", h.AssetPath)
	}

	if _, err := Env(filepath.Join(dir, "missing.env")); err != nil {
		t.Errorf("missing .env should be ignored, got %v", err)
	}
}

func TestSource(t *testing.T) {
	h := parse(t, nil, "-dir", t.TempDir())
	src, err := h.Source()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := src.(*asset.FS); !ok {
		t.Errorf("Source() = %T, want *asset.FS", src)
	}

	h = parse(t, nil, "-url", "https://example.com/static")
	src, err = h.Source()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := src.(*asset.HTTP); !ok {
		t.Errorf("Source() = %T, want *asset.HTTP", src)
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	h := &Host{LogLevel: "warn", LogFormat: "json"}
	l := h.Logger(&buf)
	l.Info("hidden")
	l.Warn("shown", "k", 1)

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, `"msg":"shown"`) {
		t.Errorf("log output = %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{" WARN ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestOptions(t *testing.T) {
	h := parse(t, nil, "-size", "128")
	r, err := globe.New(asset.NewFS(nil), scheduler.NewManual(), h.Options()...)
	if err != nil {
		t.Fatal(err)
	}
	if r.Config().Size != 128 {
		t.Errorf("renderer size = %d, want 128", r.Config().Size)
	}
}
