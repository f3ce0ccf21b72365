// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package asset fetches the static map data the globe is drawn from.
package asset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
)

// ErrNotFound is returned when the requested asset does not exist.
var ErrNotFound = errors.New("asset: not found")

// Source fetches an asset by relative path.
type Source interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, name string) ([]byte, error)

// Fetch calls f.
func (f SourceFunc) Fetch(ctx context.Context, name string) ([]byte, error) {
	return f(ctx, name)
}

// FS reads assets from a file system such as an embed.FS or os.DirFS.
type FS struct {
	fsys fs.FS
}

// NewFS returns a source reading from fsys.
func NewFS(fsys fs.FS) *FS {
	return &FS{fsys: fsys}
}

// Dir returns a source reading from a directory on disk.
func Dir(dir string) *FS {
	return NewFS(os.DirFS(dir))
}

// Fetch implements Source.
func (s *FS) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name = strings.TrimPrefix(path.Clean("/"+name), "/")
	data, err := fs.ReadFile(s.fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("asset: read %s: %w", name, err)
	}
	return data, nil
}

// MaxHTTPSize bounds the body read by HTTP.Fetch.
const MaxHTTPSize = 64 << 20

// HTTP fetches assets relative to a base URL.
type HTTP struct {
	base   *url.URL
	client *http.Client
}

// StatusError reports a non-2xx HTTP response.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("asset: GET %s: %d %s", e.URL, e.Code, http.StatusText(e.Code))
}

// NewHTTP returns a source resolving names against baseURL. A nil client
// means http.DefaultClient.
func NewHTTP(baseURL string, client *http.Client) (*HTTP, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("asset: base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("asset: base url %q: unsupported scheme", baseURL)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTP{base: u, client: client}, nil
}

// Fetch implements Source.
func (s *HTTP) Fetch(ctx context.Context, name string) ([]byte, error) {
	ref, err := url.Parse(strings.TrimPrefix(name, "/"))
	if err != nil {
		return nil, fmt.Errorf("asset: %s: %w", name, err)
	}
	u := s.base.ResolveReference(ref).String()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("asset: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("asset: GET %s: %w", u, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, u)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &StatusError{URL: u, Code: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxHTTPSize+1))
	if err != nil {
		return nil, fmt.Errorf("asset: GET %s: %w", u, err)
	}
	if len(data) > MaxHTTPSize {
		return nil, fmt.Errorf("asset: GET %s: body exceeds %d bytes", u, MaxHTTPSize)
	}
	return data, nil
}
