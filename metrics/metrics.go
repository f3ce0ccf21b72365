// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package metrics exports renderer events as Prometheus metrics.
package metrics

import (
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/expfmt"

	"github.com/gogpu/globe"
)

// Observer implements globe.Observer with Prometheus collectors.
type Observer struct {
	Frames        prometheus.Counter
	FrameDuration prometheus.Histogram
	FramePoints   prometheus.Gauge
	DroppedTotal  prometheus.Counter
	Rotation      prometheus.Gauge
	CacheHits     prometheus.Counter
	CacheEntries  prometheus.Gauge
	Evictions     prometheus.Counter
	Fetches       *prometheus.CounterVec
	FetchDuration prometheus.Histogram
	FetchBytes    prometheus.Gauge
	Transitions   *prometheus.CounterVec
	State         prometheus.Gauge

	evicted atomic.Uint64 // evictions already added to Evictions
}

var _ globe.Observer = (*Observer)(nil)

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) (*Observer, error) {
	o := &Observer{
		Frames: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "globe_frames_total",
			Help: "Total number of rotation frames rendered",
		}),
		FrameDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "globe_frame_duration_ms",
			Help:    "Projection and path emission time per frame in milliseconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20, 50},
		}),
		FramePoints: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "globe_frame_points",
			Help: "Path points in the most recent frame",
		}),
		DroppedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "globe_dropped_features_total",
			Help: "Total features skipped for malformed rings, counted per frame",
		}),
		Rotation: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "globe_rotation_degrees",
			Help: "Accumulated rotation of the most recent frame",
		}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "globe_frame_cache_hits_total",
			Help: "Frames whose path was reused from an earlier turn",
		}),
		CacheEntries: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "globe_frame_cache_entries",
			Help: "Projected rotations held in the path cache",
		}),
		Evictions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "globe_frame_cache_evictions_total",
			Help: "Paths evicted from the path cache",
		}),
		Fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "globe_asset_fetches_total",
			Help: "Asset fetches by result",
		}, []string{"result"}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "globe_asset_fetch_duration_ms",
			Help:    "Asset fetch duration in milliseconds",
			Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000},
		}),
		FetchBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "globe_asset_bytes",
			Help: "Size of the fetched asset",
		}),
		Transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "globe_state_transitions_total",
			Help: "Renderer state transitions",
		}, []string{"from", "to"}),
		State: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "globe_state",
			Help: "Current renderer state (0 loading, 1 ready, 2 failed)",
		}),
	}

	for _, c := range []prometheus.Collector{
		o.Frames, o.FrameDuration, o.FramePoints, o.DroppedTotal, o.Rotation,
		o.CacheHits, o.CacheEntries, o.Evictions,
		o.Fetches, o.FetchDuration, o.FetchBytes, o.Transitions, o.State,
	} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("metrics: register: %w", err)
		}
	}
	return o, nil
}

// StateChanged implements globe.Observer.
func (o *Observer) StateChanged(from, to globe.RenderState) {
	o.Transitions.WithLabelValues(from.String(), to.String()).Inc()
	o.State.Set(float64(to))
}

// AssetFetched implements globe.Observer.
func (o *Observer) AssetFetched(bytes int, elapsed time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	o.Fetches.WithLabelValues(result).Inc()
	o.FetchDuration.Observe(ms(elapsed))
	o.FetchBytes.Set(float64(bytes))
}

// FrameRendered implements globe.Observer.
func (o *Observer) FrameRendered(s globe.FrameStats) {
	o.Frames.Inc()
	o.FrameDuration.Observe(ms(s.Elapsed))
	o.FramePoints.Set(float64(s.Points))
	o.DroppedTotal.Add(float64(s.Dropped))
	o.Rotation.Set(s.Rotation)
	if s.Cached {
		o.CacheHits.Inc()
	}
	o.CacheEntries.Set(float64(s.Cache.Len))
	if prev := o.evicted.Swap(s.Cache.Evictions); s.Cache.Evictions > prev {
		o.Evictions.Add(float64(s.Cache.Evictions - prev))
	}
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// Handler serves the metrics gathered by g on /metrics.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// WriteText writes every metric family gathered by g in the text exposition
// format.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	mfs, err := g.Gather()
	if err != nil {
		return fmt.Errorf("metrics: gather: %w", err)
	}
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("metrics: write %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
