// Command globe-png renders rotation frames of the globe to PNG files.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/gogpu/globe"
	"github.com/gogpu/globe/internal/hostconfig"
	"github.com/gogpu/globe/metrics"
	"github.com/gogpu/globe/scheduler"
	"github.com/gogpu/globe/surface"
)

func main() {
	env, err := hostconfig.Env(".env")
	if err != nil {
		log.Fatal(err)
	}
	host, err := hostconfig.Register(flag.CommandLine, env)
	if err != nil {
		log.Fatal(err)
	}
	var (
		frames  = flag.Int("frames", 1, "number of frames to write")
		every   = flag.Int("every", 1, "ticks between written frames")
		output  = flag.String("output", "globe-%04d.png", "output file pattern, formatted with the frame index")
		hud     = flag.Bool("hud", false, "draw tick and rotation label")
		dump    = flag.String("metrics", "", "write metrics in text format to this file (- for stderr)")
		timeout = flag.Duration("timeout", 30*time.Second, "asset fetch timeout")
	)
	flag.Parse()

	globe.SetLogger(host.Logger(os.Stderr))
	if err := run(host, *frames, *every, *output, *hud, *dump, *timeout); err != nil {
		log.Fatal(err)
	}
}

func run(host *hostconfig.Host, frames, every int, output string, hud bool, dump string, timeout time.Duration) error {
	if frames < 1 || every < 1 {
		return errors.New("frames and every must be at least 1")
	}
	src, err := host.Source()
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	obs, err := metrics.New(reg)
	if err != nil {
		return err
	}

	manual := scheduler.NewManual()
	canvas := surface.NewCanvas(host.Size, surface.WithHUD(hud))
	defer canvas.Close()

	opts := append(host.Options(), globe.WithSurface(canvas), globe.WithObserver(obs))
	r, err := globe.New(src, manual, opts...)
	if err != nil {
		return err
	}
	defer r.Deactivate()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := r.Activate(ctx); err != nil {
		return err
	}
	<-r.Done()
	if r.State() == globe.StateFailed {
		// The error frame is still written so the failure is visible.
		if err := save(canvas, output, 0); err != nil {
			return err
		}
		return r.Err()
	}

	for i := range frames {
		if err := save(canvas, output, i); err != nil {
			return err
		}
		if i == frames-1 {
			break
		}
		for range every {
			manual.Step()
		}
	}
	f := r.Frame()
	log.Printf("wrote %d frame(s), last at tick %d (%.2f°)", frames, f.Tick, f.Rotation)
	if cs := r.CacheStats(); cs.Capacity > 0 {
		log.Printf("path cache: %d/%d entries, hit rate %.1f%%, %d evicted",
			cs.Len, cs.Capacity, 100*cs.HitRate(), cs.Evictions)
	}

	if dump != "" {
		return writeMetrics(reg, dump)
	}
	return nil
}

func save(c *surface.Canvas, pattern string, i int) error {
	name := pattern
	if containsVerb(pattern) {
		name = fmt.Sprintf(pattern, i)
	}
	return c.SavePNG(name)
}

func containsVerb(s string) bool {
	for i := 0; i < len(s)-1; i++ {
		if s[i] == '%' && s[i+1] != '%' {
			return true
		}
	}
	return false
}

func writeMetrics(reg *prometheus.Registry, dest string) error {
	if dest == "-" {
		return metrics.WriteText(os.Stderr, reg)
	}
	f, err := os.Create(dest)
	if err != nil {
		return err
	}
	if err := metrics.WriteText(f, reg); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
