// Command globe opens a window with the rotating globe.
//
// The rotation advances once per displayed frame. Press Escape to quit.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/gogpu/globe"
	"github.com/gogpu/globe/internal/hostconfig"
	"github.com/gogpu/globe/metrics"
	"github.com/gogpu/globe/scheduler"
	"github.com/gogpu/globe/surface"
)

type game struct {
	frames *scheduler.Manual
	canvas *surface.Canvas
	img    *ebiten.Image
	drawn  uint64
}

func (g *game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.frames.Step()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if n := g.canvas.Presented(); n != g.drawn {
		g.img.WritePixels(g.canvas.Snapshot().Pix)
		g.drawn = n
	}
	screen.DrawImage(g.img, nil)
}

func (g *game) Layout(int, int) (int, int) {
	s := g.canvas.Size()
	return s, s
}

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
		hud         = flag.Bool("hud", false, "draw tick and rotation label")
		metricsAddr = flag.String("metrics-addr", "", "serve Prometheus metrics on this address")
	)
	flag.Parse()
	globe.SetLogger(host.Logger(os.Stderr))

	src, err := host.Source()
	if err != nil {
		log.Fatal(err)
	}

	var opts []globe.Option
	if *metricsAddr != "" {
		reg := prometheus.NewRegistry()
		obs, err := metrics.New(reg)
		if err != nil {
			log.Fatal(err)
		}
		opts = append(opts, globe.WithObserver(obs))
		go serveMetrics(*metricsAddr, reg)
	}

	frames := scheduler.NewManual()
	canvas := surface.NewCanvas(host.Size, surface.WithHUD(*hud))
	defer canvas.Close()

	opts = append(append(host.Options(), opts...), globe.WithSurface(canvas))
	r, err := globe.New(src, frames, opts...)
	if err != nil {
		log.Fatal(err)
	}
	defer r.Deactivate()
	if err := r.Activate(context.Background()); err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowSize(host.Size, host.Size)
	ebiten.SetWindowTitle("globe")
	ebiten.SetTPS(ebiten.SyncWithFPS)

	g := &game{
		frames: frames,
		canvas: canvas,
		img:    ebiten.NewImage(host.Size, host.Size),
	}
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Print(err)
	}
}

func serveMetrics(addr string, reg *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(reg))
	if err := http.ListenAndServe(addr, mux); err != nil {
		globe.Logger().Error("metrics server stopped", "addr", addr, "err", err)
	}
}
