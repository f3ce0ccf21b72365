// Command globe-term draws the rotating globe in a terminal using half-block
// characters, two pixels per cell.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/gogpu/globe"
	"github.com/gogpu/globe/internal/hostconfig"
	"github.com/gogpu/globe/scheduler"
	"github.com/gogpu/globe/surface"
)

// redraw forwards every presented frame to the canvas and wakes the event
// loop.
type redraw struct {
	canvas *surface.Canvas
	screen tcell.Screen
}

func (r redraw) Present(f *globe.Frame) {
	r.canvas.Present(f)
	if err := r.screen.PostEvent(tcell.NewEventInterrupt(nil)); err != nil {
		globe.Logger().Debug("globe-term: frame not queued for painting", "tick", f.Tick, "err", err)
	}
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
	logFile := flag.String("log", "", "write logs to this file instead of discarding them")
	flag.Parse()

	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		globe.SetLogger(host.Logger(f))
	}

	if err := run(host); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(host *hostconfig.Host) error {
	src, err := host.Source()
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	ticker := scheduler.NewTicker(host.FPS)
	defer ticker.Close()

	canvas := surface.NewCanvas(host.Size, surface.WithStyle(termStyle()))
	defer canvas.Close()

	r, err := globe.New(src, ticker, append(host.Options(), globe.WithSurface(redraw{canvas: canvas, screen: screen}))...)
	if err != nil {
		return err
	}
	// Stop the rotation before the ticker and screen go away.
	defer r.Deactivate()

	if err := r.Activate(context.Background()); err != nil {
		return err
	}

	for {
		switch ev := screen.PollEvent().(type) {
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
				return r.Err()
			}
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventInterrupt:
			paint(screen, canvas.Snapshot())
		case nil:
			return nil
		}
	}
}

func termStyle() surface.Style {
	s := surface.DefaultStyle()
	s.Background = "#000000"
	s.Text = "#ffffff"
	s.Rim = "#c8dde4"
	s.RimWidth = 3
	return s
}

// paint scales img to the terminal, packing two rows of pixels into each
// cell: the upper as foreground of '▀', the lower as background.
func paint(screen tcell.Screen, img *image.RGBA) {
	w, h := screen.Size()
	if w == 0 || h == 0 {
		return
	}
	// Keep the globe round: cells are about twice as tall as wide.
	side := min(w, 2*h)
	offX := (w - side) / 2
	b := img.Bounds()

	sample := func(px, py int) tcell.Color {
		x := b.Min.X + px*b.Dx()/side
		y := b.Min.Y + py*b.Dy()/side
		c := img.RGBAAt(x, y)
		return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	}

	screen.Clear()
	for row := 0; row < side/2; row++ {
		for col := 0; col < side; col++ {
			style := tcell.StyleDefault.
				Foreground(sample(col, 2*row)).
				Background(sample(col, 2*row+1))
			screen.SetContent(offX+col, row, '▀', nil, style)
		}
	}
	screen.Show()
}
