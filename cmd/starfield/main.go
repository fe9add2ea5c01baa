// Command starfield previews the animated background in a terminal.
//
// Keys: g grid, l links, t cursor trail, s shooting star, q or Esc quits.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/Zachkp/portfolio/internal/animator"
	"github.com/Zachkp/portfolio/internal/animator/prefs"
	"github.com/Zachkp/portfolio/internal/animator/termview"
)

func main() {
	density := flag.Float64("density", 0, "entity density override (0 keeps the saved value)")
	flag.Parse()
	log.SetPrefix("[STARFIELD] ")

	store := prefs.Open("portfolio_background")
	if *density > 0 {
		p := store.Get()
		p.Density = *density
		store.Set(p)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("creating screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("initializing screen: %v", err)
	}

	cols, rows := screen.Size()
	w, h := termview.SceneSize(cols, rows)
	scene := animator.NewScene(store.Get().Apply(animator.DefaultConfig()), w, h, nil)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := termview.New(screen, scene, store).Run(ctx); err != nil {
		log.Fatal(err)
	}
}
