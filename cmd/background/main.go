// Command background runs the animated starfield with ebiten. Built with
// GOOS=js GOARCH=wasm it becomes the website background; on desktop it opens
// a resizable window.
package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Zachkp/portfolio/internal/animator"
	"github.com/Zachkp/portfolio/internal/animator/ebitenview"
	"github.com/Zachkp/portfolio/internal/animator/prefs"
)

func main() {
	width := flag.Int("width", 1280, "initial window width")
	height := flag.Int("height", 720, "initial window height")
	flag.Parse()
	log.SetPrefix("[BACKGROUND] ")

	store := prefs.Open("portfolio_background")
	cfg := store.Get().Apply(animator.DefaultConfig())
	scene := animator.NewScene(cfg, float64(*width), float64(*height), nil)

	ebiten.SetWindowSize(*width, *height)
	ebiten.SetWindowTitle("Portfolio background")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebitenview.New(scene).Run(); err != nil {
		log.Fatal(err)
	}
}
