// Package ebitenview runs an animator scene under ebiten. The same code
// serves the desktop preview and the js/wasm build embedded in the site.
package ebitenview

import (
	"bytes"
	"image/color"
	"log"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/Zachkp/portfolio/internal/animator"
)

// Game implements ebiten.Game around a scene.
type Game struct {
	scene *animator.Scene
	font  *text.GoTextFaceSource // nil disables glyphs

	cursor     func() (int, int)
	lastX      int
	lastY      int
	seenCursor bool

	closed atomic.Bool
}

// New wraps scene. A font that fails to load only disables glyph drawing.
func New(scene *animator.Scene) *Game {
	g := &Game{scene: scene, cursor: ebiten.CursorPosition}
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		log.Printf("glyph font unavailable: %v", err)
	} else {
		g.font = src
	}
	return g
}

// Update advances one frame. Pointer movement is detected by polling since
// ebiten has no move callback.
func (g *Game) Update() error {
	if g.closed.Load() {
		return ebiten.Termination
	}
	x, y := g.cursor()
	if !g.seenCursor || x != g.lastX || y != g.lastY {
		if g.seenCursor {
			g.scene.PointerMoved(float64(x), float64(y))
		}
		g.lastX, g.lastY, g.seenCursor = x, y, true
	}
	g.scene.Tick()
	return nil
}

// Draw renders the scene onto screen.
func (g *Game) Draw(screen *ebiten.Image) {
	if screen == nil {
		return
	}
	g.scene.Draw(&canvas{dst: screen, font: g.font})
}

// Layout follows the outside size so the scene always fills the window or
// browser viewport.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		w, h := g.scene.Size()
		return max(int(w), 1), max(int(h), 1)
	}
	w, h := g.scene.Size()
	if int(w) != outsideWidth || int(h) != outsideHeight {
		g.scene.Resize(float64(outsideWidth), float64(outsideHeight))
	}
	return outsideWidth, outsideHeight
}

// Close ends the run loop on the next Update and tears the scene down.
// It is safe to call from any goroutine.
func (g *Game) Close() {
	g.closed.Store(true)
}

// Run blocks in ebiten's loop until the window closes or Close is called.
func (g *Game) Run() error {
	defer g.scene.Close()
	if err := ebiten.RunGame(g); err != nil && err != ebiten.Termination {
		return err
	}
	return nil
}

type canvas struct {
	dst  *ebiten.Image
	font *text.GoTextFaceSource
}

func (c *canvas) Clear() {
	c.dst.Fill(color.Black)
}

func (c *canvas) FillCircle(x, y, radius float64, clr color.Color) {
	if radius <= 0 {
		return
	}
	vector.DrawFilledCircle(c.dst, float32(x), float32(y), float32(radius), clr, true)
}

func (c *canvas) StrokeLine(x0, y0, x1, y1, width float64, clr color.Color) {
	vector.StrokeLine(c.dst, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), clr, true)
}

func (c *canvas) DrawGlyph(x, y, size, rotation float64, glyph string, clr color.Color) {
	if c.font == nil || size <= 0 {
		return
	}
	face := &text.GoTextFace{Source: c.font, Size: size}
	op := &text.DrawOptions{}
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	op.GeoM.Rotate(rotation)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(c.dst, glyph, face, op)
}
