package ebitenview

import (
	"math/rand/v2"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Zachkp/portfolio/internal/animator"
)

func newTestGame(t *testing.T) (*Game, *animator.Scene, *[2]int) {
	t.Helper()
	scene := animator.NewScene(animator.DefaultConfig(), 640, 480, rand.New(rand.NewPCG(3, 4)))
	pos := &[2]int{}
	g := &Game{scene: scene, cursor: func() (int, int) { return pos[0], pos[1] }}
	return g, scene, pos
}

func TestUpdateTracksPointerMoves(t *testing.T) {
	g, scene, pos := newTestGame(t)

	if err := g.Update(); err != nil {
		t.Fatalf("update: %v", err)
	}
	if n := len(scene.Trail()); n != 0 {
		t.Fatalf("first poll recorded %d trail points", n)
	}

	pos[0], pos[1] = 10, 20
	if err := g.Update(); err != nil {
		t.Fatalf("update: %v", err)
	}
	if n := len(scene.Trail()); n != 1 {
		t.Fatalf("trail = %d, want 1 after a move", n)
	}

	// stationary pointer adds nothing
	if err := g.Update(); err != nil {
		t.Fatalf("update: %v", err)
	}
	if n := len(scene.Trail()); n != 1 {
		t.Fatalf("trail = %d, want 1 while stationary", n)
	}
}

func TestLayoutResizesScene(t *testing.T) {
	g, scene, _ := newTestGame(t)
	before := append([]animator.Particle(nil), scene.Particles()...)

	w, h := g.Layout(1024, 768)
	if w != 1024 || h != 768 {
		t.Fatalf("layout = %dx%d, want 1024x768", w, h)
	}
	if sw, sh := scene.Size(); sw != 1024 || sh != 768 {
		t.Fatalf("scene size = %vx%v", sw, sh)
	}
	for i := range before {
		if scene.Particles()[i] != before[i] {
			t.Fatalf("particle %d moved on resize", i)
		}
	}

	w, h = g.Layout(0, 0)
	if w != 1024 || h != 768 {
		t.Fatalf("zero layout = %dx%d, want previous size", w, h)
	}
}

func TestCloseTerminates(t *testing.T) {
	g, scene, _ := newTestGame(t)
	g.Close()
	if err := g.Update(); err != ebiten.Termination {
		t.Fatalf("update after close = %v, want ebiten.Termination", err)
	}
	if scene.Frames() != 0 {
		t.Fatal("scene ticked after close")
	}
}
