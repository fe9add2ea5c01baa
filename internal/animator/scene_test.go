package animator

import (
	"image/color"
	"math/rand/v2"
	"testing"
)

func newTestScene(t *testing.T, cfg Config) *Scene {
	t.Helper()
	return NewScene(cfg, 800, 600, rand.New(rand.NewPCG(1, 2)))
}

type recordingCanvas struct {
	clears  int
	circles int
	lines   int
	glyphs  []string
}

func (c *recordingCanvas) Clear() { c.clears++ }

func (c *recordingCanvas) FillCircle(_, _, _ float64, _ color.Color) { c.circles++ }

func (c *recordingCanvas) StrokeLine(_, _, _, _, _ float64, _ color.Color) { c.lines++ }

func (c *recordingCanvas) DrawGlyph(_, _, _, _ float64, g string, _ color.Color) {
	c.glyphs = append(c.glyphs, g)
}

func TestNewSceneSeedsPools(t *testing.T) {
	s := newTestScene(t, DefaultConfig())
	if got := len(s.Stars()); got != 80 {
		t.Fatalf("stars = %d, want 80", got)
	}
	if got := len(s.Particles()); got != 150 {
		t.Fatalf("particles = %d, want 150", got)
	}
	if got := len(s.Glyphs()); got != 8 {
		t.Fatalf("glyphs = %d, want 8", got)
	}
	for i, st := range s.Stars() {
		if st.Alpha < 0.5 || st.Alpha > 1 {
			t.Fatalf("star %d alpha %v out of [0.5, 1]", i, st.Alpha)
		}
	}
}

func TestTickKeepsPositionsInViewport(t *testing.T) {
	s := newTestScene(t, DefaultConfig())
	// exaggerate velocities so every particle crosses an edge
	for i := range s.particles {
		s.particles[i].VX *= 400
		s.particles[i].VY *= 400
		s.particles[i].VZ *= 400
	}
	for range 500 {
		s.Tick()
		w, h := s.Size()
		for i, p := range s.Particles() {
			if p.X < 0 || p.X >= w || p.Y < 0 || p.Y >= h {
				t.Fatalf("particle %d at (%v, %v) outside %vx%v", i, p.X, p.Y, w, h)
			}
			if p.Z < 0 || p.Z >= 1000 {
				t.Fatalf("particle %d depth %v outside [0, 1000)", i, p.Z)
			}
		}
		for i, g := range s.Glyphs() {
			if g.X < 0 || g.X >= w || g.Y < 0 || g.Y >= h {
				t.Fatalf("glyph %d at (%v, %v) outside viewport", i, g.X, g.Y)
			}
			if g.Z < 50 || g.Z >= 500 {
				t.Fatalf("glyph %d depth %v outside [50, 500)", i, g.Z)
			}
		}
	}
}

func TestStarTwinkleStaysClamped(t *testing.T) {
	s := newTestScene(t, DefaultConfig())
	for range 200 {
		s.Tick()
		for i, st := range s.Stars() {
			if st.Alpha < 0.5 || st.Alpha > 1 {
				t.Fatalf("star %d alpha %v escaped clamp", i, st.Alpha)
			}
		}
	}
}

func TestShootingStarDecaysAndIsRemoved(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ShootingStarChance = 0
	s := newTestScene(t, cfg)
	if !s.SpawnShootingStar() {
		t.Fatal("spawn refused with empty pool")
	}
	// keep it on screen so only alpha can retire it
	s.shooting[0].Speed = 0

	prev := s.ShootingStars()[0].Alpha
	ticks := 0
	for len(s.ShootingStars()) > 0 {
		s.Tick()
		ticks++
		if len(s.ShootingStars()) == 0 {
			break
		}
		cur := s.ShootingStars()[0].Alpha
		if cur > prev {
			t.Fatalf("alpha rose from %v to %v", prev, cur)
		}
		if cur <= 0 {
			t.Fatalf("star kept with alpha %v", cur)
		}
		prev = cur
		if ticks > 1000 {
			t.Fatal("shooting star never retired")
		}
	}
	if ticks != 84 {
		t.Fatalf("retired after %d ticks, want 84", ticks)
	}
}

func TestShootingStarRemovedPastMargin(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ShootingStarChance = 0
	s := newTestScene(t, cfg)
	s.SpawnShootingStar()
	s.shooting[0].X = 800 + 100 - 1
	s.shooting[0].Speed = 1
	s.Tick()
	if len(s.ShootingStars()) != 1 {
		t.Fatalf("star at margin edge removed early")
	}
	s.Tick()
	if len(s.ShootingStars()) != 0 {
		t.Fatalf("star beyond margin still active")
	}
}

func TestShootingStarRemovedPastBottomMargin(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ShootingStarChance = 0
	s := newTestScene(t, cfg)
	s.SpawnShootingStar()
	s.shooting[0].X = 0
	s.shooting[0].Y = 600 + 100 - 1
	s.shooting[0].Speed = 1
	s.Tick()
	if len(s.ShootingStars()) != 1 {
		t.Fatalf("star at bottom margin edge removed early")
	}
	s.Tick()
	if len(s.ShootingStars()) != 0 {
		t.Fatalf("star below margin still active")
	}
}

func TestShootingStarCap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ShootingStarChance = 1
	s := newTestScene(t, cfg)
	for range 50 {
		s.Tick()
		if n := len(s.ShootingStars()); n > cfg.MaxShootingStars {
			t.Fatalf("%d shooting stars active, cap %d", n, cfg.MaxShootingStars)
		}
	}
	if s.SpawnShootingStar() && len(s.ShootingStars()) > cfg.MaxShootingStars {
		t.Fatal("manual spawn exceeded cap")
	}
}

func TestTrailCapAndDecay(t *testing.T) {
	s := newTestScene(t, DefaultConfig())
	for i := range 40 {
		s.PointerMoved(float64(i), float64(i))
	}
	trail := s.Trail()
	if len(trail) != 30 {
		t.Fatalf("trail len = %d, want 30", len(trail))
	}
	if trail[0].X != 10 {
		t.Fatalf("oldest point x = %v, want 10", trail[0].X)
	}

	prev := trail[0].Alpha
	for len(s.Trail()) > 0 {
		s.Tick()
		if len(s.Trail()) == 0 {
			break
		}
		cur := s.Trail()[0].Alpha
		if cur > prev || cur <= 0.05 {
			t.Fatalf("trail alpha %v after %v", cur, prev)
		}
		prev = cur
	}
}

func TestTrailDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Trail = false
	s := newTestScene(t, cfg)
	s.PointerMoved(1, 1)
	if len(s.Trail()) != 0 {
		t.Fatal("trail recorded while disabled")
	}
}

func TestResizeKeepsEntities(t *testing.T) {
	s := newTestScene(t, DefaultConfig())
	before := append([]Particle(nil), s.Particles()...)
	stars := append([]Star(nil), s.Stars()...)

	s.Resize(1920, 1080)

	if w, h := s.Size(); w != 1920 || h != 1080 {
		t.Fatalf("size = %vx%v, want 1920x1080", w, h)
	}
	for i := range before {
		if s.Particles()[i] != before[i] {
			t.Fatalf("particle %d changed on resize", i)
		}
	}
	for i := range stars {
		if s.Stars()[i] != stars[i] {
			t.Fatalf("star %d changed on resize", i)
		}
	}

	s.Resize(0, 100)
	if w, _ := s.Size(); w != 1920 {
		t.Fatalf("degenerate resize applied: width %v", w)
	}
}

func TestDrawNilCanvasIsNoop(t *testing.T) {
	s := newTestScene(t, DefaultConfig())
	s.Draw(nil)
}

func TestDrawRendersLayers(t *testing.T) {
	cfg := DefaultConfig()
	s := newTestScene(t, cfg)
	s.PointerMoved(10, 10)
	c := &recordingCanvas{}
	s.Draw(c)
	if c.clears != 1 {
		t.Fatalf("clears = %d, want 1", c.clears)
	}
	// halo + core per star, one per particle, one per trail point
	if want := 2*80 + 150 + 1; c.circles != want {
		t.Fatalf("circles = %d, want %d", c.circles, want)
	}
	gridLines := 800/50 + 600/50
	if want := gridLines + len(s.Links()); c.lines != want {
		t.Fatalf("lines = %d, want %d", c.lines, want)
	}
	if len(c.glyphs) != 8 {
		t.Fatalf("glyphs drawn = %d, want 8", len(c.glyphs))
	}
}

func TestCloseStopsScene(t *testing.T) {
	s := newTestScene(t, DefaultConfig())
	s.Tick()
	s.Close()
	s.Close()
	frames := s.Frames()
	s.Tick()
	s.PointerMoved(5, 5)
	if s.Frames() != frames {
		t.Fatal("tick advanced after close")
	}
	if len(s.Trail()) != 0 {
		t.Fatal("trail recorded after close")
	}
	c := &recordingCanvas{}
	s.Draw(c)
	if c.clears != 0 {
		t.Fatal("closed scene drew")
	}
}

func TestScaledConfig(t *testing.T) {
	cfg := DefaultConfig().Scaled(0.5)
	if cfg.StarCount != 40 || cfg.ParticleCount != 75 || cfg.GlyphCount != 4 {
		t.Fatalf("scaled counts = %d/%d/%d", cfg.StarCount, cfg.ParticleCount, cfg.GlyphCount)
	}
	if got := DefaultConfig().Scaled(-1).StarCount; got != 0 {
		t.Fatalf("negative density gave %d stars", got)
	}
}
