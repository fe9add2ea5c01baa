package animator

import "math/rand/v2"

// Scene owns every entity of the background. It is not safe for concurrent
// use; a view calls it from its frame loop only.
type Scene struct {
	cfg Config
	rng *rand.Rand

	width, height float64

	stars     []Star
	particles []Particle
	glyphs    []Glyph
	shooting  []ShootingStar
	trail     []TrailPoint

	frames uint64
	closed bool
}

// NewScene seeds the background pools for a width x height viewport.
// A nil rng gets a randomly seeded one.
func NewScene(cfg Config, width, height float64, rng *rand.Rand) *Scene {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	s := &Scene{cfg: cfg, rng: rng, width: width, height: height}

	s.stars = make([]Star, cfg.StarCount)
	for i := range s.stars {
		s.stars[i] = Star{
			X:       rng.Float64() * width,
			Y:       rng.Float64() * height,
			Radius:  rng.Float64()*1.2 + 0.2,
			Alpha:   s.between(cfg.StarAlphaMin, cfg.StarAlphaMax),
			Twinkle: rng.Float64()*0.05 + 0.01,
		}
	}

	s.particles = make([]Particle, cfg.ParticleCount)
	for i := range s.particles {
		s.particles[i] = Particle{
			X:     rng.Float64() * width,
			Y:     rng.Float64() * height,
			Z:     rng.Float64() * cfg.ParticleDepth,
			VX:    (rng.Float64() - 0.5) * 0.5,
			VY:    (rng.Float64() - 0.5) * 0.5,
			VZ:    (rng.Float64() - 0.5) * 2,
			Size:  rng.Float64()*3 + 1,
			Color: particlePalette[rng.IntN(len(particlePalette))],
			Alpha: rng.Float64()*0.8 + 0.2,
		}
	}

	s.glyphs = make([]Glyph, cfg.GlyphCount)
	for i := range s.glyphs {
		s.glyphs[i] = Glyph{
			X:             rng.Float64() * width,
			Y:             rng.Float64() * height,
			Z:             s.between(cfg.GlyphNear, cfg.GlyphFar),
			VX:            (rng.Float64() - 0.5) * 0.3,
			VY:            (rng.Float64() - 0.5) * 0.3,
			VZ:            rng.Float64() - 0.5,
			Text:          glyphSet[i%len(glyphSet)],
			RotationSpeed: (rng.Float64() - 0.5) * 0.02,
		}
	}
	return s
}

func (s *Scene) between(a, b float64) float64 {
	return a + s.rng.Float64()*(b-a)
}

// Size reports the current viewport dimensions.
func (s *Scene) Size() (width, height float64) { return s.width, s.height }

// Frames counts completed ticks.
func (s *Scene) Frames() uint64 { return s.frames }

// Features reports the enabled optional layers.
func (s *Scene) Features() Features { return s.cfg.Features }

// SetFeatures switches optional layers. Disabling the trail drops any
// pending trail points.
func (s *Scene) SetFeatures(f Features) {
	s.cfg.Features = f
	if !f.Trail {
		s.trail = nil
	}
}

// Stars, Particles, Glyphs, ShootingStars and Trail expose the pools for
// inspection. Callers must not retain them across ticks.
func (s *Scene) Stars() []Star                 { return s.stars }
func (s *Scene) Particles() []Particle         { return s.particles }
func (s *Scene) Glyphs() []Glyph               { return s.glyphs }
func (s *Scene) ShootingStars() []ShootingStar { return s.shooting }
func (s *Scene) Trail() []TrailPoint           { return s.trail }

// Closed reports whether Close was called.
func (s *Scene) Closed() bool { return s.closed }

// Resize adopts new viewport dimensions. Entities keep their positions and
// fold back into range on the next tick.
func (s *Scene) Resize(width, height float64) {
	if s.closed || width <= 0 || height <= 0 {
		return
	}
	s.width, s.height = width, height
}

// PointerMoved records a trail point at the pointer position.
func (s *Scene) PointerMoved(x, y float64) {
	if s.closed || !s.cfg.Trail || s.cfg.TrailCap <= 0 {
		return
	}
	s.trail = append(s.trail, TrailPoint{X: x, Y: y, Alpha: 1})
	if over := len(s.trail) - s.cfg.TrailCap; over > 0 {
		s.trail = append(s.trail[:0], s.trail[over:]...)
	}
}

// Tick advances the scene by one frame.
func (s *Scene) Tick() {
	if s.closed {
		return
	}
	s.tickStars()
	s.tickParticles()
	s.tickGlyphs()
	s.tickShootingStars()
	s.maybeSpawnShootingStar()
	s.tickTrail()
	s.frames++
}

func (s *Scene) tickStars() {
	lo, hi := s.cfg.StarAlphaMin, s.cfg.StarAlphaMax
	for i := range s.stars {
		st := &s.stars[i]
		if s.rng.Float64() > 0.5 {
			st.Alpha += st.Twinkle
		} else {
			st.Alpha -= st.Twinkle
		}
		st.Alpha = clamp(st.Alpha, lo, hi)
	}
}

func (s *Scene) tickParticles() {
	for i := range s.particles {
		p := &s.particles[i]
		p.X = Wrap(p.X+p.VX, 0, s.width)
		p.Y = Wrap(p.Y+p.VY, 0, s.height)
		p.Z = Wrap(p.Z+p.VZ, 0, s.cfg.ParticleDepth)
	}
}

func (s *Scene) tickGlyphs() {
	for i := range s.glyphs {
		g := &s.glyphs[i]
		g.X = Wrap(g.X+g.VX, 0, s.width)
		g.Y = Wrap(g.Y+g.VY, 0, s.height)
		g.Z = Wrap(g.Z+g.VZ, s.cfg.GlyphNear, s.cfg.GlyphFar)
		g.Rotation += g.RotationSpeed
	}
}

func (s *Scene) tickShootingStars() {
	margin := s.cfg.ShootingStarMargin
	live := s.shooting[:0]
	for _, st := range s.shooting {
		st.X += st.Speed
		st.Y += st.Speed
		st.Alpha -= s.cfg.ShootingStarDecay
		if st.Alpha <= 0 || st.X > s.width+margin || st.Y > s.height+margin {
			st.Active = false
			continue
		}
		live = append(live, st)
	}
	clear(s.shooting[len(live):])
	s.shooting = live
}

func (s *Scene) maybeSpawnShootingStar() {
	if len(s.shooting) >= s.cfg.MaxShootingStars {
		return
	}
	if s.rng.Float64() >= s.cfg.ShootingStarChance {
		return
	}
	s.SpawnShootingStar()
}

// SpawnShootingStar launches a shooting star immediately if the cap allows.
func (s *Scene) SpawnShootingStar() bool {
	if s.closed || len(s.shooting) >= s.cfg.MaxShootingStars {
		return false
	}
	s.shooting = append(s.shooting, ShootingStar{
		X:      s.between(s.width*0.2, s.width*0.8),
		Y:      s.between(0, s.height*0.3),
		Length: s.between(200, 400),
		Speed:  s.between(8, 16),
		Size:   s.between(1, 2.5),
		Alpha:  1,
		Trail:  s.between(0.85, 0.95),
		Active: true,
	})
	return true
}

func (s *Scene) tickTrail() {
	live := s.trail[:0]
	for _, t := range s.trail {
		t.Alpha *= s.cfg.TrailDecay
		if t.Alpha <= s.cfg.TrailCutoff {
			continue
		}
		live = append(live, t)
	}
	s.trail = live
}

// Close tears the scene down. Later calls to Tick, Draw and PointerMoved do
// nothing. Close is idempotent.
func (s *Scene) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.shooting = nil
	s.trail = nil
}
