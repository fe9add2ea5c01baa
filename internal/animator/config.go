// Package animator drives the decorative background: a starfield, depth
// particles with proximity links, floating glyphs, shooting stars and a
// cursor trail. The scene is renderer-agnostic; views draw it through Canvas.
package animator

import "image/color"

// Features are the optional layers a viewer can switch on and off at runtime.
type Features struct {
	Grid  bool
	Links bool
	Trail bool
}

// Config holds the tunables of a scene. The zero value is not useful; start
// from DefaultConfig.
type Config struct {
	Features

	StarCount     int
	ParticleCount int
	GlyphCount    int

	// Star twinkle clamps alpha into [StarAlphaMin, StarAlphaMax].
	StarAlphaMin float64
	StarAlphaMax float64

	ParticleDepth float64 // particles wrap z in [0, ParticleDepth)
	ParticleFocal float64
	GlyphNear     float64 // glyphs wrap z in [GlyphNear, GlyphFar)
	GlyphFar      float64
	GlyphFocal    float64

	LinkDistance float64
	LinkAlpha    float64
	GridSize     float64
	GridAlpha    float64

	MaxShootingStars   int
	ShootingStarChance float64
	ShootingStarDecay  float64
	ShootingStarMargin float64

	TrailCap    int
	TrailDecay  float64 // multiplied into alpha every tick
	TrailCutoff float64 // points at or below this alpha are dropped
	TrailRadius float64
}

// DefaultConfig returns the stock background.
func DefaultConfig() Config {
	return Config{
		Features: Features{Grid: true, Links: true, Trail: true},

		StarCount:     80,
		ParticleCount: 150,
		GlyphCount:    8,

		StarAlphaMin: 0.5,
		StarAlphaMax: 1,

		ParticleDepth: 1000,
		ParticleFocal: 200,
		GlyphNear:     50,
		GlyphFar:      500,
		GlyphFocal:    100,

		LinkDistance: 100,
		LinkAlpha:    0.2,
		GridSize:     50,
		GridAlpha:    0.1,

		MaxShootingStars:   4,
		ShootingStarChance: 0.02,
		ShootingStarDecay:  0.012,
		ShootingStarMargin: 100,

		TrailCap:    30,
		TrailDecay:  0.93,
		TrailCutoff: 0.05,
		TrailRadius: 8,
	}
}

// Scaled returns a copy with every pool size multiplied by density.
func (c Config) Scaled(density float64) Config {
	if density <= 0 {
		density = 0
	}
	scale := func(n int) int { return int(float64(n)*density + 0.5) }
	c.StarCount = scale(c.StarCount)
	c.ParticleCount = scale(c.ParticleCount)
	c.GlyphCount = scale(c.GlyphCount)
	return c
}

var (
	starColor     = color.NRGBA{R: 255, G: 255, B: 255, A: 204}
	shootingColor = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	trailColor    = color.NRGBA{R: 56, G: 189, B: 248, A: 178}
	linkColor     = color.NRGBA{R: 56, G: 189, B: 248, A: 255}
	gridColor     = color.NRGBA{R: 56, G: 189, B: 248, A: 255}
	glyphColor    = color.NRGBA{R: 226, G: 232, B: 240, A: 255}

	particlePalette = []color.NRGBA{
		{R: 56, G: 189, B: 248, A: 255},
		{R: 167, G: 139, B: 250, A: 255},
		{R: 244, G: 114, B: 182, A: 255},
		{R: 52, G: 211, B: 153, A: 255},
	}

	glyphSet = []string{"{}", "</>", "λ", "Go", "$_", "#", "∑", "=>"}
)

// fade scales c's alpha by a, clamped to [0, 1].
func fade(c color.NRGBA, a float64) color.NRGBA {
	c.A = uint8(float64(c.A) * clamp(a, 0, 1))
	return c
}
