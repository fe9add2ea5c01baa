package animator

import (
	"image/color"
	"math"
)

// Canvas is the drawing surface a view hands to the scene. Coordinates are
// viewport pixels.
type Canvas interface {
	Clear()
	FillCircle(x, y, radius float64, clr color.Color)
	StrokeLine(x0, y0, x1, y1, width float64, clr color.Color)
	DrawGlyph(x, y, size, rotation float64, glyph string, clr color.Color)
}

// Draw renders the current frame. A nil canvas draws nothing.
func (s *Scene) Draw(c Canvas) {
	if c == nil || s.closed {
		return
	}
	c.Clear()
	if s.cfg.Grid {
		s.drawGrid(c)
	}
	s.drawStars(c)
	s.drawParticles(c)
	s.drawGlyphs(c)
	if s.cfg.Links {
		s.drawLinks(c)
	}
	s.drawShootingStars(c)
	if s.cfg.Trail {
		s.drawTrail(c)
	}
}

func (s *Scene) drawGrid(c Canvas) {
	step := s.cfg.GridSize
	if step <= 0 {
		return
	}
	clr := fade(gridColor, s.cfg.GridAlpha)
	for x := 0.0; x < s.width; x += step {
		c.StrokeLine(x, 0, x, s.height, 1, clr)
	}
	for y := 0.0; y < s.height; y += step {
		c.StrokeLine(0, y, s.width, y, 1, clr)
	}
}

func (s *Scene) drawStars(c Canvas) {
	for _, st := range s.stars {
		// halo stands in for a canvas shadow blur
		c.FillCircle(st.X, st.Y, st.Radius*3, fade(starColor, st.Alpha*0.15))
		c.FillCircle(st.X, st.Y, st.Radius, fade(starColor, st.Alpha))
	}
}

func (s *Scene) drawParticles(c Canvas) {
	for _, p := range s.particles {
		x, y, scale := Project(p.X, p.Y, p.Z, s.cfg.ParticleFocal, s.width, s.height)
		c.FillCircle(x, y, p.Size*scale, fade(p.Color, p.Alpha*scale))
	}
}

func (s *Scene) drawGlyphs(c Canvas) {
	for _, g := range s.glyphs {
		x, y, scale := Project(g.X, g.Y, g.Z, s.cfg.GlyphFocal, s.width, s.height)
		c.DrawGlyph(x, y, 30*scale, g.Rotation, g.Text, fade(glyphColor, 0.7*scale))
	}
}

func (s *Scene) drawLinks(c Canvas) {
	for _, l := range s.Links() {
		a, b := s.particles[l.A], s.particles[l.B]
		c.StrokeLine(a.X, a.Y, b.X, b.Y, 1, fade(linkColor, l.Opacity*s.cfg.LinkAlpha))
	}
}

func (s *Scene) drawShootingStars(c Canvas) {
	for _, st := range s.shooting {
		tail := st.Length * st.Trail
		c.StrokeLine(st.X, st.Y, st.X-tail, st.Y+tail, st.Size, fade(shootingColor, st.Alpha))
		c.FillCircle(st.X, st.Y, math.Max(st.Size, 1), fade(shootingColor, st.Alpha))
	}
}

func (s *Scene) drawTrail(c Canvas) {
	for _, t := range s.trail {
		c.FillCircle(t.X, t.Y, s.cfg.TrailRadius, fade(trailColor, t.Alpha*0.5))
	}
}
