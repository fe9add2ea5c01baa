package animator

import "math"

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Wrap folds v into the half-open range [lo, hi).
func Wrap(v, lo, hi float64) float64 {
	span := hi - lo
	if span <= 0 {
		return lo
	}
	v = math.Mod(v-lo, span)
	if v < 0 {
		v += span
	}
	// tiny negative remainders round up to span
	if v >= span {
		v = 0
	}
	return v + lo
}

// Project maps a point at depth z onto the viewport using a pinhole model
// centred on the viewport. It returns the screen position and the scale that
// sizes and alphas are multiplied by.
func Project(x, y, z, focal, width, height float64) (sx, sy, scale float64) {
	scale = focal / (focal + z)
	sx = x*scale + (width/2)*(1-scale)
	sy = y*scale + (height/2)*(1-scale)
	return sx, sy, scale
}

// LinkOpacity is the strength of the line joining two particles d apart.
// It falls off linearly to zero at threshold.
func LinkOpacity(d, threshold float64) float64 {
	if threshold <= 0 || d >= threshold {
		return 0
	}
	return clamp((threshold-d)/threshold, 0, 1)
}

// Link joins particles A and B.
type Link struct {
	A, B    int
	Opacity float64
}

// Links lists every particle pair closer than the link distance.
func (s *Scene) Links() []Link {
	var links []Link
	t := s.cfg.LinkDistance
	for i := range s.particles {
		pi := &s.particles[i]
		for j := i + 1; j < len(s.particles); j++ {
			pj := &s.particles[j]
			dx, dy := pi.X-pj.X, pi.Y-pj.Y
			if math.Abs(dx) >= t || math.Abs(dy) >= t {
				continue
			}
			if o := LinkOpacity(math.Hypot(dx, dy), t); o > 0 {
				links = append(links, Link{A: i, B: j, Opacity: o})
			}
		}
	}
	return links
}
