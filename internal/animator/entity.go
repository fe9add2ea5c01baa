package animator

import "image/color"

// Star is a fixed point of light that twinkles.
type Star struct {
	X, Y    float64
	Radius  float64
	Alpha   float64
	Twinkle float64
}

// Particle drifts in three dimensions and is drawn through Project.
type Particle struct {
	X, Y, Z    float64
	VX, VY, VZ float64
	Size       float64
	Color      color.NRGBA
	Alpha      float64
}

// Glyph is a floating, slowly rotating piece of text.
type Glyph struct {
	X, Y, Z       float64
	VX, VY, VZ    float64
	Text          string
	Rotation      float64
	RotationSpeed float64
}

// ShootingStar streaks diagonally across the sky until it fades out or
// leaves the viewport.
type ShootingStar struct {
	X, Y   float64
	Length float64
	Speed  float64
	Size   float64
	Alpha  float64
	Trail  float64
	Active bool
}

// TrailPoint marks where the pointer passed.
type TrailPoint struct {
	X, Y  float64
	Alpha float64
}
