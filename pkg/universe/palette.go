package universe

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Palette is a planet colour scheme in HSL, each component in [0, 1]
type Palette struct {
	Name   string
	Base   [3]float64
	Accent [3]float64
}

// Palettes are the planet looks a body can be given
var Palettes = []Palette{
	{Name: "mars", Base: [3]float64{0.02, 0.95, 0.4}, Accent: [3]float64{0.05, 0.85, 0.3}},
	{Name: "jupiter", Base: [3]float64{0.08, 0.95, 0.5}, Accent: [3]float64{0.1, 0.85, 0.4}},
	{Name: "neptune", Base: [3]float64{0.6, 0.85, 0.4}, Accent: [3]float64{0.58, 0.9, 0.5}},
	{Name: "venus", Base: [3]float64{0.15, 0.9, 0.5}, Accent: [3]float64{0.12, 0.85, 0.4}},
	{Name: "mercury", Base: [3]float64{0.0, 0.2, 0.5}, Accent: [3]float64{0.0, 0.3, 0.4}},
}

// BaseColor returns the palette's base colour as RGB
func (p Palette) BaseColor() mgl64.Vec3 {
	return HSLToRGB(p.Base[0], p.Base[1], p.Base[2])
}

// AccentColor returns the palette's highlight colour as RGB
func (p Palette) AccentColor() mgl64.Vec3 {
	return HSLToRGB(p.Accent[0], p.Accent[1], p.Accent[2])
}

// HSLToRGB converts a colour with hue, saturation and lightness in [0, 1]
// to RGB in [0, 1]
func HSLToRGB(h, s, l float64) mgl64.Vec3 {
	if s == 0 {
		return mgl64.Vec3{l, l, l}
	}

	h = h - math.Floor(h)
	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	return mgl64.Vec3{
		hueToRGB(p, q, h+1.0/3),
		hueToRGB(p, q, h),
		hueToRGB(p, q, h-1.0/3),
	}
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 0.5:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	}
	return p
}
