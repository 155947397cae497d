// Package colorwheel converts between RGB and HSV and maps pointer positions
// on a circular colour picker to colours.
package colorwheel

import (
	"math"

	"github.com/seezee/launcherhub/internal/models"
)

// HSV is a colour in hue/saturation/value space.
// H is in degrees [0,360); S and V are in [0,1].
type HSV struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	V float64 `json:"v"`
}

// Rounded returns the colour with the hue rounded to whole degrees, for display.
func (c HSV) Rounded() HSV {
	c.H = normalizeHue(math.Round(c.H))
	return c
}

// RGBToHSV converts an 8-bit colour to HSV. The hue keeps full precision so
// that HSVToRGB(RGBToHSV(c)) reproduces c.
func RGBToHSV(c models.RGB) HSV {
	c = c.Clamp()
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255

	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	delta := maxC - minC

	var h float64
	if delta != 0 {
		switch maxC {
		case r:
			h = math.Mod((g-b)/delta, 6)
		case g:
			h = (b-r)/delta + 2
		default:
			h = (r-g)/delta + 4
		}
		h = normalizeHue(h * 60)
	}

	var s float64
	if maxC != 0 {
		s = delta / maxC
	}
	return HSV{H: h, S: s, V: maxC}
}

// HSVToRGB converts an HSV colour to 8-bit RGB using the chroma/intermediate/match
// decomposition over six 60° sectors. Out-of-range inputs are normalised first.
func HSVToRGB(c HSV) models.RGB {
	h := normalizeHue(c.H) / 60
	s := clamp01(c.S)
	v := clamp01(c.V)

	chroma := v * s
	x := chroma * (1 - math.Abs(math.Mod(h, 2)-1))
	m := v - chroma

	var r, g, b float64
	switch {
	case h < 1:
		r, g, b = chroma, x, 0
	case h < 2:
		r, g, b = x, chroma, 0
	case h < 3:
		r, g, b = 0, chroma, x
	case h < 4:
		r, g, b = 0, x, chroma
	case h < 5:
		r, g, b = x, 0, chroma
	default:
		r, g, b = chroma, 0, x
	}
	return models.NewRGB((r+m)*255, (g+m)*255, (b+m)*255)
}

// normalizeHue wraps h into [0,360).
func normalizeHue(h float64) float64 {
	if math.IsNaN(h) || math.IsInf(h, 0) {
		return 0
	}
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	if h >= 360 {
		h = 0
	}
	return h
}

func clamp01(f float64) float64 {
	if math.IsNaN(f) {
		return 0
	}
	return math.Max(0, math.Min(1, f))
}
