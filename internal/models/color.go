package models

import (
	"fmt"
	"math"
)

// RGB is an 8-bit-per-channel colour. Every constructor clamps to [0,255].
type RGB struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// DefaultAccent is the brand red used when no accent has been stored.
var DefaultAccent = RGB{R: 230, G: 57, B: 70}

// ClampByte rounds n and clamps it to [0,255].
func ClampByte(n float64) int {
	if math.IsNaN(n) {
		return 0
	}
	return int(math.Max(0, math.Min(255, math.Round(n))))
}

// NewRGB builds a clamped colour from arbitrary channel values.
func NewRGB(r, g, b float64) RGB {
	return RGB{R: ClampByte(r), G: ClampByte(g), B: ClampByte(b)}
}

// Clamp returns c with every channel forced into [0,255].
func (c RGB) Clamp() RGB {
	return NewRGB(float64(c.R), float64(c.G), float64(c.B))
}

// Hex returns the colour as "#rrggbb".
func (c RGB) Hex() string {
	c = c.Clamp()
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// CSSVar returns the space separated triple used for the --seezee-accent variable.
func (c RGB) CSSVar() string {
	c = c.Clamp()
	return fmt.Sprintf("%d %d %d", c.R, c.G, c.B)
}

// RGBInput is the wire form of a colour coming from a client or a file.
// Channels may be fractional or out of range; missing channels make it invalid.
type RGBInput struct {
	R *float64 `json:"r"`
	G *float64 `json:"g"`
	B *float64 `json:"b"`
}

// Valid reports whether all three channels are present and finite.
func (in RGBInput) Valid() bool {
	for _, ch := range []*float64{in.R, in.G, in.B} {
		if ch == nil || math.IsNaN(*ch) || math.IsInf(*ch, 0) {
			return false
		}
	}
	return true
}

// RGB converts a valid input to a clamped colour. Call Valid first.
func (in RGBInput) RGB() RGB {
	return NewRGB(*in.R, *in.G, *in.B)
}
