package colorwheel

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	xdraw "golang.org/x/image/draw"

	"github.com/seezee/launcherhub/internal/models"
)

// DefaultRadius matches the 240px wheel on the lighting page.
const DefaultRadius = 120

// Wheel is a circular hue/saturation picker. Hue follows the angle around the
// centre, saturation the distance from it; value is fixed at 1.
type Wheel struct {
	Radius float64
}

// New returns a wheel of the given radius, or DefaultRadius when radius <= 0.
func New(radius float64) Wheel {
	if radius <= 0 {
		radius = DefaultRadius
	}
	return Wheel{Radius: radius}
}

// Size is the wheel's diameter in pixels.
func (w Wheel) Size() int { return int(math.Round(2 * w.Radius)) }

// Pick maps a pointer position, relative to the widget's top-left corner, to a
// colour. Positions beyond the rim are clamped to it.
func (w Wheel) Pick(x, y float64) (HSV, models.RGB) {
	if w.Radius <= 0 {
		hsv := HSV{V: 1}
		return hsv, HSVToRGB(hsv)
	}
	dx := x - w.Radius
	dy := y - w.Radius
	dist := math.Min(math.Hypot(dx, dy), w.Radius)
	angle := math.Atan2(dy, dx) * 180 / math.Pi

	hsv := HSV{
		H: normalizeHue(angle + 360),
		S: clamp01(dist / w.Radius),
		V: 1,
	}
	return hsv, HSVToRGB(hsv)
}

// Locate returns where the picker knob sits for c. Value is ignored.
func (w Wheel) Locate(c models.RGB) (x, y float64) {
	hsv := RGBToHSV(c)
	rad := hsv.H * math.Pi / 180
	dist := hsv.S * w.Radius
	return w.Radius + dist*math.Cos(rad), w.Radius + dist*math.Sin(rad)
}

// Image renders the wheel at its native size. Pixels outside the radius are transparent.
func (w Wheel) Image() *image.NRGBA {
	size := w.Size()
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for py := 0; py < size; py++ {
		for px := 0; px < size; px++ {
			dx := float64(px) - w.Radius
			dy := float64(py) - w.Radius
			if math.Hypot(dx, dy) > w.Radius {
				continue
			}
			_, c := w.Pick(float64(px), float64(py))
			img.SetNRGBA(px, py, color.NRGBA{R: uint8(c.R), G: uint8(c.G), B: uint8(c.B), A: 255})
		}
	}
	return img
}

// Scaled renders the wheel and resamples it to size×size pixels.
func (w Wheel) Scaled(size int) *image.NRGBA {
	src := w.Image()
	if size <= 0 || size == src.Bounds().Dx() {
		return src
	}
	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Over, nil)
	return dst
}

// WritePNG encodes the wheel at the requested size.
func (w Wheel) WritePNG(out io.Writer, size int) error {
	if err := png.Encode(out, w.Scaled(size)); err != nil {
		return fmt.Errorf("colorwheel: encode png: %w", err)
	}
	return nil
}
