package colorwheel_test

import (
	"bytes"
	"image/png"
	"math"
	"math/rand"
	"testing"

	"github.com/seezee/launcherhub/internal/colorwheel"
	"github.com/seezee/launcherhub/internal/models"
)

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}

func TestRoundTrip_AllChannelsWithinOne(t *testing.T) {
	for r := 0; r <= 255; r += 5 {
		for g := 0; g <= 255; g += 5 {
			for b := 0; b <= 255; b += 5 {
				in := models.RGB{R: r, G: g, B: b}
				out := colorwheel.HSVToRGB(colorwheel.RGBToHSV(in))
				if absDiff(in.R, out.R) > 1 || absDiff(in.G, out.G) > 1 || absDiff(in.B, out.B) > 1 {
					t.Fatalf("round trip %+v -> %+v", in, out)
				}
			}
		}
	}
}

func TestRoundTrip_Edges(t *testing.T) {
	for _, in := range []models.RGB{
		{R: 255}, {G: 255}, {B: 255},
		{R: 255, G: 255}, {G: 255, B: 255}, {R: 255, B: 255},
		{R: 255, G: 255, B: 255}, {},
		{R: 255, G: 30, B: 30}, {R: 230, G: 57, B: 70}, {R: 1, G: 0, B: 254},
	} {
		out := colorwheel.HSVToRGB(colorwheel.RGBToHSV(in))
		if absDiff(in.R, out.R) > 1 || absDiff(in.G, out.G) > 1 || absDiff(in.B, out.B) > 1 {
			t.Errorf("round trip %+v -> %+v", in, out)
		}
	}
}

func TestRGBToHSV_Known(t *testing.T) {
	tests := []struct {
		in   models.RGB
		want colorwheel.HSV
	}{
		{models.RGB{R: 255}, colorwheel.HSV{H: 0, S: 1, V: 1}},
		{models.RGB{G: 255}, colorwheel.HSV{H: 120, S: 1, V: 1}},
		{models.RGB{B: 255}, colorwheel.HSV{H: 240, S: 1, V: 1}},
		{models.RGB{R: 255, B: 255}, colorwheel.HSV{H: 300, S: 1, V: 1}},
		{models.RGB{}, colorwheel.HSV{}},
		{models.RGB{R: 255, G: 255, B: 255}, colorwheel.HSV{H: 0, S: 0, V: 1}},
	}
	for _, tt := range tests {
		got := colorwheel.RGBToHSV(tt.in)
		if math.Abs(got.H-tt.want.H) > 1e-9 || math.Abs(got.S-tt.want.S) > 1e-9 || math.Abs(got.V-tt.want.V) > 1e-9 {
			t.Errorf("RGBToHSV(%+v) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestRGBToHSV_HueAlwaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 5000; i++ {
		c := models.RGB{R: rng.Intn(256), G: rng.Intn(256), B: rng.Intn(256)}
		hsv := colorwheel.RGBToHSV(c)
		if hsv.H < 0 || hsv.H >= 360 {
			t.Fatalf("hue out of range for %+v: %v", c, hsv.H)
		}
		if r := hsv.Rounded(); r.H < 0 || r.H >= 360 {
			t.Fatalf("rounded hue out of range for %+v: %v", c, r.H)
		}
	}
}

func TestHSVToRGB_NormalisesInput(t *testing.T) {
	if got := colorwheel.HSVToRGB(colorwheel.HSV{H: 360, S: 1, V: 1}); got != (models.RGB{R: 255}) {
		t.Errorf("h=360 -> %+v, want red", got)
	}
	if got := colorwheel.HSVToRGB(colorwheel.HSV{H: -120, S: 2, V: 1}); got != (models.RGB{B: 255}) {
		t.Errorf("h=-120 -> %+v, want blue", got)
	}
}

func TestPick_KnownPositions(t *testing.T) {
	w := colorwheel.New(120)
	tests := []struct {
		name string
		x, y float64
		want models.RGB
	}{
		{"centre is white", 120, 120, models.RGB{R: 255, G: 255, B: 255}},
		{"right rim is red", 240, 120, models.RGB{R: 255}},
		{"left rim is cyan", 0, 120, models.RGB{G: 255, B: 255}},
		{"far outside clamps to rim", 2400, 120, models.RGB{R: 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, got := w.Pick(tt.x, tt.y)
			if got != tt.want {
				t.Errorf("Pick(%v,%v) = %+v, want %+v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestPick_RangesHold(t *testing.T) {
	w := colorwheel.New(120)
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 10000; i++ {
		x := rng.Float64()*1000 - 380
		y := rng.Float64()*1000 - 380
		hsv, _ := w.Pick(x, y)
		if hsv.H < 0 || hsv.H >= 360 {
			t.Fatalf("Pick(%v,%v) hue %v out of range", x, y, hsv.H)
		}
		if hsv.S < 0 || hsv.S > 1 {
			t.Fatalf("Pick(%v,%v) saturation %v out of range", x, y, hsv.S)
		}
		if hsv.V != 1 {
			t.Fatalf("Pick(%v,%v) value %v, want 1", x, y, hsv.V)
		}
	}
}

func TestLocate_InvertsPick(t *testing.T) {
	w := colorwheel.New(120)
	for _, c := range []models.RGB{{R: 255}, {G: 255}, {R: 255, G: 30, B: 30}, {R: 128, G: 255}} {
		x, y := w.Locate(c)
		_, got := w.Pick(x, y)
		if absDiff(c.R, got.R) > 1 || absDiff(c.G, got.G) > 1 || absDiff(c.B, got.B) > 1 {
			t.Errorf("Pick(Locate(%+v)) = %+v", c, got)
		}
	}
}

func TestImage_TransparentOutsideRadius(t *testing.T) {
	w := colorwheel.New(20)
	img := w.Image()
	if img.Bounds().Dx() != 40 {
		t.Fatalf("width = %d, want 40", img.Bounds().Dx())
	}
	if a := img.NRGBAAt(0, 0).A; a != 0 {
		t.Errorf("corner alpha = %d, want 0", a)
	}
	if a := img.NRGBAAt(20, 20).A; a != 255 {
		t.Errorf("centre alpha = %d, want 255", a)
	}
	if c := img.NRGBAAt(39, 20); c.R != 255 || c.G > 20 {
		t.Errorf("right edge = %+v, want red", c)
	}
}

func TestWritePNG_Scaled(t *testing.T) {
	var buf bytes.Buffer
	if err := colorwheel.New(20).WritePNG(&buf, 64); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 64 || img.Bounds().Dy() != 64 {
		t.Errorf("size = %v, want 64x64", img.Bounds())
	}
}
