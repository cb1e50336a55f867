package decor

import "math"

// RGB is a color with float components in [0,1], sRGB encoded.
type RGB struct {
	R, G, B float32
}

// Hex creates a color from a 0xRRGGBB value.
func Hex(v uint32) RGB {
	return RGB{
		R: float32((v>>16)&0xff) / 255.0,
		G: float32((v>>8)&0xff) / 255.0,
		B: float32(v&0xff) / 255.0,
	}
}

// Scale returns the color multiplied by s.
func (c RGB) Scale(s float32) RGB {
	return RGB{c.R * s, c.G * s, c.B * s}
}

// Linear converts sRGB components to linear light for shading.
func (c RGB) Linear() RGB {
	return RGB{srgbToLinear(c.R), srgbToLinear(c.G), srgbToLinear(c.B)}
}

// SRGB converts linear components back to sRGB encoding.
func (c RGB) SRGB() RGB {
	return RGB{linearToSRGB(c.R), linearToSRGB(c.G), linearToSRGB(c.B)}
}

// ScaleLight scales the light the color represents rather than its encoded
// value, so half of a color is half as bright once shaded.
func (c RGB) ScaleLight(s float32) RGB {
	return c.Linear().Scale(s).SRGB()
}

// Array returns the components for GPU upload.
func (c RGB) Array() [3]float32 {
	return [3]float32{c.R, c.G, c.B}
}

func srgbToLinear(v float32) float32 {
	if v < 0.04045 {
		return v * 0.0773993808
	}
	return float32(math.Pow(float64(v)*0.9478672986+0.0521327014, 2.4))
}

func linearToSRGB(v float32) float32 {
	if v < 0.0031308 {
		return v * 12.92
	}
	return float32(1.055*math.Pow(float64(v), 1/2.4) - 0.055)
}

// HSL is a hue/saturation/lightness color. H is a fraction of a full turn.
type HSL struct {
	H, S, L float64
}

// RGB converts to RGB. Hue wraps, saturation and lightness are clamped.
func (c HSL) RGB() RGB {
	h := c.H - math.Floor(c.H)
	s := clamp01(c.S)
	l := clamp01(c.L)

	if s == 0 {
		return RGB{float32(l), float32(l), float32(l)}
	}

	var q float64
	if l <= 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	return RGB{
		R: float32(hueToRGB(p, q, h+1.0/3)),
		G: float32(hueToRGB(p, q, h)),
		B: float32(hueToRGB(p, q, h-1.0/3)),
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
		return p + (q-p)*6*(2.0/3-t)
	default:
		return p
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
