package imgfx

import "math"

// RGB is a color triple with each channel in [0, 255].
// Channels are kept as float64 between transforms and rounded only when written back.
type RGB struct {
	R, G, B float64
}

func (c RGB) luma() float64 {
	return 0.299*c.R + 0.587*c.G + 0.114*c.B
}

func (c RGB) clamp() RGB {
	return RGB{clampChannel(c.R), clampChannel(c.G), clampChannel(c.B)}
}

// blend interpolates linearly from c toward target by t.
func (c RGB) blend(target RGB, t float64) RGB {
	return RGB{
		c.R*(1-t) + target.R*t,
		c.G*(1-t) + target.G*t,
		c.B*(1-t) + target.B*t,
	}.clamp()
}

// Grayscale blends toward luma. v is the intensity in percent.
func (c RGB) Grayscale(v float64) RGB {
	l := c.luma()
	return c.blend(RGB{l, l, l}, v/100)
}

// Sepia blends toward the sepia tone of c. v is the intensity in percent.
func (c RGB) Sepia(v float64) RGB {
	target := RGB{
		math.Min(255, 0.393*c.R+0.769*c.G+0.189*c.B),
		math.Min(255, 0.349*c.R+0.686*c.G+0.168*c.B),
		math.Min(255, 0.272*c.R+0.534*c.G+0.131*c.B),
	}
	return c.blend(target, v/100)
}

// Brightness scales every channel. v is in [0, 200] and 100 leaves c unchanged.
func (c RGB) Brightness(v float64) RGB {
	f := (v - 100) / 100
	return RGB{c.R + c.R*f, c.G + c.G*f, c.B + c.B*f}.clamp()
}

// Contrast stretches channels around mid gray. v is in [0, 200] and 100 leaves c unchanged.
func (c RGB) Contrast(v float64) RGB {
	f := contrastFactor(v)
	return RGB{
		f*(c.R-128) + 128,
		f*(c.G-128) + 128,
		f*(c.B-128) + 128,
	}.clamp()
}

func contrastFactor(v float64) float64 {
	// 0..200 maps onto the -255..255 offset the factor formula expects.
	offset := (v - 100) * 2.55
	return 259 * (offset + 255) / (255 * (259 - offset))
}

// Saturate moves channels away from or toward luma. v is in [0, 200] and 100 leaves c unchanged.
func (c RGB) Saturate(v float64) RGB {
	f := v / 100
	l := c.luma()
	return RGB{
		l + (c.R-l)*f,
		l + (c.G-l)*f,
		l + (c.B-l)*f,
	}.clamp()
}

// HueRotate rotates the hue by deg degrees with the YIQ rotation matrix.
func (c RGB) HueRotate(deg float64) RGB {
	m := hueMatrix(deg)
	return RGB{
		m[0]*c.R + m[1]*c.G + m[2]*c.B,
		m[3]*c.R + m[4]*c.G + m[5]*c.B,
		m[6]*c.R + m[7]*c.G + m[8]*c.B,
	}.clamp()
}

func hueMatrix(deg float64) [9]float64 {
	rad := deg * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	return [9]float64{
		0.299 + 0.701*cos + 0.168*sin, 0.587 - 0.587*cos + 0.330*sin, 0.114 - 0.114*cos - 0.497*sin,
		0.299 - 0.299*cos - 0.328*sin, 0.587 + 0.413*cos + 0.035*sin, 0.114 - 0.114*cos + 0.292*sin,
		0.299 - 0.300*cos + 1.250*sin, 0.587 - 0.588*cos - 1.050*sin, 0.114 + 0.886*cos - 0.203*sin,
	}
}

// Invert blends toward the negative of c. v is the intensity in percent.
func (c RGB) Invert(v float64) RGB {
	return c.blend(RGB{255 - c.R, 255 - c.G, 255 - c.B}, v/100)
}

// Vintage blends toward a faded warm tone. v is the intensity in percent.
func (c RGB) Vintage(v float64) RGB {
	target := RGB{c.R*0.9 + 20, c.G*0.9 + 10, c.B * 0.85}.clamp()
	return c.blend(target, v/100)
}

// Warm shifts red up and blue down by up to 20 levels.
func (c RGB) Warm(v float64) RGB {
	i := v / 100
	return RGB{c.R + 20*i, c.G, c.B - 20*i}.clamp()
}

// Cool shifts blue up and red down by up to 20 levels.
func (c RGB) Cool(v float64) RGB {
	i := v / 100
	return RGB{c.R - 20*i, c.G, c.B + 20*i}.clamp()
}

// Posterize reduces every channel to a fixed number of levels derived from v.
func (c RGB) Posterize(v float64) RGB {
	step := 256 / float64(posterizeLevels(v))
	return RGB{
		math.Floor(c.R/step) * step,
		math.Floor(c.G/step) * step,
		math.Floor(c.B/step) * step,
	}.clamp()
}

func posterizeLevels(v float64) int {
	return max(2, int(math.Floor(256/(v/10+1))))
}

func clampChannel(x float64) float64 {
	switch {
	case x < 0:
		return 0
	case x > 255:
		return 255
	}
	return x
}

// clamp rounds and clamps float64 value to fit into uint8.
func clamp(x float64) uint8 {
	v := int64(x + 0.5)
	if v > 255 {
		return 255
	}
	if v > 0 {
		return uint8(v)
	}
	return 0
}
