package imgfx

import (
	"image"

	"github.com/disintegration/imaging"
)

// Orientation is the rotate and flip state applied before filtering.
type Orientation struct {
	// Rotation is the clockwise rotation in degrees: 0, 90, 180 or 270.
	Rotation int
	FlipH    bool
	FlipV    bool
}

// Rotate advances the rotation by 90 degrees clockwise.
func (o *Orientation) Rotate() *Orientation {
	o.Rotation = normalizeRotation(o.Rotation + 90)
	return o
}

// ToggleFlipH toggles the horizontal mirror.
func (o *Orientation) ToggleFlipH() *Orientation {
	o.FlipH = !o.FlipH
	return o
}

// ToggleFlipV toggles the vertical mirror.
func (o *Orientation) ToggleFlipV() *Orientation {
	o.FlipV = !o.FlipV
	return o
}

// IsIdentity reports whether o leaves images unchanged.
func (o Orientation) IsIdentity() bool {
	return normalizeRotation(o.Rotation) == 0 && !o.FlipH && !o.FlipV
}

// Size returns the dimensions of an image of size p after o is applied.
func (o Orientation) Size(p image.Point) image.Point {
	if r := normalizeRotation(o.Rotation); r == 90 || r == 270 {
		return image.Pt(p.Y, p.X)
	}
	return p
}

// Apply mirrors img and then rotates it about its center.
// Rotations that are not a multiple of 90 degrees are truncated to one.
func (o Orientation) Apply(img image.Image) *image.NRGBA {
	var dst *image.NRGBA
	switch {
	case o.FlipH && o.FlipV:
		dst = imaging.Rotate180(img)
	case o.FlipH:
		dst = imaging.FlipH(img)
	case o.FlipV:
		dst = imaging.FlipV(img)
	default:
		dst = imaging.Clone(img)
	}

	// imaging rotates counter-clockwise.
	switch normalizeRotation(o.Rotation) {
	case 90:
		dst = imaging.Rotate270(dst)
	case 180:
		dst = imaging.Rotate180(dst)
	case 270:
		dst = imaging.Rotate90(dst)
	}
	return dst
}

func normalizeRotation(deg int) int {
	deg = deg / 90 * 90 % 360
	if deg < 0 {
		deg += 360
	}
	return deg
}
