package imgfx

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// ResizeOption is resize option
type ResizeOption struct {
	// MaxWidth and MaxHeight bound the output size. Zero means no bound.
	MaxWidth  int
	MaxHeight int
	// KeepAspect scales uniformly and never upscales. Without it the output
	// is exactly MaxWidth x MaxHeight.
	KeepAspect bool
	// Percent scales both sides when neither bound is set.
	Percent float64
}

// CalcSize computes the output size of a source of srcW x srcH.
func (r *ResizeOption) CalcSize(srcW, srcH int) (int, int, error) {
	if srcW <= 0 || srcH <= 0 || r.MaxWidth < 0 || r.MaxHeight < 0 || r.Percent < 0 ||
		math.IsNaN(r.Percent) || math.IsInf(r.Percent, 0) {
		return 0, 0, &InvalidDimensionError{float64(srcW), float64(srcH)}
	}

	w, h := float64(srcW), float64(srcH)
	switch {
	case r.MaxWidth == 0 && r.MaxHeight == 0:
		if r.Percent > 0 {
			w, h = w*r.Percent/100, h*r.Percent/100
		}
	case r.KeepAspect:
		scale := 1.0
		if r.MaxWidth > 0 {
			scale = math.Min(scale, float64(r.MaxWidth)/w)
		}
		if r.MaxHeight > 0 {
			scale = math.Min(scale, float64(r.MaxHeight)/h)
		}
		w, h = w*scale, h*scale
	default:
		if r.MaxWidth > 0 {
			w = float64(r.MaxWidth)
		}
		if r.MaxHeight > 0 {
			h = float64(r.MaxHeight)
		}
	}
	return checkSize(math.Max(1, math.Round(w)), math.Max(1, math.Round(h)))
}

func checkSize(w, h float64) (int, int, error) {
	if math.IsNaN(w) || math.IsNaN(h) || math.IsInf(w, 0) || math.IsInf(h, 0) || w < 1 || h < 1 ||
		w > math.MaxInt32 || h > math.MaxInt32 {
		return 0, 0, &InvalidDimensionError{w, h}
	}
	return int(w), int(h), nil
}

// Resize resizes base according option.
// The source is returned as a copy when its size already matches.
func Resize(base image.Image, option *ResizeOption) (*image.NRGBA, error) {
	size := base.Bounds().Size()
	w, h, err := option.CalcSize(size.X, size.Y)
	if err != nil {
		return nil, err
	}
	if w == size.X && h == size.Y {
		return imaging.Clone(base), nil
	}
	return imaging.Resize(base, w, h, imaging.Lanczos), nil
}
