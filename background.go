package imgfx

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"math"
	"time"

	"github.com/disintegration/imaging"
)

// Segmenter separates the foreground of an image from its background.
// The returned mask covers img.Bounds(); zero alpha marks background.
type Segmenter interface {
	Segment(ctx context.Context, img image.Image) (*image.Alpha, error)
}

// RemoveBackground makes the background of img transparent using seg.
// seg runs in its own goroutine and races against timeout; if timeout
// elapses first ErrSegmentTimeout is returned and the late result is dropped.
// A timeout of zero or less waits for ctx only.
func RemoveBackground(ctx context.Context, seg Segmenter, img image.Image, timeout time.Duration) (*image.NRGBA, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	type result struct {
		mask *image.Alpha
		err  error
	}
	c := make(chan result, 1)
	go func() {
		mask, err := seg.Segment(ctx, img)
		c <- result{mask, err}
	}()

	var res result
	select {
	case <-ctx.Done():
		res.err = ctx.Err()
	case res = <-c:
	}
	if res.err != nil {
		if errors.Is(res.err, context.DeadlineExceeded) {
			return nil, ErrSegmentTimeout
		}
		return nil, res.err
	}
	return applyMask(img, res.mask)
}

func applyMask(img image.Image, mask *image.Alpha) (*image.NRGBA, error) {
	b := img.Bounds()
	if mask == nil || !mask.Bounds().Eq(b) {
		return nil, &InvalidDimensionError{float64(b.Dx()), float64(b.Dy())}
	}
	dst := imaging.Clone(img)
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			i := dst.PixOffset(x, y)
			a := mask.AlphaAt(b.Min.X+x, b.Min.Y+y).A
			dst.Pix[i+3] = uint8(uint16(dst.Pix[i+3]) * uint16(a) / 255)
		}
	}
	return dst, nil
}

// ColorKey is a Segmenter that treats pixels close to the mean corner color as background.
type ColorKey struct {
	// Tolerance is the maximum RGB distance, in [0, 442], from the key color.
	Tolerance float64
}

// Segment implements Segmenter.
func (k ColorKey) Segment(ctx context.Context, img image.Image) (*image.Alpha, error) {
	b := img.Bounds()
	if b.Empty() {
		return nil, &InvalidDimensionError{float64(b.Dx()), float64(b.Dy())}
	}
	src := imaging.Clone(img)
	key := cornerColor(src)
	mask := image.NewAlpha(b)
	for y := 0; y < src.Rect.Dy(); y++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for x := 0; x < src.Rect.Dx(); x++ {
			i := src.PixOffset(x, y)
			c := RGB{float64(src.Pix[i]), float64(src.Pix[i+1]), float64(src.Pix[i+2])}
			if distance(c, key) > k.Tolerance {
				mask.SetAlpha(b.Min.X+x, b.Min.Y+y, color.Alpha{A: 0xff})
			}
		}
	}
	return mask, nil
}

func cornerColor(img *image.NRGBA) RGB {
	w, h := img.Rect.Dx()-1, img.Rect.Dy()-1
	var sum RGB
	for _, p := range []image.Point{{0, 0}, {w, 0}, {0, h}, {w, h}} {
		i := img.PixOffset(p.X, p.Y)
		sum.R += float64(img.Pix[i])
		sum.G += float64(img.Pix[i+1])
		sum.B += float64(img.Pix[i+2])
	}
	return RGB{sum.R / 4, sum.G / 4, sum.B / 4}
}

func distance(a, b RGB) float64 {
	return math.Sqrt((a.R-b.R)*(a.R-b.R) + (a.G-b.G)*(a.G-b.G) + (a.B-b.B)*(a.B-b.B))
}

// BackgroundOption is background option
type BackgroundOption struct {
	// Color fills the canvas when Image is nil. Nil means transparent.
	Color color.Color
	// Image is scaled to fill the canvas.
	Image image.Image
	// Size is the canvas size. Zero means the foreground size.
	Size image.Point
	// Offset moves the foreground from the canvas center.
	Offset image.Point
}

// ReplaceBackground draws the transparent-background image fg over option's background.
func ReplaceBackground(fg image.Image, option *BackgroundOption) *image.NRGBA {
	return option.do(fg)
}

// SetColor sets the solid background color.
func (o *BackgroundOption) SetColor(c color.Color) *BackgroundOption {
	o.Color = c
	return o
}

// SetImage sets the background image.
func (o *BackgroundOption) SetImage(img image.Image) *BackgroundOption {
	o.Image = img
	return o
}

// SetOffset sets the foreground offset from the canvas center.
func (o *BackgroundOption) SetOffset(offset image.Point) *BackgroundOption {
	o.Offset = offset
	return o
}

func (o *BackgroundOption) do(fg image.Image) *image.NRGBA {
	size := o.Size
	if size.X <= 0 || size.Y <= 0 {
		size = fg.Bounds().Size()
	}
	var dst *image.NRGBA
	if o.Image != nil {
		dst = imaging.Fill(o.Image, size.X, size.Y, imaging.Center, imaging.Lanczos)
	} else {
		dst = imaging.New(size.X, size.Y, colorOr(o.Color, color.Transparent))
	}
	draw.Draw(dst, fg.Bounds().Sub(fg.Bounds().Min).Add(o.center(size, fg.Bounds().Size())), fg, fg.Bounds().Min, draw.Over)
	return dst
}

func (o *BackgroundOption) center(canvas, fg image.Point) image.Point {
	return image.Pt(
		canvas.X/2-fg.X/2+o.Offset.X,
		canvas.Y/2-fg.Y/2+o.Offset.Y,
	)
}
