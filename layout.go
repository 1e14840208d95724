package imgfx

import (
	"image"
	"math"
)

// Slots computes the destination rectangle of every image for a canvas of the given size.
// sizes holds the source size of each image in display order; only masonry
// layouts look at the values, the other kinds use its length.
func (t Template) Slots(canvas image.Point, spacing int, sizes []image.Point) ([]image.Rectangle, error) {
	n := len(sizes)
	if !t.Accepts(n) {
		return nil, &TemplateImageCountError{Template: t.ID, Count: n, Min: t.MinImages, Max: t.MaxImages}
	}
	if canvas.X <= 0 || canvas.Y <= 0 {
		return nil, &InvalidDimensionError{float64(canvas.X), float64(canvas.Y)}
	}
	s := float64(max(0, spacing))
	base := image.Rectangle{Max: canvas}

	switch t.Kind {
	case GridLayout:
		return split(base, t.Cols, t.Rows, n, s)
	case VerticalLayout:
		return split(base, 1, n, n, s)
	case HorizontalLayout:
		return split(base, n, 1, n, s)
	case FreeformLayout:
		cols := int(math.Ceil(math.Sqrt(float64(n))))
		rows := (n + cols - 1) / cols
		return split(base, cols, rows, n, s)
	case MasonryLayout:
		return masonry(base, t.Cols, sizes, s)
	case FixedLayout:
		if n > len(t.Rects) {
			return nil, &TemplateImageCountError{Template: t.ID, Count: n, Min: t.MinImages, Max: len(t.Rects)}
		}
		return fixed(base, t.Rects[:n], s)
	}
	return nil, ErrUnknownTemplate
}

// split divides base into cols x rows equal cells separated and surrounded
// by spacing, and returns the first n of them in row-major order.
func split(base image.Rectangle, cols, rows, n int, spacing float64) ([]image.Rectangle, error) {
	if cols < 1 || rows < 1 {
		return nil, &InvalidDimensionError{float64(cols), float64(rows)}
	}
	width := (float64(base.Dx()) - spacing*float64(cols+1)) / float64(cols)
	height := (float64(base.Dy()) - spacing*float64(rows+1)) / float64(rows)
	if width < 1 || height < 1 {
		return nil, &InvalidDimensionError{width, height}
	}

	rects := make([]image.Rectangle, 0, n)
	for i := range n {
		col, row := i%cols, i/cols
		rects = append(rects, rectF(
			base,
			spacing+float64(col)*(width+spacing),
			spacing+float64(row)*(height+spacing),
			width, height,
		))
	}
	return rects, nil
}

// masonry places every image in the currently shortest column,
// sizing its height from its own aspect ratio.
func masonry(base image.Rectangle, cols int, sizes []image.Point, spacing float64) ([]image.Rectangle, error) {
	if cols < 1 {
		return nil, &InvalidDimensionError{float64(cols), 0}
	}
	width := (float64(base.Dx()) - spacing*float64(cols+1)) / float64(cols)
	if width < 1 {
		return nil, &InvalidDimensionError{width, float64(base.Dy())}
	}

	offsets := make([]float64, cols)
	for i := range offsets {
		offsets[i] = spacing
	}

	rects := make([]image.Rectangle, 0, len(sizes))
	for _, size := range sizes {
		if size.X <= 0 || size.Y <= 0 {
			return nil, &InvalidDimensionError{float64(size.X), float64(size.Y)}
		}
		col := 0
		for i, offset := range offsets {
			if offset < offsets[col] {
				col = i
			}
		}
		height := width * float64(size.Y) / float64(size.X)
		rects = append(rects, rectF(base, spacing+float64(col)*(width+spacing), offsets[col], width, height))
		offsets[col] += height + spacing
	}
	return rects, nil
}

// fixed maps canvas-fraction rectangles onto base. Fractions are taken of
// the canvas minus one spacing, which makes a fraction grid land on the
// same cells as split.
func fixed(base image.Rectangle, slots []Frac, spacing float64) ([]image.Rectangle, error) {
	w := float64(base.Dx()) - spacing
	h := float64(base.Dy()) - spacing

	rects := make([]image.Rectangle, 0, len(slots))
	for _, f := range slots {
		width, height := f.W*w-spacing, f.H*h-spacing
		if width < 1 || height < 1 {
			return nil, &InvalidDimensionError{width, height}
		}
		rects = append(rects, rectF(base, spacing+f.X*w, spacing+f.Y*h, width, height))
	}
	return rects, nil
}

func rectF(base image.Rectangle, x, y, w, h float64) image.Rectangle {
	return image.Rect(
		base.Min.X+int(math.Round(x)), base.Min.Y+int(math.Round(y)),
		base.Min.X+int(math.Round(x+w)), base.Min.Y+int(math.Round(y+h)),
	)
}
