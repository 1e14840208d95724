package imgfx

import (
	"errors"
	"image"
	"math"
	"testing"
)

func compare(t *testing.T, img0, img1 image.Image) {
	t.Helper()
	b0 := img0.Bounds()
	b1 := img1.Bounds()
	if b0.Dx() != b1.Dx() || b0.Dy() != b1.Dy() {
		t.Fatalf("wrong image size: want %s, got %s", b0, b1)
	}
	x1 := b1.Min.X - b0.Min.X
	y1 := b1.Min.Y - b0.Min.Y
	for y := b0.Min.Y; y < b0.Max.Y; y++ {
		for x := b0.Min.X; x < b0.Max.X; x++ {
			c0 := img0.At(x, y)
			c1 := img1.At(x+x1, y+y1)
			r0, g0, b0, a0 := c0.RGBA()
			r1, g1, b1, a1 := c1.RGBA()
			if r0 != r1 || g0 != g1 || b0 != b1 || a0 != a1 {
				t.Fatalf("pixel at (%d, %d) has wrong color: want %v, got %v", x, y, c0, c1)
			}
		}
	}
}

func TestCalcSize(t *testing.T) {
	for i, testcase := range []struct {
		src    image.Point
		option ResizeOption
		want   image.Point
	}{
		{image.Pt(1000, 500), ResizeOption{MaxWidth: 500, MaxHeight: 500, KeepAspect: true}, image.Pt(500, 250)},
		{image.Pt(1000, 500), ResizeOption{MaxWidth: 500, MaxHeight: 500}, image.Pt(500, 500)},
		{image.Pt(1000, 500), ResizeOption{}, image.Pt(1000, 500)},
		{image.Pt(1000, 500), ResizeOption{KeepAspect: true}, image.Pt(1000, 500)},
		{image.Pt(300, 200), ResizeOption{MaxWidth: 500, MaxHeight: 500, KeepAspect: true}, image.Pt(300, 200)},
		{image.Pt(1000, 500), ResizeOption{MaxWidth: 200, KeepAspect: true}, image.Pt(200, 100)},
		{image.Pt(1000, 500), ResizeOption{MaxHeight: 100, KeepAspect: true}, image.Pt(200, 100)},
		{image.Pt(1000, 500), ResizeOption{MaxWidth: 200}, image.Pt(200, 500)},
		{image.Pt(1000, 500), ResizeOption{Percent: 50}, image.Pt(500, 250)},
		{image.Pt(1000, 1), ResizeOption{MaxWidth: 10, KeepAspect: true}, image.Pt(10, 1)},
		{image.Pt(3, 3), ResizeOption{Percent: 10}, image.Pt(1, 1)},
	} {
		w, h, err := testcase.option.CalcSize(testcase.src.X, testcase.src.Y)
		if err != nil {
			t.Errorf("#%d: %v", i, err)
			continue
		}
		if got := image.Pt(w, h); got != testcase.want {
			t.Errorf("#%d want %v, got %v", i, testcase.want, got)
		}
	}
}

func TestCalcSizeError(t *testing.T) {
	for i, testcase := range []struct {
		src    image.Point
		option ResizeOption
	}{
		{image.Pt(0, 500), ResizeOption{MaxWidth: 100}},
		{image.Pt(100, -1), ResizeOption{}},
		{image.Pt(100, 100), ResizeOption{MaxWidth: -1}},
		{image.Pt(100, 100), ResizeOption{Percent: math.NaN()}},
		{image.Pt(100, 100), ResizeOption{Percent: math.Inf(1)}},
		{image.Pt(math.MaxInt32, 1), ResizeOption{Percent: 200}},
	} {
		_, _, err := testcase.option.CalcSize(testcase.src.X, testcase.src.Y)
		var dimErr *InvalidDimensionError
		if !errors.As(err, &dimErr) {
			t.Errorf("#%d want InvalidDimensionError, got %v", i, err)
		}
	}
}

func TestResize(t *testing.T) {
	sample := testImage(150, 103)
	for _, testcase := range []struct {
		option *ResizeOption
		want   image.Point
	}{
		{&ResizeOption{MaxWidth: 300, KeepAspect: true}, image.Pt(150, 103)},
		{&ResizeOption{MaxWidth: 75, KeepAspect: true}, image.Pt(75, 52)},
		{&ResizeOption{MaxWidth: 200, MaxHeight: 200}, image.Pt(200, 200)},
		{&ResizeOption{Percent: 50}, image.Pt(75, 52)},
	} {
		img, err := Resize(sample, testcase.option)
		if err != nil {
			t.Fatal(err)
		}
		if img.Bounds().Size() != testcase.want {
			t.Fatalf("bounds differ: %v and %v", img.Bounds().Size(), testcase.want)
		}
	}

	// Unchanged size is a copy.
	img, err := Resize(sample, &ResizeOption{})
	if err != nil {
		t.Fatal(err)
	}
	compare(t, sample, img)
	img.Pix[0]++
	if img.Pix[0] == sample.Pix[0] {
		t.Fatal("Resize returned the source buffer")
	}

	if _, err := Resize(image.NewNRGBA(image.Rectangle{}), &ResizeOption{MaxWidth: 10}); err == nil {
		t.Fatal("resize empty image want error")
	}
}
