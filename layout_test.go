package imgfx

import (
	"errors"
	"image"
	"slices"
	"testing"
)

func sizes(n int, p image.Point) []image.Point {
	s := make([]image.Point, n)
	for i := range s {
		s[i] = p
	}
	return s
}

func equalRects(a, b []image.Rectangle) bool {
	return slices.CompareFunc(a, b, func(a, b image.Rectangle) int {
		if a.Eq(b) {
			return 0
		}
		return 1
	}) == 0
}

func TestSlots(t *testing.T) {
	square := image.Pt(100, 100)
	for i, testcase := range []struct {
		template string
		canvas   image.Point
		spacing  int
		sizes    []image.Point
		want     []image.Rectangle
	}{
		{"grid-2x2", image.Pt(1200, 1200), 10, sizes(4, square), []image.Rectangle{
			image.Rect(10, 10, 595, 595),
			image.Rect(605, 10, 1190, 595),
			image.Rect(10, 605, 595, 1190),
			image.Rect(605, 605, 1190, 1190),
		}},
		{"grid-2x3", image.Pt(200, 300), 0, sizes(6, square), []image.Rectangle{
			image.Rect(0, 0, 100, 100),
			image.Rect(100, 0, 200, 100),
			image.Rect(0, 100, 100, 200),
			image.Rect(100, 100, 200, 200),
			image.Rect(0, 200, 100, 300),
			image.Rect(100, 200, 200, 300),
		}},
		{"vertical", image.Pt(300, 300), 0, sizes(3, square), []image.Rectangle{
			image.Rect(0, 0, 300, 100),
			image.Rect(0, 100, 300, 200),
			image.Rect(0, 200, 300, 300),
		}},
		{"horizontal", image.Pt(200, 100), 0, sizes(2, square), []image.Rectangle{
			image.Rect(0, 0, 100, 100),
			image.Rect(100, 0, 200, 100),
		}},
		{"masonry-2", image.Pt(210, 400), 10, []image.Point{{100, 100}, {100, 200}, {100, 50}}, []image.Rectangle{
			image.Rect(10, 10, 100, 100),
			image.Rect(110, 10, 200, 190),
			image.Rect(10, 110, 100, 155),
		}},
		{"big-small", image.Pt(1200, 1200), 10, sizes(3, square), []image.Rectangle{
			image.Rect(10, 10, 793, 1190),
			image.Rect(803, 10, 1190, 595),
			image.Rect(803, 605, 1190, 1190),
		}},
		{"freeform", image.Pt(300, 200), 0, sizes(5, square), []image.Rectangle{
			image.Rect(0, 0, 100, 100),
			image.Rect(100, 0, 200, 100),
			image.Rect(200, 0, 300, 100),
			image.Rect(0, 100, 100, 200),
			image.Rect(100, 100, 200, 200),
		}},
		{"freeform", image.Pt(50, 40), 5, sizes(1, square), []image.Rectangle{
			image.Rect(5, 5, 45, 35),
		}},
	} {
		tmpl, err := LookupTemplate(testcase.template)
		if err != nil {
			t.Fatal(err)
		}
		rects, err := tmpl.Slots(testcase.canvas, testcase.spacing, testcase.sizes)
		if err != nil {
			t.Errorf("#%d %s: %v", i, testcase.template, err)
			continue
		}
		if !equalRects(rects, testcase.want) {
			t.Errorf("#%d %s wrong slots: want %v, got %v", i, testcase.template, testcase.want, rects)
		}
	}
}

func TestSlotsInsideCanvas(t *testing.T) {
	canvas := image.Pt(1000, 800)
	bounds := image.Rectangle{Max: canvas}
	for _, tmpl := range Templates() {
		if tmpl.Kind == MasonryLayout {
			continue
		}
		for _, n := range []int{tmpl.MinImages, tmpl.MaxImages} {
			rects, err := tmpl.Slots(canvas, 8, sizes(n, image.Pt(40, 30)))
			if err != nil {
				t.Fatalf("%s with %d images: %v", tmpl.ID, n, err)
			}
			if len(rects) != n {
				t.Fatalf("%s: want %d slots, got %d", tmpl.ID, n, len(rects))
			}
			for i, r := range rects {
				if r.Empty() || !r.In(bounds) {
					t.Errorf("%s slot %d %v outside canvas", tmpl.ID, i, r)
				}
				for j := range i {
					if r.Overlaps(rects[j]) {
						t.Errorf("%s slots %d and %d overlap: %v %v", tmpl.ID, j, i, rects[j], r)
					}
				}
			}
		}
	}
}

func TestMasonryAspect(t *testing.T) {
	tmpl, err := LookupTemplate("masonry-3")
	if err != nil {
		t.Fatal(err)
	}
	src := []image.Point{{400, 300}, {300, 600}, {500, 500}, {800, 200}, {100, 100}}
	rects, err := tmpl.Slots(image.Pt(640, 2000), 10, src)
	if err != nil {
		t.Fatal(err)
	}
	for i, r := range rects {
		want := float64(src[i].Y) / float64(src[i].X)
		if got := float64(r.Dy()) / float64(r.Dx()); got < want*0.98 || got > want*1.02 {
			t.Errorf("slot %d aspect %.3f, want %.3f", i, got, want)
		}
	}

	if _, err := tmpl.Slots(image.Pt(640, 2000), 10, []image.Point{{1, 1}, {0, 10}, {1, 1}}); err == nil {
		t.Error("zero width source want error")
	}
}

func TestSlotsError(t *testing.T) {
	tmpl, err := LookupTemplate("grid-2x2")
	if err != nil {
		t.Fatal(err)
	}

	_, err = tmpl.Slots(image.Pt(1200, 1200), 10, sizes(3, image.Pt(1, 1)))
	var countErr *TemplateImageCountError
	if !errors.As(err, &countErr) {
		t.Fatalf("want TemplateImageCountError, got %v", err)
	}
	if countErr.Count != 3 || countErr.Min != 4 || countErr.Max != 4 {
		t.Fatalf("wrong count error: %+v", countErr)
	}

	for i, testcase := range []struct {
		canvas  image.Point
		spacing int
	}{
		{image.Pt(0, 100), 0},
		{image.Pt(100, -5), 0},
		{image.Pt(100, 100), 60},
	} {
		_, err := tmpl.Slots(testcase.canvas, testcase.spacing, sizes(4, image.Pt(1, 1)))
		var dimErr *InvalidDimensionError
		if !errors.As(err, &dimErr) {
			t.Errorf("#%d want InvalidDimensionError, got %v", i, err)
		}
	}

	custom := Template{ID: "custom", MinImages: 1, MaxImages: 2, Kind: FixedLayout, Rects: []Frac{{0, 0, 1, 1}}}
	if _, err := custom.Slots(image.Pt(100, 100), 0, sizes(1, image.Pt(1, 1))); err != nil {
		t.Fatal(err)
	}
	_, err = custom.Slots(image.Pt(100, 100), 0, sizes(2, image.Pt(1, 1)))
	if !errors.As(err, &countErr) || countErr.Count != 2 || countErr.Max != 1 {
		t.Fatalf("custom template want TemplateImageCountError, got %v", err)
	}
}

func TestTemplates(t *testing.T) {
	ids := []string{
		"grid-2x2", "grid-3x3", "grid-4x4", "grid-2x3", "vertical", "horizontal",
		"masonry-2", "masonry-3", "big-small", "triptych", "center-focus", "frame", "freeform",
	}
	ts := Templates()
	if len(ts) != len(ids) {
		t.Fatalf("want %d templates, got %d", len(ids), len(ts))
	}
	for i, tmpl := range ts {
		if tmpl.ID != ids[i] {
			t.Errorf("#%d want %s, got %s", i, ids[i], tmpl.ID)
		}
		if tmpl.MinImages < 1 || tmpl.MinImages > tmpl.MaxImages {
			t.Errorf("%s has bad image range %d..%d", tmpl.ID, tmpl.MinImages, tmpl.MaxImages)
		}
		if tmpl.Kind == FixedLayout && len(tmpl.Rects) != tmpl.MaxImages {
			t.Errorf("%s has %d slots for %d images", tmpl.ID, len(tmpl.Rects), tmpl.MaxImages)
		}
	}

	ts[8].Rects[0].W = 0
	if tmpl, _ := LookupTemplate("big-small"); tmpl.Rects[0].W == 0 {
		t.Fatal("Templates shares slots with the catalog")
	}

	if _, err := LookupTemplate("unknown"); !errors.Is(err, ErrUnknownTemplate) {
		t.Fatalf("want ErrUnknownTemplate, got %v", err)
	}
}
