package imgfx

import "slices"

// LayoutKind defines how a template places its slots.
type LayoutKind int

const (
	// GridLayout places Cols x Rows equal cells.
	GridLayout LayoutKind = iota
	// VerticalLayout stacks equal rows on top of each other.
	VerticalLayout
	// HorizontalLayout places equal columns side by side.
	HorizontalLayout
	// MasonryLayout fills Cols columns keeping every image's aspect ratio.
	MasonryLayout
	// FixedLayout uses hand-authored canvas-fraction rectangles.
	FixedLayout
	// FreeformLayout places images on a ceil(sqrt(n)) column grid.
	FreeformLayout
)

// Frac is a rectangle in canvas-fraction units, each field in [0, 1].
type Frac struct {
	X, Y, W, H float64
}

// Template is a named collage layout.
type Template struct {
	ID        string
	Name      string
	MinImages int
	MaxImages int
	Kind      LayoutKind
	Cols      int
	Rows      int
	// Rects holds the rectangles of a FixedLayout, addressed by image index.
	Rects []Frac
}

// Accepts reports whether t can lay out n images.
func (t Template) Accepts(n int) bool {
	return n >= t.MinImages && n <= t.MaxImages
}

var templates = []Template{
	{ID: "grid-2x2", Name: "Grid 2x2", MinImages: 4, MaxImages: 4, Kind: GridLayout, Cols: 2, Rows: 2},
	{ID: "grid-3x3", Name: "Grid 3x3", MinImages: 9, MaxImages: 9, Kind: GridLayout, Cols: 3, Rows: 3},
	{ID: "grid-4x4", Name: "Grid 4x4", MinImages: 16, MaxImages: 16, Kind: GridLayout, Cols: 4, Rows: 4},
	{ID: "grid-2x3", Name: "Grid 2x3", MinImages: 6, MaxImages: 6, Kind: GridLayout, Cols: 2, Rows: 3},
	{ID: "vertical", Name: "Vertical Stack", MinImages: 2, MaxImages: 6, Kind: VerticalLayout},
	{ID: "horizontal", Name: "Horizontal Stack", MinImages: 2, MaxImages: 6, Kind: HorizontalLayout},
	{ID: "masonry-2", Name: "Masonry 2 Columns", MinImages: 2, MaxImages: 12, Kind: MasonryLayout, Cols: 2},
	{ID: "masonry-3", Name: "Masonry 3 Columns", MinImages: 3, MaxImages: 18, Kind: MasonryLayout, Cols: 3},
	{ID: "big-small", Name: "Big & Small", MinImages: 3, MaxImages: 3, Kind: FixedLayout, Rects: []Frac{
		{0, 0, 2.0 / 3, 1},
		{2.0 / 3, 0, 1.0 / 3, 0.5},
		{2.0 / 3, 0.5, 1.0 / 3, 0.5},
	}},
	{ID: "triptych", Name: "Triptych", MinImages: 3, MaxImages: 3, Kind: FixedLayout, Rects: []Frac{
		{0, 0, 0.25, 1},
		{0.25, 0, 0.5, 1},
		{0.75, 0, 0.25, 1},
	}},
	{ID: "center-focus", Name: "Center Focus", MinImages: 5, MaxImages: 5, Kind: FixedLayout, Rects: []Frac{
		{0.25, 0.25, 0.5, 0.5},
		{0, 0, 0.25, 0.25},
		{0.75, 0, 0.25, 0.25},
		{0, 0.75, 0.25, 0.25},
		{0.75, 0.75, 0.25, 0.25},
	}},
	{ID: "frame", Name: "Frame", MinImages: 5, MaxImages: 5, Kind: FixedLayout, Rects: []Frac{
		{0.2, 0.2, 0.6, 0.6},
		{0, 0, 1, 0.2},
		{0.8, 0.2, 0.2, 0.6},
		{0, 0.8, 1, 0.2},
		{0, 0.2, 0.2, 0.6},
	}},
	{ID: "freeform", Name: "Freeform", MinImages: 1, MaxImages: 25, Kind: FreeformLayout},
}

// Templates returns the template catalog in display order.
func Templates() []Template {
	ts := make([]Template, len(templates))
	for i, t := range templates {
		ts[i] = t.clone()
	}
	return ts
}

func (t Template) clone() Template {
	t.Rects = slices.Clone(t.Rects)
	return t
}

// LookupTemplate returns the template with the given id.
func LookupTemplate(id string) (Template, error) {
	i := slices.IndexFunc(templates, func(t Template) bool { return t.ID == id })
	if i < 0 {
		return Template{}, ErrUnknownTemplate
	}
	return templates[i].clone(), nil
}
