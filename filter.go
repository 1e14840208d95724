package imgfx

import (
	"image"
	"math"

	"github.com/creasty/defaults"
	"github.com/disintegration/imaging"
)

// FilterType identifies one per-pixel color transform.
type FilterType int

// Filters in the order they are applied.
const (
	FilterGrayscale FilterType = iota
	FilterSepia
	FilterBrightness
	FilterContrast
	FilterSaturate
	FilterHueRotate
	FilterInvert
	FilterVintage
	FilterWarm
	FilterCool
	FilterPosterize
)

// FilterOrder is the order in which active filters are applied to each pixel.
// Changing it changes the output of combined filters.
var FilterOrder = [...]FilterType{
	FilterGrayscale,
	FilterSepia,
	FilterBrightness,
	FilterContrast,
	FilterSaturate,
	FilterHueRotate,
	FilterInvert,
	FilterVintage,
	FilterWarm,
	FilterCool,
	FilterPosterize,
}

var filterNames = [...]string{
	FilterGrayscale:  "grayscale",
	FilterSepia:      "sepia",
	FilterBrightness: "brightness",
	FilterContrast:   "contrast",
	FilterSaturate:   "saturate",
	FilterHueRotate:  "hue",
	FilterInvert:     "invert",
	FilterVintage:    "vintage",
	FilterWarm:       "warm",
	FilterCool:       "cool",
	FilterPosterize:  "posterize",
}

func (f FilterType) String() string {
	if f < 0 || int(f) >= len(filterNames) {
		return "unknown"
	}
	return filterNames[f]
}

// FilterSettings holds the intensity of every filter.
// The zero value of a FilterSettings is not the identity; use NewFilterSettings.
type FilterSettings struct {
	Grayscale  float64 `json:"grayscale"`
	Sepia      float64 `json:"sepia"`
	Brightness float64 `json:"brightness" default:"100"`
	Contrast   float64 `json:"contrast" default:"100"`
	Saturate   float64 `json:"saturate" default:"100"`
	HueRotate  float64 `json:"hue"`
	Invert     float64 `json:"invert"`
	Vintage    float64 `json:"vintage"`
	Warm       float64 `json:"warm"`
	Cool       float64 `json:"cool"`
	Posterize  float64 `json:"posterize"`
	Blur       float64 `json:"blur"`
}

// NewFilterSettings returns settings that leave an image unchanged.
func NewFilterSettings() FilterSettings {
	var s FilterSettings
	if err := defaults.Set(&s); err != nil {
		panic(err)
	}
	return s
}

type filterRange struct {
	min, max, identity float64
}

var filterRanges = [...]filterRange{
	FilterGrayscale:  {0, 200, 0},
	FilterSepia:      {0, 200, 0},
	FilterBrightness: {0, 200, 100},
	FilterContrast:   {0, 200, 100},
	FilterSaturate:   {0, 200, 100},
	FilterHueRotate:  {-180, 180, 0},
	FilterInvert:     {0, 200, 0},
	FilterVintage:    {0, 200, 0},
	FilterWarm:       {0, 200, 0},
	FilterCool:       {0, 200, 0},
	FilterPosterize:  {0, 100, 0},
}

var blurRange = filterRange{0, 100, 0}

func (r filterRange) clamp(v float64) float64 {
	if math.IsNaN(v) {
		return r.identity
	}
	return math.Max(r.min, math.Min(r.max, v))
}

func (s *FilterSettings) field(f FilterType) *float64 {
	switch f {
	case FilterGrayscale:
		return &s.Grayscale
	case FilterSepia:
		return &s.Sepia
	case FilterBrightness:
		return &s.Brightness
	case FilterContrast:
		return &s.Contrast
	case FilterSaturate:
		return &s.Saturate
	case FilterHueRotate:
		return &s.HueRotate
	case FilterInvert:
		return &s.Invert
	case FilterVintage:
		return &s.Vintage
	case FilterWarm:
		return &s.Warm
	case FilterCool:
		return &s.Cool
	case FilterPosterize:
		return &s.Posterize
	}
	panic("imgfx: unknown filter " + f.String())
}

// Value returns the intensity of filter f.
func (s FilterSettings) Value(f FilterType) float64 {
	return *s.field(f)
}

// Set sets the intensity of filter f and returns s for chaining.
func (s *FilterSettings) Set(f FilterType, v float64) *FilterSettings {
	*s.field(f) = v
	return s
}

// Clamp returns a copy of s with every field clamped into its valid range.
func (s FilterSettings) Clamp() FilterSettings {
	for _, f := range FilterOrder {
		p := s.field(f)
		*p = filterRanges[f].clamp(*p)
	}
	s.Blur = blurRange.clamp(s.Blur)
	return s
}

// Active returns the filters of s that are not at their identity value, in FilterOrder.
func (s FilterSettings) Active() (active []FilterType) {
	s = s.Clamp()
	for _, f := range FilterOrder {
		if s.Value(f) != filterRanges[f].identity {
			active = append(active, f)
		}
	}
	return
}

// IsIdentity reports whether s leaves every image unchanged.
func (s FilterSettings) IsIdentity() bool {
	s = s.Clamp()
	return len(s.Active()) == 0 && s.Blur == 0
}

type transform func(RGB) RGB

func (s FilterSettings) transforms() (fns []transform) {
	s = s.Clamp()
	for _, f := range s.Active() {
		v := s.Value(f)
		var fn transform
		switch f {
		case FilterGrayscale:
			fn = func(c RGB) RGB { return c.Grayscale(v) }
		case FilterSepia:
			fn = func(c RGB) RGB { return c.Sepia(v) }
		case FilterBrightness:
			fn = func(c RGB) RGB { return c.Brightness(v) }
		case FilterContrast:
			fn = func(c RGB) RGB { return c.Contrast(v) }
		case FilterSaturate:
			fn = func(c RGB) RGB { return c.Saturate(v) }
		case FilterHueRotate:
			fn = func(c RGB) RGB { return c.HueRotate(v) }
		case FilterInvert:
			fn = func(c RGB) RGB { return c.Invert(v) }
		case FilterVintage:
			fn = func(c RGB) RGB { return c.Vintage(v) }
		case FilterWarm:
			fn = func(c RGB) RGB { return c.Warm(v) }
		case FilterCool:
			fn = func(c RGB) RGB { return c.Cool(v) }
		case FilterPosterize:
			fn = func(c RGB) RGB { return c.Posterize(v) }
		}
		fns = append(fns, fn)
	}
	return
}

// ApplyFilters applies s to buf in place.
// Every active color transform runs in a single pass over the pixels, and blur,
// if requested, runs afterwards as a separate pass. Alpha is not modified.
// It returns buf, or a new image when blur is applied.
func ApplyFilters(buf *image.NRGBA, s FilterSettings) *image.NRGBA {
	s = s.Clamp()
	if fns := s.transforms(); len(fns) > 0 {
		b := buf.Bounds()
		parallel(b.Min.Y, b.Max.Y, func(ys <-chan int) {
			for y := range ys {
				i := buf.PixOffset(b.Min.X, y)
				row := buf.Pix[i : i+b.Dx()*4 : i+b.Dx()*4]
				for j := 0; j < len(row); j += 4 {
					c := RGB{float64(row[j]), float64(row[j+1]), float64(row[j+2])}
					for _, fn := range fns {
						c = fn(c)
					}
					row[j], row[j+1], row[j+2] = clamp(c.R), clamp(c.G), clamp(c.B)
				}
			}
		})
	}
	if s.Blur > 0 {
		return blur(buf, s.Blur)
	}
	return buf
}

// Filter returns a filtered copy of img.
func Filter(img image.Image, s FilterSettings) *image.NRGBA {
	return ApplyFilters(imaging.Clone(img), s)
}

// blur applies a Gaussian blur with sigma = v/10.
func blur(img *image.NRGBA, v float64) *image.NRGBA {
	return imaging.Blur(img, v/10)
}
