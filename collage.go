package imgfx

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	xdraw "golang.org/x/image/draw"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

var errNilImage = errors.New("image is nil")

// CollageOption is collage option
type CollageOption struct {
	Template    string `validate:"required"`
	Width       int    `validate:"gt=0" default:"1200"`
	Height      int    `validate:"gt=0" default:"1200"`
	Spacing     int    `validate:"gte=0"`
	BorderWidth int    `validate:"gte=0"`
	// Background fills the canvas. Nil means white.
	Background color.Color
	// BorderColor fills every slot before its image is drawn. Nil means white.
	BorderColor color.Color
}

// NewCollageOption creates a collage option for template with a 1200x1200 canvas.
func NewCollageOption(template string) *CollageOption {
	opt := &CollageOption{Template: template}
	if err := defaults.Set(opt); err != nil {
		panic(err)
	}
	return opt
}

// SetCanvas sets the output size.
func (o *CollageOption) SetCanvas(width, height int) *CollageOption {
	o.Width, o.Height = width, height
	return o
}

// SetSpacing sets the gap between slots and around the canvas edge.
func (o *CollageOption) SetSpacing(spacing int) *CollageOption {
	o.Spacing = spacing
	return o
}

// SetBorder sets the border drawn inside every slot.
func (o *CollageOption) SetBorder(width int, c color.Color) *CollageOption {
	o.BorderWidth, o.BorderColor = width, c
	return o
}

// SetBackground sets the canvas fill color.
func (o *CollageOption) SetBackground(c color.Color) *CollageOption {
	o.Background = c
	return o
}

func (o *CollageOption) validate() error {
	if err := validate.Struct(o); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) {
			for _, e := range errs {
				switch e.Field() {
				case "Template":
					return ErrUnknownTemplate
				case "Width", "Height":
					return &InvalidDimensionError{float64(o.Width), float64(o.Height)}
				}
			}
		}
		return fmt.Errorf("invalid collage option: %w", err)
	}
	return nil
}

// Collage draws images into the slots of the option's template.
// Every image is scaled to fill its slot, inset by the border width.
// No image is returned when any image is missing or the count does not fit the template.
func Collage(images []image.Image, option *CollageOption) (*image.NRGBA, error) {
	if err := option.validate(); err != nil {
		return nil, err
	}
	t, err := LookupTemplate(option.Template)
	if err != nil {
		return nil, err
	}

	sizes := make([]image.Point, len(images))
	for i, img := range images {
		if img == nil {
			return nil, &ImageDecodeError{Index: i, Err: errNilImage}
		}
		sizes[i] = img.Bounds().Size()
	}
	slots, err := t.Slots(image.Pt(option.Width, option.Height), option.Spacing, sizes)
	if err != nil {
		return nil, err
	}

	dst := image.NewNRGBA(image.Rect(0, 0, option.Width, option.Height))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(colorOr(option.Background, color.White)), image.Point{}, draw.Src)
	for i, slot := range slots {
		r := slot
		if option.BorderWidth > 0 {
			draw.Draw(dst, slot, image.NewUniform(colorOr(option.BorderColor, color.White)), image.Point{}, draw.Src)
			r = slot.Inset(option.BorderWidth)
		}
		if r.Empty() {
			continue
		}
		xdraw.CatmullRom.Scale(dst, r, images[i], images[i].Bounds(), xdraw.Over, nil)
	}
	return dst, nil
}

// DecodeAll decodes every reader in order. It stops at the first failure
// and reports its position with an *ImageDecodeError.
func DecodeAll(rs ...io.Reader) ([]image.Image, error) {
	imgs := make([]image.Image, 0, len(rs))
	for i, r := range rs {
		img, err := Decode(r)
		if err != nil {
			return nil, &ImageDecodeError{Index: i, Err: err}
		}
		imgs = append(imgs, img)
	}
	return imgs, nil
}

// OpenAll loads every file in order. It stops at the first failure
// and reports its position with an *ImageDecodeError.
func OpenAll(files ...string) ([]image.Image, error) {
	imgs := make([]image.Image, 0, len(files))
	for i, file := range files {
		img, err := Open(file)
		if err != nil {
			return nil, &ImageDecodeError{Index: i, Err: err}
		}
		imgs = append(imgs, img)
	}
	return imgs, nil
}

func colorOr(c, fallback color.Color) color.Color {
	if c == nil {
		return fallback
	}
	return c
}
