package imgfx

import (
	"image"
	"io"
	"path/filepath"
	"reflect"

	"github.com/disintegration/imaging"
)

var defaultFormat = FormatOption{Format: JPEG}

// Options represents options that can be used to configure a image operation.
// Stages run in a fixed order: resize, orientation, filters, encode.
type Options struct {
	Resize      *ResizeOption
	Orientation *Orientation
	Filter      *FilterSettings
	Format      FormatOption
}

// NewOptions creates a new option with default setting.
func NewOptions() Options {
	return Options{Format: defaultFormat}
}

// SetResize sets the value for the Resize field.
func (opts *Options) SetResize(maxWidth, maxHeight int, keepAspect bool) *Options {
	opts.Resize = &ResizeOption{MaxWidth: maxWidth, MaxHeight: maxHeight, KeepAspect: keepAspect}
	return opts
}

// SetResizePercent sets the Resize field to scale by percent.
func (opts *Options) SetResizePercent(percent float64) *Options {
	opts.Resize = &ResizeOption{Percent: percent}
	return opts
}

// SetOrientation sets the value for the Orientation field.
func (opts *Options) SetOrientation(o Orientation) *Options {
	opts.Orientation = &o
	return opts
}

// SetFilter sets the value for the Filter field.
func (opts *Options) SetFilter(s FilterSettings) *Options {
	opts.Filter = &s
	return opts
}

// SetFormat sets the value for the Format field.
func (opts *Options) SetFormat(f string, options ...EncodeOption) (err error) {
	format, err := FormatFromExtension(f)
	if err != nil {
		return
	}
	opts.Format = FormatOption{format, options}
	return
}

// Process runs every pixel stage on base and returns the result.
// base is never modified.
func (opts *Options) Process(base image.Image) (img *image.NRGBA, err error) {
	if opts.Resize != nil {
		if img, err = Resize(base, opts.Resize); err != nil {
			return
		}
	} else {
		img = imaging.Clone(base)
	}
	if opts.Orientation != nil && !opts.Orientation.IsIdentity() {
		img = opts.Orientation.Apply(img)
	}
	if opts.Filter != nil {
		img = ApplyFilters(img, *opts.Filter)
	}
	return
}

// Convert image according options opts.
func (opts *Options) Convert(w io.Writer, base image.Image) error {
	img, err := opts.Process(base)
	if err != nil {
		return err
	}

	if reflect.DeepEqual(opts.Format, FormatOption{}) {
		opts.Format = defaultFormat
	}

	return Write(w, img, &opts.Format)
}

// ConvertExt convert filename's ext according image format.
func (opts *Options) ConvertExt(filename string) string {
	return filename[0:len(filename)-len(filepath.Ext(filename))] + "." + opts.Format.Format.String()
}
