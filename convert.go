package imgfx

import (
	"bytes"
	"image"
	"io"
	"os"

	"github.com/disintegration/imaging"
)

type decodeConfig struct {
	autoOrientation bool
}

var defaultDecodeConfig = decodeConfig{
	autoOrientation: true,
}

// DecodeOption sets an optional parameter for the Decode and Open functions.
type DecodeOption func(*decodeConfig)

// AutoOrientation returns a DecodeOption that sets the auto-orientation mode.
// If auto-orientation is enabled, the image will be transformed after decoding
// according to the EXIF orientation tag (if present). By default it's enabled.
func AutoOrientation(enabled bool) DecodeOption {
	return func(c *decodeConfig) {
		c.autoOrientation = enabled
	}
}

// Decode reads an image from r.
// Any failure is reported as a *DecodeError.
func Decode(r io.Reader, opts ...DecodeOption) (image.Image, error) {
	cfg := defaultDecodeConfig
	for _, option := range opts {
		option(&cfg)
	}

	img, err := imaging.Decode(r, imaging.AutoOrientation(cfg.autoOrientation))
	if err != nil {
		return nil, &DecodeError{err}
	}
	if b := img.Bounds(); b.Empty() {
		return nil, &DecodeError{&InvalidDimensionError{float64(b.Dx()), float64(b.Dy())}}
	}
	return img, nil
}

// DecodeConfig decodes the color model and dimensions of an image that has been encoded in a
// registered format. The string returned is the format name used during format registration.
func DecodeConfig(r io.Reader) (image.Config, string, error) {
	cfg, format, err := image.DecodeConfig(r)
	if err != nil {
		return image.Config{}, "", &DecodeError{err}
	}
	return cfg, format, nil
}

// Open loads an image from file.
func Open(file string, opts ...DecodeOption) (image.Image, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Decode(f, opts...)
}

// Write image according format option.
// Nothing is written to w when encoding fails.
func Write(w io.Writer, base image.Image, option *FormatOption) error {
	var buf bytes.Buffer
	if err := option.Encode(&buf, base); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}

// Save saves image according format option.
// The file is removed again when encoding fails.
func Save(output string, base image.Image, option *FormatOption) error {
	f, err := os.Create(output)
	if err != nil {
		return err
	}

	if err := option.Encode(f, base); err != nil {
		f.Close()
		os.Remove(output)
		return err
	}
	return f.Close()
}
