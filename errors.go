package imgfx

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownTemplate is returned when a collage template id is not in the catalog.
	ErrUnknownTemplate = errors.New("unknown collage template")
	// ErrUnsupportedFormat is returned when encoding to a format that is not supported.
	ErrUnsupportedFormat = errors.New("unsupported image format")
	// ErrSegmentTimeout is returned when background segmentation does not finish in time.
	ErrSegmentTimeout = errors.New("background segmentation timed out")
)

// DecodeError reports that a source image could not be read.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return "decode image: " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ImageDecodeError reports that one of several collage sources could not be decoded.
type ImageDecodeError struct {
	Index int
	Err   error
}

func (e *ImageDecodeError) Error() string {
	return fmt.Sprintf("decode collage image #%d: %v", e.Index, e.Err)
}

func (e *ImageDecodeError) Unwrap() error { return e.Err }

// TemplateImageCountError reports an image count outside the range accepted by a template.
type TemplateImageCountError struct {
	Template string
	Count    int
	Min, Max int
}

func (e *TemplateImageCountError) Error() string {
	if e.Min == e.Max {
		return fmt.Sprintf("template %q needs exactly %d images, got %d", e.Template, e.Min, e.Count)
	}
	return fmt.Sprintf("template %q needs %d to %d images, got %d", e.Template, e.Min, e.Max, e.Count)
}

// InvalidDimensionError reports a width or height that is non-finite or non-positive.
type InvalidDimensionError struct {
	Width, Height float64
}

func (e *InvalidDimensionError) Error() string {
	return fmt.Sprintf("invalid dimensions %gx%g", e.Width, e.Height)
}
