package imgfx

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"math"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/sunshineplan/pdf"
	"github.com/sunshineplan/tiff"
	_ "golang.org/x/image/bmp"  // decode bmp format
	_ "golang.org/x/image/webp" // decode webp format
)

// Format is an image file format.
type Format int

// Image file formats.
const (
	JPEG Format = iota
	PNG
	GIF
	TIFF
	BMP
	PDF
)

var formatExts = [][]string{
	{"jpg", "jpeg"},
	{"png"},
	{"gif"},
	{"tif", "tiff"},
	{"bmp"},
	{"pdf"},
}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatExts) {
		return fmt.Sprintf("Format(%d)", f)
	}
	return formatExts[f][0]
}

// FormatFromExtension parses image format from filename extension:
// "jpg" (or "jpeg"), "png", "gif", "tif" (or "tiff"), "bmp" and "pdf" are supported.
func FormatFromExtension(ext string) (Format, error) {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	for index, exts := range formatExts {
		for _, i := range exts {
			if ext == i {
				return Format(index), nil
			}
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
}

// MarshalText implements encoding.TextMarshaler.
func (f Format) MarshalText() ([]byte, error) {
	if f < 0 || int(f) >= len(formatExts) {
		return nil, ErrUnsupportedFormat
	}
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Format) UnmarshalText(text []byte) (err error) {
	*f, err = FormatFromExtension(string(text))
	return
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case JPEG:
		return "image/jpeg"
	case PNG:
		return "image/png"
	case GIF:
		return "image/gif"
	case TIFF:
		return "image/tiff"
	case BMP:
		return "image/bmp"
	case PDF:
		return "application/pdf"
	}
	return "application/octet-stream"
}

// TIFFCompression describes the type of compression used in Options.
type TIFFCompression int

// Constants for supported TIFF compression types.
const (
	TIFFUncompressed TIFFCompression = iota
	TIFFDeflate
	TIFFLZW
)

var tiffCompressions = map[string]TIFFCompression{
	"none":    TIFFUncompressed,
	"deflate": TIFFDeflate,
	"lzw":     TIFFLZW,
}

// MarshalText implements encoding.TextMarshaler.
func (c TIFFCompression) MarshalText() ([]byte, error) {
	for k, v := range tiffCompressions {
		if v == c {
			return []byte(k), nil
		}
	}
	return nil, fmt.Errorf("unknown tiff compression type: %d", c)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *TIFFCompression) UnmarshalText(text []byte) error {
	v, ok := tiffCompressions[strings.ToLower(string(text))]
	if !ok {
		*c = -1
		return fmt.Errorf("unknown tiff compression type: %q", text)
	}
	*c = v
	return nil
}

func (c TIFFCompression) value() tiff.CompressionType {
	switch c {
	case TIFFDeflate:
		return tiff.Deflate
	case TIFFLZW:
		return tiff.LZW
	}
	return tiff.Uncompressed
}

type encodeConfig struct {
	Quality             int
	gray                bool
	gifNumColors        int
	gifQuantizer        draw.Quantizer
	gifDrawer           draw.Drawer
	pngCompressionLevel png.CompressionLevel
	tiffCompression     TIFFCompression
}

var defaultEncodeConfig = encodeConfig{
	Quality:             75,
	gifNumColors:        256,
	gifQuantizer:        nil,
	gifDrawer:           nil,
	pngCompressionLevel: png.DefaultCompression,
	tiffCompression:     TIFFLZW,
}

// EncodeOption sets an optional parameter for the Encode and Save functions.
type EncodeOption func(*encodeConfig)

// Quality returns an EncodeOption that sets the output JPEG or PDF quality.
// Quality ranges from 1 to 100 inclusive, higher is better.
func Quality(quality int) EncodeOption {
	return func(c *encodeConfig) {
		c.Quality = min(100, max(1, quality))
	}
}

// QualityRatio is like Quality but takes a ratio from 0.0 to 1.0.
func QualityRatio(ratio float64) EncodeOption {
	if math.IsNaN(ratio) {
		ratio = float64(defaultEncodeConfig.Quality) / 100
	}
	return Quality(int(math.Round(ratio * 100)))
}

// Gray returns an EncodeOption that converts the output to the gray color model.
func Gray(gray bool) EncodeOption {
	return func(c *encodeConfig) {
		c.gray = gray
	}
}

// GIFNumColors returns an EncodeOption that sets the maximum number of colors
// used in the GIF-encoded image. It ranges from 1 to 256.  Default is 256.
func GIFNumColors(numColors int) EncodeOption {
	return func(c *encodeConfig) {
		c.gifNumColors = numColors
	}
}

// GIFQuantizer returns an EncodeOption that sets the quantizer that is used to produce
// a palette of the GIF-encoded image.
func GIFQuantizer(quantizer draw.Quantizer) EncodeOption {
	return func(c *encodeConfig) {
		c.gifQuantizer = quantizer
	}
}

// GIFDrawer returns an EncodeOption that sets the drawer that is used to convert
// the source image to the desired palette of the GIF-encoded image.
func GIFDrawer(drawer draw.Drawer) EncodeOption {
	return func(c *encodeConfig) {
		c.gifDrawer = drawer
	}
}

// PNGCompressionLevel returns an EncodeOption that sets the compression level
// of the PNG-encoded image. Default is png.DefaultCompression.
func PNGCompressionLevel(level png.CompressionLevel) EncodeOption {
	return func(c *encodeConfig) {
		c.pngCompressionLevel = level
	}
}

// TIFFCompressionType returns an EncodeOption that sets the compression type
// of the TIFF-encoded image. Default is TIFFLZW.
func TIFFCompressionType(compression TIFFCompression) EncodeOption {
	return func(c *encodeConfig) {
		c.tiffCompression = compression
	}
}

// FormatOption is format option
type FormatOption struct {
	Format       Format
	EncodeOption []EncodeOption
}

// Encode writes the image img to w in the specified format.
func (f *FormatOption) Encode(w io.Writer, img image.Image) error {
	cfg := defaultEncodeConfig
	for _, option := range f.EncodeOption {
		option(&cfg)
	}
	if cfg.gray {
		img = ToGray(img)
	}

	switch f.Format {
	case JPEG:
		return imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(cfg.Quality))
	case PNG:
		return imaging.Encode(w, img, imaging.PNG, imaging.PNGCompressionLevel(cfg.pngCompressionLevel))
	case GIF:
		return imaging.Encode(
			w, img, imaging.GIF,
			imaging.GIFNumColors(cfg.gifNumColors),
			imaging.GIFQuantizer(cfg.gifQuantizer),
			imaging.GIFDrawer(cfg.gifDrawer),
		)
	case TIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: cfg.tiffCompression.value()})
	case BMP:
		return imaging.Encode(w, img, imaging.BMP)
	case PDF:
		return pdf.Encode(w, []image.Image{img}, &pdf.Options{Quality: cfg.Quality})
	}
	return ErrUnsupportedFormat
}

// ToGray converts img to the gray color model.
func ToGray(img image.Image) image.Image {
	if img, ok := img.(*image.Gray); ok {
		return img
	}
	gray := image.NewGray(img.Bounds())
	draw.Draw(gray, gray.Bounds(), img, img.Bounds().Min, draw.Src)
	return gray
}
