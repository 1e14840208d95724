package imgfx

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestDecodeWrite(t *testing.T) {
	src := testImage(40, 30)
	for _, f := range []Format{JPEG, PNG, GIF, TIFF, BMP, PDF} {
		var buf bytes.Buffer
		if err := Write(&buf, src, &FormatOption{Format: f}); err != nil {
			t.Error("Failed to write", f, err)
			continue
		}
		b := buf.Bytes()
		img, err := Decode(bytes.NewReader(b))
		if err != nil {
			t.Error("Failed to decode", f, err)
			continue
		}
		if err := Write(io.Discard, img, &FormatOption{}); err != nil {
			t.Error("Failed to write", f)
		}
		if cfg, _, err := DecodeConfig(bytes.NewReader(b)); err != nil {
			t.Error("Failed to decode", f, "config")
		} else if f != PDF && (cfg.Width != 40 || cfg.Height != 30) {
			t.Errorf("%s config: want 40x30, got %dx%d", f, cfg.Width, cfg.Height)
		}
	}

	_, err := Decode(bytes.NewBufferString("Hello"))
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Errorf("Decode string want DecodeError, got %v", err)
	}
	if _, _, err := DecodeConfig(bytes.NewBufferString("Hello")); !errors.As(err, &decodeErr) {
		t.Errorf("DecodeConfig string want DecodeError, got %v", err)
	}
}

type emptyQuantizer struct{}

func (emptyQuantizer) Quantize(p color.Palette, _ image.Image) color.Palette { return p }

type nopDrawer struct{}

func (nopDrawer) Draw(draw.Image, image.Rectangle, image.Image, image.Point) {}

func TestWriteFailure(t *testing.T) {
	// The gif encoder writes its header before rejecting an empty palette.
	option := &FormatOption{Format: GIF, EncodeOption: []EncodeOption{GIFQuantizer(emptyQuantizer{}), GIFDrawer(nopDrawer{})}}
	var direct bytes.Buffer
	if err := option.Encode(&direct, testImage(8, 8)); err == nil || direct.Len() == 0 {
		t.Fatalf("want a failed encode with partial output, got %v and %d bytes", err, direct.Len())
	}

	var buf bytes.Buffer
	if err := Write(&buf, testImage(8, 8), option); err == nil {
		t.Fatal("Write want error")
	}
	if buf.Len() != 0 {
		t.Fatalf("failed Write left %d bytes", buf.Len())
	}

	o := NewOptions()
	o.Format = *option
	if err := o.Convert(&buf, testImage(8, 8)); err == nil {
		t.Fatal("Convert want error")
	}
	if buf.Len() != 0 {
		t.Fatalf("failed Convert left %d bytes", buf.Len())
	}
}

func TestOpenSave(t *testing.T) {
	dir := t.TempDir()
	if _, err := Open("/invalid/path"); err == nil {
		t.Error("Open invalid path want error")
	}
	invalid := filepath.Join(dir, "invalid.png")
	if err := os.WriteFile(invalid, []byte("Hello"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(invalid); err == nil {
		t.Error("Open invalid image want error")
	}

	img := testImage(20, 10)
	if err := Save("/invalid/path/tmp", img, &defaultFormat); err == nil {
		t.Error("Save invalid path want error")
	}
	output := filepath.Join(dir, "tmp.jpg")
	if err := Save(output, img, &defaultFormat); err != nil {
		t.Fatal("Fail to save image", err)
	}
	saved, err := Open(output)
	if err != nil {
		t.Fatal(err)
	}
	if saved.Bounds().Size() != image.Pt(20, 10) {
		t.Fatalf("want 20x10, got %v", saved.Bounds().Size())
	}

	failed := filepath.Join(dir, "failed")
	if err := Save(failed, img, &FormatOption{Format: -1}); err == nil {
		t.Error("Save unsupported format want error")
	}
	if _, err := os.Stat(failed); !os.IsNotExist(err) {
		t.Error("failed Save left a file behind")
	}
}

func TestGray(t *testing.T) {
	sample := testImage(20, 20)

	img := ToGray(sample)
	if img.Bounds().Size() != sample.Bounds().Size() {
		t.Fatalf("bounds differ: %v and %v", img.Bounds().Size(), sample.Bounds().Size())
	}
	if _, ok := img.(*image.Gray); !ok {
		t.Fatal("img is not gray")
	}
	if ToGray(img) != img {
		t.Fatal("gray image want itself")
	}
}
