package main

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"sync/atomic"
	"testing"

	"github.com/sunshineplan/imgfx"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadImages(t *testing.T) {
	*quiet = true
	dir := t.TempDir()
	for _, name := range []string{"a.jpg", "b.PNG", "c.txt", "sub/d.tif", "sub/e.webp", "sub/deep/f.Jpeg"} {
		touch(t, filepath.Join(dir, name))
	}

	want := []string{
		filepath.Join(dir, "a.jpg"),
		filepath.Join(dir, "b.PNG"),
		filepath.Join(dir, "sub/d.tif"),
		filepath.Join(dir, "sub/deep/f.Jpeg"),
		filepath.Join(dir, "sub/e.webp"),
	}
	if got := loadImages(dir); !slices.Equal(got, want) {
		t.Fatalf("want %v, got %v", want, got)
	}

	root, files, err := sources(filepath.Join(dir, "a.jpg"))
	if err != nil {
		t.Fatal(err)
	}
	if root != dir || len(files) != 1 {
		t.Fatalf("single file: got root %q and %v", root, files)
	}
	if _, _, err := sources(filepath.Join(dir, "missing")); err == nil {
		t.Fatal("missing source want error")
	}
}

func TestBatch(t *testing.T) {
	*worker = 2
	for _, q := range []bool{true, false} {
		*quiet = q
		images := []string{"a", "b", "skip", "fail", "c"}
		var calls atomic.Int64
		err := batch(images, func(image string) error {
			calls.Add(1)
			switch image {
			case "skip":
				return errSkip
			case "fail":
				return errors.New("failed")
			}
			return nil
		})
		if err == nil || err.Error() != "1 of 5 images failed" {
			t.Errorf("quiet %t: want one failure, got %v", q, err)
		}
		if calls.Load() != int64(len(images)) {
			t.Errorf("quiet %t: want %d calls, got %d", q, len(images), calls.Load())
		}
	}
	*quiet = true
	if err := batch([]string{"a"}, func(string) error { return nil }); err != nil {
		t.Fatal(err)
	}
	if err := batch(nil, func(string) error { return errors.New("unexpected call") }); err != nil {
		t.Fatal(err)
	}
}

func TestCollageFiles(t *testing.T) {
	tmpl, err := imgfx.LookupTemplate("grid-2x2")
	if err != nil {
		t.Fatal(err)
	}
	files := []string{"1", "2", "3", "4", "5"}

	var countErr *imgfx.TemplateImageCountError
	if _, err := collageFiles(tmpl, files, false); !errors.As(err, &countErr) || countErr.Count != 5 {
		t.Fatalf("want TemplateImageCountError, got %v", err)
	}
	got, err := collageFiles(tmpl, files, true)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, files[:4]) {
		t.Fatalf("want %v, got %v", files[:4], got)
	}
	if _, err := collageFiles(tmpl, files[:3], true); !errors.As(err, &countErr) || countErr.Count != 3 {
		t.Fatalf("too few images want TemplateImageCountError, got %v", err)
	}
}

func TestOutputPath(t *testing.T) {
	*dst = "out"
	got, err := outputPath("src", filepath.Join("src", "sub", "a.png"), imgfx.TIFF)
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("out", "sub", "a.tif"); got != want {
		t.Fatalf("want %s, got %s", want, got)
	}
}
