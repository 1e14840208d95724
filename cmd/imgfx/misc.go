package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/color"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/sunshineplan/imgfx"
	"github.com/sunshineplan/imgfx/history"
	"github.com/sunshineplan/progressbar"
	"github.com/sunshineplan/tiff"
	"github.com/sunshineplan/utils/log"
	"golang.org/x/sync/errgroup"
)

var (
	supported = regexp.MustCompile(`(?i)\.(jpe?g|png|gif|tiff?|bmp|webp)$`)
	tiffImage = regexp.MustCompile(`(?i)\.tiff?$`)
)

var errSkip = errors.New("skip")

func open(file string) (image.Image, error) {
	img, err := imgfx.Open(file, imgfx.AutoOrientation(*autoOrientation))
	if err != nil && tiffImage.MatchString(file) {
		f, err := os.Open(file)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return tiff.Decode(f)
	}
	return img, err
}

func loadImages(root string) (imgs []string) {
	var mu sync.Mutex
	var message string
	var width int
	done := make(chan struct{})
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	go func() {
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				mu.Lock()
				if !*quiet {
					fmt.Fprintf(os.Stdout, "\r%s\r%s", strings.Repeat(" ", width), message)
				}
				width = runewidth.StringWidth(message)
				mu.Unlock()
			}
		}
	}()
	var dir string
	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Warn("Failed to walk", "path", path, "error", err)
			return nil
		}
		if !d.IsDir() && supported.MatchString(d.Name()) {
			imgs = append(imgs, path)
		}
		if d.IsDir() {
			dir = path
		}
		mu.Lock()
		message = fmt.Sprintf("Found images: %d, Scanning directory %s", len(imgs), dir)
		mu.Unlock()
		return nil
	})
	close(done)
	mu.Lock()
	defer mu.Unlock()
	if !*quiet {
		fmt.Fprintf(os.Stdout, "\r%s\r", strings.Repeat(" ", width))
	}
	return
}

// sources returns path itself when it is a file, or every image below it.
func sources(path string) (root string, imgs []string, err error) {
	info, err := os.Stat(path)
	if err != nil {
		return
	}
	switch mode := info.Mode(); {
	case mode.IsDir():
		return path, loadImages(path), nil
	case mode.IsRegular():
		return filepath.Dir(path), []string{path}, nil
	}
	return "", nil, fmt.Errorf("unknown source: %s", path)
}

func outputPath(root, image string, format imgfx.Format) (string, error) {
	rel, err := filepath.Rel(root, image)
	if err != nil {
		return "", err
	}
	output := filepath.Join(*dst, rel)
	return output[:len(output)-len(filepath.Ext(output))] + "." + format.String(), nil
}

func save(option *imgfx.FormatOption, img image.Image, output string, force bool) (err error) {
	if _, err = os.Stat(output); err == nil {
		if !force {
			return errSkip
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		log.Error("Failed to get FileInfo", "name", output, "error", err)
		return
	}
	path := filepath.Dir(output)
	if err = os.MkdirAll(path, 0755); err != nil {
		log.Error("Failed to create directory", "path", path, "error", err)
		return
	}
	f, err := os.CreateTemp(path, "*.tmp")
	if err != nil {
		log.Error("Failed to create temporary file", "path", path, "error", err)
		return
	}
	if err = option.Encode(f, img); err != nil {
		f.Close()
		os.Remove(f.Name())
		log.Error("Failed to encode image", "output", output, "error", err)
		return
	}
	f.Close()
	if err = os.Rename(f.Name(), output); err != nil {
		log.Error("Failed to move file", "from", f.Name(), "to", output, "error", err)
	}
	return
}

// batch runs fn on every image with at most worker images in flight.
// Each call owns its decoded image, so no buffer is shared between goroutines.
func batch(images []string, fn func(string) error) error {
	log.Info("Total images", "count", len(images))
	if len(images) == 0 {
		return nil
	}
	pb := progressbar.New(len(images))
	if !*quiet {
		pb.Start()
	}

	var count atomic.Int64
	var g errgroup.Group
	g.SetLimit(max(1, *worker))
	for _, image := range images {
		g.Go(func() error {
			defer pb.Add(1)
			switch err := fn(image); {
			case err == nil:
				if *debug {
					log.Debug("Converted", "image", image)
				}
			case errors.Is(err, errSkip):
				log.Info("Skip", "image", image)
			default:
				count.Add(1)
			}
			return nil
		})
	}
	g.Wait()
	if !*quiet {
		pb.Wait()
	}
	if failed := count.Load(); failed > 0 {
		return fmt.Errorf("%d of %d images failed", failed, len(images))
	}
	return nil
}

func parameters() map[string]any {
	params := make(map[string]any)
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "src", "dst", "force", "history", "q", "debug", "worker":
		default:
			params[f.Name] = f.Value.String()
		}
	})
	return params
}

func record(store history.Store, tool string, img image.Image) {
	if store == nil {
		return
	}
	e, err := history.NewEntry(tool, img, parameters())
	if err != nil {
		log.Warn("Failed to create history entry", "error", err)
		return
	}
	if err := store.Add(e); err != nil {
		log.Warn("Failed to add history entry", "error", err)
	}
}

func parseColor(s string) (color.Color, error) {
	if s == "" {
		return nil, nil
	}
	return imgfx.ParseHexColor(s)
}
