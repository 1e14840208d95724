package main

import (
	"flag"
	"fmt"

	"github.com/sunshineplan/imgfx"
	"github.com/sunshineplan/imgfx/history"
	"github.com/sunshineplan/utils/log"
)

func filterSettings() (imgfx.FilterSettings, error) {
	s := imgfx.NewFilterSettings()
	if *preset != "" {
		var ok bool
		if s, ok = imgfx.Preset(*preset); !ok {
			return s, fmt.Errorf("unknown preset: %q, available: %v", *preset, imgfx.Presets())
		}
	}
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	for _, f := range imgfx.FilterOrder {
		if set[f.String()] {
			s.Set(f, *filters[f])
		}
	}
	if set["blur"] {
		s.Blur = *blur
	}
	return s.Clamp(), nil
}

func filterOptions(opts []imgfx.EncodeOption) (*imgfx.Options, error) {
	task := imgfx.NewOptions()
	if err := task.SetFormat(format.String(), opts...); err != nil {
		return nil, err
	}
	switch {
	case *width != 0 || *height != 0:
		task.SetResize(*width, *height, *keepAspect)
	case *percent != 0:
		task.SetResizePercent(*percent)
	}
	o := imgfx.Orientation{Rotation: *rotate, FlipH: *flipH, FlipV: *flipV}
	if !o.IsIdentity() {
		task.SetOrientation(o)
	}
	s, err := filterSettings()
	if err != nil {
		return nil, err
	}
	if !s.IsIdentity() {
		task.SetFilter(s)
	}
	return &task, nil
}

func runFilter(store history.Store, opts []imgfx.EncodeOption) error {
	task, err := filterOptions(opts)
	if err != nil {
		return err
	}
	root, images, err := sources(*src)
	if err != nil {
		return err
	}

	return batch(images, func(image string) error {
		output, err := outputPath(root, image, task.Format.Format)
		if err != nil {
			log.Error("Failed to get output path", "image", image, "error", err)
			return err
		}
		base, err := open(image)
		if err != nil {
			log.Error("Failed to open image", "image", image, "error", err)
			return err
		}
		img, err := task.Process(base)
		if err != nil {
			log.Error("Failed to process image", "image", image, "error", err)
			return err
		}
		if err := save(&task.Format, img, output, *force); err != nil {
			return err
		}
		record(store, "filter", img)
		return nil
	})
}
