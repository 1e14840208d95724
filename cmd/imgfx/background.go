package main

import (
	"context"

	"github.com/sunshineplan/imgfx"
	"github.com/sunshineplan/imgfx/history"
	"github.com/sunshineplan/utils/log"
)

func backgroundOption() (*imgfx.BackgroundOption, error) {
	if *bgColor == "" && *bgImage == "" {
		return nil, nil
	}
	option := new(imgfx.BackgroundOption)
	if *bgImage != "" {
		img, err := open(*bgImage)
		if err != nil {
			return nil, err
		}
		option.SetImage(img)
	}
	c, err := parseColor(*bgColor)
	if err != nil {
		return nil, err
	}
	return option.SetColor(c), nil
}

func runBackground(store history.Store, opts []imgfx.EncodeOption) error {
	option, err := backgroundOption()
	if err != nil {
		return err
	}
	if option == nil && format != imgfx.PNG && format != imgfx.GIF && format != imgfx.TIFF {
		log.Warn("Output format has no transparency", "format", format)
	}
	root, images, err := sources(*src)
	if err != nil {
		return err
	}

	seg := imgfx.ColorKey{Tolerance: *tolerance}
	fo := &imgfx.FormatOption{Format: format, EncodeOption: opts}
	return batch(images, func(image string) error {
		output, err := outputPath(root, image, format)
		if err != nil {
			log.Error("Failed to get output path", "image", image, "error", err)
			return err
		}
		base, err := open(image)
		if err != nil {
			log.Error("Failed to open image", "image", image, "error", err)
			return err
		}
		img, err := imgfx.RemoveBackground(context.Background(), seg, base, *timeout)
		if err != nil {
			log.Error("Failed to remove background", "image", image, "error", err)
			return err
		}
		if option != nil {
			img = imgfx.ReplaceBackground(img, option)
		}
		if err := save(fo, img, output, *force); err != nil {
			return err
		}
		record(store, "background", img)
		return nil
	})
}
