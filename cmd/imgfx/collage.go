package main

import (
	"image"
	"path/filepath"

	"github.com/sunshineplan/imgfx"
	"github.com/sunshineplan/imgfx/history"
	"github.com/sunshineplan/utils/log"
)

func collageOption() (*imgfx.CollageOption, error) {
	option := imgfx.NewCollageOption(*layout).
		SetCanvas(*canvasW, *canvasH).
		SetSpacing(*spacing)
	bg, err := parseColor(*background)
	if err != nil {
		return nil, err
	}
	bc, err := parseColor(*borderColor)
	if err != nil {
		return nil, err
	}
	return option.SetBackground(bg).SetBorder(*border, bc), nil
}

// collageFiles keeps the first MaxImages files when truncate is set.
// Otherwise a file count outside the template range is an error.
func collageFiles(t imgfx.Template, files []string, truncate bool) ([]string, error) {
	if truncate && len(files) > t.MaxImages {
		log.Warn("Too many images, using the first ones", "template", t.ID, "found", len(files), "max", t.MaxImages)
		files = files[:t.MaxImages]
	}
	if !t.Accepts(len(files)) {
		return nil, &imgfx.TemplateImageCountError{Template: t.ID, Count: len(files), Min: t.MinImages, Max: t.MaxImages}
	}
	return files, nil
}

func runCollage(store history.Store, opts []imgfx.EncodeOption) error {
	option, err := collageOption()
	if err != nil {
		return err
	}
	t, err := imgfx.LookupTemplate(option.Template)
	if err != nil {
		return err
	}
	_, files, err := sources(*src)
	if err != nil {
		return err
	}
	if files, err = collageFiles(t, files, *truncate); err != nil {
		return err
	}

	images := make([]image.Image, len(files))
	for i, file := range files {
		if images[i], err = open(file); err != nil {
			return &imgfx.ImageDecodeError{Index: i, Err: err}
		}
	}
	img, err := imgfx.Collage(images, option)
	if err != nil {
		return err
	}

	output := filepath.Join(*dst, "collage-"+t.ID+"."+format.String())
	if err := save(&imgfx.FormatOption{Format: format, EncodeOption: opts}, img, output, *force); err != nil {
		if err == errSkip {
			log.Info("Skip", "output", output)
			return nil
		}
		return err
	}
	record(store, "collage", img)
	log.Info("Collage saved", "output", output, "images", len(images))
	return nil
}
