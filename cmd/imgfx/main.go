package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sunshineplan/imgfx"
	"github.com/sunshineplan/imgfx/history"
	"github.com/sunshineplan/utils/log"
	"github.com/vharitonsky/iniflags"
)

var (
	mode            = flag.String("mode", "filter", "")
	src             = flag.String("src", "", "")
	dst             = flag.String("dst", "output", "")
	force           = flag.Bool("force", false, "")
	format          = imgfx.JPEG
	quality         = flag.Int("quality", 75, "")
	compression     = imgfx.TIFFLZW
	gray            = flag.Bool("gray", false, "")
	autoOrientation = flag.Bool("auto-orientation", true, "")
	worker          = flag.Int("worker", 5, "")
	historyPath     = flag.String("history", "", "")
	quiet           = flag.Bool("q", false, "")
	debug           = flag.Bool("debug", false, "")

	// filter
	width      = flag.Int("width", 0, "")
	height     = flag.Int("height", 0, "")
	keepAspect = flag.Bool("keep-aspect", true, "")
	percent    = flag.Float64("percent", 0, "")
	rotate     = flag.Int("rotate", 0, "")
	flipH      = flag.Bool("flip-h", false, "")
	flipV      = flag.Bool("flip-v", false, "")
	preset     = flag.String("preset", "", "")
	blur       = flag.Float64("blur", 0, "")
	filters    = make(map[imgfx.FilterType]*float64)

	// collage
	layout      = flag.String("template", "grid-2x2", "")
	canvasW     = flag.Int("canvas-width", 1200, "")
	canvasH     = flag.Int("canvas-height", 1200, "")
	spacing     = flag.Int("spacing", 10, "")
	border      = flag.Int("border", 0, "")
	borderColor = flag.String("border-color", "#ffffff", "")
	background  = flag.String("background", "#ffffff", "")
	truncate    = flag.Bool("truncate", false, "")

	// background
	tolerance = flag.Float64("tolerance", 40, "")
	bgColor   = flag.String("bg-color", "", "")
	bgImage   = flag.String("bg-image", "", "")
	timeout   = flag.Duration("timeout", 30*time.Second, "")
)

func init() {
	flag.TextVar(&format, "format", imgfx.JPEG, "")
	flag.TextVar(&compression, "compression", imgfx.TIFFLZW, "")
	identity := imgfx.NewFilterSettings()
	for _, f := range imgfx.FilterOrder {
		filters[f] = flag.Float64(f.String(), identity.Value(f), "")
	}
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "Usage of %s:\n", os.Args[0])
	fmt.Println(`
  --mode
		filter, collage or background (default: filter)
  --src
		source file or directory
  --dst
		destination directory (default: output)
  --force
		force overwrite (default: false)
  --format
		output format (jpg, jpeg, png, gif, tif, tiff, bmp and pdf are supported, default: jpg)
  --quality
		set jpeg or pdf quality (range 1-100, default: 75)
  --compression
		set tiff compression type (none, lzw, deflate, default: lzw)
  --gray
		convert output to gray (default: false)
  --auto-orientation
		apply exif orientation when decoding (default: true)
  --worker
		number of images processed at once (default: 5)
  --history
		history file, records every output when set
  -q
		quiet mode (default: false)

Filter mode:
  --width, --height
		resize bounds, 0 means unbounded
  --keep-aspect
		keep aspect ratio and never upscale (default: true)
  --percent
		resize percent, only when both of width and height are 0
  --rotate
		clockwise rotation in degrees, multiple of 90
  --flip-h, --flip-v
		mirror horizontally or vertically
  --preset
		named filter preset, applied before the filter flags below
  --grayscale, --sepia, --invert, --vintage, --warm, --cool
		blend strength (range 0-200)
  --brightness, --contrast, --saturate
		percent (range 0-200, default: 100)
  --hue
		hue rotation in degrees (range -180-180)
  --posterize
		posterize strength (range 0-100)
  --blur
		blur radius (range 0-100)

Collage mode:
  --template
		layout template (default: grid-2x2)
  --canvas-width, --canvas-height
		output size (default: 1200x1200)
  --spacing
		gap between images (default: 10)
  --border, --border-color
		border width and color inside every slot
  --background
		canvas color (default: #ffffff)
  --truncate
		use only the first images when the source has more than the template takes (default: false)

Background mode:
  --tolerance
		color key distance from the corner color (default: 40)
  --bg-color
		replacement background color, empty keeps transparency
  --bg-image
		replacement background image
  --timeout
		segmentation timeout (default: 30s)`)
}

func main() {
	self, err := os.Executable()
	if err != nil {
		log.Error("Failed to get self path", "error", err)
		os.Exit(1)
	}

	flag.Usage = usage
	iniflags.SetConfigFile(filepath.Join(filepath.Dir(self), "config.ini"))
	iniflags.SetAllowMissingConfigFile(true)
	iniflags.Parse()

	var store history.Store
	if *historyPath != "" {
		if store, err = history.NewFileStore(*historyPath, nil); err != nil {
			log.Error("Failed to open history", "path", *historyPath, "error", err)
			os.Exit(1)
		}
	}

	opts := []imgfx.EncodeOption{
		imgfx.Quality(*quality),
		imgfx.TIFFCompressionType(compression),
		imgfx.Gray(*gray),
	}

	switch *mode {
	case "filter":
		err = runFilter(store, opts)
	case "collage":
		err = runCollage(store, opts)
	case "background":
		err = runBackground(store, opts)
	default:
		err = fmt.Errorf("unknown mode: %q", *mode)
	}
	if err != nil {
		log.Error("Failed", "mode", *mode, "error", err)
		os.Exit(1)
	}
	log.Info("Done")
}
