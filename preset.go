package imgfx

import "slices"

var presets = map[string]func(*FilterSettings){
	"none":      func(*FilterSettings) {},
	"grayscale": func(s *FilterSettings) { s.Grayscale = 100 },
	"sepia":     func(s *FilterSettings) { s.Sepia = 100 },
	"vintage":   func(s *FilterSettings) { s.Vintage = 80; s.Contrast = 90; s.Saturate = 80 },
	"warm":      func(s *FilterSettings) { s.Warm = 60; s.Saturate = 110 },
	"cool":      func(s *FilterSettings) { s.Cool = 60; s.Brightness = 105 },
	"noir":      func(s *FilterSettings) { s.Grayscale = 100; s.Contrast = 140; s.Brightness = 90 },
	"dramatic":  func(s *FilterSettings) { s.Contrast = 150; s.Saturate = 130; s.Brightness = 95 },
	"faded":     func(s *FilterSettings) { s.Contrast = 80; s.Saturate = 70; s.Brightness = 110 },
	"invert":    func(s *FilterSettings) { s.Invert = 100 },
}

// Preset returns the filter settings registered under name.
func Preset(name string) (FilterSettings, bool) {
	fn, ok := presets[name]
	if !ok {
		return FilterSettings{}, false
	}
	s := NewFilterSettings()
	fn(&s)
	return s, true
}

// Presets returns the sorted names of all presets.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
