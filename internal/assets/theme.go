package assets

import (
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/rook-computer/imageclock/internal/astro"
	"github.com/rook-computer/imageclock/internal/glyph"
	"github.com/rook-computer/imageclock/internal/render/layout"
)

// Brightness holds the static multipliers baked into each image category.
type Brightness struct {
	Day          float64
	Night        float64
	Sun          float64
	Moon         float64
	WeatherDay   float64
	WeatherNight float64
}

// Options describe the screen the theme is prepared for.
type Options struct {
	Canvas     image.Point
	Padding    int
	TextTop    int // top padding of the temperature readout
	TextHeight int // line height of the temperature readout; 0 when hidden
	Brightness Brightness
}

// GlyphSet maps a glyph key to its prepared image.
type GlyphSet map[string]*image.RGBA

// WeatherIcon carries one condition prepared for day and night.
type WeatherIcon struct {
	Day   *image.RGBA
	Night *image.RGBA
}

// Theme is every prepared image of one theme. It is read-only once loaded.
type Theme struct {
	Name    string
	Sun     map[string]*image.RGBA // keyed by lower-case weekday
	Moon    map[string]*image.RGBA // keyed by moon phase name
	Weather map[string]WeatherIcon // keyed by condition name
	Day     GlyphSet
	Night   GlyphSet
	Strip   layout.Strip

	MaxIconHeight int
	TopReserved   int
}

// Weekdays are the sun icon names, one per day.
var Weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// Digits returns the glyph set for the day or night face.
func (t *Theme) Digits(isDay bool) GlyphSet {
	if isDay {
		return t.Day
	}
	return t.Night
}

// LoadTheme reads and prepares the theme stored under name in fsys.
// Every missing required image is reported, grouped per directory.
func LoadTheme(fsys fs.FS, name string, opts Options) (*Theme, error) {
	if st, err := fs.Stat(fsys, name); err != nil || !st.IsDir() {
		return nil, fmt.Errorf("theme %q not found", name)
	}

	var errs []error
	sunRaw, err := loadRequired(fsys, path.Join(name, "sun"), Weekdays)
	errs = appendErr(errs, err)
	moonRaw, err := loadRequired(fsys, path.Join(name, "moon"), astro.PhaseNames())
	errs = appendErr(errs, err)
	dayRaw, err := loadRequired(fsys, path.Join(name, "day"), glyph.Keys)
	errs = appendErr(errs, err)
	nightRaw, err := loadRequired(fsys, path.Join(name, "night"), glyph.Keys)
	errs = appendErr(errs, err)
	weatherRaw, err := loadOptional(fsys, path.Join(name, "weather"))
	errs = appendErr(errs, err)
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	b := opts.Brightness
	maxW, maxH := float64(opts.Canvas.X)/4, float64(opts.Canvas.Y)/3
	theme := &Theme{
		Name:    name,
		Sun:     make(map[string]*image.RGBA, len(sunRaw)),
		Moon:    make(map[string]*image.RGBA, len(moonRaw)),
		Weather: make(map[string]WeatherIcon, len(weatherRaw)),
	}
	for key, raw := range sunRaw {
		theme.Sun[key] = ApplyBrightness(FitIcon(raw, maxW, maxH), b.Sun)
		theme.MaxIconHeight = max(theme.MaxIconHeight, theme.Sun[key].Rect.Dy())
	}
	for key, raw := range moonRaw {
		theme.Moon[key] = ApplyBrightness(FitIcon(raw, maxW, maxH), b.Moon)
		theme.MaxIconHeight = max(theme.MaxIconHeight, theme.Moon[key].Rect.Dy())
	}
	for key, raw := range weatherRaw {
		fitted := FitIcon(raw, maxW, maxH)
		theme.Weather[key] = WeatherIcon{
			Day:   ApplyBrightness(fitted, b.WeatherDay),
			Night: ApplyBrightness(fitted, b.WeatherNight),
		}
		theme.MaxIconHeight = max(theme.MaxIconHeight, fitted.Rect.Dy())
	}

	theme.TopReserved = theme.MaxIconHeight + 2*opts.Padding
	if opts.TextHeight > 0 {
		theme.TopReserved = max(theme.TopReserved, opts.TextTop+opts.TextHeight+opts.Padding)
	}

	availW := float64(opts.Canvas.X - 2*opts.Padding)
	availH := float64(opts.Canvas.Y - theme.TopReserved - 2*opts.Padding)
	theme.Strip = ComputeGlyphMetrics(dayRaw["0"].Bounds().Size(), availW, availH)
	theme.Day = prepareGlyphs(dayRaw, theme.Strip, b.Day)
	theme.Night = prepareGlyphs(nightRaw, theme.Strip, b.Night)
	return theme, nil
}

func prepareGlyphs(raw map[string]image.Image, s layout.Strip, brightness float64) GlyphSet {
	set := make(GlyphSet, len(raw))
	for key, img := range raw {
		set[key] = ApplyBrightness(Resize(img, s.Advance(key), s.Height), brightness)
	}
	return set
}

// loadRequired decodes dir/<key>.png for every key. Missing files are collected
// into a single AssetError instead of stopping at the first one.
func loadRequired(fsys fs.FS, dir string, keys []string) (map[string]image.Image, error) {
	images := make(map[string]image.Image, len(keys))
	var missing []string
	for _, key := range keys {
		img, err := decodeFile(fsys, path.Join(dir, key+".png"))
		if errors.Is(err, fs.ErrNotExist) {
			missing = append(missing, key)
			continue
		}
		if err != nil {
			return nil, err
		}
		images[key] = img
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, &AssetError{Dir: dir, Missing: missing}
	}
	return images, nil
}

// loadOptional decodes every png in dir. A missing directory is an empty set.
func loadOptional(fsys fs.FS, dir string) (map[string]image.Image, error) {
	matches, err := fs.Glob(fsys, path.Join(dir, "*.png"))
	if err != nil {
		return nil, err
	}
	images := make(map[string]image.Image, len(matches))
	for _, file := range matches {
		img, err := decodeFile(fsys, file)
		if err != nil {
			return nil, err
		}
		images[strings.TrimSuffix(path.Base(file), ".png")] = img
	}
	return images, nil
}

func decodeFile(fsys fs.FS, name string) (image.Image, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return img, nil
}

func appendErr(errs []error, err error) []error {
	if err != nil {
		return append(errs, err)
	}
	return errs
}
