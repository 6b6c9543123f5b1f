package app

import (
	"fmt"
	"image"
	"io/fs"
	"math/rand/v2"
	"time"

	"github.com/rook-computer/imageclock/internal/assets"
	"github.com/rook-computer/imageclock/internal/config"
	"github.com/rook-computer/imageclock/internal/drift"
	"github.com/rook-computer/imageclock/internal/readout"
	"github.com/rook-computer/imageclock/internal/render"
	"github.com/rook-computer/imageclock/internal/state"
)

// ClockDeps are the collaborators NewClock cannot derive from the config.
type ClockDeps struct {
	Images  fs.FS // root holding one directory per theme
	Fetcher readout.Fetcher
	Store   *state.Store
	Logger  Logger
	Start   time.Time
	Rand    *rand.Rand // nil picks a random seed
}

// NewClock prepares the theme and wires readouts and drift for cfg. Any missing
// asset is fatal and reported in the returned error.
func NewClock(cfg *config.Config, deps ClockDeps) (*Clock, error) {
	logger := deps.Logger
	if logger == nil {
		logger = NoopLogger{}
	}
	fetcher := deps.Fetcher
	if fetcher == nil {
		fetcher = readout.NewHTTPFetcher()
	}

	text := render.NewTextRenderer(cfg.TempFontPath, float64(cfg.TempFontSize), logger)
	textHeight := 0
	if cfg.ShowTemperature {
		textHeight = text.Height()
	}

	theme, err := assets.LoadTheme(deps.Images, cfg.Theme, assets.Options{
		Canvas:     render.CanvasSize(),
		Padding:    render.Padding,
		TextTop:    int(cfg.TempPaddingTop),
		TextHeight: textHeight,
		Brightness: assets.Brightness{
			Day:          cfg.BrightnessDay,
			Night:        cfg.BrightnessNight,
			Sun:          cfg.BrightnessSun,
			Moon:         cfg.BrightnessMoon,
			WeatherDay:   cfg.WeatherBrightnessDay,
			WeatherNight: cfg.WeatherBrightnessNight,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("load theme: %w", err)
	}
	logger.Infof("assets", "theme %s loaded: glyph %dx%d (half %d), %d weather icons, top reserved %d",
		theme.Name, theme.Strip.Full, theme.Strip.Height, theme.Strip.Half, len(theme.Weather), theme.TopReserved)

	tempOpts := readout.Options[float64]{
		Name:    "temperature",
		Initial: readout.DefaultTemperature,
		Period:  cfg.TemperatureRefresh.Std(),
		Async:   cfg.AsyncReadouts,
		Logger:  logger,
	}
	if cfg.TemperatureURL != "" {
		tempOpts.Source = readout.TemperatureSource{Fetcher: fetcher, URL: cfg.TemperatureURL, Timeout: cfg.FetchTimeout.Std()}
	}
	weatherOpts := readout.Options[string]{
		Name:   "weather",
		Period: cfg.WeatherRefresh.Std(),
		Async:  cfg.AsyncReadouts,
		Logger: logger,
		Accept: func(condition string) bool {
			_, ok := theme.Weather[condition]
			return ok
		},
	}
	if cfg.WeatherURL != "" {
		weatherOpts.Source = readout.WeatherSource{Fetcher: fetcher, URL: cfg.WeatherURL, Timeout: cfg.FetchTimeout.Std()}
	}

	start := deps.Start
	if start.IsZero() {
		start = time.Now()
	}
	canvas := render.CanvasSize()

	return &Clock{
		Theme:           theme,
		Observer:        cfg.Observer(),
		TZ:              cfg.Location(),
		DisplayOffset:   time.Duration(cfg.TimeOffsetHours) * time.Hour,
		Temperature:     readout.NewCache(tempOpts),
		Weather:         readout.NewCache(weatherOpts),
		ShowTemperature: cfg.ShowTemperature,
		TempColorDay:    cfg.TempColor(true),
		TempColorNight:  cfg.TempColor(false),
		Drift:           drift.NewScheduler(start, cfg.DriftPeriod.Std(), int(cfg.DriftPixels), deps.Rand),
		Touches:         state.NewTouches(state.TouchTTL),
		Strip:           theme.Strip,
		StripOrigin:     theme.Strip.BaseOrigin(image.Rectangle{Max: canvas}, theme.TopReserved),
		Compositor: &render.Compositor{
			Size:    canvas,
			Padding: render.Padding,
			TextTop: int(cfg.TempPaddingTop),
			Text:    text,
		},
		Text:   text,
		Store:  deps.Store,
		Logger: logger,
	}, nil
}
