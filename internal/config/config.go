// Package config loads the clock configuration from config.json (or YAML) and
// IMAGECLOCK_* environment overrides.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"gopkg.in/yaml.v3"

	"github.com/rook-computer/imageclock/internal/astro"
)

const (
	DefaultPath  = "config.json"
	DefaultTheme = "default"
)

// Config holds every setting of the clock. Keys use the flat snake_case names
// of config.json.
type Config struct {
	Theme string `yaml:"theme" json:"theme"`

	BrightnessDay   float64 `yaml:"brightness_day" json:"brightness_day"`
	BrightnessNight float64 `yaml:"brightness_night" json:"brightness_night"`
	BrightnessSun   float64 `yaml:"brightness_sun" json:"brightness_sun"`
	BrightnessMoon  float64 `yaml:"brightness_moon" json:"brightness_moon"`

	WeatherBrightnessDay   float64 `yaml:"weather_brightness_day" json:"weather_brightness_day"`
	WeatherBrightnessNight float64 `yaml:"weather_brightness_night" json:"weather_brightness_night"`

	ShowTemperature     bool    `yaml:"show_temperature" json:"show_temperature"`
	TempBrightnessDay   float64 `yaml:"temp_brightness_day" json:"temp_brightness_day"`
	TempBrightnessNight float64 `yaml:"temp_brightness_night" json:"temp_brightness_night"`
	TempColorDay        []Int   `yaml:"temp_color_day" json:"temp_color_day"`
	TempColorNight      []Int   `yaml:"temp_color_night" json:"temp_color_night"`
	TempFontSize        Int     `yaml:"temp_font_size" json:"temp_font_size"`
	TempPaddingTop      Int     `yaml:"temp_padding_top" json:"temp_padding_top"`
	TempFontPath        string  `yaml:"temp_font_path" json:"temp_font_path"`

	TemperatureURL     string   `yaml:"temperature_url" json:"temperature_url"`
	WeatherURL         string   `yaml:"weather_url" json:"weather_url"`
	TemperatureRefresh Duration `yaml:"temperature_refresh" json:"temperature_refresh"`
	WeatherRefresh     Duration `yaml:"weather_refresh" json:"weather_refresh"`
	FetchTimeout       Duration `yaml:"fetch_timeout" json:"fetch_timeout"`
	AsyncReadouts      bool     `yaml:"async_readouts" json:"async_readouts"`

	TimeOffsetHours Int     `yaml:"time_offset_hours" json:"time_offset_hours"`
	Latitude        float64 `yaml:"latitude" json:"latitude"`
	Longitude       float64 `yaml:"longitude" json:"longitude"`
	Timezone        string  `yaml:"timezone" json:"timezone"`

	DriftPixels Int      `yaml:"drift_pixels" json:"drift_pixels"`
	DriftPeriod Duration `yaml:"drift_period" json:"drift_period"`
	FPS         Int      `yaml:"fps" json:"fps"`
}

// Default mirrors the behaviour of running without a config file.
func Default() *Config {
	return &Config{
		Theme:                  DefaultTheme,
		BrightnessDay:          1,
		BrightnessNight:        1,
		BrightnessSun:          1,
		BrightnessMoon:         1,
		WeatherBrightnessDay:   1,
		WeatherBrightnessNight: 1,
		ShowTemperature:        true,
		TempBrightnessDay:      1,
		TempBrightnessNight:    1,
		TempColorDay:           ints(255, 255, 255),
		TempColorNight:         ints(255, 255, 255),
		TempFontSize:           64,
		TempPaddingTop:         40,
		TemperatureRefresh:     Duration(10 * time.Minute),
		WeatherRefresh:         Duration(15 * time.Minute),
		FetchTimeout:           Duration(15 * time.Second),
		Latitude:               42.95,
		Longitude:              -72.04,
		Timezone:               "America/New_York",
		DriftPixels:            6,
		DriftPeriod:            Duration(5 * time.Minute),
		FPS:                    30,
	}
}

// Load reads path (a missing file yields defaults), applies environment overrides,
// then clamps and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	}
	applyEnvOverrides(cfg, os.Getenv)
	cfg.clamp()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	// yaml.v3 rejects the tab indentation common in hand-edited JSON.
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := json.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parse config file: %w", err)
		}
		return nil
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config, getenv func(string) string) {
	str := func(key string, dst *string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	float := func(key string, dst *float64) {
		if v := getenv(key); v != "" {
			if parsed, err := strconv.ParseFloat(v, 64); err == nil {
				*dst = parsed
			}
		}
	}
	integer := func(key string, dst *Int) {
		if v := getenv(key); v != "" {
			if parsed, err := strconv.Atoi(v); err == nil {
				*dst = Int(parsed)
			}
		}
	}
	boolean := func(key string, dst *bool) {
		if v := getenv(key); v != "" {
			*dst = v == "1" || strings.EqualFold(v, "true")
		}
	}
	duration := func(key string, dst *Duration) {
		if v := getenv(key); v != "" {
			if parsed, err := time.ParseDuration(v); err == nil {
				*dst = Duration(parsed)
			}
		}
	}

	str("IMAGECLOCK_THEME", &cfg.Theme)
	float("IMAGECLOCK_BRIGHTNESS_DAY", &cfg.BrightnessDay)
	float("IMAGECLOCK_BRIGHTNESS_NIGHT", &cfg.BrightnessNight)
	boolean("IMAGECLOCK_SHOW_TEMPERATURE", &cfg.ShowTemperature)
	str("IMAGECLOCK_TEMPERATURE_URL", &cfg.TemperatureURL)
	str("IMAGECLOCK_WEATHER_URL", &cfg.WeatherURL)
	duration("IMAGECLOCK_FETCH_TIMEOUT", &cfg.FetchTimeout)
	boolean("IMAGECLOCK_ASYNC_READOUTS", &cfg.AsyncReadouts)
	integer("IMAGECLOCK_TIME_OFFSET_HOURS", &cfg.TimeOffsetHours)
	float("IMAGECLOCK_LATITUDE", &cfg.Latitude)
	float("IMAGECLOCK_LONGITUDE", &cfg.Longitude)
	str("IMAGECLOCK_TIMEZONE", &cfg.Timezone)
	integer("IMAGECLOCK_FPS", &cfg.FPS)
}

func clampUnit(v float64) float64 {
	return max(0, min(1, v))
}

func (c *Config) clamp() {
	for _, f := range []*float64{
		&c.BrightnessDay, &c.BrightnessNight, &c.BrightnessSun, &c.BrightnessMoon,
		&c.WeatherBrightnessDay, &c.WeatherBrightnessNight,
		&c.TempBrightnessDay, &c.TempBrightnessNight,
	} {
		*f = clampUnit(*f)
	}
	if c.Theme == "" {
		c.Theme = DefaultTheme
	}
}

// Validate checks invariants that cannot be fixed by clamping.
func (c *Config) Validate() error {
	var errs []error
	if strings.ContainsAny(c.Theme, `/\`) || c.Theme == "." || c.Theme == ".." {
		errs = append(errs, fmt.Errorf("theme %q must be a plain directory name", c.Theme))
	}
	for name, rgb := range map[string][]Int{"temp_color_day": c.TempColorDay, "temp_color_night": c.TempColorNight} {
		if len(rgb) != 3 {
			errs = append(errs, fmt.Errorf("%s must have 3 components, got %d", name, len(rgb)))
			continue
		}
		for _, v := range rgb {
			if v < 0 || v > 255 {
				errs = append(errs, fmt.Errorf("%s component %d out of range 0-255", name, v))
				break
			}
		}
	}
	if c.TempFontSize <= 0 {
		errs = append(errs, errors.New("temp_font_size must be positive"))
	}
	if c.TempPaddingTop < 0 {
		errs = append(errs, errors.New("temp_padding_top must not be negative"))
	}
	if c.TemperatureRefresh <= 0 || c.WeatherRefresh <= 0 {
		errs = append(errs, errors.New("refresh periods must be positive"))
	}
	if c.FetchTimeout <= 0 {
		errs = append(errs, errors.New("fetch_timeout must be positive"))
	}
	if c.Latitude < -90 || c.Latitude > 90 {
		errs = append(errs, fmt.Errorf("latitude %.4f out of range", c.Latitude))
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		errs = append(errs, fmt.Errorf("longitude %.4f out of range", c.Longitude))
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("timezone %q: %w", c.Timezone, err))
	}
	if c.DriftPixels < 0 {
		errs = append(errs, errors.New("drift_pixels must not be negative"))
	}
	if c.DriftPeriod <= 0 {
		errs = append(errs, errors.New("drift_period must be positive"))
	}
	if c.FPS <= 0 || c.FPS > 120 {
		errs = append(errs, fmt.Errorf("fps %d out of range 1-120", c.FPS))
	}
	return errors.Join(errs...)
}

// Location returns the configured time zone. Validate has already checked it.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Observer is the geographic position used for sunrise and sunset.
func (c *Config) Observer() astro.Location {
	return astro.Location{Latitude: c.Latitude, Longitude: c.Longitude}
}

// TempColor returns the configured temperature colour scaled by its brightness.
func (c *Config) TempColor(isDay bool) color.RGBA {
	rgb, bright := c.TempColorNight, c.TempBrightnessNight
	if isDay {
		rgb, bright = c.TempColorDay, c.TempBrightnessDay
	}
	ch := func(v Int) uint8 { return uint8(min(255, int(float64(v)*bright))) }
	return color.RGBA{R: ch(rgb[0]), G: ch(rgb[1]), B: ch(rgb[2]), A: 0xFF}
}

// FrameInterval is the ticker period for the configured frame rate.
func (c *Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.FPS)
}
