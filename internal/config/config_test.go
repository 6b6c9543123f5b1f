package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
	require.Equal(t, "default", cfg.Theme)
	require.Equal(t, Int(64), cfg.TempFontSize)
	require.Equal(t, 15*time.Second, cfg.FetchTimeout.Std())
	require.Equal(t, time.Second/30, cfg.FrameInterval())
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "config.json", `{
	"theme": "retro",
	"brightness_night": 0.4,
	"brightness_sun": 1.7,
	"brightness_moon": -2,
	"temp_color_night": [200, 40, 10],
	"temp_brightness_night": 0.5,
	"temperature_url": "http://pi.local/temp",
	"temperature_refresh": "2m",
	"weather_refresh": 90,
	"time_offset_hours": -1
}`)
	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "retro", cfg.Theme)
	require.Equal(t, 0.4, cfg.BrightnessNight)
	require.Equal(t, 1.0, cfg.BrightnessSun, "brightness is clamped to 1")
	require.Equal(t, 0.0, cfg.BrightnessMoon, "brightness is clamped to 0")
	require.Equal(t, 2*time.Minute, cfg.TemperatureRefresh.Std())
	require.Equal(t, 90*time.Second, cfg.WeatherRefresh.Std())
	require.Equal(t, Int(-1), cfg.TimeOffsetHours)
	require.Equal(t, "http://pi.local/temp", cfg.TemperatureURL)
	require.Equal(t, color.RGBA{R: 100, G: 20, B: 5, A: 0xFF}, cfg.TempColor(false))
	require.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 0xFF}, cfg.TempColor(true))
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `
theme: neon
show_temperature: false
weather_url: http://pi.local/weather
weather_refresh: 30m
drift_pixels: 3
drift_period: 1m
async_readouts: true
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "neon", cfg.Theme)
	require.False(t, cfg.ShowTemperature)
	require.True(t, cfg.AsyncReadouts)
	require.Equal(t, 30*time.Minute, cfg.WeatherRefresh.Std())
	require.Equal(t, Int(3), cfg.DriftPixels)
	require.Equal(t, time.Minute, cfg.DriftPeriod.Std())
}

func TestLoadAcceptsFractionalIntegers(t *testing.T) {
	path := writeFile(t, "config.json", `{
	"temp_color_day": [255.0, 128.0, 0.0],
	"temp_font_size": 64.0,
	"temp_padding_top": 40.9,
	"fps": 24.0
}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, []Int{255, 128, 0}, cfg.TempColorDay)
	require.Equal(t, Int(64), cfg.TempFontSize)
	require.Equal(t, Int(40), cfg.TempPaddingTop, "fractions truncate")
	require.Equal(t, time.Second/24, cfg.FrameInterval())
	require.Equal(t, color.RGBA{R: 255, G: 128, B: 0, A: 0xFF}, cfg.TempColor(true))

	path = writeFile(t, "config.yaml", "temp_font_size: 48.0\ntemp_color_night: [10.0, 20, 30.5]\n")
	cfg, err = Load(path)
	require.NoError(t, err)
	require.Equal(t, Int(48), cfg.TempFontSize)
	require.Equal(t, []Int{10, 20, 30}, cfg.TempColorNight)

	_, err = Load(writeFile(t, "config.json", `{"temp_font_size": "big"}`))
	require.ErrorContains(t, err, "expected a number")
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("IMAGECLOCK_THEME", "minimal")
	t.Setenv("IMAGECLOCK_ASYNC_READOUTS", "1")
	t.Setenv("IMAGECLOCK_FETCH_TIMEOUT", "3s")
	t.Setenv("IMAGECLOCK_LATITUDE", "69.65")
	t.Setenv("IMAGECLOCK_FPS", "not-a-number")

	path := writeFile(t, "config.json", `{"theme": "retro"}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "minimal", cfg.Theme)
	require.True(t, cfg.AsyncReadouts)
	require.Equal(t, 3*time.Second, cfg.FetchTimeout.Std())
	require.Equal(t, 69.65, cfg.Observer().Latitude)
	require.Equal(t, Int(30), cfg.FPS, "unparseable overrides are ignored")
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"bad colour", `{"temp_color_day": [255, 255]}`, "temp_color_day must have 3 components"},
		{"colour range", `{"temp_color_night": [0, 300, 0]}`, "out of range 0-255"},
		{"theme path", `{"theme": "../etc"}`, "plain directory name"},
		{"timezone", `{"timezone": "Mars/Olympus"}`, "timezone"},
		{"fps", `{"fps": 0}`, "fps 0 out of range"},
		{"duration", `{"drift_period": "soon"}`, "invalid duration"},
		{"syntax", `{"theme": `, "parse config file"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeFile(t, "config.json", tc.body))
			require.ErrorContains(t, err, tc.want)
		})
	}
}

func TestLocation(t *testing.T) {
	cfg := Default()
	require.Equal(t, "America/New_York", cfg.Location().String())
	cfg.Timezone = "nowhere"
	require.Equal(t, time.UTC, cfg.Location())
}
