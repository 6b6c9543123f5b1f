package app

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"strings"
	"time"

	"github.com/rook-computer/imageclock/internal/assets"
	"github.com/rook-computer/imageclock/internal/astro"
	"github.com/rook-computer/imageclock/internal/drift"
	"github.com/rook-computer/imageclock/internal/input"
	"github.com/rook-computer/imageclock/internal/readout"
	"github.com/rook-computer/imageclock/internal/render"
	"github.com/rook-computer/imageclock/internal/render/layout"
	"github.com/rook-computer/imageclock/internal/state"
)

// Clock evaluates one frame at a time. It owns all per-frame mutable state and
// must only be driven from a single goroutine.
type Clock struct {
	Theme    *assets.Theme
	Observer astro.Location
	TZ       *time.Location
	// DisplayOffset shifts the time shown on the face, not the astronomy.
	DisplayOffset time.Duration

	Temperature     *readout.Cache[float64]
	Weather         *readout.Cache[string]
	ShowTemperature bool
	TempColorDay    color.RGBA
	TempColorNight  color.RGBA

	Drift       *drift.Scheduler
	Touches     *state.Touches
	Strip       layout.Strip
	StripOrigin image.Point
	Compositor  *render.Compositor
	Text        *render.TextRenderer

	Store  *state.Store
	Logger Logger
}

// Frame advances the clock to now, applies input events and returns the draw
// ops for the frame and whether a quit was requested.
func (c *Clock) Frame(ctx context.Context, now time.Time, events []input.Event) ([]render.DrawOp, bool) {
	if c.TZ != nil {
		now = now.In(c.TZ)
	}

	sky := c.sky(now)

	var temp float64
	var tempInfo state.TemperatureInfo
	if c.ShowTemperature && c.Temperature != nil {
		temp = c.Temperature.Get(ctx, now)
		st := c.Temperature.State()
		tempInfo = state.TemperatureInfo{Configured: c.Temperature.Configured(), Value: st.Value, LastFetch: st.LastFetch}
	}
	var condition string
	var weatherInfo state.WeatherInfo
	if c.Weather != nil {
		condition = c.Weather.Get(ctx, now)
		st := c.Weather.State()
		weatherInfo = state.WeatherInfo{Configured: c.Weather.Configured(), Condition: st.Value, LastFetch: st.LastFetch}
	}

	if c.Drift.Advance(now) {
		c.logger().Infof("drift", "shifted, next at %s", c.Drift.NextShift().Format(time.TimeOnly))
	}

	quit := false
	for _, ev := range events {
		switch ev.Kind {
		case input.Quit:
			quit = true
		case input.PointerDown:
			c.Touches.Add(ev.Pos, now)
		}
	}
	c.Touches.Purge(now)

	display := now.Add(c.DisplayOffset)
	in := render.FrameInput{
		Icon:          c.icon(now, sky),
		IconOffset:    c.Drift.Offset(drift.Icon),
		Weather:       c.weatherIcon(condition, sky.IsDay),
		WeatherOffset: c.Drift.Offset(drift.Weather),
		TempOffset:    c.Drift.Offset(drift.Temperature),
		Glyphs:        c.glyphs(display, sky.IsDay),
		Touches:       c.Touches.Active(),
	}
	if c.ShowTemperature {
		in.TempText = FormatTemperature(temp)
		in.TempColor = c.TempColorNight
		if sky.IsDay {
			in.TempColor = c.TempColorDay
		}
	}
	ops := c.Compositor.Compose(in)

	if c.Store != nil {
		c.Store.PublishFrame(state.FrameInfo{
			At:          now,
			Display:     display,
			Sky:         sky,
			Temperature: tempInfo,
			Weather:     weatherInfo,
			Drift:       c.driftInfo(),
			Touches:     len(in.Touches),
		})
	}
	return ops, quit
}

// FormatTemperature renders a reading the way the face shows it, e.g. "72°F".
func FormatTemperature(f float64) string {
	return fmt.Sprintf("%.0f°F", f)
}

// Wait blocks until background readout refreshes have finished.
func (c *Clock) Wait() {
	if c.Temperature != nil {
		c.Temperature.Wait()
	}
	if c.Weather != nil {
		c.Weather.Wait()
	}
}

func (c *Clock) sky(now time.Time) state.SkyInfo {
	info := state.SkyInfo{
		IsDay: c.Observer.IsDay(now),
		Moon:  astro.MoonPhase(now).String(),
	}
	if times, err := c.Observer.Sun(now); err == nil {
		info.Sunrise, info.Sunset = times.Sunrise, times.Sunset
	}
	return info
}

func (c *Clock) icon(now time.Time, sky state.SkyInfo) image.Image {
	var icon *image.RGBA
	if sky.IsDay {
		icon = c.Theme.Sun[strings.ToLower(now.Weekday().String())]
	} else {
		icon = c.Theme.Moon[sky.Moon]
	}
	if icon == nil {
		return nil
	}
	return icon
}

func (c *Clock) weatherIcon(condition string, isDay bool) image.Image {
	if condition == "" {
		return nil
	}
	icon, ok := c.Theme.Weather[condition]
	if !ok {
		return nil
	}
	img := icon.Night
	if isDay {
		img = icon.Day
	}
	if img == nil {
		return nil
	}
	return img
}

func (c *Clock) glyphs(display time.Time, isDay bool) []render.Glyph {
	set := c.Theme.Digits(isDay)
	origin := c.StripOrigin.Add(c.Drift.Offset(drift.Strip))
	placed := c.Strip.Place(layout.Sequence(display), origin)
	out := make([]render.Glyph, len(placed))
	for i, p := range placed {
		out[i] = render.Glyph{Key: p.Key, Image: set[p.Key], At: p.At}
	}
	return out
}

func (c *Clock) driftInfo() state.DriftInfo {
	offsets := make(map[string]state.Offset, len(drift.Elements()))
	for _, e := range drift.Elements() {
		off := c.Drift.Offset(e)
		offsets[e.String()] = state.Offset{X: off.X, Y: off.Y}
	}
	return state.DriftInfo{Offsets: offsets, NextShift: c.Drift.NextShift()}
}

func (c *Clock) logger() Logger {
	if c.Logger == nil {
		return NoopLogger{}
	}
	return c.Logger
}
