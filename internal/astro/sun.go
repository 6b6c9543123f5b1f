// Package astro resolves day/night and the moon phase for a location.
package astro

import (
	"errors"
	"math"
	"time"
)

var (
	// ErrNoSunrise is returned for dates on which the sun stays below the horizon.
	ErrNoSunrise = errors.New("astro: sun never rises on this date")
	// ErrNoSunset is returned for dates on which the sun stays above the horizon.
	ErrNoSunset = errors.New("astro: sun never sets on this date")
)

// Location is an observer position.
type Location struct {
	Latitude  float64
	Longitude float64
}

// SunTimes are the sunrise and sunset of one calendar date.
type SunTimes struct {
	Sunrise time.Time
	Sunset  time.Time
}

// Contains reports whether t falls in [Sunrise, Sunset).
func (s SunTimes) Contains(t time.Time) bool {
	return !t.Before(s.Sunrise) && t.Before(s.Sunset)
}

// Sun computes sunrise and sunset for the calendar date of day in day's location.
// It uses the NOAA almanac approximation with the standard 90.833° zenith.
func (l Location) Sun(day time.Time) (SunTimes, error) {
	rise, err := l.event(day, true)
	if err != nil {
		return SunTimes{}, err
	}
	set, err := l.event(day, false)
	if err != nil {
		return SunTimes{}, err
	}
	return SunTimes{Sunrise: rise, Sunset: set}, nil
}

// IsDay reports whether now lies between the sunrise (inclusive) and sunset (exclusive)
// of its own calendar date. now must already carry the display timezone.
func (l Location) IsDay(now time.Time) bool {
	times, err := l.Sun(now)
	switch {
	case errors.Is(err, ErrNoSunset):
		return true
	case err != nil:
		return false
	}
	return times.Contains(now)
}

func (l Location) event(day time.Time, rising bool) (time.Time, error) {
	loc := day.Location()
	n := float64(day.YearDay())
	lngHour := l.Longitude / 15.0

	approx := 18.0
	if rising {
		approx = 6.0
	}
	t := n + (approx-lngHour)/24.0
	m := 0.9856*t - 3.289
	sunLon := normalizeDeg(m + 1.916*math.Sin(deg2rad(m)) + 0.020*math.Sin(2*deg2rad(m)) + 282.634)
	ra := normalizeDeg(rad2deg(math.Atan(0.91764 * math.Tan(deg2rad(sunLon)))))
	lQuadrant := math.Floor(sunLon/90.0) * 90.0
	raQuadrant := math.Floor(ra/90.0) * 90.0
	ra = (ra + (lQuadrant - raQuadrant)) / 15.0

	sinDec := 0.39782 * math.Sin(deg2rad(sunLon))
	cosDec := math.Cos(math.Asin(sinDec))
	cosH := (math.Cos(deg2rad(90.833)) - sinDec*math.Sin(deg2rad(l.Latitude))) / (cosDec * math.Cos(deg2rad(l.Latitude)))
	if cosH > 1 {
		return time.Time{}, ErrNoSunrise
	}
	if cosH < -1 {
		return time.Time{}, ErrNoSunset
	}

	h := rad2deg(math.Acos(cosH))
	if rising {
		h = 360.0 - h
	}
	h /= 15.0
	localT := h + ra - 0.06571*t - 6.622
	ut := normalizeHour(localT - lngHour)

	at := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC).
		Add(time.Duration(ut * float64(time.Hour))).In(loc)
	// UT wraps at midnight; pull the event back onto the requested local date.
	want := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
	got := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, loc)
	switch {
	case got.Before(want):
		at = at.Add(24 * time.Hour)
	case got.After(want):
		at = at.Add(-24 * time.Hour)
	}
	return at, nil
}

func deg2rad(v float64) float64 { return v * math.Pi / 180.0 }
func rad2deg(v float64) float64 { return v * 180.0 / math.Pi }

func normalizeDeg(v float64) float64 {
	v = math.Mod(v, 360)
	if v < 0 {
		v += 360
	}
	return v
}

func normalizeHour(v float64) float64 {
	v = math.Mod(v, 24)
	if v < 0 {
		v += 24
	}
	return v
}
