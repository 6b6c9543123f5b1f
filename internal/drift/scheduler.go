// Package drift moves screen elements by a few pixels at a fixed interval so that
// static content does not burn into the panel.
package drift

import (
	"image"
	"math/rand/v2"
	"time"
)

const (
	DefaultPixels = 6
	DefaultPeriod = 5 * time.Minute
)

// Element identifies an independently drifting part of the frame.
type Element int

const (
	Strip Element = iota
	Icon
	Temperature
	Weather
	numElements
)

func (e Element) String() string {
	switch e {
	case Strip:
		return "strip"
	case Icon:
		return "icon"
	case Temperature:
		return "temperature"
	case Weather:
		return "weather"
	}
	return "unknown"
}

// Elements lists every tracked element.
func Elements() []Element {
	return []Element{Strip, Icon, Temperature, Weather}
}

// Scheduler holds the current offsets and the next shift instant.
// It is owned by the render loop and not safe for concurrent use.
type Scheduler struct {
	pixels  int
	period  time.Duration
	rng     *rand.Rand
	offsets [numElements]image.Point
	next    time.Time
}

// NewScheduler starts with zero offsets; the first shift happens at start+period.
// A nil rng uses a randomly seeded source.
func NewScheduler(start time.Time, period time.Duration, pixels int, rng *rand.Rand) *Scheduler {
	if period <= 0 {
		period = DefaultPeriod
	}
	if pixels < 0 {
		pixels = 0
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Scheduler{
		pixels: pixels,
		period: period,
		rng:    rng,
		next:   start.Add(period),
	}
}

// Advance resamples every offset when now has reached the next shift and reports
// whether it did.
func (s *Scheduler) Advance(now time.Time) bool {
	if now.Before(s.next) {
		return false
	}
	for i := range s.offsets {
		s.offsets[i] = image.Pt(s.sample(), s.sample())
	}
	s.next = now.Add(s.period)
	return true
}

// Offset returns the current offset of e.
func (s *Scheduler) Offset(e Element) image.Point {
	if e < 0 || e >= numElements {
		return image.Point{}
	}
	return s.offsets[e]
}

// Offsets returns a copy of all offsets keyed by element name.
func (s *Scheduler) Offsets() map[string]image.Point {
	out := make(map[string]image.Point, numElements)
	for _, e := range Elements() {
		out[e.String()] = s.offsets[e]
	}
	return out
}

func (s *Scheduler) NextShift() time.Time { return s.next }

func (s *Scheduler) Pixels() int { return s.pixels }

// sample returns an integer in [-pixels, pixels].
func (s *Scheduler) sample() int {
	if s.pixels == 0 {
		return 0
	}
	return s.rng.IntN(2*s.pixels+1) - s.pixels
}
