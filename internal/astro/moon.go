package astro

import (
	"math"
	"time"
)

// SynodicMonth is the mean length of a lunation in days.
const SynodicMonth = 29.530588853

// Bucketing constants. They centre each named phase on its canonical age and
// must stay exactly as they are: the bucket boundaries are derived from them.
const (
	phaseShift  = 1.84566
	phaseBucket = 3.69134
)

// referenceNewMoon is the new moon of 2000-01-06 18:14 UTC.
var referenceNewMoon = time.Date(2000, time.January, 6, 18, 14, 0, 0, time.UTC)

// Phase is one of the eight named moon phases.
type Phase int

const (
	NewMoon Phase = iota
	WaxingCrescent
	FirstQuarter
	WaxingGibbous
	FullMoon
	WaningGibbous
	ThirdQuarter
	WaningCrescent
)

var phaseNames = [...]string{
	"new", "waxing_crescent", "first_quarter", "waxing_gibbous",
	"full", "waning_gibbous", "third_quarter", "waning_crescent",
}

func (p Phase) String() string { return phaseNames[p] }

// PhaseNames lists the phase names in new -> waning crescent order.
func PhaseNames() []string {
	out := make([]string, len(phaseNames))
	copy(out, phaseNames[:])
	return out
}

// MoonAge returns the days elapsed in the synodic month for the calendar date of
// date, evaluated at 00:00 UTC. The result lies in [0, SynodicMonth).
func MoonAge(date time.Time) float64 {
	midnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	days := midnight.Sub(referenceNewMoon).Hours() / 24
	age := math.Mod(days, SynodicMonth)
	if age < 0 {
		age += SynodicMonth
	}
	return age
}

// PhaseFromAge buckets a moon age into one of the eight phases.
func PhaseFromAge(age float64) Phase {
	idx := int(math.Floor((age+phaseShift)/phaseBucket)) % 8
	if idx < 0 {
		idx += 8
	}
	return Phase(idx)
}

// MoonPhase returns the named phase for the calendar date of date.
func MoonPhase(date time.Time) Phase {
	return PhaseFromAge(MoonAge(date))
}
