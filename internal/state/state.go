package state

import (
	"sync"
	"time"
)

type Phase int

const (
	BOOTING Phase = iota
	RUNNING
	STOPPED
	ERROR
)

func (p Phase) String() string {
	switch p {
	case BOOTING:
		return "booting"
	case RUNNING:
		return "running"
	case STOPPED:
		return "stopped"
	case ERROR:
		return "error"
	}
	return "unknown"
}

type SkyInfo struct {
	IsDay   bool
	Moon    string
	Sunrise time.Time // zero during polar day/night
	Sunset  time.Time
}

type TemperatureInfo struct {
	Configured bool
	Value      float64
	LastFetch  time.Time
}

type WeatherInfo struct {
	Configured bool
	Condition  string
	LastFetch  time.Time
}

type Offset struct {
	X int
	Y int
}

type DriftInfo struct {
	Offsets   map[string]Offset
	NextShift time.Time
}

// FrameInfo is what the render loop publishes after composing a frame.
type FrameInfo struct {
	At          time.Time
	Display     time.Time
	Sky         SkyInfo
	Temperature TemperatureInfo
	Weather     WeatherInfo
	Drift       DriftInfo
	Touches     int
}

type State struct {
	Phase   Phase
	Theme   string
	Started time.Time
	Frames  uint64
	Frame   FrameInfo
	Err     string
}

type Store struct {
	mu    sync.RWMutex
	state State
}

func NewStore() *Store {
	return &Store{state: State{Phase: BOOTING}}
}

func (store *Store) Snapshot() State {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.state
}

func (store *Store) SetPhase(phase Phase) {
	store.mu.Lock()
	store.state.Phase = phase
	store.mu.Unlock()
}

// Start records the theme in use and moves the store to RUNNING.
func (store *Store) Start(theme string, at time.Time) {
	store.mu.Lock()
	store.state.Phase = RUNNING
	store.state.Theme = theme
	store.state.Started = at
	store.mu.Unlock()
}

// Fail moves the store to ERROR and records err for /healthz.
func (store *Store) Fail(err error) {
	store.mu.Lock()
	store.state.Phase = ERROR
	if err != nil {
		store.state.Err = err.Error()
	}
	store.mu.Unlock()
}

// Recover returns a failed store to RUNNING and clears the recorded error.
// It does nothing in any other phase.
func (store *Store) Recover() {
	store.mu.Lock()
	if store.state.Phase == ERROR {
		store.state.Phase = RUNNING
		store.state.Err = ""
	}
	store.mu.Unlock()
}

// PublishFrame replaces the frame info and bumps the frame counter.
// The caller must not mutate frame.Drift.Offsets afterwards.
func (store *Store) PublishFrame(frame FrameInfo) {
	store.mu.Lock()
	store.state.Frame = frame
	store.state.Frames++
	store.mu.Unlock()
}
