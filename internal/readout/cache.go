package readout

import (
	"context"
	"sync"
	"time"
)

// DefaultTemperature is shown until a first successful fetch, and forever when no
// temperature endpoint is configured.
const DefaultTemperature = 72.0

// Logger matches the component-tagged logger used across the app.
type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

// Options configure a Cache.
type Options[T any] struct {
	Name    string
	Initial T
	Period  time.Duration
	// Source is nil for readouts without an endpoint; the cache then never fetches.
	Source Source[T]
	// Accept filters fetched values. Rejected values keep the previous one.
	Accept func(T) bool
	// Async moves refreshes onto a background goroutine so Get never blocks.
	Async  bool
	Logger Logger
}

// State is the cached value and the instant of the last refresh attempt.
type State[T any] struct {
	Value     T
	LastFetch time.Time
}

// Cache holds the last known value of a readout.
//
// A refresh is attempted when at least Period has passed since the previous
// attempt. Failed attempts keep the cached value but still count as an attempt,
// so a broken endpoint is retried once per period rather than every frame.
type Cache[T any] struct {
	name   string
	period time.Duration
	source Source[T]
	accept func(T) bool
	async  bool
	logger Logger

	mu        sync.Mutex
	value     T
	lastFetch time.Time
	attempted bool
	inFlight  bool
	wg        sync.WaitGroup
}

func NewCache[T any](opts Options[T]) *Cache[T] {
	c := &Cache[T]{
		name:   opts.Name,
		period: opts.Period,
		source: opts.Source,
		accept: opts.Accept,
		async:  opts.Async,
		logger: opts.Logger,
		value:  opts.Initial,
	}
	if c.logger == nil {
		c.logger = nopLogger{}
	}
	return c
}

// Configured reports whether the readout has an endpoint.
func (c *Cache[T]) Configured() bool { return c.source != nil }

// Get returns the readout for now, refreshing it first when it is due.
// Errors never reach the caller; they are logged and the cached value is returned.
func (c *Cache[T]) Get(ctx context.Context, now time.Time) T {
	c.mu.Lock()
	if !c.dueLocked(now) {
		v := c.value
		c.mu.Unlock()
		return v
	}
	c.lastFetch = now
	c.attempted = true

	if c.async {
		c.inFlight = true
		c.wg.Add(1)
		v := c.value
		c.mu.Unlock()
		go func() {
			defer c.wg.Done()
			c.refresh(ctx)
		}()
		return v
	}
	c.mu.Unlock()

	c.refresh(ctx)
	return c.State().Value
}

// Due reports whether a Get at now would attempt a refresh.
func (c *Cache[T]) Due(now time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dueLocked(now)
}

// State returns the cached value and last attempt time.
func (c *Cache[T]) State() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State[T]{Value: c.value, LastFetch: c.lastFetch}
}

// Wait blocks until background refreshes have finished.
func (c *Cache[T]) Wait() { c.wg.Wait() }

func (c *Cache[T]) dueLocked(now time.Time) bool {
	if c.source == nil || c.inFlight {
		return false
	}
	return !c.attempted || now.Sub(c.lastFetch) >= c.period
}

func (c *Cache[T]) refresh(ctx context.Context) {
	v, err := c.source.Fetch(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight = false
	if err != nil {
		c.logger.Errorf("readout", "%s refresh failed, keeping %v: %v", c.name, c.value, err)
		return
	}
	if c.accept != nil && !c.accept(v) {
		c.logger.Infof("readout", "%s value %v not recognised, keeping %v", c.name, v, c.value)
		return
	}
	c.value = v
}

type nopLogger struct{}

func (nopLogger) Infof(string, string, ...interface{})  {}
func (nopLogger) Errorf(string, string, ...interface{}) {}
