// Package input turns keyboard, mouse and touchscreen activity into clock events.
package input

import (
	"context"
	"image"
)

type Kind int

const (
	Quit Kind = iota
	PointerDown
)

func (k Kind) String() string {
	switch k {
	case Quit:
		return "quit"
	case PointerDown:
		return "pointer_down"
	}
	return "unknown"
}

type Event struct {
	Kind Kind
	Pos  image.Point // canvas coordinates, PointerDown only
}

type Source interface {
	Start(ctx context.Context) error
	Stop() error
	Events() <-chan Event
}

type Logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

type NoopSource struct{ ch chan Event }

func NewNoopSource() *NoopSource { return &NoopSource{ch: make(chan Event)} }

func (n *NoopSource) Start(ctx context.Context) error { return nil }
func (n *NoopSource) Stop() error                     { close(n.ch); return nil }
func (n *NoopSource) Events() <-chan Event            { return n.ch }

// ChanSource lets another component (a desktop window, tests) inject events.
type ChanSource struct{ ch chan Event }

func NewChanSource(buffer int) *ChanSource { return &ChanSource{ch: make(chan Event, buffer)} }

func (c *ChanSource) Start(ctx context.Context) error { return nil }
func (c *ChanSource) Stop() error                     { return nil }
func (c *ChanSource) Events() <-chan Event            { return c.ch }

// Send delivers e unless the buffer is full, in which case it is dropped.
func (c *ChanSource) Send(e Event) bool {
	select {
	case c.ch <- e:
		return true
	default:
		return false
	}
}

// Drain returns every event currently buffered in ch without blocking.
func Drain(ch <-chan Event) []Event {
	var out []Event
	for {
		select {
		case e, ok := <-ch:
			if !ok {
				return out
			}
			out = append(out, e)
		default:
			return out
		}
	}
}
