//go:build !linux

package input

import (
	"context"
	"image"
	"sync"
)

// EvdevSource is unavailable off Linux; it never delivers events.
type EvdevSource struct {
	Logger Logger
	Canvas image.Point
	Glob   string

	ch   chan Event
	once sync.Once
}

func NewEvdevSource(canvas image.Point, logger Logger) *EvdevSource {
	return &EvdevSource{Logger: logger, Canvas: canvas, ch: make(chan Event)}
}

func (s *EvdevSource) Events() <-chan Event { return s.ch }

func (s *EvdevSource) Start(ctx context.Context) error {
	if s.Logger != nil {
		s.Logger.Infof("input", "evdev input is only available on linux")
	}
	return nil
}

func (s *EvdevSource) Stop() error {
	s.once.Do(func() { close(s.ch) })
	return nil
}
