package state

import (
	"image"
	"time"
)

// TouchTTL is how long a touch marker stays visible.
const TouchTTL = 300 * time.Millisecond

type TouchMarker struct {
	Pos    image.Point
	Expiry time.Time
}

// Touches keeps unexpired markers in creation order. Owned by the render loop.
type Touches struct {
	ttl     time.Duration
	markers []TouchMarker
}

func NewTouches(ttl time.Duration) *Touches {
	if ttl <= 0 {
		ttl = TouchTTL
	}
	return &Touches{ttl: ttl}
}

func (t *Touches) Add(pos image.Point, now time.Time) {
	t.markers = append(t.markers, TouchMarker{Pos: pos, Expiry: now.Add(t.ttl)})
}

// Purge drops markers whose expiry is not after now.
func (t *Touches) Purge(now time.Time) {
	kept := t.markers[:0]
	for _, m := range t.markers {
		if m.Expiry.After(now) {
			kept = append(kept, m)
		}
	}
	clear(t.markers[len(kept):])
	t.markers = kept
}

// Active returns a copy of the live markers.
func (t *Touches) Active() []TouchMarker {
	out := make([]TouchMarker, len(t.markers))
	copy(out, t.markers)
	return out
}

func (t *Touches) Len() int { return len(t.markers) }
