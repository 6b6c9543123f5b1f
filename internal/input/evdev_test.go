package input

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"
)

type rec struct {
	typ, code uint16
	value     int32
}

func feedAll(d *decoder, recs ...rec) []Event {
	var out []Event
	for _, r := range recs {
		if ev, ok := d.feed(r.typ, r.code, r.value); ok {
			out = append(out, ev)
		}
	}
	return out
}

var canvas = image.Pt(1920, 1080)

func TestDecoderQuitKeys(t *testing.T) {
	d := newDecoder(canvas, axis{}, axis{})
	events := feedAll(d,
		rec{evKey, keyEsc, 1},
		rec{evKey, keyEsc, 0},
		rec{evKey, keyQ, 2}, // autorepeat
		rec{evKey, keyQ, 1},
		rec{evKey, 30, 1}, // KEY_A
	)
	require.Equal(t, []Event{{Kind: Quit}, {Kind: Quit}}, events)
}

func TestDecoderTouchscreen(t *testing.T) {
	d := newDecoder(canvas, axis{min: 0, max: 4095}, axis{min: 0, max: 4095})
	events := feedAll(d,
		rec{evAbs, absMTPosX, 2048},
		rec{evAbs, absMTPosY, 4095},
		rec{evKey, btnTouch, 1},
		rec{evSyn, synReport, 0},
		// movement while held does not create more markers
		rec{evAbs, absMTPosX, 100},
		rec{evSyn, synReport, 0},
		rec{evKey, btnTouch, 0},
		rec{evSyn, synReport, 0},
	)
	require.Equal(t, []Event{{Kind: PointerDown, Pos: image.Pt(959, 1079)}}, events)
}

func TestDecoderButtonBeforePosition(t *testing.T) {
	d := newDecoder(canvas, axis{min: 0, max: 1919}, axis{min: 0, max: 1079})
	events := feedAll(d,
		rec{evKey, btnTouch, 1},
		rec{evAbs, absX, 300},
		rec{evAbs, absY, 200},
		rec{evSyn, synReport, 0},
	)
	require.Equal(t, []Event{{Kind: PointerDown, Pos: image.Pt(300, 200)}}, events)
}

func TestDecoderRelativeMouse(t *testing.T) {
	d := newDecoder(canvas, axis{}, axis{})
	events := feedAll(d,
		rec{evRel, relX, -100},
		rec{evRel, relY, 5000},
		rec{evSyn, synReport, 0},
		rec{evKey, btnLeft, 1},
		rec{evSyn, synReport, 0},
	)
	require.Equal(t, []Event{{Kind: PointerDown, Pos: image.Pt(860, 1079)}}, events)
}

func TestAxisScale(t *testing.T) {
	a := axis{min: 100, max: 200}
	require.Equal(t, 0, a.scale(50, 1000))
	require.Equal(t, 499, a.scale(150, 1000))
	require.Equal(t, 999, a.scale(200, 1000))
	require.Equal(t, 42, axis{}.scale(42, 1000), "unknown range passes raw values through")
}

func TestChanSourceAndDrain(t *testing.T) {
	src := NewChanSource(2)
	require.True(t, src.Send(Event{Kind: PointerDown, Pos: image.Pt(1, 2)}))
	require.True(t, src.Send(Event{Kind: Quit}))
	require.False(t, src.Send(Event{Kind: Quit}), "full buffer drops")

	events := Drain(src.Events())
	require.Len(t, events, 2)
	require.Equal(t, Quit, events[1].Kind)
	require.Empty(t, Drain(src.Events()))

	noop := NewNoopSource()
	require.NoError(t, noop.Stop())
	require.Empty(t, Drain(noop.Events()))
}
