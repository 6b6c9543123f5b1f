package input

import "image"

// Linux input-event-codes.h
const (
	evSyn = 0x00
	evKey = 0x01
	evRel = 0x02
	evAbs = 0x03

	synReport = 0

	keyEsc = 1
	keyQ   = 16

	btnLeft  = 0x110
	btnTouch = 0x14a

	relX = 0x00
	relY = 0x01

	absX      = 0x00
	absY      = 0x01
	absMTPosX = 0x35
	absMTPosY = 0x36
)

// axis is the reported range of an absolute axis.
type axis struct {
	min, max int32
}

// scale maps v from the axis range onto [0, size).
func (a axis) scale(v int32, size int) int {
	if a.max <= a.min {
		return clamp(int(v), size)
	}
	return clamp(int(int64(v-a.min)*int64(size-1)/int64(a.max-a.min)), size)
}

func clamp(v, size int) int {
	if v < 0 {
		return 0
	}
	if v >= size {
		return size - 1
	}
	return v
}

// decoder assembles input_event records from one device into Events.
// Pointer-down is reported on the SYN_REPORT that follows the button or touch
// press so the position of the same report is used.
type decoder struct {
	canvas  image.Point
	x, y    axis
	absPos  image.Point // raw absolute position
	relPos  image.Point // canvas position of a relative pointer
	useRel  bool
	pending bool
}

func newDecoder(canvas image.Point, x, y axis) *decoder {
	return &decoder{canvas: canvas, x: x, y: y, relPos: image.Pt(canvas.X/2, canvas.Y/2)}
}

func (d *decoder) feed(typ, code uint16, value int32) (Event, bool) {
	switch typ {
	case evKey:
		switch code {
		case keyEsc, keyQ:
			if value == 1 {
				return Event{Kind: Quit}, true
			}
		case btnTouch, btnLeft:
			if value == 1 {
				d.pending = true
			}
		}
	case evAbs:
		switch code {
		case absX, absMTPosX:
			d.absPos.X = int(value)
			d.useRel = false
		case absY, absMTPosY:
			d.absPos.Y = int(value)
			d.useRel = false
		}
	case evRel:
		switch code {
		case relX:
			d.relPos.X = clamp(d.relPos.X+int(value), d.canvas.X)
			d.useRel = true
		case relY:
			d.relPos.Y = clamp(d.relPos.Y+int(value), d.canvas.Y)
			d.useRel = true
		}
	case evSyn:
		if code == synReport && d.pending {
			d.pending = false
			return Event{Kind: PointerDown, Pos: d.position()}, true
		}
	}
	return Event{}, false
}

func (d *decoder) position() image.Point {
	if d.useRel {
		return d.relPos
	}
	return image.Pt(
		d.x.scale(int32(d.absPos.X), d.canvas.X),
		d.y.scale(int32(d.absPos.Y), d.canvas.Y),
	)
}
