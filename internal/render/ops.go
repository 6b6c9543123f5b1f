package render

import (
	"image"
	"image/color"
)

type OpKind int

const (
	OpClear OpKind = iota
	OpImage
	OpText
	OpRing
)

func (k OpKind) String() string {
	switch k {
	case OpClear:
		return "clear"
	case OpImage:
		return "image"
	case OpText:
		return "text"
	case OpRing:
		return "ring"
	}
	return "unknown"
}

// DrawOp is a single drawing instruction. At is the top-left corner for image
// and text ops and the centre for rings.
type DrawOp struct {
	Kind   OpKind
	Label  string
	Image  image.Image
	Text   string
	Color  color.Color
	At     image.Point
	Radius int
	Stroke int
}
