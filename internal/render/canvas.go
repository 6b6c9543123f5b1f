package render

import (
	"image"
	"image/draw"

	"github.com/llgcode/draw2d/draw2dimg"
	"github.com/llgcode/draw2d/draw2dkit"
)

// Canvas is the offscreen logical frame that draw ops are executed against.
type Canvas struct {
	img  *image.RGBA
	text *TextRenderer
}

func NewCanvas(size image.Point, text *TextRenderer) *Canvas {
	return &Canvas{img: image.NewRGBA(image.Rectangle{Max: size}), text: text}
}

func (c *Canvas) Image() *image.RGBA { return c.img }

// Execute runs ops in order. Images are alpha-composited over what is already drawn.
func (c *Canvas) Execute(ops []DrawOp) {
	var gc *draw2dimg.GraphicContext
	for _, op := range ops {
		switch op.Kind {
		case OpClear:
			draw.Draw(c.img, c.img.Bounds(), image.NewUniform(op.Color), image.Point{}, draw.Src)
		case OpImage:
			if op.Image == nil {
				continue
			}
			b := op.Image.Bounds()
			draw.Draw(c.img, image.Rectangle{Min: op.At, Max: op.At.Add(b.Size())}, op.Image, b.Min, draw.Over)
		case OpText:
			if c.text != nil {
				c.text.Draw(c.img, op.Text, op.At, op.Color)
			}
		case OpRing:
			if gc == nil {
				gc = draw2dimg.NewGraphicContext(c.img)
			}
			gc.SetStrokeColor(op.Color)
			gc.SetLineWidth(float64(op.Stroke))
			gc.BeginPath()
			draw2dkit.Circle(gc, float64(op.At.X), float64(op.At.Y), float64(op.Radius))
			gc.Stroke()
		}
	}
}
