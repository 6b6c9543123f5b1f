package render

import (
	"image"
	"image/color"

	"github.com/rook-computer/imageclock/internal/render/layout"
	"github.com/rook-computer/imageclock/internal/state"
)

// TextMeasurer reports the rendered width of a string in pixels.
type TextMeasurer interface {
	Measure(text string) int
}

// Glyph is a prepared digit image at its final position.
type Glyph struct {
	Key   string
	Image image.Image
	At    image.Point
}

// FrameInput is everything that varies from one frame to the next.
type FrameInput struct {
	Icon       image.Image
	IconOffset image.Point

	// Weather is nil when no condition is known or the theme has no icon for it.
	Weather       image.Image
	WeatherOffset image.Point

	// TempText is empty when the temperature is hidden.
	TempText   string
	TempColor  color.Color
	TempOffset image.Point

	Glyphs  []Glyph
	Touches []state.TouchMarker
}

// Compositor turns a FrameInput into an ordered list of draw operations.
// Compose has no side effects; the same input always yields the same ops.
type Compositor struct {
	Size    image.Point
	Padding int
	TextTop int
	Text    TextMeasurer
}

func (c *Compositor) Compose(in FrameInput) []DrawOp {
	ops := make([]DrawOp, 0, 4+len(in.Glyphs)+len(in.Touches))
	ops = append(ops, DrawOp{Kind: OpClear, Label: "background", Color: Background})
	rect := image.Rectangle{Max: c.Size}

	if in.Icon != nil {
		at := layout.AnchorTopRight(rect, in.Icon.Bounds().Size(), c.Padding).Add(in.IconOffset)
		ops = append(ops, DrawOp{Kind: OpImage, Label: "icon", Image: in.Icon, At: at})
	}

	if in.Weather != nil {
		at := layout.AnchorTopLeft(rect, c.Padding).Add(in.WeatherOffset)
		ops = append(ops, DrawOp{Kind: OpImage, Label: "weather", Image: in.Weather, At: at})
	}

	if in.TempText != "" && c.Text != nil {
		w := c.Text.Measure(in.TempText)
		at := image.Pt((c.Size.X-w)/2, c.TextTop).Add(in.TempOffset)
		ops = append(ops, DrawOp{Kind: OpText, Label: "temperature", Text: in.TempText, Color: in.TempColor, At: at})
	}

	for _, g := range in.Glyphs {
		ops = append(ops, DrawOp{Kind: OpImage, Label: "glyph:" + g.Key, Image: g.Image, At: g.At})
	}

	for _, t := range in.Touches {
		ops = append(ops, DrawOp{
			Kind:   OpRing,
			Label:  "touch",
			Color:  TouchColor,
			At:     t.Pos,
			Radius: TouchRadius,
			Stroke: TouchStroke,
		})
	}
	return ops
}
