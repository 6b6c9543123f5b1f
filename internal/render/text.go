package render

import (
	"image"
	"image/color"
	"image/draw"
	"os"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// TextRenderer draws single-line text with a top-left anchor.
type TextRenderer struct {
	face   font.Face
	ascent int
	height int
	Source string
}

// NewTextRenderer loads the font at path (TrueType, then OpenType) at size points.
// An empty path, or a font that fails to load, falls back to Go Regular and then
// to the built-in bitmap face.
func NewTextRenderer(path string, size float64, logger Logger) *TextRenderer {
	if logger == nil {
		logger = nopLogger{}
	}
	if path != "" {
		face, err := loadFontFile(path, size)
		if err == nil {
			logger.Infof("text", "loaded font %s at %.0fpt", path, size)
			return newTextRenderer(face, path)
		}
		logger.Errorf("text", "font %s unusable, falling back to Go Regular: %v", path, err)
	}
	tt, err := truetype.Parse(goregular.TTF)
	if err != nil {
		logger.Errorf("text", "embedded font parse failed, using basicfont: %v", err)
		return newTextRenderer(basicfont.Face7x13, "basicfont")
	}
	return newTextRenderer(truetypeFace(tt, size), "goregular")
}

func newTextRenderer(face font.Face, source string) *TextRenderer {
	m := face.Metrics()
	return &TextRenderer{
		face:   face,
		ascent: m.Ascent.Ceil(),
		height: (m.Ascent + m.Descent).Ceil(),
		Source: source,
	}
}

func truetypeFace(tt *truetype.Font, size float64) font.Face {
	return truetype.NewFace(tt, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull})
}

func loadFontFile(path string, size float64) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if tt, terr := truetype.Parse(data); terr == nil {
		return truetypeFace(tt, size), nil
	}
	otf, err := opentype.Parse(data)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(otf, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
}

// Height is the line height used to reserve space above the time strip.
func (t *TextRenderer) Height() int { return t.height }

func (t *TextRenderer) Measure(text string) int {
	return font.MeasureString(t.face, text).Ceil()
}

// Draw renders text with its top-left corner at at.
func (t *TextRenderer) Draw(dst draw.Image, text string, at image.Point, c color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: t.face,
		Dot:  fixed.P(at.X, at.Y+t.ascent),
	}
	d.DrawString(text)
}

type nopLogger struct{}

func (nopLogger) Infof(string, string, ...interface{})  {}
func (nopLogger) Errorf(string, string, ...interface{}) {}
