package assets

import (
	"image"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"

	"github.com/rook-computer/imageclock/internal/render/layout"
)

// ClampUnit limits v to [0,1].
func ClampUnit(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ApplyBrightness multiplies every colour channel of img by factor.
// The factor is clamped to [0,1]. Factors of 0.999 and above return img itself.
func ApplyBrightness(img *image.RGBA, factor float64) *image.RGBA {
	factor = ClampUnit(factor)
	if factor >= 0.999 {
		return img
	}
	mult := uint32(factor * 255)

	out := image.NewRGBA(img.Rect)
	draw.Draw(out, out.Rect, img, img.Rect.Min, draw.Src)
	pix := out.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i] = mulChannel(pix[i], mult)
		pix[i+1] = mulChannel(pix[i+1], mult)
		pix[i+2] = mulChannel(pix[i+2], mult)
		// alpha is multiplied by 255, which leaves it unchanged
	}
	return out
}

func mulChannel(c uint8, mult uint32) uint8 {
	return uint8((uint32(c)*mult + 255) >> 8)
}

// Resize scales src to exactly w x h with Catmull-Rom resampling.
func Resize(src image.Image, w, h int) *image.RGBA {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

// FitIcon scales raw to fit inside maxW x maxH keeping its aspect ratio.
// Images are never enlarged beyond their native size.
func FitIcon(raw image.Image, maxW, maxH float64) *image.RGBA {
	size := raw.Bounds().Size()
	f := math.Min(math.Min(maxW/float64(size.X), maxH/float64(size.Y)), 1.0)
	return Resize(raw, int(float64(size.X)*f), int(float64(size.Y)*f))
}

// stripUnits is the horizontal budget of the strip: four digits and two half-width glyphs.
const stripUnits = 4*1.0 + 2*0.5

// ComputeGlyphMetrics picks one scale for the strip from a sample glyph so the strip fits
// inside availW x availH.
func ComputeGlyphMetrics(sample image.Point, availW, availH float64) layout.Strip {
	ow, oh := float64(sample.X), float64(sample.Y)
	scale := math.Min(availW/(stripUnits*ow), availH/oh)
	full := max(1, int(math.RoundToEven(ow*scale)))
	return layout.Strip{
		Full:   full,
		Half:   max(1, int(math.RoundToEven(float64(full)*0.5))),
		Height: max(1, int(math.RoundToEven(oh*scale))),
	}
}
