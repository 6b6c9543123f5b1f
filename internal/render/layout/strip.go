package layout

import (
	"image"
	"strings"
	"time"

	"github.com/rook-computer/imageclock/internal/glyph"
)

// StripLen is the number of glyphs in the time face.
const StripLen = 6

// Sequence returns the glyph keys for t in 12-hour form:
// two hour digits, colon, two minute digits, am/pm.
func Sequence(t time.Time) [StripLen]string {
	s := t.Format("03:04PM")
	return [StripLen]string{
		s[0:1],
		s[1:2],
		glyph.Colon,
		s[3:4],
		s[4:5],
		strings.ToLower(s[5:7]),
	}
}

// Strip describes the advance widths and height of the glyph strip.
type Strip struct {
	Full   int
	Half   int
	Height int
}

// Width is the total strip width: four full-width digits plus two narrow glyphs.
func (s Strip) Width() int { return 4*s.Full + 2*s.Half }

// Advance returns the horizontal step for key.
func (s Strip) Advance(key string) int {
	if glyph.IsNarrow(key) {
		return s.Half
	}
	return s.Full
}

// BaseOrigin is the undrifted top-left of the strip: horizontally centred on the
// canvas and vertically centred in the area below topReserved.
func (s Strip) BaseOrigin(canvas image.Rectangle, topReserved int) image.Point {
	_, below := SplitHorizontal(canvas, topReserved)
	return CenterIn(below, image.Pt(s.Width(), s.Height))
}

// Placed is a glyph key with its top-left pixel position.
type Placed struct {
	Key string
	At  image.Point
}

// Place lays keys out left to right starting at origin.
func (s Strip) Place(keys [StripLen]string, origin image.Point) [StripLen]Placed {
	var out [StripLen]Placed
	x := origin.X
	for i, k := range keys {
		out[i] = Placed{Key: k, At: image.Pt(x, origin.Y)}
		x += s.Advance(k)
	}
	return out
}
