// Package glyph names the keys of a digit glyph set.
package glyph

const (
	Colon = "colon"
	AM    = "am"
	PM    = "pm"
)

// Keys lists every glyph a themed digit set must provide.
var Keys = []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9", Colon, AM, PM}

// IsNarrow reports whether key occupies a half-width slot in the time strip.
func IsNarrow(key string) bool {
	switch key {
	case Colon, AM, PM:
		return true
	}
	return false
}
