package layout

import "image"

// Normalize ensures Min is <= Max on both axes.
func Normalize(rect image.Rectangle) image.Rectangle {
	if rect.Min.X > rect.Max.X {
		rect.Min.X, rect.Max.X = rect.Max.X, rect.Min.X
	}
	if rect.Min.Y > rect.Max.Y {
		rect.Min.Y, rect.Max.Y = rect.Max.Y, rect.Min.Y
	}
	return rect
}

// SplitHorizontal splits rect into top and bottom parts.
// topHeightPx is clamped to [0, rect.Dy()].
func SplitHorizontal(rect image.Rectangle, topHeightPx int) (top image.Rectangle, bottom image.Rectangle) {
	rect = Normalize(rect)
	height := rect.Dy()
	if topHeightPx < 0 {
		topHeightPx = 0
	}
	if topHeightPx > height {
		topHeightPx = height
	}
	top = image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+topHeightPx)
	bottom = image.Rect(rect.Min.X, rect.Min.Y+topHeightPx, rect.Max.X, rect.Max.Y)
	return top, bottom
}

// AnchorTopLeft returns the corner of rect inset by paddingPx on both axes.
func AnchorTopLeft(rect image.Rectangle, paddingPx int) image.Point {
	rect = Normalize(rect)
	return image.Pt(rect.Min.X+paddingPx, rect.Min.Y+paddingPx)
}

// AnchorTopRight returns the top-left corner of a (w,h) box placed in the top-right
// of rect, paddingPx away from both edges.
func AnchorTopRight(rect image.Rectangle, size image.Point, paddingPx int) image.Point {
	rect = Normalize(rect)
	return image.Pt(rect.Max.X-size.X-paddingPx, rect.Min.Y+paddingPx)
}

// CenterIn returns the top-left corner that centres a box of size in rect.
// Odd remainders round towards the top-left.
func CenterIn(rect image.Rectangle, size image.Point) image.Point {
	rect = Normalize(rect)
	return image.Pt(
		rect.Min.X+(rect.Dx()-size.X)/2,
		rect.Min.Y+(rect.Dy()-size.Y)/2,
	)
}
