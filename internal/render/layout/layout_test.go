package layout

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	r := image.Rect(0, 0, 100, 50)
	require.Equal(t, r, Normalize(r))
	require.Equal(t, image.Rect(0, 0, 10, 10), Normalize(image.Rectangle{Min: image.Pt(10, 10)}))
}

func TestSplitHorizontalClamps(t *testing.T) {
	r := image.Rect(0, 0, 1920, 1080)

	top, bottom := SplitHorizontal(r, 440)
	require.Equal(t, image.Rect(0, 0, 1920, 440), top)
	require.Equal(t, image.Rect(0, 440, 1920, 1080), bottom)

	top, bottom = SplitHorizontal(r, 5000)
	require.Equal(t, r, top)
	require.True(t, bottom.Empty())

	top, _ = SplitHorizontal(r, -3)
	require.True(t, top.Empty())
}

func TestAnchors(t *testing.T) {
	r := image.Rect(0, 0, 1920, 1080)
	require.Equal(t, image.Pt(40, 40), AnchorTopLeft(r, 40))
	require.Equal(t, image.Pt(1920-360-40, 40), AnchorTopRight(r, image.Pt(360, 360), 40))
	require.Equal(t, image.Pt(810, 490), CenterIn(r, image.Pt(300, 100)))
}
