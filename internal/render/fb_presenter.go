package render

import (
	"image"
	"image/color"
	"image/draw"

	fb "github.com/gonutz/framebuffer"
	xdraw "golang.org/x/image/draw"
)

const DefaultFramebuffer = "/dev/fb0"

// FBPresenter copies frames to the Linux framebuffer, scaling when the device
// resolution differs from the canvas.
type FBPresenter struct {
	fbDev  *fb.Device
	Logger Logger
}

func OpenFramebuffer(path string, logger Logger) (*FBPresenter, error) {
	if path == "" {
		path = DefaultFramebuffer
	}
	dev, err := fb.Open(path)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = nopLogger{}
	}
	bounds := dev.Bounds()
	logger.Infof("fb", "framebuffer %s open, bounds=%dx%d", path, bounds.Dx(), bounds.Dy())
	return &FBPresenter{fbDev: dev, Logger: logger}, nil
}

func (p *FBPresenter) Present(frame *image.RGBA) error {
	if p.fbDev == nil {
		return nil
	}
	blitToFB(p.fbDev, frame)
	return nil
}

func (p *FBPresenter) Close() error {
	if p.fbDev == nil {
		return nil
	}
	// Leave a black screen behind rather than the last frame.
	draw.Draw(p.fbDev, p.fbDev.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	p.fbDev.Close()
	p.fbDev = nil
	return nil
}

// blitToFB writes canvas to dst, nearest-neighbour scaling to dst's bounds.
func blitToFB(dst draw.Image, canvas *image.RGBA) {
	bounds := dst.Bounds()
	if bounds.Size() == canvas.Bounds().Size() {
		draw.Draw(dst, bounds, canvas, canvas.Bounds().Min, draw.Src)
		return
	}
	xdraw.NearestNeighbor.Scale(dst, bounds, canvas, canvas.Bounds(), xdraw.Src, nil)
}
