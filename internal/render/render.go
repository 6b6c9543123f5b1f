package render

import (
	"image"
	"sync"
)

// Presenter shows a finished frame on an output device.
type Presenter interface {
	Present(frame *image.RGBA) error
	Close() error
}

// Logger is the component-tagged logger of the app package.
type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

// NoopPresenter discards frames.
type NoopPresenter struct{}

func (NoopPresenter) Present(*image.RGBA) error { return nil }
func (NoopPresenter) Close() error              { return nil }

// SnapshotPresenter keeps a copy of the last presented frame. Readers such as
// a desktop window poll it from another goroutine.
type SnapshotPresenter struct {
	mu    sync.Mutex
	frame *image.RGBA
	count uint64
}

func (p *SnapshotPresenter) Present(frame *image.RGBA) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.frame == nil || p.frame.Bounds() != frame.Bounds() {
		p.frame = image.NewRGBA(frame.Bounds())
	}
	copy(p.frame.Pix, frame.Pix)
	p.count++
	return nil
}

func (p *SnapshotPresenter) Close() error { return nil }

// CopyPixels copies the last frame into dst (RGBA, row-major) and reports
// whether a frame was available.
func (p *SnapshotPresenter) CopyPixels(dst []byte) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.frame == nil || len(dst) < len(p.frame.Pix) {
		return false
	}
	copy(dst, p.frame.Pix)
	return true
}

// Frames is the number of frames presented so far.
func (p *SnapshotPresenter) Frames() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.count
}
