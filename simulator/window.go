package main

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/rook-computer/imageclock/internal/input"
	"github.com/rook-computer/imageclock/internal/render"
)

// window shows the frames presented by the clock and forwards keyboard, mouse
// and touch input to it.
type window struct {
	presenter *render.SnapshotPresenter
	events    *input.ChanSource
	done      <-chan error

	pixels   []byte
	touchIDs []ebiten.TouchID
	err      error
}

func newWindow(presenter *render.SnapshotPresenter, events *input.ChanSource, done <-chan error) *window {
	return &window{
		presenter: presenter,
		events:    events,
		done:      done,
		pixels:    make([]byte, 4*render.CanvasWidth*render.CanvasHeight),
	}
}

func (w *window) Update() error {
	select {
	case err := <-w.done:
		w.err = err
		return ebiten.Termination
	default:
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		w.events.Send(input.Event{Kind: input.Quit})
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		w.events.Send(input.Event{Kind: input.PointerDown, Pos: image.Pt(x, y)})
	}
	w.touchIDs = inpututil.AppendJustPressedTouchIDs(w.touchIDs[:0])
	for _, id := range w.touchIDs {
		x, y := ebiten.TouchPosition(id)
		w.events.Send(input.Event{Kind: input.PointerDown, Pos: image.Pt(x, y)})
	}
	return nil
}

func (w *window) Draw(screen *ebiten.Image) {
	if w.presenter.CopyPixels(w.pixels) {
		screen.WritePixels(w.pixels)
	}
}

// Layout keeps the logical canvas size; ebiten scales it to the window.
func (w *window) Layout(outsideWidth, outsideHeight int) (int, int) {
	return render.CanvasWidth, render.CanvasHeight
}
