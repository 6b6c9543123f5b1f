package app

import (
	"bytes"
	"context"
	"errors"
	"image"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rook-computer/imageclock/internal/config"
	"github.com/rook-computer/imageclock/internal/input"
	"github.com/rook-computer/imageclock/internal/render"
	"github.com/rook-computer/imageclock/internal/state"
	"github.com/rook-computer/imageclock/internal/web"
)

func TestAppRunUntilQuit(t *testing.T) {
	clock, store := newTestClock(t, config.Default(), nil)
	presenter := &render.SnapshotPresenter{}
	events := input.NewChanSource(4)

	a := New(store, clock, presenter, events, web.Disabled{})
	a.Interval = time.Millisecond
	a.Now = func() time.Time { return noonEDT }

	done := make(chan error, 1)
	go func() { done <- a.Run(context.Background()) }()

	require.Eventually(t, func() bool { return presenter.Frames() >= 3 }, 2*time.Second, time.Millisecond)
	require.Equal(t, state.RUNNING, store.Snapshot().Phase)
	events.Send(input.Event{Kind: input.Quit})

	select {
	case err := <-done:
		require.ErrorIs(t, err, ErrQuit)
	case <-time.After(2 * time.Second):
		t.Fatal("app did not stop on quit")
	}
	snap := store.Snapshot()
	require.Equal(t, state.STOPPED, snap.Phase)
	require.Equal(t, "default", snap.Theme)

	pix := make([]byte, 4*render.CanvasWidth*render.CanvasHeight)
	require.True(t, presenter.CopyPixels(pix))
}

func TestAppRunCancel(t *testing.T) {
	clock, store := newTestClock(t, config.Default(), nil)
	a := New(store, clock, nil, nil, nil)
	a.Interval = time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	require.NoError(t, a.Run(ctx))
	require.Equal(t, state.STOPPED, store.Snapshot().Phase)
}

type flakyPresenter struct {
	mu  sync.Mutex
	err error
}

func (p *flakyPresenter) setErr(err error) {
	p.mu.Lock()
	p.err = err
	p.mu.Unlock()
}

func (p *flakyPresenter) Present(*image.RGBA) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

func (p *flakyPresenter) Close() error { return nil }

func TestStepPresentFailureMarksError(t *testing.T) {
	clock, store := newTestClock(t, config.Default(), nil)
	presenter := &flakyPresenter{}
	a := New(store, clock, presenter, nil, nil)
	a.Now = func() time.Time { return noonEDT }
	store.Start("default", noonEDT)

	presenter.setErr(errors.New("fb0: device gone"))
	require.False(t, a.Step(context.Background()))
	snap := store.Snapshot()
	require.Equal(t, state.ERROR, snap.Phase)
	require.Equal(t, "fb0: device gone", snap.Err)

	presenter.setErr(nil)
	require.False(t, a.Step(context.Background()))
	snap = store.Snapshot()
	require.Equal(t, state.RUNNING, snap.Phase)
	require.Empty(t, snap.Err)
}

type failingSource struct{ *input.ChanSource }

func (failingSource) Start(context.Context) error { return errors.New("no input devices") }

func TestAppRunInputFailureMarksError(t *testing.T) {
	clock, store := newTestClock(t, config.Default(), nil)
	a := New(store, clock, nil, failingSource{input.NewChanSource(1)}, nil)

	err := a.Run(context.Background())
	require.EqualError(t, err, "no input devices")
	snap := store.Snapshot()
	require.Equal(t, state.ERROR, snap.Phase)
	require.Equal(t, "no input devices", snap.Err)
}

func TestFileLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewFileLogger(&buf)
	l.Infof("readout", "temperature %d", 72)
	l.Errorf("fb", "gone")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	require.Contains(t, lines[0], " [INFO] readout: temperature 72")
	require.Contains(t, lines[1], " [ERROR] fb: gone")
	_, err := time.Parse(time.RFC3339, strings.Fields(lines[0])[0])
	require.NoError(t, err)
}
