package state

import (
	"errors"
	"image"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStoreLifecycle(t *testing.T) {
	s := NewStore()
	require.Equal(t, BOOTING, s.Snapshot().Phase)

	at := time.Date(2024, 5, 1, 7, 0, 0, 0, time.UTC)
	s.Start("retro", at)
	snap := s.Snapshot()
	require.Equal(t, RUNNING, snap.Phase)
	require.Equal(t, "retro", snap.Theme)
	require.Equal(t, at, snap.Started)

	s.PublishFrame(FrameInfo{At: at, Touches: 2})
	s.PublishFrame(FrameInfo{At: at.Add(time.Second), Sky: SkyInfo{IsDay: true, Moon: "full"}})
	snap = s.Snapshot()
	require.Equal(t, uint64(2), snap.Frames)
	require.Equal(t, "full", snap.Frame.Sky.Moon)
	require.Zero(t, snap.Frame.Touches)

	s.Fail(errors.New("framebuffer gone"))
	snap = s.Snapshot()
	require.Equal(t, ERROR, snap.Phase)
	require.Equal(t, "framebuffer gone", snap.Err)
	require.Equal(t, "error", snap.Phase.String())

	s.Recover()
	snap = s.Snapshot()
	require.Equal(t, RUNNING, snap.Phase)
	require.Empty(t, snap.Err)

	s.SetPhase(STOPPED)
	s.Recover()
	require.Equal(t, STOPPED, s.Snapshot().Phase, "only ERROR recovers")
}

func TestTouchesPurge(t *testing.T) {
	now := time.Date(2024, 5, 1, 7, 0, 0, 0, time.UTC)
	tt := NewTouches(0)

	tt.Add(pt(10, 10), now)
	tt.Add(pt(20, 20), now.Add(100*time.Millisecond))
	tt.Add(pt(30, 30), now.Add(200*time.Millisecond))
	require.Equal(t, 3, tt.Len())

	tt.Purge(now.Add(299 * time.Millisecond))
	require.Equal(t, 3, tt.Len())

	tt.Purge(now.Add(TouchTTL))
	active := tt.Active()
	require.Len(t, active, 2, "a marker expiring exactly now is gone")
	require.Equal(t, pt(20, 20), active[0].Pos, "creation order is kept")
	require.Equal(t, pt(30, 30), active[1].Pos)

	tt.Purge(now.Add(time.Second))
	require.Zero(t, tt.Len())
}

func TestTouchesActiveIsCopy(t *testing.T) {
	now := time.Now()
	tt := NewTouches(time.Second)
	tt.Add(pt(1, 1), now)
	a := tt.Active()
	a[0].Pos = pt(9, 9)
	require.Equal(t, pt(1, 1), tt.Active()[0].Pos)
}

func pt(x, y int) image.Point { return image.Pt(x, y) }
