//go:build linux

package input

import (
	"context"
	"encoding/binary"
	"image"
	"os"
	"path/filepath"
	"sync"
	"unsafe"

	"golang.org/x/sys/unix"
)

// EvdevSource reads /dev/input/event* devices.
type EvdevSource struct {
	Logger Logger
	Canvas image.Point
	// Glob selects the devices to read; defaults to /dev/input/event*.
	Glob string

	ch     chan Event
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
}

func NewEvdevSource(canvas image.Point, logger Logger) *EvdevSource {
	return &EvdevSource{Logger: logger, Canvas: canvas, ch: make(chan Event, 64)}
}

func (s *EvdevSource) Events() <-chan Event { return s.ch }

// Start opens every matching device. It is best-effort: with no devices it
// logs and returns nil, leaving the clock without input.
func (s *EvdevSource) Start(ctx context.Context) error {
	glob := s.Glob
	if glob == "" {
		glob = "/dev/input/event*"
	}
	paths, err := filepath.Glob(glob)
	if err != nil || len(paths) == 0 {
		s.infof("no evdev devices found under %s", glob)
		return nil
	}
	ctx, s.cancel = context.WithCancel(ctx)
	for _, path := range paths {
		fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
		if err != nil {
			s.errorf("open %s: %v", path, err)
			continue
		}
		dec := newDecoder(s.Canvas, absRange(fd, absX, absMTPosX), absRange(fd, absY, absMTPosY))
		s.infof("reading %s", path)
		s.wg.Add(1)
		go s.readDevice(ctx, fd, path, dec)
	}
	return nil
}

func (s *EvdevSource) Stop() error {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	s.once.Do(func() { close(s.ch) })
	return nil
}

func (s *EvdevSource) readDevice(ctx context.Context, fd int, path string, dec *decoder) {
	defer s.wg.Done()
	f := os.NewFile(uintptr(fd), path)
	defer func() {
		_ = f.Close()
	}()

	// input_event = timeval + u16 type + u16 code + s32 value.
	tvSize := int(binary.Size(unix.Timeval{}))
	eventSize := tvSize + 2 + 2 + 4
	buf := make([]byte, eventSize*64)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		pollFds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		if _, err := unix.Poll(pollFds, 250); err != nil {
			if err == unix.EINTR {
				continue
			}
			s.errorf("poll %s: %v", path, err)
			return
		}
		if pollFds[0].Revents&unix.POLLIN == 0 {
			continue
		}

		n, err := unix.Read(fd, buf)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EINTR {
				continue
			}
			s.errorf("read %s: %v", path, err)
			return
		}

		for off := 0; off+eventSize <= n; off += eventSize {
			rec := buf[off : off+eventSize]
			typ := binary.LittleEndian.Uint16(rec[tvSize : tvSize+2])
			code := binary.LittleEndian.Uint16(rec[tvSize+2 : tvSize+4])
			value := int32(binary.LittleEndian.Uint32(rec[tvSize+4 : tvSize+8]))
			if ev, ok := dec.feed(typ, code, value); ok {
				s.send(ev)
			}
		}
	}
}

func (s *EvdevSource) send(ev Event) {
	select {
	case s.ch <- ev:
	default:
		s.errorf("event queue full, dropping %s", ev.Kind)
	}
}

// inputAbsinfo mirrors struct input_absinfo.
type inputAbsinfo struct {
	Value      int32
	Minimum    int32
	Maximum    int32
	Fuzz       int32
	Flat       int32
	Resolution int32
}

// eviocgabs is EVIOCGABS(0): _IOR('E', 0x40 + abs, struct input_absinfo).
const eviocgabs = 0x80184540

// absRange returns the range of the first of codes the device reports.
func absRange(fd int, codes ...uint16) axis {
	for _, code := range codes {
		var info inputAbsinfo
		_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), uintptr(eviocgabs+uint(code)), uintptr(unsafe.Pointer(&info)))
		if errno == 0 && info.Maximum > info.Minimum {
			return axis{min: info.Minimum, max: info.Maximum}
		}
	}
	return axis{}
}

func (s *EvdevSource) infof(format string, args ...interface{}) {
	if s.Logger != nil {
		s.Logger.Infof("input", format, args...)
	}
}

func (s *EvdevSource) errorf(format string, args ...interface{}) {
	if s.Logger != nil {
		s.Logger.Errorf("input", format, args...)
	}
}
