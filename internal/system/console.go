// Package system prepares the Linux console for a full-screen framebuffer app.
package system

type Logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// Console switches the active VT into graphics mode with the cursor hidden and
// restores it afterwards. Failures are logged; the clock runs either way.
type Console struct {
	Logger Logger
	// Paths are the VT devices tried in order.
	Paths []string

	entered bool
}

func NewConsole(logger Logger) *Console {
	return &Console{Logger: logger, Paths: []string{"/dev/tty", "/dev/tty0"}}
}

func (c *Console) Enter() {
	if err := setMode(c.Paths, kdGraphics); err != nil {
		c.errorf("KD_GRAPHICS failed: %v", err)
	} else {
		c.infof("KD_GRAPHICS set")
		c.entered = true
	}
	if err := writeVT(c.Paths, hideCursor); err != nil {
		c.errorf("hide cursor failed: %v", err)
	}
}

// Restore undoes Enter. It is safe to call more than once.
func (c *Console) Restore() {
	if c.entered {
		if err := setMode(c.Paths, kdText); err != nil {
			c.errorf("KD_TEXT failed: %v", err)
		} else {
			c.infof("KD_TEXT set")
		}
		c.entered = false
	}
	if err := writeVT(c.Paths, showCursor); err != nil {
		c.errorf("show cursor failed: %v", err)
	}
}

const (
	hideCursor = "\x1b[?25l"
	showCursor = "\x1b[?25h"
)

func (c *Console) infof(format string, args ...interface{}) {
	if c.Logger != nil {
		c.Logger.Infof("tty", format, args...)
	}
}

func (c *Console) errorf(format string, args ...interface{}) {
	if c.Logger != nil {
		c.Logger.Errorf("tty", format, args...)
	}
}
