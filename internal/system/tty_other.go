//go:build !linux

package system

import "errors"

const (
	kdText     = 0x00
	kdGraphics = 0x01
)

var errUnsupported = errors.New("console control is only available on linux")

func setMode([]string, int) error { return errUnsupported }

func writeVT([]string, string) error { return errUnsupported }
