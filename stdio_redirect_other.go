//go:build !linux

package main

import (
	"fmt"
	"os"
)

// redirectStdIO swaps the os.Stdout/os.Stderr handles only. Output written by the
// runtime itself, such as panic traces, still reaches the original descriptors.
func redirectStdIO(path string) error {
	if path == "" {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open stdio log: %w", err)
	}
	os.Stdout, os.Stderr = f, f
	return nil
}
