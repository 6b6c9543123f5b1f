package web

import (
	"fmt"
	"net"
	"os"
	"strconv"
)

const (
	EnvListenAddr = "IMAGECLOCK_LISTEN"
	EnvDevMode    = "IMAGECLOCK_DEV"
)

// ServerConfig describes the optional status API listener.
// An empty ListenAddr disables it; the device ships that way and the simulator
// defaults to :8080.
type ServerConfig struct {
	ListenAddr string
	DevMode    bool
}

func (c ServerConfig) Enabled() bool { return c.ListenAddr != "" }

// Validate rejects listen addresses that are not host:port.
func (c ServerConfig) Validate() error {
	if !c.Enabled() {
		return nil
	}
	if _, _, err := net.SplitHostPort(c.ListenAddr); err != nil {
		return fmt.Errorf("listen address %q: %w", c.ListenAddr, err)
	}
	return nil
}

// ServerConfigFromEnv applies IMAGECLOCK_LISTEN and IMAGECLOCK_DEV on top of base.
// IMAGECLOCK_LISTEN set to the empty string turns the server off.
func ServerConfigFromEnv(base ServerConfig) (ServerConfig, error) {
	cfg := base
	if raw, ok := os.LookupEnv(EnvListenAddr); ok {
		cfg.ListenAddr = raw
	}
	if raw := os.Getenv(EnvDevMode); raw != "" {
		dev, err := strconv.ParseBool(raw)
		if err != nil {
			return ServerConfig{}, fmt.Errorf("%s must be a boolean (got %q): %w", EnvDevMode, raw, err)
		}
		cfg.DevMode = dev
	}
	if err := cfg.Validate(); err != nil {
		return ServerConfig{}, fmt.Errorf("%s: %w", EnvListenAddr, err)
	}
	return cfg, nil
}
