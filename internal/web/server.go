package web

import "context"

// Server is the lifecycle the app drives. Start must not block.
type Server interface {
	Start(ctx context.Context) error
	Stop() error
}

// Disabled stands in when no listen address is configured.
type Disabled struct{}

func (Disabled) Start(context.Context) error { return nil }
func (Disabled) Stop() error                 { return nil }

// NewServer returns an HTTPServer for cfg, or Disabled when cfg has no address.
func NewServer(cfg ServerConfig, deps APIV1Deps, logger Logger) Server {
	if !cfg.Enabled() {
		return Disabled{}
	}
	srv := NewHTTPServer(cfg, deps)
	srv.Logger = logger
	return srv
}
