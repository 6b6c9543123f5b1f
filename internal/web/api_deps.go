package web

import (
	"time"

	"github.com/rook-computer/imageclock/internal/state"
)

// StatusSource abstracts the state store read by the API.
type StatusSource interface {
	Snapshot() state.State
}

type APIV1Deps struct {
	Status StatusSource
	// Now is used for uptime; defaults to time.Now.
	Now func() time.Time
}

func (d APIV1Deps) withDefaults() APIV1Deps {
	if d.Status == nil {
		d.Status = state.NewStore()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return d
}
