package web

import (
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/rook-computer/imageclock/internal/state"
)

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type skyResponse struct {
	IsDay   bool       `json:"isDay"`
	Moon    string     `json:"moonPhase"`
	Sunrise *time.Time `json:"sunrise,omitempty"`
	Sunset  *time.Time `json:"sunset,omitempty"`
}

type readoutResponse struct {
	Configured bool       `json:"configured"`
	Value      any        `json:"value"`
	LastFetch  *time.Time `json:"lastFetch,omitempty"`
}

type offsetResponse struct {
	Element string `json:"element"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
}

type driftResponse struct {
	Offsets   []offsetResponse `json:"offsets"`
	NextShift *time.Time       `json:"nextShift,omitempty"`
}

type statusResponse struct {
	Phase         string          `json:"phase"`
	Theme         string          `json:"theme"`
	UptimeSeconds int64           `json:"uptimeSeconds"`
	Frames        uint64          `json:"frames"`
	FrameAt       *time.Time      `json:"frameAt,omitempty"`
	DisplayTime   string          `json:"displayTime,omitempty"`
	Sky           skyResponse     `json:"sky"`
	Temperature   readoutResponse `json:"temperature"`
	Weather       readoutResponse `json:"weather"`
	Drift         driftResponse   `json:"drift"`
	Touches       int             `json:"activeTouches"`
	Error         string          `json:"error,omitempty"`
}

func apiV1Router(deps APIV1Deps) http.Handler {
	deps = deps.withDefaults()
	mux := http.NewServeMux()
	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) { handleStatus(w, r, deps) })
	return mux
}

func handleStatus(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, buildStatus(deps.Status.Snapshot(), deps.Now()))
}

func buildStatus(snap state.State, now time.Time) statusResponse {
	f := snap.Frame
	resp := statusResponse{
		Phase:   snap.Phase.String(),
		Theme:   snap.Theme,
		Frames:  snap.Frames,
		FrameAt: timePtr(f.At),
		Sky: skyResponse{
			IsDay:   f.Sky.IsDay,
			Moon:    f.Sky.Moon,
			Sunrise: timePtr(f.Sky.Sunrise),
			Sunset:  timePtr(f.Sky.Sunset),
		},
		Temperature: readoutResponse{
			Configured: f.Temperature.Configured,
			Value:      f.Temperature.Value,
			LastFetch:  timePtr(f.Temperature.LastFetch),
		},
		Weather: readoutResponse{
			Configured: f.Weather.Configured,
			LastFetch:  timePtr(f.Weather.LastFetch),
		},
		Drift:   driftResponse{Offsets: []offsetResponse{}, NextShift: timePtr(f.Drift.NextShift)},
		Touches: f.Touches,
		Error:   snap.Err,
	}
	if !snap.Started.IsZero() {
		resp.UptimeSeconds = int64(now.Sub(snap.Started) / time.Second)
	}
	if !f.Display.IsZero() {
		resp.DisplayTime = f.Display.Format("03:04 PM")
	}
	if f.Weather.Condition != "" {
		resp.Weather.Value = f.Weather.Condition
	}
	for name, off := range f.Drift.Offsets {
		resp.Drift.Offsets = append(resp.Drift.Offsets, offsetResponse{Element: name, X: off.X, Y: off.Y})
	}
	sort.Slice(resp.Drift.Offsets, func(i, j int) bool {
		return resp.Drift.Offsets[i].Element < resp.Drift.Offsets[j].Element
	})
	return resp
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func handleHealthz(deps APIV1Deps) http.HandlerFunc {
	deps = deps.withDefaults()
	return func(w http.ResponseWriter, r *http.Request) {
		snap := deps.Status.Snapshot()
		if snap.Phase == state.ERROR {
			writeAPIError(w, http.StatusServiceUnavailable, "unhealthy", snap.Err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"phase": snap.Phase.String()})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, apiError{Error: code, Message: message})
}
