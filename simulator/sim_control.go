package main

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"
)

// SimFaults make the fake readout endpoints misbehave so the clock's fallback
// paths can be watched in the window and through /api/v1/status.
type SimFaults struct {
	TemperatureFail bool `json:"temperatureFail"`
	WeatherFail     bool `json:"weatherFail"`
	// Malformed returns 200 with a body missing the expected field.
	Malformed bool `json:"malformed"`
	DelayMs   int  `json:"delayMs"`
}

type SimReadouts struct {
	Temperature float64 `json:"temperature"`
	Condition   string  `json:"condition"`
}

type SimControl struct {
	mu       sync.RWMutex
	readouts SimReadouts
	faults   SimFaults
	startup  SimReadouts
	hits     map[string]int
}

func NewSimControl(initial SimReadouts) *SimControl {
	return &SimControl{readouts: initial, startup: initial, hits: map[string]int{}}
}

func (c *SimControl) Readouts() SimReadouts {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.readouts
}

func (c *SimControl) SetReadouts(v SimReadouts) {
	c.mu.Lock()
	c.readouts = v
	c.mu.Unlock()
}

func (c *SimControl) Faults() SimFaults {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.faults
}

func (c *SimControl) SetFaults(v SimFaults) {
	c.mu.Lock()
	c.faults = v
	c.mu.Unlock()
}

func (c *SimControl) Reset() {
	c.mu.Lock()
	c.faults = SimFaults{}
	c.readouts = c.startup
	c.hits = map[string]int{}
	c.mu.Unlock()
}

// Hits returns how often each fake endpoint was requested.
func (c *SimControl) Hits() map[string]int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]int, len(c.hits))
	for k, v := range c.hits {
		out[k] = v
	}
	return out
}

func (c *SimControl) serveReadout(w http.ResponseWriter, r *http.Request, name string) {
	if r.Method != http.MethodGet {
		writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	c.mu.Lock()
	c.hits[name]++
	faults := c.faults
	readouts := c.readouts
	c.mu.Unlock()

	if faults.DelayMs > 0 {
		select {
		case <-r.Context().Done():
			return
		case <-time.After(time.Duration(faults.DelayMs) * time.Millisecond):
		}
	}
	if (name == "temperature" && faults.TemperatureFail) || (name == "weather" && faults.WeatherFail) {
		writeSimError(w, http.StatusServiceUnavailable, "simulated "+name+" failure")
		return
	}
	if faults.Malformed {
		writeSimJSON(w, http.StatusOK, map[string]any{"sensor": "sim"})
		return
	}
	if name == "temperature" {
		writeSimJSON(w, http.StatusOK, map[string]any{"Temperature": readouts.Temperature})
		return
	}
	writeSimJSON(w, http.StatusOK, map[string]any{"condition": readouts.Condition})
}

func registerSimEndpoints(handler http.Handler, control *SimControl) {
	mux, ok := handler.(*http.ServeMux)
	if !ok {
		// Only supported when the simulator uses the default mux.
		return
	}

	mux.HandleFunc("/sim/temperature", func(w http.ResponseWriter, r *http.Request) {
		control.serveReadout(w, r, "temperature")
	})
	mux.HandleFunc("/sim/weather", func(w http.ResponseWriter, r *http.Request) {
		control.serveReadout(w, r, "weather")
	})

	mux.HandleFunc("/sim/reset", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		control.Reset()
		writeSimJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	mux.HandleFunc("/sim/readouts", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeSimJSON(w, http.StatusOK, map[string]any{"readouts": control.Readouts(), "hits": control.Hits()})
		case http.MethodPost:
			var patch struct {
				Temperature *float64 `json:"temperature"`
				Condition   *string  `json:"condition"`
			}
			if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
				writeSimError(w, http.StatusBadRequest, "invalid json")
				return
			}
			current := control.Readouts()
			if patch.Temperature != nil {
				current.Temperature = *patch.Temperature
			}
			if patch.Condition != nil {
				current.Condition = strings.TrimSpace(*patch.Condition)
			}
			control.SetReadouts(current)
			writeSimJSON(w, http.StatusOK, current)
		default:
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	})

	mux.HandleFunc("/sim/faults", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeSimJSON(w, http.StatusOK, control.Faults())
			return
		case http.MethodPost:
			var patch struct {
				TemperatureFail *bool `json:"temperatureFail"`
				WeatherFail     *bool `json:"weatherFail"`
				Malformed       *bool `json:"malformed"`
				DelayMs         *int  `json:"delayMs"`
			}
			if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
				writeSimError(w, http.StatusBadRequest, "invalid json")
				return
			}
			current := control.Faults()
			if patch.TemperatureFail != nil {
				current.TemperatureFail = *patch.TemperatureFail
			}
			if patch.WeatherFail != nil {
				current.WeatherFail = *patch.WeatherFail
			}
			if patch.Malformed != nil {
				current.Malformed = *patch.Malformed
			}
			if patch.DelayMs != nil {
				current.DelayMs = max(0, *patch.DelayMs)
			}
			control.SetFaults(current)
			writeSimJSON(w, http.StatusOK, current)
			return
		default:
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
	})
}

func writeSimJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeSimError(w http.ResponseWriter, status int, message string) {
	writeSimJSON(w, status, map[string]any{"error": message})
}
