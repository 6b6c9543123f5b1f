package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rook-computer/imageclock/internal/state"
)

var started = time.Date(2024, time.June, 12, 12, 0, 0, 0, time.UTC)

func runningStore() *state.Store {
	store := state.NewStore()
	store.Start("retro", started)
	store.PublishFrame(state.FrameInfo{
		At:      started.Add(time.Minute),
		Display: started.Add(time.Minute + time.Hour),
		Sky:     state.SkyInfo{IsDay: true, Moon: "first_quarter", Sunrise: started.Add(-7 * time.Hour), Sunset: started.Add(8 * time.Hour)},
		Temperature: state.TemperatureInfo{
			Configured: true, Value: 68.5, LastFetch: started.Add(30 * time.Second),
		},
		Weather: state.WeatherInfo{Configured: false},
		Drift: state.DriftInfo{
			Offsets:   map[string]state.Offset{"strip": {X: -2, Y: 3}, "icon": {X: 6, Y: 0}},
			NextShift: started.Add(5 * time.Minute),
		},
		Touches: 1,
	})
	return store
}

func testDeps(store *state.Store) APIV1Deps {
	return APIV1Deps{Status: store, Now: func() time.Time { return started.Add(90 * time.Second) }}
}

func TestStatusEndpoint(t *testing.T) {
	mux := NewDefaultMux(APIV1Config{Deps: testDeps(runningStore())})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/status", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "running", body["phase"])
	require.Equal(t, "retro", body["theme"])
	require.EqualValues(t, 90, body["uptimeSeconds"])
	require.EqualValues(t, 1, body["frames"])
	require.Equal(t, "01:01 PM", body["displayTime"])
	require.EqualValues(t, 1, body["activeTouches"])

	sky := body["sky"].(map[string]any)
	require.Equal(t, true, sky["isDay"])
	require.Equal(t, "first_quarter", sky["moonPhase"])

	temp := body["temperature"].(map[string]any)
	require.Equal(t, 68.5, temp["value"])
	require.Equal(t, "2024-06-12T12:00:30Z", temp["lastFetch"])

	weather := body["weather"].(map[string]any)
	require.Equal(t, false, weather["configured"])
	require.Nil(t, weather["value"])
	require.NotContains(t, weather, "lastFetch")

	offsets := body["drift"].(map[string]any)["offsets"].([]any)
	require.Len(t, offsets, 2)
	require.Equal(t, "icon", offsets[0].(map[string]any)["element"], "offsets are sorted by element")
}

func TestStatusRejectsPost(t *testing.T) {
	mux := NewDefaultMux(APIV1Config{Deps: testDeps(runningStore())})
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/status", nil))
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	require.JSONEq(t, `{"error":"method_not_allowed","message":"method not allowed"}`, rec.Body.String())
}

func TestHealthz(t *testing.T) {
	store := runningStore()
	mux := NewDefaultMux(APIV1Config{Deps: testDeps(store)})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"phase":"running"}`, rec.Body.String())

	store.Fail(errors.New("framebuffer closed"))
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Contains(t, rec.Body.String(), "framebuffer closed")
}

func TestDevCORS(t *testing.T) {
	h := WithDevCORS(NewDefaultMux(APIV1Config{Deps: testDeps(runningStore())}))

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/status", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, "GET,HEAD,OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestHTTPServerLifecycle(t *testing.T) {
	srv := NewHTTPServer(ServerConfig{ListenAddr: "127.0.0.1:0"}, testDeps(runningStore()))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, srv.Start(ctx))
	addr := srv.ListenAddr()
	require.NotEmpty(t, addr)

	resp, err := http.Get("http://" + addr + "/healthz")
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, srv.Stop())
	require.NoError(t, srv.Stop())
	require.Error(t, srv.Start(ctx), "a stopped server cannot restart")
}

func TestServerConfigFromEnv(t *testing.T) {
	t.Setenv(EnvDevMode, "")
	base := ServerConfig{ListenAddr: ":8080"}

	t.Setenv(EnvListenAddr, ":9090")
	cfg, err := ServerConfigFromEnv(base)
	require.NoError(t, err)
	require.Equal(t, ServerConfig{ListenAddr: ":9090"}, cfg)

	t.Setenv(EnvListenAddr, "")
	t.Setenv(EnvDevMode, "true")
	cfg, err = ServerConfigFromEnv(base)
	require.NoError(t, err)
	require.Equal(t, ServerConfig{DevMode: true}, cfg)
	require.False(t, cfg.Enabled())

	t.Setenv(EnvDevMode, "maybe")
	_, err = ServerConfigFromEnv(base)
	require.ErrorContains(t, err, EnvDevMode)

	t.Setenv(EnvDevMode, "")
	t.Setenv(EnvListenAddr, "8080")
	_, err = ServerConfigFromEnv(base)
	require.ErrorContains(t, err, EnvListenAddr)
}

func TestNewServerDisabledWithoutAddress(t *testing.T) {
	srv := NewServer(ServerConfig{}, testDeps(runningStore()), nil)
	require.Equal(t, Disabled{}, srv)
	require.NoError(t, srv.Start(context.Background()))
	require.NoError(t, srv.Stop())

	_, ok := NewServer(ServerConfig{ListenAddr: "127.0.0.1:0"}, testDeps(runningStore()), nil).(*HTTPServer)
	require.True(t, ok)
}
