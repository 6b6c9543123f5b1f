package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rook-computer/imageclock/internal/readout"
)

func newSimServer(t *testing.T) (*SimControl, *httptest.Server) {
	t.Helper()
	control := NewSimControl(SimReadouts{Temperature: 68, Condition: "rain"})
	mux := http.NewServeMux()
	registerSimEndpoints(mux, control)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return control, srv
}

func post(t *testing.T, url, body string) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestFakeEndpointsFeedReadoutSources(t *testing.T) {
	control, srv := newSimServer(t)
	fetcher := readout.NewHTTPFetcher()
	temp := readout.TemperatureSource{Fetcher: fetcher, URL: srv.URL + "/sim/temperature", Timeout: time.Second}
	weather := readout.WeatherSource{Fetcher: fetcher, URL: srv.URL + "/sim/weather", Timeout: time.Second}

	v, err := temp.Fetch(context.Background())
	require.NoError(t, err)
	require.Equal(t, 68.0, v)
	c, err := weather.Fetch(context.Background())
	require.NoError(t, err)
	require.Equal(t, "rain", c)

	post(t, srv.URL+"/sim/readouts", `{"temperature": 31.5, "condition": " snow "}`)
	v, err = temp.Fetch(context.Background())
	require.NoError(t, err)
	require.Equal(t, 31.5, v)
	c, err = weather.Fetch(context.Background())
	require.NoError(t, err)
	require.Equal(t, "snow", c)

	require.Equal(t, map[string]int{"temperature": 2, "weather": 2}, control.Hits())
}

func TestFaults(t *testing.T) {
	control, srv := newSimServer(t)
	fetcher := readout.NewHTTPFetcher()
	temp := readout.TemperatureSource{Fetcher: fetcher, URL: srv.URL + "/sim/temperature", Timeout: 200 * time.Millisecond}
	weather := readout.WeatherSource{Fetcher: fetcher, URL: srv.URL + "/sim/weather", Timeout: 200 * time.Millisecond}

	post(t, srv.URL+"/sim/faults", `{"temperatureFail": true}`)
	_, err := temp.Fetch(context.Background())
	require.ErrorContains(t, err, "unexpected status 503")
	_, err = weather.Fetch(context.Background())
	require.NoError(t, err, "faults are per endpoint")

	post(t, srv.URL+"/sim/faults", `{"temperatureFail": false, "malformed": true}`)
	_, err = temp.Fetch(context.Background())
	require.ErrorContains(t, err, "no Temperature field")
	_, err = weather.Fetch(context.Background())
	require.ErrorContains(t, err, "no condition field")

	post(t, srv.URL+"/sim/faults", `{"malformed": false, "delayMs": 1000}`)
	_, err = temp.Fetch(context.Background())
	require.Error(t, err, "slow endpoint hits the fetch timeout")

	post(t, srv.URL+"/sim/reset", `{}`)
	require.Equal(t, SimFaults{}, control.Faults())
	require.Equal(t, SimReadouts{Temperature: 68, Condition: "rain"}, control.Readouts())
}

func TestSimEndpointsRejectBadRequests(t *testing.T) {
	_, srv := newSimServer(t)

	resp, err := http.Post(srv.URL+"/sim/faults", "application/json", strings.NewReader("{"))
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = http.Post(srv.URL+"/sim/temperature", "application/json", nil)
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestHostPort(t *testing.T) {
	require.Equal(t, "127.0.0.1:8080", hostPort(":8080"))
	require.Equal(t, "127.0.0.1:9000", hostPort("[::]:9000"))
	require.Equal(t, "127.0.0.1:9000", hostPort("0.0.0.0:9000"))
	require.Equal(t, "10.0.0.2:80", hostPort("10.0.0.2:80"))
}
