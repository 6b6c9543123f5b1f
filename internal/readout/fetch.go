// Package readout caches externally sourced values (temperature, weather) and
// refreshes them at most once per period.
package readout

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// DefaultTimeout bounds a single fetch.
const DefaultTimeout = 15 * time.Second

const maxBodyBytes = 1 << 20

// Fetcher retrieves a JSON document.
type Fetcher interface {
	FetchJSON(ctx context.Context, url string, timeout time.Duration) ([]byte, error)
}

// HTTPFetcher performs GET requests.
type HTTPFetcher struct {
	Client *http.Client
}

func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{Client: &http.Client{}}
}

func (f *HTTPFetcher) FetchJSON(ctx context.Context, url string, timeout time.Duration) ([]byte, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	req.Header.Set("Accept", "application/json")

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, errors.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, errors.Wrap(err, "read response")
	}
	return body, nil
}

// Source produces a fresh value of T.
type Source[T any] interface {
	Fetch(ctx context.Context) (T, error)
}

// TemperatureSource reads the numeric Temperature field (°F) of a JSON endpoint.
type TemperatureSource struct {
	Fetcher Fetcher
	URL     string
	Timeout time.Duration
}

func (s TemperatureSource) Fetch(ctx context.Context) (float64, error) {
	body, err := s.Fetcher.FetchJSON(ctx, s.URL, s.Timeout)
	if err != nil {
		return 0, errors.Wrapf(err, "fetch temperature from %s", s.URL)
	}
	var payload struct {
		Temperature *float64 `json:"Temperature"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return 0, errors.Wrap(err, "decode temperature payload")
	}
	if payload.Temperature == nil {
		return 0, errors.New("temperature payload has no Temperature field")
	}
	return *payload.Temperature, nil
}

// WeatherSource reads the condition name of a JSON endpoint.
type WeatherSource struct {
	Fetcher Fetcher
	URL     string
	Timeout time.Duration
}

func (s WeatherSource) Fetch(ctx context.Context) (string, error) {
	body, err := s.Fetcher.FetchJSON(ctx, s.URL, s.Timeout)
	if err != nil {
		return "", errors.Wrapf(err, "fetch weather from %s", s.URL)
	}
	var payload struct {
		Condition *string `json:"condition"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", errors.Wrap(err, "decode weather payload")
	}
	if payload.Condition == nil || strings.TrimSpace(*payload.Condition) == "" {
		return "", errors.New("weather payload has no condition field")
	}
	return strings.TrimSpace(*payload.Condition), nil
}
