// Package weather proxies current-conditions lookups to OpenWeatherMap and
// reshapes the upstream payload into the compact report the API serves.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/ignite/fitness-api/internal/config"
	"github.com/ignite/fitness-api/internal/pkg/httpretry"
)

// DefaultCity is used when a lookup omits the city.
const DefaultCity = "San Jose"

// Client is the OpenWeatherMap client.
type Client struct {
	apiKey  string
	baseURL string
	units   string
	lang    string
	http    httpretry.HTTPDoer
}

// NewClient creates a weather client from configuration. Requests retry on
// transient upstream failures.
func NewClient(cfg config.WeatherConfig) *Client {
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		units:   cfg.Units,
		lang:    cfg.Lang,
		http:    httpretry.New(&http.Client{Timeout: cfg.Timeout()}, 2),
	}
}

// IsConfigured returns true if the API key is set.
func (c *Client) IsConfigured() bool {
	return c.apiKey != ""
}

// Current fetches current conditions for a city. An empty city falls back to
// DefaultCity.
func (c *Client) Current(ctx context.Context, city string) (*Report, error) {
	if !c.IsConfigured() {
		return nil, fmt.Errorf("weather lookup unavailable: OPENWEATHER_API_KEY is not set")
	}
	if city == "" {
		city = DefaultCity
	}

	params := url.Values{}
	params.Set("q", city)
	params.Set("appid", c.apiKey)
	params.Set("units", c.units)
	params.Set("lang", c.lang)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/weather?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read weather response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("weather API %d for %q: %s", resp.StatusCode, city, string(body))
	}

	var data conditionsResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("parse weather response: %w", err)
	}

	report := &Report{
		City:        data.Name,
		Temperature: data.Main.Temp,
		FeelsLike:   data.Main.FeelsLike,
		Humidity:    data.Main.Humidity,
		Wind:        data.Wind.Speed,
		FetchedAt:   time.Now().UTC(),
	}
	if len(data.Weather) > 0 {
		report.Description = data.Weather[0].Description
	}
	return report, nil
}
