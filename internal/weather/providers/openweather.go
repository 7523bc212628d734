package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/i474232898/weather-forecast-view/internal/weather"
)

// DefaultOpenWeatherBaseURL is the OpenWeatherMap 2.5 API root.
const DefaultOpenWeatherBaseURL = "https://api.openweathermap.org/data/2.5"

// ErrDecode is returned when a success response cannot be decoded.
var ErrDecode = errors.New("malformed forecast payload")

// OpenWeatherConfig holds the settings of an OpenWeatherProvider. The API key
// is passed in once at construction and never re-read.
type OpenWeatherConfig struct {
	APIKey  string
	BaseURL string

	// RequestsPerSecond <= 0 disables outbound rate limiting.
	RequestsPerSecond float64
	Burst             int
}

// OpenWeatherProvider implements weather.Forecaster for the OpenWeatherMap
// 5 day / 3 hour forecast endpoint.
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenWeatherProvider(client *http.Client, cfg OpenWeatherConfig) *OpenWeatherProvider {
	cb := newCircuitBreaker("openweather", gobreaker.Settings{
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     30 * time.Second,
	})

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultOpenWeatherBaseURL
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	return &OpenWeatherProvider{
		name:    "openweathermap",
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		httpCfg: HTTPClientConfig{
			Client:  client,
			Limiter: limiter,
		},
		circuit: cb,
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

// BreakerState reports the circuit breaker state ("closed", "half-open" or
// "open"). It is informational: searches are sent regardless.
func (p *OpenWeatherProvider) BreakerState() string {
	return p.circuit.State().String()
}

// Forecast looks up the forecast for city. The city text is sent verbatim
// (URL-encoded) as the q parameter. A non-success answer from the remote is
// reported as weather.ErrNotFound.
func (p *OpenWeatherProvider) Forecast(ctx context.Context, city string) (weather.Batch, error) {
	buildRequest := func(ctx context.Context) (*http.Request, error) {
		values := url.Values{}
		values.Set("q", city)
		values.Set("APPID", p.apiKey)
		values.Set("units", "metric")

		u := fmt.Sprintf("%s/forecast?%s", p.baseURL, values.Encode())
		return http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	}

	resp, err := doRequest(ctx, p.httpCfg, p.circuit, buildRequest, readErrorMessage)
	if err != nil {
		var se *statusError
		if errors.As(err, &se) {
			return weather.Batch{}, fmt.Errorf("%w: %q (status %d: %s)", weather.ErrNotFound, city, se.Code, se.Body)
		}
		return weather.Batch{}, err
	}
	defer resp.Body.Close()

	var payload forecastPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.Batch{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	return payload.toBatch(), nil
}

type forecastPayload struct {
	City struct {
		Name     string `json:"name"`
		Country  string `json:"country"`
		Timezone int    `json:"timezone"`
	} `json:"city"`
	List []struct {
		Dt    int64  `json:"dt"`
		DtTxt string `json:"dt_txt"`
		Main  struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
	} `json:"list"`
}

func (p forecastPayload) toBatch() weather.Batch {
	entries := make([]weather.Entry, 0, len(p.List))
	for _, item := range p.List {
		description := ""
		if len(item.Weather) > 0 {
			description = item.Weather[0].Description
		}
		entries = append(entries, weather.Entry{
			Dt:            item.Dt,
			TimestampText: item.DtTxt,
			TemperatureC:  item.Main.Temp,
			Description:   description,
		})
	}

	return weather.Batch{
		City: weather.City{
			Name:           p.City.Name,
			Country:        p.City.Country,
			TimezoneOffset: p.City.Timezone,
		},
		Entries: entries,
	}
}

// readErrorMessage extracts the "message" field OpenWeatherMap puts in error
// bodies, falling back to the raw text.
func readErrorMessage(resp *http.Response) string {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return ""
	}

	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Message != "" {
		return body.Message
	}
	return strings.TrimSpace(string(raw))
}
