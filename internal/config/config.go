package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type AppConfig struct {
	// OpenWeatherAPIKey is read once at startup. An empty key is not
	// rejected here; the remote API refuses such requests.
	OpenWeatherAPIKey  string
	OpenWeatherBaseURL string

	// HTTPTimeout optionally bounds each outbound forecast request.
	// The default 0 applies no timeout.
	HTTPTimeout time.Duration

	// Outbound rate limiting (OPENWEATHER_RPS <= 0 disables it).
	OpenWeatherRPS   float64
	OpenWeatherBurst int

	// Session retention.
	SessionMaxCount      int           // max number of live sessions (0 = unlimited)
	SessionMaxAge        time.Duration // idle time before a session is pruned (0 = never)
	SessionPruneInterval time.Duration

	Port string
}

// Load reads configuration from environment with sensible defaults.
// Callers load any .env file beforehand.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.OpenWeatherBaseURL = getenvDefault("OPENWEATHER_BASE_URL", "https://api.openweathermap.org/data/2.5")

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "0"); err != nil {
		return nil, err
	}

	// OpenWeatherMap free tier allows 60 calls/minute.
	rps, err := strconv.ParseFloat(getenvDefault("OPENWEATHER_RPS", "1"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid OPENWEATHER_RPS: %w", err)
	}
	cfg.OpenWeatherRPS = rps
	cfg.OpenWeatherBurst = getenvInt("OPENWEATHER_BURST", 5)

	cfg.SessionMaxCount = getenvInt("SESSION_MAX_COUNT", 1000)
	if cfg.SessionMaxAge, err = getenvDuration("SESSION_MAX_AGE", "1h"); err != nil {
		return nil, err
	}
	if cfg.SessionPruneInterval, err = getenvDuration("SESSION_PRUNE_INTERVAL", "5m"); err != nil {
		return nil, err
	}

	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
