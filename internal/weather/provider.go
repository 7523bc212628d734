package weather

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by a Forecaster when the remote API rejects the
// requested city. Any other error is a transport or decode failure.
var ErrNotFound = errors.New("no forecast for city")

// Forecaster abstracts a forecast data source (e.g. OpenWeatherMap).
type Forecaster interface {
	Name() string
	Forecast(ctx context.Context, city string) (Batch, error)
}

// Clock supplies the wall-clock "now" used to pick today's date group.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }
