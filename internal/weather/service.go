package weather

import (
	"context"
	"errors"
	"fmt"
	"log"
)

// OutcomeKind classifies the result of a single forecast lookup.
type OutcomeKind int

const (
	OutcomeFound OutcomeKind = iota + 1
	OutcomeNotFound
	OutcomeFailed
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeFound:
		return "found"
	case OutcomeNotFound:
		return "notFound"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the classified result of Service.Lookup. Batch is only set
// when Kind is OutcomeFound; Err is set otherwise.
type Outcome struct {
	Kind  OutcomeKind
	Batch Batch
	Err   error
}

// Service runs forecast lookups against a single Forecaster.
type Service struct {
	forecaster Forecaster
}

// NewService creates a new Service.
func NewService(forecaster Forecaster) *Service {
	return &Service{forecaster: forecaster}
}

// Lookup performs exactly one outbound request for city and classifies it.
// It never returns a Go error: failures are carried in the Outcome.
func (s *Service) Lookup(ctx context.Context, city string) Outcome {
	if s.forecaster == nil {
		log.Printf("ERROR: no forecaster configured for lookup of %q", city)
		return Outcome{Kind: OutcomeFailed, Err: fmt.Errorf("no forecaster configured")}
	}

	log.Printf("DEBUG: Lookup called for %q via %s", city, s.forecaster.Name())

	batch, err := s.forecaster.Forecast(ctx, city)
	switch {
	case err == nil:
		return Outcome{Kind: OutcomeFound, Batch: batch}
	case errors.Is(err, ErrNotFound):
		log.Printf("INFO: %s has no forecast for %q: %v", s.forecaster.Name(), city, err)
		return Outcome{Kind: OutcomeNotFound, Err: err}
	default:
		log.Printf("ERROR: %s forecast failed for %q: %v", s.forecaster.Name(), city, err)
		return Outcome{Kind: OutcomeFailed, Err: err}
	}
}
