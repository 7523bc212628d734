package weather

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

type stubForecaster struct {
	batch Batch
	err   error
	calls int
}

func (s *stubForecaster) Name() string { return "stub" }

func (s *stubForecaster) Forecast(ctx context.Context, city string) (Batch, error) {
	s.calls++
	return s.batch, s.err
}

func TestServiceLookup_Classification(t *testing.T) {
	found := Batch{City: City{Name: "London", Country: "GB"}}

	tests := []struct {
		name string
		f    *stubForecaster
		want OutcomeKind
	}{
		{"found", &stubForecaster{batch: found}, OutcomeFound},
		{"not found", &stubForecaster{err: fmt.Errorf("%w: status 404", ErrNotFound)}, OutcomeNotFound},
		{"transport", &stubForecaster{err: errors.New("dial tcp: refused")}, OutcomeFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := NewService(tt.f).Lookup(context.Background(), "London,GB")
			if out.Kind != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, out.Kind)
			}
			if tt.f.calls != 1 {
				t.Errorf("expected exactly one call, got %d", tt.f.calls)
			}
			if out.Kind == OutcomeFound && out.Batch.City.Name != "London" {
				t.Errorf("unexpected batch: %+v", out.Batch)
			}
			if out.Kind != OutcomeFound && out.Err == nil {
				t.Error("expected error on failure outcome")
			}
		})
	}
}

func TestServiceLookup_NoForecaster(t *testing.T) {
	out := NewService(nil).Lookup(context.Background(), "London")
	if out.Kind != OutcomeFailed {
		t.Fatalf("expected failed, got %s", out.Kind)
	}
}
