package providers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// HTTPClientConfig bundles the HTTP client and the outbound guards applied
// to it. Limiter may be nil for unlimited.
type HTTPClientConfig struct {
	Client  *http.Client
	Limiter *rate.Limiter
}

var (
	errRateLimited  = errors.New("rate limited")
	errServerError  = errors.New("server error")
	errNoHTTPClient = errors.New("http client not configured")
)

// statusError carries a non-success status that is an answer from the remote
// (e.g. unknown city) rather than a transport failure.
type statusError struct {
	Code int
	Body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status code %d: %s", e.Code, e.Body)
}

// isRemoteAnswer reports whether err is a definitive answer from the remote,
// which must not count as a failure for the circuit breaker.
func isRemoteAnswer(err error) bool {
	var se *statusError
	return errors.As(err, &se)
}

// newCircuitBreaker builds the breaker used for a provider. It trips on a
// sustained failure ratio and half-opens again quickly. Definitive
// remote answers (4xx other than 429) and searches canceled by the caller
// are counted as successes.
func newCircuitBreaker(name string, settings gobreaker.Settings) *gobreaker.CircuitBreaker {
	settings.Name = name
	if settings.ReadyToTrip == nil {
		settings.ReadyToTrip = func(counts gobreaker.Counts) bool {
			return counts.Requests >= 10 && counts.TotalFailures*2 >= counts.Requests
		}
	}
	settings.IsSuccessful = func(err error) bool {
		return err == nil || isRemoteAnswer(err) || errors.Is(err, context.Canceled)
	}
	return gobreaker.NewCircuitBreaker(settings)
}

// doRequest executes exactly one HTTP request behind the rate limiter and the
// circuit breaker. There are no retries, and an open breaker never suppresses
// the request. On a non-2xx answer the body is drained and a *statusError is
// returned.
func doRequest(
	ctx context.Context,
	cfg HTTPClientConfig,
	cb *gobreaker.CircuitBreaker,
	buildRequest func(ctx context.Context) (*http.Request, error),
	readBody func(resp *http.Response) string,
) (*http.Response, error) {
	if cfg.Client == nil {
		return nil, errNoHTTPClient
	}

	if cfg.Limiter != nil {
		if err := cfg.Limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait canceled: %w", err)
		}
	}

	req, err := buildRequest(ctx)
	if err != nil {
		return nil, err
	}

	send := func() (interface{}, error) {
		resp, execErr := cfg.Client.Do(req)
		if execErr != nil {
			return nil, execErr
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			resp.Body.Close()
			return nil, errRateLimited
		}
		if resp.StatusCode >= 500 {
			resp.Body.Close()
			return nil, fmt.Errorf("%w: %d", errServerError, resp.StatusCode)
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			body := readBody(resp)
			resp.Body.Close()
			return nil, &statusError{Code: resp.StatusCode, Body: body}
		}

		return resp, nil
	}

	// The breaker only observes. A search always reaches the remote once,
	// even while the breaker is open.
	result, err := cb.Execute(send)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		log.Printf("DEBUG: circuit breaker %s is %s; sending request anyway", cb.Name(), cb.State())
		result, err = send()
	}
	if err != nil {
		return nil, err
	}

	resp, ok := result.(*http.Response)
	if !ok {
		return nil, fmt.Errorf("unexpected result type from circuit breaker")
	}
	return resp, nil
}
