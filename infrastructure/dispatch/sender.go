package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/felixgeelhaar/fortify/circuitbreaker"
	"github.com/felixgeelhaar/fortify/retry"
)

// Endpoint describes one downstream service target.
type Endpoint struct {
	// Name is a friendly name used in logs.
	Name string `json:"name"`
	// URL is the service URL to POST to.
	URL string `json:"url"`
	// Secret is the shared secret for HMAC signing (optional).
	Secret string `json:"secret,omitempty"`
	// Headers are additional HTTP headers to include.
	Headers map[string]string `json:"headers,omitempty"`
}

// SenderConfig configures the HTTP sender.
type SenderConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration
	// MaxRetries is the maximum number of retry attempts.
	MaxRetries int
	// RetryDelay is the initial delay between retries.
	RetryDelay time.Duration
	// CircuitBreakerThreshold is failures before opening the circuit.
	CircuitBreakerThreshold int
	// CircuitBreakerTimeout is how long the circuit stays open.
	CircuitBreakerTimeout time.Duration
	// UserAgent is the User-Agent header value.
	UserAgent string
}

// DefaultSenderConfig returns sensible default configuration.
func DefaultSenderConfig() SenderConfig {
	return SenderConfig{
		Timeout:                 5 * time.Second,
		MaxRetries:              3,
		RetryDelay:              200 * time.Millisecond,
		CircuitBreakerThreshold: 5,
		CircuitBreakerTimeout:   30 * time.Second,
		UserAgent:               "launchpad-dispatch/1.0",
	}
}

// Sender handles HTTP delivery of effect payloads to downstream services.
type Sender struct {
	config   SenderConfig
	client   *http.Client
	signer   *Signer
	breakers map[string]circuitbreaker.CircuitBreaker[*http.Response]
	retrier  retry.Retry[*http.Response]
	mu       sync.RWMutex
}

// NewSender creates a new HTTP sender.
func NewSender(config SenderConfig) *Sender {
	if config.Timeout <= 0 {
		config.Timeout = 5 * time.Second
	}
	if config.MaxRetries <= 0 {
		config.MaxRetries = 3
	}
	if config.RetryDelay <= 0 {
		config.RetryDelay = 200 * time.Millisecond
	}
	if config.CircuitBreakerThreshold <= 0 {
		config.CircuitBreakerThreshold = 5
	}
	if config.CircuitBreakerTimeout <= 0 {
		config.CircuitBreakerTimeout = 30 * time.Second
	}
	if config.UserAgent == "" {
		config.UserAgent = "launchpad-dispatch/1.0"
	}

	return &Sender{
		config:   config,
		client:   &http.Client{Timeout: config.Timeout},
		signer:   NewSigner(),
		breakers: make(map[string]circuitbreaker.CircuitBreaker[*http.Response]),
		retrier: retry.New[*http.Response](retry.Config{
			MaxAttempts:   config.MaxRetries,
			InitialDelay:  config.RetryDelay,
			BackoffPolicy: retry.BackoffExponential,
			Multiplier:    2.0,
			// 4xx responses are final; retrying cannot fix them.
			NonRetryableErrors: []error{ErrServiceRejected},
		}),
	}
}

// Post sends the payload as JSON to the endpoint, applying signing,
// retries, and the endpoint's circuit breaker.
func (s *Sender) Post(ctx context.Context, endpoint Endpoint, payload any) error {
	if endpoint.URL == "" {
		return ErrInvalidEndpoint
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("serialize payload: %w", err)
	}

	breaker := s.getBreaker(endpoint.URL)

	_, err = breaker.Execute(ctx, func(ctx context.Context) (*http.Response, error) {
		return s.retrier.Do(ctx, func(ctx context.Context) (*http.Response, error) {
			req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.URL, bytes.NewReader(body))
			if err != nil {
				return nil, fmt.Errorf("create request: %w", err)
			}

			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("User-Agent", s.config.UserAgent)
			for key, value := range endpoint.Headers {
				req.Header.Set(key, value)
			}
			if endpoint.Secret != "" {
				for key, value := range s.signer.SignedHeaders(body, endpoint.Secret, time.Now()) {
					req.Header.Set(key, value)
				}
			}

			resp, err := s.client.Do(req)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
			}
			defer resp.Body.Close()

			respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))

			if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return resp, nil
			}

			if resp.StatusCode >= 500 {
				return nil, fmt.Errorf("server error %d: %s", resp.StatusCode, string(respBody))
			}

			return nil, fmt.Errorf("%w: status %d: %s", ErrServiceRejected, resp.StatusCode, string(respBody))
		})
	})

	return err
}

// getBreaker returns the circuit breaker for an endpoint, creating one if needed.
func (s *Sender) getBreaker(url string) circuitbreaker.CircuitBreaker[*http.Response] {
	s.mu.RLock()
	breaker, exists := s.breakers[url]
	s.mu.RUnlock()

	if exists {
		return breaker
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if breaker, exists = s.breakers[url]; exists {
		return breaker
	}

	threshold := s.config.CircuitBreakerThreshold

	breaker = circuitbreaker.New[*http.Response](circuitbreaker.Config{
		MaxRequests: 10,
		Interval:    s.config.CircuitBreakerTimeout,
		Timeout:     s.config.CircuitBreakerTimeout,
		ReadyToTrip: func(counts circuitbreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(threshold) // #nosec G115 -- threshold is validated
		},
	})
	s.breakers[url] = breaker

	return breaker
}
