package google

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/pdfqa-cli/internal/logger"
)

// ServiceType identifies a Generative Language API surface for rate limiting purposes.
type ServiceType string

const (
	// ServiceRetriever covers corpus, document and chunk management.
	ServiceRetriever ServiceType = "retriever"
	// ServiceGenerative covers grounded answer generation.
	ServiceGenerative ServiceType = "generative"
)

// DefaultBackoff is applied when a rate limit error carries no retry delay.
const DefaultBackoff = 60 * time.Second

// RateLimitConfig holds rate limiting configuration for a service.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate limit.
	RequestsPerSecond float64
	// BurstSize is the maximum burst size.
	BurstSize int
}

// DefaultRateLimits provides conservative defaults for each service.
var DefaultRateLimits = map[ServiceType]RateLimitConfig{
	ServiceRetriever:  {RequestsPerSecond: 5.0, BurstSize: 5},
	ServiceGenerative: {RequestsPerSecond: 1.0, BurstSize: 2},
}

// RateLimiter provides rate limiting for API requests.
// It uses a token bucket algorithm with optional backoff after quota errors.
type RateLimiter struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	retryAt time.Time
	service ServiceType
}

// NewRateLimiter creates a new rate limiter for the specified service.
func NewRateLimiter(service ServiceType) *RateLimiter {
	cfg, ok := DefaultRateLimits[service]
	if !ok {
		cfg = RateLimitConfig{RequestsPerSecond: 5.0, BurstSize: 5}
	}

	r := NewRateLimiterWithConfig(cfg)
	r.service = service
	return r
}

// NewRateLimiterWithConfig creates a rate limiter with custom configuration.
// Non-positive values fall back to one request per second with a burst of one.
func NewRateLimiterWithConfig(cfg RateLimitConfig) *RateLimiter {
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 1
	}
	if cfg.BurstSize <= 0 {
		cfg.BurstSize = 1
	}
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.BurstSize),
	}
}

// Service returns the service this limiter was created for, if any.
func (r *RateLimiter) Service() ServiceType {
	return r.service
}

// Wait blocks until a request can be made without exceeding the rate limit.
// It also respects any backoff period set by RecordRateLimitError.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	retryAt := r.retryAt
	r.mu.Unlock()

	if wait := time.Until(retryAt); wait > 0 {
		logger.Debug("rate limiter: backing off %s for %s", r.service, wait.Round(time.Millisecond))
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	return r.limiter.Wait(ctx)
}

// RecordRateLimitError sets a backoff period after a quota error.
// A non-positive retryAfter uses DefaultBackoff.
func (r *RateLimiter) RecordRateLimitError(retryAfter time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if retryAfter <= 0 {
		retryAfter = DefaultBackoff
	}

	r.retryAt = time.Now().Add(retryAfter)
}

// Observe records a backoff if err is a rate limit error and returns err unchanged.
func (r *RateLimiter) Observe(err error) error {
	if IsRateLimited(err) {
		r.RecordRateLimitError(RetryDelay(err))
	}
	return err
}

// Allow checks if a request can be made immediately without blocking.
// Returns true if the request is allowed, false if it would exceed the rate limit.
func (r *RateLimiter) Allow() bool {
	r.mu.Lock()
	retryAt := r.retryAt
	r.mu.Unlock()

	if time.Now().Before(retryAt) {
		return false
	}

	return r.limiter.Allow()
}
