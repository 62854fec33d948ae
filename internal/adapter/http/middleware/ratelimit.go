package middleware

import (
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// RateLimitConfig customizes the per-client rate limiter.
type RateLimitConfig struct {
	// RPS is the sustained requests-per-second budget per client IP.
	RPS float64

	// Burst is the burst capacity per client IP.
	Burst int
}

// limiterStore holds one token bucket per client IP.
type limiterStore struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
}

func newLimiterStore(cfg RateLimitConfig) *limiterStore {
	return &limiterStore{
		limiters: make(map[string]*rate.Limiter),
		rps:      rate.Limit(cfg.RPS),
		burst:    cfg.Burst,
	}
}

// get returns the limiter for an IP, creating one on first sight.
func (s *limiterStore) get(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	limiter, exists := s.limiters[ip]
	if !exists {
		limiter = rate.NewLimiter(s.rps, s.burst)
		s.limiters[ip] = limiter
	}
	return limiter
}

// RateLimit returns middleware that limits requests per client IP using a
// token bucket. Rejected requests get a 429 with the standard envelope.
func RateLimit(log zerolog.Logger, cfg RateLimitConfig) echo.MiddlewareFunc {
	store := newLimiterStore(cfg)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			if !store.get(ip).Allow() {
				log.Warn().
					Str("request_id", GetRequestID(c)).
					Str("client_ip", ip).
					Msg("Rate limit exceeded")
				return c.JSON(http.StatusTooManyRequests, map[string]interface{}{
					"success": false,
					"error": map[string]string{
						"code":    "rate_limited",
						"message": "Too many requests, try again later",
					},
				})
			}
			return next(c)
		}
	}
}
