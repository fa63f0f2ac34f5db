package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	DefaultRateLimit = 120
	DefaultBurstSize = 20

	// CleanupInterval is how often idle callers are swept
	CleanupInterval = 5 * time.Minute
	// LimiterTTL is how long an idle caller keeps its bucket
	LimiterTTL = 10 * time.Minute
)

// Decision is the outcome of charging one request to a caller's bucket
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	Reset      time.Time
	RetryAfter time.Duration
}

// RateLimiter keeps one token bucket per caller. Callers are keyed by
// session subject, or by client IP before authentication.
type RateLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	perMinute int
	every     rate.Limit
	burst     int
	now       func() time.Time

	stopCh   chan struct{}
	stopOnce sync.Once
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a RateLimiter with the default quota
func NewRateLimiter() *RateLimiter {
	return NewRateLimiterWithConfig(DefaultRateLimit, DefaultBurstSize)
}

// NewRateLimiterWithConfig creates a RateLimiter allowing perMinute requests
// with bursts of up to burst. Non-positive values fall back to the defaults.
func NewRateLimiterWithConfig(perMinute, burst int) *RateLimiter {
	if perMinute <= 0 {
		perMinute = DefaultRateLimit
	}
	if burst <= 0 {
		burst = DefaultBurstSize
	}
	rl := &RateLimiter{
		buckets:   make(map[string]*bucket),
		perMinute: perMinute,
		every:     rate.Limit(float64(perMinute) / 60),
		burst:     burst,
		now:       time.Now,
		stopCh:    make(chan struct{}),
	}
	go rl.sweepLoop()
	return rl
}

// Take charges one request to key and reports whether it may proceed
func (r *RateLimiter) Take(key string) Decision {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	b, ok := r.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(r.every, r.burst)}
		r.buckets[key] = b
	}
	b.lastSeen = now

	d := Decision{Limit: r.perMinute}
	res := b.limiter.ReserveN(now, 1)
	if delay := res.DelayFrom(now); delay > 0 {
		res.CancelAt(now)
		d.RetryAfter = delay
	} else {
		d.Allowed = true
	}

	tokens := b.limiter.TokensAt(now)
	if tokens < 0 {
		tokens = 0
	}
	d.Remaining = int(tokens)
	missing := float64(r.burst) - tokens
	d.Reset = now.Add(time.Duration(missing / float64(r.every) * float64(time.Second)))
	return d
}

// Size returns the number of tracked callers
func (r *RateLimiter) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.buckets)
}

func (r *RateLimiter) sweepLoop() {
	ticker := time.NewTicker(CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.sweep(r.now())
		case <-r.stopCh:
			return
		}
	}
}

// sweep drops buckets idle for longer than LimiterTTL
func (r *RateLimiter) sweep(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	dropped := 0
	for key, b := range r.buckets {
		if now.Sub(b.lastSeen) > LimiterTTL {
			delete(r.buckets, key)
			dropped++
		}
	}
	if dropped > 0 {
		log.Debug().Int("dropped", dropped).Int("remaining", len(r.buckets)).Msg("Swept idle rate limit buckets")
	}
	return dropped
}

// Stop ends the sweep goroutine. Safe to call more than once.
func (r *RateLimiter) Stop() {
	r.stopOnce.Do(func() { close(r.stopCh) })
}

func rateLimitKey(c echo.Context) string {
	if session := GetSession(c); session != nil && session.Subject != "" {
		return "session:" + session.Subject
	}
	return "ip:" + c.RealIP()
}

func writeRateHeaders(h http.Header, d Decision) {
	h.Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
	h.Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
	h.Set("X-RateLimit-Reset", strconv.FormatInt(d.Reset.Unix(), 10))
}

// RateLimitMiddleware rejects callers over their quota with 429
func RateLimitMiddleware(rl *RateLimiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := rateLimitKey(c)
			d := rl.Take(key)
			writeRateHeaders(c.Response().Header(), d)
			if d.Allowed {
				return next(c)
			}

			retry := int(d.RetryAfter.Round(time.Second) / time.Second)
			if retry < 1 {
				retry = 1
			}
			c.Response().Header().Set("Retry-After", strconv.Itoa(retry))
			log.Warn().Str("caller", key).Int("retry_after", retry).Msg("Rate limit exceeded")

			return c.JSON(http.StatusTooManyRequests, problemDetails{
				Type:     errorTypeRateLimit,
				Title:    "Rate Limit Exceeded",
				Status:   http.StatusTooManyRequests,
				Detail:   fmt.Sprintf("Too many requests. Please retry after %d seconds.", retry),
				Instance: c.Request().URL.Path,
			})
		}
	}
}
