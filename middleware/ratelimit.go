package middleware

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sut-badminton/registration/metrics"
)

// RateLimiter is a fixed-window request counter per client IP kept in Redis,
// so every replica behind a load balancer shares the same budget.
type RateLimiter struct {
	client  *redis.Client
	name    string
	limit   int
	window  time.Duration
	metrics *metrics.Collectors
	logger  *slog.Logger
}

func NewRateLimiter(client *redis.Client, name string, limit int, window time.Duration, m *metrics.Collectors, logger *slog.Logger) *RateLimiter {
	if logger == nil {
		logger = slog.Default()
	}
	return &RateLimiter{
		client:  client,
		name:    name,
		limit:   limit,
		window:  window,
		metrics: m,
		logger:  logger,
	}
}

// Handler rejects requests over the limit with 429. A nil limiter or a Redis
// outage lets every request through.
func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	if rl == nil || rl.client == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := fmt.Sprintf("ratelimit:%s:%s", rl.name, clientIP(r))
		ctx := r.Context()

		count, err := rl.client.Incr(ctx, key).Result()
		if err != nil {
			rl.logger.Warn("rate limiter unavailable, allowing request", slog.String("limiter", rl.name), slog.Any("error", err))
			next.ServeHTTP(w, r)
			return
		}
		if count == 1 {
			if err := rl.client.Expire(ctx, key, rl.window).Err(); err != nil {
				rl.logger.Warn("failed to set rate limit window", slog.String("key", key), slog.Any("error", err))
			}
		}

		if count > int64(rl.limit) {
			retryAfter := rl.window
			if ttl, err := rl.client.TTL(ctx, key).Result(); err == nil && ttl > 0 {
				retryAfter = ttl
			}
			if rl.metrics != nil {
				rl.metrics.RateLimited.WithLabelValues(rl.name).Inc()
			}
			w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Round(time.Second).Seconds())))
			writeError(w, http.StatusTooManyRequests, "too many requests, please try again later")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientIP expects chi's RealIP middleware to have rewritten RemoteAddr already.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
