package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-redis/redis/v8"
	"github.com/princekumarofficial/sociopedia-api/internal/config"
	"github.com/princekumarofficial/sociopedia-api/internal/logger"
	"github.com/princekumarofficial/sociopedia-api/internal/ratelimit"
	"github.com/princekumarofficial/sociopedia-api/internal/utils/response"
)

// windowSeconds is the refill window of every bucket, sent as X-RateLimit-Reset.
const windowSeconds = "60"

type RateLimitConfig struct {
	limiters map[string]*ratelimit.TokenBucket
}

func NewRateLimitConfig(redisClient *redis.Client, cfg config.RateLimit) *RateLimitConfig {
	return &RateLimitConfig{
		limiters: map[string]*ratelimit.TokenBucket{
			ratelimit.ActionLogin: ratelimit.NewTokenBucket(redisClient, cfg.LoginPerMinute, cfg.LoginPerMinute),
			ratelimit.ActionLikes: ratelimit.NewTokenBucket(redisClient, cfg.LikesPerMinute, cfg.LikesPerMinute),
		},
	}
}

// Allow reports whether subject may perform action now and sets the
// X-RateLimit headers. When Redis cannot answer the request is allowed.
func (rlc *RateLimitConfig) Allow(ctx context.Context, w http.ResponseWriter, subject, action string) bool {
	limiter, exists := rlc.limiters[action]
	if !exists {
		return true
	}

	allowed, err := limiter.Allow(ctx, subject, action)
	if err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("action", action).Msg("rate limiter unavailable, allowing request")
		return true
	}

	remaining, err := limiter.GetRemaining(ctx, subject, action)
	if err == nil {
		w.Header().Set("X-RateLimit-Limit", strconv.FormatInt(limiter.Limit(), 10))
		w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
		w.Header().Set("X-RateLimit-Reset", windowSeconds)
	}

	return allowed
}

// RateLimitMiddleware limits authenticated users per action. It must run
// after AuthMiddleware.
func (rlc *RateLimitConfig) RateLimitMiddleware(action string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := GetUserIDFromContext(r.Context())
			if !ok {
				response.WriteJSON(w, http.StatusUnauthorized, response.GeneralError(
					errors.New("user not authenticated")))
				return
			}

			if !rlc.Allow(r.Context(), w, userID, action) {
				response.WriteJSON(w, http.StatusTooManyRequests, response.GeneralError(
					errors.New("rate limit exceeded")))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RateLimitedHandler wraps a handler with rate limiting for a specific action
func (rlc *RateLimitConfig) RateLimitedHandler(action string, handler http.HandlerFunc) http.Handler {
	return rlc.RateLimitMiddleware(action)(handler)
}
