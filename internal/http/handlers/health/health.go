package health

import (
	"context"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/princekumarofficial/sociopedia-api/internal/logger"
	"github.com/princekumarofficial/sociopedia-api/internal/utils/response"
)

const pingTimeout = 2 * time.Second

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// ClientCounter reports open websocket connections.
type ClientCounter interface {
	GetClientCount() int
}

type Stats struct {
	DatabaseConnected bool  `json:"databaseConnected"`
	RedisConnected    bool  `json:"redisConnected"`
	RateLimitKeys     int64 `json:"rateLimitKeys"`
	WebSocketClients  int   `json:"webSocketClients"`
}

// Health answers 503 when the database is down. Redis being down only
// shows up in the body since the rate limiter lets requests through then.
// @Summary Service health
// @Description Reports the state of the database, Redis and the websocket hub
// @Tags health
// @Produce json
// @Success 200 {object} response.Response{data=health.Stats} "Healthy"
// @Failure 503 {object} response.Response{data=health.Stats} "Database unreachable"
// @Router /health [get]
func Health(db Pinger, redisClient *redis.Client, hub ClientCounter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
		defer cancel()

		stats := Stats{WebSocketClients: hub.GetClientCount()}

		if err := db.PingContext(ctx); err != nil {
			logger.FromRequest(r).Warn().Err(err).Msg("database ping failed")
		} else {
			stats.DatabaseConnected = true
		}

		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.FromRequest(r).Warn().Err(err).Msg("redis ping failed")
		} else {
			stats.RedisConnected = true
			var cursor uint64
			for {
				keys, next, err := redisClient.Scan(ctx, cursor, "rate_limit:*", 100).Result()
				if err != nil {
					break
				}
				stats.RateLimitKeys += int64(len(keys))
				if next == 0 {
					break
				}
				cursor = next
			}
		}

		if !stats.DatabaseConnected {
			response.WriteJSON(w, http.StatusServiceUnavailable, response.RequestOK("database unreachable", stats))
			return
		}
		response.WriteJSON(w, http.StatusOK, response.RequestOK("ok", stats))
	}
}
