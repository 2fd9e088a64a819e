package main

import (
	"net/http"

	"github.com/go-redis/redis/v8"
	httpSwagger "github.com/swaggo/http-swagger"

	authHandlers "github.com/princekumarofficial/sociopedia-api/internal/http/handlers/auth"
	"github.com/princekumarofficial/sociopedia-api/internal/http/handlers/health"
	mediaHandlers "github.com/princekumarofficial/sociopedia-api/internal/http/handlers/media"
	postsHandlers "github.com/princekumarofficial/sociopedia-api/internal/http/handlers/posts"
	usersHandlers "github.com/princekumarofficial/sociopedia-api/internal/http/handlers/users"
	wsHandlers "github.com/princekumarofficial/sociopedia-api/internal/http/handlers/websocket"
	"github.com/princekumarofficial/sociopedia-api/internal/http/middleware"
	"github.com/princekumarofficial/sociopedia-api/internal/logger"
	"github.com/princekumarofficial/sociopedia-api/internal/ratelimit"
	authService "github.com/princekumarofficial/sociopedia-api/internal/services/auth"
	postsService "github.com/princekumarofficial/sociopedia-api/internal/services/posts"
	usersService "github.com/princekumarofficial/sociopedia-api/internal/services/users"
	"github.com/princekumarofficial/sociopedia-api/internal/websocket"

	_ "github.com/princekumarofficial/sociopedia-api/docs"
)

type dependencies struct {
	logger    *logger.Logger
	db        health.Pinger
	redis     *redis.Client
	verifier  middleware.TokenVerifier
	rateLimit *middleware.RateLimitConfig
	hub       *websocket.Hub

	auth  *authService.Service
	users *usersService.Service
	posts *postsService.Service
	// nil when object storage is not reachable at startup
	media mediaHandlers.UploadURLGenerator
}

func routes(d dependencies) http.Handler {
	router := http.NewServeMux()
	authenticated := middleware.AuthMiddleware(d.verifier)

	protect := func(h http.HandlerFunc) http.Handler {
		return authenticated(h)
	}

	router.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Sociopedia API"))
	})

	router.HandleFunc("POST /auth/register", authHandlers.Register(d.auth))
	router.HandleFunc("POST /auth/login", authHandlers.Login(d.auth, d.rateLimit))

	router.Handle("GET /users/{id}", protect(usersHandlers.GetUser(d.users)))
	router.Handle("GET /users/{id}/friends", protect(usersHandlers.GetUserFriends(d.users)))
	router.Handle("PATCH /users/{id}/{friendId}", protect(usersHandlers.AddRemoveFriend(d.users)))

	router.Handle("POST /posts", protect(postsHandlers.CreatePost(d.posts)))
	router.Handle("GET /posts", protect(postsHandlers.GetFeedPosts(d.posts)))
	router.Handle("GET /posts/{userId}/posts", protect(postsHandlers.GetUserPosts(d.posts)))
	router.Handle("PATCH /posts/{id}/like", authenticated(
		d.rateLimit.RateLimitedHandler(ratelimit.ActionLikes, postsHandlers.LikePost(d.posts))))

	if d.media != nil {
		router.Handle("POST /media/upload-url", protect(mediaHandlers.NewMediaHandlers(d.media).GenerateUploadURL()))
	}

	router.HandleFunc("GET /health", health.Health(d.db, d.redis, d.hub))
	router.HandleFunc("GET /ws", wsHandlers.WebSocketHandler(d.hub, d.verifier))
	router.Handle("GET /swagger/", httpSwagger.WrapHandler)

	return middleware.RequestLogger(d.logger)(router)
}
