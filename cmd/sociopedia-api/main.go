package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-redis/redis/v8"

	"github.com/princekumarofficial/sociopedia-api/internal/config"
	"github.com/princekumarofficial/sociopedia-api/internal/events"
	"github.com/princekumarofficial/sociopedia-api/internal/http/middleware"
	"github.com/princekumarofficial/sociopedia-api/internal/logger"
	authService "github.com/princekumarofficial/sociopedia-api/internal/services/auth"
	mediaService "github.com/princekumarofficial/sociopedia-api/internal/services/media"
	postsService "github.com/princekumarofficial/sociopedia-api/internal/services/posts"
	usersService "github.com/princekumarofficial/sociopedia-api/internal/services/users"
	"github.com/princekumarofficial/sociopedia-api/internal/storage/postgres"
	"github.com/princekumarofficial/sociopedia-api/internal/storage/postgres/migrations"
	"github.com/princekumarofficial/sociopedia-api/internal/utils/jwt"
	"github.com/princekumarofficial/sociopedia-api/internal/utils/password"
	"github.com/princekumarofficial/sociopedia-api/internal/websocket"
)

// @title Sociopedia API
// @version 1.0
// @description Social network backend: accounts, friends, posts and likes.
// @host localhost:6001
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.MustLoad()
	log := logger.NewLogger("api", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := postgres.NewPostgres(ctx, cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer store.Close()
	log.Info().Msg("connected to postgres")

	if err := migrations.Up(ctx, store.Db); err != nil {
		log.Fatal().Err(err).Msg("failed to apply migrations")
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Msg("redis unreachable, rate limits are not enforced")
	}

	issuer, err := jwt.NewIssuer(jwt.Config{Secret: cfg.JWTSecret})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create token issuer")
	}

	hub := websocket.NewHub(log)
	go hub.Run(ctx)
	publisher := events.NewEventPublisher(hub)

	deps := dependencies{
		logger:    log,
		db:        store.Db,
		redis:     redisClient,
		verifier:  issuer,
		rateLimit: middleware.NewRateLimitConfig(redisClient, cfg.RateLimit),
		hub:       hub,
		auth:      authService.NewService(store, password.NewBcryptHasher(0), issuer),
		users:     usersService.NewService(store, publisher),
		posts:     postsService.NewService(store, publisher),
	}

	media, err := mediaService.NewService(ctx, cfg.MinIO, cfg.Media)
	if err != nil {
		log.Warn().Err(err).Msg("object storage unavailable, picture uploads disabled")
	} else {
		deps.media = media
	}

	server := http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      routes(deps),
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
	}

	go func() {
		log.Info().Str("address", cfg.HTTPServer.Address).Msg("server started")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPServer.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("failed to gracefully shutdown server")
		return
	}

	log.Info().Msg("server stopped")
}
