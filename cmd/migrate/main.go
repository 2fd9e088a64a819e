package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/princekumarofficial/sociopedia-api/internal/config"
	"github.com/princekumarofficial/sociopedia-api/internal/logger"
	"github.com/princekumarofficial/sociopedia-api/internal/storage/postgres"
	"github.com/princekumarofficial/sociopedia-api/internal/storage/postgres/migrations"
)

const usage = "usage: migrate [-config path] up|down|status"

func run(ctx context.Context, command string, db *sql.DB) error {
	switch command {
	case "", "up":
		return migrations.Up(ctx, db)
	case "down":
		return migrations.Down(ctx, db)
	case "status":
		return migrations.Status(ctx, db)
	default:
		return fmt.Errorf("unknown command %q, %s", command, usage)
	}
}

func main() {
	cfg := config.MustLoad()
	if !flag.Parsed() {
		flag.Parse()
	}
	command := flag.Arg(0)

	log := logger.NewLogger("migrate", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := postgres.NewPostgres(ctx, cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer store.Close()

	start := time.Now()
	if err := run(ctx, command, store.Db); err != nil {
		log.Error().Err(err).Str("command", command).Msg("migration failed")
		store.Close()
		os.Exit(1)
	}

	log.Info().
		Str("command", command).
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Msg("migration finished")
}
