package postgres

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/princekumarofficial/sociopedia-api/internal/config"
	"github.com/princekumarofficial/sociopedia-api/internal/storage"
)

var _ storage.Storage = (*Postgres)(nil)

type Postgres struct {
	Db *sql.DB
	sb sq.StatementBuilderType
}

// New wraps an already opened database handle.
func New(db *sql.DB) *Postgres {
	return &Postgres{
		Db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// NewPostgres opens the pool described by cfg and checks it is reachable.
func NewPostgres(ctx context.Context, cfg config.Database) (*Postgres, error) {
	db, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	return New(db), nil
}

func (p *Postgres) Close() error {
	return p.Db.Close()
}
