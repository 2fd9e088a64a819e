package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/princekumarofficial/sociopedia-api/internal/storage"
	"github.com/princekumarofficial/sociopedia-api/internal/types/users"
)

var userColumns = []string{
	"id", "first_name", "last_name", "email", "password", "picture_path", "friends",
	"location", "occupation", "viewed_profile", "impressions", "created_at", "updated_at",
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (users.User, error) {
	var u users.User
	err := row.Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash, &u.PicturePath,
		pq.Array(&u.Friends), &u.Location, &u.Occupation, &u.ViewedProfile, &u.Impressions,
		&u.CreatedAt, &u.UpdatedAt,
	)
	return u, err
}

func (p *Postgres) CreateUser(ctx context.Context, user users.User) (users.User, error) {
	if user.Friends == nil {
		user.Friends = []string{}
	}

	query, args, err := p.sb.Insert("users").
		Columns(userColumns[:11]...).
		Values(
			user.ID, user.FirstName, user.LastName, user.Email, user.PasswordHash, user.PicturePath,
			pq.Array(user.Friends), user.Location, user.Occupation, user.ViewedProfile, user.Impressions,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return users.User{}, fmt.Errorf("failed to build insert: %w", err)
	}

	if err := p.Db.QueryRowContext(ctx, query, args...).Scan(&user.CreatedAt, &user.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return users.User{}, storage.ErrEmailTaken
		}
		return users.User{}, fmt.Errorf("failed to insert user: %w", err)
	}

	return user, nil
}

func (p *Postgres) GetUserByID(ctx context.Context, id string) (users.User, error) {
	return p.getUser(ctx, sq.Eq{"id": id})
}

func (p *Postgres) GetUserByEmail(ctx context.Context, email string) (users.User, error) {
	return p.getUser(ctx, sq.Eq{"email": email})
}

func (p *Postgres) getUser(ctx context.Context, where sq.Eq) (users.User, error) {
	query, args, err := p.sb.Select(userColumns...).From("users").Where(where).ToSql()
	if err != nil {
		return users.User{}, fmt.Errorf("failed to build select: %w", err)
	}

	u, err := scanUser(p.Db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return users.User{}, storage.ErrUserNotFound
	}
	if err != nil {
		return users.User{}, fmt.Errorf("failed to fetch user: %w", err)
	}
	return u, nil
}

// GetUsersByIDs returns the users that exist among ids, in no particular order.
func (p *Postgres) GetUsersByIDs(ctx context.Context, ids []string) ([]users.User, error) {
	if len(ids) == 0 {
		return []users.User{}, nil
	}

	query, args, err := p.sb.Select(userColumns...).From("users").
		Where(sq.Expr("id = ANY(?)", pq.Array(ids))).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select: %w", err)
	}

	rows, err := p.Db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	return collectUsers(rows)
}

func collectUsers(rows *sql.Rows) ([]users.User, error) {
	result := []users.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}
	return result, nil
}

// MutateFriendPair locks both rows in id order, lets fn edit them and writes
// both friend lists back before committing. The returned user is the first
// one after the change.
func (p *Postgres) MutateFriendPair(ctx context.Context, userID, friendID string, fn storage.FriendPairFunc) (users.User, error) {
	var updated users.User

	err := withTx(ctx, p.Db, func(ctx context.Context, tx DBTX) error {
		query, args, err := p.sb.Select(userColumns...).From("users").
			Where(sq.Expr("id = ANY(?)", pq.Array([]string{userID, friendID}))).
			OrderBy("id").
			Suffix("FOR UPDATE").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build select: %w", err)
		}

		rows, err := tx.QueryContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("failed to lock users: %w", err)
		}
		locked, err := collectUsers(rows)
		rows.Close()
		if err != nil {
			return err
		}

		byID := make(map[string]*users.User, len(locked))
		for i := range locked {
			byID[locked[i].ID] = &locked[i]
		}
		user, ok := byID[userID]
		if !ok {
			return storage.ErrUserNotFound
		}
		friend, ok := byID[friendID]
		if !ok {
			return storage.ErrUserNotFound
		}

		if err := fn(user, friend); err != nil {
			return err
		}

		for _, u := range []*users.User{user, friend} {
			query, args, err := p.sb.Update("users").
				Set("friends", pq.Array(u.Friends)).
				Set("updated_at", sq.Expr("NOW()")).
				Where(sq.Eq{"id": u.ID}).
				Suffix("RETURNING updated_at").
				ToSql()
			if err != nil {
				return fmt.Errorf("failed to build update: %w", err)
			}

			if err := tx.QueryRowContext(ctx, query, args...).Scan(&u.UpdatedAt); err != nil {
				return fmt.Errorf("failed to update friends of %s: %w", u.ID, err)
			}
			if user == friend {
				break
			}
		}

		updated = *user
		return nil
	})
	if err != nil {
		return users.User{}, err
	}

	return updated, nil
}
