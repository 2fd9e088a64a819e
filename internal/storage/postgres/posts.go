package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/princekumarofficial/sociopedia-api/internal/storage"
	"github.com/princekumarofficial/sociopedia-api/internal/types/posts"
)

var postColumns = []string{
	"id", "user_id", "first_name", "last_name", "location", "description",
	"picture_path", "user_picture_path", "likes", "comments", "created_at", "updated_at",
}

func scanPost(row rowScanner) (posts.Post, error) {
	var (
		p     posts.Post
		likes []string
	)
	err := row.Scan(
		&p.ID, &p.UserID, &p.FirstName, &p.LastName, &p.Location, &p.Description,
		&p.PicturePath, &p.UserPicturePath, pq.Array(&likes), pq.Array(&p.Comments),
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return posts.Post{}, err
	}

	p.Likes = make(map[string]bool, len(likes))
	for _, id := range likes {
		p.Likes[id] = true
	}
	if p.Comments == nil {
		p.Comments = []string{}
	}
	return p, nil
}

func (p *Postgres) CreatePost(ctx context.Context, post posts.Post) (posts.Post, error) {
	if post.Comments == nil {
		post.Comments = []string{}
	}
	if post.Likes == nil {
		post.Likes = map[string]bool{}
	}

	query, args, err := p.sb.Insert("posts").
		Columns(postColumns[:10]...).
		Values(
			post.ID, post.UserID, post.FirstName, post.LastName, post.Location, post.Description,
			post.PicturePath, post.UserPicturePath, pq.Array(post.LikedBy()), pq.Array(post.Comments),
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return posts.Post{}, fmt.Errorf("failed to build insert: %w", err)
	}

	if err := p.Db.QueryRowContext(ctx, query, args...).Scan(&post.CreatedAt, &post.UpdatedAt); err != nil {
		return posts.Post{}, fmt.Errorf("failed to insert post: %w", err)
	}

	return post, nil
}

// ListPosts returns every post, newest first.
func (p *Postgres) ListPosts(ctx context.Context) ([]posts.Post, error) {
	return p.queryPosts(ctx, p.sb.Select(postColumns...).From("posts").OrderBy("created_at DESC", "id"))
}

// ListPostsByUser returns the posts written by userID, newest first.
func (p *Postgres) ListPostsByUser(ctx context.Context, userID string) ([]posts.Post, error) {
	return p.queryPosts(ctx, p.sb.Select(postColumns...).From("posts").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id"))
}

func (p *Postgres) queryPosts(ctx context.Context, b sq.SelectBuilder) ([]posts.Post, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select: %w", err)
	}

	rows, err := p.Db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	result := []posts.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		result = append(result, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate posts: %w", err)
	}

	return result, nil
}

// MutatePost locks the post row, lets fn edit it and stores the new likes.
func (p *Postgres) MutatePost(ctx context.Context, postID string, fn storage.PostFunc) (posts.Post, error) {
	var updated posts.Post

	err := withTx(ctx, p.Db, func(ctx context.Context, tx DBTX) error {
		query, args, err := p.sb.Select(postColumns...).From("posts").
			Where(sq.Eq{"id": postID}).
			Suffix("FOR UPDATE").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build select: %w", err)
		}

		post, err := scanPost(tx.QueryRowContext(ctx, query, args...))
		if errors.Is(err, sql.ErrNoRows) {
			return storage.ErrPostNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to lock post: %w", err)
		}

		if err := fn(&post); err != nil {
			return err
		}

		query, args, err = p.sb.Update("posts").
			Set("likes", pq.Array(post.LikedBy())).
			Set("updated_at", sq.Expr("NOW()")).
			Where(sq.Eq{"id": postID}).
			Suffix("RETURNING updated_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build update: %w", err)
		}

		if err := tx.QueryRowContext(ctx, query, args...).Scan(&post.UpdatedAt); err != nil {
			return fmt.Errorf("failed to update post: %w", err)
		}

		updated = post
		return nil
	})
	if err != nil {
		return posts.Post{}, err
	}

	return updated, nil
}
