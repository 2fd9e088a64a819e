package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/princekumarofficial/sociopedia-api/internal/storage"
	"github.com/princekumarofficial/sociopedia-api/internal/types/posts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postRows() *sqlmock.Rows {
	return sqlmock.NewRows(postColumns)
}

func addPostRow(rows *sqlmock.Rows, id, userID, likes string, at time.Time) *sqlmock.Rows {
	return rows.AddRow(id, userID, "First", "Last", "Paris", "hello", "p.jpg", "u.jpg", likes, "{}", at, at)
}

func TestCreatePost(t *testing.T) {
	store, mock := newTestStore(t)
	now := time.Now()

	post := posts.Post{ID: "p1", UserID: "u1", FirstName: "Ann", LastName: "Lee", Description: "hi"}

	mock.ExpectQuery("INSERT INTO posts \\(id,user_id,(.+)\\) VALUES \\(\\$1,(.+)\\) RETURNING created_at, updated_at").
		WithArgs("p1", "u1", "Ann", "Lee", "", "hi", "", "", pq.Array([]string{}), pq.Array([]string{})).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	created, err := store.CreatePost(context.Background(), post)
	require.NoError(t, err)
	assert.Equal(t, now, created.CreatedAt)
	assert.Equal(t, map[string]bool{}, created.Likes)
	assert.Equal(t, []string{}, created.Comments)
}

func TestListPosts_NewestFirst(t *testing.T) {
	store, mock := newTestStore(t)
	now := time.Now()

	rows := postRows()
	addPostRow(rows, "p2", "u1", "{u2,u3}", now)
	addPostRow(rows, "p1", "u2", "{}", now.Add(-time.Hour))

	mock.ExpectQuery("SELECT (.+) FROM posts ORDER BY created_at DESC, id").WillReturnRows(rows)

	got, err := store.ListPosts(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "p2", got[0].ID)
	assert.Equal(t, map[string]bool{"u2": true, "u3": true}, got[0].Likes)
	assert.Empty(t, got[1].Likes)
}

func TestListPostsByUser(t *testing.T) {
	store, mock := newTestStore(t)

	mock.ExpectQuery("SELECT (.+) FROM posts WHERE user_id = \\$1 ORDER BY created_at DESC").
		WithArgs("u1").
		WillReturnRows(addPostRow(postRows(), "p1", "u1", "{}", time.Now()))

	got, err := store.ListPostsByUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "u1", got[0].UserID)
}

func TestListPosts_QueryError(t *testing.T) {
	store, mock := newTestStore(t)

	mock.ExpectQuery("FROM posts").WillReturnError(errors.New("timeout"))

	_, err := store.ListPosts(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to query posts")
}

func TestMutatePost_TogglesLike(t *testing.T) {
	store, mock := newTestStore(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM posts WHERE id = \\$1 FOR UPDATE").
		WithArgs("p1").
		WillReturnRows(addPostRow(postRows(), "p1", "u1", "{u3}", now))
	mock.ExpectQuery("UPDATE posts SET likes = \\$1, updated_at = NOW\\(\\) WHERE id = \\$2 RETURNING updated_at").
		WithArgs(pq.Array([]string{"u2", "u3"}), "p1").
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(now))
	mock.ExpectCommit()

	got, err := store.MutatePost(context.Background(), "p1", func(p *posts.Post) error {
		p.ToggleLike("u2")
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"u2": true, "u3": true}, got.Likes)
}

func TestMutatePost_NotFound(t *testing.T) {
	store, mock := newTestStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WithArgs("nope").WillReturnRows(postRows())
	mock.ExpectRollback()

	_, err := store.MutatePost(context.Background(), "nope", func(*posts.Post) error { return nil })
	assert.ErrorIs(t, err, storage.ErrPostNotFound)
}

func TestMutatePost_BeginError(t *testing.T) {
	store, mock := newTestStore(t)

	mock.ExpectBegin().WillReturnError(errors.New("pool exhausted"))

	_, err := store.MutatePost(context.Background(), "p1", func(*posts.Post) error { return nil })
	require.Error(t, err)
}
