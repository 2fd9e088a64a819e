package storage

import (
	"context"
	"errors"

	"github.com/princekumarofficial/sociopedia-api/internal/types/posts"
	"github.com/princekumarofficial/sociopedia-api/internal/types/users"
)

//go:generate mockgen -source=storage.go -destination=../mock/storage_mock.go -package=mock

var (
	ErrUserNotFound = errors.New("user not found")
	ErrPostNotFound = errors.New("post not found")
	ErrEmailTaken   = errors.New("email already registered")
)

// FriendPairFunc edits the friend lists of both users. Returning an error
// aborts the mutation and nothing is written.
type FriendPairFunc func(user, friend *users.User) error

// PostFunc edits a post in place. Returning an error aborts the mutation.
type PostFunc func(post *posts.Post) error

type UserStorage interface {
	CreateUser(ctx context.Context, user users.User) (users.User, error)
	GetUserByID(ctx context.Context, id string) (users.User, error)
	GetUserByEmail(ctx context.Context, email string) (users.User, error)
	// GetUsersByIDs returns the users that exist among ids, in no particular order.
	GetUsersByIDs(ctx context.Context, ids []string) ([]users.User, error)
	// MutateFriendPair loads both users, applies fn and stores both friend
	// lists atomically. It returns the updated user identified by userID.
	MutateFriendPair(ctx context.Context, userID, friendID string, fn FriendPairFunc) (users.User, error)
}

type PostStorage interface {
	CreatePost(ctx context.Context, post posts.Post) (posts.Post, error)
	ListPosts(ctx context.Context) ([]posts.Post, error)
	ListPostsByUser(ctx context.Context, userID string) ([]posts.Post, error)
	// MutatePost locks the post, applies fn and stores its likes.
	MutatePost(ctx context.Context, postID string, fn PostFunc) (posts.Post, error)
}

type Storage interface {
	UserStorage
	PostStorage
}
