package posts

import (
	"context"
	"errors"
	"testing"

	"github.com/princekumarofficial/sociopedia-api/internal/mock"
	"github.com/princekumarofficial/sociopedia-api/internal/storage"
	"github.com/princekumarofficial/sociopedia-api/internal/storage/memory"
	"github.com/princekumarofficial/sociopedia-api/internal/types/posts"
	"github.com/princekumarofficial/sociopedia-api/internal/types/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newService(t *testing.T) (*Service, *memory.Store, *mock.MockPublisher) {
	t.Helper()
	ctrl := gomock.NewController(t)
	publisher := mock.NewMockPublisher(ctrl)

	store := memory.New()
	_, err := store.CreateUser(context.Background(), users.User{
		ID: "u1", Email: "a@x.com", FirstName: "Ann", LastName: "Lee", Location: "Rome", PicturePath: "ann.png",
	})
	require.NoError(t, err)

	return NewService(store, publisher), store, publisher
}

func TestCreatePost_CopiesAuthorAndReturnsFeed(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	_, err := svc.CreatePost(ctx, posts.CreatePostRequest{UserID: "u1", Description: "first"})
	require.NoError(t, err)
	feed, err := svc.CreatePost(ctx, posts.CreatePostRequest{UserID: "u1", Description: "second", PicturePath: "p.png"})
	require.NoError(t, err)

	require.Len(t, feed, 2)
	latest := feed[0]
	assert.Equal(t, "second", latest.Description)
	assert.Equal(t, "Ann", latest.FirstName)
	assert.Equal(t, "Lee", latest.LastName)
	assert.Equal(t, "Rome", latest.Location)
	assert.Equal(t, "ann.png", latest.UserPicturePath)
	assert.Equal(t, "p.png", latest.PicturePath)
	assert.Empty(t, latest.Likes)
	assert.Equal(t, []string{}, latest.Comments)
}

func TestCreatePost_UnknownAuthor(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.CreatePost(context.Background(), posts.CreatePostRequest{UserID: "ghost"})
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}

func TestGetUserPosts(t *testing.T) {
	svc, store, _ := newService(t)
	ctx := context.Background()
	_, err := store.CreatePost(ctx, posts.Post{ID: "other", UserID: "u2"})
	require.NoError(t, err)
	_, err = svc.CreatePost(ctx, posts.CreatePostRequest{UserID: "u1", Description: "mine"})
	require.NoError(t, err)

	mine, err := svc.GetUserPosts(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "mine", mine[0].Description)

	none, err := svc.GetUserPosts(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestLikePost_Toggles(t *testing.T) {
	svc, store, publisher := newService(t)
	ctx := context.Background()
	_, err := store.CreatePost(ctx, posts.Post{ID: "p1", UserID: "u1"})
	require.NoError(t, err)

	gomock.InOrder(
		publisher.EXPECT().PublishPostLiked("p1", "u2", "u1", true).Return(nil),
		publisher.EXPECT().PublishPostLiked("p1", "u2", "u1", false).Return(nil),
	)

	liked, err := svc.LikePost(ctx, "p1", "u2")
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"u2": true}, liked.Likes)

	unliked, err := svc.LikePost(ctx, "p1", "u2")
	require.NoError(t, err)
	assert.Empty(t, unliked.Likes)
}

func TestLikePost_NotFound(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.LikePost(context.Background(), "nope", "u1")
	assert.ErrorIs(t, err, storage.ErrPostNotFound)
}

func TestFeed_StoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mock.NewMockStorage(ctrl)
	svc := NewService(store, nil)

	store.EXPECT().ListPosts(gomock.Any()).Return(nil, errors.New("timeout"))

	_, err := svc.GetFeedPosts(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list posts")
}

func TestCreatePost_StoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mock.NewMockStorage(ctrl)
	svc := NewService(store, nil)

	store.EXPECT().GetUserByID(gomock.Any(), "u1").Return(users.User{ID: "u1"}, nil)
	store.EXPECT().CreatePost(gomock.Any(), gomock.Any()).Return(posts.Post{}, errors.New("disk full"))

	_, err := svc.CreatePost(context.Background(), posts.CreatePostRequest{UserID: "u1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "post creation failed")
}
