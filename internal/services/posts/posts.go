// Package posts creates posts, lists feeds and toggles likes.
package posts

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/princekumarofficial/sociopedia-api/internal/events"
	"github.com/princekumarofficial/sociopedia-api/internal/logger"
	"github.com/princekumarofficial/sociopedia-api/internal/storage"
	"github.com/princekumarofficial/sociopedia-api/internal/types/posts"
)

type Service struct {
	store     storage.Storage
	publisher events.Publisher
	newID     func() string
}

func NewService(store storage.Storage, publisher events.Publisher) *Service {
	return &Service{store: store, publisher: publisher, newID: uuid.NewString}
}

// CreatePost stores a post under the author's name and returns the whole
// feed, newest first.
func (s *Service) CreatePost(ctx context.Context, req posts.CreatePostRequest) ([]posts.Post, error) {
	author, err := s.store.GetUserByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	post := posts.Post{
		ID:              s.newID(),
		UserID:          author.ID,
		FirstName:       author.FirstName,
		LastName:        author.LastName,
		Location:        author.Location,
		Description:     req.Description,
		PicturePath:     req.PicturePath,
		UserPicturePath: author.PicturePath,
		Likes:           map[string]bool{},
		Comments:        []string{},
	}

	if _, err := s.store.CreatePost(ctx, post); err != nil {
		logger.FromContext(ctx).Err(err).Str("user_id", author.ID).Msg("post creation failed")
		return nil, fmt.Errorf("post creation failed: %w", err)
	}

	logger.FromContext(ctx).Info().Str("post_id", post.ID).Str("user_id", author.ID).Msg("post created")

	return s.GetFeedPosts(ctx)
}

func (s *Service) GetFeedPosts(ctx context.Context) ([]posts.Post, error) {
	list, err := s.store.ListPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return list, nil
}

func (s *Service) GetUserPosts(ctx context.Context, userID string) ([]posts.Post, error) {
	list, err := s.store.ListPostsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts of %s: %w", userID, err)
	}
	return list, nil
}

// LikePost toggles userID in the post's likes and returns the updated post.
func (s *Service) LikePost(ctx context.Context, postID, userID string) (posts.Post, error) {
	var liked bool
	post, err := s.store.MutatePost(ctx, postID, func(p *posts.Post) error {
		liked = p.ToggleLike(userID)
		return nil
	})
	if err != nil {
		return posts.Post{}, err
	}

	if s.publisher != nil {
		if err := s.publisher.PublishPostLiked(post.ID, userID, post.UserID, liked); err != nil {
			logger.FromContext(ctx).Warn().Err(err).Str("post_id", post.ID).Msg("failed to publish like")
		}
	}

	return post, nil
}
