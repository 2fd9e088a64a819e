package posts

import (
	"errors"
	"net/http"

	"github.com/princekumarofficial/sociopedia-api/internal/logger"
	postsService "github.com/princekumarofficial/sociopedia-api/internal/services/posts"
	"github.com/princekumarofficial/sociopedia-api/internal/storage"
	"github.com/princekumarofficial/sociopedia-api/internal/types/posts"
	"github.com/princekumarofficial/sociopedia-api/internal/utils/response"
)

func writeError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	switch {
	case errors.Is(err, storage.ErrUserNotFound), errors.Is(err, storage.ErrPostNotFound):
		response.WriteJSON(w, http.StatusNotFound, response.GeneralError(err))
	default:
		logger.FromRequest(r).Error().Err(err).Msg(msg)
		response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(errors.New(msg)))
	}
}

// CreatePost publishes a post
// @Summary Create a post
// @Description Create a post for userId and return every post, newest first
// @Tags posts
// @Accept json
// @Produce json
// @Param post body posts.CreatePostRequest true "Post"
// @Success 201 {array} posts.Post "All posts"
// @Failure 400 {object} response.Response "Bad request"
// @Failure 404 {object} response.Response "Author not found"
// @Failure 500 {object} response.Response "Internal server error"
// @Security BearerAuth
// @Router /posts [post]
func CreatePost(svc *postsService.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req posts.CreatePostRequest
		if !response.DecodeAndValidate(w, r, &req) {
			return
		}

		feed, err := svc.CreatePost(r.Context(), req)
		if err != nil {
			writeError(w, r, err, "failed to create post")
			return
		}

		response.WriteJSON(w, http.StatusCreated, feed)
	}
}

// GetFeedPosts returns the feed
// @Summary Feed
// @Description Every post, newest first
// @Tags posts
// @Produce json
// @Success 200 {array} posts.Post "Posts"
// @Failure 500 {object} response.Response "Internal server error"
// @Security BearerAuth
// @Router /posts [get]
func GetFeedPosts(svc *postsService.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		feed, err := svc.GetFeedPosts(r.Context())
		if err != nil {
			writeError(w, r, err, "failed to get posts")
			return
		}

		response.WriteJSON(w, http.StatusOK, feed)
	}
}

// GetUserPosts returns the posts of one user
// @Summary User posts
// @Description Posts written by userId, newest first
// @Tags posts
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {array} posts.Post "Posts"
// @Failure 500 {object} response.Response "Internal server error"
// @Security BearerAuth
// @Router /posts/{userId}/posts [get]
func GetUserPosts(svc *postsService.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.GetUserPosts(r.Context(), r.PathValue("userId"))
		if err != nil {
			writeError(w, r, err, "failed to get posts")
			return
		}

		response.WriteJSON(w, http.StatusOK, list)
	}
}

// LikePost toggles a like
// @Summary Like or unlike a post
// @Description Toggles userId in the post's likes
// @Tags posts
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Param like body posts.LikePostRequest true "Who likes"
// @Success 200 {object} posts.Post "Updated post"
// @Failure 400 {object} response.Response "Bad request"
// @Failure 404 {object} response.Response "Post not found"
// @Failure 429 {object} response.Response "Rate limit exceeded"
// @Failure 500 {object} response.Response "Internal server error"
// @Security BearerAuth
// @Router /posts/{id}/like [patch]
func LikePost(svc *postsService.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req posts.LikePostRequest
		if !response.DecodeAndValidate(w, r, &req) {
			return
		}

		post, err := svc.LikePost(r.Context(), r.PathValue("id"), req.UserID)
		if err != nil {
			writeError(w, r, err, "failed to like post")
			return
		}

		response.WriteJSON(w, http.StatusOK, post)
	}
}
