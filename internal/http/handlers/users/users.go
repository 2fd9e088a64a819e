package users

import (
	"errors"
	"net/http"

	"github.com/princekumarofficial/sociopedia-api/internal/logger"
	usersService "github.com/princekumarofficial/sociopedia-api/internal/services/users"
	"github.com/princekumarofficial/sociopedia-api/internal/storage"
	"github.com/princekumarofficial/sociopedia-api/internal/utils/response"
)

func writeError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	switch {
	case errors.Is(err, storage.ErrUserNotFound):
		response.WriteJSON(w, http.StatusNotFound, response.GeneralError(err))
	case errors.Is(err, usersService.ErrSelfFriend):
		response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
	default:
		logger.FromRequest(r).Error().Err(err).Msg(msg)
		response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(errors.New(msg)))
	}
}

// GetUser returns a profile
// @Summary Get a user
// @Description Get a user's profile without the password hash
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} users.PublicUser "User profile"
// @Failure 401 {object} response.Response "Invalid token"
// @Failure 403 {object} response.Response "Missing token"
// @Failure 404 {object} response.Response "User not found"
// @Failure 500 {object} response.Response "Internal server error"
// @Security BearerAuth
// @Router /users/{id} [get]
func GetUser(svc *usersService.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := svc.GetUser(r.Context(), r.PathValue("id"))
		if err != nil {
			writeError(w, r, err, "failed to get user")
			return
		}

		response.WriteJSON(w, http.StatusOK, user)
	}
}

// GetUserFriends lists a user's friends
// @Summary List friends
// @Description List the reduced profiles of a user's friends, in friend list order
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {array} users.ReducedProfile "Friends"
// @Failure 401 {object} response.Response "Invalid token"
// @Failure 403 {object} response.Response "Missing token"
// @Failure 404 {object} response.Response "User not found"
// @Failure 500 {object} response.Response "Internal server error"
// @Security BearerAuth
// @Router /users/{id}/friends [get]
func GetUserFriends(svc *usersService.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		friends, err := svc.GetUserFriends(r.Context(), r.PathValue("id"))
		if err != nil {
			writeError(w, r, err, "failed to get friends")
			return
		}

		response.WriteJSON(w, http.StatusOK, friends)
	}
}

// AddRemoveFriend toggles a friendship
// @Summary Add or remove a friend
// @Description Adds friendId to id's friends, or removes it when already present. Both sides are updated together.
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Param friendId path string true "Friend ID"
// @Success 200 {array} users.ReducedProfile "Friends after the change"
// @Failure 400 {object} response.Response "Self friendship"
// @Failure 401 {object} response.Response "Invalid token"
// @Failure 403 {object} response.Response "Missing token"
// @Failure 404 {object} response.Response "User not found"
// @Failure 500 {object} response.Response "Internal server error"
// @Security BearerAuth
// @Router /users/{id}/{friendId} [patch]
func AddRemoveFriend(svc *usersService.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		friends, err := svc.ToggleFriend(r.Context(), r.PathValue("id"), r.PathValue("friendId"))
		if err != nil {
			writeError(w, r, err, "failed to update friends")
			return
		}

		response.WriteJSON(w, http.StatusOK, friends)
	}
}
