package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/princekumarofficial/sociopedia-api/internal/logger"
	"github.com/princekumarofficial/sociopedia-api/internal/ratelimit"
	authService "github.com/princekumarofficial/sociopedia-api/internal/services/auth"
	"github.com/princekumarofficial/sociopedia-api/internal/storage"
	"github.com/princekumarofficial/sociopedia-api/internal/types/users"
	"github.com/princekumarofficial/sociopedia-api/internal/utils/password"
	"github.com/princekumarofficial/sociopedia-api/internal/utils/response"
)

// Limiter is satisfied by middleware.RateLimitConfig.
type Limiter interface {
	Allow(ctx context.Context, w http.ResponseWriter, subject, action string) bool
}

// Register handles user registration
// @Summary Register a new user
// @Description Create an account. The password is stored as a bcrypt hash and never returned.
// @Tags auth
// @Accept json
// @Produce json
// @Param user body users.RegisterRequest true "User registration details"
// @Success 201 {object} users.PublicUser "User created"
// @Failure 400 {object} response.Response "Bad request or password over 72 bytes"
// @Failure 409 {object} response.Response "Email already registered"
// @Failure 500 {object} response.Response "Internal server error"
// @Router /auth/register [post]
func Register(svc *authService.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req users.RegisterRequest
		if !response.DecodeAndValidate(w, r, &req) {
			return
		}

		user, err := svc.Register(r.Context(), req)
		if err != nil {
			switch {
			case errors.Is(err, storage.ErrEmailTaken):
				response.WriteJSON(w, http.StatusConflict, response.GeneralError(err))
				return
			case errors.Is(err, password.ErrPasswordTooLong):
				response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
				return
			}
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(errors.New("failed to register user")))
			return
		}

		response.WriteJSON(w, http.StatusCreated, user)
	}
}

// Login handles user authentication
// @Summary Log in
// @Description Exchange email and password for a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param user body users.LoginRequest true "User login details"
// @Success 200 {object} users.LoginResponse "Token and user"
// @Failure 400 {object} response.Response "Unknown user, wrong password or bad request"
// @Failure 429 {object} response.Response "Too many attempts"
// @Failure 500 {object} response.Response "Internal server error"
// @Router /auth/login [post]
func Login(svc *authService.Service, limiter Limiter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req users.LoginRequest
		if !response.DecodeAndValidate(w, r, &req) {
			return
		}

		if limiter != nil && !limiter.Allow(r.Context(), w, req.Email, ratelimit.ActionLogin) {
			logger.FromRequest(r).Info().Str("email", req.Email).Msg("login rate limited")
			response.WriteJSON(w, http.StatusTooManyRequests, response.GeneralError(errors.New("too many login attempts")))
			return
		}

		resp, err := svc.Login(r.Context(), req)
		if err != nil {
			switch {
			case errors.Is(err, authService.ErrUserDoesNotExist), errors.Is(err, authService.ErrInvalidCredentials):
				response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			default:
				response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(errors.New("failed to log in")))
			}
			return
		}

		response.WriteJSON(w, http.StatusOK, resp)
	}
}
