package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/princekumarofficial/sociopedia-api/internal/logger"
	"github.com/princekumarofficial/sociopedia-api/internal/utils/jwt"
	"github.com/princekumarofficial/sociopedia-api/internal/utils/response"
)

type contextKey string

const UserIDKey contextKey = "userID"

// TokenVerifier turns a bearer token into the user id it was issued for.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// AuthMiddleware rejects requests without a token with 403 and requests with
// a bad token with 401. On success the user id is stored in the context.
func AuthMiddleware(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := jwt.ExtractBearer(r.Header.Get("Authorization"))
			if !ok {
				response.WriteJSON(w, http.StatusForbidden, response.GeneralError(errors.New("access denied")))
				return
			}

			userID, err := verifier.Verify(token)
			if err != nil {
				logger.FromRequest(r).Debug().Err(err).Msg("token rejected")
				response.WriteJSON(w, http.StatusUnauthorized, response.GeneralError(errors.New("invalid token")))
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			l := logger.FromContext(ctx).With().Str("user_id", userID).Logger()
			ctx = l.WithContext(ctx)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserIDFromContext extracts the user ID from the request context
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok
}
