package websocket

import (
	"errors"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/princekumarofficial/sociopedia-api/internal/http/middleware"
	"github.com/princekumarofficial/sociopedia-api/internal/logger"
	"github.com/princekumarofficial/sociopedia-api/internal/utils/response"
	wsClient "github.com/princekumarofficial/sociopedia-api/internal/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The API is consumed by browser clients on other origins; auth is the token.
		return true
	},
}

// WebSocketHandler upgrades the connection and registers it with the hub
// @Summary Realtime events
// @Description Upgrade to a websocket that receives friend.toggled and post.liked events
// @Tags realtime
// @Param token query string true "Bearer token"
// @Success 101 "Switching protocols"
// @Failure 401 {object} response.Response "Missing or invalid token"
// @Router /ws [get]
func WebSocketHandler(hub *wsClient.Hub, verifier middleware.TokenVerifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		token := r.URL.Query().Get("token")
		if token == "" {
			log.Warn().Msg("websocket connection attempted without token")
			response.WriteJSON(w, http.StatusUnauthorized, response.GeneralError(errors.New("token required")))
			return
		}

		userID, err := verifier.Verify(token)
		if err != nil {
			log.Warn().Err(err).Msg("websocket connection attempted with invalid token")
			response.WriteJSON(w, http.StatusUnauthorized, response.GeneralError(errors.New("invalid token")))
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Error().Err(err).Msg("failed to upgrade websocket connection")
			return
		}

		client := wsClient.NewClient(conn, userID, hub)
		hub.RegisterClient(client)
		client.Start()

		log.Info().Str("user_id", userID).Msg("websocket connection established")
	}
}
