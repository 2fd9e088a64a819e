package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/princekumarofficial/sociopedia-api/internal/config"
	"github.com/princekumarofficial/sociopedia-api/internal/events"
	"github.com/princekumarofficial/sociopedia-api/internal/http/middleware"
	"github.com/princekumarofficial/sociopedia-api/internal/logger"
	authService "github.com/princekumarofficial/sociopedia-api/internal/services/auth"
	postsService "github.com/princekumarofficial/sociopedia-api/internal/services/posts"
	usersService "github.com/princekumarofficial/sociopedia-api/internal/services/users"
	"github.com/princekumarofficial/sociopedia-api/internal/storage/memory"
	"github.com/princekumarofficial/sociopedia-api/internal/types/posts"
	"github.com/princekumarofficial/sociopedia-api/internal/types/users"
	"github.com/princekumarofficial/sociopedia-api/internal/utils/jwt"
	"github.com/princekumarofficial/sociopedia-api/internal/utils/password"
	"github.com/princekumarofficial/sociopedia-api/internal/websocket"
)

type pingOK struct{}

func (pingOK) PingContext(context.Context) error { return nil }

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = redisClient.Close() })

	issuer, err := jwt.NewIssuer(jwt.Config{Secret: "test-secret"})
	require.NoError(t, err)

	store := memory.New()
	hub := websocket.NewHub(logger.Nop())
	publisher := events.NewEventPublisher(hub)

	srv := httptest.NewServer(routes(dependencies{
		logger:    logger.Nop(),
		db:        pingOK{},
		redis:     redisClient,
		verifier:  issuer,
		rateLimit: middleware.NewRateLimitConfig(redisClient, config.RateLimit{LoginPerMinute: 10, LikesPerMinute: 10}),
		hub:       hub,
		auth:      authService.NewService(store, password.NewBcryptHasher(bcrypt.MinCost), issuer),
		users:     usersService.NewService(store, publisher),
		posts:     postsService.NewService(store, publisher),
	}))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, token string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func signUp(t *testing.T, srv *httptest.Server, first, email string) users.LoginResponse {
	t.Helper()

	resp := do(t, http.MethodPost, srv.URL+"/auth/register", "", users.RegisterRequest{
		FirstName: first,
		LastName:  "Tester",
		Email:     email,
		Password:  "secret1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = do(t, http.MethodPost, srv.URL+"/auth/login", "", users.LoginRequest{Email: email, Password: "secret1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return decode[users.LoginResponse](t, resp)
}

func TestRoutes_FriendsAndPosts(t *testing.T) {
	srv := newTestServer(t)

	ada := signUp(t, srv, "Ada", "ada@example.com")
	bob := signUp(t, srv, "Bob", "bob@example.com")

	resp := do(t, http.MethodPatch, srv.URL+"/users/"+ada.User.ID+"/"+bob.User.ID, ada.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	friends := decode[[]users.ReducedProfile](t, resp)
	require.Len(t, friends, 1)
	assert.Equal(t, bob.User.ID, friends[0].ID)

	resp = do(t, http.MethodGet, srv.URL+"/users/"+bob.User.ID+"/friends", bob.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]users.ReducedProfile](t, resp), 1)

	resp = do(t, http.MethodPost, srv.URL+"/posts", ada.Token, posts.CreatePostRequest{UserID: ada.User.ID, Description: "hello"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	feed := decode[[]posts.Post](t, resp)
	require.Len(t, feed, 1)
	assert.Equal(t, "Ada", feed[0].FirstName)

	resp = do(t, http.MethodPatch, srv.URL+"/posts/"+feed[0].ID+"/like", bob.Token, posts.LikePostRequest{UserID: bob.User.ID})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	liked := decode[posts.Post](t, resp)
	assert.True(t, liked.Likes[bob.User.ID])

	resp = do(t, http.MethodGet, srv.URL+"/posts/"+ada.User.ID+"/posts", bob.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]posts.Post](t, resp), 1)
}

func TestRoutes_ProtectedWithoutToken(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/posts", "/users/u1", "/users/u1/friends", "/posts/u1/posts"} {
		resp := do(t, http.MethodGet, srv.URL+path, "", nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, path)
	}

	resp := do(t, http.MethodGet, srv.URL+"/posts", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRoutes_MediaDisabledWithoutStorage(t *testing.T) {
	srv := newTestServer(t)
	ada := signUp(t, srv, "Ada", "ada@example.com")

	resp := do(t, http.MethodPost, srv.URL+"/media/upload-url", ada.Token, map[string]string{"contentType": "image/png"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRoutes_UnknownPath(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, http.MethodGet, srv.URL+"/nowhere", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRoutes_Health(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, http.MethodGet, srv.URL+"/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
