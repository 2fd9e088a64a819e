package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	authService "github.com/princekumarofficial/sociopedia-api/internal/services/auth"
	"github.com/princekumarofficial/sociopedia-api/internal/storage/memory"
	"github.com/princekumarofficial/sociopedia-api/internal/utils/jwt"
	"github.com/princekumarofficial/sociopedia-api/internal/utils/password"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type denyAll struct{}

func (denyAll) Allow(context.Context, http.ResponseWriter, string, string) bool { return false }

func newServer(t *testing.T, limiter Limiter) (*http.ServeMux, *jwt.Issuer) {
	t.Helper()
	issuer, err := jwt.NewIssuer(jwt.Config{Secret: "handler-secret"})
	require.NoError(t, err)

	svc := authService.NewService(memory.New(), password.NewBcryptHasher(bcrypt.MinCost), issuer)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/register", Register(svc))
	mux.HandleFunc("POST /auth/login", Login(svc, limiter))
	return mux, issuer
}

func do(mux http.Handler, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, strings.NewReader(body)))
	return rec
}

const adaJSON = `{"firstName":"Ada","lastName":"Lovelace","email":"a@x.com","password":"secret","location":"London"}`

func TestRegister(t *testing.T) {
	mux, _ := newServer(t, nil)

	rec := do(mux, "/auth/register", adaJSON)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body["_id"])
	assert.Equal(t, "a@x.com", body["email"])
	assert.Equal(t, []any{}, body["friends"])
	assert.NotContains(t, body, "password")
	assert.NotContains(t, rec.Body.String(), "$2")
}

func TestRegister_PasswordOverByteLimit(t *testing.T) {
	mux, _ := newServer(t, nil)

	// 36 runes pass the validator, 72+ bytes do not fit bcrypt
	body := `{"firstName":"Ada","lastName":"Lovelace","email":"a@x.com","password":"` + strings.Repeat("ж", 37) + `"}`
	rec := do(mux, "/auth/register", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "72 bytes")
}

func TestRegister_IgnoresFriendsInBody(t *testing.T) {
	mux, _ := newServer(t, nil)

	body := `{"firstName":"Ada","lastName":"Lovelace","email":"a@x.com","password":"secret","friends":["ghost"]}`
	rec := do(mux, "/auth/register", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"friends":[]`)
}

func TestRegister_Conflict(t *testing.T) {
	mux, _ := newServer(t, nil)

	require.Equal(t, http.StatusCreated, do(mux, "/auth/register", adaJSON).Code)

	rec := do(mux, "/auth/register", adaJSON)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"status":"error","error":"email already registered"}`, rec.Body.String())
}

func TestRegister_Validation(t *testing.T) {
	mux, _ := newServer(t, nil)

	tests := []struct {
		name string
		body string
	}{
		{"malformed", `{"firstName":`},
		{"missing email", `{"firstName":"Ada","lastName":"Lovelace","password":"secret"}`},
		{"short password", `{"firstName":"Ada","lastName":"Lovelace","email":"a@x.com","password":"abc"}`},
		{"short name", `{"firstName":"A","lastName":"Lovelace","email":"a@x.com","password":"secret"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(mux, "/auth/register", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), `"status":"error"`)
		})
	}
}

func TestLogin(t *testing.T) {
	mux, issuer := newServer(t, nil)
	require.Equal(t, http.StatusCreated, do(mux, "/auth/register", adaJSON).Code)

	rec := do(mux, "/auth/login", `{"email":"a@x.com","password":"secret"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		Token string         `json:"token"`
		User  map[string]any `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotContains(t, body.User, "password")

	userID, err := issuer.Verify(body.Token)
	require.NoError(t, err)
	assert.Equal(t, body.User["_id"], userID)
}

func TestLogin_Failures(t *testing.T) {
	mux, _ := newServer(t, nil)
	require.Equal(t, http.StatusCreated, do(mux, "/auth/register", adaJSON).Code)

	rec := do(mux, "/auth/login", `{"email":"nobody@x.com","password":"secret"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"status":"error","error":"user does not exist"}`, rec.Body.String())

	rec = do(mux, "/auth/login", `{"email":"a@x.com","password":"wrong"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"status":"error","error":"invalid credentials"}`, rec.Body.String())

	rec = do(mux, "/auth/login", `{"email":"a@x.com"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin_RateLimited(t *testing.T) {
	mux, _ := newServer(t, denyAll{})

	rec := do(mux, "/auth/login", `{"email":"a@x.com","password":"secret"}`)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}
