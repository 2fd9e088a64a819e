// Package jwt issues and verifies the bearer tokens handed out at login.
//
// Tokens carry the user id and the issue time only. They have no expiry and
// stay valid until the signing secret changes.
package jwt

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrEmptySecret  = errors.New("jwt secret must not be empty")
)

const bearerPrefix = "Bearer "

// Config is read once at startup and never changes afterwards.
type Config struct {
	Secret string
}

// Claims is the token payload: {"id": "<user id>", "iat": <unix>}.
type Claims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

type Issuer struct {
	secret []byte
	now    func() time.Time
}

func NewIssuer(cfg Config) (*Issuer, error) {
	if cfg.Secret == "" {
		return nil, ErrEmptySecret
	}
	return &Issuer{secret: []byte(cfg.Secret), now: time.Now}, nil
}

// Issue signs a token for userID with HS256.
func (i *Issuer) Issue(userID string) (string, error) {
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(i.now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and returns the user id the token was issued
// for. Every failure is reported as ErrInvalidToken.
func (i *Issuer) Verify(tokenString string) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if !token.Valid || claims.UserID == "" {
		return "", ErrInvalidToken
	}

	return claims.UserID, nil
}

// ExtractBearer pulls the token out of an Authorization header value. The
// "Bearer " prefix is optional. ok is false when the header carries nothing.
func ExtractBearer(header string) (token string, ok bool) {
	token = header
	if strings.HasPrefix(token, bearerPrefix) {
		token = strings.TrimLeft(token[len(bearerPrefix):], " \t")
	}
	return token, token != ""
}
