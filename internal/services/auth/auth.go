// Package auth registers users and exchanges credentials for tokens.
package auth

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/princekumarofficial/sociopedia-api/internal/logger"
	"github.com/princekumarofficial/sociopedia-api/internal/storage"
	"github.com/princekumarofficial/sociopedia-api/internal/types/users"
	"github.com/princekumarofficial/sociopedia-api/internal/utils/password"
)

// Upper bound (exclusive) of the profile counters seeded at registration.
const maxSeedCounter = 10000

type TokenIssuer interface {
	Issue(userID string) (string, error)
}

type Service struct {
	store  storage.UserStorage
	hasher password.Hasher
	issuer TokenIssuer

	newID   func() string
	counter func() int
}

func NewService(store storage.UserStorage, hasher password.Hasher, issuer TokenIssuer) *Service {
	return &Service{
		store:   store,
		hasher:  hasher,
		issuer:  issuer,
		newID:   uuid.NewString,
		counter: func() int { return rand.IntN(maxSeedCounter) },
	}
}

// Register stores a new user with a hashed password. A taken email is
// reported as storage.ErrEmailTaken.
func (s *Service) Register(ctx context.Context, req users.RegisterRequest) (users.PublicUser, error) {
	log := logger.FromContext(ctx)

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return users.PublicUser{}, err
	}

	user := users.User{
		ID:            s.newID(),
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		PasswordHash:  hash,
		PicturePath:   req.PicturePath,
		Friends:       []string{},
		Location:      req.Location,
		Occupation:    req.Occupation,
		ViewedProfile: s.counter(),
		Impressions:   s.counter(),
	}

	saved, err := s.store.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, storage.ErrEmailTaken) {
			log.Info().Str("email", req.Email).Msg("registration with taken email")
			return users.PublicUser{}, err
		}
		log.Err(err).Msg("user creation ended with error")
		return users.PublicUser{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	log.Info().Str("user_id", saved.ID).Msg("user registered")
	return saved.Public(), nil
}

// Login checks the credentials and returns a signed token together with
// the user. Unknown email and wrong password are reported separately.
func (s *Service) Login(ctx context.Context, req users.LoginRequest) (users.LoginResponse, error) {
	log := logger.FromContext(ctx)

	user, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return users.LoginResponse{}, ErrUserDoesNotExist
		}
		log.Err(err).Msg("user lookup failed")
		return users.LoginResponse{}, fmt.Errorf("user lookup failed: %w", err)
	}

	if !s.hasher.Verify(req.Password, user.PasswordHash) {
		log.Info().Str("user_id", user.ID).Msg("wrong password")
		return users.LoginResponse{}, ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(user.ID)
	if err != nil {
		log.Err(err).Str("user_id", user.ID).Msg("token signing failed")
		return users.LoginResponse{}, fmt.Errorf("token signing failed: %w", err)
	}

	return users.LoginResponse{Token: token, User: user.Public()}, nil
}
