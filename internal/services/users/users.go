// Package users reads profiles and maintains the symmetric friend graph.
package users

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/princekumarofficial/sociopedia-api/internal/events"
	"github.com/princekumarofficial/sociopedia-api/internal/logger"
	"github.com/princekumarofficial/sociopedia-api/internal/storage"
	"github.com/princekumarofficial/sociopedia-api/internal/types/users"
)

var ErrSelfFriend = errors.New("a user cannot befriend themselves")

type Service struct {
	store     storage.UserStorage
	publisher events.Publisher
}

func NewService(store storage.UserStorage, publisher events.Publisher) *Service {
	return &Service{store: store, publisher: publisher}
}

func (s *Service) GetUser(ctx context.Context, id string) (users.PublicUser, error) {
	user, err := s.store.GetUserByID(ctx, id)
	if err != nil {
		return users.PublicUser{}, err
	}
	return user.Public(), nil
}

func (s *Service) GetUserFriends(ctx context.Context, id string) ([]users.ReducedProfile, error) {
	user, err := s.store.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.resolveFriends(ctx, user.Friends)
}

// ToggleFriend adds friendID to userID's friends, or removes it when it is
// already there. Both sides change together. It returns userID's friends
// after the change.
func (s *Service) ToggleFriend(ctx context.Context, userID, friendID string) ([]users.ReducedProfile, error) {
	log := logger.FromContext(ctx).With().Str("user_id", userID).Str("friend_id", friendID).Logger()

	if userID == friendID {
		return nil, ErrSelfFriend
	}

	var nowFriends bool
	updated, err := s.store.MutateFriendPair(ctx, userID, friendID, func(user, friend *users.User) error {
		nowFriends = toggle(user, friend)
		return nil
	})
	if err != nil {
		if !errors.Is(err, storage.ErrUserNotFound) {
			log.Error().Err(err).Msg("friend toggle failed")
		}
		return nil, err
	}

	log.Info().Bool("friends", nowFriends).Msg("friend toggled")

	if s.publisher != nil {
		if err := s.publisher.PublishFriendToggled(userID, friendID, nowFriends); err != nil {
			log.Warn().Err(err).Msg("failed to publish friend toggle")
		}
	}

	return s.resolveFriends(ctx, updated.Friends)
}

// toggle applies one friend toggle to both lists and reports whether the
// two are friends afterwards.
func toggle(user, friend *users.User) bool {
	if user.HasFriend(friend.ID) {
		user.Friends = without(user.Friends, friend.ID)
		friend.Friends = without(friend.Friends, user.ID)
		return false
	}

	user.Friends = append(user.Friends, friend.ID)
	if !friend.HasFriend(user.ID) {
		friend.Friends = append(friend.Friends, user.ID)
	}
	return true
}

// without drops every occurrence of id.
func without(list []string, id string) []string {
	return slices.DeleteFunc(slices.Clone(list), func(s string) bool { return s == id })
}

// resolveFriends keeps the order of ids and skips ids that no longer exist.
func (s *Service) resolveFriends(ctx context.Context, ids []string) ([]users.ReducedProfile, error) {
	found, err := s.store.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load friends: %w", err)
	}

	byID := make(map[string]users.User, len(found))
	for _, u := range found {
		byID[u.ID] = u
	}

	profiles := make([]users.ReducedProfile, 0, len(ids))
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			profiles = append(profiles, u.Reduced())
		}
	}
	return profiles, nil
}
