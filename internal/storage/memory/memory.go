// Package memory is a Storage kept in process memory. Tests use it where
// the SQL itself is not under test.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/princekumarofficial/sociopedia-api/internal/storage"
	"github.com/princekumarofficial/sociopedia-api/internal/types/posts"
	"github.com/princekumarofficial/sociopedia-api/internal/types/users"
)

var _ storage.Storage = (*Store)(nil)

type Store struct {
	mu      sync.Mutex
	users   map[string]users.User
	byEmail map[string]string
	posts   []posts.Post
	now     func() time.Time
}

func New() *Store {
	return &Store{
		users:   map[string]users.User{},
		byEmail: map[string]string{},
		now:     time.Now,
	}
}

func cloneUser(u users.User) users.User {
	u.Friends = slices.Clone(u.Friends)
	if u.Friends == nil {
		u.Friends = []string{}
	}
	return u
}

func clonePost(p posts.Post) posts.Post {
	p.Likes = maps.Clone(p.Likes)
	if p.Likes == nil {
		p.Likes = map[string]bool{}
	}
	p.Comments = slices.Clone(p.Comments)
	if p.Comments == nil {
		p.Comments = []string{}
	}
	return p
}

func (s *Store) CreateUser(_ context.Context, user users.User) (users.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byEmail[user.Email]; taken {
		return users.User{}, storage.ErrEmailTaken
	}

	user = cloneUser(user)
	user.CreatedAt = s.now()
	user.UpdatedAt = user.CreatedAt

	s.users[user.ID] = user
	s.byEmail[user.Email] = user.ID

	return cloneUser(user), nil
}

func (s *Store) GetUserByID(_ context.Context, id string) (users.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return users.User{}, storage.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (users.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byEmail[email]
	if !ok {
		return users.User{}, storage.ErrUserNotFound
	}
	return cloneUser(s.users[id]), nil
}

func (s *Store) GetUsersByIDs(_ context.Context, ids []string) ([]users.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := []users.User{}
	seen := map[string]bool{}
	for _, id := range ids {
		u, ok := s.users[id]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		result = append(result, cloneUser(u))
	}
	return result, nil
}

// MutateFriendPair holds the store lock for the whole mutation, which gives
// the same all-or-nothing result as the SQL transaction.
func (s *Store) MutateFriendPair(_ context.Context, userID, friendID string, fn storage.FriendPairFunc) (users.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.users[userID]
	if !ok {
		return users.User{}, storage.ErrUserNotFound
	}
	storedFriend, ok := s.users[friendID]
	if !ok {
		return users.User{}, storage.ErrUserNotFound
	}

	user, friend := cloneUser(stored), cloneUser(storedFriend)
	if userID == friendID {
		if err := fn(&user, &user); err != nil {
			return users.User{}, err
		}
		friend = user
	} else if err := fn(&user, &friend); err != nil {
		return users.User{}, err
	}

	now := s.now()
	user.UpdatedAt, friend.UpdatedAt = now, now
	s.users[friendID] = cloneUser(friend)
	s.users[userID] = cloneUser(user)

	return cloneUser(user), nil
}

func (s *Store) CreatePost(_ context.Context, post posts.Post) (posts.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post = clonePost(post)
	post.CreatedAt = s.now()
	post.UpdatedAt = post.CreatedAt
	s.posts = append(s.posts, post)

	return clonePost(post), nil
}

// ListPosts returns every post, newest first.
func (s *Store) ListPosts(_ context.Context) ([]posts.Post, error) {
	return s.listPosts(func(posts.Post) bool { return true }), nil
}

func (s *Store) ListPostsByUser(_ context.Context, userID string) ([]posts.Post, error) {
	return s.listPosts(func(p posts.Post) bool { return p.UserID == userID }), nil
}

func (s *Store) listPosts(keep func(posts.Post) bool) []posts.Post {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := []posts.Post{}
	for i := len(s.posts) - 1; i >= 0; i-- {
		if keep(s.posts[i]) {
			result = append(result, clonePost(s.posts[i]))
		}
	}
	return result
}

func (s *Store) MutatePost(_ context.Context, postID string, fn storage.PostFunc) (posts.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.posts {
		if s.posts[i].ID != postID {
			continue
		}

		post := clonePost(s.posts[i])
		if err := fn(&post); err != nil {
			return posts.Post{}, err
		}
		post.UpdatedAt = s.now()
		s.posts[i] = clonePost(post)

		return clonePost(post), nil
	}

	return posts.Post{}, storage.ErrPostNotFound
}
