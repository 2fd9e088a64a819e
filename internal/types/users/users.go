package users

import (
	"slices"
	"time"
)

// User is the stored record. It is never written to a response directly;
// handlers send one of the projections below.
type User struct {
	ID            string
	FirstName     string
	LastName      string
	Email         string
	PasswordHash  string
	PicturePath   string
	Friends       []string
	Location      string
	Occupation    string
	ViewedProfile int
	Impressions   int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PublicUser is every field of User except the password hash.
type PublicUser struct {
	ID            string    `json:"_id"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	Email         string    `json:"email"`
	PicturePath   string    `json:"picturePath"`
	Friends       []string  `json:"friends"`
	Location      string    `json:"location"`
	Occupation    string    `json:"occupation"`
	ViewedProfile int       `json:"viewedProfile"`
	Impressions   int       `json:"impressions"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ReducedProfile is what friend lists expose about each friend.
type ReducedProfile struct {
	ID          string `json:"_id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Occupation  string `json:"occupation"`
	Location    string `json:"location"`
	PicturePath string `json:"picturePath"`
}

func (u User) Public() PublicUser {
	friends := slices.Clone(u.Friends)
	if friends == nil {
		friends = []string{}
	}

	return PublicUser{
		ID:            u.ID,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Email:         u.Email,
		PicturePath:   u.PicturePath,
		Friends:       friends,
		Location:      u.Location,
		Occupation:    u.Occupation,
		ViewedProfile: u.ViewedProfile,
		Impressions:   u.Impressions,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func (u User) Reduced() ReducedProfile {
	return ReducedProfile{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Occupation:  u.Occupation,
		Location:    u.Location,
		PicturePath: u.PicturePath,
	}
}

// HasFriend reports whether id appears in the friend list.
func (u User) HasFriend(id string) bool {
	return slices.Contains(u.Friends, id)
}

// RegisterRequest has no friends field: new users start with an empty list
// and only the friend toggle changes it.
type RegisterRequest struct {
	FirstName   string `json:"firstName" validate:"required,min=2,max=50"`
	LastName    string `json:"lastName" validate:"required,min=2,max=50"`
	Email       string `json:"email" validate:"required,max=50"`
	Password    string `json:"password" validate:"required,min=5,max=72"`
	PicturePath string `json:"picturePath" validate:"max=255"`
	Location    string `json:"location" validate:"max=100"`
	Occupation  string `json:"occupation" validate:"max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string     `json:"token"`
	User  PublicUser `json:"user"`
}
