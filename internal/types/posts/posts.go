package posts

import (
	"slices"
	"time"
)

type Post struct {
	ID              string          `json:"_id"`
	UserID          string          `json:"userId"`
	FirstName       string          `json:"firstName"`
	LastName        string          `json:"lastName"`
	Location        string          `json:"location"`
	Description     string          `json:"description"`
	PicturePath     string          `json:"picturePath"`
	UserPicturePath string          `json:"userPicturePath"`
	Likes           map[string]bool `json:"likes"`
	Comments        []string        `json:"comments"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// ToggleLike flips userID in the likes map and reports whether the post is
// liked by userID afterwards.
func (p *Post) ToggleLike(userID string) bool {
	if p.Likes == nil {
		p.Likes = map[string]bool{}
	}
	if p.Likes[userID] {
		delete(p.Likes, userID)
		return false
	}
	p.Likes[userID] = true
	return true
}

// LikedBy lists the ids in the likes map, sorted.
func (p Post) LikedBy() []string {
	ids := make([]string, 0, len(p.Likes))
	for id, liked := range p.Likes {
		if liked {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

type CreatePostRequest struct {
	UserID      string `json:"userId" validate:"required"`
	Description string `json:"description" validate:"max=2000"`
	PicturePath string `json:"picturePath" validate:"max=255"`
}

type LikePostRequest struct {
	UserID string `json:"userId" validate:"required"`
}
