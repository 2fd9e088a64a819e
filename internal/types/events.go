package types

import "time"

// EventType represents the type of real-time event
type EventType string

const (
	EventFriendToggled EventType = "friend.toggled"
	EventPostLiked     EventType = "post.liked"
)

// Event is the envelope written to websocket clients
type Event struct {
	Type      EventType `json:"type"`
	Data      any       `json:"data"`
	Timestamp string    `json:"timestamp"`
}

// FriendToggledEvent tells a user that someone added or removed them.
type FriendToggledEvent struct {
	UserID    string `json:"userId"`
	Friends   bool   `json:"friends"`
	ToggledAt string `json:"toggledAt"`
}

// PostLikedEvent tells an author that their post got liked or unliked.
type PostLikedEvent struct {
	PostID  string `json:"postId"`
	UserID  string `json:"userId"`
	Liked   bool   `json:"liked"`
	LikedAt string `json:"likedAt"`
}

// NewEvent creates a new event with the current timestamp
func NewEvent(eventType EventType, data any) *Event {
	return &Event{
		Type:      eventType,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}
