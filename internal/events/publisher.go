package events

import (
	"time"

	"github.com/princekumarofficial/sociopedia-api/internal/types"
)

//go:generate mockgen -source=publisher.go -destination=../mock/publisher_mock.go -package=mock

// Publisher pushes domain events to connected users
type Publisher interface {
	PublishFriendToggled(actorID, friendID string, friends bool) error
	PublishPostLiked(postID, userID, authorID string, liked bool) error
}

// EventPublisher implements the Publisher interface
type EventPublisher struct {
	hub WebSocketHub
}

// WebSocketHub interface for the WebSocket hub
type WebSocketHub interface {
	BroadcastToUser(userID string, event *types.Event)
	IsUserConnected(userID string) bool
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(hub WebSocketHub) *EventPublisher {
	return &EventPublisher{
		hub: hub,
	}
}

// PublishFriendToggled notifies friendID that actorID added (friends=true)
// or removed them.
func (p *EventPublisher) PublishFriendToggled(actorID, friendID string, friends bool) error {
	if actorID == friendID {
		return nil
	}

	// Only send if the friend is connected
	if !p.hub.IsUserConnected(friendID) {
		return nil
	}

	eventData := &types.FriendToggledEvent{
		UserID:    actorID,
		Friends:   friends,
		ToggledAt: time.Now().UTC().Format(time.RFC3339),
	}

	p.hub.BroadcastToUser(friendID, types.NewEvent(types.EventFriendToggled, eventData))

	return nil
}

// PublishPostLiked notifies the post author about a like toggle
func (p *EventPublisher) PublishPostLiked(postID, userID, authorID string, liked bool) error {
	// Don't send notification if the author liked their own post
	if userID == authorID {
		return nil
	}

	if !p.hub.IsUserConnected(authorID) {
		return nil
	}

	eventData := &types.PostLikedEvent{
		PostID:  postID,
		UserID:  userID,
		Liked:   liked,
		LikedAt: time.Now().UTC().Format(time.RFC3339),
	}

	p.hub.BroadcastToUser(authorID, types.NewEvent(types.EventPostLiked, eventData))

	return nil
}
