package events

import (
	"testing"

	"github.com/princekumarofficial/sociopedia-api/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHub struct {
	online map[string]bool
	sent   map[string][]*types.Event
}

func newFakeHub(online ...string) *fakeHub {
	h := &fakeHub{online: map[string]bool{}, sent: map[string][]*types.Event{}}
	for _, id := range online {
		h.online[id] = true
	}
	return h
}

func (h *fakeHub) BroadcastToUser(userID string, event *types.Event) {
	h.sent[userID] = append(h.sent[userID], event)
}

func (h *fakeHub) IsUserConnected(userID string) bool {
	return h.online[userID]
}

func TestPublishFriendToggled(t *testing.T) {
	hub := newFakeHub("u2")
	p := NewEventPublisher(hub)

	require.NoError(t, p.PublishFriendToggled("u1", "u2", true))

	require.Len(t, hub.sent["u2"], 1)
	ev := hub.sent["u2"][0]
	assert.Equal(t, types.EventFriendToggled, ev.Type)

	data, ok := ev.Data.(*types.FriendToggledEvent)
	require.True(t, ok)
	assert.Equal(t, "u1", data.UserID)
	assert.True(t, data.Friends)
}

func TestPublishFriendToggled_Offline(t *testing.T) {
	hub := newFakeHub()
	p := NewEventPublisher(hub)

	require.NoError(t, p.PublishFriendToggled("u1", "u2", false))
	assert.Empty(t, hub.sent)
}

func TestPublishPostLiked(t *testing.T) {
	hub := newFakeHub("author")
	p := NewEventPublisher(hub)

	require.NoError(t, p.PublishPostLiked("p1", "fan", "author", true))
	require.NoError(t, p.PublishPostLiked("p1", "author", "author", true))

	require.Len(t, hub.sent["author"], 1, "self-likes are not announced")
	data := hub.sent["author"][0].Data.(*types.PostLikedEvent)
	assert.Equal(t, "p1", data.PostID)
	assert.Equal(t, "fan", data.UserID)
	assert.True(t, data.Liked)
}
