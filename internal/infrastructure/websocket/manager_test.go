package websocket

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(userID string) *Client {
	return &Client{
		UserID: userID,
		Send:   make(chan []byte, 1),
	}
}

// sync pushes a throwaway registration through the manager loop. The loop is
// a single goroutine, so once this send is accepted every earlier channel op
// has been fully processed.
func syncManager(m *Manager) {
	m.Register <- newTestClient("sync-barrier")
}

func receiveFrame(t *testing.T, client *Client) []byte {
	t.Helper()

	select {
	case msg, ok := <-client.Send:
		require.True(t, ok, "send channel closed")
		return msg
	default:
		t.Fatal("no frame delivered")
		return nil
	}
}

func TestUnregisterIgnoresReplacedConnection(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := NewManager()
	m.Start(ctx)

	old := newTestClient("u1")
	fresh := newTestClient("u1")

	m.Register <- old
	m.Register <- fresh

	// Reconnect overlap: the stale connection unregisters after its
	// replacement has already taken the registry slot.
	m.Unregister <- old
	syncManager(m)

	m.SendToUser("u1", []byte("ping"))
	assert.Equal(t, []byte("ping"), receiveFrame(t, fresh))

	// The replaced connection's write pump was released on re-register.
	_, ok := <-old.Send
	assert.False(t, ok)
}

func TestUnregisterEvictsCurrentConnection(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := NewManager()
	m.Start(ctx)

	client := newTestClient("u1")
	m.Register <- client
	m.Unregister <- client
	syncManager(m)

	m.SendToUser("u1", []byte("ping"))

	_, ok := <-client.Send
	assert.False(t, ok)
}

func TestSendToClientBypassesRegistry(t *testing.T) {
	m := NewManager()

	client := newTestClient("u1")

	m.SendToClient(client, []byte("direct"))

	assert.Equal(t, []byte("direct"), receiveFrame(t, client))
}

func TestSendToClientAfterShutdownIsDropped(t *testing.T) {
	m := NewManager()

	client := newTestClient("u1")
	client.shutdown()

	// Must not panic on the closed channel; the frame is dropped.
	m.SendToClient(client, []byte("late"))

	_, ok := <-client.Send
	assert.False(t, ok)
}

func TestShutdownIsIdempotent(t *testing.T) {
	client := newTestClient("u1")

	client.shutdown()
	client.shutdown()

	_, ok := <-client.Send
	assert.False(t, ok)
}
