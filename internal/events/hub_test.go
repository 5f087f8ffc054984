package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockClient struct {
	id   string
	recv chan Event

	mu     sync.Mutex
	ran    bool
	closed int
}

func newMockClient(id string, buffer int) *mockClient {
	return &mockClient{id: id, recv: make(chan Event, buffer)}
}

func (c *mockClient) GetID() string                { return c.id }
func (c *mockClient) GetSendChannel() chan<- Event { return c.recv }

func (c *mockClient) Run() {
	c.mu.Lock()
	c.ran = true
	c.mu.Unlock()
}

func (c *mockClient) Close() {
	c.mu.Lock()
	c.closed++
	c.mu.Unlock()
}

func (c *mockClient) closeCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func startHub(t *testing.T) (*Hub, context.CancelFunc) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub()
	go hub.Run(ctx)
	t.Cleanup(cancel)
	return hub, cancel
}

func TestHub_RegisterAndUnregister(t *testing.T) {
	hub, _ := startHub(t)
	client := newMockClient("a", 1)

	hub.Register(client)
	assert.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)
	client.mu.Lock()
	assert.True(t, client.ran, "registered clients are started")
	client.mu.Unlock()

	hub.Unregister(client)
	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, client.closeCount())
}

func TestHub_BroadcastsToEveryClient(t *testing.T) {
	hub, _ := startHub(t)
	a, b := newMockClient("a", 4), newMockClient("b", 4)
	hub.Register(a)
	hub.Register(b)

	e := New(ComplaintCreated, "c1", map[string]any{"title": "Pothole"})
	require.NoError(t, hub.Publish(context.Background(), e))

	for _, c := range []*mockClient{a, b} {
		select {
		case got := <-c.recv:
			assert.Equal(t, ComplaintCreated, got.Type)
			assert.Equal(t, "c1", got.ComplaintID)
		case <-time.After(time.Second):
			t.Fatalf("client %s did not receive the event", c.id)
		}
	}
}

func TestHub_DropsSlowClient(t *testing.T) {
	hub, _ := startHub(t)
	slow := newMockClient("slow", 0)
	fast := newMockClient("fast", 4)
	hub.Register(slow)
	hub.Register(fast)

	require.NoError(t, hub.Publish(context.Background(), New(ComplaintUpdated, "c1", nil)))

	assert.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, slow.closeCount())
	assert.Equal(t, 0, fast.closeCount())
}

func TestHub_StopClosesClients(t *testing.T) {
	hub, cancel := startHub(t)
	client := newMockClient("a", 1)
	hub.Register(client)
	assert.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	cancel()
	<-hub.Done()

	assert.Equal(t, 1, client.closeCount())
	assert.ErrorIs(t, hub.Publish(context.Background(), New(ComplaintDeleted, "c1", nil)), ErrHubStopped)

	late := newMockClient("late", 1)
	hub.Register(late)
	assert.Equal(t, 1, late.closeCount(), "registering on a stopped hub closes the client")
}

func TestDecodeEvent(t *testing.T) {
	e, err := decodeEvent(`{"type":"complaint.deleted","complaint_id":"c9","at":"2025-06-01T10:00:00Z"}`)
	require.NoError(t, err)
	assert.Equal(t, ComplaintDeleted, e.Type)
	assert.Equal(t, "c9", e.ComplaintID)

	_, err = decodeEvent(`{"complaint_id":"c9"}`)
	assert.Error(t, err)

	_, err = decodeEvent(`not json`)
	assert.Error(t, err)
}

func TestDiscard(t *testing.T) {
	assert.NoError(t, Discard.Publish(context.Background(), New(ComplaintCreated, "c1", nil)))
}
