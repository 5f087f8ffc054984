package events

import (
	"context"
	"errors"
	"sync"

	"ecosync/backend/internal/config"
	"ecosync/backend/internal/logger"
)

// ErrHubStopped is returned by Publish once Run has returned.
var ErrHubStopped = errors.New("event hub stopped")

// Client is one subscriber connection.
type Client interface {
	// GetID returns the connection id.
	GetID() string
	// GetSendChannel returns the channel the hub delivers events on.
	GetSendChannel() chan<- Event
	// Run starts the connection's pumps.
	Run()
	// Close releases the connection. It must be safe to call more than once.
	Close()
}

// Hub owns the set of local subscribers. Membership changes and deliveries
// are serialized through Run.
type Hub struct {
	clients map[string]Client
	mu      sync.RWMutex

	registerCh   chan Client
	unregisterCh chan Client
	broadcastCh  chan Event
	done         chan struct{}
}

var _ Publisher = (*Hub)(nil)

// NewHub returns a hub. Call Run before publishing.
func NewHub() *Hub {
	return &Hub{
		clients:      make(map[string]Client),
		registerCh:   make(chan Client),
		unregisterCh: make(chan Client),
		broadcastCh:  make(chan Event, config.FeedSendBuffer),
		done:         make(chan struct{}),
	}
}

// Register adds c to the hub and starts it.
func (h *Hub) Register(c Client) {
	select {
	case h.registerCh <- c:
	case <-h.done:
		c.Close()
	}
}

// Unregister removes c from the hub and closes it.
func (h *Hub) Unregister(c Client) {
	select {
	case h.unregisterCh <- c:
	case <-h.done:
	}
}

// Publish queues e for every local subscriber.
func (h *Hub) Publish(ctx context.Context, e Event) error {
	select {
	case <-h.done:
		return ErrHubStopped
	default:
	}
	select {
	case h.broadcastCh <- e:
		return nil
	case <-h.done:
		return ErrHubStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ClientCount returns the number of registered subscribers.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Done is closed when Run returns.
func (h *Hub) Done() <-chan struct{} { return h.done }

// Run dispatches until ctx is cancelled, then closes every subscriber.
func (h *Hub) Run(ctx context.Context) {
	log := logger.Default().WithField("component", "events.hub")
	defer func() {
		h.mu.Lock()
		for id, c := range h.clients {
			c.Close()
			delete(h.clients, id)
		}
		h.mu.Unlock()
		close(h.done)
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case c := <-h.registerCh:
			h.mu.Lock()
			h.clients[c.GetID()] = c
			h.mu.Unlock()
			c.Run()
			log.WithField("client", c.GetID()).Debug("subscriber registered")

		case c := <-h.unregisterCh:
			h.remove(c)

		case e := <-h.broadcastCh:
			h.mu.RLock()
			var slow []Client
			for _, c := range h.clients {
				select {
				case c.GetSendChannel() <- e:
				default:
					slow = append(slow, c)
				}
			}
			h.mu.RUnlock()
			for _, c := range slow {
				log.WithField("client", c.GetID()).Warn("dropping slow subscriber")
				h.remove(c)
			}
		}
	}
}

func (h *Hub) remove(c Client) {
	h.mu.Lock()
	current, ok := h.clients[c.GetID()]
	if ok && current == c {
		delete(h.clients, c.GetID())
	}
	h.mu.Unlock()
	if ok && current == c {
		c.Close()
	}
}
