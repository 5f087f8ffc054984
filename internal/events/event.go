// Package events carries complaint change notifications to realtime
// subscribers. A Hub fans events out to the websocket clients of one
// instance; a RedisBroker relays them between instances.
package events

import (
	"context"
	"time"
)

// Type names a change.
type Type string

const (
	ComplaintCreated Type = "complaint.created"
	ComplaintUpdated Type = "complaint.updated"
	ComplaintDeleted Type = "complaint.deleted"
)

// Event is one change of the complaints collection.
type Event struct {
	Type        Type           `json:"type"`
	ComplaintID string         `json:"complaint_id"`
	Data        map[string]any `json:"data,omitempty"`
	At          time.Time      `json:"at"`
}

// New stamps an event with the current time.
func New(t Type, complaintID string, data map[string]any) Event {
	return Event{Type: t, ComplaintID: complaintID, Data: data, At: time.Now().UTC()}
}

// Publisher accepts events for delivery. Delivery is best effort.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Discard drops every event.
var Discard Publisher = discard{}

type discard struct{}

func (discard) Publish(context.Context, Event) error { return nil }
