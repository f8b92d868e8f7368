package domain

import (
	"context"
	"time"
)

// Event is an activity published by an organizer. OrganizerName is a
// denormalized copy of the creating user's name taken at creation time.
// CurrentNumber and Queue are reserved for the registration queue and are
// never mutated by any exposed operation.
type Event struct {
	ID            int64
	OrganizerID   int64
	OrganizerName string
	Name          string
	Description   string
	Time          string // opaque, unvalidated
	Location      string
	CurrentNumber int
	Queue         []int64 // ordered attendee user ids
	CreatedAt     time.Time
}

// EventRepository defines persistence operations for events.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	// CreateBatch inserts all events in a single transaction: either every
	// event is persisted or none are.
	CreateBatch(ctx context.Context, events []*Event) error
	ListByOrganizer(ctx context.Context, organizerID int64) ([]Event, error)
	ListAll(ctx context.Context) ([]Event, error)
}
