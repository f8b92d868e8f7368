package service

import (
	"context"
	"fmt"

	"github.com/eventgate/server/internal/domain"
)

// EventService handles event creation and role-scoped listing.
type EventService struct {
	events domain.EventRepository
}

// NewEventService creates a new EventService.
func NewEventService(events domain.EventRepository) *EventService {
	return &EventService{events: events}
}

// Create inserts a single event owned by the acting organizer.
func (s *EventService) Create(ctx context.Context, actor domain.Identity, name, description, eventTime, location string) (*domain.Event, error) {
	if !actor.IsOrganizer() {
		return nil, domain.ErrForbidden
	}

	if name == "" || description == "" || eventTime == "" || location == "" {
		return nil, fmt.Errorf("%w: name, description, time, and location are required", domain.ErrInvalidInput)
	}

	event := newEvent(actor, name, description, eventTime, location)
	if err := s.events.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

// CreateBulk zips the parallel field slices into events and inserts them as
// one batch. Iteration is bounded by the shortest slice; tuples with any
// empty field are skipped without being reported individually. Returns the
// number of events inserted, which is zero when no tuple was complete.
func (s *EventService) CreateBulk(ctx context.Context, actor domain.Identity, names, descriptions, times, locations []string) (int, error) {
	if !actor.IsOrganizer() {
		return 0, domain.ErrForbidden
	}

	n := len(names)
	for _, l := range []int{len(descriptions), len(times), len(locations)} {
		if l < n {
			n = l
		}
	}

	var events []*domain.Event
	for i := 0; i < n; i++ {
		if names[i] == "" || descriptions[i] == "" || times[i] == "" || locations[i] == "" {
			continue
		}
		events = append(events, newEvent(actor, names[i], descriptions[i], times[i], locations[i]))
	}

	if len(events) == 0 {
		return 0, nil
	}

	if err := s.events.CreateBatch(ctx, events); err != nil {
		return 0, fmt.Errorf("create events: %w", err)
	}
	return len(events), nil
}

// ListForRole returns the events visible to the actor: organizers see only
// their own events, every other role sees the full set.
func (s *EventService) ListForRole(ctx context.Context, actor domain.Identity) ([]domain.Event, error) {
	if actor.IsOrganizer() {
		return s.events.ListByOrganizer(ctx, actor.UserID)
	}
	return s.events.ListAll(ctx)
}

func newEvent(actor domain.Identity, name, description, eventTime, location string) *domain.Event {
	return &domain.Event{
		OrganizerID:   actor.UserID,
		OrganizerName: actor.Name,
		Name:          name,
		Description:   description,
		Time:          eventTime,
		Location:      location,
		CurrentNumber: 0,
		Queue:         []int64{},
	}
}
