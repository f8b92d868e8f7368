package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/eventgate/server/internal/domain"
	"github.com/eventgate/server/internal/repository/sqlite"
	"github.com/eventgate/server/internal/service"
)

func newTestEventService(t *testing.T) (*service.EventService, *sqlite.DB) {
	t.Helper()
	db := newTestDB(t)
	return service.NewEventService(db.Events()), db
}

func registerIdentity(t *testing.T, db *sqlite.DB, email, role string) domain.Identity {
	t.Helper()
	auth := service.NewAuthService(db.Users(), 4)
	user, err := auth.Register(context.Background(), "Test "+role, email, "password123", role)
	if err != nil {
		t.Fatalf("register %s: %v", role, err)
	}
	return domain.Identity{UserID: user.ID, Name: user.Name, Role: user.Role}
}

func countEvents(t *testing.T, db *sqlite.DB) int {
	t.Helper()
	var count int
	if err := db.SqlDB.QueryRow("SELECT COUNT(*) FROM events").Scan(&count); err != nil {
		t.Fatalf("count events: %v", err)
	}
	return count
}

func TestEventService_Create(t *testing.T) {
	events, db := newTestEventService(t)
	organizer := registerIdentity(t, db, "org@example.com", domain.RoleOrganizer)

	event, err := events.Create(context.Background(), organizer, "Party", "Fun night", "2026-01-01", "Hall A")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if event.OrganizerID != organizer.UserID {
		t.Fatalf("expected organizer id %d, got %d", organizer.UserID, event.OrganizerID)
	}
	if event.OrganizerName != organizer.Name {
		t.Fatalf("expected organizer name %q, got %q", organizer.Name, event.OrganizerName)
	}
	if event.CurrentNumber != 0 || len(event.Queue) != 0 {
		t.Fatalf("expected fresh counters, got current_number=%d queue=%v", event.CurrentNumber, event.Queue)
	}
}

func TestEventService_Create_NonOrganizer(t *testing.T) {
	events, db := newTestEventService(t)
	attendee := registerIdentity(t, db, "att@example.com", domain.RoleAttendee)

	_, err := events.Create(context.Background(), attendee, "Party", "Fun night", "2026-01-01", "Hall A")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if n := countEvents(t, db); n != 0 {
		t.Fatalf("rejected create must persist nothing, got %d events", n)
	}
}

func TestEventService_Create_MissingFields(t *testing.T) {
	events, db := newTestEventService(t)
	organizer := registerIdentity(t, db, "org@example.com", domain.RoleOrganizer)
	ctx := context.Background()

	tests := []struct {
		name      string
		eventName string
		desc      string
		eventTime string
		loc       string
	}{
		{"empty name", "", "desc", "t", "loc"},
		{"empty description", "name", "", "t", "loc"},
		{"empty time", "name", "desc", "", "loc"},
		{"empty location", "name", "desc", "t", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := events.Create(ctx, organizer, tc.eventName, tc.desc, tc.eventTime, tc.loc)
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}

	if n := countEvents(t, db); n != 0 {
		t.Fatalf("invalid creates must persist nothing, got %d events", n)
	}
}

func TestEventService_CreateBulk_ShortestSliceBounds(t *testing.T) {
	events, db := newTestEventService(t)
	organizer := registerIdentity(t, db, "org@example.com", domain.RoleOrganizer)

	count, err := events.CreateBulk(context.Background(), organizer,
		[]string{"A", "B"},
		[]string{"desc A", "desc B"},
		[]string{"t1"}, // shortest: bounds iteration
		[]string{"loc A", "loc B"},
	)
	if err != nil {
		t.Fatalf("CreateBulk: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly 1 event from mismatched slices, got %d", count)
	}
	if n := countEvents(t, db); n != 1 {
		t.Fatalf("expected 1 persisted event, got %d", n)
	}
}

func TestEventService_CreateBulk_SkipsIncompleteTuples(t *testing.T) {
	events, db := newTestEventService(t)
	organizer := registerIdentity(t, db, "org@example.com", domain.RoleOrganizer)

	count, err := events.CreateBulk(context.Background(), organizer,
		[]string{"A", "", "C"},
		[]string{"d1", "d2", "d3"},
		[]string{"t1", "t2", ""},
		[]string{"l1", "l2", "l3"},
	)
	if err != nil {
		t.Fatalf("CreateBulk: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 event (tuples with empty fields skipped), got %d", count)
	}

	all, err := db.Events().ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 1 || all[0].Name != "A" {
		t.Fatalf("expected only event A persisted, got %v", all)
	}
}

func TestEventService_CreateBulk_NoValidData(t *testing.T) {
	events, db := newTestEventService(t)
	organizer := registerIdentity(t, db, "org@example.com", domain.RoleOrganizer)

	count, err := events.CreateBulk(context.Background(), organizer,
		[]string{"", ""},
		[]string{"d1", "d2"},
		[]string{"t1", "t2"},
		[]string{"l1", "l2"},
	)
	if err != nil {
		t.Fatalf("CreateBulk: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0 events, got %d", count)
	}
	if n := countEvents(t, db); n != 0 {
		t.Fatalf("expected nothing persisted, got %d events", n)
	}
}

func TestEventService_CreateBulk_NonOrganizer(t *testing.T) {
	events, db := newTestEventService(t)
	attendee := registerIdentity(t, db, "att@example.com", domain.RoleAttendee)

	_, err := events.CreateBulk(context.Background(), attendee,
		[]string{"A"}, []string{"d"}, []string{"t"}, []string{"l"})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if n := countEvents(t, db); n != 0 {
		t.Fatalf("expected nothing persisted, got %d events", n)
	}
}

func TestEventService_ListForRole(t *testing.T) {
	events, db := newTestEventService(t)
	ctx := context.Background()

	alice := registerIdentity(t, db, "alice@example.com", domain.RoleOrganizer)
	bob := registerIdentity(t, db, "bob@example.com", domain.RoleOrganizer)
	attendee := registerIdentity(t, db, "att@example.com", domain.RoleAttendee)

	if _, err := events.Create(ctx, alice, "Alice Event", "d", "t", "l"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := events.Create(ctx, bob, "Bob Event", "d", "t", "l"); err != nil {
		t.Fatalf("Create: %v", err)
	}

	aliceEvents, err := events.ListForRole(ctx, alice)
	if err != nil {
		t.Fatalf("ListForRole organizer: %v", err)
	}
	if len(aliceEvents) != 1 || aliceEvents[0].OrganizerID != alice.UserID {
		t.Fatalf("organizer must see only own events, got %v", aliceEvents)
	}

	attendeeEvents, err := events.ListForRole(ctx, attendee)
	if err != nil {
		t.Fatalf("ListForRole attendee: %v", err)
	}
	if len(attendeeEvents) != 2 {
		t.Fatalf("attendee must see all events, got %d", len(attendeeEvents))
	}
}
