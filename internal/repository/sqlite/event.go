package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/eventgate/server/internal/domain"
)

// EventRepository implements domain.EventRepository using SQLite.
// The registration queue is stored as a JSON array in a TEXT column.
type EventRepository struct {
	db *sql.DB
}

// NewEventRepository creates a new SQLite-backed EventRepository.
func NewEventRepository(db *DB) *EventRepository {
	return &EventRepository{db: db.SqlDB}
}

func (r *EventRepository) Create(ctx context.Context, event *domain.Event) error {
	now := time.Now().UTC()
	queue, err := marshalQueue(event.Queue)
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx,
		`INSERT INTO events (organizer_id, organizer_name, name, description, time, location, current_number, queue, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		event.OrganizerID, event.OrganizerName, event.Name, event.Description,
		event.Time, event.Location, event.CurrentNumber, queue, now,
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	event.ID = id
	event.CreatedAt = now
	return nil
}

// CreateBatch inserts all events inside one transaction. A failure on any
// row rolls back the whole batch.
func (r *EventRepository) CreateBatch(ctx context.Context, events []*domain.Event) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO events (organizer_id, organizer_name, name, description, time, location, current_number, queue, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, event := range events {
		queue, err := marshalQueue(event.Queue)
		if err != nil {
			return err
		}
		result, err := stmt.ExecContext(ctx,
			event.OrganizerID, event.OrganizerName, event.Name, event.Description,
			event.Time, event.Location, event.CurrentNumber, queue, now,
		)
		if err != nil {
			return fmt.Errorf("insert event: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("get last insert id: %w", err)
		}
		event.ID = id
		event.CreatedAt = now
	}

	return tx.Commit()
}

func (r *EventRepository) ListByOrganizer(ctx context.Context, organizerID int64) ([]domain.Event, error) {
	return r.list(ctx,
		`SELECT id, organizer_id, organizer_name, name, description, time, location, current_number, queue, created_at
		 FROM events WHERE organizer_id = ? ORDER BY id`, organizerID)
}

func (r *EventRepository) ListAll(ctx context.Context) ([]domain.Event, error) {
	return r.list(ctx,
		`SELECT id, organizer_id, organizer_name, name, description, time, location, current_number, queue, created_at
		 FROM events ORDER BY id`)
}

func (r *EventRepository) list(ctx context.Context, query string, args ...any) ([]domain.Event, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var event domain.Event
		var queue string
		if err := rows.Scan(
			&event.ID, &event.OrganizerID, &event.OrganizerName, &event.Name,
			&event.Description, &event.Time, &event.Location,
			&event.CurrentNumber, &queue, &event.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		if err := json.Unmarshal([]byte(queue), &event.Queue); err != nil {
			return nil, fmt.Errorf("decode queue for event %d: %w", event.ID, err)
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

func marshalQueue(queue []int64) (string, error) {
	if queue == nil {
		queue = []int64{}
	}
	b, err := json.Marshal(queue)
	if err != nil {
		return "", fmt.Errorf("encode queue: %w", err)
	}
	return string(b), nil
}
