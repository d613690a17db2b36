package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"winetour-backend/internal/domain"
	"winetour-backend/internal/repository"
)

type timelineRepository struct {
	db *sql.DB
}

func NewTimelineRepository(db *sql.DB) repository.TimelineRepository {
	return &timelineRepository{db: db}
}

func (r *timelineRepository) Append(ctx context.Context, e *domain.TimelineEvent) error {
	metadata := []byte("{}")
	if len(e.Metadata) > 0 {
		var err error
		metadata, err = json.Marshal(e.Metadata)
		if err != nil {
			return err
		}
	}
	now := time.Now()
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO timeline_events (booking_id, event_type, description, metadata, created_at)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		e.BookingID, e.EventType, e.Description, metadata, now).Scan(&e.ID)
	if err != nil {
		return err
	}
	e.CreatedAt = now
	return nil
}

func (r *timelineRepository) ListByBooking(ctx context.Context, bookingID int32) ([]domain.TimelineEvent, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, booking_id, event_type, description, metadata, created_at
		 FROM timeline_events WHERE booking_id = $1 ORDER BY created_at, id`, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.TimelineEvent
	for rows.Next() {
		var e domain.TimelineEvent
		var metadata []byte
		if err := rows.Scan(&e.ID, &e.BookingID, &e.EventType, &e.Description, &metadata, &e.CreatedAt); err != nil {
			return nil, err
		}
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &e.Metadata); err != nil {
				return nil, err
			}
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
