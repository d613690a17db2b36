package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"winetour-backend/internal/domain"
	"winetour-backend/internal/repository"
)

type holdRepository struct {
	db *sql.DB
}

func NewHoldRepository(db *sql.DB) repository.HoldRepository {
	return &holdRepository{db: db}
}

const holdColumns = `id, token, resource_id, to_char(date, 'YYYY-MM-DD'), start_time, end_time, status, booking_id, COALESCE(note, ''), created_at, expires_at`

// CreateActive serializes all check-and-write activity for one
// (resource, date) behind a transaction-scoped advisory lock. Two concurrent
// requests for overlapping intervals hit the same lock key; the second one
// observes the first one's insert and fails with a ConflictError.
func (r *holdRepository) CreateActive(ctx context.Context, h *domain.HoldBlock) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	lockKey := fmt.Sprintf("vehicle:%d:%s", h.ResourceID, h.Date)
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, lockKey); err != nil {
		return err
	}

	var bookingCount int32
	err = tx.QueryRowContext(ctx,
		`SELECT count(*) FROM bookings b
		 JOIN booking_vehicles bv ON bv.booking_id = b.id
		 WHERE bv.vehicle_id = $1 AND b.tour_date = $2
		   AND b.status NOT IN ('CANCELLED', 'COMPLETED')
		   AND b.start_time < $4 AND $3 < b.end_time`,
		h.ResourceID, h.Date, h.StartTime, h.EndTime).Scan(&bookingCount)
	if err != nil {
		return err
	}
	if bookingCount > 0 {
		return &domain.ConflictError{Reason: fmt.Sprintf("vehicle %d is already booked on %s between %s and %s", h.ResourceID, h.Date, h.StartTime, h.EndTime)}
	}

	var holdCount int32
	err = tx.QueryRowContext(ctx,
		`SELECT count(*) FROM hold_blocks
		 WHERE resource_id = $1 AND date = $2 AND status = 'ACTIVE' AND expires_at > $5
		   AND start_time < $4 AND $3 < end_time`,
		h.ResourceID, h.Date, h.StartTime, h.EndTime, time.Now()).Scan(&holdCount)
	if err != nil {
		return err
	}
	if holdCount > 0 {
		return &domain.ConflictError{Reason: fmt.Sprintf("vehicle %d is held by another reservation in progress on %s between %s and %s", h.ResourceID, h.Date, h.StartTime, h.EndTime)}
	}

	err = tx.QueryRowContext(ctx,
		`INSERT INTO hold_blocks (token, resource_id, date, start_time, end_time, status, note, created_at, expires_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`,
		h.Token, h.ResourceID, h.Date, h.StartTime, h.EndTime, h.Status, h.Note, h.CreatedAt, h.ExpiresAt,
	).Scan(&h.ID)
	if err != nil {
		return err
	}
	return tx.Commit()
}

func (r *holdRepository) GetByID(ctx context.Context, id int32) (*domain.HoldBlock, error) {
	h := &domain.HoldBlock{}
	err := r.db.QueryRowContext(ctx,
		`SELECT `+holdColumns+` FROM hold_blocks WHERE id = $1`, id).Scan(
		&h.ID, &h.Token, &h.ResourceID, &h.Date, &h.StartTime, &h.EndTime,
		&h.Status, &h.BookingID, &h.Note, &h.CreatedAt, &h.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("hold block", id)
	}
	if err != nil {
		return nil, err
	}
	return h, nil
}

// Convert is guarded by the status and the expiry in the WHERE clause so a
// hold can leave ACTIVE only once, and never after its expiry has passed.
// An expired hold no longer protects its slot: a competitor may have booked
// it, so converting would commit an overlap the sweep was meant to prevent.
func (r *holdRepository) Convert(ctx context.Context, holdID, bookingID int32) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE hold_blocks SET status = 'CONVERTED', booking_id = $1 WHERE id = $2 AND status = 'ACTIVE' AND expires_at > now()`,
		bookingID, holdID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		h, err := r.GetByID(ctx, holdID)
		if err != nil {
			return err
		}
		if h.Status == domain.HoldStatusActive {
			return &domain.ConflictError{Reason: fmt.Sprintf("hold block %d expired at %s", holdID, h.ExpiresAt.UTC().Format(time.RFC3339))}
		}
		return &domain.ConflictError{Reason: fmt.Sprintf("hold block %d is %s, not active", holdID, h.Status)}
	}
	return nil
}

// Release is idempotent: a hold that already left ACTIVE is left untouched.
func (r *holdRepository) Release(ctx context.Context, holdID int32) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE hold_blocks SET status = 'RELEASED' WHERE id = $1 AND status = 'ACTIVE'`, holdID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Distinguish a missing hold from an already-settled one.
		if _, err := r.GetByID(ctx, holdID); err != nil {
			return err
		}
	}
	return nil
}

func (r *holdRepository) FindActiveOverlapping(ctx context.Context, resourceID int32, date, start, end string) ([]domain.HoldBlock, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+holdColumns+` FROM hold_blocks
		 WHERE resource_id = $1 AND date = $2 AND status = 'ACTIVE' AND expires_at > $5
		   AND start_time < $4 AND $3 < end_time
		 ORDER BY start_time`,
		resourceID, date, start, end, time.Now())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holds []domain.HoldBlock
	for rows.Next() {
		var h domain.HoldBlock
		if err := rows.Scan(
			&h.ID, &h.Token, &h.ResourceID, &h.Date, &h.StartTime, &h.EndTime,
			&h.Status, &h.BookingID, &h.Note, &h.CreatedAt, &h.ExpiresAt); err != nil {
			return nil, err
		}
		holds = append(holds, h)
	}
	return holds, rows.Err()
}
