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

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

const bookingColumns = `id, booking_number, customer_id, status, to_char(tour_date, 'YYYY-MM-DD'), start_time, end_time, driver_id, total_price_cents, deposit_cents, deposit_paid, final_payment_cents, final_payment_paid, COALESCE(notes, ''), created_on, updated_on`

// Create inserts the booking and its vehicle links in one transaction. The
// vehicles are already serialized by the caller's hold blocks; an optional
// driver is serialized here, behind the same advisory-lock discipline
// CreateActive uses, so two concurrent creations cannot double-book a driver.
func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if b.DriverID != nil {
		if err := lockAndCheckDriver(ctx, tx, *b.DriverID, b.TourDate, b.StartTime, b.EndTime, nil); err != nil {
			return err
		}
	}

	query := `INSERT INTO bookings (booking_number, customer_id, status, tour_date, start_time, end_time, driver_id, total_price_cents, deposit_cents, deposit_paid, final_payment_cents, final_payment_paid, notes, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15) RETURNING id`
	now := time.Now()
	err = tx.QueryRowContext(ctx, query,
		b.BookingNumber, b.CustomerID, b.Status, b.TourDate, b.StartTime, b.EndTime,
		b.DriverID, b.TotalPriceCents, b.DepositCents, b.DepositPaid,
		b.FinalPaymentCents, b.FinalPaymentPaid, b.Notes, now, now,
	).Scan(&b.ID)
	if err != nil {
		return err
	}

	for _, vid := range b.VehicleIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO booking_vehicles (booking_id, vehicle_id) VALUES ($1, $2)`,
			b.ID, vid); err != nil {
			return err
		}
	}
	b.CreatedOn = now
	b.UpdatedOn = now
	return tx.Commit()
}

func (r *bookingRepository) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	b := &domain.Booking{}
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&b.ID, &b.BookingNumber, &b.CustomerID, &b.Status, &b.TourDate, &b.StartTime, &b.EndTime,
		&b.DriverID, &b.TotalPriceCents, &b.DepositCents, &b.DepositPaid,
		&b.FinalPaymentCents, &b.FinalPaymentPaid, &b.Notes, &b.CreatedOn, &b.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("booking", id)
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT vehicle_id FROM booking_vehicles WHERE booking_id = $1 ORDER BY vehicle_id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var vid int32
		if err := rows.Scan(&vid); err != nil {
			return nil, err
		}
		b.VehicleIDs = append(b.VehicleIDs, vid)
	}
	return b, rows.Err()
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id int32, status domain.BookingStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET status = $1, updated_on = $2 WHERE id = $3`,
		status, time.Now(), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewNotFoundError("booking", id)
	}
	return nil
}

// SetAssignment serializes the availability re-check and the write as one
// unit: the booking row is locked, then per-(resource, date) advisory locks
// are taken for the driver and the vehicle, then the overlap checks run
// inside the same transaction as the UPDATE. The loser of a concurrent
// assignment race observes the winner's committed row and gets a
// ConflictError.
func (r *bookingRepository) SetAssignment(ctx context.Context, id int32, driverID, vehicleID int32, status domain.BookingStatus) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var tourDate, start, end string
	err = tx.QueryRowContext(ctx,
		`SELECT to_char(tour_date, 'YYYY-MM-DD'), start_time, end_time FROM bookings WHERE id = $1 FOR UPDATE`,
		id).Scan(&tourDate, &start, &end)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewNotFoundError("booking", id)
	}
	if err != nil {
		return err
	}

	excludeID := id
	if err := lockAndCheckDriver(ctx, tx, driverID, tourDate, start, end, &excludeID); err != nil {
		return err
	}
	if err := lockAndCheckVehicle(ctx, tx, vehicleID, tourDate, start, end, &excludeID); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE bookings SET driver_id = $1, status = $2, updated_on = $3 WHERE id = $4`,
		driverID, status, time.Now(), id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO booking_vehicles (booking_id, vehicle_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		id, vehicleID); err != nil {
		return err
	}
	return tx.Commit()
}

// lockAndCheckDriver takes the (driver, date) advisory lock and verifies no
// overlapping non-cancelled, non-completed booking uses the driver.
func lockAndCheckDriver(ctx context.Context, tx *sql.Tx, driverID int32, date, start, end string, excludeID *int32) error {
	lockKey := fmt.Sprintf("driver:%d:%s", driverID, date)
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, lockKey); err != nil {
		return err
	}

	query := `SELECT count(*) FROM bookings
	          WHERE driver_id = $1 AND tour_date = $2
	            AND status NOT IN ('CANCELLED', 'COMPLETED')
	            AND start_time < $4 AND $3 < end_time`
	args := []interface{}{driverID, date, start, end}
	if excludeID != nil {
		query += ` AND id <> $5`
		args = append(args, *excludeID)
	}

	var count int32
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return &domain.ConflictError{Reason: fmt.Sprintf("driver %d is already booked on %s between %s and %s", driverID, date, start, end)}
	}
	return nil
}

// lockAndCheckVehicle takes the (vehicle, date) advisory lock and verifies
// the vehicle is free of overlapping bookings and active holds. The lock key
// matches the one hold creation uses, so assignments and hold check-and-insert
// serialize against each other.
func lockAndCheckVehicle(ctx context.Context, tx *sql.Tx, vehicleID int32, date, start, end string, excludeID *int32) error {
	lockKey := fmt.Sprintf("vehicle:%d:%s", vehicleID, date)
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, lockKey); err != nil {
		return err
	}

	query := `SELECT count(*) FROM bookings b
	          JOIN booking_vehicles bv ON bv.booking_id = b.id
	          WHERE bv.vehicle_id = $1 AND b.tour_date = $2
	            AND b.status NOT IN ('CANCELLED', 'COMPLETED')
	            AND b.start_time < $4 AND $3 < b.end_time`
	args := []interface{}{vehicleID, date, start, end}
	if excludeID != nil {
		query += ` AND b.id <> $5`
		args = append(args, *excludeID)
	}

	var bookingCount int32
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&bookingCount); err != nil {
		return err
	}
	if bookingCount > 0 {
		return &domain.ConflictError{Reason: fmt.Sprintf("vehicle %d is already booked on %s between %s and %s", vehicleID, date, start, end)}
	}

	var holdCount int32
	err := tx.QueryRowContext(ctx,
		`SELECT count(*) FROM hold_blocks
		 WHERE resource_id = $1 AND date = $2 AND status = 'ACTIVE' AND expires_at > $5
		   AND start_time < $4 AND $3 < end_time`,
		vehicleID, date, start, end, time.Now()).Scan(&holdCount)
	if err != nil {
		return err
	}
	if holdCount > 0 {
		return &domain.ConflictError{Reason: fmt.Sprintf("vehicle %d is held by another reservation in progress on %s between %s and %s", vehicleID, date, start, end)}
	}
	return nil
}

func (r *bookingRepository) SetPaymentFlags(ctx context.Context, id int32, depositPaid, finalPaid bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET deposit_paid = $1, final_payment_paid = $2, updated_on = $3 WHERE id = $4`,
		depositPaid, finalPaid, time.Now(), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewNotFoundError("booking", id)
	}
	return nil
}

// FindConflicting applies the half-open overlap test start_time < $end AND
// $start < end_time in SQL, over statuses that still occupy resources.
func (r *bookingRepository) FindConflicting(ctx context.Context, resourceType domain.ResourceType, resourceID int32, date, start, end string, excludeID *int32) ([]domain.Booking, error) {
	var query string
	args := []interface{}{resourceID, date, start, end}
	switch resourceType {
	case domain.ResourceTypeDriver:
		query = `SELECT ` + bookingColumns + ` FROM bookings
		         WHERE driver_id = $1 AND tour_date = $2
		           AND status NOT IN ('CANCELLED', 'COMPLETED')
		           AND start_time < $4 AND $3 < end_time`
	default:
		query = `SELECT ` + bookingColumns + ` FROM bookings
		         WHERE tour_date = $2
		           AND status NOT IN ('CANCELLED', 'COMPLETED')
		           AND start_time < $4 AND $3 < end_time
		           AND id IN (SELECT booking_id FROM booking_vehicles WHERE vehicle_id = $1)`
	}
	if excludeID != nil {
		query += ` AND id <> $5`
		args = append(args, *excludeID)
	}
	query += ` ORDER BY start_time`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

func (r *bookingRepository) ListByDate(ctx context.Context, date string) ([]domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE tour_date = $1 ORDER BY start_time`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

func scanBookings(rows *sql.Rows) ([]domain.Booking, error) {
	var bookings []domain.Booking
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(
			&b.ID, &b.BookingNumber, &b.CustomerID, &b.Status, &b.TourDate, &b.StartTime, &b.EndTime,
			&b.DriverID, &b.TotalPriceCents, &b.DepositCents, &b.DepositPaid,
			&b.FinalPaymentCents, &b.FinalPaymentPaid, &b.Notes, &b.CreatedOn, &b.UpdatedOn); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}
