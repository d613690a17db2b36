package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"winetour-backend/internal/domain"
	"winetour-backend/internal/repository"
)

type paymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

const guestColumns = `id, trip_proposal_id, name, email, amount_owed_cents, amount_paid_cents, payment_status`

func (r *paymentRepository) GetGuest(ctx context.Context, id int32) (*domain.ProposalGuest, error) {
	g := &domain.ProposalGuest{}
	err := r.db.QueryRowContext(ctx,
		`SELECT `+guestColumns+` FROM proposal_guests WHERE id = $1`, id).Scan(
		&g.ID, &g.TripProposalID, &g.Name, &g.Email, &g.AmountOwedCents, &g.AmountPaidCents, &g.PaymentStatus)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("guest", id)
	}
	if err != nil {
		return nil, err
	}
	return g, nil
}

func (r *paymentRepository) ListGuestsByProposal(ctx context.Context, proposalID int32) ([]domain.ProposalGuest, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+guestColumns+` FROM proposal_guests WHERE trip_proposal_id = $1 ORDER BY id`, proposalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var guests []domain.ProposalGuest
	for rows.Next() {
		var g domain.ProposalGuest
		if err := rows.Scan(&g.ID, &g.TripProposalID, &g.Name, &g.Email, &g.AmountOwedCents, &g.AmountPaidCents, &g.PaymentStatus); err != nil {
			return nil, err
		}
		guests = append(guests, g)
	}
	return guests, rows.Err()
}

func (r *paymentRepository) GetProposal(ctx context.Context, id int32) (*domain.TripProposal, error) {
	p := &domain.TripProposal{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, booking_id, title, to_char(tour_date, 'YYYY-MM-DD'), total_cents, status, created_on FROM trip_proposals WHERE id = $1`, id).Scan(
		&p.ID, &p.BookingID, &p.Title, &p.TourDate, &p.TotalCents, &p.Status, &p.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("trip proposal", id)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *paymentRepository) SetProposalStatus(ctx context.Context, id int32, status domain.ProposalStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE trip_proposals SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewNotFoundError("trip proposal", id)
	}
	return nil
}

// RecordPayment makes the ledger insert and the guest recompute one atomic
// unit. The unique payment_intent_id column absorbs duplicate webhook
// deliveries: ON CONFLICT DO NOTHING turns a replay into zero inserted rows,
// which is reported as alreadyProcessed without touching the guest.
func (r *paymentRepository) RecordPayment(ctx context.Context, guestID, amountCents int32, paymentIntentID string) (*domain.ProposalGuest, bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, false, err
	}
	defer tx.Rollback()

	g := &domain.ProposalGuest{}
	err = tx.QueryRowContext(ctx,
		`SELECT `+guestColumns+` FROM proposal_guests WHERE id = $1 FOR UPDATE`, guestID).Scan(
		&g.ID, &g.TripProposalID, &g.Name, &g.Email, &g.AmountOwedCents, &g.AmountPaidCents, &g.PaymentStatus)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, domain.NewNotFoundError("guest", guestID)
	}
	if err != nil {
		return nil, false, err
	}

	var paymentID int32
	err = tx.QueryRowContext(ctx,
		`INSERT INTO guest_payments (guest_id, amount_cents, payment_intent_id, status, created_at)
		 VALUES ($1, $2, $3, 'SUCCEEDED', $4)
		 ON CONFLICT (payment_intent_id) DO NOTHING
		 RETURNING id`,
		guestID, amountCents, paymentIntentID, time.Now()).Scan(&paymentID)
	if errors.Is(err, sql.ErrNoRows) {
		// Replay: the intent was already settled. Return the guest unchanged.
		if err := tx.Commit(); err != nil {
			return nil, false, err
		}
		return g, true, nil
	}
	if err != nil {
		return nil, false, err
	}

	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount_cents), 0) FROM guest_payments WHERE guest_id = $1`,
		guestID).Scan(&g.AmountPaidCents); err != nil {
		return nil, false, err
	}
	g.PaymentStatus = domain.DeriveGuestPaymentStatus(g.AmountPaidCents, g.AmountOwedCents)

	if _, err := tx.ExecContext(ctx,
		`UPDATE proposal_guests SET amount_paid_cents = $1, payment_status = $2 WHERE id = $3`,
		g.AmountPaidCents, g.PaymentStatus, guestID); err != nil {
		return nil, false, err
	}

	if err := tx.Commit(); err != nil {
		return nil, false, err
	}
	return g, false, nil
}
