package domain

import "time"

type GuestPaymentStatus string

const (
	GuestPaymentUnpaid  GuestPaymentStatus = "UNPAID"
	GuestPaymentPartial GuestPaymentStatus = "PARTIAL"
	GuestPaymentPaid    GuestPaymentStatus = "PAID"
)

// DeriveGuestPaymentStatus maps an amount-paid total onto the status enum.
func DeriveGuestPaymentStatus(amountPaidCents, amountOwedCents int32) GuestPaymentStatus {
	switch {
	case amountPaidCents <= 0:
		return GuestPaymentUnpaid
	case amountPaidCents < amountOwedCents:
		return GuestPaymentPartial
	default:
		return GuestPaymentPaid
	}
}

type ProposalStatus string

const (
	ProposalStatusCollecting ProposalStatus = "COLLECTING"
	ProposalStatusSettled    ProposalStatus = "SETTLED"
)

// TripProposal groups the guests splitting one trip's cost. When it is
// linked to a booking, full settlement stamps the booking's payment flags.
type TripProposal struct {
	ID         int32          `json:"id"`
	BookingID  *int32         `json:"booking_id,omitempty"`
	Title      string         `json:"title"`
	TourDate   string         `json:"tour_date"`
	TotalCents int32          `json:"total_cents"`
	Status     ProposalStatus `json:"status"`
	CreatedOn  time.Time      `json:"created_on"`
}

type ProposalGuest struct {
	ID              int32              `json:"id"`
	TripProposalID  int32              `json:"trip_proposal_id"`
	Name            string             `json:"name"`
	Email           string             `json:"email"`
	AmountOwedCents int32              `json:"amount_owed_cents"`
	AmountPaidCents int32              `json:"amount_paid_cents"`
	PaymentStatus   GuestPaymentStatus `json:"payment_status"`
}

// GuestPayment is one row of the append-only payment ledger. Rows are never
// updated; PaymentIntentID is unique and serves as the idempotency key for
// processor webhooks.
type GuestPayment struct {
	ID              int32     `json:"id"`
	GuestID         int32     `json:"guest_id"`
	AmountCents     int32     `json:"amount_cents"`
	PaymentIntentID string    `json:"payment_intent_id"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}
