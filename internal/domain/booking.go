package domain

import "time"

type BookingStatus string

const (
	BookingStatusDraft      BookingStatus = "DRAFT"
	BookingStatusPending    BookingStatus = "PENDING"
	BookingStatusConfirmed  BookingStatus = "CONFIRMED"
	BookingStatusAssigned   BookingStatus = "ASSIGNED"
	BookingStatusInProgress BookingStatus = "IN_PROGRESS"
	BookingStatusCompleted  BookingStatus = "COMPLETED"
	BookingStatusCancelled  BookingStatus = "CANCELLED"
)

// StatusTransitions is the single source of truth for legal booking status
// changes. COMPLETED and CANCELLED are terminal.
var StatusTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusDraft:      {BookingStatusPending, BookingStatusCancelled},
	BookingStatusPending:    {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed:  {BookingStatusAssigned, BookingStatusInProgress, BookingStatusCompleted, BookingStatusCancelled},
	BookingStatusAssigned:   {BookingStatusInProgress, BookingStatusCompleted, BookingStatusCancelled},
	BookingStatusInProgress: {BookingStatusCompleted, BookingStatusCancelled},
	BookingStatusCompleted:  {},
	BookingStatusCancelled:  {},
}

// AllowedNext returns the set of statuses a booking in the given status may
// move to. Unknown statuses have no transitions.
func AllowedNext(status BookingStatus) []BookingStatus {
	return StatusTransitions[status]
}

// CanTransition reports whether status -> next is in the transition table.
func CanTransition(status, next BookingStatus) bool {
	for _, s := range StatusTransitions[status] {
		if s == next {
			return true
		}
	}
	return false
}

// IsValidStatus reports whether s is one of the closed set of statuses.
func IsValidStatus(s BookingStatus) bool {
	_, ok := StatusTransitions[s]
	return ok
}

type Booking struct {
	ID                int32         `json:"id"`
	BookingNumber     string        `json:"booking_number"`
	CustomerID        int32         `json:"customer_id"`
	Status            BookingStatus `json:"status"`
	TourDate          string        `json:"tour_date"`  // YYYY-MM-DD
	StartTime         string        `json:"start_time"` // HH:MM, half-open interval [start, end)
	EndTime           string        `json:"end_time"`
	DriverID          *int32        `json:"driver_id,omitempty"`
	VehicleIDs        []int32       `json:"vehicle_ids"`
	TotalPriceCents   int32         `json:"total_price_cents"`
	DepositCents      int32         `json:"deposit_cents"`
	DepositPaid       bool          `json:"deposit_paid"`
	FinalPaymentCents int32         `json:"final_payment_cents"`
	FinalPaymentPaid  bool          `json:"final_payment_paid"`
	Notes             string        `json:"notes"`
	CreatedOn         time.Time     `json:"created_on"`
	UpdatedOn         time.Time     `json:"updated_on"`
}

// ActiveForAvailability reports whether a booking in this status still
// occupies its resources. Cancelled and completed bookings free their slots.
func (s BookingStatus) ActiveForAvailability() bool {
	return s != BookingStatusCancelled && s != BookingStatusCompleted
}
