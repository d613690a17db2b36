package domain

import "time"

// TimelineEvent is one row of the append-only audit trail for a booking or
// proposal. Events are only ever inserted.
type TimelineEvent struct {
	ID          int32             `json:"id"`
	BookingID   int32             `json:"booking_id"`
	EventType   string            `json:"event_type"`
	Description string            `json:"description"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

const (
	EventBookingCreated   = "booking_created"
	EventDriverAssigned   = "driver_assigned"
	EventPaymentRecorded  = "payment_recorded"
	EventProposalSettled  = "proposal_settled"
	EventHoldsConverted   = "holds_converted"
	EventOverrideRecorded = "compliance_override"
)

// StatusEventType names the timeline event emitted for a status change,
// e.g. "status_confirmed".
func StatusEventType(s BookingStatus) string {
	switch s {
	case BookingStatusPending:
		return "status_pending"
	case BookingStatusConfirmed:
		return "status_confirmed"
	case BookingStatusAssigned:
		return "status_assigned"
	case BookingStatusInProgress:
		return "status_in_progress"
	case BookingStatusCompleted:
		return "status_completed"
	case BookingStatusCancelled:
		return "status_cancelled"
	default:
		return "status_draft"
	}
}
