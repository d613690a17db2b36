package domain

import "time"

type HoldStatus string

const (
	HoldStatusActive    HoldStatus = "ACTIVE"
	HoldStatusConverted HoldStatus = "CONVERTED"
	HoldStatusReleased  HoldStatus = "RELEASED"
)

// HoldBlock is a time-boxed reservation of a vehicle created during the
// multi-step booking flow, before the booking row exists. A hold leaves
// ACTIVE exactly once: it is either converted to a booking reference or
// released (explicitly, by rollback, or by the expiry sweep).
type HoldBlock struct {
	ID         int32      `json:"id"`
	Token      string     `json:"token"`
	ResourceID int32      `json:"resource_id"`
	Date       string     `json:"date"`       // YYYY-MM-DD
	StartTime  string     `json:"start_time"` // HH:MM
	EndTime    string     `json:"end_time"`
	Status     HoldStatus `json:"status"`
	BookingID  *int32     `json:"booking_id,omitempty"`
	Note       string     `json:"note"`
	CreatedAt  time.Time  `json:"created_at"`
	ExpiresAt  time.Time  `json:"expires_at"`
}
