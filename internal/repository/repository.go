package repository

import (
	"context"
	"winetour-backend/internal/domain"
)

type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int32) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int32, status domain.BookingStatus) error
	SetAssignment(ctx context.Context, id int32, driverID, vehicleID int32, status domain.BookingStatus) error
	SetPaymentFlags(ctx context.Context, id int32, depositPaid, finalPaid bool) error
	// FindConflicting returns non-cancelled, non-completed bookings for the
	// resource and date whose [start,end) interval overlaps the given one,
	// excluding excludeID when non-nil.
	FindConflicting(ctx context.Context, resourceType domain.ResourceType, resourceID int32, date, start, end string, excludeID *int32) ([]domain.Booking, error)
	ListByDate(ctx context.Context, date string) ([]domain.Booking, error)
}

type HoldRepository interface {
	// CreateActive performs the availability check and the insert as one
	// serialized unit per (resource, date): it takes a transaction-scoped
	// advisory lock, re-checks bookings and active holds under that lock and
	// inserts the hold, returning *domain.ConflictError on overlap.
	CreateActive(ctx context.Context, h *domain.HoldBlock) error
	GetByID(ctx context.Context, id int32) (*domain.HoldBlock, error)
	// Convert marks an ACTIVE hold CONVERTED and stamps the booking id.
	// Returns *domain.ConflictError if the hold is not active.
	Convert(ctx context.Context, holdID, bookingID int32) error
	// Release marks an ACTIVE hold RELEASED. Releasing a hold that already
	// left ACTIVE is a no-op.
	Release(ctx context.Context, holdID int32) error
	FindActiveOverlapping(ctx context.Context, resourceID int32, date, start, end string) ([]domain.HoldBlock, error)
}

type VehicleRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.Vehicle, error)
}

type DriverRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.Driver, error)
}

type CustomerRepository interface {
	Create(ctx context.Context, c *domain.Customer) error
	GetByID(ctx context.Context, id int32) (*domain.Customer, error)
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
}

type PaymentRepository interface {
	GetGuest(ctx context.Context, id int32) (*domain.ProposalGuest, error)
	ListGuestsByProposal(ctx context.Context, proposalID int32) ([]domain.ProposalGuest, error)
	GetProposal(ctx context.Context, id int32) (*domain.TripProposal, error)
	SetProposalStatus(ctx context.Context, id int32, status domain.ProposalStatus) error
	// RecordPayment appends a ledger row and updates the guest's paid total
	// and status in one transaction. If the payment intent id already exists
	// it changes nothing and reports alreadyProcessed=true.
	RecordPayment(ctx context.Context, guestID, amountCents int32, paymentIntentID string) (guest *domain.ProposalGuest, alreadyProcessed bool, err error)
}

type TimelineRepository interface {
	Append(ctx context.Context, e *domain.TimelineEvent) error
	ListByBooking(ctx context.Context, bookingID int32) ([]domain.TimelineEvent, error)
}

type ComplianceRepository interface {
	ListDriverCredentials(ctx context.Context, driverID int32) ([]domain.DriverCredential, error)
	ListVehicleDocuments(ctx context.Context, vehicleID int32) ([]domain.VehicleDocument, error)
	// DriverServiceMinutes returns the driver's scheduled minutes on the
	// given date and in the ISO week containing it, counting bookings that
	// still occupy their resources.
	DriverServiceMinutes(ctx context.Context, driverID int32, date string) (dayMinutes, weekMinutes int32, err error)
	ListOpenSafetyFlags(ctx context.Context, driverID, vehicleID int32) ([]domain.SafetyFlag, error)
}
