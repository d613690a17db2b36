package service

import (
	"context"

	"winetour-backend/internal/domain"
)

// AvailabilityService answers whether a vehicle or driver is free for a
// date/time range. Pure query logic; the write path re-validates under lock
// inside the hold repository.
type AvailabilityService interface {
	HasConflict(ctx context.Context, resourceType domain.ResourceType, resourceID int32, date, start, end string, excludeBookingID *int32) (bool, error)
	FindConflicts(ctx context.Context, resourceType domain.ResourceType, resourceID int32, date, start, end string, excludeBookingID *int32) ([]domain.Conflict, error)
}

// HoldService manages time-boxed vehicle reservations during booking
// creation, including the multi-vehicle reservation saga.
type HoldService interface {
	CreateHoldBlock(ctx context.Context, resourceID int32, date, start, end, note string) (*domain.HoldBlock, error)
	ConvertHoldToBooking(ctx context.Context, holdID, bookingID int32) error
	ReleaseHoldBlock(ctx context.Context, holdID int32) error
	// ReserveVehicles creates one hold per vehicle; on any failure every hold
	// already created for this attempt is released before the error returns.
	ReserveVehicles(ctx context.Context, vehicleIDs []int32, date, start, end, note string) ([]domain.HoldBlock, error)
}

type CreateBookingInput struct {
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	TourDate        string
	StartTime       string
	EndTime         string
	VehicleIDs      []int32
	DriverID        *int32
	TotalPriceCents int32
	DepositCents    int32
	Notes           string
}

type AssignOptions struct {
	Override       bool
	OverrideReason string
	NotifyDriver   bool
	NotifyCustomer bool
}

type BookingService interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	GetBooking(ctx context.Context, id int32) (*domain.Booking, error)
	RequestStatusChange(ctx context.Context, bookingID int32, newStatus domain.BookingStatus, reason string) (*domain.Booking, error)
	Assign(ctx context.Context, bookingID, driverID, vehicleID int32, opts AssignOptions) (*domain.Booking, error)
	GetTimeline(ctx context.Context, bookingID int32) ([]domain.TimelineEvent, error)
}

type ComplianceService interface {
	Evaluate(ctx context.Context, driverID, vehicleID int32, tourDate string) (*domain.ComplianceResult, error)
}

type PaymentService interface {
	// RecordGuestPayment settles one processor confirmation. Replays of the
	// same payment intent id report alreadyProcessed and change nothing.
	RecordGuestPayment(ctx context.Context, guestID, amountCents int32, paymentIntentID string) (guest *domain.ProposalGuest, alreadyProcessed bool, err error)
	ListGuests(ctx context.Context, proposalID int32) ([]domain.ProposalGuest, error)
}

type EmailService interface {
	SendBookingConfirmation(ctx context.Context, email, name, bookingNumber, tourDate string) error
	SendDriverAssignmentNotification(ctx context.Context, email, driverName, bookingNumber, tourDate, startTime string) error
	SendCustomerAssignmentNotification(ctx context.Context, email, customerName, driverName, vehicleName, bookingNumber string) error
	SendPaymentReceipt(ctx context.Context, email, guestName string, amountCents int32, proposalTitle string) error
	SendPaymentReminder(ctx context.Context, email, guestName string, outstandingCents int32, tourDate string) error
}
