package service_test

import (
	"context"

	"winetour-backend/internal/domain"
	"winetour-backend/internal/service"

	"github.com/stretchr/testify/mock"
)

// MockBookingRepo
type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
func (m *MockBookingRepo) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) UpdateStatus(ctx context.Context, id int32, status domain.BookingStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockBookingRepo) SetAssignment(ctx context.Context, id int32, driverID, vehicleID int32, status domain.BookingStatus) error {
	args := m.Called(ctx, id, driverID, vehicleID, status)
	return args.Error(0)
}
func (m *MockBookingRepo) SetPaymentFlags(ctx context.Context, id int32, depositPaid, finalPaid bool) error {
	args := m.Called(ctx, id, depositPaid, finalPaid)
	return args.Error(0)
}
func (m *MockBookingRepo) FindConflicting(ctx context.Context, resourceType domain.ResourceType, resourceID int32, date, start, end string, excludeID *int32) ([]domain.Booking, error) {
	args := m.Called(ctx, resourceType, resourceID, date, start, end, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) ListByDate(ctx context.Context, date string) ([]domain.Booking, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

// MockHoldRepo
type MockHoldRepo struct {
	mock.Mock
}

func (m *MockHoldRepo) CreateActive(ctx context.Context, h *domain.HoldBlock) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}
func (m *MockHoldRepo) GetByID(ctx context.Context, id int32) (*domain.HoldBlock, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HoldBlock), args.Error(1)
}
func (m *MockHoldRepo) Convert(ctx context.Context, holdID, bookingID int32) error {
	args := m.Called(ctx, holdID, bookingID)
	return args.Error(0)
}
func (m *MockHoldRepo) Release(ctx context.Context, holdID int32) error {
	args := m.Called(ctx, holdID)
	return args.Error(0)
}
func (m *MockHoldRepo) FindActiveOverlapping(ctx context.Context, resourceID int32, date, start, end string) ([]domain.HoldBlock, error) {
	args := m.Called(ctx, resourceID, date, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HoldBlock), args.Error(1)
}

// MockVehicleRepo
type MockVehicleRepo struct {
	mock.Mock
}

func (m *MockVehicleRepo) GetByID(ctx context.Context, id int32) (*domain.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}

// MockDriverRepo
type MockDriverRepo struct {
	mock.Mock
}

func (m *MockDriverRepo) GetByID(ctx context.Context, id int32) (*domain.Driver, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Driver), args.Error(1)
}

// MockCustomerRepo
type MockCustomerRepo struct {
	mock.Mock
}

func (m *MockCustomerRepo) Create(ctx context.Context, c *domain.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockCustomerRepo) GetByID(ctx context.Context, id int32) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockCustomerRepo) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

// MockPaymentRepo
type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) GetGuest(ctx context.Context, id int32) (*domain.ProposalGuest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProposalGuest), args.Error(1)
}
func (m *MockPaymentRepo) ListGuestsByProposal(ctx context.Context, proposalID int32) ([]domain.ProposalGuest, error) {
	args := m.Called(ctx, proposalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProposalGuest), args.Error(1)
}
func (m *MockPaymentRepo) GetProposal(ctx context.Context, id int32) (*domain.TripProposal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TripProposal), args.Error(1)
}
func (m *MockPaymentRepo) SetProposalStatus(ctx context.Context, id int32, status domain.ProposalStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockPaymentRepo) RecordPayment(ctx context.Context, guestID, amountCents int32, paymentIntentID string) (*domain.ProposalGuest, bool, error) {
	args := m.Called(ctx, guestID, amountCents, paymentIntentID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.ProposalGuest), args.Bool(1), args.Error(2)
}

// MockTimelineRepo
type MockTimelineRepo struct {
	mock.Mock
}

func (m *MockTimelineRepo) Append(ctx context.Context, e *domain.TimelineEvent) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}
func (m *MockTimelineRepo) ListByBooking(ctx context.Context, bookingID int32) ([]domain.TimelineEvent, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TimelineEvent), args.Error(1)
}

// MockComplianceRepo
type MockComplianceRepo struct {
	mock.Mock
}

func (m *MockComplianceRepo) ListDriverCredentials(ctx context.Context, driverID int32) ([]domain.DriverCredential, error) {
	args := m.Called(ctx, driverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DriverCredential), args.Error(1)
}
func (m *MockComplianceRepo) ListVehicleDocuments(ctx context.Context, vehicleID int32) ([]domain.VehicleDocument, error) {
	args := m.Called(ctx, vehicleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VehicleDocument), args.Error(1)
}
func (m *MockComplianceRepo) DriverServiceMinutes(ctx context.Context, driverID int32, date string) (int32, int32, error) {
	args := m.Called(ctx, driverID, date)
	return args.Get(0).(int32), args.Get(1).(int32), args.Error(2)
}
func (m *MockComplianceRepo) ListOpenSafetyFlags(ctx context.Context, driverID, vehicleID int32) ([]domain.SafetyFlag, error) {
	args := m.Called(ctx, driverID, vehicleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SafetyFlag), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendBookingConfirmation(ctx context.Context, email, name, bookingNumber, tourDate string) error {
	args := m.Called(ctx, email, name, bookingNumber, tourDate)
	return args.Error(0)
}
func (m *MockEmailService) SendDriverAssignmentNotification(ctx context.Context, email, driverName, bookingNumber, tourDate, startTime string) error {
	args := m.Called(ctx, email, driverName, bookingNumber, tourDate, startTime)
	return args.Error(0)
}
func (m *MockEmailService) SendCustomerAssignmentNotification(ctx context.Context, email, customerName, driverName, vehicleName, bookingNumber string) error {
	args := m.Called(ctx, email, customerName, driverName, vehicleName, bookingNumber)
	return args.Error(0)
}
func (m *MockEmailService) SendPaymentReceipt(ctx context.Context, email, guestName string, amountCents int32, proposalTitle string) error {
	args := m.Called(ctx, email, guestName, amountCents, proposalTitle)
	return args.Error(0)
}
func (m *MockEmailService) SendPaymentReminder(ctx context.Context, email, guestName string, outstandingCents int32, tourDate string) error {
	args := m.Called(ctx, email, guestName, outstandingCents, tourDate)
	return args.Error(0)
}

// MockHoldService
type MockHoldService struct {
	mock.Mock
}

func (m *MockHoldService) CreateHoldBlock(ctx context.Context, resourceID int32, date, start, end, note string) (*domain.HoldBlock, error) {
	args := m.Called(ctx, resourceID, date, start, end, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HoldBlock), args.Error(1)
}
func (m *MockHoldService) ConvertHoldToBooking(ctx context.Context, holdID, bookingID int32) error {
	args := m.Called(ctx, holdID, bookingID)
	return args.Error(0)
}
func (m *MockHoldService) ReleaseHoldBlock(ctx context.Context, holdID int32) error {
	args := m.Called(ctx, holdID)
	return args.Error(0)
}
func (m *MockHoldService) ReserveVehicles(ctx context.Context, vehicleIDs []int32, date, start, end, note string) ([]domain.HoldBlock, error) {
	args := m.Called(ctx, vehicleIDs, date, start, end, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HoldBlock), args.Error(1)
}

// MockAvailabilityService
type MockAvailabilityService struct {
	mock.Mock
}

func (m *MockAvailabilityService) HasConflict(ctx context.Context, resourceType domain.ResourceType, resourceID int32, date, start, end string, excludeBookingID *int32) (bool, error) {
	args := m.Called(ctx, resourceType, resourceID, date, start, end, excludeBookingID)
	return args.Bool(0), args.Error(1)
}
func (m *MockAvailabilityService) FindConflicts(ctx context.Context, resourceType domain.ResourceType, resourceID int32, date, start, end string, excludeBookingID *int32) ([]domain.Conflict, error) {
	args := m.Called(ctx, resourceType, resourceID, date, start, end, excludeBookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Conflict), args.Error(1)
}

// MockComplianceService
type MockComplianceService struct {
	mock.Mock
}

func (m *MockComplianceService) Evaluate(ctx context.Context, driverID, vehicleID int32, tourDate string) (*domain.ComplianceResult, error) {
	args := m.Called(ctx, driverID, vehicleID, tourDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ComplianceResult), args.Error(1)
}

var _ service.EmailService = (*MockEmailService)(nil)
var _ service.HoldService = (*MockHoldService)(nil)
var _ service.AvailabilityService = (*MockAvailabilityService)(nil)
var _ service.ComplianceService = (*MockComplianceService)(nil)
