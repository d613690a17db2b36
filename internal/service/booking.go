package service

import (
	"context"
	"fmt"
	"strings"

	"winetour-backend/internal/domain"
	"winetour-backend/internal/logger"
	"winetour-backend/internal/repository"

	"github.com/google/uuid"
)

type bookingService struct {
	bookingRepo     repository.BookingRepository
	customerRepo    repository.CustomerRepository
	driverRepo      repository.DriverRepository
	vehicleRepo     repository.VehicleRepository
	timelineRepo    repository.TimelineRepository
	holdSvc         HoldService
	availabilitySvc AvailabilityService
	complianceSvc   ComplianceService
	emailSvc        EmailService
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	customerRepo repository.CustomerRepository,
	driverRepo repository.DriverRepository,
	vehicleRepo repository.VehicleRepository,
	timelineRepo repository.TimelineRepository,
	holdSvc HoldService,
	availabilitySvc AvailabilityService,
	complianceSvc ComplianceService,
	emailSvc EmailService,
) BookingService {
	return &bookingService{
		bookingRepo:     bookingRepo,
		customerRepo:    customerRepo,
		driverRepo:      driverRepo,
		vehicleRepo:     vehicleRepo,
		timelineRepo:    timelineRepo,
		holdSvc:         holdSvc,
		availabilitySvc: availabilitySvc,
		complianceSvc:   complianceSvc,
		emailSvc:        emailSvc,
	}
}

// CreateBooking runs the multi-step creation flow: find-or-create the
// customer, reserve every requested vehicle via hold blocks, persist the
// booking, convert the holds to a confirmed link. The steps after the first
// hold are covered by compensations; on any failure the holds are released
// before the error propagates.
func (s *bookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	logger.EnterMethod("bookingService.CreateBooking", "customer", input.CustomerEmail, "tourDate", input.TourDate, "vehicles", len(input.VehicleIDs))

	if err := s.validateCreateInput(input); err != nil {
		return nil, err
	}

	customer, err := s.customerRepo.GetByEmail(ctx, input.CustomerEmail)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		customer = &domain.Customer{
			Name:  input.CustomerName,
			Email: input.CustomerEmail,
			Phone: input.CustomerPhone,
		}
		if err := s.customerRepo.Create(ctx, customer); err != nil {
			return nil, err
		}
	}

	if input.DriverID != nil {
		driver, err := s.driverRepo.GetByID(ctx, *input.DriverID)
		if err != nil {
			return nil, err
		}
		if !driver.Active {
			return nil, domain.NewValidationError("driver_id", "driver is not active")
		}
		busy, err := s.availabilitySvc.HasConflict(ctx, domain.ResourceTypeDriver, driver.ID, input.TourDate, input.StartTime, input.EndTime, nil)
		if err != nil {
			return nil, err
		}
		if busy {
			return nil, domain.NewConflictError(fmt.Sprintf("driver %d is not available on %s between %s and %s", driver.ID, input.TourDate, input.StartTime, input.EndTime))
		}
	}

	holds, err := s.holdSvc.ReserveVehicles(ctx, input.VehicleIDs, input.TourDate, input.StartTime, input.EndTime, "booking creation for "+input.CustomerEmail)
	if err != nil {
		logger.ExitMethodWithError("bookingService.CreateBooking", err, "customer", input.CustomerEmail)
		return nil, err
	}

	var sg saga
	for _, h := range holds {
		holdID := h.ID
		sg.push("release hold", func(ctx context.Context) error {
			return s.holdSvc.ReleaseHoldBlock(ctx, holdID)
		})
	}

	booking := &domain.Booking{
		BookingNumber:     newBookingNumber(),
		CustomerID:        customer.ID,
		Status:            domain.BookingStatusPending,
		TourDate:          input.TourDate,
		StartTime:         input.StartTime,
		EndTime:           input.EndTime,
		DriverID:          input.DriverID,
		VehicleIDs:        input.VehicleIDs,
		TotalPriceCents:   input.TotalPriceCents,
		DepositCents:      input.DepositCents,
		FinalPaymentCents: input.TotalPriceCents - input.DepositCents,
		Notes:             input.Notes,
	}
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		sg.rollback(ctx)
		logger.ExitMethodWithError("bookingService.CreateBooking", err, "customer", input.CustomerEmail)
		return nil, err
	}

	for _, h := range holds {
		if err := s.holdSvc.ConvertHoldToBooking(ctx, h.ID, booking.ID); err != nil {
			sg.rollback(ctx)
			logger.ExitMethodWithError("bookingService.CreateBooking", err, "holdID", h.ID)
			return nil, err
		}
	}

	appendTimeline(ctx, s.timelineRepo, &domain.TimelineEvent{
		BookingID:   booking.ID,
		EventType:   domain.EventBookingCreated,
		Description: fmt.Sprintf("Booking %s created for %s", booking.BookingNumber, customer.Name),
		Metadata: map[string]string{
			"tour_date":   booking.TourDate,
			"vehicle_ids": joinIDs(booking.VehicleIDs),
		},
	})

	// Notification failures never fail the booking.
	if err := s.emailSvc.SendBookingConfirmation(ctx, customer.Email, customer.Name, booking.BookingNumber, booking.TourDate); err != nil {
		logger.Error("Failed to send booking confirmation", "bookingID", booking.ID, "error", err)
	}

	logger.ExitMethod("bookingService.CreateBooking", "bookingID", booking.ID, "bookingNumber", booking.BookingNumber)
	return booking, nil
}

func (s *bookingService) validateCreateInput(input CreateBookingInput) error {
	if strings.TrimSpace(input.CustomerEmail) == "" {
		return domain.NewValidationError("customer_email", "is required")
	}
	if strings.TrimSpace(input.CustomerName) == "" {
		return domain.NewValidationError("customer_name", "is required")
	}
	if err := validateDate(input.TourDate); err != nil {
		return err
	}
	if err := validateTimeRange(input.StartTime, input.EndTime); err != nil {
		return err
	}
	if len(input.VehicleIDs) == 0 {
		return domain.NewValidationError("vehicle_ids", "at least one vehicle is required")
	}
	if input.TotalPriceCents < 0 || input.DepositCents < 0 || input.DepositCents > input.TotalPriceCents {
		return domain.NewValidationError("pricing", "deposit must be between 0 and the total price")
	}
	return nil
}

func (s *bookingService) GetBooking(ctx context.Context, id int32) (*domain.Booking, error) {
	return s.bookingRepo.GetByID(ctx, id)
}

// RequestStatusChange enforces the transition table. Rejections carry the
// allowed next statuses so callers can surface them.
func (s *bookingService) RequestStatusChange(ctx context.Context, bookingID int32, newStatus domain.BookingStatus, reason string) (*domain.Booking, error) {
	logger.EnterMethod("bookingService.RequestStatusChange", "bookingID", bookingID, "newStatus", newStatus)

	if !domain.IsValidStatus(newStatus) {
		return nil, domain.NewValidationError("status", fmt.Sprintf("unknown status %q", newStatus))
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		logger.ExitMethodWithError("bookingService.RequestStatusChange", err, "bookingID", bookingID)
		return nil, err
	}

	if !domain.CanTransition(booking.Status, newStatus) {
		err := &domain.ConflictError{
			Reason:          fmt.Sprintf("cannot change booking %d from %s to %s", bookingID, booking.Status, newStatus),
			AllowedStatuses: domain.AllowedNext(booking.Status),
		}
		logger.ExitMethodWithError("bookingService.RequestStatusChange", err, "bookingID", bookingID)
		return nil, err
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, newStatus); err != nil {
		return nil, err
	}
	booking.Status = newStatus

	description := fmt.Sprintf("Status changed to %s", newStatus)
	if reason != "" {
		description += ": " + reason
	}
	appendTimeline(ctx, s.timelineRepo, &domain.TimelineEvent{
		BookingID:   bookingID,
		EventType:   domain.StatusEventType(newStatus),
		Description: description,
	})

	logger.ExitMethod("bookingService.RequestStatusChange", "bookingID", bookingID, "status", newStatus)
	return booking, nil
}

// Assign pairs a driver and vehicle with a booking: existence and active
// checks, availability for both resources excluding the booking itself, then
// the compliance gate. An override clears blocking violations only when every
// one of them is overridable, and the override reason is recorded on the
// timeline.
func (s *bookingService) Assign(ctx context.Context, bookingID, driverID, vehicleID int32, opts AssignOptions) (*domain.Booking, error) {
	logger.EnterMethod("bookingService.Assign", "bookingID", bookingID, "driverID", driverID, "vehicleID", vehicleID, "override", opts.Override)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status == domain.BookingStatusCompleted || booking.Status == domain.BookingStatusCancelled {
		return nil, &domain.ConflictError{
			Reason:          fmt.Sprintf("cannot assign resources to a %s booking", strings.ToLower(string(booking.Status))),
			AllowedStatuses: domain.AllowedNext(booking.Status),
		}
	}

	driver, err := s.driverRepo.GetByID(ctx, driverID)
	if err != nil {
		return nil, err
	}
	if !driver.Active {
		return nil, domain.NewValidationError("driver_id", "driver is not active")
	}
	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if !vehicle.Active {
		return nil, domain.NewValidationError("vehicle_id", "vehicle is not active")
	}

	for _, check := range []struct {
		resourceType domain.ResourceType
		resourceID   int32
		label        string
	}{
		{domain.ResourceTypeDriver, driverID, "driver " + driver.Name},
		{domain.ResourceTypeVehicle, vehicleID, "vehicle " + vehicle.Name},
	} {
		busy, err := s.availabilitySvc.HasConflict(ctx, check.resourceType, check.resourceID, booking.TourDate, booking.StartTime, booking.EndTime, &bookingID)
		if err != nil {
			return nil, err
		}
		if busy {
			err := domain.NewConflictError(fmt.Sprintf("%s is not available on %s between %s and %s", check.label, booking.TourDate, booking.StartTime, booking.EndTime))
			logger.ExitMethodWithError("bookingService.Assign", err, "bookingID", bookingID)
			return nil, err
		}
	}

	result, err := s.complianceSvc.Evaluate(ctx, driverID, vehicleID, booking.TourDate)
	if err != nil {
		return nil, err
	}
	if !result.Allowed() {
		if !opts.Override || strings.TrimSpace(opts.OverrideReason) == "" || !result.OverridableWith(true) {
			err := &domain.ComplianceBlockedError{Violations: result.Blocking()}
			logger.ExitMethodWithError("bookingService.Assign", err, "bookingID", bookingID, "violations", len(result.Blocking()))
			return nil, err
		}
	}

	// pending bookings advance to ASSIGNED; later statuses keep their status
	// and only swap resources.
	newStatus := booking.Status
	if booking.Status == domain.BookingStatusPending {
		newStatus = domain.BookingStatusAssigned
	}
	if err := s.bookingRepo.SetAssignment(ctx, bookingID, driverID, vehicleID, newStatus); err != nil {
		return nil, err
	}
	booking.DriverID = &driverID
	booking.Status = newStatus
	booking.VehicleIDs = appendVehicleID(booking.VehicleIDs, vehicleID)

	metadata := map[string]string{
		"driver_id":  fmt.Sprintf("%d", driverID),
		"vehicle_id": fmt.Sprintf("%d", vehicleID),
	}
	if opts.Override && !result.Allowed() {
		metadata["override_reason"] = opts.OverrideReason
	}
	appendTimeline(ctx, s.timelineRepo, &domain.TimelineEvent{
		BookingID:   bookingID,
		EventType:   domain.EventDriverAssigned,
		Description: fmt.Sprintf("Assigned driver %s and vehicle %s", driver.Name, vehicle.Name),
		Metadata:    metadata,
	})
	if opts.Override && !result.Allowed() {
		appendTimeline(ctx, s.timelineRepo, &domain.TimelineEvent{
			BookingID:   bookingID,
			EventType:   domain.EventOverrideRecorded,
			Description: fmt.Sprintf("Compliance override applied: %s", opts.OverrideReason),
		})
	}

	if opts.NotifyDriver {
		if err := s.emailSvc.SendDriverAssignmentNotification(ctx, driver.Email, driver.Name, booking.BookingNumber, booking.TourDate, booking.StartTime); err != nil {
			logger.Error("Failed to notify driver of assignment", "bookingID", bookingID, "error", err)
		}
	}
	if opts.NotifyCustomer {
		customer, err := s.customerRepo.GetByID(ctx, booking.CustomerID)
		if err != nil {
			logger.Error("Failed to load customer for assignment notification", "bookingID", bookingID, "error", err)
		} else if err := s.emailSvc.SendCustomerAssignmentNotification(ctx, customer.Email, customer.Name, driver.Name, vehicle.Name, booking.BookingNumber); err != nil {
			logger.Error("Failed to notify customer of assignment", "bookingID", bookingID, "error", err)
		}
	}

	logger.ExitMethod("bookingService.Assign", "bookingID", bookingID, "status", booking.Status)
	return booking, nil
}

func (s *bookingService) GetTimeline(ctx context.Context, bookingID int32) ([]domain.TimelineEvent, error) {
	if _, err := s.bookingRepo.GetByID(ctx, bookingID); err != nil {
		return nil, err
	}
	return s.timelineRepo.ListByBooking(ctx, bookingID)
}

func newBookingNumber() string {
	return "WT-" + strings.ToUpper(uuid.NewString()[:8])
}

// appendTimeline records an audit event after a mutation has already been
// persisted. A failed append cannot unwind the mutation, but the audit trail
// is a deliverable, so the failure is logged at error level.
func appendTimeline(ctx context.Context, repo repository.TimelineRepository, ev *domain.TimelineEvent) {
	if err := repo.Append(ctx, ev); err != nil {
		logger.Error("Failed to append timeline event", "bookingID", ev.BookingID, "eventType", ev.EventType, "error", err)
	}
}

func joinIDs(ids []int32) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return strings.Join(parts, ",")
}

func appendVehicleID(ids []int32, id int32) []int32 {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}
