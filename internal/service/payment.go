package service

import (
	"context"
	"fmt"

	"winetour-backend/internal/domain"
	"winetour-backend/internal/logger"
	"winetour-backend/internal/repository"
)

type paymentService struct {
	paymentRepo  repository.PaymentRepository
	bookingRepo  repository.BookingRepository
	timelineRepo repository.TimelineRepository
	emailSvc     EmailService
}

func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	bookingRepo repository.BookingRepository,
	timelineRepo repository.TimelineRepository,
	emailSvc EmailService,
) PaymentService {
	return &paymentService{
		paymentRepo:  paymentRepo,
		bookingRepo:  bookingRepo,
		timelineRepo: timelineRepo,
		emailSvc:     emailSvc,
	}
}

// RecordGuestPayment settles one payment-processor confirmation. Duplicate
// webhook deliveries for the same intent are treated as success and change
// nothing. A first-time settlement recomputes the guest's totals, appends a
// receipt to the linked booking's timeline and, once every guest of the
// proposal has paid in full, marks the proposal settled and stamps the
// booking's payment flags.
func (s *paymentService) RecordGuestPayment(ctx context.Context, guestID, amountCents int32, paymentIntentID string) (*domain.ProposalGuest, bool, error) {
	logger.EnterMethod("paymentService.RecordGuestPayment", "guestID", guestID, "amountCents", amountCents, "paymentIntentID", paymentIntentID)

	if amountCents <= 0 {
		return nil, false, domain.NewValidationError("amount_cents", "must be positive")
	}
	if paymentIntentID == "" {
		return nil, false, domain.NewValidationError("payment_intent_id", "is required")
	}

	guest, alreadyProcessed, err := s.paymentRepo.RecordPayment(ctx, guestID, amountCents, paymentIntentID)
	if err != nil {
		logger.ExitMethodWithError("paymentService.RecordGuestPayment", err, "guestID", guestID)
		return nil, false, err
	}
	if alreadyProcessed {
		logger.ExitMethod("paymentService.RecordGuestPayment", "guestID", guestID, "alreadyProcessed", true)
		return guest, true, nil
	}

	proposal, err := s.paymentRepo.GetProposal(ctx, guest.TripProposalID)
	if err != nil {
		logger.ExitMethodWithError("paymentService.RecordGuestPayment", err, "proposalID", guest.TripProposalID)
		return nil, false, err
	}

	if proposal.BookingID != nil {
		appendTimeline(ctx, s.timelineRepo, &domain.TimelineEvent{
			BookingID:   *proposal.BookingID,
			EventType:   domain.EventPaymentRecorded,
			Description: fmt.Sprintf("%s paid $%.2f", guest.Name, float64(amountCents)/100),
			Metadata: map[string]string{
				"guest_id":          fmt.Sprintf("%d", guest.ID),
				"payment_intent_id": paymentIntentID,
				"amount_cents":      fmt.Sprintf("%d", amountCents),
			},
		})
	}

	if proposal.Status != domain.ProposalStatusSettled {
		if err := s.settleIfComplete(ctx, proposal); err != nil {
			logger.Error("Failed to derive proposal settlement", "proposalID", proposal.ID, "error", err)
		}
	}

	// Receipts are best-effort; payment recording already succeeded.
	if guest.Email != "" {
		if err := s.emailSvc.SendPaymentReceipt(ctx, guest.Email, guest.Name, amountCents, proposal.Title); err != nil {
			logger.Error("Failed to send payment receipt", "guestID", guest.ID, "error", err)
		}
	}

	logger.ExitMethod("paymentService.RecordGuestPayment", "guestID", guestID, "amountPaid", guest.AmountPaidCents, "status", guest.PaymentStatus)
	return guest, false, nil
}

// settleIfComplete marks the proposal settled once every guest is paid and,
// when a booking is linked, records the payment flags and a timeline event.
func (s *paymentService) settleIfComplete(ctx context.Context, proposal *domain.TripProposal) error {
	guests, err := s.paymentRepo.ListGuestsByProposal(ctx, proposal.ID)
	if err != nil {
		return err
	}
	for _, g := range guests {
		if g.PaymentStatus != domain.GuestPaymentPaid {
			return nil
		}
	}

	if err := s.paymentRepo.SetProposalStatus(ctx, proposal.ID, domain.ProposalStatusSettled); err != nil {
		return err
	}
	if proposal.BookingID == nil {
		return nil
	}
	if err := s.bookingRepo.SetPaymentFlags(ctx, *proposal.BookingID, true, true); err != nil {
		return err
	}
	appendTimeline(ctx, s.timelineRepo, &domain.TimelineEvent{
		BookingID:   *proposal.BookingID,
		EventType:   domain.EventProposalSettled,
		Description: fmt.Sprintf("All %d guests of %q have paid in full", len(guests), proposal.Title),
	})
	return nil
}

func (s *paymentService) ListGuests(ctx context.Context, proposalID int32) ([]domain.ProposalGuest, error) {
	if _, err := s.paymentRepo.GetProposal(ctx, proposalID); err != nil {
		return nil, err
	}
	return s.paymentRepo.ListGuestsByProposal(ctx, proposalID)
}
