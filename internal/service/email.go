package service

import (
	"context"
	"fmt"

	"winetour-backend/internal/domain"
	"winetour-backend/internal/logger"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) send(ctx context.Context, to, toName, subject, body string) error {
	logger.ExternalServiceCall("sendgrid", "send", "to", to, "subject", subject)

	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, body, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		logger.ExternalServiceResult("sendgrid", "send", err)
		return &domain.ExternalServiceError{Service: "sendgrid", Err: err}
	}
	if response.StatusCode >= 400 {
		err := fmt.Errorf("status %d: %s", response.StatusCode, response.Body)
		logger.ExternalServiceResult("sendgrid", "send", err)
		return &domain.ExternalServiceError{Service: "sendgrid", Err: err}
	}
	logger.ExternalServiceResult("sendgrid", "send", nil, "to", to)
	return nil
}

func (s *emailService) SendBookingConfirmation(ctx context.Context, email, name, bookingNumber, tourDate string) error {
	subject := fmt.Sprintf("Booking %s confirmed", bookingNumber)
	body := fmt.Sprintf("Hello %s,\n\nYour wine tour booking %s for %s has been received. We will be in touch once your driver is assigned.\n\nCheers,\nThe Tours Team", name, bookingNumber, tourDate)
	return s.send(ctx, email, name, subject, body)
}

func (s *emailService) SendDriverAssignmentNotification(ctx context.Context, email, driverName, bookingNumber, tourDate, startTime string) error {
	subject := fmt.Sprintf("New assignment: %s", bookingNumber)
	body := fmt.Sprintf("Hello %s,\n\nYou have been assigned to booking %s on %s starting at %s. Please review the tour sheet in the driver portal.\n\nCheers,\nThe Tours Team", driverName, bookingNumber, tourDate, startTime)
	return s.send(ctx, email, driverName, subject, body)
}

func (s *emailService) SendCustomerAssignmentNotification(ctx context.Context, email, customerName, driverName, vehicleName, bookingNumber string) error {
	subject := fmt.Sprintf("Your driver for booking %s", bookingNumber)
	body := fmt.Sprintf("Hello %s,\n\n%s will be your driver for booking %s, in %s.\n\nCheers,\nThe Tours Team", customerName, driverName, bookingNumber, vehicleName)
	return s.send(ctx, email, customerName, subject, body)
}

func (s *emailService) SendPaymentReceipt(ctx context.Context, email, guestName string, amountCents int32, proposalTitle string) error {
	subject := "Payment received"
	body := fmt.Sprintf("Hello %s,\n\nWe received your payment of $%.2f toward %q.\n\nCheers,\nThe Tours Team", guestName, float64(amountCents)/100, proposalTitle)
	return s.send(ctx, email, guestName, subject, body)
}

func (s *emailService) SendPaymentReminder(ctx context.Context, email, guestName string, outstandingCents int32, tourDate string) error {
	subject := "Payment reminder"
	body := fmt.Sprintf("Hello %s,\n\nA balance of $%.2f is still outstanding for your tour on %s. Please settle it before the tour date.\n\nCheers,\nThe Tours Team", guestName, float64(outstandingCents)/100, tourDate)
	return s.send(ctx, email, guestName, subject, body)
}
