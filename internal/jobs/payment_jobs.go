package jobs

import (
	"context"
	"fmt"

	"winetour-backend/internal/logger"
)

// SendPaymentReminders emails guests who still owe money on proposals
// whose tour date is within the configured reminder window
func (jr *JobRunner) SendPaymentReminders() {
	jr.runWithRecovery("SendPaymentReminders", func() {
		ctx := context.Background()

		query := `
			SELECT g.id, g.name, g.email, g.amount_owed_cents, g.amount_paid_cents,
			       p.id, p.title, to_char(p.tour_date, 'YYYY-MM-DD')
			FROM proposal_guests g
			JOIN trip_proposals p ON g.trip_proposal_id = p.id
			WHERE p.status = 'COLLECTING'
			  AND g.payment_status <> 'PAID'
			  AND p.tour_date BETWEEN CURRENT_DATE AND CURRENT_DATE + $1::int
		`

		rows, err := jr.db.QueryContext(ctx, query, jr.config.Payments.ReminderDays)
		if err != nil {
			logger.Error("Failed to query unpaid guests", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var (
				guestID    int
				guestName  string
				guestEmail string
				owedCents  int32
				paidCents  int32
				proposalID int
				title      string
				tourDate   string
			)
			if err := rows.Scan(&guestID, &guestName, &guestEmail, &owedCents, &paidCents,
				&proposalID, &title, &tourDate); err != nil {
				logger.Error("Failed to scan unpaid guest", "error", err)
				continue
			}

			outstanding := owedCents - paidCents
			if outstanding <= 0 {
				continue
			}

			err := jr.services.Email.SendPaymentReminder(ctx, guestEmail, guestName, outstanding, tourDate)
			if err != nil {
				logger.Error("Failed to send payment reminder",
					"guest_id", guestID,
					"proposal_id", proposalID,
					"email", guestEmail,
					"error", err)
				continue
			}

			count++
			logger.Debug("Sent payment reminder",
				"guest_id", guestID,
				"proposal_id", proposalID,
				"outstanding", fmt.Sprintf("$%.2f", float64(outstanding)/100.0))
		}

		if err := rows.Err(); err != nil {
			logger.Error("Error iterating unpaid guests", "error", err)
			return
		}

		logger.Info("Payment reminders sent", "count", count)
	})
}
