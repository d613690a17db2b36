package http

import (
	"net/http"

	"winetour-backend/internal/service"
)

// PaymentHandler exposes the payment settlement endpoints consumed by the
// processor webhook and the organizer console
type PaymentHandler struct {
	payments service.PaymentService
}

func NewPaymentHandler(payments service.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

type confirmPaymentRequest struct {
	GuestID         int32  `json:"guest_id"`
	AmountCents     int32  `json:"amount_cents"`
	PaymentIntentID string `json:"payment_intent_id"`
}

// Confirm handles POST /api/v1/payments/confirm. Replays of the same
// payment_intent_id succeed without changing anything.
func (h *PaymentHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	var req confirmPaymentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	guest, alreadyProcessed, err := h.payments.RecordGuestPayment(r.Context(), req.GuestID, req.AmountCents, req.PaymentIntentID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"guest":             guest,
		"already_processed": alreadyProcessed,
	})
}

// ListGuests handles GET /api/v1/proposals/{id}/guests
func (h *PaymentHandler) ListGuests(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	guests, err := h.payments.ListGuests(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"guests": guests})
}
