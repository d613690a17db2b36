package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"winetour-backend/internal/security"
	"winetour-backend/internal/service"
)

// Handlers bundles the services exposed over HTTP
type Handlers struct {
	Bookings     service.BookingService
	Holds        service.HoldService
	Availability service.AvailabilityService
	Compliance   service.ComplianceService
	Payments     service.PaymentService
}

// NewRouter builds the API router. Everything under /api/v1 requires a
// valid bearer token; /health is public.
func NewRouter(h Handlers, tokens security.TokenManager) *mux.Router {
	router := mux.NewRouter()
	router.Use(LoggingMiddleware)

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(AuthMiddleware(tokens))

	bookingHandler := NewBookingHandler(h.Bookings, h.Compliance)
	api.HandleFunc("/bookings", bookingHandler.Create).Methods("POST")
	api.HandleFunc("/bookings/{id}", bookingHandler.Get).Methods("GET")
	api.HandleFunc("/bookings/{id}/status", bookingHandler.ChangeStatus).Methods("PATCH")
	api.HandleFunc("/bookings/{id}/assign", bookingHandler.Assign).Methods("POST")
	api.HandleFunc("/bookings/{id}/timeline", bookingHandler.Timeline).Methods("GET")
	api.HandleFunc("/bookings/{id}/compliance", bookingHandler.CompliancePreview).Methods("GET")

	holdHandler := NewHoldHandler(h.Holds)
	api.HandleFunc("/holds", holdHandler.Create).Methods("POST")
	api.HandleFunc("/holds/{id}", holdHandler.Release).Methods("DELETE")

	availabilityHandler := NewAvailabilityHandler(h.Availability)
	api.HandleFunc("/availability", availabilityHandler.Check).Methods("GET")

	paymentHandler := NewPaymentHandler(h.Payments)
	api.HandleFunc("/payments/confirm", paymentHandler.Confirm).Methods("POST")
	api.HandleFunc("/proposals/{id}/guests", paymentHandler.ListGuests).Methods("GET")

	return router
}
