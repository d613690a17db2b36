package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"winetour-backend/internal/domain"
	"winetour-backend/internal/service"
)

// BookingHandler exposes booking lifecycle operations
type BookingHandler struct {
	bookings   service.BookingService
	compliance service.ComplianceService
}

func NewBookingHandler(bookings service.BookingService, compliance service.ComplianceService) *BookingHandler {
	return &BookingHandler{
		bookings:   bookings,
		compliance: compliance,
	}
}

type createBookingRequest struct {
	CustomerName    string  `json:"customer_name"`
	CustomerEmail   string  `json:"customer_email"`
	CustomerPhone   string  `json:"customer_phone"`
	TourDate        string  `json:"tour_date"`
	StartTime       string  `json:"start_time"`
	EndTime         string  `json:"end_time"`
	VehicleIDs      []int32 `json:"vehicle_ids"`
	DriverID        *int32  `json:"driver_id,omitempty"`
	TotalPriceCents int32   `json:"total_price_cents"`
	DepositCents    int32   `json:"deposit_cents"`
	Notes           string  `json:"notes"`
}

// Create handles POST /api/v1/bookings
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBookingRequest
	if !decodeBody(w, r, &req) {
		return
	}

	booking, err := h.bookings.CreateBooking(r.Context(), service.CreateBookingInput{
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		TourDate:        req.TourDate,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		VehicleIDs:      req.VehicleIDs,
		DriverID:        req.DriverID,
		TotalPriceCents: req.TotalPriceCents,
		DepositCents:    req.DepositCents,
		Notes:           req.Notes,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, booking)
}

// Get handles GET /api/v1/bookings/{id}
func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	booking, err := h.bookings.GetBooking(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, booking)
}

type statusChangeRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

// ChangeStatus handles PATCH /api/v1/bookings/{id}/status
func (h *BookingHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req statusChangeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	booking, err := h.bookings.RequestStatusChange(r.Context(), id, domain.BookingStatus(req.Status), req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, booking)
}

type assignRequest struct {
	DriverID       int32  `json:"driver_id"`
	VehicleID      int32  `json:"vehicle_id"`
	Override       bool   `json:"override"`
	OverrideReason string `json:"override_reason"`
	NotifyDriver   bool   `json:"notify_driver"`
	NotifyCustomer bool   `json:"notify_customer"`
}

// Assign handles POST /api/v1/bookings/{id}/assign
func (h *BookingHandler) Assign(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req assignRequest
	if !decodeBody(w, r, &req) {
		return
	}

	booking, err := h.bookings.Assign(r.Context(), id, req.DriverID, req.VehicleID, service.AssignOptions{
		Override:       req.Override,
		OverrideReason: req.OverrideReason,
		NotifyDriver:   req.NotifyDriver,
		NotifyCustomer: req.NotifyCustomer,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, booking)
}

// Timeline handles GET /api/v1/bookings/{id}/timeline
func (h *BookingHandler) Timeline(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	events, err := h.bookings.GetTimeline(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"events": events})
}

// CompliancePreview handles GET /api/v1/bookings/{id}/compliance.
// Returns the violation list for a candidate driver/vehicle pair without
// assigning anything.
func (h *BookingHandler) CompliancePreview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	driverID, ok := queryID(w, r, "driver_id")
	if !ok {
		return
	}
	vehicleID, ok := queryID(w, r, "vehicle_id")
	if !ok {
		return
	}

	booking, err := h.bookings.GetBooking(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := h.compliance.Evaluate(r.Context(), driverID, vehicleID, booking.TourDate)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"allowed":    result.Allowed(),
		"violations": result.Violations,
	})
}

// pathID parses a numeric {name} path variable, writing a 400 on failure
func pathID(w http.ResponseWriter, r *http.Request, name string) (int32, bool) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid " + name, Field: name})
		return 0, false
	}
	return int32(id), true
}

// queryID parses a numeric query parameter, writing a 400 on failure
func queryID(w http.ResponseWriter, r *http.Request, name string) (int32, bool) {
	raw := r.URL.Query().Get(name)
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid " + name, Field: name})
		return 0, false
	}
	return int32(id), true
}
