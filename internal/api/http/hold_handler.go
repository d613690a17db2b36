package http

import (
	"net/http"

	"winetour-backend/internal/service"
)

// HoldHandler exposes hold block operations for the booking flow
type HoldHandler struct {
	holds service.HoldService
}

func NewHoldHandler(holds service.HoldService) *HoldHandler {
	return &HoldHandler{holds: holds}
}

type createHoldRequest struct {
	VehicleID int32  `json:"vehicle_id"`
	TourDate  string `json:"tour_date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Note      string `json:"note"`
}

// Create handles POST /api/v1/holds
func (h *HoldHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createHoldRequest
	if !decodeBody(w, r, &req) {
		return
	}

	hold, err := h.holds.CreateHoldBlock(r.Context(), req.VehicleID, req.TourDate, req.StartTime, req.EndTime, req.Note)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, hold)
}

// Release handles DELETE /api/v1/holds/{id}. Releasing an already released
// or converted hold is a no-op.
func (h *HoldHandler) Release(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.holds.ReleaseHoldBlock(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
