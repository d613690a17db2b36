package http

import (
	"net/http"
	"strconv"
	"time"

	"winetour-backend/internal/domain"
	"winetour-backend/internal/service"
)

// AvailabilityHandler answers display-level availability queries. The result
// is a snapshot; the booking write path re-checks under lock.
type AvailabilityHandler struct {
	availability service.AvailabilityService
}

func NewAvailabilityHandler(availability service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{availability: availability}
}

// Check handles GET /api/v1/availability
func (h *AvailabilityHandler) Check(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	resourceType := domain.ResourceType(q.Get("resource_type"))
	if resourceType != domain.ResourceTypeVehicle && resourceType != domain.ResourceTypeDriver {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: "resource_type must be VEHICLE or DRIVER",
			Field: "resource_type",
		})
		return
	}

	resourceID, ok := queryID(w, r, "resource_id")
	if !ok {
		return
	}

	date, start, end := q.Get("date"), q.Get("start"), q.Get("end")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "date must be YYYY-MM-DD", Field: "date"})
		return
	}
	if _, err := time.Parse("15:04", start); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "start must be HH:MM", Field: "start"})
		return
	}
	if _, err := time.Parse("15:04", end); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "end must be HH:MM", Field: "end"})
		return
	}
	if start >= end {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "start must be before end", Field: "start"})
		return
	}

	var excludeBookingID *int32
	if raw := q.Get("exclude_booking_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || id <= 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{
				Error: "invalid exclude_booking_id",
				Field: "exclude_booking_id",
			})
			return
		}
		v := int32(id)
		excludeBookingID = &v
	}

	conflicts, err := h.availability.FindConflicts(r.Context(), resourceType, resourceID,
		date, start, end, excludeBookingID)
	if err != nil {
		writeError(w, err)
		return
	}

	if conflicts == nil {
		conflicts = []domain.Conflict{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"available": len(conflicts) == 0,
		"conflicts": conflicts,
	})
}
