package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"winetour-backend/internal/domain"
	"winetour-backend/internal/logger"
)

// errorResponse is the JSON shape for every non-2xx reply
type errorResponse struct {
	Error           string                 `json:"error"`
	Field           string                 `json:"field,omitempty"`
	AllowedStatuses []domain.BookingStatus `json:"allowed_statuses,omitempty"`
	Conflicts       []domain.Conflict      `json:"conflicts,omitempty"`
	Violations      []domain.Violation     `json:"violations,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logger.Error("Failed to encode response", "error", err)
		}
	}
}

// writeError maps domain errors onto HTTP statuses
func writeError(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: validationErr.Message,
			Field: validationErr.Field,
		})
		return
	}

	var notFoundErr *domain.NotFoundError
	if errors.As(err, &notFoundErr) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: notFoundErr.Error()})
		return
	}

	var conflictErr *domain.ConflictError
	if errors.As(err, &conflictErr) {
		writeJSON(w, http.StatusConflict, errorResponse{
			Error:           conflictErr.Reason,
			AllowedStatuses: conflictErr.AllowedStatuses,
			Conflicts:       conflictErr.Conflicts,
		})
		return
	}

	var complianceErr *domain.ComplianceBlockedError
	if errors.As(err, &complianceErr) {
		writeJSON(w, http.StatusForbidden, errorResponse{
			Error:      complianceErr.Error(),
			Violations: complianceErr.Violations,
		})
		return
	}

	var externalErr *domain.ExternalServiceError
	if errors.As(err, &externalErr) {
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: externalErr.Error()})
		return
	}

	logger.Error("Unhandled error in HTTP handler", "error", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}
