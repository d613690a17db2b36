package domain

import (
	"fmt"
	"strings"
)

// ValidationError signals malformed or missing input. HTTP 400.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// NotFoundError signals a missing booking, vehicle, driver or guest. HTTP 404.
type NotFoundError struct {
	Entity string
	ID     int32
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

func NewNotFoundError(entity string, id int32) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// ConflictError signals resource contention or an illegal state change:
// double-booking, invalid status transition, duplicate hold conversion.
// AllowedStatuses is populated for transition rejections so callers get a
// machine-checkable list of alternatives. HTTP 409.
type ConflictError struct {
	Reason          string
	Conflicts       []Conflict
	AllowedStatuses []BookingStatus
}

func (e *ConflictError) Error() string {
	if len(e.AllowedStatuses) > 0 {
		allowed := make([]string, len(e.AllowedStatuses))
		for i, s := range e.AllowedStatuses {
			allowed[i] = string(s)
		}
		return fmt.Sprintf("%s (allowed: %s)", e.Reason, strings.Join(allowed, ", "))
	}
	return e.Reason
}

func NewConflictError(reason string) *ConflictError {
	return &ConflictError{Reason: reason}
}

// ComplianceBlockedError signals an assignment blocked by unresolved or
// non-overridable violations. HTTP 403.
type ComplianceBlockedError struct {
	Violations []Violation
}

func (e *ComplianceBlockedError) Error() string {
	return fmt.Sprintf("assignment blocked by %d compliance violation(s)", len(e.Violations))
}

// ExternalServiceError wraps a payment-processor or notification failure.
type ExternalServiceError struct {
	Service string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Service, e.Err)
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }
