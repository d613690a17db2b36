package domain

import "time"

type ViolationSeverity string

const (
	SeverityBlocking ViolationSeverity = "BLOCKING"
	SeverityWarning  ViolationSeverity = "WARNING"
)

type ViolationCategory string

const (
	CategoryDriverCredential ViolationCategory = "DRIVER_CREDENTIAL"
	CategoryVehicleDocument  ViolationCategory = "VEHICLE_DOCUMENT"
	CategoryHoursOfService   ViolationCategory = "HOURS_OF_SERVICE"
	CategorySafetyViolation  ViolationCategory = "SAFETY_VIOLATION"
)

type Violation struct {
	Category    ViolationCategory `json:"category"`
	Severity    ViolationSeverity `json:"severity"`
	Overridable bool              `json:"overridable"`
	Message     string            `json:"message"`
}

// ComplianceResult is the outcome of evaluating a driver/vehicle pair for a
// tour date. It is a value, not a persisted row.
type ComplianceResult struct {
	DriverID   int32       `json:"driver_id"`
	VehicleID  int32       `json:"vehicle_id"`
	TourDate   string      `json:"tour_date"`
	Violations []Violation `json:"violations"`
}

// Allowed reports whether assignment may proceed without an override.
func (r *ComplianceResult) Allowed() bool {
	for _, v := range r.Violations {
		if v.Severity == SeverityBlocking {
			return false
		}
	}
	return true
}

// Blocking returns the blocking subset of violations.
func (r *ComplianceResult) Blocking() []Violation {
	var out []Violation
	for _, v := range r.Violations {
		if v.Severity == SeverityBlocking {
			out = append(out, v)
		}
	}
	return out
}

// OverridableWith reports whether an authorized override clears every
// blocking violation. Entries not marked overridable can never be bypassed.
func (r *ComplianceResult) OverridableWith(override bool) bool {
	if !override {
		return r.Allowed()
	}
	for _, v := range r.Violations {
		if v.Severity == SeverityBlocking && !v.Overridable {
			return false
		}
	}
	return true
}

type CredentialType string

const (
	CredentialLicense     CredentialType = "LICENSE"
	CredentialMedicalCert CredentialType = "MEDICAL_CERT"
	CredentialTourPermit  CredentialType = "TOUR_PERMIT"
)

// DriverCredential is a dated validity window for one credential.
type DriverCredential struct {
	ID        int32          `json:"id"`
	DriverID  int32          `json:"driver_id"`
	Type      CredentialType `json:"type"`
	ValidFrom string         `json:"valid_from"` // YYYY-MM-DD
	ValidTo   string         `json:"valid_to"`
}

// Covers reports whether the credential window includes date (inclusive).
func (c DriverCredential) Covers(date string) bool {
	return c.ValidFrom <= date && date <= c.ValidTo
}

type VehicleDocumentType string

const (
	DocumentRegistration VehicleDocumentType = "REGISTRATION"
	DocumentInsurance    VehicleDocumentType = "INSURANCE"
	DocumentInspection   VehicleDocumentType = "INSPECTION"
)

type VehicleDocument struct {
	ID        int32               `json:"id"`
	VehicleID int32               `json:"vehicle_id"`
	Type      VehicleDocumentType `json:"type"`
	ExpiresOn string              `json:"expires_on"` // YYYY-MM-DD
}

// SafetyFlag is an open safety violation raised against a driver or vehicle.
type SafetyFlag struct {
	ID          int32     `json:"id"`
	DriverID    *int32    `json:"driver_id,omitempty"`
	VehicleID   *int32    `json:"vehicle_id,omitempty"`
	Description string    `json:"description"`
	OpenedOn    time.Time `json:"opened_on"`
}
