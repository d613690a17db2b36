package service

import (
	"context"
	"fmt"

	"winetour-backend/internal/domain"
	"winetour-backend/internal/logger"
	"winetour-backend/internal/repository"
)

// HoursOfServiceLimits caps a driver's scheduled minutes per day and per week.
type HoursOfServiceLimits struct {
	DailyMinutes  int32
	WeeklyMinutes int32
}

type complianceService struct {
	complianceRepo repository.ComplianceRepository
	limits         HoursOfServiceLimits
}

func NewComplianceService(complianceRepo repository.ComplianceRepository, limits HoursOfServiceLimits) ComplianceService {
	return &complianceService{complianceRepo: complianceRepo, limits: limits}
}

// requiredCredentials lists each credential a driver must hold and whether a
// lapse may be overridden by an authorized dispatcher. Expired licenses and
// medical certificates can never be bypassed.
var requiredCredentials = []struct {
	Type        domain.CredentialType
	Overridable bool
}{
	{domain.CredentialLicense, false},
	{domain.CredentialMedicalCert, false},
	{domain.CredentialTourPermit, true},
}

// requiredDocuments is the vehicle-side counterpart. Registration and
// insurance lapses are hard blocks; an overdue inspection may be overridden.
var requiredDocuments = []struct {
	Type        domain.VehicleDocumentType
	Overridable bool
}{
	{domain.DocumentRegistration, false},
	{domain.DocumentInsurance, false},
	{domain.DocumentInspection, true},
}

// Evaluate runs every check independently so the caller sees the full list
// of violations, not just the first failure.
func (s *complianceService) Evaluate(ctx context.Context, driverID, vehicleID int32, tourDate string) (*domain.ComplianceResult, error) {
	logger.EnterMethod("complianceService.Evaluate", "driverID", driverID, "vehicleID", vehicleID, "tourDate", tourDate)

	if err := validateDate(tourDate); err != nil {
		return nil, err
	}

	result := &domain.ComplianceResult{
		DriverID:  driverID,
		VehicleID: vehicleID,
		TourDate:  tourDate,
	}

	creds, err := s.complianceRepo.ListDriverCredentials(ctx, driverID)
	if err != nil {
		logger.ExitMethodWithError("complianceService.Evaluate", err, "driverID", driverID)
		return nil, err
	}
	for _, req := range requiredCredentials {
		covered := false
		for _, c := range creds {
			if c.Type == req.Type && c.Covers(tourDate) {
				covered = true
				break
			}
		}
		if !covered {
			result.Violations = append(result.Violations, domain.Violation{
				Category:    domain.CategoryDriverCredential,
				Severity:    domain.SeverityBlocking,
				Overridable: req.Overridable,
				Message:     fmt.Sprintf("driver %d has no valid %s covering %s", driverID, req.Type, tourDate),
			})
		}
	}

	docs, err := s.complianceRepo.ListVehicleDocuments(ctx, vehicleID)
	if err != nil {
		logger.ExitMethodWithError("complianceService.Evaluate", err, "vehicleID", vehicleID)
		return nil, err
	}
	for _, req := range requiredDocuments {
		valid := false
		for _, d := range docs {
			if d.Type == req.Type && d.ExpiresOn >= tourDate {
				valid = true
				break
			}
		}
		if !valid {
			result.Violations = append(result.Violations, domain.Violation{
				Category:    domain.CategoryVehicleDocument,
				Severity:    domain.SeverityBlocking,
				Overridable: req.Overridable,
				Message:     fmt.Sprintf("vehicle %d has no valid %s on %s", vehicleID, req.Type, tourDate),
			})
		}
	}

	dayMinutes, weekMinutes, err := s.complianceRepo.DriverServiceMinutes(ctx, driverID, tourDate)
	if err != nil {
		logger.ExitMethodWithError("complianceService.Evaluate", err, "driverID", driverID)
		return nil, err
	}
	if dayMinutes >= s.limits.DailyMinutes {
		result.Violations = append(result.Violations, domain.Violation{
			Category:    domain.CategoryHoursOfService,
			Severity:    domain.SeverityBlocking,
			Overridable: true,
			Message:     fmt.Sprintf("driver %d is scheduled %d minutes on %s (daily limit %d)", driverID, dayMinutes, tourDate, s.limits.DailyMinutes),
		})
	} else if dayMinutes*5 >= s.limits.DailyMinutes*4 {
		result.Violations = append(result.Violations, domain.Violation{
			Category:    domain.CategoryHoursOfService,
			Severity:    domain.SeverityWarning,
			Overridable: true,
			Message:     fmt.Sprintf("driver %d is near the daily limit on %s (%d of %d minutes)", driverID, tourDate, dayMinutes, s.limits.DailyMinutes),
		})
	}
	if weekMinutes >= s.limits.WeeklyMinutes {
		result.Violations = append(result.Violations, domain.Violation{
			Category:    domain.CategoryHoursOfService,
			Severity:    domain.SeverityBlocking,
			Overridable: true,
			Message:     fmt.Sprintf("driver %d is scheduled %d minutes in the week of %s (weekly limit %d)", driverID, weekMinutes, tourDate, s.limits.WeeklyMinutes),
		})
	}

	flags, err := s.complianceRepo.ListOpenSafetyFlags(ctx, driverID, vehicleID)
	if err != nil {
		logger.ExitMethodWithError("complianceService.Evaluate", err, "driverID", driverID)
		return nil, err
	}
	for _, f := range flags {
		result.Violations = append(result.Violations, domain.Violation{
			Category:    domain.CategorySafetyViolation,
			Severity:    domain.SeverityBlocking,
			Overridable: true,
			Message:     fmt.Sprintf("open safety violation: %s", f.Description),
		})
	}

	logger.ExitMethod("complianceService.Evaluate", "driverID", driverID, "violations", len(result.Violations), "allowed", result.Allowed())
	return result, nil
}
