package service_test

import (
	"context"
	"testing"

	"winetour-backend/internal/domain"
	"winetour-backend/internal/service"

	"github.com/stretchr/testify/assert"
)

func newComplianceServiceForTest() (service.ComplianceService, *MockComplianceRepo) {
	repo := new(MockComplianceRepo)
	svc := service.NewComplianceService(repo, service.HoursOfServiceLimits{
		DailyMinutes:  600,
		WeeklyMinutes: 3000,
	})
	return svc, repo
}

func fullCredentials() []domain.DriverCredential {
	return []domain.DriverCredential{
		{Type: domain.CredentialLicense, ValidFrom: "2025-01-01", ValidTo: "2027-01-01"},
		{Type: domain.CredentialMedicalCert, ValidFrom: "2025-01-01", ValidTo: "2027-01-01"},
		{Type: domain.CredentialTourPermit, ValidFrom: "2025-01-01", ValidTo: "2027-01-01"},
	}
}

func fullDocuments() []domain.VehicleDocument {
	return []domain.VehicleDocument{
		{Type: domain.DocumentRegistration, ExpiresOn: "2027-01-01"},
		{Type: domain.DocumentInsurance, ExpiresOn: "2027-01-01"},
		{Type: domain.DocumentInspection, ExpiresOn: "2027-01-01"},
	}
}

func TestComplianceService_Evaluate(t *testing.T) {
	ctx := context.Background()
	tourDate := "2026-09-12"

	t.Run("CleanPair", func(t *testing.T) {
		svc, repo := newComplianceServiceForTest()
		repo.On("ListDriverCredentials", ctx, int32(7)).Return(fullCredentials(), nil).Once()
		repo.On("ListVehicleDocuments", ctx, int32(2)).Return(fullDocuments(), nil).Once()
		repo.On("DriverServiceMinutes", ctx, int32(7), tourDate).Return(int32(240), int32(1200), nil).Once()
		repo.On("ListOpenSafetyFlags", ctx, int32(7), int32(2)).Return([]domain.SafetyFlag{}, nil).Once()

		result, err := svc.Evaluate(ctx, 7, 2, tourDate)
		assert.NoError(t, err)
		assert.True(t, result.Allowed())
		assert.Empty(t, result.Violations)
	})

	t.Run("ExpiredLicenseIsNonOverridable", func(t *testing.T) {
		svc, repo := newComplianceServiceForTest()
		creds := fullCredentials()
		creds[0].ValidTo = "2026-09-01" // lapses before the tour
		repo.On("ListDriverCredentials", ctx, int32(7)).Return(creds, nil).Once()
		repo.On("ListVehicleDocuments", ctx, int32(2)).Return(fullDocuments(), nil).Once()
		repo.On("DriverServiceMinutes", ctx, int32(7), tourDate).Return(int32(0), int32(0), nil).Once()
		repo.On("ListOpenSafetyFlags", ctx, int32(7), int32(2)).Return([]domain.SafetyFlag{}, nil).Once()

		result, err := svc.Evaluate(ctx, 7, 2, tourDate)
		assert.NoError(t, err)
		assert.False(t, result.Allowed())
		assert.False(t, result.OverridableWith(true))
		assert.Len(t, result.Violations, 1)
		assert.Equal(t, domain.CategoryDriverCredential, result.Violations[0].Category)
		assert.False(t, result.Violations[0].Overridable)
	})

	t.Run("MissingTourPermitIsOverridable", func(t *testing.T) {
		svc, repo := newComplianceServiceForTest()
		repo.On("ListDriverCredentials", ctx, int32(7)).Return(fullCredentials()[:2], nil).Once()
		repo.On("ListVehicleDocuments", ctx, int32(2)).Return(fullDocuments(), nil).Once()
		repo.On("DriverServiceMinutes", ctx, int32(7), tourDate).Return(int32(0), int32(0), nil).Once()
		repo.On("ListOpenSafetyFlags", ctx, int32(7), int32(2)).Return([]domain.SafetyFlag{}, nil).Once()

		result, err := svc.Evaluate(ctx, 7, 2, tourDate)
		assert.NoError(t, err)
		assert.False(t, result.Allowed())
		assert.True(t, result.OverridableWith(true))
	})

	t.Run("LapsedInsuranceIsNonOverridable", func(t *testing.T) {
		svc, repo := newComplianceServiceForTest()
		docs := fullDocuments()
		docs[1].ExpiresOn = "2026-09-11"
		repo.On("ListDriverCredentials", ctx, int32(7)).Return(fullCredentials(), nil).Once()
		repo.On("ListVehicleDocuments", ctx, int32(2)).Return(docs, nil).Once()
		repo.On("DriverServiceMinutes", ctx, int32(7), tourDate).Return(int32(0), int32(0), nil).Once()
		repo.On("ListOpenSafetyFlags", ctx, int32(7), int32(2)).Return([]domain.SafetyFlag{}, nil).Once()

		result, err := svc.Evaluate(ctx, 7, 2, tourDate)
		assert.NoError(t, err)
		assert.False(t, result.OverridableWith(true))
		assert.Equal(t, domain.CategoryVehicleDocument, result.Violations[0].Category)
	})

	t.Run("DailyLimitBlocksAndIsOverridable", func(t *testing.T) {
		svc, repo := newComplianceServiceForTest()
		repo.On("ListDriverCredentials", ctx, int32(7)).Return(fullCredentials(), nil).Once()
		repo.On("ListVehicleDocuments", ctx, int32(2)).Return(fullDocuments(), nil).Once()
		repo.On("DriverServiceMinutes", ctx, int32(7), tourDate).Return(int32(600), int32(1200), nil).Once()
		repo.On("ListOpenSafetyFlags", ctx, int32(7), int32(2)).Return([]domain.SafetyFlag{}, nil).Once()

		result, err := svc.Evaluate(ctx, 7, 2, tourDate)
		assert.NoError(t, err)
		assert.False(t, result.Allowed())
		assert.True(t, result.OverridableWith(true))
		assert.Equal(t, domain.CategoryHoursOfService, result.Violations[0].Category)
		assert.Equal(t, domain.SeverityBlocking, result.Violations[0].Severity)
	})

	t.Run("NearDailyLimitWarns", func(t *testing.T) {
		svc, repo := newComplianceServiceForTest()
		repo.On("ListDriverCredentials", ctx, int32(7)).Return(fullCredentials(), nil).Once()
		repo.On("ListVehicleDocuments", ctx, int32(2)).Return(fullDocuments(), nil).Once()
		repo.On("DriverServiceMinutes", ctx, int32(7), tourDate).Return(int32(480), int32(1200), nil).Once()
		repo.On("ListOpenSafetyFlags", ctx, int32(7), int32(2)).Return([]domain.SafetyFlag{}, nil).Once()

		result, err := svc.Evaluate(ctx, 7, 2, tourDate)
		assert.NoError(t, err)
		assert.True(t, result.Allowed())
		assert.Len(t, result.Violations, 1)
		assert.Equal(t, domain.SeverityWarning, result.Violations[0].Severity)
	})

	t.Run("WeeklyLimitBlocks", func(t *testing.T) {
		svc, repo := newComplianceServiceForTest()
		repo.On("ListDriverCredentials", ctx, int32(7)).Return(fullCredentials(), nil).Once()
		repo.On("ListVehicleDocuments", ctx, int32(2)).Return(fullDocuments(), nil).Once()
		repo.On("DriverServiceMinutes", ctx, int32(7), tourDate).Return(int32(240), int32(3000), nil).Once()
		repo.On("ListOpenSafetyFlags", ctx, int32(7), int32(2)).Return([]domain.SafetyFlag{}, nil).Once()

		result, err := svc.Evaluate(ctx, 7, 2, tourDate)
		assert.NoError(t, err)
		assert.False(t, result.Allowed())
		assert.True(t, result.OverridableWith(true))
	})

	t.Run("OpenSafetyFlagBlocks", func(t *testing.T) {
		svc, repo := newComplianceServiceForTest()
		repo.On("ListDriverCredentials", ctx, int32(7)).Return(fullCredentials(), nil).Once()
		repo.On("ListVehicleDocuments", ctx, int32(2)).Return(fullDocuments(), nil).Once()
		repo.On("DriverServiceMinutes", ctx, int32(7), tourDate).Return(int32(0), int32(0), nil).Once()
		repo.On("ListOpenSafetyFlags", ctx, int32(7), int32(2)).Return([]domain.SafetyFlag{
			{ID: 1, Description: "brake wear report pending"},
		}, nil).Once()

		result, err := svc.Evaluate(ctx, 7, 2, tourDate)
		assert.NoError(t, err)
		assert.False(t, result.Allowed())
		assert.True(t, result.OverridableWith(true))
		assert.Equal(t, domain.CategorySafetyViolation, result.Violations[0].Category)
	})

	t.Run("CollectsEveryViolation", func(t *testing.T) {
		svc, repo := newComplianceServiceForTest()
		repo.On("ListDriverCredentials", ctx, int32(7)).Return([]domain.DriverCredential{}, nil).Once()
		repo.On("ListVehicleDocuments", ctx, int32(2)).Return([]domain.VehicleDocument{}, nil).Once()
		repo.On("DriverServiceMinutes", ctx, int32(7), tourDate).Return(int32(600), int32(3000), nil).Once()
		repo.On("ListOpenSafetyFlags", ctx, int32(7), int32(2)).Return([]domain.SafetyFlag{
			{ID: 1, Description: "open incident"},
		}, nil).Once()

		result, err := svc.Evaluate(ctx, 7, 2, tourDate)
		assert.NoError(t, err)
		// 3 credentials + 3 documents + day + week + safety flag
		assert.Len(t, result.Violations, 9)
	})

	t.Run("BadDate", func(t *testing.T) {
		svc, _ := newComplianceServiceForTest()
		_, err := svc.Evaluate(ctx, 7, 2, "next saturday")
		var vErr *domain.ValidationError
		assert.ErrorAs(t, err, &vErr)
	})
}
