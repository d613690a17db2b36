package service_test

import (
	"context"
	"testing"

	"winetour-backend/internal/domain"
	"winetour-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestAvailabilityService_HasConflict(t *testing.T) {
	ctx := context.Background()

	t.Run("BookingOverlapWins", func(t *testing.T) {
		bookingRepo := new(MockBookingRepo)
		holdRepo := new(MockHoldRepo)
		svc := service.NewAvailabilityService(bookingRepo, holdRepo)

		bookingRepo.On("FindConflicting", ctx, domain.ResourceTypeVehicle, int32(2), "2026-09-12", "09:00", "13:00", (*int32)(nil)).
			Return([]domain.Booking{{ID: 100, TourDate: "2026-09-12", StartTime: "10:00", EndTime: "14:00"}}, nil).Once()

		conflict, err := svc.HasConflict(ctx, domain.ResourceTypeVehicle, 2, "2026-09-12", "09:00", "13:00", nil)
		assert.NoError(t, err)
		assert.True(t, conflict)
		holdRepo.AssertNotCalled(t, "FindActiveOverlapping", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		bookingRepo.AssertExpectations(t)
	})

	t.Run("ActiveHoldBlocksVehicle", func(t *testing.T) {
		bookingRepo := new(MockBookingRepo)
		holdRepo := new(MockHoldRepo)
		svc := service.NewAvailabilityService(bookingRepo, holdRepo)

		bookingRepo.On("FindConflicting", ctx, domain.ResourceTypeVehicle, int32(2), "2026-09-12", "09:00", "13:00", (*int32)(nil)).
			Return([]domain.Booking{}, nil).Once()
		holdRepo.On("FindActiveOverlapping", ctx, int32(2), "2026-09-12", "09:00", "13:00").
			Return([]domain.HoldBlock{{ID: 42}}, nil).Once()

		conflict, err := svc.HasConflict(ctx, domain.ResourceTypeVehicle, 2, "2026-09-12", "09:00", "13:00", nil)
		assert.NoError(t, err)
		assert.True(t, conflict)
	})

	t.Run("DriversIgnoreHolds", func(t *testing.T) {
		bookingRepo := new(MockBookingRepo)
		holdRepo := new(MockHoldRepo)
		svc := service.NewAvailabilityService(bookingRepo, holdRepo)

		bookingRepo.On("FindConflicting", ctx, domain.ResourceTypeDriver, int32(4), "2026-09-12", "09:00", "13:00", (*int32)(nil)).
			Return([]domain.Booking{}, nil).Once()

		conflict, err := svc.HasConflict(ctx, domain.ResourceTypeDriver, 4, "2026-09-12", "09:00", "13:00", nil)
		assert.NoError(t, err)
		assert.False(t, conflict)
		holdRepo.AssertNotCalled(t, "FindActiveOverlapping", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ExcludeIDIsForwarded", func(t *testing.T) {
		bookingRepo := new(MockBookingRepo)
		holdRepo := new(MockHoldRepo)
		svc := service.NewAvailabilityService(bookingRepo, holdRepo)

		excludeID := int32(100)
		bookingRepo.On("FindConflicting", ctx, domain.ResourceTypeDriver, int32(4), "2026-09-12", "09:00", "13:00", &excludeID).
			Return([]domain.Booking{}, nil).Once()

		conflict, err := svc.HasConflict(ctx, domain.ResourceTypeDriver, 4, "2026-09-12", "09:00", "13:00", &excludeID)
		assert.NoError(t, err)
		assert.False(t, conflict)
		bookingRepo.AssertExpectations(t)
	})
}

func TestAvailabilityService_FindConflicts(t *testing.T) {
	ctx := context.Background()

	t.Run("MergesBookingsAndHolds", func(t *testing.T) {
		bookingRepo := new(MockBookingRepo)
		holdRepo := new(MockHoldRepo)
		svc := service.NewAvailabilityService(bookingRepo, holdRepo)

		bookingRepo.On("FindConflicting", ctx, domain.ResourceTypeVehicle, int32(2), "2026-09-12", "09:00", "13:00", (*int32)(nil)).
			Return([]domain.Booking{{ID: 100, TourDate: "2026-09-12", StartTime: "10:00", EndTime: "14:00"}}, nil).Once()
		holdRepo.On("FindActiveOverlapping", ctx, int32(2), "2026-09-12", "09:00", "13:00").
			Return([]domain.HoldBlock{{ID: 42, Date: "2026-09-12", StartTime: "12:00", EndTime: "13:00"}}, nil).Once()

		conflicts, err := svc.FindConflicts(ctx, domain.ResourceTypeVehicle, 2, "2026-09-12", "09:00", "13:00", nil)
		assert.NoError(t, err)
		assert.Len(t, conflicts, 2)
		assert.Equal(t, "booking", conflicts[0].Kind)
		assert.Equal(t, int32(100), conflicts[0].ID)
		assert.Equal(t, "hold", conflicts[1].Kind)
		assert.Equal(t, int32(42), conflicts[1].ID)
	})

	t.Run("NoConflicts", func(t *testing.T) {
		bookingRepo := new(MockBookingRepo)
		holdRepo := new(MockHoldRepo)
		svc := service.NewAvailabilityService(bookingRepo, holdRepo)

		bookingRepo.On("FindConflicting", ctx, domain.ResourceTypeDriver, int32(4), "2026-09-12", "09:00", "13:00", (*int32)(nil)).
			Return([]domain.Booking{}, nil).Once()

		conflicts, err := svc.FindConflicts(ctx, domain.ResourceTypeDriver, 4, "2026-09-12", "09:00", "13:00", nil)
		assert.NoError(t, err)
		assert.Empty(t, conflicts)
	})
}
