package service_test

import (
	"context"
	"testing"
	"time"

	"winetour-backend/internal/domain"
	"winetour-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestHoldService_CreateHoldBlock(t *testing.T) {
	mockHoldRepo := new(MockHoldRepo)
	mockVehicleRepo := new(MockVehicleRepo)
	svc := service.NewHoldService(mockHoldRepo, mockVehicleRepo, 15*time.Minute)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockVehicleRepo.On("GetByID", ctx, int32(3)).Return(&domain.Vehicle{ID: 3, Name: "Sprinter", Active: true}, nil).Once()
		mockHoldRepo.On("CreateActive", ctx, mock.MatchedBy(func(h *domain.HoldBlock) bool {
			return h.ResourceID == 3 && h.Date == "2026-09-12" && h.StartTime == "09:00" && h.EndTime == "13:00" &&
				h.Status == domain.HoldStatusActive && h.Token != "" && h.ExpiresAt.After(h.CreatedAt)
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.HoldBlock).ID = 42
		}).Return(nil).Once()

		hold, err := svc.CreateHoldBlock(ctx, 3, "2026-09-12", "09:00", "13:00", "site visit")
		assert.NoError(t, err)
		assert.Equal(t, int32(42), hold.ID)
		assert.Equal(t, domain.HoldStatusActive, hold.Status)
	})

	t.Run("InactiveVehicle", func(t *testing.T) {
		mockVehicleRepo.On("GetByID", ctx, int32(4)).Return(&domain.Vehicle{ID: 4, Active: false}, nil).Once()

		_, err := svc.CreateHoldBlock(ctx, 4, "2026-09-12", "09:00", "13:00", "")
		var vErr *domain.ValidationError
		assert.ErrorAs(t, err, &vErr)
	})

	t.Run("InvalidTimeRange", func(t *testing.T) {
		_, err := svc.CreateHoldBlock(ctx, 3, "2026-09-12", "13:00", "09:00", "")
		var vErr *domain.ValidationError
		assert.ErrorAs(t, err, &vErr)
	})

	t.Run("RepoConflict", func(t *testing.T) {
		mockVehicleRepo.On("GetByID", ctx, int32(3)).Return(&domain.Vehicle{ID: 3, Active: true}, nil).Once()
		mockHoldRepo.On("CreateActive", ctx, mock.Anything).
			Return(domain.NewConflictError("vehicle 3 already booked on 2026-09-12")).Once()

		_, err := svc.CreateHoldBlock(ctx, 3, "2026-09-12", "09:00", "13:00", "")
		var cErr *domain.ConflictError
		assert.ErrorAs(t, err, &cErr)
	})

	mockHoldRepo.AssertExpectations(t)
	mockVehicleRepo.AssertExpectations(t)
}

func TestHoldService_ReserveVehicles(t *testing.T) {
	ctx := context.Background()

	t.Run("AcquiresInSortedOrder", func(t *testing.T) {
		mockHoldRepo := new(MockHoldRepo)
		mockVehicleRepo := new(MockVehicleRepo)
		svc := service.NewHoldService(mockHoldRepo, mockVehicleRepo, 15*time.Minute)

		var order []int32
		for _, id := range []int32{2, 5, 9} {
			vehicleID := id
			mockVehicleRepo.On("GetByID", ctx, vehicleID).Return(&domain.Vehicle{ID: vehicleID, Active: true}, nil).Once()
			mockHoldRepo.On("CreateActive", ctx, mock.MatchedBy(func(h *domain.HoldBlock) bool {
				return h.ResourceID == vehicleID
			})).Run(func(args mock.Arguments) {
				h := args.Get(1).(*domain.HoldBlock)
				h.ID = h.ResourceID * 10
				order = append(order, h.ResourceID)
			}).Return(nil).Once()
		}

		holds, err := svc.ReserveVehicles(ctx, []int32{9, 2, 5}, "2026-09-12", "09:00", "13:00", "group tour")
		assert.NoError(t, err)
		assert.Len(t, holds, 3)
		assert.Equal(t, []int32{2, 5, 9}, order)

		mockHoldRepo.AssertExpectations(t)
		mockVehicleRepo.AssertExpectations(t)
	})

	t.Run("RollsBackOnPartialFailure", func(t *testing.T) {
		mockHoldRepo := new(MockHoldRepo)
		mockVehicleRepo := new(MockVehicleRepo)
		svc := service.NewHoldService(mockHoldRepo, mockVehicleRepo, 15*time.Minute)

		mockVehicleRepo.On("GetByID", ctx, int32(2)).Return(&domain.Vehicle{ID: 2, Active: true}, nil).Once()
		mockHoldRepo.On("CreateActive", ctx, mock.MatchedBy(func(h *domain.HoldBlock) bool {
			return h.ResourceID == 2
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.HoldBlock).ID = 20
		}).Return(nil).Once()

		mockVehicleRepo.On("GetByID", ctx, int32(5)).Return(&domain.Vehicle{ID: 5, Active: true}, nil).Once()
		mockHoldRepo.On("CreateActive", ctx, mock.MatchedBy(func(h *domain.HoldBlock) bool {
			return h.ResourceID == 5
		})).Return(domain.NewConflictError("vehicle 5 already held")).Once()

		// The hold acquired before the failure must be released.
		mockHoldRepo.On("Release", ctx, int32(20)).Return(nil).Once()

		_, err := svc.ReserveVehicles(ctx, []int32{5, 2}, "2026-09-12", "09:00", "13:00", "")
		var cErr *domain.ConflictError
		assert.ErrorAs(t, err, &cErr)

		mockHoldRepo.AssertExpectations(t)
		mockVehicleRepo.AssertExpectations(t)
	})

	t.Run("RejectsDuplicates", func(t *testing.T) {
		mockHoldRepo := new(MockHoldRepo)
		mockVehicleRepo := new(MockVehicleRepo)
		svc := service.NewHoldService(mockHoldRepo, mockVehicleRepo, 15*time.Minute)

		_, err := svc.ReserveVehicles(ctx, []int32{3, 3}, "2026-09-12", "09:00", "13:00", "")
		var vErr *domain.ValidationError
		assert.ErrorAs(t, err, &vErr)
	})

	t.Run("RejectsEmptyList", func(t *testing.T) {
		mockHoldRepo := new(MockHoldRepo)
		mockVehicleRepo := new(MockVehicleRepo)
		svc := service.NewHoldService(mockHoldRepo, mockVehicleRepo, 15*time.Minute)

		_, err := svc.ReserveVehicles(ctx, nil, "2026-09-12", "09:00", "13:00", "")
		var vErr *domain.ValidationError
		assert.ErrorAs(t, err, &vErr)
	})
}

func TestHoldService_ReleaseIsDelegated(t *testing.T) {
	mockHoldRepo := new(MockHoldRepo)
	mockVehicleRepo := new(MockVehicleRepo)
	svc := service.NewHoldService(mockHoldRepo, mockVehicleRepo, 15*time.Minute)
	ctx := context.Background()

	mockHoldRepo.On("Release", ctx, int32(7)).Return(nil).Once()
	assert.NoError(t, svc.ReleaseHoldBlock(ctx, 7))
	mockHoldRepo.AssertExpectations(t)
}
