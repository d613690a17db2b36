package service

import (
	"context"
	"sort"
	"time"

	"winetour-backend/internal/domain"
	"winetour-backend/internal/logger"
	"winetour-backend/internal/repository"

	"github.com/google/uuid"
)

type holdService struct {
	holdRepo    repository.HoldRepository
	vehicleRepo repository.VehicleRepository
	expiry      time.Duration
}

func NewHoldService(holdRepo repository.HoldRepository, vehicleRepo repository.VehicleRepository, expiry time.Duration) HoldService {
	return &holdService{holdRepo: holdRepo, vehicleRepo: vehicleRepo, expiry: expiry}
}

// CreateHoldBlock reserves one vehicle for [start, end) on date. The
// check-and-insert happens as a single serialized unit inside the repository;
// a plain check-then-insert here would race with concurrent writers.
func (s *holdService) CreateHoldBlock(ctx context.Context, resourceID int32, date, start, end, note string) (*domain.HoldBlock, error) {
	logger.EnterMethod("holdService.CreateHoldBlock", "resourceID", resourceID, "date", date, "start", start, "end", end)

	if err := validateDate(date); err != nil {
		return nil, err
	}
	if err := validateTimeRange(start, end); err != nil {
		return nil, err
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, resourceID)
	if err != nil {
		logger.ExitMethodWithError("holdService.CreateHoldBlock", err, "resourceID", resourceID)
		return nil, err
	}
	if !vehicle.Active {
		return nil, domain.NewValidationError("vehicle_id", "vehicle is not active")
	}

	now := time.Now()
	hold := &domain.HoldBlock{
		Token:      uuid.NewString(),
		ResourceID: resourceID,
		Date:       date,
		StartTime:  start,
		EndTime:    end,
		Status:     domain.HoldStatusActive,
		Note:       note,
		CreatedAt:  now,
		ExpiresAt:  now.Add(s.expiry),
	}
	if err := s.holdRepo.CreateActive(ctx, hold); err != nil {
		logger.ExitMethodWithError("holdService.CreateHoldBlock", err, "resourceID", resourceID, "date", date)
		return nil, err
	}

	logger.ExitMethod("holdService.CreateHoldBlock", "holdID", hold.ID, "expiresAt", hold.ExpiresAt)
	return hold, nil
}

func (s *holdService) ConvertHoldToBooking(ctx context.Context, holdID, bookingID int32) error {
	logger.EnterMethod("holdService.ConvertHoldToBooking", "holdID", holdID, "bookingID", bookingID)
	err := s.holdRepo.Convert(ctx, holdID, bookingID)
	if err != nil {
		logger.ExitMethodWithError("holdService.ConvertHoldToBooking", err, "holdID", holdID)
		return err
	}
	logger.ExitMethod("holdService.ConvertHoldToBooking", "holdID", holdID)
	return nil
}

func (s *holdService) ReleaseHoldBlock(ctx context.Context, holdID int32) error {
	logger.EnterMethod("holdService.ReleaseHoldBlock", "holdID", holdID)
	err := s.holdRepo.Release(ctx, holdID)
	if err != nil {
		logger.ExitMethodWithError("holdService.ReleaseHoldBlock", err, "holdID", holdID)
		return err
	}
	logger.ExitMethod("holdService.ReleaseHoldBlock", "holdID", holdID)
	return nil
}

// ReserveVehicles acquires holds sequentially in vehicle-id order, so two
// multi-vehicle requests cannot deadlock on the per-resource locks. Any
// failure rolls back every hold this attempt created.
func (s *holdService) ReserveVehicles(ctx context.Context, vehicleIDs []int32, date, start, end, note string) ([]domain.HoldBlock, error) {
	logger.EnterMethod("holdService.ReserveVehicles", "vehicles", len(vehicleIDs), "date", date)

	if len(vehicleIDs) == 0 {
		return nil, domain.NewValidationError("vehicle_ids", "at least one vehicle is required")
	}
	ids := make([]int32, len(vehicleIDs))
	copy(ids, vehicleIDs)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for i := 1; i < len(ids); i++ {
		if ids[i] == ids[i-1] {
			return nil, domain.NewValidationError("vehicle_ids", "duplicate vehicle id")
		}
	}

	var sg saga
	var holds []domain.HoldBlock
	for _, id := range ids {
		hold, err := s.CreateHoldBlock(ctx, id, date, start, end, note)
		if err != nil {
			sg.rollback(ctx)
			logger.ExitMethodWithError("holdService.ReserveVehicles", err, "vehicleID", id)
			return nil, err
		}
		holdID := hold.ID
		sg.push("release hold", func(ctx context.Context) error {
			return s.holdRepo.Release(ctx, holdID)
		})
		holds = append(holds, *hold)
	}

	logger.ExitMethod("holdService.ReserveVehicles", "holds", len(holds))
	return holds, nil
}
