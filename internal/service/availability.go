package service

import (
	"context"

	"winetour-backend/internal/domain"
	"winetour-backend/internal/repository"
)

type availabilityService struct {
	bookingRepo repository.BookingRepository
	holdRepo    repository.HoldRepository
}

func NewAvailabilityService(bookingRepo repository.BookingRepository, holdRepo repository.HoldRepository) AvailabilityService {
	return &availabilityService{bookingRepo: bookingRepo, holdRepo: holdRepo}
}

// HasConflict reports whether any non-cancelled, non-completed booking (or,
// for vehicles, any active hold) overlaps [start, end) on the given date.
func (s *availabilityService) HasConflict(ctx context.Context, resourceType domain.ResourceType, resourceID int32, date, start, end string, excludeBookingID *int32) (bool, error) {
	bookings, err := s.bookingRepo.FindConflicting(ctx, resourceType, resourceID, date, start, end, excludeBookingID)
	if err != nil {
		return false, err
	}
	if len(bookings) > 0 {
		return true, nil
	}
	if resourceType == domain.ResourceTypeVehicle {
		holds, err := s.holdRepo.FindActiveOverlapping(ctx, resourceID, date, start, end)
		if err != nil {
			return false, err
		}
		if len(holds) > 0 {
			return true, nil
		}
	}
	return false, nil
}

// FindConflicts returns the conflicting rows themselves, for callers that
// need detail (availability display, conflict messages).
func (s *availabilityService) FindConflicts(ctx context.Context, resourceType domain.ResourceType, resourceID int32, date, start, end string, excludeBookingID *int32) ([]domain.Conflict, error) {
	var conflicts []domain.Conflict

	bookings, err := s.bookingRepo.FindConflicting(ctx, resourceType, resourceID, date, start, end, excludeBookingID)
	if err != nil {
		return nil, err
	}
	for _, b := range bookings {
		conflicts = append(conflicts, domain.Conflict{
			Kind:      "booking",
			ID:        b.ID,
			Date:      b.TourDate,
			StartTime: b.StartTime,
			EndTime:   b.EndTime,
		})
	}

	if resourceType == domain.ResourceTypeVehicle {
		holds, err := s.holdRepo.FindActiveOverlapping(ctx, resourceID, date, start, end)
		if err != nil {
			return nil, err
		}
		for _, h := range holds {
			conflicts = append(conflicts, domain.Conflict{
				Kind:      "hold",
				ID:        h.ID,
				Date:      h.Date,
				StartTime: h.StartTime,
				EndTime:   h.EndTime,
			})
		}
	}
	return conflicts, nil
}
