package service

import (
	"time"

	"winetour-backend/internal/domain"
)

func validateDate(date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return domain.NewValidationError("date", "must be YYYY-MM-DD")
	}
	return nil
}

func validateTimeRange(start, end string) error {
	if _, err := time.Parse("15:04", start); err != nil {
		return domain.NewValidationError("start_time", "must be HH:MM")
	}
	if _, err := time.Parse("15:04", end); err != nil {
		return domain.NewValidationError("end_time", "must be HH:MM")
	}
	if start >= end {
		return domain.NewValidationError("end_time", "must be after start_time")
	}
	return nil
}
