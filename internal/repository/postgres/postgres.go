package postgres

import (
	"database/sql"
	"winetour-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.BookingRepository
	repository.HoldRepository
	repository.VehicleRepository
	repository.DriverRepository
	repository.CustomerRepository
	repository.PaymentRepository
	repository.TimelineRepository
	repository.ComplianceRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                   db,
		BookingRepository:    NewBookingRepository(db),
		HoldRepository:       NewHoldRepository(db),
		VehicleRepository:    NewVehicleRepository(db),
		DriverRepository:     NewDriverRepository(db),
		CustomerRepository:   NewCustomerRepository(db),
		PaymentRepository:    NewPaymentRepository(db),
		TimelineRepository:   NewTimelineRepository(db),
		ComplianceRepository: NewComplianceRepository(db),
	}
}
