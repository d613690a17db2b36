package postgres

import (
	"context"
	"database/sql"
	"errors"

	"winetour-backend/internal/domain"
	"winetour-backend/internal/repository"
)

type vehicleRepository struct {
	db *sql.DB
}

func NewVehicleRepository(db *sql.DB) repository.VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) GetByID(ctx context.Context, id int32) (*domain.Vehicle, error) {
	v := &domain.Vehicle{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, plate, capacity, active FROM vehicles WHERE id = $1`, id).Scan(
		&v.ID, &v.Name, &v.Plate, &v.Capacity, &v.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("vehicle", id)
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

type driverRepository struct {
	db *sql.DB
}

func NewDriverRepository(db *sql.DB) repository.DriverRepository {
	return &driverRepository{db: db}
}

func (r *driverRepository) GetByID(ctx context.Context, id int32) (*domain.Driver, error) {
	d := &domain.Driver{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, email, COALESCE(phone, ''), active FROM drivers WHERE id = $1`, id).Scan(
		&d.ID, &d.Name, &d.Email, &d.Phone, &d.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("driver", id)
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

type customerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) repository.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, c *domain.Customer) error {
	return r.db.QueryRowContext(ctx,
		`INSERT INTO customers (name, email, phone) VALUES ($1, $2, $3) RETURNING id`,
		c.Name, c.Email, c.Phone).Scan(&c.ID)
}

func (r *customerRepository) GetByID(ctx context.Context, id int32) (*domain.Customer, error) {
	c := &domain.Customer{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, email, COALESCE(phone, '') FROM customers WHERE id = $1`, id).Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("customer", id)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *customerRepository) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	c := &domain.Customer{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, email, COALESCE(phone, '') FROM customers WHERE email = $1`, email).Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}
