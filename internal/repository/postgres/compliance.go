package postgres

import (
	"context"
	"database/sql"

	"winetour-backend/internal/domain"
	"winetour-backend/internal/repository"
)

type complianceRepository struct {
	db *sql.DB
}

func NewComplianceRepository(db *sql.DB) repository.ComplianceRepository {
	return &complianceRepository{db: db}
}

func (r *complianceRepository) ListDriverCredentials(ctx context.Context, driverID int32) ([]domain.DriverCredential, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, driver_id, type, to_char(valid_from, 'YYYY-MM-DD'), to_char(valid_to, 'YYYY-MM-DD')
		 FROM driver_credentials WHERE driver_id = $1 ORDER BY type, valid_to DESC`, driverID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var creds []domain.DriverCredential
	for rows.Next() {
		var c domain.DriverCredential
		if err := rows.Scan(&c.ID, &c.DriverID, &c.Type, &c.ValidFrom, &c.ValidTo); err != nil {
			return nil, err
		}
		creds = append(creds, c)
	}
	return creds, rows.Err()
}

func (r *complianceRepository) ListVehicleDocuments(ctx context.Context, vehicleID int32) ([]domain.VehicleDocument, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, vehicle_id, type, to_char(expires_on, 'YYYY-MM-DD')
		 FROM vehicle_documents WHERE vehicle_id = $1 ORDER BY type, expires_on DESC`, vehicleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []domain.VehicleDocument
	for rows.Next() {
		var d domain.VehicleDocument
		if err := rows.Scan(&d.ID, &d.VehicleID, &d.Type, &d.ExpiresOn); err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// DriverServiceMinutes sums scheduled minutes from bookings that still count
// against hours-of-service. Cancelled bookings are excluded; completed ones
// still consumed driving time and are counted.
func (r *complianceRepository) DriverServiceMinutes(ctx context.Context, driverID int32, date string) (int32, int32, error) {
	const minutesExpr = `COALESCE(SUM(EXTRACT(EPOCH FROM (end_time::time - start_time::time)) / 60), 0)::int`

	var dayMinutes int32
	err := r.db.QueryRowContext(ctx,
		`SELECT `+minutesExpr+` FROM bookings
		 WHERE driver_id = $1 AND tour_date = $2 AND status <> 'CANCELLED'`,
		driverID, date).Scan(&dayMinutes)
	if err != nil {
		return 0, 0, err
	}

	var weekMinutes int32
	err = r.db.QueryRowContext(ctx,
		`SELECT `+minutesExpr+` FROM bookings
		 WHERE driver_id = $1 AND status <> 'CANCELLED'
		   AND date_trunc('week', tour_date) = date_trunc('week', $2::date)`,
		driverID, date).Scan(&weekMinutes)
	if err != nil {
		return 0, 0, err
	}
	return dayMinutes, weekMinutes, nil
}

func (r *complianceRepository) ListOpenSafetyFlags(ctx context.Context, driverID, vehicleID int32) ([]domain.SafetyFlag, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, driver_id, vehicle_id, description, opened_on
		 FROM safety_flags
		 WHERE resolved_on IS NULL AND (driver_id = $1 OR vehicle_id = $2)
		 ORDER BY opened_on`, driverID, vehicleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var flags []domain.SafetyFlag
	for rows.Next() {
		var f domain.SafetyFlag
		if err := rows.Scan(&f.ID, &f.DriverID, &f.VehicleID, &f.Description, &f.OpenedOn); err != nil {
			return nil, err
		}
		flags = append(flags, f)
	}
	return flags, rows.Err()
}
