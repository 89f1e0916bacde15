package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"rickshaw-booking/internal/booking-service/core/domain/dto"
	"rickshaw-booking/internal/booking-service/core/domain/model"
	"rickshaw-booking/internal/booking-service/core/myerrors"
	"rickshaw-booking/internal/booking-service/core/ports"
)

type DriverRepo struct {
	db *DB
}

func NewDriverRepo(db *DB) ports.IDriverRepo {
	return &DriverRepo{
		db: db,
	}
}

const driverColumns = `
	driver_id,
	name,
	mobile_number,
	license_number,
	vehicle_number,
	password,
	status,
	created_at,
	updated_at`

func (dr *DriverRepo) Create(ctx context.Context, d model.Driver) (model.Driver, error) {
	q := `INSERT INTO drivers (
		driver_id, name, mobile_number, license_number, vehicle_number, status
	) VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING created_at, updated_at`

	d.DriverId = uuid.NewString()
	row := dr.db.pool.QueryRow(ctx, q,
		d.DriverId,
		d.Name,
		d.MobileNumber,
		d.LicenseNumber,
		d.VehicleNumber,
		d.Status,
	)
	if err := row.Scan(&d.CreatedAt, &d.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return model.Driver{}, myerrors.ErrDuplicateDriver
		}
		return model.Driver{}, fmt.Errorf("failed to insert driver: %w", err)
	}
	return d, nil
}

func (dr *DriverRepo) GetById(ctx context.Context, driverId string) (model.Driver, error) {
	q := `SELECT ` + driverColumns + ` FROM drivers WHERE driver_id = $1`
	return dr.getOne(ctx, q, driverId)
}

func (dr *DriverRepo) GetByMobile(ctx context.Context, mobile string) (model.Driver, error) {
	q := `SELECT ` + driverColumns + ` FROM drivers WHERE mobile_number = $1`
	return dr.getOne(ctx, q, mobile)
}

func (dr *DriverRepo) getOne(ctx context.Context, q, arg string) (model.Driver, error) {
	var d model.Driver
	err := dr.db.pool.QueryRow(ctx, q, arg).Scan(
		&d.DriverId,
		&d.Name,
		&d.MobileNumber,
		&d.LicenseNumber,
		&d.VehicleNumber,
		&d.PasswordHash,
		&d.Status,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Driver{}, myerrors.ErrDriverNotFound
		}
		return model.Driver{}, err
	}
	return d, nil
}

func (dr *DriverRepo) List(ctx context.Context, status model.DriverStatus) ([]model.Driver, error) {
	q := `SELECT ` + driverColumns + `
	FROM drivers
	WHERE ($1 = '' OR status = $1)
	ORDER BY created_at DESC`

	rows, err := dr.db.pool.Query(ctx, q, string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drivers []model.Driver
	for rows.Next() {
		var d model.Driver
		if err := rows.Scan(
			&d.DriverId,
			&d.Name,
			&d.MobileNumber,
			&d.LicenseNumber,
			&d.VehicleNumber,
			&d.PasswordHash,
			&d.Status,
			&d.CreatedAt,
			&d.UpdatedAt,
		); err != nil {
			return nil, err
		}
		drivers = append(drivers, d)
	}
	return drivers, rows.Err()
}

func (dr *DriverRepo) Update(ctx context.Context, driverId string, fields dto.DriverUpdateRequest) (model.Driver, error) {
	q := `UPDATE drivers SET
		name = COALESCE($2, name),
		mobile_number = COALESCE($3, mobile_number),
		license_number = COALESCE($4, license_number),
		vehicle_number = COALESCE($5, vehicle_number),
		updated_at = NOW()
	WHERE driver_id = $1
	RETURNING ` + driverColumns

	var d model.Driver
	err := dr.db.pool.QueryRow(ctx, q, driverId,
		fields.Name,
		fields.MobileNumber,
		fields.LicenseNumber,
		fields.VehicleNumber,
	).Scan(
		&d.DriverId,
		&d.Name,
		&d.MobileNumber,
		&d.LicenseNumber,
		&d.VehicleNumber,
		&d.PasswordHash,
		&d.Status,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Driver{}, myerrors.ErrDriverNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return model.Driver{}, myerrors.ErrDuplicateDriver
		}
		return model.Driver{}, err
	}
	return d, nil
}

func (dr *DriverRepo) SetStatus(ctx context.Context, driverId string, status model.DriverStatus) error {
	tag, err := dr.db.pool.Exec(ctx,
		`UPDATE drivers SET status = $1, updated_at = NOW() WHERE driver_id = $2`,
		string(status), driverId)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return myerrors.ErrDriverNotFound
	}
	return nil
}

// Delete refuses to remove a driver that a non-terminal booking still
// references, rather than leaving a dangling reference behind.
func (dr *DriverRepo) Delete(ctx context.Context, driverId string) error {
	tx, err := dr.db.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) // Safe rollback if not committed

	var referenced bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM bookings WHERE driver_id = $1 AND status IN ('pending', 'assigned'))`,
		driverId).Scan(&referenced)
	if err != nil {
		return err
	}
	if referenced {
		return myerrors.ErrDriverReferenced
	}

	tag, err := tx.Exec(ctx, `DELETE FROM drivers WHERE driver_id = $1`, driverId)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return myerrors.ErrDriverNotFound
	}

	return tx.Commit(ctx)
}

func (dr *DriverRepo) SetPassword(ctx context.Context, driverId string, hash []byte) error {
	tag, err := dr.db.pool.Exec(ctx,
		`UPDATE drivers SET password = $1, updated_at = NOW() WHERE driver_id = $2`,
		hash, driverId)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return myerrors.ErrDriverNotFound
	}
	return nil
}
