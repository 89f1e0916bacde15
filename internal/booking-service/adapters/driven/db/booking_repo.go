package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"rickshaw-booking/internal/booking-service/core/domain/model"
	"rickshaw-booking/internal/booking-service/core/myerrors"
	"rickshaw-booking/internal/booking-service/core/ports"
)

type BookingRepo struct {
	db *DB
}

func NewBookingRepo(db *DB) ports.IBookingRepo {
	return &BookingRepo{
		db: db,
	}
}

const bookingColumns = `
	b.booking_id,
	b.name,
	b.mobile_number,
	b.pickup_location,
	b.pickup_date,
	b.pickup_time,
	b.status,
	b.driver_id,
	b.created_at,
	b.updated_at,
	d.name,
	d.mobile_number,
	d.vehicle_number`

func (br *BookingRepo) Create(ctx context.Context, b model.Booking) (model.Booking, error) {
	q := `INSERT INTO bookings (
		booking_id, name, mobile_number, pickup_location, pickup_date, pickup_time, status
	) VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING created_at, updated_at`

	b.BookingId = uuid.NewString()
	row := br.db.pool.QueryRow(ctx, q,
		b.BookingId,
		b.Name,
		b.MobileNumber,
		b.PickupLocation,
		b.PickupDate,
		b.PickupTime,
		b.Status,
	)
	if err := row.Scan(&b.CreatedAt, &b.UpdatedAt); err != nil {
		return model.Booking{}, fmt.Errorf("failed to insert booking: %w", err)
	}
	return b, nil
}

func (br *BookingRepo) GetById(ctx context.Context, bookingId string) (model.Booking, error) {
	q := `SELECT ` + bookingColumns + `
	FROM bookings b
	LEFT JOIN drivers d ON d.driver_id = b.driver_id
	WHERE b.booking_id = $1`

	row := br.db.pool.QueryRow(ctx, q, bookingId)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Booking{}, myerrors.ErrBookingNotFound
		}
		return model.Booking{}, err
	}
	return b, nil
}

func (br *BookingRepo) List(ctx context.Context, status model.BookingStatus) ([]model.Booking, error) {
	q := `SELECT ` + bookingColumns + `
	FROM bookings b
	LEFT JOIN drivers d ON d.driver_id = b.driver_id
	WHERE ($1 = '' OR b.status = $1)
	ORDER BY b.created_at DESC`

	rows, err := br.db.pool.Query(ctx, q, string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []model.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// AssignDriver commits the paired mutation: the booking takes the driver
// and the driver goes busy. Both updates are conditional, so a booking
// that already left pending or a driver that is no longer available
// aborts the transaction. Row locks are taken booking first, then
// driver, the same order UpdateStatus uses.
func (br *BookingRepo) AssignDriver(ctx context.Context, bookingId, driverId string) error {
	tx, err := br.db.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) // Safe rollback if not committed

	tag, err := tx.Exec(ctx,
		`UPDATE bookings SET driver_id = $1, status = 'assigned', updated_at = NOW() WHERE booking_id = $2 AND status = 'pending'`,
		driverId, bookingId)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM bookings WHERE booking_id = $1)`, bookingId).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return myerrors.ErrBookingNotFound
		}
		return myerrors.ErrInvalidTransition
	}

	tag, err = tx.Exec(ctx,
		`UPDATE drivers SET status = 'busy', updated_at = NOW() WHERE driver_id = $1 AND status = 'available'`,
		driverId)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM drivers WHERE driver_id = $1)`, driverId).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return myerrors.ErrDriverNotFound
		}
		return myerrors.ErrDriverUnavailable
	}

	return tx.Commit(ctx)
}

// UpdateStatus applies the from->to transition conditionally. When
// freeDriverId is set the driver is released in the same transaction.
func (br *BookingRepo) UpdateStatus(ctx context.Context, bookingId string, from, to model.BookingStatus, freeDriverId string) error {
	tx, err := br.db.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) // Safe rollback if not committed

	// a cancelled booking holds no driver reference
	q := `UPDATE bookings SET status = $1, updated_at = NOW() WHERE booking_id = $2 AND status = $3`
	if to == model.StatusCancelled {
		q = `UPDATE bookings SET status = $1, driver_id = NULL, updated_at = NOW() WHERE booking_id = $2 AND status = $3`
	}

	tag, err := tx.Exec(ctx, q, string(to), bookingId, string(from))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM bookings WHERE booking_id = $1)`, bookingId).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return myerrors.ErrBookingNotFound
		}
		return myerrors.ErrInvalidTransition
	}

	if freeDriverId != "" {
		if _, err := tx.Exec(ctx,
			`UPDATE drivers SET status = 'available', updated_at = NOW() WHERE driver_id = $1 AND status = 'busy'`,
			freeDriverId); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (model.Booking, error) {
	var (
		b             model.Booking
		driverId      sql.NullString
		driverName    sql.NullString
		driverMobile  sql.NullString
		driverVehicle sql.NullString
	)

	err := row.Scan(
		&b.BookingId,
		&b.Name,
		&b.MobileNumber,
		&b.PickupLocation,
		&b.PickupDate,
		&b.PickupTime,
		&b.Status,
		&driverId,
		&b.CreatedAt,
		&b.UpdatedAt,
		&driverName,
		&driverMobile,
		&driverVehicle,
	)
	if err != nil {
		return model.Booking{}, err
	}

	if driverId.Valid {
		b.DriverId = driverId.String
		b.Driver = &model.Driver{
			DriverId:      driverId.String,
			Name:          driverName.String,
			MobileNumber:  driverMobile.String,
			VehicleNumber: driverVehicle.String,
		}
	}
	return b, nil
}
