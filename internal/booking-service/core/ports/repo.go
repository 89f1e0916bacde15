package ports

import (
	"context"

	"rickshaw-booking/internal/booking-service/core/domain/dto"
	"rickshaw-booking/internal/booking-service/core/domain/model"
)

type IBookingRepo interface {
	Create(ctx context.Context, b model.Booking) (model.Booking, error)
	GetById(ctx context.Context, bookingId string) (model.Booking, error)
	// List returns bookings newest-first, optionally filtered by status
	List(ctx context.Context, status model.BookingStatus) ([]model.Booking, error)
	// AssignDriver binds the driver and flips both records in one
	// transaction, re-checking booking=pending and driver=available at
	// commit time.
	AssignDriver(ctx context.Context, bookingId, driverId string) error
	// UpdateStatus applies from->to conditionally; when freeDriverId is
	// set the driver is released in the same transaction.
	UpdateStatus(ctx context.Context, bookingId string, from, to model.BookingStatus, freeDriverId string) error
}

type IDriverRepo interface {
	Create(ctx context.Context, d model.Driver) (model.Driver, error)
	GetById(ctx context.Context, driverId string) (model.Driver, error)
	GetByMobile(ctx context.Context, mobile string) (model.Driver, error)
	List(ctx context.Context, status model.DriverStatus) ([]model.Driver, error)
	Update(ctx context.Context, driverId string, fields dto.DriverUpdateRequest) (model.Driver, error)
	SetStatus(ctx context.Context, driverId string, status model.DriverStatus) error
	Delete(ctx context.Context, driverId string) error
	SetPassword(ctx context.Context, driverId string, hash []byte) error
}
