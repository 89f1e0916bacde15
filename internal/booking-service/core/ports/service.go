package ports

import "rickshaw-booking/internal/booking-service/core/domain/dto"

type IBookingService interface {
	CreateBooking(req dto.BookingCreateRequest) (dto.BookingResponse, error)
	ListBookings(status string) ([]dto.BookingResponse, error)
	GetBooking(bookingId string) (dto.BookingResponse, error)
	AssignDriver(bookingId string, req dto.AssignDriverRequest) (dto.BookingResponse, error)
	UpdateBookingStatus(bookingId string, req dto.BookingStatusRequest) (dto.BookingResponse, error)
}

type IDriverService interface {
	CreateDriver(req dto.DriverCreateRequest) (dto.DriverResponse, error)
	ListDrivers(status string) ([]dto.DriverResponse, error)
	GetDriver(driverId string) (dto.DriverResponse, error)
	UpdateDriver(driverId string, req dto.DriverUpdateRequest) (dto.DriverResponse, error)
	UpdateDriverStatus(driverId string, req dto.DriverStatusRequest) (dto.DriverResponse, error)
	DeleteDriver(driverId string) error
}

type IAuthService interface {
	Login(req dto.LoginRequest) (dto.LoginResponse, error)
	SetPassword(driverId string, req dto.SetPasswordRequest) error
}
