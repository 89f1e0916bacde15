package services

import (
	"context"
	"encoding/json"
	"fmt"

	"rickshaw-booking/internal/booking-service/core/domain/dto"
	"rickshaw-booking/internal/booking-service/core/domain/model"
	websocketdto "rickshaw-booking/internal/booking-service/core/domain/websocket_dto"
	"rickshaw-booking/internal/booking-service/core/myerrors"
	"rickshaw-booking/internal/booking-service/core/ports"
	"rickshaw-booking/internal/mylogger"
)

// BookingService owns the booking lifecycle and the driver assignment
// rules. Both registries are only ever mutated together through here, so
// a driver can never stay busy after their booking reaches a terminal
// state and two bookings can never hold the same driver.
type BookingService struct {
	ctx         context.Context
	mylog       mylogger.Logger
	bookingRepo ports.IBookingRepo
	driverRepo  ports.IDriverRepo
	dispatcher  ports.IDispatcher
	sms         ports.ISmsSender
}

func NewBookingService(ctx context.Context,
	log mylogger.Logger,
	bookingRepo ports.IBookingRepo,
	driverRepo ports.IDriverRepo,
	dispatcher ports.IDispatcher,
	sms ports.ISmsSender,
) ports.IBookingService {
	return &BookingService{
		ctx:         ctx,
		mylog:       log,
		bookingRepo: bookingRepo,
		driverRepo:  driverRepo,
		dispatcher:  dispatcher,
		sms:         sms,
	}
}

func (bs *BookingService) CreateBooking(req dto.BookingCreateRequest) (dto.BookingResponse, error) {
	log := bs.mylog.Action("CreateBooking")

	if err := validateBookingRequest(req); err != nil {
		return dto.BookingResponse{}, err
	}

	ctx, cancel := context.WithTimeout(bs.ctx, RepoTimeout)
	defer cancel()

	booking, err := bs.bookingRepo.Create(ctx, model.Booking{
		Name:           req.Name,
		MobileNumber:   req.MobileNumber,
		PickupLocation: req.PickupLocation,
		PickupDate:     req.PickupDate,
		PickupTime:     req.PickupTime,
		Status:         model.StatusPending,
	})
	if err != nil {
		log.Error("cannot create booking", err)
		return dto.BookingResponse{}, err
	}

	log.Info("booking created", "booking_id", booking.BookingId, "mobile_number", booking.MobileNumber)

	res := toBookingResponse(booking)
	bs.emit(websocketdto.NewBooking, res)
	return res, nil
}

func (bs *BookingService) ListBookings(status string) ([]dto.BookingResponse, error) {
	filter := model.BookingStatus(status)
	if status != "" && !filter.IsValid() {
		return nil, fmt.Errorf("%w: unknown booking status %q", myerrors.ErrValidation, status)
	}

	ctx, cancel := context.WithTimeout(bs.ctx, RepoTimeout)
	defer cancel()

	bookings, err := bs.bookingRepo.List(ctx, filter)
	if err != nil {
		bs.mylog.Action("ListBookings").Error("cannot list bookings", err)
		return nil, err
	}

	res := make([]dto.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		res = append(res, toBookingResponse(b))
	}
	return res, nil
}

func (bs *BookingService) GetBooking(bookingId string) (dto.BookingResponse, error) {
	ctx, cancel := context.WithTimeout(bs.ctx, RepoTimeout)
	defer cancel()

	booking, err := bs.bookingRepo.GetById(ctx, bookingId)
	if err != nil {
		return dto.BookingResponse{}, err
	}
	return toBookingResponse(booking), nil
}

// AssignDriver binds an available driver to a pending booking. The
// availability check runs twice: here for a distinct error, and again
// inside the repository transaction at commit time, so two simultaneous
// assignments of one driver cannot both win.
func (bs *BookingService) AssignDriver(bookingId string, req dto.AssignDriverRequest) (dto.BookingResponse, error) {
	log := bs.mylog.Action("AssignDriver")

	if err := validateRequired("driver_id", req.DriverId); err != nil {
		return dto.BookingResponse{}, err
	}

	ctx, cancel := context.WithTimeout(bs.ctx, RepoTimeout)
	defer cancel()

	booking, err := bs.bookingRepo.GetById(ctx, bookingId)
	if err != nil {
		return dto.BookingResponse{}, err
	}
	if booking.Status != model.StatusPending {
		return dto.BookingResponse{}, myerrors.ErrInvalidTransition
	}

	driver, err := bs.driverRepo.GetById(ctx, req.DriverId)
	if err != nil {
		return dto.BookingResponse{}, err
	}
	if driver.Status != model.DriverAvailable {
		return dto.BookingResponse{}, myerrors.ErrDriverUnavailable
	}

	if err := bs.bookingRepo.AssignDriver(ctx, bookingId, req.DriverId); err != nil {
		log.Error("assignment did not commit", err, "booking_id", bookingId, "driver_id", req.DriverId)
		return dto.BookingResponse{}, err
	}

	updated, err := bs.bookingRepo.GetById(ctx, bookingId)
	if err != nil {
		return dto.BookingResponse{}, err
	}

	log.Info("driver assigned", "booking_id", bookingId, "driver_id", req.DriverId)

	res := toBookingResponse(updated)
	bs.emit(websocketdto.DriverAssigned, res)
	bs.notifyRequester(booking.MobileNumber, driver)
	return res, nil
}

func (bs *BookingService) UpdateBookingStatus(bookingId string, req dto.BookingStatusRequest) (dto.BookingResponse, error) {
	log := bs.mylog.Action("UpdateBookingStatus")

	next := model.BookingStatus(req.Status)
	if !next.IsValid() {
		return dto.BookingResponse{}, fmt.Errorf("%w: unknown booking status %q", myerrors.ErrValidation, req.Status)
	}

	ctx, cancel := context.WithTimeout(bs.ctx, RepoTimeout)
	defer cancel()

	booking, err := bs.bookingRepo.GetById(ctx, bookingId)
	if err != nil {
		return dto.BookingResponse{}, err
	}
	if !booking.Status.CanTransitionTo(next) {
		return dto.BookingResponse{}, myerrors.ErrInvalidTransition
	}

	// leaving assigned for a terminal state releases the driver in the
	// same transaction
	freeDriverId := ""
	if booking.Status == model.StatusAssigned && next.IsTerminal() && booking.DriverId != "" {
		freeDriverId = booking.DriverId
	}

	if err := bs.bookingRepo.UpdateStatus(ctx, bookingId, booking.Status, next, freeDriverId); err != nil {
		log.Error("status update did not commit", err, "booking_id", bookingId, "status", req.Status)
		return dto.BookingResponse{}, err
	}

	updated, err := bs.bookingRepo.GetById(ctx, bookingId)
	if err != nil {
		return dto.BookingResponse{}, err
	}

	log.Info("booking status updated", "booking_id", bookingId, "status", req.Status, "freed_driver_id", freeDriverId)

	res := toBookingResponse(updated)
	bs.emit(websocketdto.StatusUpdated, res)
	return res, nil
}

// emit fans the event out to connected dashboards. Fire-and-forget.
func (bs *BookingService) emit(eventType string, booking dto.BookingResponse) {
	if bs.dispatcher == nil {
		return
	}
	payload, err := json.Marshal(websocketdto.BookingEvent{Booking: booking})
	if err != nil {
		bs.mylog.Action("emit").Error("cannot marshal event payload", err, "type", eventType)
		return
	}
	bs.dispatcher.Broadcast(websocketdto.Event{Type: eventType, Data: payload})
}

// notifyRequester attempts one SMS to the booking requester. Delivery
// failure is logged and swallowed, it never fails the assignment.
func (bs *BookingService) notifyRequester(mobile string, driver model.Driver) {
	if bs.sms == nil {
		return
	}
	log := bs.mylog.Action("notifyRequester")

	ctx, cancel := context.WithTimeout(bs.ctx, SmsTimeout)
	defer cancel()

	body := fmt.Sprintf("Your E-Rickshaw has been assigned. Driver: %s, Contact: %s", driver.Name, driver.MobileNumber)
	if err := bs.sms.Send(ctx, mobile, body); err != nil {
		log.Warn("sms delivery failed", "mobile_number", mobile, "error", err.Error())
		return
	}
	log.Info("sms sent", "mobile_number", mobile)
}

func validateBookingRequest(req dto.BookingCreateRequest) error {
	if err := validateName(req.Name); err != nil {
		return err
	}
	if err := validateMobile(req.MobileNumber); err != nil {
		return err
	}
	if err := validateLocation(req.PickupLocation); err != nil {
		return err
	}
	if err := validateRequired("pickup_date", req.PickupDate); err != nil {
		return err
	}
	if err := validateRequired("pickup_time", req.PickupTime); err != nil {
		return err
	}
	return nil
}
