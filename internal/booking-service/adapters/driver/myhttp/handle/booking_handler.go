package handle

import (
	"encoding/json"
	"errors"
	"net/http"

	"rickshaw-booking/internal/booking-service/core/domain/dto"
	"rickshaw-booking/internal/booking-service/core/ports"
	"rickshaw-booking/internal/mylogger"
)

type BookingHandler struct {
	bookingService ports.IBookingService
	log            mylogger.Logger
}

func NewBookingHandler(bs ports.IBookingService, log mylogger.Logger) *BookingHandler {
	return &BookingHandler{
		bookingService: bs,
		log:            log,
	}
}

func (bh *BookingHandler) CreateBooking() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := dto.BookingCreateRequest{}

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			JsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
			return
		}

		res, err := bh.bookingService.CreateBooking(req)
		if err != nil {
			domainError(w, err)
			return
		}

		jsonResponse(w, http.StatusCreated, "Booking created successfully", res)
	}
}

func (bh *BookingHandler) ListBookings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := r.URL.Query().Get("status")

		res, err := bh.bookingService.ListBookings(status)
		if err != nil {
			domainError(w, err)
			return
		}

		jsonResponse(w, http.StatusOK, "", res)
	}
}

func (bh *BookingHandler) GetBooking() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bookingId := r.PathValue("booking_id")

		res, err := bh.bookingService.GetBooking(bookingId)
		if err != nil {
			domainError(w, err)
			return
		}

		jsonResponse(w, http.StatusOK, "", res)
	}
}

func (bh *BookingHandler) AssignDriver() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bookingId := r.PathValue("booking_id")

		req := dto.AssignDriverRequest{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			JsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
			return
		}

		res, err := bh.bookingService.AssignDriver(bookingId, req)
		if err != nil {
			domainError(w, err)
			return
		}

		jsonResponse(w, http.StatusOK, "Driver assigned successfully", res)
	}
}

func (bh *BookingHandler) UpdateStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bookingId := r.PathValue("booking_id")

		req := dto.BookingStatusRequest{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			JsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
			return
		}

		res, err := bh.bookingService.UpdateBookingStatus(bookingId, req)
		if err != nil {
			domainError(w, err)
			return
		}

		jsonResponse(w, http.StatusOK, "Booking status updated successfully", res)
	}
}
