package websocketdto

import "rickshaw-booking/internal/booking-service/core/domain/dto"

// BookingEvent is the payload carried by every booking lifecycle event
type BookingEvent struct {
	Booking dto.BookingResponse `json:"booking"`
}
