package model

import "time"

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusAssigned  BookingStatus = "assigned"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// bookingTransitions is the full lifecycle of a booking. Completed and
// cancelled are terminal.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:  {StatusAssigned, StatusCancelled},
	StatusAssigned: {StatusCompleted, StatusCancelled},
}

func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusAssigned, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo reports whether the status change is allowed by the
// booking lifecycle.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Booking struct {
	BookingId      string
	Name           string
	MobileNumber   string
	PickupLocation string
	PickupDate     string
	PickupTime     string
	Status         BookingStatus
	DriverId       string
	// Driver is filled by the repository join when a driver is assigned
	Driver    *Driver
	CreatedAt time.Time
	UpdatedAt time.Time
}
