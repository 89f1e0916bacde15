package dto

type BookingCreateRequest struct {
	Name           string `json:"name"`
	MobileNumber   string `json:"mobile_number"`
	PickupLocation string `json:"pickup_location"`
	PickupDate     string `json:"pickup_date"`
	PickupTime     string `json:"pickup_time"`
}

type AssignDriverRequest struct {
	DriverId string `json:"driver_id"`
}

type BookingStatusRequest struct {
	Status string `json:"status"`
}

type BookingResponse struct {
	BookingId      string         `json:"booking_id"`
	Name           string         `json:"name"`
	MobileNumber   string         `json:"mobile_number"`
	PickupLocation string         `json:"pickup_location"`
	PickupDate     string         `json:"pickup_date"`
	PickupTime     string         `json:"pickup_time"`
	Status         string         `json:"status"`
	Driver         *DriverSummary `json:"driver,omitempty"`
	CreatedAt      string         `json:"created_at"`
}

// DriverSummary is the driver detail attached to booking responses
type DriverSummary struct {
	DriverId      string `json:"driver_id"`
	Name          string `json:"name"`
	MobileNumber  string `json:"mobile_number"`
	VehicleNumber string `json:"vehicle_number"`
}
