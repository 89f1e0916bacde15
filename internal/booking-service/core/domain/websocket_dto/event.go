package websocketdto

import "encoding/json"

const (
	NewBooking     = "newBooking"
	DriverAssigned = "driverAssigned"
	StatusUpdated  = "statusUpdated"
)

type Event struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}
