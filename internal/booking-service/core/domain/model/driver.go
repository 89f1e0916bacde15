package model

import "time"

type DriverStatus string

const (
	DriverAvailable DriverStatus = "available"
	DriverBusy      DriverStatus = "busy"
	DriverOffline   DriverStatus = "offline"
)

func (s DriverStatus) IsValid() bool {
	switch s {
	case DriverAvailable, DriverBusy, DriverOffline:
		return true
	}
	return false
}

type Driver struct {
	DriverId      string
	Name          string
	MobileNumber  string
	LicenseNumber string
	VehicleNumber string
	// PasswordHash is nil until the admin sets a credential. It never
	// leaves the service layer.
	PasswordHash []byte
	Status       DriverStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
