package services

import (
	"fmt"
	"regexp"
	"time"

	"golang.org/x/crypto/bcrypt"

	"rickshaw-booking/internal/booking-service/core/domain/dto"
	"rickshaw-booking/internal/booking-service/core/domain/model"
	"rickshaw-booking/internal/booking-service/core/myerrors"
)

const (
	MinNameLen = 1
	MaxNameLen = 100

	MaxLocationLen = 255

	MinPasswordLen = 5
	MaxPasswordLen = 50

	HashFactor = 10

	RepoTimeout = time.Second * 15
	SmsTimeout  = time.Second * 5
)

var mobileRe = regexp.MustCompile(`^[0-9]{10}$`)

func validateRequired(field, value string) error {
	if value == "" {
		return fmt.Errorf("%w: %s is required", myerrors.ErrValidation, field)
	}
	return nil
}

func validateName(name string) error {
	if err := validateRequired("name", name); err != nil {
		return err
	}
	if len(name) < MinNameLen || len(name) > MaxNameLen {
		return fmt.Errorf("%w: name must be in range [%d, %d]", myerrors.ErrValidation, MinNameLen, MaxNameLen)
	}
	return nil
}

func validateMobile(mobile string) error {
	if err := validateRequired("mobile_number", mobile); err != nil {
		return err
	}
	if !mobileRe.MatchString(mobile) {
		return fmt.Errorf("%w: mobile_number must be 10 digits", myerrors.ErrValidation)
	}
	return nil
}

func validateLocation(location string) error {
	if err := validateRequired("pickup_location", location); err != nil {
		return err
	}
	if len(location) > MaxLocationLen {
		return fmt.Errorf("%w: pickup_location must be at most %d characters", myerrors.ErrValidation, MaxLocationLen)
	}
	return nil
}

func validatePassword(password string) error {
	if err := validateRequired("password", password); err != nil {
		return err
	}
	if len(password) < MinPasswordLen || len(password) > MaxPasswordLen {
		return fmt.Errorf("%w: password must be in range [%d, %d]", myerrors.ErrValidation, MinPasswordLen, MaxPasswordLen)
	}
	return nil
}

func hashPassword(password string) ([]byte, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), HashFactor)
	return bytes, err
}

func checkPassword(hashed []byte, password string) bool {
	return bcrypt.CompareHashAndPassword(hashed, []byte(password)) == nil
}

func toBookingResponse(m model.Booking) dto.BookingResponse {
	res := dto.BookingResponse{
		BookingId:      m.BookingId,
		Name:           m.Name,
		MobileNumber:   m.MobileNumber,
		PickupLocation: m.PickupLocation,
		PickupDate:     m.PickupDate,
		PickupTime:     m.PickupTime,
		Status:         string(m.Status),
		CreatedAt:      m.CreatedAt.Format(time.RFC3339),
	}
	if m.Driver != nil {
		res.Driver = &dto.DriverSummary{
			DriverId:      m.Driver.DriverId,
			Name:          m.Driver.Name,
			MobileNumber:  m.Driver.MobileNumber,
			VehicleNumber: m.Driver.VehicleNumber,
		}
	}
	return res
}

func toDriverResponse(m model.Driver) dto.DriverResponse {
	return dto.DriverResponse{
		DriverId:      m.DriverId,
		Name:          m.Name,
		MobileNumber:  m.MobileNumber,
		LicenseNumber: m.LicenseNumber,
		VehicleNumber: m.VehicleNumber,
		Status:        string(m.Status),
		CreatedAt:     m.CreatedAt.Format(time.RFC3339),
	}
}
