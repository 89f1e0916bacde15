package dto

type DriverCreateRequest struct {
	Name          string `json:"name"`
	MobileNumber  string `json:"mobile_number"`
	LicenseNumber string `json:"license_number"`
	VehicleNumber string `json:"vehicle_number"`
}

// DriverUpdateRequest carries a partial update, nil fields are left as is
type DriverUpdateRequest struct {
	Name          *string `json:"name"`
	MobileNumber  *string `json:"mobile_number"`
	LicenseNumber *string `json:"license_number"`
	VehicleNumber *string `json:"vehicle_number"`
}

type DriverStatusRequest struct {
	Status string `json:"status"`
}

type DriverResponse struct {
	DriverId      string `json:"driver_id"`
	Name          string `json:"name"`
	MobileNumber  string `json:"mobile_number"`
	LicenseNumber string `json:"license_number"`
	VehicleNumber string `json:"vehicle_number"`
	Status        string `json:"status"`
	CreatedAt     string `json:"created_at"`
}

type LoginRequest struct {
	MobileNumber string `json:"mobile_number"`
	Password     string `json:"password"`
}

type LoginResponse struct {
	Token  string         `json:"token"`
	Driver DriverResponse `json:"driver"`
}

type SetPasswordRequest struct {
	Password string `json:"password"`
}
