package handle

import (
	"encoding/json"
	"errors"
	"net/http"

	"rickshaw-booking/internal/booking-service/core/domain/dto"
	"rickshaw-booking/internal/booking-service/core/ports"
	"rickshaw-booking/internal/mylogger"
)

type DriverHandler struct {
	driverService ports.IDriverService
	authService   ports.IAuthService
	log           mylogger.Logger
}

func NewDriverHandler(ds ports.IDriverService, as ports.IAuthService, log mylogger.Logger) *DriverHandler {
	return &DriverHandler{
		driverService: ds,
		authService:   as,
		log:           log,
	}
}

func (dh *DriverHandler) CreateDriver() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := dto.DriverCreateRequest{}

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			JsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
			return
		}

		res, err := dh.driverService.CreateDriver(req)
		if err != nil {
			domainError(w, err)
			return
		}

		jsonResponse(w, http.StatusCreated, "Driver created successfully", res)
	}
}

func (dh *DriverHandler) ListDrivers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := r.URL.Query().Get("status")

		res, err := dh.driverService.ListDrivers(status)
		if err != nil {
			domainError(w, err)
			return
		}

		jsonResponse(w, http.StatusOK, "", res)
	}
}

// AvailableDrivers is the admin shortcut used when assigning a booking
func (dh *DriverHandler) AvailableDrivers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := dh.driverService.ListDrivers("available")
		if err != nil {
			domainError(w, err)
			return
		}

		jsonResponse(w, http.StatusOK, "", res)
	}
}

func (dh *DriverHandler) GetDriver() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		driverId := r.PathValue("driver_id")

		res, err := dh.driverService.GetDriver(driverId)
		if err != nil {
			domainError(w, err)
			return
		}

		jsonResponse(w, http.StatusOK, "", res)
	}
}

func (dh *DriverHandler) UpdateDriver() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		driverId := r.PathValue("driver_id")

		req := dto.DriverUpdateRequest{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			JsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
			return
		}

		res, err := dh.driverService.UpdateDriver(driverId, req)
		if err != nil {
			domainError(w, err)
			return
		}

		jsonResponse(w, http.StatusOK, "Driver updated successfully", res)
	}
}

// UpdateDriverStatus is the driver self-report; the auth middleware has
// already verified the bearer token and stamped the driver id.
func (dh *DriverHandler) UpdateDriverStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		driverId := r.PathValue("driver_id")

		if tokenDriver := r.Header.Get("X-DriverId"); tokenDriver != driverId {
			JsonError(w, http.StatusForbidden, errors.New("token does not match driver"))
			return
		}

		req := dto.DriverStatusRequest{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			JsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
			return
		}

		res, err := dh.driverService.UpdateDriverStatus(driverId, req)
		if err != nil {
			domainError(w, err)
			return
		}

		jsonResponse(w, http.StatusOK, "Driver status updated successfully", res)
	}
}

func (dh *DriverHandler) DeleteDriver() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		driverId := r.PathValue("driver_id")

		if err := dh.driverService.DeleteDriver(driverId); err != nil {
			domainError(w, err)
			return
		}

		jsonResponse(w, http.StatusOK, "Driver deleted successfully", nil)
	}
}

func (dh *DriverHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := dto.LoginRequest{}

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			JsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
			return
		}

		res, err := dh.authService.Login(req)
		if err != nil {
			domainError(w, err)
			return
		}

		jsonResponse(w, http.StatusOK, "Login successful", res)
	}
}

func (dh *DriverHandler) SetPassword() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		driverId := r.PathValue("driver_id")

		req := dto.SetPasswordRequest{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			JsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
			return
		}

		if err := dh.authService.SetPassword(driverId, req); err != nil {
			domainError(w, err)
			return
		}

		jsonResponse(w, http.StatusOK, "Password set successfully", nil)
	}
}
