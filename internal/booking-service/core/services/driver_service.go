package services

import (
	"context"
	"fmt"

	"rickshaw-booking/internal/booking-service/core/domain/dto"
	"rickshaw-booking/internal/booking-service/core/domain/model"
	"rickshaw-booking/internal/booking-service/core/myerrors"
	"rickshaw-booking/internal/booking-service/core/ports"
	"rickshaw-booking/internal/mylogger"
)

type DriverService struct {
	ctx        context.Context
	mylog      mylogger.Logger
	driverRepo ports.IDriverRepo
}

func NewDriverService(ctx context.Context, log mylogger.Logger, driverRepo ports.IDriverRepo) ports.IDriverService {
	return &DriverService{
		ctx:        ctx,
		mylog:      log,
		driverRepo: driverRepo,
	}
}

func (ds *DriverService) CreateDriver(req dto.DriverCreateRequest) (dto.DriverResponse, error) {
	log := ds.mylog.Action("CreateDriver")

	if err := validateDriverRequest(req); err != nil {
		return dto.DriverResponse{}, err
	}

	ctx, cancel := context.WithTimeout(ds.ctx, RepoTimeout)
	defer cancel()

	driver, err := ds.driverRepo.Create(ctx, model.Driver{
		Name:          req.Name,
		MobileNumber:  req.MobileNumber,
		LicenseNumber: req.LicenseNumber,
		VehicleNumber: req.VehicleNumber,
		Status:        model.DriverAvailable,
	})
	if err != nil {
		log.Error("cannot create driver", err, "mobile_number", req.MobileNumber)
		return dto.DriverResponse{}, err
	}

	log.Info("driver created", "driver_id", driver.DriverId)
	return toDriverResponse(driver), nil
}

func (ds *DriverService) ListDrivers(status string) ([]dto.DriverResponse, error) {
	filter := model.DriverStatus(status)
	if status != "" && !filter.IsValid() {
		return nil, fmt.Errorf("%w: unknown driver status %q", myerrors.ErrValidation, status)
	}

	ctx, cancel := context.WithTimeout(ds.ctx, RepoTimeout)
	defer cancel()

	drivers, err := ds.driverRepo.List(ctx, filter)
	if err != nil {
		ds.mylog.Action("ListDrivers").Error("cannot list drivers", err)
		return nil, err
	}

	res := make([]dto.DriverResponse, 0, len(drivers))
	for _, d := range drivers {
		res = append(res, toDriverResponse(d))
	}
	return res, nil
}

func (ds *DriverService) GetDriver(driverId string) (dto.DriverResponse, error) {
	ctx, cancel := context.WithTimeout(ds.ctx, RepoTimeout)
	defer cancel()

	driver, err := ds.driverRepo.GetById(ctx, driverId)
	if err != nil {
		return dto.DriverResponse{}, err
	}
	return toDriverResponse(driver), nil
}

func (ds *DriverService) UpdateDriver(driverId string, req dto.DriverUpdateRequest) (dto.DriverResponse, error) {
	log := ds.mylog.Action("UpdateDriver")

	if err := validateDriverUpdate(req); err != nil {
		return dto.DriverResponse{}, err
	}

	ctx, cancel := context.WithTimeout(ds.ctx, RepoTimeout)
	defer cancel()

	driver, err := ds.driverRepo.Update(ctx, driverId, req)
	if err != nil {
		log.Error("cannot update driver", err, "driver_id", driverId)
		return dto.DriverResponse{}, err
	}

	log.Info("driver updated", "driver_id", driverId)
	return toDriverResponse(driver), nil
}

// UpdateDriverStatus is the self-reported availability change. Assignment
// and completion flip availability through the booking service instead.
func (ds *DriverService) UpdateDriverStatus(driverId string, req dto.DriverStatusRequest) (dto.DriverResponse, error) {
	log := ds.mylog.Action("UpdateDriverStatus")

	status := model.DriverStatus(req.Status)
	if !status.IsValid() {
		return dto.DriverResponse{}, fmt.Errorf("%w: unknown driver status %q", myerrors.ErrValidation, req.Status)
	}

	ctx, cancel := context.WithTimeout(ds.ctx, RepoTimeout)
	defer cancel()

	if err := ds.driverRepo.SetStatus(ctx, driverId, status); err != nil {
		return dto.DriverResponse{}, err
	}

	driver, err := ds.driverRepo.GetById(ctx, driverId)
	if err != nil {
		return dto.DriverResponse{}, err
	}

	log.Info("driver status updated", "driver_id", driverId, "status", req.Status)
	return toDriverResponse(driver), nil
}

func (ds *DriverService) DeleteDriver(driverId string) error {
	log := ds.mylog.Action("DeleteDriver")

	ctx, cancel := context.WithTimeout(ds.ctx, RepoTimeout)
	defer cancel()

	if err := ds.driverRepo.Delete(ctx, driverId); err != nil {
		log.Warn("cannot delete driver", "driver_id", driverId, "error", err.Error())
		return err
	}

	log.Info("driver deleted", "driver_id", driverId)
	return nil
}

func validateDriverRequest(req dto.DriverCreateRequest) error {
	if err := validateName(req.Name); err != nil {
		return err
	}
	if err := validateMobile(req.MobileNumber); err != nil {
		return err
	}
	if err := validateRequired("license_number", req.LicenseNumber); err != nil {
		return err
	}
	if err := validateRequired("vehicle_number", req.VehicleNumber); err != nil {
		return err
	}
	return nil
}

func validateDriverUpdate(req dto.DriverUpdateRequest) error {
	if req.Name != nil {
		if err := validateName(*req.Name); err != nil {
			return err
		}
	}
	if req.MobileNumber != nil {
		if err := validateMobile(*req.MobileNumber); err != nil {
			return err
		}
	}
	if req.LicenseNumber != nil {
		if err := validateRequired("license_number", *req.LicenseNumber); err != nil {
			return err
		}
	}
	if req.VehicleNumber != nil {
		if err := validateRequired("vehicle_number", *req.VehicleNumber); err != nil {
			return err
		}
	}
	return nil
}
