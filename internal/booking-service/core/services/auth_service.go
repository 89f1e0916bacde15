package services

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt"

	"rickshaw-booking/internal/booking-service/core/domain/dto"
	"rickshaw-booking/internal/booking-service/core/myerrors"
	"rickshaw-booking/internal/booking-service/core/ports"
	"rickshaw-booking/internal/mylogger"
)

const TokenTTL = time.Hour * 24

type AuthService struct {
	ctx        context.Context
	mylog      mylogger.Logger
	driverRepo ports.IDriverRepo
	jwtSecret  string
}

func NewAuthService(ctx context.Context, log mylogger.Logger, driverRepo ports.IDriverRepo, jwtSecret string) ports.IAuthService {
	return &AuthService{
		ctx:        ctx,
		mylog:      log,
		driverRepo: driverRepo,
		jwtSecret:  jwtSecret,
	}
}

// Login checks the driver credential and issues a 24h bearer token. The
// three failure modes stay distinct so the boundary can render them.
func (as *AuthService) Login(req dto.LoginRequest) (dto.LoginResponse, error) {
	log := as.mylog.Action("Login")

	if err := validateMobile(req.MobileNumber); err != nil {
		return dto.LoginResponse{}, err
	}
	if err := validateRequired("password", req.Password); err != nil {
		return dto.LoginResponse{}, err
	}

	ctx, cancel := context.WithTimeout(as.ctx, RepoTimeout)
	defer cancel()

	driver, err := as.driverRepo.GetByMobile(ctx, req.MobileNumber)
	if err != nil {
		log.Warn("login failed, driver not found", "mobile_number", req.MobileNumber)
		return dto.LoginResponse{}, err
	}

	if len(driver.PasswordHash) == 0 {
		log.Warn("login failed, no credential set", "driver_id", driver.DriverId)
		return dto.LoginResponse{}, myerrors.ErrNoCredential
	}

	if !checkPassword(driver.PasswordHash, req.Password) {
		log.Warn("login failed, password mismatch", "driver_id", driver.DriverId)
		return dto.LoginResponse{}, myerrors.ErrInvalidCredentials
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"driver_id": driver.DriverId,
		"exp":       time.Now().Add(TokenTTL).Unix(),
	})
	tokenString, err := token.SignedString([]byte(as.jwtSecret))
	if err != nil {
		log.Error("cannot sign jwt token", err)
		return dto.LoginResponse{}, err
	}

	log.Info("driver logged in", "driver_id", driver.DriverId)
	return dto.LoginResponse{
		Token:  tokenString,
		Driver: toDriverResponse(driver),
	}, nil
}

// SetPassword is an administrative operation, no old-password check.
func (as *AuthService) SetPassword(driverId string, req dto.SetPasswordRequest) error {
	log := as.mylog.Action("SetPassword")

	if err := validatePassword(req.Password); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(as.ctx, RepoTimeout)
	defer cancel()

	if _, err := as.driverRepo.GetById(ctx, driverId); err != nil {
		return err
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		log.Error("cannot hash password", err)
		return err
	}

	if err := as.driverRepo.SetPassword(ctx, driverId, hash); err != nil {
		log.Error("cannot store credential", err, "driver_id", driverId)
		return err
	}

	log.Info("credential set", "driver_id", driverId)
	return nil
}
