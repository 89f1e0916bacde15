package services

import (
	"context"
	"errors"
	"testing"

	"rickshaw-booking/internal/booking-service/core/domain/dto"
	"rickshaw-booking/internal/booking-service/core/domain/model"
	"rickshaw-booking/internal/booking-service/core/myerrors"
	"rickshaw-booking/internal/mylogger"
)

type driverFixture struct {
	store *fakeStore
	svc   *DriverService
}

func newDriverFixture(t *testing.T) *driverFixture {
	t.Helper()

	log, err := mylogger.New(mylogger.LevelError)
	if err != nil {
		t.Fatalf("logger: %v", err)
	}

	store := newFakeStore()
	svc := NewDriverService(context.Background(), log, &fakeDriverRepo{s: store}).(*DriverService)
	return &driverFixture{store: store, svc: svc}
}

func TestCreateDriver(t *testing.T) {
	f := newDriverFixture(t)

	res, err := f.svc.CreateDriver(dto.DriverCreateRequest{
		Name:          "Ravi",
		MobileNumber:  "9123456780",
		LicenseNumber: "DL-1420110012345",
		VehicleNumber: "DL1RA1234",
	})
	if err != nil {
		t.Fatalf("CreateDriver: %v", err)
	}
	if res.Status != string(model.DriverAvailable) {
		t.Errorf("status = %q, new drivers start available", res.Status)
	}
	if res.DriverId == "" {
		t.Errorf("driver id must be set")
	}
}

func TestCreateDriverDuplicate(t *testing.T) {
	f := newDriverFixture(t)
	f.store.addDriver("Ravi", "9123456780", "DL-1", "DL1RA1234", model.DriverAvailable)

	cases := []struct {
		name string
		req  dto.DriverCreateRequest
	}{
		{"same mobile", dto.DriverCreateRequest{Name: "Suresh", MobileNumber: "9123456780", LicenseNumber: "DL-2", VehicleNumber: "DL1SB5678"}},
		{"same license", dto.DriverCreateRequest{Name: "Suresh", MobileNumber: "9123456781", LicenseNumber: "DL-1", VehicleNumber: "DL1SB5678"}},
		{"same vehicle", dto.DriverCreateRequest{Name: "Suresh", MobileNumber: "9123456781", LicenseNumber: "DL-2", VehicleNumber: "DL1RA1234"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := f.svc.CreateDriver(tc.req); !errors.Is(err, myerrors.ErrDuplicateDriver) {
				t.Errorf("err = %v, want ErrDuplicateDriver", err)
			}
		})
	}
}

func TestUpdateDriver(t *testing.T) {
	f := newDriverFixture(t)
	driver := f.store.addDriver("Ravi", "9123456780", "DL-1", "DL1RA1234", model.DriverAvailable)

	newName := "Ravi Kumar"
	res, err := f.svc.UpdateDriver(driver.DriverId, dto.DriverUpdateRequest{Name: &newName})
	if err != nil {
		t.Fatalf("UpdateDriver: %v", err)
	}
	if res.Name != newName {
		t.Errorf("name = %q, want %q", res.Name, newName)
	}
	if res.MobileNumber != driver.MobileNumber {
		t.Errorf("unset fields must be left as is")
	}

	badMobile := "123"
	if _, err := f.svc.UpdateDriver(driver.DriverId, dto.DriverUpdateRequest{MobileNumber: &badMobile}); !errors.Is(err, myerrors.ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
}

func TestUpdateDriverStatus(t *testing.T) {
	f := newDriverFixture(t)
	driver := f.store.addDriver("Ravi", "9123456780", "DL-1", "DL1RA1234", model.DriverAvailable)

	res, err := f.svc.UpdateDriverStatus(driver.DriverId, dto.DriverStatusRequest{Status: "offline"})
	if err != nil {
		t.Fatalf("UpdateDriverStatus: %v", err)
	}
	if res.Status != string(model.DriverOffline) {
		t.Errorf("status = %q, want offline", res.Status)
	}

	if _, err := f.svc.UpdateDriverStatus(driver.DriverId, dto.DriverStatusRequest{Status: "sleeping"}); !errors.Is(err, myerrors.ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}

	if _, err := f.svc.UpdateDriverStatus("no-such-driver", dto.DriverStatusRequest{Status: "offline"}); !errors.Is(err, myerrors.ErrDriverNotFound) {
		t.Errorf("err = %v, want ErrDriverNotFound", err)
	}
}

func TestDeleteDriverReferenced(t *testing.T) {
	f := newDriverFixture(t)
	driver := f.store.addDriver("Ravi", "9123456780", "DL-1", "DL1RA1234", model.DriverBusy)
	booking := f.store.addBooking("Asha", "9876543210", model.StatusAssigned, driver.DriverId)

	if err := f.svc.DeleteDriver(driver.DriverId); !errors.Is(err, myerrors.ErrDriverReferenced) {
		t.Fatalf("err = %v, want ErrDriverReferenced while booking is active", err)
	}

	// terminal booking no longer blocks the delete
	f.store.mu.Lock()
	b := f.store.bookings[booking.BookingId]
	b.Status = model.StatusCompleted
	f.store.bookings[booking.BookingId] = b
	f.store.mu.Unlock()

	if err := f.svc.DeleteDriver(driver.DriverId); err != nil {
		t.Fatalf("DeleteDriver after completion: %v", err)
	}
	if err := f.svc.DeleteDriver(driver.DriverId); !errors.Is(err, myerrors.ErrDriverNotFound) {
		t.Errorf("second delete: err = %v, want ErrDriverNotFound", err)
	}
}

func TestListDriversFilter(t *testing.T) {
	f := newDriverFixture(t)
	f.store.addDriver("Ravi", "9123456780", "DL-1", "DL1RA1234", model.DriverAvailable)
	busy := f.store.addDriver("Suresh", "9123456781", "DL-2", "DL1SB5678", model.DriverBusy)

	available, err := f.svc.ListDrivers("available")
	if err != nil {
		t.Fatalf("ListDrivers: %v", err)
	}
	if len(available) != 1 || available[0].Name != "Ravi" {
		t.Errorf("available = %v, want only Ravi", available)
	}

	all, err := f.svc.ListDrivers("")
	if err != nil {
		t.Fatalf("ListDrivers: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("len = %d, want 2", len(all))
	}
	if all[0].DriverId != busy.DriverId {
		t.Errorf("list should be newest-first")
	}

	if _, err := f.svc.ListDrivers("bogus"); !errors.Is(err, myerrors.ErrValidation) {
		t.Errorf("bogus filter: err = %v, want ErrValidation", err)
	}
}
