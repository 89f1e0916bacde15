package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"rickshaw-booking/internal/booking-service/core/domain/dto"
	"rickshaw-booking/internal/booking-service/core/domain/model"
	websocketdto "rickshaw-booking/internal/booking-service/core/domain/websocket_dto"
	"rickshaw-booking/internal/booking-service/core/myerrors"
)

// fakeStore backs both repos so the paired assignment mutation can be
// guarded by one lock, the same way the real repos share one
// transaction.
type fakeStore struct {
	mu       sync.Mutex
	bookings map[string]model.Booking
	drivers  map[string]model.Driver
	seq      int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		bookings: make(map[string]model.Booking),
		drivers:  make(map[string]model.Driver),
	}
}

func (s *fakeStore) nextCreatedAt() time.Time {
	s.seq++
	return time.Unix(1700000000, 0).Add(time.Duration(s.seq) * time.Second)
}

func (s *fakeStore) addDriver(name, mobile, license, vehicle string, status model.DriverStatus) model.Driver {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := model.Driver{
		DriverId:      uuid.NewString(),
		Name:          name,
		MobileNumber:  mobile,
		LicenseNumber: license,
		VehicleNumber: vehicle,
		Status:        status,
		CreatedAt:     s.nextCreatedAt(),
	}
	d.UpdatedAt = d.CreatedAt
	s.drivers[d.DriverId] = d
	return d
}

func (s *fakeStore) addBooking(name, mobile string, status model.BookingStatus, driverId string) model.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := model.Booking{
		BookingId:      uuid.NewString(),
		Name:           name,
		MobileNumber:   mobile,
		PickupLocation: "Main St",
		PickupDate:     "2026-09-02",
		PickupTime:     "09:00",
		Status:         status,
		DriverId:       driverId,
		CreatedAt:      s.nextCreatedAt(),
	}
	b.UpdatedAt = b.CreatedAt
	s.bookings[b.BookingId] = b
	return b
}

func (s *fakeStore) bookingWithDriver(b model.Booking) model.Booking {
	if b.DriverId != "" {
		if d, ok := s.drivers[b.DriverId]; ok {
			b.Driver = &d
		}
	}
	return b
}

type fakeBookingRepo struct {
	s *fakeStore
}

func (r *fakeBookingRepo) Create(ctx context.Context, b model.Booking) (model.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b.BookingId = uuid.NewString()
	b.CreatedAt = r.s.nextCreatedAt()
	b.UpdatedAt = b.CreatedAt
	r.s.bookings[b.BookingId] = b
	return b, nil
}

func (r *fakeBookingRepo) GetById(ctx context.Context, bookingId string) (model.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, ok := r.s.bookings[bookingId]
	if !ok {
		return model.Booking{}, myerrors.ErrBookingNotFound
	}
	return r.s.bookingWithDriver(b), nil
}

func (r *fakeBookingRepo) List(ctx context.Context, status model.BookingStatus) ([]model.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var bookings []model.Booking
	for _, b := range r.s.bookings {
		if status != "" && b.Status != status {
			continue
		}
		bookings = append(bookings, r.s.bookingWithDriver(b))
	}
	sort.Slice(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
	})
	return bookings, nil
}

func (r *fakeBookingRepo) AssignDriver(ctx context.Context, bookingId, driverId string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, ok := r.s.bookings[bookingId]
	if !ok {
		return myerrors.ErrBookingNotFound
	}
	if b.Status != model.StatusPending {
		return myerrors.ErrInvalidTransition
	}

	d, ok := r.s.drivers[driverId]
	if !ok {
		return myerrors.ErrDriverNotFound
	}
	if d.Status != model.DriverAvailable {
		return myerrors.ErrDriverUnavailable
	}

	b.DriverId = driverId
	b.Status = model.StatusAssigned
	r.s.bookings[bookingId] = b

	d.Status = model.DriverBusy
	r.s.drivers[driverId] = d
	return nil
}

func (r *fakeBookingRepo) UpdateStatus(ctx context.Context, bookingId string, from, to model.BookingStatus, freeDriverId string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, ok := r.s.bookings[bookingId]
	if !ok {
		return myerrors.ErrBookingNotFound
	}
	if b.Status != from {
		return myerrors.ErrInvalidTransition
	}

	b.Status = to
	if to == model.StatusCancelled {
		b.DriverId = ""
	}
	r.s.bookings[bookingId] = b

	if freeDriverId != "" {
		if d, ok := r.s.drivers[freeDriverId]; ok && d.Status == model.DriverBusy {
			d.Status = model.DriverAvailable
			r.s.drivers[freeDriverId] = d
		}
	}
	return nil
}

type fakeDriverRepo struct {
	s *fakeStore
}

func (r *fakeDriverRepo) unique(mobile, license, vehicle, excludeId string) bool {
	for id, d := range r.s.drivers {
		if id == excludeId {
			continue
		}
		if d.MobileNumber == mobile || d.LicenseNumber == license || d.VehicleNumber == vehicle {
			return false
		}
	}
	return true
}

func (r *fakeDriverRepo) Create(ctx context.Context, d model.Driver) (model.Driver, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if !r.unique(d.MobileNumber, d.LicenseNumber, d.VehicleNumber, "") {
		return model.Driver{}, myerrors.ErrDuplicateDriver
	}

	d.DriverId = uuid.NewString()
	d.CreatedAt = r.s.nextCreatedAt()
	d.UpdatedAt = d.CreatedAt
	r.s.drivers[d.DriverId] = d
	return d, nil
}

func (r *fakeDriverRepo) GetById(ctx context.Context, driverId string) (model.Driver, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	d, ok := r.s.drivers[driverId]
	if !ok {
		return model.Driver{}, myerrors.ErrDriverNotFound
	}
	return d, nil
}

func (r *fakeDriverRepo) GetByMobile(ctx context.Context, mobile string) (model.Driver, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, d := range r.s.drivers {
		if d.MobileNumber == mobile {
			return d, nil
		}
	}
	return model.Driver{}, myerrors.ErrDriverNotFound
}

func (r *fakeDriverRepo) List(ctx context.Context, status model.DriverStatus) ([]model.Driver, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var drivers []model.Driver
	for _, d := range r.s.drivers {
		if status != "" && d.Status != status {
			continue
		}
		drivers = append(drivers, d)
	}
	sort.Slice(drivers, func(i, j int) bool {
		return drivers[i].CreatedAt.After(drivers[j].CreatedAt)
	})
	return drivers, nil
}

func (r *fakeDriverRepo) Update(ctx context.Context, driverId string, fields dto.DriverUpdateRequest) (model.Driver, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	d, ok := r.s.drivers[driverId]
	if !ok {
		return model.Driver{}, myerrors.ErrDriverNotFound
	}

	if fields.Name != nil {
		d.Name = *fields.Name
	}
	if fields.MobileNumber != nil {
		d.MobileNumber = *fields.MobileNumber
	}
	if fields.LicenseNumber != nil {
		d.LicenseNumber = *fields.LicenseNumber
	}
	if fields.VehicleNumber != nil {
		d.VehicleNumber = *fields.VehicleNumber
	}

	if !r.unique(d.MobileNumber, d.LicenseNumber, d.VehicleNumber, driverId) {
		return model.Driver{}, myerrors.ErrDuplicateDriver
	}

	r.s.drivers[driverId] = d
	return d, nil
}

func (r *fakeDriverRepo) SetStatus(ctx context.Context, driverId string, status model.DriverStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	d, ok := r.s.drivers[driverId]
	if !ok {
		return myerrors.ErrDriverNotFound
	}
	d.Status = status
	r.s.drivers[driverId] = d
	return nil
}

func (r *fakeDriverRepo) Delete(ctx context.Context, driverId string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.drivers[driverId]; !ok {
		return myerrors.ErrDriverNotFound
	}
	for _, b := range r.s.bookings {
		if b.DriverId == driverId && !b.Status.IsTerminal() {
			return myerrors.ErrDriverReferenced
		}
	}
	delete(r.s.drivers, driverId)
	return nil
}

func (r *fakeDriverRepo) SetPassword(ctx context.Context, driverId string, hash []byte) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	d, ok := r.s.drivers[driverId]
	if !ok {
		return myerrors.ErrDriverNotFound
	}
	d.PasswordHash = hash
	r.s.drivers[driverId] = d
	return nil
}

type fakeDispatcher struct {
	mu     sync.Mutex
	events []websocketdto.Event
}

func (d *fakeDispatcher) Broadcast(event websocketdto.Event) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
}

func (d *fakeDispatcher) eventTypes() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	types := make([]string, 0, len(d.events))
	for _, e := range d.events {
		types = append(types, e.Type)
	}
	return types
}

type smsRecord struct {
	To   string
	Body string
}

type fakeSmsSender struct {
	mu      sync.Mutex
	sent    []smsRecord
	failErr error
}

func (f *fakeSmsSender) Send(ctx context.Context, to, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failErr != nil {
		return f.failErr
	}
	f.sent = append(f.sent, smsRecord{To: to, Body: body})
	return nil
}
