package myhttp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"rickshaw-booking/internal/booking-service/adapters/driven/bm"
	"rickshaw-booking/internal/booking-service/adapters/driven/db"
	"rickshaw-booking/internal/booking-service/adapters/driver/myhttp/handle"
	"rickshaw-booking/internal/booking-service/adapters/driver/myhttp/middleware"
	"rickshaw-booking/internal/booking-service/adapters/driver/myhttp/ws"
	"rickshaw-booking/internal/booking-service/core/ports"
	"rickshaw-booking/internal/booking-service/core/services"
	"rickshaw-booking/internal/config"
	"rickshaw-booking/internal/mylogger"
)

const WaitTime = 10

type Server struct {
	mux    *http.ServeMux
	cfg    *config.Config
	srv    *http.Server
	mylog  mylogger.Logger
	db     *db.DB
	sms    ports.ISmsSender
	ctx    context.Context
	appCtx context.Context
	mu     sync.Mutex
}

func NewServer(ctx, appCtx context.Context, mylog mylogger.Logger, cfg *config.Config) *Server {
	return &Server{
		ctx:    ctx,
		appCtx: appCtx,
		cfg:    cfg,
		mylog:  mylog,
		mux:    http.NewServeMux(),
	}
}

// Run initializes routes and starts listening. It returns when the server stops.
func (s *Server) Run() error {
	mylog := s.mylog.Action("server_started")

	// Initialize database connection
	db, err := db.New(s.ctx, s.cfg.DB, mylog)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	s.db = db
	mylog.Info("Successful database connection")

	// SMS delivery is best-effort, a dead broker never blocks booking
	// operations
	sms, err := bm.New(s.appCtx, *s.cfg.RabbitMq, s.cfg.App.SmsFromNumber, s.mylog)
	if err != nil {
		mylog.Warn("sms broker unavailable, outbound notifications disabled", "error", err.Error())
	} else {
		s.sms = sms
		mylog.Info("Successful message broker connection")
	}

	// Configure routes and handlers
	s.Configure()

	s.mu.Lock()
	s.srv = &http.Server{
		Addr:    fmt.Sprintf(":%v", s.cfg.App.Port),
		Handler: s.mux,
	}
	s.mu.Unlock()

	mylog = mylog.WithGroup("details").With("port", s.cfg.App.Port)

	mylog.Info("server is running")
	return s.startHTTPServer()
}

// Stop provides a programmatic shutdown. Accepts a context for timeout control.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mylog.Info("Shutting down HTTP server...")

	if s.srv != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, WaitTime*time.Second)
		defer cancel()

		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			s.mylog.Error("Failed to shut down HTTP server gracefully", err)
			return fmt.Errorf("http server shutdown: %w", err)
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.mylog.Error("Failed to close database", err)
			return fmt.Errorf("db close: %w", err)
		}
		s.mylog.Info("Database closed")
	}

	s.mylog.Info("HTTP server shut down gracefully")
	return nil
}

func (s *Server) startHTTPServer() error {
	errCh := make(chan error, 1)

	go func() {
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		} else {
			errCh <- nil
		}
	}()

	select {
	case <-s.ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

// Configure wires repositories, services and handlers onto the mux.
func (s *Server) Configure() {
	// Repositories
	bookingRepo := db.NewBookingRepo(s.db)
	driverRepo := db.NewDriverRepo(s.db)

	// fan-out
	dispatcher := ws.NewDispatcher(s.mylog)

	// services
	bookingService := services.NewBookingService(s.appCtx, s.mylog, bookingRepo, driverRepo, dispatcher, s.sms)
	driverService := services.NewDriverService(s.appCtx, s.mylog, driverRepo)
	authService := services.NewAuthService(s.appCtx, s.mylog, driverRepo, s.cfg.App.JwtSecret)

	// handlers
	bookingHandler := handle.NewBookingHandler(bookingService, s.mylog)
	driverHandler := handle.NewDriverHandler(driverService, authService, s.mylog)

	authMiddleware := middleware.NewAuthMiddleware(s.cfg.App.JwtSecret)

	// Register routes
	s.mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("E-Rickshaw Booking API is running"))
	})

	s.mux.Handle("POST /api/bookings", bookingHandler.CreateBooking())
	s.mux.Handle("GET /api/bookings", bookingHandler.ListBookings())
	s.mux.Handle("GET /api/bookings/{booking_id}", bookingHandler.GetBooking())
	s.mux.Handle("PUT /api/bookings/{booking_id}/assign-driver", bookingHandler.AssignDriver())
	s.mux.Handle("PUT /api/bookings/{booking_id}/status", bookingHandler.UpdateStatus())

	s.mux.Handle("POST /api/drivers", driverHandler.CreateDriver())
	s.mux.Handle("GET /api/drivers", driverHandler.ListDrivers())
	s.mux.Handle("GET /api/drivers/available", driverHandler.AvailableDrivers())
	s.mux.Handle("GET /api/drivers/{driver_id}", driverHandler.GetDriver())
	s.mux.Handle("PUT /api/drivers/{driver_id}", driverHandler.UpdateDriver())
	s.mux.Handle("DELETE /api/drivers/{driver_id}", driverHandler.DeleteDriver())
	s.mux.Handle("PUT /api/drivers/{driver_id}/status", authMiddleware.Wrap(driverHandler.UpdateDriverStatus()))

	s.mux.Handle("POST /api/drivers/login", driverHandler.Login())
	s.mux.Handle("PUT /api/drivers/{driver_id}/set-password", driverHandler.SetPassword())

	// websocket routes
	s.mux.Handle("/ws/dashboard", dispatcher.SubscribeHandler())
}
