package bookingservice

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rickshaw-booking/internal/booking-service/adapters/driver/myhttp"
	"rickshaw-booking/internal/config"
	"rickshaw-booking/internal/mylogger"
)

const shutdownTimeout = 15 * time.Second

// Run starts the booking service and blocks until the context is
// cancelled, a signal arrives, or the server fails.
func Run(ctx context.Context, mylog mylogger.Logger, cfg *config.Config) error {
	shutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	srv := myhttp.NewServer(shutdown, ctx, mylog, cfg)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()

	select {
	case <-shutdown.Done():
		mylog.Info("Gracefully shutting down...")
		stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Stop(stopCtx)
	case err := <-errCh:
		return err
	}
}
