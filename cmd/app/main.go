package main

import (
	"context"
	"flag"
	"log"
	"os"

	bookingservice "rickshaw-booking/internal/booking-service"
	"rickshaw-booking/internal/config"
	"rickshaw-booking/internal/mylogger"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	port := flag.Int("port", cfg.App.Port, "HTTP port")
	flag.Parse()
	cfg.App.Port = *port

	mylog, err := mylogger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	mylog.Action("booking_service_started").Info("E-Rickshaw booking service starting up")

	if err := bookingservice.Run(context.Background(), mylog, cfg); err != nil {
		mylog.Error("service stopped with error", err)
		os.Exit(1)
	}
}
