package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/gorilla/websocket"

	"rickshaw-booking/internal/config"
	"rickshaw-booking/internal/mylogger"

	websocketdto "rickshaw-booking/internal/booking-service/core/domain/websocket_dto"
)

// Dashboard observer: subscribes to the booking fan-out feed and prints
// every event it sees. Handy for watching assignments land without a
// browser.
func main() {
	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := mylogger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	addr := flag.String("addr", fmt.Sprintf("localhost:%d", cfg.App.Port), "booking service address")
	flag.Parse()

	wsURL := fmt.Sprintf("ws://%s/ws/dashboard", *addr)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		log.Fatalf("Failed to connect to WebSocket server: %v", err)
	}
	defer conn.Close()
	appLogger.Action("dashboard_connected").Info("Connected to booking feed", "url", wsURL)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			var event websocketdto.Event
			if err := conn.ReadJSON(&event); err != nil {
				appLogger.Error("Error reading WebSocket message", err)
				return
			}
			appLogger.Info("Received event", "type", event.Type, "payload", string(event.Data))
		}
	}()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	select {
	case <-done:
	case <-interrupt:
		appLogger.Info("Interrupted, closing connection")
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		<-done
	}
}
