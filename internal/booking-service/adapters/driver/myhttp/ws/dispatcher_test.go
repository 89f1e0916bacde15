package ws

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	websocketdto "rickshaw-booking/internal/booking-service/core/domain/websocket_dto"
	"rickshaw-booking/internal/mylogger"
)

func newTestDispatcher(t *testing.T) (*Dispatcher, *httptest.Server) {
	t.Helper()

	log, err := mylogger.New(mylogger.LevelError)
	if err != nil {
		t.Fatalf("logger: %v", err)
	}

	dis := NewDispatcher(log)
	srv := httptest.NewServer(dis.SubscribeHandler())
	t.Cleanup(srv.Close)
	return dis, srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForClients(t *testing.T, dis *Dispatcher, want int) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if dis.ClientCount() == want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("client count = %d, want %d", dis.ClientCount(), want)
}

func readEvent(t *testing.T, conn *websocket.Conn) websocketdto.Event {
	t.Helper()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var event websocketdto.Event
	if err := conn.ReadJSON(&event); err != nil {
		t.Fatalf("read event: %v", err)
	}
	return event
}

func TestBroadcastReachesAllSubscribers(t *testing.T) {
	dis, srv := newTestDispatcher(t)

	first := dial(t, srv)
	second := dial(t, srv)
	waitForClients(t, dis, 2)

	payload, _ := json.Marshal(map[string]string{"booking_id": "b-1"})
	dis.Broadcast(websocketdto.Event{Type: websocketdto.NewBooking, Data: payload})

	for _, conn := range []*websocket.Conn{first, second} {
		event := readEvent(t, conn)
		if event.Type != websocketdto.NewBooking {
			t.Errorf("type = %q, want %q", event.Type, websocketdto.NewBooking)
		}
		if !strings.Contains(string(event.Data), "b-1") {
			t.Errorf("data = %s, want booking_id b-1", event.Data)
		}
	}
}

func TestLateSubscriberMissesEarlierEvents(t *testing.T) {
	dis, srv := newTestDispatcher(t)

	early := dial(t, srv)
	waitForClients(t, dis, 1)

	dis.Broadcast(websocketdto.Event{Type: websocketdto.NewBooking, Data: json.RawMessage(`{}`)})

	late := dial(t, srv)
	waitForClients(t, dis, 2)

	dis.Broadcast(websocketdto.Event{Type: websocketdto.StatusUpdated, Data: json.RawMessage(`{}`)})

	if event := readEvent(t, early); event.Type != websocketdto.NewBooking {
		t.Errorf("early first event = %q, want %q", event.Type, websocketdto.NewBooking)
	}
	if event := readEvent(t, early); event.Type != websocketdto.StatusUpdated {
		t.Errorf("early second event = %q, want %q", event.Type, websocketdto.StatusUpdated)
	}

	// the late subscriber gets only what was emitted after it connected
	if event := readEvent(t, late); event.Type != websocketdto.StatusUpdated {
		t.Errorf("late event = %q, want %q", event.Type, websocketdto.StatusUpdated)
	}
}

func TestDisconnectRemovesClient(t *testing.T) {
	dis, srv := newTestDispatcher(t)

	conn := dial(t, srv)
	waitForClients(t, dis, 1)

	conn.Close()
	waitForClients(t, dis, 0)

	// broadcasting with nobody connected must not block or panic
	dis.Broadcast(websocketdto.Event{Type: websocketdto.DriverAssigned, Data: json.RawMessage(`{}`)})
}
