package ws

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	websocketdto "rickshaw-booking/internal/booking-service/core/domain/websocket_dto"
	"rickshaw-booking/internal/mylogger"
)

// websocketUpgrader is used to upgrade incoming HTTP requests into a
// persistent websocket connection
var websocketUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// dashboards are served from a separate origin
		return true
	},
}

// ClientList is a map used to help manage a map of clients
type ClientList map[*Client]bool

// Dispatcher owns every live dashboard connection. Events are delivered
// to whoever is connected at emit time, there is no backlog for late
// subscribers.
type Dispatcher struct {
	clients ClientList
	sync.RWMutex
	log mylogger.Logger
}

func NewDispatcher(log mylogger.Logger) *Dispatcher {
	return &Dispatcher{
		clients: make(ClientList),
		log:     log,
	}
}

// SubscribeHandler upgrades the request and registers the connection
func (d *Dispatcher) SubscribeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := d.log.Action("SubscribeHandler")

		conn, err := websocketUpgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Error("cannot upgrade connection", err)
			return
		}

		client := NewClient(conn, d)
		d.addClient(client)
		log.Info("dashboard connected", "remote_addr", conn.RemoteAddr().String())

		go client.ReadMessage()
		go client.WriteMessage()
	}
}

// Broadcast delivers the event to every connected client. A client whose
// egress buffer is full is considered dead and dropped.
func (d *Dispatcher) Broadcast(event websocketdto.Event) {
	var dead []*Client

	d.RLock()
	for client := range d.clients {
		select {
		case client.egress <- event:
		default:
			dead = append(dead, client)
		}
	}
	d.RUnlock()

	for _, client := range dead {
		d.log.Warn("dropping slow dashboard client")
		d.removeClient(client)
	}
}

// ClientCount reports how many dashboards are currently subscribed
func (d *Dispatcher) ClientCount() int {
	d.RLock()
	defer d.RUnlock()
	return len(d.clients)
}

func (d *Dispatcher) addClient(client *Client) {
	d.Lock()
	defer d.Unlock()

	d.clients[client] = true
}

func (d *Dispatcher) removeClient(client *Client) {
	d.Lock()
	defer d.Unlock()

	if _, ok := d.clients[client]; ok {
		client.conn.Close()
		close(client.egress)
		delete(d.clients, client)
	}
}
