package ws

import (
	"time"

	"github.com/gorilla/websocket"

	websocketdto "rickshaw-booking/internal/booking-service/core/domain/websocket_dto"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
	egressBuffer   = 32
)

type Client struct {
	conn   *websocket.Conn
	dis    *Dispatcher
	egress chan websocketdto.Event
}

func NewClient(conn *websocket.Conn, dis *Dispatcher) *Client {
	return &Client{
		conn:   conn,
		dis:    dis,
		egress: make(chan websocketdto.Event, egressBuffer),
	}
}

// ReadMessage drains the connection. Dashboards only listen, so inbound
// payloads are discarded; the loop exists to notice disconnects and keep
// the pong handler running.
func (c *Client) ReadMessage() {
	defer c.dis.removeClient(c)

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.dis.log.Warn("unexpected close on dashboard connection", "error", err.Error())
			}
			return
		}
	}
}

// WriteMessage pushes fan-out events to the connection and keeps it
// alive with pings.
func (c *Client) WriteMessage() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.egress:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(event); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
