package ports

import (
	"context"

	websocketdto "rickshaw-booking/internal/booking-service/core/domain/websocket_dto"
)

// IDispatcher fans an event out to every connected dashboard.
// Fire-and-forget, no replay for late subscribers.
type IDispatcher interface {
	Broadcast(event websocketdto.Event)
}

// ISmsSender attempts one outbound message delivery. Callers treat
// failure as non-fatal.
type ISmsSender interface {
	Send(ctx context.Context, to, body string) error
}
