package ports

import (
	"context"

	"github.com/bistroboss/bistro-api/internal/core/domain"
)

// Deliverer pushes an envelope to the live connections it addresses.
type Deliverer interface {
	Deliver(ctx context.Context, env domain.Envelope) error
}

// Broadcaster schedules a global event after a committed write. It never
// blocks and never reports delivery failures to the caller.
type Broadcaster interface {
	Broadcast(event string, payload any)
}
