package eventbus

import (
	"context"

	"github.com/amirasaad/amanah/pkg/domain/events"
)

// HandlerFunc handles one published event.
type HandlerFunc func(ctx context.Context, event events.Event) error

// Bus is the contract for publishing domain events and registering handlers.
type Bus interface {
	Register(eventType string, handler HandlerFunc)
	Emit(ctx context.Context, event events.Event) error
}
