package interfaces

import (
	"context"

	"projectease/internal/domain/entities"
)

// INotifier delivers a rendered message to a client (email job queue).
type INotifier interface {
	Send(ctx context.Context, n entities.Notification) error
}

// IEventPublisher publishes domain events for downstream consumers.
type IEventPublisher interface {
	Publish(ctx context.Context, events []entities.Event) error
}
