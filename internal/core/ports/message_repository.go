package ports

import (
	"context"

	"github.com/bistroboss/bistro-api/internal/core/domain"
)

// MessageRepository persists support-chat messages. Records are never
// updated or removed.
type MessageRepository interface {
	Insert(ctx context.Context, msg *domain.Message) (string, error)
	// ListByUser returns the conversation for userID ordered by timestamp ascending.
	ListByUser(ctx context.Context, userID string, page domain.Page) ([]domain.Message, error)
}

// RateLimiter bounds how many chat messages one identity may send per window.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}
