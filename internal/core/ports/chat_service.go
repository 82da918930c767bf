package ports

import (
	"context"

	"github.com/bistroboss/bistro-api/internal/core/domain"
)

// ChatInput is a message received on the channel.
type ChatInput struct {
	UserID  string
	Message string
}

// ChatService relays support-chat messages between a user and the admins and
// serves conversation history.
type ChatService interface {
	// RelayUserMessage persists a message written by the sender's own identity
	// and delivers it to the admin room.
	RelayUserMessage(ctx context.Context, sender domain.Identity, input ChatInput) (*domain.Message, error)
	// RelayAdminMessage persists an admin reply and delivers it to the user's room.
	RelayAdminMessage(ctx context.Context, sender domain.Identity, input ChatInput) (*domain.Message, error)
	MessageHistory(ctx context.Context, userID string, page domain.Page) ([]domain.Message, error)
}
