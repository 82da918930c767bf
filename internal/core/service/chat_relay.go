package service

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/bistroboss/bistro-api/internal/core/domain"
	"github.com/bistroboss/bistro-api/internal/core/ports"
)

const (
	conversationShards = 64
	maxHistoryLimit    = 500
)

// MessageClock hands out strictly increasing timestamps at the store's
// millisecond resolution.
type MessageClock struct {
	mu   sync.Mutex
	last time.Time
	now  func() time.Time
}

func NewMessageClock(now func() time.Time) *MessageClock {
	if now == nil {
		now = time.Now
	}
	return &MessageClock{now: now}
}

func (c *MessageClock) Next() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	ts := c.now().UTC().Truncate(time.Millisecond)
	if !ts.After(c.last) {
		ts = c.last.Add(time.Millisecond)
	}
	c.last = ts
	return ts
}

// ChatRelay persists support-chat messages and then delivers them to the
// counterpart room. Persist and deliver run under a per-conversation lock so
// the stored order and the delivered order agree.
type ChatRelay struct {
	messages ports.MessageRepository
	authz    ports.Authorizer
	deliver  ports.Deliverer
	limiter  ports.RateLimiter
	clock    *MessageClock
	shards   [conversationShards]sync.Mutex
	log      zerolog.Logger
}

// NewChatRelay builds a relay. limiter may be nil to disable rate limiting.
func NewChatRelay(
	messages ports.MessageRepository,
	authz ports.Authorizer,
	deliver ports.Deliverer,
	limiter ports.RateLimiter,
	clock *MessageClock,
	log zerolog.Logger,
) *ChatRelay {
	if clock == nil {
		clock = NewMessageClock(nil)
	}
	return &ChatRelay{
		messages: messages,
		authz:    authz,
		deliver:  deliver,
		limiter:  limiter,
		clock:    clock,
		log:      log,
	}
}

func (r *ChatRelay) RelayUserMessage(ctx context.Context, sender domain.Identity, in ports.ChatInput) (*domain.Message, error) {
	if sender.Anonymous() {
		return nil, domain.NewAuthError(domain.ReasonMissingCredential, nil)
	}

	// The conversation is always the sender's own; a differing userId is an
	// attempt to write into someone else's thread.
	userID := strings.TrimSpace(in.UserID)
	if userID == "" {
		userID = sender.Email
	}
	if userID != sender.Email {
		return nil, domain.ErrForbidden
	}

	msg := &domain.Message{UserID: userID, Sender: domain.SenderUser, Message: in.Message}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	if err := r.checkRate(ctx, sender.Email); err != nil {
		return nil, err
	}

	payload := domain.ChatPayload{UserID: userID, Message: in.Message}
	return r.relay(ctx, msg, domain.AdminRoom, domain.EventUserMessage, payload)
}

func (r *ChatRelay) RelayAdminMessage(ctx context.Context, sender domain.Identity, in ports.ChatInput) (*domain.Message, error) {
	if sender.Anonymous() {
		return nil, domain.NewAuthError(domain.ReasonMissingCredential, nil)
	}
	if err := r.authz.RequireAdmin(ctx, sender.Email); err != nil {
		return nil, err
	}

	msg := &domain.Message{UserID: strings.TrimSpace(in.UserID), Sender: domain.SenderAdmin, Message: in.Message}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	if err := r.checkRate(ctx, sender.Email); err != nil {
		return nil, err
	}

	return r.relay(ctx, msg, msg.UserID, domain.EventAdminMessage, in.Message)
}

func (r *ChatRelay) MessageHistory(ctx context.Context, userID string, page domain.Page) ([]domain.Message, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, domain.Invalid("userId is required")
	}
	if page.Limit > maxHistoryLimit {
		page.Limit = maxHistoryLimit
	}

	msgs, err := r.messages.ListByUser(ctx, userID, page)
	if err != nil {
		return nil, persistenceErr("message history", err)
	}
	return msgs, nil
}

func (r *ChatRelay) relay(ctx context.Context, msg *domain.Message, room, event string, payload any) (*domain.Message, error) {
	env, err := domain.NewEnvelope(room, event, payload)
	if err != nil {
		return nil, fmt.Errorf("relay message: encode: %w", err)
	}

	mu := &r.shards[shardIndex(msg.UserID)]
	mu.Lock()
	defer mu.Unlock()

	msg.Timestamp = r.clock.Next()
	id, err := r.messages.Insert(ctx, msg)
	if err != nil {
		r.log.Error().Err(err).
			Str("user_id", msg.UserID).
			Str("sender", string(msg.Sender)).
			Msg("message not persisted, delivery skipped")
		return nil, persistenceErr("relay message", err)
	}
	msg.ID = id

	// The record is committed; a sender going away must not cancel delivery.
	if err := r.deliver.Deliver(context.WithoutCancel(ctx), env); err != nil {
		r.log.Warn().Err(err).
			Str("user_id", msg.UserID).
			Str("room", room).
			Msg("message persisted but live delivery failed")
	}

	r.log.Debug().
		Str("user_id", msg.UserID).
		Str("sender", string(msg.Sender)).
		Str("message_id", id).
		Msg("message relayed")

	return msg, nil
}

func (r *ChatRelay) checkRate(ctx context.Context, key string) error {
	if r.limiter == nil {
		return nil
	}
	ok, err := r.limiter.Allow(ctx, key)
	if err != nil {
		r.log.Warn().Err(err).Str("user", key).Msg("rate limit check failed, relaying anyway")
		return nil
	}
	if !ok {
		return domain.ErrRateLimited
	}
	return nil
}

// shardIndex maps a conversation deterministically to a lock shard.
func shardIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32() % conversationShards)
}
