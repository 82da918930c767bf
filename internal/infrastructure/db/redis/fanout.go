package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/bistroboss/bistro-api/internal/core/domain"
	"github.com/bistroboss/bistro-api/internal/core/ports"
)

const defaultFanoutChannel = "bistro:realtime"

// Fanout carries envelopes between service instances over a Redis pub/sub
// channel. Every instance publishes through Deliver and, in Run, hands each
// received envelope to its own local registry, so a room member connected to
// any instance receives the event.
type Fanout struct {
	client  *redis.Client
	channel string
	local   ports.Deliverer
	log     zerolog.Logger

	readyOnce sync.Once
	ready     chan struct{}
}

func NewFanout(client *redis.Client, channel string, local ports.Deliverer, log zerolog.Logger) *Fanout {
	channel = strings.TrimSpace(channel)
	if channel == "" {
		channel = defaultFanoutChannel
	}
	return &Fanout{
		client:  client,
		channel: channel,
		local:   local,
		log:     log,
		ready:   make(chan struct{}),
	}
}

// Deliver publishes env to every instance, this one included.
func (f *Fanout) Deliver(ctx context.Context, env domain.Envelope) error {
	payload, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("fanout encode: %w", err)
	}
	if err := f.client.Publish(ctx, f.channel, payload).Err(); err != nil {
		return fmt.Errorf("fanout publish: %w", err)
	}
	return nil
}

// Ready is closed once the subscription is confirmed by Redis.
func (f *Fanout) Ready() <-chan struct{} { return f.ready }

// Run subscribes to the channel and delivers received envelopes locally until
// ctx is cancelled.
func (f *Fanout) Run(ctx context.Context) error {
	sub := f.client.Subscribe(ctx, f.channel)
	defer sub.Close()

	// Receive blocks until the subscription is acknowledged.
	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("fanout subscribe: %w", err)
	}
	f.readyOnce.Do(func() { close(f.ready) })
	f.log.Info().Str("channel", f.channel).Msg("realtime fan-out subscribed")

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return errors.New("fanout subscription closed")
			}
			f.handle(ctx, msg.Payload)
		}
	}
}

func (f *Fanout) handle(ctx context.Context, payload string) {
	var env domain.Envelope
	if err := json.Unmarshal([]byte(payload), &env); err != nil || env.Event == "" {
		f.log.Warn().Err(err).Msg("fanout: malformed envelope skipped")
		return
	}
	if err := f.local.Deliver(ctx, env); err != nil {
		f.log.Warn().Err(err).Str("event", env.Event).Str("room", env.Room).Msg("fanout: local delivery failed")
	}
}
