package realtime

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/bistroboss/bistro-api/internal/api/metrics"
	"github.com/bistroboss/bistro-api/internal/core/domain"
	"github.com/bistroboss/bistro-api/internal/core/ports"
)

const (
	defaultQueueSize       = 256
	defaultDeliveryTimeout = 5 * time.Second
)

type broadcastJob struct {
	env      domain.Envelope
	enqueued time.Time
}

// Broadcaster hands committed-mutation events to a single delivery worker
// through a bounded queue. Callers never wait on delivery.
type Broadcaster struct {
	queue   chan broadcastJob
	deliver ports.Deliverer
	timeout time.Duration
	log     zerolog.Logger
}

// NewBroadcaster creates a Broadcaster with a queue of queueSize events.
// If queueSize <= 0, defaultQueueSize is used.
func NewBroadcaster(deliver ports.Deliverer, queueSize int, log zerolog.Logger) *Broadcaster {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	return &Broadcaster{
		queue:   make(chan broadcastJob, queueSize),
		deliver: deliver,
		timeout: defaultDeliveryTimeout,
		log:     log,
	}
}

// Start launches the delivery worker. It stops when ctx is cancelled.
func (b *Broadcaster) Start(ctx context.Context) {
	go b.run(ctx)
}

// Broadcast schedules a global event. When the queue is full the event is
// dropped and counted.
func (b *Broadcaster) Broadcast(event string, payload any) {
	env, err := domain.NewEnvelope("", event, payload)
	if err != nil {
		metrics.BroadcastsTotal.WithLabelValues(event, "failed").Inc()
		b.log.Error().Err(err).Str("event", event).Msg("broadcast payload not encodable")
		return
	}

	select {
	case b.queue <- broadcastJob{env: env, enqueued: time.Now()}:
		metrics.BroadcastQueueDepth.Set(float64(len(b.queue)))
	default:
		metrics.BroadcastsTotal.WithLabelValues(event, "dropped").Inc()
		b.log.Warn().Str("event", event).Int("capacity", cap(b.queue)).Msg("broadcast queue full, event dropped")
	}
}

func (b *Broadcaster) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case job := <-b.queue:
			metrics.BroadcastQueueDepth.Set(float64(len(b.queue)))
			b.dispatch(ctx, job)
		}
	}
}

func (b *Broadcaster) dispatch(ctx context.Context, job broadcastJob) {
	dctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	if err := b.deliver.Deliver(dctx, job.env); err != nil {
		metrics.BroadcastsTotal.WithLabelValues(job.env.Event, "failed").Inc()
		b.log.Error().Err(err).Str("event", job.env.Event).Msg("broadcast delivery failed")
		return
	}
	metrics.BroadcastsTotal.WithLabelValues(job.env.Event, "delivered").Inc()
	metrics.DeliveryLatency.Observe(time.Since(job.enqueued).Seconds())
}
