package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bistroboss/bistro-api/internal/core/domain"
)

type recordingDeliverer struct {
	mu    sync.Mutex
	envs  []domain.Envelope
	err   error
	block chan struct{}
}

func (d *recordingDeliverer) Deliver(_ context.Context, env domain.Envelope) error {
	if d.block != nil {
		<-d.block
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.envs = append(d.envs, env)
	return d.err
}

func (d *recordingDeliverer) delivered() []domain.Envelope {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]domain.Envelope(nil), d.envs...)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before deadline")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestBroadcaster_DeliversGlobalEnvelopes(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d := &recordingDeliverer{}
	b := NewBroadcaster(d, 8, discardLogger)
	b.Start(ctx)

	b.Broadcast(domain.EventReservationUpdated, domain.ReservationUpdate{ID: "r1", Status: domain.ReservationApproved})
	b.Broadcast(domain.EventReservationUpdated, domain.ReservationUpdate{ID: "r2", Status: domain.ReservationCancelled})

	waitFor(t, func() bool { return len(d.delivered()) == 2 })

	envs := d.delivered()
	for i, want := range []string{"r1", "r2"} {
		if !envs[i].Global() || envs[i].Event != domain.EventReservationUpdated {
			t.Fatalf("envelope %d: unexpected %+v", i, envs[i])
		}
		var upd domain.ReservationUpdate
		if err := json.Unmarshal(envs[i].Data, &upd); err != nil || upd.ID != want {
			t.Fatalf("envelope %d: expected id %s, got %s", i, want, envs[i].Data)
		}
	}
}

func TestBroadcaster_NeverBlocksWhenQueueIsFull(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d := &recordingDeliverer{block: make(chan struct{})}
	b := NewBroadcaster(d, 1, discardLogger)
	b.Start(ctx)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			b.Broadcast(domain.EventNewReservation, map[string]int{"n": i})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Broadcast blocked on a stalled deliverer")
	}
	close(d.block)
}

func TestBroadcaster_DeliveryFailureIsSwallowed(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d := &recordingDeliverer{err: errors.New("connection reset")}
	b := NewBroadcaster(d, 4, discardLogger)
	b.Start(ctx)

	b.Broadcast(domain.EventNewReservation, map[string]string{"id": "r1"})
	b.Broadcast(domain.EventNewReservation, map[string]string{"id": "r2"})

	waitFor(t, func() bool { return len(d.delivered()) == 2 })
}
