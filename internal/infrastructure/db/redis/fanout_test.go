package redis

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/bistroboss/bistro-api/internal/core/domain"
)

type recordingDeliverer struct {
	mu   sync.Mutex
	envs []domain.Envelope
}

func (d *recordingDeliverer) Deliver(_ context.Context, env domain.Envelope) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.envs = append(d.envs, env)
	return nil
}

func (d *recordingDeliverer) delivered() []domain.Envelope {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]domain.Envelope(nil), d.envs...)
}

func TestFanout_DeliversPublishedEnvelopesLocally(t *testing.T) {
	_, client := newTestClient(t)

	local := &recordingDeliverer{}
	f := NewFanout(client, "test:realtime", local, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- f.Run(ctx) }()

	select {
	case <-f.Ready():
	case err := <-done:
		t.Fatalf("Run exited early: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("subscription not ready")
	}

	for i, room := range []string{domain.AdminRoom, "ana@example.com", ""} {
		env, _ := domain.NewEnvelope(room, domain.EventUserMessage, domain.ChatPayload{UserID: "ana@example.com", Message: string(rune('a' + i))})
		if err := f.Deliver(context.Background(), env); err != nil {
			t.Fatalf("Deliver: %v", err)
		}
	}

	deadline := time.Now().Add(2 * time.Second)
	for len(local.delivered()) < 3 {
		if time.Now().After(deadline) {
			t.Fatalf("expected 3 local deliveries, got %d", len(local.delivered()))
		}
		time.Sleep(5 * time.Millisecond)
	}

	got := local.delivered()
	wantRooms := []string{domain.AdminRoom, "ana@example.com", ""}
	for i, env := range got {
		if env.Room != wantRooms[i] || env.Event != domain.EventUserMessage {
			t.Fatalf("envelope %d: unexpected %+v", i, env)
		}
		var p domain.ChatPayload
		if err := json.Unmarshal(env.Data, &p); err != nil || p.Message != string(rune('a'+i)) {
			t.Fatalf("envelope %d: payload %s out of order", i, env.Data)
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error on shutdown: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestFanout_SkipsMalformedPayloads(t *testing.T) {
	_, client := newTestClient(t)
	local := &recordingDeliverer{}
	f := NewFanout(client, "", local, zerolog.Nop())

	f.handle(context.Background(), "not json")
	f.handle(context.Background(), `{"room":"x"}`)

	if n := len(local.delivered()); n != 0 {
		t.Fatalf("malformed payloads must be skipped, got %d deliveries", n)
	}
}
