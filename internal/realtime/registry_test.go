package realtime

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/bistroboss/bistro-api/internal/core/domain"
)

var discardLogger = zerolog.Nop()

// drain returns the frames currently buffered for c without blocking.
func drain(t *testing.T, c *Client) []Frame {
	t.Helper()
	var out []Frame
	for {
		select {
		case raw, ok := <-c.Send():
			if !ok {
				return out
			}
			var f Frame
			if err := json.Unmarshal(raw, &f); err != nil {
				t.Fatalf("decode frame: %v", err)
			}
			out = append(out, f)
		default:
			return out
		}
	}
}

func mustEnvelope(t *testing.T, room, event string, payload any) domain.Envelope {
	t.Helper()
	env, err := domain.NewEnvelope(room, event, payload)
	if err != nil {
		t.Fatalf("NewEnvelope: %v", err)
	}
	return env
}

func TestRegistry_RoomIsolation(t *testing.T) {
	reg := NewRegistry(8, discardLogger)
	ana := reg.Register(domain.Identity{Email: "ana@example.com"})
	bob := reg.Register(domain.Identity{Email: "bob@example.com"})
	admin := reg.Register(domain.Identity{Email: "boss@example.com"})

	_ = reg.Join(ana, "ana@example.com")
	_ = reg.Join(bob, "bob@example.com")
	_ = reg.Join(admin, domain.AdminRoom)

	ctx := context.Background()
	_ = reg.Deliver(ctx, mustEnvelope(t, domain.AdminRoom, domain.EventUserMessage, domain.ChatPayload{UserID: "ana@example.com", Message: "hi"}))
	_ = reg.Deliver(ctx, mustEnvelope(t, "bob@example.com", domain.EventAdminMessage, "for bob"))

	if got := drain(t, ana); len(got) != 0 {
		t.Fatalf("ana must receive nothing, got %+v", got)
	}
	if got := drain(t, bob); len(got) != 1 || got[0].Event != domain.EventAdminMessage {
		t.Fatalf("bob must receive only his adminMessage, got %+v", got)
	}
	if got := drain(t, admin); len(got) != 1 || got[0].Event != domain.EventUserMessage {
		t.Fatalf("admin must receive only the userMessage, got %+v", got)
	}
}

func TestRegistry_GuardEvictsMembersThatFailTheCheck(t *testing.T) {
	reg := NewRegistry(8, discardLogger)
	var mu sync.Mutex
	allowed := map[string]bool{"boss@example.com": true, "chef@example.com": true}
	reg.Guard(domain.AdminRoom, func(_ context.Context, id domain.Identity) (bool, error) {
		mu.Lock()
		defer mu.Unlock()
		return allowed[id.Email], nil
	})

	boss := reg.Register(domain.Identity{Email: "boss@example.com"})
	chef := reg.Register(domain.Identity{Email: "chef@example.com"})
	_ = reg.Join(boss, domain.AdminRoom)
	_ = reg.Join(chef, domain.AdminRoom)

	mu.Lock()
	delete(allowed, "chef@example.com")
	mu.Unlock()

	env := mustEnvelope(t, domain.AdminRoom, domain.EventUserMessage, domain.ChatPayload{UserID: "ana@example.com", Message: "hi"})
	if err := reg.Deliver(context.Background(), env); err != nil {
		t.Fatalf("Deliver: %v", err)
	}

	if got := drain(t, boss); len(got) != 1 {
		t.Fatalf("boss should still receive, got %+v", got)
	}
	if got := drain(t, chef); len(got) != 0 {
		t.Fatalf("chef must receive nothing once the check fails, got %+v", got)
	}
	if n := reg.RoomSize(domain.AdminRoom); n != 1 {
		t.Fatalf("expected chef evicted, room size %d", n)
	}
}

func TestRegistry_GlobalReachesEveryConnection(t *testing.T) {
	reg := NewRegistry(8, discardLogger)
	anon := reg.Register(domain.Identity{})
	ana := reg.Register(domain.Identity{Email: "ana@example.com"})
	_ = reg.Join(ana, "ana@example.com")

	_ = reg.Deliver(context.Background(), mustEnvelope(t, "", domain.EventReservationUpdated, domain.ReservationUpdate{ID: "r1", Status: domain.ReservationApproved}))

	for name, c := range map[string]*Client{"anonymous": anon, "ana": ana} {
		got := drain(t, c)
		if len(got) != 1 || got[0].Event != domain.EventReservationUpdated {
			t.Fatalf("%s: expected exactly one reservationUpdated, got %+v", name, got)
		}
	}
}

func TestRegistry_RemoveDropsMemberships(t *testing.T) {
	reg := NewRegistry(8, discardLogger)
	c := reg.Register(domain.Identity{Email: "ana@example.com"})
	_ = reg.Join(c, "ana@example.com")
	_ = reg.Join(c, domain.AdminRoom)

	reg.Remove(c)

	if reg.Count() != 0 || reg.RoomSize("ana@example.com") != 0 || reg.RoomSize(domain.AdminRoom) != 0 {
		t.Fatalf("removed connection still tracked: count=%d", reg.Count())
	}
	if _, ok := <-c.Send(); ok {
		t.Fatal("send channel must be closed after Remove")
	}
	if err := reg.Join(c, "ana@example.com"); err != ErrClientClosed {
		t.Fatalf("expected ErrClientClosed, got %v", err)
	}

	// Removing twice and delivering afterwards must not panic.
	reg.Remove(c)
	_ = reg.Deliver(context.Background(), mustEnvelope(t, "", domain.EventNewReservation, map[string]string{"id": "r1"}))
}

func TestRegistry_JoinIsIdempotent(t *testing.T) {
	reg := NewRegistry(8, discardLogger)
	c := reg.Register(domain.Identity{Email: "ana@example.com"})
	_ = reg.Join(c, "ana@example.com")
	_ = reg.Join(c, "ana@example.com")

	_ = reg.Deliver(context.Background(), mustEnvelope(t, "ana@example.com", domain.EventAdminMessage, "once"))
	if got := drain(t, c); len(got) != 1 {
		t.Fatalf("expected a single delivery, got %d", len(got))
	}
}

func TestRegistry_FullBufferDropsInsteadOfBlocking(t *testing.T) {
	reg := NewRegistry(2, discardLogger)
	c := reg.Register(domain.Identity{})

	env := mustEnvelope(t, "", domain.EventNewReservation, map[string]string{"id": "r1"})
	for i := 0; i < 5; i++ {
		_ = reg.Deliver(context.Background(), env)
	}
	if got := drain(t, c); len(got) != 2 {
		t.Fatalf("expected buffer-sized delivery of 2, got %d", len(got))
	}
}

func TestRegistry_ConcurrentJoinLeaveAndDeliver(t *testing.T) {
	reg := NewRegistry(1024, discardLogger)
	watcher := reg.Register(domain.Identity{Email: "boss@example.com"})
	_ = reg.Join(watcher, domain.AdminRoom)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			c := reg.Register(domain.Identity{Email: "x@example.com"})
			_ = reg.Join(c, domain.AdminRoom)
			reg.Leave(c, domain.AdminRoom)
			reg.Remove(c)
		}()
		go func() {
			defer wg.Done()
			_ = reg.Deliver(context.Background(), mustEnvelope(t, domain.AdminRoom, domain.EventUserMessage, domain.ChatPayload{UserID: "x", Message: "m"}))
		}()
	}
	wg.Wait()

	if got := drain(t, watcher); len(got) != 20 {
		t.Fatalf("steady member must see every delivery exactly once, got %d", len(got))
	}
	if reg.Count() != 1 || reg.RoomSize(domain.AdminRoom) != 1 {
		t.Fatalf("unexpected registry state count=%d admin=%d", reg.Count(), reg.RoomSize(domain.AdminRoom))
	}
}
