package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/bistroboss/bistro-api/internal/api/metrics"
	"github.com/bistroboss/bistro-api/internal/core/domain"
)

const defaultSendBuffer = 64

// ErrClientClosed is returned when operating on a connection that already
// left the registry.
var ErrClientClosed = errors.New("connection closed")

// Client is one live channel connection. Its identity is bound once, when the
// connection is registered.
type Client struct {
	id       string
	identity domain.Identity
	send     chan []byte

	// guarded by Registry.mu
	rooms  map[string]struct{}
	closed bool
}

func (c *Client) ID() string { return c.id }

func (c *Client) Identity() domain.Identity { return c.identity }

// Send yields outbound frames in enqueue order. It is closed when the client
// is removed from the registry.
func (c *Client) Send() <-chan []byte { return c.send }

// Registry owns every live connection and the room membership table. Joins,
// leaves and delivery enumeration are serialised by one RWMutex, so a
// delivery never observes a half-applied membership change.
type Registry struct {
	mu      sync.RWMutex
	clients map[string]*Client
	rooms   map[string]map[string]*Client
	guards  map[string]MemberCheck
	buffer  int
	log     zerolog.Logger
}

// MemberCheck reports whether identity may still receive a room's traffic.
type MemberCheck func(ctx context.Context, identity domain.Identity) (bool, error)

func NewRegistry(sendBuffer int, log zerolog.Logger) *Registry {
	if sendBuffer <= 0 {
		sendBuffer = defaultSendBuffer
	}
	return &Registry{
		clients: make(map[string]*Client),
		rooms:   make(map[string]map[string]*Client),
		guards:  make(map[string]MemberCheck),
		buffer:  sendBuffer,
		log:     log,
	}
}

// Register adds a connection bound to identity. The zero Identity registers
// an anonymous connection that only receives global events.
func (r *Registry) Register(identity domain.Identity) *Client {
	c := &Client{
		id:       uuid.NewString(),
		identity: identity,
		send:     make(chan []byte, r.buffer),
		rooms:    make(map[string]struct{}),
	}

	r.mu.Lock()
	r.clients[c.id] = c
	r.mu.Unlock()

	metrics.ConnectionsActive.Inc()
	return c
}

// Join adds c to room. Joining a room twice is a no-op.
func (r *Registry) Join(c *Client, room string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c.closed {
		return ErrClientClosed
	}
	members, ok := r.rooms[room]
	if !ok {
		members = make(map[string]*Client)
		r.rooms[room] = members
	}
	members[c.id] = c
	c.rooms[room] = struct{}{}
	return nil
}

func (r *Registry) Leave(c *Client, room string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.leaveLocked(c, room)
}

func (r *Registry) leaveLocked(c *Client, room string) {
	delete(c.rooms, room)
	if members, ok := r.rooms[room]; ok {
		delete(members, c.id)
		if len(members) == 0 {
			delete(r.rooms, room)
		}
	}
}

// Remove drops c and all of its memberships, then closes its send channel.
func (r *Registry) Remove(c *Client) {
	r.mu.Lock()
	if c.closed {
		r.mu.Unlock()
		return
	}
	c.closed = true
	for room := range c.rooms {
		r.leaveLocked(c, room)
	}
	delete(r.clients, c.id)
	close(c.send)
	r.mu.Unlock()

	metrics.ConnectionsActive.Dec()
}

// Guard installs a membership check for room. Every delivery to a guarded
// room re-runs the check per member and evicts members that fail it.
func (r *Registry) Guard(room string, check MemberCheck) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if check == nil {
		delete(r.guards, room)
		return
	}
	r.guards[room] = check
}

// Deliver pushes env to every member of its room, or to every connection for
// a global envelope. It never blocks on a slow connection: one whose buffer
// is full misses the frame.
func (r *Registry) Deliver(ctx context.Context, env domain.Envelope) error {
	frame, err := encodeFrame(env.Event, env.Data)
	if err != nil {
		return err
	}

	r.mu.RLock()
	if env.Global() {
		for _, c := range r.clients {
			r.push(c, env.Event, frame)
		}
		r.mu.RUnlock()
		return nil
	}
	check := r.guards[env.Room]
	if check == nil {
		for _, c := range r.rooms[env.Room] {
			r.push(c, env.Event, frame)
		}
		r.mu.RUnlock()
		return nil
	}
	members := make([]*Client, 0, len(r.rooms[env.Room]))
	for _, c := range r.rooms[env.Room] {
		members = append(members, c)
	}
	r.mu.RUnlock()

	// The check may hit storage, so it runs without the lock held.
	allowed := make([]*Client, 0, len(members))
	for _, c := range members {
		ok, err := check(ctx, c.identity)
		if err != nil {
			r.log.Error().Err(err).
				Str("conn_id", c.id).
				Str("room", env.Room).
				Msg("room membership check failed, frame withheld")
			continue
		}
		if !ok {
			r.evict(c, env.Room)
			continue
		}
		allowed = append(allowed, c)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range allowed {
		if c.closed {
			continue
		}
		if _, in := c.rooms[env.Room]; !in {
			continue
		}
		r.push(c, env.Event, frame)
	}
	return nil
}

func (r *Registry) evict(c *Client, room string) {
	r.mu.Lock()
	r.leaveLocked(c, room)
	r.mu.Unlock()

	r.log.Warn().
		Str("conn_id", c.id).
		Str("identity", c.identity.Email).
		Str("room", room).
		Msg("member no longer allowed in room, evicted")
}

// Reply sends an event to a single connection.
func (r *Registry) Reply(c *Client, event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	frame, err := encodeFrame(event, data)
	if err != nil {
		return err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if c.closed {
		return ErrClientClosed
	}
	r.push(c, event, frame)
	return nil
}

// push must be called with r.mu held.
func (r *Registry) push(c *Client, event string, frame []byte) {
	select {
	case c.send <- frame:
	default:
		metrics.DeliveryDropsTotal.Inc()
		r.log.Warn().
			Str("conn_id", c.id).
			Str("identity", c.identity.Email).
			Str("event", event).
			Msg("send buffer full, frame dropped")
	}
}

// Count returns the number of live connections.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}

// RoomSize returns the number of connections in room.
func (r *Registry) RoomSize(room string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms[room])
}
