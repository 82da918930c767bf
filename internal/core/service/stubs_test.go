package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/bistroboss/bistro-api/internal/core/domain"
	"github.com/bistroboss/bistro-api/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	mu        sync.Mutex
	users     map[string]*domain.User
	findErr   error
	createErr error
	lookups   int
}

func newStubUserRepo(users ...domain.User) *stubUserRepo {
	r := &stubUserRepo{users: make(map[string]*domain.User)}
	for i := range users {
		u := users[i]
		if u.ID == "" {
			u.ID = fmt.Sprintf("u%d", i+1)
		}
		r.users[u.Email] = &u
	}
	return r
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lookups++
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return "", r.createErr
	}
	if _, ok := r.users[u.Email]; ok {
		return "", domain.ErrUserExists
	}
	clone := *u
	clone.ID = fmt.Sprintf("u%d", len(r.users)+1)
	r.users[u.Email] = &clone
	return clone.ID, nil
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUserRepo) SetRole(_ context.Context, id, role string) (ports.UpdateResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID != id {
			continue
		}
		if u.Role == role {
			return ports.UpdateResult{Matched: 1}, nil
		}
		u.Role = role
		return ports.UpdateResult{Matched: 1, Modified: 1}, nil
	}
	return ports.UpdateResult{}, nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for email, u := range r.users {
		if u.ID == id {
			delete(r.users, email)
			return 1, nil
		}
	}
	return 0, nil
}

func (r *stubUserRepo) role(email string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[email]; ok {
		return u.Role
	}
	return ""
}

// ---------------------------------------------------------------------------
// Messages and delivery
// ---------------------------------------------------------------------------

type stubMessageRepo struct {
	mu        sync.Mutex
	stored    []domain.Message
	insertErr error
}

func (r *stubMessageRepo) Insert(_ context.Context, m *domain.Message) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return "", r.insertErr
	}
	clone := *m
	clone.ID = fmt.Sprintf("m%d", len(r.stored)+1)
	r.stored = append(r.stored, clone)
	return clone.ID, nil
}

func (r *stubMessageRepo) ListByUser(_ context.Context, userID string, page domain.Page) ([]domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Message
	for _, m := range r.stored {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })

	skip := int(page.Skip())
	if skip > len(out) {
		return []domain.Message{}, nil
	}
	out = out[skip:]
	if page.Limit > 0 && page.Limit < len(out) {
		out = out[:page.Limit]
	}
	return out, nil
}

func (r *stubMessageRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stored)
}

// recordingDeliverer captures envelopes and, when repo is set, how many
// records were persisted at the moment of each delivery.
type recordingDeliverer struct {
	mu          sync.Mutex
	envelopes   []domain.Envelope
	storedAtRun []int
	repo        *stubMessageRepo
	err         error
}

func (d *recordingDeliverer) Deliver(_ context.Context, env domain.Envelope) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.envelopes = append(d.envelopes, env)
	if d.repo != nil {
		d.storedAtRun = append(d.storedAtRun, d.repo.count())
	}
	return d.err
}

func (d *recordingDeliverer) delivered() []domain.Envelope {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]domain.Envelope(nil), d.envelopes...)
}

type stubLimiter struct {
	allow bool
	err   error
	keys  []string
}

func (l *stubLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.keys = append(l.keys, key)
	return l.allow, l.err
}

// ---------------------------------------------------------------------------
// Reservations and broadcasts
// ---------------------------------------------------------------------------

type broadcastCall struct {
	event   string
	payload any
}

type recordingBroadcaster struct {
	mu    sync.Mutex
	calls []broadcastCall
}

func (b *recordingBroadcaster) Broadcast(event string, payload any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, broadcastCall{event: event, payload: payload})
}

func (b *recordingBroadcaster) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.calls)
}

type stubReservationRepo struct {
	items     map[string]*domain.Reservation
	seq       int
	insertErr error
	updateErr error
	updates   int
}

func newStubReservationRepo() *stubReservationRepo {
	return &stubReservationRepo{items: make(map[string]*domain.Reservation)}
}

func (r *stubReservationRepo) Insert(_ context.Context, res *domain.Reservation) (string, error) {
	if r.insertErr != nil {
		return "", r.insertErr
	}
	r.seq++
	id := fmt.Sprintf("r%d", r.seq)
	clone := *res
	clone.ID = id
	r.items[id] = &clone
	return id, nil
}

func (r *stubReservationRepo) FindByID(_ context.Context, id string) (*domain.Reservation, error) {
	res, ok := r.items[id]
	if !ok {
		return nil, domain.ErrReservationNotFound
	}
	clone := *res
	return &clone, nil
}

func (r *stubReservationRepo) List(_ context.Context) ([]domain.Reservation, error) {
	out := make([]domain.Reservation, 0, len(r.items))
	for _, res := range r.items {
		out = append(out, *res)
	}
	return out, nil
}

func (r *stubReservationRepo) ListByEmail(_ context.Context, email string) ([]domain.Reservation, error) {
	var out []domain.Reservation
	for _, res := range r.items {
		if res.Email == email {
			out = append(out, *res)
		}
	}
	return out, nil
}

func (r *stubReservationRepo) UpdateStatus(_ context.Context, id string, status domain.ReservationStatus) (ports.UpdateResult, error) {
	r.updates++
	if r.updateErr != nil {
		return ports.UpdateResult{}, r.updateErr
	}
	res, ok := r.items[id]
	if !ok {
		return ports.UpdateResult{}, nil
	}
	if res.Status == status {
		return ports.UpdateResult{Matched: 1}, nil
	}
	res.Status = status
	return ports.UpdateResult{Matched: 1, Modified: 1}, nil
}

func (r *stubReservationRepo) Delete(_ context.Context, id string) (int64, error) {
	if _, ok := r.items[id]; !ok {
		return 0, nil
	}
	delete(r.items, id)
	return 1, nil
}
