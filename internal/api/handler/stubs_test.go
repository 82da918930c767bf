package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bistroboss/bistro-api/internal/api/middleware"
	"github.com/bistroboss/bistro-api/internal/core/domain"
	"github.com/bistroboss/bistro-api/internal/core/ports"
)

func newTestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withIdentity(c echo.Context, email string) echo.Context {
	middleware.SetIdentity(c, domain.Identity{Email: email, ExpiresAt: time.Now().Add(time.Hour)})
	return c
}

type stubIssuer struct {
	issued []string
	err    error
}

func (s *stubIssuer) Issue(email string) (string, time.Time, error) {
	if s.err != nil {
		return "", time.Time{}, s.err
	}
	s.issued = append(s.issued, email)
	return "token-for-" + email, time.Now().Add(time.Hour), nil
}

type stubUsers struct {
	admins   map[string]bool
	existing map[string]bool
	inputs   []ports.RegisterUserInput
}

func (s *stubUsers) RegisterUser(_ context.Context, in ports.RegisterUserInput) (*ports.RegisterUserResult, error) {
	s.inputs = append(s.inputs, in)
	if s.existing[in.Email] {
		return &ports.RegisterUserResult{AlreadyExists: true}, nil
	}
	return &ports.RegisterUserResult{InsertedID: "u1"}, nil
}

func (s *stubUsers) IsAdmin(_ context.Context, email string) (bool, error) {
	return s.admins[email], nil
}

func (s *stubUsers) ListUsers(context.Context) ([]domain.User, error) {
	return []domain.User{{ID: "u1", Email: "ana@example.com"}}, nil
}

func (s *stubUsers) PromoteUser(context.Context, string) (ports.UpdateResult, error) {
	return ports.UpdateResult{Matched: 1, Modified: 1}, nil
}

func (s *stubUsers) DeleteUser(context.Context, string) (int64, error) { return 1, nil }

type stubChat struct {
	userID string
	page   domain.Page
	msgs   []domain.Message
}

func (s *stubChat) RelayUserMessage(context.Context, domain.Identity, ports.ChatInput) (*domain.Message, error) {
	return nil, nil
}

func (s *stubChat) RelayAdminMessage(context.Context, domain.Identity, ports.ChatInput) (*domain.Message, error) {
	return nil, nil
}

func (s *stubChat) MessageHistory(_ context.Context, userID string, page domain.Page) ([]domain.Message, error) {
	s.userID = userID
	s.page = page
	return s.msgs, nil
}

type stubReservations struct {
	owner  domain.Identity
	input  ports.CreateReservationInput
	status domain.ReservationStatus
	err    error
}

func (s *stubReservations) CreateReservation(_ context.Context, owner domain.Identity, in ports.CreateReservationInput) (*domain.Reservation, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.owner, s.input = owner, in
	return &domain.Reservation{ID: "r1", Email: owner.Email, Guests: in.Guests, Status: domain.ReservationPending}, nil
}

func (s *stubReservations) ListReservations(context.Context) ([]domain.Reservation, error) {
	return nil, nil
}

func (s *stubReservations) ListReservationsByEmail(context.Context, string) ([]domain.Reservation, error) {
	return nil, nil
}

func (s *stubReservations) UpdateReservationStatus(_ context.Context, _ string, status domain.ReservationStatus) (ports.UpdateResult, error) {
	s.status = status
	return ports.UpdateResult{Matched: 1, Modified: 1}, nil
}

func (s *stubReservations) DeleteReservation(context.Context, domain.Identity, string) (int64, error) {
	return 1, nil
}

type stubOrders struct {
	price   float64
	payment domain.Payment
	payer   domain.Identity
	cartFor string
}

func (s *stubOrders) ListCart(_ context.Context, email string) ([]domain.CartItem, error) {
	s.cartFor = email
	return []domain.CartItem{}, nil
}

func (s *stubOrders) AddToCart(context.Context, domain.Identity, domain.CartItem) (string, error) {
	return "c1", nil
}

func (s *stubOrders) RemoveFromCart(context.Context, domain.Identity, string) (int64, error) {
	return 1, nil
}

func (s *stubOrders) CreatePaymentIntent(_ context.Context, price float64) (string, error) {
	s.price = price
	return "pi_secret", nil
}

func (s *stubOrders) RecordPayment(_ context.Context, payer domain.Identity, p domain.Payment) (*ports.RecordPaymentResult, error) {
	s.payer, s.payment = payer, p
	return &ports.RecordPaymentResult{InsertedID: "p1", DeletedCount: int64(len(p.CartIDs))}, nil
}

func (s *stubOrders) ListPaymentsByEmail(context.Context, string) ([]domain.Payment, error) {
	return nil, nil
}

func (s *stubOrders) ListPayments(context.Context) ([]domain.Payment, error) { return nil, nil }

type stubAuthenticator struct {
	identity domain.Identity
	header   string
	token    string
}

func (s *stubAuthenticator) Authenticate(header string) (domain.Identity, error) {
	s.header = header
	if header != "Bearer good" {
		return domain.Identity{}, domain.NewAuthError(domain.ReasonInvalidToken, nil)
	}
	return s.identity, nil
}

func (s *stubAuthenticator) Verify(token string) (domain.Identity, error) {
	s.token = token
	if token != "good" {
		return domain.Identity{}, domain.NewAuthError(domain.ReasonInvalidToken, nil)
	}
	return s.identity, nil
}

type recordingServer struct {
	served   bool
	identity domain.Identity
}

func (s *recordingServer) Serve(w http.ResponseWriter, _ *http.Request, id domain.Identity) error {
	s.served = true
	s.identity = id
	w.WriteHeader(http.StatusSwitchingProtocols)
	return nil
}
