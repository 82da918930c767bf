package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/bistroboss/bistro-api/internal/core/domain"
	"github.com/bistroboss/bistro-api/internal/core/ports"
)

const paymentStatusPending = "pending"

// OrderService implements the cart and checkout flow.
type OrderService struct {
	carts    ports.CartRepository
	payments ports.PaymentRepository
	provider ports.PaymentIntentProvider
	authz    ports.Authorizer
	currency string
	logger   zerolog.Logger
}

func NewOrderService(
	carts ports.CartRepository,
	payments ports.PaymentRepository,
	provider ports.PaymentIntentProvider,
	authz ports.Authorizer,
	currency string,
	logger zerolog.Logger,
) *OrderService {
	if currency == "" {
		currency = "usd"
	}
	return &OrderService{
		carts:    carts,
		payments: payments,
		provider: provider,
		authz:    authz,
		currency: currency,
		logger:   logger,
	}
}

func (s *OrderService) ListCart(ctx context.Context, email string) ([]domain.CartItem, error) {
	out, err := s.carts.ListByEmail(ctx, email)
	if err != nil {
		return nil, persistenceErr("list cart", err)
	}
	return out, nil
}

// AddToCart stores a line owned by the caller, whatever email the body names.
func (s *OrderService) AddToCart(ctx context.Context, owner domain.Identity, item domain.CartItem) (string, error) {
	if owner.Anonymous() {
		return "", domain.NewAuthError(domain.ReasonMissingCredential, nil)
	}
	if strings.TrimSpace(item.MenuID) == "" {
		return "", domain.Invalid("menuId is required")
	}
	if item.Price < 0 {
		return "", domain.Invalid("price must not be negative")
	}

	item.ID = ""
	item.Email = owner.Email
	id, err := s.carts.Insert(ctx, &item)
	if err != nil {
		return "", persistenceErr("add to cart", err)
	}
	return id, nil
}

// RemoveFromCart deletes a cart line owned by the requester, or any line for
// an admin.
func (s *OrderService) RemoveFromCart(ctx context.Context, requester domain.Identity, id string) (int64, error) {
	item, err := s.carts.FindByID(ctx, id)
	if err != nil {
		return 0, persistenceErr("remove from cart", err)
	}
	if item.Email != requester.Email {
		if err := s.authz.RequireAdmin(ctx, requester.Email); err != nil {
			return 0, err
		}
	}

	n, err := s.carts.Delete(ctx, id)
	if err != nil {
		return 0, persistenceErr("remove from cart", err)
	}
	return n, nil
}

// CreatePaymentIntent asks the card processor for an intent of price in the
// configured currency and returns its client secret.
func (s *OrderService) CreatePaymentIntent(ctx context.Context, price float64) (string, error) {
	if math.IsNaN(price) || price <= 0 {
		return "", domain.Invalid("price must be greater than 0")
	}
	if s.provider == nil {
		return "", fmt.Errorf("create payment intent: %w: no provider configured", domain.ErrPaymentProvider)
	}

	cents := int64(math.Round(price * 100))
	secret, err := s.provider.CreateIntent(ctx, cents, s.currency)
	if err != nil {
		s.logger.Error().Err(err).Int64("amount", cents).Msg("payment intent failed")
		return "", fmt.Errorf("create payment intent: %w: %w", domain.ErrPaymentProvider, err)
	}
	return secret, nil
}

// RecordPayment stores the payment and clears the payer's paid cart lines.
func (s *OrderService) RecordPayment(ctx context.Context, payer domain.Identity, p domain.Payment) (*ports.RecordPaymentResult, error) {
	if payer.Anonymous() {
		return nil, domain.NewAuthError(domain.ReasonMissingCredential, nil)
	}
	if strings.TrimSpace(p.TransactionID) == "" {
		return nil, domain.Invalid("transactionId is required")
	}

	p.ID = ""
	p.Email = payer.Email
	if p.Date.IsZero() {
		p.Date = time.Now().UTC()
	}
	if p.Status == "" {
		p.Status = paymentStatusPending
	}

	id, err := s.payments.Insert(ctx, &p)
	if err != nil {
		return nil, persistenceErr("record payment", err)
	}

	var deleted int64
	if len(p.CartIDs) > 0 {
		deleted, err = s.carts.DeleteOwned(ctx, payer.Email, p.CartIDs)
		if err != nil {
			// The payment is stored; the cart lines will just linger.
			s.logger.Warn().Err(err).Str("payment_id", id).Msg("failed to clear paid cart lines")
		}
	}

	s.logger.Info().Str("payment_id", id).Str("email", payer.Email).Float64("price", p.Price).Msg("payment recorded")
	return &ports.RecordPaymentResult{InsertedID: id, DeletedCount: deleted}, nil
}

func (s *OrderService) ListPaymentsByEmail(ctx context.Context, email string) ([]domain.Payment, error) {
	out, err := s.payments.ListByEmail(ctx, email)
	if err != nil {
		return nil, persistenceErr("list payments by email", err)
	}
	return out, nil
}

func (s *OrderService) ListPayments(ctx context.Context) ([]domain.Payment, error) {
	out, err := s.payments.List(ctx)
	if err != nil {
		return nil, persistenceErr("list payments", err)
	}
	return out, nil
}
