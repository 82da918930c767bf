package ports

import (
	"context"

	"github.com/bistroboss/bistro-api/internal/core/domain"
)

type CartRepository interface {
	ListByEmail(ctx context.Context, email string) ([]domain.CartItem, error)
	FindByID(ctx context.Context, id string) (*domain.CartItem, error)
	Insert(ctx context.Context, item *domain.CartItem) (string, error)
	Delete(ctx context.Context, id string) (int64, error)
	// DeleteOwned removes the given ids that belong to email.
	DeleteOwned(ctx context.Context, email string, ids []string) (int64, error)
}

type PaymentRepository interface {
	Insert(ctx context.Context, p *domain.Payment) (string, error)
	List(ctx context.Context) ([]domain.Payment, error)
	ListByEmail(ctx context.Context, email string) ([]domain.Payment, error)
}

// PaymentIntentProvider is the external card processor.
type PaymentIntentProvider interface {
	CreateIntent(ctx context.Context, amountCents int64, currency string) (clientSecret string, err error)
}

// RecordPaymentResult reports the stored payment and the cart lines cleared.
type RecordPaymentResult struct {
	InsertedID   string `json:"insertedId"`
	DeletedCount int64  `json:"deletedCount"`
}

// OrderService covers carts and checkout.
type OrderService interface {
	ListCart(ctx context.Context, email string) ([]domain.CartItem, error)
	AddToCart(ctx context.Context, owner domain.Identity, item domain.CartItem) (string, error)
	RemoveFromCart(ctx context.Context, requester domain.Identity, id string) (int64, error)

	CreatePaymentIntent(ctx context.Context, price float64) (string, error)
	RecordPayment(ctx context.Context, payer domain.Identity, payment domain.Payment) (*RecordPaymentResult, error)
	ListPaymentsByEmail(ctx context.Context, email string) ([]domain.Payment, error)
	ListPayments(ctx context.Context) ([]domain.Payment, error)
}

// StatsRepository runs the read-only analytics queries.
type StatsRepository interface {
	EstimatedCounts(ctx context.Context) (users, menuItems, payments int64, err error)
	TotalRevenue(ctx context.Context) (float64, error)
	CategoryStats(ctx context.Context) ([]domain.CategoryStat, error)
}

type StatsService interface {
	AdminStats(ctx context.Context) (*domain.AdminStats, error)
	OrderStats(ctx context.Context) ([]domain.CategoryStat, error)
}
