package ports

import (
	"context"

	"github.com/bistroboss/bistro-api/internal/core/domain"
)

type MenuRepository interface {
	List(ctx context.Context) ([]domain.MenuItem, error)
	FindByID(ctx context.Context, id string) (*domain.MenuItem, error)
	Insert(ctx context.Context, item *domain.MenuItem) (string, error)
	Update(ctx context.Context, id string, item *domain.MenuItem) (UpdateResult, error)
	Delete(ctx context.Context, id string) (int64, error)
}

type ReviewRepository interface {
	List(ctx context.Context) ([]domain.Review, error)
	ListByEmail(ctx context.Context, email string) ([]domain.Review, error)
	Insert(ctx context.Context, review *domain.Review) (string, error)
}

type ContactRepository interface {
	Insert(ctx context.Context, contact *domain.Contact) (string, error)
}

// CatalogService covers the public-facing menu, reviews and contact form.
type CatalogService interface {
	ListMenu(ctx context.Context) ([]domain.MenuItem, error)
	GetMenuItem(ctx context.Context, id string) (*domain.MenuItem, error)
	CreateMenuItem(ctx context.Context, item domain.MenuItem) (string, error)
	UpdateMenuItem(ctx context.Context, id string, item domain.MenuItem) (UpdateResult, error)
	DeleteMenuItem(ctx context.Context, id string) (int64, error)

	ListReviews(ctx context.Context) ([]domain.Review, error)
	ListReviewsByEmail(ctx context.Context, email string) ([]domain.Review, error)
	CreateReview(ctx context.Context, author domain.Identity, review domain.Review) (string, error)

	SubmitContact(ctx context.Context, contact domain.Contact) (string, error)
}
