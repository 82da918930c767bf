package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/bistroboss/bistro-api/internal/core/domain"
	"github.com/bistroboss/bistro-api/internal/core/ports"
)

// CatalogService serves the menu, reviews and the contact form.
type CatalogService struct {
	menu     ports.MenuRepository
	reviews  ports.ReviewRepository
	contacts ports.ContactRepository
	logger   zerolog.Logger
}

func NewCatalogService(
	menu ports.MenuRepository,
	reviews ports.ReviewRepository,
	contacts ports.ContactRepository,
	logger zerolog.Logger,
) *CatalogService {
	return &CatalogService{menu: menu, reviews: reviews, contacts: contacts, logger: logger}
}

func (s *CatalogService) ListMenu(ctx context.Context) ([]domain.MenuItem, error) {
	items, err := s.menu.List(ctx)
	if err != nil {
		return nil, persistenceErr("list menu", err)
	}
	return items, nil
}

func (s *CatalogService) GetMenuItem(ctx context.Context, id string) (*domain.MenuItem, error) {
	item, err := s.menu.FindByID(ctx, id)
	if err != nil {
		return nil, persistenceErr("get menu item", err)
	}
	return item, nil
}

func (s *CatalogService) CreateMenuItem(ctx context.Context, item domain.MenuItem) (string, error) {
	if err := validateMenuItem(item); err != nil {
		return "", err
	}
	item.ID = ""
	id, err := s.menu.Insert(ctx, &item)
	if err != nil {
		return "", persistenceErr("create menu item", err)
	}
	s.logger.Info().Str("menu_id", id).Str("name", item.Name).Msg("menu item created")
	return id, nil
}

func (s *CatalogService) UpdateMenuItem(ctx context.Context, id string, item domain.MenuItem) (ports.UpdateResult, error) {
	if err := validateMenuItem(item); err != nil {
		return ports.UpdateResult{}, err
	}
	item.ID = ""
	res, err := s.menu.Update(ctx, id, &item)
	if err != nil {
		return ports.UpdateResult{}, persistenceErr("update menu item", err)
	}
	return res, nil
}

func (s *CatalogService) DeleteMenuItem(ctx context.Context, id string) (int64, error) {
	n, err := s.menu.Delete(ctx, id)
	if err != nil {
		return 0, persistenceErr("delete menu item", err)
	}
	return n, nil
}

func (s *CatalogService) ListReviews(ctx context.Context) ([]domain.Review, error) {
	out, err := s.reviews.List(ctx)
	if err != nil {
		return nil, persistenceErr("list reviews", err)
	}
	return out, nil
}

func (s *CatalogService) ListReviewsByEmail(ctx context.Context, email string) ([]domain.Review, error) {
	out, err := s.reviews.ListByEmail(ctx, email)
	if err != nil {
		return nil, persistenceErr("list reviews by email", err)
	}
	return out, nil
}

// CreateReview stores a review attributed to the author's verified email.
func (s *CatalogService) CreateReview(ctx context.Context, author domain.Identity, review domain.Review) (string, error) {
	if author.Anonymous() {
		return "", domain.NewAuthError(domain.ReasonMissingCredential, nil)
	}
	if strings.TrimSpace(review.Details) == "" {
		return "", domain.Invalid("details are required")
	}
	if review.Rating < 0 || review.Rating > 5 {
		return "", domain.Invalid("rating must be between 0 and 5")
	}

	review.ID = ""
	review.Email = author.Email
	review.CreatedAt = time.Now().UTC()

	id, err := s.reviews.Insert(ctx, &review)
	if err != nil {
		return "", persistenceErr("create review", err)
	}
	return id, nil
}

func (s *CatalogService) SubmitContact(ctx context.Context, contact domain.Contact) (string, error) {
	if strings.TrimSpace(contact.Email) == "" || strings.TrimSpace(contact.Message) == "" {
		return "", domain.Invalid("email and message are required")
	}

	contact.ID = ""
	contact.CreatedAt = time.Now().UTC()

	id, err := s.contacts.Insert(ctx, &contact)
	if err != nil {
		return "", persistenceErr("submit contact", err)
	}
	s.logger.Info().Str("contact_id", id).Msg("contact message received")
	return id, nil
}

func validateMenuItem(item domain.MenuItem) error {
	if strings.TrimSpace(item.Name) == "" {
		return domain.Invalid("name is required")
	}
	if strings.TrimSpace(item.Category) == "" {
		return domain.Invalid("category is required")
	}
	if item.Price < 0 {
		return domain.Invalid("price must not be negative")
	}
	return nil
}
