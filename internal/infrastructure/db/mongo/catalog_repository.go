package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bistroboss/bistro-api/internal/core/domain"
	"github.com/bistroboss/bistro-api/internal/core/ports"
)

// ── Menu ─────────────────────────────────────────────────────────────────────

type MenuRepository struct {
	col *mongo.Collection
}

func NewMenuRepository(db *mongo.Database) *MenuRepository {
	return &MenuRepository{col: db.Collection(collectionMenu)}
}

type menuDoc struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Name     string             `bson:"name"`
	Category string             `bson:"category"`
	Price    float64            `bson:"price"`
	Recipe   string             `bson:"recipe,omitempty"`
	Image    string             `bson:"image,omitempty"`
}

func (d menuDoc) toDomain() domain.MenuItem {
	return domain.MenuItem{
		ID:       d.ID.Hex(),
		Name:     d.Name,
		Category: d.Category,
		Price:    d.Price,
		Recipe:   d.Recipe,
		Image:    d.Image,
	}
}

func newMenuDoc(item *domain.MenuItem) menuDoc {
	return menuDoc{
		Name:     item.Name,
		Category: item.Category,
		Price:    item.Price,
		Recipe:   item.Recipe,
		Image:    item.Image,
	}
}

func (r *MenuRepository) List(ctx context.Context) ([]domain.MenuItem, error) {
	items, err := findAll(ctx, r.col, bson.M{}, menuDoc.toDomain)
	if err != nil {
		return nil, storeErr("list menu", err)
	}
	return items, nil
}

func (r *MenuRepository) FindByID(ctx context.Context, id string) (*domain.MenuItem, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc menuDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, storeErr("find menu item", err)
	}
	item := doc.toDomain()
	return &item, nil
}

func (r *MenuRepository) Insert(ctx context.Context, item *domain.MenuItem) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, newMenuDoc(item))
	if err != nil {
		return "", storeErr("insert menu item", err)
	}
	return insertedID(res), nil
}

func (r *MenuRepository) Update(ctx context.Context, id string, item *domain.MenuItem) (ports.UpdateResult, error) {
	oid, err := objectID(id)
	if err != nil {
		return ports.UpdateResult{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{
		"name":     item.Name,
		"category": item.Category,
		"price":    item.Price,
		"recipe":   item.Recipe,
		"image":    item.Image,
	}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return ports.UpdateResult{}, storeErr("update menu item", err)
	}
	return updateResult(res), nil
}

func (r *MenuRepository) Delete(ctx context.Context, id string) (int64, error) {
	return deleteByID(ctx, r.col, "delete menu item", id)
}

// ── Reviews ──────────────────────────────────────────────────────────────────

type ReviewRepository struct {
	col *mongo.Collection
}

func NewReviewRepository(db *mongo.Database) *ReviewRepository {
	return &ReviewRepository{col: db.Collection(collectionReviews)}
}

type reviewDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Details   string             `bson:"details"`
	Rating    float64            `bson:"rating"`
	CreatedAt time.Time          `bson:"createdAt,omitempty"`
}

func (d reviewDoc) toDomain() domain.Review {
	return domain.Review{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Email:     d.Email,
		Details:   d.Details,
		Rating:    d.Rating,
		CreatedAt: d.CreatedAt,
	}
}

func (r *ReviewRepository) List(ctx context.Context) ([]domain.Review, error) {
	return r.find(ctx, bson.M{})
}

func (r *ReviewRepository) ListByEmail(ctx context.Context, email string) ([]domain.Review, error) {
	return r.find(ctx, bson.M{"email": email})
}

func (r *ReviewRepository) find(ctx context.Context, filter bson.M) ([]domain.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	out, err := findAll(ctx, r.col, filter, reviewDoc.toDomain, opts)
	if err != nil {
		return nil, storeErr("list reviews", err)
	}
	return out, nil
}

func (r *ReviewRepository) Insert(ctx context.Context, review *domain.Review) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, reviewDoc{
		Name:      review.Name,
		Email:     review.Email,
		Details:   review.Details,
		Rating:    review.Rating,
		CreatedAt: review.CreatedAt,
	})
	if err != nil {
		return "", storeErr("insert review", err)
	}
	return insertedID(res), nil
}

// ── Contacts ─────────────────────────────────────────────────────────────────

type ContactRepository struct {
	col *mongo.Collection
}

func NewContactRepository(db *mongo.Database) *ContactRepository {
	return &ContactRepository{col: db.Collection(collectionContacts)}
}

type contactDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Phone     string             `bson:"phone,omitempty"`
	Message   string             `bson:"message"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func (r *ContactRepository) Insert(ctx context.Context, c *domain.Contact) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, contactDoc{
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Message:   c.Message,
		CreatedAt: c.CreatedAt,
	})
	if err != nil {
		return "", storeErr("insert contact", err)
	}
	return insertedID(res), nil
}
