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
)

// ── Carts ────────────────────────────────────────────────────────────────────

type CartRepository struct {
	col *mongo.Collection
}

func NewCartRepository(db *mongo.Database) *CartRepository {
	return &CartRepository{col: db.Collection(collectionCarts)}
}

type cartDoc struct {
	ID     primitive.ObjectID `bson:"_id,omitempty"`
	MenuID string             `bson:"menuId"`
	Email  string             `bson:"email"`
	Name   string             `bson:"name"`
	Image  string             `bson:"image,omitempty"`
	Price  float64            `bson:"price"`
}

func (d cartDoc) toDomain() domain.CartItem {
	return domain.CartItem{
		ID:     d.ID.Hex(),
		MenuID: d.MenuID,
		Email:  d.Email,
		Name:   d.Name,
		Image:  d.Image,
		Price:  d.Price,
	}
}

func (r *CartRepository) ListByEmail(ctx context.Context, email string) ([]domain.CartItem, error) {
	out, err := findAll(ctx, r.col, bson.M{"email": email}, cartDoc.toDomain)
	if err != nil {
		return nil, storeErr("list cart", err)
	}
	return out, nil
}

func (r *CartRepository) FindByID(ctx context.Context, id string) (*domain.CartItem, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc cartDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, storeErr("find cart item", err)
	}
	item := doc.toDomain()
	return &item, nil
}

func (r *CartRepository) Insert(ctx context.Context, item *domain.CartItem) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, cartDoc{
		MenuID: item.MenuID,
		Email:  item.Email,
		Name:   item.Name,
		Image:  item.Image,
		Price:  item.Price,
	})
	if err != nil {
		return "", storeErr("insert cart item", err)
	}
	return insertedID(res), nil
}

func (r *CartRepository) Delete(ctx context.Context, id string) (int64, error) {
	return deleteByID(ctx, r.col, "delete cart item", id)
}

// DeleteOwned removes the listed cart lines that belong to email.
func (r *CartRepository) DeleteOwned(ctx context.Context, email string, ids []string) (int64, error) {
	oids := objectIDs(ids)
	if len(oids) == 0 {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": oids}, "email": email})
	if err != nil {
		return 0, storeErr("delete paid cart items", err)
	}
	return res.DeletedCount, nil
}

// ── Payments ─────────────────────────────────────────────────────────────────

type PaymentRepository struct {
	col *mongo.Collection
}

func NewPaymentRepository(db *mongo.Database) *PaymentRepository {
	return &PaymentRepository{col: db.Collection(collectionPayments)}
}

type paymentDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Email         string             `bson:"email"`
	Price         float64            `bson:"price"`
	TransactionID string             `bson:"transactionId"`
	Date          time.Time          `bson:"date"`
	CartIDs       []string           `bson:"cartIds"`
	MenuIDs       []string           `bson:"menuIds"`
	Status        string             `bson:"status"`
}

func (d paymentDoc) toDomain() domain.Payment {
	return domain.Payment{
		ID:            d.ID.Hex(),
		Email:         d.Email,
		Price:         d.Price,
		TransactionID: d.TransactionID,
		Date:          d.Date,
		CartIDs:       d.CartIDs,
		MenuIDs:       d.MenuIDs,
		Status:        d.Status,
	}
}

func (r *PaymentRepository) Insert(ctx context.Context, p *domain.Payment) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, paymentDoc{
		Email:         p.Email,
		Price:         p.Price,
		TransactionID: p.TransactionID,
		Date:          p.Date,
		CartIDs:       p.CartIDs,
		MenuIDs:       p.MenuIDs,
		Status:        p.Status,
	})
	if err != nil {
		return "", storeErr("insert payment", err)
	}
	return insertedID(res), nil
}

func (r *PaymentRepository) List(ctx context.Context) ([]domain.Payment, error) {
	return r.find(ctx, bson.M{})
}

func (r *PaymentRepository) ListByEmail(ctx context.Context, email string) ([]domain.Payment, error) {
	return r.find(ctx, bson.M{"email": email})
}

func (r *PaymentRepository) find(ctx context.Context, filter bson.M) ([]domain.Payment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	out, err := findAll(ctx, r.col, filter, paymentDoc.toDomain, opts)
	if err != nil {
		return nil, storeErr("list payments", err)
	}
	return out, nil
}
