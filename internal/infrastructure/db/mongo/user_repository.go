package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bistroboss/bistro-api/internal/core/domain"
	"github.com/bistroboss/bistro-api/internal/core/ports"
)

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

type userDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Email     string             `bson:"email"`
	Name      string             `bson:"name,omitempty"`
	PhotoURL  string             `bson:"photoURL,omitempty"`
	Role      string             `bson:"role,omitempty"`
	CreatedAt time.Time          `bson:"createdAt,omitempty"`
}

func (d userDoc) toDomain() domain.User {
	return domain.User{
		ID:        d.ID.Hex(),
		Email:     d.Email,
		Name:      d.Name,
		PhotoURL:  d.PhotoURL,
		Role:      d.Role,
		CreatedAt: d.CreatedAt,
	}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDoc
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, storeErr("find user", err)
	}
	u := doc.toDomain()
	return &u, nil
}

// Create inserts a user. The role is never written here.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, userDoc{
		Email:     user.Email,
		Name:      user.Name,
		PhotoURL:  user.PhotoURL,
		CreatedAt: user.CreatedAt,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", domain.ErrUserExists
		}
		return "", storeErr("insert user", err)
	}
	return insertedID(res), nil
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	users, err := findAll(ctx, r.col, bson.M{}, userDoc.toDomain)
	if err != nil {
		return nil, storeErr("list users", err)
	}
	return users, nil
}

func (r *UserRepository) SetRole(ctx context.Context, id, role string) (ports.UpdateResult, error) {
	oid, err := objectID(id)
	if err != nil {
		return ports.UpdateResult{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"role": role}})
	if err != nil {
		return ports.UpdateResult{}, storeErr("set role", err)
	}
	return updateResult(res), nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) (int64, error) {
	return deleteByID(ctx, r.col, "delete user", id)
}
