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

type ReservationRepository struct {
	col *mongo.Collection
}

func NewReservationRepository(db *mongo.Database) *ReservationRepository {
	return &ReservationRepository{col: db.Collection(collectionBookings)}
}

type reservationDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Email     string             `bson:"email"`
	Name      string             `bson:"name"`
	Phone     string             `bson:"phone,omitempty"`
	Guests    int                `bson:"guests"`
	Date      string             `bson:"date"`
	Time      string             `bson:"time"`
	Status    string             `bson:"status"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func (d reservationDoc) toDomain() domain.Reservation {
	return domain.Reservation{
		ID:        d.ID.Hex(),
		Email:     d.Email,
		Name:      d.Name,
		Phone:     d.Phone,
		Guests:    d.Guests,
		Date:      d.Date,
		Time:      d.Time,
		Status:    domain.ReservationStatus(d.Status),
		CreatedAt: d.CreatedAt,
	}
}

func (r *ReservationRepository) Insert(ctx context.Context, res *domain.Reservation) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	out, err := r.col.InsertOne(ctx, reservationDoc{
		Email:     res.Email,
		Name:      res.Name,
		Phone:     res.Phone,
		Guests:    res.Guests,
		Date:      res.Date,
		Time:      res.Time,
		Status:    string(res.Status),
		CreatedAt: res.CreatedAt,
	})
	if err != nil {
		return "", storeErr("insert reservation", err)
	}
	return insertedID(out), nil
}

func (r *ReservationRepository) FindByID(ctx context.Context, id string) (*domain.Reservation, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc reservationDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrReservationNotFound
		}
		return nil, storeErr("find reservation", err)
	}
	res := doc.toDomain()
	return &res, nil
}

func (r *ReservationRepository) List(ctx context.Context) ([]domain.Reservation, error) {
	return r.find(ctx, bson.M{})
}

func (r *ReservationRepository) ListByEmail(ctx context.Context, email string) ([]domain.Reservation, error) {
	return r.find(ctx, bson.M{"email": email})
}

func (r *ReservationRepository) find(ctx context.Context, filter bson.M) ([]domain.Reservation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	out, err := findAll(ctx, r.col, filter, reservationDoc.toDomain, opts)
	if err != nil {
		return nil, storeErr("list reservations", err)
	}
	return out, nil
}

func (r *ReservationRepository) UpdateStatus(ctx context.Context, id string, status domain.ReservationStatus) (ports.UpdateResult, error) {
	oid, err := objectID(id)
	if err != nil {
		return ports.UpdateResult{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"status": string(status)}})
	if err != nil {
		return ports.UpdateResult{}, storeErr("update reservation status", err)
	}
	return updateResult(res), nil
}

func (r *ReservationRepository) Delete(ctx context.Context, id string) (int64, error) {
	return deleteByID(ctx, r.col, "delete reservation", id)
}
