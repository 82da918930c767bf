package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bistroboss/bistro-api/internal/core/domain"
)

// MessageRepository stores the append-only support chat log.
type MessageRepository struct {
	col *mongo.Collection
}

func NewMessageRepository(db *mongo.Database) *MessageRepository {
	return &MessageRepository{col: db.Collection(collectionMessages)}
}

type messageDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"userId"`
	Sender    string             `bson:"sender"`
	Message   string             `bson:"message"`
	Timestamp time.Time          `bson:"timestamp"`
}

func (d messageDoc) toDomain() domain.Message {
	return domain.Message{
		ID:        d.ID.Hex(),
		UserID:    d.UserID,
		Sender:    domain.Sender(d.Sender),
		Message:   d.Message,
		Timestamp: d.Timestamp.UTC(),
	}
}

func (r *MessageRepository) Insert(ctx context.Context, msg *domain.Message) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, messageDoc{
		UserID:    msg.UserID,
		Sender:    string(msg.Sender),
		Message:   msg.Message,
		Timestamp: msg.Timestamp,
	})
	if err != nil {
		return "", storeErr("insert message", err)
	}
	return insertedID(res), nil
}

// ListByUser returns a conversation oldest first. Messages sharing a
// timestamp keep insertion order through the _id tie-break.
func (r *MessageRepository) ListByUser(ctx context.Context, userID string, page domain.Page) ([]domain.Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}, {Key: "_id", Value: 1}})
	if page.Limit > 0 {
		opts.SetLimit(int64(page.Limit)).SetSkip(page.Skip())
	}

	msgs, err := findAll(ctx, r.col, bson.M{"userId": userID}, messageDoc.toDomain, opts)
	if err != nil {
		return nil, storeErr("list messages", err)
	}
	return msgs, nil
}
