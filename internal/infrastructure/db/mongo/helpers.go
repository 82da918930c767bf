package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bistroboss/bistro-api/internal/core/domain"
	"github.com/bistroboss/bistro-api/internal/core/ports"
)

// objectID parses a hex document id.
func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, domain.Invalid("malformed id " + id)
	}
	return oid, nil
}

// objectIDs parses ids, skipping malformed entries.
func objectIDs(ids []string) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			out = append(out, oid)
		}
	}
	return out
}

func insertedID(res *mongo.InsertOneResult) string {
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return fmt.Sprint(res.InsertedID)
}

func updateResult(res *mongo.UpdateResult) ports.UpdateResult {
	return ports.UpdateResult{Matched: res.MatchedCount, Modified: res.ModifiedCount}
}

// storeErr tags a driver failure as a persistence failure.
func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrPersistence, err)
}

// findAll runs a find and converts every decoded document.
func findAll[D any, T any](ctx context.Context, col *mongo.Collection, filter any, conv func(D) T, opts ...*options.FindOptions) ([]T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := col.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}

	var docs []D
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make([]T, 0, len(docs))
	for _, d := range docs {
		out = append(out, conv(d))
	}
	return out, nil
}

// deleteByID removes one document by hex id.
func deleteByID(ctx context.Context, col *mongo.Collection, op, id string) (int64, error) {
	oid, err := objectID(id)
	if err != nil {
		return 0, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return 0, storeErr(op, err)
	}
	return res.DeletedCount, nil
}
