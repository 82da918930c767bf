package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bistroboss/bistro-api/internal/core/domain"
)

// StatsRepository runs the dashboard aggregations.
type StatsRepository struct {
	users    *mongo.Collection
	menu     *mongo.Collection
	payments *mongo.Collection
}

func NewStatsRepository(db *mongo.Database) *StatsRepository {
	return &StatsRepository{
		users:    db.Collection(collectionUsers),
		menu:     db.Collection(collectionMenu),
		payments: db.Collection(collectionPayments),
	}
}

func (r *StatsRepository) EstimatedCounts(ctx context.Context) (users, menuItems, payments int64, err error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if users, err = r.users.EstimatedDocumentCount(ctx); err != nil {
		return 0, 0, 0, storeErr("count users", err)
	}
	if menuItems, err = r.menu.EstimatedDocumentCount(ctx); err != nil {
		return 0, 0, 0, storeErr("count menu", err)
	}
	if payments, err = r.payments.EstimatedDocumentCount(ctx); err != nil {
		return 0, 0, 0, storeErr("count payments", err)
	}
	return users, menuItems, payments, nil
}

func (r *StatsRepository) TotalRevenue(ctx context.Context) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.payments.Aggregate(ctx, revenuePipeline())
	if err != nil {
		return 0, storeErr("aggregate revenue", err)
	}

	var rows []struct {
		TotalRevenue float64 `bson:"totalRevenue"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return 0, storeErr("decode revenue", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].TotalRevenue, nil
}

// CategoryStats counts sold items and revenue per menu category.
func (r *StatsRepository) CategoryStats(ctx context.Context) ([]domain.CategoryStat, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.payments.Aggregate(ctx, categoryPipeline(collectionMenu))
	if err != nil {
		return nil, storeErr("aggregate order stats", err)
	}

	out := []domain.CategoryStat{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, storeErr("decode order stats", err)
	}
	return out, nil
}

func revenuePipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "totalRevenue", Value: bson.D{{Key: "$sum", Value: "$price"}}},
		}}},
	}
}

// categoryPipeline joins each paid menu id to the menu collection. Payment
// documents store menu ids as hex strings, so they are converted before the
// lookup; unparsable ids drop out.
func categoryPipeline(menuCollection string) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$unwind", Value: "$menuIds"}},
		{{Key: "$addFields", Value: bson.D{
			{Key: "menuOid", Value: bson.D{{Key: "$convert", Value: bson.D{
				{Key: "input", Value: "$menuIds"},
				{Key: "to", Value: "objectId"},
				{Key: "onError", Value: nil},
				{Key: "onNull", Value: nil},
			}}}},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: menuCollection},
			{Key: "localField", Value: "menuOid"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "menuItems"},
		}}},
		{{Key: "$unwind", Value: "$menuItems"}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$menuItems.category"},
			{Key: "quantity", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "revenue", Value: bson.D{{Key: "$sum", Value: "$menuItems.price"}}},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "category", Value: "$_id"},
			{Key: "quantity", Value: "$quantity"},
			{Key: "revenue", Value: "$revenue"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "category", Value: 1}}}},
	}
}
