package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/flickmark/flickmark-be/internal/database"
	"github.com/flickmark/flickmark-be/internal/models"
)

// Trending recomputation scans every user document, so it gets a wider
// deadline than the request-path operations.
const refreshTimeout = 30 * time.Second

// MongoCatalogRepository implements CatalogRepository on the catalog
// collection. It also reads the users collection to rank bookmark counts.
type MongoCatalogRepository struct {
	catalog *mongo.Collection
	users   *mongo.Collection
}

// NewMongoCatalogRepository creates a catalog repository backed by the given DB.
func NewMongoCatalogRepository(db *database.DB) *MongoCatalogRepository {
	return &MongoCatalogRepository{catalog: db.Catalog(), users: db.Users()}
}

func (r *MongoCatalogRepository) List(ctx context.Context, category string) ([]models.CatalogItem, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}

	cur, err := r.catalog.Find(ctx, filter)
	if err != nil {
		return nil, storeErr(err)
	}
	items := []models.CatalogItem{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, storeErr(err)
	}
	return items, nil
}

func (r *MongoCatalogRepository) RefreshTrending(ctx context.Context, topN int) ([]primitive.ObjectID, error) {
	ctx, cancel := context.WithTimeout(ctx, refreshTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$unwind", Value: "$bookmarks"}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$bookmarks.mediaId",
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
		{{Key: "$limit", Value: topN}},
	}

	cur, err := r.users.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, storeErr(err)
	}
	var ranked []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cur.All(ctx, &ranked); err != nil {
		return nil, storeErr(err)
	}

	ids := make([]primitive.ObjectID, 0, len(ranked))
	for _, row := range ranked {
		ids = append(ids, row.ID)
	}

	// Clear first, then flag the winners. Readers between the two updates see
	// an empty trending shelf for a moment, which is acceptable for a
	// periodic maintenance job.
	if _, err := r.catalog.UpdateMany(ctx, bson.M{"isTrending": true}, bson.M{"$set": bson.M{"isTrending": false}}); err != nil {
		return nil, storeErr(err)
	}
	if len(ids) > 0 {
		if _, err := r.catalog.UpdateMany(ctx, bson.M{"_id": bson.M{"$in": ids}}, bson.M{"$set": bson.M{"isTrending": true}}); err != nil {
			return nil, storeErr(err)
		}
	}
	return ids, nil
}
