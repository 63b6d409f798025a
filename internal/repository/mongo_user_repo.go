package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/flickmark/flickmark-be/internal/database"
	"github.com/flickmark/flickmark-be/internal/models"
)

// Per-operation deadline against the store. Requests fail with
// models.ErrStoreUnavailable instead of hanging.
const opTimeout = 5 * time.Second

// MongoUserRepository implements UserRepository on the users collection.
type MongoUserRepository struct {
	coll *mongo.Collection
}

// NewMongoUserRepository creates a user repository backed by the given DB.
func NewMongoUserRepository(db *database.DB) *MongoUserRepository {
	return &MongoUserRepository{coll: db.Users()}
}

func (r *MongoUserRepository) Create(ctx context.Context, user *models.User) (primitive.ObjectID, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, models.ErrAlreadyExists
		}
		return primitive.NilObjectID, storeErr(err)
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return id, nil
}

func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var user models.User
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrUserNotFound
		}
		return nil, storeErr(err)
	}
	return &user, nil
}

func (r *MongoUserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var user models.User
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrUserNotFound
		}
		return nil, storeErr(err)
	}
	return &user, nil
}

// AddBookmark is a single guarded $push: the filter excludes documents that
// already hold the mediaId, so concurrent adds of the same item cannot
// produce duplicates. The store's document update is the only serialization
// point; there is no read-modify-write window.
func (r *MongoUserRepository) AddBookmark(ctx context.Context, email string, entry models.BookmarkEntry) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	filter := bson.M{
		"email":             email,
		"bookmarks.mediaId": bson.M{"$ne": entry.MediaID},
	}
	update := bson.M{
		"$push": bson.M{"bookmarks": entry},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, storeErr(err)
	}
	return res.MatchedCount > 0, nil
}

func (r *MongoUserRepository) RemoveBookmark(ctx context.Context, email string, mediaID primitive.ObjectID) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	update := bson.M{
		"$pull": bson.M{"bookmarks": bson.M{"mediaId": mediaID}},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"email": email}, update)
	if err != nil {
		return false, storeErr(err)
	}
	if res.MatchedCount == 0 {
		return false, models.ErrUserNotFound
	}
	return res.ModifiedCount > 0, nil
}

func (r *MongoUserRepository) Bookmarks(ctx context.Context, email string) ([]models.BookmarkEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var doc struct {
		Bookmarks []models.BookmarkEntry `bson:"bookmarks"`
	}
	opts := options.FindOne().SetProjection(bson.M{"bookmarks": 1})
	err := r.coll.FindOne(ctx, bson.M{"email": email}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrUserNotFound
		}
		return nil, storeErr(err)
	}
	if doc.Bookmarks == nil {
		return []models.BookmarkEntry{}, nil
	}
	return doc.Bookmarks, nil
}

// storeErr maps connectivity and timeout failures onto ErrStoreUnavailable so
// callers never branch on raw driver errors.
func storeErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || mongo.IsTimeout(err) || mongo.IsNetworkError(err) {
		return fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
	}
	return err
}
