package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names in the entertainment database.
const (
	UsersCollection   = "users"
	CatalogCollection = "catalog"
)

const connectTimeout = 10 * time.Second

// DB wraps the process-wide Mongo client. It is created once at startup,
// injected into the repositories, and closed on shutdown; the driver's
// connection pool handles reconnects after transient failures.
type DB struct {
	client *mongo.Client
	name   string
}

// New connects to Mongo and verifies the connection with a ping.
func New(ctx context.Context, uri, name string) (*DB, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, err
	}
	return &DB{client: client, name: name}, nil
}

// Users returns the users collection.
func (db *DB) Users() *mongo.Collection {
	return db.client.Database(db.name).Collection(UsersCollection)
}

// Catalog returns the catalog collection.
func (db *DB) Catalog() *mongo.Collection {
	return db.client.Database(db.name).Collection(CatalogCollection)
}

// EnsureIndexes creates the indexes the application relies on. The unique
// email index is what makes duplicate signups fail atomically.
func (db *DB) EnsureIndexes(ctx context.Context) error {
	_, err := db.Users().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// Close disconnects the client. Called once on process shutdown.
func (db *DB) Close(ctx context.Context) error {
	return db.client.Disconnect(ctx)
}
