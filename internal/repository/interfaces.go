// Package repository defines the persistence interfaces and their Mongo
// implementations.
package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/flickmark/flickmark-be/internal/models"
)

// UserRepository persists accounts and their embedded bookmark lists.
type UserRepository interface {
	// Create inserts a new user. Returns models.ErrAlreadyExists when the
	// email is already registered.
	Create(ctx context.Context, user *models.User) (primitive.ObjectID, error)

	// FindByEmail returns the user with the given (normalized) email, or
	// models.ErrUserNotFound.
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// FindByID returns the user with the given id, or models.ErrUserNotFound.
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)

	// AddBookmark appends the entry in a single document update, guarded so
	// that an entry with the same mediaId is never duplicated. added is false
	// when nothing was written, either because the bookmark already exists or
	// because no user matches the email; callers disambiguate by re-reading.
	AddBookmark(ctx context.Context, email string, entry models.BookmarkEntry) (added bool, err error)

	// RemoveBookmark pulls every entry with the given mediaId in a single
	// document update. Returns models.ErrUserNotFound when no user matches;
	// removed is false when the user exists but had no such bookmark.
	RemoveBookmark(ctx context.Context, email string, mediaID primitive.ObjectID) (removed bool, err error)

	// Bookmarks reads the user's current bookmark list straight from the
	// store, or models.ErrUserNotFound.
	Bookmarks(ctx context.Context, email string) ([]models.BookmarkEntry, error)
}

// CatalogRepository reads catalog items and maintains the trending flags.
type CatalogRepository interface {
	// List returns all catalog items, optionally filtered by category.
	List(ctx context.Context, category string) ([]models.CatalogItem, error)

	// RefreshTrending flags the topN most-bookmarked items as trending and
	// clears the flag everywhere else. It returns the ids now flagged.
	RefreshTrending(ctx context.Context, topN int) ([]primitive.ObjectID, error)
}
