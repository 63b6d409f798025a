package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents an account document in the users collection. Bookmarks are
// embedded so a single document update can mutate them atomically.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	Username     string             `bson:"username" json:"username"`
	PasswordHash string             `bson:"password" json:"-"` // Never expose this to the client
	Bookmarks    []BookmarkEntry    `bson:"bookmarks" json:"bookmarks"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// BookmarkEntry links a user to a catalog item. A user's bookmark list never
// holds two entries with the same MediaID.
type BookmarkEntry struct {
	MediaID   primitive.ObjectID `bson:"mediaId" json:"mediaId"`
	DateAdded time.Time          `bson:"dateAdded" json:"dateAdded"`
}
