package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Catalog item categories.
const (
	CategoryMovie    = "Movie"
	CategoryTVSeries = "TV Series"
)

// ThumbnailPair holds the artwork sizes used on trending shelves.
type ThumbnailPair struct {
	Small string `bson:"small" json:"small"`
	Large string `bson:"large" json:"large"`
}

// ThumbnailSet holds the artwork sizes used in the regular grid.
type ThumbnailSet struct {
	Small  string `bson:"small" json:"small"`
	Medium string `bson:"medium" json:"medium"`
	Large  string `bson:"large" json:"large"`
}

// Thumbnail groups the artwork variants for a catalog item. Trending artwork
// only exists for items that appear on the trending shelf.
type Thumbnail struct {
	Trending *ThumbnailPair `bson:"trending,omitempty" json:"trending,omitempty"`
	Regular  ThumbnailSet   `bson:"regular" json:"regular"`
}

// CatalogItem represents a movie or TV series in the catalog collection.
type CatalogItem struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title      string             `bson:"title" json:"title"`
	Thumbnail  Thumbnail          `bson:"thumbnail" json:"thumbnail"`
	Year       int                `bson:"year" json:"year"`
	Category   string             `bson:"category" json:"category"`
	Rating     string             `bson:"rating" json:"rating"`
	IsTrending bool               `bson:"isTrending" json:"isTrending"`
}

// AnnotatedCatalogItem is a catalog item decorated with the caller's bookmark
// state. The annotation is derived per request and never stored.
type AnnotatedCatalogItem struct {
	CatalogItem  `bson:",inline"`
	IsBookmarked bool `json:"isBookmarked"`
}
