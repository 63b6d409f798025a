package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/flickmark/flickmark-be/internal/models"
	"github.com/flickmark/flickmark-be/internal/repository"
)

// CatalogServiceProvider defines the interface for catalog reads.
type CatalogServiceProvider interface {
	ListCatalog(ctx context.Context, category, userID string) ([]models.AnnotatedCatalogItem, error)
}

// CatalogService lists catalog items, annotating each with the caller's
// bookmark state when a user id is supplied. The annotation is a pure set
// intersection over the user's bookmark ids.
type CatalogService struct {
	catalog repository.CatalogRepository
	users   repository.UserRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(catalog repository.CatalogRepository, users repository.UserRepository) *CatalogService {
	return &CatalogService{catalog: catalog, users: users}
}

// ListCatalog returns catalog items, optionally filtered by category. An
// unknown or malformed userID annotates nothing instead of failing the
// listing, matching a signed-out browse.
func (s *CatalogService) ListCatalog(ctx context.Context, category, userID string) ([]models.AnnotatedCatalogItem, error) {
	if category != "" && category != models.CategoryMovie && category != models.CategoryTVSeries {
		return nil, &models.ValidationError{Field: "category", Reason: "must be Movie or TV Series"}
	}

	items, err := s.catalog.List(ctx, category)
	if err != nil {
		return nil, err
	}

	bookmarked := map[primitive.ObjectID]bool{}
	if userID != "" {
		if oid, idErr := primitive.ObjectIDFromHex(userID); idErr == nil {
			user, err := s.users.FindByID(ctx, oid)
			switch {
			case err == nil:
				for _, b := range user.Bookmarks {
					bookmarked[b.MediaID] = true
				}
			case errors.Is(err, models.ErrUserNotFound):
				// Unknown user browses like a guest.
			default:
				return nil, err
			}
		}
	}

	annotated := make([]models.AnnotatedCatalogItem, 0, len(items))
	for _, item := range items {
		annotated = append(annotated, models.AnnotatedCatalogItem{
			CatalogItem:  item,
			IsBookmarked: bookmarked[item.ID],
		})
	}
	return annotated, nil
}
