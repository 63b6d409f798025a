package services

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/flickmark/flickmark-be/internal/auth"
	"github.com/flickmark/flickmark-be/internal/models"
	"github.com/flickmark/flickmark-be/internal/repository"
	"github.com/flickmark/flickmark-be/internal/websocket"
)

// BookmarkServiceProvider defines the interface for bookmark services.
type BookmarkServiceProvider interface {
	GetBookmarks(ctx context.Context, session *auth.Claims) ([]models.BookmarkEntry, error)
	AddBookmark(ctx context.Context, session *auth.Claims, mediaID string) ([]models.BookmarkEntry, error)
	RemoveBookmark(ctx context.Context, session *auth.Claims, mediaID string) ([]models.BookmarkEntry, error)
}

// EventPublisher pushes catalog events to connected clients. Publishing is
// best-effort and never fails the request.
type EventPublisher interface {
	Publish(event websocket.Event)
}

// BookmarkService mutates a user's bookmark list. Every mutation is a single
// atomic document update followed by a re-read, so two concurrent toggles for
// the same user serialize in the store instead of racing in the service.
//
// The user document is looked up by the session's email, matching how the
// rest of the system keys bookmark state.
type BookmarkService struct {
	users  repository.UserRepository
	events EventPublisher
}

// NewBookmarkService creates a new BookmarkService. events may be nil when no
// event feed is wired, e.g. in the seed tool.
func NewBookmarkService(users repository.UserRepository, events EventPublisher) *BookmarkService {
	return &BookmarkService{users: users, events: events}
}

// GetBookmarks returns the session user's current bookmark list.
func (s *BookmarkService) GetBookmarks(ctx context.Context, session *auth.Claims) ([]models.BookmarkEntry, error) {
	email, err := sessionEmail(session)
	if err != nil {
		return nil, err
	}
	return s.users.Bookmarks(ctx, email)
}

// AddBookmark inserts the media id unless it is already bookmarked. Adding an
// id twice is a no-op that still succeeds and returns the unchanged list. The
// id is only checked for ObjectID syntax; catalog membership is not verified.
func (s *BookmarkService) AddBookmark(ctx context.Context, session *auth.Claims, mediaID string) ([]models.BookmarkEntry, error) {
	email, err := sessionEmail(session)
	if err != nil {
		return nil, err
	}
	oid, err := parseMediaID(mediaID)
	if err != nil {
		return nil, err
	}

	entry := models.BookmarkEntry{MediaID: oid, DateAdded: time.Now().UTC()}
	added, err := s.users.AddBookmark(ctx, email, entry)
	if err != nil {
		return nil, err
	}

	// Re-read after the write. When nothing matched, this also tells apart
	// "already bookmarked" (success) from "user document gone" (error).
	bookmarks, err := s.users.Bookmarks(ctx, email)
	if err != nil {
		return nil, err
	}

	if added {
		s.publish(websocket.Event{
			Type:    websocket.EventBookmarkAdded,
			Payload: map[string]string{"mediaId": oid.Hex()},
		})
	}
	return bookmarks, nil
}

// RemoveBookmark deletes any entry with the media id. Removing an id that was
// never added succeeds and returns the unchanged list.
func (s *BookmarkService) RemoveBookmark(ctx context.Context, session *auth.Claims, mediaID string) ([]models.BookmarkEntry, error) {
	email, err := sessionEmail(session)
	if err != nil {
		return nil, err
	}
	oid, err := parseMediaID(mediaID)
	if err != nil {
		return nil, err
	}

	removed, err := s.users.RemoveBookmark(ctx, email, oid)
	if err != nil {
		return nil, err
	}

	bookmarks, err := s.users.Bookmarks(ctx, email)
	if err != nil {
		return nil, err
	}

	if removed {
		s.publish(websocket.Event{
			Type:    websocket.EventBookmarkRemoved,
			Payload: map[string]string{"mediaId": oid.Hex()},
		})
	}
	return bookmarks, nil
}

func (s *BookmarkService) publish(event websocket.Event) {
	if s.events != nil {
		s.events.Publish(event)
	}
}

func sessionEmail(session *auth.Claims) (string, error) {
	if session == nil || session.Email == "" {
		return "", models.ErrUnauthenticated
	}
	return NormalizeEmail(session.Email), nil
}

func parseMediaID(mediaID string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(mediaID))
	if err != nil {
		return primitive.NilObjectID, models.ErrInvalidMediaID
	}
	return oid, nil
}
