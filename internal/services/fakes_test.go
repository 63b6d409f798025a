package services

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/flickmark/flickmark-be/internal/models"
	"github.com/flickmark/flickmark-be/internal/websocket"
)

// fakeUserRepo is an in-memory UserRepository mirroring the store's atomic
// update semantics: add-if-absent and pull-matching as single operations.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User // keyed by email
	calls int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (f *fakeUserRepo) seed(email string, bookmarks ...models.BookmarkEntry) *models.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := &models.User{
		ID:        primitive.NewObjectID(),
		Email:     email,
		Username:  email,
		Bookmarks: append([]models.BookmarkEntry{}, bookmarks...),
	}
	f.users[email] = u
	return u
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) (primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if _, exists := f.users[user.Email]; exists {
		return primitive.NilObjectID, models.ErrAlreadyExists
	}
	stored := *user
	stored.ID = primitive.NewObjectID()
	f.users[user.Email] = &stored
	return stored.ID, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	u, ok := f.users[email]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	for _, u := range f.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, models.ErrUserNotFound
}

func (f *fakeUserRepo) AddBookmark(_ context.Context, email string, entry models.BookmarkEntry) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	u, ok := f.users[email]
	if !ok {
		return false, nil
	}
	for _, b := range u.Bookmarks {
		if b.MediaID == entry.MediaID {
			return false, nil
		}
	}
	u.Bookmarks = append(u.Bookmarks, entry)
	return true, nil
}

func (f *fakeUserRepo) RemoveBookmark(_ context.Context, email string, mediaID primitive.ObjectID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	u, ok := f.users[email]
	if !ok {
		return false, models.ErrUserNotFound
	}
	kept := u.Bookmarks[:0]
	removed := false
	for _, b := range u.Bookmarks {
		if b.MediaID == mediaID {
			removed = true
			continue
		}
		kept = append(kept, b)
	}
	u.Bookmarks = kept
	return removed, nil
}

func (f *fakeUserRepo) Bookmarks(_ context.Context, email string) ([]models.BookmarkEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	u, ok := f.users[email]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	return append([]models.BookmarkEntry{}, u.Bookmarks...), nil
}

// fakeCatalogRepo serves a fixed item list.
type fakeCatalogRepo struct {
	items []models.CatalogItem
	err   error
}

func (f *fakeCatalogRepo) List(_ context.Context, category string) ([]models.CatalogItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	if category == "" {
		return f.items, nil
	}
	out := []models.CatalogItem{}
	for _, it := range f.items {
		if it.Category == category {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeCatalogRepo) RefreshTrending(_ context.Context, _ int) ([]primitive.ObjectID, error) {
	return nil, f.err
}

// fakePublisher records published events.
type fakePublisher struct {
	mu     sync.Mutex
	events []websocket.Event
}

func (f *fakePublisher) Publish(event websocket.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
}

func (f *fakePublisher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events)
}
