package monitoring

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/flickmark/flickmark-be/internal/models"
	"github.com/flickmark/flickmark-be/internal/websocket"
)

type fakeCatalogRepo struct {
	lastTopN int
	ids      []primitive.ObjectID
	err      error
}

func (f *fakeCatalogRepo) List(ctx context.Context, category string) ([]models.CatalogItem, error) {
	return nil, nil
}

func (f *fakeCatalogRepo) RefreshTrending(ctx context.Context, topN int) ([]primitive.ObjectID, error) {
	f.lastTopN = topN
	return f.ids, f.err
}

type fakePublisher struct {
	events []websocket.Event
}

func (f *fakePublisher) Publish(e websocket.Event) {
	f.events = append(f.events, e)
}

func TestRefreshPublishesTrendingEvent(t *testing.T) {
	ids := []primitive.ObjectID{primitive.NewObjectID(), primitive.NewObjectID()}
	repo := &fakeCatalogRepo{ids: ids}
	pub := &fakePublisher{}

	r := NewTrendingRefresher(repo, pub, "0 * * * *", 5)
	r.refresh()

	if repo.lastTopN != 5 {
		t.Fatalf("topN = %d, want 5", repo.lastTopN)
	}
	if len(pub.events) != 1 {
		t.Fatalf("published %d events, want 1", len(pub.events))
	}
	e := pub.events[0]
	if e.Type != websocket.EventTrendingRefreshed {
		t.Fatalf("event type = %q", e.Type)
	}
	payload, ok := e.Payload.(map[string]interface{})
	if !ok {
		t.Fatalf("payload type %T", e.Payload)
	}
	hexIDs, ok := payload["trending"].([]string)
	if !ok || len(hexIDs) != 2 {
		t.Fatalf("trending payload = %v", payload["trending"])
	}
	if hexIDs[0] != ids[0].Hex() {
		t.Fatalf("trending[0] = %q, want %q", hexIDs[0], ids[0].Hex())
	}
}

func TestRefreshSkipsEventOnFailure(t *testing.T) {
	repo := &fakeCatalogRepo{err: errors.New("aggregation failed")}
	pub := &fakePublisher{}

	r := NewTrendingRefresher(repo, pub, "0 * * * *", 5)
	r.refresh()

	if len(pub.events) != 0 {
		t.Fatalf("published %d events after failed refresh, want 0", len(pub.events))
	}
}

func TestRefreshWithoutPublisher(t *testing.T) {
	repo := &fakeCatalogRepo{ids: []primitive.ObjectID{primitive.NewObjectID()}}
	r := NewTrendingRefresher(repo, nil, "0 * * * *", 3)
	r.refresh() // must not panic
}

func TestRunRejectsBadCron(t *testing.T) {
	repo := &fakeCatalogRepo{}
	r := NewTrendingRefresher(repo, nil, "not a cron spec", 3)
	r.Run() // returns immediately without refreshing
	if repo.lastTopN != 0 {
		t.Fatal("refresh ran despite invalid schedule")
	}
}

func TestStopAfterFailedRunDoesNotBlock(t *testing.T) {
	r := NewTrendingRefresher(&fakeCatalogRepo{}, nil, "not a cron spec", 3)
	r.Run() // exits early, nobody is reading done

	stopped := make(chan struct{})
	go func() {
		r.Stop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop blocked after Run exited early")
	}

	r.Stop() // second call must be a no-op, not a panic
}

func TestStopTerminatesRun(t *testing.T) {
	r := NewTrendingRefresher(&fakeCatalogRepo{}, nil, "0 * * * *", 3)

	finished := make(chan struct{})
	go func() {
		r.Run()
		close(finished)
	}()
	r.Stop()

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Stop")
	}
}
