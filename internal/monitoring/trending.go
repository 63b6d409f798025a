package monitoring

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/flickmark/flickmark-be/internal/repository"
	"github.com/flickmark/flickmark-be/internal/services"
	"github.com/flickmark/flickmark-be/internal/websocket"
)

// TrendingRefresher periodically recomputes which catalog items are trending,
// ranking items by how many users currently bookmark them.
type TrendingRefresher struct {
	catalog  repository.CatalogRepository
	events   services.EventPublisher
	cronSpec string
	topN     int
	done     chan struct{}
	stopOnce sync.Once
}

// NewTrendingRefresher creates a refresher driven by a standard 5-field cron
// expression.
func NewTrendingRefresher(catalog repository.CatalogRepository, events services.EventPublisher, cronSpec string, topN int) *TrendingRefresher {
	return &TrendingRefresher{
		catalog:  catalog,
		events:   events,
		cronSpec: cronSpec,
		topN:     topN,
		done:     make(chan struct{}),
	}
}

// Run starts the refresh loop. It returns when Stop is called or the cron
// expression does not parse.
func (t *TrendingRefresher) Run() {
	schedule, err := cron.ParseStandard(t.cronSpec)
	if err != nil {
		log.Error().Err(err).Str("cron", t.cronSpec).Msg("Invalid trending refresh schedule, refresher disabled")
		return
	}

	log.Info().Str("cron", t.cronSpec).Int("top_n", t.topN).Msg("Starting trending refresher")

	// Run once on startup so a fresh deployment has trending data.
	t.refresh()

	for {
		timer := time.NewTimer(time.Until(schedule.Next(time.Now())))
		select {
		case <-t.done:
			timer.Stop()
			log.Info().Msg("Stopping trending refresher")
			return
		case <-timer.C:
			t.refresh()
		}
	}
}

// Stop halts the refresher. It never blocks and is safe to call more than
// once, even when Run already returned on an invalid schedule.
func (t *TrendingRefresher) Stop() {
	t.stopOnce.Do(func() { close(t.done) })
}

// refresh runs one recomputation. Failures are logged and retried on the next
// scheduled run; there is no partial-failure compensation.
func (t *TrendingRefresher) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	ids, err := t.catalog.RefreshTrending(ctx, t.topN)
	if err != nil {
		log.Error().Err(err).Msg("Trending refresh failed")
		return
	}
	log.Info().Int("trending_count", len(ids)).Msg("Trending flags refreshed")

	if t.events != nil {
		hexIDs := make([]string, 0, len(ids))
		for _, id := range ids {
			hexIDs = append(hexIDs, id.Hex())
		}
		t.events.Publish(websocket.Event{
			Type:    websocket.EventTrendingRefreshed,
			Payload: map[string]interface{}{"trending": hexIDs},
		})
	}
}
