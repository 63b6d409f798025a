package websocket

import "encoding/json"

// Event types pushed to connected clients.
const (
	EventBookmarkAdded     = "bookmark_added"
	EventBookmarkRemoved   = "bookmark_removed"
	EventTrendingRefreshed = "trending_refreshed"
)

// Event is the envelope for messages pushed over the event feed.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// Marshal encodes the event, falling back to a bare type marker if the
// payload cannot be serialized.
func (e Event) Marshal() []byte {
	b, err := json.Marshal(e)
	if err != nil {
		b, _ = json.Marshal(Event{Type: e.Type})
	}
	return b
}
