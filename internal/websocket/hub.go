package websocket

import "github.com/rs/zerolog/log"

// Hub maintains the set of active clients and broadcasts catalog events to
// them. The feed is one-way: clients only listen.
type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// Outbound events for global broadcast.
	broadcast chan []byte

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		broadcast:  make(chan []byte, 64),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
	}
}

// Run starts the Hub's event loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.clients[client] = true
			log.Info().Int("total_clients", len(h.clients)).Msg("Event feed client connected")
		case client := <-h.Unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				log.Info().Int("total_clients", len(h.clients)).Msg("Event feed client disconnected")
			}
		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					// Slow consumer; drop it rather than stall the feed.
					close(client.Send)
					delete(h.clients, client)
				}
			}
		}
	}
}

// Publish queues an event for broadcast to all connected clients. It never
// blocks the caller: when the queue is full the event is dropped.
func (h *Hub) Publish(event Event) {
	select {
	case h.broadcast <- event.Marshal():
	default:
		log.Warn().Str("type", event.Type).Msg("Event feed backlog full, dropping event")
	}
}
