// internal/realtime/hub.go
// Event hub. Producers publish onto a buffered channel; the run loop fans
// events out to registered clients and records notifications in the capped
// store. All listener state lives behind the hub's run loop and mutex, so
// producers never touch subscriber sets directly.

package realtime

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

const eventBuffer = 256

type Hub struct {
	clients    map[*Client]bool
	clientsMux sync.RWMutex

	events     chan Event
	register   chan *Client
	unregister chan *Client

	store *NotificationStore

	ctx    context.Context
	cancel context.CancelFunc
}

func NewHub(store *NotificationStore) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		clients:    make(map[*Client]bool),
		events:     make(chan Event, eventBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		store:      store,
		ctx:        ctx,
		cancel:     cancel,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clientsMux.Lock()
			h.clients[client] = true
			h.clientsMux.Unlock()
			log.Debug().Str("user_id", client.userID).Msg("realtime client connected")

		case client := <-h.unregister:
			h.clientsMux.Lock()
			if h.clients[client] {
				delete(h.clients, client)
				close(client.send)
			}
			h.clientsMux.Unlock()

		case event := <-h.events:
			h.dispatch(event)

		case <-h.ctx.Done():
			h.clientsMux.Lock()
			for client := range h.clients {
				close(client.send)
			}
			h.clients = make(map[*Client]bool)
			h.clientsMux.Unlock()
			return
		}
	}
}

func (h *Hub) Shutdown() {
	h.cancel()
}

// tryRegister hands the client to the run loop. Returns false when the hub
// has shut down, so a connection accepted mid-shutdown never blocks.
func (h *Hub) tryRegister(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.ctx.Done():
		return false
	}
}

func (h *Hub) tryUnregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.ctx.Done():
	}
}

// Publish queues an event for dispatch. Drops the event rather than
// blocking a producer when the buffer is full.
func (h *Hub) Publish(event Event) {
	select {
	case h.events <- event:
	default:
		log.Warn().Str("type", event.Type).Msg("event buffer full, dropping event")
		recordDropped()
	}
}

// PublishNotification stores the notification and queues it for fan-out.
func (h *Hub) PublishNotification(n Notification) {
	stored := h.store.Add(n)
	h.Publish(Event{Type: EventNotification, UserID: stored.UserID, Notification: &stored})
}

func (h *Hub) dispatch(event Event) {
	recordDispatched(event.Type)

	h.clientsMux.RLock()
	defer h.clientsMux.RUnlock()
	for client := range h.clients {
		// Notifications are addressed; interaction events go to everyone.
		if event.UserID != "" && client.userID != event.UserID {
			continue
		}
		select {
		case client.send <- event:
		default:
			// Slow consumer; skip rather than stall the loop.
		}
	}
}
