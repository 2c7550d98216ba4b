package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/yigit/campusbuzz/internal/app/models"
)

// Event types pushed to clients
const (
	EventNotification = "notification"
	EventToast        = "toast"
	EventError        = "error"
)

// Event is one server-to-client frame
type Event struct {
	Type      string    `json:"type"`
	Data      any       `json:"data,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type envelope struct {
	userID string
	// client restricts delivery to one connection
	client *Client
	event  Event
}

// CommandFunc handles a message a client sent
type CommandFunc func(ctx context.Context, userID string, msg ClientMessage) error

// Hub keeps the open connections of every user and fans events out to them.
// All client bookkeeping happens on the Run goroutine.
type Hub struct {
	// Registered clients organized by user ID
	clients map[string]map[*Client]bool

	broadcast  chan envelope
	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	// guards counts, which mirrors clients for readers outside Run
	mu     sync.RWMutex
	counts map[string]int

	commandsMu sync.RWMutex
	commands   CommandFunc

	logger zerolog.Logger
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		broadcast:  make(chan envelope, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		counts:     make(map[string]int),
		logger:     logger.With().Str("component", "websocket_hub").Logger(),
	}
}

// Run handles registrations and deliveries until ctx is cancelled. Open
// connections are closed on exit.
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		for _, set := range h.clients {
			for client := range set {
				h.removeClient(client)
			}
		}
		close(h.done)
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case env := <-h.broadcast:
			h.deliver(env)
		}
	}
}

func (h *Hub) addClient(client *Client) {
	if _, ok := h.clients[client.userID]; !ok {
		h.clients[client.userID] = make(map[*Client]bool)
	}
	h.clients[client.userID][client] = true
	h.setCount(client.userID, len(h.clients[client.userID]))

	h.logger.Info().
		Str("userID", client.userID).
		Str("addr", client.remoteAddr()).
		Msg("Client registered")
}

func (h *Hub) removeClient(client *Client) {
	set, ok := h.clients[client.userID]
	if !ok || !set[client] {
		return
	}
	delete(set, client)
	close(client.send)
	if len(set) == 0 {
		delete(h.clients, client.userID)
	}
	h.setCount(client.userID, len(set))

	h.logger.Info().
		Str("userID", client.userID).
		Str("addr", client.remoteAddr()).
		Msg("Client unregistered")
}

func (h *Hub) setCount(userID string, n int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if n == 0 {
		delete(h.counts, userID)
		return
	}
	h.counts[userID] = n
}

// deliver writes an event to every connection of its user. A client whose
// buffer is full is dropped.
func (h *Hub) deliver(env envelope) {
	clients, ok := h.clients[env.userID]
	if !ok {
		return
	}

	data, err := json.Marshal(env.event)
	if err != nil {
		h.logger.Error().Err(err).Str("userID", env.userID).Str("type", env.event.Type).Msg("Failed to marshal event")
		return
	}

	for client := range clients {
		if env.client != nil && env.client != client {
			continue
		}
		select {
		case client.send <- data:
		default:
			h.logger.Warn().Str("userID", env.userID).Msg("Dropping slow client")
			h.removeClient(client)
		}
	}
}

// SendToUser queues an event for every connection of userID. It returns
// without sending once the hub has stopped.
func (h *Hub) SendToUser(userID string, event Event) {
	h.send(envelope{userID: userID, event: event})
}

func (h *Hub) send(env envelope) {
	if env.event.Timestamp.IsZero() {
		env.event.Timestamp = time.Now()
	}
	select {
	case h.broadcast <- env:
	case <-h.done:
	}
}

// Deliver pushes a notification to its recipient
func (h *Hub) Deliver(_ context.Context, n models.Notification) {
	h.SendToUser(n.RecipientID, Event{Type: EventNotification, Data: n, Timestamp: n.Timestamp})
}

// ClientsCount returns the number of open connections of a user
func (h *Hub) ClientsCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.counts[userID]
}

// SetCommandHandler registers the handler for client messages
func (h *Hub) SetCommandHandler(fn CommandFunc) {
	h.commandsMu.Lock()
	defer h.commandsMu.Unlock()
	h.commands = fn
}

func (h *Hub) command(ctx context.Context, userID string, msg ClientMessage) error {
	h.commandsMu.RLock()
	fn := h.commands
	h.commandsMu.RUnlock()
	if fn == nil {
		return nil
	}
	return fn(ctx, userID, msg)
}
