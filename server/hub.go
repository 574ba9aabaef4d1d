package server

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/rustyeddy/tradesim/account"
	"github.com/rustyeddy/tradesim/bot"
)

const clientBuffer = 16

// Event is one websocket message.
type Event struct {
	Type     string            `json:"type"`
	Snapshot *account.Snapshot `json:"snapshot,omitempty"`
	Level    bot.NoticeLevel   `json:"level,omitempty"`
	Message  string            `json:"message,omitempty"`
}

type client struct {
	id   string
	send chan []byte
}

// Hub fans bot events out to websocket clients. A client that falls more
// than clientBuffer messages behind misses messages rather than stalling
// the bot.
type Hub struct {
	mu      sync.Mutex
	clients map[string]*client
}

func NewHub() *Hub {
	return &Hub{clients: make(map[string]*client)}
}

// join registers a client and queues first() as its first message. first
// runs under the hub lock, so no broadcast can slip in ahead of it.
func (h *Hub) join(first func() ([]byte, error)) (*client, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	msg, err := first()
	if err != nil {
		return nil, err
	}
	c := &client{id: uuid.NewString(), send: make(chan []byte, clientBuffer)}
	c.send <- msg
	h.clients[c.id] = c
	return c, nil
}

func (h *Hub) leave(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c.id]; ok {
		delete(h.clients, c.id)
		close(c.send)
	}
}

// Len reports the number of connected clients.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, c := range h.clients {
		delete(h.clients, id)
		close(c.send)
	}
}

func (h *Hub) broadcast(msg []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, c := range h.clients {
		select {
		case c.send <- msg:
		default:
			log.WithField("client", c.id).Debug("websocket client behind, dropping message")
		}
	}
}

func (h *Hub) publish(ev Event) {
	msg, err := json.Marshal(ev)
	if err != nil {
		log.WithError(err).Error("failed to encode websocket event")
		return
	}
	h.broadcast(msg)
}

func (h *Hub) OnSnapshot(s account.Snapshot) {
	h.publish(snapshotEvent(s))
}

func (h *Hub) OnNotice(n bot.Notice) {
	h.publish(Event{Type: "notice", Level: n.Level, Message: n.Message})
}

func snapshotEvent(s account.Snapshot) Event {
	return Event{Type: "snapshot", Snapshot: &s}
}
