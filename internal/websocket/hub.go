package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"ai-interview-be/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// Hub fans interaction events out to the observers of each interview session.
// A session can have several observers at once (recruiter dashboard plus a
// debugging tab); each holds its own connection.
type Hub struct {
	// sessionID -> connected observers
	observers map[string][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Redis pub/sub relays events across instances so an observer connected
	// to a different replica than the interaction pipeline still sees them.
	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		observers:  make(map[string][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.observers[client.SessionID] = append(h.observers[client.SessionID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Observer registered", map[string]interface{}{"session_id": client.SessionID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.observers[client.SessionID]; ok {
				for i, c := range clients {
					if c == client {
						h.observers[client.SessionID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.observers[client.SessionID]) == 0 {
					delete(h.observers, client.SessionID)
					h.logger.Info("Hub", "Session feed closed", map[string]interface{}{"session_id": client.SessionID})
				}
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast delivers an interaction event to every observer of a session,
// locally and via Redis to the other instances.
func (h *Hub) Broadcast(sessionID string, event map[string]interface{}) {
	data, _ := json.Marshal(map[string]interface{}{
		"type": "interaction",
		"data": event,
	})

	h.deliverLocal(sessionID, data)

	if h.rdb != nil {
		payload, _ := json.Marshal(map[string]interface{}{
			"session_id": sessionID,
			"message":    data,
		})
		h.rdb.Publish(context.Background(), "session_feed_events", payload)
	}
}

func (h *Hub) deliverLocal(sessionID string, data []byte) {
	h.mu.RLock()
	clients, ok := h.observers[sessionID]
	h.mu.RUnlock()
	if !ok {
		return
	}
	for _, client := range clients {
		select {
		case client.Send <- data:
		default:
			h.logger.Warn("Hub", "Observer buffer full, dropping connection", map[string]interface{}{"session_id": sessionID})
			close(client.Send)
			h.unregister <- client
		}
	}
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, "session_feed_events")
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload struct {
			SessionID string          `json:"session_id"`
			Message   json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}
		h.deliverLocal(payload.SessionID, payload.Message)
	}
}
