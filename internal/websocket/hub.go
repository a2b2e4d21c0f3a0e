package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/dhanushgc/HireMind/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const clusterChannel = "interview_updates"

// Update is what clients receive: one domain event for their session.
type Update struct {
	Type       string                 `json:"type"`
	SessionKey string                 `json:"session_key"`
	Data       map[string]interface{} `json:"data"`
}

type clusterMessage struct {
	SessionKey string          `json:"session_key"`
	Message    json.RawMessage `json:"message"`
}

type Hub struct {
	// Session key -> every open connection watching it
	clients map[string][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Optional. With Redis every update goes through the channel so all
	// instances deliver it, this one included.
	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client, 64),
		clients:    make(map[string][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run(ctx context.Context) {
	if h.rdb != nil {
		go h.subscribeToRedis(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.SessionKey] = append(h.clients[client.SessionKey], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"session_key": client.SessionKey})

		case client := <-h.unregister:
			h.remove(client)
		}
	}
}

// remove closes client.Send exactly once, whichever path asked first.
func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.clients[client.SessionKey]
	if !ok {
		return
	}
	for i, c := range clients {
		if c == client {
			h.clients[client.SessionKey] = append(clients[:i], clients[i+1:]...)
			close(client.Send)
			break
		}
	}
	if len(h.clients[client.SessionKey]) == 0 {
		delete(h.clients, client.SessionKey)
		h.logger.Info("Hub", "Session has no more watchers", map[string]interface{}{"session_key": client.SessionKey})
	}
}

// Send delivers update to every connection watching its session.
func (h *Hub) Send(update Update) {
	data, err := json.Marshal(update)
	if err != nil {
		h.logger.Error("Hub", "Failed to encode update", map[string]interface{}{"error": err.Error()})
		return
	}

	if h.rdb == nil {
		h.deliverLocal(update.SessionKey, data)
		return
	}

	payload, _ := json.Marshal(clusterMessage{SessionKey: update.SessionKey, Message: data})
	if err := h.rdb.Publish(context.Background(), clusterChannel, payload).Err(); err != nil {
		h.logger.Warn("Hub", "Redis publish failed, delivering locally only", map[string]interface{}{"error": err.Error()})
		h.deliverLocal(update.SessionKey, data)
	}
}

func (h *Hub) deliverLocal(sessionKey string, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients[sessionKey] {
		select {
		case client.Send <- data:
		default:
			h.logger.Warn("Hub", "Client send buffer full, dropping connection", map[string]interface{}{"session_key": sessionKey})
			h.dropLater(client)
		}
	}
}

// dropLater queues an unregister without blocking a reader holding mu.
func (h *Hub) dropLater(client *Client) {
	select {
	case h.unregister <- client:
	default:
		go func() { h.unregister <- client }()
	}
}

// Watchers reports how many local connections watch sessionKey.
func (h *Hub) Watchers(sessionKey string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[sessionKey])
}

func (h *Hub) subscribeToRedis(ctx context.Context) {
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload clusterMessage
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			h.logger.Warn("Hub", "Redis message parse error", map[string]interface{}{"error": err.Error()})
			continue
		}
		h.deliverLocal(payload.SessionKey, payload.Message)
	}
}
