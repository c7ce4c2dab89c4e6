package notify

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/redis/go-redis/v9"
)

// RouteProcessed is the event pushed to a user's open sockets once an
// uploaded track has been analyzed and stored.
type RouteProcessed struct {
	RouteID    string  `json:"route_id"`
	Name       string  `json:"name"`
	DistanceKm float64 `json:"distance_km"`
}

// Hub fans route-processed events out to the owning user's websocket
// clients, bridging instances through redis pub/sub when configured.
type Hub struct {
	redis   *redis.Client
	clients map[string]map[*Client]struct{}
	mu      sync.RWMutex
}

type Client struct {
	UserID string
	Send   chan []byte
}

func NewHub(redisClient *redis.Client) *Hub {
	h := &Hub{
		redis:   redisClient,
		clients: map[string]map[*Client]struct{}{},
	}

	if redisClient != nil {
		go h.subscribeRedis()
	}
	return h
}

func (h *Hub) Register(userID string) *Client {
	client := &Client{
		UserID: userID,
		Send:   make(chan []byte, 64),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[userID] == nil {
		h.clients[userID] = map[*Client]struct{}{}
	}
	h.clients[userID][client] = struct{}{}
	return client
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if userClients, ok := h.clients[client.UserID]; ok {
		delete(userClients, client)
		if len(userClients) == 0 {
			delete(h.clients, client.UserID)
		}
	}
	close(client.Send)
}

// Publish delivers the event to local clients and, when redis is
// configured, to other instances subscribed on the user's channel.
func (h *Hub) Publish(userID string, event RouteProcessed) {
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	if h.redis == nil {
		h.deliver(userID, payload)
		return
	}

	// The pattern subscription loop delivers to local clients as well, so
	// publishing once covers this instance and every peer.
	if err := h.redis.Publish(context.Background(), redisChannel(userID), payload).Err(); err != nil {
		log.Printf("redis publish error: %v", err)
		h.deliver(userID, payload)
	}
}

func (h *Hub) deliver(userID string, payload []byte) {
	h.mu.RLock()
	clients := h.clients[userID]
	h.mu.RUnlock()

	for client := range clients {
		select {
		case client.Send <- payload:
		default:
		}
	}
}

func (h *Hub) subscribeRedis() {
	ctx := context.Background()
	pubsub := h.redis.PSubscribe(ctx, "routes:*:processed")
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		h.deliver(userIDFromChannel(msg.Channel), []byte(msg.Payload))
	}
}

func redisChannel(userID string) string {
	return "routes:" + userID + ":processed"
}

func userIDFromChannel(ch string) string {
	// routes:{user}:processed
	const prefix = "routes:"
	const suffix = ":processed"
	if len(ch) <= len(prefix)+len(suffix) {
		return ""
	}
	return ch[len(prefix) : len(ch)-len(suffix)]
}
