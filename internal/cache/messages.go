package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"converso-backend/internal/models"
)

// MessageCache is a read-through cache for per-user message lists.
// A nil *MessageCache (or one built over a nil client) disables
// caching entirely: Get always misses, Set and Invalidate are no-ops.
// Cache failures are logged, never surfaced; Postgres stays the source
// of truth.
type MessageCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewMessageCache(client *redis.Client) *MessageCache {
	return &MessageCache{client: client, ttl: 24 * time.Hour}
}

func key(userID uuid.UUID) string {
	return "messages:" + userID.String()
}

func (c *MessageCache) Get(ctx context.Context, userID uuid.UUID) ([]*models.Message, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	data, err := c.client.Get(ctx, key(userID)).Bytes()
	if err != nil {
		return nil, false
	}

	var messages []*models.Message
	if err := json.Unmarshal(data, &messages); err != nil {
		return nil, false
	}
	return messages, true
}

func (c *MessageCache) Set(ctx context.Context, userID uuid.UUID, messages []*models.Message) {
	if c == nil || c.client == nil {
		return
	}

	data, err := json.Marshal(messages)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key(userID), data, c.ttl).Err(); err != nil {
		log.Printf("Failed to cache messages for user %s: %v", userID, err)
	}
}

func (c *MessageCache) Invalidate(ctx context.Context, userID uuid.UUID) {
	if c == nil || c.client == nil {
		return
	}

	if err := c.client.Del(ctx, key(userID)).Err(); err != nil {
		log.Printf("Failed to invalidate message cache for user %s: %v", userID, err)
	}
}
