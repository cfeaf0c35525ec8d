package cache

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"converso-backend/internal/models"
)

func TestMessageCache_NilCacheIsDisabled(t *testing.T) {
	var c *MessageCache
	ctx := context.Background()
	userID := uuid.New()

	if _, ok := c.Get(ctx, userID); ok {
		t.Error("nil cache should always miss")
	}

	// Must not panic.
	c.Set(ctx, userID, []*models.Message{{Question: "q", Answer: "a"}})
	c.Invalidate(ctx, userID)
}

func TestMessageCache_NilClientIsDisabled(t *testing.T) {
	c := NewMessageCache(nil)
	ctx := context.Background()
	userID := uuid.New()

	if _, ok := c.Get(ctx, userID); ok {
		t.Error("cache without a client should always miss")
	}

	c.Set(ctx, userID, nil)
	c.Invalidate(ctx, userID)
}
