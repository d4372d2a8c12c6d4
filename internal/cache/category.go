// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"ideaboard/internal/board"
	"ideaboard/internal/models"
)

const (
	// categoriesKey holds the JSON-encoded category list.
	categoriesKey = "categories:all"

	// DefaultCategoryTTL is how long the category list stays cached.
	DefaultCategoryTTL = 10 * time.Minute
)

// CategoryCache is a read-through Valkey cache in front of a category
// registry. Cache failures are logged and fall through to the registry; they
// never fail a request.
type CategoryCache struct {
	next   board.CategoryRegistry
	client *redis.Client
	ttl    time.Duration
}

// NewCategoryCache wraps next with a Valkey-backed list cache.
func NewCategoryCache(next board.CategoryRegistry, client *redis.Client, ttl time.Duration) *CategoryCache {
	if ttl <= 0 {
		ttl = DefaultCategoryTTL
	}
	return &CategoryCache{next: next, client: client, ttl: ttl}
}

// SeedDefaults seeds the underlying registry and drops the cached list.
func (c *CategoryCache) SeedDefaults(ctx context.Context, names []string) error {
	if err := c.next.SeedDefaults(ctx, names); err != nil {
		return err
	}
	c.Invalidate(ctx)
	return nil
}

// List returns the cached list, loading it from the registry on a miss.
func (c *CategoryCache) List(ctx context.Context) ([]models.Category, error) {
	if cats, ok := c.get(ctx); ok {
		return cats, nil
	}

	cats, err := c.next.List(ctx)
	if err != nil {
		return nil, err
	}
	c.set(ctx, cats)
	return cats, nil
}

// Resolve answers from the cached list when the id is present and asks the
// registry otherwise.
func (c *CategoryCache) Resolve(ctx context.Context, id int64) (string, error) {
	if cats, ok := c.get(ctx); ok {
		for _, cat := range cats {
			if cat.ID == id {
				return cat.Name, nil
			}
		}
	}
	return c.next.Resolve(ctx, id)
}

// Invalidate removes the cached list.
func (c *CategoryCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, categoriesKey).Err(); err != nil {
		slog.Warn("category cache invalidate error", "error", err)
		return
	}
	slog.Debug("category cache invalidated")
}

func (c *CategoryCache) get(ctx context.Context) ([]models.Category, bool) {
	raw, err := c.client.Get(ctx, categoriesKey).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("category cache get error", "error", err)
		return nil, false
	}

	var cats []models.Category
	if err := json.Unmarshal(raw, &cats); err != nil {
		slog.Warn("category cache decode error", "error", err)
		return nil, false
	}
	slog.Debug("category cache hit", "count", len(cats))
	return cats, true
}

func (c *CategoryCache) set(ctx context.Context, cats []models.Category) {
	raw, err := json.Marshal(cats)
	if err != nil {
		slog.Warn("category cache encode error", "error", err)
		return
	}
	if err := c.client.Set(ctx, categoriesKey, raw, c.ttl).Err(); err != nil {
		slog.Warn("category cache set error", "error", err)
	}
}
