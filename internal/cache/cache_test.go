// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"ideaboard/internal/apperr"
	"ideaboard/internal/board"
	"ideaboard/internal/models"
	"ideaboard/internal/store/memstore"
)

var _ board.CategoryRegistry = (*CategoryCache)(nil)

// countingRegistry records how often the wrapped registry is reached.
type countingRegistry struct {
	board.CategoryRegistry
	lists    int
	resolves int
}

func (r *countingRegistry) List(ctx context.Context) ([]models.Category, error) {
	r.lists++
	return r.CategoryRegistry.List(ctx)
}

func (r *countingRegistry) Resolve(ctx context.Context, id int64) (string, error) {
	r.resolves++
	return r.CategoryRegistry.Resolve(ctx, id)
}

func setupCategoryCache(t *testing.T, ttl time.Duration) (*CategoryCache, *countingRegistry, *miniredis.Miniredis) {
	t.Helper()
	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { client.Close() })

	reg := &countingRegistry{CategoryRegistry: memstore.New().Categories}
	cc := NewCategoryCache(reg, client, ttl)
	if err := cc.SeedDefaults(context.Background(), models.DefaultCategories); err != nil {
		t.Fatalf("SeedDefaults: %v", err)
	}
	return cc, reg, s
}

func TestConnectValkey(t *testing.T) {
	s := miniredis.RunT(t)

	host, port, _ := net.SplitHostPort(s.Addr())
	client, err := ConnectValkey(context.Background(), host, port, "")
	if err != nil {
		t.Fatalf("ConnectValkey: %v", err)
	}
	defer client.Close()

	pong, err := client.Ping(context.Background()).Result()
	if err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if pong != "PONG" {
		t.Errorf("expected PONG, got %q", pong)
	}
}

func TestConnectValkeyUnreachable(t *testing.T) {
	s := miniredis.RunT(t)
	host, port, _ := net.SplitHostPort(s.Addr())
	s.Close()

	if _, err := ConnectValkey(context.Background(), host, port, ""); err == nil {
		t.Error("expected error for closed server")
	}
}

func TestCategoryCacheListReadThrough(t *testing.T) {
	cc, reg, s := setupCategoryCache(t, time.Minute)
	ctx := context.Background()

	first, err := cc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(first) != len(models.DefaultCategories) {
		t.Fatalf("List: got %d categories, want %d", len(first), len(models.DefaultCategories))
	}
	if !s.Exists(categoriesKey) {
		t.Fatal("expected list to be cached after a miss")
	}

	second, err := cc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if reg.lists != 1 {
		t.Errorf("registry reached %d times, want 1", reg.lists)
	}
	if len(second) != len(first) || second[0] != first[0] {
		t.Errorf("cached list differs: %+v vs %+v", second, first)
	}
}

func TestCategoryCacheTTL(t *testing.T) {
	cc, reg, s := setupCategoryCache(t, time.Minute)
	ctx := context.Background()

	cc.List(ctx)
	s.FastForward(2 * time.Minute)
	cc.List(ctx)

	if reg.lists != 2 {
		t.Errorf("expected reload after TTL, registry reached %d times", reg.lists)
	}
}

func TestCategoryCacheResolve(t *testing.T) {
	cc, reg, _ := setupCategoryCache(t, time.Minute)
	ctx := context.Background()

	cats, _ := cc.List(ctx)
	name, err := cc.Resolve(ctx, cats[1].ID)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if name != cats[1].Name {
		t.Errorf("Resolve: got %q, want %q", name, cats[1].Name)
	}
	if reg.resolves != 0 {
		t.Errorf("cached id should not reach the registry, got %d calls", reg.resolves)
	}

	_, err = cc.Resolve(ctx, 999)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("unknown id: expected not found, got %v", err)
	}
	if reg.resolves != 1 {
		t.Errorf("unknown id should fall through, got %d calls", reg.resolves)
	}
}

func TestCategoryCacheSeedInvalidates(t *testing.T) {
	cc, reg, s := setupCategoryCache(t, time.Minute)
	ctx := context.Background()

	cc.List(ctx)
	if err := cc.SeedDefaults(ctx, []string{"Accessibility"}); err != nil {
		t.Fatalf("SeedDefaults: %v", err)
	}
	if s.Exists(categoriesKey) {
		t.Fatal("seed must drop the cached list")
	}

	cats, err := cc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(cats) != len(models.DefaultCategories)+1 {
		t.Errorf("got %d categories after seeding one more", len(cats))
	}
	if reg.lists != 2 {
		t.Errorf("registry reached %d times, want 2", reg.lists)
	}
}

func TestCategoryCacheFallsThroughWhenValkeyDown(t *testing.T) {
	cc, reg, s := setupCategoryCache(t, time.Minute)
	s.Close()

	cats, err := cc.List(context.Background())
	if err != nil {
		t.Fatalf("List with Valkey down: %v", err)
	}
	if len(cats) != len(models.DefaultCategories) {
		t.Errorf("got %d categories", len(cats))
	}
	if reg.lists != 1 {
		t.Errorf("registry reached %d times, want 1", reg.lists)
	}
}

func TestCategoryCacheIgnoresCorruptEntry(t *testing.T) {
	cc, reg, s := setupCategoryCache(t, time.Minute)
	s.Set(categoriesKey, "{not json")

	if _, err := cc.List(context.Background()); err != nil {
		t.Fatalf("List: %v", err)
	}
	if reg.lists != 1 {
		t.Errorf("corrupt entry should fall through, registry reached %d times", reg.lists)
	}
}
