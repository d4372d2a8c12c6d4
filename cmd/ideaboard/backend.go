package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"ideaboard/internal/board"
	"ideaboard/internal/cache"
	"ideaboard/internal/config"
	"ideaboard/internal/database"
	"ideaboard/internal/store"
	"ideaboard/internal/store/memstore"
)

// backend holds the repositories the board runs on and the connections
// behind them.
type backend struct {
	ideas      board.IdeaStore
	votes      board.VoteLedger
	comments   board.CommentStore
	categories board.CategoryRegistry

	db     *sql.DB
	valkey *redis.Client
}

// openBackend builds the repositories selected by STORE_BACKEND. The
// PostgreSQL backend connects, migrates and, when Valkey is reachable,
// puts the category cache in front of the registry.
func openBackend(ctx context.Context, cfg *config.Config) (*backend, error) {
	if cfg.StoreBackend == config.BackendMemory {
		slog.Warn("using in-memory storage; data is lost on restart")
		mem := memstore.New()
		return &backend{
			ideas:      mem.Ideas,
			votes:      mem.Votes,
			comments:   mem.Comments,
			categories: mem.Categories,
		}, nil
	}

	db, err := database.Connect(ctx, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if err := database.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	be := &backend{
		ideas:      store.NewIdeaStore(db, cfg.StoreTimeout),
		votes:      store.NewVoteLedger(db, cfg.StoreTimeout),
		comments:   store.NewCommentStore(db, cfg.StoreTimeout),
		categories: store.NewCategoryStore(db, cfg.StoreTimeout),
		db:         db,
	}

	// The category cache is optional; the board works without it.
	client, err := cache.ConnectValkey(ctx, cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Warn("valkey unavailable, category cache disabled", "error", err)
		return be, nil
	}
	be.valkey = client
	be.categories = cache.NewCategoryCache(be.categories, client, cfg.CategoryCacheTTL)
	return be, nil
}

// Close releases the connections opened by openBackend.
func (b *backend) Close() {
	if b.valkey != nil {
		b.valkey.Close()
	}
	if b.db != nil {
		b.db.Close()
	}
}
