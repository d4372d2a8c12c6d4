// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"

	"ideaboard/internal/board"
	"ideaboard/internal/database"
)

var (
	_ board.IdeaStore        = (*IdeaStore)(nil)
	_ board.VoteLedger       = (*VoteLedger)(nil)
	_ board.CommentStore     = (*CommentStore)(nil)
	_ board.CategoryRegistry = (*CategoryStore)(nil)
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "ideaboard")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "ideaboard")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped. A cleanup
// function is registered to close the connection when the test finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("pgx", testDSN())
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	if err := database.Migrate(context.Background(), db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// testUser returns an identity unique to this run. Ideas owned by it are
// removed when the test finishes; votes and comments cascade.
func testUser(t *testing.T, db *sql.DB, label string) string {
	t.Helper()
	id := "store-test-" + label + "-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanIdeas(t, db, id) })
	return id
}

// cleanIdeas removes ideas by owner. Call in t.Cleanup().
func cleanIdeas(t *testing.T, db *sql.DB, owners ...string) {
	t.Helper()
	for _, owner := range owners {
		db.Exec("DELETE FROM ideas WHERE owner_id = $1", owner)
	}
	for _, author := range owners {
		db.Exec("DELETE FROM comments WHERE author_id = $1", author)
	}
}

// testCategory ensures a category exists and returns its id.
func testCategory(t *testing.T, db *sql.DB) int64 {
	t.Helper()
	cats := NewCategoryStore(db, 0)
	ctx := context.Background()
	if err := cats.SeedDefaults(ctx, []string{"Store Test"}); err != nil {
		t.Fatalf("SeedDefaults: %v", err)
	}
	var id int64
	if err := db.QueryRow(`SELECT id FROM categories WHERE name = 'Store Test'`).Scan(&id); err != nil {
		t.Fatalf("find test category: %v", err)
	}
	return id
}

// newIdea creates an idea owned by owner in the test category.
func newIdea(t *testing.T, db *sql.DB, owner, title string) uuid.UUID {
	t.Helper()
	ideas := NewIdeaStore(db, 0)
	idea, err := ideas.Create(context.Background(), owner, title, "", testCategory(t, db))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return idea.ID
}
