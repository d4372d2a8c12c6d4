// Package board is the operation surface of the idea board: submitting
// ideas, voting, commenting and moving ideas through their workflow.
//
// The Service validates every input before touching storage, then delegates
// to repository interfaces. Two backends implement them: internal/store
// (PostgreSQL) and internal/store/memstore (in-memory).
package board

import (
	"context"

	"github.com/google/uuid"

	"ideaboard/internal/models"
)

// CategoryRegistry resolves category ids to names.
type CategoryRegistry interface {
	// SeedDefaults inserts the given names; names already present are skipped.
	SeedDefaults(ctx context.Context, names []string) error
	Resolve(ctx context.Context, id int64) (string, error)
	List(ctx context.Context) ([]models.Category, error)
}

// IdeaStore persists ideas and assembles read views over them.
type IdeaStore interface {
	Create(ctx context.Context, ownerID, title, description string, categoryID int64) (*models.Idea, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Idea, error)
	View(ctx context.Context, id uuid.UUID, callerID string) (*models.IdeaView, error)
	// List orders by status rank, then newest first.
	List(ctx context.Context, callerID string) ([]models.IdeaView, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.IdeaView, error)
	// SetStatus checks ownership and updates the status in one atomic unit.
	SetStatus(ctx context.Context, id uuid.UUID, status models.IdeaStatus, callerID string) (*models.Idea, error)
}

// VoteLedger owns vote rows and the aggregate derived from them. Cast and
// Remove recompute the aggregate inside the same atomic unit as the row
// change and return the new value.
type VoteLedger interface {
	Cast(ctx context.Context, ideaID uuid.UUID, userID string, vt models.VoteType) (int, error)
	Remove(ctx context.Context, ideaID uuid.UUID, userID string) (int, error)
	Aggregate(ctx context.Context, ideaID uuid.UUID) (int, error)
	Votes(ctx context.Context, ideaID uuid.UUID) ([]models.Vote, error)
}

// CommentStore persists append-only comments.
type CommentStore interface {
	Add(ctx context.Context, ideaID uuid.UUID, authorID, content string) (*models.Comment, error)
	// ListFor returns an idea's comments, newest first.
	ListFor(ctx context.Context, ideaID uuid.UUID) ([]models.Comment, error)
	ListByAuthor(ctx context.Context, authorID string) ([]models.Comment, error)
}
