package memstore

import (
	"context"

	"github.com/google/uuid"

	"ideaboard/internal/apperr"
	"ideaboard/internal/authz"
	"ideaboard/internal/models"
)

// IdeaStore is the in-memory idea repository.
type IdeaStore struct {
	s *Store
}

// Create inserts a waiting idea with no votes.
func (st *IdeaStore) Create(ctx context.Context, ownerID, title, description string, categoryID int64) (*models.Idea, error) {
	const op = "idea create"
	title, description, err := models.ValidateIdea(op, ownerID, title, description)
	if err != nil {
		return nil, err
	}
	if err := live(ctx, op); err != nil {
		return nil, err
	}

	s := st.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categoryName(categoryID); !ok {
		return nil, apperr.Validation(op, "unknown category %d", categoryID)
	}

	rec := &ideaRecord{
		idea: models.Idea{
			ID:          uuid.New(),
			Title:       title,
			Description: description,
			OwnerID:     ownerID,
			CategoryID:  categoryID,
			Status:      models.IdeaStatusWaiting,
			CreatedAt:   s.now(),
		},
		seq: s.nextSeq(),
	}
	s.ideas[rec.idea.ID] = rec

	idea := rec.idea
	return &idea, nil
}

// Get returns the idea with the given id.
func (st *IdeaStore) Get(ctx context.Context, id uuid.UUID) (*models.Idea, error) {
	if err := live(ctx, "idea get"); err != nil {
		return nil, err
	}
	s := st.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.ideas[id]
	if !ok {
		return nil, apperr.NotFound("idea get", "idea")
	}
	idea := rec.idea
	return &idea, nil
}

// View returns the assembled view of one idea for callerID.
func (st *IdeaStore) View(ctx context.Context, id uuid.UUID, callerID string) (*models.IdeaView, error) {
	if err := live(ctx, "idea view"); err != nil {
		return nil, err
	}
	s := st.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.ideas[id]
	if !ok {
		return nil, apperr.NotFound("idea view", "idea")
	}
	v := s.view(rec, callerID)
	return &v, nil
}

// List returns every idea ordered by status rank, then newest first.
func (st *IdeaStore) List(ctx context.Context, callerID string) ([]models.IdeaView, error) {
	return st.list(ctx, "idea list", callerID, true, func(*ideaRecord) bool { return true })
}

// ListByOwner returns the ideas ownerID submitted, newest first.
func (st *IdeaStore) ListByOwner(ctx context.Context, ownerID string) ([]models.IdeaView, error) {
	return st.list(ctx, "idea list own", ownerID, false, func(rec *ideaRecord) bool {
		return rec.idea.OwnerID == ownerID
	})
}

// list collects the views kept by keep. With byStatus the result is grouped
// by status rank; otherwise it is ordered purely by recency.
func (st *IdeaStore) list(ctx context.Context, op, callerID string, byStatus bool, keep func(*ideaRecord) bool) ([]models.IdeaView, error) {
	if err := live(ctx, op); err != nil {
		return nil, err
	}
	s := st.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	views := make([]models.IdeaView, 0, len(s.ideas))
	seqs := make(map[uuid.UUID]uint64, len(s.ideas))
	for id, rec := range s.ideas {
		if !keep(rec) {
			continue
		}
		views = append(views, s.view(rec, callerID))
		seqs[id] = rec.seq
	}
	sortViews(views, seqs, byStatus)
	return views, nil
}

// SetStatus changes the idea's status if callerID owns it.
func (st *IdeaStore) SetStatus(ctx context.Context, id uuid.UUID, status models.IdeaStatus, callerID string) (*models.Idea, error) {
	const op = "idea status"
	if !status.Valid() {
		return nil, apperr.Validation(op, "unknown status %q", status)
	}
	if err := live(ctx, op); err != nil {
		return nil, err
	}

	s := st.s
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.ideas[id]
	if !ok {
		return nil, apperr.NotFound(op, "idea")
	}
	if err := authz.RequireOwner(op, &rec.idea, callerID); err != nil {
		return nil, err
	}
	rec.idea.Status = status

	idea := rec.idea
	return &idea, nil
}
