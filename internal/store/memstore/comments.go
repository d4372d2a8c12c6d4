package memstore

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"ideaboard/internal/apperr"
	"ideaboard/internal/models"
)

// CommentStore is the in-memory comment repository.
type CommentStore struct {
	s *Store
}

// Add appends a comment to an existing idea.
func (cs *CommentStore) Add(ctx context.Context, ideaID uuid.UUID, authorID, content string) (*models.Comment, error) {
	const op = "comment add"
	content, err := models.ValidateComment(op, authorID, content)
	if err != nil {
		return nil, err
	}
	if err := live(ctx, op); err != nil {
		return nil, err
	}

	s := cs.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ideas[ideaID]; !ok {
		return nil, apperr.NotFound(op, "idea")
	}
	rec := commentRecord{
		comment: models.Comment{
			ID:        uuid.New(),
			IdeaID:    ideaID,
			AuthorID:  authorID,
			Content:   content,
			CreatedAt: s.now(),
		},
		seq: s.nextSeq(),
	}
	s.comments[ideaID] = append(s.comments[ideaID], rec)

	c := rec.comment
	return &c, nil
}

// ListFor returns the idea's comments, newest first.
func (cs *CommentStore) ListFor(ctx context.Context, ideaID uuid.UUID) ([]models.Comment, error) {
	const op = "comment list"
	if err := live(ctx, op); err != nil {
		return nil, err
	}
	s := cs.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.ideas[ideaID]; !ok {
		return nil, apperr.NotFound(op, "idea")
	}
	recs := append([]commentRecord(nil), s.comments[ideaID]...)
	return newestFirst(recs), nil
}

// ListByAuthor returns every comment authorID wrote, newest first, with the
// commented idea's title filled in.
func (cs *CommentStore) ListByAuthor(ctx context.Context, authorID string) ([]models.Comment, error) {
	if err := live(ctx, "comment list own"); err != nil {
		return nil, err
	}
	s := cs.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	var recs []commentRecord
	for ideaID, list := range s.comments {
		title := s.ideas[ideaID].idea.Title
		for _, rec := range list {
			if rec.comment.AuthorID != authorID {
				continue
			}
			rec.comment.IdeaTitle = title
			recs = append(recs, rec)
		}
	}
	return newestFirst(recs), nil
}

func newestFirst(recs []commentRecord) []models.Comment {
	sort.SliceStable(recs, func(i, j int) bool {
		a, b := recs[i], recs[j]
		if !a.comment.CreatedAt.Equal(b.comment.CreatedAt) {
			return a.comment.CreatedAt.After(b.comment.CreatedAt)
		}
		return a.seq > b.seq
	})
	out := make([]models.Comment, len(recs))
	for i, rec := range recs {
		out[i] = rec.comment
	}
	return out
}
