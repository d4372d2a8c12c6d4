package memstore

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"ideaboard/internal/apperr"
	"ideaboard/internal/models"
)

// VoteLedger is the in-memory vote repository.
type VoteLedger struct {
	s *Store
}

// Cast upserts userID's vote and returns the recomputed aggregate.
func (l *VoteLedger) Cast(ctx context.Context, ideaID uuid.UUID, userID string, vt models.VoteType) (int, error) {
	const op = "vote cast"
	if err := models.ValidateIdentity(op, userID); err != nil {
		return 0, err
	}
	if !vt.Valid() {
		return 0, apperr.Validation(op, "unknown vote type %q", vt)
	}
	if err := live(ctx, op); err != nil {
		return 0, err
	}

	s := l.s
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.ideas[ideaID]
	if !ok {
		return 0, apperr.NotFound(op, "idea")
	}

	rows := s.votes[ideaID]
	if rows == nil {
		rows = make(map[string]models.Vote)
		s.votes[ideaID] = rows
	}
	now := s.now()
	switch existing, ok := rows[userID]; {
	case !ok:
		rows[userID] = models.Vote{IdeaID: ideaID, UserID: userID, Type: vt, CreatedAt: now, UpdatedAt: now}
	case existing.Type != vt:
		existing.Type = vt
		existing.UpdatedAt = now
		rows[userID] = existing
	}

	return l.recompute(rec), nil
}

// Remove deletes userID's vote if present and returns the recomputed aggregate.
func (l *VoteLedger) Remove(ctx context.Context, ideaID uuid.UUID, userID string) (int, error) {
	const op = "vote remove"
	if err := models.ValidateIdentity(op, userID); err != nil {
		return 0, err
	}
	if err := live(ctx, op); err != nil {
		return 0, err
	}

	s := l.s
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.ideas[ideaID]
	if !ok {
		return 0, apperr.NotFound(op, "idea")
	}
	delete(s.votes[ideaID], userID)

	return l.recompute(rec), nil
}

// recompute derives the aggregate from the vote rows and stores it on the
// idea. Caller must hold the write lock.
func (l *VoteLedger) recompute(rec *ideaRecord) int {
	total := 0
	for _, v := range l.s.votes[rec.idea.ID] {
		total += v.Type.Weight()
	}
	rec.idea.VoteCount = total
	return total
}

// Aggregate recomputes the idea's score from its vote rows.
func (l *VoteLedger) Aggregate(ctx context.Context, ideaID uuid.UUID) (int, error) {
	votes, err := l.votesFor(ctx, "vote aggregate", ideaID)
	if err != nil {
		return 0, err
	}
	return models.Tally(votes), nil
}

// Votes returns the idea's vote rows ordered by user.
func (l *VoteLedger) Votes(ctx context.Context, ideaID uuid.UUID) ([]models.Vote, error) {
	return l.votesFor(ctx, "vote list", ideaID)
}

func (l *VoteLedger) votesFor(ctx context.Context, op string, ideaID uuid.UUID) ([]models.Vote, error) {
	if err := live(ctx, op); err != nil {
		return nil, err
	}
	s := l.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.ideas[ideaID]; !ok {
		return nil, apperr.NotFound(op, "idea")
	}
	votes := make([]models.Vote, 0, len(s.votes[ideaID]))
	for _, v := range s.votes[ideaID] {
		votes = append(votes, v)
	}
	sort.Slice(votes, func(i, j int) bool { return votes[i].UserID < votes[j].UserID })
	return votes, nil
}
