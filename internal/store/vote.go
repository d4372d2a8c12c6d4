package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ideaboard/internal/apperr"
	"ideaboard/internal/models"
)

// VoteLedger records one vote per (idea, user) pair and keeps the idea's
// denormalized vote_count equal to the sum of its vote weights.
type VoteLedger struct {
	base
}

// NewVoteLedger creates a new VoteLedger.
func NewVoteLedger(db *sql.DB, timeout time.Duration) *VoteLedger {
	return &VoteLedger{base: newBase(db, timeout)}
}

// recomputeSQL recounts the aggregate from the ledger rows inside the
// caller's transaction and returns it.
const recomputeSQL = `
	UPDATE ideas SET vote_count = (
		SELECT COALESCE(SUM(CASE vote_type WHEN 'upvote' THEN 1 WHEN 'downvote' THEN -1 ELSE 0 END), 0)
		FROM votes WHERE idea_id = $1
	)
	WHERE id = $1
	RETURNING vote_count`

func recompute(ctx context.Context, tx *sql.Tx, ideaID uuid.UUID) (int, error) {
	var total int
	if err := tx.QueryRowContext(ctx, recomputeSQL, ideaID).Scan(&total); err != nil {
		return 0, fmt.Errorf("recompute vote count: %w", err)
	}
	return total, nil
}

// Cast records userID's vote on the idea and returns the new aggregate.
// Casting the vote the user already holds changes nothing.
func (l *VoteLedger) Cast(ctx context.Context, ideaID uuid.UUID, userID string, voteType models.VoteType) (int, error) {
	const op = "vote cast"
	if err := models.ValidateIdentity(op, userID); err != nil {
		return 0, err
	}
	if !voteType.Valid() {
		return 0, apperr.Validation(op, "unknown vote type %q", voteType)
	}

	var total int
	err := l.atomic(ctx, op, func(ctx context.Context, tx *sql.Tx) error {
		if err := lockIdea(ctx, tx, op, ideaID); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO votes (idea_id, user_id, vote_type) VALUES ($1, $2, $3)
			ON CONFLICT (idea_id, user_id) DO UPDATE
			SET vote_type = EXCLUDED.vote_type, updated_at = NOW()
			WHERE votes.vote_type <> EXCLUDED.vote_type`,
			ideaID, userID, string(voteType),
		)
		if err != nil {
			return fmt.Errorf("upsert vote: %w", err)
		}
		total, err = recompute(ctx, tx, ideaID)
		return err
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

// Remove deletes userID's vote if present and returns the new aggregate.
func (l *VoteLedger) Remove(ctx context.Context, ideaID uuid.UUID, userID string) (int, error) {
	const op = "vote remove"
	if err := models.ValidateIdentity(op, userID); err != nil {
		return 0, err
	}

	var total int
	err := l.atomic(ctx, op, func(ctx context.Context, tx *sql.Tx) error {
		if err := lockIdea(ctx, tx, op, ideaID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM votes WHERE idea_id = $1 AND user_id = $2`, ideaID, userID); err != nil {
			return fmt.Errorf("delete vote: %w", err)
		}
		var err error
		total, err = recompute(ctx, tx, ideaID)
		return err
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

// tallySQL is the recompute formula on its own, without writing it back.
const tallySQL = `
	SELECT COALESCE(SUM(CASE vote_type WHEN 'upvote' THEN 1 WHEN 'downvote' THEN -1 ELSE 0 END), 0)
	FROM votes WHERE idea_id = $1`

// Aggregate recomputes the idea's score from its vote rows.
func (l *VoteLedger) Aggregate(ctx context.Context, ideaID uuid.UUID) (int, error) {
	const op = "vote aggregate"
	ctx, cancel := l.bounded(ctx)
	defer cancel()

	if err := ideaExists(ctx, l.db, op, ideaID); err != nil {
		return 0, err
	}

	var total int
	if err := l.db.QueryRowContext(ctx, tallySQL, ideaID).Scan(&total); err != nil {
		return 0, apperr.Storage(op, fmt.Errorf("tally votes: %w", err))
	}
	return total, nil
}

// Votes returns the ledger rows of the idea ordered by user.
func (l *VoteLedger) Votes(ctx context.Context, ideaID uuid.UUID) ([]models.Vote, error) {
	const op = "vote list"
	ctx, cancel := l.bounded(ctx)
	defer cancel()

	if err := ideaExists(ctx, l.db, op, ideaID); err != nil {
		return nil, err
	}

	rows, err := l.db.QueryContext(ctx, `
		SELECT idea_id, user_id, vote_type, created_at, updated_at
		FROM votes WHERE idea_id = $1
		ORDER BY user_id`, ideaID)
	if err != nil {
		return nil, apperr.Storage(op, fmt.Errorf("list votes: %w", err))
	}
	defer rows.Close()

	var votes []models.Vote
	for rows.Next() {
		var v models.Vote
		if err := rows.Scan(&v.IdeaID, &v.UserID, &v.Type, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, apperr.Storage(op, fmt.Errorf("scan vote: %w", err))
		}
		votes = append(votes, v)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Storage(op, err)
	}
	return votes, nil
}
