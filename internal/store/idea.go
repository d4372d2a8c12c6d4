// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ideaboard/internal/apperr"
	"ideaboard/internal/authz"
	"ideaboard/internal/models"
)

// IdeaStore handles all idea-related database operations.
type IdeaStore struct {
	base
}

// NewIdeaStore creates a new IdeaStore with the given database connection.
func NewIdeaStore(db *sql.DB, timeout time.Duration) *IdeaStore {
	return &IdeaStore{base: newBase(db, timeout)}
}

const ideaColumns = `id, title, description, owner_id, category_id, status, vote_count, created_at`

// viewSelect assembles idea views. $1 is the caller whose vote is reported;
// an empty caller matches no vote row.
const viewSelect = `
	SELECT i.id, i.title, i.description, i.owner_id, i.category_id, i.status,
	       i.vote_count, i.created_at,
	       c.name,
	       (SELECT COUNT(*) FROM comments com WHERE com.idea_id = i.id) AS comment_count,
	       COALESCE(v.vote_type, '') AS own_vote
	FROM ideas i
	JOIN categories c ON c.id = i.category_id
	LEFT JOIN votes v ON v.idea_id = i.id AND v.user_id = $1`

// statusOrder ranks statuses for listings.
const statusOrder = `CASE i.status
		WHEN 'waiting' THEN 1
		WHEN 'in_progress' THEN 2
		WHEN 'done' THEN 3
		ELSE 4
	END`

// scanIdea scans a row into an Idea struct.
func scanIdea(scanner interface{ Scan(...any) error }) (*models.Idea, error) {
	var i models.Idea
	err := scanner.Scan(
		&i.ID, &i.Title, &i.Description, &i.OwnerID, &i.CategoryID,
		&i.Status, &i.VoteCount, &i.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

// scanView scans a viewSelect row.
func scanView(scanner interface{ Scan(...any) error }) (*models.IdeaView, error) {
	var v models.IdeaView
	var ownVote string
	err := scanner.Scan(
		&v.ID, &v.Title, &v.Description, &v.OwnerID, &v.CategoryID,
		&v.Status, &v.VoteCount, &v.CreatedAt,
		&v.CategoryName, &v.CommentCount, &ownVote,
	)
	if err != nil {
		return nil, err
	}
	if ownVote != "" {
		v.HasVoted = true
		v.OwnVote = models.VoteType(ownVote)
	}
	return &v, nil
}

// Create inserts a waiting idea. The insert selects from categories, so an
// unknown category inserts nothing and is reported as a validation error.
func (s *IdeaStore) Create(ctx context.Context, ownerID, title, description string, categoryID int64) (*models.Idea, error) {
	const op = "idea create"
	title, description, err := models.ValidateIdea(op, ownerID, title, description)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.bounded(ctx)
	defer cancel()

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO ideas (title, description, owner_id, category_id)
		SELECT $1::text, $2::text, $3::text, c.id
		FROM categories c WHERE c.id = $4
		RETURNING `+ideaColumns,
		title, description, ownerID, categoryID,
	)
	idea, err := scanIdea(row)
	if err == sql.ErrNoRows {
		return nil, apperr.Validation(op, "unknown category %d", categoryID)
	}
	if err != nil {
		return nil, apperr.Storage(op, fmt.Errorf("create idea: %w", err))
	}
	return idea, nil
}

// Get retrieves an idea by its UUID.
func (s *IdeaStore) Get(ctx context.Context, id uuid.UUID) (*models.Idea, error) {
	ctx, cancel := s.bounded(ctx)
	defer cancel()

	idea, err := scanIdea(s.db.QueryRowContext(ctx, `SELECT `+ideaColumns+` FROM ideas WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("idea get", "idea")
	}
	if err != nil {
		return nil, apperr.Storage("idea get", fmt.Errorf("find idea by id: %w", err))
	}
	return idea, nil
}

// View returns the assembled view of one idea for callerID.
func (s *IdeaStore) View(ctx context.Context, id uuid.UUID, callerID string) (*models.IdeaView, error) {
	ctx, cancel := s.bounded(ctx)
	defer cancel()

	v, err := scanView(s.db.QueryRowContext(ctx, viewSelect+` WHERE i.id = $2`, callerID, id))
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("idea view", "idea")
	}
	if err != nil {
		return nil, apperr.Storage("idea view", fmt.Errorf("view idea: %w", err))
	}
	return v, nil
}

// List returns every idea ordered by status rank, then newest first.
func (s *IdeaStore) List(ctx context.Context, callerID string) ([]models.IdeaView, error) {
	return s.queryViews(ctx, "idea list",
		viewSelect+` ORDER BY `+statusOrder+`, i.created_at DESC, i.id DESC`,
		callerID,
	)
}

// ListByOwner returns the ideas ownerID submitted, newest first.
func (s *IdeaStore) ListByOwner(ctx context.Context, ownerID string) ([]models.IdeaView, error) {
	return s.queryViews(ctx, "idea list own",
		viewSelect+` WHERE i.owner_id = $1 ORDER BY i.created_at DESC, i.id DESC`,
		ownerID,
	)
}

func (s *IdeaStore) queryViews(ctx context.Context, op, query string, args ...any) ([]models.IdeaView, error) {
	ctx, cancel := s.bounded(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperr.Storage(op, fmt.Errorf("list ideas: %w", err))
	}
	defer rows.Close()

	var views []models.IdeaView
	for rows.Next() {
		v, err := scanView(rows)
		if err != nil {
			return nil, apperr.Storage(op, fmt.Errorf("scan idea: %w", err))
		}
		views = append(views, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Storage(op, err)
	}
	return views, nil
}

// SetStatus locks the idea, checks that callerID owns it, and updates the
// status, all in one transaction.
func (s *IdeaStore) SetStatus(ctx context.Context, id uuid.UUID, status models.IdeaStatus, callerID string) (*models.Idea, error) {
	const op = "idea status"
	if !status.Valid() {
		return nil, apperr.Validation(op, "unknown status %q", status)
	}

	var updated *models.Idea
	err := s.atomic(ctx, op, func(ctx context.Context, tx *sql.Tx) error {
		idea, err := scanIdea(tx.QueryRowContext(ctx,
			`SELECT `+ideaColumns+` FROM ideas WHERE id = $1 FOR NO KEY UPDATE`, id))
		if err == sql.ErrNoRows {
			return apperr.NotFound(op, "idea")
		}
		if err != nil {
			return fmt.Errorf("lock idea: %w", err)
		}
		if err := authz.RequireOwner(op, idea, callerID); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `UPDATE ideas SET status = $1 WHERE id = $2`, string(status), id); err != nil {
			return fmt.Errorf("update status: %w", err)
		}
		idea.Status = status
		updated = idea
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
