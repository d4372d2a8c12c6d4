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

// CommentStore handles comment persistence.
type CommentStore struct {
	base
}

// NewCommentStore creates a new CommentStore.
func NewCommentStore(db *sql.DB, timeout time.Duration) *CommentStore {
	return &CommentStore{base: newBase(db, timeout)}
}

const commentColumns = `id, idea_id, author_id, content, created_at`

func scanComment(scanner interface{ Scan(...any) error }) (*models.Comment, error) {
	var c models.Comment
	if err := scanner.Scan(&c.ID, &c.IdeaID, &c.AuthorID, &c.Content, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// Add stores a comment on the idea. The insert selects the idea row, so a
// missing idea inserts nothing and is reported as not found.
func (s *CommentStore) Add(ctx context.Context, ideaID uuid.UUID, authorID, content string) (*models.Comment, error) {
	const op = "comment add"
	content, err := models.ValidateComment(op, authorID, content)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.bounded(ctx)
	defer cancel()

	c, err := scanComment(s.db.QueryRowContext(ctx, `
		INSERT INTO comments (idea_id, author_id, content)
		SELECT i.id, $2::text, $3::text FROM ideas i WHERE i.id = $1
		RETURNING `+commentColumns,
		ideaID, authorID, content,
	))
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound(op, "idea")
	}
	if err != nil {
		return nil, apperr.Storage(op, fmt.Errorf("insert comment: %w", err))
	}
	return c, nil
}

// ListFor returns the comments of an idea, newest first.
func (s *CommentStore) ListFor(ctx context.Context, ideaID uuid.UUID) ([]models.Comment, error) {
	const op = "comment list"
	ctx, cancel := s.bounded(ctx)
	defer cancel()

	if err := ideaExists(ctx, s.db, op, ideaID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+commentColumns+` FROM comments
		WHERE idea_id = $1
		ORDER BY created_at DESC, id DESC`, ideaID)
	if err != nil {
		return nil, apperr.Storage(op, fmt.Errorf("list comments: %w", err))
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, apperr.Storage(op, fmt.Errorf("scan comment: %w", err))
		}
		comments = append(comments, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Storage(op, err)
	}
	return comments, nil
}

// ListByAuthor returns the comments authorID wrote, newest first, each with
// the title of the idea it belongs to.
func (s *CommentStore) ListByAuthor(ctx context.Context, authorID string) ([]models.Comment, error) {
	const op = "comment list own"
	ctx, cancel := s.bounded(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.idea_id, c.author_id, c.content, c.created_at, i.title
		FROM comments c
		JOIN ideas i ON i.id = c.idea_id
		WHERE c.author_id = $1
		ORDER BY c.created_at DESC, c.id DESC`, authorID)
	if err != nil {
		return nil, apperr.Storage(op, fmt.Errorf("list comments by author: %w", err))
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.IdeaID, &c.AuthorID, &c.Content, &c.CreatedAt, &c.IdeaTitle); err != nil {
			return nil, apperr.Storage(op, fmt.Errorf("scan comment: %w", err))
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Storage(op, err)
	}
	return comments, nil
}
