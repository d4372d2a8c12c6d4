package board

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"ideaboard/internal/models"
)

// Service exposes the board operations. Every operation takes the caller
// identity as an explicit argument; the service never authenticates.
type Service struct {
	ideas      IdeaStore
	votes      VoteLedger
	comments   CommentStore
	categories CategoryRegistry
}

// New wires a Service over the given repositories.
func New(ideas IdeaStore, votes VoteLedger, comments CommentStore, categories CategoryRegistry) *Service {
	return &Service{
		ideas:      ideas,
		votes:      votes,
		comments:   comments,
		categories: categories,
	}
}

// Init seeds the default categories. Call once at startup.
func (s *Service) Init(ctx context.Context) error {
	if err := s.categories.SeedDefaults(ctx, models.DefaultCategories); err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}
	slog.Info("categories seeded", "count", len(models.DefaultCategories))
	return nil
}

// CreateIdea submits a new idea owned by ownerID.
func (s *Service) CreateIdea(ctx context.Context, ownerID, title, description string, categoryID int64) (*models.Idea, error) {
	title, description, err := models.ValidateIdea("idea create", ownerID, title, description)
	if err != nil {
		return nil, err
	}
	idea, err := s.ideas.Create(ctx, ownerID, title, description, categoryID)
	if err != nil {
		return nil, err
	}
	slog.Info("idea created", "idea_id", idea.ID, "owner", ownerID, "category_id", categoryID)
	return idea, nil
}

// ListIdeas returns every idea ordered for display. callerID may be empty;
// when set, each view reports whether that caller has voted.
func (s *Service) ListIdeas(ctx context.Context, callerID string) ([]models.IdeaView, error) {
	if err := optionalCaller("idea list", callerID); err != nil {
		return nil, err
	}
	return s.ideas.List(ctx, callerID)
}

// GetIdea returns a single idea view for callerID (which may be empty).
func (s *Service) GetIdea(ctx context.Context, ideaID uuid.UUID, callerID string) (*models.IdeaView, error) {
	if err := optionalCaller("idea view", callerID); err != nil {
		return nil, err
	}
	return s.ideas.View(ctx, ideaID, callerID)
}

// optionalCaller validates callerID on routes that also serve anonymous
// readers.
func optionalCaller(op, callerID string) error {
	if callerID == "" {
		return nil
	}
	return models.ValidateIdentity(op, callerID)
}

// ListOwnIdeas returns the ideas callerID submitted, newest first.
func (s *Service) ListOwnIdeas(ctx context.Context, callerID string) ([]models.IdeaView, error) {
	if err := models.ValidateIdentity("idea list own", callerID); err != nil {
		return nil, err
	}
	return s.ideas.ListByOwner(ctx, callerID)
}

// CastVote records userID's vote on an idea and returns the refreshed view.
// Repeating the same vote is a no-op; a different type replaces the old vote.
func (s *Service) CastVote(ctx context.Context, ideaID uuid.UUID, userID, voteType string) (*models.IdeaView, error) {
	if err := models.ValidateIdentity("vote cast", userID); err != nil {
		return nil, err
	}
	vt, err := models.ParseVoteType("vote cast", voteType)
	if err != nil {
		return nil, err
	}
	total, err := s.votes.Cast(ctx, ideaID, userID, vt)
	if err != nil {
		return nil, err
	}
	slog.Debug("vote cast", "idea_id", ideaID, "user", userID, "type", vt, "aggregate", total)
	return s.ideas.View(ctx, ideaID, userID)
}

// RemoveVote withdraws userID's vote, if any, and returns the refreshed view.
func (s *Service) RemoveVote(ctx context.Context, ideaID uuid.UUID, userID string) (*models.IdeaView, error) {
	if err := models.ValidateIdentity("vote remove", userID); err != nil {
		return nil, err
	}
	total, err := s.votes.Remove(ctx, ideaID, userID)
	if err != nil {
		return nil, err
	}
	slog.Debug("vote removed", "idea_id", ideaID, "user", userID, "aggregate", total)
	return s.ideas.View(ctx, ideaID, userID)
}

// SetStatus moves an idea to newStatus. Only the owner may do this; any
// status may follow any other.
func (s *Service) SetStatus(ctx context.Context, ideaID uuid.UUID, newStatus, callerID string) (*models.IdeaView, error) {
	if err := models.ValidateIdentity("idea status", callerID); err != nil {
		return nil, err
	}
	st, err := models.ParseStatus("idea status", newStatus)
	if err != nil {
		return nil, err
	}
	if _, err := s.ideas.SetStatus(ctx, ideaID, st, callerID); err != nil {
		return nil, err
	}
	slog.Info("idea status changed", "idea_id", ideaID, "status", st, "by", callerID)
	return s.ideas.View(ctx, ideaID, callerID)
}

// AddComment appends a comment to an idea.
func (s *Service) AddComment(ctx context.Context, ideaID uuid.UUID, authorID, content string) (*models.Comment, error) {
	content, err := models.ValidateComment("comment add", authorID, content)
	if err != nil {
		return nil, err
	}
	return s.comments.Add(ctx, ideaID, authorID, content)
}

// ListComments returns an idea's comments, newest first.
func (s *Service) ListComments(ctx context.Context, ideaID uuid.UUID) ([]models.Comment, error) {
	return s.comments.ListFor(ctx, ideaID)
}

// ListOwnComments returns the comments callerID wrote, newest first.
func (s *Service) ListOwnComments(ctx context.Context, callerID string) ([]models.Comment, error) {
	if err := models.ValidateIdentity("comment list own", callerID); err != nil {
		return nil, err
	}
	return s.comments.ListByAuthor(ctx, callerID)
}

// ListCategories returns every category.
func (s *Service) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.categories.List(ctx)
}
