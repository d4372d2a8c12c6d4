// Package memstore is an in-memory implementation of the board
// repositories. A single RWMutex guards all state: every mutation holds the
// write lock for its whole unit, so a vote change and its aggregate update
// are never observed apart. Used by tests and by STORE_BACKEND=memory.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"ideaboard/internal/apperr"
	"ideaboard/internal/models"
)

type ideaRecord struct {
	idea models.Idea
	seq  uint64
}

type commentRecord struct {
	comment models.Comment
	seq     uint64
}

// Store holds all board state. Use the Ideas, Votes, Comments and
// Categories fields as the repository implementations.
type Store struct {
	mu  sync.RWMutex
	now func() time.Time
	seq uint64

	categories     []models.Category
	categoryByName map[string]int64

	ideas    map[uuid.UUID]*ideaRecord
	votes    map[uuid.UUID]map[string]models.Vote
	comments map[uuid.UUID][]commentRecord

	Ideas      *IdeaStore
	Votes      *VoteLedger
	Comments   *CommentStore
	Categories *CategoryRegistry
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for created/updated timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New returns an empty Store.
func New(opts ...Option) *Store {
	s := &Store{
		now:            time.Now,
		categoryByName: make(map[string]int64),
		ideas:          make(map[uuid.UUID]*ideaRecord),
		votes:          make(map[uuid.UUID]map[string]models.Vote),
		comments:       make(map[uuid.UUID][]commentRecord),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Ideas = &IdeaStore{s: s}
	s.Votes = &VoteLedger{s: s}
	s.Comments = &CommentStore{s: s}
	s.Categories = &CategoryRegistry{s: s}
	return s
}

// nextSeq returns a monotonically increasing insertion counter used to break
// timestamp ties. Caller must hold the write lock.
func (s *Store) nextSeq() uint64 {
	s.seq++
	return s.seq
}

// categoryName returns the name for id. Caller must hold a lock.
func (s *Store) categoryName(id int64) (string, bool) {
	for _, c := range s.categories {
		if c.ID == id {
			return c.Name, true
		}
	}
	return "", false
}

// view assembles the read view of rec for callerID. Caller must hold a lock.
func (s *Store) view(rec *ideaRecord, callerID string) models.IdeaView {
	v := models.IdeaView{Idea: rec.idea}
	v.CategoryName, _ = s.categoryName(rec.idea.CategoryID)
	v.CommentCount = len(s.comments[rec.idea.ID])
	if callerID != "" {
		if vote, ok := s.votes[rec.idea.ID][callerID]; ok {
			v.HasVoted = true
			v.OwnVote = vote.Type
		}
	}
	return v
}

// sortViews orders views newest first, grouped by status rank when
// byStatus is set. Insertion order breaks timestamp ties.
func sortViews(views []models.IdeaView, seqs map[uuid.UUID]uint64, byStatus bool) {
	sort.SliceStable(views, func(i, j int) bool {
		a, b := views[i], views[j]
		if ra, rb := a.Status.Rank(), b.Status.Rank(); byStatus && ra != rb {
			return ra < rb
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return seqs[a.ID] > seqs[b.ID]
	})
}

// live reports a cancelled or expired context as a storage failure, which is
// how the PostgreSQL backend surfaces the same condition.
func live(ctx context.Context, op string) error {
	if err := ctx.Err(); err != nil {
		return apperr.Storage(op, err)
	}
	return nil
}
