package models

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

// TestIdeaStatusRank verifies the listing order waiting < in_progress < done
// and that unknown statuses sort last.
func TestIdeaStatusRank(t *testing.T) {
	tests := []struct {
		status IdeaStatus
		want   int
		valid  bool
	}{
		{IdeaStatusWaiting, 1, true},
		{IdeaStatusInProgress, 2, true},
		{IdeaStatusDone, 3, true},
		{IdeaStatus(""), 4, false},
		{IdeaStatus("archived"), 4, false},
		{IdeaStatus("DONE"), 4, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.Rank(); got != tt.want {
				t.Errorf("Rank() = %d, want %d", got, tt.want)
			}
			if got := tt.status.Valid(); got != tt.valid {
				t.Errorf("Valid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestVoteTypeWeight(t *testing.T) {
	tests := []struct {
		vt     VoteType
		weight int
		valid  bool
	}{
		{VoteUp, 1, true},
		{VoteDown, -1, true},
		{VoteType("unvote"), 0, false},
		{VoteType(""), 0, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.vt), func(t *testing.T) {
			if got := tt.vt.Weight(); got != tt.weight {
				t.Errorf("Weight() = %d, want %d", got, tt.weight)
			}
			if got := tt.vt.Valid(); got != tt.valid {
				t.Errorf("Valid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestTally(t *testing.T) {
	id := uuid.New()
	votes := []Vote{
		{IdeaID: id, UserID: "a", Type: VoteUp},
		{IdeaID: id, UserID: "b", Type: VoteUp},
		{IdeaID: id, UserID: "c", Type: VoteDown},
	}
	if got := Tally(votes); got != 1 {
		t.Errorf("Tally = %d, want 1", got)
	}
	if got := Tally(nil); got != 0 {
		t.Errorf("Tally(nil) = %d, want 0", got)
	}
}

func TestDefaultCategoriesUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, name := range DefaultCategories {
		if strings.TrimSpace(name) == "" {
			t.Error("default category with empty name")
		}
		if seen[name] {
			t.Errorf("duplicate default category %q", name)
		}
		seen[name] = true
	}
}
