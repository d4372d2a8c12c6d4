// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// IdeaStatus is the workflow state of an idea. Any state may follow any
// other; only the owner changes it.
type IdeaStatus string

const (
	IdeaStatusWaiting    IdeaStatus = "waiting"
	IdeaStatusInProgress IdeaStatus = "in_progress"
	IdeaStatusDone       IdeaStatus = "done"
)

// Rank orders statuses for listings: waiting first, done last.
// Unknown statuses sort after every known one.
func (s IdeaStatus) Rank() int {
	switch s {
	case IdeaStatusWaiting:
		return 1
	case IdeaStatusInProgress:
		return 2
	case IdeaStatusDone:
		return 3
	default:
		return 4
	}
}

// Valid reports whether s is one of the three workflow states.
func (s IdeaStatus) Valid() bool {
	return s.Rank() < 4
}

// Idea is a submitted suggestion. VoteCount is the materialized aggregate
// of the idea's votes and is only written by the vote ledger.
type Idea struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	OwnerID     string     `json:"owner_id"`
	CategoryID  int64      `json:"category_id"`
	Status      IdeaStatus `json:"status"`
	VoteCount   int        `json:"vote_count"`
	CreatedAt   time.Time  `json:"created_at"`
}

// IdeaView is an idea joined with everything a listing shows about it.
// HasVoted and OwnVote describe the caller the view was assembled for and
// are zero when no caller was supplied.
type IdeaView struct {
	Idea
	CategoryName string   `json:"category_name"`
	CommentCount int      `json:"comment_count"`
	HasVoted     bool     `json:"has_voted"`
	OwnVote      VoteType `json:"own_vote,omitempty"`
}
