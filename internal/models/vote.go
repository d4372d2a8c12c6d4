// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// VoteType is the direction of a vote.
type VoteType string

const (
	VoteUp   VoteType = "upvote"
	VoteDown VoteType = "downvote"
)

// Weight is the vote's contribution to an idea's aggregate.
func (v VoteType) Weight() int {
	switch v {
	case VoteUp:
		return 1
	case VoteDown:
		return -1
	default:
		return 0
	}
}

// Valid reports whether v is upvote or downvote.
func (v VoteType) Valid() bool {
	return v == VoteUp || v == VoteDown
}

// Vote is one user's vote on one idea. (IdeaID, UserID) is unique.
type Vote struct {
	IdeaID    uuid.UUID `json:"idea_id"`
	UserID    string    `json:"user_id"`
	Type      VoteType  `json:"vote_type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Tally computes the aggregate for a set of votes: upvotes minus downvotes.
func Tally(votes []Vote) int {
	n := 0
	for _, v := range votes {
		n += v.Type.Weight()
	}
	return n
}
