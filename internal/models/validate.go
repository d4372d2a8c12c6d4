package models

import (
	"strings"
	"unicode/utf8"

	"ideaboard/internal/apperr"
)

// Validation limits. Identity and title widths match the database columns.
const (
	MaxIdentityLen    = 191
	MaxTitleLen       = 255
	MaxDescriptionLen = 10_000
	MaxCommentLen     = 10_000
)

// checkText rejects strings the database cannot store as text.
func checkText(op, field, s string) error {
	if !utf8.ValidString(s) {
		return apperr.Validation(op, "%s is not valid UTF-8", field)
	}
	if strings.IndexByte(s, 0) >= 0 {
		return apperr.Validation(op, "%s must not contain NUL characters", field)
	}
	return nil
}

// ValidateIdentity checks a caller identity handed over by the upstream
// authenticator.
func ValidateIdentity(op, id string) error {
	if strings.TrimSpace(id) == "" {
		return apperr.Validation(op, "caller identity is required")
	}
	if err := checkText(op, "caller identity", id); err != nil {
		return err
	}
	if utf8.RuneCountInString(id) > MaxIdentityLen {
		return apperr.Validation(op, "caller identity is too long (max %d characters)", MaxIdentityLen)
	}
	return nil
}

// ValidateIdea checks idea submission fields and returns the normalized
// title and description. Category existence needs the registry and is
// checked by the store.
func ValidateIdea(op, ownerID, title, description string) (string, string, error) {
	if err := ValidateIdentity(op, ownerID); err != nil {
		return "", "", err
	}
	if err := checkText(op, "title", title); err != nil {
		return "", "", err
	}
	if err := checkText(op, "description", description); err != nil {
		return "", "", err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return "", "", apperr.Validation(op, "title is required")
	}
	if utf8.RuneCountInString(title) > MaxTitleLen {
		return "", "", apperr.Validation(op, "title is too long (max %d characters)", MaxTitleLen)
	}
	description = strings.TrimSpace(description)
	if utf8.RuneCountInString(description) > MaxDescriptionLen {
		return "", "", apperr.Validation(op, "description is too long (max %d characters)", MaxDescriptionLen)
	}
	return title, description, nil
}

// ValidateComment checks a comment body and returns it trimmed.
func ValidateComment(op, authorID, content string) (string, error) {
	if err := ValidateIdentity(op, authorID); err != nil {
		return "", err
	}
	if err := checkText(op, "comment", content); err != nil {
		return "", err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return "", apperr.Validation(op, "comment content is required")
	}
	if utf8.RuneCountInString(content) > MaxCommentLen {
		return "", apperr.Validation(op, "comment is too long (max %d characters)", MaxCommentLen)
	}
	return content, nil
}

// ParseStatus converts client input into an IdeaStatus.
func ParseStatus(op, s string) (IdeaStatus, error) {
	st := IdeaStatus(strings.TrimSpace(s))
	if !st.Valid() {
		return "", apperr.Validation(op, "unknown status %q (want waiting, in_progress or done)", s)
	}
	return st, nil
}

// ParseVoteType converts client input into a VoteType.
func ParseVoteType(op, s string) (VoteType, error) {
	vt := VoteType(strings.TrimSpace(s))
	if !vt.Valid() {
		return "", apperr.Validation(op, "unknown vote type %q (want upvote or downvote)", s)
	}
	return vt, nil
}
