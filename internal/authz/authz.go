// Package authz holds the ownership checks applied before owner-gated
// mutations. Checks are pure: they read the idea and the caller, nothing else.
package authz

import (
	"ideaboard/internal/apperr"
	"ideaboard/internal/models"
)

// RequireOwner fails with an Unauthorized error for op unless callerID owns
// idea. An empty caller never owns anything.
func RequireOwner(op string, idea *models.Idea, callerID string) error {
	if idea == nil || callerID == "" || idea.OwnerID != callerID {
		return apperr.Unauthorized(op, "only the idea owner may do this")
	}
	return nil
}
