package handlers

import (
	"net/http"

	"ideaboard/internal/middleware"
)

type commentRequest struct {
	Content string `json:"content"`
}

// ListComments returns the comments of an idea, newest first.
func (b *Board) ListComments(w http.ResponseWriter, r *http.Request) {
	id, err := ideaID(r, "comment list")
	if err != nil {
		writeError(w, r, err)
		return
	}
	comments, err := b.svc.ListComments(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(comments))
}

// AddComment posts a comment by the caller.
func (b *Board) AddComment(w http.ResponseWriter, r *http.Request) {
	id, err := ideaID(r, "comment add")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req commentRequest
	if err := decodeJSON(w, r, "comment add", &req); err != nil {
		writeError(w, r, err)
		return
	}

	c, err := b.svc.AddComment(r.Context(), id, middleware.CallerFromCtx(r.Context()), req.Content)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// ListOwnComments returns the caller's comments with their idea titles.
func (b *Board) ListOwnComments(w http.ResponseWriter, r *http.Request) {
	comments, err := b.svc.ListOwnComments(r.Context(), middleware.CallerFromCtx(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(comments))
}
