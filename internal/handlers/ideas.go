package handlers

import (
	"net/http"

	"ideaboard/internal/middleware"
)

type createIdeaRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	CategoryID  int64  `json:"category_id"`
}

type statusRequest struct {
	Status string `json:"status"`
}

type voteRequest struct {
	VoteType string `json:"vote_type"`
}

// ListIdeas returns every idea, ordered by status then newest first.
// Anonymous callers get views without vote information.
func (b *Board) ListIdeas(w http.ResponseWriter, r *http.Request) {
	views, err := b.svc.ListIdeas(r.Context(), middleware.CallerFromCtx(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(views))
}

// CreateIdea submits a new idea owned by the caller.
func (b *Board) CreateIdea(w http.ResponseWriter, r *http.Request) {
	var req createIdeaRequest
	if err := decodeJSON(w, r, "idea create", &req); err != nil {
		writeError(w, r, err)
		return
	}

	caller := middleware.CallerFromCtx(r.Context())
	idea, err := b.svc.CreateIdea(r.Context(), caller, req.Title, req.Description, req.CategoryID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	view, err := b.svc.GetIdea(r.Context(), idea.ID, caller)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/ideas/"+idea.ID.String())
	writeJSON(w, http.StatusCreated, view)
}

// GetIdea returns a single idea view.
func (b *Board) GetIdea(w http.ResponseWriter, r *http.Request) {
	id, err := ideaID(r, "idea get")
	if err != nil {
		writeError(w, r, err)
		return
	}
	view, err := b.svc.GetIdea(r.Context(), id, middleware.CallerFromCtx(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// SetStatus moves an idea to a new status. Only the owner may do so.
func (b *Board) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := ideaID(r, "idea status")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req statusRequest
	if err := decodeJSON(w, r, "idea status", &req); err != nil {
		writeError(w, r, err)
		return
	}

	view, err := b.svc.SetStatus(r.Context(), id, req.Status, middleware.CallerFromCtx(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// CastVote records the caller's vote and returns the updated idea.
func (b *Board) CastVote(w http.ResponseWriter, r *http.Request) {
	id, err := ideaID(r, "vote cast")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req voteRequest
	if err := decodeJSON(w, r, "vote cast", &req); err != nil {
		writeError(w, r, err)
		return
	}

	view, err := b.svc.CastVote(r.Context(), id, middleware.CallerFromCtx(r.Context()), req.VoteType)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// RemoveVote withdraws the caller's vote, if any.
func (b *Board) RemoveVote(w http.ResponseWriter, r *http.Request) {
	id, err := ideaID(r, "vote remove")
	if err != nil {
		writeError(w, r, err)
		return
	}

	view, err := b.svc.RemoveVote(r.Context(), id, middleware.CallerFromCtx(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// ListOwnIdeas returns the caller's ideas, newest first.
func (b *Board) ListOwnIdeas(w http.ResponseWriter, r *http.Request) {
	views, err := b.svc.ListOwnIdeas(r.Context(), middleware.CallerFromCtx(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(views))
}

// ListCategories returns the category registry.
func (b *Board) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := b.svc.ListCategories(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(cats))
}
