package handlers

import (
	"net/http"

	"blogicum/internal/access"
	"blogicum/internal/repository"
)

// commentVars reads both ids of a comment route; either one malformed means not found.
func commentVars(r *http.Request) (int64, int64, bool) {
	postID, ok := idVar(r, "post_id")
	if !ok {
		return 0, 0, false
	}
	commentID, ok := idVar(r, "comment_id")
	if !ok {
		return 0, 0, false
	}
	return postID, commentID, true
}

func (h *Handlers) AddComment(w http.ResponseWriter, r *http.Request) {
	postID, ok := idVar(r, "post_id")
	if !ok {
		WriteError(w, "Страница не найдена", http.StatusNotFound)
		return
	}

	viewer := access.ViewerFrom(r.Context())

	// hidden and missing posts are not found, whatever the form says
	if err := h.CommentService.Commentable(r.Context(), viewer, postID); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	var req repository.CommentRequest
	if !h.decode(w, r, &req) {
		return
	}

	_, err := h.CommentService.Add(r.Context(), viewer, postID, req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeRedirect(w, PostURL(postID))
}

// CommentForEdit returns the comment to its author for the edit or delete form.
func (h *Handlers) CommentForEdit(w http.ResponseWriter, r *http.Request) {
	postID, commentID, ok := commentVars(r)
	if !ok {
		WriteError(w, "Страница не найдена", http.StatusNotFound)
		return
	}

	comment, decision, err := h.CommentService.ForEdit(r.Context(), access.ViewerFrom(r.Context()), postID, commentID)
	if !h.allowed(w, r, decision, err) {
		return
	}

	writeSuccess(w, comment, http.StatusOK)
}

func (h *Handlers) EditComment(w http.ResponseWriter, r *http.Request) {
	postID, commentID, ok := commentVars(r)
	if !ok {
		WriteError(w, "Страница не найдена", http.StatusNotFound)
		return
	}

	viewer := access.ViewerFrom(r.Context())

	decision, err := h.CommentService.Authorize(r.Context(), viewer, postID, commentID)
	if !h.allowed(w, r, decision, err) {
		return
	}

	var req repository.CommentRequest
	if !h.decode(w, r, &req) {
		return
	}

	decision, err = h.CommentService.Update(r.Context(), viewer, postID, commentID, req)
	if !h.allowed(w, r, decision, err) {
		return
	}

	writeRedirect(w, PostURL(postID))
}

func (h *Handlers) DeleteComment(w http.ResponseWriter, r *http.Request) {
	postID, commentID, ok := commentVars(r)
	if !ok {
		WriteError(w, "Страница не найдена", http.StatusNotFound)
		return
	}

	decision, err := h.CommentService.Delete(r.Context(), access.ViewerFrom(r.Context()), postID, commentID)
	if !h.allowed(w, r, decision, err) {
		return
	}

	writeRedirect(w, PostURL(postID))
}
