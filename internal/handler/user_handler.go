package handlers

import (
	"net/http"

	"blogicum/internal/access"
	"blogicum/internal/repository"

	"github.com/gorilla/mux"
)

// Profile lists the user's posts: all of them for the owner, the public ones for everyone else.
func (h *Handlers) Profile(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	page, err := h.PostService.Profile(r.Context(), username, access.ViewerFrom(r.Context()), pageParam(r))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, page, http.StatusOK)
}

func (h *Handlers) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	viewer := access.ViewerFrom(r.Context())

	user, err := h.UserService.GetByID(r.Context(), viewer.ID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, user, http.StatusOK)
}

func (h *Handlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	viewer := access.ViewerFrom(r.Context())

	var req repository.UpdateUserRequest
	if !h.decode(w, r, &req) {
		return
	}

	// only ever the caller's own profile
	req.UserID = viewer.ID

	user, err := h.UserService.UpdateUser(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeRedirect(w, ProfileURL(user.Username))
}
