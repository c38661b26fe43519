package handlers

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"blogicum/internal/access"

	"github.com/gorilla/mux"
)

type RedirectResponse struct {
	Redirect string `json:"redirect"`
}

func PostURL(postID int64) string {
	return fmt.Sprintf("/posts/%d/", postID)
}

func ProfileURL(username string) string {
	return "/profile/" + url.PathEscape(username) + "/"
}

// writeRedirect answers a form submission with 303 and the target in both the header and the body.
func writeRedirect(w http.ResponseWriter, location string) {
	w.Header().Set("Location", location)
	writeSuccess(w, RedirectResponse{Redirect: location}, http.StatusSeeOther)
}

// writeRefused handles a refused mutation: back to the post page, nothing said.
func writeRefused(w http.ResponseWriter, decision access.Decision) {
	writeRedirect(w, PostURL(decision.RedirectPostID))
}

// allowed writes the error or the refusal and reports whether the mutation may go ahead.
func (h *Handlers) allowed(w http.ResponseWriter, r *http.Request, decision access.Decision, err error) bool {
	if err != nil {
		h.writeServiceError(w, r, err)
		return false
	}
	if !decision.Allowed {
		writeRefused(w, decision)
		return false
	}
	return true
}

// actorProfileURL reads the username from the user row; the token keeps the name it was issued with.
func (h *Handlers) actorProfileURL(r *http.Request, viewer access.Viewer) string {
	user, err := h.UserService.GetByID(r.Context(), viewer.ID)
	if err != nil {
		log.Printf("Не удалось получить пользователя %d: %v", viewer.ID, err)
		return ProfileURL(viewer.Username)
	}
	return ProfileURL(user.Username)
}

// idVar reads a positive integer path variable. Routes already restrict the pattern.
func idVar(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// pageParam falls back to the first page on a missing or malformed value.
func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
