package handlers

import (
	"net/http"

	"blogicum/internal/access"
	"blogicum/internal/repository"

	"github.com/gorilla/mux"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Index is the public feed.
func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	page, err := h.PostService.Index(r.Context(), pageParam(r))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, page, http.StatusOK)
}

func (h *Handlers) CategoryPosts(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["category_slug"]

	page, err := h.PostService.Category(r.Context(), slug, pageParam(r))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, page, http.StatusOK)
}

func (h *Handlers) PostDetail(w http.ResponseWriter, r *http.Request) {
	postID, ok := idVar(r, "post_id")
	if !ok {
		WriteError(w, "Страница не найдена", http.StatusNotFound)
		return
	}

	detail, err := h.PostService.Detail(r.Context(), postID, access.ViewerFrom(r.Context()))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, detail, http.StatusOK)
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	viewer := access.ViewerFrom(r.Context())

	var req repository.PostRequest
	if !h.decode(w, r, &req) {
		return
	}

	_, err := h.PostService.Create(r.Context(), viewer, req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeRedirect(w, h.actorProfileURL(r, viewer))
}

// PostForEdit returns the post to its author for the edit or delete form.
func (h *Handlers) PostForEdit(w http.ResponseWriter, r *http.Request) {
	postID, ok := idVar(r, "post_id")
	if !ok {
		WriteError(w, "Страница не найдена", http.StatusNotFound)
		return
	}

	post, decision, err := h.PostService.ForEdit(r.Context(), access.ViewerFrom(r.Context()), postID)
	if !h.allowed(w, r, decision, err) {
		return
	}

	writeSuccess(w, post, http.StatusOK)
}

func (h *Handlers) EditPost(w http.ResponseWriter, r *http.Request) {
	viewer := access.ViewerFrom(r.Context())

	postID, ok := idVar(r, "post_id")
	if !ok {
		WriteError(w, "Страница не найдена", http.StatusNotFound)
		return
	}

	// a foreign or missing post is refused before the form is looked at
	decision, err := h.PostService.Authorize(r.Context(), viewer, postID)
	if !h.allowed(w, r, decision, err) {
		return
	}

	var req repository.PostRequest
	if !h.decode(w, r, &req) {
		return
	}

	decision, err = h.PostService.Update(r.Context(), viewer, postID, req)
	if !h.allowed(w, r, decision, err) {
		return
	}

	writeRedirect(w, h.actorProfileURL(r, viewer))
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	viewer := access.ViewerFrom(r.Context())

	postID, ok := idVar(r, "post_id")
	if !ok {
		WriteError(w, "Страница не найдена", http.StatusNotFound)
		return
	}

	decision, err := h.PostService.Delete(r.Context(), viewer, postID)
	if !h.allowed(w, r, decision, err) {
		return
	}

	writeRedirect(w, h.actorProfileURL(r, viewer))
}

func (h *Handlers) UploadImage(w http.ResponseWriter, r *http.Request) {
	viewer := access.ViewerFrom(r.Context())

	postID, ok := idVar(r, "post_id")
	if !ok {
		WriteError(w, "Страница не найдена", http.StatusNotFound)
		return
	}

	decision, err := h.PostService.Authorize(r.Context(), viewer, postID)
	if !h.allowed(w, r, decision, err) {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize)
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		WriteError(w, "Файл слишком большой или запрос повреждён", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		WriteError(w, "Не удалось получить файл", http.StatusBadRequest)
		return
	}
	defer file.Close()

	// check formats
	if !allowedImageTypes[header.Header.Get("Content-Type")] {
		WriteError(w, "Неподдерживаемый тип файла. Разрешены: JPEG, PNG, GIF, WebP", http.StatusBadRequest)
		return
	}

	decision, err = h.PostService.SetImage(r.Context(), viewer, postID, header.Filename, file, header.Size)
	if !h.allowed(w, r, decision, err) {
		return
	}

	writeRedirect(w, PostURL(postID))
}

func (h *Handlers) DeleteImage(w http.ResponseWriter, r *http.Request) {
	postID, ok := idVar(r, "post_id")
	if !ok {
		WriteError(w, "Страница не найдена", http.StatusNotFound)
		return
	}

	decision, err := h.PostService.DeleteImage(r.Context(), access.ViewerFrom(r.Context()), postID)
	if !h.allowed(w, r, decision, err) {
		return
	}

	writeRedirect(w, PostURL(postID))
}
