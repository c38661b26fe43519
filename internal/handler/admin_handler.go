package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"blogicum/internal/repository"
	"blogicum/internal/visibility"
)

func (h *Handlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.AdminService.ListCategories(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, categories, http.StatusOK)
}

func (h *Handlers) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req repository.CategoryRequest
	if !h.decode(w, r, &req) {
		return
	}

	category, err := h.AdminService.CreateCategory(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, category, http.StatusCreated)
}

func (h *Handlers) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := idVar(r, "category_id")
	if !ok {
		WriteError(w, "Страница не найдена", http.StatusNotFound)
		return
	}

	var req repository.CategoryRequest
	if !h.decode(w, r, &req) {
		return
	}

	category, err := h.AdminService.UpdateCategory(r.Context(), categoryID, req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, category, http.StatusOK)
}

func (h *Handlers) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := idVar(r, "category_id")
	if !ok {
		WriteError(w, "Страница не найдена", http.StatusNotFound)
		return
	}

	if err := h.AdminService.DeleteCategory(r.Context(), categoryID); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, MessageResponse{Message: "Категория удалена"}, http.StatusOK)
}

func (h *Handlers) ListLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := h.AdminService.ListLocations(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, locations, http.StatusOK)
}

func (h *Handlers) CreateLocation(w http.ResponseWriter, r *http.Request) {
	var req repository.LocationRequest
	if !h.decode(w, r, &req) {
		return
	}

	location, err := h.AdminService.CreateLocation(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, location, http.StatusCreated)
}

func (h *Handlers) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	locationID, ok := idVar(r, "location_id")
	if !ok {
		WriteError(w, "Страница не найдена", http.StatusNotFound)
		return
	}

	var req repository.LocationRequest
	if !h.decode(w, r, &req) {
		return
	}

	location, err := h.AdminService.UpdateLocation(r.Context(), locationID, req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, location, http.StatusOK)
}

func (h *Handlers) DeleteLocation(w http.ResponseWriter, r *http.Request) {
	locationID, ok := idVar(r, "location_id")
	if !ok {
		WriteError(w, "Страница не найдена", http.StatusNotFound)
		return
	}

	if err := h.AdminService.DeleteLocation(r.Context(), locationID); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, MessageResponse{Message: "Местоположение удалено"}, http.StatusOK)
}

// SearchPosts is the staff post list: ?q= searches titles, ?is_published= filters.
func (h *Handlers) SearchPosts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	base := visibility.Base{TitleQuery: query.Get("q")}

	if raw := query.Get("is_published"); raw != "" {
		isPublished, err := strconv.ParseBool(raw)
		if err != nil {
			writeValidation(w, map[string]string{"is_published": "boolean"})
			return
		}
		base.IsPublished = &isPublished
	}

	page, err := h.PostService.Search(r.Context(), base, pageParam(r))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, page, http.StatusOK)
}

// decode reads and validates a JSON body, answering 400 itself on failure.
func (h *Handlers) decode(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return false
	}

	if err := h.Validate.Struct(req); err != nil {
		writeValidatorError(w, err)
		return false
	}

	return true
}
