package handlers

import (
	"net/http"
)

type HealthResponse struct {
	Status      string `json:"status"`
	CountTables int    `json:"countTables"`
}

// Health reports whether the store answers and how many tables it holds.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	count, err := h.TablesService.GetCountTables(r.Context())
	if err != nil {
		writeSuccess(w, HealthResponse{Status: "unavailable"}, http.StatusServiceUnavailable)
		return
	}

	writeSuccess(w, HealthResponse{Status: "ok", CountTables: count}, http.StatusOK)
}
