package service

import (
	"fmt"

	"blogicum/internal/access"
	"blogicum/internal/config"
	"blogicum/internal/visibility"
)

type Pagination struct {
	Page        int  `json:"page"`
	PageSize    int  `json:"pageSize"`
	Total       int  `json:"total"`
	TotalPages  int  `json:"totalPages"`
	HasNext     bool `json:"hasNext"`
	HasPrevious bool `json:"hasPrevious"`
}

// paginate validates the requested page. The first page always exists, even
// when empty; any other page past the end is not found.
func paginate(page, total int, cfg config.Pagination) (Pagination, error) {
	if page < 1 {
		page = 1
	}

	totalPages := (total + cfg.PageSize - 1) / cfg.PageSize
	if totalPages == 0 {
		totalPages = 1
	}

	if page > totalPages {
		return Pagination{}, fmt.Errorf("страница %d: %w", page, access.ErrNotFound)
	}

	return Pagination{
		Page:        page,
		PageSize:    cfg.PageSize,
		Total:       total,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrevious: page > 1,
	}, nil
}

func window(spec visibility.Spec, p Pagination) visibility.Spec {
	spec.Limit = p.PageSize
	spec.Offset = (p.Page - 1) * p.PageSize
	return spec
}
