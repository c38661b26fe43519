package service

import (
	"context"

	"blogicum/internal/repository"
)

type TablesService interface {
	GetCountTables(ctx context.Context) (int, error)
}

type tablesService struct {
	tablesRepo repository.TablesRepository
}

func NewTablesService(tablesRepo repository.TablesRepository) TablesService {
	return &tablesService{
		tablesRepo: tablesRepo,
	}
}

func (s *tablesService) GetCountTables(ctx context.Context) (int, error) {
	return s.tablesRepo.CountTables(ctx)
}
