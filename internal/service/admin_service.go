package service

import (
	"context"
	"time"

	"blogicum/internal/models"
	"blogicum/internal/repository"
)

// AdminService manages the reference data behind posts. Callers must already be staff.
type AdminService interface {
	ListCategories(ctx context.Context, titleQuery string) ([]models.Category, error)
	CreateCategory(ctx context.Context, req repository.CategoryRequest) (*models.Category, error)
	UpdateCategory(ctx context.Context, categoryID int64, req repository.CategoryRequest) (*models.Category, error)
	DeleteCategory(ctx context.Context, categoryID int64) error

	ListLocations(ctx context.Context, nameQuery string) ([]models.Location, error)
	CreateLocation(ctx context.Context, req repository.LocationRequest) (*models.Location, error)
	UpdateLocation(ctx context.Context, locationID int64, req repository.LocationRequest) (*models.Location, error)
	DeleteLocation(ctx context.Context, locationID int64) error
}

type adminService struct {
	categoryRepo repository.CategoryRepository
	locationRepo repository.LocationRepository
	now          func() time.Time
}

func NewAdminService(categoryRepo repository.CategoryRepository, locationRepo repository.LocationRepository) AdminService {
	return &adminService{
		categoryRepo: categoryRepo,
		locationRepo: locationRepo,
		now:          time.Now,
	}
}

func (s *adminService) ListCategories(ctx context.Context, titleQuery string) ([]models.Category, error) {
	return s.categoryRepo.List(ctx, titleQuery)
}

func (s *adminService) CreateCategory(ctx context.Context, req repository.CategoryRequest) (*models.Category, error) {
	category := &models.Category{
		Title:       req.Title,
		Description: req.Description,
		Slug:        req.Slug,
		IsPublished: publishedOrDefault(req.IsPublished),
		CreatedAt:   s.now(),
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, translate(err)
	}

	return category, nil
}

// UpdateCategory may unpublish a category; its posts then drop out of every public listing.
func (s *adminService) UpdateCategory(ctx context.Context, categoryID int64, req repository.CategoryRequest) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return nil, translate(err)
	}

	category.Title = req.Title
	category.Description = req.Description
	category.Slug = req.Slug
	category.IsPublished = publishedOrDefault(req.IsPublished)

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, translate(err)
	}

	return category, nil
}

func (s *adminService) DeleteCategory(ctx context.Context, categoryID int64) error {
	return translate(s.categoryRepo.Delete(ctx, categoryID))
}

func (s *adminService) ListLocations(ctx context.Context, nameQuery string) ([]models.Location, error) {
	return s.locationRepo.List(ctx, nameQuery)
}

func (s *adminService) CreateLocation(ctx context.Context, req repository.LocationRequest) (*models.Location, error) {
	location := &models.Location{
		Name:        req.Name,
		IsPublished: publishedOrDefault(req.IsPublished),
		CreatedAt:   s.now(),
	}

	if err := s.locationRepo.Create(ctx, location); err != nil {
		return nil, translate(err)
	}

	return location, nil
}

func (s *adminService) UpdateLocation(ctx context.Context, locationID int64, req repository.LocationRequest) (*models.Location, error) {
	location, err := s.locationRepo.GetByID(ctx, locationID)
	if err != nil {
		return nil, translate(err)
	}

	location.Name = req.Name
	location.IsPublished = publishedOrDefault(req.IsPublished)

	if err := s.locationRepo.Update(ctx, location); err != nil {
		return nil, translate(err)
	}

	return location, nil
}

func (s *adminService) DeleteLocation(ctx context.Context, locationID int64) error {
	return translate(s.locationRepo.Delete(ctx, locationID))
}
