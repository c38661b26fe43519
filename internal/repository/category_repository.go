package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"blogicum/internal/models"

	"github.com/jmoiron/sqlx"
)

type categoryRepository struct {
	db *sqlx.DB
}

type CategoryRequest struct {
	Title       string `json:"title" validate:"required,max=256"`
	Description string `json:"description" validate:"required"`
	Slug        string `json:"slug" validate:"required,max=64,slug"`
	IsPublished *bool  `json:"isPublished"`
}

func NewCategoryRepository(db *sqlx.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	query := `
		INSERT INTO categories (title, description, slug, is_published, created_at)
		VALUES (:title, :description, :slug, :is_published, :created_at)
		RETURNING id
	`

	if category.CreatedAt.IsZero() {
		category.CreatedAt = time.Now()
	}

	q, args, err := r.db.BindNamed(query, category)
	if err != nil {
		return fmt.Errorf("ошибка при подготовке запроса: %w", err)
	}

	err = r.db.QueryRowxContext(ctx, q, args...).Scan(&category.ID)
	if err != nil {
		if isUniqueViolation(err, "categories_slug_key") {
			return ErrDuplicateSlug
		}
		return fmt.Errorf("ошибка при создании категории: %w", err)
	}

	return nil
}

func (r *categoryRepository) GetByID(ctx context.Context, categoryID int64) (*models.Category, error) {
	var category models.Category

	err := r.db.GetContext(ctx, &category, `SELECT * FROM categories WHERE id = $1`, categoryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("категория с ID %d: %w", categoryID, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении категории: %w", err)
	}

	return &category, nil
}

func (r *categoryRepository) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category

	err := r.db.GetContext(ctx, &category, `SELECT * FROM categories WHERE slug = $1`, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("категория %s: %w", slug, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении категории: %w", err)
	}

	return &category, nil
}

// List returns all categories, narrowed to titles containing titleQuery when it is set.
func (r *categoryRepository) List(ctx context.Context, titleQuery string) ([]models.Category, error) {
	categories := []models.Category{}

	query := `SELECT * FROM categories WHERE $1 = '' OR title ILIKE '%' || $1 || '%' ORDER BY title`

	err := r.db.SelectContext(ctx, &categories, query, titleQuery)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении категорий: %w", err)
	}

	return categories, nil
}

func (r *categoryRepository) Update(ctx context.Context, category *models.Category) error {
	query := `
		UPDATE categories
		SET title = :title, description = :description, slug = :slug, is_published = :is_published
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, category)
	if err != nil {
		if isUniqueViolation(err, "categories_slug_key") {
			return ErrDuplicateSlug
		}
		return fmt.Errorf("ошибка при обновлении категории: %w", err)
	}

	return checkRowsAffected(result, fmt.Sprintf("категория с ID %d", category.ID))
}

// Delete leaves the category's posts in place; ON DELETE SET NULL clears their reference.
func (r *categoryRepository) Delete(ctx context.Context, categoryID int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, categoryID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении категории: %w", err)
	}

	return checkRowsAffected(result, fmt.Sprintf("категория с ID %d", categoryID))
}
