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

type locationRepository struct {
	db *sqlx.DB
}

type LocationRequest struct {
	Name        string `json:"name" validate:"required,max=256"`
	IsPublished *bool  `json:"isPublished"`
}

func NewLocationRepository(db *sqlx.DB) LocationRepository {
	return &locationRepository{db: db}
}

func (r *locationRepository) Create(ctx context.Context, location *models.Location) error {
	query := `
		INSERT INTO locations (name, is_published, created_at)
		VALUES (:name, :is_published, :created_at)
		RETURNING id
	`

	if location.CreatedAt.IsZero() {
		location.CreatedAt = time.Now()
	}

	q, args, err := r.db.BindNamed(query, location)
	if err != nil {
		return fmt.Errorf("ошибка при подготовке запроса: %w", err)
	}

	if err := r.db.QueryRowxContext(ctx, q, args...).Scan(&location.ID); err != nil {
		return fmt.Errorf("ошибка при создании местоположения: %w", err)
	}

	return nil
}

func (r *locationRepository) GetByID(ctx context.Context, locationID int64) (*models.Location, error) {
	var location models.Location

	err := r.db.GetContext(ctx, &location, `SELECT * FROM locations WHERE id = $1`, locationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("местоположение с ID %d: %w", locationID, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении местоположения: %w", err)
	}

	return &location, nil
}

func (r *locationRepository) List(ctx context.Context, nameQuery string) ([]models.Location, error) {
	locations := []models.Location{}

	query := `SELECT * FROM locations WHERE $1 = '' OR name ILIKE '%' || $1 || '%' ORDER BY name`

	err := r.db.SelectContext(ctx, &locations, query, nameQuery)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении местоположений: %w", err)
	}

	return locations, nil
}

func (r *locationRepository) Update(ctx context.Context, location *models.Location) error {
	query := `UPDATE locations SET name = :name, is_published = :is_published WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, location)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении местоположения: %w", err)
	}

	return checkRowsAffected(result, fmt.Sprintf("местоположение с ID %d", location.ID))
}

// Delete leaves posts in place; ON DELETE SET NULL clears their location.
func (r *locationRepository) Delete(ctx context.Context, locationID int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM locations WHERE id = $1`, locationID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении местоположения: %w", err)
	}

	return checkRowsAffected(result, fmt.Sprintf("местоположение с ID %d", locationID))
}
