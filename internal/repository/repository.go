package repository

import (
	"context"
	"time"

	"blogicum/internal/models"
	"blogicum/internal/visibility"

	"github.com/jmoiron/sqlx"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, userID int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	VerifyPassword(ctx context.Context, username, password string) (*models.User, error)
	UpdateRefreshToken(ctx context.Context, userID int64, refreshToken string, expiryTime time.Time) error
	GetUserByRefreshToken(ctx context.Context, refreshToken string) (*models.User, error)
}

type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, categoryID int64) (*models.Category, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	List(ctx context.Context, titleQuery string) ([]models.Category, error)
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, categoryID int64) error
}

type LocationRepository interface {
	Create(ctx context.Context, location *models.Location) error
	GetByID(ctx context.Context, locationID int64) (*models.Location, error)
	List(ctx context.Context, nameQuery string) ([]models.Location, error)
	Update(ctx context.Context, location *models.Location) error
	Delete(ctx context.Context, locationID int64) error
}

// PostRepository reads posts only through visibility specs.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, postID int64) (*models.Post, error)
	Find(ctx context.Context, spec visibility.Spec, now time.Time) ([]models.Post, error)
	Count(ctx context.Context, spec visibility.Spec, now time.Time) (int, error)
	Update(ctx context.Context, post *models.Post) error
	UpdateImage(ctx context.Context, postID int64, image string) error
	Delete(ctx context.Context, postID int64) error
}

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetForPost(ctx context.Context, postID, commentID int64) (*models.Comment, error)
	ListByPost(ctx context.Context, postID int64) ([]models.Comment, error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, commentID int64) error
}

type TablesRepository interface {
	CountTables(ctx context.Context) (int, error)
}

type Repository struct {
	User     UserRepository
	Category CategoryRepository
	Location LocationRepository
	Post     PostRepository
	Comment  CommentRepository
	Tables   TablesRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:     NewUserRepository(db),
		Category: NewCategoryRepository(db),
		Location: NewLocationRepository(db),
		Post:     NewPostRepository(db),
		Comment:  NewCommentRepository(db),
		Tables:   NewTablesRepository(db),
	}
}
