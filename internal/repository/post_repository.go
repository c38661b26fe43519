package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"blogicum/internal/models"
	"blogicum/internal/visibility"

	"github.com/jmoiron/sqlx"
)

type PostRepositoryImpl struct {
	DB *sqlx.DB
}

// PostRequest is the submitted post form, for both create and edit.
type PostRequest struct {
	Title       string    `json:"title" validate:"required,max=256"`
	Text        string    `json:"text" validate:"required"`
	PubDate     time.Time `json:"pubDate" validate:"required"`
	IsPublished *bool     `json:"isPublished"`
	LocationID  *int64    `json:"locationId" validate:"omitempty,gt=0"`
	CategoryID  *int64    `json:"categoryId" validate:"omitempty,gt=0"`
}

func NewPostRepository(db *sqlx.DB) *PostRepositoryImpl {
	return &PostRepositoryImpl{DB: db}
}

// postRow is one row of a visibility query. Joined columns are nullable
// because author, location and category are all optional.
type postRow struct {
	ID          int64         `db:"id"`
	Title       string        `db:"title"`
	Text        string        `db:"text"`
	PubDate     time.Time     `db:"pub_date"`
	IsPublished bool          `db:"is_published"`
	CreatedAt   time.Time     `db:"created_at"`
	Image       string        `db:"image"`
	AuthorID    sql.NullInt64 `db:"author_id"`
	LocationID  sql.NullInt64 `db:"location_id"`
	CategoryID  sql.NullInt64 `db:"category_id"`

	AuthorUsername  sql.NullString `db:"author_username"`
	AuthorFirstName sql.NullString `db:"author_first_name"`
	AuthorLastName  sql.NullString `db:"author_last_name"`

	LocationName        sql.NullString `db:"location_name"`
	LocationIsPublished sql.NullBool   `db:"location_is_published"`
	LocationCreatedAt   sql.NullTime   `db:"location_created_at"`

	CategoryTitle       sql.NullString `db:"category_title"`
	CategoryDescription sql.NullString `db:"category_description"`
	CategorySlug        sql.NullString `db:"category_slug"`
	CategoryIsPublished sql.NullBool   `db:"category_is_published"`
	CategoryCreatedAt   sql.NullTime   `db:"category_created_at"`

	CommentCount int `db:"comment_count"`
}

func (row *postRow) toModel() models.Post {
	post := models.Post{
		ID:           row.ID,
		Title:        row.Title,
		Text:         row.Text,
		PubDate:      row.PubDate,
		IsPublished:  row.IsPublished,
		CreatedAt:    row.CreatedAt,
		Image:        row.Image,
		CommentCount: row.CommentCount,
	}

	if row.AuthorID.Valid {
		authorID := row.AuthorID.Int64
		post.AuthorID = &authorID
		post.Author = &models.User{
			ID:        authorID,
			Username:  row.AuthorUsername.String,
			FirstName: row.AuthorFirstName.String,
			LastName:  row.AuthorLastName.String,
		}
	}

	if row.LocationID.Valid {
		locationID := row.LocationID.Int64
		post.LocationID = &locationID
		post.Location = &models.Location{
			ID:          locationID,
			Name:        row.LocationName.String,
			IsPublished: row.LocationIsPublished.Bool,
			CreatedAt:   row.LocationCreatedAt.Time,
		}
	}

	if row.CategoryID.Valid {
		categoryID := row.CategoryID.Int64
		post.CategoryID = &categoryID
		post.Category = &models.Category{
			ID:          categoryID,
			Title:       row.CategoryTitle.String,
			Description: row.CategoryDescription.String,
			Slug:        row.CategorySlug.String,
			IsPublished: row.CategoryIsPublished.Bool,
			CreatedAt:   row.CategoryCreatedAt.Time,
		}
	}

	return post
}

// postParams binds a post to named insert and update statements.
type postParams struct {
	ID          int64     `db:"id"`
	Title       string    `db:"title"`
	Text        string    `db:"text"`
	PubDate     time.Time `db:"pub_date"`
	IsPublished bool      `db:"is_published"`
	CreatedAt   time.Time `db:"created_at"`
	Image       string    `db:"image"`
	AuthorID    *int64    `db:"author_id"`
	LocationID  *int64    `db:"location_id"`
	CategoryID  *int64    `db:"category_id"`
}

func newPostParams(post *models.Post) postParams {
	return postParams{
		ID:          post.ID,
		Title:       post.Title,
		Text:        post.Text,
		PubDate:     post.PubDate,
		IsPublished: post.IsPublished,
		CreatedAt:   post.CreatedAt,
		Image:       post.Image,
		AuthorID:    post.AuthorID,
		LocationID:  post.LocationID,
		CategoryID:  post.CategoryID,
	}
}

func (r *PostRepositoryImpl) Create(ctx context.Context, post *models.Post) error {
	query := `
        INSERT INTO posts
        (title, text, pub_date, is_published, created_at, image, author_id, location_id, category_id)
        VALUES
        (:title, :text, :pub_date, :is_published, :created_at, :image, :author_id, :location_id, :category_id)
        RETURNING id
    `

	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}

	q, args, err := r.DB.BindNamed(query, newPostParams(post))
	if err != nil {
		return fmt.Errorf("ошибка при подготовке запроса: %w", err)
	}

	err = r.DB.QueryRowxContext(ctx, q, args...).Scan(&post.ID)
	if err != nil {
		if isUniqueViolation(err, "posts_text_key") {
			return ErrDuplicateText
		}
		return fmt.Errorf("ошибка при создании поста: %w", err)
	}

	return nil
}

// GetByID loads a single post with its relations, without any visibility filter.
func (r *PostRepositoryImpl) GetByID(ctx context.Context, postID int64) (*models.Post, error) {
	posts, err := r.Find(ctx, visibility.Detail(postID), time.Now())
	if err != nil {
		return nil, err
	}

	if len(posts) == 0 {
		return nil, fmt.Errorf("пост с ID %d: %w", postID, ErrNotFound)
	}

	return &posts[0], nil
}

func (r *PostRepositoryImpl) Find(ctx context.Context, spec visibility.Spec, now time.Time) ([]models.Post, error) {
	query, namedArgs := visibility.Build(spec, now)

	q, args, err := sqlx.Named(query, namedArgs)
	if err != nil {
		return nil, fmt.Errorf("ошибка при подготовке запроса: %w", err)
	}

	var rows []postRow
	err = r.DB.SelectContext(ctx, &rows, r.DB.Rebind(q), args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении постов: %w", err)
	}

	posts := make([]models.Post, 0, len(rows))
	for i := range rows {
		posts = append(posts, rows[i].toModel())
	}

	return posts, nil
}

func (r *PostRepositoryImpl) Count(ctx context.Context, spec visibility.Spec, now time.Time) (int, error) {
	query, namedArgs := visibility.BuildCount(spec, now)

	q, args, err := sqlx.Named(query, namedArgs)
	if err != nil {
		return 0, fmt.Errorf("ошибка при подготовке запроса: %w", err)
	}

	var count int
	err = r.DB.GetContext(ctx, &count, r.DB.Rebind(q), args...)
	if err != nil {
		return 0, fmt.Errorf("ошибка при подсчёте постов: %w", err)
	}

	return count, nil
}

func (r *PostRepositoryImpl) Update(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE posts SET
			title = :title,
			text = :text,
			pub_date = :pub_date,
			is_published = :is_published,
			location_id = :location_id,
			category_id = :category_id
		WHERE id = :id
	`

	result, err := r.DB.NamedExecContext(ctx, query, newPostParams(post))
	if err != nil {
		if isUniqueViolation(err, "posts_text_key") {
			return ErrDuplicateText
		}
		return fmt.Errorf("ошибка при обновлении поста: %w", err)
	}

	return checkRowsAffected(result, fmt.Sprintf("пост с ID %d", post.ID))
}

func (r *PostRepositoryImpl) UpdateImage(ctx context.Context, postID int64, image string) error {
	query := `UPDATE posts SET image = $1 WHERE id = $2`

	result, err := r.DB.ExecContext(ctx, query, image, postID)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении изображения поста: %w", err)
	}

	return checkRowsAffected(result, fmt.Sprintf("пост с ID %d", postID))
}

// Delete removes the post; its comments go with it through ON DELETE CASCADE.
func (r *PostRepositoryImpl) Delete(ctx context.Context, postID int64) error {
	query := `DELETE FROM posts WHERE id = $1`

	result, err := r.DB.ExecContext(ctx, query, postID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении поста: %w", err)
	}

	return checkRowsAffected(result, fmt.Sprintf("пост с ID %d", postID))
}

var _ PostRepository = (*PostRepositoryImpl)(nil)

// IsNotFound reports whether err means the record does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
