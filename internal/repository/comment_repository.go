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

type commentRepository struct {
	db *sqlx.DB
}

type CommentRequest struct {
	Text string `json:"text" validate:"required"`
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

type commentRow struct {
	models.Comment
	AuthorUsername sql.NullString `db:"author_username"`
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (text, author_id, post_id, is_published, created_at)
		VALUES (:text, :author_id, :post_id, :is_published, :created_at)
		RETURNING id
	`

	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}

	q, args, err := r.db.BindNamed(query, comment)
	if err != nil {
		return fmt.Errorf("ошибка при подготовке запроса: %w", err)
	}

	if err := r.db.QueryRowxContext(ctx, q, args...).Scan(&comment.ID); err != nil {
		return fmt.Errorf("ошибка при создании комментария: %w", err)
	}

	return nil
}

// GetForPost looks the comment up by both ids, so a comment of another post is not found.
func (r *commentRepository) GetForPost(ctx context.Context, postID, commentID int64) (*models.Comment, error) {
	var comment models.Comment

	query := `SELECT * FROM comments WHERE id = $1 AND post_id = $2`

	err := r.db.GetContext(ctx, &comment, query, commentID, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("комментарий %d к посту %d: %w", commentID, postID, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении комментария: %w", err)
	}

	return &comment, nil
}

// ListByPost returns every comment of the post, oldest first, published or not.
func (r *commentRepository) ListByPost(ctx context.Context, postID int64) ([]models.Comment, error) {
	query := `
		SELECT cm.id, cm.text, cm.author_id, cm.post_id, cm.is_published, cm.created_at,
			u.username AS author_username
		FROM comments cm
		LEFT JOIN users u ON u.id = cm.author_id
		WHERE cm.post_id = $1
		ORDER BY cm.created_at, cm.id
	`

	var rows []commentRow
	if err := r.db.SelectContext(ctx, &rows, query, postID); err != nil {
		return nil, fmt.Errorf("ошибка при получении комментариев: %w", err)
	}

	comments := make([]models.Comment, 0, len(rows))
	for _, row := range rows {
		comment := row.Comment
		comment.Author = &models.User{ID: comment.AuthorID, Username: row.AuthorUsername.String}
		comments = append(comments, comment)
	}

	return comments, nil
}

func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	query := `UPDATE comments SET text = :text WHERE id = :id AND post_id = :post_id`

	result, err := r.db.NamedExecContext(ctx, query, comment)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении комментария: %w", err)
	}

	return checkRowsAffected(result, fmt.Sprintf("комментарий с ID %d", comment.ID))
}

func (r *commentRepository) Delete(ctx context.Context, commentID int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, commentID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении комментария: %w", err)
	}

	return checkRowsAffected(result, fmt.Sprintf("комментарий с ID %d", commentID))
}
