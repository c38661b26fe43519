package service

import (
	"context"
	"fmt"
	"time"

	"blogicum/internal/access"
	"blogicum/internal/models"
	"blogicum/internal/repository"
	"blogicum/internal/visibility"
)

type CommentService interface {
	Commentable(ctx context.Context, viewer access.Viewer, postID int64) error
	Add(ctx context.Context, viewer access.Viewer, postID int64, req repository.CommentRequest) (*models.Comment, error)
	Authorize(ctx context.Context, viewer access.Viewer, postID, commentID int64) (access.Decision, error)
	ForEdit(ctx context.Context, viewer access.Viewer, postID, commentID int64) (*models.Comment, access.Decision, error)
	Update(ctx context.Context, viewer access.Viewer, postID, commentID int64, req repository.CommentRequest) (access.Decision, error)
	Delete(ctx context.Context, viewer access.Viewer, postID, commentID int64) (access.Decision, error)
}

type commentService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	now         func() time.Time
}

func NewCommentService(postRepo repository.PostRepository, commentRepo repository.CommentRepository) CommentService {
	return &commentService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		now:         time.Now,
	}
}

// Commentable only lets comments onto posts that are public right now, even for the post's author.
func (s *commentService) Commentable(ctx context.Context, viewer access.Viewer, postID int64) error {
	if viewer.IsAnonymous() {
		return access.ErrUnauthenticated
	}

	spec := visibility.Listing(visibility.Base{PostID: postID})
	spec.Annotate = false

	posts, err := s.postRepo.Find(ctx, spec, s.now())
	if err != nil {
		return err
	}
	if len(posts) == 0 {
		return fmt.Errorf("пост с ID %d: %w", postID, access.ErrNotFound)
	}

	return nil
}

func (s *commentService) Add(ctx context.Context, viewer access.Viewer, postID int64, req repository.CommentRequest) (*models.Comment, error) {
	if err := s.Commentable(ctx, viewer, postID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Text:        req.Text,
		AuthorID:    viewer.ID,
		PostID:      postID,
		IsPublished: true,
		CreatedAt:   s.now(),
	}

	err := s.commentRepo.Create(ctx, comment)
	if err != nil {
		return nil, translate(err)
	}

	return comment, nil
}

func (s *commentService) Authorize(ctx context.Context, viewer access.Viewer, postID, commentID int64) (access.Decision, error) {
	_, decision, err := s.authorize(ctx, viewer, postID, commentID)
	return decision, err
}

func (s *commentService) ForEdit(ctx context.Context, viewer access.Viewer, postID, commentID int64) (*models.Comment, access.Decision, error) {
	comment, decision, err := s.authorize(ctx, viewer, postID, commentID)
	if err != nil || !decision.Allowed {
		return nil, decision, err
	}
	return comment, decision, nil
}

func (s *commentService) Update(ctx context.Context, viewer access.Viewer, postID, commentID int64, req repository.CommentRequest) (access.Decision, error) {
	comment, decision, err := s.authorize(ctx, viewer, postID, commentID)
	if err != nil || !decision.Allowed {
		return decision, err
	}

	comment.Text = req.Text

	err = s.commentRepo.Update(ctx, comment)
	if err != nil {
		return access.Decision{}, translate(err)
	}

	return decision, nil
}

func (s *commentService) Delete(ctx context.Context, viewer access.Viewer, postID, commentID int64) (access.Decision, error) {
	comment, decision, err := s.authorize(ctx, viewer, postID, commentID)
	if err != nil || !decision.Allowed {
		return decision, err
	}

	err = s.commentRepo.Delete(ctx, comment.ID)
	if err != nil {
		return access.Decision{}, translate(err)
	}

	return decision, nil
}

func (s *commentService) authorize(ctx context.Context, viewer access.Viewer, postID, commentID int64) (*models.Comment, access.Decision, error) {
	if viewer.IsAnonymous() {
		return nil, access.Decision{}, access.ErrUnauthenticated
	}

	comment, err := s.commentRepo.GetForPost(ctx, postID, commentID)
	if err != nil {
		return nil, access.Decision{}, translate(err)
	}

	decision, err := access.AuthorizeCommentMutation(comment, postID, viewer)
	if err != nil {
		return nil, access.Decision{}, err
	}

	return comment, decision, nil
}
