// Package access holds the per-object checks run at the start of each handler:
// who may see a post and who may change a post or a comment.
package access

import (
	"context"
	"errors"
	"time"

	"blogicum/internal/models"
	"blogicum/internal/visibility"
)

var (
	// ErrNotFound covers both missing objects and objects the viewer must not learn about.
	ErrNotFound        = errors.New("объект не найден")
	ErrUnauthenticated = errors.New("требуется аутентификация")
)

// Viewer is the user behind a request. The zero value is an anonymous visitor.
type Viewer struct {
	ID       int64
	Username string
	IsStaff  bool
}

func (v Viewer) IsAnonymous() bool {
	return v.ID == 0
}

type viewerKey struct{}

func WithViewer(ctx context.Context, viewer Viewer) context.Context {
	return context.WithValue(ctx, viewerKey{}, viewer)
}

// ViewerFrom returns the anonymous viewer when the context carries none.
func ViewerFrom(ctx context.Context) Viewer {
	viewer, _ := ctx.Value(viewerKey{}).(Viewer)
	return viewer
}

// AuthorizeView lets authors preview their own hidden or scheduled posts and
// hides everything non-public from everyone else.
func AuthorizeView(post *models.Post, viewer Viewer, now time.Time) (*models.Post, error) {
	if post == nil {
		return nil, ErrNotFound
	}
	if post.IsAuthoredBy(viewer.ID) {
		return post, nil
	}
	if !visibility.IsPublic(post, now) {
		return nil, ErrNotFound
	}
	return post, nil
}

// Decision is the outcome of a mutation check. A refused mutation sends the
// viewer back to the post page without saying why.
type Decision struct {
	Allowed        bool
	RedirectPostID int64
}

func allow() Decision {
	return Decision{Allowed: true}
}

func redirectTo(postID int64) Decision {
	return Decision{RedirectPostID: postID}
}

func AuthorizePostMutation(post *models.Post, viewer Viewer) (Decision, error) {
	if viewer.IsAnonymous() {
		return Decision{}, ErrUnauthenticated
	}
	if post == nil {
		return Decision{}, ErrNotFound
	}
	if !post.IsAuthoredBy(viewer.ID) {
		return redirectTo(post.ID), nil
	}
	return allow(), nil
}

// AuthorizeCommentMutation requires the comment to belong to postID, the post named in the request.
func AuthorizeCommentMutation(comment *models.Comment, postID int64, viewer Viewer) (Decision, error) {
	if viewer.IsAnonymous() {
		return Decision{}, ErrUnauthenticated
	}
	if comment == nil || comment.PostID != postID {
		return Decision{}, ErrNotFound
	}
	if comment.AuthorID != viewer.ID {
		return redirectTo(postID), nil
	}
	return allow(), nil
}
