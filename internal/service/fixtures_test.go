package service

import (
	"context"
	"io"
	"testing"
	"time"

	"blogicum/internal/access"
	"blogicum/internal/config"
	"blogicum/internal/models"
	"blogicum/internal/repository"
	"blogicum/internal/repository/memory"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) UploadImage(ctx context.Context, postID int64, fileName string, file io.Reader, size int64) (string, error) {
	args := m.Called(ctx, postID, fileName, file, size)
	return args.String(0), args.Error(1)
}

func (m *MockStorage) DeleteImage(ctx context.Context, objectName string) error {
	args := m.Called(ctx, objectName)
	return args.Error(0)
}

func (m *MockStorage) GetImageURL(ctx context.Context, objectName string) (string, error) {
	args := m.Called(ctx, objectName)
	return args.String(0), args.Error(1)
}

// blog is a small seeded world: two authors, a published and a hidden category, one location.
type blog struct {
	rep      *repository.Repository
	cfg      *config.Config
	alice    access.Viewer
	bob      access.Viewer
	travel   *models.Category
	hidden   *models.Category
	location *models.Location
}

func newBlog(t *testing.T) *blog {
	t.Helper()
	ctx := context.Background()

	cfg := config.Default()
	cfg.Pagination.PageSize = 2
	cfg.JWTSecretKey = "test-secret"

	b := &blog{rep: memory.NewRepository(), cfg: cfg}

	b.alice = b.addUser(t, "alice")
	b.bob = b.addUser(t, "bob")

	b.travel = &models.Category{Title: "Путешествия", Slug: "travel", IsPublished: true}
	require.NoError(t, b.rep.Category.Create(ctx, b.travel))
	b.hidden = &models.Category{Title: "Черновики", Slug: "drafts", IsPublished: false}
	require.NoError(t, b.rep.Category.Create(ctx, b.hidden))

	b.location = &models.Location{Name: "Москва", IsPublished: true}
	require.NoError(t, b.rep.Location.Create(ctx, b.location))

	return b
}

func (b *blog) addUser(t *testing.T, username string) access.Viewer {
	t.Helper()

	user := &models.User{Username: username}
	require.NoError(t, b.rep.User.CreateUser(context.Background(), user, "password123"))

	return access.Viewer{ID: user.ID, Username: user.Username}
}

// addPost stores a post directly, bypassing the service checks.
func (b *blog) addPost(t *testing.T, author access.Viewer, text string, pubDate time.Time, isPublished bool, category *models.Category) *models.Post {
	t.Helper()

	authorID := author.ID
	post := &models.Post{
		Title:       "Заголовок " + text,
		Text:        text,
		PubDate:     pubDate,
		IsPublished: isPublished,
		AuthorID:    &authorID,
	}
	if category != nil {
		post.CategoryID = &category.ID
	}

	require.NoError(t, b.rep.Post.Create(context.Background(), post))
	return post
}

func (b *blog) postService(storage *MockStorage) *postService {
	svc := NewPostService(b.rep, nil, b.cfg).(*postService)
	if storage != nil {
		svc.storage = storage
	}
	svc.now = func() time.Time { return testNow }
	return svc
}

func (b *blog) commentService() *commentService {
	svc := NewCommentService(b.rep.Post, b.rep.Comment).(*commentService)
	svc.now = func() time.Time { return testNow }
	return svc
}

func postTexts(posts []models.Post) []string {
	texts := make([]string, 0, len(posts))
	for _, post := range posts {
		texts = append(texts, post.Text)
	}
	return texts
}

func boolPtr(v bool) *bool {
	return &v
}
