package test

import (
	"context"
	"io"

	"blogicum/internal/access"
	"blogicum/internal/models"
	"blogicum/internal/repository"
	"blogicum/internal/service"
	"blogicum/internal/visibility"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req repository.CreateUserRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (*models.User, string, string, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, "", "", args.Error(3)
	}
	return args.Get(0).(*models.User), args.String(1), args.String(2), args.Error(3)
}

func (m *MockAuthService) RefreshTokens(ctx context.Context, refreshToken string) (*models.User, string, string, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, "", "", args.Error(3)
	}
	return args.Get(0).(*models.User), args.String(1), args.String(2), args.Error(3)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*jwt.Token, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jwt.Token), args.Error(1)
}

func (m *MockAuthService) ViewerFromToken(tokenString string) (access.Viewer, error) {
	args := m.Called(tokenString)
	return args.Get(0).(access.Viewer), args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetByID(ctx context.Context, userID int64) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) UpdateUser(ctx context.Context, req repository.UpdateUserRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) Index(ctx context.Context, page int) (*service.PostPage, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PostPage), args.Error(1)
}

func (m *MockPostService) Category(ctx context.Context, slug string, page int) (*service.CategoryPage, error) {
	args := m.Called(ctx, slug, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CategoryPage), args.Error(1)
}

func (m *MockPostService) Profile(ctx context.Context, username string, viewer access.Viewer, page int) (*service.ProfilePage, error) {
	args := m.Called(ctx, username, viewer, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ProfilePage), args.Error(1)
}

func (m *MockPostService) Detail(ctx context.Context, postID int64, viewer access.Viewer) (*service.PostDetail, error) {
	args := m.Called(ctx, postID, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PostDetail), args.Error(1)
}

func (m *MockPostService) Search(ctx context.Context, base visibility.Base, page int) (*service.PostPage, error) {
	args := m.Called(ctx, base, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PostPage), args.Error(1)
}

func (m *MockPostService) Authorize(ctx context.Context, viewer access.Viewer, postID int64) (access.Decision, error) {
	args := m.Called(ctx, viewer, postID)
	return args.Get(0).(access.Decision), args.Error(1)
}

func (m *MockPostService) ForEdit(ctx context.Context, viewer access.Viewer, postID int64) (*models.Post, access.Decision, error) {
	args := m.Called(ctx, viewer, postID)
	if args.Get(0) == nil {
		return nil, args.Get(1).(access.Decision), args.Error(2)
	}
	return args.Get(0).(*models.Post), args.Get(1).(access.Decision), args.Error(2)
}

func (m *MockPostService) Create(ctx context.Context, viewer access.Viewer, req repository.PostRequest) (*models.Post, error) {
	args := m.Called(ctx, viewer, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) Update(ctx context.Context, viewer access.Viewer, postID int64, req repository.PostRequest) (access.Decision, error) {
	args := m.Called(ctx, viewer, postID, req)
	return args.Get(0).(access.Decision), args.Error(1)
}

func (m *MockPostService) Delete(ctx context.Context, viewer access.Viewer, postID int64) (access.Decision, error) {
	args := m.Called(ctx, viewer, postID)
	return args.Get(0).(access.Decision), args.Error(1)
}

func (m *MockPostService) SetImage(ctx context.Context, viewer access.Viewer, postID int64, fileName string, file io.Reader, size int64) (access.Decision, error) {
	args := m.Called(ctx, viewer, postID, fileName, file, size)
	return args.Get(0).(access.Decision), args.Error(1)
}

func (m *MockPostService) DeleteImage(ctx context.Context, viewer access.Viewer, postID int64) (access.Decision, error) {
	args := m.Called(ctx, viewer, postID)
	return args.Get(0).(access.Decision), args.Error(1)
}

type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) Commentable(ctx context.Context, viewer access.Viewer, postID int64) error {
	args := m.Called(ctx, viewer, postID)
	return args.Error(0)
}

func (m *MockCommentService) Add(ctx context.Context, viewer access.Viewer, postID int64, req repository.CommentRequest) (*models.Comment, error) {
	args := m.Called(ctx, viewer, postID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentService) Authorize(ctx context.Context, viewer access.Viewer, postID, commentID int64) (access.Decision, error) {
	args := m.Called(ctx, viewer, postID, commentID)
	return args.Get(0).(access.Decision), args.Error(1)
}

func (m *MockCommentService) ForEdit(ctx context.Context, viewer access.Viewer, postID, commentID int64) (*models.Comment, access.Decision, error) {
	args := m.Called(ctx, viewer, postID, commentID)
	if args.Get(0) == nil {
		return nil, args.Get(1).(access.Decision), args.Error(2)
	}
	return args.Get(0).(*models.Comment), args.Get(1).(access.Decision), args.Error(2)
}

func (m *MockCommentService) Update(ctx context.Context, viewer access.Viewer, postID, commentID int64, req repository.CommentRequest) (access.Decision, error) {
	args := m.Called(ctx, viewer, postID, commentID, req)
	return args.Get(0).(access.Decision), args.Error(1)
}

func (m *MockCommentService) Delete(ctx context.Context, viewer access.Viewer, postID, commentID int64) (access.Decision, error) {
	args := m.Called(ctx, viewer, postID, commentID)
	return args.Get(0).(access.Decision), args.Error(1)
}

type MockTablesService struct {
	mock.Mock
}

func (m *MockTablesService) GetCountTables(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
