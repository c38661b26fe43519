package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"blogicum/internal/access"
	"blogicum/internal/models"
	"blogicum/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Register(ctx context.Context, req repository.CreateUserRequest) (*models.User, error) {
	return nil, errors.New("не используется")
}

func (m *mockAuthService) Login(ctx context.Context, username, password string) (*models.User, string, string, error) {
	return nil, "", "", errors.New("не используется")
}

func (m *mockAuthService) RefreshTokens(ctx context.Context, refreshToken string) (*models.User, string, string, error) {
	return nil, "", "", errors.New("не используется")
}

func (m *mockAuthService) ValidateToken(tokenString string) (*jwt.Token, error) {
	return nil, errors.New("не используется")
}

func (m *mockAuthService) ViewerFromToken(tokenString string) (access.Viewer, error) {
	args := m.Called(tokenString)
	return args.Get(0).(access.Viewer), args.Error(1)
}

// viewerEcho writes the viewer's username, or "anonymous".
var viewerEcho = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	viewer := access.ViewerFrom(r.Context())
	if viewer.IsAnonymous() {
		w.Write([]byte("anonymous"))
		return
	}
	w.Write([]byte(viewer.Username))
})

func TestAuthMiddleware(t *testing.T) {
	auth := new(mockAuthService)
	auth.On("ViewerFromToken", "good").Return(access.Viewer{ID: 1, Username: "alice"}, nil)
	auth.On("ViewerFromToken", "bad").Return(access.Viewer{}, errors.New("подпись не совпадает"))

	handler := AuthMiddleware(auth)(viewerEcho)

	tests := []struct {
		name         string
		header       string
		expectedCode int
		expectedBody string
	}{
		{name: "без токена", expectedCode: http.StatusOK, expectedBody: "anonymous"},
		{name: "валидный токен", header: "Bearer good", expectedCode: http.StatusOK, expectedBody: "alice"},
		{name: "невалидный токен", header: "Bearer bad", expectedCode: http.StatusUnauthorized},
		{name: "неверная схема", header: "Token good", expectedCode: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedBody != "" {
				assert.Equal(t, tt.expectedBody, rr.Body.String())
			}
		})
	}
}

func TestRequireAuthAndStaffOnly(t *testing.T) {
	handler := Chain(viewerEcho, StaffOnly, RequireAuth("/auth/login/"))

	tests := []struct {
		name         string
		viewer       access.Viewer
		expectedCode int
	}{
		{name: "аноним", viewer: access.Viewer{}, expectedCode: http.StatusFound},
		{name: "обычный пользователь", viewer: access.Viewer{ID: 2, Username: "bob"}, expectedCode: http.StatusForbidden},
		{name: "сотрудник", viewer: access.Viewer{ID: 3, Username: "admin", IsStaff: true}, expectedCode: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/categories/", nil)
			req = req.WithContext(access.WithViewer(req.Context(), tt.viewer))
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
		})
	}
}

func TestCORSMiddleware(t *testing.T) {
	handler := CORSMiddleware(viewerEcho)

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, rr.Body.String())
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rr.Header().Get("Access-Control-Expose-Headers"), "Location")
}

func TestLoggingMiddleware_KeepsStatus(t *testing.T) {
	handler := LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusTeapot, rr.Code)
}
