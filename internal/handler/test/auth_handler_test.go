package test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"blogicum/internal/access"
	handlers "blogicum/internal/handler"
	"blogicum/internal/models"
	"blogicum/internal/repository"
	"blogicum/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRegisterHandler(t *testing.T) {
	valid := repository.CreateUserRequest{Username: "carol", Email: "carol@example.com", Password: "password123"}

	tests := []struct {
		name           string
		body           repository.CreateUserRequest
		mockSetup      func(*MockAuthService)
		expectedStatus int
		expectedField  string
	}{
		{
			name: "успешная регистрация сразу выдаёт токены",
			body: valid,
			mockSetup: func(auth *MockAuthService) {
				user := &models.User{ID: 3, Username: "carol"}
				auth.On("Register", mock.Anything, valid).Return(user, nil)
				auth.On("Login", mock.Anything, "carol", "password123").Return(user, "access", "refresh", nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "короткий пароль",
			body:           repository.CreateUserRequest{Username: "carol", Password: "123"},
			mockSetup:      func(auth *MockAuthService) {},
			expectedStatus: http.StatusBadRequest,
			expectedField:  "password",
		},
		{
			name:           "недопустимые символы в имени",
			body:           repository.CreateUserRequest{Username: "carol smith", Password: "password123"},
			mockSetup:      func(auth *MockAuthService) {},
			expectedStatus: http.StatusBadRequest,
			expectedField:  "username",
		},
		{
			name: "имя занято",
			body: valid,
			mockSetup: func(auth *MockAuthService) {
				auth.On("Register", mock.Anything, valid).
					Return(nil, &service.ValidationError{Fields: map[string]string{"username": "пользователь с таким именем уже существует"}})
			},
			expectedStatus: http.StatusBadRequest,
			expectedField:  "username",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th := newTestHandler()
			tt.mockSetup(th.auth)

			rr := httptest.NewRecorder()
			th.Register(rr, newRequest(t, http.MethodPost, "/auth/registration/", tt.body, nil, access.Viewer{}))

			assert.Equal(t, tt.expectedStatus, rr.Code)

			if tt.expectedField != "" {
				var response handlers.ErrorResponse
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
				assert.Contains(t, response.Fields, tt.expectedField)
			} else {
				var response handlers.AuthResponse
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
				assert.Equal(t, "access", response.AccessToken)
				assert.Equal(t, "refresh", response.RefreshToken)
				assert.Equal(t, "carol", response.User.Username)
			}

			th.auth.AssertExpectations(t)
		})
	}
}

func TestLoginHandler(t *testing.T) {
	t.Run("успешный вход", func(t *testing.T) {
		th := newTestHandler()
		th.auth.On("Login", mock.Anything, "alice", "password123").
			Return(&models.User{ID: 1, Username: "alice"}, "access", "refresh", nil)

		rr := httptest.NewRecorder()
		th.Login(rr, newRequest(t, http.MethodPost, "/auth/login/", handlers.LoginRequest{Username: "alice", Password: "password123"}, nil, access.Viewer{}))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"accessToken":"access"`)
		assert.NotContains(t, rr.Body.String(), "password", "хеш пароля не уходит клиенту")
	})

	t.Run("неверный пароль", func(t *testing.T) {
		th := newTestHandler()
		th.auth.On("Login", mock.Anything, "alice", "wrong").
			Return(nil, "", "", fmt.Errorf("%w: неверный пароль", service.ErrInvalidCredentials))

		rr := httptest.NewRecorder()
		th.Login(rr, newRequest(t, http.MethodPost, "/auth/login/", handlers.LoginRequest{Username: "alice", Password: "wrong"}, nil, access.Viewer{}))

		assertJSONError(t, rr, http.StatusUnauthorized, "Неверное имя пользователя или пароль")
	})

	t.Run("пустые поля", func(t *testing.T) {
		th := newTestHandler()

		rr := httptest.NewRecorder()
		th.Login(rr, newRequest(t, http.MethodPost, "/auth/login/", handlers.LoginRequest{}, nil, access.Viewer{}))

		assertJSONError(t, rr, http.StatusBadRequest, "Неверные данные")
	})
}

func TestRefreshTokenHandler(t *testing.T) {
	t.Run("токены обновлены", func(t *testing.T) {
		th := newTestHandler()
		th.auth.On("RefreshTokens", mock.Anything, "old").
			Return(&models.User{ID: 1, Username: "alice"}, "access2", "refresh2", nil)

		rr := httptest.NewRecorder()
		th.RefreshToken(rr, newRequest(t, http.MethodPost, "/auth/refresh-token/", handlers.RefreshRequest{RefreshToken: "old"}, nil, access.Viewer{}))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"refreshToken":"refresh2"`)
	})

	t.Run("просроченный токен", func(t *testing.T) {
		th := newTestHandler()
		th.auth.On("RefreshTokens", mock.Anything, "old").Return(nil, "", "", access.ErrUnauthenticated)

		rr := httptest.NewRecorder()
		th.RefreshToken(rr, newRequest(t, http.MethodPost, "/auth/refresh-token/", handlers.RefreshRequest{RefreshToken: "old"}, nil, access.Viewer{}))

		assertJSONError(t, rr, http.StatusUnauthorized, "Refresh Token истек")
	})
}
