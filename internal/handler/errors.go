package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"blogicum/internal/access"
	"blogicum/internal/service"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse - стандартный ответ с ошибкой
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// WriteError - универсальная функция для отправки ошибок
func WriteError(w http.ResponseWriter, message string, statusCode int) {
	writeSuccess(w, ErrorResponse{Error: message}, statusCode)
}

// writeSuccess - функция для успешных ответов
func writeSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Ошибка записи ответа: %v", err)
	}
}

func writeValidation(w http.ResponseWriter, fields map[string]string) {
	writeSuccess(w, ErrorResponse{Error: "Неверные данные", Fields: fields}, http.StatusBadRequest)
}

// writeValidatorError renders validator failures as a field -> failed tag map.
func writeValidatorError(w http.ResponseWriter, err error) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		WriteError(w, "Неверные данные", http.StatusBadRequest)
		return
	}

	fields := make(map[string]string, len(validationErrors))
	for _, fieldErr := range validationErrors {
		fields[fieldErr.Field()] = fieldErr.Tag()
	}
	writeValidation(w, fields)
}

// writeServiceError maps service and access errors onto responses.
func (h *Handlers) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *service.ValidationError

	switch {
	case errors.As(err, &validationErr):
		writeValidation(w, validationErr.Fields)
	case errors.Is(err, access.ErrNotFound):
		WriteError(w, "Страница не найдена", http.StatusNotFound)
	case errors.Is(err, access.ErrUnauthenticated):
		RedirectToLogin(w, r, h.Cfg.LoginURL)
	case errors.Is(err, service.ErrInvalidCredentials):
		WriteError(w, "Неверное имя пользователя или пароль", http.StatusUnauthorized)
	case errors.Is(err, service.ErrImagesDisabled):
		WriteError(w, err.Error(), http.StatusServiceUnavailable)
	default:
		log.Printf("Ошибка обработки %s %s: %v", r.Method, r.URL.Path, err)
		WriteError(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
	}
}
