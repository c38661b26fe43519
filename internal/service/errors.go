package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"blogicum/internal/access"
	"blogicum/internal/repository"
)

// ValidationError carries field-level messages for a rejected submission. Nothing was written.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		keys = append(keys, field)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, field := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", field, e.Fields[field]))
	}
	return "ошибка валидации: " + strings.Join(parts, "; ")
}

func fieldError(field, message string) error {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// translate maps storage errors onto what the caller is allowed to see.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("%w: %v", access.ErrNotFound, err)
	case errors.Is(err, repository.ErrDuplicateText):
		return fieldError("text", repository.ErrDuplicateText.Error())
	case errors.Is(err, repository.ErrDuplicateSlug):
		return fieldError("slug", repository.ErrDuplicateSlug.Error())
	case errors.Is(err, repository.ErrDuplicateUsername):
		return fieldError("username", repository.ErrDuplicateUsername.Error())
	default:
		return err
	}
}
