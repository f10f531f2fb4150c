package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/board-api/internal/domain"
	"github.com/phrazzld/board-api/internal/service"
	"github.com/phrazzld/board-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var validationErrs validator.ValidationErrors

	switch {
	case err == nil:
		return http.StatusInternalServerError

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.As(err, &validationErrs),
		errors.Is(err, service.ErrTaskNotInColumn),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Not found errors
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var refErr *service.TaskReferenceError
	var fieldErr *domain.ValidationError
	var validationErrs validator.ValidationErrors

	switch {
	case errors.As(err, &refErr):
		if errors.Is(refErr.Err, service.ErrTaskNotInColumn) {
			return fmt.Sprintf("Task with id %s does not belong to column %s", refErr.TaskID, refErr.ColumnID)
		}
		return fmt.Sprintf("Task with id %s not found", refErr.TaskID)

	case errors.Is(err, service.ErrTasksNotFound):
		return "One or more tasks not found"

	case errors.Is(err, store.ErrColumnNotFound):
		return "Column not found"

	case errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"

	case errors.As(err, &validationErrs):
		return SanitizeValidationError(validationErrs)

	case errors.As(err, &fieldErr):
		return fmt.Sprintf("Invalid %s: %s", fieldErr.Field, fieldErr.Message)

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	case errors.Is(err, store.ErrDuplicate):
		return "Entity already exists"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns validator failures into a message naming
// the first offending JSON field.
func SanitizeValidationError(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return "Validation error"
	}

	first := validationErrs[0]
	return fmt.Sprintf("Invalid %s: %s", jsonFieldPath(first.Namespace()), getValidationTagMessage(first.Tag()))
}

// jsonFieldPath drops the struct name from a validator namespace, so
// "ReorderTasksRequest.tasks[0].id" becomes "tasks[0].id".
func jsonFieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "uuid":
		return "must be a valid id"
	case "min":
		return "too short"
	case "max":
		return "too long"
	default:
		return "validation failed"
	}
}
