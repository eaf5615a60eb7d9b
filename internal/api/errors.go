package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/greenrise/greenrise-api/internal/api/shared"
	"github.com/greenrise/greenrise-api/internal/domain"
	"github.com/greenrise/greenrise-api/internal/platform/imagestore"
	"github.com/greenrise/greenrise-api/internal/service"
	"github.com/greenrise/greenrise-api/internal/service/auth"
	"github.com/greenrise/greenrise-api/internal/store"
)

// MapErrorToStatusCode maps an error from the service layer to an HTTP
// status. Unknown errors map to 500.
func MapErrorToStatusCode(err error) int {
	var verr *domain.ValidationError
	var vErrs validator.ValidationErrors

	switch {
	case err == nil:
		return http.StatusInternalServerError

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	case errors.Is(err, service.ErrEmailNotFound),
		store.IsNotFoundError(err):
		return http.StatusNotFound

	case store.IsDuplicateError(err):
		return http.StatusConflict

	case errors.As(err, &verr),
		errors.As(err, &vErrs),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, service.ErrOwnerNotFound),
		errors.Is(err, imagestore.ErrNotImage),
		errors.Is(err, imagestore.ErrTooLarge),
		errors.Is(err, imagestore.ErrEmptyUpload),
		errors.Is(err, shared.ErrEmptyBody):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-facing message for err. Internal
// details never appear in it.
func GetSafeErrorMessage(err error) string {
	var verr *domain.ValidationError
	var vErrs validator.ValidationErrors

	switch {
	case err == nil:
		return "An unexpected error occurred"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken):
		return "Invalid token"
	case errors.Is(err, service.ErrInvalidCredentials):
		return "Invalid credentials"

	case errors.Is(err, service.ErrEmailNotFound):
		return "Email not found"
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, store.ErrHortalicaNotFound):
		return "Hortalica not found"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, service.ErrOwnerNotFound):
		return "Owner user does not exist"
	case errors.Is(err, imagestore.ErrNotImage):
		return "Only image files are allowed"
	case errors.Is(err, imagestore.ErrTooLarge):
		return "Image is too large"
	case errors.Is(err, imagestore.ErrEmptyUpload):
		return "Image is empty"
	case errors.Is(err, shared.ErrEmptyBody):
		return "Request body is required"

	case errors.As(err, &verr):
		return verr.Error()
	case errors.As(err, &vErrs):
		return SanitizeValidationError(vErrs)
	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError writes the mapped status and safe message for err. A
// non-empty fallback replaces the message for 500 responses.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)
	msg := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallback != "" {
		msg = fallback
	}
	shared.RespondWithErrorAndLog(w, r, status, msg, err)
}

// SanitizeValidationError turns validator output into "Invalid <field>:
// <reason>" for the first failing field.
func SanitizeValidationError(err error) string {
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) || len(vErrs) == 0 {
		return "Validation error"
	}

	fe := vErrs[0]
	field := fe.Field()
	if field == "" {
		field = fe.StructField()
	}
	return fmt.Sprintf("Invalid %s: %s", lowerFirst(field), validationTagMessage(fe.Tag()))
}

func validationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min", "gte":
		return "too short or too small"
	case "max", "lte":
		return "too long or too large"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
