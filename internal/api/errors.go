package api

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/zen-api/internal/api/shared"
	"github.com/phrazzld/zen-api/internal/domain"
	"github.com/phrazzld/zen-api/internal/service"
	"github.com/phrazzld/zen-api/internal/service/auth"
	"github.com/phrazzld/zen-api/internal/store"
)

// MapErrorToStatusCode maps an error from any layer to an HTTP status code.
// Unknown errors map to 500.
func MapErrorToStatusCode(err error) int {
	var validationErrs validator.ValidationErrors
	var domainValidation *domain.ValidationError

	switch {
	case err == nil:
		return http.StatusOK

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	case errors.As(err, &validationErrs),
		errors.As(err, &domainValidation),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidFormat),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidPlan),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrEmptyEmail),
		errors.Is(err, domain.ErrEmptyPassword),
		errors.Is(err, domain.ErrPasswordTooShort),
		errors.Is(err, domain.ErrPasswordTooLong),
		errors.Is(err, domain.ErrFullNameTooLong),
		errors.Is(err, service.ErrCheckoutUnavailable),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-facing message that never includes
// internal error text.
func GetSafeErrorMessage(err error) string {
	var validationErrs validator.ValidationErrors
	var domainValidation *domain.ValidationError

	switch {
	case err == nil:
		return "An unexpected error occurred"

	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrTokenNotYetValid):
		return "Invalid token"
	case errors.Is(err, auth.ErrMissingToken):
		return "Authorization header required"
	case errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid refresh token"
	case errors.Is(err, service.ErrInvalidCredentials):
		return "Invalid credentials"
	case errors.Is(err, domain.ErrUnauthorized):
		return "Authentication required"

	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, store.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, store.ErrReadingNotFound):
		return "Reading not found"

	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case errors.As(err, &validationErrs):
		return SanitizeValidationError(err)
	case errors.As(err, &domainValidation):
		if domainValidation.Field != "" {
			return "Invalid " + domainValidation.Field
		}
		return "Validation error"
	case errors.Is(err, domain.ErrInvalidPlan):
		return "Invalid plan"
	case errors.Is(err, domain.ErrInvalidEmail), errors.Is(err, domain.ErrEmptyEmail):
		return "Invalid email"
	case errors.Is(err, domain.ErrEmptyPassword),
		errors.Is(err, domain.ErrPasswordTooShort),
		errors.Is(err, domain.ErrPasswordTooLong):
		return "Password must be between 8 and 72 characters"
	case errors.Is(err, domain.ErrFullNameTooLong):
		return "Full name is too long"
	case errors.Is(err, service.ErrCheckoutUnavailable):
		return "Plan not available for checkout"
	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns validator output into a short message naming
// the first failing field.
func SanitizeValidationError(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return "Validation error"
	}
	fe := validationErrs[0]
	return "Invalid " + fe.Field() + ": " + validationTagMessage(fe.Tag())
}

func validationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}

// HandleAPIError answers with the status and safe message for err. A
// non-empty fallback replaces the safe message for 5xx answers.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status >= http.StatusInternalServerError && fallback != "" {
		message = fallback
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}

// HandleValidationError answers 400 for request decoding or validation failures.
func HandleValidationError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
}
