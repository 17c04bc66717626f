package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/marketplace-api/internal/api/shared"
	"github.com/phrazzld/marketplace-api/internal/domain"
	"github.com/phrazzld/marketplace-api/internal/service"
	"github.com/phrazzld/marketplace-api/internal/service/auth"
	"github.com/phrazzld/marketplace-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Validation errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Authentication errors
	case errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, service.ErrNotOwned):
		return http.StatusForbidden

	// Not found errors, including malformed identifiers
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, domain.ErrInvalidID):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	// Handle nil error
	if err == nil {
		return shared.MsgServerError
	}

	switch {
	case errors.Is(err, domain.ErrValidation):
		return shared.MsgInvalidRequest

	case errors.Is(err, store.ErrInvalidEntity):
		return shared.MsgInvalidEntity

	// Authentication errors
	case errors.Is(err, service.ErrInvalidCredentials):
		return shared.MsgInvalidCredentials

	case errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, domain.ErrUnauthorized):
		return shared.MsgNoToken

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrWrongTokenType):
		return shared.MsgTokenInvalid

	// Authorization errors
	case errors.Is(err, service.ErrNotOwned):
		return shared.MsgNotAuthorized

	// Not found errors
	case errors.Is(err, store.ErrProductNotFound),
		errors.Is(err, domain.ErrInvalidID):
		return shared.MsgProductNotFound

	case errors.Is(err, store.ErrUserNotFound):
		return shared.MsgUserNotFound

	case errors.Is(err, store.ErrNotFound):
		return shared.MsgNotFound

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists):
		return shared.MsgEmailExists

	case errors.Is(err, store.ErrUsernameExists):
		return shared.MsgUsernameExists

	case errors.Is(err, store.ErrDuplicate):
		return shared.MsgAlreadyExists

	default:
		return shared.MsgServerError
	}
}

// HandleAPIError writes the single response for err.
//
// Validation failures become a 400 {errors:[...]} envelope. Everything else is
// mapped to a status code and a safe {message}; customMsg replaces the safe
// message for non-5xx statuses when set. 5xx responses always carry the generic
// server error message while the underlying error is logged with redaction.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, customMsg string) {
	if fields := shared.FieldErrors(err); fields != nil {
		shared.RespondWithValidationErrors(w, r, fields)
		return
	}

	statusCode := MapErrorToStatusCode(err)

	message := GetSafeErrorMessage(err)
	if statusCode >= http.StatusInternalServerError {
		message = shared.MsgServerError
	} else if customMsg != "" {
		message = customMsg
	}

	// Rejected credentials and ownership violations are worth seeing at WARN.
	var opts []shared.ResponseOption
	if statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden {
		opts = append(opts, shared.WithElevatedLogLevel())
	}

	shared.RespondWithErrorAndLog(w, r, statusCode, message, err, opts...)
}
