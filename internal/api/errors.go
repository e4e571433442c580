package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/phrazzld/lingodeck/internal/api/shared"
	"github.com/phrazzld/lingodeck/internal/domain"
	"github.com/phrazzld/lingodeck/internal/service"
	"github.com/phrazzld/lingodeck/internal/service/auth"
	"github.com/phrazzld/lingodeck/internal/store"
)

// Error kinds reported in the "kind" field of error responses.
const (
	KindValidation      = "validation_error"
	KindUnauthorized    = "unauthorized"
	KindForbidden       = "forbidden"
	KindNotFound        = "not_found"
	KindRateLimited     = "rate_limited"
	KindGenerationError = "generation_failed"
	KindParseFailed     = "parse_failed"
	KindEmptyGeneration = "empty_generation"
	KindInternal        = "internal_error"
)

const defaultErrorMessage = "An unexpected error occurred"

// apiError is the client-facing description of an internal error.
type apiError struct {
	status  int
	kind    string
	message string
}

// mapError translates internal errors into a status, kind and safe message.
// It never leaks the internal error text to clients.
func mapError(err error) apiError {
	var validationErr *domain.ValidationError
	var rateErr *service.RateLimitError

	switch {
	case err == nil:
		return apiError{http.StatusInternalServerError, KindInternal, defaultErrorMessage}

	// Validation errors
	case errors.As(err, &validationErr):
		return apiError{http.StatusBadRequest, KindValidation, validationErr.Detail()}
	case errors.Is(err, shared.ErrInvalidJSON):
		return apiError{http.StatusBadRequest, KindValidation, "Invalid request format"}
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, store.ErrInvalidEntity):
		return apiError{http.StatusBadRequest, KindValidation, "Invalid request"}

	// Authentication errors
	case errors.Is(err, auth.ErrExpiredToken):
		return apiError{http.StatusUnauthorized, KindUnauthorized, "Token expired"}
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingSubject):
		return apiError{http.StatusUnauthorized, KindUnauthorized, "Invalid token"}
	case errors.Is(err, domain.ErrUnauthorized):
		return apiError{http.StatusUnauthorized, KindUnauthorized, "Authentication required"}

	// Authorization errors
	case errors.Is(err, service.ErrNotOwned):
		return apiError{http.StatusForbidden, KindForbidden, "You do not have access to this deck"}

	// Not found errors
	case errors.Is(err, service.ErrDeckNotFound),
		errors.Is(err, store.ErrDeckNotFound):
		return apiError{http.StatusNotFound, KindNotFound, "Deck not found"}
	case errors.Is(err, store.ErrUserNotFound):
		return apiError{http.StatusNotFound, KindNotFound, "User not found"}

	// Generation pipeline errors
	case errors.As(err, &rateErr):
		return apiError{http.StatusTooManyRequests, KindRateLimited, rateLimitMessage(rateErr)}
	case errors.Is(err, service.ErrRateLimited):
		return apiError{http.StatusTooManyRequests, KindRateLimited, "Rate limit exceeded. Please try again later."}
	case errors.Is(err, service.ErrGenerationFailed):
		return apiError{http.StatusBadGateway, KindGenerationError, "Failed to generate flashcards. Please try again."}
	case errors.Is(err, service.ErrParseFailed):
		return apiError{http.StatusBadGateway, KindParseFailed, "Failed to parse AI response. Please try again."}
	case errors.Is(err, service.ErrEmptyGeneration):
		return apiError{http.StatusBadGateway, KindEmptyGeneration, "No flashcards were generated. Please try again."}

	default:
		return apiError{http.StatusInternalServerError, KindInternal, defaultErrorMessage}
	}
}

// rateLimitMessage phrases the limit the way users see it in the UI,
// e.g. "You can generate 3 decks per hour."
func rateLimitMessage(e *service.RateLimitError) string {
	return fmt.Sprintf("Rate limit exceeded. You can generate %d decks per %s. Please try again later.",
		e.Max, windowPhrase(e.Window))
}

func windowPhrase(d time.Duration) string {
	switch {
	case d == time.Hour:
		return "hour"
	case d%time.Hour == 0:
		return fmt.Sprintf("%d hours", int(d/time.Hour))
	case d == time.Minute:
		return "minute"
	default:
		return fmt.Sprintf("%d minutes", int(d/time.Minute))
	}
}

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes.
func MapErrorToStatusCode(err error) int {
	return mapError(err).status
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type.
func GetSafeErrorMessage(err error) string {
	return mapError(err).message
}

// HandleAPIError writes the error response for err and logs the redacted
// details. defaultMsg replaces the generic message for unmapped errors so the
// client learns which operation failed.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, defaultMsg string) {
	mapped := mapError(err)
	if mapped.kind == KindInternal && defaultMsg != "" {
		mapped.message = defaultMsg
	}

	var opts []shared.ResponseOption
	if mapped.status == http.StatusUnauthorized || mapped.status == http.StatusForbidden {
		opts = append(opts, shared.WithElevatedLogLevel())
	}

	shared.RespondWithErrorAndLog(w, r, mapped.status, mapped.kind, mapped.message, err, opts...)
}
