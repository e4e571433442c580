package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/phrazzld/lingodeck/internal/domain"
	"github.com/phrazzld/lingodeck/internal/service"
	"github.com/phrazzld/lingodeck/internal/service/auth"
	"github.com/phrazzld/lingodeck/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantKind    string
		wantMessage string
	}{
		{name: "nil", err: nil, wantStatus: 500, wantKind: KindInternal, wantMessage: defaultErrorMessage},
		{
			name:        "validation_detail",
			err:         domain.NewValidationError("card_count", "must be one of [10 25 50]", domain.ErrValidation),
			wantStatus:  400,
			wantKind:    KindValidation,
			wantMessage: "card_count must be one of [10 25 50]",
		},
		{name: "invalid_entity", err: store.ErrInvalidEntity, wantStatus: 400, wantKind: KindValidation, wantMessage: "Invalid request"},
		{name: "expired_token", err: auth.ErrExpiredToken, wantStatus: 401, wantKind: KindUnauthorized, wantMessage: "Token expired"},
		{name: "invalid_token", err: auth.ErrInvalidToken, wantStatus: 401, wantKind: KindUnauthorized, wantMessage: "Invalid token"},
		{name: "not_owned", err: service.ErrNotOwned, wantStatus: 403, wantKind: KindForbidden, wantMessage: "You do not have access to this deck"},
		{name: "deck_not_found", err: service.ErrDeckNotFound, wantStatus: 404, wantKind: KindNotFound, wantMessage: "Deck not found"},
		{
			name:        "store_deck_not_found_wrapped",
			err:         fmt.Errorf("get: %w", store.ErrDeckNotFound),
			wantStatus:  404,
			wantKind:    KindNotFound,
			wantMessage: "Deck not found",
		},
		{
			name:        "rate_limited_hour",
			err:         &service.RateLimitError{Max: 3, Window: time.Hour},
			wantStatus:  429,
			wantKind:    KindRateLimited,
			wantMessage: "Rate limit exceeded. You can generate 3 decks per hour. Please try again later.",
		},
		{
			name:        "rate_limited_minutes",
			err:         &service.RateLimitError{Max: 5, Window: 30 * time.Minute},
			wantStatus:  429,
			wantKind:    KindRateLimited,
			wantMessage: "Rate limit exceeded. You can generate 5 decks per 30 minutes. Please try again later.",
		},
		{
			name:        "rate_limited_bare_sentinel",
			err:         service.ErrRateLimited,
			wantStatus:  429,
			wantKind:    KindRateLimited,
			wantMessage: "Rate limit exceeded. Please try again later.",
		},
		{name: "generation_failed", err: service.ErrGenerationFailed, wantStatus: 502, wantKind: KindGenerationError},
		{name: "parse_failed", err: service.ErrParseFailed, wantStatus: 502, wantKind: KindParseFailed},
		{name: "empty_generation", err: service.ErrEmptyGeneration, wantStatus: 502, wantKind: KindEmptyGeneration},
		{
			name:        "unknown",
			err:         errors.New("sql: connection refused at 10.0.0.5"),
			wantStatus:  500,
			wantKind:    KindInternal,
			wantMessage: defaultErrorMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapError(tt.err)
			assert.Equal(t, tt.wantStatus, got.status)
			assert.Equal(t, tt.wantKind, got.kind)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, got.message)
			}
			assert.Equal(t, got.status, MapErrorToStatusCode(tt.err))
			assert.Equal(t, got.message, GetSafeErrorMessage(tt.err))
		})
	}
}

func TestWindowPhrase(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "hour", windowPhrase(time.Hour))
	assert.Equal(t, "24 hours", windowPhrase(24*time.Hour))
	assert.Equal(t, "minute", windowPhrase(time.Minute))
	assert.Equal(t, "90 minutes", windowPhrase(90*time.Minute))
}

func TestHandleAPIError_DefaultMessageOnlyForInternal(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	HandleAPIError(rr, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("boom"), "Failed to list decks")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "Failed to list decks", decodeError(t, rr).Error)

	rr = httptest.NewRecorder()
	HandleAPIError(rr, httptest.NewRequest(http.MethodGet, "/", nil), service.ErrDeckNotFound, "Failed to get deck")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Deck not found", decodeError(t, rr).Error)
}
