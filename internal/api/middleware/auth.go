package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/lingodeck/internal/api/shared"
	"github.com/phrazzld/lingodeck/internal/domain"
	"github.com/phrazzld/lingodeck/internal/platform/logger"
	"github.com/phrazzld/lingodeck/internal/redact"
	"github.com/phrazzld/lingodeck/internal/service"
	"github.com/phrazzld/lingodeck/internal/service/auth"
)

const kindUnauthorized = "unauthorized"

// AuthMiddleware authenticates requests with identity-provider bearer tokens.
type AuthMiddleware struct {
	tokenService auth.TokenService
	userService  service.UserService
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(tokenService auth.TokenService, userService service.UserService) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
		userService:  userService,
	}
}

// Authenticate validates the bearer token in the Authorization header,
// resolves its subject to the internal user and adds the user ID to the
// request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, kindUnauthorized, "Authorization header required")
			return
		}

		scheme, token, found := strings.Cut(authHeader, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, kindUnauthorized, "Invalid authorization format")
			return
		}

		claims, err := m.tokenService.ValidateToken(r.Context(), strings.TrimSpace(token))
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized, kindUnauthorized, "Token expired")
			case errors.Is(err, auth.ErrInvalidToken),
				errors.Is(err, auth.ErrTokenNotYetValid),
				errors.Is(err, auth.ErrMissingSubject):
				shared.RespondWithError(w, r, http.StatusUnauthorized, kindUnauthorized, "Invalid token")
			default:
				shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
					"internal_error", "Authentication error", err)
			}
			return
		}

		user, err := m.userService.ResolveExternalUser(r.Context(), claims.Subject)
		if err != nil {
			if errors.Is(err, domain.ErrValidation) {
				shared.RespondWithError(w, r, http.StatusUnauthorized, kindUnauthorized, "Invalid token")
				return
			}
			log.Error("failed to resolve user", slog.String("error", redact.Error(err)))
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
				"internal_error", "Authentication error", err)
			return
		}

		ctx := context.WithValue(r.Context(), shared.UserIDContextKey, user.ID)
		ctx = logger.WithLogger(ctx, logger.FromContext(ctx).With(slog.String("user_id", user.ID.String())))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
