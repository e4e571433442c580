package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/lingodeck/internal/domain"
	"github.com/phrazzld/lingodeck/internal/platform/logger"
	"github.com/phrazzld/lingodeck/internal/store"
)

// UserService maps identity-provider subjects to local users.
type UserService interface {
	// ResolveExternalUser returns the local user for the given subject,
	// creating it on first sight.
	ResolveExternalUser(ctx context.Context, externalID string) (*domain.User, error)
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore store.UserStore
	logger    *slog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userStore store.UserStore, logger *slog.Logger) UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		userStore: userStore,
		logger:    logger.With(slog.String("component", "user_service")),
	}
}

// ResolveExternalUser implements UserService.ResolveExternalUser
func (s *UserServiceImpl) ResolveExternalUser(ctx context.Context, externalID string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		return nil, domain.NewValidationError("sub", "is required", domain.ErrEmptyExternalID)
	}

	user, err := s.userStore.GetOrCreateByExternalID(ctx, externalID)
	if err != nil {
		log.Error("failed to resolve external user", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}

	log.Debug("resolved external user", slog.String("user_id", user.ID.String()))
	return user, nil
}
